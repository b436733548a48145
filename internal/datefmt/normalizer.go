package datefmt

import (
	"fmt"
	"regexp"
	"strings"
)

// Pre-classification scrubbing, mirroring the quirks of real exports:
// spaces that sneak in after a dot or slash separator between digits are
// removed ("2024. 1. 4" -> "2024.1.4") while the date/time space survives,
// and a purely numeric value may carry a float-formatting ".0" suffix.
var (
	dotSpaceRe     = regexp.MustCompile(`(\d)\.\s+(\d)`)
	slashSpaceRe   = regexp.MustCompile(`(\d)/\s+(\d)`)
	decimalZeroRe  = regexp.MustCompile(`^\d+\.0$`)
	defaultFull    = "%Y-%m-%d %H:%M:%S"
	defaultDateTpl = "%Y-%m-%d"
)

// Normalizer composes a Registry with the per-run output templates and the
// decimal-zero preprocessing switch. It is read-only after construction and
// safe for concurrent use.
type Normalizer struct {
	reg              *Registry
	outputFull       string
	outputDateOnly   string
	stripDecimalZero bool
}

// NormalizerOptions configures a Normalizer. Zero-value templates fall back
// to the canonical "%Y-%m-%d %H:%M:%S" / "%Y-%m-%d" pair.
type NormalizerOptions struct {
	OutputFormat         string
	OutputFormatDateOnly string
	StripDecimalZero     bool
}

// NewNormalizer builds a Normalizer over an already-compiled Registry.
func NewNormalizer(reg *Registry, opt NormalizerOptions) (*Normalizer, error) {
	if reg == nil || reg.Len() == 0 {
		return nil, fmt.Errorf("normalizer requires a non-empty registry")
	}
	full := opt.OutputFormat
	if full == "" {
		full = defaultFull
	}
	dateOnly := opt.OutputFormatDateOnly
	if dateOnly == "" {
		dateOnly = defaultDateTpl
	}
	if err := ValidateTemplate(full); err != nil {
		return nil, fmt.Errorf("output format: %w", err)
	}
	if err := ValidateTemplate(dateOnly); err != nil {
		return nil, fmt.Errorf("date-only output format: %w", err)
	}
	return &Normalizer{
		reg:              reg,
		outputFull:       full,
		outputDateOnly:   dateOnly,
		stripDecimalZero: opt.StripDecimalZero,
	}, nil
}

// Outcome is the result of normalizing one raw value.
type Outcome struct {
	// Value is the canonical rendition; meaningful only when OK is true.
	Value string
	// Rule names the rule that decoded the value, or "" when none did.
	Rule string
	// OK is false when no rule both matched and decoded the value.
	OK bool
}

// Normalize rewrites one raw value into canonical form. hasTime is the
// owning field's output-shape flag: it decides which template renders the
// decoded components, independent of what the matched rule produced.
// Components the matched rule did not decode keep their first valid value
// (day 1, midnight), so partial formats like a year-month rule land on the
// first of the month.
func (n *Normalizer) Normalize(raw string, hasTime bool) Outcome {
	v := strings.TrimSpace(raw)
	v = dotSpaceRe.ReplaceAllString(v, "$1.$2")
	v = slashSpaceRe.ReplaceAllString(v, "$1/$2")
	if n.stripDecimalZero && decimalZeroRe.MatchString(v) {
		v = strings.TrimSuffix(v, ".0")
	}

	c, rule, ok := n.reg.Decode(v)
	if !ok {
		return Outcome{}
	}
	if c.Day == 0 {
		c.Day = 1
	}
	tpl := n.outputDateOnly
	if hasTime {
		// A decoded value without a time component formats as midnight.
		tpl = n.outputFull
	}
	return Outcome{Value: FormatComponents(tpl, c), Rule: rule.Name(), OK: true}
}
