package datefmt

import (
	"fmt"
	"regexp"
	"time"
)

// RuleSpec describes one recognition/decoding rule as it appears in
// configuration. Template is the strptime-style decode template; it must be
// empty for serial rules and non-empty otherwise.
type RuleSpec struct {
	Name        string
	Template    string
	Pattern     string
	Serial      bool
	Description string
}

// Rule is a compiled recognition/decoding rule. Immutable after build.
type Rule struct {
	name        string
	re          *regexp.Regexp
	layout      string // Go layout translated from the strptime template
	serial      bool
	hasTime     bool
	description string
}

// Name returns the rule's configured name.
func (r *Rule) Name() string { return r.name }

// HasTime reports whether the rule's template decodes a time of day.
// Serial rules never do; fractional days are discarded.
func (r *Rule) HasTime() bool { return r.hasTime }

// Match reports whether value matches the rule's recognition pattern.
// Patterns are evaluated as full-string matches.
func (r *Rule) Match(value string) bool { return r.re.MatchString(value) }

// Decode converts a matched value into calendar components. A structurally
// matched value can still fail here (e.g. "2024.02.30"): the caller is
// expected to fall through to the next rule in priority order.
func (r *Rule) Decode(value string) (Components, error) {
	if r.serial {
		return decodeSerial(value)
	}
	t, err := time.Parse(r.layout, value)
	if err != nil {
		return Components{}, err
	}
	return componentsFromTime(t), nil
}

// Registry is an ordered, immutable set of rules built once from
// configuration and shared read-only across all fields and files of a run.
type Registry struct {
	rules []Rule
}

// NewRegistry compiles the given specs into a Registry. Specs are tried in
// the order given; lower index wins. Any malformed spec fails the build.
func NewRegistry(specs []RuleSpec) (*Registry, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("at least one parse format is required")
	}
	rules := make([]Rule, 0, len(specs))
	for i, s := range specs {
		if s.Name == "" {
			return nil, fmt.Errorf("parse format [%d]: name must not be empty", i)
		}
		// Anchor explicitly so substring hits never count as matches,
		// regardless of how the configured pattern is written.
		re, err := regexp.Compile(`\A(?:` + s.Pattern + `)\z`)
		if err != nil {
			return nil, fmt.Errorf("parse format %q: invalid pattern: %w", s.Name, err)
		}
		r := Rule{name: s.Name, re: re, serial: s.Serial, description: s.Description}
		if s.Serial {
			if s.Template != "" {
				return nil, fmt.Errorf("parse format %q: serial rules take no template", s.Name)
			}
		} else {
			layout, err := strptimeToLayout(s.Template)
			if err != nil {
				return nil, fmt.Errorf("parse format %q: %w", s.Name, err)
			}
			if layout == "" {
				return nil, fmt.Errorf("parse format %q: template must not be empty", s.Name)
			}
			r.layout = layout
			r.hasTime = templateHasTime(s.Template)
		}
		rules = append(rules, r)
	}
	return &Registry{rules: rules}, nil
}

// Len returns the number of rules.
func (reg *Registry) Len() int { return len(reg.rules) }

// Decode runs value through the rules in priority order. The first rule
// whose pattern matches is tried; if its decode fails the next rule is
// tried. A value is unparsable only once every rule has either not matched
// or matched but failed to decode.
func (reg *Registry) Decode(value string) (Components, *Rule, bool) {
	for i := range reg.rules {
		r := &reg.rules[i]
		if !r.Match(value) {
			continue
		}
		c, err := r.Decode(value)
		if err != nil {
			continue
		}
		return c, r, true
	}
	return Components{}, nil, false
}

// DefaultRuleSpecs returns the built-in rule set used when configuration
// does not define parse_formats. Order matters: earlier rules win.
func DefaultRuleSpecs() []RuleSpec {
	return []RuleSpec{
		{Name: "excel_serial", Pattern: `^\d{1,5}(\.0)?$`, Serial: true, Description: "spreadsheet serial day count"},
		{Name: "compact", Template: "%Y%m%d", Pattern: `^\d{8}$`, Description: "compact date (20200123)"},
		{Name: "standard_slash", Template: "%Y/%m/%d", Pattern: `^\d{4}/\d{1,2}/\d{1,2}$`, Description: "slash separated (2020/1/1)"},
		{Name: "dot_separated", Template: "%Y.%m.%d", Pattern: `^\d{4}\.\d{1,2}\.\d{1,2}$`, Description: "dot separated (2020.1.24)"},
		{Name: "iso_date", Template: "%Y-%m-%d", Pattern: `^\d{4}-\d{1,2}-\d{1,2}$`, Description: "ISO date (2024-01-02)"},
		{Name: "chinese_year_month_day", Template: "%Y年%m月%d日", Pattern: `^\d{4}年\d{1,2}月\d{1,2}日$`, Description: "Chinese year-month-day (2024年1月2日)"},
		{Name: "chinese_year_month_hao", Template: "%Y年%m月%d号", Pattern: `^\d{4}年\d{1,2}月\d{1,2}号$`, Description: "Chinese year-month-hao (2024年1月2号)"},
		{Name: "chinese_year_month", Template: "%Y年%m月", Pattern: `^\d{4}年\d{1,2}月$`, Description: "Chinese year-month (2023年2月)"},
		{Name: "compact_year_month", Template: "%Y%m", Pattern: `^\d{6}$`, Description: "compact year-month (202301)"},
		{Name: "dash_year_month", Template: "%Y-%m", Pattern: `^\d{4}-\d{1,2}$`, Description: "dashed year-month (2023-01)"},
		{Name: "iso_datetime", Template: "%Y-%m-%d %H:%M:%S", Pattern: `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`, Description: "ISO datetime (2023-01-02 23:30:31)"},
	}
}
