// Package datefmt implements recognition and decoding of free-form date
// values against an ordered, configuration-built rule set, plus resolution
// of logical date fields to actual table columns.
//
// Rule templates use strptime-style verbs (%Y, %m, %d, %H, %M, %S) because
// that is the notation the rule configuration files are written in. Parsing
// is delegated to time.Parse after translating the template to a Go layout;
// formatting is done directly from decoded components so that dates which
// time.Time cannot represent (the spreadsheet's fake 1900-02-29) still
// round-trip to output.
package datefmt

import (
	"fmt"
	"strings"
	"time"
)

// Components holds a decoded calendar date and optional time of day.
// A zero time of day is indistinguishable from midnight on purpose; whether
// a value "carries time" is a property of the rule that decoded it, not of
// the components themselves.
type Components struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
}

// componentsFromTime extracts Components from a time.Time.
func componentsFromTime(t time.Time) Components {
	return Components{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
}

// strptimeToLayout translates a strptime-style template into a Go time
// layout suitable for time.Parse. Numeric verbs map to their non-padded Go
// elements so that values like "2024/1/4" and "2024/01/04" both parse; the
// recognition regex is what constrains the accepted shape, not the layout.
func strptimeToLayout(tpl string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(tpl); i++ {
		c := tpl[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(tpl) {
			return "", fmt.Errorf("template %q: trailing %%", tpl)
		}
		switch tpl[i] {
		case 'Y':
			b.WriteString("2006")
		case 'm':
			b.WriteString("1")
		case 'd':
			b.WriteString("2")
		case 'H':
			b.WriteString("15")
		case 'M':
			b.WriteString("4")
		case 'S':
			b.WriteString("5")
		case '%':
			b.WriteByte('%')
		default:
			return "", fmt.Errorf("template %q: unsupported verb %%%c", tpl, tpl[i])
		}
	}
	return b.String(), nil
}

// templateHasTime reports whether a strptime template includes any
// time-of-day verb.
func templateHasTime(tpl string) bool {
	for i := 0; i+1 < len(tpl); i++ {
		if tpl[i] != '%' {
			continue
		}
		switch tpl[i+1] {
		case 'H', 'M', 'S':
			return true
		case '%':
			i++
		}
	}
	return false
}

// FormatComponents renders c using a strptime-style output template.
// All numeric verbs are zero-padded, matching strftime semantics. Verbs the
// template omits are simply not rendered, which is how a date-only template
// discards a decoded time of day.
func FormatComponents(tpl string, c Components) string {
	var b strings.Builder
	for i := 0; i < len(tpl); i++ {
		ch := tpl[i]
		if ch != '%' || i+1 >= len(tpl) {
			b.WriteByte(ch)
			continue
		}
		i++
		switch tpl[i] {
		case 'Y':
			fmt.Fprintf(&b, "%04d", c.Year)
		case 'm':
			fmt.Fprintf(&b, "%02d", c.Month)
		case 'd':
			fmt.Fprintf(&b, "%02d", c.Day)
		case 'H':
			fmt.Fprintf(&b, "%02d", c.Hour)
		case 'M':
			fmt.Fprintf(&b, "%02d", c.Minute)
		case 'S':
			fmt.Fprintf(&b, "%02d", c.Second)
		case '%':
			b.WriteByte('%')
		default:
			// Unknown verbs are emitted verbatim; validation rejects them
			// at registry build time, so this only happens for ad-hoc calls.
			b.WriteByte('%')
			b.WriteByte(tpl[i])
		}
	}
	return b.String()
}

// ValidateTemplate reports whether tpl is a well-formed strptime template.
func ValidateTemplate(tpl string) error {
	_, err := strptimeToLayout(tpl)
	return err
}
