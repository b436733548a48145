// This file adds a lightweight linter/validator for Config values. It
// performs static checks over a decoded Config and returns a list of issues
// (errors and warnings) that callers can surface in a CLI or tests.
package config

import (
	"fmt"
	"regexp"
	"strings"

	"datarefinery/internal/datefmt"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that blocks execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be
	// surfaced to users but does not block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding.
//
// Path is a dotted path into the config (e.g. "date_cleaning.options.
// on_parse_failure", "date_cleaning.parse_formats[2].regex_pattern").
// Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a
// single error in contexts that expect one.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// ConfigError aggregates every error-severity issue found at load time.
type ConfigError struct {
	Issues []Issue
}

func (e *ConfigError) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, iss := range e.Issues {
		if iss.Severity == SeverityError {
			msgs = append(msgs, iss.Error())
		}
	}
	return "invalid configuration: " + strings.Join(msgs, "; ")
}

// AsError converts a validation result into a *ConfigError when it contains
// at least one error-severity issue, and nil otherwise. Warnings alone do
// not produce an error.
func AsError(issues []Issue) error {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return &ConfigError{Issues: issues}
		}
	}
	return nil
}

// Validate performs static validation of a Config. It does not mutate the
// config; it returns a slice of Issue values. Callers decide whether to
// treat warnings as fatal.
func Validate(c *Config) []Issue {
	var issues []Issue
	issues = append(issues, validateDateCleaning(c.DateCleaning)...)
	issues = append(issues, validateRuntime(c.Runtime)...)
	issues = append(issues, validateSink(c.Sink)...)
	issues = append(issues, validateMetrics(c.Metrics)...)
	return issues
}

func validateDateCleaning(dc DateCleaning) []Issue {
	var issues []Issue

	for _, tpl := range []struct{ path, val string }{
		{"date_cleaning.output_format", dc.OutputFormat},
		{"date_cleaning.output_format_date_only", dc.OutputFormatDateOnly},
	} {
		if strings.TrimSpace(tpl.val) == "" {
			issues = append(issues, Issue{SeverityError, tpl.path, "output template must not be empty"})
			continue
		}
		if err := datefmt.ValidateTemplate(tpl.val); err != nil {
			issues = append(issues, Issue{SeverityError, tpl.path, err.Error()})
		}
	}

	if dc.Enabled && len(dc.DateFields) == 0 {
		issues = append(issues, Issue{
			SeverityError,
			"date_cleaning.date_fields",
			"at least one date field is required when cleaning is enabled",
		})
	}
	for i, f := range dc.DateFields {
		if strings.TrimSpace(f.Name) == "" {
			issues = append(issues, Issue{
				SeverityError,
				fmt.Sprintf("date_cleaning.date_fields[%d].name", i),
				"field name must not be empty",
			})
		}
	}

	// parse_formats may be omitted entirely; the built-in set is used then.
	for i, pf := range dc.ParseFormats {
		path := fmt.Sprintf("date_cleaning.parse_formats[%d]", i)
		if strings.TrimSpace(pf.Name) == "" {
			issues = append(issues, Issue{SeverityError, path + ".name", "format name must not be empty"})
		}
		if _, err := regexp.Compile(pf.RegexPattern); err != nil {
			issues = append(issues, Issue{SeverityError, path + ".regex_pattern", fmt.Sprintf("invalid pattern: %v", err)})
		}
		if pf.IsExcelSerial {
			if pf.StrptimeFormat != "" {
				issues = append(issues, Issue{SeverityError, path + ".strptime_format", "serial formats take no strptime_format"})
			}
		} else {
			if strings.TrimSpace(pf.StrptimeFormat) == "" {
				issues = append(issues, Issue{SeverityError, path + ".strptime_format", "template formats require a strptime_format"})
			} else if err := datefmt.ValidateTemplate(pf.StrptimeFormat); err != nil {
				issues = append(issues, Issue{SeverityError, path + ".strptime_format", err.Error()})
			}
		}
	}

	switch dc.Options.OnParseFailure {
	case PolicyKeepOriginal, PolicySetNull, PolicyDropRow:
	default:
		issues = append(issues, Issue{
			SeverityError,
			"date_cleaning.options.on_parse_failure",
			fmt.Sprintf("unknown policy %q; expected %s, %s, or %s",
				dc.Options.OnParseFailure, PolicyKeepOriginal, PolicySetNull, PolicyDropRow),
		})
	}
	switch dc.Options.OutputMode {
	case OutputModeReplace, OutputModeAddColumn:
	default:
		issues = append(issues, Issue{
			SeverityError,
			"date_cleaning.options.output_mode",
			fmt.Sprintf("unknown output mode %q; expected %s or %s",
				dc.Options.OutputMode, OutputModeReplace, OutputModeAddColumn),
		})
	}

	return issues
}

func validateRuntime(r Runtime) []Issue {
	var issues []Issue
	if r.Workers < 0 {
		issues = append(issues, Issue{SeverityError, "runtime.workers", "workers must not be negative"})
	}
	return issues
}

func validateSink(s Sink) []Issue {
	var issues []Issue

	known := map[string]struct{}{
		"":         {},
		"csv":      {},
		"sqlite":   {},
		"postgres": {},
	}
	if _, ok := known[s.Kind]; !ok {
		issues = append(issues, Issue{
			SeverityWarning,
			"sink.kind",
			fmt.Sprintf("unknown sink kind %q; ensure a matching backend is registered", s.Kind),
		})
	}

	// DB-specific checks apply to any non-CSV kind.
	if s.Kind != "" && s.Kind != "csv" {
		if strings.TrimSpace(s.DB.DSN) == "" {
			issues = append(issues, Issue{SeverityError, "sink.db.dsn", "sink.db.dsn must not be empty"})
		}
		if strings.TrimSpace(s.DB.Table) == "" {
			issues = append(issues, Issue{SeverityError, "sink.db.table", "sink.db.table must not be empty"})
		}
	}

	return issues
}

func validateMetrics(m Metrics) []Issue {
	var issues []Issue
	switch m.Backend {
	case "", "none":
	case "pushgateway":
		if strings.TrimSpace(m.PushgatewayURL) == "" {
			issues = append(issues, Issue{SeverityError, "metrics.pushgateway_url", "pushgateway backend requires a URL"})
		}
	default:
		issues = append(issues, Issue{
			SeverityWarning,
			"metrics.backend",
			fmt.Sprintf("unknown metrics backend %q; metrics will be disabled", m.Backend),
		})
	}
	return issues
}

// RuleSpecs converts the configured parse formats into compiled-rule specs,
// falling back to the built-in set when none are configured.
func (c *Config) RuleSpecs() []datefmt.RuleSpec {
	if len(c.DateCleaning.ParseFormats) == 0 {
		return datefmt.DefaultRuleSpecs()
	}
	specs := make([]datefmt.RuleSpec, len(c.DateCleaning.ParseFormats))
	for i, pf := range c.DateCleaning.ParseFormats {
		specs[i] = datefmt.RuleSpec{
			Name:        pf.Name,
			Template:    pf.StrptimeFormat,
			Pattern:     pf.RegexPattern,
			Serial:      pf.IsExcelSerial,
			Description: pf.Description,
		}
	}
	return specs
}

// FieldSpecs converts the configured date fields into resolver specs.
func (c *Config) FieldSpecs() []datefmt.FieldSpec {
	specs := make([]datefmt.FieldSpec, len(c.DateCleaning.DateFields))
	for i, f := range c.DateCleaning.DateFields {
		specs[i] = datefmt.FieldSpec{Name: f.Name, Aliases: f.Aliases, HasTime: f.HasTime}
	}
	return specs
}
