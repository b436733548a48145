// Package config defines the canonical, YAML-serializable configuration
// model for the date-cleaning pipeline, loads it with koanf, and validates
// it before any file is touched.
//
// Design goals:
//
//  1. Stability: changes to this package should be additive and backwards-
//     compatible whenever possible.
//  2. Clarity: field names in Go mirror the YAML structure used in config
//     files under configs/*.yaml.
//  3. Fail-fast: every schema violation surfaces at load time as an issue
//     naming the offending field path, never later inside normalization.
package config

// Config is the top-level object decoded from a config file.
type Config struct {
	// DateCleaning configures the field-identity resolution, format
	// recognition, and normalization engine.
	DateCleaning DateCleaning `koanf:"date_cleaning"`

	// Paths names the default input/output locations for batch runs.
	Paths Paths `koanf:"paths"`

	// Runtime controls cross-file concurrency.
	Runtime Runtime `koanf:"runtime"`

	// Sink optionally loads cleaned tables into a database after the
	// cleaning step. Kind "csv" (or empty) disables it.
	Sink Sink `koanf:"sink"`

	// Metrics optionally enables the Pushgateway metrics backend.
	Metrics Metrics `koanf:"metrics"`
}

// DateCleaning mirrors the date_cleaning block of the YAML schema.
type DateCleaning struct {
	Enabled              bool          `koanf:"enabled"`
	OutputFormat         string        `koanf:"output_format"`
	OutputFormatDateOnly string        `koanf:"output_format_date_only"`
	DateFields           []DateField   `koanf:"date_fields"`
	ParseFormats         []ParseFormat `koanf:"parse_formats"`
	Options              Options       `koanf:"options"`
}

// DateField declares one logical date field and its column-name variants.
type DateField struct {
	Name    string   `koanf:"name"`
	Aliases []string `koanf:"aliases"`
	HasTime bool     `koanf:"has_time"`
}

// ParseFormat declares one recognition/decoding rule. Rules are tried in
// declared order; the first whose pattern matches is used. Serial rules
// (is_excel_serial) take no strptime_format.
type ParseFormat struct {
	Name           string `koanf:"name"`
	StrptimeFormat string `koanf:"strptime_format"`
	RegexPattern   string `koanf:"regex_pattern"`
	IsExcelSerial  bool   `koanf:"is_excel_serial"`
	Description    string `koanf:"description"`
}

// Failure policies for values no rule can decode.
const (
	PolicyKeepOriginal = "keep_original"
	PolicySetNull      = "set_null"
	PolicyDropRow      = "drop_row"
)

// Output modes for cleaned columns.
const (
	OutputModeReplace   = "replace"
	OutputModeAddColumn = "add_column"
)

// Options mirrors the date_cleaning.options block.
type Options struct {
	OnParseFailure    string `koanf:"on_parse_failure"`
	RemoveDecimalZero bool   `koanf:"remove_decimal_zero"`
	LogDetails        bool   `koanf:"log_details"`
	OutputMode        string `koanf:"output_mode"`
}

// Paths mirrors the paths block.
type Paths struct {
	InputFolder  string `koanf:"input_folder"`
	OutputFolder string `koanf:"output_folder"`
}

// Runtime controls concurrency for the cross-file batch.
type Runtime struct {
	// Workers bounds the number of files processed concurrently.
	// Zero or negative means a single worker.
	Workers int `koanf:"workers"`
}

// Sink selects where cleaned tables are additionally loaded.
type Sink struct {
	// Kind selects the sink implementation: "csv" (none), "sqlite",
	// or "postgres".
	Kind string `koanf:"kind"`

	// DB carries options for database sink kinds.
	DB DBConfig `koanf:"db"`
}

// DBConfig configures a database sink.
type DBConfig struct {
	// DSN is the connection string for the selected driver.
	DSN string `koanf:"dsn"`

	// Table is the destination table name. When multiple files are
	// cleaned, every file loads into this table.
	Table string `koanf:"table"`

	// AutoCreateTable creates the destination table (all TEXT columns,
	// derived from the cleaned header) before loading.
	AutoCreateTable bool `koanf:"auto_create_table"`
}

// Metrics configures the optional Pushgateway backend.
type Metrics struct {
	Backend        string `koanf:"backend"` // "pushgateway" or "none"
	PushgatewayURL string `koanf:"pushgateway_url"`
	Job            string `koanf:"job"`
}

// ApplyDefaults fills zero values with the documented defaults. Called by
// Load; exposed for tests that build a Config by hand.
func (c *Config) ApplyDefaults() {
	if c.DateCleaning.OutputFormat == "" {
		c.DateCleaning.OutputFormat = "%Y-%m-%d %H:%M:%S"
	}
	if c.DateCleaning.OutputFormatDateOnly == "" {
		c.DateCleaning.OutputFormatDateOnly = "%Y-%m-%d"
	}
	if c.DateCleaning.Options.OnParseFailure == "" {
		c.DateCleaning.Options.OnParseFailure = PolicyKeepOriginal
	}
	if c.DateCleaning.Options.OutputMode == "" {
		c.DateCleaning.Options.OutputMode = OutputModeReplace
	}
	if c.Runtime.Workers <= 0 {
		c.Runtime.Workers = 1
	}
	if c.Sink.Kind == "" {
		c.Sink.Kind = "csv"
	}
	if c.Metrics.Backend == "" {
		c.Metrics.Backend = "none"
	}
	if c.Metrics.Job == "" {
		c.Metrics.Job = "datarefinery"
	}
}
