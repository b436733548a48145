package cleaner

import (
	"fmt"

	"datarefinery/internal/config"
)

// Policy is the configured fallback action for values no rule can decode.
// It is global per run, not per field.
type Policy int

const (
	// KeepOriginal leaves the original textual value untouched.
	KeepOriginal Policy = iota
	// SetNull replaces the value with an empty cell.
	SetNull
	// DropRow marks the owning row for removal. Removal is deferred until
	// every configured field of the table has been evaluated.
	DropRow
)

// String returns the configuration spelling of the policy.
func (p Policy) String() string {
	switch p {
	case SetNull:
		return config.PolicySetNull
	case DropRow:
		return config.PolicyDropRow
	default:
		return config.PolicyKeepOriginal
	}
}

// ParsePolicy maps a configuration spelling onto a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case config.PolicyKeepOriginal:
		return KeepOriginal, nil
	case config.PolicySetNull:
		return SetNull, nil
	case config.PolicyDropRow:
		return DropRow, nil
	default:
		return KeepOriginal, fmt.Errorf("unknown parse-failure policy %q", s)
	}
}

// OutputMode selects how a cleaned column is applied to the table.
type OutputMode int

const (
	// Replace overwrites the resolved column in place.
	Replace OutputMode = iota
	// AddColumn appends a derived column named "<column>_cleaned",
	// leaving the original untouched.
	AddColumn
)

// cleanedSuffix names derived columns under AddColumn.
const cleanedSuffix = "_cleaned"

// ParseOutputMode maps a configuration spelling onto an OutputMode.
func ParseOutputMode(s string) (OutputMode, error) {
	switch s {
	case config.OutputModeReplace:
		return Replace, nil
	case config.OutputModeAddColumn:
		return AddColumn, nil
	default:
		return Replace, fmt.Errorf("unknown output mode %q", s)
	}
}
