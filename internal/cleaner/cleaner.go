// Package cleaner applies the date-normalization engine across all
// configured fields of one table, and across a collection of input files.
package cleaner

import (
	"fmt"
	"log"
	"strings"

	"datarefinery/internal/config"
	"datarefinery/internal/datefmt"
	"datarefinery/internal/table"
)

// Executor cleans the configured date fields of a table. It is read-only
// after construction and safe to share across concurrently processed files.
type Executor struct {
	fields     []datefmt.FieldSpec
	norm       *datefmt.Normalizer
	policy     Policy
	outputMode OutputMode
	logDetails bool
}

// NewExecutor builds an Executor from a validated configuration.
func NewExecutor(cfg *config.Config) (*Executor, error) {
	reg, err := datefmt.NewRegistry(cfg.RuleSpecs())
	if err != nil {
		return nil, fmt.Errorf("build format registry: %w", err)
	}
	norm, err := datefmt.NewNormalizer(reg, datefmt.NormalizerOptions{
		OutputFormat:         cfg.DateCleaning.OutputFormat,
		OutputFormatDateOnly: cfg.DateCleaning.OutputFormatDateOnly,
		StripDecimalZero:     cfg.DateCleaning.Options.RemoveDecimalZero,
	})
	if err != nil {
		return nil, fmt.Errorf("build normalizer: %w", err)
	}
	policy, err := ParsePolicy(cfg.DateCleaning.Options.OnParseFailure)
	if err != nil {
		return nil, err
	}
	mode, err := ParseOutputMode(cfg.DateCleaning.Options.OutputMode)
	if err != nil {
		return nil, err
	}
	return &Executor{
		fields:     cfg.FieldSpecs(),
		norm:       norm,
		policy:     policy,
		outputMode: mode,
		logDetails: cfg.DateCleaning.Options.LogDetails,
	}, nil
}

// TableResult summarizes cleaning one table.
type TableResult struct {
	// CleanedColumns lists the raw column names that were resolved and
	// normalized, in field order.
	CleanedColumns []string
	// SkippedFields lists configured fields that resolved to no column.
	SkippedFields []string
	// ValuesCleaned counts cells rewritten into canonical form.
	ValuesCleaned int
	// ValuesUnparsable counts cells no rule could decode.
	ValuesUnparsable int
	// RowsDropped counts rows removed under the drop_row policy.
	RowsDropped int
}

// CleanTable normalizes every configured date field of t in place.
//
// Distinct raw values of a column are normalized once and the results
// fanned back out in row order, so each rule is evaluated per unique value
// rather than per cell. Under the drop_row policy, rows are only marked
// while fields are processed; the table is filtered once at the end, after
// per-row decisions across all configured fields are final.
func (e *Executor) CleanTable(t *table.Table) (*TableResult, error) {
	res := &TableResult{}
	drop := make([]bool, len(t.Rows))

	for _, field := range e.fields {
		idx, ok := datefmt.ResolveColumn(t.Columns, field)
		if !ok {
			if e.logDetails {
				log.Printf("field %q: no matching column; skipped", field.Name)
			}
			res.SkippedFields = append(res.SkippedFields, field.Name)
			continue
		}
		colName := t.Columns[idx]

		outcomes := make(map[string]datefmt.Outcome)
		cleaned := make([]string, len(t.Rows))
		for i, row := range t.Rows {
			raw := row[idx]
			if strings.TrimSpace(raw) == "" {
				// An absent value is not a parse failure.
				continue
			}
			out, seen := outcomes[raw]
			if !seen {
				out = e.norm.Normalize(raw, field.HasTime)
				outcomes[raw] = out
				if e.logDetails {
					log.Printf("column %q: %q -> rule=%s value=%q", colName, raw, outcomeRule(out), out.Value)
				}
			}
			if out.OK {
				cleaned[i] = out.Value
				res.ValuesCleaned++
				continue
			}
			res.ValuesUnparsable++
			switch e.policy {
			case KeepOriginal:
				cleaned[i] = raw
			case SetNull:
				cleaned[i] = ""
			case DropRow:
				cleaned[i] = raw
				drop[i] = true
			}
		}

		switch e.outputMode {
		case Replace:
			if err := t.SetColumn(idx, cleaned); err != nil {
				return nil, fmt.Errorf("field %q: %w", field.Name, err)
			}
		case AddColumn:
			if err := t.AddColumn(colName+cleanedSuffix, cleaned); err != nil {
				return nil, fmt.Errorf("field %q: %w", field.Name, err)
			}
		}
		res.CleanedColumns = append(res.CleanedColumns, colName)
	}

	if e.policy == DropRow {
		keep := make([]bool, len(drop))
		for i, d := range drop {
			keep[i] = !d
		}
		res.RowsDropped = t.Filter(keep)
	}
	return res, nil
}

func outcomeRule(o datefmt.Outcome) string {
	if !o.OK {
		return "none"
	}
	return o.Rule
}
