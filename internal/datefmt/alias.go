package datefmt

import (
	"log"
	"strings"

	"golang.org/x/text/cases"
)

// FieldSpec is one logical date field: a canonical name, the column-name
// variants that refer to it, and whether its canonical output carries a time
// of day. Immutable after load.
type FieldSpec struct {
	Name    string
	Aliases []string
	HasTime bool
}

// NormalizeColumnName produces the lookup key for a column name: byte-order
// markers removed, surrounding whitespace trimmed, then Unicode case folding.
// Folding only affects cased (alphabetic) names; ideographic names pass
// through unchanged.
func NormalizeColumnName(name string) string {
	name = strings.ReplaceAll(name, "\ufeff", "")
	name = strings.TrimSpace(name)
	return cases.Fold().String(name)
}

// ResolveColumn maps spec to a column index in columns, or reports false
// when no candidate matches. Candidates are the canonical name followed by
// the aliases (duplicates of the name skipped), tried in declared order
// against a normalized lookup of the table's columns.
//
// When two raw columns normalize to the same key, the first occurrence wins
// and the duplicate is ignored with a warning.
func ResolveColumn(columns []string, spec FieldSpec) (int, bool) {
	lookup := make(map[string]int, len(columns))
	for i, col := range columns {
		key := NormalizeColumnName(col)
		if prev, dup := lookup[key]; dup {
			log.Printf("columns %q and %q normalize to the same name %q; keeping the first", columns[prev], col, key)
			continue
		}
		lookup[key] = i
	}

	candidates := make([]string, 0, 1+len(spec.Aliases))
	candidates = append(candidates, spec.Name)
	for _, a := range spec.Aliases {
		if a == spec.Name {
			continue
		}
		candidates = append(candidates, a)
	}

	for _, cand := range candidates {
		if i, ok := lookup[NormalizeColumnName(cand)]; ok {
			return i, true
		}
	}
	return 0, false
}
