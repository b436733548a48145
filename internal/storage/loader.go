package storage

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"datarefinery/internal/table"
)

// DefaultBatchSize is the row count per CopyFrom call in LoadTable.
const DefaultBatchSize = 5000

// EnsureTable creates the destination table if it does not exist. Cleaned
// exports are all textual, so every column is declared TEXT; the statement
// is portable across the built-in backends.
func EnsureTable(ctx context.Context, repo Repository, tableName string, columns []string) error {
	if len(columns) == 0 {
		return fmt.Errorf("ensure table %s: no columns", tableName)
	}
	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = quoteIdent(c) + " TEXT"
	}
	ddl := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (%s)",
		quoteFQN(tableName),
		strings.Join(defs, ", "),
	)
	if err := repo.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure table %s: %w", tableName, err)
	}
	return nil
}

// LoadTable inserts all rows of t into repo in batches of batchSize,
// returning the total number of rows inserted. Progress is logged per
// successful batch with instantaneous rows/sec.
func LoadTable(ctx context.Context, repo Repository, t *table.Table, batchSize int) (int64, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	var (
		total   int64
		batches int64
		start   = time.Now()
		lastTS  = start
	)
	for lo := 0; lo < len(t.Rows); lo += batchSize {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		hi := lo + batchSize
		if hi > len(t.Rows) {
			hi = len(t.Rows)
		}
		rows := make([][]any, 0, hi-lo)
		for _, row := range t.Rows[lo:hi] {
			vals := make([]any, len(row))
			for i, cell := range row {
				vals[i] = cell
			}
			rows = append(rows, vals)
		}

		n, err := repo.CopyFrom(ctx, t.Columns, rows)
		total += n
		if err != nil {
			log.Printf("loader: insert failed after=%d total=%d err=%v", n, total, err)
			return total, err
		}

		batches++
		now := time.Now()
		sinceLast := now.Sub(lastTS)
		rps := float64(0)
		if sinceLast > 0 {
			rps = float64(n) / sinceLast.Seconds()
		}
		log.Printf(
			"batch #%d: rps=%.0f inserted=%d total_inserted=%d elapsed=%s",
			batches, rps, n, total, now.Sub(start).Truncate(time.Millisecond),
		)
		lastTS = now
	}
	return total, nil
}

// quoteIdent quotes a single identifier segment. Double-quoted identifiers
// are understood by both built-in backends.
func quoteIdent(id string) string { return `"` + strings.ReplaceAll(id, `"`, `""`) + `"` }

// quoteFQN quotes a possibly schema-qualified name like "public.events" to
// "public"."events".
func quoteFQN(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = quoteIdent(p)
	}
	return strings.Join(parts, ".")
}
