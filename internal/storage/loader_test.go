package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"datarefinery/internal/table"
)

// fakeRepo records CopyFrom and Exec calls.
type fakeRepo struct {
	batches [][]int // row counts per CopyFrom call
	ddl     []string
	failAt  int // 1-based batch index to fail on; 0 disables
}

func (f *fakeRepo) CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error) {
	f.batches = append(f.batches, []int{len(rows)})
	if f.failAt > 0 && len(f.batches) == f.failAt {
		return 0, errors.New("copy failed")
	}
	return int64(len(rows)), nil
}

func (f *fakeRepo) Exec(ctx context.Context, sql string) error {
	f.ddl = append(f.ddl, sql)
	return nil
}

func (f *fakeRepo) Close() {}

func tableWithRows(n int) *table.Table {
	t := &table.Table{Columns: []string{"id", "date"}}
	for i := 0; i < n; i++ {
		t.Rows = append(t.Rows, []string{"x", "y"})
	}
	return t
}

// TestLoadTableBatches verifies rows are grouped into batches and the total
// equals the sum of successful inserts.
func TestLoadTableBatches(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{}
	total, err := LoadTable(context.Background(), repo, tableWithRows(7), 3)
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	if total != 7 {
		t.Fatalf("total = %d, want 7", total)
	}
	if len(repo.batches) != 3 {
		t.Fatalf("batches = %d, want 3 (3+3+1)", len(repo.batches))
	}
}

// TestLoadTableErrorPropagation stops after the first failed batch.
func TestLoadTableErrorPropagation(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{failAt: 2}
	total, err := LoadTable(context.Background(), repo, tableWithRows(6), 2)
	if err == nil {
		t.Fatal("LoadTable: expected error")
	}
	if total != 2 {
		t.Fatalf("total = %d, want 2 (first batch only)", total)
	}
	if len(repo.batches) != 2 {
		t.Fatalf("batches attempted = %d, want 2", len(repo.batches))
	}
}

// TestLoadTableContextCancel exits between batches once the context is done.
func TestLoadTableContextCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := &fakeRepo{}
	if _, err := LoadTable(ctx, repo, tableWithRows(4), 2); !errors.Is(err, context.Canceled) {
		t.Fatalf("LoadTable error = %v, want context.Canceled", err)
	}
	if len(repo.batches) != 0 {
		t.Fatalf("batches = %d, want 0", len(repo.batches))
	}
}

// TestEnsureTableDDL checks identifier quoting and the all-TEXT column set.
func TestEnsureTableDDL(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{}
	err := EnsureTable(context.Background(), repo, "public.events", []string{"id", "创建时间"})
	if err != nil {
		t.Fatalf("EnsureTable: %v", err)
	}
	if len(repo.ddl) != 1 {
		t.Fatalf("ddl statements = %d, want 1", len(repo.ddl))
	}
	want := `CREATE TABLE IF NOT EXISTS "public"."events" ("id" TEXT, "创建时间" TEXT)`
	if repo.ddl[0] != want {
		t.Fatalf("ddl = %q, want %q", repo.ddl[0], want)
	}

	if err := EnsureTable(context.Background(), repo, "t", nil); err == nil {
		t.Fatal("EnsureTable with no columns: expected error")
	}
}

// TestFactoryRegistration resolves registered kinds and rejects unknown ones.
func TestFactoryRegistration(t *testing.T) {
	Register("fake", func(ctx context.Context, cfg Config) (Repository, error) {
		return &fakeRepo{}, nil
	})

	repo, err := New(context.Background(), Config{Kind: "fake"})
	if err != nil {
		t.Fatalf("New(fake): %v", err)
	}
	repo.Close()

	_, err = New(context.Background(), Config{Kind: "mainframe"})
	if err == nil || !strings.Contains(err.Error(), "mainframe") {
		t.Fatalf("New(mainframe) error = %v, want unknown-kind error", err)
	}
}
