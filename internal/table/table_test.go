package table

import (
	"reflect"
	"testing"
)

func sampleTable() *Table {
	return &Table{
		Columns: []string{"id", "date"},
		Rows: [][]string{
			{"1", "2023/7/11"},
			{"2", "45118"},
			{"3", "bogus"},
		},
	}
}

// TestSetColumn overwrites a column in place and rejects misaligned input.
func TestSetColumn(t *testing.T) {
	t.Parallel()

	tbl := sampleTable()
	if err := tbl.SetColumn(1, []string{"a", "b", "c"}); err != nil {
		t.Fatalf("SetColumn: %v", err)
	}
	if got := tbl.Column(1); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("column after SetColumn = %v", got)
	}
	if err := tbl.SetColumn(1, []string{"too", "short"}); err == nil {
		t.Fatal("SetColumn with misaligned values: expected error")
	}
}

// TestAddColumn appends a derived column to header and every row.
func TestAddColumn(t *testing.T) {
	t.Parallel()

	tbl := sampleTable()
	if err := tbl.AddColumn("date_cleaned", []string{"x", "y", "z"}); err != nil {
		t.Fatalf("AddColumn: %v", err)
	}
	if !reflect.DeepEqual(tbl.Columns, []string{"id", "date", "date_cleaned"}) {
		t.Fatalf("columns = %v", tbl.Columns)
	}
	if !reflect.DeepEqual(tbl.Rows[2], []string{"3", "bogus", "z"}) {
		t.Fatalf("row 2 = %v", tbl.Rows[2])
	}
	if err := tbl.AddColumn("bad", []string{"only one"}); err == nil {
		t.Fatal("AddColumn with misaligned values: expected error")
	}
}

// TestFilter keeps marked rows in order and reports the removed count.
func TestFilter(t *testing.T) {
	t.Parallel()

	tbl := sampleTable()
	removed := tbl.Filter([]bool{true, false, true})
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	want := [][]string{{"1", "2023/7/11"}, {"3", "bogus"}}
	if !reflect.DeepEqual(tbl.Rows, want) {
		t.Fatalf("rows after Filter = %v, want %v", tbl.Rows, want)
	}

	// A misaligned mask is a no-op.
	if removed := tbl.Filter([]bool{true}); removed != 0 {
		t.Fatalf("misaligned Filter removed %d rows", removed)
	}
}

// TestColumnIndex is literal matching only.
func TestColumnIndex(t *testing.T) {
	t.Parallel()

	tbl := sampleTable()
	if got := tbl.ColumnIndex("date"); got != 1 {
		t.Fatalf("ColumnIndex(date) = %d, want 1", got)
	}
	if got := tbl.ColumnIndex("DATE"); got != -1 {
		t.Fatalf("ColumnIndex(DATE) = %d, want -1", got)
	}
}
