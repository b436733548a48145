package table

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

// TestReadStripsBOMAndSkipsBadRows checks header BOM handling and the
// skip-and-count behavior for malformed body rows.
func TestReadStripsBOMAndSkipsBadRows(t *testing.T) {
	t.Parallel()

	in := "\ufeffid,date\n" +
		"1,2023/7/11\n" +
		"2,45118,extra\n" + // wrong width, skipped
		"3,bogus\n"

	tbl, skipped, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !reflect.DeepEqual(tbl.Columns, []string{"id", "date"}) {
		t.Fatalf("columns = %v", tbl.Columns)
	}
	if skipped != 1 {
		t.Fatalf("skipped = %d, want 1", skipped)
	}
	want := [][]string{{"1", "2023/7/11"}, {"3", "bogus"}}
	if !reflect.DeepEqual(tbl.Rows, want) {
		t.Fatalf("rows = %v, want %v", tbl.Rows, want)
	}
}

// TestReadRequiresHeader verifies empty input is an error, not an empty table.
func TestReadRequiresHeader(t *testing.T) {
	t.Parallel()

	if _, _, err := Read(strings.NewReader("")); err == nil {
		t.Fatal("Read of empty input: expected error")
	}
}

// TestWriteRoundTrip serializes a table and reads it back unchanged.
func TestWriteRoundTrip(t *testing.T) {
	t.Parallel()

	tbl := &Table{
		Columns: []string{"id", "note"},
		Rows: [][]string{
			{"1", "plain"},
			{"2", "comma, inside"},
			{"3", "quote \" inside"},
		},
	}

	var buf bytes.Buffer
	if err := Write(&buf, tbl); err != nil {
		t.Fatalf("Write: %v", err)
	}
	back, skipped, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read back: %v", err)
	}
	if skipped != 0 {
		t.Fatalf("skipped = %d, want 0", skipped)
	}
	if !reflect.DeepEqual(back.Columns, tbl.Columns) || !reflect.DeepEqual(back.Rows, tbl.Rows) {
		t.Fatalf("round trip mismatch: %v %v", back.Columns, back.Rows)
	}
}
