package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\uFEFF"

// skipLogLimit caps per-file "skipping row" log lines so a badly mangled
// input cannot flood the log.
const skipLogLimit = 50

// Read consumes CSV from r and returns the table plus the number of body
// rows skipped because they could not be parsed or had the wrong width.
// The header row is required; cells keep their raw string values.
func Read(r io.Reader) (*Table, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	t := New(header)
	skipped := 0
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if skipped < skipLogLimit {
				log.Printf("skipping row %d: %v", line, err)
			}
			skipped++
			continue
		}
		if len(row) != len(header) {
			if skipped < skipLogLimit {
				log.Printf("skipping row %d: expected %d fields, got %d", line, len(header), len(row))
			}
			skipped++
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t, skipped, nil
}

// ReadFile reads a CSV file into a table.
func ReadFile(path string) (*Table, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Write serializes t as CSV, header first.
func Write(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
