// Package tabular reads CSV exports into an in-memory header-indexed table.
// It is schema-agnostic; column validation belongs to the normalizers.
package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
)

// Table holds a parsed CSV: one header row and zero or more data rows.
type Table struct {
	Headers []string
	Rows    [][]string

	index map[string]int
}

// Read parses CSV data from r. The first record is the header; headers are
// trimmed of surrounding whitespace. Rows with a different field count than
// the header are a parse error.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read csv: no header row")
	}
	headers := make([]string, len(records[0]))
	index := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		h = strings.TrimSpace(h)
		headers[i] = h
		index[h] = i
	}
	return &Table{Headers: headers, Rows: records[1:], index: index}, nil
}

// New builds a Table directly from a header and rows. Intended for tests and
// callers that already hold tabular data.
func New(headers []string, rows [][]string) *Table {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[h] = i
	}
	return &Table{Headers: headers, Rows: rows, index: index}
}

// HasColumn reports whether the table contains the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Missing returns the subset of names not present in the table header,
// in the order given.
func (t *Table) Missing(names ...string) []string {
	var out []string
	for _, n := range names {
		if !t.HasColumn(n) {
			out = append(out, n)
		}
	}
	return out
}

// Get returns the cell at the given row for the named column. It returns the
// empty string when the column does not exist.
func (t *Table) Get(row int, column string) string {
	i, ok := t.index[column]
	if !ok || i >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][i]
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// dateLayouts are tried in order when parsing a date cell.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/02/2006",
	"2006/01/02",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// ParseDate parses a calendar date cell, accepting the common export formats,
// and truncates the result to midnight UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}
