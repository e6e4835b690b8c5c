package normalize

import (
	"fmt"
	"strings"
)

// SchemaError reports required columns missing from an uploaded table.
// The normalization stage that raises it produces no output; the caller keeps
// or discards any previously loaded model.
type SchemaError struct {
	Table   string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s table: missing required columns: %s", e.Table, strings.Join(e.Missing, ", "))
}

// DateError reports a cell that could not be parsed as a calendar date.
// A single bad date fails the whole normalization call; there is no
// per-row tolerance.
type DateError struct {
	Table  string
	Column string
	Row    int
	Value  string
	Err    error
}

func (e *DateError) Error() string {
	return fmt.Sprintf("%s table: row %d, column %q: %v", e.Table, e.Row, e.Column, e.Err)
}

func (e *DateError) Unwrap() error { return e.Err }
