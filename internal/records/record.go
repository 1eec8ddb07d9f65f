// Package records reads label data from CSV files and filters out rows that
// lack the fields every label needs.
package records

import "sort"

// Record is one data row keyed by header name. Values are kept exactly as read.
type Record struct {
	// Position is the 1-based index of the row among all parsed data rows.
	Position int
	// Line is the 1-based file line where the row starts.
	Line int

	fields map[string]string
}

// NewRecord builds a record from a copy of fields.
func NewRecord(position, line int, fields map[string]string) Record {
	copied := make(map[string]string, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	return Record{Position: position, Line: line, fields: copied}
}

// Get returns the raw value of a column and whether the row has it.
func (r Record) Get(name string) (string, bool) {
	v, ok := r.fields[name]
	return v, ok
}

// Value returns the raw value of a column, or "" when absent.
func (r Record) Value(name string) string {
	return r.fields[name]
}

// Columns returns the column names present in the row, sorted.
func (r Record) Columns() []string {
	names := make([]string, 0, len(r.fields))
	for k := range r.fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of columns present in the row.
func (r Record) Len() int {
	return len(r.fields)
}
