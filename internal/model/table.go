package model

import (
	"sort"
	"strings"
)

// Table is an immutable ordered collection of records
type Table struct {
	schema *Schema
	rows   []*Record
}

// NewTable wraps records that share a schema. The slice is copied.
func NewTable(schema *Schema, rows []*Record) *Table {
	if schema == nil {
		schema = NewSchema(nil)
	}
	own := make([]*Record, len(rows))
	copy(own, rows)
	return &Table{schema: schema, rows: own}
}

// Len returns the number of records
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Schema returns the table schema
func (t *Table) Schema() *Schema {
	return t.schema
}

// Header returns the column names
func (t *Table) Header() []string {
	return t.schema.Columns()
}

// Rows returns the records in order. The returned slice may be modified freely.
func (t *Table) Rows() []*Record {
	if t == nil {
		return nil
	}
	out := make([]*Record, len(t.rows))
	copy(out, t.rows)
	return out
}

// Filter returns a new table with the records for which keep returns true
func (t *Table) Filter(keep func(*Record) bool) *Table {
	kept := make([]*Record, 0, len(t.rows))
	for _, r := range t.rows {
		if keep(r) {
			kept = append(kept, r)
		}
	}
	return &Table{schema: t.schema, rows: kept}
}

// Empty returns a table with the same schema and no records
func (t *Table) Empty() *Table {
	return &Table{schema: t.schema}
}

// Distinct returns the non-empty values of a field in first-appearance order
func (t *Table) Distinct(f Field) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range t.rows {
		v := r.Value(f)
		if strings.TrimSpace(v) == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// SortedDistinct returns the non-empty values of a field sorted ascending
func (t *Table) SortedDistinct(f Field) []string {
	out := t.Distinct(f)
	sort.Strings(out)
	return out
}

// Count returns the number of records whose field equals value
func (t *Table) Count(f Field, value string) int {
	n := 0
	for _, r := range t.rows {
		if r.Value(f) == value {
			n++
		}
	}
	return n
}

// Counts returns per-value record counts of a field, empty cells excluded
func (t *Table) Counts(f Field) map[string]int {
	out := make(map[string]int)
	for _, r := range t.rows {
		v := r.Value(f)
		if strings.TrimSpace(v) == "" {
			continue
		}
		out[v]++
	}
	return out
}

// CountNull returns the number of records missing a value for the field
func (t *Table) CountNull(f Field) int {
	n := 0
	for _, r := range t.rows {
		if r.IsNull(f) {
			n++
		}
	}
	return n
}

// MinMax returns the bounds of a numeric field over non-null values
func (t *Table) MinMax(f Field) (lo, hi float64, ok bool) {
	for _, r := range t.rows {
		n := r.Number(f)
		if !n.Valid {
			continue
		}
		if !ok {
			lo, hi, ok = n.Value, n.Value, true
			continue
		}
		if n.Value < lo {
			lo = n.Value
		}
		if n.Value > hi {
			hi = n.Value
		}
	}
	return lo, hi, ok
}

// Numbers returns the non-null values of a numeric field in record order
func (t *Table) Numbers(f Field) []float64 {
	out := make([]float64, 0, len(t.rows))
	for _, r := range t.rows {
		if n := r.Number(f); n.Valid {
			out = append(out, n.Value)
		}
	}
	return out
}

// IDs returns the record IDs in order
func (t *Table) IDs() []int {
	out := make([]int, len(t.rows))
	for i, r := range t.rows {
		out[i] = r.ID
	}
	return out
}

// Contains reports whether the record with the given base-table ID is present
func (t *Table) Contains(id int) bool {
	for _, r := range t.rows {
		if r.ID == id {
			return true
		}
	}
	return false
}

// TableBuilder assembles a table row by row
type TableBuilder struct {
	schema *Schema
	rows   []*Record
}

// NewTableBuilder starts a table with the given header
func NewTableBuilder(columns ...string) *TableBuilder {
	return &TableBuilder{schema: NewSchema(columns)}
}

// Schema returns the schema records are built against
func (b *TableBuilder) Schema() *Schema {
	return b.schema
}

// AddRow appends a record from cells in header order. Short rows are padded
// and long rows truncated to the header width.
func (b *TableBuilder) AddRow(cells []string) *Record {
	width := len(b.schema.columns)
	own := make([]string, width)
	copy(own, cells)

	r := &Record{
		ID:      len(b.rows),
		cells:   own,
		numbers: make(map[Field]NullFloat, len(NumericFields)),
		schema:  b.schema,
	}
	for _, f := range NumericFields {
		if i, ok := b.schema.Index(f); ok {
			r.numbers[f] = ParseNullFloat(own[i])
		}
	}
	b.rows = append(b.rows, r)
	return r
}

// Add appends a record from field values. Fields outside the header are ignored.
func (b *TableBuilder) Add(values map[Field]string) *Record {
	cells := make([]string, len(b.schema.columns))
	for f, v := range values {
		if i, ok := b.schema.Index(f); ok {
			cells[i] = v
		}
	}
	return b.AddRow(cells)
}

// Build returns the finished table
func (b *TableBuilder) Build() *Table {
	return NewTable(b.schema, b.rows)
}
