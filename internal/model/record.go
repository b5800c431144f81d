package model

import (
	"math"
	"strconv"
	"strings"
)

// NullFloat is a numeric cell that may be absent
type NullFloat struct {
	Value float64
	Valid bool
}

// nullTokens are cell values treated as missing in addition to the empty string.
var nullTokens = map[string]bool{
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"none": true,
	"null": true,
}

// ParseNullFloat coerces a raw cell into a number. Anything that is not a
// finite number becomes null.
func ParseNullFloat(raw string) NullFloat {
	s := strings.TrimSpace(raw)
	if s == "" || nullTokens[strings.ToLower(s)] {
		return NullFloat{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return NullFloat{}
	}
	return NullFloat{Value: v, Valid: true}
}

// Schema maps column names to cell positions
type Schema struct {
	columns []string
	index   map[string]int
}

// NewSchema builds a schema from header names, applying column aliases.
func NewSchema(columns []string) *Schema {
	s := &Schema{
		columns: make([]string, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		name := CanonicalColumn(strings.TrimSpace(c))
		s.columns[i] = name
		if _, dup := s.index[name]; !dup {
			s.index[name] = i
		}
	}
	return s
}

// Columns returns a copy of the header names
func (s *Schema) Columns() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.columns))
	copy(out, s.columns)
	return out
}

// Has reports whether the schema contains the field
func (s *Schema) Has(f Field) bool {
	_, ok := s.Index(f)
	return ok
}

// Index returns the cell position of a field
func (s *Schema) Index(f Field) (int, bool) {
	if s == nil {
		return 0, false
	}
	i, ok := s.index[string(f)]
	return i, ok
}

// Record is one genome assembly row
type Record struct {
	ID      int // row position in the base table
	cells   []string
	numbers map[Field]NullFloat
	schema  *Schema
}

// Value returns the raw cell of a field, or "" when the column is absent
func (r *Record) Value(f Field) string {
	i, ok := r.schema.Index(f)
	if !ok || i >= len(r.cells) {
		return ""
	}
	return r.cells[i]
}

// Number returns the parsed numeric cell of a field
func (r *Record) Number(f Field) NullFloat {
	if n, ok := r.numbers[f]; ok {
		return n
	}
	return ParseNullFloat(r.Value(f))
}

// IsNull reports whether the field is missing for this record
func (r *Record) IsNull(f Field) bool {
	if IsNumeric(f) {
		return !r.Number(f).Valid
	}
	return strings.TrimSpace(r.Value(f)) == ""
}

// Cells returns a copy of the raw cells in header order
func (r *Record) Cells() []string {
	out := make([]string, len(r.cells))
	copy(out, r.cells)
	return out
}
