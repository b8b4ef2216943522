// Package record defines the flat, schema-projected rows that flow from the
// normalizers into the upsert executor, plus the loosely typed tables returned
// by the data provider.
package record

import (
	"math"
	"reflect"
	"sort"
	"strings"
)

// Record is a flat column -> value mapping ready for persistence.
type Record map[string]any

// Columns returns the record's column names in sorted order.
func (r Record) Columns() []string {
	cols := make([]string, 0, len(r))
	for k := range r {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

// ColumnSet is a snapshot of the columns currently defined on a table.
type ColumnSet map[string]struct{}

// NewColumnSet builds a ColumnSet from column names.
func NewColumnSet(cols ...string) ColumnSet {
	s := make(ColumnSet, len(cols))
	for _, c := range cols {
		s[c] = struct{}{}
	}
	return s
}

// Has reports whether the column exists.
func (s ColumnSet) Has(col string) bool {
	_, ok := s[col]
	return ok
}

// Len returns the number of columns.
func (s ColumnSet) Len() int { return len(s) }

// Sorted returns the column names in sorted order.
func (s ColumnSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Table is a batch of rows as returned by the provider. Columns keeps the
// provider's column order, Index holds one label per row (the bar date for
// price history) and Rows holds the cell values keyed by column name.
type Table struct {
	Columns []string
	Index   []any
	Rows    []map[string]any
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.Rows) }

// Empty reports whether the table has no rows.
func (t Table) Empty() bool { return len(t.Rows) == 0 }

// HasColumn reports whether the table declares the column.
func (t Table) HasColumn(col string) bool {
	for _, c := range t.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// Project keeps only the entries of raw whose key is present in the live
// schema. The input is not modified.
func Project(raw Record, schema ColumnSet) Record {
	out := make(Record, len(raw))
	for k, v := range raw {
		if schema.Has(k) {
			out[k] = v
		}
	}
	return out
}

// IsMissing reports whether v carries no value: nil, a nil pointer or NaN.
func IsMissing(v any) bool {
	if v == nil {
		return true
	}
	switch t := v.(type) {
	case float64:
		return math.IsNaN(t)
	case float32:
		return math.IsNaN(float64(t))
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// IsComposite reports whether v is shaped as a mapping, sequence or set and
// therefore cannot be stored in a flat relational row. Byte slices are scalars.
func IsComposite(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.([]byte); ok {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return true
	}
	return false
}

// NormalizeTicker trims and upper-cases a ticker symbol so that "aapl" and
// "AAPL" land on the same natural key.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
