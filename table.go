package cnpv

import (
	"errors"
	"fmt"
	"time"

	"github.com/kshedden/datareader"
)

// ErrSchemaMismatch indicates that two tables being concatenated do not
// share the same column layout.
var ErrSchemaMismatch = errors.New("table schemas do not match")

// A Table is a column-oriented data set.  Each column is a datareader
// Series holding a typed value slice and an optional missing-value
// mask.  All columns have the same length.
type Table struct {
	columns []*datareader.Series
}

// NewTable returns a Table over the given columns.  The column slice is
// not copied.  All columns must have the same length and distinct names.
func NewTable(columns []*datareader.Series) (*Table, error) {

	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if seen[c.Name] {
			return nil, fmt.Errorf("duplicate column %q", c.Name)
		}
		seen[c.Name] = true
		if c.Length() != columns[0].Length() {
			return nil, fmt.Errorf("column %q has length %d, want %d",
				c.Name, c.Length(), columns[0].Length())
		}
	}

	return &Table{columns: columns}, nil
}

// NumCol returns the number of columns in the table.
func (t *Table) NumCol() int {
	return len(t.columns)
}

// NumRow returns the number of rows in the table.
func (t *Table) NumRow() int {
	if len(t.columns) == 0 {
		return 0
	}
	return t.columns[0].Length()
}

// Columns returns the table's columns in order.
func (t *Table) Columns() []*datareader.Series {
	return t.columns
}

// ColumnNames returns the column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for j, c := range t.columns {
		names[j] = c.Name
	}
	return names
}

// Column returns the column with the given name, or nil if the table
// has no such column.
func (t *Table) Column(name string) *datareader.Series {
	for _, c := range t.columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Concat returns a new table holding the rows of a followed by the rows
// of b.  An empty table concatenates with anything; otherwise the two
// tables must have identical column names, in order, with matching
// column types, or Concat fails with ErrSchemaMismatch.
func Concat(a, b *Table) (*Table, error) {

	if a.NumCol() == 0 {
		cols := make([]*datareader.Series, len(b.columns))
		copy(cols, b.columns)
		return &Table{columns: cols}, nil
	}
	if b.NumCol() == 0 {
		cols := make([]*datareader.Series, len(a.columns))
		copy(cols, a.columns)
		return &Table{columns: cols}, nil
	}

	if a.NumCol() != b.NumCol() {
		return nil, fmt.Errorf("%w: %d columns vs %d columns",
			ErrSchemaMismatch, a.NumCol(), b.NumCol())
	}

	cols := make([]*datareader.Series, len(a.columns))
	for j, ca := range a.columns {
		cb := b.columns[j]
		if ca.Name != cb.Name {
			return nil, fmt.Errorf("%w: column %d is %q vs %q",
				ErrSchemaMismatch, j, ca.Name, cb.Name)
		}
		c, err := appendSeries(ca, cb)
		if err != nil {
			return nil, err
		}
		cols[j] = c
	}

	return &Table{columns: cols}, nil
}

// concatData appends two value slices and merges their missing masks.
func concatData[T any](a, b []T, amiss, bmiss []bool) ([]T, []bool) {

	data := make([]T, 0, len(a)+len(b))
	data = append(data, a...)
	data = append(data, b...)

	if amiss == nil && bmiss == nil {
		return data, nil
	}

	miss := make([]bool, len(a)+len(b))
	if amiss != nil {
		copy(miss, amiss)
	}
	if bmiss != nil {
		copy(miss[len(a):], bmiss)
	}

	return data, miss
}

// appendSeries returns a new Series holding the values of a followed by
// the values of b.  The two series must hold the same data type.
func appendSeries(a, b *datareader.Series) (*datareader.Series, error) {

	mismatch := func() error {
		return fmt.Errorf("%w: column %q holds %T vs %T",
			ErrSchemaMismatch, a.Name, a.Data(), b.Data())
	}

	switch u := a.Data().(type) {
	case []float64:
		v, ok := b.Data().([]float64)
		if !ok {
			return nil, mismatch()
		}
		data, miss := concatData(u, v, a.Missing(), b.Missing())
		return datareader.NewSeries(a.Name, data, miss)
	case []float32:
		v, ok := b.Data().([]float32)
		if !ok {
			return nil, mismatch()
		}
		data, miss := concatData(u, v, a.Missing(), b.Missing())
		return datareader.NewSeries(a.Name, data, miss)
	case []int64:
		v, ok := b.Data().([]int64)
		if !ok {
			return nil, mismatch()
		}
		data, miss := concatData(u, v, a.Missing(), b.Missing())
		return datareader.NewSeries(a.Name, data, miss)
	case []int32:
		v, ok := b.Data().([]int32)
		if !ok {
			return nil, mismatch()
		}
		data, miss := concatData(u, v, a.Missing(), b.Missing())
		return datareader.NewSeries(a.Name, data, miss)
	case []int16:
		v, ok := b.Data().([]int16)
		if !ok {
			return nil, mismatch()
		}
		data, miss := concatData(u, v, a.Missing(), b.Missing())
		return datareader.NewSeries(a.Name, data, miss)
	case []int8:
		v, ok := b.Data().([]int8)
		if !ok {
			return nil, mismatch()
		}
		data, miss := concatData(u, v, a.Missing(), b.Missing())
		return datareader.NewSeries(a.Name, data, miss)
	case []uint64:
		v, ok := b.Data().([]uint64)
		if !ok {
			return nil, mismatch()
		}
		data, miss := concatData(u, v, a.Missing(), b.Missing())
		return datareader.NewSeries(a.Name, data, miss)
	case []string:
		v, ok := b.Data().([]string)
		if !ok {
			return nil, mismatch()
		}
		data, miss := concatData(u, v, a.Missing(), b.Missing())
		return datareader.NewSeries(a.Name, data, miss)
	case []time.Time:
		v, ok := b.Data().([]time.Time)
		if !ok {
			return nil, mismatch()
		}
		data, miss := concatData(u, v, a.Missing(), b.Missing())
		return datareader.NewSeries(a.Name, data, miss)
	}

	return nil, fmt.Errorf("unknown data type %T in column %q", a.Data(), a.Name)
}
