package cnpv

import (
	"strings"

	"github.com/kshedden/datareader"
)

// CleanTable normalizes a freshly decoded table: float64 columns are
// converted to int64 columns with missing values kept in the mask
// rather than coerced to a sentinel, and every column name is
// upper-cased to match the data dictionary.  Statistical decoders
// return integer-coded categorical fields as floats so that missing
// value markers fit; the conversion restores the integer semantics that
// label substitution matches on.  Returns a new table; CleanTable is
// idempotent.
func CleanTable(t *Table) (*Table, error) {

	cols := make([]*datareader.Series, t.NumCol())
	for j, c := range t.Columns() {

		name := strings.ToUpper(c.Name)

		data, ok := c.Data().([]float64)
		if !ok {
			if name == c.Name {
				cols[j] = c
				continue
			}
			s, err := datareader.NewSeries(name, c.Data(), c.Missing())
			if err != nil {
				return nil, err
			}
			cols[j] = s
			continue
		}

		miss := c.Missing()
		vals := make([]int64, len(data))
		for i, v := range data {
			if miss == nil || !miss[i] {
				vals[i] = int64(v)
			}
		}

		s, err := datareader.NewSeries(name, vals, miss)
		if err != nil {
			return nil, err
		}
		cols[j] = s
	}

	return NewTable(cols)
}
