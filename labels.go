package cnpv

import (
	"strconv"

	"github.com/kshedden/datareader"

	"github.com/bacata55/cnpv-2018/cspro"
)

// ApplyLabels rewrites encoded categorical values into their dictionary
// labels.  For every record type except the georeference frame, each
// column with a value-label mapping becomes a string column in which
// labeled values are replaced and unlabeled values keep their printed
// form.  Columns without a mapping, and the georeference table as a
// whole, pass through untouched.  Returns a new mapping with the same
// five keys.
func ApplyLabels(tables map[RecordType]*Table, dict *cspro.Dictionary) (map[RecordType]*Table, error) {

	out := make(map[RecordType]*Table, len(tables))

	for rt, tbl := range tables {
		if rt == Georeference {
			out[rt] = tbl
			continue
		}

		labels, err := GetValueLabels(dict, rt)
		if err != nil {
			return nil, err
		}

		lt, err := replaceLabels(tbl, labels)
		if err != nil {
			return nil, err
		}
		out[rt] = lt
	}

	return out, nil
}

// replaceLabels applies per-column value-label mappings to a table.
func replaceLabels(t *Table, labels map[string]map[string]string) (*Table, error) {

	cols := make([]*datareader.Series, t.NumCol())
	for j, c := range t.Columns() {

		vmap := labels[c.Name]
		if vmap == nil {
			cols[j] = c
			continue
		}

		s, err := labelSeries(c, vmap)
		if err != nil {
			return nil, err
		}
		cols[j] = s
	}

	return NewTable(cols)
}

// labelSeries rewrites one column through a value-label mapping.  The
// result is a string column; values with no label keep their printed
// form and missing values stay missing.
func labelSeries(c *datareader.Series, vmap map[string]string) (*datareader.Series, error) {

	miss := c.Missing()
	n := c.Length()
	vals := make([]string, n)

	format := func(i int, key string) {
		if lbl, ok := vmap[key]; ok {
			vals[i] = lbl
		} else {
			vals[i] = key
		}
	}

	// The Stata decoder returns integer columns at their stored
	// widths, so every width must be matched here, not just the
	// int64 that cleaning produces from floats.
	switch data := c.Data().(type) {
	case []int64:
		for i, v := range data {
			if miss == nil || !miss[i] {
				format(i, strconv.FormatInt(v, 10))
			}
		}
	case []int32:
		for i, v := range data {
			if miss == nil || !miss[i] {
				format(i, strconv.FormatInt(int64(v), 10))
			}
		}
	case []int16:
		for i, v := range data {
			if miss == nil || !miss[i] {
				format(i, strconv.FormatInt(int64(v), 10))
			}
		}
	case []int8:
		for i, v := range data {
			if miss == nil || !miss[i] {
				format(i, strconv.FormatInt(int64(v), 10))
			}
		}
	case []uint64:
		for i, v := range data {
			if miss == nil || !miss[i] {
				format(i, strconv.FormatUint(v, 10))
			}
		}
	case []float64:
		for i, v := range data {
			if miss == nil || !miss[i] {
				format(i, strconv.FormatFloat(v, 'f', -1, 64))
			}
		}
	case []float32:
		for i, v := range data {
			if miss == nil || !miss[i] {
				format(i, strconv.FormatFloat(float64(v), 'f', -1, 32))
			}
		}
	case []string:
		for i, v := range data {
			if miss == nil || !miss[i] {
				format(i, v)
			}
		}
	default:
		return c, nil
	}

	return datareader.NewSeries(c.Name, vals, miss)
}

// CreateProcessedTables runs the whole pipeline: aggregate every
// territory archive under folder into unified tables, read the data
// dictionary archive, and substitute value labels.
func (dec *Decoder) CreateProcessedTables(folder, dictPath string) (map[RecordType]*Table, error) {

	tables, err := dec.ReadDataFolder(folder)
	if err != nil {
		return nil, err
	}

	dict, err := ReadCSProDict(dictPath)
	if err != nil {
		return nil, err
	}

	return ApplyLabels(tables, dict)
}
