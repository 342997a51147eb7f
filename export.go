package cnpv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/kshedden/datareader"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

// cellFormatter returns a function producing the text form of one cell
// of the column.  Missing values format as the empty string.
func cellFormatter(c *datareader.Series) (func(int) string, error) {

	miss := c.Missing()
	missing := func(i int) bool {
		return miss != nil && miss[i]
	}

	switch data := c.Data().(type) {
	case []int64:
		return func(i int) string {
			if missing(i) {
				return ""
			}
			return strconv.FormatInt(data[i], 10)
		}, nil
	case []int32:
		return func(i int) string {
			if missing(i) {
				return ""
			}
			return strconv.FormatInt(int64(data[i]), 10)
		}, nil
	case []int16:
		return func(i int) string {
			if missing(i) {
				return ""
			}
			return strconv.FormatInt(int64(data[i]), 10)
		}, nil
	case []int8:
		return func(i int) string {
			if missing(i) {
				return ""
			}
			return strconv.FormatInt(int64(data[i]), 10)
		}, nil
	case []uint64:
		return func(i int) string {
			if missing(i) {
				return ""
			}
			return strconv.FormatUint(data[i], 10)
		}, nil
	case []float64:
		return func(i int) string {
			if missing(i) {
				return ""
			}
			return strconv.FormatFloat(data[i], 'f', -1, 64)
		}, nil
	case []float32:
		return func(i int) string {
			if missing(i) {
				return ""
			}
			return strconv.FormatFloat(float64(data[i]), 'f', -1, 32)
		}, nil
	case []string:
		return func(i int) string {
			if missing(i) {
				return ""
			}
			return data[i]
		}, nil
	case []time.Time:
		return func(i int) string {
			if missing(i) {
				return ""
			}
			return data[i].UTC().Format("2006-01-02 15:04:05")
		}, nil
	}

	return nil, fmt.Errorf("unknown data type %T in column %q", c.Data(), c.Name)
}

// WriteCSV writes the table to w in CSV format, with a header row and
// missing values left empty.
func WriteCSV(t *Table, w io.Writer) error {

	cw := csv.NewWriter(w)

	if err := cw.Write(t.ColumnNames()); err != nil {
		return err
	}

	ncol := t.NumCol()
	cells := make([]func(int) string, ncol)
	for j, c := range t.Columns() {
		f, err := cellFormatter(c)
		if err != nil {
			return err
		}
		cells[j] = f
	}

	row := make([]string, ncol)
	for i := 0; i < t.NumRow(); i++ {
		for j := 0; j < ncol; j++ {
			row[j] = cells[j](i)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteParquet writes the table to a parquet file at the given path.
// Integer columns map to INT64, floating point columns to DOUBLE, and
// everything else to UTF8 byte arrays; all columns are optional so
// missing values are preserved as nulls.
func WriteParquet(t *Table, path string) error {

	ncol := t.NumCol()
	md := make([]string, ncol)
	cells := make([]func(int) string, ncol)

	for j, c := range t.Columns() {
		switch c.Data().(type) {
		case []int64, []int32, []int16, []int8, []uint64:
			md[j] = fmt.Sprintf("name=%s, type=INT64, repetitiontype=OPTIONAL", c.Name)
		case []float64, []float32:
			md[j] = fmt.Sprintf("name=%s, type=DOUBLE, repetitiontype=OPTIONAL", c.Name)
		default:
			md[j] = fmt.Sprintf("name=%s, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL", c.Name)
		}

		f, err := cellFormatter(c)
		if err != nil {
			return err
		}
		cells[j] = f
	}

	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	defer fw.Close()

	pw, err := writer.NewCSVWriter(md, fw, 1)
	if err != nil {
		return err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	missing := make([][]bool, ncol)
	for j, c := range t.Columns() {
		missing[j] = c.Missing()
	}

	rec := make([]*string, ncol)
	for i := 0; i < t.NumRow(); i++ {
		for j := 0; j < ncol; j++ {
			if missing[j] != nil && missing[j][i] {
				rec[j] = nil
				continue
			}
			v := cells[j](i)
			rec[j] = &v
		}
		if err := pw.WriteString(rec); err != nil {
			return err
		}
	}

	if err := pw.WriteStop(); err != nil {
		return err
	}

	return nil
}
