package cnpv

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kshedden/datareader"
)

// csvStatRead is a StatRead used by tests in place of the Stata
// decoder.  It reads a CSV file with a header row, inferring column
// types the same way the decoder would (numbers as float64).
func csvStatRead(r io.ReadSeeker) ([]*datareader.Series, error) {
	rdr := datareader.NewCSVReader(r)
	rdr.HasHeader = true
	return rdr.Read(-1)
}

func makeSeries(t *testing.T, name string, data interface{}, missing []bool) *datareader.Series {
	t.Helper()
	s, err := datareader.NewSeries(name, data, missing)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func makeTable(t *testing.T, cols ...*datareader.Series) *Table {
	t.Helper()
	tbl, err := NewTable(cols)
	if err != nil {
		t.Fatal(err)
	}
	return tbl
}

type zipEntry struct {
	name string
	data []byte
}

func zipBytes(t *testing.T, entries []zipEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write(e.data); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	return buf.Bytes()
}

func writeZipFile(t *testing.T, path string, entries []zipEntry) {
	t.Helper()
	if err := os.WriteFile(path, zipBytes(t, entries), 0o644); err != nil {
		t.Fatal(err)
	}
}

// mkdirJoin creates dir and returns the path of name inside it.
func mkdirJoin(t *testing.T, dir, name string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	return filepath.Join(dir, name)
}

// The filename code and test column for each record type's data file.
var testFileCodes = map[RecordType]string{
	Dwellings:    "1VIV",
	Households:   "2HOG",
	Deaths:       "3FALL",
	Persons:      "5PER",
	Georeference: "MGN",
}

var testColumns = map[RecordType]string{
	Dwellings:    "estrato",
	Households:   "h_nro_cuartos",
	Deaths:       "causa",
	Persons:      "p_edad",
	Georeference: "u_dpto",
}

// writeTerritoryArchive builds a complete territory archive at path:
// one nested dta.zip per record type, each holding a single-column data
// file with the given values.
func writeTerritoryArchive(t *testing.T, path string, values map[RecordType][]string) {
	t.Helper()

	var entries []zipEntry
	for _, rt := range RecordTypes {
		text := testColumns[rt] + "\n" + strings.Join(values[rt], "\n") + "\n"
		inner := zipBytes(t, []zipEntry{
			{fmt.Sprintf("CNPV2018_%s_A2_05.DTA", testFileCodes[rt]), []byte(text)},
		})
		entries = append(entries, zipEntry{
			fmt.Sprintf("CNPV2018_%s_A2_05_DTA.zip", testFileCodes[rt]), inner,
		})
	}

	writeZipFile(t, path, entries)
}

// oneRowTerritory returns single-row column values for every record type.
func oneRowTerritory(v string) map[RecordType][]string {
	values := make(map[RecordType][]string)
	for _, rt := range RecordTypes {
		values[rt] = []string{v}
	}
	return values
}

func checkInt64Column(t *testing.T, tbl *Table, name string, want []int64) {
	t.Helper()

	c := tbl.Column(name)
	if c == nil {
		t.Fatalf("no column %q, have %v", name, tbl.ColumnNames())
	}
	data, ok := c.Data().([]int64)
	if !ok {
		t.Fatalf("column %q holds %T, want []int64", name, c.Data())
	}
	if len(data) != len(want) {
		t.Fatalf("column %q has %d rows, want %d", name, len(data), len(want))
	}
	for i := range want {
		if data[i] != want[i] {
			t.Errorf("column %q row %d: got %d, want %d", name, i, data[i], want[i])
		}
	}
}

func checkStringColumn(t *testing.T, tbl *Table, name string, want []string) {
	t.Helper()

	c := tbl.Column(name)
	if c == nil {
		t.Fatalf("no column %q, have %v", name, tbl.ColumnNames())
	}
	data, ok := c.Data().([]string)
	if !ok {
		t.Fatalf("column %q holds %T, want []string", name, c.Data())
	}
	if len(data) != len(want) {
		t.Fatalf("column %q has %d rows, want %d", name, len(data), len(want))
	}
	for i := range want {
		if data[i] != want[i] {
			t.Errorf("column %q row %d: got %q, want %q", name, i, data[i], want[i])
		}
	}
}
