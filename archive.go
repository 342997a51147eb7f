package cnpv

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/kshedden/datareader"
)

// Inner archive entries carrying statistical data end with this suffix,
// compared case-insensitively.
const dataArchiveSuffix = "dta.zip"

// An ArchiveFormatError indicates a territory archive that cannot be
// opened or lacks the expected nested structure.
type ArchiveFormatError struct {
	Path string
	Err  error
}

func (e *ArchiveFormatError) Error() string {
	return fmt.Sprintf("archive %s: %v", e.Path, e.Err)
}

func (e *ArchiveFormatError) Unwrap() error {
	return e.Err
}

// A DecodeError indicates that the statistical decoder rejected a data
// file's bytes.
type DecodeError struct {
	File string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.File, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// A StatRead function decodes one statistical data file into columns.
type StatRead func(r io.ReadSeeker) ([]*datareader.Series, error)

// ReadStataData decodes a Stata dta stream into columns using the
// datareader Stata reader.
func ReadStataData(r io.ReadSeeker) ([]*datareader.Series, error) {

	stata, err := datareader.NewStataReader(r)
	if err != nil {
		return nil, err
	}

	return stata.Read(-1)
}

// A Decoder turns territory archives into per-record-type tables.
type Decoder struct {

	// ReadStat decodes a single data file.  If nil, ReadStataData
	// is used.
	ReadStat StatRead
}

func (dec *Decoder) readStat(r io.ReadSeeker) ([]*datareader.Series, error) {
	if dec.ReadStat != nil {
		return dec.ReadStat(r)
	}
	return ReadStataData(r)
}

// DecodeTerritoryArchive reads one territory archive and returns its
// tables keyed by record type.  The archive holds one nested archive
// per record type; each nested archive holds a single binary data
// file whose name encodes the record type.  Every decoded table is
// cleaned before it is returned.  A data file whose name does not map
// to a record type aborts the whole decode.
func (dec *Decoder) DecodeTerritoryArchive(path string) (map[RecordType]*Table, error) {

	za, err := zip.OpenReader(path)
	if err != nil {
		return nil, &ArchiveFormatError{Path: path, Err: err}
	}
	defer za.Close()

	tables := make(map[RecordType]*Table)

	for _, entry := range za.File {
		if !strings.HasSuffix(strings.ToLower(entry.Name), dataArchiveSuffix) {
			continue
		}

		buf, err := readZipEntry(entry)
		if err != nil {
			return nil, &ArchiveFormatError{Path: path, Err: err}
		}

		inner, err := zip.NewReader(bytes.NewReader(buf), int64(len(buf)))
		if err != nil {
			err = fmt.Errorf("%s: %v", entry.Name, err)
			return nil, &ArchiveFormatError{Path: path, Err: err}
		}

		for _, df := range inner.File {

			rt, err := MapDataframeName(df.Name)
			if err != nil {
				return nil, err
			}

			data, err := readZipEntry(df)
			if err != nil {
				err = fmt.Errorf("%s: %v", entry.Name, err)
				return nil, &ArchiveFormatError{Path: path, Err: err}
			}

			cols, err := dec.readStat(bytes.NewReader(data))
			if err != nil {
				return nil, &DecodeError{File: path + ": " + df.Name, Err: err}
			}

			tbl, err := NewTable(cols)
			if err != nil {
				return nil, &DecodeError{File: path + ": " + df.Name, Err: err}
			}

			tbl, err = CleanTable(tbl)
			if err != nil {
				return nil, &DecodeError{File: path + ": " + df.Name, Err: err}
			}

			tables[rt] = tbl
		}
	}

	return tables, nil
}

// readZipEntry returns the full contents of one zip archive entry.
func readZipEntry(f *zip.File) ([]byte, error) {

	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return io.ReadAll(rc)
}
