package cnpv

import (
	"archive/zip"
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/bacata55/cnpv-2018/cspro"
)

// The fixed name of the dictionary definition file inside the
// dictionary archive.
const dictFileName = "Diccionario_datosCNPV.dcf"

// A DictionaryFormatError indicates a dictionary archive whose
// definition file is missing or cannot be parsed.
type DictionaryFormatError struct {
	Path string
	Err  error
}

func (e *DictionaryFormatError) Error() string {
	return fmt.Sprintf("dictionary %s: %v", e.Path, e.Err)
}

func (e *DictionaryFormatError) Unwrap() error {
	return e.Err
}

// ReadCSProDict reads the census data dictionary from its archive and
// parses it.  The archive must contain the definition file under its
// fixed name.
func ReadCSProDict(path string) (*cspro.Dictionary, error) {

	za, err := zip.OpenReader(path)
	if err != nil {
		return nil, &DictionaryFormatError{Path: path, Err: err}
	}
	defer za.Close()

	var entry *zip.File
	for _, f := range za.File {
		if f.Name == dictFileName {
			entry = f
			break
		}
	}
	if entry == nil {
		err := fmt.Errorf("no %s entry", dictFileName)
		return nil, &DictionaryFormatError{Path: path, Err: err}
	}

	data, err := readZipEntry(entry)
	if err != nil {
		return nil, &DictionaryFormatError{Path: path, Err: err}
	}

	text, err := decodeDictText(data)
	if err != nil {
		return nil, &DictionaryFormatError{Path: path, Err: err}
	}

	dict, err := cspro.Parse(text)
	if err != nil {
		return nil, &DictionaryFormatError{Path: path, Err: err}
	}

	return dict, nil
}

// decodeDictText decodes the definition file bytes as UTF-8, falling
// back to Windows-1252 for dictionaries shipped in ANSI encoding.
func decodeDictText(data []byte) (string, error) {

	data = bytes.TrimPrefix(data, []byte{0xef, 0xbb, 0xbf})

	if utf8.Valid(data) {
		return string(data), nil
	}

	out, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}

	return string(out), nil
}

// GetColumnNames returns the dictionary's column-name-to-label mapping
// for a record type's table.
func GetColumnNames(dict *cspro.Dictionary, rt RecordType) (map[string]string, error) {

	schema, err := MapRecordName(rt)
	if err != nil {
		return nil, err
	}

	return dict.ColumnLabels(schema)
}

// GetValueLabels returns the dictionary's value-label mapping for a
// record type's table, keyed by column name and then by encoded value.
func GetValueLabels(dict *cspro.Dictionary, rt RecordType) (map[string]map[string]string, error) {

	schema, err := MapRecordName(rt)
	if err != nil {
		return nil, err
	}

	return dict.ValueLabels(schema)
}
