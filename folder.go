package cnpv

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
)

// Territory archives are named with a two-digit territorial prefix,
// e.g. 05_Antioquia.zip.
var territoryPattern = regexp.MustCompile(`^[0-9][0-9]_`)

// ReadDataFolder walks the folder tree for territory archives and
// returns one unified table per record type, built by concatenating the
// per-territory tables.  The result always holds all five record type
// keys; a folder with no territory archives yields five empty tables.
// Row order across territories is not defined.
func (dec *Decoder) ReadDataFolder(folder string) (map[RecordType]*Table, error) {

	tables := make(map[RecordType]*Table, len(RecordTypes))
	for _, rt := range RecordTypes {
		tables[rt] = &Table{}
	}

	err := filepath.WalkDir(folder, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !territoryPattern.MatchString(d.Name()) {
			return nil
		}

		current, err := dec.DecodeTerritoryArchive(path)
		if err != nil {
			return err
		}

		for _, rt := range RecordTypes {
			tbl, ok := current[rt]
			if !ok {
				err := fmt.Errorf("no %s table", rt)
				return &ArchiveFormatError{Path: path, Err: err}
			}
			tables[rt], err = Concat(tables[rt], tbl)
			if err != nil {
				return &ArchiveFormatError{Path: path, Err: err}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return tables, nil
}
