package cnpv

import (
	"fmt"
	"strings"
)

// A RecordType identifies one of the five census entity categories
// produced by the pipeline.
type RecordType int

const (
	Dwellings RecordType = iota
	Households
	Deaths
	Persons
	Georeference
)

// RecordTypes lists all record types in a fixed order.
var RecordTypes = []RecordType{Dwellings, Households, Deaths, Persons, Georeference}

// String returns the table name used in the census data release.
func (rt RecordType) String() string {
	switch rt {
	case Dwellings:
		return "viviendas"
	case Households:
		return "hogares"
	case Deaths:
		return "fallecidos"
	case Persons:
		return "personas"
	case Georeference:
		return "marco_georreferenciacion"
	}
	return fmt.Sprintf("RecordType(%d)", int(rt))
}

// An UnknownRecordTypeError indicates a filename segment or record type
// that is not present in the fixed census naming tables.
type UnknownRecordTypeError struct {
	Name string
}

func (e *UnknownRecordTypeError) Error() string {
	return fmt.Sprintf("unknown record type %q", e.Name)
}

// MapDataframeName derives the record type from a data file name.  The
// type is encoded as the second underscore-delimited segment of the
// name, e.g. CNPV2018_1VIV_A2_05.DTA holds dwellings records.
func MapDataframeName(filename string) (RecordType, error) {
	parts := strings.Split(filename, "_")
	if len(parts) < 2 {
		return 0, &UnknownRecordTypeError{Name: filename}
	}

	switch parts[1] {
	case "1VIV":
		return Dwellings, nil
	case "2HOG":
		return Households, nil
	case "3FALL":
		return Deaths, nil
	case "5PER":
		return Persons, nil
	case "MGN":
		return Georeference, nil
	}

	return 0, &UnknownRecordTypeError{Name: parts[1]}
}

// MapRecordName returns the data dictionary's schema name for a record
// type.  The georeference frame has no schema in the dictionary, so
// calling MapRecordName with Georeference is an error.
func MapRecordName(rt RecordType) (string, error) {
	switch rt {
	case Dwellings:
		return "REGVIV", nil
	case Households:
		return "REGHOG", nil
	case Deaths:
		return "REGFALL", nil
	case Persons:
		return "REGPER", nil
	}

	return "", &UnknownRecordTypeError{Name: rt.String()}
}
