// Package cspro parses CSPro data dictionary (dcf) files.
//
// A dcf file is a sequence of sections, each introduced by a bracketed
// header ([Dictionary], [Record], [Item], [ValueSet], ...) and followed
// by Key=Value lines.  Only the subset of the grammar needed to label
// census tables is interpreted: record and item names and labels, and
// the value-to-label pairs of each item's value sets.  Everything else
// is read and ignored.
package cspro

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// A Dictionary is a parsed CSPro data dictionary.
type Dictionary struct {

	// The dictionary's internal name and descriptive label.
	Name  string
	Label string

	// Id items shared by every record of the level.
	idItems []*Item

	records []*Record
}

// A Record describes one record schema of the dictionary.
type Record struct {
	Name  string
	Label string

	// The tag value identifying this record's rows in fixed-format
	// data files.
	TypeValue string

	Items []*Item
}

// An Item describes one column of a record.
type Item struct {
	Name  string
	Label string
	Start int
	Len   int

	ValueSets []*ValueSet
}

// A ValueSet maps an item's encoded values to labels.
type ValueSet struct {
	Name  string
	Label string

	labels map[string]string
}

// Labels returns the value-to-label mapping of the value set.
func (vs *ValueSet) Labels() map[string]string {
	return vs.labels
}

// Record returns the record with the given name, or nil if the
// dictionary has no such record.
func (d *Dictionary) Record(name string) *Record {
	for _, r := range d.records {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// Records returns the dictionary's records in order.
func (d *Dictionary) Records() []*Record {
	return d.records
}

// allItems returns the level id items followed by the record's own
// items, which together make up the record's columns.
func (d *Dictionary) allItems(name string) ([]*Item, error) {

	rec := d.Record(name)
	if rec == nil {
		return nil, fmt.Errorf("dictionary has no record %q", name)
	}

	items := make([]*Item, 0, len(d.idItems)+len(rec.Items))
	items = append(items, d.idItems...)
	items = append(items, rec.Items...)

	return items, nil
}

// ColumnLabels returns a mapping from column name to column label for
// the named record.
func (d *Dictionary) ColumnLabels(record string) (map[string]string, error) {

	items, err := d.allItems(record)
	if err != nil {
		return nil, err
	}

	labels := make(map[string]string, len(items))
	for _, it := range items {
		labels[it.Name] = it.Label
	}

	return labels, nil
}

// ValueLabels returns, for the named record, a mapping from column name
// to a mapping from encoded value to label.  Only columns with at least
// one labeled value appear; the first value set of each item is the
// labeling set.
func (d *Dictionary) ValueLabels(record string) (map[string]map[string]string, error) {

	items, err := d.allItems(record)
	if err != nil {
		return nil, err
	}

	labels := make(map[string]map[string]string)
	for _, it := range items {
		if len(it.ValueSets) == 0 {
			continue
		}
		vl := it.ValueSets[0].labels
		if len(vl) > 0 {
			labels[it.Name] = vl
		}
	}

	return labels, nil
}

// Parse parses the text of a dcf file.
func Parse(text string) (*Dictionary, error) {

	dict := new(Dictionary)

	// The section whose Key=Value lines are currently being read.
	const (
		inNone = iota
		inDictionary
		inIdItems
		inRecord
		inItem
		inValueSet
		inOther
	)

	section := inNone
	sawDictionary := false

	// Whether items currently being read belong to the level's
	// shared id items rather than to a record.
	idSection := false

	var record *Record
	var item *Item
	var valueSet *ValueSet

	lineno := 0
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		lineno++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			switch line {
			case "[Dictionary]":
				section = inDictionary
				sawDictionary = true
			case "[IdItems]":
				section = inIdItems
				idSection = true
			case "[Record]":
				section = inRecord
				idSection = false
				record = new(Record)
				dict.records = append(dict.records, record)
			case "[Item]":
				section = inItem
				item = new(Item)
				if idSection {
					dict.idItems = append(dict.idItems, item)
				} else if record != nil {
					record.Items = append(record.Items, item)
				}
			case "[ValueSet]":
				section = inValueSet
				if item == nil {
					return nil, fmt.Errorf("line %d: [ValueSet] outside of an item", lineno)
				}
				valueSet = &ValueSet{labels: make(map[string]string)}
				item.ValueSets = append(item.ValueSets, valueSet)
			default:
				section = inOther
			}
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		switch section {
		case inDictionary:
			switch key {
			case "Name":
				dict.Name = value
			case "Label":
				dict.Label = value
			}
		case inRecord:
			switch key {
			case "Name":
				record.Name = value
			case "Label":
				record.Label = value
			case "RecordTypeValue":
				record.TypeValue = unquote(value)
			}
		case inItem, inIdItems:
			if section == inIdItems {
				// Key=Value lines directly under [IdItems]
				// precede any [Item] header.
				continue
			}
			switch key {
			case "Name":
				item.Name = value
			case "Label":
				item.Label = value
			case "Start":
				n, err := strconv.Atoi(value)
				if err != nil {
					return nil, fmt.Errorf("line %d: bad Start value %q", lineno, value)
				}
				item.Start = n
			case "Len":
				n, err := strconv.Atoi(value)
				if err != nil {
					return nil, fmt.Errorf("line %d: bad Len value %q", lineno, value)
				}
				item.Len = n
			}
		case inValueSet:
			switch key {
			case "Name":
				valueSet.Name = value
			case "Label":
				valueSet.Label = value
			case "Value":
				addValue(valueSet, value)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if !sawDictionary {
		return nil, fmt.Errorf("not a CSPro dictionary: no [Dictionary] section")
	}

	return dict, nil
}

// addValue records one Value line of a value set.  The line has the
// form <code>;<label>.  Range codes (a:b) carry no discrete
// substitution key and are skipped.
func addValue(vs *ValueSet, value string) {

	code, label, _ := strings.Cut(value, ";")
	code = unquote(strings.TrimSpace(code))
	label = strings.TrimSpace(label)
	if code == "" || label == "" || strings.Contains(code, ":") {
		return
	}

	if _, ok := vs.labels[code]; ok {
		return
	}
	vs.labels[code] = label
}

// unquote removes a matched pair of surrounding single quotes.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return s[1 : len(s)-1]
	}
	return s
}
