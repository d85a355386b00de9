package model

import "strings"

// Dataset is one site's raw table as it came off the spreadsheet: a header
// row and string-valued cell rows. Parsing into typed readings happens in
// the engine, not here.
type Dataset struct {
	Site    string
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the index of the named column, matched
// case-insensitively after trimming, or -1 when absent.
func (d *Dataset) ColumnIndex(name string) int {
	for i, col := range d.Columns {
		if strings.EqualFold(strings.TrimSpace(col), strings.TrimSpace(name)) {
			return i
		}
	}
	return -1
}

// Cell returns the trimmed cell value at the given row and column index,
// or "" when the row is too short.
func (d *Dataset) Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
