package grid

import "strings"

// CellKey composes the overlay key for one (field, date) cell.
// Field IDs are UUIDs and dates are ISO strings, so ':' never occurs
// in either part.
func CellKey(fieldID, date string) string {
	return fieldID + ":" + date
}

// SplitCellKey inverts CellKey.
func SplitCellKey(key string) (fieldID, date string) {
	fieldID, date, _ = strings.Cut(key, ":")
	return fieldID, date
}
