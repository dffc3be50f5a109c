// Package importer ingests bulk-entry workbooks: first column field
// names, header row entry dates, numeric cells as values.
package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"kpiroom/internal/model"
	"kpiroom/internal/store"
)

// Result import summary
type Result struct {
	EntriesCreated int      `json:"entriesCreated"`
	RowsSkipped    int      `json:"rowsSkipped"`
	Errors         []string `json:"errors"`
}

// ImportFile reads the first worksheet of the xlsx at path and upserts
// its entries. Unknown field names and bad cells are collected as row
// errors; the rest of the workbook still imports.
func ImportFile(st *store.Store, path string) (*Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %s has no data rows", sheets[0])
	}

	dates, err := parseHeader(rows[0])
	if err != nil {
		return nil, err
	}

	fieldsByName, err := fieldIndex(st)
	if err != nil {
		return nil, err
	}

	result := &Result{Errors: []string{}}
	byDate := make(map[string][]model.FieldEntryInput)

	for rowNo, row := range rows[1:] {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			result.RowsSkipped++
			continue
		}
		fieldName := strings.TrimSpace(row[0])
		fieldID, ok := fieldsByName[fieldName]
		if !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: unknown field %q", rowNo+2, fieldName))
			result.RowsSkipped++
			continue
		}

		for i, date := range dates {
			col := i + 1
			if col >= len(row) {
				break
			}
			text := strings.TrimSpace(row[col])
			if text == "" {
				continue
			}
			value, err := strconv.ParseFloat(text, 64)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: bad value %q for %s", rowNo+2, text, date))
				continue
			}
			byDate[date] = append(byDate[date], model.FieldEntryInput{DataFieldID: fieldID, Value: value})
		}
	}

	for date, entries := range byDate {
		created, err := st.UpsertEntries(date, entries)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", date, err))
			continue
		}
		result.EntriesCreated += created
	}

	return result, nil
}

// parseHeader validates the date header; the first cell is the field
// name column and is ignored.
func parseHeader(header []string) ([]string, error) {
	if len(header) < 2 {
		return nil, fmt.Errorf("header row needs at least one date column")
	}
	dates := make([]string, 0, len(header)-1)
	for _, cell := range header[1:] {
		date := strings.TrimSpace(cell)
		if date == "" {
			continue
		}
		if _, err := time.Parse(model.DateLayout, date); err != nil {
			return nil, fmt.Errorf("invalid date column %q, expected YYYY-MM-DD", date)
		}
		dates = append(dates, date)
	}
	if len(dates) == 0 {
		return nil, fmt.Errorf("header row has no date columns")
	}
	return dates, nil
}

func fieldIndex(st *store.Store) (map[string]string, error) {
	fields, err := st.ListFields(store.FieldQueryOptions{})
	if err != nil {
		return nil, err
	}
	index := make(map[string]string, len(fields))
	for _, f := range fields {
		index[f.Name] = f.ID
	}
	return index, nil
}
