// Package exporter writes the month entry sheet as an xlsx workbook,
// one worksheet per room group.
package exporter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"kpiroom/internal/model"
	"kpiroom/internal/sheet"
)

// header columns before the date run
const dateStartCol = 3 // A=Field, B=Unit, C=first date

// WriteWorkbook renders data into an xlsx file at outPath.
func WriteWorkbook(data *model.SheetData, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, group := range data.RoomGroups {
		name := sheetName(group.RoomName, i)
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
		if err := fillGroup(f, name, data.Dates, group); err != nil {
			return err
		}
	}

	// drop the default sheet when we produced any content
	if len(data.RoomGroups) > 0 {
		_ = f.DeleteSheet("Sheet1")
		f.SetActiveSheet(0)
	}

	if err := f.SaveAs(outPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// sheetName keeps worksheet names unique and within Excel's 31-char limit.
func sheetName(roomName string, index int) string {
	name := roomName
	if name == "" {
		name = sheet.OrgWideGroupName
	}
	if len(name) > 25 {
		name = name[:25]
	}
	return fmt.Sprintf("%s (%d)", name, index+1)
}

func fillGroup(f *excelize.File, name string, dates []string, group model.SheetRoomGroup) error {
	// header row
	if err := f.SetCellValue(name, "A1", "Field"); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	_ = f.SetCellValue(name, "B1", "Unit")
	for i, d := range dates {
		cell, err := excelize.CoordinatesToCellName(dateStartCol+i, 1)
		if err != nil {
			return fmt.Errorf("failed to address header cell: %w", err)
		}
		_ = f.SetCellValue(name, cell, d)
	}
	mtdCell, err := excelize.CoordinatesToCellName(dateStartCol+len(dates), 1)
	if err != nil {
		return fmt.Errorf("failed to address MTD header: %w", err)
	}
	_ = f.SetCellValue(name, mtdCell, "MTD")

	// one row per field
	for r, field := range group.Fields {
		row := r + 2
		_ = f.SetCellValue(name, fmt.Sprintf("A%d", row), field.Name)
		_ = f.SetCellValue(name, fmt.Sprintf("B%d", row), field.Unit)

		for i, d := range dates {
			v, ok := field.Values[d]
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(dateStartCol+i, row)
			if err != nil {
				return fmt.Errorf("failed to address cell: %w", err)
			}
			_ = f.SetCellValue(name, cell, v)
		}

		cell, err := excelize.CoordinatesToCellName(dateStartCol+len(dates), row)
		if err != nil {
			return fmt.Errorf("failed to address MTD cell: %w", err)
		}
		_ = f.SetCellValue(name, cell, sheet.MonthToDate(field.Values, dates))
	}
	return nil
}
