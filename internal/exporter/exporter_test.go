package exporter

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"kpiroom/internal/model"
)

func TestWriteWorkbook(t *testing.T) {
	data := &model.SheetData{
		Dates: []string{"2024-01-01", "2024-01-02", "2024-01-03"},
		RoomGroups: []model.SheetRoomGroup{
			{
				RoomID:   "",
				RoomName: "Organization",
				Fields: []model.SheetField{
					{DataFieldID: "f1", Name: "Signups", Unit: "users", Values: map[string]float64{
						"2024-01-01": 4,
						"2024-01-03": 6,
					}},
				},
			},
			{
				RoomID:   "room-sales",
				RoomName: "Sales",
				Fields: []model.SheetField{
					{DataFieldID: "f2", Name: "Calls", Values: map[string]float64{}},
				},
			},
		},
	}

	outPath := filepath.Join(t.TempDir(), "out.xlsx")
	if err := WriteWorkbook(data, outPath); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	f, err := excelize.OpenFile(outPath)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 {
		t.Fatalf("expected 2 sheets, got %v", sheets)
	}
	orgSheet := sheets[0]

	cases := []struct {
		cell string
		want string
	}{
		{"A1", "Field"},
		{"B1", "Unit"},
		{"C1", "2024-01-01"},
		{"E1", "2024-01-03"},
		{"F1", "MTD"},
		{"A2", "Signups"},
		{"B2", "users"},
		{"C2", "4"},
		{"E2", "6"},
		{"F2", "10"},
	}
	for _, tc := range cases {
		got, err := f.GetCellValue(orgSheet, tc.cell)
		if err != nil {
			t.Fatalf("read %s: %v", tc.cell, err)
		}
		if got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.cell, got, tc.want)
		}
	}

	// blank month leaves the date cell empty
	if got, _ := f.GetCellValue(orgSheet, "D2"); got != "" {
		t.Fatalf("D2 should be empty, got %q", got)
	}
}

func TestSheetNameTruncation(t *testing.T) {
	long := "A very long room name that exceeds the limit"
	name := sheetName(long, 0)
	if len(name) > 31 {
		t.Fatalf("sheet name too long: %q", name)
	}
	if sheetName("Sales", 1) != "Sales (2)" {
		t.Fatalf("unexpected name: %q", sheetName("Sales", 1))
	}
	if sheetName("", 0) != "Organization (1)" {
		t.Fatalf("unexpected org name: %q", sheetName("", 0))
	}
}
