package sheet

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"kpiroom/internal/model"
	"kpiroom/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.New(filepath.Join(t.TempDir(), "kpiroom.db"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestMonthDates(t *testing.T) {
	dates, err := MonthDates("2024-02")
	if err != nil {
		t.Fatalf("month dates: %v", err)
	}
	if len(dates) != 29 {
		t.Fatalf("2024-02 should have 29 days, got %d", len(dates))
	}
	if dates[0] != "2024-02-01" || dates[28] != "2024-02-29" {
		t.Fatalf("unexpected range: %s .. %s", dates[0], dates[len(dates)-1])
	}

	if _, err := MonthDates("2024-13"); err == nil {
		t.Fatal("expected error for bad month")
	}
	if _, err := MonthDates("January"); err == nil {
		t.Fatal("expected error for non-ISO month")
	}
}

func TestBuildGroupsAndFillStats(t *testing.T) {
	st := newTestStore(t)

	sales := &model.Room{ID: uuid.NewString(), Name: "Sales"}
	if err := st.CreateRoom(sales); err != nil {
		t.Fatalf("create room: %v", err)
	}

	orgField := &model.Field{ID: uuid.NewString(), Name: "Headcount", Interval: model.IntervalDaily}
	salesField := &model.Field{ID: uuid.NewString(), Name: "Calls", Unit: "calls", RoomID: &sales.ID, Interval: model.IntervalDaily}
	weekly := &model.Field{ID: uuid.NewString(), Name: "Weekly NPS", Interval: model.IntervalWeekly}
	for _, f := range []*model.Field{orgField, salesField, weekly} {
		if err := st.CreateField(f); err != nil {
			t.Fatalf("create field %s: %v", f.Name, err)
		}
	}

	if _, err := st.UpsertEntries("2024-01-05", []model.FieldEntryInput{
		{DataFieldID: salesField.ID, Value: 42},
	}); err != nil {
		t.Fatalf("seed entry: %v", err)
	}

	data, err := NewBuilder(st).Build("2024-01", "")
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if len(data.Dates) != 31 {
		t.Fatalf("expected 31 dates, got %d", len(data.Dates))
	}
	// weekly field stays off the daily grid
	if data.TotalCells != 31*2 {
		t.Fatalf("unexpected total cells: %d", data.TotalCells)
	}
	if data.TotalFilled != 1 {
		t.Fatalf("unexpected filled count: %d", data.TotalFilled)
	}

	if len(data.RoomGroups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(data.RoomGroups))
	}
	if data.RoomGroups[0].RoomID != OrgWideGroupID || data.RoomGroups[0].RoomName != OrgWideGroupName {
		t.Fatalf("org-wide group not first: %+v", data.RoomGroups[0])
	}
	if data.RoomGroups[1].RoomName != "Sales" {
		t.Fatalf("room name not resolved: %+v", data.RoomGroups[1])
	}
	if v := data.RoomGroups[1].Fields[0].Values["2024-01-05"]; v != 42 {
		t.Fatalf("entry missing from payload: %v", v)
	}
}

func TestBuildRoomFilterIncludesDescendants(t *testing.T) {
	st := newTestStore(t)

	parent := &model.Room{ID: uuid.NewString(), Name: "Sales"}
	if err := st.CreateRoom(parent); err != nil {
		t.Fatalf("create parent: %v", err)
	}
	child := &model.Room{ID: uuid.NewString(), Name: "Inside Sales", ParentID: &parent.ID}
	if err := st.CreateRoom(child); err != nil {
		t.Fatalf("create child: %v", err)
	}

	fields := []*model.Field{
		{ID: uuid.NewString(), Name: "Parent metric", RoomID: &parent.ID, Interval: model.IntervalDaily},
		{ID: uuid.NewString(), Name: "Child metric", RoomID: &child.ID, Interval: model.IntervalDaily},
		{ID: uuid.NewString(), Name: "Org metric", Interval: model.IntervalDaily},
	}
	for _, f := range fields {
		if err := st.CreateField(f); err != nil {
			t.Fatalf("create field: %v", err)
		}
	}

	data, err := NewBuilder(st).Build("2024-01", parent.ID)
	if err != nil {
		t.Fatalf("build filtered: %v", err)
	}

	total := 0
	for _, g := range data.RoomGroups {
		total += len(g.Fields)
		if g.RoomID == OrgWideGroupID {
			t.Fatal("org-wide fields leaked into a room-filtered sheet")
		}
	}
	if total != 2 {
		t.Fatalf("expected parent+child fields, got %d", total)
	}

	if _, err := NewBuilder(st).Build("2024-01", "missing-room"); err == nil {
		t.Fatal("expected error for unknown room")
	}
}

func TestMonthToDate(t *testing.T) {
	dates := []string{"2024-01-01", "2024-01-02", "2024-01-03"}
	values := map[string]float64{"2024-01-01": 1.5, "2024-01-03": 2}
	if got := MonthToDate(values, dates); got != 3.5 {
		t.Fatalf("unexpected MTD: %v", got)
	}
	if got := MonthToDate(nil, dates); got != 0 {
		t.Fatalf("nil values should sum to 0, got %v", got)
	}
}
