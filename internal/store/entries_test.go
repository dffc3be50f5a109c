package store

import (
	"testing"

	"github.com/google/uuid"

	"kpiroom/internal/model"
)

func mustCreateField(t *testing.T, st *Store, name string, roomID *string) *model.Field {
	t.Helper()
	field := &model.Field{ID: uuid.NewString(), Name: name, RoomID: roomID, Interval: model.IntervalDaily}
	if err := st.CreateField(field); err != nil {
		t.Fatalf("create field %s: %v", name, err)
	}
	return field
}

func TestUpsertEntriesIdempotent(t *testing.T) {
	st := newTestStore(t)
	f := mustCreateField(t, st, "Calls", nil)

	created, err := st.UpsertEntries("2024-01-05", []model.FieldEntryInput{
		{DataFieldID: f.ID, Value: 10},
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if created != 1 {
		t.Fatalf("unexpected created count: %d", created)
	}

	// resubmitting the same date overwrites instead of duplicating
	if _, err := st.UpsertEntries("2024-01-05", []model.FieldEntryInput{
		{DataFieldID: f.ID, Value: 12},
	}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	count, err := st.CountEntries("2024-01")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("duplicate row created, count=%d", count)
	}

	values, err := st.EntriesForMonth("2024-01", []string{f.ID})
	if err != nil {
		t.Fatalf("query month: %v", err)
	}
	if v := values[f.ID]["2024-01-05"]; v != 12 {
		t.Fatalf("value not overwritten: %v", v)
	}
}

func TestUpsertEntriesUnknownField(t *testing.T) {
	st := newTestStore(t)

	if _, err := st.UpsertEntries("2024-01-05", []model.FieldEntryInput{
		{DataFieldID: "no-such-field", Value: 1},
	}); err == nil {
		t.Fatal("expected error for unknown field")
	}

	// nothing should have been written
	count, err := st.CountEntries("")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("partial write happened, count=%d", count)
	}
}

func TestEntriesForMonthScoping(t *testing.T) {
	st := newTestStore(t)
	f1 := mustCreateField(t, st, "Calls", nil)
	f2 := mustCreateField(t, st, "Demos", nil)

	seed := []struct {
		fieldID string
		date    string
		value   float64
	}{
		{f1.ID, "2024-01-05", 1},
		{f1.ID, "2024-02-05", 2},
		{f2.ID, "2024-01-06", 3},
	}
	for _, s := range seed {
		if _, err := st.UpsertEntries(s.date, []model.FieldEntryInput{{DataFieldID: s.fieldID, Value: s.value}}); err != nil {
			t.Fatalf("seed %s: %v", s.date, err)
		}
	}

	values, err := st.EntriesForMonth("2024-01", []string{f1.ID, f2.ID})
	if err != nil {
		t.Fatalf("query month: %v", err)
	}
	if len(values[f1.ID]) != 1 || len(values[f2.ID]) != 1 {
		t.Fatalf("month filter leaked rows: %+v", values)
	}

	months, err := st.MonthsWithEntries()
	if err != nil {
		t.Fatalf("months: %v", err)
	}
	if len(months) != 2 || months[0] != "2024-02" {
		t.Fatalf("unexpected months: %v", months)
	}
}

func TestTouchKPIsForFields(t *testing.T) {
	st := newTestStore(t)
	f1 := mustCreateField(t, st, "Calls", nil)
	f2 := mustCreateField(t, st, "Demos", nil)

	kpi := &model.KPI{
		ID:             uuid.NewString(),
		Name:           "Conversion",
		Formula:        "demos / calls",
		SourceFieldIDs: []string{f1.ID, f2.ID},
	}
	if err := st.CreateKPI(kpi); err != nil {
		t.Fatalf("create kpi: %v", err)
	}
	other := &model.KPI{ID: uuid.NewString(), Name: "Unrelated", SourceFieldIDs: []string{}}
	if err := st.CreateKPI(other); err != nil {
		t.Fatalf("create other kpi: %v", err)
	}

	touched, err := st.TouchKPIsForFields([]string{f1.ID})
	if err != nil {
		t.Fatalf("touch: %v", err)
	}
	if touched != 1 {
		t.Fatalf("expected 1 touched kpi, got %d", touched)
	}

	got, err := st.GetKPI(kpi.ID)
	if err != nil {
		t.Fatalf("get kpi: %v", err)
	}
	if got.RecalculatedAt == nil {
		t.Fatal("recalculated_at not set")
	}

	untouched, err := st.GetKPI(other.ID)
	if err != nil {
		t.Fatalf("get other kpi: %v", err)
	}
	if untouched.RecalculatedAt != nil {
		t.Fatal("unrelated kpi was touched")
	}
}
