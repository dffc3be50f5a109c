package grid

import "testing"

func TestCellKeyRoundTrip(t *testing.T) {
	key := CellKey("f8c2d9e0-1111-2222-3333-444455556666", "2024-01-05")
	fieldID, date := SplitCellKey(key)
	if fieldID != "f8c2d9e0-1111-2222-3333-444455556666" {
		t.Fatalf("unexpected field id: %s", fieldID)
	}
	if date != "2024-01-05" {
		t.Fatalf("unexpected date: %s", date)
	}
}

func TestCellKeyDistinct(t *testing.T) {
	a := CellKey("f1", "2024-01-05")
	b := CellKey("f1", "2024-01-06")
	c := CellKey("f2", "2024-01-05")
	if a == b || a == c || b == c {
		t.Fatalf("keys collide: %s %s %s", a, b, c)
	}
}
