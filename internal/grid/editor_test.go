package grid

import "testing"

func TestCommitNoOpNeverDirties(t *testing.T) {
	g, _ := newTestGrid(t)

	// committing the snapshot value back leaves no override
	if err := g.StartEdit("f1", "2024-01-05"); err != nil {
		t.Fatalf("start edit: %v", err)
	}
	g.SetDraft("10")
	if result := g.Commit(); result != CommitUnchanged {
		t.Fatalf("unexpected commit result: %v", result)
	}
	if g.Dirty() != 0 {
		t.Fatalf("no-op commit left %d dirty cells", g.Dirty())
	}

	// an existing override is removed when the user types the snapshot back
	g.Overlay().Set("f1", "2024-01-05", 42)
	if err := g.StartEdit("f1", "2024-01-05"); err != nil {
		t.Fatalf("start edit: %v", err)
	}
	g.SetDraft("10")
	g.Commit()
	if g.Dirty() != 0 {
		t.Fatalf("revert-to-snapshot left %d dirty cells", g.Dirty())
	}
}

func TestCommitDirtyAndBlankAndInvalid(t *testing.T) {
	g, _ := newTestGrid(t)

	if err := g.StartEdit("f2", "2024-01-06"); err != nil {
		t.Fatalf("start edit: %v", err)
	}
	g.SetDraft("3.5")
	if result := g.Commit(); result != CommitDirty {
		t.Fatalf("unexpected commit result: %v", result)
	}
	if v, ok := g.Overlay().Get("f2", "2024-01-06"); !ok || v != 3.5 {
		t.Fatalf("override missing: %v ok=%v", v, ok)
	}

	// blank draft is a no-change commit
	g.StartEdit("f2", "2024-01-07")
	g.SetDraft("   ")
	if result := g.Commit(); result != CommitBlank {
		t.Fatalf("unexpected blank result: %v", result)
	}

	// unparseable text abandons the edit without touching the overlay
	g.StartEdit("f2", "2024-01-07")
	g.SetDraft("not a number")
	if result := g.Commit(); result != CommitInvalid {
		t.Fatalf("unexpected invalid result: %v", result)
	}
	if g.Dirty() != 1 {
		t.Fatalf("invalid commit changed the overlay: %d", g.Dirty())
	}
	if _, _, editing := g.Editing(); editing {
		t.Fatal("grid not idle after invalid commit")
	}
}

func TestCancelDiscardsDraft(t *testing.T) {
	g, _ := newTestGrid(t)

	g.Overlay().Set("f1", "2024-01-06", 7)
	g.StartEdit("f1", "2024-01-06")
	g.SetDraft("999")
	g.Cancel()

	if _, _, editing := g.Editing(); editing {
		t.Fatal("grid still editing after cancel")
	}
	// earlier committed override survives the cancel
	if v, _ := g.Overlay().Get("f1", "2024-01-06"); v != 7 {
		t.Fatalf("cancel touched the overlay: %v", v)
	}
}

func TestExclusiveEditing(t *testing.T) {
	g, _ := newTestGrid(t)

	g.StartEdit("f1", "2024-01-05")
	g.SetDraft("11")

	// starting a second edit commits the first instead of dropping it
	if err := g.StartEdit("f2", "2024-01-06"); err != nil {
		t.Fatalf("start second edit: %v", err)
	}

	fieldID, date, ok := g.Editing()
	if !ok || fieldID != "f2" || date != "2024-01-06" {
		t.Fatalf("unexpected active cell: %s %s ok=%v", fieldID, date, ok)
	}
	if v, ok := g.Overlay().Get("f1", "2024-01-05"); !ok || v != 11 {
		t.Fatalf("first edit lost: %v ok=%v", v, ok)
	}
}

func TestStartEditUnknownCell(t *testing.T) {
	g, _ := newTestGrid(t)

	if err := g.StartEdit("missing", "2024-01-05"); err != ErrNoSuchCell {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.StartEdit("f1", "2024-02-01"); err != ErrNoSuchCell {
		t.Fatalf("unexpected error for foreign date: %v", err)
	}
}

func TestNavigateTabAdvancesAndWraps(t *testing.T) {
	g, _ := newTestGrid(t)

	g.StartEdit("f1", "2024-01-05")
	g.SetDraft("1")
	g.Navigate(NavTab)

	fieldID, date, ok := g.Editing()
	if !ok || fieldID != "f1" || date != "2024-01-06" {
		t.Fatalf("tab landed on %s %s ok=%v", fieldID, date, ok)
	}

	// last column wraps to the next row's first column
	g.Cancel()
	g.StartEdit("f1", "2024-01-07")
	g.SetDraft("2")
	g.Navigate(NavTab)
	fieldID, date, ok = g.Editing()
	if !ok || fieldID != "f2" || date != "2024-01-05" {
		t.Fatalf("tab wrap landed on %s %s ok=%v", fieldID, date, ok)
	}
}

func TestNavigateBounds(t *testing.T) {
	g, _ := newTestGrid(t)

	// tab on the very last cell commits and goes idle
	g.StartEdit("f2", "2024-01-07")
	g.SetDraft("8")
	if result := g.Navigate(NavTab); result != CommitDirty {
		t.Fatalf("unexpected commit result: %v", result)
	}
	if _, _, editing := g.Editing(); editing {
		t.Fatal("grid not idle after out-of-bounds tab")
	}
	if v, ok := g.Overlay().Get("f2", "2024-01-07"); !ok || v != 8 {
		t.Fatalf("prior edit not committed: %v ok=%v", v, ok)
	}

	// shift+enter on the first row is also a no-op move
	g.StartEdit("f1", "2024-01-05")
	g.SetDraft("")
	g.Navigate(NavShiftEnter)
	if _, _, editing := g.Editing(); editing {
		t.Fatal("grid not idle after out-of-bounds shift+enter")
	}
}

func TestNavigateEnterMovesDown(t *testing.T) {
	g, _ := newTestGrid(t)

	g.StartEdit("f1", "2024-01-06")
	g.Navigate(NavEnter)

	fieldID, date, ok := g.Editing()
	if !ok || fieldID != "f2" || date != "2024-01-06" {
		t.Fatalf("enter landed on %s %s ok=%v", fieldID, date, ok)
	}

	g.Navigate(NavShiftEnter)
	fieldID, date, _ = g.Editing()
	if fieldID != "f1" || date != "2024-01-06" {
		t.Fatalf("shift+enter landed on %s %s", fieldID, date)
	}
}
