package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"kpiroom/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "kpiroom.db")
	st, err := New(dbPath)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func mustCreateRoom(t *testing.T, st *Store, name string, parentID *string) *model.Room {
	t.Helper()
	room := &model.Room{ID: uuid.NewString(), Name: name, ParentID: parentID}
	if err := st.CreateRoom(room); err != nil {
		t.Fatalf("create room %s: %v", name, err)
	}
	return room
}

func TestRoomTreeAndDescendants(t *testing.T) {
	st := newTestStore(t)

	sales := mustCreateRoom(t, st, "Sales", nil)
	inside := mustCreateRoom(t, st, "Inside Sales", &sales.ID)
	mustCreateRoom(t, st, "Field Sales", &sales.ID)
	sdr := mustCreateRoom(t, st, "SDR", &inside.ID)
	mustCreateRoom(t, st, "Support", nil)

	tree, err := st.RoomTree()
	if err != nil {
		t.Fatalf("room tree: %v", err)
	}
	if len(tree) != 2 {
		t.Fatalf("expected 2 top-level rooms, got %d", len(tree))
	}

	var salesNode *model.RoomNode
	for _, n := range tree {
		if n.ID == sales.ID {
			salesNode = n
		}
	}
	if salesNode == nil || len(salesNode.Children) != 2 {
		t.Fatalf("sales subtree wrong: %+v", salesNode)
	}

	ids, err := st.RoomWithDescendants(sales.ID)
	if err != nil {
		t.Fatalf("descendants: %v", err)
	}
	if len(ids) != 4 {
		t.Fatalf("expected 4 rooms under sales, got %d (%v)", len(ids), ids)
	}
	found := false
	for _, id := range ids {
		if id == sdr.ID {
			found = true
		}
	}
	if !found {
		t.Fatal("grandchild missing from descendants")
	}
}

func TestRoomReparentCycle(t *testing.T) {
	st := newTestStore(t)

	a := mustCreateRoom(t, st, "A", nil)
	b := mustCreateRoom(t, st, "B", &a.ID)
	c := mustCreateRoom(t, st, "C", &b.ID)

	// moving A under its own grandchild must fail
	if _, err := st.UpdateRoom(a.ID, nil, &c.ID, false); !errors.Is(err, ErrRoomCycle) {
		t.Fatalf("expected cycle error, got %v", err)
	}

	// a sibling move is fine
	if _, err := st.UpdateRoom(c.ID, nil, &a.ID, false); err != nil {
		t.Fatalf("legal reparent failed: %v", err)
	}
}

func TestDeleteRoomGuards(t *testing.T) {
	st := newTestStore(t)

	parent := mustCreateRoom(t, st, "Parent", nil)
	child := mustCreateRoom(t, st, "Child", &parent.ID)

	if err := st.DeleteRoom(parent.ID); !errors.Is(err, ErrRoomInUse) {
		t.Fatalf("expected in-use error, got %v", err)
	}

	field := &model.Field{ID: uuid.NewString(), Name: "Revenue", RoomID: &child.ID, Interval: model.IntervalDaily}
	if err := st.CreateField(field); err != nil {
		t.Fatalf("create field: %v", err)
	}
	if err := st.DeleteRoom(child.ID); !errors.Is(err, ErrRoomInUse) {
		t.Fatalf("expected in-use error for room with fields, got %v", err)
	}

	if err := st.DeleteField(field.ID); err != nil {
		t.Fatalf("delete field: %v", err)
	}
	if err := st.DeleteRoom(child.ID); err != nil {
		t.Fatalf("delete empty child: %v", err)
	}
	if err := st.DeleteRoom(parent.ID); err != nil {
		t.Fatalf("delete now-empty parent: %v", err)
	}

	if err := st.DeleteRoom(parent.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}
