package store

import (
	"database/sql"
	"errors"
	"fmt"

	"kpiroom/internal/model"
)

// ErrNotFound returned when a looked-up record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrRoomInUse returned when deleting a room that still has children or fields.
var ErrRoomInUse = errors.New("room has children or fields")

// ErrRoomCycle returned when a reparent would make a room its own ancestor.
var ErrRoomCycle = errors.New("room cannot be its own ancestor")

// CreateRoom inserts a room.
func (s *Store) CreateRoom(r *model.Room) error {
	if r.ParentID != nil {
		if _, err := s.GetRoom(*r.ParentID); err != nil {
			return fmt.Errorf("parent room: %w", err)
		}
	}
	err := s.Exec(
		"INSERT INTO rooms (id, name, parent_id) VALUES (?, ?, ?)",
		r.ID, r.Name, r.ParentID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert room: %w", err)
	}
	return nil
}

// GetRoom fetches one room by id.
func (s *Store) GetRoom(id string) (*model.Room, error) {
	var r model.Room
	err := s.db.QueryRow(
		"SELECT id, name, parent_id, created_at, updated_at FROM rooms WHERE id = ?", id,
	).Scan(&r.ID, &r.Name, &r.ParentID, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query room: %w", err)
	}
	return &r, nil
}

// ListRooms returns all rooms ordered by name.
func (s *Store) ListRooms() ([]*model.Room, error) {
	rows, err := s.db.Query("SELECT id, name, parent_id, created_at, updated_at FROM rooms ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query rooms: %w", err)
	}
	defer rows.Close()

	var out []*model.Room
	for rows.Next() {
		var r model.Room
		if err := rows.Scan(&r.ID, &r.Name, &r.ParentID, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		out = append(out, &r)
	}
	return out, rows.Err()
}

// UpdateRoom renames and/or reparents a room. A reparent that would
// create a cycle fails with ErrRoomCycle.
func (s *Store) UpdateRoom(id string, name *string, parentID *string, clearParent bool) (*model.Room, error) {
	r, err := s.GetRoom(id)
	if err != nil {
		return nil, err
	}
	if name != nil {
		r.Name = *name
	}
	if clearParent {
		r.ParentID = nil
	} else if parentID != nil {
		if err := s.checkNoCycle(id, *parentID); err != nil {
			return nil, err
		}
		r.ParentID = parentID
	}

	err = s.Exec(
		"UPDATE rooms SET name = ?, parent_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		r.Name, r.ParentID, r.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update room: %w", err)
	}
	return s.GetRoom(id)
}

// checkNoCycle walks up from the proposed parent; hitting id means a cycle.
func (s *Store) checkNoCycle(id, newParentID string) error {
	current := newParentID
	for current != "" {
		if current == id {
			return ErrRoomCycle
		}
		parent, err := s.GetRoom(current)
		if err != nil {
			return err
		}
		if parent.ParentID == nil {
			return nil
		}
		current = *parent.ParentID
	}
	return nil
}

// DeleteRoom removes a room; rooms with children or fields are protected.
func (s *Store) DeleteRoom(id string) error {
	if _, err := s.GetRoom(id); err != nil {
		return err
	}

	var children int
	if err := s.db.QueryRow("SELECT COUNT(1) FROM rooms WHERE parent_id = ?", id).Scan(&children); err != nil {
		return fmt.Errorf("failed to count children: %w", err)
	}
	var fields int
	if err := s.db.QueryRow("SELECT COUNT(1) FROM fields WHERE room_id = ?", id).Scan(&fields); err != nil {
		return fmt.Errorf("failed to count fields: %w", err)
	}
	if children > 0 || fields > 0 {
		return ErrRoomInUse
	}

	return s.Exec("DELETE FROM rooms WHERE id = ?", id)
}

// RoomTree assembles the full hierarchy as nested nodes, top-level
// rooms first, children ordered by name within each parent.
func (s *Store) RoomTree() ([]*model.RoomNode, error) {
	rooms, err := s.ListRooms()
	if err != nil {
		return nil, err
	}

	nodes := make(map[string]*model.RoomNode, len(rooms))
	for _, r := range rooms {
		nodes[r.ID] = &model.RoomNode{Room: *r, Children: []*model.RoomNode{}}
	}

	var roots []*model.RoomNode
	for _, r := range rooms {
		node := nodes[r.ID]
		if r.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*r.ParentID]
		if !ok {
			// orphaned parent reference, surface at top level
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}
	return roots, nil
}

// RoomWithDescendants returns id plus every room nested under it.
func (s *Store) RoomWithDescendants(id string) ([]string, error) {
	if _, err := s.GetRoom(id); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		WITH RECURSIVE sub(id) AS (
			SELECT id FROM rooms WHERE id = ?
			UNION ALL
			SELECT r.id FROM rooms r JOIN sub ON r.parent_id = sub.id
		)
		SELECT id FROM sub
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query descendants: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var roomID string
		if err := rows.Scan(&roomID); err != nil {
			return nil, fmt.Errorf("failed to scan descendant: %w", err)
		}
		out = append(out, roomID)
	}
	return out, rows.Err()
}
