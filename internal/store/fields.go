package store

import (
	"database/sql"
	"fmt"
	"strings"

	"kpiroom/internal/model"
)

// FieldQueryOptions field list filters
type FieldQueryOptions struct {
	RoomIDs  []string // restrict to these rooms; nil means no room filter
	OrgWide  bool     // include fields with no room
	Interval *string
}

// CreateField inserts a field.
func (s *Store) CreateField(f *model.Field) error {
	if f.RoomID != nil {
		if _, err := s.GetRoom(*f.RoomID); err != nil {
			return fmt.Errorf("field room: %w", err)
		}
	}
	err := s.Exec(
		"INSERT INTO fields (id, name, unit, room_id, interval) VALUES (?, ?, ?, ?, ?)",
		f.ID, f.Name, f.Unit, f.RoomID, f.Interval,
	)
	if err != nil {
		return fmt.Errorf("failed to insert field: %w", err)
	}
	return nil
}

// GetField fetches one field by id.
func (s *Store) GetField(id string) (*model.Field, error) {
	var f model.Field
	err := s.db.QueryRow(
		"SELECT id, name, unit, room_id, interval, created_at, updated_at FROM fields WHERE id = ?", id,
	).Scan(&f.ID, &f.Name, &f.Unit, &f.RoomID, &f.Interval, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query field: %w", err)
	}
	return &f, nil
}

// ListFields returns fields matching opts, ordered by name.
func (s *Store) ListFields(opts FieldQueryOptions) ([]*model.Field, error) {
	query := "SELECT id, name, unit, room_id, interval, created_at, updated_at FROM fields WHERE 1=1"
	args := []interface{}{}

	if opts.RoomIDs != nil {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(opts.RoomIDs)), ",")
		if opts.OrgWide {
			query += " AND (room_id IS NULL OR room_id IN (" + placeholders + "))"
		} else {
			query += " AND room_id IN (" + placeholders + ")"
		}
		for _, id := range opts.RoomIDs {
			args = append(args, id)
		}
	}
	if opts.Interval != nil {
		query += " AND interval = ?"
		args = append(args, *opts.Interval)
	}
	query += " ORDER BY name"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query fields: %w", err)
	}
	defer rows.Close()

	var out []*model.Field
	for rows.Next() {
		var f model.Field
		if err := rows.Scan(&f.ID, &f.Name, &f.Unit, &f.RoomID, &f.Interval, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan field: %w", err)
		}
		out = append(out, &f)
	}
	return out, rows.Err()
}

// UpdateField patches name/unit/interval on a field.
func (s *Store) UpdateField(id string, name, unit, interval *string) (*model.Field, error) {
	f, err := s.GetField(id)
	if err != nil {
		return nil, err
	}
	if name != nil {
		f.Name = *name
	}
	if unit != nil {
		f.Unit = *unit
	}
	if interval != nil {
		f.Interval = *interval
	}

	err = s.Exec(
		"UPDATE fields SET name = ?, unit = ?, interval = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		f.Name, f.Unit, f.Interval, f.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update field: %w", err)
	}
	return s.GetField(id)
}

// DeleteField removes a field and its entries.
func (s *Store) DeleteField(id string) error {
	if _, err := s.GetField(id); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM field_entries WHERE field_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete field entries: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM fields WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete field: %w", err)
	}

	return tx.Commit()
}

// CountFields counts all fields.
func (s *Store) CountFields() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(1) FROM fields").Scan(&n)
	return n, err
}
