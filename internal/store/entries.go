package store

import (
	"fmt"
	"strings"

	"kpiroom/internal/model"
)

// UpsertEntries writes one submission's (field, value) pairs for a
// single date in one transaction. Existing entries for the same
// (field, date) are overwritten, so resubmitting a date is idempotent.
// Returns the number of entries written.
func (s *Store) UpsertEntries(date string, entries []model.FieldEntryInput) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	// reject unknown fields before touching anything
	for _, e := range entries {
		if _, err := s.GetField(e.DataFieldID); err != nil {
			return 0, fmt.Errorf("unknown field %s: %w", e.DataFieldID, err)
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO field_entries (field_id, entry_date, value)
		VALUES (?, ?, ?)
		ON CONFLICT(field_id, entry_date) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.Exec(e.DataFieldID, date, e.Value); err != nil {
			return 0, fmt.Errorf("failed to upsert entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return len(entries), nil
}

// EntriesForMonth returns the confirmed values for the given fields in
// one month, keyed field id -> entry date -> value. month uses
// model.MonthLayout.
func (s *Store) EntriesForMonth(month string, fieldIDs []string) (map[string]map[string]float64, error) {
	out := make(map[string]map[string]float64, len(fieldIDs))
	if len(fieldIDs) == 0 {
		return out, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(fieldIDs)), ",")
	args := []interface{}{month + "-%"}
	for _, id := range fieldIDs {
		args = append(args, id)
	}

	rows, err := s.db.Query(`
		SELECT field_id, entry_date, value
		FROM field_entries
		WHERE entry_date LIKE ? AND field_id IN (`+placeholders+`)
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var fieldID, date string
		var value float64
		if err := rows.Scan(&fieldID, &date, &value); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		if out[fieldID] == nil {
			out[fieldID] = make(map[string]float64)
		}
		out[fieldID][date] = value
	}
	return out, rows.Err()
}

// CountEntries counts all entries; month narrows to one month when non-empty.
func (s *Store) CountEntries(month string) (int, error) {
	var n int
	var err error
	if month == "" {
		err = s.db.QueryRow("SELECT COUNT(1) FROM field_entries").Scan(&n)
	} else {
		err = s.db.QueryRow("SELECT COUNT(1) FROM field_entries WHERE entry_date LIKE ?", month+"-%").Scan(&n)
	}
	return n, err
}

// MonthsWithEntries lists the distinct months that have at least one
// entry, newest first.
func (s *Store) MonthsWithEntries() ([]string, error) {
	rows, err := s.db.Query(`
		SELECT DISTINCT substr(entry_date, 1, 7) AS ym
		FROM field_entries
		ORDER BY ym DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query months: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var ym string
		if err := rows.Scan(&ym); err != nil {
			return nil, fmt.Errorf("failed to scan month: %w", err)
		}
		out = append(out, ym)
	}
	return out, rows.Err()
}
