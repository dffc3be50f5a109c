package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"kpiroom/internal/model"
)

// CreateKPI inserts a KPI definition.
func (s *Store) CreateKPI(k *model.KPI) error {
	if k.RoomID != nil {
		if _, err := s.GetRoom(*k.RoomID); err != nil {
			return fmt.Errorf("kpi room: %w", err)
		}
	}
	for _, fieldID := range k.SourceFieldIDs {
		if _, err := s.GetField(fieldID); err != nil {
			return fmt.Errorf("kpi source field %s: %w", fieldID, err)
		}
	}

	sources, err := json.Marshal(k.SourceFieldIDs)
	if err != nil {
		return fmt.Errorf("failed to encode source fields: %w", err)
	}
	err = s.Exec(
		"INSERT INTO kpis (id, name, formula, room_id, source_field_ids) VALUES (?, ?, ?, ?, ?)",
		k.ID, k.Name, k.Formula, k.RoomID, string(sources),
	)
	if err != nil {
		return fmt.Errorf("failed to insert kpi: %w", err)
	}
	return nil
}

func scanKPI(scan func(dest ...interface{}) error) (*model.KPI, error) {
	var k model.KPI
	var sources string
	err := scan(&k.ID, &k.Name, &k.Formula, &k.RoomID, &sources, &k.RecalculatedAt, &k.CreatedAt, &k.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(sources), &k.SourceFieldIDs); err != nil {
		return nil, fmt.Errorf("failed to decode source fields: %w", err)
	}
	return &k, nil
}

// GetKPI fetches one KPI by id.
func (s *Store) GetKPI(id string) (*model.KPI, error) {
	row := s.db.QueryRow(`
		SELECT id, name, formula, room_id, source_field_ids, recalculated_at, created_at, updated_at
		FROM kpis WHERE id = ?
	`, id)
	k, err := scanKPI(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query kpi: %w", err)
	}
	return k, nil
}

// ListKPIs returns all KPI definitions ordered by name.
func (s *Store) ListKPIs() ([]*model.KPI, error) {
	rows, err := s.db.Query(`
		SELECT id, name, formula, room_id, source_field_ids, recalculated_at, created_at, updated_at
		FROM kpis ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query kpis: %w", err)
	}
	defer rows.Close()

	var out []*model.KPI
	for rows.Next() {
		k, err := scanKPI(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan kpi: %w", err)
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

// UpdateKPI patches name/formula/source fields.
func (s *Store) UpdateKPI(id string, name, formula *string, sourceFieldIDs []string) (*model.KPI, error) {
	k, err := s.GetKPI(id)
	if err != nil {
		return nil, err
	}
	if name != nil {
		k.Name = *name
	}
	if formula != nil {
		k.Formula = *formula
	}
	if sourceFieldIDs != nil {
		for _, fieldID := range sourceFieldIDs {
			if _, err := s.GetField(fieldID); err != nil {
				return nil, fmt.Errorf("kpi source field %s: %w", fieldID, err)
			}
		}
		k.SourceFieldIDs = sourceFieldIDs
	}

	sources, err := json.Marshal(k.SourceFieldIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode source fields: %w", err)
	}
	err = s.Exec(
		"UPDATE kpis SET name = ?, formula = ?, source_field_ids = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		k.Name, k.Formula, string(sources), k.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update kpi: %w", err)
	}
	return s.GetKPI(id)
}

// DeleteKPI removes a KPI definition.
func (s *Store) DeleteKPI(id string) error {
	if _, err := s.GetKPI(id); err != nil {
		return err
	}
	return s.Exec("DELETE FROM kpis WHERE id = ?", id)
}

// TouchKPIsForFields marks every KPI referencing one of fieldIDs as
// recalculated and returns how many were touched. Formula evaluation
// itself happens in the calculation backend; this only keeps the
// bookkeeping the grid's submit response reports.
func (s *Store) TouchKPIsForFields(fieldIDs []string) (int, error) {
	if len(fieldIDs) == 0 {
		return 0, nil
	}
	touched := make(map[string]bool, len(fieldIDs))
	for _, id := range fieldIDs {
		touched[id] = true
	}

	kpis, err := s.ListKPIs()
	if err != nil {
		return 0, err
	}

	count := 0
	for _, k := range kpis {
		hit := false
		for _, src := range k.SourceFieldIDs {
			if touched[src] {
				hit = true
				break
			}
		}
		if !hit {
			continue
		}
		if err := s.Exec("UPDATE kpis SET recalculated_at = CURRENT_TIMESTAMP WHERE id = ?", k.ID); err != nil {
			return count, fmt.Errorf("failed to touch kpi: %w", err)
		}
		count++
	}
	return count, nil
}
