package store

import (
	"database/sql"
	"fmt"

	"kpiroom/internal/model"
)

// CreateIntegration inserts a connection record.
func (s *Store) CreateIntegration(i *model.Integration) error {
	err := s.Exec(
		"INSERT INTO integrations (id, provider, label, status) VALUES (?, ?, ?, ?)",
		i.ID, i.Provider, i.Label, i.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to insert integration: %w", err)
	}
	return nil
}

// GetIntegration fetches one connection record by id.
func (s *Store) GetIntegration(id string) (*model.Integration, error) {
	var i model.Integration
	err := s.db.QueryRow(
		"SELECT id, provider, label, status, created_at, updated_at FROM integrations WHERE id = ?", id,
	).Scan(&i.ID, &i.Provider, &i.Label, &i.Status, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query integration: %w", err)
	}
	return &i, nil
}

// ListIntegrations returns all connection records, newest first.
func (s *Store) ListIntegrations() ([]*model.Integration, error) {
	rows, err := s.db.Query(
		"SELECT id, provider, label, status, created_at, updated_at FROM integrations ORDER BY created_at DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query integrations: %w", err)
	}
	defer rows.Close()

	var out []*model.Integration
	for rows.Next() {
		var i model.Integration
		if err := rows.Scan(&i.ID, &i.Provider, &i.Label, &i.Status, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan integration: %w", err)
		}
		out = append(out, &i)
	}
	return out, rows.Err()
}

// SetIntegrationStatus updates the connection status.
func (s *Store) SetIntegrationStatus(id, status string) error {
	if _, err := s.GetIntegration(id); err != nil {
		return err
	}
	return s.Exec(
		"UPDATE integrations SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, id,
	)
}

// DeleteIntegration removes a connection record.
func (s *Store) DeleteIntegration(id string) error {
	if _, err := s.GetIntegration(id); err != nil {
		return err
	}
	return s.Exec("DELETE FROM integrations WHERE id = ?", id)
}
