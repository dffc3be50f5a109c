package store

import (
	"database/sql"
	"fmt"
	"strconv"
)

// Well-known config keys.
const (
	ConfigOrgName      = "org_name"
	ConfigCurrentMonth = "current_month" // MonthLayout, e.g. 2024-01
	ConfigWeekStart    = "week_start"   // monday/sunday
)

// GetConfig reads one config value.
func (s *Store) GetConfig(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM config WHERE key = ?", key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("config key not found: %s", key)
		}
		return "", err
	}
	return value, nil
}

// GetConfigInt reads an integer config value.
func (s *Store) GetConfigInt(key string) (int, error) {
	value, err := s.GetConfig(key)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(value)
}

// SetConfig upserts one config value.
func (s *Store) SetConfig(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO config (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = ?, updated_at = CURRENT_TIMESTAMP
	`, key, value, value)
	return err
}

// GetAllConfig reads all config values.
func (s *Store) GetAllConfig() (map[string]string, error) {
	rows, err := s.db.Query("SELECT key, value FROM config")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	config := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		config[key] = value
	}

	return config, rows.Err()
}

// GetCurrentMonth returns the month the org is currently entering data
// for, or "" when none has been set yet.
func (s *Store) GetCurrentMonth() (string, error) {
	month, err := s.GetConfig(ConfigCurrentMonth)
	if err != nil {
		return "", nil
	}
	return month, nil
}

// SetCurrentMonth records the active entry month.
func (s *Store) SetCurrentMonth(month string) error {
	return s.SetConfig(ConfigCurrentMonth, month)
}
