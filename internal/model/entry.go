package model

import "time"

// DateLayout wire format for entry dates.
const DateLayout = "2006-01-02"

// MonthLayout wire format for month selectors.
const MonthLayout = "2006-01"

// FieldEntry a server-confirmed value for one (field, date) pair
type FieldEntry struct {
	ID        int64     `json:"id"`
	FieldID   string    `json:"fieldId"`
	EntryDate string    `json:"entryDate"` // DateLayout
	Value     float64   `json:"value"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
