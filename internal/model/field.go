package model

import "time"

// Entry intervals. The data-entry sheet only grids daily fields;
// other intervals are listed but entered elsewhere.
const (
	IntervalDaily   = "daily"
	IntervalWeekly  = "weekly"
	IntervalMonthly = "monthly"
	IntervalCustom  = "custom"
)

// ValidInterval reports whether s is a known entry interval.
func ValidInterval(s string) bool {
	switch s {
	case IntervalDaily, IntervalWeekly, IntervalMonthly, IntervalCustom:
		return true
	}
	return false
}

// Field a raw trackable quantity entered by users and consumed by KPI formulas
type Field struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	RoomID    *string   `json:"roomId"` // nil means organization-wide
	Interval  string    `json:"interval"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
