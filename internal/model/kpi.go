package model

import "time"

// KPI a computed metric definition. The formula is evaluated by the
// calculation backend; this service only stores the definition and
// tracks when a submission touched one of its source fields.
type KPI struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Formula        string     `json:"formula"`
	RoomID         *string    `json:"roomId"`
	SourceFieldIDs []string   `json:"sourceFieldIds"`
	RecalculatedAt *time.Time `json:"recalculatedAt"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}
