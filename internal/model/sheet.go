package model

// Sheet payload types. These follow the documented wire contract of the
// data-entry grid, so their JSON keys are snake_case unlike the rest of
// the models.

// SheetField one field row: identity plus the month's confirmed values
type SheetField struct {
	DataFieldID string             `json:"data_field_id"`
	Name        string             `json:"name"`
	Unit        string             `json:"unit,omitempty"`
	Values      map[string]float64 `json:"values"` // entry date -> value
}

// SheetRoomGroup fields grouped under one room
type SheetRoomGroup struct {
	RoomID   string       `json:"room_id"`
	RoomName string       `json:"room_name"`
	Fields   []SheetField `json:"fields"`
}

// SheetData full month grid payload
type SheetData struct {
	Dates       []string         `json:"dates"`
	RoomGroups  []SheetRoomGroup `json:"room_groups"`
	TotalCells  int              `json:"total_cells"`
	TotalFilled int              `json:"total_filled"`
}

// FieldEntryInput one (field, value) pair inside a per-date submission
type FieldEntryInput struct {
	DataFieldID string  `json:"data_field_id"`
	Value       float64 `json:"value"`
}

// SubmitResult response of a per-date submission
type SubmitResult struct {
	EntriesCreated   int `json:"entries_created"`
	KPIsRecalculated int `json:"kpis_recalculated"`
}
