// Package grid implements the client side of the bulk data-entry
// sheet: a dirty-cell overlay on top of the fetched month snapshot, an
// exclusive single-cell editor with keyboard navigation, month-to-date
// rollups, and a batched per-date save.
package grid

import (
	"context"
	"fmt"

	"kpiroom/internal/model"
)

// SheetAPI the REST boundary the grid consumes.
type SheetAPI interface {
	SheetData(ctx context.Context, month, roomID string) (*model.SheetData, error)
	SubmitEntries(ctx context.Context, date string, entries []model.FieldEntryInput) (*model.SubmitResult, error)
}

// Row one field row of the grid in render order
type Row struct {
	FieldID   string
	FieldName string
	Unit      string
	RoomID    string
	RoomName  string
}

// Grid owns the month snapshot, the dirty overlay and the edit session
// for one sheet view. It is driven from a single UI goroutine.
type Grid struct {
	api SheetAPI

	month  string
	roomID string

	snapshot *model.SheetData
	rows     []Row
	rowIndex map[string]int // field id -> row position
	colIndex map[string]int // date -> column position
	values   map[string]map[string]float64

	overlay *Overlay
	editor  editSession
	saving  bool
}

// New creates a grid over the given API. Call Load before anything else.
func New(api SheetAPI) *Grid {
	return &Grid{
		api:     api,
		overlay: NewOverlay(),
	}
}

// Load fetches the snapshot for a month/room selection. Any pending
// edits and the active edit session are discarded; switching filters
// abandons unsaved work by design of the product.
func (g *Grid) Load(ctx context.Context, month, roomID string) error {
	data, err := g.api.SheetData(ctx, month, roomID)
	if err != nil {
		return fmt.Errorf("load sheet: %w", err)
	}

	g.month = month
	g.roomID = roomID
	g.overlay = NewOverlay()
	g.editor = editSession{active: false}
	g.apply(data)
	return nil
}

// apply replaces the snapshot and rebuilds the row/column indexes.
func (g *Grid) apply(data *model.SheetData) {
	g.snapshot = data
	g.rows = g.rows[:0]
	g.rowIndex = make(map[string]int)
	g.colIndex = make(map[string]int, len(data.Dates))
	g.values = make(map[string]map[string]float64)

	for i, d := range data.Dates {
		g.colIndex[d] = i
	}
	for _, group := range data.RoomGroups {
		for _, f := range group.Fields {
			g.rowIndex[f.DataFieldID] = len(g.rows)
			g.rows = append(g.rows, Row{
				FieldID:   f.DataFieldID,
				FieldName: f.Name,
				Unit:      f.Unit,
				RoomID:    group.RoomID,
				RoomName:  group.RoomName,
			})
			g.values[f.DataFieldID] = f.Values
		}
	}
}

// Month returns the loaded month selector.
func (g *Grid) Month() string { return g.month }

// Rows returns the field rows in render order.
func (g *Grid) Rows() []Row { return g.rows }

// Dates returns the month's date columns.
func (g *Grid) Dates() []string {
	if g.snapshot == nil {
		return nil
	}
	return g.snapshot.Dates
}

// Snapshot returns the server-confirmed value for a cell.
func (g *Grid) Snapshot(fieldID, date string) (float64, bool) {
	vals, ok := g.values[fieldID]
	if !ok {
		return 0, false
	}
	v, ok := vals[date]
	return v, ok
}

// Effective returns the value a cell renders with: the pending override
// if one exists, else the snapshot value. ok is false for empty cells.
func (g *Grid) Effective(fieldID, date string) (float64, bool) {
	if v, ok := g.overlay.Get(fieldID, date); ok {
		return v, true
	}
	return g.Snapshot(fieldID, date)
}

// MTD recomputes a field row's month-to-date sum over every date
// column, empty cells counting as zero. The grid is bounded to one
// month of visible fields, so the full rescan per call is fine.
func (g *Grid) MTD(fieldID string) float64 {
	total := 0.0
	for _, d := range g.Dates() {
		if v, ok := g.Effective(fieldID, d); ok {
			total += v
		}
	}
	return total
}

// Dirty reports the number of unsaved cells, rendered as the
// "N unsaved changes" counter.
func (g *Grid) Dirty() int {
	return g.overlay.Len()
}

// Overlay exposes the dirty store for render code.
func (g *Grid) Overlay() *Overlay {
	return g.overlay
}

func (g *Grid) cellAt(row, col int) (fieldID, date string, ok bool) {
	if row < 0 || row >= len(g.rows) {
		return "", "", false
	}
	dates := g.Dates()
	if col < 0 || col >= len(dates) {
		return "", "", false
	}
	return g.rows[row].FieldID, dates[col], true
}
