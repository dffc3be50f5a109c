package grid

import (
	"context"
	"errors"
	"fmt"

	"kpiroom/internal/model"
)

// ErrSaveInProgress returned when Save is re-entered while a previous
// save is still running.
var ErrSaveInProgress = errors.New("save already in progress")

// SaveResult outcome of one batched save
type SaveResult struct {
	TotalCreated          int
	TotalKPIsRecalculated int
	Errors                []string // one message per failed date
}

// OK reports whether every per-date submission succeeded.
func (r *SaveResult) OK() bool {
	return len(r.Errors) == 0
}

// Save submits every dirty cell, one request per distinct date, in
// ascending date order. The overlay is read once up front: edits made
// while the save is in flight are left for the next save. Failures are
// collected per date rather than short-circuiting; only a fully
// successful save clears the overlay and refetches the snapshot, so a
// partly-failed batch keeps every edit around for a manual retry.
func (g *Grid) Save(ctx context.Context) (*SaveResult, error) {
	if g.saving {
		return nil, ErrSaveInProgress
	}
	g.saving = true
	defer func() { g.saving = false }()

	pending := g.overlay.Entries()
	result := &SaveResult{}
	if len(pending) == 0 {
		return result, nil
	}

	// group by date, preserving the entries' ascending date order
	var dates []string
	byDate := make(map[string][]model.FieldEntryInput)
	for _, e := range pending {
		if _, ok := byDate[e.Date]; !ok {
			dates = append(dates, e.Date)
		}
		byDate[e.Date] = append(byDate[e.Date], model.FieldEntryInput{
			DataFieldID: e.FieldID,
			Value:       e.Value,
		})
	}

	for _, date := range dates {
		resp, err := g.api.SubmitEntries(ctx, date, byDate[date])
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", date, err))
			continue
		}
		result.TotalCreated += resp.EntriesCreated
		result.TotalKPIsRecalculated += resp.KPIsRecalculated
	}

	if !result.OK() {
		return result, nil
	}

	g.overlay.Clear()
	data, err := g.api.SheetData(ctx, g.month, g.roomID)
	if err != nil {
		return result, fmt.Errorf("refetch after save: %w", err)
	}
	g.apply(data)
	return result, nil
}

// Saving reports whether a save is in flight, used to disable the save
// control against double submission.
func (g *Grid) Saving() bool {
	return g.saving
}
