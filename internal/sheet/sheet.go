// Package sheet assembles the monthly data-entry grid payload from the
// store: one row per daily field grouped by room, one column per day of
// the month, plus fill statistics.
package sheet

import (
	"fmt"
	"time"

	"kpiroom/internal/model"
	"kpiroom/internal/store"
)

// OrgWideGroupID room_id used for fields that belong to no room.
const OrgWideGroupID = ""

// OrgWideGroupName display name of the no-room group.
const OrgWideGroupName = "Organization"

// Builder store-backed sheet assembly
type Builder struct {
	store *store.Store
}

// NewBuilder creates a sheet builder.
func NewBuilder(st *store.Store) *Builder {
	return &Builder{store: st}
}

// MonthDates expands a month selector into its run of ISO dates.
func MonthDates(month string) ([]string, error) {
	first, err := time.Parse(model.MonthLayout, month)
	if err != nil {
		return nil, fmt.Errorf("invalid month %q: %w", month, err)
	}
	days := first.AddDate(0, 1, -1).Day()
	dates := make([]string, 0, days)
	for d := 0; d < days; d++ {
		dates = append(dates, first.AddDate(0, 0, d).Format(model.DateLayout))
	}
	return dates, nil
}

// Build assembles the grid for one month. An empty roomID includes
// every room plus org-wide fields; a set roomID narrows to that room
// and its descendants.
func (b *Builder) Build(month, roomID string) (*model.SheetData, error) {
	dates, err := MonthDates(month)
	if err != nil {
		return nil, err
	}

	interval := model.IntervalDaily
	opts := store.FieldQueryOptions{Interval: &interval}
	if roomID != "" {
		roomIDs, err := b.store.RoomWithDescendants(roomID)
		if err != nil {
			return nil, err
		}
		opts.RoomIDs = roomIDs
	}

	fields, err := b.store.ListFields(opts)
	if err != nil {
		return nil, err
	}

	fieldIDs := make([]string, len(fields))
	for i, f := range fields {
		fieldIDs[i] = f.ID
	}
	values, err := b.store.EntriesForMonth(month, fieldIDs)
	if err != nil {
		return nil, err
	}

	groups, filled := groupByRoom(fields, values)
	if err := b.resolveRoomNames(groups); err != nil {
		return nil, err
	}

	return &model.SheetData{
		Dates:       dates,
		RoomGroups:  groups,
		TotalCells:  len(dates) * len(fields),
		TotalFilled: filled,
	}, nil
}

// groupByRoom buckets field rows by owning room, preserving the
// store's name ordering inside each group. Org-wide fields come first.
func groupByRoom(fields []*model.Field, values map[string]map[string]float64) ([]model.SheetRoomGroup, int) {
	index := make(map[string]int)
	var groups []model.SheetRoomGroup
	filled := 0

	group := func(roomID string) *model.SheetRoomGroup {
		if i, ok := index[roomID]; ok {
			return &groups[i]
		}
		groups = append(groups, model.SheetRoomGroup{RoomID: roomID})
		index[roomID] = len(groups) - 1
		return &groups[len(groups)-1]
	}

	// stable group order: org-wide first, then rooms in field order
	group(OrgWideGroupID)

	for _, f := range fields {
		roomID := OrgWideGroupID
		if f.RoomID != nil {
			roomID = *f.RoomID
		}
		g := group(roomID)

		vals := values[f.ID]
		if vals == nil {
			vals = map[string]float64{}
		}
		filled += len(vals)

		g.Fields = append(g.Fields, model.SheetField{
			DataFieldID: f.ID,
			Name:        f.Name,
			Unit:        f.Unit,
			Values:      vals,
		})
	}

	// drop the org-wide bucket if nothing landed in it
	if len(groups) > 0 && groups[0].RoomID == OrgWideGroupID && len(groups[0].Fields) == 0 {
		groups = groups[1:]
	}
	return groups, filled
}

func (b *Builder) resolveRoomNames(groups []model.SheetRoomGroup) error {
	for i := range groups {
		if groups[i].RoomID == OrgWideGroupID {
			groups[i].RoomName = OrgWideGroupName
			continue
		}
		room, err := b.store.GetRoom(groups[i].RoomID)
		if err != nil {
			return err
		}
		groups[i].RoomName = room.Name
	}
	return nil
}

// MonthToDate sums a field's values across the given dates, treating
// missing days as zero.
func MonthToDate(values map[string]float64, dates []string) float64 {
	total := 0.0
	for _, d := range dates {
		total += values[d]
	}
	return total
}
