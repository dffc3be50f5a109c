package grid

import "sort"

// Overlay in-memory map of pending cell edits, layered over the
// server-fetched snapshot. At most one pending value exists per
// (field, date) key; the overlay is owned by a single Grid instance
// and never does I/O.
type Overlay struct {
	values map[string]float64
}

// NewOverlay creates an empty overlay.
func NewOverlay() *Overlay {
	return &Overlay{values: make(map[string]float64)}
}

// Get returns the pending override for a cell, if any.
func (o *Overlay) Get(fieldID, date string) (float64, bool) {
	v, ok := o.values[CellKey(fieldID, date)]
	return v, ok
}

// Set inserts or replaces the override for a cell.
func (o *Overlay) Set(fieldID, date string, value float64) {
	o.values[CellKey(fieldID, date)] = value
}

// ClearIfUnchanged removes the cell's override when proposed equals the
// known server value, so no-op edits never linger as dirty markers.
// Reports whether the proposal was a no-op.
func (o *Overlay) ClearIfUnchanged(fieldID, date string, original *float64, proposed float64) bool {
	if original == nil || *original != proposed {
		return false
	}
	delete(o.values, CellKey(fieldID, date))
	return true
}

// Clear drops every override. Called after a successful save-and-refetch.
func (o *Overlay) Clear() {
	o.values = make(map[string]float64)
}

// Len reports the number of unsaved cells.
func (o *Overlay) Len() int {
	return len(o.values)
}

// Entry one pending cell edit
type Entry struct {
	FieldID string
	Date    string
	Value   float64
}

// Entries returns the pending edits ordered by date then field, the
// order batched save walks them in.
func (o *Overlay) Entries() []Entry {
	out := make([]Entry, 0, len(o.values))
	for key, v := range o.values {
		fieldID, date := SplitCellKey(key)
		out = append(out, Entry{FieldID: fieldID, Date: date, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].FieldID < out[j].FieldID
	})
	return out
}
