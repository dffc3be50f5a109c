package grid

import (
	"errors"
	"strconv"
	"strings"
)

// ErrNoSuchCell returned by StartEdit for a cell outside the grid.
var ErrNoSuchCell = errors.New("cell not in grid")

// Nav keyboard navigation directions
type Nav int

const (
	NavTab        Nav = iota // next column, wrapping to the next row
	NavShiftTab              // previous column, wrapping to the previous row
	NavEnter                 // next row, same column
	NavShiftEnter            // previous row, same column
)

// CommitResult outcome of committing the active draft
type CommitResult int

const (
	// CommitIdle no cell was being edited
	CommitIdle CommitResult = iota
	// CommitBlank empty draft, nothing changed
	CommitBlank
	// CommitInvalid draft did not parse as a number; edit abandoned,
	// overlay untouched. Callers decide whether to surface this.
	CommitInvalid
	// CommitUnchanged value equals the snapshot; any override removed
	CommitUnchanged
	// CommitDirty override recorded in the overlay
	CommitDirty
)

// editSession a single in-progress cell edit. Only one exists per grid.
type editSession struct {
	active bool
	row    int
	col    int
	draft  string
}

// StartEdit begins editing a cell. An edit already in progress is
// committed first so switching cells never drops input silently.
func (g *Grid) StartEdit(fieldID, date string) error {
	row, ok := g.rowIndex[fieldID]
	if !ok {
		return ErrNoSuchCell
	}
	col, ok := g.colIndex[date]
	if !ok {
		return ErrNoSuchCell
	}

	if g.editor.active {
		g.Commit()
	}
	g.editor = editSession{active: true, row: row, col: col}
	return nil
}

// Editing returns the cell currently being edited, if any.
func (g *Grid) Editing() (fieldID, date string, ok bool) {
	if !g.editor.active {
		return "", "", false
	}
	return g.cellAt(g.editor.row, g.editor.col)
}

// Draft returns the active draft text.
func (g *Grid) Draft() string {
	return g.editor.draft
}

// SetDraft replaces the active draft text. No-op when idle.
func (g *Grid) SetDraft(text string) {
	if g.editor.active {
		g.editor.draft = text
	}
}

// Commit parses the draft and folds it into the overlay, returning to
// the idle state. Blank drafts are no-ops; unparseable drafts abandon
// the edit without touching the overlay; values equal to the snapshot
// remove any stale override instead of recording one.
func (g *Grid) Commit() CommitResult {
	if !g.editor.active {
		return CommitIdle
	}
	session := g.editor
	g.editor = editSession{active: false}

	fieldID, date, ok := g.cellAt(session.row, session.col)
	if !ok {
		return CommitIdle
	}

	text := strings.TrimSpace(session.draft)
	if text == "" {
		return CommitBlank
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return CommitInvalid
	}

	if snap, ok := g.Snapshot(fieldID, date); ok {
		if g.overlay.ClearIfUnchanged(fieldID, date, &snap, value) {
			return CommitUnchanged
		}
	}
	g.overlay.Set(fieldID, date, value)
	return CommitDirty
}

// Cancel discards the draft and returns to idle. The overlay keeps
// whatever was committed before the edit started.
func (g *Grid) Cancel() {
	g.editor = editSession{active: false}
}

// Navigate commits the active cell, then opens an edit on the adjacent
// cell in the given direction. Out-of-bounds targets leave the grid
// idle with the prior edit committed. The commit outcome is returned.
func (g *Grid) Navigate(dir Nav) CommitResult {
	if !g.editor.active {
		return CommitIdle
	}
	row, col := g.editor.row, g.editor.col
	result := g.Commit()

	cols := len(g.Dates())
	switch dir {
	case NavTab:
		col++
		if col >= cols {
			col = 0
			row++
		}
	case NavShiftTab:
		col--
		if col < 0 {
			col = cols - 1
			row--
		}
	case NavEnter:
		row++
	case NavShiftEnter:
		row--
	}

	if fieldID, date, ok := g.cellAt(row, col); ok {
		_ = g.StartEdit(fieldID, date)
	}
	return result
}
