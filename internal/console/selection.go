// Copyright (c) 2026 Librarian Team
// Librarian - terminal library catalogue manager
// This source code is licensed under the MIT license found in the LICENSE file.

package console

import "errors"

// NoSelection is the index returned when a selection is cancelled.
const NoSelection = -1

// ErrCancelled is returned when the user backs out of a selection.
var ErrCancelled = errors.New("console: selection cancelled")

type selectionState int

const (
	browsingPage selectionState = iota
	selectingRow
)

// Selector runs the interactive row picker on top of a ListView.
//
// Lists that fit on one page start with the cursor on the first row. Longer
// lists start in page browsing: left and right flip pages and Enter picks
// the page. While a row is highlighted, up and down move within the page,
// digits jump to an ordinal on the page, Enter commits and Escape returns to
// page browsing. Escape while browsing cancels.
type Selector struct {
	list *ListView
}

// NewSelector creates a Selector drawing on s.
func NewSelector(s Surface, cfg Config) *Selector {
	return &Selector{list: NewListView(s, cfg)}
}

// Select blocks until a row is committed and returns its absolute index.
// It returns NoSelection with ErrCancelled or ErrEmptyInput otherwise.
func (sel *Selector) Select(rows []string, opts ListOptions) (int, error) {
	if len(rows) == 0 {
		sel.list.reportEmpty()
		return NoSelection, ErrEmptyInput
	}
	surface := sel.list.surface
	surface.SetCursorVisible(false)
	defer surface.SetCursorVisible(true)

	pager := sel.list.paginator(len(rows))
	pager.SetPage(opts.Page)
	state := browsingPage
	if !pager.Paginated() {
		state = selectingRow
	}
	cursor, _ := pager.Bounds()

	for {
		// The surface may have been resized since the last pass.
		pager.SetCapacity(sel.list.capacity(), cursor)
		start, end := pager.Bounds()
		if cursor < start || cursor >= end {
			cursor = start
		}

		if state == selectingRow {
			sel.list.draw(rows, opts, pager, cursor)
		} else {
			sel.list.draw(rows, opts, pager, -1)
		}

		key := surface.ReadKey()
		switch state {
		case browsingPage:
			switch key {
			case KeyLeft:
				if pager.Prev() {
					cursor, _ = pager.Bounds()
				}
			case KeyRight:
				if pager.Next() {
					cursor, _ = pager.Bounds()
				}
			case KeyEnter:
				cursor, _ = pager.Bounds()
				state = selectingRow
			case KeyEscape:
				return NoSelection, ErrCancelled
			}
		case selectingRow:
			switch key {
			case KeyUp:
				cursor = max(cursor-1, start)
			case KeyDown:
				cursor = min(cursor+1, end-1)
			case KeyEnter:
				return cursor, nil
			case KeyEscape:
				state = browsingPage
			default:
				if d, ok := key.Digit(); ok {
					cursor = jumpTo(d, start, end, cursor)
				}
			}
		}
	}
}

// jumpTo moves to the d-th row of the page (0 meaning the tenth) when that
// row exists, otherwise it keeps cursor.
func jumpTo(d, start, end, cursor int) int {
	if d == 0 {
		d = 10
	}
	if i := start + d - 1; i < end {
		return i
	}
	return cursor
}
