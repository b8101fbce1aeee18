// Copyright (c) 2026 Librarian Team
// Librarian - terminal library catalogue manager
// This source code is licensed under the MIT license found in the LICENSE file.

package console

import (
	"errors"
	"fmt"

	"github.com/toeirei/librarian/internal/logging"
)

// ErrEmptyInput is returned when asked to render or select from zero rows.
var ErrEmptyInput = errors.New("console: empty input")

const (
	cursorMarker = "> "
	cursorBlank  = "  "
)

// ListOptions control how a list is rendered.
type ListOptions struct {
	// Enumerate prefixes every row with its 1-based ordinal.
	Enumerate bool
	// Header is drawn centered in the top border.
	Header string
	// Page selects the page to render; it is clamped.
	Page int
}

// ListView renders a possibly multi-page list inside a frame.
type ListView struct {
	surface Surface
	cfg     Config
	frame   *Frame
}

// NewListView creates a ListView drawing on s.
func NewListView(s Surface, cfg Config) *ListView {
	cfg = cfg.withDefaults()
	return &ListView{surface: s, cfg: cfg, frame: NewFrame(s, cfg)}
}

// Render draws one page of rows. Empty input prints a message at the cursor
// and returns ErrEmptyInput without drawing anything else.
func (l *ListView) Render(rows []string, opts ListOptions) error {
	if len(rows) == 0 {
		l.reportEmpty()
		return ErrEmptyInput
	}
	pager := l.paginator(len(rows))
	pager.SetPage(opts.Page)
	l.draw(rows, opts, pager, -1)
	return nil
}

// Browse renders rows and lets the user flip pages with the left and right
// arrows until Enter or Escape is pressed.
func (l *ListView) Browse(rows []string, opts ListOptions) error {
	if len(rows) == 0 {
		l.reportEmpty()
		return ErrEmptyInput
	}
	pager := l.paginator(len(rows))
	pager.SetPage(opts.Page)
	l.surface.SetCursorVisible(false)
	defer l.surface.SetCursorVisible(true)
	for {
		start, _ := pager.Bounds()
		pager.SetCapacity(l.capacity(), start)
		l.draw(rows, opts, pager, -1)
		switch l.surface.ReadKey() {
		case KeyLeft:
			pager.Prev()
		case KeyRight:
			pager.Next()
		case KeyEnter, KeyEscape:
			return nil
		}
	}
}

func (l *ListView) capacity() int {
	_, h := l.surface.Size()
	return PageCapacity(h)
}

func (l *ListView) paginator(n int) *Paginator {
	return NewPaginator(n, l.capacity())
}

// draw renders the active page. A cursor >= 0 marks the highlighted row.
func (l *ListView) draw(rows []string, opts ListOptions, pager *Paginator, cursor int) {
	l.frame.Draw(opts.Header)
	width, _ := l.frame.Interior()

	start, end := pager.Bounds()
	y := 1
	for i := start; i < end; i++ {
		text := formatRow(rows[i], i, opts.Enumerate, cursor)
		text = Truncate(text, width)
		if i == cursor {
			text = selectedStyle.Render(text)
		}
		l.surface.WriteAt(1, y, text)
		y++
	}
	if pager.Paginated() {
		status := Truncate(l.cfg.PageStatus(pager.Page()+1, pager.PageCount()), width)
		l.surface.WriteAt(1, y, statusStyle.Render(status))
	}
	l.surface.MoveCursor(1, y)
}

// formatRow builds the plain text of row i before truncation.
func formatRow(row string, i int, enumerate bool, cursor int) string {
	if enumerate {
		row = fmt.Sprintf("%2d) %s", i+1, row)
	}
	if cursor < 0 {
		return row
	}
	if i == cursor {
		return cursorMarker + row
	}
	return cursorBlank + row
}

func (l *ListView) reportEmpty() {
	msg := l.cfg.EmptyMessage()
	logging.Warnf("console: %s", msg)
	x, y := l.surface.CursorPosition()
	l.surface.WriteAt(x, y, errorStyle.Render(msg))
}
