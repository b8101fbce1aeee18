// Copyright (c) 2026 Librarian Team
// Librarian - terminal library catalogue manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package consoletest provides an in-memory console.Surface for tests.
package consoletest

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/toeirei/librarian/internal/console"
)

// Screen is a fixed-size grid of cells fed by a script of keys. Escape
// sequences are stripped on write so lines read back as plain text. When the
// script runs out ReadKey keeps returning KeyEscape, which unwinds any
// selection loop.
type Screen struct {
	Width, Height int

	grid    [][]rune
	keys    []console.Key
	x, y    int
	visible bool

	// Reads counts ReadKey calls; Clears counts Clear calls.
	Reads  int
	Clears int
}

var _ console.Surface = (*Screen)(nil)
var _ console.Resizer = (*Screen)(nil)

// New creates a blank screen that will answer ReadKey with keys in order.
func New(width, height int, keys ...console.Key) *Screen {
	s := &Screen{Width: width, Height: height, keys: keys, visible: true}
	s.reset()
	return s
}

// Push appends keys to the script.
func (s *Screen) Push(keys ...console.Key) { s.keys = append(s.keys, keys...) }

// Pending returns the number of unread scripted keys.
func (s *Screen) Pending() int { return len(s.keys) }

func (s *Screen) reset() {
	s.grid = make([][]rune, s.Height)
	for y := range s.grid {
		s.grid[y] = []rune(strings.Repeat(" ", s.Width))
	}
}

func (s *Screen) Size() (int, int)           { return s.Width, s.Height }
func (s *Screen) CursorPosition() (int, int) { return s.x, s.y }
func (s *Screen) MoveCursor(x, y int)        { s.x, s.y = x, y }
func (s *Screen) SetCursorVisible(v bool)    { s.visible = v }

// CursorVisible reports the last visibility set.
func (s *Screen) CursorVisible() bool { return s.visible }

func (s *Screen) WriteAt(x, y int, text string) {
	s.x, s.y = x, y
	for _, r := range ansi.Strip(text) {
		if s.y >= 0 && s.y < s.Height && s.x >= 0 && s.x < s.Width {
			s.grid[s.y][s.x] = r
		}
		s.x++
	}
}

func (s *Screen) ReadKey() console.Key {
	s.Reads++
	if len(s.keys) == 0 {
		return console.KeyEscape
	}
	k := s.keys[0]
	s.keys = s.keys[1:]
	return k
}

func (s *Screen) Clear() {
	s.Clears++
	s.reset()
	s.x, s.y = 0, 0
}

// Resize changes the grid size and blanks it.
func (s *Screen) Resize(width, height int) {
	s.Width, s.Height = width, height
	s.reset()
}

// Line returns row y with trailing spaces removed.
func (s *Screen) Line(y int) string {
	if y < 0 || y >= s.Height {
		return ""
	}
	return strings.TrimRight(string(s.grid[y]), " ")
}

// Interior returns row y without the frame's border columns, trimmed.
func (s *Screen) Interior(y int) string {
	line := []rune(s.Line(y))
	if len(line) < 2 {
		return ""
	}
	end := min(len(line), s.Width-1)
	return strings.TrimSpace(string(line[1:end]))
}

// Text returns the whole grid, one trimmed line per row.
func (s *Screen) Text() string {
	lines := make([]string, s.Height)
	for y := range lines {
		lines[y] = s.Line(y)
	}
	return strings.Join(lines, "\n")
}

// Contains reports whether any row contains sub.
func (s *Screen) Contains(sub string) bool {
	return strings.Contains(s.Text(), sub)
}
