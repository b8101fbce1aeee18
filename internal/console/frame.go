// Copyright (c) 2026 Librarian Team
// Librarian - terminal library catalogue manager
// This source code is licensed under the MIT license found in the LICENSE file.

package console

import "strings"

// BorderPadding is the number of rows (or columns) taken by a frame border.
const BorderPadding = 2

// Frame draws a border around the whole visible surface.
type Frame struct {
	surface Surface
	borders Borders
}

// NewFrame creates a Frame drawing with the configured border characters.
func NewFrame(s Surface, cfg Config) *Frame {
	return &Frame{surface: s, borders: cfg.withDefaults().Borders}
}

// Draw overwrites the whole surface with an empty frame, centering title in
// the top border when it fits, and leaves the cursor on the first interior
// cell.
func (f *Frame) Draw(title string) {
	width, height := f.surface.Size()
	if width <= 0 || height <= 0 {
		return
	}
	hor := strings.Repeat(string(f.borders.Horizontal), width)
	vert := string(f.borders.Vertical) + strings.Repeat(" ", max(width-BorderPadding, 0)) + string(f.borders.Vertical)

	f.surface.WriteAt(0, 0, f.topBorder(title, width))
	for y := 1; y < height-1; y++ {
		f.surface.WriteAt(0, y, vert)
	}
	if height > 1 {
		f.surface.WriteAt(0, height-1, hor)
	}
	f.surface.MoveCursor(1, 1)
}

// Interior returns the size of the region inside the border.
func (f *Frame) Interior() (width, height int) {
	w, h := f.surface.Size()
	return max(w-BorderPadding, 0), max(h-BorderPadding, 0)
}

func (f *Frame) topBorder(title string, width int) string {
	h := string(f.borders.Horizontal)
	tw := VisibleWidth(title)
	if title == "" || tw > width {
		return strings.Repeat(h, width)
	}
	left := (width - tw) / 2
	return strings.Repeat(h, left) + title + strings.Repeat(h, width-tw-left)
}
