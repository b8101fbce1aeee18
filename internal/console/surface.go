// Copyright (c) 2026 Librarian Team
// Librarian - terminal library catalogue manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package console is the text-layout and paginated-selection engine used by
// every interactive screen of Librarian. It draws bordered frames onto a
// cell-addressable Surface, splits long lists into pages, runs the blocking
// arrow-key selection loop and renders ad hoc tables from loose records.
//
// Everything in this package is single-threaded. A Surface must not be
// written to by anything else while a render or selection is in progress.
package console // import "github.com/toeirei/librarian/internal/console"

// Surface is the set of raw terminal operations the engine needs.
// Coordinates are zero-based cells, (column, row).
type Surface interface {
	// Size returns the visible area in character cells.
	Size() (width, height int)
	CursorPosition() (x, y int)
	MoveCursor(x, y int)
	// WriteAt writes text starting at the given cell. It does not clip.
	WriteAt(x, y int, text string)
	SetCursorVisible(visible bool)
	// ReadKey blocks until one key is pressed.
	ReadKey() Key
	// Clear wipes the visible area and homes the cursor.
	Clear()
}

// Resizer is implemented by surfaces that can change their own size, such as
// terminals honouring the xterm window manipulation sequence.
type Resizer interface {
	Resize(width, height int)
}
