// Copyright (c) 2026 Librarian Team
// Librarian - terminal library catalogue manager
// This source code is licensed under the MIT license found in the LICENSE file.

package console

import (
	"fmt"
	"io"
	"os"

	"github.com/toeirei/librarian/internal/logging"
	"golang.org/x/term"
)

const (
	fallbackWidth  = 80
	fallbackHeight = 24

	seqShowCursor = "\x1b[?25h"
	seqHideCursor = "\x1b[?25l"
	seqClear      = "\x1b[2J\x1b[H"
)

// Terminal is a Surface backed by a real ANSI terminal. There is no
// offscreen buffer: every call goes straight to the output.
//
// The cursor position is tracked locally instead of being queried from the
// terminal, which would need a round trip through the input stream.
type Terminal struct {
	in  *os.File
	out io.Writer
	fd  int
	x   int
	y   int
}

// NewTerminal returns a Terminal reading keys from in and drawing to out.
// out is usually os.Stdout; its descriptor is used for size queries.
func NewTerminal(in, out *os.File) *Terminal {
	return &Terminal{in: in, out: out, fd: int(out.Fd())}
}

// IsTerminal reports whether both ends are attached to a terminal.
func (t *Terminal) IsTerminal() bool {
	return term.IsTerminal(int(t.in.Fd())) && term.IsTerminal(t.fd)
}

func (t *Terminal) Size() (int, int) {
	w, h, err := term.GetSize(t.fd)
	if err != nil || w <= 0 || h <= 0 {
		logging.Debugf("console: terminal size unavailable (%v), using %dx%d", err, fallbackWidth, fallbackHeight)
		return fallbackWidth, fallbackHeight
	}
	return w, h
}

func (t *Terminal) CursorPosition() (int, int) { return t.x, t.y }

func (t *Terminal) MoveCursor(x, y int) {
	t.x, t.y = x, y
	fmt.Fprintf(t.out, "\x1b[%d;%dH", y+1, x+1)
}

func (t *Terminal) WriteAt(x, y int, text string) {
	t.MoveCursor(x, y)
	_, _ = io.WriteString(t.out, text)
	t.x += VisibleWidth(text)
}

func (t *Terminal) SetCursorVisible(visible bool) {
	if visible {
		_, _ = io.WriteString(t.out, seqShowCursor)
		return
	}
	_, _ = io.WriteString(t.out, seqHideCursor)
}

func (t *Terminal) Clear() {
	_, _ = io.WriteString(t.out, seqClear)
	t.x, t.y = 0, 0
}

// Resize asks the terminal emulator to change its size in cells.
func (t *Terminal) Resize(width, height int) {
	fmt.Fprintf(t.out, "\x1b[8;%d;%dt", height, width)
}

// ReadKey switches the input to raw mode for exactly one key press. A read
// failure (for example a closed stdin) is reported as KeyEscape so that
// selection loops unwind instead of spinning.
func (t *Terminal) ReadKey() Key {
	fd := int(t.in.Fd())
	if state, err := term.MakeRaw(fd); err == nil {
		defer func() { _ = term.Restore(fd, state) }()
	}
	var buf [8]byte
	n, err := t.in.Read(buf[:])
	if err != nil {
		logging.Debugf("console: key read failed: %v", err)
		return KeyEscape
	}
	return DecodeKey(buf[:n])
}
