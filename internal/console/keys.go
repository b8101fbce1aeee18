// Copyright (c) 2026 Librarian Team
// Librarian - terminal library catalogue manager
// This source code is licensed under the MIT license found in the LICENSE file.

package console

import "fmt"

// Key is a decoded key press.
type Key int

const (
	KeyOther Key = iota
	KeyEnter
	KeyEscape
	KeyBackspace
	KeySpace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
)

var keyNames = map[Key]string{
	KeyOther:     "other",
	KeyEnter:     "enter",
	KeyEscape:    "esc",
	KeyBackspace: "backspace",
	KeySpace:     "space",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
}

func (k Key) String() string {
	if d, ok := k.Digit(); ok {
		return fmt.Sprintf("%d", d)
	}
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

// Digit reports the numeric value of a digit key.
func (k Key) Digit() (int, bool) {
	if k >= Key0 && k <= Key9 {
		return int(k - Key0), true
	}
	return 0, false
}

// DecodeKey maps the bytes produced by a single key press in raw mode to a
// Key. Unknown sequences decode to KeyOther.
func DecodeKey(b []byte) Key {
	if len(b) == 0 {
		return KeyOther
	}
	if len(b) == 1 {
		c := b[0]
		switch {
		case c == '\r' || c == '\n':
			return KeyEnter
		case c == 0x1b:
			return KeyEscape
		case c == 0x7f || c == 0x08:
			return KeyBackspace
		case c == ' ':
			return KeySpace
		case c >= '0' && c <= '9':
			return Key0 + Key(c-'0')
		}
		return KeyOther
	}
	// CSI (ESC [) and SS3 (ESC O) cursor keys.
	if len(b) == 3 && b[0] == 0x1b && (b[1] == '[' || b[1] == 'O') {
		switch b[2] {
		case 'A':
			return KeyUp
		case 'B':
			return KeyDown
		case 'C':
			return KeyRight
		case 'D':
			return KeyLeft
		}
	}
	return KeyOther
}
