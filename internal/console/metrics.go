// Copyright (c) 2026 Librarian Team
// Librarian - terminal library catalogue manager
// This source code is licensed under the MIT license found in the LICENSE file.

package console

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const ellipsis = "..."

// DisplayWidth returns the number of cells s occupies. Every ASCII or UTF-8
// lead byte counts as one cell and continuation bytes count as none, so a
// Cyrillic title is as wide as its letter count.
func DisplayWidth(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i]&0xC0 != 0x80 {
			n++
		}
	}
	return n
}

// VisibleWidth is DisplayWidth of s with ANSI escape sequences removed.
func VisibleWidth(s string) int {
	return DisplayWidth(ansi.Strip(s))
}

// Truncate shortens s to at most maxCells cells, replacing the tail with
// "...". It returns "" when maxCells is too small to hold the ellipsis.
func Truncate(s string, maxCells int) string {
	if DisplayWidth(s) <= maxCells {
		return s
	}
	if maxCells < len(ellipsis) {
		return ""
	}
	return prefix(s, maxCells-len(ellipsis)) + ellipsis
}

// prefix returns the longest prefix of s that is n cells wide.
func prefix(s string, n int) string {
	cells := 0
	for i := 0; i < len(s); i++ {
		if s[i]&0xC0 == 0x80 {
			continue
		}
		if cells == n {
			return s[:i]
		}
		cells++
	}
	return s
}

// PadRight pads s with spaces up to width cells.
func PadRight(s string, width int) string {
	return s + spaces(width-DisplayWidth(s))
}

// Center places s in the middle of width cells, extra space going right.
func Center(s string, width int) string {
	gap := width - DisplayWidth(s)
	if gap <= 0 {
		return s
	}
	left := gap / 2
	return spaces(left) + s + spaces(gap-left)
}

func spaces(n int) string {
	return strings.Repeat(" ", max(n, 0))
}
