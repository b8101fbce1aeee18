// Copyright (c) 2026 Librarian Team
// Librarian - terminal library catalogue manager
// This source code is licensed under the MIT license found in the LICENSE file.

package console

import "github.com/toeirei/librarian/internal/i18n"

// Borders holds the characters used to draw frames.
type Borders struct {
	Vertical   rune
	Horizontal rune
}

// Config is the rendering configuration shared by every component built on
// the same Console. It is set once at startup.
type Config struct {
	Borders Borders
	// MaxCellWidth caps the width of a single table column.
	MaxCellWidth int
	// PageStatus formats the "page X of Y" line shown under paginated lists.
	PageStatus func(page, total int) string
	// EmptyMessage is shown when asked to render an empty list.
	EmptyMessage func() string
}

// DefaultMaxCellWidth is the column cap used when Config leaves it unset.
const DefaultMaxCellWidth = 24

// DefaultConfig returns the configuration used when nothing was configured:
// '|' and '-' borders and localized status lines.
func DefaultConfig() Config {
	return Config{
		Borders:      Borders{Vertical: '|', Horizontal: '-'},
		MaxCellWidth: DefaultMaxCellWidth,
		PageStatus: func(page, total int) string {
			return i18n.T("console.page_status", page, total)
		},
		EmptyMessage: func() string {
			return i18n.T("console.empty_list")
		},
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Borders.Vertical == 0 {
		c.Borders.Vertical = def.Borders.Vertical
	}
	if c.Borders.Horizontal == 0 {
		c.Borders.Horizontal = def.Borders.Horizontal
	}
	if c.MaxCellWidth <= 0 {
		c.MaxCellWidth = def.MaxCellWidth
	}
	if c.PageStatus == nil {
		c.PageStatus = def.PageStatus
	}
	if c.EmptyMessage == nil {
		c.EmptyMessage = def.EmptyMessage
	}
	return c
}
