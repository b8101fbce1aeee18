// Copyright (c) 2026 Librarian Team
// Librarian - terminal library catalogue manager
// This source code is licensed under the MIT license found in the LICENSE file.

package console

import "github.com/charmbracelet/lipgloss"

// Console bundles a Surface with its configuration and hands out the
// rendering components. It also offers the line-oriented writer used by
// screens that print free text inside a frame.
type Console struct {
	surface Surface
	cfg     Config
}

// New creates a Console. Zero fields of cfg take their defaults.
func New(s Surface, cfg Config) *Console {
	return &Console{surface: s, cfg: cfg.withDefaults()}
}

func (c *Console) Surface() Surface { return c.surface }
func (c *Console) Config() Config   { return c.cfg }

func (c *Console) Frame() *Frame       { return NewFrame(c.surface, c.cfg) }
func (c *Console) List() *ListView     { return NewListView(c.surface, c.cfg) }
func (c *Console) Selector() *Selector { return NewSelector(c.surface, c.cfg) }

func (c *Console) Table(records []Record) *Table {
	return NewTable(c.surface, c.cfg, records)
}

// Select is shorthand for Selector().Select.
func (c *Console) Select(rows []string, opts ListOptions) (int, error) {
	return c.Selector().Select(rows, opts)
}

// Screen clears the surface and draws an empty frame titled title.
func (c *Console) Screen(title string) {
	c.surface.Clear()
	c.Frame().Draw(title)
}

// Write prints msg at the cursor, truncated so it ends before the right
// border.
func (c *Console) Write(msg string) {
	c.write(msg, nil)
}

func (c *Console) write(msg string, st *lipgloss.Style) {
	width, _ := c.surface.Size()
	x, y := c.surface.CursorPosition()
	msg = Truncate(msg, width-1-x)
	if st != nil {
		msg = st.Render(msg)
	}
	c.surface.WriteAt(x, y, msg)
}

// Writeln prints msg and moves the cursor to the start of the next interior
// line, staying above the bottom border.
func (c *Console) Writeln(msg string) {
	c.Write(msg)
	c.newline()
}

func (c *Console) newline() {
	_, height := c.surface.Size()
	_, y := c.surface.CursorPosition()
	c.surface.MoveCursor(1, min(y+1, max(height-BorderPadding, 1)))
}

// Lines prints each line with Writeln.
func (c *Console) Lines(lines ...string) {
	for _, l := range lines {
		c.Writeln(l)
	}
}

// Error, Success and Warning print a colored advisory line.
func (c *Console) Error(msg string)   { c.styled(errorStyle, msg) }
func (c *Console) Success(msg string) { c.styled(successStyle, msg) }
func (c *Console) Warning(msg string) { c.styled(warningStyle, msg) }

func (c *Console) styled(st lipgloss.Style, msg string) {
	c.write(msg, &st)
	c.newline()
}

// WaitKey blocks until any key is pressed and returns it.
func (c *Console) WaitKey() Key {
	return c.surface.ReadKey()
}
