// Copyright (c) 2026 Librarian Team
// Librarian - terminal library catalogue manager
// This source code is licensed under the MIT license found in the LICENSE file.

package console

// statusLines is the number of interior rows reserved under a paginated list.
const statusLines = 1

// PageCapacity returns how many rows fit on one page of a frame drawn on a
// surface of the given height. It is never less than one.
func PageCapacity(height int) int {
	return max(height-BorderPadding-statusLines, 1)
}

// Paginator splits total rows into pages of a fixed capacity and tracks the
// active page. Moving past either end is a no-op; pages never wrap.
type Paginator struct {
	total    int
	capacity int
	page     int
}

// NewPaginator creates a paginator positioned on the first page.
func NewPaginator(total, capacity int) *Paginator {
	return &Paginator{total: max(total, 0), capacity: max(capacity, 1)}
}

// PageCount is ceil(total / capacity).
func (p *Paginator) PageCount() int {
	return (p.total + p.capacity - 1) / p.capacity
}

// Paginated reports whether there is more than one page.
func (p *Paginator) Paginated() bool { return p.PageCount() > 1 }

// Page returns the zero-based active page.
func (p *Paginator) Page() int { return p.page }

// Capacity returns the number of rows per page.
func (p *Paginator) Capacity() int { return p.capacity }

// Bounds returns the half-open row range [start, end) of the active page.
func (p *Paginator) Bounds() (start, end int) {
	start = p.page * p.capacity
	end = min(start+p.capacity, p.total)
	return min(start, end), end
}

// SetPage moves to page i, clamped to the valid range.
func (p *Paginator) SetPage(i int) {
	p.page = min(max(i, 0), max(p.PageCount()-1, 0))
}

// Next moves one page forward and reports whether the page changed.
func (p *Paginator) Next() bool {
	before := p.page
	p.SetPage(p.page + 1)
	return p.page != before
}

// Prev moves one page back and reports whether the page changed.
func (p *Paginator) Prev() bool {
	before := p.page
	p.SetPage(p.page - 1)
	return p.page != before
}

// SetCapacity repaginates for a new page size, keeping the row at index
// anchor on the active page.
func (p *Paginator) SetCapacity(capacity, anchor int) {
	capacity = max(capacity, 1)
	if capacity == p.capacity {
		return
	}
	p.capacity = capacity
	p.SetPage(max(anchor, 0) / capacity)
}

// PageOf returns the page holding row index i.
func (p *Paginator) PageOf(i int) int {
	return min(max(i, 0)/p.capacity, max(p.PageCount()-1, 0))
}

// Pages splits rows into consecutive pages of the given capacity.
func Pages[T any](rows []T, capacity int) [][]T {
	p := NewPaginator(len(rows), capacity)
	out := make([][]T, 0, p.PageCount())
	for i := 0; i < p.PageCount(); i++ {
		p.SetPage(i)
		start, end := p.Bounds()
		out = append(out, rows[start:end])
	}
	return out
}
