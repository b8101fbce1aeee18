// Copyright (c) 2026 Librarian Team
// Librarian - terminal library catalogue manager
// This source code is licensed under the MIT license found in the LICENSE file.

package console

import (
	"fmt"
	"testing"
)

func TestPages_CountAndCoverage(t *testing.T) {
	for n := 0; n <= 35; n++ {
		for c := 1; c <= 12; c++ {
			rows := make([]int, n)
			for i := range rows {
				rows[i] = i
			}
			pages := Pages(rows, c)
			if want := (n + c - 1) / c; len(pages) != want {
				t.Fatalf("n=%d c=%d: %d pages, want %d", n, c, len(pages), want)
			}
			next := 0
			for _, p := range pages {
				if len(p) == 0 || len(p) > c {
					t.Fatalf("n=%d c=%d: bad page size %d", n, c, len(p))
				}
				for _, v := range p {
					if v != next {
						t.Fatalf("n=%d c=%d: got row %d, want %d", n, c, v, next)
					}
					next++
				}
			}
			if next != n {
				t.Fatalf("n=%d c=%d: pages cover %d rows", n, c, next)
			}
		}
	}
}

func TestPaginator_SinglePage(t *testing.T) {
	p := NewPaginator(3, 10)
	if p.Paginated() || p.PageCount() != 1 {
		t.Fatalf("3 rows in capacity 10 must be one unpaginated page, got %d", p.PageCount())
	}
	if start, end := p.Bounds(); start != 0 || end != 3 {
		t.Fatalf("Bounds = [%d,%d)", start, end)
	}
}

func TestPaginator_ClampsAtBoundaries(t *testing.T) {
	p := NewPaginator(25, 10)
	var sizes []int
	for i := 0; i < p.PageCount(); i++ {
		p.SetPage(i)
		s, e := p.Bounds()
		sizes = append(sizes, e-s)
	}
	if fmt.Sprint(sizes) != "[10 10 5]" {
		t.Fatalf("page sizes = %v", sizes)
	}

	p.SetPage(0)
	if p.Prev() || p.Page() != 0 {
		t.Fatalf("Prev on first page must be a no-op")
	}
	p.Next()
	p.Next()
	if p.Page() != 2 {
		t.Fatalf("two Next from page 0 should land on page 2, got %d", p.Page())
	}
	if p.Next() || p.Page() != 2 {
		t.Fatalf("Next on last page must be a no-op, got page %d", p.Page())
	}
	p.SetPage(99)
	if p.Page() != 2 {
		t.Fatalf("SetPage must clamp, got %d", p.Page())
	}
	p.SetPage(-4)
	if p.Page() != 0 {
		t.Fatalf("SetPage must clamp negatives, got %d", p.Page())
	}
}

func TestPaginator_SetCapacityKeepsAnchorVisible(t *testing.T) {
	p := NewPaginator(25, 10)
	p.SetPage(2) // rows 20..24
	p.SetCapacity(4, 21)
	start, end := p.Bounds()
	if 21 < start || 21 >= end {
		t.Fatalf("anchor 21 not on active page [%d,%d)", start, end)
	}
	if p.PageCount() != 7 {
		t.Fatalf("PageCount after resize = %d, want 7", p.PageCount())
	}
}

func TestPageCapacity(t *testing.T) {
	if got := PageCapacity(13); got != 10 {
		t.Fatalf("PageCapacity(13) = %d, want 10", got)
	}
	if got := PageCapacity(2); got != 1 {
		t.Fatalf("PageCapacity must be at least 1, got %d", got)
	}
}
