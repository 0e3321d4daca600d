// Package spatial implements the fixed-grid bucket-tree spatial index:
// a Rx×Ry grid of fixed-capacity sorted cells storing only entity ids,
// with a merged strictly-increasing iterator used to drive pairwise
// overlap queries without the scheduler ever touching cell internals.
package spatial

import (
	"sort"

	"github.com/kestrelecs/kestrel/internal/core/ecs"
	"github.com/kestrelecs/kestrel/pkg/generic"
)

// Region is an inclusive rectangle of grid-cell coordinates.
type Region struct {
	MinX, MinY, MaxX, MaxY int
}

// SizeX returns the number of columns the region spans.
func (r Region) SizeX() int { return r.MaxX - r.MinX + 1 }

// SizeY returns the number of rows the region spans.
func (r Region) SizeY() int { return r.MaxY - r.MinY + 1 }

// Index maps a cell coordinate inside the region to a dense index in
// [0, SizeX()*SizeY()). The original implementation computed this as
// (x-minX) * SizeY() * (y-minY), which collapses to zero whenever
// y==minY regardless of x — every cell in the region's first row
// aliased to index 0. The correct row-major formula is used here.
func (r Region) Index(x, y int) int {
	return (x-r.MinX)*r.SizeY() + (y - r.MinY)
}

// Grid is a fixed Rx×Ry array of cells, each a sorted, fixed-capacity
// list of entity ids. Coordinates are cell coordinates, not world-space:
// callers convert world positions to cell ranges (a Region) themselves.
type Grid struct {
	rx, ry     int
	maxPerCell int
	cells      [][]ecs.EntityID
	scratch    *generic.Pool[[]ecs.EntityID]
}

// NewGrid builds a grid of rx columns by ry rows, each cell holding at
// most maxPerCell ids.
func NewGrid(rx, ry, maxPerCell int) *Grid {
	g := &Grid{
		rx:         rx,
		ry:         ry,
		maxPerCell: maxPerCell,
		cells:      make([][]ecs.EntityID, rx*ry),
	}
	for i := range g.cells {
		g.cells[i] = make([]ecs.EntityID, 0, maxPerCell)
	}
	g.scratch = generic.NewPool(func() []ecs.EntityID { return make([]ecs.EntityID, 0, maxPerCell*4) })
	return g
}

// Dims returns the grid's column and row counts.
func (g *Grid) Dims() (rx, ry int) { return g.rx, g.ry }

func (g *Grid) cellAt(x, y int) []ecs.EntityID { return g.cells[y*g.rx+x] }

func (g *Grid) setCellAt(x, y int, cell []ecs.EntityID) { g.cells[y*g.rx+x] = cell }

func findSorted(cell []ecs.EntityID, id ecs.EntityID) int {
	return sort.Search(len(cell), func(i int) bool { return cell[i] >= id })
}

// Add inserts id into every cell covered by region, in sorted order. It
// is a no-op for a cell that already contains id, and fails with
// ErrCellFull if any covered cell is already at maxPerCell and does not
// already contain id.
func (g *Grid) Add(id ecs.EntityID, region Region) error {
	for x := region.MinX; x <= region.MaxX; x++ {
		for y := region.MinY; y <= region.MaxY; y++ {
			cell := g.cellAt(x, y)
			i := findSorted(cell, id)
			if i < len(cell) && cell[i] == id {
				continue
			}
			if len(cell) >= g.maxPerCell {
				return ErrCellFull
			}
			cell = append(cell, 0)
			copy(cell[i+1:], cell[i:])
			cell[i] = id
			g.setCellAt(x, y, cell)
		}
	}
	return nil
}

// Remove deletes id from every cell covered by region, shifting
// remaining entries down. It is a no-op for cells that don't contain id.
func (g *Grid) Remove(id ecs.EntityID, region Region) {
	for x := region.MinX; x <= region.MaxX; x++ {
		for y := region.MinY; y <= region.MaxY; y++ {
			cell := g.cellAt(x, y)
			i := findSorted(cell, id)
			if i >= len(cell) || cell[i] != id {
				continue
			}
			cell = append(cell[:i], cell[i+1:]...)
			g.setCellAt(x, y, cell)
		}
	}
}

// BorrowScratch returns a pooled, zero-length scratch buffer for Iter.
// Release it with ReleaseScratch when done.
func (g *Grid) BorrowScratch() []ecs.EntityID { return g.scratch.Get()[:0] }

// ReleaseScratch returns a scratch buffer borrowed from BorrowScratch to
// the pool.
func (g *Grid) ReleaseScratch(buf []ecs.EntityID) { g.scratch.Put(buf) }

// Iter produces the merged, strictly increasing, duplicate-free sequence
// of entity ids present in any cell covered by region with id >
// lowerBound, appended into scratch (which is returned, possibly
// reallocated). It merges via a per-cell cursor: each step scans every
// covered cell's current cursor for the smallest id greater than the
// last emitted id, emits it, and advances only the cursor(s) that
// produced it.
//
// lowerBound lets overlap iteration (ecs.QueryOverlap1x1/2x2 driven from
// a Holder built on top of Grid) skip self-pairs and already-processed
// pairs by passing the first entity's own id: pair (A,B) is then only
// ever emitted once, as (A,B) with A<B.
func (g *Grid) Iter(lowerBound ecs.EntityID, region Region, scratch []ecs.EntityID) []ecs.EntityID {
	n := region.SizeX() * region.SizeY()
	cursors := make([]int, n)
	last := lowerBound

	for {
		best := ecs.InvalidEntityID
		bestCursor := -1
		idx := 0
		for x := region.MinX; x <= region.MaxX; x++ {
			for y := region.MinY; y <= region.MaxY; y++ {
				cell := g.cellAt(x, y)
				for cursors[idx] < len(cell) && cell[cursors[idx]] <= last {
					cursors[idx]++
				}
				if cursors[idx] < len(cell) {
					candidate := cell[cursors[idx]]
					if best == ecs.InvalidEntityID || candidate < best {
						best = candidate
						bestCursor = idx
					}
				}
				idx++
			}
		}
		if !best.IsValid() {
			return scratch
		}
		scratch = append(scratch, best)
		cursors[bestCursor]++
		last = best
	}
}
