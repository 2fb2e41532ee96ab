// Package life implements Conway's Game of Life on a square toroidal grid.
package life

import (
	"hash/fnv"

	"conway/pkg/core"
)

// Cell is the state of a single grid position.
type Cell uint8

const (
	Dead  Cell = 0
	Alive Cell = 1
)

// Delta reports how many cells changed state during a Step.
type Delta struct {
	Births int
	Deaths int
}

// Changed reports whether the step altered any cell.
func (d Delta) Changed() bool { return d.Births != 0 || d.Deaths != 0 }

// Snapshot is a detached copy of the grid state.
type Snapshot struct {
	Size       int
	Generation int
	Cells      []Cell
}

// At returns the state at (row, col); out-of-range positions read as Dead.
func (s Snapshot) At(row, col int) Cell {
	if row < 0 || row >= s.Size || col < 0 || col >= s.Size {
		return Dead
	}
	return s.Cells[row*s.Size+col]
}

// Grid is an N×N Life board with a generation counter. N is fixed at
// construction.
type Grid struct {
	n   int
	gen int
	cur *core.ByteGrid
	nxt *core.ByteGrid
}

// New returns an all-dead grid of size×size cells at generation 0.
func New(size int) (*Grid, error) {
	if err := ValidateSize(size); err != nil {
		return nil, err
	}
	return &Grid{
		n:   size,
		cur: core.NewByteGrid(size, size),
		nxt: core.NewByteGrid(size, size),
	}, nil
}

// ValidateSize reports an InvalidSizeError for non-positive sizes.
func ValidateSize(size int) error {
	if size <= 0 {
		return &InvalidSizeError{Size: size}
	}
	return nil
}

// Name returns the simulation identifier.
func (g *Grid) Name() string { return "life" }

// Size returns N.
func (g *Grid) Size() int { return g.n }

// Generation returns the number of steps since creation or the last reset.
func (g *Grid) Generation() int { return g.gen }

// Cells exposes the current row-major cell buffer. The slice is replaced on
// every Step, so callers must not retain it.
func (g *Grid) Cells() []uint8 { return g.cur.Cells() }

// Population returns the number of live cells.
func (g *Grid) Population() int { return g.cur.Count() }

// Alive reports whether (row, col) is alive. Out-of-range reads are dead.
func (g *Grid) Alive(row, col int) bool {
	if !g.cur.InBounds(col, row) {
		return false
	}
	return g.cur.At(col, row) == uint8(Alive)
}

// Toggle flips the cell at (row, col). Coordinates outside the grid are
// ignored and reported as false.
func (g *Grid) Toggle(row, col int) bool {
	if !g.cur.InBounds(col, row) {
		return false
	}
	cells := g.cur.Cells()
	idx := g.cur.Index(col, row)
	cells[idx] ^= 1
	return true
}

// Set assigns state c to (row, col).
func (g *Grid) Set(row, col int, c Cell) error {
	if !g.cur.InBounds(col, row) {
		return &OutOfBoundsError{Row: row, Col: col, Size: g.n}
	}
	v := uint8(Dead)
	if c != Dead {
		v = uint8(Alive)
	}
	g.cur.Cells()[g.cur.Index(col, row)] = v
	return nil
}

// Step advances the grid by one generation using B3/S23 with toroidal
// adjacency. Every cell of the next generation is derived from the previous
// generation only.
func (g *Grid) Step() Delta {
	n := g.n
	cur := g.cur.Cells()
	nxt := g.nxt.Cells()
	var d Delta
	for row := 0; row < n; row++ {
		up := ((row-1+n)%n) * n
		mid := row * n
		down := ((row + 1) % n) * n
		for col := 0; col < n; col++ {
			left := (col - 1 + n) % n
			right := (col + 1) % n
			neighbors := int(cur[up+left]) + int(cur[up+col]) + int(cur[up+right]) +
				int(cur[mid+left]) + int(cur[mid+right]) +
				int(cur[down+left]) + int(cur[down+col]) + int(cur[down+right])

			idx := mid + col
			alive := cur[idx] == uint8(Alive)
			next := nextState(alive, neighbors)
			switch {
			case alive && !next:
				d.Deaths++
			case !alive && next:
				d.Births++
			}
			nxt[idx] = 0
			if next {
				nxt[idx] = uint8(Alive)
			}
		}
	}
	g.cur, g.nxt = g.nxt, g.cur
	g.gen++
	return d
}

func nextState(alive bool, neighbors int) bool {
	if alive {
		return neighbors == 2 || neighbors == 3
	}
	return neighbors == 3
}

// Reset kills every cell and zeroes the generation counter. N is unchanged.
func (g *Grid) Reset() {
	g.cur.Clear()
	g.nxt.Clear()
	g.gen = 0
}

// Randomize fills the grid from a deterministic RNG where each cell is alive
// with probability density, and zeroes the generation counter.
func (g *Grid) Randomize(seed int64, density float64) {
	core.NewRNG(seed).FillBinary(g.cur.Cells(), density)
	g.gen = 0
}

// Snapshot returns a copy of the current state.
func (g *Grid) Snapshot() Snapshot {
	src := g.cur.Cells()
	cells := make([]Cell, len(src))
	for i, v := range src {
		cells[i] = Cell(v)
	}
	return Snapshot{Size: g.n, Generation: g.gen, Cells: cells}
}

// Hash returns an FNV-1a digest of the current cells.
func (g *Grid) Hash() uint64 {
	h := fnv.New64a()
	h.Write(g.cur.Cells())
	return h.Sum64()
}
