package schelling

import (
	"fmt"

	"schelling/internal/core"
)

// Coord addresses a cell by row and column.
type Coord struct {
	Row, Col int
}

// Counts tallies cell values across a grid.
type Counts struct {
	Empty int
	TypeA int
	TypeB int
}

// Agents returns the number of occupied cells.
func (c Counts) Agents() int { return c.TypeA + c.TypeB }

// Grid is a square matrix of cells. Only the step functions mutate it.
type Grid struct {
	n     int
	cells *core.ByteGrid
}

// NewGrid allocates an all-empty n×n grid.
func NewGrid(n int) (*Grid, error) {
	if n <= 0 || n > MaxSize {
		return nil, fmt.Errorf("%w: size must be within [1,%d], got %d", ErrInvalidParameter, MaxSize, n)
	}
	return &Grid{n: n, cells: core.NewByteGrid(n, n)}, nil
}

// Initialize builds an n×n grid where each cell is drawn independently: Empty
// with probability emptyRatio, TypeA with (1-emptyRatio)*typeARatio and TypeB
// with the remainder.
func Initialize(n int, emptyRatio, typeARatio float64, rng *core.RNG) (*Grid, error) {
	if err := checkFill(emptyRatio, typeARatio); err != nil {
		return nil, err
	}
	g, err := NewGrid(n)
	if err != nil {
		return nil, err
	}
	pEmpty, pA, _ := Params{EmptyRatio: emptyRatio, TypeARatio: typeARatio}.Probabilities()
	cells := g.cells.Cells()
	for i := range cells {
		u := rng.Float64()
		switch {
		case u < pEmpty:
			cells[i] = uint8(Empty)
		case u < pEmpty+pA:
			cells[i] = uint8(TypeA)
		default:
			cells[i] = uint8(TypeB)
		}
	}
	return g, nil
}

// GridFromCells rebuilds a grid from row-major cell values.
func GridFromCells(n int, cells []uint8) (*Grid, error) {
	g, err := NewGrid(n)
	if err != nil {
		return nil, err
	}
	if len(cells) != n*n {
		return nil, fmt.Errorf("%w: expected %d cells, got %d", ErrInvalidParameter, n*n, len(cells))
	}
	for i, v := range cells {
		if !Cell(v).Valid() {
			return nil, fmt.Errorf("%w: cell %d holds unknown value %d", ErrInvalidParameter, i, v)
		}
	}
	copy(g.cells.Cells(), cells)
	return g, nil
}

// Size returns the side length of the grid.
func (g *Grid) Size() int { return g.n }

// At returns the value at c.
func (g *Grid) At(c Coord) Cell {
	return Cell(g.cells.Cells()[g.cells.Index(c.Col, c.Row)])
}

// Set stores v at c.
func (g *Grid) Set(c Coord, v Cell) {
	g.cells.Cells()[g.cells.Index(c.Col, c.Row)] = uint8(v)
}

// Counts tallies the grid contents.
func (g *Grid) Counts() Counts { return countCells(g.cells.Cells()) }

// Snapshot returns a read-only copy of the current grid state.
func (g *Grid) Snapshot() View {
	return View{n: g.n, cells: g.cells.Clone().Cells()}
}

// View is an immutable snapshot of a grid, safe to hand to renderers.
type View struct {
	n     int
	cells []uint8
}

// Size returns the side length of the snapshot.
func (v View) Size() int { return v.n }

// At returns the value at c.
func (v View) At(c Coord) Cell { return Cell(v.cells[c.Row*v.n+c.Col]) }

// Cells returns a fresh row-major copy of the snapshot values.
func (v View) Cells() []uint8 {
	out := make([]uint8, len(v.cells))
	copy(out, v.cells)
	return out
}

// Counts tallies the snapshot contents.
func (v View) Counts() Counts { return countCells(v.cells) }

func countCells(cells []uint8) Counts {
	var c Counts
	for _, v := range cells {
		switch Cell(v) {
		case Empty:
			c.Empty++
		case TypeA:
			c.TypeA++
		case TypeB:
			c.TypeB++
		}
	}
	return c
}
