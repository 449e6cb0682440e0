package core

// ByteGrid stores a 2D grid of byte-sized cell values in row-major order.
// Edges are hard boundaries; there is no wraparound.
type ByteGrid struct {
	W, H int
	data []uint8
}

// NewByteGrid allocates a grid with the given dimensions.
func NewByteGrid(w, h int) *ByteGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &ByteGrid{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *ByteGrid) Index(x, y int) int { return y*g.W + x }

// InBounds reports whether (x, y) addresses a cell of the grid.
func (g *ByteGrid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Clone returns an independent copy of the grid.
func (g *ByteGrid) Clone() *ByteGrid {
	data := make([]uint8, len(g.data))
	copy(data, g.data)
	return &ByteGrid{W: g.W, H: g.H, data: data}
}
