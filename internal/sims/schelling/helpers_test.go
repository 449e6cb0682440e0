package schelling

import "testing"

// gridFromRows builds a grid from rows using '.', 'A' and 'B'.
func gridFromRows(t *testing.T, rows ...string) *Grid {
	t.Helper()
	g, err := NewGrid(len(rows))
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	for r, row := range rows {
		if len(row) != len(rows) {
			t.Fatalf("row %d has %d cells, want %d", r, len(row), len(rows))
		}
		for c, ch := range row {
			var v Cell
			switch ch {
			case '.':
				v = Empty
			case 'A':
				v = TypeA
			case 'B':
				v = TypeB
			default:
				t.Fatalf("unknown cell %q", ch)
			}
			g.Set(Coord{Row: r, Col: c}, v)
		}
	}
	return g
}
