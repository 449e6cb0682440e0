package core

import "testing"

func TestByteGridBounds(t *testing.T) {
	g := NewByteGrid(4, 3)
	if len(g.Cells()) != 12 {
		t.Fatalf("expected 12 cells, got %d", len(g.Cells()))
	}
	cases := []struct {
		x, y int
		in   bool
	}{
		{0, 0, true},
		{3, 2, true},
		{-1, 0, false},
		{4, 0, false},
		{0, 3, false},
	}
	for _, c := range cases {
		if got := g.InBounds(c.x, c.y); got != c.in {
			t.Fatalf("InBounds(%d,%d) = %v, want %v", c.x, c.y, got, c.in)
		}
	}
	if idx := g.Index(2, 1); idx != 6 {
		t.Fatalf("Index(2,1) = %d, want 6", idx)
	}
}

func TestByteGridCloneIsIndependent(t *testing.T) {
	g := NewByteGrid(2, 2)
	g.Cells()[0] = 7
	clone := g.Clone()
	clone.Cells()[0] = 1
	if g.Cells()[0] != 7 {
		t.Fatal("writing the clone must not change the source grid")
	}
	g.Cells()[0] = 0
	if clone.Cells()[0] != 1 {
		t.Fatal("writing the source must not change the clone")
	}
}

func TestNewByteGridClampsDimensions(t *testing.T) {
	g := NewByteGrid(0, -2)
	if g.W != 1 || g.H != 1 {
		t.Fatalf("expected 1x1 grid, got %dx%d", g.W, g.H)
	}
}
