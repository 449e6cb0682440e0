package schelling

// Neighborhood tallies the Moore neighbourhood of c, clipped at the grid
// edges. total counts occupied neighbours and bad those of a different type
// than the cell at c.
func Neighborhood(g *Grid, c Coord) (bad, total int) {
	own := g.At(c)
	n := g.Size()
	for row := max(0, c.Row-1); row < min(n, c.Row+2); row++ {
		for col := max(0, c.Col-1); col < min(n, c.Col+2); col++ {
			if row == c.Row && col == c.Col {
				continue
			}
			v := g.At(Coord{Row: row, Col: col})
			if !v.Occupied() {
				continue
			}
			total++
			if v != own {
				bad++
			}
		}
	}
	return bad, total
}

// Unhappy reports whether the agent at c wants to move. An agent with no
// occupied neighbours is always unhappy.
func Unhappy(g *Grid, c Coord, threshold float64) bool {
	bad, total := Neighborhood(g, c)
	if total == 0 {
		return true
	}
	return float64(bad)/float64(total) > threshold
}

// Identify scans the grid in row-major order and returns the coordinates of
// unhappy agents and of empty cells. The grid is not modified.
func Identify(g *Grid, threshold float64) (unhappy, empty []Coord) {
	n := g.Size()
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			c := Coord{Row: row, Col: col}
			if g.At(c) == Empty {
				empty = append(empty, c)
				continue
			}
			if Unhappy(g, c, threshold) {
				unhappy = append(unhappy, c)
			}
		}
	}
	return unhappy, empty
}
