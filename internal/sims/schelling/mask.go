package schelling

// DissatisfactionMask returns, per cell, the fraction of occupied neighbours
// of a different type. Isolated agents score 1 and empty cells 0.
func (s *Simulation) DissatisfactionMask() []float32 {
	return dissatisfaction(s.grid)
}

// UnhappyMask marks unhappy agents with 1 under the current threshold.
func (s *Simulation) UnhappyMask() []float32 {
	n := s.grid.Size()
	mask := make([]float32, n*n)
	unhappy, _ := Identify(s.grid, s.cfg.Params.RelocationThreshold)
	for _, c := range unhappy {
		mask[c.Row*n+c.Col] = 1
	}
	return mask
}

func dissatisfaction(g *Grid) []float32 {
	n := g.Size()
	mask := make([]float32, n*n)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			c := Coord{Row: row, Col: col}
			if g.At(c) == Empty {
				continue
			}
			bad, total := Neighborhood(g, c)
			if total == 0 {
				mask[row*n+col] = 1
				continue
			}
			mask[row*n+col] = float32(bad) / float32(total)
		}
	}
	return mask
}
