package schelling

import (
	"fmt"

	"schelling/internal/core"
)

// Move records one relocation performed by Relocate.
type Move struct {
	From, To Coord
	Cell     Cell
}

// Relocate moves every agent in unhappy, in order, to a cell drawn uniformly
// from the empty pool. The pool is consumed as working storage: each chosen
// destination leaves it and the vacated origin joins it immediately, so a cell
// freed earlier in the pass can receive a later agent.
func Relocate(g *Grid, unhappy, empty []Coord, rng *core.RNG) ([]Move, error) {
	pool := empty
	moves := make([]Move, 0, len(unhappy))
	for _, agent := range unhappy {
		if len(pool) == 0 {
			return moves, fmt.Errorf("%w: relocated %d of %d agents", ErrNoCapacity, len(moves), len(unhappy))
		}
		i := rng.IntN(len(pool))
		dest := pool[i]
		cell := g.At(agent)
		g.Set(dest, cell)
		g.Set(agent, Empty)
		// Replacing the slot removes dest and adds the origin in one write.
		pool[i] = agent
		moves = append(moves, Move{From: agent, To: dest, Cell: cell})
	}
	return moves, nil
}
