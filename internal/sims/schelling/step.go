package schelling

import (
	"fmt"

	"schelling/internal/core"
)

// State tracks whether a simulation still has unhappy agents.
type State int

const (
	Running State = iota
	Converged
)

func (s State) String() string {
	if s == Converged {
		return "converged"
	}
	return "running"
}

// Step runs one classification pass followed by one relocation pass and
// returns how many agents were unhappy at its start. Zero signals
// convergence, in which case the grid is left untouched.
func Step(g *Grid, threshold float64, rng *core.RNG) (int, error) {
	if err := checkRatio("relocation threshold", threshold); err != nil {
		return 0, err
	}
	unhappy, empty := Identify(g, threshold)
	if len(unhappy) == 0 {
		return 0, nil
	}
	if _, err := Relocate(g, unhappy, empty, rng); err != nil {
		return len(unhappy), err
	}
	return len(unhappy), nil
}

// Simulation owns a grid together with its random source and run state.
type Simulation struct {
	cfg Config

	grid *Grid
	rng  *core.RNG

	iteration   int
	lastUnhappy int
	state       State
}

// New validates cfg and builds a simulation with a freshly filled grid.
func New(cfg Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Simulation{cfg: cfg}
	if err := s.Reset(cfg.Seed); err != nil {
		return nil, err
	}
	return s, nil
}

// NewFromGrid wraps an existing grid, for example one restored from disk.
// The grid size overrides cfg.Size. The random source is seeded from cfg.Seed.
func NewFromGrid(cfg Config, g *Grid, iteration int) (*Simulation, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil grid", ErrInvalidParameter)
	}
	cfg.Size = g.Size()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Simulation{
		cfg:       cfg,
		grid:      g,
		rng:       core.NewRNG(cfg.Seed),
		iteration: iteration,
	}, nil
}

// Name returns the simulation identifier.
func (s *Simulation) Name() string { return "schelling" }

// Size reports the dimensions of the current grid. A size set through
// SetIntParameter takes effect on the next Reset.
func (s *Simulation) Size() core.Size {
	n := s.grid.Size()
	return core.Size{W: n, H: n}
}

// Config returns the active configuration.
func (s *Simulation) Config() Config { return s.cfg }

// Reset discards the grid and fills a new one from seed with the current
// parameters.
func (s *Simulation) Reset(seed int64) error {
	if err := s.cfg.Validate(); err != nil {
		return err
	}
	rng := core.NewRNG(seed)
	g, err := Initialize(s.cfg.Size, s.cfg.Params.EmptyRatio, s.cfg.Params.TypeARatio, rng)
	if err != nil {
		return err
	}
	s.cfg.Seed = seed
	s.grid = g
	s.rng = rng
	s.iteration = 0
	s.lastUnhappy = 0
	s.state = Running
	return nil
}

// Step advances the simulation by one classification and relocation cycle.
// Once converged, further calls return 0 and leave the grid unchanged.
func (s *Simulation) Step() (int, error) {
	unhappy, err := Step(s.grid, s.cfg.Params.RelocationThreshold, s.rng)
	if err != nil {
		return unhappy, err
	}
	if s.state == Running {
		s.iteration++
	}
	s.lastUnhappy = unhappy
	if unhappy == 0 {
		s.state = Converged
	} else {
		s.state = Running
	}
	return unhappy, nil
}

// Cells returns a copy of the current cell values in row-major order.
func (s *Simulation) Cells() []uint8 { return s.grid.Snapshot().cells }

// Snapshot returns a read-only view of the grid.
func (s *Simulation) Snapshot() View { return s.grid.Snapshot() }

// Counts tallies the current grid contents.
func (s *Simulation) Counts() Counts { return s.grid.Counts() }

// Iteration returns the number of steps taken while running.
func (s *Simulation) Iteration() int { return s.iteration }

// LastUnhappy returns the unhappy count reported by the latest step.
func (s *Simulation) LastUnhappy() int { return s.lastUnhappy }

// State returns the run state.
func (s *Simulation) State() State { return s.state }

// Status summarizes the run state for the HUD.
func (s *Simulation) Status() []string {
	counts := s.Counts()
	return []string{
		fmt.Sprintf("Iteration: %d", s.iteration),
		fmt.Sprintf("Unhappy agents: %d", s.lastUnhappy),
		fmt.Sprintf("State: %s", s.state),
		fmt.Sprintf("A/B/empty: %d/%d/%d", counts.TypeA, counts.TypeB, counts.Empty),
	}
}

func init() {
	core.Register("schelling", func(cfg map[string]string) (core.Sim, error) {
		sim, err := New(FromMap(cfg))
		if err != nil {
			return nil, err
		}
		return sim, nil
	})
}
