package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim defines the contract the presentation and run layers drive.
//
// Step performs one full update and reports how many agents were active
// (unhappy) at its start; zero means the simulation has converged.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64) error
	Step() (int, error)
	Cells() []uint8
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) (Sim, error)

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}
