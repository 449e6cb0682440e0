// Package snapshot persists a single grid state as msgpack. A file holds one
// state; no history is kept.
package snapshot

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"schelling/internal/sims/schelling"
)

// Version is the current encoding version.
const Version = 1

// ErrIncompatible reports a snapshot that cannot be restored.
var ErrIncompatible = errors.New("incompatible snapshot")

// Params is the encoded form of schelling.Params.
type Params struct {
	EmptyRatio          float64 `msgpack:"empty_ratio"`
	TypeARatio          float64 `msgpack:"type_a_ratio"`
	RelocationThreshold float64 `msgpack:"relocation_threshold"`
}

// Snapshot is one encoded grid state with the parameters that produced it.
type Snapshot struct {
	Version   int     `msgpack:"version"`
	Size      int     `msgpack:"size"`
	Iteration int     `msgpack:"iteration"`
	Seed      int64   `msgpack:"seed"`
	Params    Params  `msgpack:"params"`
	Cells     []uint8 `msgpack:"cells"`
}

// FromSimulation captures the current state of sim.
func FromSimulation(sim *schelling.Simulation) Snapshot {
	cfg := sim.Config()
	return Snapshot{
		Version:   Version,
		Size:      sim.Size().W,
		Iteration: sim.Iteration(),
		Seed:      cfg.Seed,
		Params: Params{
			EmptyRatio:          cfg.Params.EmptyRatio,
			TypeARatio:          cfg.Params.TypeARatio,
			RelocationThreshold: cfg.Params.RelocationThreshold,
		},
		Cells: sim.Cells(),
	}
}

// Config returns the engine configuration recorded in the snapshot.
func (s Snapshot) Config() schelling.Config {
	return schelling.Config{
		Size: s.Size,
		Seed: s.Seed,
		Params: schelling.Params{
			EmptyRatio:          s.Params.EmptyRatio,
			TypeARatio:          s.Params.TypeARatio,
			RelocationThreshold: s.Params.RelocationThreshold,
		},
	}
}

// Grid rebuilds the recorded grid.
func (s Snapshot) Grid() (*schelling.Grid, error) {
	return schelling.GridFromCells(s.Size, s.Cells)
}

// Restore rebuilds a simulation that continues from the recorded state.
func (s Snapshot) Restore() (*schelling.Simulation, error) {
	g, err := s.Grid()
	if err != nil {
		return nil, err
	}
	return schelling.NewFromGrid(s.Config(), g, s.Iteration)
}

// Write encodes s to w.
func Write(w io.Writer, s Snapshot) error {
	if s.Version == 0 {
		s.Version = Version
	}
	if err := msgpack.NewEncoder(w).Encode(&s); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return nil
}

// Read decodes and checks a snapshot from r.
func Read(r io.Reader) (Snapshot, error) {
	var s Snapshot
	if err := msgpack.NewDecoder(r).Decode(&s); err != nil {
		return Snapshot{}, fmt.Errorf("decoding snapshot: %w", err)
	}
	if s.Version != Version {
		return Snapshot{}, fmt.Errorf("%w: version %d, want %d", ErrIncompatible, s.Version, Version)
	}
	if s.Size <= 0 || s.Size > schelling.MaxSize || len(s.Cells) != s.Size*s.Size {
		return Snapshot{}, fmt.Errorf("%w: %d cells for size %d", ErrIncompatible, len(s.Cells), s.Size)
	}
	return s, nil
}

// Save writes s to path, replacing any existing file.
func Save(path string, s Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot file: %w", err)
	}
	if err := Write(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load reads a snapshot from path.
func Load(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("opening snapshot file: %w", err)
	}
	defer f.Close()
	return Read(f)
}
