package schelling

import (
	"fmt"
	"math"
	"strconv"
)

// probabilityTolerance bounds the drift allowed when the three fill
// probabilities are summed.
const probabilityTolerance = 1e-6

// MaxSize is the largest accepted grid side length. It keeps n*n well inside
// int range.
const MaxSize = 1 << 15

// Params holds the occupancy ratios and the relocation threshold.
type Params struct {
	// EmptyRatio is the fraction of cells left empty.
	EmptyRatio float64
	// TypeARatio is the fraction of the population that is type A.
	TypeARatio float64
	// RelocationThreshold is the dissimilar-neighbour fraction above which an
	// agent is unhappy. A fraction exactly equal to it is tolerated.
	RelocationThreshold float64
}

// Config controls the grid dimensions and seeding of a simulation.
type Config struct {
	Size int
	Seed int64

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Size: 100,
		Seed: 42,
		Params: Params{
			EmptyRatio:          0.1,
			TypeARatio:          0.5,
			RelocationThreshold: 0.4,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable values keep their defaults; range checks are left to Validate.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["size"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Size = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["empty_ratio"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.EmptyRatio = parsed
		}
	}
	if v, ok := cfg["type_a_ratio"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.TypeARatio = parsed
		}
	}
	if v, ok := cfg["relocation_threshold"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.RelocationThreshold = parsed
		}
	}
	return c
}

// Probabilities returns the per-cell draw probabilities for Empty, TypeA and
// TypeB, in that order.
func (p Params) Probabilities() (empty, a, b float64) {
	empty = p.EmptyRatio
	a = (1 - p.EmptyRatio) * p.TypeARatio
	b = (1 - p.EmptyRatio) * (1 - p.TypeARatio)
	return empty, a, b
}

// Validate checks every ratio lies in [0,1] and the fill probabilities sum to 1.
func (p Params) Validate() error {
	if err := checkFill(p.EmptyRatio, p.TypeARatio); err != nil {
		return err
	}
	return checkRatio("relocation threshold", p.RelocationThreshold)
}

// Validate checks the grid size and parameters.
func (c Config) Validate() error {
	if c.Size <= 0 || c.Size > MaxSize {
		return fmt.Errorf("%w: size must be within [1,%d], got %d", ErrInvalidParameter, MaxSize, c.Size)
	}
	return c.Params.Validate()
}

func checkFill(emptyRatio, typeARatio float64) error {
	if err := checkRatio("empty ratio", emptyRatio); err != nil {
		return err
	}
	if err := checkRatio("type A ratio", typeARatio); err != nil {
		return err
	}
	e, a, b := Params{EmptyRatio: emptyRatio, TypeARatio: typeARatio}.Probabilities()
	if sum := e + a + b; math.Abs(sum-1) > probabilityTolerance {
		return fmt.Errorf("%w: fill probabilities sum to %v", ErrInvalidParameter, sum)
	}
	return nil
}

func checkRatio(name string, v float64) error {
	// The negated form also rejects NaN.
	if !(v >= 0 && v <= 1) {
		return fmt.Errorf("%w: %s must be within [0,1], got %v", ErrInvalidParameter, name, v)
	}
	return nil
}
