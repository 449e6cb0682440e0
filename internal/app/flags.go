package app

import (
	"flag"
	"strconv"
	"time"

	"schelling/internal/sims/schelling"
)

// Config represents the command-line parameters for the GUI.
type Config struct {
	Scale    int
	TPS      int
	Seed     int64
	Delay    time.Duration
	LogLevel string

	Size                int
	EmptyRatio          float64
	TypeARatio          float64
	RelocationThreshold float64
}

// NewConfig returns a Config populated with the simulation defaults.
func NewConfig() *Config {
	def := schelling.DefaultConfig()
	return &Config{
		Scale:               6,
		TPS:                 60,
		Seed:                def.Seed,
		Delay:               50 * time.Millisecond,
		LogLevel:            "info",
		Size:                def.Size,
		EmptyRatio:          def.Params.EmptyRatio,
		TypeARatio:          def.Params.TypeARatio,
		RelocationThreshold: def.Params.RelocationThreshold,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.DurationVar(&c.Delay, "delay", c.Delay, "pause between steps (0 steps every tick)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (debug, info, warn, error)")
	fs.IntVar(&c.Size, "size", c.Size, "grid side length")
	fs.Float64Var(&c.EmptyRatio, "empty-ratio", c.EmptyRatio, "fraction of empty cells")
	fs.Float64Var(&c.TypeARatio, "type-a-ratio", c.TypeARatio, "fraction of agents that are type A")
	fs.Float64Var(&c.RelocationThreshold, "threshold", c.RelocationThreshold, "dissimilar neighbour share that makes an agent move")
}

// SimOptions renders the simulation fields in the form accepted by the
// registry factories.
func (c *Config) SimOptions() map[string]string {
	return map[string]string{
		"size":                 strconv.Itoa(c.Size),
		"seed":                 strconv.FormatInt(c.Seed, 10),
		"empty_ratio":          strconv.FormatFloat(c.EmptyRatio, 'g', -1, 64),
		"type_a_ratio":         strconv.FormatFloat(c.TypeARatio, 'g', -1, 64),
		"relocation_threshold": strconv.FormatFloat(c.RelocationThreshold, 'g', -1, 64),
	}
}
