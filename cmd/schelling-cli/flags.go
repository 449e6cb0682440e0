package main

import (
	"github.com/spf13/cobra"

	"schelling/internal/config"
)

// addSimFlags registers the simulation and run-loop flags shared by run and
// serve. Defaults are shown for reference only; unset flags leave the
// file and environment values alone.
func addSimFlags(cmd *cobra.Command) {
	def := config.Default()
	flags := cmd.Flags()
	flags.Int("size", def.Simulation.Size, "grid side length")
	flags.Int64("seed", def.Simulation.Seed, "random seed for the fill and relocations")
	flags.Float64("empty-ratio", def.Simulation.EmptyRatio, "fraction of empty cells")
	flags.Float64("type-a-ratio", def.Simulation.TypeARatio, "fraction of agents that are type A")
	flags.Float64("threshold", def.Simulation.RelocationThreshold, "dissimilar neighbour share that makes an agent move")
	flags.Int("max-steps", def.Run.MaxSteps, "stop after this many steps (0 = no limit)")
	flags.Duration("delay", def.Run.Delay, "pause between steps")
}

func applySimFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("size") {
		cfg.Simulation.Size, _ = flags.GetInt("size")
	}
	if flags.Changed("seed") {
		cfg.Simulation.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Changed("empty-ratio") {
		cfg.Simulation.EmptyRatio, _ = flags.GetFloat64("empty-ratio")
	}
	if flags.Changed("type-a-ratio") {
		cfg.Simulation.TypeARatio, _ = flags.GetFloat64("type-a-ratio")
	}
	if flags.Changed("threshold") {
		cfg.Simulation.RelocationThreshold, _ = flags.GetFloat64("threshold")
	}
	if flags.Changed("max-steps") {
		cfg.Run.MaxSteps, _ = flags.GetInt("max-steps")
	}
	if flags.Changed("delay") {
		cfg.Run.Delay, _ = flags.GetDuration("delay")
	}
}
