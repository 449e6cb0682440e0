package app

import (
	"flag"
	"testing"
	"time"

	"schelling/internal/sims/schelling"
)

func TestConfigBindParsesFlags(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	args := []string{"-size", "40", "-seed", "9", "-threshold", "0.3", "-empty-ratio", "0.2", "-delay", "0s", "-scale", "4"}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Size != 40 || cfg.Seed != 9 || cfg.Scale != 4 {
		t.Fatalf("unexpected ints %+v", cfg)
	}
	if cfg.RelocationThreshold != 0.3 || cfg.EmptyRatio != 0.2 || cfg.Delay != 0 {
		t.Fatalf("unexpected values %+v", cfg)
	}
}

func TestSimOptionsRoundTripThroughFromMap(t *testing.T) {
	cfg := NewConfig()
	cfg.Size = 25
	cfg.Seed = -3
	cfg.EmptyRatio = 0.15
	cfg.TypeARatio = 0.6
	cfg.RelocationThreshold = 0.35
	cfg.Delay = time.Second

	got := schelling.FromMap(cfg.SimOptions())
	if got.Size != 25 || got.Seed != -3 {
		t.Fatalf("size/seed lost: %+v", got)
	}
	p := got.Params
	if p.EmptyRatio != 0.15 || p.TypeARatio != 0.6 || p.RelocationThreshold != 0.35 {
		t.Fatalf("params lost: %+v", p)
	}
}

func TestNewConfigMatchesSimulationDefaults(t *testing.T) {
	cfg := NewConfig()
	def := schelling.DefaultConfig()
	if cfg.Size != def.Size || cfg.Seed != def.Seed || cfg.RelocationThreshold != def.Params.RelocationThreshold {
		t.Fatalf("defaults drifted: %+v vs %+v", cfg, def)
	}
}
