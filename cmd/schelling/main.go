//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"schelling/internal/app"
	"schelling/internal/core"
	"schelling/internal/logging"
	_ "schelling/internal/sims/schelling"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger := logging.NewLogger(cfg.LogLevel, "text", os.Stderr)

	factory, ok := core.Sims()["schelling"]
	if !ok {
		log.Fatal("schelling simulation not registered")
	}
	sim, err := factory(cfg.SimOptions())
	if err != nil {
		log.Fatal(err)
	}

	game := app.New(sim, cfg.Scale, cfg.Seed, cfg.Delay, logger)
	size := sim.Size()

	ebiten.SetWindowTitle("Schelling segregation")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+240, max(size.H*cfg.Scale, 520))

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
