//go:build ebiten

package app

import (
	"errors"
	"image/color"
	"log/slog"
	"time"

	"schelling/internal/core"
	"schelling/internal/render"
	"schelling/internal/sims/schelling"
	"schelling/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	hudWidth        = 240
	minScreenHeight = 520
)

type paletteProvider interface {
	Palette() []color.RGBA
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	timer   *core.FixedStep
	logger  *slog.Logger
	palette []color.RGBA

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation. delay paces steps while
// running; zero steps every tick.
func New(sim core.Sim, scale int, seed int64, delay time.Duration, logger *slog.Logger) *Game {
	if scale <= 0 {
		scale = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	size := sim.Size()
	g := &Game{
		sim:     sim,
		painter: render.NewGridPainter(size.W, size.H),
		overlay: ui.NewOverlay(sim, scale),
		hud:     ui.NewHUD(sim, hudWidth),
		timer:   core.NewFixedStep(delay),
		logger:  logger,
		palette: []color.RGBA{{A: 255}, {R: 255, G: 255, B: 255, A: 255}},
		scale:   scale,
		seed:    seed,
	}
	if provider, ok := sim.(paletteProvider); ok {
		g.palette = provider.Palette()
	}
	return g
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	if err := g.sim.Reset(seed); err != nil {
		g.logger.Warn("reset rejected", "seed", seed, "error", err)
		return
	}
	g.seed = seed
	g.tickOnce = false
	g.logger.Info("grid reset", "seed", seed, "size", g.sim.Size().W)
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	g.overlay.Update()
	g.hud.Update(g.gridWidth())

	if g.tickOnce || (!g.paused && g.timer.ShouldStep()) {
		g.tickOnce = false
		g.step()
	}
	return nil
}

func (g *Game) step() {
	if sim, ok := g.sim.(*schelling.Simulation); ok && sim.State() == schelling.Converged {
		return
	}
	unhappy, err := g.sim.Step()
	if errors.Is(err, schelling.ErrNoCapacity) {
		g.paused = true
		g.logger.Warn("no empty cells for unhappy agents, pausing", "error", err)
		return
	}
	if err != nil {
		g.paused = true
		g.logger.Error("step failed", "error", err)
		return
	}
	if unhappy == 0 {
		g.logger.Info("converged")
	}
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	size := g.sim.Size()
	if w, h := g.painter.Size(); w != size.W || h != size.H {
		g.painter = render.NewGridPainter(size.W, size.H)
	}
	g.painter.Blit(screen, g.sim.Cells(), g.palette, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.gridWidth(), g.scale)
}

// Layout returns the logical screen size: the scaled grid plus the HUD panel.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return g.gridWidth() + g.hud.Width(), max(s.H*g.scale, minScreenHeight)
}

func (g *Game) gridWidth() int { return g.sim.Size().W * g.scale }
