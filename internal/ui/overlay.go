//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"schelling/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type maskProvider interface {
	DissatisfactionMask() []float32
	UnhappyMask() []float32
}

// Overlay tints cells by how dissatisfied their agents are. Key 1 toggles the
// dissatisfaction heat map, key 2 highlights agents that will move next step.
type Overlay struct {
	sim   core.Sim
	scale int

	showDissatisfaction bool
	showUnhappy         bool

	maskImg *ebiten.Image
	maskBuf []byte
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	return &Overlay{sim: sim, scale: scale}
}

// Update handles the overlay toggles.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showDissatisfaction = !o.showDissatisfaction
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showUnhappy = !o.showUnhappy
	}
}

// Draw paints the enabled masks over the grid.
func (o *Overlay) Draw(screen *ebiten.Image) {
	provider, ok := o.sim.(maskProvider)
	if !ok || (!o.showDissatisfaction && !o.showUnhappy) {
		return
	}
	size := o.sim.Size()
	total := size.W * size.H
	if total == 0 {
		return
	}
	if o.maskImg == nil || o.maskImg.Bounds().Dx() != size.W || o.maskImg.Bounds().Dy() != size.H {
		o.maskImg = ebiten.NewImage(size.W, size.H)
		o.maskBuf = make([]byte, 4*total)
	}

	if o.showDissatisfaction {
		o.drawMask(screen, provider.DissatisfactionMask(), color.RGBA{R: 200, G: 40, B: 160})
	}
	if o.showUnhappy {
		o.drawMask(screen, provider.UnhappyMask(), color.RGBA{R: 20, G: 20, B: 20})
	}
}

func (o *Overlay) drawMask(screen *ebiten.Image, mask []float32, tint color.RGBA) {
	if len(mask)*4 != len(o.maskBuf) {
		return
	}
	const (
		maxAlpha      = 170.0
		intensityBias = 0.75
	)

	for i, v := range mask {
		base := i * 4
		intensity := clamp01(float64(v))
		if intensity == 0 {
			o.maskBuf[base+0] = 0
			o.maskBuf[base+1] = 0
			o.maskBuf[base+2] = 0
			o.maskBuf[base+3] = 0
			continue
		}
		alpha := math.Round(maxAlpha * math.Pow(intensity, intensityBias))
		// Pixels are premultiplied by alpha.
		a := alpha / 255
		o.maskBuf[base+0] = uint8(float64(tint.R) * a)
		o.maskBuf[base+1] = uint8(float64(tint.G) * a)
		o.maskBuf[base+2] = uint8(float64(tint.B) * a)
		o.maskBuf[base+3] = uint8(alpha)
	}
	o.maskImg.WritePixels(o.maskBuf)

	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(o.maskImg, op)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
