package schelling

import "image/color"

var palette = []color.RGBA{
	Empty: {R: 255, G: 255, B: 255, A: 255},
	TypeA: {R: 100, G: 149, B: 237, A: 255},
	TypeB: {R: 250, G: 128, B: 114, A: 255},
}

// Palette maps cell values to render colors, indexed by Cell.
func (s *Simulation) Palette() []color.RGBA {
	return palette
}
