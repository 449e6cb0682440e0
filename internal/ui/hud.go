//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"schelling/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

var keyHints = []string{
	"Space pause  Enter resume",
	"N step  R reset  S reseed",
	"1 dissatisfaction  2 unhappy",
	"Q quit",
}

var (
	panelColor  = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	titleColor  = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	textColor   = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	mutedColor  = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	buttonColor = color.RGBA{R: 54, G: 56, B: 64, A: 255}
	offColor    = color.RGBA{R: 32, G: 34, B: 40, A: 255}
)

// HUD renders the status and parameter panel to the right of the grid.
type HUD struct {
	sim        core.Sim
	width      int
	panel      *ebiten.Image
	lastHeight int
	status     []string

	controls     []hudControlState
	intSetter    core.IntParameterSetter
	floatSetter  core.FloatParameterSetter
	panelOffsetX int

	pixel *ebiten.Image
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{sim: sim, width: width}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		for _, ctrl := range provider.ParameterControls() {
			h.controls = append(h.controls, hudControlState{control: ctrl, value: "--"})
		}
		h.layoutControls()
	}
	if setter, ok := sim.(core.IntParameterSetter); ok {
		h.intSetter = setter
	}
	if setter, ok := sim.(core.FloatParameterSetter); ok {
		h.floatSetter = setter
	}
	return h
}

// Update refreshes the cached status and parameter values and handles clicks
// on the +/- buttons.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	h.status = nil
	if provider, ok := h.sim.(core.StatusProvider); ok {
		h.status = provider.Status()
	}
	if provider, ok := h.sim.(core.ParameterProvider); ok {
		h.refreshControlValues(provider.Parameters())
	}
	h.handleInput()
}

// Draw paints the HUD panel at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	height := max(h.sim.Size().H*scale, minPanelHeight)
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(panelColor)
	h.drawStatus()
	h.drawControls()
	h.drawHints()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

// Width returns the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

func (h *HUD) refreshControlValues(snapshot core.ParameterSnapshot) {
	for i := range h.controls {
		state := &h.controls[i]
		state.hasValue = false
		state.value = "--"
		param, ok := snapshot.Lookup(state.control.Key)
		if !ok {
			continue
		}
		parsed, err := strconv.ParseFloat(param.Value, 64)
		if err != nil {
			continue
		}
		state.current = parsed
		state.value = formatValue(state.control, parsed)
		state.hasValue = true
	}
}

func (h *HUD) handleInput() {
	if len(h.controls) == 0 || !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	px := mx - h.panelOffsetX
	for i := range h.controls {
		state := &h.controls[i]
		switch {
		case pointInRect(px, my, state.minusRect):
			h.apply(state, -1)
			return
		case pointInRect(px, my, state.plusRect):
			h.apply(state, 1)
			return
		}
	}
}

func (h *HUD) apply(state *hudControlState, direction int) {
	target, ok := h.target(state, direction)
	if !ok {
		return
	}
	var applied bool
	switch state.control.Type {
	case core.ParamTypeInt:
		applied = h.intSetter.SetIntParameter(state.control.Key, int(target))
	case core.ParamTypeFloat:
		applied = h.floatSetter.SetFloatParameter(state.control.Key, target)
	}
	if applied {
		state.current = target
		state.value = formatValue(state.control, target)
	}
}

// target computes the value one step away from the current one, clamped to
// the control's bounds. ok is false when nothing would change.
func (h *HUD) target(state *hudControlState, direction int) (float64, bool) {
	if !state.hasValue || direction == 0 {
		return 0, false
	}
	step := state.control.Step
	switch state.control.Type {
	case core.ParamTypeInt:
		if h.intSetter == nil {
			return 0, false
		}
		step = math.Max(math.Round(step), 1)
	case core.ParamTypeFloat:
		if h.floatSetter == nil {
			return 0, false
		}
		if step <= 0 {
			step = 0.05
		}
	default:
		return 0, false
	}
	target := state.current + float64(direction)*step
	if state.control.HasMin && target < state.control.Min {
		target = state.control.Min
	}
	if state.control.HasMax && target > state.control.Max {
		target = state.control.Max
	}
	// Round away accumulated float error so 0.4+0.05 stays 0.45.
	target = math.Round(target*1e6) / 1e6
	if math.Abs(target-state.current) < 1e-9 {
		return 0, false
	}
	return target, true
}

func (h *HUD) drawStatus() {
	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	text.Draw(h.panel, "Status", face, panelPadding, y, titleColor)
	for _, line := range h.status {
		y += statusLineHeight
		text.Draw(h.panel, line, face, panelPadding, y, textColor)
	}
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	text.Draw(h.panel, "Parameters", face, panelPadding, controlsHeaderY, titleColor)
	if len(h.controls) == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, controlsHeaderY+infoSpacing, mutedColor)
		return
	}
	for i := range h.controls {
		state := &h.controls[i]
		y := state.top + labelBaseline
		text.Draw(h.panel, state.control.Label, face, panelPadding, y, textColor)
		valueColor := textColor
		if !state.hasValue {
			valueColor = mutedColor
		}
		width := text.BoundString(face, state.value).Dx()
		text.Draw(h.panel, state.value, face, state.minusRect.Min.X-buttonGap-width, y, valueColor)

		_, minusOK := h.target(state, -1)
		_, plusOK := h.target(state, 1)
		h.drawButton(state.minusRect, "-", minusOK)
		h.drawButton(state.plusRect, "+", plusOK)
	}
}

func (h *HUD) drawHints() {
	face := basicfont.Face7x13
	y := h.lastHeight - panelPadding - (len(keyHints)-1)*statusLineHeight
	for _, hint := range keyHints {
		text.Draw(h.panel, hint, face, panelPadding, y, mutedColor)
		y += statusLineHeight
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg, fg := buttonColor, color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg, fg = offColor, color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) layoutControls() {
	if h.width <= 0 {
		return
	}
	for i := range h.controls {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plus := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
		h.controls[i].top = top
		h.controls[i].minusRect = minus
		h.controls[i].plusRect = plus
	}
}

func formatValue(ctrl core.ParameterControl, value float64) string {
	if ctrl.Type == core.ParamTypeInt {
		return strconv.Itoa(int(math.Round(value)))
	}
	precision := 1
	switch {
	case ctrl.Step < 0.01:
		precision = 3
	case ctrl.Step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return image.Pt(x, y).In(rect)
}

type hudControlState struct {
	control  core.ParameterControl
	value    string
	current  float64
	hasValue bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

const (
	panelPadding     = 12
	lineHeight       = 36
	statusLineHeight = 16
	statusLines      = 4
	buttonSize       = 24
	buttonGap        = 6
	headerBaseline   = 18
	labelBaseline    = 24
	infoSpacing      = 36
	controlsHeaderY  = panelPadding + headerBaseline + (statusLines+2)*statusLineHeight
	controlsTop      = controlsHeaderY + 8
	minPanelHeight   = 520
)
