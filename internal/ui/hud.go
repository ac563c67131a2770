//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"math"
	"slices"
	"strconv"
	"strings"

	"dotsim/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the tool and parameter panel to the right of the world view.
type HUD struct {
	sim        core.Sim
	width      int
	panel      *ebiten.Image
	lastHeight int
	title      string
	status     []string

	controls     []hudControl
	intSetter    core.IntParameterSetter
	floatSetter  core.FloatParameterSetter
	choiceSetter core.ChoiceParameterSetter
	panelOffsetX int

	pixel *ebiten.Image
}

type hudControl struct {
	core.ParameterControl

	text     string
	num      float64
	choice   int
	hasValue bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	h := &HUD{sim: sim, width: max(0, width), title: strings.ToUpper(sim.Name())}
	if h.width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if p, ok := sim.(core.ParameterControlsProvider); ok {
		for _, c := range p.ParameterControls() {
			h.controls = append(h.controls, hudControl{ParameterControl: c, text: "--"})
		}
	}
	h.intSetter, _ = sim.(core.IntParameterSetter)
	h.floatSetter, _ = sim.(core.FloatParameterSetter)
	h.choiceSetter, _ = sim.(core.ChoiceParameterSetter)
	return h
}

// SetStatus replaces the status lines shown under the title.
func (h *HUD) SetStatus(lines ...string) {
	if h == nil {
		return
	}
	h.status = append(h.status[:0], lines...)
}

// Update refreshes control values from the simulation and handles clicks.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	h.layout()
	if p, ok := h.sim.(core.ParameterProvider); ok {
		h.refresh(p.Parameters())
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	px := mx - h.panelOffsetX
	for i := range h.controls {
		c := &h.controls[i]
		switch {
		case pointInRect(px, my, c.minusRect):
			h.step(c, -1)
			return
		case pointInRect(px, my, c.plusRect):
			h.step(c, 1)
			return
		}
	}
}

func (h *HUD) refresh(snap core.ParameterSnapshot) {
	for i := range h.controls {
		c := &h.controls[i]
		c.hasValue = false
		c.text = "--"
		p, ok := snap.Lookup(c.Key)
		if !ok {
			continue
		}
		switch c.Type {
		case core.ParamTypeInt, core.ParamTypeFloat:
			v, err := strconv.ParseFloat(p.Value, 64)
			if err != nil {
				continue
			}
			c.num = v
			c.text = formatValue(c.ParameterControl, v)
		case core.ParamTypeChoice:
			idx := slices.Index(c.Choices, p.Value)
			if idx < 0 {
				continue
			}
			c.choice = idx
			c.text = p.Value
		}
		c.hasValue = true
	}
}

// target returns the value one step in direction dir, and false when the step
// would leave the control's bounds.
func (c *hudControl) target(dir int) (float64, bool) {
	step := c.Step
	if step <= 0 {
		step = 1
	}
	v := c.num + float64(dir)*step
	if c.Type == core.ParamTypeInt {
		v = math.Round(v)
	}
	if c.HasMin && v < c.Min {
		if c.num <= c.Min {
			return c.num, false
		}
		v = c.Min
	}
	if c.HasMax && v > c.Max {
		if c.num >= c.Max {
			return c.num, false
		}
		v = c.Max
	}
	return v, true
}

func (h *HUD) canStep(c *hudControl, dir int) bool {
	if !c.hasValue {
		return false
	}
	switch c.Type {
	case core.ParamTypeInt:
		_, ok := c.target(dir)
		return ok && h.intSetter != nil
	case core.ParamTypeFloat:
		_, ok := c.target(dir)
		return ok && h.floatSetter != nil
	case core.ParamTypeChoice:
		return len(c.Choices) > 1 && h.choiceSetter != nil
	}
	return false
}

func (h *HUD) step(c *hudControl, dir int) {
	if !h.canStep(c, dir) {
		return
	}
	switch c.Type {
	case core.ParamTypeInt:
		v, _ := c.target(dir)
		if h.intSetter.SetIntParameter(c.Key, int(v)) {
			c.num = v
			c.text = formatValue(c.ParameterControl, v)
		}
	case core.ParamTypeFloat:
		v, _ := c.target(dir)
		if h.floatSetter.SetFloatParameter(c.Key, v) {
			c.num = v
			c.text = formatValue(c.ParameterControl, v)
		}
	case core.ParamTypeChoice:
		n := len(c.Choices)
		next := ((c.choice+dir)%n + n) % n
		if h.choiceSetter.SetChoiceParameter(c.Key, c.Choices[next]) {
			c.choice = next
			c.text = c.Choices[next]
		}
	}
}

// Draw paints the panel at offsetX, as tall as the scaled world.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	height := h.sim.Size().H * max(1, scale)
	if height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawText()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

var (
	titleColor  = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	statusColor = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	labelColor  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
)

func (h *HUD) drawText() {
	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, y, titleColor)
	for _, line := range h.status {
		y += statusSpacing
		text.Draw(h.panel, line, face, panelPadding, y, statusColor)
	}
	for i := range h.controls {
		c := &h.controls[i]
		baseline := c.top + labelBaseline
		text.Draw(h.panel, c.Label, face, panelPadding, baseline, labelColor)
		valueColor := labelColor
		if !c.hasValue {
			valueColor = statusColor
		}
		width := text.BoundString(face, c.text).Dx()
		text.Draw(h.panel, c.text, face, c.minusRect.Min.X-buttonGap-width, baseline, valueColor)
		h.drawButton(c.minusRect, "-", h.canStep(c, -1))
		h.drawButton(c.plusRect, "+", h.canStep(c, 1))
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	b := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-b.Dx())/2
	y := rect.Min.Y + (rect.Dy()-b.Dy())/2 + b.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

// layout places controls below the status lines.
func (h *HUD) layout() {
	top := panelPadding + headerBaseline + len(h.status)*statusSpacing + controlsGap
	for i := range h.controls {
		rowTop := top + i*lineHeight
		buttonY := rowTop + (lineHeight-buttonSize)/2
		plus := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
		h.controls[i].top = rowTop
		h.controls[i].minusRect = minus
		h.controls[i].plusRect = plus
	}
}

func formatValue(c core.ParameterControl, v float64) string {
	if c.Type == core.ParamTypeInt {
		return strconv.Itoa(int(v))
	}
	precision := 1
	if c.Step > 0 && c.Step < 0.1 {
		precision = 2
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

const (
	panelPadding   = 12
	lineHeight     = 32
	buttonSize     = 22
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 22
	statusSpacing  = 16
	controlsGap    = 14
)
