//go:build ebiten

package app

import (
	"errors"
	"image/color"
	"io"
	"log"
	"sync"

	"dotsim/internal/core"
	"dotsim/internal/render"
	"dotsim/internal/transport"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Viewer draws frames read from a stream receiver.
type Viewer struct {
	recv    transport.Receiver
	palette []color.RGBA
	painter *render.GridPainter
	scale   int
	log     *log.Logger

	mu     sync.Mutex
	frame  *core.Frame
	err    error
	frames uint64
}

// NewViewer starts reading from recv in the background.
func NewViewer(recv transport.Receiver, palette []color.RGBA, scale int, logger *log.Logger) *Viewer {
	h := recv.Header()
	v := &Viewer{
		recv:    recv,
		palette: palette,
		painter: render.NewGridPainter(h.W, h.H),
		scale:   max(1, scale),
		log:     logger,
		frame:   core.NewFrame(h.W, h.H),
	}
	go v.read()
	return v
}

func (v *Viewer) read() {
	var buf []byte
	for {
		var err error
		buf, err = v.recv.Next(buf)
		v.mu.Lock()
		if err != nil {
			v.err = err
			v.mu.Unlock()
			return
		}
		v.frame.LoadColumnMajor(buf)
		v.frames++
		v.mu.Unlock()
	}
}

// Update ends the session on Q/Esc or when the stream fails.
func (v *Viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	v.mu.Lock()
	err, frames := v.err, v.frames
	v.mu.Unlock()
	if err == nil {
		return nil
	}
	if v.log != nil {
		if errors.Is(err, io.EOF) {
			v.log.Printf("stream ended after %d frames", frames)
		} else {
			v.log.Printf("stream error after %d frames: %v", frames, err)
		}
	}
	return ebiten.Termination
}

// Draw renders the latest frame.
func (v *Viewer) Draw(screen *ebiten.Image) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.painter.BlitPalette(screen, v.frame.Cells(), v.palette, v.scale)
}

// Layout returns the logical screen size.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.frame.W * v.scale, v.frame.H * v.scale
}
