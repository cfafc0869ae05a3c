//go:build ebiten

package app

import (
	"dla/internal/core"
	"dla/internal/render"
	"dla/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Preview shows the final pixel buffer of a finished run in a window.
// It never steps the simulation.
type Preview struct {
	pixels  []byte
	w, h    int
	painter *render.GridPainter
	overlay *ui.Overlay
	scale   int
}

// NewPreview captures the current pixel buffer of sim. rep feeds the
// overlay's info panel.
func NewPreview(sim core.Sim, rep Report, scale int) *Preview {
	size := sim.Size()
	if scale < 1 {
		scale = 1
	}
	return &Preview{
		pixels:  sim.PixelBuffer(),
		w:       size.W,
		h:       size.H,
		painter: render.NewGridPainter(size.W, size.H),
		overlay: ui.NewOverlay(sim, scale, InfoLines(rep)),
		scale:   scale,
	}
}

// Update closes the window on Q or Escape and forwards the overlay keys.
func (p *Preview) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	p.overlay.Update()
	return nil
}

// Draw blits the captured buffer and the overlay.
func (p *Preview) Draw(screen *ebiten.Image) {
	p.painter.Blit(screen, p.pixels, p.scale)
	p.overlay.Draw(screen)
}

// Layout returns the scaled grid size.
func (p *Preview) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.w * p.scale, p.h * p.scale
}
