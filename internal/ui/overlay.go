//go:build ebiten

package ui

import (
	"image/color"
	"strings"

	"dla/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type stuckMaskProvider interface {
	StuckMask() []float32
}

// Overlay draws toggleable extras over the preview: a highlight of the
// frozen aggregate (key 1) and a text panel with run facts (key I).
type Overlay struct {
	sim       core.Sim
	scale     int
	info      []string
	showInfo  bool
	showStuck bool
	maskImg   *ebiten.Image
	maskBuf   []byte
}

// NewOverlay constructs an overlay for sim. info lines are shown in the
// text panel, which starts visible.
func NewOverlay(sim core.Sim, scale int, info []string) *Overlay {
	return &Overlay{sim: sim, scale: scale, info: info, showInfo: true}
}

// Update handles the toggle keys.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showStuck = !o.showStuck
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		o.showInfo = !o.showInfo
	}
}

// Draw renders the enabled layers onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.showStuck {
		if provider, ok := o.sim.(stuckMaskProvider); ok {
			o.drawMask(screen, provider.StuckMask(), color.RGBA{R: 64, G: 164, B: 223})
		}
	}
	if o.showInfo && len(o.info) > 0 {
		ebitenutil.DebugPrintAt(screen, strings.Join(o.info, "\n"), 4, 4)
	}
}

func (o *Overlay) drawMask(screen *ebiten.Image, mask []float32, tint color.RGBA) {
	size := o.sim.Size()
	total := size.W * size.H
	if total == 0 || len(mask) != total {
		return
	}
	if o.maskImg == nil {
		o.maskImg = ebiten.NewImage(size.W, size.H)
		o.maskBuf = make([]byte, 4*total)
	}
	MaskPixels(mask, tint, o.maskBuf)
	o.maskImg.WritePixels(o.maskBuf)

	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(o.maskImg, op)
}
