//go:build !ebiten

package app

import (
	"fmt"

	"dla/internal/core"
)

// Preview is a placeholder for headless builds.
type Preview struct{}

// NewPreview panics to indicate that the ebiten build tag is required.
func NewPreview(core.Sim, Report, int) *Preview {
	panic("app.NewPreview requires building with the 'ebiten' tag")
}

// Update always reports that the GUI build tag is missing.
func (p *Preview) Update() error {
	return fmt.Errorf("app.Preview.Update requires building with the 'ebiten' tag")
}

// Draw is a no-op placeholder.
func (p *Preview) Draw(any) {}

// Layout returns zeros in the headless build.
func (p *Preview) Layout(int, int) (int, int) { return 0, 0 }
