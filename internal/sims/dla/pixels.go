package dla

import "image/color"

// EmptyColor is how Empty cells are rendered.
var EmptyColor = color.RGBA{A: 255}

// PixelBuffer flattens the grid to row-major RGBA bytes, four per cell.
// Empty cells render as opaque black; particles use their stored color.
func (g *Grid) PixelBuffer() []byte {
	buf := make([]byte, len(g.cells)*4)
	for i, c := range g.cells {
		col := c.Color
		if c.State == Empty {
			col = EmptyColor
		}
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
	return buf
}

// PixelBuffer returns the current grid as RGBA bytes.
func (b *base) PixelBuffer() []byte { return b.grid.PixelBuffer() }

// StuckMask returns one intensity per cell: 1 for Stuck cells, 0 otherwise.
func (b *base) StuckMask() []float32 {
	mask := make([]float32, len(b.grid.cells))
	for i, c := range b.grid.cells {
		if c.State == Stuck {
			mask[i] = 1
		}
	}
	return mask
}
