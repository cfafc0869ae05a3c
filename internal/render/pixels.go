package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"
)

// ToImage wraps a row-major RGBA pixel buffer of a w*h grid without copying.
func ToImage(pixels []byte, w, h int) (*image.RGBA, error) {
	if w <= 0 || h <= 0 || len(pixels) != 4*w*h {
		return nil, fmt.Errorf("render: %d bytes do not describe a %dx%d RGBA image", len(pixels), w, h)
	}
	return &image.RGBA{Pix: pixels, Stride: 4 * w, Rect: image.Rect(0, 0, w, h)}, nil
}

// Scale enlarges img by an integer factor using nearest-neighbour sampling,
// so every cell becomes a crisp factor x factor block. Factors below 2
// return img unchanged.
func Scale(img *image.RGBA, factor int) *image.RGBA {
	if factor < 2 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// WritePNG rasterizes a pixel buffer, scales it and saves it to path.
func WritePNG(path string, pixels []byte, w, h, scale int) error {
	img, err := ToImage(pixels, w, h)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodePNG(f, Scale(img, scale)); err != nil {
		f.Close()
		return fmt.Errorf("render: encode %s: %w", path, err)
	}
	return f.Close()
}
