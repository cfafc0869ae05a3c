package render

import (
	"bytes"
	"fmt"
	"image/jpeg"

	"github.com/icza/mjpeg"
)

// Recorder appends grid snapshots to an MJPEG AVI file.
type Recorder struct {
	aw      mjpeg.AviWriter
	w, h    int
	scale   int
	quality int
	buf     bytes.Buffer
	frames  int
}

// NewRecorder creates path and prepares an AVI stream for a w*h grid drawn
// at the given integer scale.
func NewRecorder(path string, w, h, scale, fps int) (*Recorder, error) {
	if scale < 1 {
		scale = 1
	}
	if fps < 1 {
		fps = 1
	}
	aw, err := mjpeg.New(path, int32(w*scale), int32(h*scale), int32(fps))
	if err != nil {
		return nil, fmt.Errorf("render: open video %s: %w", path, err)
	}
	return &Recorder{aw: aw, w: w, h: h, scale: scale, quality: 90}, nil
}

// AddFrame encodes one pixel buffer as a JPEG frame.
func (r *Recorder) AddFrame(pixels []byte) error {
	img, err := ToImage(pixels, r.w, r.h)
	if err != nil {
		return err
	}
	r.buf.Reset()
	if err := jpeg.Encode(&r.buf, Scale(img, r.scale), &jpeg.Options{Quality: r.quality}); err != nil {
		return fmt.Errorf("render: encode frame %d: %w", r.frames, err)
	}
	if err := r.aw.AddFrame(r.buf.Bytes()); err != nil {
		return fmt.Errorf("render: write frame %d: %w", r.frames, err)
	}
	r.frames++
	return nil
}

// Frames returns the number of frames written so far.
func (r *Recorder) Frames() int { return r.frames }

// Close finalizes the AVI index and closes the file.
func (r *Recorder) Close() error { return r.aw.Close() }
