package render

import (
	"bytes"
	"image/png"
	"testing"
)

func TestWriteGrowthChart(t *testing.T) {
	samples := []Sample{
		{Step: 0, Stuck: 0, Occupied: 50},
		{Step: 10, Stuck: 12, Occupied: 38},
		{Step: 20, Stuck: 40, Occupied: 10},
		{Step: 30, Stuck: 50, Occupied: 0},
	}
	var buf bytes.Buffer
	if err := WriteGrowthChart(&buf, samples); err != nil {
		t.Fatalf("WriteGrowthChart: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("chart is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 800 || b.Dy() != 400 {
		t.Fatalf("chart bounds %v, want 800x400", b)
	}

	if err := WriteGrowthChart(&bytes.Buffer{}, samples[:1]); err == nil {
		t.Fatal("a single sample cannot make a chart")
	}
}
