package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"dla/internal/render"
)

func sampleReport() Report {
	return Report{
		ID:         "run-1",
		Sim:        "dla",
		Width:      10,
		Height:     8,
		Particles:  20,
		Seed:       3,
		Steps:      42,
		Converged:  true,
		Stuck:      20,
		Duration:   1500 * time.Millisecond,
		Parameters: map[string]string{"bias": "0.75"},
		Samples:    []render.Sample{{Step: 0, Occupied: 20}, {Step: 42, Stuck: 20}},
	}
}

func TestWriteReadReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	want := sampleReport()
	if err := want.WriteReport(path); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	got, err := ReadReport(path)
	if err != nil {
		t.Fatalf("ReadReport: %v", err)
	}
	if got.ID != want.ID || got.Steps != 42 || !got.Converged || got.Duration != want.Duration {
		t.Fatalf("report mismatch: %+v", got)
	}
	if got.Parameters["bias"] != "0.75" || len(got.Samples) != 2 || got.Samples[1].Stuck != 20 {
		t.Fatalf("report details lost: %+v", got)
	}
}

func TestAggregate(t *testing.T) {
	reports := []Report{
		{Steps: 10, Stuck: 4, Converged: true, Duration: time.Second},
		{Steps: 30, Stuck: 6, Aborted: true, Duration: time.Second},
		{Steps: 20, Stuck: 5, Converged: true},
	}
	s := Aggregate(reports)
	if s.Runs != 3 || s.Converged != 2 || s.Aborted != 1 {
		t.Fatalf("counts = %+v", s)
	}
	if s.MinSteps != 10 || s.MaxSteps != 30 || s.MeanSteps != 20 || s.MeanStuck != 5 {
		t.Fatalf("step stats = %+v", s)
	}
	if s.Elapsed != 2*time.Second {
		t.Fatalf("elapsed = %v", s.Elapsed)
	}
	if (Aggregate(nil) != Stats{}) {
		t.Fatal("empty batch should give zero stats")
	}
}

func TestPrintSummaryPlain(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, sampleReport(), false)
	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Fatal("plain summary contains escape codes")
	}
	for _, want := range []string{"converged", "10x8", "steps: 42", "stuck: 20"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary %q lacks %q", out, want)
		}
	}

	buf.Reset()
	PrintStats(&buf, []Report{sampleReport()}, true)
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatal("colored stats should contain escape codes")
	}
}

func TestWriteReports(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.yaml")
	if err := WriteReports(path, []Report{sampleReport(), sampleReport()}); err != nil {
		t.Fatalf("WriteReports: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if n := strings.Count(string(b), "id: run-1"); n != 2 {
		t.Fatalf("found %d reports in %q, want 2", n, b)
	}
}

func TestInfoLines(t *testing.T) {
	lines := InfoLines(sampleReport())
	if len(lines) != 4 || lines[0] != "dla converged after 42 steps" || lines[1] != "10x8 seed 3" {
		t.Fatalf("InfoLines = %q", lines)
	}
	r := sampleReport()
	r.Converged, r.Aborted = false, true
	if got := InfoLines(r)[0]; !strings.Contains(got, "aborted") {
		t.Fatalf("aborted run described as %q", got)
	}
}
