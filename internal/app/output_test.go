package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestExecuteWritesOutputs(t *testing.T) {
	dir := t.TempDir()
	o := DefaultOptions()
	o.Width, o.Height, o.Particles = 16, 12, 25
	o.Scale = 2
	o.Out = filepath.Join(dir, "dla.png")
	o.Chart = filepath.Join(dir, "growth.png")
	o.Report = filepath.Join(dir, "report.yaml")
	o.Video = filepath.Join(dir, "growth.avi")
	o.VideoEvery = 3
	if err := o.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	sim, rep, err := Execute(context.Background(), quietLogger(), o)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !rep.Converged || sim.Steps() != rep.Steps {
		t.Fatalf("report = %+v", rep)
	}
	for _, path := range []string{o.Out, o.Chart, o.Report, o.Video} {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("missing output %s: %v", path, err)
		}
		if info.Size() == 0 {
			t.Fatalf("output %s is empty", path)
		}
	}
	saved, err := ReadReport(o.Report)
	if err != nil {
		t.Fatalf("ReadReport: %v", err)
	}
	if saved.ID != rep.ID || saved.Steps != rep.Steps {
		t.Fatalf("saved report %+v differs from %+v", saved, rep)
	}
}

func TestExecuteUnknownSim(t *testing.T) {
	o := DefaultOptions()
	o.Sim = "nope"
	if _, _, err := Execute(context.Background(), quietLogger(), o); err == nil {
		t.Fatal("expected an error")
	}
}

func TestExecuteVideoFailureReturnsNoSim(t *testing.T) {
	o := DefaultOptions()
	o.Width, o.Height, o.Particles = 8, 8, 4
	o.Video = filepath.Join(t.TempDir(), "missing", "growth.avi")
	sim, rep, err := Execute(context.Background(), quietLogger(), o)
	if err == nil {
		t.Fatal("expected an error for an unwritable video path")
	}
	if sim != nil || rep.ID != "" {
		t.Fatalf("failed start returned sim=%v report=%+v", sim, rep)
	}
}
