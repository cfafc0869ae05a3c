package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"dla/internal/core"
	"dla/internal/render"

	"github.com/sirupsen/logrus"
)

// Execute builds the configured sim, runs it and writes every requested
// output. The sim is returned so callers can keep displaying it; it is nil
// when the run could not start.
func Execute(ctx context.Context, log logrus.FieldLogger, opts *Options) (core.Sim, Report, error) {
	sim, err := core.Build(opts.Sim, opts.SimConfig())
	if err != nil {
		return nil, Report{}, err
	}
	runner := NewRunner(log, opts)

	var rec *render.Recorder
	if opts.Video != "" {
		size := sim.Size()
		rec, err = render.NewRecorder(opts.Video, size.W, size.H, opts.Scale, opts.FPS)
		if err != nil {
			return nil, Report{}, err
		}
		runner.Frames = rec
	}

	rep, runErr := runner.Run(ctx, sim)
	if rec != nil {
		if err := rec.Close(); err != nil && runErr == nil {
			runErr = fmt.Errorf("close video: %w", err)
		}
	}
	if err := WriteOutputs(opts, sim, rep); err != nil {
		return sim, rep, errors.Join(runErr, err)
	}
	return sim, rep, runErr
}

// WriteOutputs saves the final image, growth chart and report that opts
// asks for.
func WriteOutputs(opts *Options, sim core.Sim, rep Report) error {
	if opts.Out != "" {
		size := sim.Size()
		if err := render.WritePNG(opts.Out, sim.PixelBuffer(), size.W, size.H, opts.Scale); err != nil {
			return err
		}
	}
	if opts.Chart != "" {
		if err := writeChart(opts.Chart, rep.Samples); err != nil {
			return err
		}
	}
	if opts.Report != "" {
		if err := rep.WriteReport(opts.Report); err != nil {
			return err
		}
	}
	return nil
}

func writeChart(path string, samples []render.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.WriteGrowthChart(f, samples); err != nil {
		f.Close()
		return fmt.Errorf("chart %s: %w", path, err)
	}
	return f.Close()
}
