package app

import (
	"context"
	"time"

	"dla/internal/core"
	"dla/internal/render"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// FrameSink receives pixel buffers during a run, for example a video recorder.
type FrameSink interface {
	AddFrame(pixels []byte) error
}

// Runner drives a Sim until it converges, hits MaxSteps or is cancelled.
type Runner struct {
	Log logrus.FieldLogger

	// MaxSteps caps the number of steps. Zero means no cap.
	MaxSteps    int
	SampleEvery int
	Progress    time.Duration

	Frames     FrameSink
	FrameEvery int
}

// NewRunner configures a Runner from opts without a frame sink.
func NewRunner(log logrus.FieldLogger, opts *Options) *Runner {
	return &Runner{
		Log:         log,
		MaxSteps:    opts.MaxSteps,
		SampleEvery: opts.SampleEvery,
		Progress:    opts.Progress,
		FrameEvery:  opts.VideoEvery,
	}
}

type seeded interface {
	Seed() int64
}

func sampleOf(step int, c core.Counts) render.Sample {
	return render.Sample{Step: step, Stuck: c.Stuck, Occupied: c.Occupied}
}

// Run steps sim to completion. On cancellation it returns the partial
// report together with the context error.
func (r *Runner) Run(ctx context.Context, sim core.Sim) (Report, error) {
	size := sim.Size()
	counts := sim.Counts()
	rep := Report{
		ID:        uuid.NewString(),
		Sim:       sim.Name(),
		Width:     size.W,
		Height:    size.H,
		Particles: counts.Particles,
	}
	if s, ok := sim.(seeded); ok {
		rep.Seed = s.Seed()
	}
	if p, ok := sim.(core.ParameterProvider); ok {
		rep.Parameters = p.Parameters().Flatten()
	}

	log := r.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	log = log.WithFields(logrus.Fields{"run": rep.ID, "sim": rep.Sim})
	log.WithFields(logrus.Fields{
		"w":         size.W,
		"h":         size.H,
		"particles": counts.Particles,
		"seed":      rep.Seed,
	}).Info("initialized")

	every := r.SampleEvery
	if every < 1 {
		every = 1
	}
	throttle := core.NewThrottle(r.Progress)
	start := time.Now()
	rep.Samples = append(rep.Samples, sampleOf(sim.Steps(), counts))
	lastFrame := -1
	addFrame := func(step int) error {
		if r.Frames == nil || step == lastFrame {
			return nil
		}
		lastFrame = step
		return r.Frames.AddFrame(sim.PixelBuffer())
	}
	if err := addFrame(sim.Steps()); err != nil {
		return rep, err
	}

	var err error
	for {
		if err = ctx.Err(); err != nil {
			log.WithField("step", sim.Steps()).Warn("cancelled")
			break
		}
		if r.MaxSteps > 0 && sim.Steps() >= r.MaxSteps {
			rep.Aborted = true
			log.WithField("max_steps", r.MaxSteps).Warn("step limit reached before convergence")
			break
		}
		done := sim.Step()
		step := sim.Steps()
		counts = sim.Counts()
		if done || step%every == 0 {
			rep.Samples = append(rep.Samples, sampleOf(step, counts))
		}
		if r.FrameEvery > 0 && step%r.FrameEvery == 0 {
			if err = addFrame(step); err != nil {
				break
			}
		}
		if done {
			rep.Converged = true
			break
		}
		if r.Progress > 0 && throttle.Ready() {
			log.WithFields(logrus.Fields{
				"step":     step,
				"stuck":    counts.Stuck,
				"occupied": counts.Occupied,
			}).Info("progress")
		}
	}
	if err == nil {
		err = addFrame(sim.Steps())
	}

	counts = sim.Counts()
	rep.Steps = sim.Steps()
	rep.Stuck = counts.Stuck
	rep.Occupied = counts.Occupied
	rep.Duration = time.Since(start)
	if n := len(rep.Samples); rep.Samples[n-1].Step != rep.Steps {
		rep.Samples = append(rep.Samples, sampleOf(rep.Steps, counts))
	}

	log.WithFields(logrus.Fields{
		"steps":    rep.Steps,
		"stuck":    rep.Stuck,
		"occupied": rep.Occupied,
		"duration": rep.Duration.Round(time.Millisecond).String(),
	}).Info("done")
	return rep, err
}
