package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"dla/internal/app"

	"github.com/integrii/flaggy"
)

func main() {
	runs := 8
	var firstSeed int64 = 1
	parallel := runtime.NumCPU()

	opts, err := app.Load("dla-sweep", os.Args[1:], func(p *flaggy.Parser) {
		p.Description = "Run one aggregation per seed and print statistics"
		p.Int(&runs, "r", "runs", "Number of seeds to run")
		p.Int64(&firstSeed, "f", "first-seed", "First seed; the rest follow consecutively")
		p.Int(&parallel, "j", "parallel", "Runs in flight at once")
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := opts.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if runs < 1 {
		fmt.Fprintln(os.Stderr, "runs must be at least 1")
		os.Exit(2)
	}
	log, err := app.NewLogger(os.Stderr, opts.LogLevel, opts.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if opts.Out != "" || opts.Chart != "" || opts.Video != "" {
		log.Warn("image, chart and video outputs are ignored by the sweep")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Sweeping %d seeds from %d (%d in parallel, %dx%d, %d particles)\n",
		runs, firstSeed, parallel, opts.Width, opts.Height, opts.Particles)
	start := time.Now()
	reports, err := app.Batch(ctx, log, opts, app.Seeds(firstSeed, runs), parallel)
	if err != nil {
		log.WithError(err).Error("sweep failed")
		stop()
		os.Exit(1)
	}
	app.PrintStats(os.Stdout, reports, app.IsTerminal(os.Stdout))
	fmt.Printf("wall time %s\n", time.Since(start).Round(time.Millisecond))

	if opts.Report != "" {
		if err := app.WriteReports(opts.Report, reports); err != nil {
			log.WithError(err).Error("could not write the reports")
			stop()
			os.Exit(1)
		}
	}
}
