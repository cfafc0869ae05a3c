//go:build ebiten

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dla/internal/app"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	opts, err := app.Load("dla-view", os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := opts.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log, err := app.NewLogger(os.Stderr, opts.LogLevel, opts.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	sim, rep, err := app.Execute(ctx, log, opts)
	stop()
	if sim == nil {
		log.WithError(err).Fatal("could not start the run")
	}
	if err != nil {
		log.WithError(err).Warn("showing a partial aggregate")
	}

	preview := app.NewPreview(sim, rep, opts.Scale)
	size := sim.Size()
	ebiten.SetWindowTitle(fmt.Sprintf("dla: %s, %d steps", rep.Sim, rep.Steps))
	ebiten.SetWindowSize(size.W*opts.Scale, size.H*opts.Scale)
	if err := ebiten.RunGame(preview); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
