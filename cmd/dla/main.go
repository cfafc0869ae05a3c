package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dla/internal/app"
)

func main() {
	opts, err := app.Load("dla", os.Args[1:])
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
	defer stop()

	sim, rep, err := app.Execute(ctx, log, opts)
	if sim == nil || rep.ID == "" {
		log.WithError(err).Fatal("could not start the run")
	}
	app.PrintSummary(os.Stdout, rep, app.IsTerminal(os.Stdout))
	if err != nil {
		log.WithError(err).Error("run failed")
		stop()
		os.Exit(1)
	}
}
