package app

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"dla/internal/core"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Batch runs one simulation per seed with at most workers runs in flight.
// Reports come back sorted by seed. The first failing run cancels the rest.
func Batch(ctx context.Context, log logrus.FieldLogger, opts *Options, seeds []int64, workers int) ([]Report, error) {
	if workers < 1 {
		workers = 1
	}
	reports := make([]Report, len(seeds))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, seed := range seeds {
		i, seed := i, seed
		g.Go(func() error {
			cfg := opts.SimConfig()
			cfg["seed"] = strconv.FormatInt(seed, 10)
			sim, err := core.Build(opts.Sim, cfg)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			rep, err := NewRunner(log, opts).Run(ctx, sim)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			reports[i] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].Seed < reports[j].Seed })
	return reports, nil
}

// Seeds returns n consecutive seeds starting at first.
func Seeds(first int64, n int) []int64 {
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = first + int64(i)
	}
	return seeds
}
