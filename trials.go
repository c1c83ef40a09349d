package main

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// TrialResult holds the outcome and timing of one independent optimization run.
type TrialResult struct {
	Trial   int
	Result  Result
	Elapsed time.Duration
}

// runTrials performs cfg.Trials independent runs, at most cfg.Workers at a
// time. Every run owns its swarm and random source; the problem is shared
// read-only. Results come back in trial order. Cancelling ctx stops trials
// that have not started yet; a started run always completes.
func runTrials(ctx context.Context, p *Problem, cfg Config) ([]TrialResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > cfg.Trials {
		workers = cfg.Trials
	}

	results := make([]TrialResult, cfg.Trials)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < cfg.Trials; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			opt := NewOptimizer(p, cfg, newRand(cfg.Seed, uint64(i)))
			r := opt.Optimize()
			results[i] = TrialResult{Trial: i, Result: r, Elapsed: time.Since(start)}
			if Verbose {
				fmt.Fprintf(logw(), "[verbose/trial] #%d flavor=%.2f initial=%.2f in %v\n",
					i+1, r.Flavor, r.InitialFitness, results[i].Elapsed)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("trials: %w", err)
	}
	return results, nil
}
