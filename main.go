//go:build !lambda

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
)

const usage = `Usage: stew-optimizer [flags] <instance>

Positional arguments:
  instance   Path to a .dat or .json instance, optionally .zst or .lz4 compressed

Flags:
`

func run(ctx context.Context, path string, cfg Config, jsonOut bool) error {
	p, err := LoadInstance(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(logw(), "[init] %s: ingredients=%d exclusions=%d capacity=%g\n",
		path, p.Dim(), len(p.Exclusions), p.Capacity)

	trials, err := runTrials(ctx, p, cfg)
	if err != nil {
		return err
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(NewReport(path, p, trials))
	}
	for _, t := range trials {
		fmt.Print(FormatTrial(t))
	}
	printTable(os.Stdout, trials)
	return nil
}

func main() {
	def := DefaultConfig()
	cfg := def

	flag.IntVar(&cfg.Particles, "particles", def.Particles, "Swarm size")
	flag.IntVar(&cfg.Iterations, "iterations", def.Iterations, "Swarm iterations per trial")
	flag.Float64Var(&cfg.InertiaMax, "inertia-max", def.InertiaMax, "Inertia weight at the first iteration")
	flag.Float64Var(&cfg.InertiaMin, "inertia-min", def.InertiaMin, "Inertia weight approached at the last iteration")
	flag.Float64Var(&cfg.Cognitive, "c1", def.Cognitive, "Cognitive coefficient")
	flag.Float64Var(&cfg.Social, "c2", def.Social, "Social coefficient")
	flag.Float64Var(&cfg.VelocityCap, "vmax", def.VelocityCap, "Velocity cap")
	flag.Float64Var(&cfg.Threshold, "threshold", def.Threshold, "Decision threshold in [0.3, 0.7)")
	flag.IntVar(&cfg.StagnationLimit, "stagnation", def.StagnationLimit, "Non-improving iterations before repulsion")
	flag.Float64Var(&cfg.TieEpsilon, "tie-epsilon", def.TieEpsilon, "Tolerance for the local-search trigger (0 = exact)")
	flag.Uint64Var(&cfg.Seed, "seed", def.Seed, "Random seed (0 = fresh)")
	flag.IntVar(&cfg.Trials, "trials", def.Trials, "Independent trials")
	flag.IntVar(&cfg.Workers, "workers", def.Workers, "Trials run concurrently")
	jsonOut := flag.Bool("json", false, "Output results as JSON")
	verbose := flag.Bool("verbose", false, "Print detailed search progress to stderr")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		flag.Usage()
		os.Exit(1)
	}
	Verbose = *verbose

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, args[0], cfg, *jsonOut); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
