package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunTrialsMatchesSequentialRuns(t *testing.T) {
	p := scenarioProblem(t, 4, Pair{0, 1})
	cfg := testConfig(3)
	cfg.Trials = 4
	cfg.Workers = 2

	trials, err := runTrials(context.Background(), p, cfg)
	require.NoError(t, err)
	require.Len(t, trials, cfg.Trials)

	for i, tr := range trials {
		assert.Equal(t, i, tr.Trial)
		want := NewOptimizer(p, cfg, newRand(cfg.Seed, uint64(i))).Optimize()
		assert.Equal(t, want, tr.Result)
		verifyResult(t, p, tr.Result)
	}
}

func TestRunTrialsRejectsBadConfig(t *testing.T) {
	cfg := testConfig(1)
	cfg.Particles = 0
	_, err := runTrials(context.Background(), scenarioProblem(t, 4), cfg)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestRunTrialsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := testConfig(1)
	cfg.Trials = 3
	_, err := runTrials(ctx, scenarioProblem(t, 4), cfg)
	require.ErrorIs(t, err, context.Canceled)
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	mutate := map[string]func(*Config){
		"particles":  func(c *Config) { c.Particles = 0 },
		"iterations": func(c *Config) { c.Iterations = -1 },
		"inertia":    func(c *Config) { c.InertiaMin = 1 },
		"vmax":       func(c *Config) { c.VelocityCap = 0 },
		"threshold":  func(c *Config) { c.Threshold = 0.8 },
		"stagnation": func(c *Config) { c.StagnationLimit = -1 },
		"epsilon":    func(c *Config) { c.TieEpsilon = -1 },
		"trials":     func(c *Config) { c.Trials = 0 },
	}
	for name, fn := range mutate {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			fn(&cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
