package main

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrInvalidConfig is returned (wrapped) by Config.Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Bias ranges used when encoding a binary solution into a position. Any
// threshold in [biasLow, biasHigh) keeps the round trip exact.
const (
	biasLow  = 0.3
	biasHigh = 0.7
)

// Config holds the swarm parameters and the driver knobs. Adjust these to
// trade speed for solution quality.
type Config struct {
	// Particles is the swarm size P.
	Particles int
	// Iterations is the number of swarm iterations T.
	Iterations int
	// InertiaMax and InertiaMin bound the linearly decaying inertia weight.
	InertiaMax float64
	InertiaMin float64
	// Cognitive (c1) pulls a particle toward its personal best.
	Cognitive float64
	// Social (c2) pulls a particle toward the global best; negated while stagnating.
	Social float64
	// VelocityCap is Vmax; velocity coordinates are clamped to [-Vmax, Vmax].
	VelocityCap float64
	// Threshold maps a position coordinate to "selected" when strictly above it.
	Threshold float64
	// StagnationLimit is the number of non-improving iterations before repulsion.
	StagnationLimit int
	// TieEpsilon widens the local-search trigger. Zero keeps the exact
	// equality test against the global best.
	TieEpsilon float64
	// Seed fixes the random source. Zero means a fresh seed per invocation.
	Seed uint64

	// Trials is the number of independent runs the driver performs.
	Trials int
	// Workers caps how many trials run concurrently.
	Workers int
}

// DefaultConfig returns the reference parameters.
func DefaultConfig() Config {
	return Config{
		Particles:       100,
		Iterations:      50,
		InertiaMax:      0.9,
		InertiaMin:      0.4,
		Cognitive:       2.0,
		Social:          2.0,
		VelocityCap:     1.0,
		Threshold:       0.5,
		StagnationLimit: 15,
		Trials:          30,
		Workers:         runtime.GOMAXPROCS(0),
	}
}

// Validate checks the parameters the optimizer relies on.
func (c Config) Validate() error {
	switch {
	case c.Particles < 1:
		return fmt.Errorf("%w: particles %d must be >= 1", ErrInvalidConfig, c.Particles)
	case c.Iterations < 0:
		return fmt.Errorf("%w: iterations %d must be >= 0", ErrInvalidConfig, c.Iterations)
	case c.InertiaMin > c.InertiaMax:
		return fmt.Errorf("%w: inertia min %v above max %v", ErrInvalidConfig, c.InertiaMin, c.InertiaMax)
	case c.VelocityCap <= 0:
		return fmt.Errorf("%w: velocity cap %v must be > 0", ErrInvalidConfig, c.VelocityCap)
	case c.Threshold < biasLow || c.Threshold >= biasHigh:
		return fmt.Errorf("%w: threshold %v must be in [%v, %v)", ErrInvalidConfig, c.Threshold, biasLow, biasHigh)
	case c.StagnationLimit < 0:
		return fmt.Errorf("%w: stagnation limit %d must be >= 0", ErrInvalidConfig, c.StagnationLimit)
	case c.TieEpsilon < 0:
		return fmt.Errorf("%w: tie epsilon %v must be >= 0", ErrInvalidConfig, c.TieEpsilon)
	case c.Trials < 1:
		return fmt.Errorf("%w: trials %d must be >= 1", ErrInvalidConfig, c.Trials)
	}
	return nil
}

// Verbose controls whether detailed search progress is printed to stderr.
var Verbose bool
