package main

import (
	"fmt"
	"math"
	"math/rand/v2"
	"os"
)

// ── Swarm state ─────────────────────────────────────────────────────

type particle struct {
	pos     []float64
	vel     []float64
	bestPos []float64
	bestFit float64
}

// swarm is owned by a single Optimize call. The global best lives here and is
// only written at the end of a particle's step.
type swarm struct {
	particles  []particle
	bestPos    []float64
	bestFit    float64
	stagnation int

	initial        Solution
	initialFitness float64
}

// IterationStats describes the swarm after one iteration.
type IterationStats struct {
	Iteration   int
	Inertia     float64
	GlobalBest  float64
	Stagnation  int  // counter after the end-of-iteration update
	Repulsive   bool // social coefficient was negated this iteration
	Refinements int  // local searches triggered by ties
}

// Result is the outcome of one optimization run.
type Result struct {
	// Solution is the thresholded global best and Flavor its validated total.
	Solution Solution
	Flavor   float64
	// Initial is the best seeded solution before the first iteration.
	Initial        Solution
	InitialFitness float64
	// Degenerate is set when the final global best failed validation and the
	// empty selection was returned instead.
	Degenerate bool
	History    []IterationStats
}

// ── Optimizer ───────────────────────────────────────────────────────

// Optimizer runs the hybrid swarm search on one problem. It is not safe for
// concurrent use; give every concurrent run its own Optimizer and random source.
type Optimizer struct {
	problem *Problem
	cfg     Config
	rng     *rand.Rand
}

// NewOptimizer creates an optimizer for p. A nil rng draws from a freshly
// seeded source.
func NewOptimizer(p *Problem, cfg Config, rng *rand.Rand) *Optimizer {
	if rng == nil {
		rng = newRand(0, 0)
	}
	return &Optimizer{problem: p, cfg: cfg, rng: rng}
}

// newRand returns the random source for one run. Seed zero means unseeded.
func newRand(seed, stream uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, stream))
}

func (o *Optimizer) fitness(pos []float64) (Solution, float64) {
	sol := Threshold(pos, o.cfg.Threshold)
	return sol, PenalizedFitness(o.problem, sol)
}

// ── Initialization ──────────────────────────────────────────────────

func (o *Optimizer) initSwarm() *swarm {
	d := o.problem.Dim()
	s := &swarm{
		particles: make([]particle, o.cfg.Particles),
		bestFit:   math.Inf(-1),
	}
	for k := range s.particles {
		seed := RandomFeasible(o.problem, o.rng)
		pos := EncodeWithBias(seed, o.rng)
		vel := make([]float64, d)
		for i := range vel {
			vel[i] = -0.1 + 0.2*o.rng.Float64()
		}
		sol, fit := o.fitness(pos)
		s.particles[k] = particle{
			pos:     pos,
			vel:     vel,
			bestPos: EncodeWithBias(sol, o.rng),
			bestFit: fit,
		}
	}

	bestIdx := 0
	for k := range s.particles {
		if s.particles[k].bestFit > s.particles[bestIdx].bestFit {
			bestIdx = k
		}
	}
	best := &s.particles[bestIdx]
	s.bestPos = EncodeWithBias(Threshold(best.pos, o.cfg.Threshold), o.rng)
	s.bestFit = best.bestFit
	s.initial = Threshold(s.bestPos, o.cfg.Threshold)
	s.initialFitness = s.bestFit
	return s
}

// ── Iteration ───────────────────────────────────────────────────────

func (o *Optimizer) inertia(t int) float64 {
	if o.cfg.Iterations == 0 {
		return o.cfg.InertiaMax
	}
	return o.cfg.InertiaMax - float64(t)/float64(o.cfg.Iterations)*(o.cfg.InertiaMax-o.cfg.InertiaMin)
}

func (o *Optimizer) ties(fit, best float64) bool {
	if o.cfg.TieEpsilon == 0 {
		return fit == best
	}
	return math.Abs(fit-best) <= o.cfg.TieEpsilon
}

// step moves every particle once, in order, and updates the stagnation counter.
func (o *Optimizer) step(s *swarm, t int) IterationStats {
	prevBest := s.bestFit
	w := o.inertia(t)
	vmax := o.cfg.VelocityCap

	social := o.cfg.Social
	repulsive := s.stagnation > o.cfg.StagnationLimit
	if repulsive {
		// push away from the global best to leave the plateau
		social = -social
		if s.stagnation > o.cfg.StagnationLimit+5 {
			s.stagnation = 0
		}
	}

	refinements := 0
	for k := range s.particles {
		p := &s.particles[k]
		for i := range p.pos {
			r1 := o.rng.Float64()
			r2 := o.rng.Float64()
			v := w*p.vel[i] +
				o.cfg.Cognitive*r1*(p.bestPos[i]-p.pos[i]) +
				social*r2*(s.bestPos[i]-p.pos[i])
			p.vel[i] = clamp(v, -vmax, vmax)
			p.pos[i] = clamp(p.pos[i]+p.vel[i], 0, 1)
		}

		sol, fit := o.fitness(p.pos)
		if o.ties(fit, s.bestFit) {
			cr := Climb(o.problem, sol)
			p.pos = EncodeWithBias(cr.Solution, o.rng)
			sol, fit = o.fitness(p.pos)
			refinements++
		}

		if fit > p.bestFit {
			p.bestFit = fit
			p.bestPos = EncodeWithBias(sol, o.rng)
		}
		if fit > s.bestFit {
			s.bestFit = fit
			s.bestPos = EncodeWithBias(sol, o.rng)
		}
	}

	if s.bestFit > prevBest {
		s.stagnation = 0
	} else {
		s.stagnation++
	}

	return IterationStats{
		Iteration:   t,
		Inertia:     w,
		GlobalBest:  s.bestFit,
		Stagnation:  s.stagnation,
		Repulsive:   repulsive,
		Refinements: refinements,
	}
}

// ── Termination ─────────────────────────────────────────────────────

func (o *Optimizer) finish(s *swarm) Result {
	final := Threshold(s.bestPos, o.cfg.Threshold)
	flavor, ok := Validate(o.problem, final)
	if !ok {
		fmt.Fprintf(logw(), "[warn] global best %.5f failed validation, returning empty selection\n", s.bestFit)
		d := o.problem.Dim()
		return Result{
			Solution:   make(Solution, d),
			Initial:    make(Solution, d),
			Degenerate: true,
		}
	}
	return Result{
		Solution:       final,
		Flavor:         flavor,
		Initial:        s.initial,
		InitialFitness: s.initialFitness,
	}
}

// ── Main entry point ────────────────────────────────────────────────

// Optimize runs the full iteration budget and returns the validated global best.
func (o *Optimizer) Optimize() Result {
	s := o.initSwarm()
	if Verbose {
		fmt.Fprintf(logw(), "[verbose] init: particles=%d dim=%d best=%.2f\n",
			len(s.particles), o.problem.Dim(), s.bestFit)
	}

	history := make([]IterationStats, 0, o.cfg.Iterations)
	for t := 0; t < o.cfg.Iterations; t++ {
		st := o.step(s, t)
		history = append(history, st)
		if Verbose {
			fmt.Fprintf(logw(), "[verbose] iter=%d w=%.3f best=%.2f stagnation=%d repulsive=%v refined=%d\n",
				st.Iteration, st.Inertia, st.GlobalBest, st.Stagnation, st.Repulsive, st.Refinements)
		}
	}

	r := o.finish(s)
	r.History = history
	return r
}

func logw() *os.File { return os.Stderr }

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
