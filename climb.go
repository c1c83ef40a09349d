package main

import (
	"fmt"
	"math/rand/v2"
)

// ── Seeding ─────────────────────────────────────────────────────────

// RandomFeasible builds one feasible selection: items are tried in a random
// order and kept only if they fit the remaining capacity and conflict with
// nothing accepted so far. The result is feasible but not necessarily maximal.
func RandomFeasible(p *Problem, rng *rand.Rand) Solution {
	sol := make(Solution, p.Dim())
	weight := 0.0
	for _, idx := range rng.Perm(p.Dim()) {
		w := weight + p.Ingredients[idx].Weight
		if w > p.Capacity {
			continue
		}
		conflict := false
		for _, c := range p.conflicts[idx] {
			if sol[c] {
				conflict = true
				break
			}
		}
		if conflict {
			continue
		}
		sol[idx] = true
		weight = w
	}
	return sol
}

// ── Encoding ────────────────────────────────────────────────────────

// EncodeWithBias maps a binary solution to a position: selected coordinates
// are drawn from [0.7, 1.0), unselected ones from [0, 0.3). Thresholding the
// result at any cutoff in [0.3, 0.7) gives back sol exactly.
func EncodeWithBias(sol Solution, rng *rand.Rand) []float64 {
	pos := make([]float64, len(sol))
	for i, in := range sol {
		if in {
			pos[i] = biasHigh + (1-biasHigh)*rng.Float64()
		} else {
			pos[i] = biasLow * rng.Float64()
		}
	}
	return pos
}

// Threshold maps each coordinate strictly above cut to "selected".
func Threshold(pos []float64, cut float64) Solution {
	sol := make(Solution, len(pos))
	for i, x := range pos {
		sol[i] = x > cut
	}
	return sol
}

// ── Local search ────────────────────────────────────────────────────

// ClimbResult is the 1-flip local optimum reached by Climb.
type ClimbResult struct {
	Solution Solution
	Score    float64
	// Trace holds the strict score at the start and after every accepted move.
	Trace []float64
}

// Climb hill-climbs sol under StrictFitness. Each step scores all single-bit
// flips and moves to the best strictly improving one (lowest index on ties);
// it stops at the first step with no improving neighbor.
func Climb(p *Problem, sol Solution) ClimbResult {
	cur := sol.clone()
	score := StrictFitness(p, cur)
	trace := []float64{score}
	if Verbose {
		fmt.Fprintf(logw(), "[verbose/climb] start score=%.2f\n", score)
	}

	for {
		bestIdx := -1
		bestScore := score
		for i := range cur {
			cur[i] = !cur[i]
			s := StrictFitness(p, cur)
			cur[i] = !cur[i]
			if s > bestScore {
				bestScore = s
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			break
		}
		if Verbose {
			fmt.Fprintf(logw(), "[verbose/climb] flip %d: %.2f -> %.2f\n", bestIdx, score, bestScore)
		}
		cur[bestIdx] = !cur[bestIdx]
		score = bestScore
		trace = append(trace, score)
	}

	return ClimbResult{Solution: cur, Score: score, Trace: trace}
}
