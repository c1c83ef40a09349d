package main

import "math"

const (
	// penaltyFloor keeps infeasible positions rankable above zero.
	penaltyFloor = 0.00001
	// weightPenalty is charged per unit of excess weight by PenalizedFitness.
	weightPenalty = 100.0
	// strictConflictScore is below every feasible score (flavors are >= 0).
	strictConflictScore = -1.0
)

// ── Totals ──────────────────────────────────────────────────────────

// Totals returns the summed flavor and weight of the selected items.
func Totals(p *Problem, sol Solution) (flavor, weight float64) {
	for i, in := range sol {
		if in {
			flavor += p.Ingredients[i].Flavor
			weight += p.Ingredients[i].Weight
		}
	}
	return flavor, weight
}

func hasConflict(p *Problem, sol Solution) bool {
	for _, e := range p.Exclusions {
		if sol[e.A] && sol[e.B] {
			return true
		}
	}
	return false
}

// ── Evaluators ──────────────────────────────────────────────────────

// PenalizedFitness scores raw swarm positions, which are often infeasible.
// Exclusion violations score penaltyFloor; overweight selections lose
// weightPenalty per unit of excess, never dropping below penaltyFloor.
func PenalizedFitness(p *Problem, sol Solution) float64 {
	if hasConflict(p, sol) {
		return penaltyFloor
	}
	flavor, weight := Totals(p, sol)
	if weight > p.Capacity {
		excess := weight - p.Capacity
		return math.Max(flavor-weightPenalty*excess, penaltyFloor)
	}
	return flavor
}

// StrictFitness scores candidates for local search. Exclusion violations
// score strictConflictScore; overweight selections score -excess so smaller
// violations rank higher while staying below every feasible score.
func StrictFitness(p *Problem, sol Solution) float64 {
	if hasConflict(p, sol) {
		return strictConflictScore
	}
	flavor, weight := Totals(p, sol)
	if weight > p.Capacity {
		return -(weight - p.Capacity)
	}
	return flavor
}

// ── Validation ──────────────────────────────────────────────────────

// Validate checks feasibility from first principles, independent of either
// evaluator, and returns the true flavor total when feasible.
func Validate(p *Problem, sol Solution) (float64, bool) {
	if len(sol) != p.Dim() {
		return 0, false
	}
	for _, e := range p.Exclusions {
		if sol[e.A] && sol[e.B] {
			return 0, false
		}
	}
	weight := 0.0
	for i, in := range sol {
		if in {
			weight += p.Ingredients[i].Weight
		}
	}
	if weight > p.Capacity {
		return 0, false
	}
	flavor, _ := Totals(p, sol)
	return flavor, true
}
