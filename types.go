package main

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrInvalidProblem is returned (wrapped) for instances that violate the model invariants.
var ErrInvalidProblem = errors.New("invalid problem")

// Ingredient is one selectable item.
type Ingredient struct {
	Flavor float64
	Weight float64
}

// Pair is an unordered exclusion pair, stored with A < B.
type Pair struct {
	A, B int
}

func makePair(a, b int) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// Problem is the read-only instance shared by every evaluator call and every
// particle. Build it with NewProblem.
type Problem struct {
	Ingredients []Ingredient
	Exclusions  []Pair
	Capacity    float64

	conflicts [][]int // conflicts[i] = items excluded together with i
}

// Solution is a binary selection vector, one entry per ingredient.
type Solution []bool

// Selected returns the selected item indices in ascending order.
func (s Solution) Selected() []int {
	idxs := make([]int, 0, len(s))
	for i, in := range s {
		if in {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

// Count returns the number of selected items.
func (s Solution) Count() int {
	n := 0
	for _, in := range s {
		if in {
			n++
		}
	}
	return n
}

func (s Solution) clone() Solution {
	c := make(Solution, len(s))
	copy(c, s)
	return c
}

// NewProblem validates the instance and canonicalizes exclusions: pairs are
// stored as unordered (A < B) and duplicates in either orientation collapse.
// Exclusion indices are 0-based.
func NewProblem(ingredients []Ingredient, exclusions []Pair, capacity float64) (*Problem, error) {
	if math.IsNaN(capacity) || math.IsInf(capacity, 0) || capacity < 0 {
		return nil, fmt.Errorf("%w: capacity %v must be finite and >= 0", ErrInvalidProblem, capacity)
	}
	for i, ing := range ingredients {
		if !finiteNonNeg(ing.Flavor) {
			return nil, fmt.Errorf("%w: ingredient %d flavor %v must be finite and >= 0", ErrInvalidProblem, i, ing.Flavor)
		}
		if !finiteNonNeg(ing.Weight) {
			return nil, fmt.Errorf("%w: ingredient %d weight %v must be finite and >= 0", ErrInvalidProblem, i, ing.Weight)
		}
	}

	n := len(ingredients)
	seen := make(map[Pair]bool, len(exclusions))
	pairs := make([]Pair, 0, len(exclusions))
	for _, e := range exclusions {
		if e.A < 0 || e.A >= n || e.B < 0 || e.B >= n {
			return nil, fmt.Errorf("%w: exclusion (%d,%d) out of range [0,%d)", ErrInvalidProblem, e.A, e.B, n)
		}
		if e.A == e.B {
			return nil, fmt.Errorf("%w: ingredient %d excluded with itself", ErrInvalidProblem, e.A)
		}
		cp := makePair(e.A, e.B)
		if seen[cp] {
			continue
		}
		seen[cp] = true
		pairs = append(pairs, cp)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].A != pairs[j].A {
			return pairs[i].A < pairs[j].A
		}
		return pairs[i].B < pairs[j].B
	})

	p := &Problem{
		Ingredients: append([]Ingredient(nil), ingredients...),
		Exclusions:  pairs,
		Capacity:    capacity,
		conflicts:   make([][]int, n),
	}
	for _, e := range pairs {
		p.conflicts[e.A] = append(p.conflicts[e.A], e.B)
		p.conflicts[e.B] = append(p.conflicts[e.B], e.A)
	}
	return p, nil
}

// Dim returns the number of ingredients.
func (p *Problem) Dim() int { return len(p.Ingredients) }

// Excluded reports whether items a and b may not be selected together.
func (p *Problem) Excluded(a, b int) bool {
	for _, c := range p.conflicts[a] {
		if c == b {
			return true
		}
	}
	return false
}

func finiteNonNeg(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
