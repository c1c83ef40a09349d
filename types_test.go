package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProblemCanonicalizesExclusions(t *testing.T) {
	ings := []Ingredient{{1, 1}, {2, 2}, {3, 3}}
	p, err := NewProblem(ings, []Pair{{2, 0}, {1, 0}, {0, 1}, {0, 2}}, 5)
	require.NoError(t, err)

	assert.Equal(t, []Pair{{0, 1}, {0, 2}}, p.Exclusions)
	assert.True(t, p.Excluded(0, 1))
	assert.True(t, p.Excluded(1, 0))
	assert.True(t, p.Excluded(2, 0))
	assert.False(t, p.Excluded(1, 2))
	assert.Equal(t, 3, p.Dim())
}

func TestNewProblemOrientationDoesNotMatter(t *testing.T) {
	ings := []Ingredient{{10, 2}, {20, 3}, {5, 1}}
	fwd, err := NewProblem(ings, []Pair{{0, 1}}, 4)
	require.NoError(t, err)
	rev, err := NewProblem(ings, []Pair{{1, 0}}, 4)
	require.NoError(t, err)

	for mask := 0; mask < 8; mask++ {
		sol := Solution{mask&1 != 0, mask&2 != 0, mask&4 != 0}
		assert.Equal(t, StrictFitness(fwd, sol), StrictFitness(rev, sol), "mask %03b", mask)
		assert.Equal(t, PenalizedFitness(fwd, sol), PenalizedFitness(rev, sol), "mask %03b", mask)
	}
}

func TestNewProblemCopiesIngredients(t *testing.T) {
	ings := []Ingredient{{1, 1}}
	p, err := NewProblem(ings, nil, 1)
	require.NoError(t, err)
	ings[0].Flavor = 99
	assert.Equal(t, 1.0, p.Ingredients[0].Flavor)
}

func TestNewProblemRejectsMalformed(t *testing.T) {
	ings := []Ingredient{{1, 1}, {2, 2}}
	cases := []struct {
		name string
		ings []Ingredient
		excl []Pair
		capa float64
	}{
		{"negative capacity", ings, nil, -1},
		{"nan capacity", ings, nil, math.NaN()},
		{"infinite capacity", ings, nil, math.Inf(1)},
		{"negative weight", []Ingredient{{1, -1}}, nil, 1},
		{"negative flavor", []Ingredient{{-1, 1}}, nil, 1},
		{"index out of range", ings, []Pair{{0, 2}}, 1},
		{"negative index", ings, []Pair{{-1, 0}}, 1},
		{"self exclusion", ings, []Pair{{1, 1}}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewProblem(tc.ings, tc.excl, tc.capa)
			require.ErrorIs(t, err, ErrInvalidProblem)
		})
	}
}

func TestSolutionHelpers(t *testing.T) {
	s := Solution{false, true, true, false, true}
	assert.Equal(t, []int{1, 2, 4}, s.Selected())
	assert.Equal(t, 3, s.Count())
	assert.Empty(t, Solution{false}.Selected())

	c := s.clone()
	c[0] = true
	assert.False(t, s[0])
}
