package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrials() []TrialResult {
	return []TrialResult{
		{Trial: 0, Elapsed: 2 * time.Millisecond, Result: Result{
			Solution: Solution{false, true, true}, Flavor: 25,
			Initial: Solution{true, false, true}, InitialFitness: 15,
		}},
		{Trial: 1, Elapsed: 4 * time.Millisecond, Result: Result{
			Solution: Solution{true, false, true}, Flavor: 15,
			Initial: Solution{true, false, true}, InitialFitness: 15,
		}},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleTrials())
	assert.Equal(t, 25.0, s.Best)
	assert.Equal(t, 15.0, s.Worst)
	assert.Equal(t, 20.0, s.Mean)
	assert.Equal(t, int64(6), s.TotalMs)

	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestFormatTrial(t *testing.T) {
	out := FormatTrial(sampleTrials()[0])
	assert.Contains(t, out, "Trial 1:")
	assert.Contains(t, out, "- Initial solution\n[0 2]\n")
	assert.Contains(t, out, "- Initial fitness: 15.00")
	assert.Contains(t, out, "- Final solution\n[1 2]\n")
	assert.Contains(t, out, "- Final flavor: 25.00")
	assert.NotContains(t, out, "failed validation")

	deg := TrialResult{Result: Result{Solution: make(Solution, 2), Initial: make(Solution, 2), Degenerate: true}}
	assert.Contains(t, FormatTrial(deg), "failed validation")
}

func TestNewReport(t *testing.T) {
	p := scenarioProblem(t, 4, Pair{0, 1})
	rep := NewReport("stew.dat", p, sampleTrials())

	_, err := uuid.Parse(rep.RunID)
	require.NoError(t, err)
	assert.Equal(t, "stew.dat", rep.Instance)
	assert.Equal(t, 3, rep.Ingredients)
	assert.Equal(t, 1, rep.Exclusions)
	require.Len(t, rep.Trials, 2)
	assert.Equal(t, 1, rep.Trials[0].Trial)
	assert.Equal(t, []int{1, 2}, rep.Trials[0].Final)
	assert.Equal(t, []int{0, 2}, rep.Trials[0].Initial)
	assert.Equal(t, 25.0, rep.Summary.Best)
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	printTable(&buf, sampleTrials())
	out := buf.String()
	assert.Contains(t, out, "Trial")
	assert.Contains(t, out, "best 25, mean 20, worst 15 over 2 trials")
}
