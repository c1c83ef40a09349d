package main

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// TrialReport is the JSON form of one trial.
type TrialReport struct {
	Trial          int     `json:"trial"`
	Initial        []int   `json:"initial"`
	InitialFitness float64 `json:"initialFitness"`
	Final          []int   `json:"final"`
	Flavor         float64 `json:"flavor"`
	Degenerate     bool    `json:"degenerate,omitempty"`
	TimeMs         int64   `json:"timeMs"`
}

// Summary aggregates the final flavors of a batch of trials.
type Summary struct {
	Best    float64 `json:"best"`
	Mean    float64 `json:"mean"`
	Worst   float64 `json:"worst"`
	TotalMs int64   `json:"totalMs"`
}

// Report is the JSON-serializable result of a full run.
type Report struct {
	RunID       string        `json:"runId"`
	Date        string        `json:"date"`
	Instance    string        `json:"instance,omitempty"`
	Ingredients int           `json:"ingredients"`
	Exclusions  int           `json:"exclusions"`
	Capacity    float64       `json:"capacity"`
	Trials      []TrialReport `json:"trials"`
	Summary     Summary       `json:"summary"`
}

// NewReport assembles the JSON report for a batch of trials on p.
func NewReport(instance string, p *Problem, trials []TrialResult) Report {
	rep := Report{
		RunID:       uuid.NewString(),
		Date:        time.Now().UTC().Format(time.RFC3339),
		Instance:    instance,
		Ingredients: p.Dim(),
		Exclusions:  len(p.Exclusions),
		Capacity:    p.Capacity,
		Trials:      make([]TrialReport, len(trials)),
		Summary:     Summarize(trials),
	}
	for i, t := range trials {
		rep.Trials[i] = TrialReport{
			Trial:          t.Trial + 1,
			Initial:        t.Result.Initial.Selected(),
			InitialFitness: t.Result.InitialFitness,
			Final:          t.Result.Solution.Selected(),
			Flavor:         t.Result.Flavor,
			Degenerate:     t.Result.Degenerate,
			TimeMs:         t.Elapsed.Milliseconds(),
		}
	}
	return rep
}

// Summarize returns best, mean and worst final flavor plus total time.
func Summarize(trials []TrialResult) Summary {
	if len(trials) == 0 {
		return Summary{}
	}
	s := Summary{Best: math.Inf(-1), Worst: math.Inf(1)}
	sum := 0.0
	var total time.Duration
	for _, t := range trials {
		f := t.Result.Flavor
		s.Best = math.Max(s.Best, f)
		s.Worst = math.Min(s.Worst, f)
		sum += f
		total += t.Elapsed
	}
	s.Mean = sum / float64(len(trials))
	s.TotalMs = total.Milliseconds()
	return s
}

// FormatTrial produces the per-trial text block: initial and final
// selections (0-based item indices), their scores and the elapsed time.
func FormatTrial(t TrialResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "----------------------\nTrial %d:\n", t.Trial+1)
	fmt.Fprintf(&b, "- Initial solution\n%v\n", t.Result.Initial.Selected())
	fmt.Fprintf(&b, "- Initial fitness: %.2f\n", t.Result.InitialFitness)
	fmt.Fprintf(&b, "- Final solution\n%v\n", t.Result.Solution.Selected())
	fmt.Fprintf(&b, "- Final flavor: %.2f\n", t.Result.Flavor)
	if t.Result.Degenerate {
		b.WriteString("- Final global best failed validation; empty selection returned\n")
	}
	fmt.Fprintf(&b, "- Time: %v\n", t.Elapsed)
	return b.String()
}

func printTable(w io.Writer, trials []TrialResult) {
	fmt.Fprintf(w, "%-8s %14s %14s %6s %10s\n", "Trial", "Initial", "Final", "Items", "Time")
	fmt.Fprintf(w, "%-8s %14s %14s %6s %10s\n", "--------", "--------------", "--------------", "------", "----------")
	for _, t := range trials {
		fmt.Fprintf(w, "%-8d %14s %14s %6d %9.1fms\n", t.Trial+1,
			humanize.CommafWithDigits(t.Result.InitialFitness, 2),
			humanize.CommafWithDigits(t.Result.Flavor, 2),
			t.Result.Solution.Count(),
			float64(t.Elapsed.Microseconds())/1000)
	}
	s := Summarize(trials)
	fmt.Fprintf(w, "%-8s %14s %14s %6s %10s\n", "--------", "--------------", "--------------", "------", "----------")
	fmt.Fprintf(w, "best %s, mean %s, worst %s over %d trials in %.1fs\n",
		humanize.CommafWithDigits(s.Best, 2),
		humanize.CommafWithDigits(s.Mean, 2),
		humanize.CommafWithDigits(s.Worst, 2),
		len(trials), float64(s.TotalMs)/1000)
}
