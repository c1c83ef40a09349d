package main

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/tidwall/gjson"
)

// LoadInstance reads a problem instance from path. The format follows the
// file suffix: ".json" for JSON, anything else for the whitespace-separated
// ".dat" layout. A trailing ".zst" or ".lz4" is decompressed first.
func LoadInstance(path string) (*Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	name := path
	switch strings.ToLower(filepath.Ext(name)) {
	case ".zst":
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		defer dec.Close()
		r = dec
		name = strings.TrimSuffix(name, filepath.Ext(name))
	case ".lz4":
		r = lz4.NewReader(f)
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var p *Problem
	if strings.ToLower(filepath.Ext(name)) == ".json" {
		p, err = ParseInstanceJSON(string(data))
	} else {
		p, err = ParseInstanceDat(string(data))
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return p, nil
}

// ── .dat format ─────────────────────────────────────────────────────

// ParseInstanceDat parses the text layout:
//
//	N I W
//	N flavors
//	N weights
//	I lines of 1-based exclusion pairs "j k"
//
// Values may be split across lines freely; blank lines are ignored.
func ParseInstanceDat(data string) (*Problem, error) {
	sc := bufio.NewScanner(strings.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	sc.Split(bufio.ScanWords)

	next := func(what string) (float64, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return 0, err
			}
			return 0, fmt.Errorf("%w: unexpected end of input reading %s", ErrInvalidProblem, what)
		}
		v, err := strconv.ParseFloat(sc.Text(), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %v", ErrInvalidProblem, what, err)
		}
		return v, nil
	}

	header := [3]float64{}
	for i, what := range []string{"ingredient count", "exclusion count", "capacity"} {
		v, err := next(what)
		if err != nil {
			return nil, err
		}
		header[i] = v
	}
	n, err := toCount(header[0], "ingredient count")
	if err != nil {
		return nil, err
	}
	m, err := toCount(header[1], "exclusion count")
	if err != nil {
		return nil, err
	}

	ingredients := make([]Ingredient, n)
	for i := range ingredients {
		if ingredients[i].Flavor, err = next(fmt.Sprintf("flavor %d", i+1)); err != nil {
			return nil, err
		}
	}
	for i := range ingredients {
		if ingredients[i].Weight, err = next(fmt.Sprintf("weight %d", i+1)); err != nil {
			return nil, err
		}
	}

	pairs := make([]Pair, 0, m)
	for k := 0; k < m; k++ {
		var ends [2]int
		for e := range ends {
			v, err := next(fmt.Sprintf("exclusion %d", k+1))
			if err != nil {
				return nil, err
			}
			if ends[e], err = toIndex(v); err != nil {
				return nil, fmt.Errorf("exclusion %d: %w", k+1, err)
			}
		}
		pairs = append(pairs, Pair{A: ends[0], B: ends[1]})
	}

	return NewProblem(ingredients, pairs, header[2])
}

// ── JSON format ─────────────────────────────────────────────────────

// ParseInstanceJSON parses
//
//	{"capacity": W, "flavors": [...], "weights": [...], "exclusions": [[j, k], ...]}
//
// or the same with "ingredients": [{"flavor": f, "weight": w}, ...] instead of
// the two parallel arrays. Exclusion pairs are 1-based.
func ParseInstanceJSON(data string) (*Problem, error) {
	if !gjson.Valid(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidProblem)
	}
	return parseInstanceResult(gjson.Parse(data))
}

func parseInstanceResult(root gjson.Result) (*Problem, error) {
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: instance must be a JSON object", ErrInvalidProblem)
	}
	capRes := root.Get("capacity")
	if capRes.Type != gjson.Number {
		return nil, fmt.Errorf("%w: missing numeric capacity", ErrInvalidProblem)
	}

	var ingredients []Ingredient
	if ings := root.Get("ingredients"); ings.Exists() {
		var bad error
		ings.ForEach(func(_, v gjson.Result) bool {
			f, w := v.Get("flavor"), v.Get("weight")
			if f.Type != gjson.Number || w.Type != gjson.Number {
				bad = fmt.Errorf("%w: ingredient %d needs numeric flavor and weight", ErrInvalidProblem, len(ingredients)+1)
				return false
			}
			ingredients = append(ingredients, Ingredient{Flavor: f.Float(), Weight: w.Float()})
			return true
		})
		if bad != nil {
			return nil, bad
		}
	} else {
		flavors, err := readFloats(root.Get("flavors"), "flavors")
		if err != nil {
			return nil, err
		}
		weights, err := readFloats(root.Get("weights"), "weights")
		if err != nil {
			return nil, err
		}
		if len(flavors) != len(weights) {
			return nil, fmt.Errorf("%w: %d flavors but %d weights", ErrInvalidProblem, len(flavors), len(weights))
		}
		ingredients = make([]Ingredient, len(flavors))
		for i := range ingredients {
			ingredients[i] = Ingredient{Flavor: flavors[i], Weight: weights[i]}
		}
	}

	var pairs []Pair
	var bad error
	root.Get("exclusions").ForEach(func(_, v gjson.Result) bool {
		ends := v.Array()
		if len(ends) != 2 || ends[0].Type != gjson.Number || ends[1].Type != gjson.Number {
			bad = fmt.Errorf("%w: exclusion %d must be a pair of numbers", ErrInvalidProblem, len(pairs)+1)
			return false
		}
		a, err := toIndex(ends[0].Float())
		if err == nil {
			var b int
			if b, err = toIndex(ends[1].Float()); err == nil {
				pairs = append(pairs, Pair{A: a, B: b})
				return true
			}
		}
		bad = fmt.Errorf("exclusion %d: %w", len(pairs)+1, err)
		return false
	})
	if bad != nil {
		return nil, bad
	}

	return NewProblem(ingredients, pairs, capRes.Float())
}

func readFloats(v gjson.Result, field string) ([]float64, error) {
	if !v.IsArray() {
		return nil, fmt.Errorf("%w: missing %s array", ErrInvalidProblem, field)
	}
	arr := v.Array()
	out := make([]float64, len(arr))
	for i, x := range arr {
		if x.Type != gjson.Number {
			return nil, fmt.Errorf("%w: %s[%d] is not a number", ErrInvalidProblem, field, i)
		}
		out[i] = x.Float()
	}
	return out, nil
}

// ── helpers ─────────────────────────────────────────────────────────

func toCount(v float64, what string) (int, error) {
	if v < 0 || v != math.Trunc(v) {
		return 0, fmt.Errorf("%w: %s %v must be a non-negative integer", ErrInvalidProblem, what, v)
	}
	return int(v), nil
}

// toIndex converts a 1-based item number to a 0-based index.
func toIndex(v float64) (int, error) {
	if v < 1 || v != math.Trunc(v) {
		return 0, fmt.Errorf("%w: item number %v must be a positive integer", ErrInvalidProblem, v)
	}
	return int(v) - 1, nil
}
