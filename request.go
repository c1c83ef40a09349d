package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/tidwall/gjson"
)

// Request limits for the hosted handler.
const (
	maxRequestTrials     = 50
	maxRequestParticles  = 500
	maxRequestIterations = 1000
)

// parseRequestConfig applies the overrides found under "config" to the
// defaults. Unknown keys are ignored.
func parseRequestConfig(c gjson.Result) (Config, error) {
	cfg := DefaultConfig()
	cfg.Trials = 1
	if !c.Exists() {
		return cfg, nil
	}
	if !c.IsObject() {
		return cfg, fmt.Errorf("%w: config must be an object", ErrInvalidConfig)
	}

	ints := map[string]*int{
		"particles":       &cfg.Particles,
		"iterations":      &cfg.Iterations,
		"stagnationLimit": &cfg.StagnationLimit,
		"trials":          &cfg.Trials,
	}
	floats := map[string]*float64{
		"inertiaMax":  &cfg.InertiaMax,
		"inertiaMin":  &cfg.InertiaMin,
		"cognitive":   &cfg.Cognitive,
		"social":      &cfg.Social,
		"velocityCap": &cfg.VelocityCap,
		"threshold":   &cfg.Threshold,
		"tieEpsilon":  &cfg.TieEpsilon,
	}
	for key, dst := range ints {
		if v := c.Get(key); v.Exists() {
			if v.Type != gjson.Number || v.Float() != float64(v.Int()) {
				return cfg, fmt.Errorf("%w: %s must be an integer", ErrInvalidConfig, key)
			}
			*dst = int(v.Int())
		}
	}
	for key, dst := range floats {
		if v := c.Get(key); v.Exists() {
			if v.Type != gjson.Number {
				return cfg, fmt.Errorf("%w: %s must be a number", ErrInvalidConfig, key)
			}
			*dst = v.Float()
		}
	}
	if v := c.Get("seed"); v.Exists() {
		if v.Type != gjson.Number || v.Float() < 0 || v.Float() != math.Trunc(v.Float()) {
			return cfg, fmt.Errorf("%w: seed must be a non-negative integer", ErrInvalidConfig)
		}
		cfg.Seed = v.Uint()
	}

	switch {
	case cfg.Trials > maxRequestTrials:
		return cfg, fmt.Errorf("%w: at most %d trials per request", ErrInvalidConfig, maxRequestTrials)
	case cfg.Particles > maxRequestParticles:
		return cfg, fmt.Errorf("%w: at most %d particles per request", ErrInvalidConfig, maxRequestParticles)
	case cfg.Iterations > maxRequestIterations:
		return cfg, fmt.Errorf("%w: at most %d iterations per request", ErrInvalidConfig, maxRequestIterations)
	}
	return cfg, cfg.Validate()
}

// handleRequest runs the optimizer for a JSON request body of the form
// {"instance": {...}, "config": {...}} and returns an HTTP status code and a
// JSON response body.
func handleRequest(ctx context.Context, body string) (int, []byte) {
	if !gjson.Valid(body) {
		return errBody(400, "invalid JSON")
	}
	root := gjson.Parse(body)
	inst := root.Get("instance")
	if !inst.Exists() {
		return errBody(400, "missing instance field")
	}
	p, err := parseInstanceResult(inst)
	if err != nil {
		return errBody(400, err.Error())
	}
	cfg, err := parseRequestConfig(root.Get("config"))
	if err != nil {
		return errBody(400, err.Error())
	}

	trials, err := runTrials(ctx, p, cfg)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return errBody(503, err.Error())
		}
		return errBody(500, err.Error())
	}
	out, err := json.Marshal(NewReport("", p, trials))
	if err != nil {
		return errBody(500, err.Error())
	}
	return 200, out
}

func errBody(code int, msg string) (int, []byte) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return code, body
}
