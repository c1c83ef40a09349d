package main

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestHandleRequest(t *testing.T) {
	body := `{"instance": ` + scenarioJSON + `,
		"config": {"particles": 20, "iterations": 10, "trials": 2, "seed": 7}}`

	code, out := handleRequest(context.Background(), body)
	require.Equal(t, 200, code, string(out))

	var rep Report
	require.NoError(t, json.Unmarshal(out, &rep))
	require.Len(t, rep.Trials, 2)
	for _, tr := range rep.Trials {
		assert.Equal(t, []int{1, 2}, tr.Final)
		assert.Equal(t, 25.0, tr.Flavor)
	}
	assert.Equal(t, 3, rep.Ingredients)
	assert.NotEmpty(t, rep.RunID)
}

func TestHandleRequestErrors(t *testing.T) {
	cases := map[string]string{
		"invalid json":     `{"instance":`,
		"missing instance": `{"config":{}}`,
		"bad instance":     `{"instance":{"capacity":-1,"flavors":[],"weights":[]}}`,
		"bad config":       `{"instance":` + scenarioJSON + `,"config":{"particles":"many"}}`,
		"too many trials":  `{"instance":` + scenarioJSON + `,"config":{"trials":1000}}`,
		"bad threshold":    `{"instance":` + scenarioJSON + `,"config":{"threshold":0.9}}`,
		"negative seed":    `{"instance":` + scenarioJSON + `,"config":{"seed":-3}}`,
		"fractional seed":  `{"instance":` + scenarioJSON + `,"config":{"seed":1.5}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			code, out := handleRequest(context.Background(), body)
			assert.Equal(t, 400, code)
			assert.NotEmpty(t, gjson.GetBytes(out, "error").String())
		})
	}
}

func TestParseRequestConfig(t *testing.T) {
	cfg, err := parseRequestConfig(gjson.Parse(`{"iterations": 5, "tieEpsilon": 0.001, "stagnationLimit": 0}`))
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Iterations)
	assert.Equal(t, 0.001, cfg.TieEpsilon)
	assert.Equal(t, 0, cfg.StagnationLimit)
	assert.Equal(t, 1, cfg.Trials)
	assert.Equal(t, DefaultConfig().Particles, cfg.Particles)

	_, err = parseRequestConfig(gjson.Parse(`{"iterations": 2.5}`))
	require.ErrorIs(t, err, ErrInvalidConfig)

	cfg, err = parseRequestConfig(gjson.Parse(`{"seed": 12}`))
	require.NoError(t, err)
	assert.Equal(t, uint64(12), cfg.Seed)

	_, err = parseRequestConfig(gjson.Parse(`{"seed": 1.5}`))
	require.ErrorIs(t, err, ErrInvalidConfig)
}
