package gofunc_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gofunc "github.com/njchilds90/gofunc"
)

func asParam(t *testing.T, f gofunc.Function) map[string]interface{} {
	t.Helper()
	j, err := gofunc.ToJSON(f)
	require.NoError(t, err)
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(j), &m))
	return m
}

func TestHandleToolCall_Create(t *testing.T) {
	resp := gofunc.HandleToolCall(gofunc.ToolRequest{
		Tool:   "create",
		Params: map[string]interface{}{"name": "polynomial", "payload": []interface{}{1.0, 2.0, 5.0}},
	})
	require.Empty(t, resp.Error)
	assert.Equal(t, "1+2x^1+5x^2", resp.String)
	assert.Equal(t, "1 + 2x^{1} + 5x^{2}", resp.LaTeX)

	resp = gofunc.HandleToolCall(gofunc.ToolRequest{
		Tool:   "create",
		Params: map[string]interface{}{"name": "sin", "payload": 1.0},
	})
	assert.Contains(t, resp.Error, "unknown function")

	resp = gofunc.HandleToolCall(gofunc.ToolRequest{
		Tool:   "create",
		Params: map[string]interface{}{"name": "power", "payload": 1.5},
	})
	assert.Contains(t, resp.Error, "malformed payload")
}

func TestHandleToolCall_Combine(t *testing.T) {
	resp := gofunc.HandleToolCall(gofunc.ToolRequest{
		Tool: "combine",
		Params: map[string]interface{}{
			"op": "*",
			"a":  asParam(t, gofunc.Poly(1, 6)),
			"b":  asParam(t, gofunc.Pow(4)),
		},
	})
	require.Empty(t, resp.Error)
	assert.Equal(t, "1+6x^1*x^4", resp.String)

	resp = gofunc.HandleToolCall(gofunc.ToolRequest{
		Tool:   "combine",
		Params: map[string]interface{}{"op": "+", "a": asParam(t, gofunc.E(4)), "b": "abc"},
	})
	assert.Contains(t, resp.Error, "right operand is string")
}

func TestHandleToolCall_EvalDeriv(t *testing.T) {
	fn := asParam(t, gofunc.Div(gofunc.Poly(1, 6), gofunc.Pow(4)))
	resp := gofunc.HandleToolCall(gofunc.ToolRequest{Tool: "deriv", Params: map[string]interface{}{"fn": fn, "x": 2.0}})
	require.Empty(t, resp.Error)
	assert.InDelta(t, -1.25, resp.Result.(float64), 1e-12)

	resp = gofunc.HandleToolCall(gofunc.ToolRequest{Tool: "eval", Params: map[string]interface{}{"fn": fn, "x": 0.0}})
	require.Empty(t, resp.Error)
	assert.Equal(t, "+Inf", resp.Result)

	resp = gofunc.HandleToolCall(gofunc.ToolRequest{Tool: "eval", Params: map[string]interface{}{"fn": fn}})
	assert.Equal(t, "missing param: x", resp.Error)
}

func TestHandleToolCall_Newton(t *testing.T) {
	resp := gofunc.HandleToolCall(gofunc.ToolRequest{
		Tool:   "newton",
		Params: map[string]interface{}{"fn": asParam(t, gofunc.Poly(-5, 2, 3)), "x0": -7.0},
	})
	require.Empty(t, resp.Error)
	result := resp.Result.(map[string]interface{})
	assert.InDelta(t, -5.0/3.0, result["root"].(float64), 1e-4)
	assert.Equal(t, true, result["converged"])

	resp = gofunc.HandleToolCall(gofunc.ToolRequest{
		Tool:   "newton",
		Params: map[string]interface{}{"fn": asParam(t, gofunc.X()), "x0": 1.0, "eps": 0.0},
	})
	assert.NotEmpty(t, resp.Error)
}

func TestHandleToolCall_NewtonIterBounds(t *testing.T) {
	// x^2+1 has no real root, so an accepted iter would run to the limit.
	fn := asParam(t, gofunc.Poly(1, 0, 1))
	cases := map[string]float64{
		"zero":       0,
		"negative":   -3,
		"fractional": 2.9,
		"over limit": 1e15,
		"overflow":   1e19,
	}
	for name, iter := range cases {
		resp := gofunc.HandleToolCall(gofunc.ToolRequest{
			Tool:   "newton",
			Params: map[string]interface{}{"fn": fn, "x0": 0.5, "eps": 1e-9, "iter": iter},
		})
		assert.Contains(t, resp.Error, "iter", name)
		assert.Nil(t, resp.Result, name)
	}

	resp := gofunc.HandleToolCall(gofunc.ToolRequest{
		Tool:   "newton",
		Params: map[string]interface{}{"fn": fn, "x0": 0.5, "eps": 1e-9, "iter": 3.0},
	})
	require.Empty(t, resp.Error)
	result := resp.Result.(map[string]interface{})
	assert.Equal(t, 3, result["iterations"])
	assert.Equal(t, false, result["converged"])

	resp = gofunc.HandleToolCall(gofunc.ToolRequest{
		Tool:   "newton",
		Params: map[string]interface{}{"fn": asParam(t, gofunc.Poly(-5, 2, 3)), "x0": 5.0, "iter": 100000.0},
	})
	assert.Empty(t, resp.Error)
}

func TestHandleToolCall_Sample(t *testing.T) {
	resp := gofunc.HandleToolCall(gofunc.ToolRequest{
		Tool:   "sample",
		Params: map[string]interface{}{"fn": asParam(t, gofunc.Pow(2)), "from": -1.0, "to": 1.0, "step": 0.5},
	})
	require.Empty(t, resp.Error)
	samples := resp.Result.([]gofunc.Sample)
	require.Len(t, samples, 5)
	assert.Equal(t, 1.0, samples[0].Y)
	assert.Equal(t, -2.0, samples[0].Deriv)
	assert.Equal(t, 1.0, samples[4].X)

	_, err := gofunc.SampleRange(gofunc.X(), 0, 1e9, 1e-3)
	assert.Error(t, err)
	_, err = gofunc.SampleRange(gofunc.X(), 1, 0, 0.1)
	assert.Error(t, err)
}

func TestHandleToolCall_UnknownTool(t *testing.T) {
	resp := gofunc.HandleToolCall(gofunc.ToolRequest{Tool: "nonexistent", Params: map[string]interface{}{}})
	if resp.Error == "" {
		t.Error("expected error for unknown tool")
	}
}

func TestToolSpec(t *testing.T) {
	spec := gofunc.ToolSpec()
	if !strings.Contains(spec, "newton") {
		t.Error("tool spec should contain 'newton'")
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(spec), &m); err != nil {
		t.Errorf("tool spec should be valid JSON: %v", err)
	}
}
