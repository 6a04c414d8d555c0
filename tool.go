package gofunc

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// ============================================================
// Tool Interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// Sample is one row of the "sample" tool.
type Sample struct {
	X     interface{} `json:"x"`
	Y     interface{} `json:"y"`
	Deriv interface{} `json:"deriv"`
}

const (
	maxSamples    = 10000
	maxNewtonIter = 100000
)

// HandleToolCall runs a tool against the default factory.
func HandleToolCall(req ToolRequest) ToolResponse {
	return defaultFactory.HandleToolCall(req)
}

// HandleToolCall runs one tool. Failures are reported in ToolResponse.Error.
func (fact *Factory) HandleToolCall(req ToolRequest) ToolResponse {
	getFunc := func(key string) (Function, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("param %s must be a function object", key)
		}
		return fact.Decode(m)
	}
	getString := func(key string) (string, error) {
		v, ok := req.Params[key]
		if !ok {
			return "", fmt.Errorf("missing param: %s", key)
		}
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("param %s must be a string", key)
		}
		return s, nil
	}
	getNumber := func(key string, def *float64) (float64, error) {
		v, ok := req.Params[key]
		if !ok {
			if def != nil {
				return *def, nil
			}
			return 0, fmt.Errorf("missing param: %s", key)
		}
		n, ok := v.(float64)
		if !ok {
			return 0, fmt.Errorf("param %s must be a number", key)
		}
		return n, nil
	}
	// Operands of "combine" stay untyped unless they are objects.
	getOperand := func(key string) (interface{}, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		if m, ok := v.(map[string]interface{}); ok {
			return fact.Decode(m)
		}
		return v, nil
	}
	respond := func(f Function) ToolResponse {
		return ToolResponse{Result: f.toJSON(), LaTeX: f.LaTeX(), String: f.String()}
	}
	respondValue := func(f Function, v float64) ToolResponse {
		return ToolResponse{Result: jsonNumber(v), LaTeX: f.LaTeX(), String: f.String()}
	}
	fail := func(err error) ToolResponse { return ToolResponse{Error: err.Error()} }

	switch req.Tool {
	case "create":
		name, err := getString("name")
		if err != nil {
			return fail(err)
		}
		p, err := PayloadFromValue(req.Params["payload"])
		if err != nil {
			return fail(err)
		}
		f, err := fact.Create(name, p)
		if err != nil {
			return fail(err)
		}
		if f == nil {
			return fail(fmt.Errorf("unknown function: %s", name))
		}
		return respond(f)

	case "combine":
		opName, err := getString("op")
		if err != nil {
			return fail(err)
		}
		op, err := ParseOp(opName)
		if err != nil {
			return fail(err)
		}
		a, err := getOperand("a")
		if err != nil {
			return fail(err)
		}
		b, err := getOperand("b")
		if err != nil {
			return fail(err)
		}
		f, err := Combine(op, a, b)
		if err != nil {
			return fail(err)
		}
		return respond(f)

	case "eval", "deriv":
		f, err := getFunc("fn")
		if err != nil {
			return fail(err)
		}
		x, err := getNumber("x", nil)
		if err != nil {
			return fail(err)
		}
		if req.Tool == "eval" {
			return respondValue(f, f.Eval(x))
		}
		return respondValue(f, f.Deriv(x))

	case "render":
		f, err := getFunc("fn")
		if err != nil {
			return fail(err)
		}
		return respond(f)

	case "newton":
		f, err := getFunc("fn")
		if err != nil {
			return fail(err)
		}
		x0, err := getNumber("x0", nil)
		if err != nil {
			return fail(err)
		}
		defIter, defEps := 100.0, 1e-4
		iter, err := getNumber("iter", &defIter)
		if err != nil {
			return fail(err)
		}
		eps, err := getNumber("eps", &defEps)
		if err != nil {
			return fail(err)
		}
		n, err := newtonIter(iter)
		if err != nil {
			return fail(err)
		}
		if !(eps > 0) {
			return fail(fmt.Errorf("eps must be > 0"))
		}
		res := NewtonSolve(f, x0, n, eps)
		return ToolResponse{
			Result: map[string]interface{}{
				"root":       jsonNumber(res.Root),
				"residual":   jsonNumber(res.Residual),
				"iterations": res.Iterations,
				"converged":  res.Converged,
			},
			LaTeX:  f.LaTeX(),
			String: f.String(),
		}

	case "sample":
		f, err := getFunc("fn")
		if err != nil {
			return fail(err)
		}
		from, err := getNumber("from", nil)
		if err != nil {
			return fail(err)
		}
		to, err := getNumber("to", nil)
		if err != nil {
			return fail(err)
		}
		step, err := getNumber("step", nil)
		if err != nil {
			return fail(err)
		}
		samples, err := SampleRange(f, from, to, step)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: samples, LaTeX: f.LaTeX(), String: f.String()}

	case "tool_spec":
		return ToolResponse{Result: json.RawMessage(ToolSpec())}
	}
	return fail(fmt.Errorf("unknown tool: %s", req.Tool))
}

// SampleRange evaluates f and f' at from, from+step, ... up to and including
// to (within half a step).
func SampleRange(f Function, from, to, step float64) ([]Sample, error) {
	if !(step > 0) || math.IsInf(step, 0) || math.IsNaN(from) || math.IsNaN(to) || to < from {
		return nil, fmt.Errorf("invalid range [%v, %v] step %v", from, to, step)
	}
	n := int(math.Floor((to-from)/step+0.5)) + 1
	if n > maxSamples {
		return nil, fmt.Errorf("range yields %d samples, limit is %d", n, maxSamples)
	}
	out := make([]Sample, n)
	for i := range out {
		x := from + float64(i)*step
		out[i] = Sample{X: jsonNumber(x), Y: jsonNumber(f.Eval(x)), Deriv: jsonNumber(f.Deriv(x))}
	}
	return out, nil
}

// newtonIter checks the "iter" parameter of the newton tool: a whole number
// in [1, maxNewtonIter].
func newtonIter(v float64) (int, error) {
	if v != math.Trunc(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("iter must be an integer, got %v", v)
	}
	if v < 1 || v > maxNewtonIter {
		return 0, fmt.Errorf("iter %v out of range [1, %d]", v, maxNewtonIter)
	}
	return int(v), nil
}

// jsonNumber keeps non-finite values encodable.
func jsonNumber(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return v
}

// ============================================================
// Tool spec
// ============================================================

func ToolSpec() string {
	fn := "object"
	tools := []map[string]interface{}{
		ts("create", "Build a primitive: const, ident, power, exp, polynomial. payload is an integer or an integer array", []string{"name"}, map[string]string{"name": "string", "payload": "any"}),
		ts("combine", "Combine two functions with op (+, -, *, /)", []string{"op", "a", "b"}, map[string]string{"op": "string", "a": fn, "b": fn}),
		ts("eval", "Evaluate f(x)", []string{"fn", "x"}, map[string]string{"fn": fn, "x": "number"}),
		ts("deriv", "Evaluate f'(x)", []string{"fn", "x"}, map[string]string{"fn": fn, "x": "number"}),
		ts("render", "Render a function as text and LaTeX", []string{"fn"}, map[string]string{"fn": fn}),
		ts("newton", "Newton's method from x0. Optional: iter (default 100, at most 100000), eps (default 1e-4)", []string{"fn", "x0"}, map[string]string{"fn": fn, "x0": "number", "iter": "integer", "eps": "number"}),
		ts("sample", "Tabulate f and f' over [from, to] with step", []string{"fn", "from", "to", "step"}, map[string]string{"fn": fn, "from": "number", "to": "number", "step": "number"}),
		ts("tool_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
