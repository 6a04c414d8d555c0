package gofunc

import (
	"math"

	log "github.com/sirupsen/logrus"
)

// ============================================================
// Newton's method
// ============================================================

// NewtonResult describes where a Newton iteration stopped.
type NewtonResult struct {
	Root       float64 `json:"root"`
	Residual   float64 `json:"residual"` // |f(Root)|
	Iterations int     `json:"iterations"`
	Converged  bool    `json:"converged"` // Residual <= eps
}

// Newton runs x <- x - f(x)/f'(x) from x0 until |f(x)| <= eps or iter steps
// have been taken, and returns the last x. At least one step is always
// taken. Nothing guards against f'(x) = 0, so the estimate may be ±Inf or
// NaN; callers that need a root should check |f(x)| themselves.
func Newton(f Function, x0 float64, iter int, eps float64) float64 {
	return NewtonSolve(f, x0, iter, eps).Root
}

// NewtonSolve is Newton with the stopping state reported.
func NewtonSolve(f Function, x0 float64, iter int, eps float64) NewtonResult {
	x := x0
	step := 0
	var fx float64
	for {
		x -= f.Eval(x) / f.Deriv(x)
		step++
		fx = f.Eval(x)
		if !(math.Abs(fx) > eps) || step >= iter {
			break
		}
	}
	res := NewtonResult{Root: x, Residual: math.Abs(fx), Iterations: step}
	res.Converged = res.Residual <= eps
	if log.IsLevelEnabled(log.DebugLevel) {
		log.WithFields(log.Fields{
			"f":          f.String(),
			"x0":         x0,
			"root":       x,
			"residual":   res.Residual,
			"iterations": step,
		}).Debug("newton: done")
	}
	return res
}
