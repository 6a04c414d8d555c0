// Package gofunc models single-variable real functions as composable values.
//
// Design goals:
//   - Immutable function trees, safe to share and evaluate concurrently
//   - Closed-form derivatives evaluated at a point, no symbolic rewriting
//   - Stable, unsimplified string output and a LaTeX rendering
//   - JSON trees and a tool-call interface for services and agents
package gofunc

import (
	"math"
	"strconv"
	"strings"
)

// ============================================================
// Core Interface
// ============================================================

// Function is a real-valued function of one real variable x.
type Function interface {
	// Eval returns f(x). Out-of-domain inputs yield ±Inf or NaN.
	Eval(x float64) float64
	// Deriv returns f'(x).
	Deriv(x float64) float64
	String() string
	LaTeX() string
	funcType() string
	toJSON() map[string]interface{}
}

// ============================================================
// Const - constant function
// ============================================================

type Const struct{ c int }

func C(c int) *Const { return &Const{c: c} }

func (k *Const) Eval(float64) float64  { return float64(k.c) }
func (k *Const) Deriv(float64) float64 { return 0 }
func (k *Const) String() string        { return strconv.Itoa(k.c) }
func (k *Const) LaTeX() string         { return strconv.Itoa(k.c) }
func (k *Const) Value() int            { return k.c }
func (k *Const) funcType() string      { return "const" }
func (k *Const) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "const", "value": k.c}
}

// ============================================================
// Ident - identity function
// ============================================================

type Ident struct{}

func X() *Ident { return &Ident{} }

func (*Ident) Eval(x float64) float64 { return x }
func (*Ident) Deriv(float64) float64  { return 1 }
func (*Ident) String() string         { return "x" }
func (*Ident) LaTeX() string          { return "x" }
func (*Ident) funcType() string       { return "ident" }
func (*Ident) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "ident"}
}

// ============================================================
// Power - x^n
// ============================================================

// Power is x raised to an integer exponent. Negative exponents are allowed;
// the caller is responsible for keeping x away from zero.
type Power struct{ n int }

func Pow(n int) *Power { return &Power{n: n} }

func (p *Power) Eval(x float64) float64 { return math.Pow(x, float64(p.n)) }

func (p *Power) Deriv(x float64) float64 {
	// n*x^(n-1) is 0*Inf at x = 0 when n = 0.
	if p.n == 0 {
		return 0
	}
	return float64(p.n) * math.Pow(x, float64(p.n-1))
}

func (p *Power) String() string   { return "x^" + strconv.Itoa(p.n) }
func (p *Power) LaTeX() string    { return "x^{" + strconv.Itoa(p.n) + "}" }
func (p *Power) Exponent() int    { return p.n }
func (p *Power) funcType() string { return "power" }
func (p *Power) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "power", "n": p.n}
}

// ============================================================
// Exp - e^(kx)
// ============================================================

type Exp struct{ k int }

func E(k int) *Exp { return &Exp{k: k} }

func (e *Exp) Eval(x float64) float64  { return math.Exp(float64(e.k) * x) }
func (e *Exp) Deriv(x float64) float64 { return float64(e.k) * math.Exp(float64(e.k)*x) }
func (e *Exp) String() string          { return "e^" + strconv.Itoa(e.k) + "x" }
func (e *Exp) LaTeX() string           { return "e^{" + strconv.Itoa(e.k) + "x}" }
func (e *Exp) Coefficient() int        { return e.k }
func (e *Exp) funcType() string        { return "exp" }
func (e *Exp) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "exp", "k": e.k}
}

// ============================================================
// Polynomial - a0 + a1 x + ... + an x^n
// ============================================================

// Polynomial holds integer coefficients indexed by degree.
type Polynomial struct{ coeffs []int }

// Poly builds a polynomial from its coefficients, lowest degree first.
// It panics when no coefficient is given; use NewPolynomial for input that
// has not been validated.
func Poly(coeffs ...int) *Polynomial {
	p, err := NewPolynomial(coeffs)
	if err != nil {
		panic(err.Error())
	}
	return p
}

// NewPolynomial copies coeffs into a new Polynomial.
func NewPolynomial(coeffs []int) (*Polynomial, error) {
	if len(coeffs) == 0 {
		return nil, &MalformedPayloadError{Name: "polynomial", Want: PayloadInts, Got: PayloadInts, Reason: "at least one coefficient is required"}
	}
	return &Polynomial{coeffs: append([]int(nil), coeffs...)}, nil
}

func (p *Polynomial) Eval(x float64) float64 {
	sum := 0.0
	for i, a := range p.coeffs {
		sum += float64(a) * math.Pow(x, float64(i))
	}
	return sum
}

func (p *Polynomial) Deriv(x float64) float64 {
	sum := 0.0
	for i := 1; i < len(p.coeffs); i++ {
		sum += float64(i*p.coeffs[i]) * math.Pow(x, float64(i-1))
	}
	return sum
}

func (p *Polynomial) String() string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(p.coeffs[0]))
	for i := 1; i < len(p.coeffs); i++ {
		sb.WriteString("+")
		sb.WriteString(strconv.Itoa(p.coeffs[i]))
		sb.WriteString("x^")
		sb.WriteString(strconv.Itoa(i))
	}
	return sb.String()
}

func (p *Polynomial) LaTeX() string {
	terms := make([]string, len(p.coeffs))
	terms[0] = strconv.Itoa(p.coeffs[0])
	for i := 1; i < len(p.coeffs); i++ {
		terms[i] = strconv.Itoa(p.coeffs[i]) + "x^{" + strconv.Itoa(i) + "}"
	}
	return strings.Join(terms, " + ")
}

func (p *Polynomial) Coeffs() []int    { return append([]int(nil), p.coeffs...) }
func (p *Polynomial) Degree() int      { return len(p.coeffs) - 1 }
func (p *Polynomial) funcType() string { return "polynomial" }
func (p *Polynomial) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "polynomial", "coeffs": p.Coeffs()}
}
