package gofunc

// ============================================================
// Composites - binary combinations of two Functions
// ============================================================

// Operands are never copied; a sub-tree may be shared by any number of
// parents and lives as long as the longest of them.
type binary struct{ a, b Function }

func (n binary) A() Function { return n.a }
func (n binary) B() Function { return n.b }

func (n binary) complete() bool { return n.a != nil && n.b != nil }

func (n binary) jsonNode(typ string) map[string]interface{} {
	return map[string]interface{}{"type": typ, "a": n.a.toJSON(), "b": n.b.toJSON()}
}

// Sum is a(x) + b(x).
type Sum struct{ binary }

func (s *Sum) Eval(x float64) float64  { return s.a.Eval(x) + s.b.Eval(x) }
func (s *Sum) Deriv(x float64) float64 { return s.a.Deriv(x) + s.b.Deriv(x) }
func (s *Sum) String() string          { return s.a.String() + "+" + s.b.String() }
func (s *Sum) LaTeX() string           { return s.a.LaTeX() + " + " + s.b.LaTeX() }
func (s *Sum) funcType() string        { return "sum" }
func (s *Sum) toJSON() map[string]interface{} {
	return s.jsonNode("sum")
}

// Difference is a(x) - b(x).
type Difference struct{ binary }

func (d *Difference) Eval(x float64) float64  { return d.a.Eval(x) - d.b.Eval(x) }
func (d *Difference) Deriv(x float64) float64 { return d.a.Deriv(x) - d.b.Deriv(x) }
func (d *Difference) String() string          { return d.a.String() + "-" + d.b.String() }
func (d *Difference) LaTeX() string           { return d.a.LaTeX() + " - " + d.b.LaTeX() }
func (d *Difference) funcType() string        { return "difference" }
func (d *Difference) toJSON() map[string]interface{} {
	return d.jsonNode("difference")
}

// Product is a(x) * b(x).
type Product struct{ binary }

func (p *Product) Eval(x float64) float64 { return p.a.Eval(x) * p.b.Eval(x) }

func (p *Product) Deriv(x float64) float64 {
	return p.a.Deriv(x)*p.b.Eval(x) + p.a.Eval(x)*p.b.Deriv(x)
}

func (p *Product) String() string   { return p.a.String() + "*" + p.b.String() }
func (p *Product) LaTeX() string    { return "\\left(" + p.a.LaTeX() + "\\right) \\cdot \\left(" + p.b.LaTeX() + "\\right)" }
func (p *Product) funcType() string { return "product" }
func (p *Product) toJSON() map[string]interface{} {
	return p.jsonNode("product")
}

// Quotient is a(x) / b(x). A zero denominator yields ±Inf or NaN.
type Quotient struct{ binary }

func (q *Quotient) Eval(x float64) float64 { return q.a.Eval(x) / q.b.Eval(x) }

// Deriv applies the quotient rule (a'b - ab') / b^2.
func (q *Quotient) Deriv(x float64) float64 {
	a, b := q.a.Eval(x), q.b.Eval(x)
	return (q.a.Deriv(x)*b - a*q.b.Deriv(x)) / (b * b)
}

func (q *Quotient) String() string   { return q.a.String() + "/" + q.b.String() }
func (q *Quotient) LaTeX() string    { return "\\frac{" + q.a.LaTeX() + "}{" + q.b.LaTeX() + "}" }
func (q *Quotient) funcType() string { return "quotient" }
func (q *Quotient) toJSON() map[string]interface{} {
	return q.jsonNode("quotient")
}
