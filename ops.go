package gofunc

import (
	"fmt"
	"strings"
)

// ============================================================
// Combination operators
// ============================================================

// Op names one of the four combination operators.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
)

var opNames = [...]string{OpAdd: "add", OpSub: "subtract", OpMul: "multiply", OpDiv: "divide"}
var opSymbols = [...]string{OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/"}

func (op Op) String() string {
	if op < OpAdd || op > OpDiv {
		return fmt.Sprintf("Op(%d)", int(op))
	}
	return opNames[op]
}

// Symbol returns the infix symbol used when rendering op.
func (op Op) Symbol() string {
	if op < OpAdd || op > OpDiv {
		return "?"
	}
	return opSymbols[op]
}

// ParseOp accepts an infix symbol (+ - * /) or a name (add, sub, subtract,
// mul, multiply, div, divide).
func ParseOp(s string) (Op, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "+", "add", "sum":
		return OpAdd, nil
	case "-", "sub", "subtract", "difference":
		return OpSub, nil
	case "*", "mul", "multiply", "product":
		return OpMul, nil
	case "/", "div", "divide", "quotient":
		return OpDiv, nil
	}
	return 0, fmt.Errorf("unknown operator: %q", s)
}

func Add(a, b Function) Function { return &Sum{binary{a, b}} }
func Sub(a, b Function) Function { return &Difference{binary{a, b}} }
func Mul(a, b Function) Function { return &Product{binary{a, b}} }
func Div(a, b Function) Function { return &Quotient{binary{a, b}} }

// Apply builds the composite for op from two Functions.
func Apply(op Op, a, b Function) Function {
	switch op {
	case OpAdd:
		return Add(a, b)
	case OpSub:
		return Sub(a, b)
	case OpMul:
		return Mul(a, b)
	case OpDiv:
		return Div(a, b)
	}
	panic(fmt.Sprintf("gofunc: invalid operator %d", int(op)))
}

// Combine is Apply for operands of unknown type. Both operands are checked
// before anything is built; if either is not a non-nil Function the result
// is a *TypeMismatchError.
func Combine(op Op, a, b interface{}) (Function, error) {
	if op < OpAdd || op > OpDiv {
		return nil, fmt.Errorf("gofunc: invalid operator %d", int(op))
	}
	fa, okA := asFunction(a)
	fb, okB := asFunction(b)
	if !okA || !okB {
		e := &TypeMismatchError{Op: op}
		if !okA {
			e.Sides = append(e.Sides, "left")
			e.Types = append(e.Types, fmt.Sprintf("%T", a))
		}
		if !okB {
			e.Sides = append(e.Sides, "right")
			e.Types = append(e.Types, fmt.Sprintf("%T", b))
		}
		return nil, e
	}
	return Apply(op, fa, fb), nil
}

func AddAny(a, b interface{}) (Function, error) { return Combine(OpAdd, a, b) }
func SubAny(a, b interface{}) (Function, error) { return Combine(OpSub, a, b) }
func MulAny(a, b interface{}) (Function, error) { return Combine(OpMul, a, b) }
func DivAny(a, b interface{}) (Function, error) { return Combine(OpDiv, a, b) }

func asFunction(v interface{}) (Function, bool) {
	f, ok := v.(Function)
	if !ok || f == nil {
		return nil, false
	}
	switch t := f.(type) {
	case *Const:
		return f, t != nil
	case *Ident:
		return f, t != nil
	case *Power:
		return f, t != nil
	case *Exp:
		return f, t != nil
	case *Polynomial:
		return f, t != nil && len(t.coeffs) > 0
	case *Sum:
		return f, t != nil && t.complete()
	case *Difference:
		return f, t != nil && t.complete()
	case *Product:
		return f, t != nil && t.complete()
	case *Quotient:
		return f, t != nil && t.complete()
	}
	return f, true
}
