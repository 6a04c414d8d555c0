package gofunc

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"golang.org/x/exp/constraints"
)

// ============================================================
// Payload - typed constructor argument
// ============================================================

// PayloadKind tags the shape held by a Payload.
type PayloadKind int

const (
	PayloadNone PayloadKind = iota
	PayloadInt
	PayloadInts
)

func (k PayloadKind) String() string {
	switch k {
	case PayloadNone:
		return "none"
	case PayloadInt:
		return "integer"
	case PayloadInts:
		return "integer list"
	}
	return fmt.Sprintf("PayloadKind(%d)", int(k))
}

// Payload is the single argument handed to a primitive constructor. The
// zero value is an empty (PayloadNone) payload.
type Payload struct {
	kind PayloadKind
	n    int
	ns   []int
}

func None() Payload     { return Payload{} }
func Int(n int) Payload { return Payload{kind: PayloadInt, n: n} }

func (p Payload) Kind() PayloadKind { return p.kind }

// Ints copies ns into a list payload.
func Ints(ns ...int) Payload {
	return Payload{kind: PayloadInts, ns: append([]int{}, ns...)}
}

// IntsOf converts any integer slice into a list payload.
func IntsOf[T constraints.Integer](ns []T) Payload {
	out := make([]int, len(ns))
	for i, v := range ns {
		out[i] = int(v)
	}
	return Payload{kind: PayloadInts, ns: out}
}

// AsInt returns the integer held by an Int payload.
func (p Payload) AsInt() (int, bool) { return p.n, p.kind == PayloadInt }

// AsInts returns a copy of the list held by an Ints payload.
func (p Payload) AsInts() ([]int, bool) {
	if p.kind != PayloadInts {
		return nil, false
	}
	return append([]int{}, p.ns...), true
}

func (p Payload) String() string {
	switch p.kind {
	case PayloadInt:
		return fmt.Sprint(p.n)
	case PayloadInts:
		return fmt.Sprint(p.ns)
	}
	return "none"
}

// PayloadFromValue converts a decoded JSON value into a Payload: nil is
// None, an integral number is Int and an array of integral numbers is Ints.
func PayloadFromValue(v interface{}) (Payload, error) {
	switch t := v.(type) {
	case nil:
		return None(), nil
	case Payload:
		return t, nil
	case int:
		return Int(t), nil
	case int64:
		return Int(int(t)), nil
	case float64:
		n, err := integral(t)
		if err != nil {
			return Payload{}, err
		}
		return Int(n), nil
	case []int:
		return Ints(t...), nil
	case []interface{}:
		ns := make([]int, len(t))
		for i, e := range t {
			var err error
			switch x := e.(type) {
			case float64:
				ns[i], err = integral(x)
			case int:
				ns[i] = x
			default:
				err = fmt.Errorf("%w: %T is not a number", ErrMalformedPayload, e)
			}
			if err != nil {
				return Payload{}, fmt.Errorf("element %d: %w", i, err)
			}
		}
		return Payload{kind: PayloadInts, ns: ns}, nil
	}
	return Payload{}, fmt.Errorf("%w: unsupported type %T", ErrMalformedPayload, v)
}

func integral(f float64) (int, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, fmt.Errorf("%w: %v is not a 32-bit integer", ErrMalformedPayload, f)
	}
	return int(f), nil
}

// ============================================================
// Factory - name → primitive constructor
// ============================================================

// Constructor builds a primitive Function from a payload.
type Constructor func(Payload) (Function, error)

// Factory maps names to constructors. It is safe for concurrent use.
type Factory struct {
	mu       sync.RWMutex
	creators map[string]Constructor
}

// NewFactory returns a Factory with const, ident, power, exp and polynomial
// registered.
func NewFactory() *Factory {
	f := &Factory{creators: map[string]Constructor{}}
	f.Register("const", intCreator("const", func(n int) Function { return C(n) }))
	f.Register("ident", func(Payload) (Function, error) { return X(), nil })
	f.Register("power", intCreator("power", func(n int) Function { return Pow(n) }))
	f.Register("exp", intCreator("exp", func(n int) Function { return E(n) }))
	f.Register("polynomial", func(p Payload) (Function, error) {
		if p.kind != PayloadInts {
			return nil, &MalformedPayloadError{Name: "polynomial", Want: PayloadInts, Got: p.kind}
		}
		poly, err := NewPolynomial(p.ns)
		if err != nil {
			return nil, err
		}
		return poly, nil
	})
	return f
}

func intCreator(name string, build func(int) Function) Constructor {
	return func(p Payload) (Function, error) {
		n, ok := p.AsInt()
		if !ok {
			return nil, &MalformedPayloadError{Name: name, Want: PayloadInt, Got: p.kind}
		}
		return build(n), nil
	}
}

// Register binds name to c, replacing any earlier binding.
func (f *Factory) Register(name string, c Constructor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creators[name] = c
}

func (f *Factory) Lookup(name string) (Constructor, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	c, ok := f.creators[name]
	return c, ok
}

// Create builds the primitive registered under name. An unknown name is not
// an error: Create returns a nil Function and a nil error.
func (f *Factory) Create(name string, p Payload) (Function, error) {
	c, ok := f.Lookup(name)
	if !ok {
		return nil, nil
	}
	fn, err := c(p)
	if err != nil {
		return nil, err
	}
	return fn, nil
}

// Names returns the registered names in sorted order.
func (f *Factory) Names() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.creators))
	for name := range f.creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaultFactory = NewFactory()

// Create builds a primitive with the package's default factory.
func Create(name string, p Payload) (Function, error) { return defaultFactory.Create(name, p) }
