package gofunc_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gofunc "github.com/njchilds90/gofunc"
)

func TestFactory_Create(t *testing.T) {
	fact := gofunc.NewFactory()
	cases := []struct {
		name    string
		payload gofunc.Payload
		str     string
	}{
		{"ident", gofunc.None(), "x"},
		{"ident", gofunc.Int(99), "x"},
		{"const", gofunc.Int(23), "23"},
		{"power", gofunc.Int(2), "x^2"},
		{"polynomial", gofunc.Ints(1, 2, 5), "1+2x^1+5x^2"},
		{"exp", gofunc.Int(3), "e^3x"},
	}
	for _, c := range cases {
		f, err := fact.Create(c.name, c.payload)
		require.NoError(t, err, c.name)
		require.NotNil(t, f, c.name)
		assert.Equal(t, c.str, f.String())
	}
}

func TestFactory_Values(t *testing.T) {
	mustCreate := func(name string, p gofunc.Payload) gofunc.Function {
		t.Helper()
		f, err := gofunc.Create(name, p)
		require.NoError(t, err)
		require.NotNil(t, f)
		return f
	}
	assert.Equal(t, 322.0, mustCreate("const", gofunc.Int(322)).Eval(1))
	assert.Equal(t, 27.0, mustCreate("power", gofunc.Int(3)).Eval(3))
	assert.Equal(t, 14.0, mustCreate("ident", gofunc.None()).Eval(14))
	assert.Equal(t, 11.0, mustCreate("polynomial", gofunc.Ints(1, 2)).Eval(5))
	assert.InDelta(t, 54.59, mustCreate("exp", gofunc.Int(2)).Eval(2), 0.01)
}

func TestFactory_UnknownName(t *testing.T) {
	f, err := gofunc.NewFactory().Create("sin", gofunc.Int(1))
	assert.NoError(t, err)
	assert.Nil(t, f)

	_, ok := gofunc.NewFactory().Lookup("sin")
	assert.False(t, ok)
}

func TestFactory_MalformedPayload(t *testing.T) {
	fact := gofunc.NewFactory()
	cases := []struct {
		name    string
		payload gofunc.Payload
	}{
		{"const", gofunc.None()},
		{"power", gofunc.Ints(2)},
		{"exp", gofunc.None()},
		{"polynomial", gofunc.Int(3)},
		{"polynomial", gofunc.Ints()},
	}
	for _, c := range cases {
		f, err := fact.Create(c.name, c.payload)
		assert.Nil(t, f, "%s(%s)", c.name, c.payload)
		assert.True(t, errors.Is(err, gofunc.ErrMalformedPayload), "%s(%s): %v", c.name, c.payload, err)
	}

	_, err := fact.Create("power", gofunc.Ints(2))
	var mp *gofunc.MalformedPayloadError
	require.True(t, errors.As(err, &mp))
	assert.Equal(t, gofunc.PayloadInt, mp.Want)
	assert.Equal(t, gofunc.PayloadInts, mp.Got)
	assert.Equal(t, "gofunc: power: want integer payload, got integer list", err.Error())
}

func TestFactory_Register(t *testing.T) {
	fact := gofunc.NewFactory()
	fact.Register("square", func(gofunc.Payload) (gofunc.Function, error) { return gofunc.Pow(2), nil })
	f, err := fact.Create("square", gofunc.None())
	require.NoError(t, err)
	assert.Equal(t, 9.0, f.Eval(3))

	want := []string{"const", "exp", "ident", "polynomial", "power", "square"}
	if diff := cmp.Diff(want, fact.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}

func TestPayload(t *testing.T) {
	n, ok := gofunc.Int(4).AsInt()
	assert.True(t, ok)
	assert.Equal(t, 4, n)
	_, ok = gofunc.None().AsInt()
	assert.False(t, ok)

	src := []int{1, 2}
	p := gofunc.Ints(src...)
	src[0] = 9
	ns, ok := p.AsInts()
	require.True(t, ok)
	if diff := cmp.Diff([]int{1, 2}, ns); diff != "" {
		t.Errorf("Ints did not copy (-want +got):\n%s", diff)
	}

	ns, ok = gofunc.IntsOf([]int64{-5, 2, 3}).AsInts()
	require.True(t, ok)
	if diff := cmp.Diff([]int{-5, 2, 3}, ns); diff != "" {
		t.Errorf("IntsOf mismatch (-want +got):\n%s", diff)
	}
	ns, _ = gofunc.IntsOf([]uint8{7}).AsInts()
	assert.Equal(t, []int{7}, ns)
}

func TestPayloadFromValue(t *testing.T) {
	cases := []struct {
		in   interface{}
		kind gofunc.PayloadKind
		str  string
	}{
		{nil, gofunc.PayloadNone, "none"},
		{float64(3), gofunc.PayloadInt, "3"},
		{7, gofunc.PayloadInt, "7"},
		{[]interface{}{float64(1), float64(-2)}, gofunc.PayloadInts, "[1 -2]"},
		{[]int{4}, gofunc.PayloadInts, "[4]"},
	}
	for _, c := range cases {
		p, err := gofunc.PayloadFromValue(c.in)
		require.NoError(t, err, "%v", c.in)
		assert.Equal(t, c.kind, p.Kind())
		assert.Equal(t, c.str, p.String())
	}

	for _, bad := range []interface{}{2.5, "3", []interface{}{float64(1), "x"}, map[string]interface{}{}} {
		_, err := gofunc.PayloadFromValue(bad)
		assert.True(t, errors.Is(err, gofunc.ErrMalformedPayload), "%v: %v", bad, err)
	}
}
