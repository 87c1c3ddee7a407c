package save

import (
	"errors"
	"testing"

	"github.com/pdxtools/pdxsave/internal/testutil"
)

func TestPutCoalescing(t *testing.T) {
	m := NewMap()
	m.Put("a", NewNumber(1, "1"))
	v, _ := m.Get("a")
	testutil.Equal(t, KindNumber, v.Kind(), "single occurrence stays plain")

	m.Put("a", NewNumber(2, "2"))
	v, _ = m.Get("a")
	testutil.Equal(t, KindList, v.Kind(), "second occurrence promotes to list")
	testutil.True(t, v.Coalesced(), "promotion is marked")
	testutil.Equal(t, 2, v.Len(), "both values")

	m.Put("a", NewNumber(3, "3"))
	v, _ = m.Get("a")
	testutil.Equal(t, 3, v.Len(), "third occurrence appends, no extra nesting")
	testutil.InDelta(t, 3, v.At(2).FloatOr(0), 0, "append order")
}

func TestPutLiteralListWraps(t *testing.T) {
	m := NewMap()
	m.Put("ids", NewList(NewNumber(1, "1"), NewNumber(2, "2")))
	m.Put("ids", NewList(NewNumber(3, "3")))

	v, _ := m.Get("ids")
	testutil.True(t, v.Coalesced(), "wrapper list")
	testutil.Equal(t, 2, v.Len(), "two occurrences, not spliced")
	testutil.Equal(t, 2, v.At(0).Len(), "first literal list intact")
}

func TestValuesUnwrapsCoalescing(t *testing.T) {
	m := NewMap()
	testutil.Len(t, m.Values("missing"), 0, "absent key yields nil")

	m.Put("core", NewString("ENG"))
	testutil.Len(t, m.Values("core"), 1, "plain value yields one element")

	m.Put("core", NewString("FRA"))
	vals := m.Values("core")
	testutil.Len(t, vals, 2, "coalesced list unwraps")
	testutil.Equal(t, "FRA", vals[1].StringOr(""), "order kept")

	// A literal list is a single value; Values must not splice it.
	m.Put("provs", NewList(NewNumber(1, "1"), NewNumber(2, "2")))
	testutil.Len(t, m.Values("provs"), 1, "literal list is one value")
}

func TestTypedAccessors(t *testing.T) {
	n := NewNumber(12.5, "12.50")
	f, err := n.AsFloat()
	testutil.NoError(t, err, "as float")
	testutil.InDelta(t, 12.5, f, 0, "value")

	i, err := n.AsInt()
	testutil.NoError(t, err, "as int")
	testutil.Equal(t, int64(12), i, "truncated toward zero")

	_, err = n.AsString()
	testutil.Error(t, err, "wrong accessor fails")
	var tm *TypeMismatchError
	testutil.True(t, errors.As(err, &tm), "error type")
	testutil.Equal(t, KindString, tm.Want, "wanted kind")
	testutil.Equal(t, KindNumber, tm.Got, "actual kind")
}

func TestAccessorsOnNil(t *testing.T) {
	var n *Node
	_, err := n.AsMap()
	testutil.Error(t, err, "nil node mismatches")
	testutil.Equal(t, "", n.StringOr(""), "fallback on nil")
	testutil.InDelta(t, 7, n.FloatOr(7), 0, "fallback on nil")
}

func TestFallbackAccessors(t *testing.T) {
	m := NewMap()
	m.Put("s", NewString("text"))
	m.Put("quoted_num", NewString("42.5"))
	m.Put("f", NewNumber(1.5, "1.5"))
	m.Put("b", NewBool(true))

	testutil.Equal(t, "text", m.GetString("s", "d"), "string hit")
	testutil.Equal(t, "d", m.GetString("f", "d"), "string fallback on number")
	testutil.InDelta(t, 1.5, m.GetFloat("f", 0), 0, "float hit")
	testutil.InDelta(t, 9, m.GetFloat("s", 9), 0, "float fallback on text")
	testutil.InDelta(t, 42.5, m.GetFloat("quoted_num", 0), 0, "quoted numbers read as numbers")
	testutil.True(t, m.GetBool("b", false), "bool hit")
	testutil.Equal(t, int64(3), m.GetInt("missing", 3), "fallback on absent key")
}

func TestNumberGrammarEdges(t *testing.T) {
	for _, ok := range []string{"0", "-7", "+7", "10.25", "123.450"} {
		testutil.True(t, IsNumber(ok), "%q is a number", ok)
	}
	for _, bad := range []string{"", "-", ".", "1.", ".5", "1e3", "1,000", "1.2.3", "12a"} {
		testutil.False(t, IsNumber(bad), "%q is not a number", bad)
	}
}

func TestEqualStructural(t *testing.T) {
	a := NewMap()
	a.Put("x", NewNumber(1.5, "1.50"))
	b := NewMap()
	b.Put("x", NewNumber(1.5, "1.5"))
	testutil.True(t, a.Equal(b), "numbers compare by value, not formatting")

	c := NewMap()
	c.Put("x", NewString("1.5"))
	testutil.False(t, a.Equal(c), "kind matters")

	d := NewMap()
	d.Put("y", NewNumber(1.5, "1.5"))
	testutil.False(t, a.Equal(d), "keys matter")
}

func TestEqualKeyOrder(t *testing.T) {
	a := NewMap()
	a.Put("x", NewNumber(1, "1"))
	a.Put("y", NewNumber(2, "2"))
	b := NewMap()
	b.Put("y", NewNumber(2, "2"))
	b.Put("x", NewNumber(1, "1"))
	testutil.False(t, a.Equal(b), "maps are ordered")
}

func TestFieldsIteration(t *testing.T) {
	m := NewMap()
	m.Put("one", NewNumber(1, "1"))
	m.Put("two", NewNumber(2, "2"))
	var keys []string
	for k, v := range m.Fields() {
		keys = append(keys, k)
		testutil.NotNil(t, v, "value present")
	}
	testutil.SliceEqual(t, []string{"one", "two"}, keys, "source order")
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{
		Severity: SeverityFatal,
		Code:     "unterminated-block",
		Offset:   11,
		Message:  "block opened at offset 11 is never closed",
	}
	testutil.Contains(t, d.String(), "[fatal] offset 11:", "format")
}
