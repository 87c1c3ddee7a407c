package parser

import (
	"strings"
	"testing"

	"github.com/pdxtools/pdxsave/internal/testutil"
	"github.com/pdxtools/pdxsave/internal/types"
	"github.com/pdxtools/pdxsave/save"
)

func parseDoc(t *testing.T, source string) *save.Node {
	t.Helper()
	p := New([]byte(source), Config{})
	root, diag := p.ParseDocument()
	if diag != nil {
		t.Fatalf("parse failed: %s", diag.Message)
	}
	return root
}

func parseErr(t *testing.T, source string) *types.SpanDiagnostic {
	t.Helper()
	p := New([]byte(source), Config{})
	_, diag := p.ParseDocument()
	if diag == nil {
		t.Fatalf("expected parse error for %q", source)
	}
	return diag
}

func TestEmptyDocument(t *testing.T) {
	root := parseDoc(t, "")
	testutil.Equal(t, save.KindMap, root.Kind(), "root is a map")
	testutil.Equal(t, 0, root.Len(), "no entries")
}

func TestScalarEntries(t *testing.T) {
	root := parseDoc(t, `date="1836.1.1" player="ENG" difficulty=0 civilized=yes broke=no`)

	d, _ := root.Get("date")
	testutil.Equal(t, "1836.1.1", d.StringOr(""), "quoted date string")
	p, _ := root.Get("player")
	testutil.Equal(t, "ENG", p.StringOr(""), "player tag")
	n, _ := root.Get("difficulty")
	testutil.Equal(t, save.KindNumber, n.Kind(), "bare digits classify as number")
	c, _ := root.Get("civilized")
	testutil.True(t, c.BoolOr(false), "yes is true")
	b, _ := root.Get("broke")
	testutil.Equal(t, save.KindBool, b.Kind(), "no is a bool")
	testutil.False(t, b.BoolOr(true), "no is false")
}

func TestBareStringScalar(t *testing.T) {
	root := parseDoc(t, "government=absolute_monarchy")
	g, _ := root.Get("government")
	testutil.Equal(t, save.KindString, g.Kind(), "identifier stays a string")
	testutil.Equal(t, "absolute_monarchy", g.StringOr(""), "value")
}

func TestBooleanExactMatch(t *testing.T) {
	// Classification is an exact literal match on the two boolean tokens.
	root := parseDoc(t, "a=YES b=Yes c=yesx")
	for _, key := range []string{"a", "b", "c"} {
		v, _ := root.Get(key)
		testutil.Equal(t, save.KindString, v.Kind(), "%s is not a bool", key)
	}
}

func TestNumberGrammar(t *testing.T) {
	cases := []struct {
		token  string
		number bool
	}{
		{"0", true},
		{"42", true},
		{"-1", true},
		{"+3", true},
		{"123.450", true},
		{"-0.5", true},
		{"1.", false},
		{".5", false},
		{"1e5", false},
		{"1,000", false},
		{"1.2.3", false},
		{"-", false},
	}
	for _, tc := range cases {
		root := parseDoc(t, "v="+tc.token)
		v, _ := root.Get("v")
		want := save.KindString
		if tc.number {
			want = save.KindNumber
		}
		testutil.Equal(t, want, v.Kind(), "token %q", tc.token)
	}
}

func TestNumericFidelity(t *testing.T) {
	root := parseDoc(t, "amount=123.450")
	v, _ := root.Get("amount")
	f, err := v.AsFloat()
	testutil.NoError(t, err, "as float")
	testutil.InDelta(t, 123.45, f, 1e-12, "value")
	testutil.Equal(t, "123.450", v.Raw(), "source digits preserved")
}

func TestAmbiguityResolution(t *testing.T) {
	root := parseDoc(t, "a={1 2 3} b={x=1 y=2} c={}")

	a, _ := root.Get("a")
	testutil.Equal(t, save.KindList, a.Kind(), "{1 2 3} is a list")
	testutil.Equal(t, 3, a.Len(), "three items")
	testutil.InDelta(t, 2, a.At(1).FloatOr(0), 0, "second item")

	b, _ := root.Get("b")
	testutil.Equal(t, save.KindMap, b.Kind(), "{x=1 y=2} is a map")
	testutil.SliceEqual(t, []string{"x", "y"}, b.Keys(), "key order")

	c, _ := root.Get("c")
	testutil.Equal(t, save.KindMap, c.Kind(), "{} is an empty map")
	testutil.Equal(t, 0, c.Len(), "empty")
}

func TestListOfQuotedStrings(t *testing.T) {
	root := parseDoc(t, `core={ "ENG" "FRA" }`)
	c, _ := root.Get("core")
	testutil.Equal(t, save.KindList, c.Kind(), "quoted first element, no =, is a list")
	testutil.Equal(t, "ENG", c.At(0).StringOr(""), "first")
	testutil.Equal(t, "FRA", c.At(1).StringOr(""), "second")
}

func TestListOfAnonymousBlocks(t *testing.T) {
	root := parseDoc(t, "pop={ {size=100} {size=200} }")
	pop, _ := root.Get("pop")
	testutil.Equal(t, save.KindList, pop.Kind(), "anonymous blocks make a list")
	testutil.InDelta(t, 200, pop.At(1).GetFloat("size", 0), 0, "nested map inside list")
}

func TestQuotedKeys(t *testing.T) {
	root := parseDoc(t, `"the key"=1`)
	v, ok := root.Get("the key")
	testutil.True(t, ok, "quoted key present")
	testutil.InDelta(t, 1, v.FloatOr(0), 0, "value")
}

func TestDuplicateKeyCoalescing(t *testing.T) {
	root := parseDoc(t, "a=1 a=2 a=3")
	a, _ := root.Get("a")
	testutil.Equal(t, save.KindList, a.Kind(), "duplicates coalesce to a list")
	testutil.True(t, a.Coalesced(), "marked as coalesced")
	testutil.Equal(t, 3, a.Len(), "all occurrences")
	for i, want := range []float64{1, 2, 3} {
		testutil.InDelta(t, want, a.At(i).FloatOr(-1), 0, "order preserved at %d", i)
	}
}

func TestCoalescingPreservesFirstSeenOrder(t *testing.T) {
	root := parseDoc(t, "x=1 dup=a y=2 dup=b")
	testutil.SliceEqual(t, []string{"x", "dup", "y"}, root.Keys(), "first-seen key order")
	dup, _ := root.Get("dup")
	testutil.Equal(t, "a", dup.At(0).StringOr(""), "append order")
	testutil.Equal(t, "b", dup.At(1).StringOr(""), "append order")
}

func TestCoalescingLiteralListValues(t *testing.T) {
	// A literal list value is itself one occurrence: repeating the key
	// wraps, never splices.
	root := parseDoc(t, "ids={1 2} ids={3}")
	ids, _ := root.Get("ids")
	testutil.True(t, ids.Coalesced(), "outer list is the coalescing wrapper")
	testutil.Equal(t, 2, ids.Len(), "two occurrences")
	testutil.Equal(t, 2, ids.At(0).Len(), "first literal list intact")
	testutil.False(t, ids.At(0).Coalesced(), "inner list is literal")
}

func TestCommentsInsideBlocks(t *testing.T) {
	src := strings.Join([]string{
		"state={ # administrative region",
		"\tprovinces={ 300 301 } # ids",
		"\t# full-line comment",
		"\tid=7",
		"}",
	}, "\n")
	root := parseDoc(t, src)
	state, _ := root.Get("state")
	testutil.InDelta(t, 7, state.GetFloat("id", 0), 0, "entries after comments")
	provs, _ := state.Get("provinces")
	testutil.Equal(t, 2, provs.Len(), "list inside commented block")
}

func TestDeepNesting(t *testing.T) {
	// Real saves chain a few hundred levels; the default guard must
	// accommodate them.
	const depth = 300
	src := "a=" + strings.Repeat("{b=", depth) + "1" + strings.Repeat("}", depth)
	root := parseDoc(t, src)
	n, _ := root.Get("a")
	for range depth - 1 {
		n, _ = n.Get("b")
	}
	inner, ok := n.Get("b")
	testutil.True(t, ok, "innermost key reachable")
	testutil.InDelta(t, 1, inner.FloatOr(0), 0, "innermost value")
}

func TestDepthGuard(t *testing.T) {
	const depth = 40
	src := "a=" + strings.Repeat("{b=", depth) + "1" + strings.Repeat("}", depth)
	p := New([]byte(src), Config{MaxDepth: 10})
	_, diag := p.ParseDocument()
	testutil.NotNil(t, diag, "depth guard trips")
	testutil.Equal(t, types.DiagDepthExceeded, diag.Code, "code")
}

func TestUnterminatedBlockStrict(t *testing.T) {
	diag := parseErr(t, "ok=1 block={")
	testutil.Equal(t, types.DiagUnterminatedBlock, diag.Code, "code")
	testutil.Equal(t, types.ByteOffset(11), diag.Span.Start, "offset of the unmatched brace")
}

func TestUnterminatedBlockLenient(t *testing.T) {
	p := New([]byte("ok=1 block={ inner=2 "), Config{Lenient: true})
	root, diag := p.ParseDocument()
	testutil.Nil(t, diag, "lenient parse does not fail")
	testutil.NotNil(t, root, "partial document")

	// The half-open block must not leak: only fully assembled entries
	// survive.
	testutil.SliceEqual(t, []string{"ok"}, root.Keys(), "only complete entries")

	diags := p.Diagnostics()
	testutil.Len(t, diags, 1, "one diagnostic")
	testutil.Equal(t, types.DiagUnterminatedBlock, diags[0].Code, "code")
	testutil.Equal(t, types.ByteOffset(11), diags[0].Span.Start, "cited offset")
}

func TestNestedErrorPropagatesWholeEntry(t *testing.T) {
	// The error is inside a grandchild; the enclosing top-level entry is
	// dropped whole rather than truncated.
	p := New([]byte(`a=1 outer={ mid={ "unclosed } b=2`), Config{Lenient: true})
	root, diag := p.ParseDocument()
	testutil.Nil(t, diag, "lenient")
	testutil.SliceEqual(t, []string{"a"}, root.Keys(), "outer dropped entirely")
}

func TestUnterminatedStringStrict(t *testing.T) {
	diag := parseErr(t, `name="forever`)
	testutil.Equal(t, types.DiagUnterminatedString, diag.Code, "code")
	testutil.Equal(t, types.ByteOffset(5), diag.Span.Start, "offset of opening quote")
}

func TestMissingEqualsStrict(t *testing.T) {
	diag := parseErr(t, "key value")
	testutil.Equal(t, types.DiagUnexpectedToken, diag.Code, "code")
	testutil.Contains(t, diag.Message, "expected '='", "message names the expectation")
}

func TestStrayCloseBrace(t *testing.T) {
	diag := parseErr(t, "a=1 } b=2")
	testutil.Equal(t, types.DiagUnexpectedToken, diag.Code, "code")
}

func TestIdempotence(t *testing.T) {
	src := `date="1836.1.1" a=1 a=2 worldmarket={ pool={ iron=12.5 } } list={ 1 2 3 }`
	first := parseDoc(t, src)
	second := parseDoc(t, src)
	testutil.True(t, first.Equal(second), "two parses of identical input are structurally equal")
}

func TestClassificationNeverMixes(t *testing.T) {
	// Once a block classifies as a list, an = inside it is just more
	// content for value parsing to trip on; strict mode reports it
	// rather than silently switching representation.
	p := New([]byte("l={ 1 2 x=3 }"), Config{})
	_, diag := p.ParseDocument()
	testutil.NotNil(t, diag, "mixed content fails")
}
