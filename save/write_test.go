package save

import (
	"strings"
	"testing"

	"github.com/pdxtools/pdxsave/internal/testutil"
)

func TestSourceScalars(t *testing.T) {
	testutil.Equal(t, "123.450", NewNumber(123.45, "123.450").Source(), "number keeps source digits")
	testutil.Equal(t, "yes", NewBool(true).Source(), "true")
	testutil.Equal(t, "no", NewBool(false).Source(), "false")
	testutil.Equal(t, "plain_token", NewString("plain_token").Source(), "bare-safe string stays bare")
}

func TestSourceQuotesWhenNeeded(t *testing.T) {
	cases := map[string]string{
		"two words": `"two words"`,
		"":          `""`,
		"123.4":     `"123.4"`, // would re-classify as a number
		"yes":       `"yes"`,   // would re-classify as a bool
		"a=b":       `"a=b"`,
		"a#b":       `"a#b"`,
	}
	for in, want := range cases {
		testutil.Equal(t, want, NewString(in).Source(), "quoting %q", in)
	}
}

func TestSourceCoalescedListExpandsToRepeatedKeys(t *testing.T) {
	m := NewMap()
	m.Put("core", NewString("ENG"))
	m.Put("core", NewString("FRA"))

	src := m.Source()
	testutil.Equal(t, 2, strings.Count(src, "core="), "repeated keys written back")
	testutil.False(t, strings.Contains(src, "{ ENG"), "not a literal list")
}

func TestSourceLiteralList(t *testing.T) {
	m := NewMap()
	m.Put("provinces", NewList(NewNumber(300, "300"), NewNumber(301, "301")))
	testutil.Contains(t, m.Source(), "provinces={ 300 301 }", "literal list form")
}

func TestSourceNestedMapBraces(t *testing.T) {
	inner := NewMap()
	inner.Put("iron", NewNumber(3.5, "3.5"))
	m := NewMap()
	m.Put("pool", inner)

	src := m.Source()
	testutil.Contains(t, src, "pool={", "nested map opens a block")
	testutil.Contains(t, src, "iron=3.5", "nested entry")
	testutil.Contains(t, src, "}", "block closed")
}
