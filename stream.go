package pdxsave

import (
	"iter"

	"github.com/pdxtools/pdxsave/internal/parser"
	"github.com/pdxtools/pdxsave/save"
)

// MatchFunc decides whether a top-level key is yielded by Entries.
type MatchFunc = parser.MatchFunc

// MatchTags matches country blocks: three uppercase ASCII letters
// (ENG, FRA, PRU). The REB rebels pseudo-country still matches; filter
// it downstream if unwanted.
func MatchTags(key string) bool {
	if len(key) != 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		if key[i] < 'A' || key[i] > 'Z' {
			return false
		}
	}
	return true
}

// MatchNumeric matches numeric-ID keys, e.g. province blocks.
func MatchNumeric(key string) bool {
	if key == "" {
		return false
	}
	for i := 0; i < len(key); i++ {
		if key[i] < '0' || key[i] > '9' {
			return false
		}
	}
	return true
}

// MatchKeys matches an explicit set of keys.
func MatchKeys(keys ...string) MatchFunc {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return func(key string) bool { return set[key] }
}

// EntryStream iterates matching top-level entries one at a time. Each
// entry's subtree is parsed only when Next reaches it and may be
// discarded before the next call, so peak memory stays near one entry's
// size. The stream is forward-only and non-restartable; create a new one
// to iterate again. A stream owns its cursor: do not run two streams
// over it concurrently.
type EntryStream struct {
	s       *parser.Stream
	p       *parser.Parser
	lenient bool
}

// Entries returns a stream of (key, subtree) pairs for the top-level
// entries whose key matches. Non-matching entries are skipped with the
// same quote-aware brace scan the section extractor uses.
//
// Concatenating all yielded entries for a match function equals the
// corresponding entries of a full parse, in source order.
func Entries(data []byte, match MatchFunc, opts ...Option) *EntryStream {
	cfg := applyOptions(opts)
	p := newParser(data, cfg)
	return &EntryStream{s: p.Stream(match), p: p, lenient: cfg.lenient}
}

// EntriesFile is Entries over a Latin-1 file on disk. A read error is
// returned immediately; parse errors surface from Err as usual.
func EntriesFile(path string, match MatchFunc, opts ...Option) (*EntryStream, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Entries(data, match, opts...), nil
}

// Next advances to the next matching entry, returning false at end of
// input or on a fatal error. Always check Err after the loop.
func (e *EntryStream) Next() bool {
	return e.s.Next()
}

// All returns the remaining entries as a range-over-func iterator.
// It consumes the same underlying cursor as Next, so use one style or
// the other, not both. As with Next, check Err once iteration stops.
func (e *EntryStream) All() iter.Seq2[string, *save.Node] {
	return func(yield func(string, *save.Node) bool) {
		for e.Next() {
			if !yield(e.Key(), e.Node()) {
				return
			}
		}
	}
}

// Key returns the current entry's top-level key.
func (e *EntryStream) Key() string { return e.s.Key() }

// Node returns the current entry's parsed subtree.
func (e *EntryStream) Node() *save.Node { return e.s.Node() }

// Err returns the error that ended a strict-mode stream early, or nil.
func (e *EntryStream) Err() error {
	if d := e.s.Err(); d != nil {
		return diagError(d)
	}
	return nil
}

// Diagnostics returns diagnostics collected so far, populated in lenient
// mode when the stream ends on malformed input.
func (e *EntryStream) Diagnostics() []save.Diagnostic {
	return publicDiagnostics(e.p.Diagnostics())
}
