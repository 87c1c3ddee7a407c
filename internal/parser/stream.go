package parser

import (
	"log/slog"

	"github.com/pdxtools/pdxsave/internal/types"
	"github.com/pdxtools/pdxsave/save"
)

// MatchFunc decides whether a top-level key is yielded by a Stream.
type MatchFunc func(key string) bool

// Stream is a lazy, forward-only, non-restartable iteration over the
// top-level entries whose key matches. Each matched entry's subtree is
// parsed only when the stream reaches it, and nothing of previous
// entries is retained, so peak memory is bounded by roughly one entry.
//
// A Stream owns its Parser's cursor; only one Stream may be active per
// Parser, and a Parser that produced a Stream must not be used for
// anything else.
type Stream struct {
	p     *Parser
	match MatchFunc
	key   string
	node  *save.Node
	diag  *types.SpanDiagnostic
	done  bool
}

// Stream returns a stream of (key, subtree) pairs for matching top-level
// entries. Non-matching entries are skipped with the same quote-aware
// scan the section extractor uses, without classification.
func (p *Parser) Stream(match MatchFunc) *Stream {
	return &Stream{p: p, match: match}
}

// Next advances to the next matching entry. It returns false when the
// input is exhausted or a fatal error occurred; check Err afterwards.
func (s *Stream) Next() bool {
	if s.done {
		return false
	}
	for {
		s.p.sc.SkipWhitespaceAndComments()
		if s.p.sc.EOF() {
			s.stop(nil)
			return false
		}
		if b, _ := s.p.sc.Peek(); b == '}' {
			s.stop(s.p.unexpected(s.p.sc.Pos(), "unmatched '}' at top level"))
			return false
		}
		key, diag := s.p.readKey()
		if diag != nil {
			s.stop(diag)
			return false
		}
		s.p.sc.SkipWhitespaceAndComments()
		if b, ok := s.p.sc.Peek(); !ok || b != '=' {
			s.stop(s.p.unexpected(s.p.sc.Pos(), "expected '=' after key %q", key))
			return false
		}
		s.p.sc.Advance()

		if !s.match(key) {
			if diag := s.p.skipValue(); diag != nil {
				s.stop(diag)
				return false
			}
			continue
		}

		node, diag := s.p.parseValue(0)
		if diag != nil {
			s.stop(diag)
			return false
		}
		s.key, s.node = key, node
		if s.p.TraceEnabled() {
			s.p.Trace("stream entry", slog.String("key", key))
		}
		return true
	}
}

// stop ends the stream, applying the strict/lenient policy to diag.
func (s *Stream) stop(diag *types.SpanDiagnostic) {
	s.done = true
	s.key, s.node = "", nil
	if diag == nil {
		return
	}
	if s.p.cfg.Lenient {
		s.p.record(*diag)
		return
	}
	s.diag = diag
}

// Key returns the key of the current entry.
func (s *Stream) Key() string { return s.key }

// Node returns the parsed subtree of the current entry.
func (s *Stream) Node() *save.Node { return s.node }

// Err returns the fatal diagnostic that ended a strict-mode stream, or
// nil. Lenient-mode failures are recorded on the Parser's diagnostics
// instead.
func (s *Stream) Err() *types.SpanDiagnostic { return s.diag }
