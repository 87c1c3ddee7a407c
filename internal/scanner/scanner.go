// Package scanner provides the character cursor for Paradox script text.
//
// The scanner owns a position into an immutable source buffer and exposes
// the primitive operations the parser is built from: single-character
// lookahead, whitespace/comment skipping, bare-token and quoted-string
// reads, and a quote-aware balanced-brace skip used to step over entire
// blocks without parsing them.
//
// Source text is treated as a single-byte encoding: every byte is one
// character, so plain byte indexing is always correct. Callers decode
// Latin-1 (or pass raw bytes) before constructing a Scanner.
package scanner

import (
	"fmt"
	"log/slog"

	"github.com/pdxtools/pdxsave/internal/types"
)

// Scanner is a cursor over Paradox script source text.
// A Scanner is owned by exactly one parse operation and is not safe for
// concurrent use.
type Scanner struct {
	source []byte
	pos    int
	types.Logger
}

// New returns a Scanner positioned at the start of source.
// Pass nil for logger to disable logging.
func New(source []byte, logger *slog.Logger) *Scanner {
	s := &Scanner{
		source: source,
		Logger: types.Logger{L: logger},
	}
	s.Log(slog.LevelDebug, "scanner initialized", slog.Int("bytes", len(source)))
	return s
}

// Pos returns the current byte offset.
func (s *Scanner) Pos() types.ByteOffset {
	return types.ByteOffset(s.pos)
}

// SetPos rewinds or advances the cursor to an absolute byte offset.
// Used by the parser's one-token lookahead when classifying a block.
func (s *Scanner) SetPos(pos types.ByteOffset) {
	s.pos = int(pos)
}

// Len returns the total length of the source buffer.
func (s *Scanner) Len() int {
	return len(s.source)
}

// EOF reports whether the cursor is past the last byte.
func (s *Scanner) EOF() bool {
	return s.pos >= len(s.source)
}

// Peek returns the byte at the cursor without consuming it.
func (s *Scanner) Peek() (byte, bool) {
	if s.pos >= len(s.source) {
		return 0, false
	}
	return s.source[s.pos], true
}

// Advance consumes and returns one byte. The second result is false at
// end of input.
func (s *Scanner) Advance() (byte, bool) {
	if s.pos >= len(s.source) {
		return 0, false
	}
	b := s.source[s.pos]
	s.pos++
	return b, true
}

// Text returns the source bytes covered by span as a string.
func (s *Scanner) Text(span types.Span) string {
	return string(s.source[span.Start:span.End])
}

// SkipWhitespaceAndComments advances past whitespace and # comments.
// A comment runs from # to the end of the line and may appear anywhere
// whitespace is valid.
func (s *Scanner) SkipWhitespaceAndComments() {
	for s.pos < len(s.source) {
		switch b := s.source[s.pos]; {
		case b == ' ' || b == '\t' || b == '\n' || b == '\r':
			s.pos++
		case b == '#':
			for s.pos < len(s.source) && s.source[s.pos] != '\n' {
				s.pos++
			}
		default:
			return
		}
	}
}

// isTerminator reports whether b ends a bare token.
func isTerminator(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '=', '{', '}', '#':
		return true
	}
	return false
}

// ReadBareToken reads an unquoted token: a run of bytes up to whitespace,
// '=', '{', '}', '#', or end of input. The returned span may be empty if
// the cursor sits on a terminator.
func (s *Scanner) ReadBareToken() types.Span {
	start := s.pos
	for s.pos < len(s.source) && !isTerminator(s.source[s.pos]) {
		s.pos++
	}
	span := types.NewSpan(types.ByteOffset(start), types.ByteOffset(s.pos))
	if s.TraceEnabled() {
		s.Trace("bare token",
			slog.Int("start", start),
			slog.String("text", s.Text(span)))
	}
	return span
}

// ReadQuotedString reads a string from the opening '"' (which the cursor
// must be on) to the next '"'. The Paradox format has no escape sequences,
// so the first closing quote always ends the string. The returned span
// excludes both quotes.
//
// If end of input is reached before the closing quote, the diagnostic
// carries the offset of the opening quote and the span covers the
// remaining text.
func (s *Scanner) ReadQuotedString() (types.Span, *types.SpanDiagnostic) {
	open := s.pos
	s.pos++ // consume opening quote
	start := s.pos
	for s.pos < len(s.source) {
		if s.source[s.pos] == '"' {
			span := types.NewSpan(types.ByteOffset(start), types.ByteOffset(s.pos))
			s.pos++ // consume closing quote
			return span, nil
		}
		s.pos++
	}
	span := types.NewSpan(types.ByteOffset(start), types.ByteOffset(s.pos))
	return span, &types.SpanDiagnostic{
		Severity: types.SeverityFatal,
		Code:     types.DiagUnterminatedString,
		Span:     types.NewSpan(types.ByteOffset(open), types.ByteOffset(s.pos)),
		Message:  fmt.Sprintf("string opened at offset %d is never closed", open),
	}
}

// SkipBalancedBlock advances past a brace-delimited block without parsing
// it. The cursor must be on the opening '{'. Braces inside quoted strings
// do not affect the depth count; comments are skipped so a brace in a
// comment does not either.
//
// Returns the span of the skipped block (braces included), or a
// diagnostic carrying the offset of the unmatched '{' if end of input is
// reached first.
func (s *Scanner) SkipBalancedBlock() (types.Span, *types.SpanDiagnostic) {
	open := s.pos
	s.pos++ // consume '{'
	depth := 1
	for s.pos < len(s.source) {
		switch s.source[s.pos] {
		case '{':
			depth++
			s.pos++
		case '}':
			depth--
			s.pos++
			if depth == 0 {
				return types.NewSpan(types.ByteOffset(open), types.ByteOffset(s.pos)), nil
			}
		case '"':
			// Strings may contain braces; they must not perturb depth.
			if _, diag := s.ReadQuotedString(); diag != nil {
				return types.NewSpan(types.ByteOffset(open), types.ByteOffset(s.pos)), diag
			}
		case '#':
			for s.pos < len(s.source) && s.source[s.pos] != '\n' {
				s.pos++
			}
		default:
			s.pos++
		}
	}
	return types.NewSpan(types.ByteOffset(open), types.ByteOffset(s.pos)), &types.SpanDiagnostic{
		Severity: types.SeverityFatal,
		Code:     types.DiagUnterminatedBlock,
		Span:     types.NewSpan(types.ByteOffset(open), types.ByteOffset(open+1)),
		Message:  fmt.Sprintf("block opened at offset %d is never closed", open),
	}
}

// SkipBareToken advances past an unquoted scalar without classifying it.
func (s *Scanner) SkipBareToken() {
	for s.pos < len(s.source) && !isTerminator(s.source[s.pos]) {
		s.pos++
	}
}
