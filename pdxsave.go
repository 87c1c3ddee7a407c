// Package pdxsave parses Paradox script save files (Victoria 2 and
// kindred titles) into queryable node trees.
//
// Three access modes share one scanner and block parser:
//
//   - Parse materializes the whole file.
//   - Sections parses only requested top-level keys, fast-skipping the
//     rest; for large saves this is the cheap way at a few sections.
//   - Entries streams matching top-level entries one at a time, bounding
//     peak memory to roughly one entry.
//
// Example:
//
//	doc, err := pdxsave.ParseFile("autosave.v2")
//	if err != nil { ... }
//	date, _ := doc.Get("date")
//
//	es := pdxsave.Entries(data, pdxsave.MatchTags)
//	for es.Next() {
//	    fmt.Println(es.Key(), es.Node().GetFloat("money", 0))
//	}
//	if err := es.Err(); err != nil { ... }
package pdxsave

import (
	"fmt"
	"log/slog"

	"github.com/pdxtools/pdxsave/internal/types"
)

// LevelTrace is a custom log level more verbose than Debug.
// Use for per-token and per-entry logging.
// Enable with: &slog.HandlerOptions{Level: slog.Level(-8)}
const LevelTrace = slog.Level(-8)

// Error codes carried by ParseError.
const (
	// CodeUnterminatedString means a quote was opened and never closed.
	CodeUnterminatedString = "unterminated-string"
	// CodeUnterminatedBlock means end of input arrived before a block's
	// matching close brace.
	CodeUnterminatedBlock = "unterminated-block"
	// CodeUnexpectedToken means malformed input where a well-formed
	// construct was required.
	CodeUnexpectedToken = "unexpected-token"
	// CodeDepthExceeded means block nesting passed the configured guard.
	CodeDepthExceeded = "depth-exceeded"
)

// ParseError is a fatal lexical or structural error from a strict-mode
// parse. Offset is the byte position of the offending construct in the
// source buffer (for an unterminated block, the unmatched '{').
type ParseError struct {
	Code    string
	Offset  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", e.Code, e.Offset, e.Message)
}

// Option configures Parse, Sections, and Entries.
type Option func(*config)

type config struct {
	logger   *slog.Logger
	maxDepth int
	lenient  bool
}

// WithLogger sets the logger for debug/trace output.
// If not set, no logging occurs (zero overhead).
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithMaxDepth overrides the recursion depth guard (default 512).
func WithMaxDepth(depth int) Option {
	return func(c *config) { c.maxDepth = depth }
}

// Lenient switches from strict to lenient mode: instead of failing on
// the first fatal error, the parse returns whatever was fully assembled
// before it, plus a diagnostic citing the byte offset and reason. A
// nested block is never half-built; either it closed completely or it is
// absent from the result.
func Lenient() Option {
	return func(c *config) { c.lenient = true }
}

func applyOptions(opts []Option) config {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// diagError converts an internal diagnostic to the public error type.
func diagError(d *types.SpanDiagnostic) *ParseError {
	return &ParseError{
		Code:    d.Code,
		Offset:  int(d.Span.Start),
		Message: d.Message,
	}
}
