// Package parser implements recursive-descent parsing of Paradox script
// into save.Node trees.
//
// The grammar is ambiguous at every block: { ... } holds either key=value
// pairs or a plain sequence of values, and nothing but the content says
// which. The parser classifies each block exactly once, by reading the
// first element and checking whether '=' follows, then rewinds and parses
// the whole block under that classification. Classification is never
// mixed within a block.
//
// Two failure modes are supported. In strict mode the first lexical or
// structural error aborts the parse with no partial result. In lenient
// mode errors are caught only at the top level: a nested block either
// closes completely or its error propagates past every enclosing level,
// so a partial Document never contains a silently truncated sub-block.
package parser

import (
	"fmt"
	"log/slog"

	"github.com/pdxtools/pdxsave/internal/scanner"
	"github.com/pdxtools/pdxsave/internal/types"
	"github.com/pdxtools/pdxsave/save"
)

// DefaultMaxDepth bounds block nesting. Real saves nest a few hundred
// levels at most (country -> state list -> sub-records); the guard exists
// because native call-stack recursion has no protection of its own
// against adversarial nesting.
const DefaultMaxDepth = 512

// Config controls parse behavior.
type Config struct {
	// Lenient makes the top-level parse return whatever was fully
	// assembled before a fatal error, plus diagnostics, instead of
	// failing.
	Lenient bool

	// MaxDepth overrides DefaultMaxDepth when positive.
	MaxDepth int

	// Logger enables debug/trace output. Nil disables logging.
	Logger *slog.Logger
}

func (c Config) maxDepth() int {
	if c.MaxDepth > 0 {
		return c.MaxDepth
	}
	return DefaultMaxDepth
}

// Parser consumes one source buffer through a Scanner and materializes
// save.Node trees. A Parser is single-use and single-threaded: it owns
// the one monotonically advancing cursor for its buffer.
type Parser struct {
	sc          *scanner.Scanner
	cfg         Config
	diagnostics []types.SpanDiagnostic
	types.Logger
}

// New returns a Parser over source.
func New(source []byte, cfg Config) *Parser {
	var scLogger *slog.Logger
	if cfg.Logger != nil {
		scLogger = cfg.Logger.With(slog.String("component", "scanner"))
	}
	p := &Parser{
		sc:     scanner.New(source, scLogger),
		cfg:    cfg,
		Logger: types.Logger{L: cfg.Logger},
	}
	p.Log(slog.LevelDebug, "parser initialized", slog.Int("bytes", len(source)))
	return p
}

// Diagnostics returns diagnostics collected so far.
func (p *Parser) Diagnostics() []types.SpanDiagnostic {
	return p.diagnostics
}

func (p *Parser) record(diag types.SpanDiagnostic) {
	p.diagnostics = append(p.diagnostics, diag)
}

func (p *Parser) unexpected(at types.ByteOffset, format string, args ...any) *types.SpanDiagnostic {
	return &types.SpanDiagnostic{
		Severity: types.SeverityFatal,
		Code:     types.DiagUnexpectedToken,
		Span:     types.NewSpan(at, at+1),
		Message:  fmt.Sprintf(format, args...),
	}
}

// ParseDocument parses the whole buffer as the contents of an implicit
// root block. The root is always a map: save files open with key=value
// header fields. In lenient mode the returned map holds every top-level
// entry that was fully assembled before the first fatal error, which is
// recorded as a diagnostic; in strict mode that error is returned and
// the map is nil.
func (p *Parser) ParseDocument() (*save.Node, *types.SpanDiagnostic) {
	root := save.NewMap()
	for {
		p.sc.SkipWhitespaceAndComments()
		if p.sc.EOF() {
			p.Log(slog.LevelDebug, "document parsed",
				slog.Int("entries", root.Len()),
				slog.Int("diagnostics", len(p.diagnostics)))
			return root, nil
		}
		if b, _ := p.sc.Peek(); b == '}' {
			diag := p.unexpected(p.sc.Pos(), "unmatched '}' at top level")
			return p.finish(root, diag)
		}
		if diag := p.parseEntry(root, 0); diag != nil {
			return p.finish(root, diag)
		}
	}
}

// finish applies the strict/lenient policy to a fatal diagnostic hitting
// the top level.
func (p *Parser) finish(root *save.Node, diag *types.SpanDiagnostic) (*save.Node, *types.SpanDiagnostic) {
	if p.cfg.Lenient {
		p.record(*diag)
		p.Log(slog.LevelDebug, "lenient parse ended early",
			slog.Int("offset", int(diag.Span.Start)),
			slog.String("code", diag.Code))
		return root, nil
	}
	return nil, diag
}

// parseEntry reads one key=value pair into dst.
func (p *Parser) parseEntry(dst *save.Node, depth int) *types.SpanDiagnostic {
	key, diag := p.readKey()
	if diag != nil {
		return diag
	}
	p.sc.SkipWhitespaceAndComments()
	b, ok := p.sc.Peek()
	if !ok || b != '=' {
		return p.unexpected(p.sc.Pos(), "expected '=' after key %q", key)
	}
	p.sc.Advance()
	value, diag := p.parseValue(depth)
	if diag != nil {
		return diag
	}
	dst.Put(key, value)
	if p.TraceEnabled() {
		p.Trace("entry", slog.String("key", key), slog.String("kind", value.Kind().String()))
	}
	return nil
}

// readKey reads a map key, which may be quoted or bare.
func (p *Parser) readKey() (string, *types.SpanDiagnostic) {
	b, ok := p.sc.Peek()
	if !ok {
		return "", p.unexpected(p.sc.Pos(), "expected key, got end of input")
	}
	if b == '"' {
		span, diag := p.sc.ReadQuotedString()
		if diag != nil {
			return "", diag
		}
		return p.sc.Text(span), nil
	}
	start := p.sc.Pos()
	span := p.sc.ReadBareToken()
	if span.IsEmpty() {
		return "", p.unexpected(start, "expected key, got %q", string(b))
	}
	return p.sc.Text(span), nil
}

// parseValue parses one value: a quoted string, a nested block, or a
// bare scalar classified after reading.
func (p *Parser) parseValue(depth int) (*save.Node, *types.SpanDiagnostic) {
	p.sc.SkipWhitespaceAndComments()
	b, ok := p.sc.Peek()
	if !ok {
		return nil, p.unexpected(p.sc.Pos(), "expected value, got end of input")
	}
	switch b {
	case '"':
		span, diag := p.sc.ReadQuotedString()
		if diag != nil {
			return nil, diag
		}
		return save.NewString(p.sc.Text(span)), nil
	case '{':
		return p.parseBlock(depth + 1)
	case '}':
		return nil, p.unexpected(p.sc.Pos(), "expected value, got '}'")
	}
	span := p.sc.ReadBareToken()
	if span.IsEmpty() {
		return nil, p.unexpected(p.sc.Pos(), "expected value, got %q", string(b))
	}
	return classifyScalar(p.sc.Text(span)), nil
}

// classifyScalar turns a bare token into a scalar node: the two boolean
// literals, then the numeric grammar, then plain string.
func classifyScalar(text string) *save.Node {
	switch text {
	case "yes":
		return save.NewBool(true)
	case "no":
		return save.NewBool(false)
	}
	if v, ok := save.ParseNumber(text); ok {
		return save.NewNumber(v, text)
	}
	return save.NewString(text)
}

// parseBlock parses a brace-delimited block. The cursor must be on '{'.
func (p *Parser) parseBlock(depth int) (*save.Node, *types.SpanDiagnostic) {
	open := p.sc.Pos()
	if depth > p.cfg.maxDepth() {
		return nil, &types.SpanDiagnostic{
			Severity: types.SeverityFatal,
			Code:     types.DiagDepthExceeded,
			Span:     types.NewSpan(open, open+1),
			Message:  fmt.Sprintf("block nesting exceeds %d levels", p.cfg.maxDepth()),
		}
	}
	p.sc.Advance() // consume '{'

	node, diag := p.parseBlockContents(open, depth)
	if diag != nil {
		return nil, diag
	}

	p.sc.SkipWhitespaceAndComments()
	b, ok := p.sc.Peek()
	if !ok || b != '}' {
		return nil, p.unterminated(open)
	}
	p.sc.Advance() // consume '}'
	return node, nil
}

func (p *Parser) unterminated(open types.ByteOffset) *types.SpanDiagnostic {
	return &types.SpanDiagnostic{
		Severity: types.SeverityFatal,
		Code:     types.DiagUnterminatedBlock,
		Span:     types.NewSpan(open, open+1),
		Message:  fmt.Sprintf("block opened at offset %d is never closed", open),
	}
}

// parseBlockContents classifies the region after '{' as map or list and
// parses it up to, but not including, the matching '}'.
func (p *Parser) parseBlockContents(open types.ByteOffset, depth int) (*save.Node, *types.SpanDiagnostic) {
	isList, diag := p.classifyBlock()
	if diag != nil {
		return nil, diag
	}
	if isList {
		return p.parseListBody(open, depth)
	}
	return p.parseMapBody(open, depth)
}

// classifyBlock decides list vs map by lookahead, then rewinds. The rule:
// read the first element; if the next non-whitespace byte is '=' the
// block is a map, otherwise a list. An empty block classifies as a map.
func (p *Parser) classifyBlock() (isList bool, diag *types.SpanDiagnostic) {
	mark := p.sc.Pos()
	defer p.sc.SetPos(mark)

	p.sc.SkipWhitespaceAndComments()
	b, ok := p.sc.Peek()
	if !ok {
		// Let the body parser report the unterminated block.
		return false, nil
	}
	switch b {
	case '}':
		return false, nil // {} is an empty map
	case '{':
		return true, nil // anonymous nested block: list of blocks
	case '"':
		if _, d := p.sc.ReadQuotedString(); d != nil {
			return false, d
		}
	default:
		p.sc.ReadBareToken()
	}
	p.sc.SkipWhitespaceAndComments()
	next, ok := p.sc.Peek()
	return !ok || next != '=', nil
}

// parseMapBody parses key=value pairs until the matching '}'. The brace
// itself is left for parseBlock, so root-level and nested maps share this
// code path's shape without sharing EOF semantics.
func (p *Parser) parseMapBody(open types.ByteOffset, depth int) (*save.Node, *types.SpanDiagnostic) {
	m := save.NewMap()
	for {
		p.sc.SkipWhitespaceAndComments()
		if p.sc.EOF() {
			return nil, p.unterminated(open)
		}
		if b, _ := p.sc.Peek(); b == '}' {
			return m, nil
		}
		if diag := p.parseEntry(m, depth); diag != nil {
			return nil, diag
		}
	}
}

// parseListBody parses bare values until the matching '}'.
func (p *Parser) parseListBody(open types.ByteOffset, depth int) (*save.Node, *types.SpanDiagnostic) {
	list := save.NewList()
	for {
		p.sc.SkipWhitespaceAndComments()
		if p.sc.EOF() {
			return nil, p.unterminated(open)
		}
		if b, _ := p.sc.Peek(); b == '}' {
			return list, nil
		}
		item, diag := p.parseValue(depth)
		if diag != nil {
			return nil, diag
		}
		list.Append(item)
	}
}
