package parser

import (
	"log/slog"

	"github.com/pdxtools/pdxsave/internal/types"
	"github.com/pdxtools/pdxsave/save"
)

// ParseSections parses only the requested top-level keys, fast-skipping
// everything else. Skipped block values are stepped over with the
// quote-aware balanced-brace scan; skipped scalars are consumed without
// classification, so no Node is ever built for them.
//
// The result holds only requested keys actually present in the source; a
// requested key that never appears is simply omitted. Coalescing applies
// to requested keys exactly as in a full parse.
func (p *Parser) ParseSections(keys []string) (*save.Node, *types.SpanDiagnostic) {
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}

	root := save.NewMap()
	for {
		p.sc.SkipWhitespaceAndComments()
		if p.sc.EOF() {
			p.Log(slog.LevelDebug, "sections parsed",
				slog.Int("requested", len(keys)),
				slog.Int("found", root.Len()))
			return root, nil
		}
		if b, _ := p.sc.Peek(); b == '}' {
			diag := p.unexpected(p.sc.Pos(), "unmatched '}' at top level")
			return p.finish(root, diag)
		}
		if diag := p.sectionEntry(root, want); diag != nil {
			return p.finish(root, diag)
		}
	}
}

func (p *Parser) sectionEntry(dst *save.Node, want map[string]bool) *types.SpanDiagnostic {
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

	if want[key] {
		value, diag := p.parseValue(0)
		if diag != nil {
			return diag
		}
		dst.Put(key, value)
		return nil
	}
	return p.skipValue()
}

// skipValue advances past one value without building a Node.
func (p *Parser) skipValue() *types.SpanDiagnostic {
	p.sc.SkipWhitespaceAndComments()
	b, ok := p.sc.Peek()
	if !ok {
		return p.unexpected(p.sc.Pos(), "expected value, got end of input")
	}
	switch b {
	case '{':
		_, diag := p.sc.SkipBalancedBlock()
		return diag
	case '"':
		_, diag := p.sc.ReadQuotedString()
		return diag
	case '}':
		return p.unexpected(p.sc.Pos(), "expected value, got '}'")
	}
	p.sc.SkipBareToken()
	return nil
}
