package pdxsave

import (
	"github.com/pdxtools/pdxsave/internal/parser"
	"github.com/pdxtools/pdxsave/internal/types"
	"github.com/pdxtools/pdxsave/save"
)

func newParser(data []byte, cfg config) *parser.Parser {
	return parser.New(data, parser.Config{
		Lenient:  cfg.lenient,
		MaxDepth: cfg.maxDepth,
		Logger:   cfg.logger,
	})
}

// publicDiagnostics converts internal span diagnostics to the API form,
// collapsing each span to its start offset.
func publicDiagnostics(diags []types.SpanDiagnostic) []save.Diagnostic {
	if len(diags) == 0 {
		return nil
	}
	out := make([]save.Diagnostic, len(diags))
	for i, d := range diags {
		out[i] = save.Diagnostic{
			Severity: save.Severity(d.Severity),
			Code:     d.Code,
			Offset:   int(d.Span.Start),
			Message:  d.Message,
		}
	}
	return out
}

// Parse fully materializes a save file into a Document. The input must
// already be decoded text, or raw bytes of a single-byte encoding where
// every byte is one character; use ParseFile to read Latin-1 files from
// disk. Parse performs no I/O and never mutates data; parsing the same
// input twice yields structurally equal documents.
func Parse(data []byte, opts ...Option) (*save.Document, error) {
	cfg := applyOptions(opts)
	p := newParser(data, cfg)
	root, diag := p.ParseDocument()
	if diag != nil {
		return nil, diagError(diag)
	}
	return save.NewDocument(root, publicDiagnostics(p.Diagnostics())), nil
}

// ParseString is Parse for string input.
func ParseString(text string, opts ...Option) (*save.Document, error) {
	return Parse([]byte(text), opts...)
}

// ParseFile reads a save file, decodes it from Latin-1, and parses it.
func ParseFile(path string, opts ...Option) (*save.Document, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, opts...)
}

// Sections parses only the requested top-level keys, skipping everything
// else without building nodes. The result contains exactly the requested
// keys that are present in the source; requested keys absent from the
// source are omitted, never an error. For any input, Sections(data, keys)
// equals the full parse's top level restricted to keys.
func Sections(data []byte, keys []string, opts ...Option) (*save.Document, error) {
	cfg := applyOptions(opts)
	p := newParser(data, cfg)
	root, diag := p.ParseSections(keys)
	if diag != nil {
		return nil, diagError(diag)
	}
	return save.NewDocument(root, publicDiagnostics(p.Diagnostics())), nil
}

// SectionsFile is Sections over a Latin-1 file on disk.
func SectionsFile(path string, keys []string, opts ...Option) (*save.Document, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Sections(data, keys, opts...)
}
