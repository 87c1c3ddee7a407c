package save

import (
	"fmt"
	"strings"
)

// Severity classifies how bad a diagnostic is. Lower is more severe.
type Severity int

const (
	// SeverityFatal stops a strict-mode parse; in lenient mode it ends
	// the parse with whatever was fully assembled.
	SeverityFatal Severity = iota
	// SeverityError is malformed input the parser stepped past.
	SeverityError
	// SeverityWarning is suspicious but parseable input.
	SeverityWarning
	// SeverityInfo is informational.
	SeverityInfo
)

// String returns the lowercase name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityFatal:
		return "fatal"
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	}
	return "unknown"
}

// Diagnostic describes an issue found during parsing. In lenient mode
// diagnostics accompany the partial Document instead of failing the
// parse; Offset locates the problem in the source buffer.
type Diagnostic struct {
	Severity Severity
	Code     string // e.g. "unterminated-block"
	Offset   int    // byte offset into the source buffer
	Message  string
}

// String returns "[severity] offset N: message".
func (d Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] offset %d: %s", d.Severity, d.Offset, d.Message)
	return b.String()
}
