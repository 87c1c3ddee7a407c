package types

// Diagnostic codes emitted by the scanner and parser.
// Centralizing these prevents silent breakage from typos in string literals.
const (
	DiagUnterminatedString = "unterminated-string"
	DiagUnterminatedBlock  = "unterminated-block"
	DiagUnexpectedToken    = "unexpected-token"
	DiagDepthExceeded      = "depth-exceeded"
)

// Severity constants matching save.Severity values.
// Lower is more severe.
const (
	SeverityFatal   = 0
	SeverityError   = 1
	SeverityWarning = 2
	SeverityInfo    = 3
)

// SpanDiagnostic is a message from the scanner or parser (internal use).
// It is converted to a save.Diagnostic at the API boundary, where the
// span collapses to the byte offset of its start.
type SpanDiagnostic struct {
	Severity int
	Code     string
	Span     Span
	Message  string
}
