package pdxsave

import "github.com/pdxtools/pdxsave/save"

// Type aliases for the public API - all model types come from the save
// subpackage.

// Document is a parsed save file: root map plus diagnostics.
type Document = save.Document

// Node is one value in a parsed save: scalar, map, or list.
type Node = save.Node

// Kind identifies a Node's variant.
type Kind = save.Kind

// Diagnostic describes a parse issue (lenient mode).
type Diagnostic = save.Diagnostic

// Severity for diagnostics.
type Severity = save.Severity

// TypeMismatchError reports a wrong-variant accessor call.
type TypeMismatchError = save.TypeMismatchError

// Kind constants.
const (
	KindString = save.KindString
	KindNumber = save.KindNumber
	KindBool   = save.KindBool
	KindMap    = save.KindMap
	KindList   = save.KindList
)

// Severity constants (lower = more severe).
const (
	SeverityFatal   = save.SeverityFatal
	SeverityError   = save.SeverityError
	SeverityWarning = save.SeverityWarning
	SeverityInfo    = save.SeverityInfo
)

// Node constructors, re-exported for building trees in tests and tools.
var (
	NewString = save.NewString
	NewNumber = save.NewNumber
	NewBool   = save.NewBool
	NewMap    = save.NewMap
	NewList   = save.NewList
)
