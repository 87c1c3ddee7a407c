package save

import (
	"fmt"
	"math"
	"strings"
)

// TypeMismatchError reports that a node accessor was called on the wrong
// variant. It is always returned to the immediate caller, never silently
// defaulted; use the *Or accessors when a fallback default is wanted.
type TypeMismatchError struct {
	Want Kind
	Got  Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: want %s, got %s", e.Want, e.Got)
}

func (n *Node) mismatch(want Kind) *TypeMismatchError {
	got := Kind(-1)
	if n != nil {
		got = n.kind
	}
	return &TypeMismatchError{Want: want, Got: got}
}

// AsMap returns the node itself if it is a map, for use with Get, Keys,
// and Fields. Any other variant fails with TypeMismatchError.
func (n *Node) AsMap() (*Node, error) {
	if n == nil || n.kind != KindMap {
		return nil, n.mismatch(KindMap)
	}
	return n, nil
}

// AsList returns the list elements. Any other variant fails with
// TypeMismatchError.
func (n *Node) AsList() ([]*Node, error) {
	if n == nil || n.kind != KindList {
		return nil, n.mismatch(KindList)
	}
	out := make([]*Node, len(n.items))
	copy(out, n.items)
	return out, nil
}

// AsString returns the string scalar value.
func (n *Node) AsString() (string, error) {
	if n == nil || n.kind != KindString {
		return "", n.mismatch(KindString)
	}
	return n.str, nil
}

// AsFloat returns the numeric scalar value.
func (n *Node) AsFloat() (float64, error) {
	if n == nil || n.kind != KindNumber {
		return 0, n.mismatch(KindNumber)
	}
	return n.num, nil
}

// AsInt returns the numeric scalar value truncated toward zero.
func (n *Node) AsInt() (int64, error) {
	if n == nil || n.kind != KindNumber {
		return 0, n.mismatch(KindNumber)
	}
	return int64(math.Trunc(n.num)), nil
}

// AsBool returns the boolean scalar value.
func (n *Node) AsBool() (bool, error) {
	if n == nil || n.kind != KindBool {
		return false, n.mismatch(KindBool)
	}
	return n.truth, nil
}

// Raw returns the scalar's source text: string value, number digits as
// written, or yes/no. Non-scalar nodes return "".
func (n *Node) Raw() string {
	if n == nil {
		return ""
	}
	switch n.kind {
	case KindString, KindNumber:
		return n.str
	case KindBool:
		if n.truth {
			return "yes"
		}
		return "no"
	}
	return ""
}

// StringOr returns the string value, or def for any other variant.
// This is the documented fallback-default counterpart of AsString.
func (n *Node) StringOr(def string) string {
	if n == nil || n.kind != KindString {
		return def
	}
	return n.str
}

// FloatOr returns the numeric value, or def for any other variant.
// Save files store some numeric fields as quoted strings; those parse as
// strings, so FloatOr also accepts a string that reads as a number.
func (n *Node) FloatOr(def float64) float64 {
	if n == nil {
		return def
	}
	switch n.kind {
	case KindNumber:
		return n.num
	case KindString:
		if v, ok := parseNumber(strings.TrimSpace(n.str)); ok {
			return v
		}
	}
	return def
}

// IntOr returns the numeric value truncated toward zero, or def.
func (n *Node) IntOr(def int64) int64 {
	if n == nil || n.kind != KindNumber {
		if n != nil && n.kind == KindString {
			if v, ok := parseNumber(strings.TrimSpace(n.str)); ok {
				return int64(math.Trunc(v))
			}
		}
		return def
	}
	return int64(math.Trunc(n.num))
}

// BoolOr returns the boolean value, or def for any other variant.
func (n *Node) BoolOr(def bool) bool {
	if n == nil || n.kind != KindBool {
		return def
	}
	return n.truth
}

// GetFloat is Get followed by FloatOr: the value at key as a number,
// or def when the key is absent or not numeric.
func (n *Node) GetFloat(key string, def float64) float64 {
	v, ok := n.Get(key)
	if !ok {
		return def
	}
	return v.FloatOr(def)
}

// GetInt is Get followed by IntOr.
func (n *Node) GetInt(key string, def int64) int64 {
	v, ok := n.Get(key)
	if !ok {
		return def
	}
	return v.IntOr(def)
}

// GetString is Get followed by StringOr.
func (n *Node) GetString(key, def string) string {
	v, ok := n.Get(key)
	if !ok {
		return def
	}
	return v.StringOr(def)
}

// GetBool is Get followed by BoolOr.
func (n *Node) GetBool(key string, def bool) bool {
	v, ok := n.Get(key)
	if !ok {
		return def
	}
	return v.BoolOr(def)
}
