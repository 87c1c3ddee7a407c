// Package save defines the data model produced by parsing Paradox save
// files: a tree of Nodes plus the diagnostics describing what went wrong
// while building it.
package save

import (
	"iter"
	"strconv"
)

// Kind identifies the variant held by a Node.
type Kind int

const (
	// KindString is a quoted or bare text scalar.
	KindString Kind = iota
	// KindNumber is a numeric scalar stored as float64 plus source digits.
	KindNumber
	// KindBool is a yes/no scalar.
	KindBool
	// KindMap is an ordered association of unique string keys to Nodes.
	KindMap
	// KindList is an ordered sequence of Nodes.
	KindList
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindMap:
		return "map"
	case KindList:
		return "list"
	}
	return "unknown"
}

// Node is one value in a parsed save file: a scalar, a map, or a list.
// The variant is fixed at parse time and never changes afterwards, with
// one exception: inserting a duplicate key into a map promotes the
// existing value to a coalesced list (see Put).
//
// A Node tree is fully owned by the caller once a parse call returns;
// it holds no reference to the source buffer beyond copied strings.
type Node struct {
	kind Kind

	str   string  // KindString value; KindNumber source digits
	num   float64 // KindNumber value
	truth bool    // KindBool value

	keys    []string         // KindMap first-seen key order
	entries map[string]*Node // KindMap key -> value
	items   []*Node          // KindList elements

	// coalesced marks a list created by duplicate-key promotion, as
	// opposed to a literal { ... } list from the source. A further
	// duplicate appends to a coalesced list but wraps a literal one.
	coalesced bool
}

// NewString returns a string scalar node.
func NewString(v string) *Node {
	return &Node{kind: KindString, str: v}
}

// NewNumber returns a numeric scalar node. The raw source digits are kept
// so the value re-prints without losing given significant digits; pass ""
// to format from the float value.
func NewNumber(v float64, raw string) *Node {
	if raw == "" {
		raw = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return &Node{kind: KindNumber, num: v, str: raw}
}

// NewBool returns a boolean scalar node.
func NewBool(v bool) *Node {
	return &Node{kind: KindBool, truth: v}
}

// NewMap returns an empty map node.
func NewMap() *Node {
	return &Node{kind: KindMap, entries: make(map[string]*Node)}
}

// NewList returns a list node holding the given items.
func NewList(items ...*Node) *Node {
	return &Node{kind: KindList, items: items}
}

// Kind returns the variant of this node.
func (n *Node) Kind() Kind {
	return n.kind
}

// IsMap reports whether the node is a map.
func (n *Node) IsMap() bool { return n != nil && n.kind == KindMap }

// IsList reports whether the node is a list.
func (n *Node) IsList() bool { return n != nil && n.kind == KindList }

// IsScalar reports whether the node is a string, number, or bool.
func (n *Node) IsScalar() bool {
	return n != nil && (n.kind == KindString || n.kind == KindNumber || n.kind == KindBool)
}

// Get returns the value for key in a map node. The second result is
// false when the key is absent or the node is not a map.
func (n *Node) Get(key string) (*Node, bool) {
	if n == nil || n.kind != KindMap {
		return nil, false
	}
	v, ok := n.entries[key]
	return v, ok
}

// Keys returns the map's keys in first-seen source order, or nil for
// non-map nodes.
func (n *Node) Keys() []string {
	if n == nil || n.kind != KindMap {
		return nil
	}
	out := make([]string, len(n.keys))
	copy(out, n.keys)
	return out
}

// Len returns the number of entries in a map, items in a list, and 0
// for scalars.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	switch n.kind {
	case KindMap:
		return len(n.keys)
	case KindList:
		return len(n.items)
	}
	return 0
}

// At returns the i-th item of a list node, or nil if out of range or not
// a list.
func (n *Node) At(i int) *Node {
	if n == nil || n.kind != KindList || i < 0 || i >= len(n.items) {
		return nil
	}
	return n.items[i]
}

// Fields iterates a map node's entries in source order. Non-map nodes
// yield nothing.
func (n *Node) Fields() iter.Seq2[string, *Node] {
	return func(yield func(string, *Node) bool) {
		if n == nil || n.kind != KindMap {
			return
		}
		for _, k := range n.keys {
			if !yield(k, n.entries[k]) {
				return
			}
		}
	}
}

// Items iterates a list node's elements in order. Non-list nodes yield
// nothing.
func (n *Node) Items() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		if n == nil || n.kind != KindList {
			return
		}
		for _, item := range n.items {
			if !yield(item) {
				return
			}
		}
	}
}

// Values returns the value for key as a slice, unwrapping coalescing:
// an absent key yields nil, a coalesced list yields its elements, and
// any other value yields a one-element slice. This is the usual way to
// read keys that legitimately repeat (core=, state=, army=).
func (n *Node) Values(key string) []*Node {
	v, ok := n.Get(key)
	if !ok {
		return nil
	}
	if v.kind == KindList && v.coalesced {
		out := make([]*Node, len(v.items))
		copy(out, v.items)
		return out
	}
	return []*Node{v}
}

// Put inserts key=value into a map node, coalescing duplicates: the
// first occurrence stores the value directly; a repeated key promotes
// the existing value to a list and appends, preserving source order.
// Put panics if the node is not a map; the parser only calls it on maps.
func (n *Node) Put(key string, value *Node) {
	if n.kind != KindMap {
		panic("save: Put on non-map node")
	}
	existing, ok := n.entries[key]
	if !ok {
		n.keys = append(n.keys, key)
		n.entries[key] = value
		return
	}
	if existing.kind == KindList && existing.coalesced {
		existing.items = append(existing.items, value)
		return
	}
	n.entries[key] = &Node{
		kind:      KindList,
		items:     []*Node{existing, value},
		coalesced: true,
	}
}

// Append adds an item to a list node. It panics on non-list nodes.
func (n *Node) Append(item *Node) {
	if n.kind != KindList {
		panic("save: Append on non-list node")
	}
	n.items = append(n.items, item)
}

// Coalesced reports whether a list node was created by duplicate-key
// promotion rather than a literal { ... } block.
func (n *Node) Coalesced() bool {
	return n != nil && n.kind == KindList && n.coalesced
}

// Equal reports structural equality of two node trees. Numbers compare
// by value, so formatting differences ("1.50" vs "1.5") do not matter;
// map entries compare in key order.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.kind != other.kind {
		return false
	}
	switch n.kind {
	case KindString:
		return n.str == other.str
	case KindNumber:
		return n.num == other.num
	case KindBool:
		return n.truth == other.truth
	case KindList:
		if len(n.items) != len(other.items) {
			return false
		}
		for i := range n.items {
			if !n.items[i].Equal(other.items[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(n.keys) != len(other.keys) {
			return false
		}
		for i, k := range n.keys {
			if other.keys[i] != k {
				return false
			}
			if !n.entries[k].Equal(other.entries[k]) {
				return false
			}
		}
		return true
	}
	return false
}
