package save

import (
	"io"
	"strings"
)

// Source renders the node back into the save-file grammar. The output is
// not byte-identical to the original file (whitespace and comments are
// gone) but re-parsing it yields a structurally equal tree: coalesced
// lists expand back into repeated keys, and strings that would otherwise
// re-classify as numbers or booleans come out quoted.
//
// A map node renders as its entries only; nested maps get braces from
// their enclosing entry. This makes Source on a parsed Document directly
// re-parseable.
func (n *Node) Source() string {
	var b strings.Builder
	n.write(&b, 0, true)
	return b.String()
}

// WriteSource writes Source output to w.
func (n *Node) WriteSource(w io.Writer) error {
	_, err := io.WriteString(w, n.Source())
	return err
}

func (n *Node) write(b *strings.Builder, depth int, root bool) {
	switch n.kind {
	case KindMap:
		if !root {
			b.WriteString("{\n")
		}
		inner := depth
		if !root {
			inner++
		}
		for _, k := range n.keys {
			v := n.entries[k]
			if v.kind == KindList && v.coalesced {
				// Repeated keys were coalesced at parse time; writing
				// them back as repeated keys round-trips exactly.
				for _, item := range v.items {
					writeEntry(b, inner, k, item)
				}
				continue
			}
			writeEntry(b, inner, k, v)
		}
		if !root {
			writeIndent(b, depth)
			b.WriteString("}")
		}
	case KindList:
		b.WriteString("{ ")
		for _, item := range n.items {
			item.write(b, depth, false)
			b.WriteString(" ")
		}
		b.WriteString("}")
	default:
		b.WriteString(n.scalarText())
	}
}

func writeEntry(b *strings.Builder, depth int, key string, v *Node) {
	writeIndent(b, depth)
	if needsQuoting(key) {
		b.WriteString(`"` + key + `"`)
	} else {
		b.WriteString(key)
	}
	b.WriteString("=")
	v.write(b, depth, false)
	b.WriteString("\n")
}

func writeIndent(b *strings.Builder, depth int) {
	for range depth {
		b.WriteString("\t")
	}
}

func (n *Node) scalarText() string {
	switch n.kind {
	case KindNumber:
		return n.str
	case KindBool:
		if n.truth {
			return "yes"
		}
		return "no"
	}
	if needsQuoting(n.str) {
		return `"` + n.str + `"`
	}
	return n.str
}

// needsQuoting reports whether a string must be quoted to survive a
// re-parse: bare text that contains delimiters, or that would classify
// as a number or boolean.
func needsQuoting(s string) bool {
	if s == "" || s == "yes" || s == "no" || isNumber(s) {
		return true
	}
	return strings.ContainsAny(s, " \t\n\r={}#\"")
}
