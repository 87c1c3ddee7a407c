package save

// Document is the result of a parse: the root map node plus any
// diagnostics collected along the way. In strict mode a Document only
// exists for fully successful parses and Diagnostics is empty; in
// lenient mode the root holds whatever was fully assembled before the
// first fatal error, and Diagnostics says where and why the parse ended.
type Document struct {
	root  *Node
	diags []Diagnostic
}

// NewDocument wraps a root node and diagnostics. The parser calls this;
// most users receive Documents from the pdxsave entry points.
func NewDocument(root *Node, diags []Diagnostic) *Document {
	return &Document{root: root, diags: diags}
}

// Root returns the root map node.
func (d *Document) Root() *Node {
	return d.root
}

// Diagnostics returns the diagnostics collected while parsing.
func (d *Document) Diagnostics() []Diagnostic {
	return d.diags
}

// Get returns the top-level value for key.
func (d *Document) Get(key string) (*Node, bool) {
	return d.root.Get(key)
}

// Keys returns the top-level keys in source order.
func (d *Document) Keys() []string {
	return d.root.Keys()
}

// Source re-serializes the whole document into the save-file grammar.
func (d *Document) Source() string {
	return d.root.Source()
}
