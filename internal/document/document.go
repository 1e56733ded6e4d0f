package document

// NodeID addresses a node inside a Document. It is an index into the
// document's node arena and is only meaningful for the document that issued
// it.
type NodeID int

// NoNode marks the absence of a node (top-level parents, synthesised values).
const NoNode NodeID = -1

// Span is the 1-based, inclusive source line range a node was parsed from.
type Span struct {
	StartLine int
	EndLine   int
}

// Node is a single element of the parsed Markdown tree.
type Node struct {
	ID       NodeID
	Kind     Kind
	Depth    int
	Parent   NodeID
	Children []NodeID
	Span     Span

	// Text is the rendered plain text of the node and its descendants.
	Text string
	// Value holds raw content for leaf-like kinds (code, math, html, front
	// matter, inline code, text).
	Value   string
	Lang    string
	URL     string
	Title   string
	Alt     string
	Ordered bool
	Task    bool
	Checked bool
	// Index is the item position inside its list, or the start number for
	// ordered lists.
	Index int
}

// Document is an immutable parsed Markdown file.
type Document struct {
	Name   string
	Source []byte

	nodes []Node
	roots []NodeID
}

// Node returns the node with the given identifier, or nil when the
// identifier does not belong to this document.
func (d *Document) Node(id NodeID) *Node {
	if d == nil || id < 0 || int(id) >= len(d.nodes) {
		return nil
	}
	return &d.nodes[id]
}

// Roots returns the top-level nodes in document order.
func (d *Document) Roots() []NodeID {
	if d == nil {
		return nil
	}
	return d.roots
}

// Len reports the number of nodes in the document.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.nodes)
}

// Walk visits id and its descendants in preorder. Returning false from fn
// skips the node's children.
func (d *Document) Walk(id NodeID, fn func(*Node) bool) {
	n := d.Node(id)
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		d.Walk(child, fn)
	}
}

// IsAncestor reports whether ancestor is a strict ancestor of id.
func (d *Document) IsAncestor(ancestor, id NodeID) bool {
	n := d.Node(id)
	for n != nil && n.Parent != NoNode {
		if n.Parent == ancestor {
			return true
		}
		n = d.Node(n.Parent)
	}
	return false
}

// Builder assembles a Document node by node. Parents must be added before
// their children.
type Builder struct {
	doc *Document
}

// NewBuilder starts a document with the given display name and source.
func NewBuilder(name string, source []byte) *Builder {
	return &Builder{doc: &Document{Name: name, Source: source}}
}

// Add appends n under parent (NoNode for top level) and returns its id.
func (b *Builder) Add(parent NodeID, n Node) NodeID {
	id := NodeID(len(b.doc.nodes))
	n.ID = id
	n.Parent = parent
	n.Children = nil
	b.doc.nodes = append(b.doc.nodes, n)
	if p := b.doc.Node(parent); p != nil {
		p.Children = append(p.Children, id)
	} else {
		b.doc.nodes[id].Parent = NoNode
		b.doc.roots = append(b.doc.roots, id)
	}
	return id
}

// Update applies fn to an already added node. Parsers use it to fill in
// fields that are only known once children have been visited.
func (b *Builder) Update(id NodeID, fn func(*Node)) {
	if n := b.doc.Node(id); n != nil {
		fn(n)
	}
}

// Node exposes a node added so far.
func (b *Builder) Node(id NodeID) *Node {
	return b.doc.Node(id)
}

// Document returns the finished document. The builder must not be used
// afterwards.
func (b *Builder) Document() *Document {
	doc := b.doc
	b.doc = nil
	return doc
}
