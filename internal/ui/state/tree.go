package state

import "github.com/atomicstack/mqt/internal/document"

// TreeRow is one visible line of the tree projection.
type TreeRow struct {
	ID       document.NodeID
	Depth    int
	HasKids  bool
	Expanded bool
	// Last is set when the row is the final child of its parent.
	Last bool
	// Guides holds one flag per ancestor level, true when that ancestor has
	// siblings below it and a vertical guide must be drawn.
	Guides []bool
}

// TreeView is the expandable outline of a document. Nodes start collapsed;
// the expanded set is keyed by node id and survives rebuilding the rows.
type TreeView struct {
	Viewport
	doc      *document.Document
	expanded map[document.NodeID]bool
	rows     []TreeRow
	index    map[document.NodeID]int
}

// NewTreeView returns a collapsed tree over doc.
func NewTreeView(doc *document.Document) *TreeView {
	t := &TreeView{}
	t.Reset(doc)
	return t
}

// Reset discards expand state and rebuilds the rows for doc.
func (t *TreeView) Reset(doc *document.Document) {
	t.doc = doc
	t.expanded = make(map[document.NodeID]bool)
	t.rows = nil
	t.Cursor = 0
	t.Offset = 0
	t.rebuild()
}

// Document returns the document the tree projects.
func (t *TreeView) Document() *document.Document {
	return t.doc
}

// Rows returns the visible rows in display order.
func (t *TreeView) Rows() []TreeRow {
	return t.rows
}

// Len returns the number of visible rows.
func (t *TreeView) Len() int {
	return len(t.rows)
}

// IndexOf returns the row index of id, or -1 when it is hidden.
func (t *TreeView) IndexOf(id document.NodeID) int {
	if i, ok := t.index[id]; ok {
		return i
	}
	return -1
}

// Selected returns the node under the cursor.
func (t *TreeView) Selected() (document.NodeID, bool) {
	if len(t.rows) == 0 || t.Cursor < 0 || t.Cursor >= len(t.rows) {
		return document.NoNode, false
	}
	return t.rows[t.Cursor].ID, true
}

// IsExpanded reports whether id is expanded.
func (t *TreeView) IsExpanded(id document.NodeID) bool {
	return t.expanded[id]
}

// Toggle flips the expand state of the selected node. Leaves are left
// untouched.
func (t *TreeView) Toggle() bool {
	id, ok := t.Selected()
	if !ok {
		return false
	}
	return t.setExpanded(id, !t.expanded[id])
}

// Expand opens the selected node, or moves to its first child when it is
// already open.
func (t *TreeView) Expand() bool {
	id, ok := t.Selected()
	if !ok {
		return false
	}
	n := t.doc.Node(id)
	if n == nil || len(n.Children) == 0 {
		return false
	}
	if !t.expanded[id] {
		return t.setExpanded(id, true)
	}
	return t.selectNode(n.Children[0])
}

// Collapse closes the selected node, or moves to its parent when it is
// already closed or is a leaf.
func (t *TreeView) Collapse() bool {
	id, ok := t.Selected()
	if !ok {
		return false
	}
	if t.expanded[id] {
		return t.setExpanded(id, false)
	}
	if n := t.doc.Node(id); n != nil && n.Parent != document.NoNode {
		return t.selectNode(n.Parent)
	}
	return false
}

// ExpandAll opens every node that has children.
func (t *TreeView) ExpandAll() {
	if t.doc == nil {
		return
	}
	for _, root := range t.doc.Roots() {
		t.doc.Walk(root, func(n *document.Node) bool {
			if len(n.Children) > 0 {
				t.expanded[n.ID] = true
			}
			return true
		})
	}
	t.rebuild()
}

// CollapseAll closes every node. The cursor moves to the top-level ancestor
// of the previous selection.
func (t *TreeView) CollapseAll() {
	t.expanded = make(map[document.NodeID]bool)
	t.rebuild()
}

// MoveBy shifts the cursor by delta rows.
func (t *TreeView) MoveBy(delta int) bool { return t.Move(len(t.rows), delta) }

// MoveHome jumps to the first row.
func (t *TreeView) MoveHome() bool { return t.Home(len(t.rows)) }

// MoveEnd jumps to the last row.
func (t *TreeView) MoveEnd() bool { return t.End(len(t.rows)) }

// MovePageUp moves up by page rows.
func (t *TreeView) MovePageUp(page int) bool { return t.PageUp(len(t.rows), page) }

// MovePageDown moves down by page rows.
func (t *TreeView) MovePageDown(page int) bool { return t.PageDown(len(t.rows), page) }

// Visible returns the rows that fit in maxVisible lines and the index of the
// first one.
func (t *TreeView) Visible(maxVisible int) ([]TreeRow, int) {
	start, end := t.Window(len(t.rows), maxVisible)
	return t.rows[start:end], start
}

func (t *TreeView) setExpanded(id document.NodeID, open bool) bool {
	n := t.doc.Node(id)
	if n == nil || len(n.Children) == 0 {
		return false
	}
	if open {
		t.expanded[id] = true
	} else {
		delete(t.expanded, id)
	}
	t.rebuild()
	return true
}

func (t *TreeView) selectNode(id document.NodeID) bool {
	i, ok := t.index[id]
	if !ok || i == t.Cursor {
		return false
	}
	t.Cursor = i
	return true
}

// rebuild flattens the document honouring the expanded set, then puts the
// cursor back on the previously selected node or its nearest visible
// ancestor.
func (t *TreeView) rebuild() {
	prev, hadPrev := t.Selected()
	t.rows = nil
	t.index = make(map[document.NodeID]int)
	if t.doc != nil {
		roots := t.doc.Roots()
		for i, id := range roots {
			t.flatten(id, 0, i == len(roots)-1, nil)
		}
	}
	if hadPrev {
		for id := prev; id != document.NoNode; {
			if i, ok := t.index[id]; ok {
				t.Cursor = i
				return
			}
			n := t.doc.Node(id)
			if n == nil {
				break
			}
			id = n.Parent
		}
	}
	t.Clamp(len(t.rows))
}

func (t *TreeView) flatten(id document.NodeID, depth int, last bool, guides []bool) {
	n := t.doc.Node(id)
	if n == nil {
		return
	}
	open := t.expanded[id] && len(n.Children) > 0
	row := TreeRow{
		ID:       id,
		Depth:    depth,
		HasKids:  len(n.Children) > 0,
		Expanded: open,
		Last:     last,
		Guides:   append([]bool(nil), guides...),
	}
	t.index[id] = len(t.rows)
	t.rows = append(t.rows, row)
	if !open {
		return
	}
	childGuides := guides
	if depth > 0 {
		childGuides = append(append([]bool(nil), guides...), !last)
	}
	for i, child := range n.Children {
		t.flatten(child, depth+1, i == len(n.Children)-1, childGuides)
	}
}
