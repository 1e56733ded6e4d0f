package ui

import (
	"github.com/atomicstack/mqt/internal/document"
	"github.com/atomicstack/mqt/internal/query"
)

// TreeRowSnapshot is one visible tree row.
type TreeRowSnapshot struct {
	ID       document.NodeID
	Depth    int
	Label    string
	Kind     document.Kind
	HasKids  bool
	Expanded bool
}

// Snapshot is everything the screen shows, independent of styling.
type Snapshot struct {
	Mode        Mode
	Query       string
	QueryCursor int
	Committed   string

	// Results is the visible page; ResultOffset is the index of its first row.
	Results      []query.ResultItem
	ResultCount  int
	ResultOffset int
	Selected     int

	TreeRows     []TreeRowSnapshot
	TreeSelected int

	DetailVisible  bool
	DetailMarkdown string

	Status  string
	Error   bool
	Pending bool
}

// Snapshot captures the current render state.
func (m *Model) Snapshot() Snapshot {
	s := Snapshot{
		Mode:          m.mode,
		Query:         m.input.Text,
		QueryCursor:   m.input.Pos(),
		Committed:     m.committed,
		ResultCount:   m.results.Len(),
		Selected:      m.results.Cursor,
		DetailVisible: m.showDetail,
		Pending:       m.pipeline.Pending(),
	}
	items, start := m.results.Visible(m.maxVisibleItems())
	s.Results = append([]query.ResultItem(nil), items...)
	s.ResultOffset = start
	if m.tree != nil {
		for _, row := range m.tree.Rows() {
			n := m.doc.Node(row.ID)
			if n == nil {
				continue
			}
			s.TreeRows = append(s.TreeRows, TreeRowSnapshot{
				ID:       row.ID,
				Depth:    row.Depth,
				Label:    m.treeLabel(row),
				Kind:     n.Kind,
				HasKids:  row.HasKids,
				Expanded: row.Expanded,
			})
		}
		s.TreeSelected = m.tree.Cursor
	}
	if m.showDetail {
		if markdown, ok := m.detailMarkdown(); ok {
			s.DetailMarkdown = markdown
		} else {
			s.DetailMarkdown = noSelectionText
		}
	}
	switch {
	case m.errMsg != "":
		s.Status = m.errMsg
		s.Error = true
	default:
		s.Status = m.currentInfo()
	}
	return s
}
