package state

import "github.com/atomicstack/mqt/internal/query"

// DefaultPageSize is the number of rows moved by page up and page down.
const DefaultPageSize = 10

// ResultList is the navigable list of query results.
type ResultList struct {
	Viewport
	items    []query.ResultItem
	pageSize int
}

// ResultSnapshot captures a result list so it can be restored later.
type ResultSnapshot struct {
	Items  []query.ResultItem
	Cursor int
	Offset int
}

// NewResultList returns an empty list paging by pageSize rows.
func NewResultList(pageSize int) *ResultList {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &ResultList{pageSize: pageSize}
}

// Replace installs a new result set and resets the cursor to the first row.
func (r *ResultList) Replace(items []query.ResultItem) {
	r.items = CloneResults(items)
	r.Cursor = 0
	r.Offset = 0
}

// Snapshot returns a copy of the list state.
func (r *ResultList) Snapshot() ResultSnapshot {
	return ResultSnapshot{Items: CloneResults(r.items), Cursor: r.Cursor, Offset: r.Offset}
}

// Restore reinstates a snapshot taken earlier.
func (r *ResultList) Restore(s ResultSnapshot) {
	r.items = CloneResults(s.Items)
	r.Cursor = s.Cursor
	r.Offset = s.Offset
	r.Clamp(len(r.items))
}

// Items returns the current results.
func (r *ResultList) Items() []query.ResultItem {
	return r.items
}

// Len returns the number of results.
func (r *ResultList) Len() int {
	return len(r.items)
}

// Selected returns the item under the cursor.
func (r *ResultList) Selected() (query.ResultItem, bool) {
	if len(r.items) == 0 || r.Cursor < 0 || r.Cursor >= len(r.items) {
		return query.ResultItem{}, false
	}
	return r.items[r.Cursor], true
}

// PageSize reports the configured page size.
func (r *ResultList) PageSize() int {
	return r.pageSize
}

// MoveBy shifts the cursor by delta rows.
func (r *ResultList) MoveBy(delta int) bool { return r.Move(len(r.items), delta) }

// MoveHome jumps to the first result.
func (r *ResultList) MoveHome() bool { return r.Home(len(r.items)) }

// MoveEnd jumps to the last result.
func (r *ResultList) MoveEnd() bool { return r.End(len(r.items)) }

// MovePageUp moves up one page.
func (r *ResultList) MovePageUp() bool { return r.PageUp(len(r.items), r.pageSize) }

// MovePageDown moves down one page.
func (r *ResultList) MovePageDown() bool { return r.PageDown(len(r.items), r.pageSize) }

// Visible returns the rows that fit in maxVisible lines and the index of the
// first one.
func (r *ResultList) Visible(maxVisible int) ([]query.ResultItem, int) {
	start, end := r.Window(len(r.items), maxVisible)
	return r.items[start:end], start
}

// CloneResults produces a shallow copy of the supplied results.
func CloneResults(items []query.ResultItem) []query.ResultItem {
	if items == nil {
		return nil
	}
	dup := make([]query.ResultItem, len(items))
	copy(dup, items)
	return dup
}
