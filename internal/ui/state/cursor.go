package state

// Viewport is a cursor over a list of rows together with the index of the
// first visible row. Every method takes the current row count so the cursor
// can be clamped to it.
type Viewport struct {
	Cursor int
	Offset int
}

// Home moves the cursor to the first row.
func (v *Viewport) Home(n int) bool {
	if n == 0 {
		v.Cursor = 0
		return false
	}
	old := v.Cursor
	v.Cursor = 0
	return old != v.Cursor
}

// End moves the cursor to the last row.
func (v *Viewport) End(n int) bool {
	if n == 0 {
		v.Cursor = 0
		return false
	}
	old := v.Cursor
	v.Cursor = n - 1
	return old != v.Cursor
}

// PageUp moves the cursor up by one page.
func (v *Viewport) PageUp(n, page int) bool {
	return v.Move(n, -pageSize(n, page))
}

// PageDown moves the cursor down by one page.
func (v *Viewport) PageDown(n, page int) bool {
	return v.Move(n, pageSize(n, page))
}

// Move shifts the cursor by delta rows, clamped to [0, n-1].
func (v *Viewport) Move(n, delta int) bool {
	if n == 0 {
		v.Cursor = 0
		return false
	}
	old := v.Cursor
	if v.Cursor < 0 {
		v.Cursor = 0
	}
	v.Cursor += delta
	v.Clamp(n)
	return v.Cursor != old
}

// Clamp forces the cursor into [0, n-1], or 0 for an empty list.
func (v *Viewport) Clamp(n int) {
	if n == 0 || v.Cursor < 0 {
		v.Cursor = 0
		return
	}
	if v.Cursor >= n {
		v.Cursor = n - 1
	}
}

func pageSize(n, page int) int {
	if n == 0 {
		return 0
	}
	size := page
	if size <= 0 || size > n {
		size = n
	}
	if size < 1 {
		size = 1
	}
	return size
}

// EnsureVisible adjusts the offset so the cursor stays within a window of
// maxVisible rows.
func (v *Viewport) EnsureVisible(n, maxVisible int) {
	if n == 0 {
		v.Cursor = 0
		v.Offset = 0
		return
	}
	v.Clamp(n)
	if maxVisible <= 0 {
		v.Offset = 0
		return
	}
	maxOffset := n - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if v.Offset > maxOffset {
		v.Offset = maxOffset
	}
	if v.Offset < 0 {
		v.Offset = 0
	}
	if v.Cursor < v.Offset {
		v.Offset = v.Cursor
	}
	if upper := v.Offset + maxVisible - 1; v.Cursor > upper {
		v.Offset = v.Cursor - maxVisible + 1
		if v.Offset > maxOffset {
			v.Offset = maxOffset
		}
	}
}

// Window returns the half-open range of rows visible in a window of
// maxVisible rows.
func (v *Viewport) Window(n, maxVisible int) (start, end int) {
	v.EnsureVisible(n, maxVisible)
	if maxVisible <= 0 || maxVisible > n {
		return 0, n
	}
	return v.Offset, v.Offset + maxVisible
}
