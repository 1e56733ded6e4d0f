package state

import "unicode"

// QueryInput is the editable query line. Cursor is a rune offset into Text.
type QueryInput struct {
	Text   string
	Cursor int
}

// Set replaces the text and puts the cursor at the end.
func (q *QueryInput) Set(text string) {
	q.Text = text
	q.Cursor = len([]rune(text))
}

// Clear empties the buffer. It reports whether anything was removed.
func (q *QueryInput) Clear() bool {
	if q.Text == "" {
		q.Cursor = 0
		return false
	}
	q.Text = ""
	q.Cursor = 0
	return true
}

// Pos returns the cursor clamped to the text.
func (q *QueryInput) Pos() int {
	n := len([]rune(q.Text))
	if q.Cursor < 0 {
		return 0
	}
	if q.Cursor > n {
		return n
	}
	return q.Cursor
}

func (q *QueryInput) update(runes []rune, cursor int) {
	q.Text = string(runes)
	q.Cursor = cursor
}

// Insert adds text at the cursor.
func (q *QueryInput) Insert(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(q.Text)
	pos := q.Pos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	q.update(updated, pos+len(insert))
	return true
}

// DeleteBackward removes the rune before the cursor.
func (q *QueryInput) DeleteBackward() bool {
	runes := []rune(q.Text)
	pos := q.Pos()
	if pos == 0 {
		return false
	}
	q.update(append(runes[:pos-1], runes[pos:]...), pos-1)
	return true
}

// DeleteForward removes the rune under the cursor.
func (q *QueryInput) DeleteForward() bool {
	runes := []rune(q.Text)
	pos := q.Pos()
	if pos >= len(runes) {
		return false
	}
	q.update(append(runes[:pos], runes[pos+1:]...), pos)
	return true
}

// DeleteWordBackward removes the word preceding the cursor.
func (q *QueryInput) DeleteWordBackward() bool {
	runes := []rune(q.Text)
	pos := q.Pos()
	if pos == 0 {
		return false
	}
	i := wordStart(runes, pos)
	q.update(append(runes[:i], runes[pos:]...), i)
	return true
}

// MoveStart moves the cursor to the start of the line.
func (q *QueryInput) MoveStart() bool {
	if q.Pos() == 0 {
		return false
	}
	q.Cursor = 0
	return true
}

// MoveEnd moves the cursor to the end of the line.
func (q *QueryInput) MoveEnd() bool {
	end := len([]rune(q.Text))
	if q.Pos() == end {
		return false
	}
	q.Cursor = end
	return true
}

// MoveLeft moves the cursor one rune back.
func (q *QueryInput) MoveLeft() bool {
	if q.Pos() == 0 {
		return false
	}
	q.Cursor = q.Pos() - 1
	return true
}

// MoveRight moves the cursor one rune forward.
func (q *QueryInput) MoveRight() bool {
	pos := q.Pos()
	if pos >= len([]rune(q.Text)) {
		return false
	}
	q.Cursor = pos + 1
	return true
}

// MoveWordLeft moves the cursor to the start of the previous word.
func (q *QueryInput) MoveWordLeft() bool {
	pos := q.Pos()
	i := wordStart([]rune(q.Text), pos)
	if i == pos {
		return false
	}
	q.Cursor = i
	return true
}

// MoveWordRight moves the cursor past the next word.
func (q *QueryInput) MoveWordRight() bool {
	runes := []rune(q.Text)
	pos := q.Pos()
	i := pos
	for i < len(runes) && !unicode.IsSpace(runes[i]) {
		i++
	}
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	if i == pos {
		return false
	}
	q.Cursor = i
	return true
}

func wordStart(runes []rune, pos int) int {
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return i
}
