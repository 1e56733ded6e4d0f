// Package history keeps the queries executed during a session.
package history

// Direction selects which way Navigate moves.
type Direction int

const (
	Older Direction = iota
	Newer
)

func (d Direction) String() string {
	if d == Older {
		return "older"
	}
	return "newer"
}

// Buffer is an append-only log of executed queries with a navigation cursor.
// Consecutive duplicates are collapsed on Record.
type Buffer struct {
	entries []string
	// cursor indexes entries while navigating; len(entries) means the
	// caller is editing its own draft.
	cursor int
	draft  string
}

// New returns an empty buffer.
func New() *Buffer {
	return &Buffer{}
}

// Record appends query unless it is empty or equal to the latest entry.
// Recording always ends any navigation in progress.
func (b *Buffer) Record(query string) bool {
	defer b.Reset()
	if query == "" {
		return false
	}
	if n := len(b.entries); n > 0 && b.entries[n-1] == query {
		return false
	}
	b.entries = append(b.entries, query)
	return true
}

// Navigate moves the cursor one step and returns the query to show. current
// is the caller's buffer; it is saved as the draft when navigation starts
// and returned when moving past the newest entry. The boolean is false when
// the cursor did not move.
func (b *Buffer) Navigate(dir Direction, current string) (string, bool) {
	if b.cursor > len(b.entries) || b.cursor < 0 {
		b.cursor = len(b.entries)
	}
	switch dir {
	case Older:
		if len(b.entries) == 0 {
			return current, false
		}
		if b.cursor == len(b.entries) {
			b.draft = current
		}
		if b.cursor == 0 {
			return b.entries[0], false
		}
		b.cursor--
		return b.entries[b.cursor], true
	case Newer:
		if b.cursor == len(b.entries) {
			return current, false
		}
		b.cursor++
		if b.cursor == len(b.entries) {
			return b.draft, true
		}
		return b.entries[b.cursor], true
	}
	return current, false
}

// Navigating reports whether the cursor is on a history entry.
func (b *Buffer) Navigating() bool {
	return b.cursor < len(b.entries)
}

// Reset ends navigation and forgets the saved draft.
func (b *Buffer) Reset() {
	b.cursor = len(b.entries)
	b.draft = ""
}

// Entries returns a copy of the recorded queries, oldest first.
func (b *Buffer) Entries() []string {
	return append([]string(nil), b.entries...)
}

// Len reports the number of recorded queries.
func (b *Buffer) Len() int {
	return len(b.entries)
}
