package ui

import (
	"unicode"

	"github.com/atomicstack/mqt/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const queryPlaceholder = "(type a query, e.g. .h)"

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func (m *Model) noteFilterCursorChange(before int) {
	if before != m.input.Pos() {
		m.filterCursorDirty = true
	}
}

// handleTextInput applies editing keys to the query buffer. Edits that
// change the text submit the buffer to the pipeline; cursor moves do not.
func (m *Model) handleTextInput(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "ctrl+u":
		return m.editInput("clear", m.input.Clear)
	case "ctrl+w":
		return m.editInput("delete-word", m.input.DeleteWordBackward)
	case "ctrl+a", "home":
		return m.moveInput("start", m.input.MoveStart)
	case "ctrl+e", "end":
		return m.moveInput("end", m.input.MoveEnd)
	case "alt+b", "ctrl+left":
		return m.moveInput("word-left", m.input.MoveWordLeft)
	case "alt+f", "ctrl+right":
		return m.moveInput("word-right", m.input.MoveWordRight)
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		return m.editInput("backspace", m.input.DeleteBackward)
	case tea.KeyDelete:
		return m.editInput("delete", m.input.DeleteForward)
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false, nil
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false, nil
			}
		}
		text := string(msg.Runes)
		return m.editInput("insert", func() bool { return m.input.Insert(text) })
	case tea.KeySpace:
		return m.editInput("insert", func() bool { return m.input.Insert(" ") })
	case tea.KeyLeft:
		return m.moveInput("left", m.input.MoveLeft)
	case tea.KeyRight:
		return m.moveInput("right", m.input.MoveRight)
	}
	return false, nil
}

func (m *Model) editInput(action string, edit func() bool) (bool, tea.Cmd) {
	before := m.input.Pos()
	if !edit() {
		return true, nil
	}
	m.noteFilterCursorChange(before)
	m.inputEdited = true
	m.forceClearInfo()
	m.history.Reset()
	events.Input.Edit(action, m.input.Text, m.input.Pos())
	return true, m.submitQuery(m.input.Text)
}

func (m *Model) moveInput(action string, move func() bool) (bool, tea.Cmd) {
	before := m.input.Pos()
	if !move() {
		return true, nil
	}
	m.noteFilterCursorChange(before)
	events.Input.Cursor(action, m.input.Pos())
	return true, nil
}

// filterPrompt renders the query line. Outside query mode it shows the
// committed query without a caret.
func (m *Model) filterPrompt() string {
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	prompt := "» "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	if m.mode != ModeQuery {
		if m.committed == "" {
			return prompt + render(styles.FilterPlaceholder, "(press : to query)")
		}
		return prompt + render(styles.Filter, m.committed)
	}
	if styles.Cursor != nil {
		m.filterCursor.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = styles.Filter.Copy()
	} else {
		m.filterCursor.TextStyle = lipgloss.Style{}
	}
	text := m.input.Text
	if text == "" {
		runes := []rune(queryPlaceholder)
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = styles.FilterPlaceholder.Copy()
		}
		caret := m.renderFilterCursor(string(runes[0]))
		return prompt + caret + render(styles.FilterPlaceholder, string(runes[1:]))
	}
	runes := []rune(text)
	pos := m.input.Pos()
	before := render(styles.Filter, string(runes[:pos]))
	caretRune := " "
	after := ""
	if pos < len(runes) {
		caretRune = string(runes[pos])
		after = render(styles.Filter, string(runes[pos+1:]))
	}
	return prompt + before + m.renderFilterCursor(caretRune) + after
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)

	base := m.filterCursor.TextStyle.Copy()
	base = base.Inline(true)

	if m.filterCursor.Blink {
		return base.Render(char)
	}

	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Copy().Inline(true)
		base = base.Inherit(cursorStyle).Blink(false)
		return base.Render(char)
	}

	return base.Reverse(true).Render(char)
}
