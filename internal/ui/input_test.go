package ui

import (
	"strings"
	"testing"

	"github.com/atomicstack/mqt/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
)

func TestHandleTextInputEditing(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Send(keyRunes(":"))
	typeText(h, ".h | upcase")

	h.Send(tea.KeyMsg{Type: tea.KeyCtrlW})
	if q := h.Model().Snapshot().Query; q != ".h | " {
		t.Fatalf("expected word deleted, got %q", q)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b"), Alt: true})
	if pos := h.Model().Snapshot().QueryCursor; pos != 3 {
		t.Fatalf("expected cursor at 3 after alt+b, got %d", pos)
	}
	h.Send(keyType(tea.KeyHome))
	h.Send(keyType(tea.KeyDelete))
	if snap := h.Model().Snapshot(); snap.Query != "h | " || snap.QueryCursor != 0 {
		t.Fatalf("expected forward delete at start, got %q@%d", snap.Query, snap.QueryCursor)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlE})
	h.Send(keyType(tea.KeyBackspace))
	if snap := h.Model().Snapshot(); snap.Query != "h |" || snap.QueryCursor != 3 {
		t.Fatalf("expected backspace at end, got %q@%d", snap.Query, snap.QueryCursor)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlU})
	if q := h.Model().Snapshot().Query; q != "" {
		t.Fatalf("expected ctrl+u to clear, got %q", q)
	}
}

func TestCursorMovesDoNotSubmit(t *testing.T) {
	eval := testutil.NewGatedEvaluator()
	h := newTestHarness(t, Options{Evaluator: eval})
	h.Send(keyRunes(":"))
	typeText(h, ".h")
	calls := len(eval.Calls())
	h.Send(keyType(tea.KeyLeft))
	h.Send(keyType(tea.KeyRight))
	h.Send(keyType(tea.KeyHome))
	h.Send(keyType(tea.KeyEnd))
	if got := len(eval.Calls()); got != calls {
		t.Fatalf("expected no evaluation for cursor moves, got %v", eval.Calls()[calls:])
	}
	h.Send(keyType(tea.KeyLeft))
	h.Send(keyRunes("x"))
	if q := h.Model().Snapshot().Query; q != ".xh" {
		t.Fatalf("expected insert at cursor, got %q", q)
	}
	if calls := eval.Calls(); calls[len(calls)-1] != ".xh" {
		t.Fatalf("expected edit to submit, got %v", calls)
	}
}

func TestFilterPromptPlaceholder(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Send(keyRunes(":"))
	prompt := h.Model().filterPrompt()
	if !strings.Contains(prompt, "type a query") {
		t.Fatalf("expected placeholder in prompt, got %q", prompt)
	}
}

func TestEnterQueryModeClearsBuffer(t *testing.T) {
	h := newTestHarness(t, Options{})
	runQuery(h, ".h")
	h.Send(keyRunes(":"))
	if snap := h.Model().Snapshot(); snap.Query != "" || snap.Committed != ".h" {
		t.Fatalf("expected empty buffer with committed .h, got %q/%q", snap.Query, snap.Committed)
	}
}
