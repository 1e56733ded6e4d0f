package ui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/mqt/internal/backend"
	"github.com/atomicstack/mqt/internal/clipboard"
	"github.com/atomicstack/mqt/internal/logging"
	"github.com/atomicstack/mqt/internal/query"
	"github.com/atomicstack/mqt/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
)

func newTestHarness(t *testing.T, opts Options) *Harness {
	t.Helper()
	if opts.Document == nil {
		opts.Document = testutil.Document(t, testutil.Sample)
	}
	if opts.Evaluator == nil {
		opts.Evaluator = query.NewEngineEvaluator()
	}
	if opts.Sink == nil {
		opts.Sink = &testutil.RecordingSink{}
	}
	if opts.Width == 0 {
		opts.Width = 80
	}
	if opts.Height == 0 {
		opts.Height = 24
	}
	return NewHarness(NewModel(opts))
}

// logToTempDir keeps warnings written by the session out of the package
// directory.
func logToTempDir(t *testing.T) {
	t.Helper()
	logging.Configure(filepath.Join(t.TempDir(), "mqt.log"))
	t.Cleanup(func() { logging.Configure("") })
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func typeText(h *Harness, text string) {
	for _, r := range text {
		if r == ' ' {
			h.Send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		h.Send(keyRunes(string(r)))
	}
}

func runQuery(h *Harness, text string) {
	h.Send(keyRunes(":"))
	typeText(h, text)
	h.Send(keyType(tea.KeyEnter))
}

func summaries(items []query.ResultItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Summary)
	}
	return out
}

func TestInitialResultsAreTopLevelNodes(t *testing.T) {
	h := newTestHarness(t, Options{})
	snap := h.Model().Snapshot()
	if snap.Mode != ModeNormal {
		t.Fatalf("expected normal mode, got %s", snap.Mode)
	}
	if snap.ResultCount != 4 {
		t.Fatalf("expected 4 top-level nodes, got %d: %v", snap.ResultCount, summaries(snap.Results))
	}
	if snap.Results[0].Summary != "H1 Test Heading" {
		t.Fatalf("expected first heading, got %q", snap.Results[0].Summary)
	}
}

func TestHeadingQueryListsBothHeadings(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Send(keyRunes(":"))
	if mode := h.Model().Mode(); mode != ModeQuery {
		t.Fatalf("expected query mode, got %s", mode)
	}
	typeText(h, ".h")
	snap := h.Model().Snapshot()
	got := summaries(snap.Results)
	if len(got) != 2 || got[0] != "H1 Test Heading" || got[1] != "H2 Second Heading" {
		t.Fatalf("expected both headings, got %v", got)
	}
	h.Send(keyType(tea.KeyEnter))
	snap = h.Model().Snapshot()
	if snap.Mode != ModeNormal || snap.Committed != ".h" {
		t.Fatalf("expected committed .h in normal mode, got %s %q", snap.Mode, snap.Committed)
	}
	if hist := h.Model().History(); len(hist) != 1 || hist[0] != ".h" {
		t.Fatalf("expected history [.h], got %v", hist)
	}
	if snap.ResultCount != 2 {
		t.Fatalf("expected results kept after enter, got %d", snap.ResultCount)
	}
}

func TestSelectFiltersByDepth(t *testing.T) {
	h := newTestHarness(t, Options{})
	runQuery(h, ".h | select(.depth == 2)")
	snap := h.Model().Snapshot()
	got := summaries(snap.Results)
	if len(got) != 1 || got[0] != "H2 Second Heading" {
		t.Fatalf("expected only the second heading, got %v", got)
	}
	if snap.Error {
		t.Fatalf("expected intermediate errors to be cleared, got %q", snap.Status)
	}
}

func TestQueryErrorKeepsResultsAndMode(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Send(keyRunes(":"))
	typeText(h, ".hx")
	snap := h.Model().Snapshot()
	if snap.Mode != ModeQuery {
		t.Fatalf("expected to stay in query mode, got %s", snap.Mode)
	}
	if !snap.Error || !strings.HasPrefix(snap.Status, "Query error: ") {
		t.Fatalf("expected query error status, got %q", snap.Status)
	}
	if !strings.Contains(snap.Status, "did you mean .h") {
		t.Fatalf("expected suggestion in status, got %q", snap.Status)
	}
	if snap.ResultCount != 2 {
		t.Fatalf("expected .h results to stay, got %d", snap.ResultCount)
	}

	h.Send(keyType(tea.KeyLeft))
	if snap := h.Model().Snapshot(); snap.Error {
		t.Fatalf("expected error cleared by the next key, got %q", snap.Status)
	}
}

func TestSlowSupersededQueryIsDiscarded(t *testing.T) {
	eval := testutil.NewGatedEvaluator()
	eval.IgnoreCancel = true
	h := newTestHarness(t, Options{Evaluator: eval})
	h.Send(keyRunes(":"))
	h.Send(keyRunes("."))
	if n := h.Model().Snapshot().ResultCount; n != 4 {
		t.Fatalf("expected identity to list 4 nodes, got %d", n)
	}

	eval.Hold(".h")
	cmd := h.Dispatch(keyRunes("h"))
	done := make(chan []tea.Msg, 1)
	go func() { done <- Exec(cmd) }()
	waitForEvaluation(t, eval, ".h")

	h.Send(keyRunes("x"))
	eval.Release(".h")
	for _, msg := range <-done {
		h.Send(msg)
	}

	snap := h.Model().Snapshot()
	if snap.ResultCount != 4 {
		t.Fatalf("expected results from before .h to remain, got %v", summaries(snap.Results))
	}
	if !snap.Error || !strings.Contains(snap.Status, "Query error") {
		t.Fatalf("expected .hx error to be shown, got %q", snap.Status)
	}
	if snap.Pending {
		t.Fatalf("expected no pending execution")
	}
}

func TestEscCancelsAndRestoresSnapshot(t *testing.T) {
	eval := testutil.NewGatedEvaluator()
	h := newTestHarness(t, Options{Evaluator: eval})
	runQuery(h, ".h")

	h.Send(keyRunes(":"))
	typeText(h, ".lis")
	eval.Hold(".list")
	cmd := h.Dispatch(keyRunes("t"))
	if !h.Model().Snapshot().Pending {
		t.Fatalf("expected .list to be pending")
	}
	h.Send(keyType(tea.KeyEsc))
	h.Run(cmd)

	snap := h.Model().Snapshot()
	if snap.Mode != ModeNormal || snap.Committed != ".h" {
		t.Fatalf("expected committed .h restored, got %s %q", snap.Mode, snap.Committed)
	}
	if got := summaries(snap.Results); len(got) != 2 || got[1] != "H2 Second Heading" {
		t.Fatalf("expected .h results restored, got %v", got)
	}
	if hist := h.Model().History(); len(hist) != 1 {
		t.Fatalf("expected esc not to record history, got %v", hist)
	}
}

func TestEnterOnEmptyQueryRecordsNothing(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Send(keyRunes(":"))
	h.Send(keyType(tea.KeyEnter))
	snap := h.Model().Snapshot()
	if snap.Mode != ModeNormal {
		t.Fatalf("expected normal mode, got %s", snap.Mode)
	}
	if hist := h.Model().History(); len(hist) != 0 {
		t.Fatalf("expected empty history, got %v", hist)
	}
	if snap.ResultCount != 4 {
		t.Fatalf("expected results untouched, got %d", snap.ResultCount)
	}
}

func TestHistoryNavigationDoesNotEvaluate(t *testing.T) {
	eval := testutil.NewGatedEvaluator()
	h := newTestHarness(t, Options{Evaluator: eval})
	runQuery(h, ".h")
	runQuery(h, ".list")
	calls := len(eval.Calls())

	h.Send(keyRunes(":"))
	h.Send(keyType(tea.KeyUp))
	if q := h.Model().Snapshot().Query; q != ".list" {
		t.Fatalf("expected newest entry, got %q", q)
	}
	h.Send(keyType(tea.KeyUp))
	h.Send(keyType(tea.KeyUp))
	if q := h.Model().Snapshot().Query; q != ".h" {
		t.Fatalf("expected to hold at oldest entry, got %q", q)
	}
	h.Send(keyType(tea.KeyDown))
	h.Send(keyType(tea.KeyDown))
	if q := h.Model().Snapshot().Query; q != "" {
		t.Fatalf("expected draft restored, got %q", q)
	}
	if got := len(eval.Calls()); got != calls {
		t.Fatalf("expected no evaluation while navigating, got %v", eval.Calls()[calls:])
	}

	h.Send(keyType(tea.KeyUp))
	h.Send(keyType(tea.KeyUp))
	h.Send(keyType(tea.KeyEnter))
	snap := h.Model().Snapshot()
	if snap.Committed != ".h" || snap.ResultCount != 2 {
		t.Fatalf("expected recalled .h to run on enter, got %q with %d", snap.Committed, snap.ResultCount)
	}
	if hist := h.Model().History(); len(hist) != 3 || hist[2] != ".h" {
		t.Fatalf("expected .h appended to history, got %v", hist)
	}
}

func TestClearQueryShowsTopLevelNodes(t *testing.T) {
	h := newTestHarness(t, Options{})
	runQuery(h, ".h")
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlL})
	snap := h.Model().Snapshot()
	if snap.Committed != "" || snap.ResultCount != 4 {
		t.Fatalf("expected cleared query with 4 results, got %q with %d", snap.Committed, snap.ResultCount)
	}
}

func TestResultNavigationClamps(t *testing.T) {
	h := newTestHarness(t, Options{PageSize: 2})
	h.Send(keyRunes("j"))
	h.Send(keyType(tea.KeyDown))
	if sel := h.Model().Snapshot().Selected; sel != 2 {
		t.Fatalf("expected cursor 2, got %d", sel)
	}
	h.Send(keyType(tea.KeyPgDown))
	if sel := h.Model().Snapshot().Selected; sel != 3 {
		t.Fatalf("expected page down to clamp at 3, got %d", sel)
	}
	h.Send(keyType(tea.KeyPgUp))
	if sel := h.Model().Snapshot().Selected; sel != 1 {
		t.Fatalf("expected page up by 2 to reach 1, got %d", sel)
	}
	h.Send(keyType(tea.KeyEnd))
	h.Send(keyRunes("j"))
	if sel := h.Model().Snapshot().Selected; sel != 3 {
		t.Fatalf("expected end to stay clamped at 3, got %d", sel)
	}
	h.Send(keyType(tea.KeyHome))
	h.Send(keyRunes("k"))
	if sel := h.Model().Snapshot().Selected; sel != 0 {
		t.Fatalf("expected home to stay clamped at 0, got %d", sel)
	}

	runQuery(h, ".code")
	h.Send(keyRunes("j"))
	snap := h.Model().Snapshot()
	if snap.ResultCount != 0 || snap.Selected != 0 {
		t.Fatalf("expected navigation on empty list to be a no-op, got %d/%d", snap.Selected, snap.ResultCount)
	}
}

func TestQueryModeLettersAreText(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Send(keyRunes(":"))
	typeText(h, "jkq?t")
	snap := h.Model().Snapshot()
	if snap.Mode != ModeQuery || snap.Query != "jkq?t" {
		t.Fatalf("expected letters typed into the query, got %s %q", snap.Mode, snap.Query)
	}
	if snap.Selected != 0 {
		t.Fatalf("expected result cursor untouched, got %d", snap.Selected)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !h.Quit() {
		t.Fatalf("expected ctrl+c to quit from query mode")
	}
}

func TestQuitKeys(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Send(keyRunes("q"))
	if !h.Quit() {
		t.Fatalf("expected q to quit from normal mode")
	}

	h = newTestHarness(t, Options{})
	h.Send(keyType(tea.KeyEsc))
	if !h.Quit() {
		t.Fatalf("expected esc to quit from normal mode")
	}

	h = newTestHarness(t, Options{})
	h.Send(keyRunes("t"))
	h.Send(keyRunes("q"))
	if !h.Quit() {
		t.Fatalf("expected q to quit from tree mode")
	}
}

func TestTreeToggleAndPersistence(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Send(keyRunes("t"))
	snap := h.Model().Snapshot()
	if snap.Mode != ModeTree || len(snap.TreeRows) != 4 {
		t.Fatalf("expected 4 collapsed tree rows, got %s %d", snap.Mode, len(snap.TreeRows))
	}
	h.Send(keyType(tea.KeyEnd))
	list := h.Model().Snapshot().TreeRows[3]
	if list.Label != "▸ Unordered List (2 items)" {
		t.Fatalf("unexpected list label %q", list.Label)
	}

	h.Send(keyType(tea.KeyEnter))
	snap = h.Model().Snapshot()
	if len(snap.TreeRows) != 6 || !snap.TreeRows[3].Expanded {
		t.Fatalf("expected list expanded to 6 rows, got %d", len(snap.TreeRows))
	}
	if got := snap.TreeRows[5].Label; !strings.HasPrefix(got, "└── ") {
		t.Fatalf("expected last child branch, got %q", got)
	}

	h.Send(keyType(tea.KeyEsc))
	if mode := h.Model().Mode(); mode != ModeNormal {
		t.Fatalf("expected normal mode after esc, got %s", mode)
	}
	h.Send(keyRunes("t"))
	if rows := len(h.Model().Snapshot().TreeRows); rows != 6 {
		t.Fatalf("expected expansion kept between visits, got %d rows", rows)
	}
	h.Send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if rows := len(h.Model().Snapshot().TreeRows); rows != 4 {
		t.Fatalf("expected space to collapse, got %d rows", rows)
	}
	h.Send(keyRunes("t"))
	if mode := h.Model().Mode(); mode != ModeNormal {
		t.Fatalf("expected t to leave the tree, got %s", mode)
	}
}

func TestTreeExpandAllAndCollapseAll(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Send(keyRunes("t"))
	h.Send(keyRunes("E"))
	expanded := len(h.Model().Snapshot().TreeRows)
	if expanded <= 4 {
		t.Fatalf("expected expand all to reveal children, got %d rows", expanded)
	}
	h.Send(keyType(tea.KeyEnd))
	h.Send(keyRunes("C"))
	snap := h.Model().Snapshot()
	if len(snap.TreeRows) != 4 || snap.TreeSelected != 3 {
		t.Fatalf("expected selection on the list after collapse, got %d of %d", snap.TreeSelected, len(snap.TreeRows))
	}
}

func TestHelpReturnsToPreviousMode(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Send(keyRunes("?"))
	if mode := h.Model().Mode(); mode != ModeHelp {
		t.Fatalf("expected help mode, got %s", mode)
	}
	if view := h.View(); !strings.Contains(view, "Press any key to return") {
		t.Fatalf("expected help screen, got:\n%s", view)
	}
	h.Send(keyRunes("x"))
	if mode := h.Model().Mode(); mode != ModeNormal {
		t.Fatalf("expected normal mode, got %s", mode)
	}

	h.Send(keyRunes("t"))
	h.Send(keyType(tea.KeyF1))
	if mode := h.Model().Mode(); mode != ModeHelp {
		t.Fatalf("expected help from tree, got %s", mode)
	}
	h.Send(keyType(tea.KeyEnter))
	if mode := h.Model().Mode(); mode != ModeTree {
		t.Fatalf("expected tree mode restored, got %s", mode)
	}
}

func TestCopyWritesMarkdown(t *testing.T) {
	sink := &testutil.RecordingSink{}
	h := newTestHarness(t, Options{Sink: sink})
	runQuery(h, ".h")
	h.Send(keyRunes("y"))
	writes := sink.Writes()
	if len(writes) != 1 || writes[0] != "# Test Heading\n\n## Second Heading" {
		t.Fatalf("unexpected clipboard writes %q", writes)
	}
	if acquired, released := sink.Counts(); acquired != 1 || released != 1 {
		t.Fatalf("expected one scoped session, got %d/%d", acquired, released)
	}
	if snap := h.Model().Snapshot(); snap.Status != "Copied 2 results" || snap.Error {
		t.Fatalf("expected copy status, got %q", snap.Status)
	}
}

func TestCopyEmptyResultsSkipsSink(t *testing.T) {
	sink := &testutil.RecordingSink{}
	h := newTestHarness(t, Options{Sink: sink})
	runQuery(h, ".code")
	h.Send(keyRunes("y"))
	if acquired, _ := sink.Counts(); acquired != 0 {
		t.Fatalf("expected no clipboard access, got %d", acquired)
	}
	if snap := h.Model().Snapshot(); snap.Status != "Nothing to copy" || snap.Error {
		t.Fatalf("expected info status, got %q", snap.Status)
	}
}

func TestCopyFailuresShowStatus(t *testing.T) {
	cases := []struct {
		name string
		sink *testutil.RecordingSink
		want string
	}{
		{"access", &testutil.RecordingSink{AcquireErr: errors.New("no display")}, "Error: Could not access clipboard"},
		{"write", &testutil.RecordingSink{WriteErr: errors.New("broken pipe")}, "Error: Could not copy to clipboard"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestHarness(t, Options{Sink: tc.sink})
			h.Send(keyRunes("y"))
			snap := h.Model().Snapshot()
			if !snap.Error || snap.Status != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, snap.Status)
			}
			if snap.Mode != ModeNormal {
				t.Fatalf("expected session to continue in normal mode, got %s", snap.Mode)
			}
			if acquired, released := tc.sink.Counts(); tc.name == "write" && acquired != released {
				t.Fatalf("expected session released after write failure, got %d/%d", acquired, released)
			}
		})
	}
}

func TestCopyReleaseFailureStillReportsCopy(t *testing.T) {
	logToTempDir(t)
	sink := &testutil.RecordingSink{ReleaseErr: errors.New("still locked")}
	h := newTestHarness(t, Options{Sink: sink})
	runQuery(h, ".h")
	h.Send(keyRunes("y"))
	if writes := sink.Writes(); len(writes) != 1 {
		t.Fatalf("expected one clipboard write, got %q", writes)
	}
	if snap := h.Model().Snapshot(); snap.Error || snap.Status != "Copied 2 results" {
		t.Fatalf("expected copy reported after release failure, got %q (error %v)", snap.Status, snap.Error)
	}
}

func TestClipboardErrorMessageMapping(t *testing.T) {
	logToTempDir(t)
	m := NewModel(Options{Document: testutil.Document(t, testutil.Sample)})
	m.handleClipboardResultMsg(clipboardResultMsg{err: &clipboard.ClipboardError{Op: clipboard.OpCopy, Err: errors.New("x")}})
	if m.errMsg != "Error: Could not copy to clipboard" {
		t.Fatalf("expected copy failure message, got %q", m.errMsg)
	}
	m.errMsg = ""
	m.handleClipboardResultMsg(clipboardResultMsg{
		result: clipboard.Result{Items: 1},
		err:    &clipboard.ClipboardError{Op: clipboard.OpRelease, Err: errors.New("x")},
	})
	if m.errMsg != "" || m.currentInfo() != "Copied 1 result" {
		t.Fatalf("expected release errors to report the copy, got %q / %q", m.errMsg, m.currentInfo())
	}
}

func TestDetailPaneFollowsSelection(t *testing.T) {
	h := newTestHarness(t, Options{})
	if snap := h.Model().Snapshot(); snap.DetailVisible || snap.DetailMarkdown != "" {
		t.Fatalf("expected detail hidden initially")
	}
	h.Send(keyRunes("d"))
	snap := h.Model().Snapshot()
	if !snap.DetailVisible || snap.DetailMarkdown != "# Test Heading" {
		t.Fatalf("expected heading markdown, got %q", snap.DetailMarkdown)
	}
	h.Send(keyRunes("j"))
	if md := h.Model().Snapshot().DetailMarkdown; md != "This is a paragraph." {
		t.Fatalf("expected paragraph markdown, got %q", md)
	}
	runQuery(h, ".code")
	if md := h.Model().Snapshot().DetailMarkdown; md != noSelectionText {
		t.Fatalf("expected %q, got %q", noSelectionText, md)
	}
	h.Send(keyRunes("d"))
	if h.Model().Snapshot().DetailVisible {
		t.Fatalf("expected d to hide the detail pane")
	}
}

func TestDebouncedBurstEvaluatesOnlyLastQuery(t *testing.T) {
	eval := testutil.NewGatedEvaluator()
	h := newTestHarness(t, Options{Evaluator: eval, Debounce: 5 * time.Millisecond})
	h.Send(keyRunes(":"))
	first := h.Dispatch(keyRunes("."))
	h.Send(keyRunes("h"))
	h.Run(first)

	if calls := eval.Calls(); len(calls) != 1 || calls[0] != ".h" {
		t.Fatalf("expected only .h to be evaluated, got %v", calls)
	}
	if n := h.Model().Snapshot().ResultCount; n != 2 {
		t.Fatalf("expected 2 results, got %d", n)
	}
}

func TestReloadReplacesDocumentAndRequeries(t *testing.T) {
	h := newTestHarness(t, Options{})
	runQuery(h, ".h")
	h.Send(keyRunes("t"))
	h.Send(keyRunes("E"))

	doc := testutil.Document(t, "# A\n\n## B\n\n### C\n")
	h.Send(backendEventMsg{event: backend.Event{Path: "test.md", Doc: doc}})
	m := h.Model()
	if m.Document() != doc {
		t.Fatalf("expected reloaded document installed")
	}
	snap := m.Snapshot()
	if len(snap.TreeRows) != 3 || snap.TreeRows[0].Expanded {
		t.Fatalf("expected tree reset to collapsed roots, got %+v", snap.TreeRows)
	}
	if snap.ResultCount != 3 {
		t.Fatalf("expected committed query re-run on new document, got %d", snap.ResultCount)
	}

	h.Send(backendEventMsg{event: backend.Event{Path: "test.md", Err: errors.New("boom")}})
	snap = h.Model().Snapshot()
	if !snap.Error || snap.Status != "Reload failed: boom" {
		t.Fatalf("expected reload failure status, got %q", snap.Status)
	}
	if h.Model().Document() != doc {
		t.Fatalf("expected failed reload to keep the document")
	}
}

func waitForEvaluation(t *testing.T, eval *testutil.GatedEvaluator, q string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		for _, call := range eval.Calls() {
			if call == q {
				return
			}
		}
		if time.Now().After(deadline) {
			t.Fatalf("expected %q to be evaluated, got %v", q, eval.Calls())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestEscAfterQuickCommitEvaluatesCommittedQuery(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Send(keyRunes(":"))
	h.Send(keyRunes("."))
	held := h.Dispatch(keyRunes("h"))
	h.Send(keyType(tea.KeyEnter))
	h.Send(keyRunes(":"))
	h.Send(keyType(tea.KeyEsc))
	h.Run(held)

	snap := h.Model().Snapshot()
	if snap.Committed != ".h" {
		t.Fatalf("expected committed .h, got %q", snap.Committed)
	}
	got := summaries(snap.Results)
	if len(got) != 2 || got[0] != "H1 Test Heading" || got[1] != "H2 Second Heading" {
		t.Fatalf("expected .h results after esc, got %v", got)
	}
	if snap.Pending {
		t.Fatalf("expected no pending evaluation")
	}
}

func TestEscAfterReloadEvaluatesCommittedQuery(t *testing.T) {
	h := newTestHarness(t, Options{})
	runQuery(h, ".h")
	h.Send(keyRunes(":"))
	typeText(h, ".list")

	doc := testutil.Document(t, "# A\n\n## B\n\n- x\n")
	h.Send(backendEventMsg{event: backend.Event{Path: "test.md", Doc: doc}})
	if got := summaries(h.Model().Snapshot().Results); len(got) != 1 {
		t.Fatalf("expected the typed query re-run after reload, got %v", got)
	}
	h.Send(keyType(tea.KeyEsc))

	snap := h.Model().Snapshot()
	got := summaries(snap.Results)
	if snap.Committed != ".h" || len(got) != 2 || got[0] != "H1 A" || got[1] != "H2 B" {
		t.Fatalf("expected .h evaluated on the reloaded document, got %q %v", snap.Committed, got)
	}
}

func TestEnterOnUntouchedBufferKeepsCommittedQuery(t *testing.T) {
	h := newTestHarness(t, Options{})
	runQuery(h, ".h")
	h.Send(keyRunes(":"))
	h.Send(keyType(tea.KeyEnter))

	snap := h.Model().Snapshot()
	if snap.Committed != ".h" || snap.ResultCount != 2 {
		t.Fatalf("expected .h and its results kept, got %q with %d results", snap.Committed, snap.ResultCount)
	}
	if view := h.View(); !strings.Contains(view, "» .h") {
		t.Fatalf("expected committed query in prompt, got:\n%s", view)
	}

	h.Send(keyRunes(":"))
	h.Send(keyRunes("x"))
	h.Send(keyType(tea.KeyBackspace))
	h.Send(keyType(tea.KeyEnter))
	snap = h.Model().Snapshot()
	if snap.Committed != "" || snap.ResultCount != 4 {
		t.Fatalf("expected cleared query to list top-level nodes, got %q with %d results", snap.Committed, snap.ResultCount)
	}
}
