package ui

import (
	"path/filepath"
	"reflect"
	"time"

	"github.com/atomicstack/mqt/internal/backend"
	"github.com/atomicstack/mqt/internal/clipboard"
	"github.com/atomicstack/mqt/internal/document"
	"github.com/atomicstack/mqt/internal/history"
	"github.com/atomicstack/mqt/internal/logging/events"
	"github.com/atomicstack/mqt/internal/query"
	"github.com/atomicstack/mqt/internal/theme"
	"github.com/atomicstack/mqt/internal/ui/command"
	uistate "github.com/atomicstack/mqt/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

// Mode is the interaction mode of the session.
type Mode int

const (
	ModeNormal Mode = iota
	ModeQuery
	ModeTree
	ModeHelp
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeQuery:
		return "query"
	case ModeTree:
		return "tree"
	case ModeHelp:
		return "help"
	}
	return "unknown"
}

const headerSeparator = "→"

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a session model.
type Options struct {
	Document   *document.Document
	Evaluator  query.Evaluator
	Sink       clipboard.Sink
	Watcher    *backend.Watcher
	Debounce   time.Duration
	PageSize   int
	ShowDetail bool
	Width      int
	Height     int
}

// Model implements the Bubble Tea model for the query session.
type Model struct {
	doc  *document.Document
	mode Mode
	// helpReturn is the mode restored when help is dismissed.
	helpReturn Mode
	keys       keyMap

	input      uistate.QueryInput
	inputDirty bool
	// inputEdited is set once the buffer changes during a query session.
	inputEdited bool
	committed  string
	// snapshot and savedCommitted hold the state restored by esc in query mode.
	snapshot       uistate.ResultSnapshot
	savedCommitted string
	// snapshotStale means the snapshot does not hold the result of
	// savedCommitted, so esc must evaluate it again.
	snapshotStale bool

	results  *uistate.ResultList
	tree     *uistate.TreeView
	history  *history.Buffer
	pipeline *query.Pipeline
	exporter *clipboard.Exporter
	bus      *command.Bus
	backend  *backend.Watcher

	showDetail bool
	detail     detailPane

	errMsg      string
	infoMsg     string
	infoExpire  time.Time
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool

	filterCursor      cursor.Model
	filterCursorDirty bool

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the session in normal mode, listing the document's
// top-level nodes.
func NewModel(opts Options) *Model {
	eval := opts.Evaluator
	if eval == nil {
		eval = query.NewEngineEvaluator()
	}
	sink := opts.Sink
	if sink == nil {
		sink = clipboard.SystemSink{}
	}
	m := &Model{
		doc:        opts.Document,
		mode:       ModeNormal,
		helpReturn: ModeNormal,
		keys:       defaultKeyMap(),
		results:    uistate.NewResultList(opts.PageSize),
		history:    history.New(),
		pipeline:   query.New(eval, opts.Debounce),
		exporter:   clipboard.NewExporter(sink),
		bus:        command.New(),
		backend:    opts.Watcher,
		showDetail: opts.ShowDetail,
	}
	m.results.Replace(rootItems(m.doc))
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.registerHandlers()
	return m
}

func rootItems(doc *document.Document) []query.ResultItem {
	if doc == nil {
		return nil
	}
	roots := doc.Roots()
	items := make([]query.ResultItem, 0, len(roots))
	for _, id := range roots {
		items = append(items, query.NodeItem(doc, id))
	}
	return items
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):          m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):        m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):   m.handleWindowSizeMsg,
		reflect.TypeOf(query.DispatchMsg{}):   m.handleDispatchMsg,
		reflect.TypeOf(query.ResultMsg{}):     m.handleResultMsg,
		reflect.TypeOf(clipboardResultMsg{}):  m.handleClipboardResultMsg,
		reflect.TypeOf(backendEventMsg{}):     m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):      m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) setMode(mode Mode) {
	if m.mode == mode {
		return
	}
	events.Mode.Change(m.mode.String(), mode.String())
	m.mode = mode
}

// Mode reports the current interaction mode.
func (m *Model) Mode() Mode {
	return m.mode
}

// Document returns the document the session is querying.
func (m *Model) Document() *document.Document {
	return m.doc
}

// History returns the queries recorded during the session.
func (m *Model) History() []string {
	return m.history.Entries()
}

func (m *Model) documentName() string {
	if m.doc == nil || m.doc.Name == "" {
		return "mqt"
	}
	return filepath.Base(m.doc.Name)
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) clearInfo() {
	if m.infoMsg == "" {
		return
	}
	if !m.infoExpire.IsZero() && time.Now().Before(m.infoExpire) {
		return
	}
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}
