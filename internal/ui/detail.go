package ui

import (
	"strings"

	"github.com/atomicstack/mqt/internal/logging"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"
)

const (
	detailMaxStackedLines = 12  // detail rows shown below the list when there is no room for a side panel
	detailPanelMinWidth   = 40  // minimum cols for the side panel; below this the detail stacks
	detailPanelFraction   = 0.6 // fraction of total width given to the side panel
	detailStyle           = "dark"
	detailWheelStep       = 3
	noSelectionText       = "No item selected"
)

// detailPane renders the Markdown of the selected item. Rendered output is
// cached per source and width; glamour renderers are cached per width.
type detailPane struct {
	scroll    int
	source    string
	width     int
	lines     []string
	rendered  bool
	renderers map[int]*glamour.TermRenderer
}

func (d *detailPane) resetScroll() {
	d.scroll = 0
}

// render returns the display lines for markdown wrapped to width. The bool
// reports whether the lines carry ANSI styling.
func (d *detailPane) render(markdown string, width int) ([]string, bool) {
	if width < 1 {
		width = 1
	}
	if d.lines != nil && d.source == markdown && d.width == width {
		return d.lines, d.rendered
	}
	d.source = markdown
	d.width = width
	out, err := d.glamour(markdown, width)
	if err != nil {
		logging.Error(err)
		d.lines = strings.Split(wordwrap.String(markdown, width), "\n")
		d.rendered = false
		return d.lines, d.rendered
	}
	d.lines = strings.Split(strings.Trim(out, "\n"), "\n")
	d.rendered = true
	return d.lines, d.rendered
}

func (d *detailPane) glamour(markdown string, width int) (string, error) {
	if d.renderers == nil {
		d.renderers = make(map[int]*glamour.TermRenderer)
	}
	r, ok := d.renderers[width]
	if !ok {
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithStylePath(detailStyle),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", err
		}
		d.renderers[width] = r
	}
	return r.Render(markdown)
}

// clampScroll keeps the offset inside the rendered content for a window of
// height rows.
func (d *detailPane) clampScroll(height int) {
	maxOffset := len(d.lines) - height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if d.scroll > maxOffset {
		d.scroll = maxOffset
	}
	if d.scroll < 0 {
		d.scroll = 0
	}
}

// detailMarkdown is the Markdown source of the focused row: the selected
// tree node in tree mode, the selected result otherwise.
func (m *Model) detailMarkdown() (string, bool) {
	if m.mode == ModeTree && m.tree != nil {
		id, ok := m.tree.Selected()
		if !ok {
			return "", false
		}
		return m.doc.Markdown(id), true
	}
	item, ok := m.results.Selected()
	if !ok {
		return "", false
	}
	return item.Markdown(m.doc), true
}

func (m *Model) detailTitle() string {
	if m.mode == ModeTree && m.tree != nil {
		if id, ok := m.tree.Selected(); ok {
			return m.doc.Summary(id)
		}
		return "Detail"
	}
	if item, ok := m.results.Selected(); ok {
		return item.Summary
	}
	return "Detail"
}

// detailLines returns the detail content wrapped to width.
func (m *Model) detailLines(width int) ([]string, bool) {
	markdown, ok := m.detailMarkdown()
	if !ok {
		m.detail.resetScroll()
		return []string{noSelectionText}, false
	}
	return m.detail.render(markdown, width)
}

func (m *Model) scrollDetail(delta int) {
	if !m.showDetail {
		return
	}
	m.detailLines(m.detailWidth())
	m.detail.scroll += delta
	m.detail.clampScroll(m.detailHeight())
}

// detailWidth is the number of content columns the detail pane shows.
func (m *Model) detailWidth() int {
	if m.hasSideDetail() {
		return m.detailPanelWidth() - 2
	}
	if m.width <= 0 {
		return 80
	}
	return m.width
}

// detailHeight is the number of content rows the detail pane shows.
func (m *Model) detailHeight() int {
	if m.hasSideDetail() {
		h := m.height - bottomBarRows - 2
		if h < 1 {
			h = 1
		}
		return h
	}
	return detailMaxStackedLines
}

// handleMouseMsg scrolls the detail pane with the mouse wheel.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok || !m.showDetail {
		return nil
	}
	switch ev.Button {
	case tea.MouseButtonWheelUp:
		m.scrollDetail(-detailWheelStep)
	case tea.MouseButtonWheelDown:
		m.scrollDetail(detailWheelStep)
	}
	return nil
}
