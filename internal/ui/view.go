package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/mqt/internal/document"
	"github.com/atomicstack/mqt/internal/logging/events"
	"github.com/atomicstack/mqt/internal/theme"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// bottomBarRows is the status line plus the query prompt.
const bottomBarRows = 2

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// hasSideDetail reports whether the detail pane is drawn to the right of the
// list rather than stacked below it.
func (m *Model) hasSideDetail() bool {
	return m.showDetail && m.mode != ModeHelp && m.detailPanelWidth() > 0
}

// detailPanelWidth returns the width in columns for the right-hand detail
// panel. Returns 0 when the terminal is too narrow to split.
func (m *Model) detailPanelWidth() int {
	if m.width <= 0 {
		return 0
	}
	w := int(float64(m.width) * detailPanelFraction)
	if w < detailPanelMinWidth {
		return 0
	}
	return w
}

// listColumnWidth returns the width available for the left-hand list.
func (m *Model) listColumnWidth() int {
	if !m.hasSideDetail() {
		return m.width
	}
	return m.width - m.detailPanelWidth()
}

// View implements tea.Model.
func (m *Model) View() string {
	header := m.header()
	if m.mode == ModeHelp {
		return m.viewHelp(header)
	}
	if m.hasSideDetail() {
		return m.viewSideBySide(header)
	}
	return m.viewVertical(header)
}

func (m *Model) viewHelp(header string) string {
	lines := []styledLine{{text: header, style: styles.Header}}
	lines = append(lines, m.helpLines()...)
	lines = limitHeight(lines, m.height, m.width)
	return renderLines(applyWidth(lines, m.width))
}

// viewVertical is the single-column layout, with the detail pane stacked
// below the list when it is visible.
func (m *Model) viewVertical(header string) string {
	lines := make([]styledLine, 0, 32)
	lines = append(lines, styledLine{text: header, style: styles.Header})
	lines = append(lines, m.listLines(m.width)...)
	if m.showDetail {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: m.detailTitle(), style: styles.PreviewTitle})
		content, rendered := m.detailLines(m.width)
		m.detail.clampScroll(detailMaxStackedLines)
		start := m.detail.scroll
		if start > len(content) {
			start = len(content)
		}
		end := start + detailMaxStackedLines
		if end > len(content) {
			end = len(content)
		}
		for _, line := range content[start:end] {
			if rendered {
				lines = append(lines, styledLine{text: line, raw: true})
			} else {
				lines = append(lines, styledLine{text: line, style: styles.PreviewBody})
			}
		}
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	lines = limitHeight(lines, m.height-bottomBarRows, m.width)
	lines = applyWidth(lines, m.width)
	return renderLines(lines) + "\n" + m.bottomBar()
}

// viewSideBySide renders the list on the left and the detail panel on the
// right.
func (m *Model) viewSideBySide(header string) string {
	listW := m.listColumnWidth()
	detailW := m.detailPanelWidth()

	contentLines := make([]styledLine, 0, 32)
	contentLines = append(contentLines, styledLine{text: header, style: styles.Header})
	contentLines = append(contentLines, m.listLines(listW)...)
	if info := m.currentInfo(); info != "" {
		contentLines = append(contentLines, styledLine{})
		contentLines = append(contentLines, styledLine{text: info, style: styles.Info})
	}

	panelH := m.height - bottomBarRows
	if panelH < 3 {
		panelH = 3
	}
	if len(contentLines) > panelH {
		contentLines = contentLines[:panelH]
	}
	for len(contentLines) < panelH {
		contentLines = append(contentLines, styledLine{})
	}
	contentLines = applyWidth(contentLines, listW)
	leftRows := strings.Split(renderLines(contentLines), "\n")
	for i, row := range leftRows {
		w := lipgloss.Width(row)
		if w > listW {
			leftRows[i] = truncate.StringWithTail(row, uint(listW-1), "…")
		} else if w < listW {
			leftRows[i] = row + strings.Repeat(" ", listW-w)
		}
	}
	leftStr := strings.Join(leftRows, "\n")
	rightStr := m.renderDetailPanel(detailW, panelH)

	top := lipgloss.JoinHorizontal(lipgloss.Top, leftStr, rightStr)
	return top + "\n" + m.bottomBar()
}

func (m *Model) bottomBar() string {
	var statusLine styledLine
	if m.errMsg != "" {
		statusLine = styledLine{text: m.errMsg, style: styles.Error}
	}
	lines := applyWidth([]styledLine{statusLine}, m.width)
	// The prompt is already styled, so it is truncated ANSI-aware.
	prompt := styledLine{text: m.filterPrompt(), raw: true}
	lines = append(lines, applyWidth([]styledLine{prompt}, m.width)...)
	return renderLines(lines)
}

func (m *Model) listLines(width int) []styledLine {
	if m.mode == ModeTree {
		return m.treeLines(width)
	}
	if m.results.Len() == 0 {
		msg := "(no results)"
		if m.committed != "" && m.mode == ModeNormal {
			msg = fmt.Sprintf("No results for %q", m.committed)
		}
		return []styledLine{{text: msg, style: styles.Info}}
	}
	items, start := m.results.Visible(m.maxVisibleItems())
	lines := make([]styledLine, 0, len(items))
	for i, item := range items {
		lines = append(lines, m.buildItemLine(item.Summary, item.Kind, start+i, width))
	}
	return lines
}

// buildItemLine constructs a single styledLine for a result row. When width
// is positive the text is padded so the selected row's background spans the
// whole column.
func (m *Model) buildItemLine(label string, kind document.Kind, idx, width int) styledLine {
	indicator := "▌"
	lineStyle := theme.Kind(kind)
	indicatorStyle := styles.ItemIndicator
	fullText := indicator + " " + label
	if idx == m.results.Cursor {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
		fullText = padText(fullText, width)
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1, // just the ▌ character
	}
}

func padText(text string, width int) string {
	if width <= 0 {
		return text
	}
	if pad := width - len([]rune(text)); pad > 0 {
		return text + strings.Repeat(" ", pad)
	}
	return text
}

// renderDetailPanel builds the bordered detail box as a string with exactly
// height rows and totalWidth columns.
func (m *Model) renderDetailPanel(totalWidth, height int) string {
	const (
		tlc = "╭"
		trc = "╮"
		blc = "╰"
		brc = "╯"
		hz  = "─"
		vt  = "│"
	)
	border := styles.PreviewBorder
	innerW := totalWidth - 2
	innerH := height - 2
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}

	content, rendered := m.detailLines(innerW)
	scrollInfo := ""
	if _, ok := m.detailMarkdown(); ok && len(content) > 0 {
		m.detail.clampScroll(innerH)
		end := m.detail.scroll + innerH
		if end > len(content) {
			end = len(content)
		}
		content = content[m.detail.scroll:end]
		scrollInfo = fmt.Sprintf(" %d/%d ", m.detail.scroll+len(content), len(m.detail.lines))
	}

	titleSeg := " " + m.detailTitle() + " "
	scrollSeg := scrollInfo
	dashes := totalWidth - 4 - lipgloss.Width(titleSeg) - lipgloss.Width(scrollSeg)
	if dashes < 0 {
		scrollSeg = ""
		dashes = totalWidth - 4 - lipgloss.Width(titleSeg)
	}
	if dashes < 0 {
		titleSeg = truncateText(titleSeg, totalWidth-4)
		dashes = totalWidth - 4 - lipgloss.Width(titleSeg)
	}
	if dashes < 0 {
		dashes = 0
	}
	topLine := border.Render(tlc+hz) +
		styles.PreviewTitle.Render(titleSeg) +
		border.Render(strings.Repeat(hz, dashes)) +
		styles.PreviewScroll.Render(scrollSeg) +
		border.Render(hz+trc)
	bottomLine := border.Render(blc + strings.Repeat(hz, innerW) + brc)

	rows := make([]string, 0, height)
	rows = append(rows, topLine)
	for i := 0; i < innerH; i++ {
		var line string
		if i < len(content) {
			line = content[i]
		}
		w := lipgloss.Width(line)
		if w > innerW {
			line = truncate.StringWithTail(line, uint(innerW-1), "…")
			w = lipgloss.Width(line)
		}
		if w < innerW {
			line += strings.Repeat(" ", innerW-w)
		}
		if !rendered {
			line = styles.PreviewBody.Render(line)
		}
		rows = append(rows, border.Render(vt)+line+border.Render(vt))
	}
	rows = append(rows, bottomLine)
	return strings.Join(rows, "\n")
}

func (m *Model) header() string {
	return strings.Join(m.headerSegments(), headerSeparator)
}

func (m *Model) headerSegments() []string {
	segments := []string{m.documentName()}
	switch m.mode {
	case ModeTree:
		segments = append(segments, "tree")
	case ModeHelp:
		segments = append(segments, "help")
	case ModeQuery:
		segments = append(segments, "query")
	default:
		segments = append(segments, "results")
	}
	last := fmt.Sprintf("%s (%d)", segments[len(segments)-1], m.results.Len())
	if m.mode == ModeTree && m.tree != nil {
		last = fmt.Sprintf("tree (%d)", m.tree.Len())
	}
	if m.pipeline.Pending() && m.mode != ModeTree {
		last += " running…"
	}
	segments[len(segments)-1] = last
	return segments
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	events.UI.Resize(m.width, m.height)
	m.syncResultViewport()
	m.syncTreeViewport()
	return nil
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := bottomBarRows + 1 // header
	if info := m.currentInfo(); info != "" {
		used += 2
	}
	if m.showDetail && !m.hasSideDetail() {
		used += 2 + detailMaxStackedLines // blank separator + title + body
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if lipgloss.Width(text) > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		line.text = text
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
