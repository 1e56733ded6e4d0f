// Package markdown turns Markdown source into a document.Document using
// goldmark with the GitHub-flavoured extensions.
package markdown

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/atomicstack/mqt/internal/document"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// ParseError reports a document that could not be loaded.
type ParseError struct {
	Name string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s:%d: %v", e.Name, e.Line, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Name, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

var parser = goldmark.New(goldmark.WithExtensions(extension.GFM)).Parser()

// Parse converts src into a document named name.
func Parse(name string, src []byte) (*document.Document, error) {
	if !utf8.Valid(src) {
		return nil, &ParseError{Name: name, Line: invalidUTF8Line(src), Err: fmt.Errorf("invalid UTF-8")}
	}
	b := document.NewBuilder(name, src)
	fm, err := splitFrontMatter(src)
	if err != nil {
		return nil, &ParseError{Name: name, Line: 1, Err: err}
	}
	if fm != nil {
		b.Add(document.NoNode, document.Node{
			Kind:  fm.kind,
			Value: fm.value,
			Text:  fm.value,
			Span:  document.Span{StartLine: 1, EndLine: fm.lines},
		})
	}
	body := src
	lineOffset := 0
	if fm != nil {
		body = src[fm.end:]
		lineOffset = fm.lines
	}
	root := parser.Parse(text.NewReader(body))
	c := &converter{
		b:          b,
		src:        body,
		lineStarts: lineStarts(body),
		lineOffset: lineOffset,
	}
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		c.block(document.NoNode, n, 0)
	}
	return b.Document(), nil
}

type converter struct {
	b          *document.Builder
	src        []byte
	lineStarts []int
	lineOffset int
}

// block converts a block-level node and returns its id and plain text.
func (c *converter) block(parent document.NodeID, n ast.Node, listDepth int) (document.NodeID, string) {
	switch node := n.(type) {
	case *ast.Heading:
		id := c.b.Add(parent, document.Node{Kind: document.KindHeading, Depth: node.Level, Span: c.linesSpan(node)})
		txt := c.inlines(id, node)
		c.b.Update(id, func(d *document.Node) { d.Text = txt })
		return id, txt
	case *ast.Paragraph, *ast.TextBlock:
		return c.paragraph(parent, n)
	case *ast.List:
		start := 0
		if node.IsOrdered() {
			start = node.Start
		}
		id := c.b.Add(parent, document.Node{Kind: document.KindList, Depth: listDepth, Ordered: node.IsOrdered(), Index: start})
		var parts []string
		i := 0
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			item, ok := child.(*ast.ListItem)
			if !ok {
				continue
			}
			_, txt := c.item(id, item, i, listDepth)
			parts = append(parts, txt)
			i++
		}
		txt := strings.Join(parts, " ")
		c.b.Update(id, func(d *document.Node) {
			d.Text = txt
			d.Span = c.childrenSpan(d.Children)
		})
		return id, txt
	case *ast.FencedCodeBlock:
		lang := string(node.Language(c.src))
		kind := document.KindCode
		if lang == "math" {
			kind = document.KindMath
			lang = ""
		}
		value := c.lines(node)
		span := c.linesSpan(node)
		if span.StartLine > 0 {
			span.StartLine--
			span.EndLine++
		}
		id := c.b.Add(parent, document.Node{Kind: kind, Lang: lang, Value: value, Text: value, Span: span})
		return id, value
	case *ast.CodeBlock:
		value := c.lines(node)
		id := c.b.Add(parent, document.Node{Kind: document.KindCode, Value: value, Text: value, Span: c.linesSpan(node)})
		return id, value
	case *ast.Blockquote:
		id := c.b.Add(parent, document.Node{Kind: document.KindBlockquote, Depth: listDepth})
		txt := c.children(id, node, listDepth)
		c.b.Update(id, func(d *document.Node) {
			d.Text = txt
			d.Span = c.childrenSpan(d.Children)
		})
		return id, txt
	case *ast.ThematicBreak:
		return c.b.Add(parent, document.Node{Kind: document.KindHR}), ""
	case *ast.HTMLBlock:
		value := c.lines(node)
		if node.HasClosure() {
			value += string(node.ClosureLine.Value(c.src))
		}
		id := c.b.Add(parent, document.Node{Kind: document.KindHTML, Value: value, Text: value, Span: c.linesSpan(node)})
		return id, value
	case *east.Table:
		id := c.b.Add(parent, document.Node{Kind: document.KindTable})
		var parts []string
		for row := node.FirstChild(); row != nil; row = row.NextSibling() {
			_, txt := c.row(id, row)
			parts = append(parts, txt)
		}
		txt := strings.Join(parts, " ")
		c.b.Update(id, func(d *document.Node) {
			d.Text = txt
			d.Span = c.childrenSpan(d.Children)
		})
		return id, txt
	}
	// Unknown block containers are flattened into their parent.
	var parts []string
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		_, txt := c.block(parent, child, listDepth)
		parts = append(parts, txt)
	}
	return document.NoNode, strings.Join(parts, " ")
}

func (c *converter) paragraph(parent document.NodeID, n ast.Node) (document.NodeID, string) {
	if value, ok := c.mathBlock(n); ok {
		id := c.b.Add(parent, document.Node{Kind: document.KindMath, Value: value, Text: value, Span: c.linesSpan(n)})
		return id, value
	}
	id := c.b.Add(parent, document.Node{Kind: document.KindParagraph, Span: c.linesSpan(n)})
	txt := c.inlines(id, n)
	c.b.Update(id, func(d *document.Node) { d.Text = txt })
	return id, txt
}

// mathBlock recognises paragraphs wrapped in $$ delimiters.
func (c *converter) mathBlock(n ast.Node) (string, bool) {
	raw := strings.TrimSpace(c.lines(n))
	if len(raw) < 4 || !strings.HasPrefix(raw, "$$") || !strings.HasSuffix(raw, "$$") {
		return "", false
	}
	return strings.TrimSpace(raw[2 : len(raw)-2]), true
}

func (c *converter) item(parent document.NodeID, n *ast.ListItem, index, listDepth int) (document.NodeID, string) {
	id := c.b.Add(parent, document.Node{Kind: document.KindItem, Depth: listDepth, Index: index})
	if first := n.FirstChild(); first != nil {
		if box, ok := first.FirstChild().(*east.TaskCheckBox); ok {
			c.b.Update(id, func(d *document.Node) {
				d.Task = true
				d.Checked = box.IsChecked
			})
		}
	}
	var parts []string
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		_, txt := c.block(id, child, listDepth+1)
		if txt != "" {
			parts = append(parts, txt)
		}
	}
	txt := strings.Join(parts, " ")
	c.b.Update(id, func(d *document.Node) {
		d.Text = txt
		d.Span = c.childrenSpan(d.Children)
	})
	return id, txt
}

func (c *converter) children(parent document.NodeID, n ast.Node, listDepth int) string {
	var parts []string
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if _, txt := c.block(parent, child, listDepth); txt != "" {
			parts = append(parts, txt)
		}
	}
	return strings.Join(parts, " ")
}

func (c *converter) row(parent document.NodeID, n ast.Node) (document.NodeID, string) {
	id := c.b.Add(parent, document.Node{Kind: document.KindTableRow})
	var parts []string
	for cell := n.FirstChild(); cell != nil; cell = cell.NextSibling() {
		cellID := c.b.Add(id, document.Node{Kind: document.KindTableCell, Span: c.linesSpan(cell)})
		txt := c.inlines(cellID, cell)
		c.b.Update(cellID, func(d *document.Node) { d.Text = txt })
		parts = append(parts, txt)
	}
	txt := strings.Join(parts, " ")
	c.b.Update(id, func(d *document.Node) {
		d.Text = txt
		d.Span = c.childrenSpan(d.Children)
	})
	return id, txt
}

// inlines converts the inline children of n under parent and returns their
// combined plain text.
func (c *converter) inlines(parent document.NodeID, n ast.Node) string {
	var b strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		b.WriteString(c.inline(parent, child))
	}
	return strings.TrimSpace(b.String())
}

func (c *converter) inline(parent document.NodeID, n ast.Node) string {
	switch node := n.(type) {
	case *ast.Text:
		value := string(node.Value(c.src))
		if node.SoftLineBreak() || node.HardLineBreak() {
			value += "\n"
		}
		c.b.Add(parent, document.Node{Kind: document.KindText, Value: value, Text: value, Span: c.segmentSpan(node.Segment)})
		return value
	case *ast.String:
		value := string(node.Value)
		c.b.Add(parent, document.Node{Kind: document.KindText, Value: value, Text: value})
		return value
	case *ast.Emphasis:
		kind := document.KindEmphasis
		if node.Level >= 2 {
			kind = document.KindStrong
		}
		return c.container(parent, n, document.Node{Kind: kind})
	case *east.Strikethrough:
		return c.container(parent, n, document.Node{Kind: document.KindDelete})
	case *ast.CodeSpan:
		var b bytes.Buffer
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			if t, ok := child.(*ast.Text); ok {
				b.Write(t.Value(c.src))
			}
		}
		value := b.String()
		c.b.Add(parent, document.Node{Kind: document.KindInlineCode, Value: value, Text: value})
		return value
	case *ast.Link:
		return c.container(parent, n, document.Node{
			Kind:  document.KindLink,
			URL:   string(node.Destination),
			Title: string(node.Title),
		})
	case *ast.AutoLink:
		label := string(node.Label(c.src))
		c.b.Add(parent, document.Node{Kind: document.KindLink, URL: string(node.URL(c.src)), Text: label})
		return label
	case *ast.Image:
		alt := c.plain(node)
		c.b.Add(parent, document.Node{
			Kind:  document.KindImage,
			URL:   string(node.Destination),
			Title: string(node.Title),
			Alt:   alt,
			Text:  alt,
		})
		return alt
	case *ast.RawHTML:
		var b bytes.Buffer
		for i := 0; i < node.Segments.Len(); i++ {
			seg := node.Segments.At(i)
			b.Write(seg.Value(c.src))
		}
		value := b.String()
		c.b.Add(parent, document.Node{Kind: document.KindHTML, Value: value, Text: value})
		return ""
	case *east.TaskCheckBox:
		return ""
	}
	var b strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		b.WriteString(c.inline(parent, child))
	}
	return b.String()
}

func (c *converter) container(parent document.NodeID, n ast.Node, node document.Node) string {
	id := c.b.Add(parent, node)
	var b strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		b.WriteString(c.inline(id, child))
	}
	txt := b.String()
	c.b.Update(id, func(d *document.Node) {
		d.Text = strings.TrimSpace(txt)
		d.Span = c.childrenSpan(d.Children)
	})
	return txt
}

// plain collects the text of inline descendants without adding nodes.
func (c *converter) plain(n ast.Node) string {
	var b bytes.Buffer
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch t := child.(type) {
		case *ast.Text:
			b.Write(t.Value(c.src))
		case *ast.String:
			b.Write(t.Value)
		default:
			b.WriteString(c.plain(child))
		}
	}
	return b.String()
}

func (c *converter) lines(n ast.Node) string {
	var b bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(c.src))
	}
	return b.String()
}

func (c *converter) linesSpan(n ast.Node) document.Span {
	lines := n.Lines()
	if lines == nil || lines.Len() == 0 {
		return document.Span{}
	}
	first := lines.At(0)
	last := lines.At(lines.Len() - 1)
	end := last.Stop - 1
	if end < last.Start {
		end = last.Start
	}
	return document.Span{StartLine: c.lineOf(first.Start), EndLine: c.lineOf(end)}
}

func (c *converter) segmentSpan(seg text.Segment) document.Span {
	line := c.lineOf(seg.Start)
	return document.Span{StartLine: line, EndLine: line}
}

func (c *converter) childrenSpan(ids []document.NodeID) document.Span {
	var span document.Span
	for _, id := range ids {
		n := c.b.Node(id)
		if n == nil || n.Span.StartLine == 0 {
			continue
		}
		if span.StartLine == 0 || n.Span.StartLine < span.StartLine {
			span.StartLine = n.Span.StartLine
		}
		if n.Span.EndLine > span.EndLine {
			span.EndLine = n.Span.EndLine
		}
	}
	return span
}

func (c *converter) lineOf(offset int) int {
	idx := sort.Search(len(c.lineStarts), func(i int) bool { return c.lineStarts[i] > offset })
	return idx + c.lineOffset
}

func lineStarts(src []byte) []int {
	starts := []int{0}
	for i, ch := range src {
		if ch == '\n' && i+1 < len(src) {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func invalidUTF8Line(src []byte) int {
	line := 1
	for len(src) > 0 {
		r, size := utf8.DecodeRune(src)
		if r == utf8.RuneError && size <= 1 {
			return line
		}
		if r == '\n' {
			line++
		}
		src = src[size:]
	}
	return line
}
