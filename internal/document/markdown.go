package document

import (
	"fmt"
	"strings"
)

// Markdown serialises the node back to Markdown source form.
func (d *Document) Markdown(id NodeID) string {
	n := d.Node(id)
	if n == nil {
		return ""
	}
	switch n.Kind {
	case KindHeading:
		depth := n.Depth
		if depth < 1 {
			depth = 1
		}
		return strings.Repeat("#", depth) + " " + d.inline(n)
	case KindParagraph, KindTableCell:
		return d.inline(n)
	case KindText:
		return n.Value
	case KindStrong:
		return "**" + d.inline(n) + "**"
	case KindEmphasis:
		return "*" + d.inline(n) + "*"
	case KindDelete:
		return "~~" + d.inline(n) + "~~"
	case KindInlineCode:
		return "`" + n.Value + "`"
	case KindLink:
		return "[" + d.inline(n) + "](" + destination(n.URL, n.Title) + ")"
	case KindImage:
		return "![" + n.Alt + "](" + destination(n.URL, n.Title) + ")"
	case KindCode:
		return "```" + n.Lang + "\n" + withNewline(n.Value) + "```"
	case KindMath:
		return "$$\n" + withNewline(n.Value) + "$$"
	case KindHTML:
		return strings.TrimRight(n.Value, "\n")
	case KindHR:
		return "---"
	case KindYAML:
		return "---\n" + withNewline(n.Value) + "---"
	case KindTOML:
		return "+++\n" + withNewline(n.Value) + "+++"
	case KindBlockquote:
		return prefixLines(d.blocks(n, "\n\n"), "> ", ">")
	case KindList:
		items := make([]string, 0, len(n.Children))
		for _, child := range n.Children {
			items = append(items, d.Markdown(child))
		}
		return strings.Join(items, "\n")
	case KindItem:
		return d.item(n)
	case KindTable:
		return d.table(n)
	case KindTableRow:
		return d.row(n)
	}
	return n.Text
}

func (d *Document) inline(n *Node) string {
	if len(n.Children) == 0 {
		return n.Text
	}
	var b strings.Builder
	for _, child := range n.Children {
		b.WriteString(d.Markdown(child))
	}
	return b.String()
}

func (d *Document) blocks(n *Node, sep string) string {
	parts := make([]string, 0, len(n.Children))
	for _, child := range n.Children {
		parts = append(parts, d.Markdown(child))
	}
	return strings.Join(parts, sep)
}

func (d *Document) item(n *Node) string {
	marker := "- "
	if parent := d.Node(n.Parent); parent != nil && parent.Ordered {
		marker = fmt.Sprintf("%d. ", parent.Index+n.Index)
	}
	if n.Task {
		if n.Checked {
			marker += "[x] "
		} else {
			marker += "[ ] "
		}
	}
	body := d.blocks(n, "\n")
	indent := strings.Repeat(" ", len(marker))
	lines := strings.Split(body, "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = indent + lines[i]
		}
	}
	return marker + strings.Join(lines, "\n")
}

func (d *Document) table(n *Node) string {
	rows := make([]string, 0, len(n.Children)+1)
	for i, child := range n.Children {
		rows = append(rows, d.Markdown(child))
		if i == 0 {
			cells := 0
			if row := d.Node(child); row != nil {
				cells = len(row.Children)
			}
			rows = append(rows, "|"+strings.Repeat(" --- |", cells))
		}
	}
	return strings.Join(rows, "\n")
}

func (d *Document) row(n *Node) string {
	var b strings.Builder
	b.WriteString("|")
	for _, child := range n.Children {
		b.WriteString(" ")
		b.WriteString(d.Markdown(child))
		b.WriteString(" |")
	}
	return b.String()
}

func destination(url, title string) string {
	if title == "" {
		return url
	}
	return fmt.Sprintf("%s %q", url, title)
}

func withNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

func prefixLines(text, prefix, empty string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = empty
			continue
		}
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
