package document

import (
	"fmt"
	"strings"
)

const summaryTextLimit = 47

// Summary returns the one-line display form used by list and tree rows.
func (d *Document) Summary(id NodeID) string {
	n := d.Node(id)
	if n == nil {
		return ""
	}
	switch n.Kind {
	case KindHeading:
		return fmt.Sprintf("H%d %s", n.Depth, n.Text)
	case KindList:
		kind := "Unordered"
		if n.Ordered {
			kind = "Ordered"
		}
		return fmt.Sprintf("%s List (%d items)", kind, len(n.Children))
	case KindItem:
		prefix := "Item: "
		if n.Task {
			if n.Checked {
				prefix += "[x] "
			} else {
				prefix += "[ ] "
			}
		}
		return prefix + clip(n.Text)
	case KindCode:
		if n.Lang != "" {
			return fmt.Sprintf("Code Block (%s)", n.Lang)
		}
		return "Code Block"
	case KindBlockquote:
		return "Blockquote"
	case KindLink:
		return "Link: " + n.Text
	case KindImage:
		return "Image: " + n.Alt
	case KindText, KindParagraph:
		return "Text: " + clip(n.Text)
	case KindHR:
		return "Horizontal Rule"
	case KindTable:
		return fmt.Sprintf("Table (%d rows)", len(n.Children))
	case KindTableRow:
		return "Table Row"
	case KindTableCell:
		return "Cell: " + clip(n.Text)
	case KindMath:
		return "Math: " + firstLine(n.Value)
	case KindInlineCode:
		return "Inline Code: " + n.Value
	case KindYAML:
		return "YAML: " + firstLine(n.Value)
	case KindTOML:
		return "TOML: " + firstLine(n.Value)
	case KindHTML:
		return "HTML: " + firstLine(n.Value)
	case KindStrong:
		return "Strong: " + clip(n.Text)
	case KindEmphasis:
		return "Emphasis: " + clip(n.Text)
	case KindDelete:
		return "Delete: " + clip(n.Text)
	}
	return clip(n.Text)
}

func clip(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= summaryTextLimit {
		return text
	}
	return string(runes[:summaryTextLimit]) + "..."
}

func firstLine(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return text[:idx]
	}
	return text
}
