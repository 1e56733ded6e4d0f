package engine

import (
	"sort"
	"strconv"

	"github.com/atomicstack/mqt/internal/document"
)

type matcher func(*document.Node) bool

func kindIs(kind document.Kind) matcher {
	return func(n *document.Node) bool { return n.Kind == kind }
}

func headingLevel(level int) matcher {
	return func(n *document.Node) bool { return n.Kind == document.KindHeading && n.Depth == level }
}

var selectors = map[string]matcher{
	"h":           kindIs(document.KindHeading),
	"heading":     kindIs(document.KindHeading),
	"paragraph":   kindIs(document.KindParagraph),
	"text":        kindIs(document.KindText),
	"strong":      kindIs(document.KindStrong),
	"emphasis":    kindIs(document.KindEmphasis),
	"delete":      kindIs(document.KindDelete),
	"inline_code": kindIs(document.KindInlineCode),
	"link":        kindIs(document.KindLink),
	"image":       kindIs(document.KindImage),
	"code":        kindIs(document.KindCode),
	"math":        kindIs(document.KindMath),
	"blockquote":  kindIs(document.KindBlockquote),
	"list":        kindIs(document.KindList),
	"item":        kindIs(document.KindItem),
	"hr":          kindIs(document.KindHR),
	"html":        kindIs(document.KindHTML),
	"table":       kindIs(document.KindTable),
	"table_row":   kindIs(document.KindTableRow),
	"table_cell":  kindIs(document.KindTableCell),
	"yaml":        kindIs(document.KindYAML),
	"toml":        kindIs(document.KindTOML),
}

func init() {
	for level := 1; level <= 6; level++ {
		selectors["h"+strconv.Itoa(level)] = headingLevel(level)
	}
}

type attribute func(doc *document.Document, n *document.Node) Value

func optionalString(s string) Value {
	if s == "" {
		return null
	}
	return stringValue(s)
}

var attributes = map[string]attribute{
	"depth": func(_ *document.Document, n *document.Node) Value { return numberValue(float64(n.Depth)) },
	"level": func(_ *document.Document, n *document.Node) Value { return numberValue(float64(n.Depth)) },
	"value": func(doc *document.Document, n *document.Node) Value {
		return stringValue(nodeValue(n.ID).Text(doc))
	},
	"lang":  func(_ *document.Document, n *document.Node) Value { return optionalString(n.Lang) },
	"url":   func(_ *document.Document, n *document.Node) Value { return optionalString(n.URL) },
	"title": func(_ *document.Document, n *document.Node) Value { return optionalString(n.Title) },
	"alt":   func(_ *document.Document, n *document.Node) Value { return optionalString(n.Alt) },
	"ordered": func(_ *document.Document, n *document.Node) Value {
		if n.Kind != document.KindList {
			return null
		}
		return boolValue(n.Ordered)
	},
	"checked": func(_ *document.Document, n *document.Node) Value {
		if !n.Task {
			return null
		}
		return boolValue(n.Checked)
	},
	"index": func(_ *document.Document, n *document.Node) Value { return numberValue(float64(n.Index)) },
	"type":  func(_ *document.Document, n *document.Node) Value { return stringValue(string(n.Kind)) },
	"line":  func(_ *document.Document, n *document.Node) Value { return numberValue(float64(n.Span.StartLine)) },
}

// fieldNames lists every ".name" form accepted by the parser.
func fieldNames() []string {
	names := make([]string, 0, len(selectors)+len(attributes))
	for name := range selectors {
		names = append(names, "."+name)
	}
	for name := range attributes {
		names = append(names, "."+name)
	}
	sort.Strings(names)
	return names
}

func functionNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
