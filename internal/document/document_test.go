package document

import (
	"strings"
	"testing"
)

func buildSample() *Document {
	b := NewBuilder("sample.md", nil)
	h := b.Add(NoNode, Node{Kind: KindHeading, Depth: 1, Text: "Title"})
	b.Add(h, Node{Kind: KindText, Text: "Title", Value: "Title"})
	list := b.Add(NoNode, Node{Kind: KindList, Ordered: true, Index: 3, Text: "one two"})
	first := b.Add(list, Node{Kind: KindItem, Index: 0, Text: "one"})
	p := b.Add(first, Node{Kind: KindParagraph, Text: "one"})
	b.Add(p, Node{Kind: KindText, Text: "one", Value: "one"})
	second := b.Add(list, Node{Kind: KindItem, Index: 1, Text: "two"})
	p2 := b.Add(second, Node{Kind: KindParagraph, Text: "two"})
	b.Add(p2, Node{Kind: KindLink, Text: "two", URL: "https://example.com"})
	return b.Document()
}

func TestBuilderLinksParentsAndRoots(t *testing.T) {
	doc := buildSample()
	if len(doc.Roots()) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(doc.Roots()))
	}
	list := doc.Node(doc.Roots()[1])
	if list.Kind != KindList {
		t.Fatalf("expected list root, got %s", list.Kind)
	}
	if len(list.Children) != 2 {
		t.Fatalf("expected 2 items, got %d", len(list.Children))
	}
	item := doc.Node(list.Children[0])
	if item.Parent != list.ID {
		t.Fatalf("expected item parent %d, got %d", list.ID, item.Parent)
	}
	if doc.Node(NodeID(99)) != nil {
		t.Fatalf("expected nil for unknown node")
	}
	var nilDoc *Document
	if nilDoc.Len() != 0 || nilDoc.Node(0) != nil {
		t.Fatalf("expected nil document to be empty")
	}
}

func TestWalkVisitsPreorder(t *testing.T) {
	doc := buildSample()
	var kinds []string
	doc.Walk(doc.Roots()[1], func(n *Node) bool {
		kinds = append(kinds, string(n.Kind))
		return true
	})
	got := strings.Join(kinds, ",")
	want := "list,item,paragraph,text,item,paragraph,link"
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestIsAncestor(t *testing.T) {
	doc := buildSample()
	list := doc.Roots()[1]
	link := NodeID(doc.Len() - 1)
	if !doc.IsAncestor(list, link) {
		t.Fatalf("expected list to be ancestor of link")
	}
	if doc.IsAncestor(link, list) {
		t.Fatalf("expected link not to be ancestor of list")
	}
	if doc.IsAncestor(list, list) {
		t.Fatalf("expected a node not to be its own ancestor")
	}
}

func TestMarkdownSerialisesOrderedListWithStart(t *testing.T) {
	doc := buildSample()
	got := doc.Markdown(doc.Roots()[1])
	want := "3. one\n4. [two](https://example.com)"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if heading := doc.Markdown(doc.Roots()[0]); heading != "# Title" {
		t.Fatalf("expected heading markdown, got %q", heading)
	}
}

func TestMarkdownBlockKinds(t *testing.T) {
	b := NewBuilder("blocks.md", nil)
	code := b.Add(NoNode, Node{Kind: KindCode, Lang: "go", Value: "fmt.Println()"})
	quote := b.Add(NoNode, Node{Kind: KindBlockquote})
	qp := b.Add(quote, Node{Kind: KindParagraph, Text: "quoted"})
	b.Add(qp, Node{Kind: KindText, Value: "quoted", Text: "quoted"})
	b.Add(quote, Node{Kind: KindParagraph, Text: "again"})
	math := b.Add(NoNode, Node{Kind: KindMath, Value: "x^2"})
	img := b.Add(NoNode, Node{Kind: KindImage, Alt: "logo", URL: "logo.png", Title: "Logo"})
	doc := b.Document()

	cases := []struct {
		id   NodeID
		want string
	}{
		{code, "```go\nfmt.Println()\n```"},
		{quote, "> quoted\n>\n> again"},
		{math, "$$\nx^2\n$$"},
		{img, "![logo](logo.png \"Logo\")"},
	}
	for _, tc := range cases {
		if got := doc.Markdown(tc.id); got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}

func TestSummaryForms(t *testing.T) {
	long := strings.Repeat("a", 60)
	b := NewBuilder("summary.md", nil)
	h := b.Add(NoNode, Node{Kind: KindHeading, Depth: 2, Text: "Second"})
	list := b.Add(NoNode, Node{Kind: KindList})
	b.Add(list, Node{Kind: KindItem, Text: "x"})
	text := b.Add(NoNode, Node{Kind: KindText, Text: long})
	code := b.Add(NoNode, Node{Kind: KindCode, Lang: "rust"})
	doc := b.Document()

	if got := doc.Summary(h); got != "H2 Second" {
		t.Fatalf("expected heading summary, got %q", got)
	}
	if got := doc.Summary(list); got != "Unordered List (1 items)" {
		t.Fatalf("expected list summary, got %q", got)
	}
	if got := doc.Summary(text); got != "Text: "+strings.Repeat("a", 47)+"..." {
		t.Fatalf("expected truncated text summary, got %q", got)
	}
	if got := doc.Summary(code); got != "Code Block (rust)" {
		t.Fatalf("expected code summary, got %q", got)
	}
}
