package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/atomicstack/mqt/internal/document"
	"github.com/atomicstack/mqt/internal/markdown"
)

// Sample is a small document with two headings, a paragraph and a list.
const Sample = "# Test Heading\n\nThis is a paragraph.\n\n## Second Heading\n\n- List item 1\n- List item 2\n"

// Rich exercises every node kind the tree view renders.
const Rich = `---
title: rich
---
# Guide

Intro with **bold**, *em*, ` + "`code`" + ` and [a link](https://example.com).

## Setup

1. Install
2. Configure
   - nested one
   - nested two

` + "```go\nfunc main() {}\n```" + `

> quoted text

| key | value |
| --- | ----- |
| a   | 1     |

---

![logo](logo.png)
`

// Document parses src, failing the test on error.
func Document(t testing.TB, src string) *document.Document {
	t.Helper()
	doc, err := markdown.Parse("test.md", []byte(src))
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return doc
}

// WriteDocument stores src in a temporary Markdown file and returns its path.
func WriteDocument(t testing.TB, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.md")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}
