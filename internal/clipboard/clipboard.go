// Package clipboard exports result sets as Markdown to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atomicstack/mqt/internal/document"
	"github.com/atomicstack/mqt/internal/query"
	sysclip "github.com/atotto/clipboard"
)

// Op names the clipboard step that failed.
type Op string

const (
	OpAccess  Op = "access"
	OpCopy    Op = "copy"
	OpRelease Op = "release"
)

// ErrEmpty is returned by Copy when there is nothing to export.
var ErrEmpty = errors.New("nothing to copy")

// ClipboardError wraps a sink failure.
type ClipboardError struct {
	Op  Op
	Err error
}

func (e *ClipboardError) Error() string {
	return fmt.Sprintf("could not %s clipboard: %v", e.Op, e.Err)
}

func (e *ClipboardError) Unwrap() error { return e.Err }

// Sink hands out clipboard sessions.
type Sink interface {
	Acquire() (Session, error)
}

// Session is a single scoped clipboard write. Release is always called once
// Acquire succeeds.
type Session interface {
	Write(text string) error
	Release() error
}

// Result summarises a successful copy.
type Result struct {
	Items int
	Bytes int
}

// Export serialises items to Markdown in result order, separated by a blank
// line.
func Export(doc *document.Document, items []query.ResultItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, item.Markdown(doc))
	}
	return strings.Join(parts, "\n\n")
}

// Exporter copies result sets through a Sink.
type Exporter struct {
	sink Sink
}

// NewExporter returns an exporter writing to sink.
func NewExporter(sink Sink) *Exporter {
	return &Exporter{sink: sink}
}

// Copy exports items and writes them to the sink. An empty result set never
// touches the sink and returns ErrEmpty.
func (e *Exporter) Copy(doc *document.Document, items []query.ResultItem) (res Result, err error) {
	if len(items) == 0 {
		return Result{}, ErrEmpty
	}
	text := Export(doc, items)
	sess, err := e.sink.Acquire()
	if err != nil {
		return Result{}, &ClipboardError{Op: OpAccess, Err: err}
	}
	// A release failure after a successful write keeps res, so callers can
	// still report what was copied.
	defer func() {
		if rerr := sess.Release(); rerr != nil && err == nil {
			err = &ClipboardError{Op: OpRelease, Err: rerr}
		}
	}()
	if err := sess.Write(text); err != nil {
		return Result{}, &ClipboardError{Op: OpCopy, Err: err}
	}
	return Result{Items: len(items), Bytes: len(text)}, nil
}

var (
	clipboardWrite       = sysclip.WriteAll
	clipboardUnsupported = func() bool { return sysclip.Unsupported }
)

// SystemSink writes to the operating system clipboard.
type SystemSink struct{}

// Acquire implements Sink.
func (SystemSink) Acquire() (Session, error) {
	if clipboardUnsupported() {
		return nil, errors.New("no clipboard utility available")
	}
	return systemSession{}, nil
}

type systemSession struct{}

func (systemSession) Write(text string) error { return clipboardWrite(text) }

func (systemSession) Release() error { return nil }
