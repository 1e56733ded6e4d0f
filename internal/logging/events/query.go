package events

import (
	"time"

	"github.com/atomicstack/mqt/internal/logging"
)

type QueryTracer struct{}

type HistoryTracer struct{}

type ClipboardTracer struct{}

var (
	Query     = QueryTracer{}
	History   = HistoryTracer{}
	Clipboard = ClipboardTracer{}
)

func (QueryTracer) Submit(generation uint64, text string, delay time.Duration) {
	logging.Trace("query.submit", map[string]interface{}{"generation": generation, "query": text, "delay": delay.String()})
}

func (QueryTracer) Dispatch(generation uint64) {
	logging.Trace("query.dispatch", map[string]interface{}{"generation": generation})
}

func (QueryTracer) Result(generation uint64, state string, items int, elapsed time.Duration) {
	logging.Trace("query.result", map[string]interface{}{
		"generation": generation,
		"state":      state,
		"items":      items,
		"elapsed":    elapsed.String(),
	})
}

func (QueryTracer) Error(generation uint64, err error) {
	logging.Trace("query.error", map[string]interface{}{"generation": generation, "error": err.Error()})
}

func (QueryTracer) Stale(generation, current uint64) {
	logging.Trace("query.stale", map[string]interface{}{"generation": generation, "current": current})
}

func (QueryTracer) Cancel(generation uint64, text string) {
	logging.Trace("query.cancel", map[string]interface{}{"generation": generation, "query": text})
}

func (HistoryTracer) Record(text string, added bool) {
	logging.Trace("history.record", map[string]interface{}{"query": text, "added": added})
}

func (HistoryTracer) Navigate(direction, text string) {
	logging.Trace("history.navigate", map[string]interface{}{"direction": direction, "query": text})
}

func (ClipboardTracer) Copy(items, bytes int) {
	logging.Trace("clipboard.copy", map[string]interface{}{"items": items, "bytes": bytes})
}

func (ClipboardTracer) Empty() {
	logging.Trace("clipboard.empty", nil)
}

func (ClipboardTracer) Error(err error) {
	logging.Trace("clipboard.error", map[string]interface{}{"error": err.Error()})
}
