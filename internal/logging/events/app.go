package events

import "github.com/atomicstack/mqt/internal/logging"

type AppTracer struct{}

type BackendTracer struct{}

var (
	App     = AppTracer{}
	Backend = BackendTracer{}
)

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Exit(code int, err error) {
	payload := map[string]interface{}{"code": code}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("app.exit", payload)
}

func (BackendTracer) Watch(path string) {
	logging.Trace("backend.watch", map[string]interface{}{"path": path})
}

func (BackendTracer) Reload(path string, nodes int) {
	logging.Trace("backend.reload", map[string]interface{}{"path": path, "nodes": nodes})
}

func (BackendTracer) ReloadError(path string, err error) {
	logging.Trace("backend.reload.error", map[string]interface{}{"path": path, "error": err.Error()})
}

func (BackendTracer) Throttled(path string) {
	logging.Trace("backend.throttled", map[string]interface{}{"path": path})
}

func (BackendTracer) Stopped() {
	logging.Trace("backend.stopped", nil)
}
