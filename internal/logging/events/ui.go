package events

import "github.com/atomicstack/mqt/internal/logging"

type UITracer struct{}

type ModeTracer struct{}

type InputTracer struct{}

type TreeTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Mode    = ModeTracer{}
	Input   = InputTracer{}
	Tree    = TreeTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (UITracer) Cursor(view string, cursor int) {
	logging.Trace("ui.cursor", map[string]interface{}{"view": view, "cursor": cursor})
}

func (UITracer) Detail(visible bool) {
	logging.Trace("ui.detail", map[string]interface{}{"visible": visible})
}

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}

func (ModeTracer) Change(from, to string) {
	logging.Trace("mode.change", map[string]interface{}{"from": from, "to": to})
}

func (InputTracer) Edit(action, text string, cursor int) {
	logging.Trace("input.edit", map[string]interface{}{"action": action, "text": text, "cursor": cursor})
}

func (InputTracer) Cursor(action string, cursor int) {
	logging.Trace("input.cursor", map[string]interface{}{"action": action, "cursor": cursor})
}

func (InputTracer) Commit(text string) {
	logging.Trace("input.commit", map[string]interface{}{"text": text})
}

func (InputTracer) Abort(text string) {
	logging.Trace("input.abort", map[string]interface{}{"text": text})
}

func (TreeTracer) Open(rows int) {
	logging.Trace("tree.open", map[string]interface{}{"rows": rows})
}

func (TreeTracer) Toggle(node int, expanded bool, rows int) {
	logging.Trace("tree.toggle", map[string]interface{}{"node": node, "expanded": expanded, "rows": rows})
}

func (TreeTracer) ExpandAll(rows int) {
	logging.Trace("tree.expand-all", map[string]interface{}{"rows": rows})
}

func (TreeTracer) CollapseAll(rows int) {
	logging.Trace("tree.collapse-all", map[string]interface{}{"rows": rows})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
