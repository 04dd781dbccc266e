package events

import "github.com/atomicstack/trailsim/internal/logging"

type WindowTracer struct{}

type FormTracer struct{}

var (
	Window = WindowTracer{}
	Form   = FormTracer{}
)

func (WindowTracer) Push(kind string, depth int) {
	logging.Trace("window.push", map[string]interface{}{"kind": kind, "depth": depth})
}

func (WindowTracer) RequestRemove(kind string) {
	logging.Trace("window.remove.request", map[string]interface{}{"kind": kind})
}

func (WindowTracer) Remove(kind string, remaining int) {
	logging.Trace("window.remove", map[string]interface{}{"kind": kind, "remaining": remaining})
}

func (WindowTracer) Resume(kind string) {
	logging.Trace("window.resume", map[string]interface{}{"kind": kind})
}

func (FormTracer) Set(window, form string) {
	logging.Trace("form.set", map[string]interface{}{"window": window, "form": form})
}

func (FormTracer) Clear(window, form string) {
	logging.Trace("form.clear", map[string]interface{}{"window": window, "form": form})
}

func (FormTracer) Refused(window, form string) {
	logging.Trace("form.refused", map[string]interface{}{"window": window, "form": form})
}
