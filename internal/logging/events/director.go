package events

import "github.com/atomicstack/trailsim/internal/logging"

type DirectorTracer struct{}

type StoreTracer struct{}

var (
	Director = DirectorTracer{}
	Store    = StoreTracer{}
)

func (DirectorTracer) Roll(category string, probability, roll float64) {
	logging.Trace("director.roll", map[string]interface{}{"category": category, "p": probability, "roll": roll})
}

func (DirectorTracer) Fire(category, key, target string, listeners int) {
	logging.Trace("director.fire", map[string]interface{}{
		"category":  category,
		"event":     key,
		"target":    target,
		"listeners": listeners,
	})
}

func (DirectorTracer) Subscribe(id uint64) {
	logging.Trace("director.subscribe", map[string]interface{}{"id": id})
}

func (DirectorTracer) Unsubscribe(id uint64) {
	logging.Trace("director.unsubscribe", map[string]interface{}{"id": id})
}

func (StoreTracer) Write(kind, path string, entries int) {
	logging.Trace("store.write", map[string]interface{}{"kind": kind, "path": path, "entries": entries})
}

func (StoreTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("store.error", map[string]interface{}{"error": err.Error()})
}
