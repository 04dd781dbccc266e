package events

import "github.com/atomicstack/trailsim/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

// Run marks the start of one simulation run.
func (AppTracer) Run(runID string, seed uint64, start string) {
	logging.Trace("app.run", map[string]interface{}{"run": runID, "seed": seed, "start": start})
}

func (AppTracer) Stop(runID string, ticks int) {
	logging.Trace("app.stop", map[string]interface{}{"run": runID, "ticks": ticks})
}
