package events

import "github.com/atomicstack/trailsim/internal/logging"

type InputTracer struct{}

type CommandTracer struct{}

var (
	Input   = InputTracer{}
	Command = CommandTracer{}
)

func (InputTracer) Submit(line string, pending int) {
	logging.Trace("input.submit", map[string]interface{}{"line": line, "pending": pending})
}

func (InputTracer) Refused(r rune, limit int) {
	logging.Trace("input.refused", map[string]interface{}{"rune": string(r), "limit": limit})
}

func (InputTracer) Route(window, line string) {
	logging.Trace("input.route", map[string]interface{}{"window": window, "line": line})
}

func (CommandTracer) Dispatch(tag, description string, index int) {
	logging.Trace("command.dispatch", map[string]interface{}{"tag": tag, "label": description, "index": index})
}

func (CommandTracer) NoMatch(line, closest string) {
	logging.Trace("command.nomatch", map[string]interface{}{"line": line, "closest": closest})
}

func (CommandTracer) Error(tag string, err error) {
	if err == nil {
		return
	}
	logging.Trace("command.error", map[string]interface{}{"tag": tag, "error": err.Error()})
}
