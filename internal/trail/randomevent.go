package trail

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/atomicstack/trailsim/internal/window"
)

const narrationWidth = 60

// EventData holds the narration the popup shows.
type EventData struct {
	Lines []string
}

// randomEvent is the popup pushed over the journey when an event fires.
type randomEvent struct{}

func (randomEvent) NewData() any { return &EventData{} }

func (randomEvent) OnCreate(w *window.Window) error {
	return w.SetForm(FormNarration)
}

func narrationForm() window.Form {
	return &window.Dialog{
		Kind: window.DialogPrompt,
		Prompt: func(w *window.Window) string {
			return wrap(strings.Join(window.DataAs[EventData](w).Lines, " "), narrationWidth)
		},
		OnResponse: func(w *window.Window, _ window.Response, _ string) window.Transition {
			w.RequestRemoveOnNextTick()
			return window.Remain()
		},
	}
}

func wrap(text string, width int) string {
	return wordwrap.String(text, width)
}
