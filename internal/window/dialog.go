package window

import "strings"

type DialogKind int

const (
	// DialogPrompt announces something; any line, including an empty one,
	// dismisses it.
	DialogPrompt DialogKind = iota
	// DialogYesNo asks a question answered with Y or N.
	DialogYesNo
	// DialogCustom reads free-form text such as a name or a number.
	DialogCustom
)

type Response int

const (
	ResponseCustom Response = iota
	ResponseYes
	ResponseNo
)

func (r Response) String() string {
	switch r {
	case ResponseYes:
		return "yes"
	case ResponseNo:
		return "no"
	default:
		return "custom"
	}
}

const (
	PressEnterCue = "Press ENTER KEY to continue"
	YesNoCue      = "(Y/N)?"
)

// Classify maps a submitted line onto a dialog response. Y and N are matched
// case-insensitively; everything else is custom.
func Classify(line string) Response {
	switch text := strings.TrimSpace(line); {
	case strings.EqualFold(text, "y"):
		return ResponseYes
	case strings.EqualFold(text, "n"):
		return ResponseNo
	default:
		return ResponseCustom
	}
}

// Dialog is the reusable form for prompts and questions. Every dialog
// classifies input through Classify, so unrecognised text behaves the same
// everywhere.
type Dialog struct {
	Kind   DialogKind
	Prompt func(w *Window) string
	// OnResponse picks the next transition. A nil handler clears prompt-only
	// dialogs and keeps the others.
	OnResponse func(w *Window, r Response, line string) Transition
	// Ready gates input; nil means the dialog always accepts input.
	Ready func(w *Window) bool
	// Tick runs on every window tick while the dialog is current.
	Tick func(w *Window, day bool) Transition
	// Enter runs when the dialog becomes the current form.
	Enter func(w *Window)
}

func (d *Dialog) Render(w *Window) string {
	body := ""
	if d.Prompt != nil {
		body = d.Prompt(w)
	}
	switch d.Kind {
	case DialogPrompt:
		if !d.AcceptsInput(w) {
			return body
		}
		return joinBlocks(body, PressEnterCue)
	case DialogYesNo:
		return joinBlocks(body, YesNoCue)
	default:
		return body
	}
}

func (d *Dialog) AcceptsInput(w *Window) bool {
	if d.Ready == nil {
		return true
	}
	return d.Ready(w)
}

func (d *Dialog) OnSubmit(w *Window, line string) Transition {
	text := strings.TrimSpace(line)
	if text == "" && d.Kind != DialogPrompt {
		return Remain()
	}
	resp := Classify(text)
	if d.OnResponse == nil {
		if d.Kind == DialogPrompt {
			return Clear()
		}
		return Remain()
	}
	return d.OnResponse(w, resp, text)
}

func (d *Dialog) OnTick(w *Window, day bool) Transition {
	if d.Tick == nil {
		return Remain()
	}
	return d.Tick(w, day)
}

func (d *Dialog) OnEnter(w *Window) {
	if d.Enter != nil {
		d.Enter(w)
	}
}
