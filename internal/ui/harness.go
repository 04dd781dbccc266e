package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Harness drives the UI model programmatically for integration tests.
type Harness struct {
	model *Model
	now   time.Time
	quit  bool
}

// NewHarness creates a harness for the provided model. Its clock starts at a
// fixed instant and only moves when Advance is called.
func NewHarness(model *Model) *Harness {
	return &Harness{model: model, now: time.Date(1848, time.April, 1, 8, 0, 0, 0, time.UTC)}
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.processCmd(cmd)
}

// Type sends each rune of s as a key press.
func (h *Harness) Type(s string) {
	for _, r := range s {
		if r == ' ' {
			h.Send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// Enter presses Enter and ticks once so the line reaches the windows.
func (h *Harness) Enter() {
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	h.Tick()
}

// Tick delivers one TickMsg at the harness clock.
func (h *Harness) Tick() {
	h.Send(TickMsg(h.now))
}

// Advance moves the harness clock forward.
func (h *Harness) Advance(d time.Duration) {
	h.now = h.now.Add(d)
}

// Quit reports whether the model returned tea.Quit.
func (h *Harness) Quit() bool {
	return h.quit
}

func (h *Harness) processCmd(cmd tea.Cmd) {
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return
		}
		if _, ok := msg.(tea.QuitMsg); ok {
			h.quit = true
			return
		}
		mdl, next := h.model.Update(msg)
		if updated, ok := mdl.(*Model); ok {
			h.model = updated
		}
		cmd = next
	}
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}
