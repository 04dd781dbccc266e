// Package window is the interactive core: a stack of windows, each driving a
// small state machine of forms requested by tag, with a command menu handling
// input whenever no form is current.
//
// Flow per tick:
//   - Stack.Tick drains the removal queue first, so a window can ask to be
//     removed from inside its own callbacks without disturbing iteration.
//   - Only the top window is ticked; covered windows are paused.
//   - Submitted lines go to the top window only. A current form receives the
//     line exclusively; otherwise the window's menu dispatches it.
//
// Content plugs in through Controller (window behaviour) and Form (one state
// of a window's flow). Both are created through factories keyed by tag, so
// the core never changes when content is added.
package window

import (
	"fmt"
	"strings"

	"github.com/atomicstack/trailsim/internal/logging/events"
)

// Kind tags a window type in the window factory.
type Kind string

// MenuPrompt closes every rendered command menu.
const MenuPrompt = "What is your choice?"

// Controller gives a window its behaviour. NewData returns the window's
// user-data bag; OnCreate runs right after the window is pushed and usually
// registers commands and sets the first form.
type Controller interface {
	NewData() any
	OnCreate(w *Window) error
}

// Renderer supplies the body shown above the menu when no form is current.
type Renderer interface {
	Render(w *Window) string
}

// Ticker runs on every tick while the window is on top.
type Ticker interface {
	OnTick(w *Window, day bool) error
}

// SiblingWatcher is told when another window is pushed above or beside it.
type SiblingWatcher interface {
	OnSiblingAdded(w *Window, sibling *Window)
}

// Resumer is told when the window becomes the top window again.
type Resumer interface {
	OnResume(w *Window)
}

// Remover runs as the window is discarded. Windows that subscribed to the
// director must unsubscribe here.
type Remover interface {
	OnRemove(w *Window)
}

// Menu is a window's command registry as the core sees it.
type Menu interface {
	Render() string
	Dispatch(line string) (bool, error)
	Len() int
}

// Window is one stack entry.
type Window struct {
	kind       Kind
	controller Controller
	data       any
	form       Form
	formKind   FormKind
	menu       Menu
	stack      *Stack
	env        *Env

	removeRequested bool
	removed         bool
}

func (w *Window) Kind() Kind             { return w.kind }
func (w *Window) Controller() Controller { return w.controller }
func (w *Window) Data() any              { return w.data }
func (w *Window) Env() *Env              { return w.env }
func (w *Window) Form() Form             { return w.form }
func (w *Window) FormKind() FormKind     { return w.formKind }
func (w *Window) HasForm() bool          { return w.form != nil }
func (w *Window) Menu() Menu             { return w.menu }
func (w *Window) Removed() bool          { return w.removed }
func (w *Window) RemovalPending() bool   { return w.removeRequested && !w.removed }
func (w *Window) SetMenu(m Menu)         { w.menu = m }
func (w *Window) String() string         { return string(w.kind) }

// DataAs returns the window's data bag as *T, or nil when it has another type.
func DataAs[T any](w *Window) *T {
	if w == nil {
		return nil
	}
	v, _ := w.data.(*T)
	return v
}

// Active reports whether w is the top window of its stack.
func (w *Window) Active() bool {
	if w.removed || w.stack == nil {
		return false
	}
	return w.stack.Active() == w
}

// SetForm makes the form bound to kind current. An unknown kind is a wiring
// error and is returned as a *factory.LookupError.
func (w *Window) SetForm(kind FormKind) error {
	if w.removed {
		return nil
	}
	if w.env == nil || w.env.Forms == nil {
		return fmt.Errorf("window %s: no form factory", w.kind)
	}
	form, err := w.env.Forms.Create(kind)
	if err != nil {
		return fmt.Errorf("window %s: set form: %w", w.kind, err)
	}
	w.form = form
	w.formKind = kind
	events.Form.Set(string(w.kind), string(kind))
	if e, ok := form.(FormEnterer); ok {
		e.OnEnter(w)
	}
	return nil
}

// ClearForm drops the current form; input goes to the menu again.
func (w *Window) ClearForm() {
	if w.form == nil {
		return
	}
	events.Form.Clear(string(w.kind), string(w.formKind))
	w.form = nil
	w.formKind = ""
}

// Push creates a window of kind on top of this window's stack.
func (w *Window) Push(kind Kind) (*Window, error) {
	if w.stack == nil {
		return nil, fmt.Errorf("window %s: not on a stack", w.kind)
	}
	return w.stack.Push(kind)
}

// RequestRemoveOnNextTick marks w for removal at the start of the next tick.
// It is safe to call from any callback, including w's own tick.
func (w *Window) RequestRemoveOnNextTick() {
	if w.stack == nil {
		return
	}
	w.stack.RequestRemove(w)
}

// AcceptsInput reports whether a submitted line would be handled.
func (w *Window) AcceptsInput() bool {
	if w.removed {
		return false
	}
	if w.form != nil {
		return w.form.AcceptsInput(w)
	}
	return w.menu != nil && w.menu.Len() > 0
}

// Render returns the window's current screen text.
func (w *Window) Render() string {
	if w.form != nil {
		return w.form.Render(w)
	}
	var blocks []string
	if r, ok := w.controller.(Renderer); ok {
		blocks = append(blocks, r.Render(w))
	}
	if w.menu != nil && w.menu.Len() > 0 {
		blocks = append(blocks, w.menu.Render(), MenuPrompt)
	}
	return joinBlocks(blocks...)
}

// Submit routes one line. A current form takes the line exclusively and may
// refuse it; without a form the menu dispatches it.
func (w *Window) Submit(line string) error {
	if w.removed {
		return nil
	}
	events.Input.Route(string(w.kind), line)
	if w.form != nil {
		if !w.form.AcceptsInput(w) {
			events.Form.Refused(string(w.kind), string(w.formKind))
			return nil
		}
		return w.apply(w.form.OnSubmit(w, line))
	}
	if w.menu == nil {
		return nil
	}
	_, err := w.menu.Dispatch(line)
	return err
}

// Tick advances the window, then its current form.
func (w *Window) Tick(day bool) error {
	if w.removed {
		return nil
	}
	if t, ok := w.controller.(Ticker); ok {
		if err := t.OnTick(w, day); err != nil {
			return err
		}
	}
	if w.removed || w.form == nil {
		return nil
	}
	if ft, ok := w.form.(FormTicker); ok {
		return w.apply(ft.OnTick(w, day))
	}
	return nil
}

func (w *Window) apply(t Transition) error {
	switch t.Kind {
	case TransitionSet:
		return w.SetForm(t.Form)
	case TransitionClear:
		w.ClearForm()
	}
	return nil
}

func joinBlocks(blocks ...string) string {
	out := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b != "" {
			out = append(out, b)
		}
	}
	return strings.Join(out, "\n\n")
}
