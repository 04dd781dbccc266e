package window

import (
	"fmt"
	"slices"

	"github.com/atomicstack/trailsim/internal/factory"
	"github.com/atomicstack/trailsim/internal/logging/events"
)

// Stack owns the ordered set of active windows. The last window is the
// active one; removal is deferred to the next tick boundary.
type Stack struct {
	env      *Env
	windows  *factory.Factory[Kind, Controller]
	items    []*Window
	removals []*Window
}

// NewStack returns an empty stack creating windows from the given factory.
func NewStack(env *Env, windows *factory.Factory[Kind, Controller]) *Stack {
	return &Stack{env: env, windows: windows}
}

// Push creates the window bound to kind, appends it, runs its OnCreate hook,
// and tells every other window a sibling was added.
func (s *Stack) Push(kind Kind) (*Window, error) {
	ctrl, err := s.windows.Create(kind)
	if err != nil {
		return nil, fmt.Errorf("push window: %w", err)
	}
	w := &Window{
		kind:       kind,
		controller: ctrl,
		data:       ctrl.NewData(),
		stack:      s,
		env:        s.env,
	}
	s.items = append(s.items, w)
	events.Window.Push(string(kind), len(s.items))
	if err := ctrl.OnCreate(w); err != nil {
		if idx := slices.Index(s.items, w); idx >= 0 {
			s.items = slices.Delete(s.items, idx, idx+1)
		}
		s.discard(w)
		return nil, fmt.Errorf("create window %s: %w", kind, err)
	}
	for _, other := range s.Windows() {
		if other == w || other.removed {
			continue
		}
		if sw, ok := other.controller.(SiblingWatcher); ok {
			sw.OnSiblingAdded(other, w)
		}
	}
	return w, nil
}

// RequestRemove marks w for removal at the start of the next tick. Marking
// the same window twice has no further effect.
func (s *Stack) RequestRemove(w *Window) {
	if w == nil || w.stack != s || w.removed || w.removeRequested {
		return
	}
	w.removeRequested = true
	s.removals = append(s.removals, w)
	events.Window.RequestRemove(string(w.kind))
}

// Pop marks the topmost window that is not already pending removal. It does
// nothing on an empty stack.
func (s *Stack) Pop() {
	for i := len(s.items) - 1; i >= 0; i-- {
		if !s.items[i].removeRequested {
			s.RequestRemove(s.items[i])
			return
		}
	}
}

// Tick runs one frame: first the removal queue is drained, then the top
// window (and its form) is ticked. Covered windows are not ticked.
func (s *Stack) Tick(day bool) error {
	s.Drain()
	return s.TickTop(day)
}

// Drain physically removes every window marked for removal and tells a
// window that resurfaces on top that it is active again.
func (s *Stack) Drain() {
	before := s.Active()
	s.drain()
	top := s.Active()
	if top == nil || top == before {
		return
	}
	events.Window.Resume(string(top.kind))
	if r, ok := top.controller.(Resumer); ok {
		r.OnResume(top)
	}
}

// TickTop ticks the top window without touching the removal queue. Hosts
// that route input between the two phases call Drain, Route, then TickTop.
func (s *Stack) TickTop(day bool) error {
	top := s.Active()
	if top == nil {
		return nil
	}
	return top.Tick(day)
}

// Route delivers a submitted line to the top window only.
func (s *Stack) Route(line string) error {
	top := s.Active()
	if top == nil {
		return nil
	}
	return top.Submit(line)
}

// Active returns the top window, or nil when the stack is empty.
func (s *Stack) Active() *Window {
	if len(s.items) == 0 {
		return nil
	}
	return s.items[len(s.items)-1]
}

// Render returns the top window's screen text.
func (s *Stack) Render() string {
	if top := s.Active(); top != nil {
		return top.Render()
	}
	return ""
}

// Windows returns a snapshot of the stack, bottom first.
func (s *Stack) Windows() []*Window {
	return slices.Clone(s.items)
}

// Len returns the number of windows, including ones pending removal.
func (s *Stack) Len() int {
	return len(s.items)
}

// Empty reports whether no windows remain. Hosts treat this as shutdown.
func (s *Stack) Empty() bool {
	return len(s.items) == 0
}

// Find returns the topmost window of kind.
func (s *Stack) Find(kind Kind) (*Window, bool) {
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].kind == kind {
			return s.items[i], true
		}
	}
	return nil, false
}

// Destroy removes every window top-down, running their OnRemove hooks.
func (s *Stack) Destroy() {
	for i := len(s.items) - 1; i >= 0; i-- {
		s.discard(s.items[i])
	}
	s.items = nil
	s.removals = nil
}

func (s *Stack) drain() {
	for len(s.removals) > 0 {
		pending := s.removals
		s.removals = nil
		for _, w := range pending {
			idx := slices.Index(s.items, w)
			if idx < 0 {
				continue
			}
			s.items = slices.Delete(s.items, idx, idx+1)
			s.discard(w)
			events.Window.Remove(string(w.kind), len(s.items))
		}
	}
}

// discard runs the removal hook and drops the references the window holds,
// so a removed window can never be reached through a stale callback.
func (s *Stack) discard(w *Window) {
	if w.removed {
		return
	}
	w.removed = true
	if r, ok := w.controller.(Remover); ok {
		r.OnRemove(w)
	}
	w.form = nil
	w.formKind = ""
	w.menu = nil
}
