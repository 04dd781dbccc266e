package window

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/atomicstack/trailsim/internal/command"
	"github.com/atomicstack/trailsim/internal/factory"
)

type bag struct {
	Ticks     int
	RestDays  int
	Submitted []string
}

// testController exposes every optional hook through function fields.
type testController struct {
	create   func(w *Window) error
	tick     func(w *Window, day bool) error
	sibling  func(w, sibling *Window)
	resume   func(w *Window)
	remove   func(w *Window)
	renderFn func(w *Window) string
}

func (c *testController) NewData() any { return &bag{} }

func (c *testController) OnCreate(w *Window) error {
	if c.create != nil {
		return c.create(w)
	}
	return nil
}

func (c *testController) OnTick(w *Window, day bool) error {
	DataAs[bag](w).Ticks++
	if c.tick != nil {
		return c.tick(w, day)
	}
	return nil
}

func (c *testController) OnSiblingAdded(w, sibling *Window) {
	if c.sibling != nil {
		c.sibling(w, sibling)
	}
}

func (c *testController) OnResume(w *Window) {
	if c.resume != nil {
		c.resume(w)
	}
}

func (c *testController) OnRemove(w *Window) {
	if c.remove != nil {
		c.remove(w)
	}
}

func (c *testController) Render(w *Window) string {
	if c.renderFn != nil {
		return c.renderFn(w)
	}
	return ""
}

const (
	formEcho  FormKind = "echo"
	formRest  FormKind = "rest"
	formAsk   FormKind = "ask"
	formAbout FormKind = "about"
)

type echoForm struct{}

func (echoForm) Render(w *Window) string     { return "echo" }
func (echoForm) AcceptsInput(w *Window) bool { return true }
func (echoForm) OnSubmit(w *Window, line string) Transition {
	b := DataAs[bag](w)
	b.Submitted = append(b.Submitted, line)
	if line == "done" {
		return Clear()
	}
	if line == "rest" {
		return ToForm(formRest)
	}
	if line == "missing" {
		return ToForm("no-such-form")
	}
	return Remain()
}

func restForm() Form {
	return &Dialog{
		Kind:   DialogPrompt,
		Prompt: func(w *Window) string { return fmt.Sprintf("Resting, %d days left", DataAs[bag](w).RestDays) },
		Ready:  func(w *Window) bool { return DataAs[bag](w).RestDays <= 0 },
		Tick: func(w *Window, day bool) Transition {
			b := DataAs[bag](w)
			if day && b.RestDays > 0 {
				b.RestDays--
			}
			return Remain()
		},
	}
}

func testForms() *factory.Factory[FormKind, Form] {
	return factory.MustScan("form", []factory.Binding[FormKind, Form]{
		factory.Bind(formEcho, func() Form { return echoForm{} }),
		factory.Bind(formRest, restForm),
		factory.Bind(formAsk, func() Form {
			return &Dialog{
				Kind:   DialogYesNo,
				Prompt: func(*Window) string { return "Are you sure?" },
				OnResponse: func(w *Window, r Response, line string) Transition {
					b := DataAs[bag](w)
					b.Submitted = append(b.Submitted, r.String())
					if r == ResponseCustom {
						return Remain()
					}
					return Clear()
				},
			}
		}),
		factory.Bind(formAbout, func() Form {
			return &Dialog{Kind: DialogPrompt, Prompt: func(*Window) string { return "About" }}
		}),
	})
}

func newTestStack(t *testing.T, controllers map[Kind]*testController) *Stack {
	t.Helper()
	table := make([]factory.Binding[Kind, Controller], 0, len(controllers))
	for kind, c := range controllers {
		c := c
		table = append(table, factory.Bind(kind, func() Controller { return c }))
	}
	windows, err := factory.Scan("window", table)
	if err != nil {
		t.Fatalf("scan windows: %v", err)
	}
	return NewStack(&Env{Forms: testForms()}, windows)
}

func mustPush(t *testing.T, s *Stack, kind Kind) *Window {
	t.Helper()
	w, err := s.Push(kind)
	if err != nil {
		t.Fatalf("push %s: %v", kind, err)
	}
	return w
}

func TestPushUnknownKindFailsWithLookupError(t *testing.T) {
	s := newTestStack(t, map[Kind]*testController{"main": {}})
	_, err := s.Push("travel")
	var lookup *factory.LookupError
	if !errors.As(err, &lookup) {
		t.Fatalf("expected lookup error, got %v", err)
	}
	if !s.Empty() {
		t.Fatalf("failed push must not leave a window behind")
	}
}

func TestPushRunsCreateHookAndNotifiesSiblings(t *testing.T) {
	var order []string
	main := &testController{
		create:  func(w *Window) error { order = append(order, "create main"); return nil },
		sibling: func(w, sibling *Window) { order = append(order, "main saw "+string(sibling.Kind())) },
	}
	popup := &testController{
		create: func(w *Window) error { order = append(order, "create popup"); return nil },
	}
	s := newTestStack(t, map[Kind]*testController{"main": main, "popup": popup})
	mustPush(t, s, "main")
	w := mustPush(t, s, "popup")
	want := []string{"create main", "create popup", "main saw popup"}
	if strings.Join(order, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected hook order %v", order)
	}
	if !w.Active() || s.Active() != w {
		t.Fatalf("expected popup to be active")
	}
	if DataAs[bag](w) == nil {
		t.Fatalf("expected initialised data bag")
	}
}

func TestCreateErrorDiscardsWindow(t *testing.T) {
	removed := 0
	broken := &testController{
		create: func(w *Window) error { return errors.New("bad wiring") },
		remove: func(w *Window) { removed++ },
	}
	s := newTestStack(t, map[Kind]*testController{"broken": broken})
	if _, err := s.Push("broken"); err == nil {
		t.Fatalf("expected create error")
	}
	if !s.Empty() || removed != 1 {
		t.Fatalf("expected window discarded once, empty=%v removed=%d", s.Empty(), removed)
	}
}

func TestOnlyTopWindowTicks(t *testing.T) {
	s := newTestStack(t, map[Kind]*testController{"main": {}, "popup": {}})
	bottom := mustPush(t, s, "main")
	top := mustPush(t, s, "popup")
	for i := 0; i < 3; i++ {
		if err := s.Tick(false); err != nil {
			t.Fatalf("tick: %v", err)
		}
	}
	if got := DataAs[bag](bottom).Ticks; got != 0 {
		t.Fatalf("covered window must be paused, got %d ticks", got)
	}
	if got := DataAs[bag](top).Ticks; got != 3 {
		t.Fatalf("expected 3 ticks on top window, got %d", got)
	}
}

func TestSelfRemovalFromTickIsDeferred(t *testing.T) {
	removed := 0
	popup := &testController{
		tick: func(w *Window, day bool) error {
			w.RequestRemoveOnNextTick()
			w.RequestRemoveOnNextTick()
			return nil
		},
		remove: func(w *Window) { removed++ },
	}
	resumed := 0
	main := &testController{resume: func(w *Window) { resumed++ }}
	s := newTestStack(t, map[Kind]*testController{"main": main, "popup": popup})
	bottom := mustPush(t, s, "main")
	w := mustPush(t, s, "popup")

	if err := s.Tick(false); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if s.Len() != 2 || w.Removed() || !w.RemovalPending() {
		t.Fatalf("removal must wait for the next tick boundary")
	}
	if err := s.Tick(false); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if removed != 1 || !w.Removed() {
		t.Fatalf("expected exactly one removal, got %d", removed)
	}
	windows := s.Windows()
	if len(windows) != 1 || windows[0] != bottom {
		t.Fatalf("unexpected stack after removal: %v", windows)
	}
	if resumed != 1 {
		t.Fatalf("expected main to resume once, got %d", resumed)
	}
	if got := DataAs[bag](bottom).Ticks; got != 1 {
		t.Fatalf("main should tick in the same frame it resurfaces, got %d", got)
	}
	if err := s.Tick(false); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if removed != 1 {
		t.Fatalf("window removed more than once")
	}
}

func TestPopIsDeferredAndNoOpWhenEmpty(t *testing.T) {
	s := newTestStack(t, map[Kind]*testController{"main": {}})
	s.Pop()
	if err := s.Tick(false); err != nil {
		t.Fatalf("tick on empty stack: %v", err)
	}
	mustPush(t, s, "main")
	s.Pop()
	s.Pop()
	if s.Empty() {
		t.Fatalf("pop must not remove immediately")
	}
	_ = s.Tick(false)
	if !s.Empty() {
		t.Fatalf("expected empty stack after tick")
	}
	if s.Render() != "" {
		t.Fatalf("empty stack renders nothing")
	}
}

func TestFormTakesInputExclusively(t *testing.T) {
	menuCalls := 0
	main := &testController{
		create: func(w *Window) error {
			reg := command.New[string]()
			reg.MustAdd("travel", func() error { menuCalls++; return nil }, "Travel the trail")
			w.SetMenu(reg)
			return w.SetForm(formEcho)
		},
	}
	s := newTestStack(t, map[Kind]*testController{"main": main})
	w := mustPush(t, s, "main")
	for _, line := range []string{"1", "travel", "TRAVEL", ""} {
		if err := s.Route(line); err != nil {
			t.Fatalf("route %q: %v", line, err)
		}
	}
	if menuCalls != 0 {
		t.Fatalf("menu must never see input while a form is current, got %d calls", menuCalls)
	}
	if got := len(DataAs[bag](w).Submitted); got != 4 {
		t.Fatalf("expected form to receive 4 lines, got %d", got)
	}
	_ = s.Route("done")
	if w.HasForm() {
		t.Fatalf("expected form cleared")
	}
	_ = s.Route("1")
	if menuCalls != 1 {
		t.Fatalf("expected menu dispatch once the form is cleared, got %d", menuCalls)
	}
}

func TestRestFormRefusesInputUntilDaysElapse(t *testing.T) {
	main := &testController{
		create: func(w *Window) error {
			DataAs[bag](w).RestDays = 3
			return w.SetForm(formRest)
		},
	}
	s := newTestStack(t, map[Kind]*testController{"main": main})
	w := mustPush(t, s, "main")

	_ = s.Route("")
	_ = s.Route("")
	if w.FormKind() != formRest {
		t.Fatalf("rest form must ignore early submits")
	}
	if strings.Contains(w.Render(), PressEnterCue) {
		t.Fatalf("rest form must not offer dismissal yet")
	}
	_ = s.Tick(true)
	_ = s.Tick(true)
	_ = s.Route("")
	if w.FormKind() != formRest {
		t.Fatalf("rest form cleared after only 2 days")
	}
	_ = s.Tick(false)
	if DataAs[bag](w).RestDays != 1 {
		t.Fatalf("non-day ticks must not count as rest days")
	}
	_ = s.Tick(true)
	if !strings.Contains(w.Render(), PressEnterCue) {
		t.Fatalf("expected dismissal cue once rested, got %q", w.Render())
	}
	_ = s.Route("")
	if w.HasForm() {
		t.Fatalf("expected rest form cleared after the third day")
	}
}

func TestSetUnknownFormIsFatal(t *testing.T) {
	main := &testController{create: func(w *Window) error { return w.SetForm(formEcho) }}
	s := newTestStack(t, map[Kind]*testController{"main": main})
	mustPush(t, s, "main")
	err := s.Route("missing")
	var lookup *factory.LookupError
	if !errors.As(err, &lookup) || lookup.Tag != "no-such-form" {
		t.Fatalf("expected lookup error for missing form, got %v", err)
	}
}

func TestTransitionToAnotherForm(t *testing.T) {
	main := &testController{create: func(w *Window) error { return w.SetForm(formEcho) }}
	s := newTestStack(t, map[Kind]*testController{"main": main})
	w := mustPush(t, s, "main")
	if err := s.Route("rest"); err != nil {
		t.Fatalf("route: %v", err)
	}
	if w.FormKind() != formRest {
		t.Fatalf("expected rest form, got %q", w.FormKind())
	}
}

func TestRenderComposesBodyMenuAndPrompt(t *testing.T) {
	main := &testController{
		renderFn: func(w *Window) string { return "The Oregon Trail" },
		create: func(w *Window) error {
			reg := command.New[string]()
			reg.MustAdd("travel", func() error { return nil }, "Travel the trail")
			reg.MustAdd("end", func() error { return nil }, "End")
			w.SetMenu(reg)
			return nil
		},
	}
	s := newTestStack(t, map[Kind]*testController{"main": main})
	w := mustPush(t, s, "main")
	want := strings.Join([]string{
		"The Oregon Trail",
		"",
		"  1. Travel the trail",
		"  2. End",
		"",
		MenuPrompt,
	}, "\n")
	if got := w.Render(); got != want {
		t.Fatalf("unexpected render:\n%s\nwant:\n%s", got, want)
	}
	if err := w.SetForm(formAbout); err != nil {
		t.Fatalf("set form: %v", err)
	}
	if got := s.Render(); got != "About\n\n"+PressEnterCue {
		t.Fatalf("expected form render, got %q", got)
	}
}

func TestDestroyRunsRemoveHooks(t *testing.T) {
	var removed []Kind
	hook := func(w *Window) { removed = append(removed, w.Kind()) }
	s := newTestStack(t, map[Kind]*testController{"main": {remove: hook}, "popup": {remove: hook}})
	mustPush(t, s, "main")
	mustPush(t, s, "popup")
	s.Destroy()
	if !s.Empty() || len(removed) != 2 || removed[0] != "popup" {
		t.Fatalf("unexpected destroy order %v", removed)
	}
}

func TestRemovedWindowIgnoresInputAndTicks(t *testing.T) {
	s := newTestStack(t, map[Kind]*testController{"main": {}})
	w := mustPush(t, s, "main")
	w.RequestRemoveOnNextTick()
	_ = s.Tick(false)
	if err := w.Submit("1"); err != nil {
		t.Fatalf("submit on removed window: %v", err)
	}
	if err := w.Tick(true); err != nil {
		t.Fatalf("tick on removed window: %v", err)
	}
	if DataAs[bag](w).Ticks != 0 || w.Active() || w.AcceptsInput() {
		t.Fatalf("removed window must be inert")
	}
}

func TestFindReturnsTopmostOfKind(t *testing.T) {
	s := newTestStack(t, map[Kind]*testController{"main": {}, "popup": {}})
	mustPush(t, s, "main")
	first := mustPush(t, s, "popup")
	second := mustPush(t, s, "popup")
	got, ok := s.Find("popup")
	if !ok || got != second || got == first {
		t.Fatalf("expected topmost popup")
	}
	if _, ok := s.Find("travel"); ok {
		t.Fatalf("unexpected match")
	}
}
