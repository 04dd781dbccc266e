package sim

import (
	"errors"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/atomicstack/trailsim/internal/command"
	"github.com/atomicstack/trailsim/internal/director"
	"github.com/atomicstack/trailsim/internal/entity"
	"github.com/atomicstack/trailsim/internal/factory"
	"github.com/atomicstack/trailsim/internal/window"
)

type traveller struct{ name string }

func (t *traveller) Name() string { return t.name }

type quake struct{}

func (quake) Execute(entity.Entity, *rand.Rand) director.Key { return "" }
func (quake) Render(t entity.Entity) string                  { return "the ground shook under " + t.Name() }

// camp logs what happens to it so tests can assert ordering.
type camp struct {
	log   *[]string
	unsub func()
}

type campData struct{ lines []string }

func (c *camp) NewData() any { return &campData{} }

func (c *camp) OnCreate(w *window.Window) error {
	w.SetMenu(command.New[string]().
		MustAdd("leave", func() error { w.RequestRemoveOnNextTick(); return nil }, "Leave camp").
		MustAdd("echo", func() error {
			d := window.DataAs[campData](w)
			d.lines = append(d.lines, "echo")
			*c.log = append(*c.log, "input")
			return nil
		}, "Echo"))
	c.unsub = w.Env().Director.Subscribe(func(t entity.Entity, evt director.Event) {
		*c.log = append(*c.log, "director")
	})
	return nil
}

func (c *camp) OnTick(w *window.Window, day bool) error {
	*c.log = append(*c.log, "window")
	return nil
}

func (c *camp) OnRemove(w *window.Window) { c.unsub() }

func (c *camp) Render(w *window.Window) string { return "Camp" }

func content(log *[]string, odds float64) Content {
	return Content{
		Windows: []factory.Binding[window.Kind, window.Controller]{
			factory.Bind[window.Kind, window.Controller]("camp", func() window.Controller { return &camp{log: log} }),
		},
		Events: []director.Registration{
			{Key: "quake", Category: "party", New: func() director.Event { return quake{} }},
		},
		Odds:  map[director.Category]float64{"party": odds},
		Start: "camp",
		World: func(env *window.Env) (any, error) {
			return nil, env.Entities.Add(&traveller{name: "Ann"})
		},
		Target: func(env *window.Env, cat director.Category) entity.Entity {
			e, _ := env.Entities.Get("Ann")
			return e
		},
	}
}

func submit(s *Sim, line string) {
	for _, r := range line {
		s.PushChar(r)
	}
	s.Submit()
}

func TestTickOrderInputWindowThenDirector(t *testing.T) {
	var log []string
	s, err := New(content(&log, 1), Options{Seed: 7})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	submit(s, "echo")
	if err := s.Tick(true); err != nil {
		t.Fatalf("tick: %v", err)
	}
	want := "input|window|director"
	if got := strings.Join(log, "|"); got != want {
		t.Fatalf("tick order = %s, want %s", got, want)
	}
	log = nil
	if err := s.Tick(false); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if got := strings.Join(log, "|"); got != "window" {
		t.Fatalf("non-day tick must not roll the director, got %s", got)
	}
	if s.Days() != 1 || s.Ticks() != 2 {
		t.Fatalf("unexpected counters days=%d ticks=%d", s.Days(), s.Ticks())
	}
}

func TestOneLineRoutedPerTick(t *testing.T) {
	var log []string
	s, err := New(content(&log, 0), Options{Seed: 1})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	submit(s, "2")
	submit(s, "ECHO")
	if err := s.Tick(false); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if s.Input().Pending() != 1 {
		t.Fatalf("expected one pending line left, got %d", s.Input().Pending())
	}
	if err := s.Tick(false); err != nil {
		t.Fatalf("tick: %v", err)
	}
	d := window.DataAs[campData](s.Stack().Active())
	if len(d.lines) != 2 {
		t.Fatalf("expected both lines handled over two ticks, got %v", d.lines)
	}
}

func TestLeavingLastWindowEndsRun(t *testing.T) {
	var log []string
	s, err := New(content(&log, 1), Options{Seed: 3})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	submit(s, "leave")
	if err := s.Tick(true); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if s.Done() {
		t.Fatalf("removal must wait for the next tick")
	}
	log = nil
	if err := s.Tick(true); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if !s.Done() {
		t.Fatalf("expected empty stack")
	}
	if len(log) != 0 {
		t.Fatalf("removed window must not tick or hear events, got %v", log)
	}
	if s.Director().Listeners() != 0 {
		t.Fatalf("expected camp to unsubscribe on removal")
	}
	if s.CurrentScreenText() != "" {
		t.Fatalf("expected empty screen after shutdown")
	}
}

func TestCurrentScreenTextShowsInputLine(t *testing.T) {
	var log []string
	s, err := New(content(&log, 0), Options{Seed: 5})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	s.PushChar('e')
	s.PushChar('c')
	s.Backspace()
	want := "Camp\n\n  1. Leave camp\n  2. Echo\n\n" + window.MenuPrompt + "\n\n> e"
	if got := s.CurrentScreenText(); got != want {
		t.Fatalf("screen = %q, want %q", got, want)
	}
}

func TestNewReportsWiringErrors(t *testing.T) {
	var log []string
	c := content(&log, 0)
	c.Start = "travel"
	_, err := New(c, Options{Seed: 1})
	var lookup *factory.LookupError
	if !errors.As(err, &lookup) {
		t.Fatalf("expected lookup error for unknown start, got %v", err)
	}

	c = content(&log, 0)
	c.Windows = append(c.Windows, c.Windows[0])
	var dup *factory.DuplicateError
	if _, err := New(c, Options{Seed: 1}); !errors.As(err, &dup) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestSameSeedSameRolls(t *testing.T) {
	fires := func() []int {
		var log []string
		s, err := New(content(&log, 0.3), Options{Seed: 42})
		if err != nil {
			t.Fatalf("new: %v", err)
		}
		defer s.Destroy()
		var out []int
		for i := 0; i < 40; i++ {
			log = nil
			if err := s.Tick(true); err != nil {
				t.Fatalf("tick: %v", err)
			}
			if len(log) == 2 {
				out = append(out, i)
			}
		}
		return out
	}
	a, b := fires(), fires()
	if len(a) == 0 || len(a) == 40 {
		t.Fatalf("expected some but not all days to fire, got %v", a)
	}
	if !slices.Equal(a, b) {
		t.Fatalf("same seed produced different rolls: %v vs %v", a, b)
	}
}

func TestDestroyReleasesListeners(t *testing.T) {
	var log []string
	s, err := New(content(&log, 1), Options{Seed: 9})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	s.Destroy()
	if !s.Done() || s.Director().Listeners() != 0 || s.Env().Entities.Len() != 0 {
		t.Fatalf("expected everything released")
	}
}
