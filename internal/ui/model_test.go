package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atomicstack/trailsim/internal/sim"
	"github.com/atomicstack/trailsim/internal/store"
	"github.com/atomicstack/trailsim/internal/testutil"
	"github.com/atomicstack/trailsim/internal/trail"
)

func newTestModel(t *testing.T, opts Options) (*Harness, *sim.Sim) {
	t.Helper()
	content := trail.Content(store.NewMemoryStore())
	content.Odds = nil
	s, err := sim.New(content, sim.Options{Seed: 21})
	if err != nil {
		t.Fatalf("new sim: %v", err)
	}
	t.Cleanup(s.Destroy)
	return NewHarness(NewModel(s, opts)), s
}

func TestMainMenuScreenGolden(t *testing.T) {
	h, _ := newTestModel(t, Options{})
	testutil.AssertGolden(t, "main_menu.golden", h.Model().Screen())
}

func TestTypingAndEnterOpensNewGame(t *testing.T) {
	h, s := newTestModel(t, Options{})
	h.Type("1")
	if got := s.Input().Buffer(); got != "1" {
		t.Fatalf("expected buffer 1, got %q", got)
	}
	h.Enter()
	if top := s.Stack().Active(); top.Kind() != trail.KindNewGame {
		t.Fatalf("expected NewGame, got %s", top.Kind())
	}
	if !strings.Contains(h.View(), "Many kinds of people made the trip to Oregon.") {
		t.Fatalf("unexpected view:\n%s", h.View())
	}
}

func TestKeyEditing(t *testing.T) {
	h, s := newTestModel(t, Options{})
	h.Type("ab")
	h.Send(tea.KeyMsg{Type: tea.KeyBackspace})
	h.Type(" c")
	h.Send(tea.KeyMsg{Type: tea.KeyTab})
	if got := s.Input().Buffer(); got != "a c" {
		t.Fatalf("expected %q, got %q", "a c", got)
	}
	if !strings.HasSuffix(h.Model().Screen(), "> a c") {
		t.Fatalf("expected input line on screen:\n%s", h.Model().Screen())
	}
}

func TestCtrlCQuits(t *testing.T) {
	h, _ := newTestModel(t, Options{})
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !h.Quit() || !h.Model().Quitting() {
		t.Fatalf("expected quit on ctrl+c")
	}
	if h.View() != "" {
		t.Fatalf("expected empty view after quit")
	}
}

func TestEmptyStackQuits(t *testing.T) {
	h, s := newTestModel(t, Options{})
	h.Type("end")
	h.Enter()
	if h.Quit() {
		t.Fatalf("removal is deferred; the program must still run")
	}
	h.Tick()
	if !s.Done() || !h.Quit() {
		t.Fatalf("expected quit once the stack is empty")
	}
}

func TestDayGateControlsSimulationDays(t *testing.T) {
	h, s := newTestModel(t, Options{DayInterval: time.Hour})
	h.Tick()
	h.Tick()
	h.Advance(30 * time.Minute)
	h.Tick()
	if s.Days() != 1 {
		t.Fatalf("expected one day within the first hour, got %d", s.Days())
	}
	h.Advance(30 * time.Minute)
	h.Tick()
	if s.Days() != 2 || s.Ticks() != 4 {
		t.Fatalf("expected 2 days over 4 ticks, got days=%d ticks=%d", s.Days(), s.Ticks())
	}
}

func TestResizeWrapsAndClips(t *testing.T) {
	h, _ := newTestModel(t, Options{})
	h.Send(tea.WindowSizeMsg{Width: 20, Height: 5})
	lines := strings.Split(h.Model().Screen(), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d:\n%s", len(lines), h.Model().Screen())
	}
	for _, line := range lines {
		if lipgloss.Width(line) > 20 {
			t.Fatalf("line wider than 20 columns: %q", line)
		}
	}
	if strings.TrimSpace(lines[len(lines)-1]) != ">" {
		t.Fatalf("input line must stay visible, got %q", lines[len(lines)-1])
	}
}

func TestFixedSizeIgnoresResize(t *testing.T) {
	h, _ := newTestModel(t, Options{Width: 30, Height: 40})
	h.Send(tea.WindowSizeMsg{Width: 10, Height: 3})
	if m := h.Model(); m.width != 30 || m.height != 40 {
		t.Fatalf("fixed size overridden: %dx%d", m.width, m.height)
	}
}
