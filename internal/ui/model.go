package ui

import (
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/trailsim/internal/clock"
	"github.com/atomicstack/trailsim/internal/logging"
	"github.com/atomicstack/trailsim/internal/sim"
	"github.com/atomicstack/trailsim/internal/theme"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// TickMsg advances the simulation by one frame at the given wall time.
type TickMsg time.Time

// Options configure the host loop. A zero TickInterval disables automatic
// ticking; tests then send TickMsg themselves.
type Options struct {
	Width        int
	Height       int
	TickInterval time.Duration
	DayInterval  time.Duration
}

// Model implements the Bubble Tea model around one simulation run.
type Model struct {
	sim          *sim.Sim
	gate         *clock.Gate
	tickInterval time.Duration
	width        int
	height       int
	fixedWidth   bool
	fixedHeight  bool
	errMsg       string
	quitting     bool
	inputCursor  cursor.Model

	handlers map[reflect.Type]msgHandler
}

// NewModel wraps s. The model does not own s; callers destroy it after the
// program exits.
func NewModel(s *sim.Sim, opts Options) *Model {
	m := &Model{
		sim:          s,
		gate:         clock.NewGate(opts.DayInterval),
		tickInterval: opts.TickInterval,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Input != nil {
		c.TextStyle = styles.Input.Copy()
	}
	c.SetChar(" ")
	c.SetMode(cursor.CursorStatic)
	c.Focus()
	m.inputCursor = c
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	return m.scheduleTick()
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(TickMsg{}):           m.handleTickMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleTickMsg(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(TickMsg)
	if !ok || m.quitting {
		return nil
	}
	day := m.gate.Ready(time.Time(tick))
	if err := m.sim.Tick(day); err != nil {
		logging.Error(err)
		m.errMsg = err.Error()
		return m.quit()
	}
	if m.sim.Done() {
		return m.quit()
	}
	return m.scheduleTick()
}

func (m *Model) scheduleTick() tea.Cmd {
	if m.tickInterval <= 0 {
		return nil
	}
	return tea.Tick(m.tickInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	return tea.Quit
}

// Err returns the error that stopped the run, if any.
func (m *Model) Err() string { return m.errMsg }

// Quitting reports whether the model has asked the program to exit.
func (m *Model) Quitting() bool { return m.quitting }

// Sim exposes the hosted run.
func (m *Model) Sim() *sim.Sim { return m.sim }
