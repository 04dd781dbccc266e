// Package sim is the run context: it owns the window stack, the event
// director, and the input pipeline for one run, and advances them together
// in a fixed order every tick.
package sim

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/atomicstack/trailsim/internal/director"
	"github.com/atomicstack/trailsim/internal/entity"
	"github.com/atomicstack/trailsim/internal/factory"
	"github.com/atomicstack/trailsim/internal/input"
	"github.com/atomicstack/trailsim/internal/logging/events"
	"github.com/atomicstack/trailsim/internal/window"
)

// Content is everything a game plugs into the core.
type Content struct {
	Windows []factory.Binding[window.Kind, window.Controller]
	Forms   []factory.Binding[window.FormKind, window.Form]
	Events  []director.Registration
	Odds    map[director.Category]float64
	Start   window.Kind
	// World builds content-owned state once the env exists. It may register
	// entities on env.Entities.
	World func(env *window.Env) (any, error)
	// Risk supplies the director's per-day risk factor.
	Risk func(env *window.Env) director.Risk
	// Target picks the entity an event of cat would act on.
	Target func(env *window.Env, cat director.Category) entity.Entity
}

// Options tune a run. A zero Seed picks one from the clock.
type Options struct {
	Seed uint64
}

// Sim is one run.
type Sim struct {
	content  Content
	seed     uint64
	env      *window.Env
	stack    *window.Stack
	director *director.Director
	input    *input.Pipeline
	ticks    int
	days     int
}

// New wires content into a fresh run and pushes the start window. Any wiring
// mistake (duplicate tags, unknown start kind) is returned here.
func New(content Content, opts Options) (*Sim, error) {
	if content.Start == "" {
		return nil, fmt.Errorf("sim: no start window")
	}
	windows, err := factory.Scan("window", content.Windows)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	forms, err := factory.Scan("form", content.Forms)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	dir, err := director.New(rng, content.Odds, content.Events...)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	env := &window.Env{
		RunID:    ulid.Make(),
		Forms:    forms,
		Director: dir,
		Entities: entity.NewRegistry(),
		Rand:     rng,
	}
	if content.World != nil {
		world, err := content.World(env)
		if err != nil {
			return nil, fmt.Errorf("sim: build world: %w", err)
		}
		env.World = world
	}
	s := &Sim{
		content:  content,
		seed:     seed,
		env:      env,
		stack:    window.NewStack(env, windows),
		director: dir,
		input:    input.New(),
	}
	events.App.Run(env.RunID.String(), seed, string(content.Start))
	if _, err := s.stack.Push(content.Start); err != nil {
		s.Destroy()
		return nil, fmt.Errorf("sim: %w", err)
	}
	return s, nil
}

func (s *Sim) PushChar(r rune) bool { return s.input.PushChar(r) }
func (s *Sim) Backspace()           { s.input.Backspace() }
func (s *Sim) Submit()              { s.input.Submit() }

// Tick advances the run by one frame:
//
//  1. windows marked for removal are removed;
//  2. at most one submitted line is routed to the top window;
//  3. the top window and its form tick;
//  4. on day ticks the director rolls for an event.
//
// The director always fires after the window tick, so a listener that
// pushes a narration window sees it ticked from the next frame on.
func (s *Sim) Tick(day bool) error {
	s.ticks++
	s.stack.Drain()
	if line, ok := s.input.Next(); ok {
		if err := s.stack.Route(line); err != nil {
			return err
		}
	}
	if err := s.stack.TickTop(day); err != nil {
		return err
	}
	if !day || s.stack.Empty() {
		return nil
	}
	s.days++
	return s.roll()
}

func (s *Sim) roll() error {
	if s.content.Target == nil {
		return nil
	}
	var risk director.Risk
	if s.content.Risk != nil {
		risk = s.content.Risk(s.env)
	}
	_, err := s.director.Tick(risk, func(cat director.Category) entity.Entity {
		return s.content.Target(s.env, cat)
	})
	return err
}

// CurrentScreenText is the text the host paints this frame. When the top
// window accepts input the line being typed is shown under it.
func (s *Sim) CurrentScreenText() string {
	top := s.stack.Active()
	if top == nil {
		return ""
	}
	text := top.Render()
	if top.AcceptsInput() {
		text += "\n\n> " + s.input.Buffer()
	}
	return text
}

// Done reports whether the stack is empty, which ends the run.
func (s *Sim) Done() bool {
	return s.stack.Empty()
}

// Destroy removes every window, drops director listeners, and forgets
// pending input and entities.
func (s *Sim) Destroy() {
	s.stack.Destroy()
	s.director.Close()
	s.input.Reset()
	s.env.Entities.Clear()
	events.App.Stop(s.env.RunID.String(), s.ticks)
}

func (s *Sim) Env() *window.Env             { return s.env }
func (s *Sim) Stack() *window.Stack         { return s.stack }
func (s *Sim) Director() *director.Director { return s.director }
func (s *Sim) Input() *input.Pipeline       { return s.input }
func (s *Sim) RunID() ulid.ULID             { return s.env.RunID }
func (s *Sim) Seed() uint64                 { return s.seed }
func (s *Sim) Ticks() int                   { return s.ticks }
func (s *Sim) Days() int                    { return s.days }
