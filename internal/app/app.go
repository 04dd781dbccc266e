package app

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/trailsim/internal/sim"
	"github.com/atomicstack/trailsim/internal/store"
	"github.com/atomicstack/trailsim/internal/trail"
	"github.com/atomicstack/trailsim/internal/ui"
	"github.com/atomicstack/trailsim/internal/window"
)

// Config describes user-provided application options.
type Config struct {
	Seed         uint64
	TickInterval time.Duration
	DayInterval  time.Duration
	Width        int
	Height       int
	DataDir      string
	Start        string
}

// NewSim builds a run of the trail game from cfg. Without a data dir scores
// and tombstones live only as long as the process.
func NewSim(cfg Config) (*sim.Sim, error) {
	var st store.Store = store.NewMemoryStore()
	if cfg.DataDir != "" {
		yst, err := store.NewYAMLStore(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		st = yst
	}
	content := trail.Content(st)
	if cfg.Start != "" {
		content.Start = window.Kind(cfg.Start)
	}
	return sim.New(content, sim.Options{Seed: cfg.Seed})
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	s, err := NewSim(cfg)
	if err != nil {
		return fmt.Errorf("start simulation: %w", err)
	}
	defer s.Destroy()
	model := ui.NewModel(s, ui.Options{
		Width:        cfg.Width,
		Height:       cfg.Height,
		TickInterval: cfg.TickInterval,
		DayInterval:  cfg.DayInterval,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	if err != nil {
		return err
	}
	if msg := model.Err(); msg != "" {
		return errors.New(msg)
	}
	return nil
}
