package main

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/atomicstack/trailsim/internal/app"
	"github.com/atomicstack/trailsim/internal/config"
	"github.com/atomicstack/trailsim/internal/logging"
	"github.com/atomicstack/trailsim/internal/logging/events"
)

var errNoTerminal = errors.New("no terminal attached to stdin or stdout")

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.MustLoad()
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 2
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)
	defer logging.Close()

	tty := probeTerminal()
	events.App.Start(startupTracePayload(cfg, tty))
	if tty.Detected == nil {
		logging.Error(errNoTerminal)
		fmt.Fprintf(os.Stderr, "Error: %v\n", errNoTerminal)
		return 2
	}

	if err := app.Run(cfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// startupTracePayload records the effective run settings for the trace log.
func startupTracePayload(cfg config.Config, tty terminalInfo) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath

	run := map[string]interface{}{
		"seed":     cfg.App.Seed,
		"tick":     cfg.App.TickInterval.String(),
		"day":      cfg.App.DayInterval.String(),
		"start":    cfg.App.Start,
		"persists": cfg.App.DataDir != "",
	}
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"run":    run,
		"config": cfg,
		"tty":    tty,
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	}
	return payload
}

type terminalInfo struct {
	Detected *terminalSize `json:"detected,omitempty"`
	Missing  []string      `json:"missing,omitempty"`
}

type terminalSize struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// probeTerminal reports the first of stdout or stdin that is a sized
// terminal, and names every descriptor that is not one.
func probeTerminal() terminalInfo {
	var info terminalInfo
	for _, f := range []*os.File{os.Stdout, os.Stdin} {
		name := "stdout"
		if f == os.Stdin {
			name = "stdin"
		}
		fd := int(f.Fd())
		if !term.IsTerminal(fd) {
			info.Missing = append(info.Missing, name)
			continue
		}
		if info.Detected != nil {
			continue
		}
		if w, h, err := term.GetSize(fd); err == nil {
			info.Detected = &terminalSize{Source: name, Width: w, Height: h}
		}
	}
	return info
}
