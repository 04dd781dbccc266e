package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/trailsim/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envSeed    = "TRAILSIM_SEED"
	envTick    = "TRAILSIM_TICK"
	envDay     = "TRAILSIM_DAY"
	envWidth   = "TRAILSIM_WIDTH"
	envHeight  = "TRAILSIM_HEIGHT"
	envDataDir = "TRAILSIM_DATA_DIR"
	envStart   = "TRAILSIM_START"
	envTrace   = "TRAILSIM_TRACE"
	envLogFile = "TRAILSIM_LOG_FILE"
)

const (
	defaultTick  = 50 * time.Millisecond
	defaultDay   = time.Second
	defaultStart = "MainMenu"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("trailsim", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	seed := fs.Uint64("seed", envOrUint(env, envSeed, 0), "random seed (0 picks one from the clock)")
	tick := fs.Duration("tick", envOrDuration(env, envTick, defaultTick), "interval between simulation ticks")
	day := fs.Duration("day", envOrDuration(env, envDay, defaultDay), "wall time per simulation day (0 makes every tick a day)")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	dataDir := fs.String("data-dir", envOrDefault(env, envDataDir, ""), "directory for the top ten and tombstones (empty keeps them in memory)")
	start := fs.String("start", envOrDefault(env, envStart, defaultStart), "window kind to open first")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	cfg := Config{
		App: app.Config{
			Seed:         *seed,
			TickInterval: *tick,
			DayInterval:  *day,
			Width:        *width,
			Height:       *height,
			DataDir:      *dataDir,
			Start:        *start,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"seed":    strconv.FormatUint(*seed, 10),
			"tick":    tick.String(),
			"day":     day.String(),
			"width":   strconv.Itoa(*width),
			"height":  strconv.Itoa(*height),
			"dataDir": *dataDir,
			"start":   *start,
			"trace":   strconv.FormatBool(*trace),
			"logFile": *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrUint(env map[string]string, key string, fallback uint64) uint64 {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if cfg.App.TickInterval <= 0 {
		return fmt.Errorf("tick must be > 0 (got %s)", cfg.App.TickInterval)
	}
	if cfg.App.DayInterval < 0 {
		return fmt.Errorf("day must be >= 0 (got %s)", cfg.App.DayInterval)
	}
	if strings.TrimSpace(cfg.App.Start) == "" {
		return fmt.Errorf("start window is empty")
	}
	return nil
}
