package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

const defaultLogFile = "trailsim.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
	logger       = newLogger()
	sink         io.Writer
	file         *os.File
)

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{logrus.FieldKeyMsg: "event"},
	})
	l.SetLevel(logrus.DebugLevel)
	l.SetOutput(io.Discard)
	return l
}

// Error writes errors to the shared log file.
func Error(err error) {
	if err == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	if !ensureOutput() {
		return
	}
	logger.WithError(err).Error("error")
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// TraceEnabled reports whether trace entries are currently emitted.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

// Trace appends a structured JSON entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if !traceEnabled {
		return
	}
	if !ensureOutput() {
		return
	}
	logger.WithFields(fieldsFor(payload)).Debug(event)
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	closeFile()
	sink = nil
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}

// SetOutput redirects entries to w instead of the log file. Passing nil
// restores file output.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	closeFile()
	sink = w
	if w != nil {
		logger.SetOutput(w)
	}
}

// Close releases the log file, if one is open.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeFile()
}

func ensureOutput() bool {
	if sink != nil || file != nil {
		return true
	}
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return false
	}
	file = f
	logger.SetOutput(f)
	return true
}

func closeFile() {
	if file == nil {
		return
	}
	_ = file.Close()
	file = nil
	logger.SetOutput(io.Discard)
}

func fieldsFor(payload interface{}) logrus.Fields {
	switch p := payload.(type) {
	case nil:
		return logrus.Fields{}
	case map[string]interface{}:
		return logrus.Fields(p)
	case logrus.Fields:
		return p
	default:
		return logrus.Fields{"payload": p}
	}
}
