// Package input accumulates keystrokes into a line buffer and queues
// submitted lines until the simulation drains them, one per tick.
package input

import (
	"unicode"
	"unicode/utf8"

	"github.com/atomicstack/trailsim/internal/logging/events"
)

// MaxLineLength bounds the line buffer. Commands and party names fit well
// inside it.
const MaxLineLength = 64

// Pipeline is the only entry point for player input.
type Pipeline struct {
	buffer  []rune
	pending []string
}

// New returns an empty pipeline.
func New() *Pipeline {
	return &Pipeline{}
}

// PushChar appends r to the line buffer and reports whether it was kept.
// Control characters are ignored; a full buffer refuses the rune.
func (p *Pipeline) PushChar(r rune) bool {
	if r == utf8.RuneError || unicode.IsControl(r) {
		return false
	}
	if len(p.buffer) >= MaxLineLength {
		events.Input.Refused(r, MaxLineLength)
		return false
	}
	p.buffer = append(p.buffer, r)
	return true
}

// Full reports whether the buffer has reached MaxLineLength.
func (p *Pipeline) Full() bool {
	return len(p.buffer) >= MaxLineLength
}

// PushString appends every rune in s.
func (p *Pipeline) PushString(s string) {
	for _, r := range s {
		p.PushChar(r)
	}
}

// Backspace removes the last character; it does nothing on an empty buffer.
func (p *Pipeline) Backspace() {
	if len(p.buffer) == 0 {
		return
	}
	p.buffer = p.buffer[:len(p.buffer)-1]
}

// Submit queues the buffer as a line and clears it. Empty lines are queued
// too: prompt-only dialogs treat a bare Enter as their response.
func (p *Pipeline) Submit() {
	line := string(p.buffer)
	p.buffer = p.buffer[:0]
	p.pending = append(p.pending, line)
	events.Input.Submit(line, len(p.pending))
}

// Buffer returns the line being typed.
func (p *Pipeline) Buffer() string {
	return string(p.buffer)
}

// Pending returns the number of submitted lines not yet drained.
func (p *Pipeline) Pending() int {
	return len(p.pending)
}

// Next removes and returns the oldest submitted line.
func (p *Pipeline) Next() (string, bool) {
	if len(p.pending) == 0 {
		return "", false
	}
	line := p.pending[0]
	p.pending[0] = ""
	p.pending = p.pending[1:]
	return line, true
}

// Reset discards the buffer and every pending line.
func (p *Pipeline) Reset() {
	p.buffer = nil
	p.pending = nil
}
