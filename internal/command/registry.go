// Package command holds a window's menu of verbs: a closed set of tags, each
// bound to a description and a callback, rendered as a numbered list.
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/atomicstack/trailsim/internal/format/table"
	"github.com/atomicstack/trailsim/internal/logging/events"
)

var (
	ErrEmptyTag      = errors.New("command tag is empty")
	ErrDuplicateTag  = errors.New("command tag already registered")
	ErrUndeclaredTag = errors.New("command tag is not declared for this menu")
	ErrNilCallback   = errors.New("command callback is nil")
)

// Callback runs when its command is selected. Errors are wiring failures
// (for example pushing an unknown window) and propagate to the host loop.
type Callback func() error

// Entry is one registered command.
type Entry[T ~string] struct {
	Tag         T
	Description string
	Callback    Callback
}

// Registry is an ordered, immutable-after-registration set of commands.
type Registry[T ~string] struct {
	entries  []Entry[T]
	index    map[string]int
	declared map[T]struct{}
}

// New creates an empty registry. When declared tags are supplied, only those
// tags may be registered.
func New[T ~string](declared ...T) *Registry[T] {
	r := &Registry[T]{index: make(map[string]int)}
	if len(declared) > 0 {
		r.declared = make(map[T]struct{}, len(declared))
		for _, tag := range declared {
			r.declared[tag] = struct{}{}
		}
	}
	return r
}

// Add registers a command. Tags are unique by case-insensitive comparison.
func (r *Registry[T]) Add(tag T, callback Callback, description string) error {
	name := strings.TrimSpace(string(tag))
	if name == "" {
		return ErrEmptyTag
	}
	if callback == nil {
		return fmt.Errorf("%w: %s", ErrNilCallback, name)
	}
	if r.declared != nil {
		if _, ok := r.declared[tag]; !ok {
			return fmt.Errorf("%w: %s", ErrUndeclaredTag, name)
		}
	}
	key := strings.ToLower(name)
	if _, ok := r.index[key]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateTag, name)
	}
	if description == "" {
		description = name
	}
	r.index[key] = len(r.entries)
	r.entries = append(r.entries, Entry[T]{Tag: tag, Description: description, Callback: callback})
	return nil
}

// MustAdd is Add for window construction code; it panics on a wiring error.
func (r *Registry[T]) MustAdd(tag T, callback Callback, description string) *Registry[T] {
	if err := r.Add(tag, callback, description); err != nil {
		panic(err)
	}
	return r
}

// Len returns the number of registered commands.
func (r *Registry[T]) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// Entries returns the commands in registration order.
func (r *Registry[T]) Entries() []Entry[T] {
	if r == nil {
		return nil
	}
	out := make([]Entry[T], len(r.entries))
	copy(out, r.entries)
	return out
}

// Render lists the commands numbered from 1 in registration order.
func (r *Registry[T]) Render() string {
	if r.Len() == 0 {
		return ""
	}
	rows := make([][]string, len(r.entries))
	for i, entry := range r.entries {
		rows[i] = []string{strconv.Itoa(i+1) + ".", entry.Description}
	}
	lines := table.Indent(table.Format(rows, []table.Alignment{table.AlignRight, table.AlignLeft}), "  ")
	return strings.Join(lines, "\n")
}

// Dispatch runs the command selected by line: a 1-based index first, then the
// tag name compared case-insensitively. Unrecognised input is not an error;
// it reports false so the caller can ignore it.
func (r *Registry[T]) Dispatch(line string) (bool, error) {
	if r.Len() == 0 {
		return false, nil
	}
	text := strings.TrimSpace(line)
	if text == "" {
		return false, nil
	}
	idx, ok := r.lookup(text)
	if !ok {
		events.Command.NoMatch(text, r.closest(text))
		return false, nil
	}
	entry := r.entries[idx]
	events.Command.Dispatch(string(entry.Tag), entry.Description, idx+1)
	if err := entry.Callback(); err != nil {
		events.Command.Error(string(entry.Tag), err)
		return true, err
	}
	return true, nil
}

func (r *Registry[T]) lookup(text string) (int, bool) {
	if n, err := strconv.Atoi(text); err == nil {
		if n >= 1 && n <= len(r.entries) {
			return n - 1, true
		}
		return 0, false
	}
	idx, ok := r.index[strings.ToLower(text)]
	return idx, ok
}

func (r *Registry[T]) closest(text string) string {
	best := ""
	bestDist := -1
	lower := strings.ToLower(text)
	for _, entry := range r.entries {
		d := levenshtein.ComputeDistance(lower, strings.ToLower(string(entry.Tag)))
		if bestDist < 0 || d < bestDist {
			best, bestDist = string(entry.Tag), d
		}
	}
	return best
}
