// Package entity defines what the event director needs from the things it
// targets, plus a per-run registry of them.
package entity

import (
	"fmt"
	"sort"
)

// Entity is anything an event can target. Name must be stable for the run.
type Entity interface {
	Name() string
}

// Registry holds the run's entities by name, in insertion order.
type Registry struct {
	order  []string
	byName map[string]Entity
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Entity)}
}

// Add registers e. Names must be unique within a run.
func (r *Registry) Add(e Entity) error {
	if e == nil {
		return fmt.Errorf("entity is nil")
	}
	name := e.Name()
	if name == "" {
		return fmt.Errorf("entity name is empty")
	}
	if _, ok := r.byName[name]; ok {
		return fmt.Errorf("entity %q already registered", name)
	}
	r.byName[name] = e
	r.order = append(r.order, name)
	return nil
}

// Get returns the entity registered under name.
func (r *Registry) Get(name string) (Entity, bool) {
	e, ok := r.byName[name]
	return e, ok
}

// Remove forgets the entity registered under name.
func (r *Registry) Remove(name string) {
	if _, ok := r.byName[name]; !ok {
		return
	}
	delete(r.byName, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// All returns every entity in insertion order.
func (r *Registry) All() []Entity {
	out := make([]Entity, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// Names returns the registered names sorted alphabetically.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	sort.Strings(out)
	return out
}

// Len returns the number of registered entities.
func (r *Registry) Len() int {
	return len(r.order)
}

// Clear removes every entity.
func (r *Registry) Clear() {
	r.order = nil
	r.byName = make(map[string]Entity)
}

// Of returns every registered entity that has type T, in insertion order.
func Of[T Entity](r *Registry) []T {
	var out []T
	for _, e := range r.All() {
		if v, ok := e.(T); ok {
			out = append(out, v)
		}
	}
	return out
}
