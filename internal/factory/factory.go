// Package factory maps closed sets of string tags to constructors.
//
// A registration table is a literal slice of bindings built once at start-up.
// Scan validates the table (duplicate tags are a wiring error) and caches the
// constructors so Create never has to consult a hand-written switch. The same
// generic type serves window kinds, form kinds, and director event keys.
package factory

import (
	"sort"
)

// Binding ties a tag to the constructor of the concrete type it names.
type Binding[K ~string, V any] struct {
	Tag K
	New func() V
}

// Bind is shorthand for building a Binding literal.
func Bind[K ~string, V any](tag K, ctor func() V) Binding[K, V] {
	return Binding[K, V]{Tag: tag, New: ctor}
}

// Factory is a cached tag to constructor lookup.
type Factory[K ~string, V any] struct {
	space string
	ctors map[K]func() V
	tags  []K
}

// Scan walks the table once and caches every instantiable binding. Bindings
// without a constructor are skipped before duplicates are counted, so an
// abstract binding may share a tag with its concrete one. Two instantiable
// bindings for the same tag fail the scan with a *DuplicateError listing
// every ambiguous tag.
func Scan[K ~string, V any](space string, table []Binding[K, V]) (*Factory[K, V], error) {
	f := &Factory[K, V]{
		space: space,
		ctors: make(map[K]func() V, len(table)),
	}
	seen := make(map[K]int, len(table))
	var dupes []string
	for _, b := range table {
		if b.New == nil {
			continue
		}
		seen[b.Tag]++
		if seen[b.Tag] == 2 {
			dupes = append(dupes, string(b.Tag))
		}
		f.ctors[b.Tag] = b.New
	}
	if len(dupes) > 0 {
		sort.Strings(dupes)
		return nil, &DuplicateError{Space: space, Tags: dupes}
	}
	f.tags = make([]K, 0, len(f.ctors))
	for tag := range f.ctors {
		f.tags = append(f.tags, tag)
	}
	sort.Slice(f.tags, func(i, j int) bool { return f.tags[i] < f.tags[j] })
	return f, nil
}

// MustScan is Scan for package-level tables; it panics on a wiring error.
func MustScan[K ~string, V any](space string, table []Binding[K, V]) *Factory[K, V] {
	f, err := Scan(space, table)
	if err != nil {
		panic(err)
	}
	return f
}

// Create instantiates the type bound to tag.
func (f *Factory[K, V]) Create(tag K) (V, error) {
	var zero V
	if f == nil {
		return zero, &LookupError{Tag: string(tag)}
	}
	ctor, ok := f.ctors[tag]
	if !ok {
		return zero, &LookupError{
			Space:       f.space,
			Tag:         string(tag),
			Suggestions: suggest(string(tag), f.tagStrings()),
		}
	}
	return ctor(), nil
}

// Has reports whether tag has a constructor.
func (f *Factory[K, V]) Has(tag K) bool {
	if f == nil {
		return false
	}
	_, ok := f.ctors[tag]
	return ok
}

// Tags returns the known tags in sorted order.
func (f *Factory[K, V]) Tags() []K {
	if f == nil {
		return nil
	}
	out := make([]K, len(f.tags))
	copy(out, f.tags)
	return out
}

// Len returns the number of cached constructors.
func (f *Factory[K, V]) Len() int {
	if f == nil {
		return 0
	}
	return len(f.ctors)
}

// Space names the tag space, e.g. "window" or "event".
func (f *Factory[K, V]) Space() string {
	if f == nil {
		return ""
	}
	return f.space
}

func (f *Factory[K, V]) tagStrings() []string {
	out := make([]string, len(f.tags))
	for i, tag := range f.tags {
		out[i] = string(tag)
	}
	return out
}
