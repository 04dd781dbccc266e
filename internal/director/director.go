// Package director owns every known random event and decides, once per
// simulation day, whether one of them fires.
//
// Events are partitioned by category. Each category has a base probability;
// callers add an opaque per-tick risk factor (weather, pace) on top. When a
// roll succeeds, one automatic event from that category is chosen uniformly,
// constructed through the event factory, and broadcast to subscribers. Manual
// events are never rolled; they only fire through Trigger or Create.
package director

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/atomicstack/trailsim/internal/entity"
	"github.com/atomicstack/trailsim/internal/factory"
	"github.com/atomicstack/trailsim/internal/logging/events"
)

// Category groups events that target the same kind of entity.
type Category string

// Key uniquely identifies one event type.
type Key string

// Mode says whether an event takes part in random rolls.
type Mode int

const (
	Automatic Mode = iota
	Manual
)

func (m Mode) String() string {
	if m == Manual {
		return "manual"
	}
	return "automatic"
}

// Event is one possible random occurrence. Instances are created fresh for
// every firing and hold no identity between firings.
type Event interface {
	// Execute applies the event to target. A non-empty return names a manual
	// follow-up event the narrating window should run next.
	Execute(target entity.Entity, rng *rand.Rand) Key
	// Render describes what happened to target.
	Render(target entity.Entity) string
}

// Registration binds an event key to its category, mode, and constructor.
type Registration struct {
	Key      Key
	Category Category
	Mode     Mode
	New      func() Event
}

// Risk is the exogenous probability added to each category's base odds.
type Risk map[Category]float64

// TargetFunc picks the entity an event of the given category would act on.
// Returning nil skips the category for this tick.
type TargetFunc func(Category) entity.Entity

// Listener receives fired events.
type Listener func(target entity.Entity, evt Event)

type subscription struct {
	id     uint64
	fn     Listener
	active bool
}

// Director rolls and broadcasts events.
type Director struct {
	rng        *rand.Rand
	events     *factory.Factory[Key, Event]
	regs       map[Key]Registration
	automatic  map[Category][]Key
	odds       map[Category]float64
	categories []Category
	subs       []*subscription
	nextID     uint64
}

// New builds a director. Duplicate keys, empty categories, and odds outside
// [0, 1] are wiring errors.
func New(rng *rand.Rand, odds map[Category]float64, regs ...Registration) (*Director, error) {
	if rng == nil {
		return nil, fmt.Errorf("director: rng is nil")
	}
	table := make([]factory.Binding[Key, Event], 0, len(regs))
	for _, reg := range regs {
		if reg.Key == "" {
			return nil, fmt.Errorf("director: registration with empty key")
		}
		if reg.Category == "" {
			return nil, fmt.Errorf("director: event %q has no category", reg.Key)
		}
		table = append(table, factory.Binding[Key, Event]{Tag: reg.Key, New: reg.New})
	}
	f, err := factory.Scan("event", table)
	if err != nil {
		return nil, err
	}
	d := &Director{
		rng:       rng,
		events:    f,
		regs:      make(map[Key]Registration, len(regs)),
		automatic: make(map[Category][]Key),
		odds:      make(map[Category]float64, len(odds)),
	}
	for cat, p := range odds {
		if p < 0 || p > 1 {
			return nil, fmt.Errorf("director: odds for %q out of range: %v", cat, p)
		}
		d.odds[cat] = p
	}
	for _, reg := range regs {
		if reg.New == nil {
			continue
		}
		d.regs[reg.Key] = reg
		if reg.Mode == Automatic {
			d.automatic[reg.Category] = append(d.automatic[reg.Category], reg.Key)
		}
	}
	for cat := range d.automatic {
		d.categories = append(d.categories, cat)
	}
	sort.Slice(d.categories, func(i, j int) bool { return d.categories[i] < d.categories[j] })
	return d, nil
}

// Categories returns the categories that take part in rolls, sorted.
func (d *Director) Categories() []Category {
	out := make([]Category, len(d.categories))
	copy(out, d.categories)
	return out
}

// Registration returns the registration for key.
func (d *Director) Registration(key Key) (Registration, bool) {
	reg, ok := d.regs[key]
	return reg, ok
}

// Probability returns the effective odds for cat under risk, clamped to [0, 1].
func (d *Director) Probability(cat Category, risk Risk) float64 {
	p := d.odds[cat] + risk[cat]
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// Subscribe registers fn for every fired event. The returned function
// unsubscribes; it is safe to call more than once and from inside a
// broadcast.
func (d *Director) Subscribe(fn Listener) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	d.nextID++
	sub := &subscription{id: d.nextID, fn: fn, active: true}
	d.subs = append(d.subs, sub)
	events.Director.Subscribe(sub.id)
	return func() { d.unsubscribe(sub) }
}

func (d *Director) unsubscribe(sub *subscription) {
	if !sub.active {
		return
	}
	sub.active = false
	for i, s := range d.subs {
		if s == sub {
			d.subs = append(d.subs[:i], d.subs[i+1:]...)
			break
		}
	}
	events.Director.Unsubscribe(sub.id)
}

// Listeners returns the number of active subscriptions.
func (d *Director) Listeners() int {
	return len(d.subs)
}

// Tick rolls each category in order and fires at most one event. It reports
// whether an event fired.
func (d *Director) Tick(risk Risk, target TargetFunc) (bool, error) {
	if target == nil {
		return false, nil
	}
	for _, cat := range d.categories {
		keys := d.automatic[cat]
		if len(keys) == 0 {
			continue
		}
		subject := target(cat)
		if subject == nil {
			continue
		}
		p := d.Probability(cat, risk)
		roll := d.rng.Float64()
		events.Director.Roll(string(cat), p, roll)
		if roll >= p {
			continue
		}
		key := keys[d.rng.IntN(len(keys))]
		if err := d.fire(key, subject); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// Trigger fires key at target regardless of its mode. It is the explicit
// path for manual-only events.
func (d *Director) Trigger(key Key, target entity.Entity) error {
	if target == nil {
		return fmt.Errorf("director: trigger %q without target", key)
	}
	return d.fire(key, target)
}

// Create constructs the event bound to key without broadcasting it.
func (d *Director) Create(key Key) (Event, error) {
	return d.events.Create(key)
}

// Close drops every subscription.
func (d *Director) Close() {
	for _, sub := range append([]*subscription(nil), d.subs...) {
		d.unsubscribe(sub)
	}
}

func (d *Director) fire(key Key, target entity.Entity) error {
	evt, err := d.events.Create(key)
	if err != nil {
		return err
	}
	reg := d.regs[key]
	events.Director.Fire(string(reg.Category), string(key), target.Name(), len(d.subs))
	for _, sub := range append([]*subscription(nil), d.subs...) {
		if !sub.active {
			continue
		}
		sub.fn(target, evt)
	}
	return nil
}
