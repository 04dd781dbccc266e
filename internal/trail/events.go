package trail

import (
	"fmt"
	"math/rand/v2"

	"github.com/atomicstack/trailsim/internal/director"
	"github.com/atomicstack/trailsim/internal/entity"
)

const (
	CategoryPerson  director.Category = "person"
	CategoryVehicle director.Category = "vehicle"
	CategoryWeather director.Category = "weather"
)

const (
	EventSnakebite   director.Key = "snakebite"
	EventIllness     director.Key = "illness"
	EventBrokenWheel director.Key = "broken-wheel"
	EventNoSparePart director.Key = "no-spare-part"
	EventThief       director.Key = "thief"
	EventHeavyFog    director.Key = "heavy-fog"
)

// Odds are the base daily probabilities per category.
var Odds = map[director.Category]float64{
	CategoryPerson:  0.04,
	CategoryVehicle: 0.03,
	CategoryWeather: 0.05,
}

// Events lists every event the director knows.
func Events() []director.Registration {
	return []director.Registration{
		{Key: EventSnakebite, Category: CategoryPerson, Mode: director.Automatic, New: func() director.Event { return &snakebite{} }},
		{Key: EventIllness, Category: CategoryPerson, Mode: director.Automatic, New: func() director.Event { return &illness{} }},
		{Key: EventBrokenWheel, Category: CategoryVehicle, Mode: director.Automatic, New: func() director.Event { return &brokenWheel{} }},
		{Key: EventNoSparePart, Category: CategoryVehicle, Mode: director.Manual, New: func() director.Event { return &noSparePart{} }},
		{Key: EventThief, Category: CategoryVehicle, Mode: director.Automatic, New: func() director.Event { return &thief{} }},
		{Key: EventHeavyFog, Category: CategoryWeather, Mode: director.Automatic, New: func() director.Event { return &heavyFog{} }},
	}
}

type snakebite struct{ damage int }

func (e *snakebite) Execute(target entity.Entity, rng *rand.Rand) director.Key {
	if p, ok := target.(*Person); ok {
		e.damage = 20 + rng.IntN(10)
		p.Hurt(e.damage)
	}
	return ""
}

func (e *snakebite) Render(target entity.Entity) string {
	if p, ok := target.(*Person); ok && p.Dead() {
		return fmt.Sprintf("%s was bitten by a snake and has died.", target.Name())
	}
	return fmt.Sprintf("%s was bitten by a snake.", target.Name())
}

var illnesses = []string{"dysentery", "cholera", "typhoid fever", "measles", "exhaustion"}

type illness struct{ name string }

func (e *illness) Execute(target entity.Entity, rng *rand.Rand) director.Key {
	p, ok := target.(*Person)
	if !ok {
		return ""
	}
	e.name = illnesses[rng.IntN(len(illnesses))]
	p.Illness = e.name
	p.Hurt(10)
	return ""
}

func (e *illness) Render(target entity.Entity) string {
	return fmt.Sprintf("%s has %s.", target.Name(), e.name)
}

type brokenWheel struct{ replaced bool }

func (e *brokenWheel) Execute(target entity.Entity, _ *rand.Rand) director.Key {
	w, ok := target.(*Wagon)
	if !ok {
		return ""
	}
	if w.SpareWheels > 0 {
		w.SpareWheels--
		e.replaced = true
		return ""
	}
	return EventNoSparePart
}

func (e *brokenWheel) Render(entity.Entity) string {
	if e.replaced {
		return "A wagon wheel broke. You replaced it with your spare."
	}
	return "A wagon wheel broke."
}

// noSparePart only fires as the follow-up of a breakdown without spares.
type noSparePart struct{}

const repairDays = 3

func (e *noSparePart) Execute(target entity.Entity, _ *rand.Rand) director.Key {
	if w, ok := target.(*Wagon); ok {
		w.DelayDays += repairDays
	}
	return ""
}

func (e *noSparePart) Render(entity.Entity) string {
	return fmt.Sprintf("You have no spare wagon wheel. You lose %d days repairing the old one.", repairDays)
}

type thief struct{ food int }

func (e *thief) Execute(target entity.Entity, rng *rand.Rand) director.Key {
	if w, ok := target.(*Wagon); ok {
		e.food = min(10+rng.IntN(40), w.Food)
		w.Food -= e.food
	}
	return ""
}

func (e *thief) Render(entity.Entity) string {
	if e.food == 0 {
		return "A thief comes during the night but finds nothing worth taking."
	}
	return fmt.Sprintf("A thief comes during the night and steals %d pounds of food.", e.food)
}

type heavyFog struct{}

func (e *heavyFog) Execute(target entity.Entity, _ *rand.Rand) director.Key {
	if c, ok := target.(*Climate); ok {
		c.LostDays++
	}
	return ""
}

func (e *heavyFog) Render(entity.Entity) string {
	return "Heavy fog. You lose 1 day."
}
