package trail

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/atomicstack/trailsim/internal/entity"
	"github.com/atomicstack/trailsim/internal/store"
)

const (
	// TrailLength is the distance from Independence to the Willamette Valley.
	TrailLength = 2040
	PartySize   = 4
	MaxHealth   = 100

	startFood        = 1500
	startSpareWheels = 1
	rationPerPerson  = 2
)

type Landmark struct {
	Name    string
	Mileage int
}

var landmarks = []Landmark{
	{"Kansas River crossing", 102},
	{"Big Blue River crossing", 185},
	{"Fort Kearney", 304},
	{"Chimney Rock", 554},
	{"Fort Laramie", 640},
	{"Independence Rock", 830},
	{"South Pass", 932},
	{"Fort Bridger", 989},
	{"Soda Springs", 1151},
	{"Fort Hall", 1208},
	{"Snake River crossing", 1390},
	{"Fort Boise", 1534},
	{"Blue Mountains", 1648},
	{"The Dalles", 1863},
	{"Willamette Valley", TrailLength},
}

// NextLandmark returns the first landmark past mileage.
func NextLandmark(mileage int) (Landmark, bool) {
	for _, l := range landmarks {
		if l.Mileage > mileage {
			return l, true
		}
	}
	return Landmark{}, false
}

type Profession int

const (
	Banker Profession = iota + 1
	Carpenter
	Farmer
)

func (p Profession) String() string {
	switch p {
	case Banker:
		return "banker"
	case Carpenter:
		return "carpenter"
	case Farmer:
		return "farmer"
	default:
		return "unknown"
	}
}

// Money is the cash a profession starts with.
func (p Profession) Money() int {
	switch p {
	case Banker:
		return 1600
	case Carpenter:
		return 800
	default:
		return 400
	}
}

// ScoreMultiplier rewards the harder professions on arrival.
func (p Profession) ScoreMultiplier() int {
	switch p {
	case Carpenter:
		return 2
	case Farmer:
		return 3
	default:
		return 1
	}
}

type Pace int

const (
	Steady Pace = iota
	Strenuous
	Grueling
)

func (p Pace) String() string {
	switch p {
	case Strenuous:
		return "strenuous"
	case Grueling:
		return "grueling"
	default:
		return "steady"
	}
}

func (p Pace) Miles() int {
	return [...]int{12, 16, 20}[p]
}

func (p Pace) strain() int {
	return [...]int{0, 1, 3}[p]
}

func (p Pace) risk() float64 {
	return [...]float64{0, 0.02, 0.05}[p]
}

type Person struct {
	name    string
	Health  int
	Illness string
}

func NewPerson(name string) *Person {
	return &Person{name: name, Health: MaxHealth}
}

func (p *Person) Name() string { return p.name }
func (p *Person) Dead() bool   { return p.Health <= 0 }

// Hurt lowers health, never below zero.
func (p *Person) Hurt(n int) {
	p.Health = max(p.Health-n, 0)
}

func (p *Person) Heal(n int) {
	if p.Dead() {
		return
	}
	p.Health = min(p.Health+n, MaxHealth)
}

// Wagon carries the party's supplies.
type Wagon struct {
	Food        int
	Money       int
	SpareWheels int
	// DelayDays are days lost to repairs; they pass without progress.
	DelayDays int
}

func (w *Wagon) Name() string { return "wagon" }

type Climate struct {
	Condition string
	Severity  float64
	// LostDays are days lost to the weather.
	LostDays int
}

func (c *Climate) Name() string { return "weather" }

var conditions = []struct {
	name     string
	severity float64
	weight   int
}{
	{"clear", 0, 5},
	{"cloudy", 0.1, 3},
	{"rain", 0.4, 2},
	{"storm", 0.8, 1},
}

// Roll picks the day's weather.
func (c *Climate) Roll(rng *rand.Rand) {
	total := 0
	for _, cond := range conditions {
		total += cond.weight
	}
	n := rng.IntN(total)
	for _, cond := range conditions {
		if n < cond.weight {
			c.Condition, c.Severity = cond.name, cond.severity
			return
		}
		n -= cond.weight
	}
}

// World is the trail's simulation state. One exists per run.
type World struct {
	Store      store.Store
	Profession Profession
	Party      []*Person
	Wagon      *Wagon
	Climate    *Climate
	Pace       Pace
	Mileage    int
	Day        int
	// Moving is true while the wagon is on the trail; events only target a
	// moving party.
	Moving bool
}

// NewWorld registers the wagon and the weather on entities.
func NewWorld(st store.Store, entities *entity.Registry) (*World, error) {
	w := &World{
		Store:   st,
		Wagon:   &Wagon{},
		Climate: &Climate{Condition: "clear"},
	}
	if err := entities.Add(w.Wagon); err != nil {
		return nil, err
	}
	if err := entities.Add(w.Climate); err != nil {
		return nil, err
	}
	return w, nil
}

// Start resets the journey for a new party. Persons from an earlier party
// are dropped from entities.
func (w *World) Start(entities *entity.Registry, profession Profession, names []string) error {
	for _, p := range w.Party {
		entities.Remove(p.Name())
	}
	w.Party = w.Party[:0]
	for _, name := range names {
		p := NewPerson(name)
		if err := entities.Add(p); err != nil {
			return fmt.Errorf("add party member: %w", err)
		}
		w.Party = append(w.Party, p)
	}
	w.Profession = profession
	*w.Wagon = Wagon{Food: startFood, Money: profession.Money(), SpareWheels: startSpareWheels}
	*w.Climate = Climate{Condition: "clear"}
	w.Pace = Steady
	w.Mileage = 0
	w.Day = 0
	w.Moving = false
	return nil
}

func (w *World) Leader() *Person {
	if len(w.Party) == 0 {
		return nil
	}
	return w.Party[0]
}

func (w *World) Living() []*Person {
	var out []*Person
	for _, p := range w.Party {
		if !p.Dead() {
			out = append(out, p)
		}
	}
	return out
}

func (w *World) Dead() bool {
	return len(w.Party) > 0 && len(w.Living()) == 0
}

func (w *World) Arrived() bool {
	return w.Mileage >= TrailLength
}

// HealthLabel summarises the living party's average health.
func (w *World) HealthLabel() string {
	living := w.Living()
	if len(living) == 0 {
		return "dead"
	}
	total := 0
	for _, p := range living {
		total += p.Health
	}
	switch avg := total / len(living); {
	case avg >= 70:
		return "good"
	case avg >= 40:
		return "fair"
	case avg >= 20:
		return "poor"
	default:
		return "very poor"
	}
}

// Advance runs one day on the trail and returns the landmark reached that
// day, if any.
func (w *World) Advance(rng *rand.Rand) (Landmark, bool) {
	if w.Dead() {
		return Landmark{}, false
	}
	w.Day++
	w.Climate.Roll(rng)
	w.consume(rng)
	switch {
	case w.Dead():
		return Landmark{}, false
	case w.Wagon.DelayDays > 0:
		w.Wagon.DelayDays--
		return Landmark{}, false
	case w.Climate.LostDays > 0:
		w.Climate.LostDays--
		return Landmark{}, false
	}
	before := w.Mileage
	w.Mileage = min(w.Mileage+w.Pace.Miles(), TrailLength)
	next, ok := NextLandmark(before)
	if ok && next.Mileage <= w.Mileage {
		return next, true
	}
	return Landmark{}, false
}

// Rest heals the party for one day.
func (w *World) Rest(rng *rand.Rand) {
	w.Day++
	w.Climate.Roll(rng)
	w.consume(rng)
	for _, p := range w.Living() {
		p.Heal(5)
		if p.Illness != "" && rng.IntN(3) == 0 {
			p.Illness = ""
		}
	}
}

func (w *World) consume(rng *rand.Rand) {
	living := w.Living()
	need := len(living) * rationPerPerson
	starving := w.Wagon.Food < need
	w.Wagon.Food = max(w.Wagon.Food-need, 0)
	for _, p := range living {
		strain := w.Pace.strain()
		if starving {
			strain += 5
		}
		if p.Illness != "" {
			strain += 3
			if rng.IntN(10) == 0 {
				p.Illness = ""
			}
		}
		p.Hurt(strain)
	}
}

// Score is the arrival score: living members by health, leftover food, and
// the profession multiplier.
func (w *World) Score() int {
	points := 0
	for _, p := range w.Living() {
		points += 5 * p.Health
	}
	points += w.Wagon.Food / 25
	points += w.Wagon.Money / 5
	return points * w.Profession.ScoreMultiplier()
}

// Rating names a score band.
func Rating(points int) string {
	switch {
	case points >= 7000:
		return "Trail guide"
	case points >= 3000:
		return "Adventurer"
	default:
		return "Greenhorn"
	}
}

// PartyNames joins the party's names for display.
func (w *World) PartyNames() string {
	names := make([]string, len(w.Party))
	for i, p := range w.Party {
		names[i] = p.Name()
	}
	return strings.Join(names, ", ")
}
