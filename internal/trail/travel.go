package trail

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/trailsim/internal/command"
	"github.com/atomicstack/trailsim/internal/director"
	"github.com/atomicstack/trailsim/internal/entity"
	"github.com/atomicstack/trailsim/internal/format/table"
	"github.com/atomicstack/trailsim/internal/logging"
	"github.com/atomicstack/trailsim/internal/store"
	"github.com/atomicstack/trailsim/internal/window"
)

type travelCommand string

const (
	cmdContinue travelCommand = "continue"
	cmdSupplies travelCommand = "supplies"
	cmdPace     travelCommand = "pace"
	cmdRest     travelCommand = "rest"
	cmdQuit     travelCommand = "quit"
)

const (
	maxRestDays  = 9
	maxFollowUps = 4
)

// TravelData is the journey's per-window state.
type TravelData struct {
	Landmark  string
	Passed    []string
	RestDays  int
	RestTotal int
	Score     int
	Rank      int
	Tombstone *store.Tombstone
}

// travel is the window the journey happens in. It listens to the director
// for as long as it exists and narrates events only while it is on top.
type travel struct {
	unsubscribe func()
}

func (t *travel) NewData() any { return &TravelData{} }

func (t *travel) OnCreate(w *window.Window) error {
	menu := command.New(cmdContinue, cmdSupplies, cmdPace, cmdRest, cmdQuit)
	menu.MustAdd(cmdContinue, func() error { return w.SetForm(FormDriving) }, "Continue on trail")
	menu.MustAdd(cmdSupplies, func() error { return w.SetForm(FormSupplies) }, "Check supplies")
	menu.MustAdd(cmdPace, func() error { return w.SetForm(FormPace) }, "Change pace")
	menu.MustAdd(cmdRest, func() error { return w.SetForm(FormRestDays) }, "Stop to rest")
	menu.MustAdd(cmdQuit, func() error {
		w.RequestRemoveOnNextTick()
		return nil
	}, "Quit to main menu")
	w.SetMenu(menu)
	if dir := w.Env().Director; dir != nil {
		t.unsubscribe = dir.Subscribe(func(target entity.Entity, evt director.Event) {
			t.narrate(w, target, evt)
		})
	}
	return nil
}

func (t *travel) OnRemove(w *window.Window) {
	if t.unsubscribe != nil {
		t.unsubscribe()
		t.unsubscribe = nil
	}
	if world := WorldOf(w.Env()); world != nil {
		world.Moving = false
	}
}

// OnSiblingAdded stops the wagon while a popup covers the journey.
func (t *travel) OnSiblingAdded(w, sibling *window.Window) {
	if world := WorldOf(w.Env()); world != nil {
		world.Moving = false
	}
}

func (t *travel) OnResume(w *window.Window) {
	if world := WorldOf(w.Env()); world != nil && w.FormKind() == FormDriving {
		world.Moving = true
	}
}

func (t *travel) Render(w *window.Window) string {
	world := WorldOf(w.Env())
	if world == nil {
		return ""
	}
	return statusBlock(world)
}

func (t *travel) narrate(w *window.Window, target entity.Entity, evt director.Event) {
	if !w.Active() {
		return
	}
	env := w.Env()
	next := evt.Execute(target, env.Rand)
	lines := []string{evt.Render(target)}
	for i := 0; next != "" && i < maxFollowUps; i++ {
		follow, err := env.Director.Create(next)
		if err != nil {
			logging.Error(err)
			break
		}
		next = follow.Execute(target, env.Rand)
		lines = append(lines, follow.Render(target))
	}
	popup, err := w.Push(KindRandomEvent)
	if err != nil {
		logging.Error(err)
		return
	}
	window.DataAs[EventData](popup).Lines = lines
}

func statusBlock(world *World) string {
	next := "none"
	if l, ok := NextLandmark(world.Mileage); ok {
		next = fmt.Sprintf("%s (%s)", l.Name, formatMiles(l.Mileage-world.Mileage))
	}
	rows := [][]string{
		{"Day:", strconv.Itoa(world.Day)},
		{"Weather:", world.Climate.Condition},
		{"Health:", world.HealthLabel()},
		{"Pace:", world.Pace.String()},
		{"Food:", fmt.Sprintf("%d pounds", world.Wagon.Food)},
		{"Next landmark:", next},
		{"Miles traveled:", formatMiles(world.Mileage)},
	}
	return strings.Join(table.Format(rows, nil), "\n")
}

func drivingForm() window.Form {
	return &window.Dialog{
		Kind: window.DialogPrompt,
		Enter: func(w *window.Window) {
			window.DataAs[TravelData](w).Passed = nil
			WorldOf(w.Env()).Moving = true
		},
		Prompt: func(w *window.Window) string {
			blocks := []string{statusBlock(WorldOf(w.Env()))}
			for _, name := range window.DataAs[TravelData](w).Passed {
				blocks = append(blocks, fmt.Sprintf("You pass the grave of %s.", name))
			}
			return strings.Join(blocks, "\n\n")
		},
		OnResponse: func(w *window.Window, _ window.Response, _ string) window.Transition {
			WorldOf(w.Env()).Moving = false
			return window.Clear()
		},
		Tick: func(w *window.Window, day bool) window.Transition {
			world := WorldOf(w.Env())
			if !day || !world.Moving {
				return window.Remain()
			}
			if world.Dead() {
				world.Moving = false
				return window.ToForm(FormPartyDead)
			}
			before := world.Mileage
			landmark, reached := world.Advance(w.Env().Rand)
			passGraves(w, world, before)
			switch {
			case world.Dead():
				world.Moving = false
				return window.ToForm(FormPartyDead)
			case world.Arrived():
				world.Moving = false
				return window.ToForm(FormArrived)
			case reached:
				world.Moving = false
				window.DataAs[TravelData](w).Landmark = landmark.Name
				return window.ToForm(FormLandmark)
			}
			return window.Remain()
		},
	}
}

// passGraves notes tombstones left by earlier parties between before and
// the current mileage.
func passGraves(w *window.Window, world *World, before int) {
	if world.Mileage == before || world.Store == nil {
		return
	}
	stones, err := world.Store.Tombstones()
	if err != nil {
		logging.Error(err)
		return
	}
	data := window.DataAs[TravelData](w)
	for _, s := range stones {
		if s.Mileage > before && s.Mileage <= world.Mileage {
			data.Passed = append(data.Passed, s.Name)
		}
	}
}

func landmarkForm() window.Form {
	return &window.Dialog{
		Kind: window.DialogPrompt,
		Prompt: func(w *window.Window) string {
			return fmt.Sprintf("You have reached %s.", window.DataAs[TravelData](w).Landmark)
		},
	}
}

func suppliesForm() window.Form {
	return &window.Dialog{
		Kind: window.DialogPrompt,
		Prompt: func(w *window.Window) string {
			world := WorldOf(w.Env())
			rows := [][]string{
				{"Food", fmt.Sprintf("%d pounds", world.Wagon.Food)},
				{"Money", fmt.Sprintf("$%d", world.Wagon.Money)},
				{"Spare wheels", strconv.Itoa(world.Wagon.SpareWheels)},
			}
			for _, p := range world.Party {
				state := fmt.Sprintf("health %d", p.Health)
				switch {
				case p.Dead():
					state = "dead"
				case p.Illness != "":
					state += ", " + p.Illness
				}
				rows = append(rows, []string{p.Name(), state})
			}
			lines := table.Format(rows, nil)
			return "Your supplies\n\n" + strings.Join(table.Indent(lines, "  "), "\n")
		},
	}
}

func paceForm() window.Form {
	return &window.Dialog{
		Kind: window.DialogCustom,
		Prompt: func(w *window.Window) string {
			return fmt.Sprintf("Change pace (currently %q)\n\n  1. steady\n  2. strenuous\n  3. grueling\n\nWhat is your choice?", WorldOf(w.Env()).Pace)
		},
		OnResponse: func(w *window.Window, _ window.Response, line string) window.Transition {
			n, err := strconv.Atoi(line)
			if err != nil || n < 1 || n > 3 {
				return window.Remain()
			}
			WorldOf(w.Env()).Pace = Pace(n - 1)
			return window.Clear()
		},
	}
}

func restDaysForm() window.Form {
	return &window.Dialog{
		Kind: window.DialogCustom,
		Prompt: func(*window.Window) string {
			return fmt.Sprintf("How many days would you like to rest? (1-%d)", maxRestDays)
		},
		OnResponse: func(w *window.Window, _ window.Response, line string) window.Transition {
			n, err := strconv.Atoi(line)
			if err != nil || n < 1 || n > maxRestDays {
				return window.Remain()
			}
			data := window.DataAs[TravelData](w)
			data.RestDays, data.RestTotal = n, n
			return window.ToForm(FormResting)
		},
	}
}

// restingForm ignores input until every requested day has passed.
func restingForm() window.Form {
	return &window.Dialog{
		Kind: window.DialogPrompt,
		Prompt: func(w *window.Window) string {
			data := window.DataAs[TravelData](w)
			if data.RestDays > 0 {
				return fmt.Sprintf("Resting... %d of %d days left.", data.RestDays, data.RestTotal)
			}
			return fmt.Sprintf("You rested for %d days.", data.RestTotal)
		},
		Ready: func(w *window.Window) bool {
			return window.DataAs[TravelData](w).RestDays <= 0
		},
		Tick: func(w *window.Window, day bool) window.Transition {
			data := window.DataAs[TravelData](w)
			if !day || data.RestDays <= 0 {
				return window.Remain()
			}
			world := WorldOf(w.Env())
			world.Rest(w.Env().Rand)
			data.RestDays--
			if world.Dead() {
				return window.ToForm(FormPartyDead)
			}
			return window.Remain()
		},
	}
}

func arrivedForm() window.Form {
	return &window.Dialog{
		Kind: window.DialogPrompt,
		Enter: func(w *window.Window) {
			world := WorldOf(w.Env())
			data := window.DataAs[TravelData](w)
			data.Score = world.Score()
			leader := world.Leader()
			if leader == nil || world.Store == nil {
				return
			}
			rank, err := world.Store.RecordScore(store.Score{Name: leader.Name(), Points: data.Score, Rating: Rating(data.Score)})
			if err != nil {
				logging.Error(err)
				return
			}
			data.Rank = rank
		},
		Prompt: func(w *window.Window) string {
			data := window.DataAs[TravelData](w)
			text := fmt.Sprintf("Congratulations! You have made it to Oregon!\n\nYour score is %d points. Your rating: %s.", data.Score, Rating(data.Score))
			if data.Rank > 0 {
				text += fmt.Sprintf("\n\nYou placed number %d on the Oregon Top Ten.", data.Rank)
			}
			return text
		},
		OnResponse: leaveJourney,
	}
}

func partyDeadForm() window.Form {
	return &window.Dialog{
		Kind: window.DialogPrompt,
		Enter: func(w *window.Window) {
			world := WorldOf(w.Env())
			data := window.DataAs[TravelData](w)
			leader := world.Leader()
			if leader == nil || world.Store == nil {
				return
			}
			stone, err := world.Store.WriteTombstone(store.Tombstone{
				Name:    leader.Name(),
				Mileage: world.Mileage,
				Epitaph: fmt.Sprintf("Here lies %s and party.", leader.Name()),
			})
			if err != nil {
				logging.Error(err)
				return
			}
			data.Tombstone = &stone
		},
		Prompt: func(w *window.Window) string {
			world := WorldOf(w.Env())
			text := "Everyone in your party has died."
			if stone := window.DataAs[TravelData](w).Tombstone; stone != nil {
				text += fmt.Sprintf("\n\n%s\n%s from Independence.", stone.Epitaph, formatMiles(world.Mileage))
			}
			return text
		},
		OnResponse: leaveJourney,
	}
}

// leaveJourney returns to whatever window lies below the journey.
func leaveJourney(w *window.Window, _ window.Response, _ string) window.Transition {
	w.RequestRemoveOnNextTick()
	return window.Remain()
}
