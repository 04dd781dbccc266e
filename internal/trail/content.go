// Package trail is the game played on top of the core: a wagon party heading
// west from Independence. Everything here reaches the core only through the
// window, form, and event contracts.
package trail

import (
	"github.com/atomicstack/trailsim/internal/director"
	"github.com/atomicstack/trailsim/internal/entity"
	"github.com/atomicstack/trailsim/internal/factory"
	"github.com/atomicstack/trailsim/internal/sim"
	"github.com/atomicstack/trailsim/internal/store"
	"github.com/atomicstack/trailsim/internal/window"
)

const (
	KindMainMenu    window.Kind = "MainMenu"
	KindNewGame     window.Kind = "NewGame"
	KindTravel      window.Kind = "Travel"
	KindRandomEvent window.Kind = "RandomEvent"
)

const (
	FormAbout          window.FormKind = "about"
	FormTopTen         window.FormKind = "top-ten"
	FormProfession     window.FormKind = "profession"
	FormProfessionInfo window.FormKind = "profession-info"
	FormNames          window.FormKind = "names"
	FormConfirmNames   window.FormKind = "confirm-names"
	FormDriving        window.FormKind = "driving"
	FormLandmark       window.FormKind = "landmark"
	FormSupplies       window.FormKind = "supplies"
	FormPace           window.FormKind = "pace"
	FormRestDays       window.FormKind = "rest-days"
	FormResting        window.FormKind = "resting"
	FormArrived        window.FormKind = "arrived"
	FormPartyDead      window.FormKind = "party-dead"
	FormNarration      window.FormKind = "narration"
)

// Windows binds every window kind.
func Windows() []factory.Binding[window.Kind, window.Controller] {
	return []factory.Binding[window.Kind, window.Controller]{
		factory.Bind[window.Kind, window.Controller](KindMainMenu, func() window.Controller { return &mainMenu{} }),
		factory.Bind[window.Kind, window.Controller](KindNewGame, func() window.Controller { return &newGame{} }),
		factory.Bind[window.Kind, window.Controller](KindTravel, func() window.Controller { return &travel{} }),
		factory.Bind[window.Kind, window.Controller](KindRandomEvent, func() window.Controller { return &randomEvent{} }),
	}
}

// Forms binds every form kind.
func Forms() []factory.Binding[window.FormKind, window.Form] {
	return []factory.Binding[window.FormKind, window.Form]{
		factory.Bind(FormAbout, aboutForm),
		factory.Bind(FormTopTen, topTenForm),
		factory.Bind(FormProfession, professionForm),
		factory.Bind(FormProfessionInfo, professionInfoForm),
		factory.Bind(FormNames, namesForm),
		factory.Bind(FormConfirmNames, confirmNamesForm),
		factory.Bind(FormDriving, drivingForm),
		factory.Bind(FormLandmark, landmarkForm),
		factory.Bind(FormSupplies, suppliesForm),
		factory.Bind(FormPace, paceForm),
		factory.Bind(FormRestDays, restDaysForm),
		factory.Bind(FormResting, restingForm),
		factory.Bind(FormArrived, arrivedForm),
		factory.Bind(FormPartyDead, partyDeadForm),
		factory.Bind(FormNarration, narrationForm),
	}
}

// Content assembles the game for sim.New. A nil store keeps scores in
// memory.
func Content(st store.Store) sim.Content {
	if st == nil {
		st = store.NewMemoryStore()
	}
	return sim.Content{
		Windows: Windows(),
		Forms:   Forms(),
		Events:  Events(),
		Odds:    Odds,
		Start:   KindMainMenu,
		World: func(env *window.Env) (any, error) {
			return NewWorld(st, env.Entities)
		},
		Risk:   Risk,
		Target: Target,
	}
}

// WorldOf returns the run's world.
func WorldOf(env *window.Env) *World {
	if env == nil {
		return nil
	}
	w, _ := env.World.(*World)
	return w
}

// Risk raises the odds with bad weather and a hard pace.
func Risk(env *window.Env) director.Risk {
	w := WorldOf(env)
	if w == nil {
		return nil
	}
	pace := w.Pace.risk()
	return director.Risk{
		CategoryPerson:  w.Climate.Severity*0.02 + pace,
		CategoryVehicle: pace,
		CategoryWeather: w.Climate.Severity * 0.05,
	}
}

// Target picks who an event hits. Nothing is targeted unless the wagon is
// moving.
func Target(env *window.Env, cat director.Category) entity.Entity {
	w := WorldOf(env)
	if w == nil || !w.Moving {
		return nil
	}
	switch cat {
	case CategoryPerson:
		living := w.Living()
		if len(living) == 0 {
			return nil
		}
		return living[env.Rand.IntN(len(living))]
	case CategoryVehicle:
		return w.Wagon
	case CategoryWeather:
		return w.Climate
	}
	return nil
}
