package trail

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/trailsim/internal/logging"
	"github.com/atomicstack/trailsim/internal/window"
)

// NewGameData collects the party before the journey starts.
type NewGameData struct {
	Profession Profession
	Names      []string
	// Rejected holds the last name refused, shown once under the question.
	Rejected string
}

type newGame struct{}

func (newGame) NewData() any { return &NewGameData{} }

func (newGame) OnCreate(w *window.Window) error {
	return w.SetForm(FormProfession)
}

func professionForm() window.Form {
	return &window.Dialog{
		Kind: window.DialogCustom,
		Prompt: func(*window.Window) string {
			return strings.Join([]string{
				"Many kinds of people made the trip to Oregon.",
				"You may:",
				"  1. Be a banker from Boston\n  2. Be a carpenter from Ohio\n  3. Be a farmer from Illinois\n  4. Find out the differences between these choices",
				"What is your choice?",
			}, "\n\n")
		},
		OnResponse: func(w *window.Window, _ window.Response, line string) window.Transition {
			switch line {
			case "1", "2", "3":
				n, _ := strconv.Atoi(line)
				window.DataAs[NewGameData](w).Profession = Profession(n)
				return window.ToForm(FormNames)
			case "4":
				return window.ToForm(FormProfessionInfo)
			}
			return window.Remain()
		},
	}
}

func professionInfoForm() window.Form {
	return &window.Dialog{
		Kind: window.DialogPrompt,
		Prompt: func(*window.Window) string {
			return wrap(fmt.Sprintf("Traveling to Oregon isn't easy! But if you're a banker, you'll have more money for supplies and services than a carpenter or a farmer. "+
				"However, the harder you have to try, the more points you deserve! Bankers start with $%d, carpenters with $%d, and farmers with $%d.",
				Banker.Money(), Carpenter.Money(), Farmer.Money()), narrationWidth)
		},
		OnResponse: func(*window.Window, window.Response, string) window.Transition {
			return window.ToForm(FormProfession)
		},
	}
}

func namesForm() window.Form {
	return &window.Dialog{
		Kind: window.DialogCustom,
		Prompt: func(w *window.Window) string {
			data := window.DataAs[NewGameData](w)
			question := "What is the first name of the wagon leader?"
			if n := len(data.Names); n > 0 {
				question = fmt.Sprintf("What is the first name of party member %d?", n+1)
			}
			if data.Rejected != "" {
				question += fmt.Sprintf("\n\n%q is already taken.", data.Rejected)
			}
			return question
		},
		OnResponse: func(w *window.Window, _ window.Response, line string) window.Transition {
			data := window.DataAs[NewGameData](w)
			if !nameAvailable(data.Names, line) {
				data.Rejected = line
				return window.Remain()
			}
			data.Rejected = ""
			data.Names = append(data.Names, line)
			if len(data.Names) < PartySize {
				return window.Remain()
			}
			return window.ToForm(FormConfirmNames)
		},
	}
}

func nameAvailable(taken []string, name string) bool {
	for _, reserved := range []string{"wagon", "weather"} {
		if strings.EqualFold(name, reserved) {
			return false
		}
	}
	for _, t := range taken {
		if strings.EqualFold(t, name) {
			return false
		}
	}
	return true
}

func confirmNamesForm() window.Form {
	return &window.Dialog{
		Kind: window.DialogYesNo,
		Prompt: func(w *window.Window) string {
			data := window.DataAs[NewGameData](w)
			lines := make([]string, len(data.Names))
			for i, name := range data.Names {
				lines[i] = fmt.Sprintf("  %d. %s", i+1, name)
			}
			return "Your party:\n\n" + strings.Join(lines, "\n") + "\n\nAre these names correct?"
		},
		OnResponse: func(w *window.Window, r window.Response, _ string) window.Transition {
			data := window.DataAs[NewGameData](w)
			switch r {
			case window.ResponseNo:
				data.Names = nil
				return window.ToForm(FormNames)
			case window.ResponseYes:
				if err := startJourney(w, data); err != nil {
					logging.Error(err)
					data.Names = nil
					return window.ToForm(FormNames)
				}
			}
			return window.Remain()
		},
	}
}

// startJourney hands the party to a Travel window and retires this one.
func startJourney(w *window.Window, data *NewGameData) error {
	env := w.Env()
	world := WorldOf(env)
	if world == nil {
		return fmt.Errorf("start journey: no world in env")
	}
	if err := world.Start(env.Entities, data.Profession, data.Names); err != nil {
		return fmt.Errorf("start journey: %w", err)
	}
	if _, err := w.Push(KindTravel); err != nil {
		return fmt.Errorf("start journey: %w", err)
	}
	w.RequestRemoveOnNextTick()
	return nil
}
