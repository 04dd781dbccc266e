package trail

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/trailsim/internal/command"
	"github.com/atomicstack/trailsim/internal/format/table"
	"github.com/atomicstack/trailsim/internal/logging"
	"github.com/atomicstack/trailsim/internal/store"
	"github.com/atomicstack/trailsim/internal/window"
)

type mainMenuCommand string

const (
	cmdTravelTrail mainMenuCommand = "travel"
	cmdLearnTrail  mainMenuCommand = "learn"
	cmdTopTen      mainMenuCommand = "top-ten"
	cmdEnd         mainMenuCommand = "end"
)

// MainMenuData is the main menu's bag; it only remembers the about page.
type MainMenuData struct {
	AboutPage int
}

type mainMenu struct{}

func (mainMenu) NewData() any { return &MainMenuData{} }

func (mainMenu) OnCreate(w *window.Window) error {
	menu := command.New(cmdTravelTrail, cmdLearnTrail, cmdTopTen, cmdEnd)
	menu.MustAdd(cmdTravelTrail, func() error {
		_, err := w.Push(KindNewGame)
		return err
	}, "Travel the trail")
	menu.MustAdd(cmdLearnTrail, func() error {
		window.DataAs[MainMenuData](w).AboutPage = 0
		return w.SetForm(FormAbout)
	}, "Learn about the trail")
	menu.MustAdd(cmdTopTen, func() error { return w.SetForm(FormTopTen) }, "See the Oregon Top Ten")
	menu.MustAdd(cmdEnd, func() error {
		w.RequestRemoveOnNextTick()
		return nil
	}, "End")
	w.SetMenu(menu)
	return nil
}

func (mainMenu) Render(w *window.Window) string {
	return "The Oregon Trail\n\nYou may:"
}

var aboutPages = []string{
	"Try taking a journey by covered wagon across 2000 miles of plains, rivers, and mountains. Try! On the plains, will you slosh your oxen through mud and water-filled ruts or will you plod through dust six inches deep?",
	"How will you cross the rivers? If you have money, you might take a ferry (if there is a ferry). Or, you can ford the river and hope you and your wagon aren't swallowed alive!",
	"What about supplies? Well, if you're low on food you can rest and hope for the best. But be careful: every day you rest the party still eats.",
	"If for some reason you don't survive -- your wagon burns, or thieves steal your oxen, or you run out of provisions, or you die of cholera -- don't give up! Try again... and again... until your name is up with the others on The Oregon Top Ten.",
}

func aboutForm() window.Form {
	return &window.Dialog{
		Kind: window.DialogPrompt,
		Prompt: func(w *window.Window) string {
			page := window.DataAs[MainMenuData](w).AboutPage
			return wrap(aboutPages[page], narrationWidth)
		},
		OnResponse: func(w *window.Window, _ window.Response, _ string) window.Transition {
			data := window.DataAs[MainMenuData](w)
			data.AboutPage++
			if data.AboutPage >= len(aboutPages) {
				data.AboutPage = 0
				return window.Clear()
			}
			return window.Remain()
		},
	}
}

func topTenForm() window.Form {
	return &window.Dialog{
		Kind: window.DialogPrompt,
		Prompt: func(w *window.Window) string {
			world := WorldOf(w.Env())
			if world == nil {
				return "The Oregon Top Ten is unavailable."
			}
			scores, err := world.Store.TopTen()
			if err != nil {
				logging.Error(err)
				return "The Oregon Top Ten is unavailable."
			}
			return "The Oregon Top Ten\n\n" + RenderTopTen(scores)
		},
	}
}

// RenderTopTen lays scores out as a table with a header row.
func RenderTopTen(scores []store.Score) string {
	rows := [][]string{{"", "Name", "Points", "Rating"}}
	for i, s := range scores {
		rows = append(rows, []string{strconv.Itoa(i+1) + ".", s.Name, strconv.Itoa(s.Points), s.Rating})
	}
	aligns := []table.Alignment{table.AlignRight, table.AlignLeft, table.AlignRight, table.AlignLeft}
	return strings.Join(table.Format(rows, aligns), "\n")
}

func formatMiles(n int) string {
	return fmt.Sprintf("%d miles", n)
}
