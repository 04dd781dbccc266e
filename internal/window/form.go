package window

// FormKind tags a form type in the form factory.
type FormKind string

// Form is one state of a window's conversational flow. Forms receive their
// owning window on every call and keep any render-affecting state in the
// window's data bag.
type Form interface {
	Render(w *Window) string
	AcceptsInput(w *Window) bool
	OnSubmit(w *Window, line string) Transition
}

// FormTicker is implemented by forms that change over time.
type FormTicker interface {
	OnTick(w *Window, day bool) Transition
}

// FormEnterer is implemented by forms that prepare the data bag when they
// become current.
type FormEnterer interface {
	OnEnter(w *Window)
}

type TransitionKind int

const (
	TransitionRemain TransitionKind = iota
	TransitionSet
	TransitionClear
)

func (k TransitionKind) String() string {
	switch k {
	case TransitionSet:
		return "set"
	case TransitionClear:
		return "clear"
	default:
		return "remain"
	}
}

// Transition is what a form asks its window to do next.
type Transition struct {
	Kind TransitionKind
	Form FormKind
}

// Remain keeps the current form.
func Remain() Transition { return Transition{Kind: TransitionRemain} }

// ToForm replaces the current form with the one bound to kind.
func ToForm(kind FormKind) Transition { return Transition{Kind: TransitionSet, Form: kind} }

// Clear drops the current form and hands input back to the window's menu.
func Clear() Transition { return Transition{Kind: TransitionClear} }
