package window

import (
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		line string
		want Response
	}{
		{"y", ResponseYes},
		{"Y", ResponseYes},
		{"n", ResponseNo},
		{"N", ResponseNo},
		{" y ", ResponseYes},
		{"yes", ResponseCustom},
		{"no", ResponseCustom},
		{"maybe", ResponseCustom},
		{"1", ResponseCustom},
		{"", ResponseCustom},
	}
	for _, tc := range tests {
		if got := Classify(tc.line); got != tc.want {
			t.Fatalf("Classify(%q) = %s, want %s", tc.line, got, tc.want)
		}
	}
}

func TestYesNoDialogIgnoresEmptyLine(t *testing.T) {
	var got []Response
	d := &Dialog{
		Kind: DialogYesNo,
		OnResponse: func(w *Window, r Response, line string) Transition {
			got = append(got, r)
			return Remain()
		},
	}
	w := &Window{}
	if tr := d.OnSubmit(w, "   "); tr.Kind != TransitionRemain {
		t.Fatalf("expected remain for empty line, got %s", tr.Kind)
	}
	if len(got) != 0 {
		t.Fatalf("empty line must not reach the handler on a yes/no dialog")
	}
	d.OnSubmit(w, "Y")
	d.OnSubmit(w, "n")
	d.OnSubmit(w, "what")
	want := []Response{ResponseYes, ResponseNo, ResponseCustom}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("response %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestPromptDialogRoutesEmptyLineAsCustom(t *testing.T) {
	var got Response = -1
	d := &Dialog{
		Kind: DialogPrompt,
		OnResponse: func(w *Window, r Response, line string) Transition {
			got = r
			return Clear()
		},
	}
	if tr := d.OnSubmit(&Window{}, ""); tr.Kind != TransitionClear {
		t.Fatalf("expected clear, got %s", tr.Kind)
	}
	if got != ResponseCustom {
		t.Fatalf("expected custom response for empty line, got %s", got)
	}
}

func TestDialogDefaultsWithoutHandler(t *testing.T) {
	prompt := &Dialog{Kind: DialogPrompt}
	if tr := prompt.OnSubmit(&Window{}, ""); tr.Kind != TransitionClear {
		t.Fatalf("prompt without handler should clear, got %s", tr.Kind)
	}
	custom := &Dialog{Kind: DialogCustom}
	if tr := custom.OnSubmit(&Window{}, "Ann"); tr.Kind != TransitionRemain {
		t.Fatalf("custom without handler should remain, got %s", tr.Kind)
	}
}

func TestDialogRenderCues(t *testing.T) {
	w := &Window{}
	yesNo := &Dialog{Kind: DialogYesNo, Prompt: func(*Window) string { return "Are these names correct?" }}
	if got := yesNo.Render(w); got != "Are these names correct?\n\n"+YesNoCue {
		t.Fatalf("unexpected yes/no render %q", got)
	}
	custom := &Dialog{Kind: DialogCustom, Prompt: func(*Window) string { return "What is your name?" }}
	if got := custom.Render(w); got != "What is your name?" {
		t.Fatalf("unexpected custom render %q", got)
	}
	waiting := &Dialog{
		Kind:   DialogPrompt,
		Prompt: func(*Window) string { return "Resting" },
		Ready:  func(*Window) bool { return false },
	}
	if strings.Contains(waiting.Render(w), PressEnterCue) {
		t.Fatalf("a dialog refusing input must not show the enter cue")
	}
}
