package table

import (
	"reflect"
	"testing"
)

func TestFormatRightAlignsNumbers(t *testing.T) {
	rows := [][]string{
		{"1.", "Travel the trail"},
		{"10.", "End"},
	}
	got := Format(rows, []Alignment{AlignRight, AlignLeft})
	want := []string{
		" 1. Travel the trail",
		"10. End",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected rows:\n%q\nwant\n%q", got, want)
	}
}

func TestFormatHandlesRaggedRowsAndWideRunes(t *testing.T) {
	rows := [][]string{
		{"名前", "1800"},
		{"Ann"},
	}
	got := Format(rows, nil)
	want := []string{
		"名前 1800",
		"Ann",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected rows:\n%q\nwant\n%q", got, want)
	}
}

func TestFormatEmpty(t *testing.T) {
	if Format(nil, nil) != nil {
		t.Fatalf("expected nil for empty input")
	}
}

func TestIndent(t *testing.T) {
	got := Indent([]string{"a", "b"}, "  ")
	if got[0] != "  a" || got[1] != "  b" {
		t.Fatalf("unexpected indent %q", got)
	}
}
