package entity

import "testing"

type named string

func (n named) Name() string { return string(n) }

type other struct{ name string }

func (o *other) Name() string { return o.name }

func TestRegistryKeepsInsertionOrder(t *testing.T) {
	r := NewRegistry()
	for _, n := range []string{"zeke", "ann", "mary"} {
		if err := r.Add(named(n)); err != nil {
			t.Fatalf("add %s: %v", n, err)
		}
	}
	all := r.All()
	if len(all) != 3 || all[0].Name() != "zeke" || all[2].Name() != "mary" {
		t.Fatalf("unexpected order %v", all)
	}
	if names := r.Names(); names[0] != "ann" {
		t.Fatalf("expected sorted names, got %v", names)
	}
}

func TestRegistryRejectsDuplicatesAndEmpty(t *testing.T) {
	r := NewRegistry()
	if err := r.Add(named("ann")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Add(named("ann")); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if err := r.Add(named("")); err == nil {
		t.Fatalf("expected empty name error")
	}
	if err := r.Add(nil); err == nil {
		t.Fatalf("expected nil entity error")
	}
}

func TestRemoveAndOf(t *testing.T) {
	r := NewRegistry()
	_ = r.Add(named("ann"))
	_ = r.Add(&other{name: "wagon"})
	_ = r.Add(named("bob"))
	r.Remove("ann")
	if _, ok := r.Get("ann"); ok {
		t.Fatalf("expected ann removed")
	}
	if got := Of[named](r); len(got) != 1 || got[0] != "bob" {
		t.Fatalf("unexpected typed lookup %v", got)
	}
	if got := Of[*other](r); len(got) != 1 || got[0].name != "wagon" {
		t.Fatalf("unexpected typed lookup %v", got)
	}
	r.Clear()
	if r.Len() != 0 {
		t.Fatalf("expected empty registry")
	}
}
