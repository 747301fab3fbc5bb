package analysis_test

import (
	"testing"

	"github.com/xab-mack/authsurface/internal/analysis"
	"github.com/xab-mack/authsurface/internal/model"
)

func newFn(name string) *model.Function {
	return &model.Function{Contract: "C", Name: name, Kind: model.KindFunction}
}

func names(fns []*model.Function) []string {
	out := make([]string, len(fns))
	for i, f := range fns {
		out[i] = f.Name
	}
	return out
}

func assertNames(t *testing.T, got []*model.Function, want ...string) {
	t.Helper()
	gotNames := names(got)
	if len(gotNames) != len(want) {
		t.Fatalf("closure = %v, want %v", gotNames, want)
	}
	for i := range want {
		if gotNames[i] != want[i] {
			t.Fatalf("closure = %v, want %v", gotNames, want)
		}
	}
}

func TestClosureLeafFunction(t *testing.T) {
	f := newFn("leaf")
	assertNames(t, analysis.Closure(f), "leaf")
}

func TestClosureNil(t *testing.T) {
	if got := analysis.Closure(nil); got != nil {
		t.Fatalf("Closure(nil) = %v, want nil", names(got))
	}
}

func TestClosureTransitiveCalls(t *testing.T) {
	a, b, c := newFn("a"), newFn("b"), newFn("c")
	a.Calls = []model.Call{{Name: "b", Target: b}}
	b.Calls = []model.Call{{Name: "c", Target: c}}
	assertNames(t, analysis.Closure(a), "a", "b", "c")
}

func TestClosureSelfRecursion(t *testing.T) {
	f := newFn("f")
	f.Calls = []model.Call{{Name: "f", Target: f}}
	assertNames(t, analysis.Closure(f), "f")
}

func TestClosureMutualRecursion(t *testing.T) {
	f, g := newFn("f"), newFn("g")
	f.Calls = []model.Call{{Name: "g", Target: g}}
	g.Calls = []model.Call{{Name: "f", Target: f}}
	assertNames(t, analysis.Closure(f), "f", "g")
	assertNames(t, analysis.Closure(g), "g", "f")
}

func TestClosureIncludesDirectModifiers(t *testing.T) {
	f := newFn("f")
	m := &model.Function{Contract: "C", Name: "onlyOwner", Kind: model.KindModifier}
	f.Modifiers = []*model.Function{m}
	assertNames(t, analysis.Closure(f), "f", "onlyOwner")
}

func TestClosureFunctionAsItsOwnModifier(t *testing.T) {
	f := newFn("f")
	f.Modifiers = []*model.Function{f}
	assertNames(t, analysis.Closure(f), "f")
}

// Modifier inclusion is one-hop: a modifier's own internal calls are not
// expanded into the closure.
func TestClosureDoesNotExpandModifierCalls(t *testing.T) {
	f := newFn("f")
	helper := newFn("helper")
	m := &model.Function{
		Contract: "C",
		Name:     "guarded",
		Kind:     model.KindModifier,
		Calls:    []model.Call{{Name: "helper", Target: helper}},
	}
	f.Modifiers = []*model.Function{m}
	assertNames(t, analysis.Closure(f), "f", "guarded")
}

func TestClosureSkipsUnresolvedCalls(t *testing.T) {
	f := newFn("f")
	g := newFn("g")
	f.Calls = []model.Call{
		{Name: "super.something", Target: nil},
		{Name: "g", Target: g},
	}
	assertNames(t, analysis.Closure(f), "f", "g")
}

func TestClosureDeterministicAcrossRuns(t *testing.T) {
	a, b, c := newFn("a"), newFn("b"), newFn("c")
	a.Calls = []model.Call{{Name: "c", Target: c}, {Name: "b", Target: b}}
	b.Calls = []model.Call{{Name: "c", Target: c}}
	first := names(analysis.Closure(a))
	for i := 0; i < 10; i++ {
		again := names(analysis.Closure(a))
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("run %d: closure = %v, want %v", i, again, first)
			}
		}
	}
}
