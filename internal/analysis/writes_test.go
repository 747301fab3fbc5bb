package analysis_test

import (
	"reflect"
	"testing"

	"github.com/xab-mack/authsurface/internal/analysis"
	"github.com/xab-mack/authsurface/internal/model"
)

func writeNode(vars ...string) model.Node {
	return model.Node{Kind: model.NodeStatement, Writes: vars}
}

func TestWritesEmpty(t *testing.T) {
	got := analysis.Writes(newFn("f"))
	if got == nil || len(got) != 0 {
		t.Fatalf("Writes = %v, want empty non-nil slice", got)
	}
}

func TestWritesFiltersUnnamedLocations(t *testing.T) {
	f := newFn("f")
	f.Nodes = []model.Node{writeNode("balance", "")}
	want := []string{"balance"}
	if got := analysis.Writes(f); !reflect.DeepEqual(got, want) {
		t.Fatalf("Writes = %v, want %v", got, want)
	}
}

func TestWritesDeduplicatesAndSorts(t *testing.T) {
	f := newFn("f")
	f.Nodes = []model.Node{writeNode("owner", "balance"), writeNode("balance")}
	want := []string{"balance", "owner"}
	if got := analysis.Writes(f); !reflect.DeepEqual(got, want) {
		t.Fatalf("Writes = %v, want %v", got, want)
	}
}

func TestWritesTransitiveThroughCalls(t *testing.T) {
	f, g := newFn("f"), newFn("g")
	f.Calls = []model.Call{{Name: "g", Target: g}}
	g.Nodes = []model.Node{writeNode("total")}
	want := []string{"total"}
	if got := analysis.Writes(f); !reflect.DeepEqual(got, want) {
		t.Fatalf("Writes = %v, want %v", got, want)
	}
}

func TestWritesTransitiveThroughModifiers(t *testing.T) {
	f := newFn("f")
	m := &model.Function{Contract: "C", Name: "counted", Kind: model.KindModifier}
	m.Nodes = []model.Node{writeNode("calls")}
	f.Modifiers = []*model.Function{m}
	want := []string{"calls"}
	if got := analysis.Writes(f); !reflect.DeepEqual(got, want) {
		t.Fatalf("Writes = %v, want %v", got, want)
	}
}

func TestWritesTerminatesOnRecursion(t *testing.T) {
	f, g := newFn("f"), newFn("g")
	f.Calls = []model.Call{{Name: "g", Target: g}}
	g.Calls = []model.Call{{Name: "f", Target: f}}
	f.Nodes = []model.Node{writeNode("a")}
	g.Nodes = []model.Node{writeNode("b")}
	want := []string{"a", "b"}
	if got := analysis.Writes(f); !reflect.DeepEqual(got, want) {
		t.Fatalf("Writes = %v, want %v", got, want)
	}
}
