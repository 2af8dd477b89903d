package twograph

import (
	"maps"
	"testing"

	"github.com/matzehuels/archlayout/pkg/diagram"
	"github.com/matzehuels/archlayout/pkg/geom"
)

func ids(ns []diagram.Node) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = n.ID
	}
	return out
}

func TestSeparate(t *testing.T) {
	nodes := []diagram.Node{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}, {ID: "e"}}
	tests := []struct {
		name         string
		edges        []diagram.Edge
		wantLinked   []string
		wantUnlinked []string
		wantEdges    int
	}{
		{"no edges", nil, nil, []string{"a", "b", "c", "d", "e"}, 0},
		{
			"chain",
			[]diagram.Edge{{Source: "a", Target: "b"}, {Source: "b", Target: "c"}},
			[]string{"a", "b", "c"}, []string{"d", "e"}, 2,
		},
		{
			"dangling endpoint ignored",
			[]diagram.Edge{{Source: "d", Target: "ghost"}, {Source: "a", Target: "e"}},
			[]string{"a", "e"}, []string{"b", "c", "d"}, 1,
		},
		{
			"self loop links node",
			[]diagram.Edge{{Source: "c", Target: "c"}},
			[]string{"c"}, []string{"a", "b", "d", "e"}, 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Separate(nodes, tt.edges)
			if got := ids(s.Linked); !equal(got, tt.wantLinked) {
				t.Errorf("Linked = %v, want %v", got, tt.wantLinked)
			}
			if got := ids(s.Unlinked); !equal(got, tt.wantUnlinked) {
				t.Errorf("Unlinked = %v, want %v", got, tt.wantUnlinked)
			}
			if len(s.LinkedEdges) != tt.wantEdges {
				t.Errorf("LinkedEdges = %d, want %d", len(s.LinkedEdges), tt.wantEdges)
			}
		})
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestMerge(t *testing.T) {
	linked := map[string]geom.Position{"a": {X: 10, Y: 0}, "b": {X: 10, Y: 100}}
	unlinked := map[string]geom.Position{"x": {X: 0, Y: 0}, "y": {X: 60, Y: 0}}
	dims := map[string]geom.Dimensions{"a": {Width: 50, Height: 50}, "b": {Width: 50, Height: 30}}

	got := Merge(linked, unlinked, dims, 20)

	want := map[string]geom.Position{
		"a": {X: 10, Y: 0},
		"b": {X: 10, Y: 100},
		"x": {X: 10, Y: 150},
		"y": {X: 70, Y: 150},
	}
	if !maps.Equal(got, want) {
		t.Errorf("Merge() = %v, want %v", got, want)
	}
}

func TestMergeEmptySides(t *testing.T) {
	side := map[string]geom.Position{"a": {X: 5, Y: 5}}

	t.Run("unlinked empty", func(t *testing.T) {
		got := Merge(side, nil, nil, 50)
		if !maps.Equal(got, side) {
			t.Errorf("Merge() = %v", got)
		}
		got["a"] = geom.Position{}
		if side["a"] != (geom.Position{X: 5, Y: 5}) {
			t.Error("Merge must copy, not alias, its input")
		}
	})

	t.Run("linked empty", func(t *testing.T) {
		got := Merge(nil, side, nil, 50)
		if !maps.Equal(got, side) {
			t.Errorf("Merge() = %v", got)
		}
	})

	t.Run("both empty", func(t *testing.T) {
		if got := Merge(nil, nil, nil, 50); got == nil || len(got) != 0 {
			t.Errorf("Merge() = %v, want empty non-nil", got)
		}
	})
}

func TestMergeIdempotentOnEmpty(t *testing.T) {
	a := map[string]geom.Position{"a": {X: 1, Y: 2}, "b": {X: 3, Y: 4}}
	once := Merge(a, nil, nil, 10)
	twice := Merge(once, nil, nil, 10)
	if !maps.Equal(once, twice) {
		t.Errorf("merge with empty is not idempotent: %v vs %v", once, twice)
	}
}
