package overlap

import (
	"fmt"
	"testing"

	"github.com/matzehuels/archlayout/pkg/diagram"
	"github.com/matzehuels/archlayout/pkg/geom"
)

var resolver = Resolver{Padding: 10, GridSpacing: 50, VerticalOffset: 50}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b geom.Rect
		want bool
	}{
		{"identical", geom.NewRect(0, 0, 50, 50), geom.NewRect(0, 0, 50, 50), true},
		{"partial", geom.NewRect(0, 0, 50, 50), geom.NewRect(25, 25, 50, 50), true},
		{"touching", geom.NewRect(0, 0, 50, 50), geom.NewRect(50, 0, 50, 50), true},
		{"within padding", geom.NewRect(0, 0, 50, 50), geom.NewRect(55, 0, 50, 50), true},
		{"exactly padding apart", geom.NewRect(0, 0, 50, 50), geom.NewRect(60, 0, 50, 50), true},
		{"beyond padding", geom.NewRect(0, 0, 50, 50), geom.NewRect(61, 0, 50, 50), false},
		{"separated vertically", geom.NewRect(0, 0, 50, 50), geom.NewRect(0, 100, 50, 50), false},
		{"diagonal apart", geom.NewRect(0, 0, 50, 50), geom.NewRect(100, 100, 50, 50), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolver.Overlaps(tt.a, tt.b); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			if got := resolver.Overlaps(tt.b, tt.a); got != tt.want {
				t.Errorf("Overlaps() not symmetric")
			}
		})
	}
}

func TestOverlapArea(t *testing.T) {
	tests := []struct {
		name string
		a, b geom.Rect
		want float64
	}{
		{"identical", geom.NewRect(0, 0, 50, 50), geom.NewRect(0, 0, 50, 50), 2500},
		{"quarter", geom.NewRect(0, 0, 50, 50), geom.NewRect(25, 25, 50, 50), 625},
		{"touching", geom.NewRect(0, 0, 50, 50), geom.NewRect(50, 0, 50, 50), 0},
		{"disjoint", geom.NewRect(0, 0, 10, 10), geom.NewRect(100, 100, 10, 10), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolver.OverlapArea(tt.a, tt.b); got != tt.want {
				t.Errorf("OverlapArea() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveOverlappingPair(t *testing.T) {
	nodes := []diagram.Node{
		{ID: "a", Width: 50, Height: 50},
		{ID: "b", Width: 50, Height: 50},
	}
	pos := map[string]geom.Position{"a": {}, "b": {}}

	got := resolver.Resolve(pos, nodes)

	ra := geom.Rect{Position: got["a"], Dimensions: nodes[0].Size()}
	rb := geom.Rect{Position: got["b"], Dimensions: nodes[1].Size()}
	if area := resolver.OverlapArea(ra, rb); area != 0 {
		t.Errorf("OverlapArea after Resolve = %v, want 0", area)
	}
	if got["a"].Y < 50 && got["b"].Y < 50 {
		t.Errorf("no node moved below the original bounds: %v", got)
	}
	if pos["a"] != (geom.Position{}) {
		t.Error("Resolve must not mutate its input")
	}
}

func TestResolveKeepsUntouchedNodes(t *testing.T) {
	nodes := []diagram.Node{
		{ID: "fixed", Width: 40, Height: 40},
		{ID: "x", Width: 40, Height: 40},
		{ID: "y", Width: 40, Height: 40},
	}
	pos := map[string]geom.Position{
		"fixed": {X: 500, Y: 0},
		"x":     {X: 0, Y: 0},
		"y":     {X: 10, Y: 10},
	}

	got := resolver.Resolve(pos, nodes)

	if got["fixed"] != pos["fixed"] {
		t.Errorf("fixed moved to %v", got["fixed"])
	}
	// Anchor is the remaining node: (500, 40 + 50).
	for _, id := range []string{"x", "y"} {
		if got[id].X < 500 || got[id].Y < 90 {
			t.Errorf("%s = %v, want inside block anchored at (500, 90)", id, got[id])
		}
	}
}

func TestResolveNoOverlapIsIdentity(t *testing.T) {
	nodes := []diagram.Node{{ID: "a", Width: 10, Height: 10}, {ID: "b", Width: 10, Height: 10}}
	pos := map[string]geom.Position{"a": {}, "b": {X: 100}}
	got := resolver.Resolve(pos, nodes)
	if got["a"] != pos["a"] || got["b"] != pos["b"] {
		t.Errorf("Resolve() = %v, want unchanged", got)
	}
}

func TestResolveLeavesNoOverlaps(t *testing.T) {
	for _, n := range []int{2, 5, 12} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			nodes := make([]diagram.Node, n)
			pos := make(map[string]geom.Position, n)
			for i := range nodes {
				nodes[i] = diagram.Node{ID: fmt.Sprintf("n%d", i), Width: 30 + float64(i), Height: 20}
				pos[nodes[i].ID] = geom.Position{X: float64(i * 5), Y: float64(i * 3)}
			}
			got := resolver.Resolve(pos, nodes)
			if c := resolver.Conflicts(got, nodes); len(c) != 0 {
				t.Errorf("conflicts remain after Resolve: %v", c)
			}
		})
	}
}

func TestConflictsOrder(t *testing.T) {
	nodes := []diagram.Node{
		{ID: "c", Width: 10, Height: 10},
		{ID: "a", Width: 10, Height: 10},
		{ID: "lonely", Width: 10, Height: 10},
	}
	pos := map[string]geom.Position{"c": {}, "a": {}, "lonely": {X: 1000}}
	got := resolver.Conflicts(pos, nodes)
	if len(got) != 2 || got[0] != "c" || got[1] != "a" {
		t.Errorf("Conflicts() = %v, want [c a]", got)
	}
}
