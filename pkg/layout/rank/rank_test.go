package rank

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"testing"

	"github.com/matzehuels/archlayout/pkg/diagram"
	"github.com/matzehuels/archlayout/pkg/errors"
	"github.com/matzehuels/archlayout/pkg/geom"
)

var defaultOpts = Options{Direction: TopBottom, NodeSpacing: 50, RankSpacing: 80}

func box(id string, w, h float64) diagram.Node {
	return diagram.Node{ID: id, Width: w, Height: h}
}

func edge(s, t string) diagram.Edge {
	return diagram.Edge{Source: s, Target: t}
}

func rectOf(n diagram.Node, pos map[string]geom.Position) geom.BoundingBox {
	return geom.Rect{Position: pos[n.ID], Dimensions: n.Size()}.Box()
}

func assertNoOverlap(t *testing.T, nodes []diagram.Node, pos map[string]geom.Position) {
	t.Helper()
	for i := range nodes {
		a := rectOf(nodes[i], pos)
		for j := i + 1; j < len(nodes); j++ {
			b := rectOf(nodes[j], pos)
			if a.MinX < b.MaxX && b.MinX < a.MaxX && a.MinY < b.MaxY && b.MinY < a.MaxY {
				t.Errorf("%s %+v overlaps %s %+v", nodes[i].ID, a, nodes[j].ID, b)
			}
		}
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input   string
		want    Direction
		wantErr bool
	}{
		{"TB", TopBottom, false},
		{"lr", LeftRight, false},
		{" rl ", RightLeft, false},
		{"BT", BottomTop, false},
		{"up", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDirection(tt.input)
			if (err != nil) != tt.wantErr || got != tt.want {
				t.Errorf("ParseDirection(%q) = %q, %v", tt.input, got, err)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidOption) {
				t.Errorf("error code = %v", errors.GetCode(err))
			}
		})
	}
}

func TestNew(t *testing.T) {
	for _, name := range []string{"", "sugiyama", "Graphviz"} {
		if _, err := New(name); err != nil {
			t.Errorf("New(%q) error = %v", name, err)
		}
	}
	if _, err := New("dagre"); !errors.Is(err, errors.ErrCodeInvalidOption) {
		t.Errorf("New(dagre) error = %v, want INVALID_OPTION", err)
	}
	if got := Names(); len(got) != 2 || got[0] != "graphviz" || got[1] != "sugiyama" {
		t.Errorf("Names() = %v", got)
	}
}

func TestSugiyamaEmpty(t *testing.T) {
	got := Sugiyama{}.Place(nil, nil, defaultOpts)
	if got == nil || len(got) != 0 {
		t.Errorf("Place(nil) = %v, want empty map", got)
	}
}

func TestSugiyamaSingleNode(t *testing.T) {
	got := Sugiyama{}.Place([]diagram.Node{box("a", 100, 40)}, nil, defaultOpts)
	if got["a"] != (geom.Position{}) {
		t.Errorf("single node at %v, want origin", got["a"])
	}
}

func TestSugiyamaChain(t *testing.T) {
	nodes := []diagram.Node{box("a", 100, 50), box("b", 100, 50), box("c", 100, 50)}
	edges := []diagram.Edge{edge("a", "b"), edge("b", "c")}

	pos := Sugiyama{}.Place(nodes, edges, defaultOpts)

	want := map[string]geom.Position{
		"a": {X: 0, Y: 0},
		"b": {X: 0, Y: 130},
		"c": {X: 0, Y: 260},
	}
	if !maps.Equal(pos, want) {
		t.Errorf("Place() = %v, want %v", pos, want)
	}
}

func TestSugiyamaDirections(t *testing.T) {
	nodes := []diagram.Node{box("src", 60, 40), box("dst", 60, 40)}
	edges := []diagram.Edge{edge("src", "dst")}

	tests := []struct {
		dir   Direction
		check func(src, dst geom.Position) bool
	}{
		{TopBottom, func(s, d geom.Position) bool { return d.Y > s.Y && d.X == s.X }},
		{BottomTop, func(s, d geom.Position) bool { return d.Y < s.Y && d.X == s.X }},
		{LeftRight, func(s, d geom.Position) bool { return d.X > s.X && d.Y == s.Y }},
		{RightLeft, func(s, d geom.Position) bool { return d.X < s.X && d.Y == s.Y }},
	}
	for _, tt := range tests {
		t.Run(string(tt.dir), func(t *testing.T) {
			opts := defaultOpts
			opts.Direction = tt.dir
			pos := Sugiyama{}.Place(nodes, edges, opts)
			if !tt.check(pos["src"], pos["dst"]) {
				t.Errorf("%s: src=%v dst=%v", tt.dir, pos["src"], pos["dst"])
			}
		})
	}
}

func TestSugiyamaRanksRespectEdges(t *testing.T) {
	nodes := []diagram.Node{
		box("web", 120, 60), box("api", 120, 60), box("auth", 80, 40),
		box("db", 100, 100), box("cache", 60, 60), box("queue", 90, 30),
	}
	edges := []diagram.Edge{
		edge("web", "api"), edge("api", "auth"), edge("api", "db"),
		edge("api", "cache"), edge("auth", "db"), edge("web", "queue"),
		edge("queue", "db"),
	}

	pos := Sugiyama{}.Place(nodes, edges, defaultOpts)

	if len(pos) != len(nodes) {
		t.Fatalf("got %d positions, want %d", len(pos), len(nodes))
	}
	byID := make(map[string]diagram.Node)
	for _, n := range nodes {
		byID[n.ID] = n
	}
	for _, e := range edges {
		src := rectOf(byID[e.Source], pos)
		dst := rectOf(byID[e.Target], pos)
		if dst.MinY <= src.MaxY {
			t.Errorf("edge %s->%s does not point down: %+v -> %+v", e.Source, e.Target, src, dst)
		}
	}
	assertNoOverlap(t, nodes, pos)
}

func TestSugiyamaCycleAndUnknownEdges(t *testing.T) {
	nodes := []diagram.Node{box("a", 50, 50), box("b", 50, 50), box("c", 50, 50)}
	edges := []diagram.Edge{
		edge("a", "b"), edge("b", "c"), edge("c", "a"),
		edge("a", "ghost"), edge("b", "b"),
	}

	pos := Sugiyama{}.Place(nodes, edges, defaultOpts)

	if len(pos) != 3 {
		t.Fatalf("got %d positions", len(pos))
	}
	if !(pos["a"].Y < pos["b"].Y && pos["b"].Y < pos["c"].Y) {
		t.Errorf("cycle not broken in input order: %v", pos)
	}
}

func TestSugiyamaDeterministic(t *testing.T) {
	var nodes []diagram.Node
	var edges []diagram.Edge
	for i := 0; i < 20; i++ {
		nodes = append(nodes, box(fmt.Sprintf("n%d", i), float64(40+i*3), float64(30+i%4*10)))
		if i > 0 {
			edges = append(edges, edge(fmt.Sprintf("n%d", (i*7)%i), fmt.Sprintf("n%d", i)))
		}
	}
	first := Sugiyama{}.Place(nodes, edges, defaultOpts)
	for run := 0; run < 5; run++ {
		if got := (Sugiyama{}).Place(nodes, edges, defaultOpts); !maps.Equal(first, got) {
			t.Fatalf("run %d differs", run)
		}
	}
	assertNoOverlap(t, nodes, first)
}

func TestSugiyamaReducesCrossings(t *testing.T) {
	// Input order forces a crossing: a->y, b->x with x before y.
	nodes := []diagram.Node{box("a", 50, 50), box("b", 50, 50), box("x", 50, 50), box("y", 50, 50)}
	edges := []diagram.Edge{edge("a", "y"), edge("b", "x")}

	g := buildLayered(nodes, edges, TopBottom)
	pos := make([]int, len(g.layer))
	g.reindex(pos)
	if c := g.crossings(pos); c != 1 {
		t.Fatalf("initial crossings = %d, want 1", c)
	}
	g.order(orderingIterations)
	g.reindex(pos)
	if c := g.crossings(pos); c != 0 {
		t.Errorf("crossings after ordering = %d, want 0", c)
	}
}

func TestLongEdgesAreSubdivided(t *testing.T) {
	nodes := []diagram.Node{box("a", 10, 10), box("b", 10, 10), box("c", 10, 10)}
	edges := []diagram.Edge{edge("a", "b"), edge("b", "c"), edge("a", "c")}
	g := buildLayered(nodes, edges, TopBottom)
	if got := len(g.layer) - g.real; got != 1 {
		t.Errorf("virtual vertices = %d, want 1", got)
	}
	for v := range g.layer {
		for _, w := range g.down[v] {
			if g.layer[w] != g.layer[v]+1 {
				t.Errorf("edge %d->%d spans %d ranks", v, w, g.layer[w]-g.layer[v])
			}
		}
	}
}

func TestLayerCrossings(t *testing.T) {
	// upper: 0 1 2, lower: 3 4 5. Edges 0->5, 1->4, 2->3 all cross pairwise.
	down := [][]int{{5}, {4}, {3}, nil, nil, nil}
	pos := []int{0, 1, 2, 0, 1, 2}
	if got := layerCrossings([]int{0, 1, 2}, 3, down, pos); got != 3 {
		t.Errorf("layerCrossings() = %d, want 3", got)
	}
	if got := layerCrossings(nil, 3, down, pos); got != 0 {
		t.Errorf("layerCrossings(empty) = %d", got)
	}
}

func TestToDOT(t *testing.T) {
	nodes := []diagram.Node{box("api gateway", 144, 72), box("db", 72, 36)}
	edges := []diagram.Edge{edge("api gateway", "db"), edge("db", "missing"), edge("db", "db")}
	dot := ToDOT(nodes, edges, Options{Direction: LeftRight, NodeSpacing: 36, RankSpacing: 72})

	for _, want := range []string{
		"rankdir=LR;",
		"nodesep=0.5000;",
		"ranksep=1.0000;",
		"n0 [width=2.0000, height=1.0000];",
		"n1 [width=1.0000, height=0.5000];",
		"n0 -> n1;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Count(dot, "->") != 1 {
		t.Errorf("DOT should contain exactly one edge:\n%s", dot)
	}
}

func TestParsePositions(t *testing.T) {
	out := []byte(`digraph G {
	graph [bb="0,0,126,180",
		nodesep=0.5
	];
	node [label="", shape=box];
	n0	[height=0.5,
		pos="63,162",
		width=1.75];
	n1	[height=0.5,
		pos="63,18",
		width=1];
	n0 -> n1	[pos="e,63,36.1 63,143.7 63,135.98 63,126.71 63,118.11"];
}
`)
	centers, bb, err := parsePositions(out)
	if err != nil {
		t.Fatalf("parsePositions() error = %v", err)
	}
	if bb != (geom.BoundingBox{MinX: 0, MinY: 0, MaxX: 126, MaxY: 180}) {
		t.Errorf("bb = %+v", bb)
	}
	if centers["n0"] != (geom.Position{X: 63, Y: 162}) || centers["n1"] != (geom.Position{X: 63, Y: 18}) {
		t.Errorf("centers = %v", centers)
	}
	if len(centers) != 2 {
		t.Errorf("edge statement parsed as node: %v", centers)
	}

	if _, _, err := parsePositions([]byte("digraph G {}")); err == nil {
		t.Error("expected error without bounding box")
	}
}

func TestGraphvizLayout(t *testing.T) {
	nodes := []diagram.Node{box("a", 72, 36), box("b", 72, 36), box("c", 72, 36)}
	edges := []diagram.Edge{edge("a", "b"), edge("a", "c")}

	pos, err := Graphviz{}.Layout(context.Background(), nodes, edges, defaultOpts)
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if len(pos) != 3 {
		t.Fatalf("got %d positions", len(pos))
	}
	if !(pos["a"].Y < pos["b"].Y && pos["a"].Y < pos["c"].Y) {
		t.Errorf("source not above targets: %v", pos)
	}
	assertNoOverlap(t, nodes, pos)
}

func ExampleSugiyama() {
	nodes := []diagram.Node{
		{ID: "api", Width: 100, Height: 50},
		{ID: "db", Width: 100, Height: 50},
	}
	edges := []diagram.Edge{{Source: "api", Target: "db"}}

	pos := Sugiyama{}.Place(nodes, edges, Options{Direction: TopBottom, NodeSpacing: 50, RankSpacing: 80})
	fmt.Println(pos["api"], pos["db"])
	// Output: {0 0} {0 130}
}
