package boundary

import (
	"testing"

	"github.com/matzehuels/archlayout/pkg/diagram"
	"github.com/matzehuels/archlayout/pkg/geom"
)

func ext(id string, typ diagram.ExternalType, dir diagram.Direction) diagram.External {
	return diagram.External{
		Node:      diagram.Node{ID: id, Width: 60, Height: 40},
		Type:      typ,
		Direction: dir,
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name              string
		ext               diagram.External
		inbound, outbound int
		want              Zone
	}{
		{"user always header", ext("u", diagram.ExternalUser, diagram.DirectionOut), 0, 3, Header},
		{"explicit out", ext("x", diagram.ExternalSystem, diagram.DirectionOut), 2, 0, Bottom},
		{"explicit in", ext("x", diagram.ExternalSystem, diagram.DirectionIn), 0, 2, Header},
		{"receives only", ext("x", "", ""), 0, 1, Bottom},
		{"sends only", ext("x", "", ""), 1, 0, Header},
		{"both directions", ext("x", "", ""), 1, 1, Header},
		{"no edges", ext("x", "", ""), 0, 0, Header},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.ext, tt.inbound, tt.outbound); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestZonesResolveThroughComponents(t *testing.T) {
	externals := []diagram.External{ext("stripe", "", ""), ext("cdn", "", "")}
	owners := map[string]string{"A": "A", "A.api": "A", "A.gw": "A"}
	edges := []diagram.Edge{
		{Source: "A.api", Target: "stripe"},
		{Source: "cdn", Target: "A.gw"},
		{Source: "stripe", Target: "unknown"},
	}

	zones := Zones(externals, edges, owners)
	if zones["stripe"] != Bottom {
		t.Errorf("stripe = %v, want bottom", zones["stripe"])
	}
	if zones["cdn"] != Header {
		t.Errorf("cdn = %v, want header", zones["cdn"])
	}
}

func TestPosition(t *testing.T) {
	p := Positioner{Spacing: 40, Offset: 80}
	cells := map[string]geom.Rect{
		"A": geom.NewRect(0, 0, 300, 300),
		"B": geom.NewRect(420, 0, 300, 300),
	}
	extent := geom.BoundingBox{MinX: 0, MinY: 0, MaxX: 720, MaxY: 300}
	owners := map[string]string{"A": "A", "B": "B", "A.api": "A", "B.db": "B"}

	externals := []diagram.External{
		ext("user", diagram.ExternalUser, ""),
		ext("admin", diagram.ExternalUser, ""),
		ext("mail", "", ""),
	}
	edges := []diagram.Edge{
		{Source: "user", Target: "A.api"},
		{Source: "admin", Target: "A.api"},
		{Source: "admin", Target: "B.db"},
		{Source: "B.db", Target: "mail"},
	}

	pos := p.Position(externals, edges, owners, cells, extent)

	// user is aligned on A's center; admin spans two cells so it is group
	// centered on the extent.
	if got := pos["user"]; got != (geom.Position{X: 120, Y: -120}) {
		t.Errorf("user = %v", got)
	}
	if got := pos["admin"]; got != (geom.Position{X: 330, Y: -120}) {
		t.Errorf("admin = %v", got)
	}
	// mail only receives from B, so it sits under B.
	if got := pos["mail"]; got != (geom.Position{X: 540, Y: 380}) {
		t.Errorf("mail = %v", got)
	}
}

func TestPositionPushesApartOverlaps(t *testing.T) {
	p := Positioner{Spacing: 40, Offset: 80}
	cells := map[string]geom.Rect{"A": geom.NewRect(0, 0, 300, 300)}
	extent := cells["A"].Box()
	owners := map[string]string{"A": "A"}

	externals := []diagram.External{
		ext("u1", diagram.ExternalUser, ""),
		ext("u2", diagram.ExternalUser, ""),
		ext("u3", diagram.ExternalUser, ""),
	}
	edges := []diagram.Edge{
		{Source: "u1", Target: "A"},
		{Source: "u2", Target: "A"},
		{Source: "u3", Target: "A"},
	}

	pos := p.Position(externals, edges, owners, cells, extent)

	// All three align on the same center; the sweep keeps input order.
	if !(pos["u1"].X < pos["u2"].X && pos["u2"].X < pos["u3"].X) {
		t.Fatalf("input order not kept: %v", pos)
	}
	for _, pair := range [][2]string{{"u1", "u2"}, {"u2", "u3"}} {
		if gap := pos[pair[1]].X - (pos[pair[0]].X + 60); gap < 40 {
			t.Errorf("%s-%s gap = %v, want >= 40", pair[0], pair[1], gap)
		}
	}
}

func TestPositionNoEdgesGoesToHeader(t *testing.T) {
	p := Positioner{Spacing: 40, Offset: 80}
	extent := geom.BoundingBox{MinX: 0, MinY: 100, MaxX: 200, MaxY: 400}
	pos := p.Position([]diagram.External{ext("lonely", "", "")}, nil, nil, nil, extent)

	want := geom.Position{X: 70, Y: -20}
	if pos["lonely"] != want {
		t.Errorf("lonely = %v, want %v", pos["lonely"], want)
	}
}

func TestPositionEmpty(t *testing.T) {
	if got := (Positioner{}).Position(nil, nil, nil, nil, geom.EmptyBox); len(got) != 0 {
		t.Errorf("Position(nil) = %v", got)
	}
}
