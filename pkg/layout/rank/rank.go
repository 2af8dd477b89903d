package rank

import (
	"context"
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/archlayout/pkg/diagram"
	"github.com/matzehuels/archlayout/pkg/errors"
	"github.com/matzehuels/archlayout/pkg/geom"
)

// Direction is the flow direction of ranks.
type Direction string

const (
	TopBottom Direction = "TB"
	BottomTop Direction = "BT"
	LeftRight Direction = "LR"
	RightLeft Direction = "RL"
)

// ParseDirection parses a direction name, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToUpper(strings.TrimSpace(s)))
	switch d {
	case TopBottom, BottomTop, LeftRight, RightLeft:
		return d, nil
	}
	return "", errors.New(errors.ErrCodeInvalidOption, "unknown rank direction %q (want TB, BT, LR or RL)", s)
}

// Horizontal reports whether ranks advance along the x axis.
func (d Direction) Horizontal() bool { return d == LeftRight || d == RightLeft }

// Options configures a ranker call.
type Options struct {
	Direction   Direction
	NodeSpacing float64 // gap between neighbours within a rank
	RankSpacing float64 // gap between consecutive ranks
}

// Ranker lays out a directed graph hierarchically.
type Ranker interface {
	// Name returns the registry name of the ranker.
	Name() string
	// Layout returns a top-left position for every node. Edges referencing
	// unknown nodes are ignored.
	Layout(ctx context.Context, nodes []diagram.Node, edges []diagram.Edge, opts Options) (map[string]geom.Position, error)
}

// Ranker names accepted by [New].
const (
	NameSugiyama = "sugiyama"
	NameGraphviz = "graphviz"
)

var registry = map[string]Ranker{
	NameSugiyama: Sugiyama{},
	NameGraphviz: Graphviz{},
}

// New returns the ranker registered under name. An empty name selects
// [Sugiyama].
func New(name string) (Ranker, error) {
	if name == "" {
		name = NameSugiyama
	}
	r, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidOption, "unknown ranker %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return r, nil
}

// Names returns the registered ranker names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// orient maps a rank-local center (u across the rank, v along the flow) to
// screen coordinates.
func orient(d Direction, u, v float64) geom.Position {
	switch d {
	case BottomTop:
		return geom.Position{X: u, Y: -v}
	case LeftRight:
		return geom.Position{X: v, Y: u}
	case RightLeft:
		return geom.Position{X: -v, Y: u}
	}
	return geom.Position{X: u, Y: v}
}

// toTopLeft converts centers to top-left corners and translates the result
// so the minimum x and y are zero.
func toTopLeft(nodes []diagram.Node, centers map[string]geom.Position) map[string]geom.Position {
	out := make(map[string]geom.Position, len(centers))
	minX, minY := math.Inf(1), math.Inf(1)
	for _, n := range nodes {
		c, ok := centers[n.ID]
		if !ok {
			continue
		}
		p := geom.Position{X: c.X - n.Width/2, Y: c.Y - n.Height/2}
		out[n.ID] = p
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
	}
	if len(out) == 0 {
		return out
	}
	shift := geom.Position{X: -minX, Y: -minY}
	for id, p := range out {
		out[id] = p.Add(shift)
	}
	return out
}
