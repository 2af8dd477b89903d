package route

import (
	"math"

	"github.com/matzehuels/archlayout/pkg/diagram"
	"github.com/matzehuels/archlayout/pkg/geom"
)

// SelectPorts chooses the facing sides of src and dst. When the centers are
// further apart vertically than horizontally (ties included) the edge leaves
// through the top or bottom; otherwise through the left or right.
func SelectPorts(src, dst geom.Rect) Ports {
	sc, dc := src.Center(), dst.Center()
	dx, dy := dc.X-sc.X, dc.Y-sc.Y
	if math.Abs(dy) >= math.Abs(dx) {
		if dy >= 0 {
			return Ports{Source: geom.SideBottom, Target: geom.SideTop}
		}
		return Ports{Source: geom.SideTop, Target: geom.SideBottom}
	}
	if dx > 0 {
		return Ports{Source: geom.SideRight, Target: geom.SideLeft}
	}
	return Ports{Source: geom.SideLeft, Target: geom.SideRight}
}

// PortPosition returns the midpoint of the given side of r.
func PortPosition(r geom.Rect, side geom.Side) geom.Position {
	return geom.PortPosition(r, side)
}

// Link is an edge whose endpoints have been resolved to placed boxes.
type Link struct {
	ID        string
	Source    string
	Target    string
	SourceBox geom.Rect
	TargetBox geom.Rect
	Data      diagram.Data
}

// FanOffsets returns, for every link, its shift along the port tangent.
// Links between the same unordered pair of nodes are numbered in input
// order; the k-th of n links is shifted by (k - (n-1)/2) * spacing, so a
// lone link is never shifted.
func FanOffsets(links []Link, spacing float64) []float64 {
	type pair struct{ a, b string }
	key := func(l Link) pair {
		if l.Source <= l.Target {
			return pair{l.Source, l.Target}
		}
		return pair{l.Target, l.Source}
	}

	counts := make(map[pair]int)
	for _, l := range links {
		counts[key(l)]++
	}

	seen := make(map[pair]int)
	out := make([]float64, len(links))
	for i, l := range links {
		k := key(l)
		n := counts[k]
		out[i] = (float64(seen[k]) - float64(n-1)/2) * spacing
		seen[k]++
	}
	return out
}

// RouteLinks routes every link and returns the paths in input order.
// Self loops leave through the right side and re-enter through the top.
func (r Router) RouteLinks(links []Link) []diagram.EdgePath {
	offsets := FanOffsets(links, r.BidirectionalOffset)
	out := make([]diagram.EdgePath, len(links))
	for i, l := range links {
		var (
			ports      Ports
			start, end geom.Position
			d          string
		)
		if l.Source == l.Target {
			ports = Ports{Source: geom.SideRight, Target: geom.SideTop}
			start = shift(PortPosition(l.SourceBox, ports.Source), ports.Source, offsets[i])
			end = shift(PortPosition(l.TargetBox, ports.Target), ports.Target, offsets[i])
			d = r.Loop(start, end, ports)
		} else {
			ports = SelectPorts(l.SourceBox, l.TargetBox)
			start = shift(PortPosition(l.SourceBox, ports.Source), ports.Source, offsets[i])
			end = shift(PortPosition(l.TargetBox, ports.Target), ports.Target, offsets[i])
			if r.Style == StyleOrthogonal {
				d = r.Route(start, end, Ports{})
			} else {
				d = r.Route(start, end, ports)
			}
		}
		out[i] = diagram.EdgePath{
			ID:         l.ID,
			Source:     l.Source,
			Target:     l.Target,
			Path:       d,
			SourcePort: ports.Source,
			TargetPort: ports.Target,
			Start:      start,
			End:        end,
			Data:       l.Data,
		}
	}
	return out
}

func shift(p geom.Position, side geom.Side, by float64) geom.Position {
	if by == 0 {
		return p
	}
	return p.Add(side.Tangent().Scale(by))
}
