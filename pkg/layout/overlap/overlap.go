// Package overlap detects overlapping boxes and repairs them by moving the
// offending nodes into a fresh grid block below the rest of the layout.
//
// Resolution is intentionally coarse: it guarantees a non-overlapping result
// in a single pass rather than minimizing displacement.
package overlap

import (
	"math"

	"github.com/matzehuels/archlayout/pkg/diagram"
	"github.com/matzehuels/archlayout/pkg/geom"
	"github.com/matzehuels/archlayout/pkg/layout/grid"
)

// Resolver holds the overlap parameters.
type Resolver struct {
	Padding        float64 // extra clearance required between boxes
	GridSpacing    float64 // spacing of the relocation grid
	VerticalOffset float64 // gap between the remaining layout and the relocation grid
}

// Overlaps reports whether a and b are closer than Padding on both axes.
// Boxes that exactly touch, or sit exactly Padding apart, count as
// overlapping.
func (r Resolver) Overlaps(a, b geom.Rect) bool {
	ab, bb := a.Box(), b.Box()
	separatedX := ab.MaxX+r.Padding < bb.MinX || bb.MaxX+r.Padding < ab.MinX
	separatedY := ab.MaxY+r.Padding < bb.MinY || bb.MaxY+r.Padding < ab.MinY
	return !separatedX && !separatedY
}

// OverlapArea returns the intersection area of a and b without padding, or
// 0 when they are disjoint.
func (r Resolver) OverlapArea(a, b geom.Rect) float64 {
	ab, bb := a.Box(), b.Box()
	w := math.Min(ab.MaxX, bb.MaxX) - math.Max(ab.MinX, bb.MinX)
	h := math.Min(ab.MaxY, bb.MaxY) - math.Max(ab.MinY, bb.MinY)
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Conflicts returns the ids of every node involved in at least one overlap,
// in node order. Nodes without a position are ignored.
func (r Resolver) Conflicts(positions map[string]geom.Position, nodes []diagram.Node) []string {
	placed := make([]diagram.Node, 0, len(nodes))
	for _, n := range nodes {
		if _, ok := positions[n.ID]; ok {
			placed = append(placed, n)
		}
	}

	involved := make([]bool, len(placed))
	for i := range placed {
		a := rectOf(placed[i], positions)
		for j := i + 1; j < len(placed); j++ {
			if r.Overlaps(a, rectOf(placed[j], positions)) {
				involved[i] = true
				involved[j] = true
			}
		}
	}

	var ids []string
	for i, n := range placed {
		if involved[i] {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

// Resolve returns a copy of positions in which every node involved in any
// overlap has been relaid with a grid block anchored at (minX of the
// remaining nodes, maxY of the remaining nodes + VerticalOffset). When no
// node remains in place, the bounds of all original nodes are used instead.
// Non-overlapping nodes keep their positions.
func (r Resolver) Resolve(positions map[string]geom.Position, nodes []diagram.Node) map[string]geom.Position {
	out := make(map[string]geom.Position, len(positions))
	for id, p := range positions {
		out[id] = p
	}

	conflicts := r.Conflicts(positions, nodes)
	if len(conflicts) == 0 {
		return out
	}

	moved := make(map[string]bool, len(conflicts))
	for _, id := range conflicts {
		moved[id] = true
	}

	var remaining, all []geom.Rect
	var movers []diagram.Node
	for _, n := range nodes {
		if _, ok := positions[n.ID]; !ok {
			continue
		}
		rect := rectOf(n, positions)
		all = append(all, rect)
		if moved[n.ID] {
			movers = append(movers, n)
		} else {
			remaining = append(remaining, rect)
		}
	}

	anchor := geom.Bounds(remaining)
	if len(remaining) == 0 {
		anchor = geom.Bounds(all)
	}
	shift := geom.Position{X: anchor.MinX, Y: anchor.MaxY + r.VerticalOffset}

	block := grid.Layout(movers, r.gridSpacing())
	for id, p := range block {
		out[id] = p.Add(shift)
	}
	return out
}

// gridSpacing keeps relocated nodes strictly more than Padding apart.
func (r Resolver) gridSpacing() float64 {
	return math.Max(r.GridSpacing, r.Padding+1)
}

func rectOf(n diagram.Node, positions map[string]geom.Position) geom.Rect {
	return geom.Rect{Position: positions[n.ID], Dimensions: n.Size()}
}
