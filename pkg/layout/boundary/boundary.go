// Package boundary places external actors in the zones above (header) and
// below (bottom) the cell area.
//
// Users and inbound actors go to the header; actors that only receive
// traffic from cells go to the bottom. An actor connected to exactly one
// cell is centered over (or under) that cell; the others are packed as a
// group centered on the cell area. A final sweep pushes members apart so no
// two actors in a zone overlap.
package boundary

import (
	"cmp"
	"slices"

	"github.com/matzehuels/archlayout/pkg/diagram"
	"github.com/matzehuels/archlayout/pkg/geom"
)

// Zone is where an external actor is placed.
type Zone int

const (
	Header Zone = iota
	Bottom
)

func (z Zone) String() string {
	if z == Bottom {
		return "bottom"
	}
	return "header"
}

// Positioner holds the placement parameters.
type Positioner struct {
	Spacing float64 // horizontal gap between actors in a zone
	Offset  float64 // vertical gap between the cell area and a zone
}

// links summarizes how one actor connects to cells.
type links struct {
	inbound  int      // actor -> cell edges
	outbound int      // cell -> actor edges
	cells    []string // distinct connected cells, first-seen order
}

// Classify returns the zone of ext:
//   - users go to the header
//   - an explicit direction wins: "out" is bottom, "in" is header
//   - otherwise the actor goes to the bottom iff cells send to it and it
//     sends to no cell; every other case, including no edges, is header
//
// inbound counts actor->cell edges and outbound cell->actor edges.
func Classify(ext diagram.External, inbound, outbound int) Zone {
	if ext.Type == diagram.ExternalUser {
		return Header
	}
	switch ext.Direction {
	case diagram.DirectionOut:
		return Bottom
	case diagram.DirectionIn:
		return Header
	}
	if outbound > 0 && inbound == 0 {
		return Bottom
	}
	return Header
}

// collectLinks resolves every edge touching an actor to the owning cell of
// its other endpoint. owners maps cell, component and gateway ids to their
// cell id; endpoints outside it are ignored.
func collectLinks(externals []diagram.External, edges []diagram.Edge, owners map[string]string) map[string]*links {
	out := make(map[string]*links, len(externals))
	for _, e := range externals {
		out[e.ID] = &links{}
	}
	add := func(l *links, cell string) {
		if !slices.Contains(l.cells, cell) {
			l.cells = append(l.cells, cell)
		}
	}
	for _, e := range edges {
		if l, ok := out[e.Source]; ok {
			if cell, ok := owners[e.Target]; ok {
				l.inbound++
				add(l, cell)
			}
		}
		if l, ok := out[e.Target]; ok {
			if cell, ok := owners[e.Source]; ok {
				l.outbound++
				add(l, cell)
			}
		}
	}
	return out
}

// Zones classifies every actor.
func Zones(externals []diagram.External, edges []diagram.Edge, owners map[string]string) map[string]Zone {
	ls := collectLinks(externals, edges, owners)
	zones := make(map[string]Zone, len(externals))
	for _, e := range externals {
		zones[e.ID] = Classify(e, ls[e.ID].inbound, ls[e.ID].outbound)
	}
	return zones
}

// Position returns a top-left position for every actor. cells holds the
// placed cell boxes and extent the box around cells and gateways.
func (p Positioner) Position(
	externals []diagram.External,
	edges []diagram.Edge,
	owners map[string]string,
	cells map[string]geom.Rect,
	extent geom.BoundingBox,
) map[string]geom.Position {
	pos := make(map[string]geom.Position, len(externals))
	if len(externals) == 0 {
		return pos
	}

	ls := collectLinks(externals, edges, owners)
	var header, bottom []diagram.External
	for _, e := range externals {
		if l := ls[e.ID]; Classify(e, l.inbound, l.outbound) == Bottom {
			bottom = append(bottom, e)
		} else {
			header = append(header, e)
		}
	}

	p.placeZone(header, ls, cells, extent, pos, func(e diagram.External) float64 {
		return extent.MinY - p.Offset - e.Height
	})
	p.placeZone(bottom, ls, cells, extent, pos, func(diagram.External) float64 {
		return extent.MaxY + p.Offset
	})
	return pos
}

func (p Positioner) placeZone(
	members []diagram.External,
	ls map[string]*links,
	cells map[string]geom.Rect,
	extent geom.BoundingBox,
	pos map[string]geom.Position,
	y func(diagram.External) float64,
) {
	if len(members) == 0 {
		return
	}

	type slot struct {
		ext   diagram.External
		x     float64
		order int
	}
	slots := make([]slot, 0, len(members))

	var group []int
	for i, m := range members {
		l := ls[m.ID]
		if len(l.cells) == 1 {
			if r, ok := cells[l.cells[0]]; ok {
				slots = append(slots, slot{ext: m, x: r.Center().X - m.Width/2, order: i})
				continue
			}
		}
		group = append(group, i)
	}

	total := 0.0
	for k, i := range group {
		if k > 0 {
			total += p.Spacing
		}
		total += members[i].Width
	}
	cursor := extent.CenterX() - total/2
	for _, i := range group {
		slots = append(slots, slot{ext: members[i], x: cursor, order: i})
		cursor += members[i].Width + p.Spacing
	}

	slices.SortStableFunc(slots, func(a, b slot) int {
		if c := cmp.Compare(a.x, b.x); c != 0 {
			return c
		}
		return cmp.Compare(a.order, b.order)
	})
	for i := 1; i < len(slots); i++ {
		prev := slots[i-1]
		if limit := prev.x + prev.ext.Width + p.Spacing; slots[i].x < limit {
			slots[i].x = limit
		}
	}

	for _, s := range slots {
		pos[s.ext.ID] = geom.Position{X: s.x, Y: y(s.ext)}
	}
}
