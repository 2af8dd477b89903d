// Package twograph splits a node set into a linked part (laid out
// hierarchically) and an unlinked part (laid out on a grid), and merges the
// two position maps back into one.
package twograph

import (
	"maps"

	"github.com/matzehuels/archlayout/pkg/diagram"
	"github.com/matzehuels/archlayout/pkg/geom"
)

// Split is the result of [Separate].
type Split struct {
	Linked      []diagram.Node
	Unlinked    []diagram.Node
	LinkedEdges []diagram.Edge
}

// Separate partitions nodes. A node is linked iff it is an endpoint of at
// least one edge whose two endpoints are both present in nodes; edges with
// an unknown endpoint are ignored and never make a node linked. LinkedEdges
// keeps the edges whose endpoints are both linked, in input order. Node
// order is preserved in both halves.
func Separate(nodes []diagram.Node, edges []diagram.Edge) Split {
	present := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		present[n.ID] = true
	}

	linked := make(map[string]bool)
	var kept []diagram.Edge
	for _, e := range edges {
		if !present[e.Source] || !present[e.Target] {
			continue
		}
		linked[e.Source] = true
		linked[e.Target] = true
		kept = append(kept, e)
	}

	var s Split
	for _, n := range nodes {
		if linked[n.ID] {
			s.Linked = append(s.Linked, n)
		} else {
			s.Unlinked = append(s.Unlinked, n)
		}
	}
	s.LinkedEdges = kept
	return s
}

// Merge combines the linked and unlinked position maps. The unlinked block
// is translated so its origin sits at (linked.MinX, linked.MaxY + spacing),
// placing it directly below the linked layout. If either map is empty a copy
// of the other is returned unchanged.
//
// dims must contain the size of every linked node.
func Merge(linked, unlinked map[string]geom.Position, dims map[string]geom.Dimensions, spacing float64) map[string]geom.Position {
	if len(unlinked) == 0 {
		return maps.Clone(orEmpty(linked))
	}
	if len(linked) == 0 {
		return maps.Clone(unlinked)
	}

	ids := make([]string, 0, len(linked))
	for id := range linked {
		ids = append(ids, id)
	}
	box := geom.BoundsOf(ids, linked, dims)
	shift := geom.Position{X: box.MinX, Y: box.MaxY + spacing}

	out := make(map[string]geom.Position, len(linked)+len(unlinked))
	for id, p := range linked {
		out[id] = p
	}
	for id, p := range unlinked {
		out[id] = p.Add(shift)
	}
	return out
}

func orEmpty(m map[string]geom.Position) map[string]geom.Position {
	if m == nil {
		return map[string]geom.Position{}
	}
	return m
}

// Dims indexes node sizes by id.
func Dims(nodes []diagram.Node) map[string]geom.Dimensions {
	out := make(map[string]geom.Dimensions, len(nodes))
	for _, n := range nodes {
		out[n.ID] = n.Size()
	}
	return out
}
