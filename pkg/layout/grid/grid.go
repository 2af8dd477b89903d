// Package grid places nodes on a uniform square-ish grid.
//
// Grid layout is the fallback for nodes that have no relationships to rank
// by. Every node gets a cell of the same size (the largest node plus
// spacing) and is centered in it, so mixed node sizes still line up.
package grid

import (
	"math"

	"github.com/matzehuels/archlayout/pkg/diagram"
	"github.com/matzehuels/archlayout/pkg/geom"
)

// Layout arranges nodes row-major on a grid of ceil(sqrt(n)) columns.
// Returned positions are top-left corners relative to the origin. An empty
// input yields an empty map.
func Layout(nodes []diagram.Node, spacing float64) map[string]geom.Position {
	pos := make(map[string]geom.Position, len(nodes))
	if len(nodes) == 0 {
		return pos
	}

	cols := Columns(len(nodes))
	cellW, cellH := CellSize(nodes, spacing)

	for i, n := range nodes {
		row, col := i/cols, i%cols
		pos[n.ID] = geom.Position{
			X: float64(col)*cellW + (cellW-n.Width)/2,
			Y: float64(row)*cellH + (cellH-n.Height)/2,
		}
	}
	return pos
}

// Columns returns the number of grid columns used for n nodes.
func Columns(n int) int {
	if n <= 0 {
		return 0
	}
	return int(math.Ceil(math.Sqrt(float64(n))))
}

// CellSize returns the uniform grid cell size: the largest node width and
// height, each plus spacing.
func CellSize(nodes []diagram.Node, spacing float64) (w, h float64) {
	for _, n := range nodes {
		w = math.Max(w, n.Width)
		h = math.Max(h, n.Height)
	}
	return w + spacing, h + spacing
}
