// Package cellsize computes the square size of a cell from the bounding box
// of its laid-out content.
package cellsize

import (
	"math"

	"github.com/matzehuels/archlayout/pkg/diagram"
	"github.com/matzehuels/archlayout/pkg/geom"
)

// Default sizing parameters. A non-positive PaddingMultiplier falls back to
// DefaultPaddingMultiplier.
const (
	DefaultMinCellSize       = 300
	DefaultPaddingMultiplier = 1.5
	DefaultMinPadding        = 20
)

// Sizer turns content extents into cell dimensions. Cells are always square.
type Sizer struct {
	MinCellSize       float64 // smallest side length, also used for empty cells
	PaddingMultiplier float64 // scale applied to the largest content extent
	MinPadding        float64 // guaranteed clearance on every side of the content
}

// Calculate returns the size of a cell holding the given content and the
// offset that centers the content inside it. Positions are top-left corners;
// ids missing from dims count as zero-area.
//
// An empty cell is a MinCellSize square with zero offset. Otherwise the side
// is max(contentW, contentH, MinCellSize) times PaddingMultiplier, grown
// further if needed so MinPadding holds on every side.
func (s Sizer) Calculate(positions map[string]geom.Position, dims map[string]geom.Dimensions) diagram.CellDimensions {
	if len(positions) == 0 {
		return diagram.CellDimensions{Width: s.MinCellSize, Height: s.MinCellSize}
	}

	box := contentBox(positions, dims)
	cw, ch := box.Width(), box.Height()

	side := math.Max(math.Max(cw, ch), s.MinCellSize) * s.multiplier()
	side = math.Max(side, cw+2*s.MinPadding)
	side = math.Max(side, ch+2*s.MinPadding)

	return diagram.CellDimensions{
		Width:  side,
		Height: side,
		ContentOffset: geom.Position{
			X: (side-cw)/2 - box.MinX,
			Y: (side-ch)/2 - box.MinY,
		},
	}
}

// Fit centers content inside fixed cell dimensions. The returned offset may
// be negative on an axis where the content is larger than the cell.
func (s Sizer) Fit(positions map[string]geom.Position, dims map[string]geom.Dimensions, size geom.Dimensions) diagram.CellDimensions {
	cd := diagram.CellDimensions{Width: size.Width, Height: size.Height}
	if len(positions) == 0 {
		return cd
	}
	box := contentBox(positions, dims)
	cd.ContentOffset = geom.Position{
		X: (size.Width-box.Width())/2 - box.MinX,
		Y: (size.Height-box.Height())/2 - box.MinY,
	}
	return cd
}

func (s Sizer) multiplier() float64 {
	if s.PaddingMultiplier <= 0 {
		return DefaultPaddingMultiplier
	}
	return s.PaddingMultiplier
}

func contentBox(positions map[string]geom.Position, dims map[string]geom.Dimensions) geom.BoundingBox {
	rects := make([]geom.Rect, 0, len(positions))
	for id, p := range positions {
		rects = append(rects, geom.Rect{Position: p, Dimensions: dims[id]})
	}
	return geom.Bounds(rects)
}

// Apply shifts every position by the content offset of cd.
func Apply(positions map[string]geom.Position, cd diagram.CellDimensions) map[string]geom.Position {
	out := make(map[string]geom.Position, len(positions))
	for id, p := range positions {
		out[id] = p.Add(cd.ContentOffset)
	}
	return out
}
