package geom

import "math"

// Position is a 2D point. For nodes it denotes the top-left corner.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by q.
func (p Position) Add(q Position) Position { return Position{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns the vector from q to p.
func (p Position) Sub(q Position) Position { return Position{X: p.X - q.X, Y: p.Y - q.Y} }

// Scale multiplies both coordinates by f.
func (p Position) Scale(f float64) Position { return Position{X: p.X * f, Y: p.Y * f} }

// IsFinite reports whether neither coordinate is NaN or infinite.
func (p Position) IsFinite() bool { return isFinite(p.X) && isFinite(p.Y) }

// Dimensions is the size of a node. Zero-area nodes are permitted.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// IsFinite reports whether neither side is NaN or infinite.
func (d Dimensions) IsFinite() bool { return isFinite(d.Width) && isFinite(d.Height) }

// IsNegative reports whether either side is below zero.
func (d Dimensions) IsNegative() bool { return d.Width < 0 || d.Height < 0 }

// Rect is a positioned box: top-left corner plus dimensions.
type Rect struct {
	Position
	Dimensions
}

// NewRect builds a Rect from its top-left corner and size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{Position: Position{X: x, Y: y}, Dimensions: Dimensions{Width: w, Height: h}}
}

// Box returns the bounding box of the rect.
func (r Rect) Box() BoundingBox {
	return BoundingBox{MinX: r.X, MinY: r.Y, MaxX: r.X + r.Width, MaxY: r.Y + r.Height}
}

// Center returns the midpoint of the rect.
func (r Rect) Center() Position {
	return Position{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// BoundingBox holds the extents of a set of rects.
// Invariant: MinX <= MaxX and MinY <= MaxY, or the EmptyBox sentinel.
type BoundingBox struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

// EmptyBox is returned when there is nothing to bound.
var EmptyBox = BoundingBox{}

// Width returns the horizontal extent.
func (b BoundingBox) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent.
func (b BoundingBox) Height() float64 { return b.MaxY - b.MinY }

// Center returns the midpoint of the box.
func (b BoundingBox) Center() Position {
	return Position{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

// CenterX returns the horizontal midpoint.
func (b BoundingBox) CenterX() float64 { return (b.MinX + b.MaxX) / 2 }

// Rect converts the box back into a top-left anchored rect.
func (b BoundingBox) Rect() Rect { return NewRect(b.MinX, b.MinY, b.Width(), b.Height()) }

// Union returns the smallest box containing both b and o.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	return BoundingBox{
		MinX: math.Min(b.MinX, o.MinX),
		MinY: math.Min(b.MinY, o.MinY),
		MaxX: math.Max(b.MaxX, o.MaxX),
		MaxY: math.Max(b.MaxY, o.MaxY),
	}
}

// Expand grows the box by pad on every side.
func (b BoundingBox) Expand(pad float64) BoundingBox {
	return BoundingBox{MinX: b.MinX - pad, MinY: b.MinY - pad, MaxX: b.MaxX + pad, MaxY: b.MaxY + pad}
}

// Bounds returns the tightest box containing every rect, or EmptyBox when
// rects is empty.
func Bounds(rects []Rect) BoundingBox {
	if len(rects) == 0 {
		return EmptyBox
	}
	box := rects[0].Box()
	for _, r := range rects[1:] {
		box = box.Union(r.Box())
	}
	return box
}

// BoundsOf computes the bounding box of the given ids, looking up positions
// and sizes in the provided maps. Ids missing a position are skipped; ids
// missing a size are treated as zero-area.
func BoundsOf(ids []string, positions map[string]Position, dims map[string]Dimensions) BoundingBox {
	rects := make([]Rect, 0, len(ids))
	for _, id := range ids {
		p, ok := positions[id]
		if !ok {
			continue
		}
		rects = append(rects, Rect{Position: p, Dimensions: dims[id]})
	}
	return Bounds(rects)
}

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
