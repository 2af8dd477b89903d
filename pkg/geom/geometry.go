package geom

import (
	"fmt"
	"math"
)

// Side identifies one of the four cardinal attachment points on a box.
type Side int

const (
	SideNone Side = iota
	SideTop
	SideBottom
	SideLeft
	SideRight
)

var sideNames = map[Side]string{
	SideNone:   "",
	SideTop:    "top",
	SideBottom: "bottom",
	SideLeft:   "left",
	SideRight:  "right",
}

// String returns the lowercase side name, or "" for SideNone.
func (s Side) String() string { return sideNames[s] }

// ParseSide converts a side name back into a Side.
func ParseSide(s string) (Side, error) {
	for side, name := range sideNames {
		if name == s {
			return side, nil
		}
	}
	return SideNone, fmt.Errorf("unknown side %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s Side) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Side) UnmarshalText(b []byte) error {
	v, err := ParseSide(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Opposite returns the facing side (top<->bottom, left<->right).
func (s Side) Opposite() Side {
	switch s {
	case SideTop:
		return SideBottom
	case SideBottom:
		return SideTop
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	}
	return SideNone
}

// Normal returns the outward unit vector of the side.
func (s Side) Normal() Position {
	switch s {
	case SideTop:
		return Position{Y: -1}
	case SideBottom:
		return Position{Y: 1}
	case SideLeft:
		return Position{X: -1}
	case SideRight:
		return Position{X: 1}
	}
	return Position{}
}

// Tangent returns the unit vector running along the side.
func (s Side) Tangent() Position {
	switch s {
	case SideTop, SideBottom:
		return Position{X: 1}
	case SideLeft, SideRight:
		return Position{Y: 1}
	}
	return Position{}
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Position) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Position) Position {
	return Position{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// Angle returns the direction from a to b in radians, in (-π, π].
// Because y grows downward, positive angles point below the x-axis.
func Angle(a, b Position) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}

// PortPosition returns the midpoint of the given side of r. SideNone yields
// the center. Zero-area rects collapse every port onto the same point.
func PortPosition(r Rect, side Side) Position {
	c := r.Center()
	switch side {
	case SideTop:
		return Position{X: c.X, Y: r.Y}
	case SideBottom:
		return Position{X: c.X, Y: r.Y + r.Height}
	case SideLeft:
		return Position{X: r.X, Y: c.Y}
	case SideRight:
		return Position{X: r.X + r.Width, Y: c.Y}
	}
	return c
}

const parallelEps = 1e-9

// LineIntersection returns the intersection of the infinite lines through
// (a1, a2) and (b1, b2). ok is false for parallel or degenerate lines.
func LineIntersection(a1, a2, b1, b2 Position) (p Position, ok bool) {
	d := (a2.X-a1.X)*(b2.Y-b1.Y) - (a2.Y-a1.Y)*(b2.X-b1.X)
	if math.Abs(d) < parallelEps {
		return Position{}, false
	}
	t := ((b1.X-a1.X)*(b2.Y-b1.Y) - (b1.Y-a1.Y)*(b2.X-b1.X)) / d
	return Position{X: a1.X + t*(a2.X-a1.X), Y: a1.Y + t*(a2.Y-a1.Y)}, true
}

// SegmentIntersection returns the intersection point of segments a1-a2 and
// b1-b2 when they cross (endpoints included). Collinear overlapping
// segments report no single intersection point.
func SegmentIntersection(a1, a2, b1, b2 Position) (p Position, ok bool) {
	rx, ry := a2.X-a1.X, a2.Y-a1.Y
	sx, sy := b2.X-b1.X, b2.Y-b1.Y
	d := rx*sy - ry*sx
	if math.Abs(d) < parallelEps {
		return Position{}, false
	}
	qx, qy := b1.X-a1.X, b1.Y-a1.Y
	t := (qx*sy - qy*sx) / d
	u := (qx*ry - qy*rx) / d
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Position{}, false
	}
	return Position{X: a1.X + t*rx, Y: a1.Y + t*ry}, true
}

// Contains reports whether p lies inside b, edges included.
func (b BoundingBox) Contains(p Position) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// ContainsBox reports whether o lies entirely inside b, edges included.
func (b BoundingBox) ContainsBox(o BoundingBox) bool {
	return o.MinX >= b.MinX && o.MaxX <= b.MaxX && o.MinY >= b.MinY && o.MaxY <= b.MaxY
}

// SegmentCrossesBox reports whether the segment a-b touches the interior or
// border of box.
func SegmentCrossesBox(a, b Position, box BoundingBox) bool {
	if box.Contains(a) || box.Contains(b) {
		return true
	}
	corners := [4]Position{
		{X: box.MinX, Y: box.MinY},
		{X: box.MaxX, Y: box.MinY},
		{X: box.MaxX, Y: box.MaxY},
		{X: box.MinX, Y: box.MaxY},
	}
	for i := range corners {
		if _, ok := SegmentIntersection(a, b, corners[i], corners[(i+1)%4]); ok {
			return true
		}
	}
	return false
}
