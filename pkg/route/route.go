// Package route turns edges between placed boxes into SVG path strings.
//
// # Paths
//
// [Router.Route] produces one of three shapes:
//
//   - a straight line when the endpoints are (almost) aligned on an axis
//   - a cubic Bézier when ports are known, with control points pushed out
//     along the port normals
//   - a horizontal-then-vertical path whose corner is rounded with an
//     elliptical arc when no ports are known
//
// Coordinates are printed with at most two decimals and no trailing zeros,
// so a straight edge from the origin reads "M 0 0 L 100 0".
//
// # Ports and Fan-out
//
// [SelectPorts] picks the facing sides of two boxes from their relative
// centers. [Router.RouteLinks] additionally fans out parallel and opposing
// edges between the same pair of nodes by BidirectionalOffset along the port
// tangent, so they never draw on top of each other.
package route

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/archlayout/pkg/geom"
)

// Style selects the path shape used by RouteLinks.
type Style string

const (
	// StyleCurved routes with cubic Béziers between ports.
	StyleCurved Style = "curved"
	// StyleOrthogonal routes horizontal-then-vertical with a rounded corner.
	StyleOrthogonal Style = "orthogonal"
)

// loopFactor scales CurveOffset into the control distance of Bézier curves.
const loopFactor = 5

// Router holds the routing parameters.
type Router struct {
	CurveRadius         float64 // corner radius of orthogonal paths
	CurveOffset         float64 // base control-point distance of curves
	StraightTolerance   float64 // axis deviation below which a line is drawn
	BidirectionalOffset float64 // spacing between fanned-out edges
	Style               Style
}

// Ports are the attachment sides of an edge. SideNone means unknown.
type Ports struct {
	Source geom.Side
	Target geom.Side
}

// Known reports whether at least one side is set.
func (p Ports) Known() bool { return p.Source != geom.SideNone || p.Target != geom.SideNone }

// complete fills in a missing side with the opposite of the known one.
func (p Ports) complete() Ports {
	switch {
	case p.Source == geom.SideNone:
		p.Source = p.Target.Opposite()
	case p.Target == geom.SideNone:
		p.Target = p.Source.Opposite()
	}
	return p
}

// Route returns the SVG path from src to dst.
func (r Router) Route(src, dst geom.Position, ports Ports) string {
	dx, dy := dst.X-src.X, dst.Y-src.Y
	if math.Abs(dx) < r.StraightTolerance || math.Abs(dy) < r.StraightTolerance {
		return line(src, dst)
	}
	if ports.Known() {
		return r.curve(src, dst, ports.complete())
	}
	return r.corner(src, dst)
}

func line(src, dst geom.Position) string {
	return path("M", src.X, src.Y, "L", dst.X, dst.Y)
}

// curve draws a cubic Bézier whose control points leave and enter along the
// port normals.
func (r Router) curve(src, dst geom.Position, ports Ports) string {
	off := math.Min(loopFactor*r.CurveOffset, math.Min(math.Abs(dst.X-src.X)/2, math.Abs(dst.Y-src.Y)/2))
	c1 := src.Add(ports.Source.Normal().Scale(off))
	c2 := dst.Add(ports.Target.Normal().Scale(off))
	return path("M", src.X, src.Y, "C", c1.X, c1.Y, c2.X, c2.Y, dst.X, dst.Y)
}

// corner runs horizontally from src, turns through an arc, and runs
// vertically into dst.
func (r Router) corner(src, dst geom.Position) string {
	dx, dy := dst.X-src.X, dst.Y-src.Y
	rad := math.Min(r.CurveRadius, math.Min(math.Abs(dx)/2, math.Abs(dy)/2))
	if rad < 1e-6 {
		return line(src, dst)
	}

	right, down := dx > 0, dy > 0
	var sweep float64
	switch {
	case right && down:
		sweep = 1
	case right && !down:
		sweep = 0
	case !right && down:
		sweep = 0
	default:
		sweep = 1
	}

	hx := math.Copysign(1, dx)
	vy := math.Copysign(1, dy)
	return path(
		"M", src.X, src.Y,
		"L", dst.X-hx*rad, src.Y,
		"A", rad, rad, 0, 0, sweep, dst.X, src.Y+vy*rad,
		"L", dst.X, dst.Y,
	)
}

// Loop draws a self loop leaving start along the source port normal and
// entering end along the target port normal.
func (r Router) Loop(start, end geom.Position, ports Ports) string {
	off := loopFactor * r.CurveOffset
	c1 := start.Add(ports.Source.Normal().Scale(off))
	c2 := end.Add(ports.Target.Normal().Scale(off))
	return path("M", start.X, start.Y, "C", c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
}

// path joins commands and numbers with single spaces.
func path(parts ...any) string {
	var b strings.Builder
	for i, p := range parts {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch v := p.(type) {
		case string:
			b.WriteString(v)
		case float64:
			b.WriteString(FormatNumber(v))
		case int:
			b.WriteString(strconv.Itoa(v))
		}
	}
	return b.String()
}

// FormatNumber prints v rounded to two decimals without trailing zeros.
// Negative zero prints as "0".
func FormatNumber(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
