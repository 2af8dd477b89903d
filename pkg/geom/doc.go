// Package geom provides the 2D primitives shared by every layout stage.
//
// # Coordinate System
//
// All coordinates use screen orientation: x grows to the right and y grows
// downward. A node's [Position] is always its top-left corner; strategies
// that compute centers (such as hierarchical rankers) convert before
// returning. Bounding-box, overlap and port math throughout the module
// depends on this convention.
//
// # Core Types
//
//   - [Position]: a point, copied by value
//   - [Dimensions]: width and height, never negative
//   - [Rect]: a positioned box (top-left plus dimensions)
//   - [BoundingBox]: min/max extents derived from a set of rects
//   - [Side]: one of the four port sides of a box
//
// # Bounding Boxes
//
// Bounding boxes are always derived, never stored independently of the
// rects they summarize. [Bounds] returns [EmptyBox] ({0,0,0,0}) when given
// no rects, so callers never have to special-case an empty node set.
//
// # Utilities
//
// [Distance], [Midpoint], [Angle], [PortPosition], [SegmentIntersection],
// [LineIntersection] and the containment helpers are pure functions with no
// allocation beyond their return values.
package geom
