// Package rank computes hierarchical (layered) layouts for connected nodes.
//
// # Overview
//
// A [Ranker] takes sized nodes and directed edges and returns a top-left
// position for every node. Sources end up in the first rank and every edge
// points from an earlier rank to a later one, in the configured
// [Direction]. Edges referencing unknown nodes are dropped; an empty node
// set yields an empty map.
//
// Two implementations are provided:
//
//   - [Sugiyama]: a pure Go layered layout, the default
//   - [Graphviz]: delegates ranking and coordinate assignment to the
//     Graphviz dot engine via [github.com/goccy/go-graphviz]
//
// Use [New] to look up a ranker by name ("sugiyama" or "graphviz").
//
// # Sugiyama Pipeline
//
// [Sugiyama] runs the classic four phases:
//
//  1. Cycle breaking: a depth-first search in input order removes back
//     edges (white/gray/black colouring).
//  2. Layering: longest-path layering via Kahn's topological sort, so
//     every node sits one rank below its deepest parent. Edges spanning
//     several ranks are subdivided with zero-size virtual nodes.
//  3. Ordering: barycenter sweeps (down, then up) for a fixed number of
//     iterations. The ordering with the fewest crossings, counted with a
//     Fenwick tree, is kept.
//  4. Coordinates: each rank is packed with NodeSpacing and centered;
//     median alignment passes pull nodes towards their neighbours and a
//     two-sided push-apart restores spacing. Ranks are separated by the
//     thickest node of the rank plus RankSpacing.
//
// Internally all coordinates are centers; the returned positions are
// top-left corners normalized so the smallest x and y are zero.
//
// # Determinism
//
// Both rankers are deterministic: identical input (including node and edge
// order) yields identical output.
package rank
