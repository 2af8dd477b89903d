// Package engine orchestrates a complete diagram layout pass.
//
// # Overview
//
// An [Engine] turns a [diagram.Diagram] into a [diagram.Result] in five
// phases:
//
//  1. Cell interiors: components linked by internal connections are ranked
//     hierarchically, the rest are placed on a grid below them, overlaps are
//     repaired and the cell is sized to fit its content.
//  2. Cell arrangement: the same two-graph pass runs over the cells, using
//     inter-cell connections resolved to their owning cells.
//  3. Gateways are centered on the top edge of their cell.
//  4. External actors are placed in a header zone above or a bottom zone
//     below the cells.
//  5. Connections are routed between the placed boxes.
//
// # Configuration
//
// Engines are immutable. [New] applies functional options on top of
// [DefaultOptions]; [Engine.Configure] derives a new engine and leaves the
// receiver untouched, so one engine can be shared across goroutines:
//
//	e, err := engine.New(
//	    engine.WithRankDirection(rank.LeftRight),
//	    engine.WithNodeSpacing(80),
//	)
//	res, err := e.Layout(d)
//
// # Warnings
//
// Structural problems (duplicate ids, negative sizes) are returned as
// errors. Unresolved references are not: dangling edges, duplicate edge ids
// and inter-cell connections to unknown nodes are skipped and reported in
// [diagram.Result.Warnings]. If the configured ranker fails, the native
// Sugiyama ranker is used instead and a ranker_fallback warning is added.
package engine
