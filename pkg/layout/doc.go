// Package layout groups the placement strategies used by the engine.
//
// # Overview
//
// Each subpackage is a small, pure strategy that takes sized nodes (and
// sometimes edges) and returns top-left positions. None of them hold state
// between calls; configuration is passed explicitly on every call.
//
//   - [grid]: uniform grid for nodes without relationships
//   - [rank]: hierarchical (layered) ranking for connected nodes
//   - [twograph]: split a node set into linked and unlinked parts and merge
//     their layouts back together
//   - [cellsize]: compute a cell's square size and content offset
//   - [overlap]: detect and repair overlapping boxes
//   - [boundary]: place external actors above or below the cell area
//
// A typical interior layout composes them:
//
//	linked, unlinked, edges := twograph.Separate(nodes, edges)
//	a := ranker.Layout(linked, edges, rank.Options{Direction: rank.TopBottom})
//	b := grid.Layout(unlinked, 50)
//	pos := twograph.Merge(a, b, dims, 50)
//	pos = overlap.Resolver{Padding: 10}.Resolve(pos, nodes)
//
// [grid]: github.com/matzehuels/archlayout/pkg/layout/grid
// [rank]: github.com/matzehuels/archlayout/pkg/layout/rank
// [twograph]: github.com/matzehuels/archlayout/pkg/layout/twograph
// [cellsize]: github.com/matzehuels/archlayout/pkg/layout/cellsize
// [overlap]: github.com/matzehuels/archlayout/pkg/layout/overlap
// [boundary]: github.com/matzehuels/archlayout/pkg/layout/boundary
package layout
