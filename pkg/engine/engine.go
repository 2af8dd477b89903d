package engine

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/archlayout/pkg/diagram"
	"github.com/matzehuels/archlayout/pkg/geom"
	"github.com/matzehuels/archlayout/pkg/layout/boundary"
	"github.com/matzehuels/archlayout/pkg/layout/cellsize"
	"github.com/matzehuels/archlayout/pkg/layout/grid"
	"github.com/matzehuels/archlayout/pkg/layout/overlap"
	"github.com/matzehuels/archlayout/pkg/layout/rank"
	"github.com/matzehuels/archlayout/pkg/layout/twograph"
	"github.com/matzehuels/archlayout/pkg/route"
)

// Engine lays out diagrams. An Engine is immutable once built and safe for
// concurrent use.
type Engine struct {
	opts   Options
	ranker rank.Ranker
	logger *log.Logger
}

// New builds an engine from DefaultOptions with opts applied in order.
func New(opts ...Option) (*Engine, error) {
	s := settings{opts: DefaultOptions()}
	return build(s, opts)
}

// Configure returns a new engine that starts from e's configuration with
// opts applied. e itself is left unchanged.
func (e *Engine) Configure(opts ...Option) (*Engine, error) {
	return build(settings{opts: e.opts, logger: e.logger}, opts)
}

func build(s settings, opts []Option) (*Engine, error) {
	for _, o := range opts {
		o(&s)
	}
	if err := s.opts.Validate(); err != nil {
		return nil, err
	}
	s.opts = s.opts.normalized()
	r, err := rank.New(s.opts.Ranker)
	if err != nil {
		return nil, err
	}
	if s.logger == nil {
		s.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Engine{opts: s.opts, ranker: r, logger: s.logger}, nil
}

// Options returns a copy of the engine's configuration.
func (e *Engine) Options() Options { return e.opts }

// Layout runs a full layout pass with a background context.
func (e *Engine) Layout(d diagram.Diagram) (*diagram.Result, error) {
	return e.LayoutContext(context.Background(), d)
}

// LayoutContext runs a full layout pass. Structural problems in d are
// returned as errors; unresolved references are reported as warnings on the
// result and otherwise skipped.
func (e *Engine) LayoutContext(ctx context.Context, d diagram.Diagram) (*diagram.Result, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	res := diagram.NewResult()

	interiors := make(map[string]map[string]geom.Position, len(d.Cells))
	for _, c := range d.Cells {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pos, cd := e.layoutCell(ctx, c, res)
		interiors[c.ID] = pos
		res.CellDimensions[c.ID] = cd
	}
	e.logger.Debug("cells sized", "cells", len(d.Cells))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	origins := e.arrangeCells(ctx, d, res)

	cellBoxes := make(map[string]geom.Rect, len(d.Cells))
	var extent []geom.Rect
	for _, c := range d.Cells {
		cd := res.CellDimensions[c.ID]
		origin := origins[c.ID]
		box := geom.NewRect(origin.X, origin.Y, cd.Width, cd.Height)
		cellBoxes[c.ID] = box
		extent = append(extent, box)
		res.Nodes[c.ID] = diagram.NodeLayout{Position: box.Position, Dimensions: box.Dimensions, Kind: diagram.KindCell}

		for _, n := range c.Components {
			res.Nodes[n.ID] = diagram.NodeLayout{
				Position:   interiors[c.ID][n.ID].Add(origin),
				Dimensions: n.Size(),
				Kind:       diagram.KindComponent,
				Parent:     c.ID,
			}
		}
		if gw := c.Gateway; gw != nil {
			p := geom.Position{
				X: origin.X + cd.Width/2 - gw.Width/2,
				Y: origin.Y - gw.Height/2,
			}
			res.Nodes[gw.ID] = diagram.NodeLayout{Position: p, Dimensions: gw.Size(), Kind: diagram.KindGateway, Parent: c.ID}
			extent = append(extent, geom.Rect{Position: p, Dimensions: gw.Size()})
		}
	}

	if len(d.Externals) > 0 {
		positioner := boundary.Positioner{Spacing: e.opts.ExternalSpacing, Offset: e.opts.ExternalOffset}
		edges := make([]diagram.Edge, 0, len(d.Connections)+len(d.InterCellConnections))
		edges = append(edges, d.Connections...)
		edges = append(edges, d.InterCellConnections...)
		placed := positioner.Position(d.Externals, edges, d.Owners(), cellBoxes, geom.Bounds(extent))
		for _, x := range d.Externals {
			res.Nodes[x.ID] = diagram.NodeLayout{Position: placed[x.ID], Dimensions: x.Size(), Kind: x.Kind()}
		}
		e.logger.Debug("externals placed", "externals", len(d.Externals))
	}

	e.routeEdges(d, res)
	res.Bounds = res.ComputeBounds()

	e.logger.Debug("layout complete",
		"cells", len(d.Cells),
		"externals", len(d.Externals),
		"edges", len(res.Edges),
		"warnings", len(res.Warnings),
		"duration", time.Since(start))
	return res, nil
}

// layoutCell positions a cell's components relative to the cell origin and
// sizes the cell around them.
func (e *Engine) layoutCell(ctx context.Context, c diagram.Cell, res *diagram.Result) (map[string]geom.Position, diagram.CellDimensions) {
	dims := twograph.Dims(c.Components)
	pos := e.arrange(ctx, c.ID, c.Components, c.InternalConnections, rank.Options{
		Direction:   e.opts.RankDirection,
		NodeSpacing: e.opts.NodeSpacing,
		RankSpacing: e.opts.RankSpacing,
	}, e.opts.NodeSpacing, res)

	sizer := cellsize.Sizer{
		MinCellSize:       e.opts.MinCellSize,
		PaddingMultiplier: e.opts.CellPaddingMultiplier,
		MinPadding:        e.opts.MinCellPadding,
	}
	var cd diagram.CellDimensions
	if c.Dimensions != nil {
		cd = sizer.Fit(pos, dims, *c.Dimensions)
	} else {
		cd = sizer.Calculate(pos, dims)
	}
	return cellsize.Apply(pos, cd), cd
}

// arrangeCells returns the top-left origin of every cell.
func (e *Engine) arrangeCells(ctx context.Context, d diagram.Diagram, res *diagram.Result) map[string]geom.Position {
	nodes := make([]diagram.Node, len(d.Cells))
	for i, c := range d.Cells {
		cd := res.CellDimensions[c.ID]
		nodes[i] = diagram.Node{ID: c.ID, Width: cd.Width, Height: cd.Height}
	}

	owners := d.Owners()
	kinds := d.Kinds()
	var edges []diagram.Edge
	for _, ic := range d.InterCellConnections {
		src, sok := owners[ic.Source]
		dst, dok := owners[ic.Target]
		if !sok || !dok {
			for _, id := range []string{ic.Source, ic.Target} {
				if _, known := kinds[id]; !known {
					res.Warn(diagram.WarnUnknownCellRef, id, "inter-cell connection %s -> %s references unknown node %q", ic.Source, ic.Target, id)
				}
			}
			continue
		}
		if src == dst {
			continue
		}
		edges = append(edges, diagram.Edge{ID: ic.ID, Source: src, Target: dst})
	}

	return e.arrange(ctx, "", nodes, edges, rank.Options{
		Direction:   e.opts.CellRankDirection,
		NodeSpacing: e.opts.CellSpacing,
		RankSpacing: e.opts.CellSpacing,
	}, e.opts.CellSpacing, res)
}

// arrange is the shared two-graph pass: rank the linked nodes, grid the
// rest, merge and resolve overlaps.
func (e *Engine) arrange(
	ctx context.Context,
	scope string,
	nodes []diagram.Node,
	edges []diagram.Edge,
	ro rank.Options,
	gridSpacing float64,
	res *diagram.Result,
) map[string]geom.Position {
	split := twograph.Separate(nodes, edges)

	var linked map[string]geom.Position
	if len(split.Linked) > 0 {
		var err error
		linked, err = e.ranker.Layout(ctx, split.Linked, split.LinkedEdges, ro)
		if err != nil {
			e.logger.Warn("ranker failed, falling back", "ranker", e.ranker.Name(), "scope", scope, "err", err)
			res.Warn(diagram.WarnRankerFallback, scope, "%s ranker failed, used %s: %v", e.ranker.Name(), rank.NameSugiyama, err)
			linked = rank.Sugiyama{}.Place(split.Linked, split.LinkedEdges, ro)
		}
	}
	unlinked := grid.Layout(split.Unlinked, gridSpacing)

	merged := twograph.Merge(linked, unlinked, twograph.Dims(nodes), gridSpacing)
	resolver := overlap.Resolver{
		Padding:        e.opts.OverlapPadding,
		GridSpacing:    e.opts.GridSpacing,
		VerticalOffset: e.opts.GridVerticalOffset,
	}
	return resolver.Resolve(merged, nodes)
}

// routeEdges routes Connections followed by every cell's internal
// connections.
func (e *Engine) routeEdges(d diagram.Diagram, res *diagram.Result) {
	all := make([]diagram.Edge, 0, d.EdgeCount())
	all = append(all, d.Connections...)
	for _, c := range d.Cells {
		all = append(all, c.InternalConnections...)
	}

	type endpoints struct{ src, dst string }
	seen := make(map[string]endpoints, len(all))
	unnamed := make(map[endpoints]int)

	var links []route.Link
	for _, edge := range all {
		ep := endpoints{edge.Source, edge.Target}
		id := edge.ID
		if id == "" {
			id = fmt.Sprintf("%s->%s#%d", edge.Source, edge.Target, unnamed[ep])
			unnamed[ep]++
		}
		if prev, dup := seen[id]; dup {
			if prev != ep {
				res.Warn(diagram.WarnDuplicateEdge, id, "edge %q redefined as %s -> %s, keeping %s -> %s", id, ep.src, ep.dst, prev.src, prev.dst)
			}
			continue
		}
		seen[id] = ep

		src, sok := res.Nodes[edge.Source]
		dst, dok := res.Nodes[edge.Target]
		if !sok || !dok {
			missing := edge.Target
			if !sok {
				missing = edge.Source
			}
			res.Warn(diagram.WarnDanglingEdge, id, "edge %s -> %s references unknown node %q", edge.Source, edge.Target, missing)
			continue
		}
		links = append(links, route.Link{
			ID:        id,
			Source:    edge.Source,
			Target:    edge.Target,
			SourceBox: src.Rect(),
			TargetBox: dst.Rect(),
			Data:      edge.Data,
		})
	}

	router := route.Router{
		CurveRadius:         e.opts.EdgeCurveRadius,
		CurveOffset:         e.opts.CurveOffset,
		StraightTolerance:   e.opts.StraightLineTolerance,
		BidirectionalOffset: e.opts.BidirectionalOffset,
		Style:               e.opts.EdgeStyle,
	}
	for _, p := range router.RouteLinks(links) {
		res.Edges[p.ID] = p
	}
	e.logger.Debug("edges routed", "edges", len(links), "warnings", len(res.Warnings))
}
