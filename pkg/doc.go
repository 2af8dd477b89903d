// Package pkg provides the core libraries for archlayout, an automatic
// layout engine for architecture diagrams.
//
// # Overview
//
// Archlayout takes cells (bounded groups such as services or subnets), the
// components inside them, optional gateways on cell borders, and external
// actors, and computes a position for every box plus an SVG path for every
// connection. The pkg directory is organized into four main areas:
//
//  1. [diagram] and [geom] - Input and output types, coordinates and boxes
//  2. [layout] - Placement algorithms (ranking, grid, cell sizing, overlap, actors)
//  3. [engine] and [route] - Orchestration of a full pass and edge routing
//  4. [pipeline], [cache], [api], [config] - Caching, HTTP and configuration
//
// # Architecture
//
// The typical data flow through archlayout:
//
//	diagram.json
//	     ↓
//	[diagram] package (decode + validate)
//	     ↓
//	[engine] package (cells → arrangement → gateways → actors → routes)
//	     ↓
//	[pipeline] package (cache-aside layout and render)
//	     ↓
//	Result JSON / SVG preview
//
// # Quick Start
//
//	d, _ := diagram.ReadDiagramFile("shop.json")
//
//	e, _ := engine.New(engine.WithRankDirection(rank.LeftRight))
//	res, _ := e.Layout(d)
//
//	for id, n := range res.Nodes {
//	    fmt.Println(id, n.X, n.Y, n.Width, n.Height)
//	}
//	os.WriteFile("shop.svg", svg.Render(res, svg.WithLabels()), 0o644)
//
// # Main Packages
//
// [diagram] - Cells, components, gateways, externals and edges, the layout
// result and its JSON encoding.
//
// [layout] - Independent placement steps:
//
//   - [layout/rank]: Hierarchical ranking (native Sugiyama, Graphviz dot)
//   - [layout/grid]: Square-ish grid for unconnected nodes
//   - [layout/twograph]: Split into connected/unconnected and merge back
//   - [layout/cellsize]: Cell sizing and content centering
//   - [layout/overlap]: Iterative overlap repair
//   - [layout/boundary]: Header/bottom zones for external actors
//
// [route] - Port selection and SVG path generation for straight, curved,
// orthogonal and self-loop edges.
//
// [engine] - The complete layout pass with functional options.
//
// [pipeline] - Cache-aside layout and render used by CLI and API.
//
// [cache] - File, Redis and null backends plus cache key derivation.
//
// [render/svg] - SVG preview of a layout result.
//
// [api] - HTTP front end (POST /v1/layout, POST /v1/render).
//
// [config] - TOML layout option files.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/engine/...    # Specific package
//	go test -run Example        # Examples only
//
// [diagram]: https://pkg.go.dev/github.com/matzehuels/archlayout/pkg/diagram
// [geom]: https://pkg.go.dev/github.com/matzehuels/archlayout/pkg/geom
// [layout]: https://pkg.go.dev/github.com/matzehuels/archlayout/pkg/layout
// [layout/rank]: https://pkg.go.dev/github.com/matzehuels/archlayout/pkg/layout/rank
// [layout/grid]: https://pkg.go.dev/github.com/matzehuels/archlayout/pkg/layout/grid
// [layout/twograph]: https://pkg.go.dev/github.com/matzehuels/archlayout/pkg/layout/twograph
// [layout/cellsize]: https://pkg.go.dev/github.com/matzehuels/archlayout/pkg/layout/cellsize
// [layout/overlap]: https://pkg.go.dev/github.com/matzehuels/archlayout/pkg/layout/overlap
// [layout/boundary]: https://pkg.go.dev/github.com/matzehuels/archlayout/pkg/layout/boundary
// [route]: https://pkg.go.dev/github.com/matzehuels/archlayout/pkg/route
// [engine]: https://pkg.go.dev/github.com/matzehuels/archlayout/pkg/engine
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/archlayout/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/archlayout/pkg/cache
// [render/svg]: https://pkg.go.dev/github.com/matzehuels/archlayout/pkg/render/svg
// [api]: https://pkg.go.dev/github.com/matzehuels/archlayout/pkg/api
// [config]: https://pkg.go.dev/github.com/matzehuels/archlayout/pkg/config
package pkg
