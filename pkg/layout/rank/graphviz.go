package rank

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/archlayout/pkg/diagram"
	"github.com/matzehuels/archlayout/pkg/errors"
	"github.com/matzehuels/archlayout/pkg/geom"
)

// pointsPerInch converts between layout units (points) and Graphviz inches.
const pointsPerInch = 72.0

// Graphviz ranks with the Graphviz dot engine. Node sizes are passed as
// fixed sizes, so the returned boxes keep their input dimensions.
type Graphviz struct{}

// Name implements [Ranker].
func (Graphviz) Name() string { return NameGraphviz }

// Layout implements [Ranker].
func (Graphviz) Layout(ctx context.Context, nodes []diagram.Node, edges []diagram.Edge, opts Options) (map[string]geom.Position, error) {
	if len(nodes) == 0 {
		return map[string]geom.Position{}, nil
	}

	out, err := renderDOT(ctx, ToDOT(nodes, edges, opts))
	if err != nil {
		return nil, err
	}
	centers, bb, err := parsePositions(out)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]geom.Position, len(nodes))
	for i, n := range nodes {
		c, ok := centers[dotID(i)]
		if !ok {
			return nil, errors.New(errors.ErrCodeInternal, "graphviz output has no position for node %q", n.ID)
		}
		if _, dup := byID[n.ID]; !dup {
			// Graphviz puts the origin at the bottom left.
			byID[n.ID] = geom.Position{X: c.X, Y: bb.MaxY - c.Y}
		}
	}
	return toTopLeft(nodes, byID), nil
}

// ToDOT converts nodes and edges to Graphviz DOT source. Nodes are emitted
// under synthetic ids n0, n1, ... in input order so arbitrary user ids never
// need quoting. Edges with an unknown endpoint and self loops are skipped.
func ToDOT(nodes []diagram.Node, edges []diagram.Edge, opts Options) string {
	dir := opts.Direction
	if dir == "" {
		dir = TopBottom
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", dir)
	fmt.Fprintf(&buf, "  nodesep=%s;\n", inches(opts.NodeSpacing))
	fmt.Fprintf(&buf, "  ranksep=%s;\n", inches(opts.RankSpacing))
	buf.WriteString("  node [shape=box, fixedsize=true, label=\"\"];\n")
	buf.WriteString("\n")

	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		if _, ok := index[n.ID]; !ok {
			index[n.ID] = i
		}
		fmt.Fprintf(&buf, "  %s [width=%s, height=%s];\n", dotID(i), inches(n.Width), inches(n.Height))
	}

	buf.WriteString("\n")
	for _, e := range edges {
		s, ok1 := index[e.Source]
		t, ok2 := index[e.Target]
		if !ok1 || !ok2 || s == t {
			continue
		}
		fmt.Fprintf(&buf, "  %s -> %s;\n", dotID(s), dotID(t))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func dotID(i int) string { return "n" + strconv.Itoa(i) }

func inches(points float64) string {
	return strconv.FormatFloat(points/pointsPerInch, 'f', 4, 64)
}

// renderDOT runs the dot layout and returns its annotated DOT output.
func renderDOT(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.XDOT, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return buf.Bytes(), nil
}

var (
	nodeStmtRe = regexp.MustCompile(`(?ms)^\s*(n\d+)\s*\[([^\]]*)\]`)
	posRe      = regexp.MustCompile(`pos="(-?[\d.]+),(-?[\d.]+)"`)
	bbRe       = regexp.MustCompile(`bb="(-?[\d.]+),(-?[\d.]+),(-?[\d.]+),(-?[\d.]+)"`)
)

// parsePositions extracts node centers and the graph bounding box from
// Graphviz output. Coordinates are in points with y growing upward.
func parsePositions(out []byte) (map[string]geom.Position, geom.BoundingBox, error) {
	m := bbRe.FindSubmatch(out)
	if m == nil {
		return nil, geom.BoundingBox{}, errors.New(errors.ErrCodeInternal, "graphviz output has no bounding box")
	}
	v := parseFloats(m[1:])
	bb := geom.BoundingBox{MinX: v[0], MinY: v[1], MaxX: v[2], MaxY: v[3]}

	centers := make(map[string]geom.Position)
	for _, stmt := range nodeStmtRe.FindAllSubmatch(out, -1) {
		p := posRe.FindSubmatch(stmt[2])
		if p == nil {
			continue
		}
		xy := parseFloats(p[1:])
		centers[string(stmt[1])] = geom.Position{X: xy[0], Y: xy[1]}
	}
	return centers, bb, nil
}

func parseFloats(groups [][]byte) []float64 {
	out := make([]float64, len(groups))
	for i, g := range groups {
		out[i], _ = strconv.ParseFloat(strings.TrimSpace(string(g)), 64)
	}
	return out
}
