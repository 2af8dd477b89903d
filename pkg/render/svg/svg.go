// Package svg renders a layout result as a standalone SVG preview.
//
// The preview is a debugging aid for checking a layout by eye: boxes are
// drawn per node kind, edges use the routed paths verbatim, and node ids can
// be printed as labels. It is not meant as a finished diagram style.
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/archlayout/pkg/diagram"
	"github.com/matzehuels/archlayout/pkg/route"
)

// DefaultPadding is the margin added around the layout bounds.
const DefaultPadding = 40.0

const arrowDefs = `  <defs>
    <marker id="arrow" viewBox="0 0 10 10" refX="10" refY="5" markerWidth="8" markerHeight="8" orient="auto-start-reverse">
      <path d="M 0 0 L 10 5 L 0 10 z" fill="#555"/>
    </marker>
  </defs>
`

type boxStyle struct {
	fill, stroke string
	radius       float64
	dashed       bool
}

var kindStyles = map[diagram.NodeKind]boxStyle{
	diagram.KindCell:      {fill: "#f4f6fb", stroke: "#8a94b8", radius: 12, dashed: true},
	diagram.KindComponent: {fill: "#ffffff", stroke: "#3b4a7a", radius: 6},
	diagram.KindGateway:   {fill: "#ffe9c7", stroke: "#c7892b", radius: 4},
	diagram.KindExternal:  {fill: "#eeeeee", stroke: "#666666", radius: 0},
	diagram.KindUser:      {fill: "#e3f4e8", stroke: "#2f8a4a", radius: 20},
}

// Option configures the renderer.
type Option func(*renderer)

type renderer struct {
	labels  bool
	padding float64
}

func WithLabels() Option           { return func(r *renderer) { r.labels = true } }
func WithPadding(p float64) Option { return func(r *renderer) { r.padding = p } }

// Render returns the SVG document for res. Nodes are drawn in sorted id
// order with cells first so components stay visible on top of them.
func Render(res *diagram.Result, opts ...Option) []byte {
	r := renderer{padding: DefaultPadding}
	for _, opt := range opts {
		opt(&r)
	}

	b := res.Bounds.Expand(r.padding)
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%s" height="%s">`+"\n",
		num(b.MinX), num(b.MinY), num(b.Width()), num(b.Height()), num(b.Width()), num(b.Height()))
	buf.WriteString(arrowDefs)

	ids := res.NodeIDs()
	for _, id := range ids {
		if n := res.Nodes[id]; n.Kind == diagram.KindCell {
			renderBox(&buf, id, n)
		}
	}
	for _, id := range res.EdgeIDs() {
		e := res.Edges[id]
		fmt.Fprintf(&buf, `  <path id="edge-%s" d="%s" fill="none" stroke="#555" stroke-width="1.5" marker-end="url(#arrow)"/>`+"\n",
			escape(id), e.Path)
	}
	for _, id := range ids {
		if n := res.Nodes[id]; n.Kind != diagram.KindCell {
			renderBox(&buf, id, n)
		}
	}
	if r.labels {
		for _, id := range ids {
			renderLabel(&buf, id, res.Nodes[id])
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderBox(buf *bytes.Buffer, id string, n diagram.NodeLayout) {
	st := kindStyles[n.Kind]
	dash := ""
	if st.dashed {
		dash = ` stroke-dasharray="6 4"`
	}
	fmt.Fprintf(buf, `  <rect id="node-%s" class="%s" x="%s" y="%s" width="%s" height="%s" rx="%s" fill="%s" stroke="%s"%s/>`+"\n",
		escape(id), n.Kind, num(n.X), num(n.Y), num(n.Width), num(n.Height), num(st.radius), st.fill, st.stroke, dash)
}

func renderLabel(buf *bytes.Buffer, id string, n diagram.NodeLayout) {
	x, y := n.X+n.Width/2, n.Y+n.Height/2
	anchor := "middle"
	if n.Kind == diagram.KindCell {
		x, y = n.X+8, n.Y+18
		anchor = "start"
	}
	fmt.Fprintf(buf, `  <text x="%s" y="%s" text-anchor="%s" dominant-baseline="middle" font-family="sans-serif" font-size="12">%s</text>`+"\n",
		num(x), num(y), anchor, escape(id))
}

func num(v float64) string { return route.FormatNumber(v) }

func escape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
