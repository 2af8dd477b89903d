package diagram

import (
	"fmt"
	"sort"

	"github.com/matzehuels/archlayout/pkg/geom"
)

// Data stores arbitrary key-value pairs attached to nodes or edges. The
// layout engine carries it through untouched.
type Data map[string]any

// NodeKind tags every node in the flat id namespace.
type NodeKind int

const (
	KindComponent NodeKind = iota
	KindCell
	KindGateway
	KindExternal
	KindUser
)

var kindNames = map[NodeKind]string{
	KindComponent: "component",
	KindCell:      "cell",
	KindGateway:   "gateway",
	KindExternal:  "external",
	KindUser:      "user",
}

func (k NodeKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k NodeKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *NodeKind) UnmarshalText(b []byte) error {
	for kind, name := range kindNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown node kind %q", b)
}

// Node is a sized box to be positioned.
type Node struct {
	ID     string  `json:"id"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Data   Data    `json:"data,omitempty"`
}

// Size returns the node's dimensions.
func (n Node) Size() geom.Dimensions {
	return geom.Dimensions{Width: n.Width, Height: n.Height}
}

// Edge is a directed connection. Parallel edges between the same pair are
// allowed.
type Edge struct {
	ID     string `json:"id,omitempty"`
	Source string `json:"source"`
	Target string `json:"target"`
	Data   Data   `json:"data,omitempty"`
}

// Cell groups internal components behind an optional gateway.
// When Dimensions is set, the cell interior is not laid out from scratch:
// its content is centered inside the given size.
type Cell struct {
	ID                  string           `json:"id"`
	Components          []Node           `json:"components"`
	InternalConnections []Edge           `json:"internalConnections,omitempty"`
	Gateway             *Node            `json:"gateway,omitempty"`
	Dimensions          *geom.Dimensions `json:"dimensions,omitempty"`
}

// ExternalType distinguishes human users from external systems.
type ExternalType string

const (
	ExternalSystem ExternalType = "external"
	ExternalUser   ExternalType = "user"
)

// Direction optionally pins an external to a zone.
type Direction string

const (
	DirectionAuto Direction = ""
	DirectionIn   Direction = "in"
	DirectionOut  Direction = "out"
)

// External is an actor placed outside the cells.
type External struct {
	Node
	Type      ExternalType `json:"type,omitempty"`
	Direction Direction    `json:"direction,omitempty"`
}

// Kind returns KindUser for users and KindExternal for everything else.
func (e External) Kind() NodeKind {
	if e.Type == ExternalUser {
		return KindUser
	}
	return KindExternal
}

// Diagram is the complete input to a layout pass.
type Diagram struct {
	Cells                []Cell     `json:"cells"`
	Externals            []External `json:"externals,omitempty"`
	InterCellConnections []Edge     `json:"interCellConnections,omitempty"`
	Connections          []Edge     `json:"connections,omitempty"`
}

// ScopedID builds the "cell.component" id convention used to keep component
// ids unique across cells.
func ScopedID(cellID, componentID string) string {
	return cellID + "." + componentID
}

// Kinds indexes every node id in the diagram by kind.
// Later duplicates do not override earlier entries.
func (d Diagram) Kinds() map[string]NodeKind {
	kinds := make(map[string]NodeKind)
	put := func(id string, k NodeKind) {
		if _, ok := kinds[id]; !ok {
			kinds[id] = k
		}
	}
	for _, c := range d.Cells {
		put(c.ID, KindCell)
		for _, n := range c.Components {
			put(n.ID, KindComponent)
		}
		if c.Gateway != nil {
			put(c.Gateway.ID, KindGateway)
		}
	}
	for _, e := range d.Externals {
		put(e.ID, e.Kind())
	}
	return kinds
}

// Owners maps every cell, component, and gateway id to the id of the cell
// that contains it. Cells own themselves. Externals are absent.
func (d Diagram) Owners() map[string]string {
	owners := make(map[string]string)
	for _, c := range d.Cells {
		owners[c.ID] = c.ID
		for _, n := range c.Components {
			if _, ok := owners[n.ID]; !ok {
				owners[n.ID] = c.ID
			}
		}
		if c.Gateway != nil {
			if _, ok := owners[c.Gateway.ID]; !ok {
				owners[c.Gateway.ID] = c.ID
			}
		}
	}
	return owners
}

// NodeCount returns the number of nodes the layout will position.
func (d Diagram) NodeCount() int {
	n := len(d.Externals)
	for _, c := range d.Cells {
		n += 1 + len(c.Components)
		if c.Gateway != nil {
			n++
		}
	}
	return n
}

// EdgeCount returns the number of edges that will be routed.
func (d Diagram) EdgeCount() int {
	n := len(d.Connections)
	for _, c := range d.Cells {
		n += len(c.InternalConnections)
	}
	return n
}

// NodeLayout is the placement of one node.
type NodeLayout struct {
	geom.Position
	geom.Dimensions
	Kind   NodeKind `json:"kind"`
	Parent string   `json:"parent,omitempty"`
}

// Rect returns the node's box.
func (n NodeLayout) Rect() geom.Rect {
	return geom.Rect{Position: n.Position, Dimensions: n.Dimensions}
}

// CellDimensions is the computed size of a cell together with the offset
// that was applied to its content to center it.
type CellDimensions struct {
	Width         float64       `json:"width"`
	Height        float64       `json:"height"`
	ContentOffset geom.Position `json:"contentOffset"`
}

// EdgePath is a routed edge.
type EdgePath struct {
	ID         string        `json:"id"`
	Source     string        `json:"source"`
	Target     string        `json:"target"`
	Path       string        `json:"path"`
	SourcePort geom.Side     `json:"sourcePort,omitempty"`
	TargetPort geom.Side     `json:"targetPort,omitempty"`
	Start      geom.Position `json:"start"`
	End        geom.Position `json:"end"`
	Data       Data          `json:"data,omitempty"`
}

// Warning codes.
const (
	WarnDanglingEdge   = "dangling_edge"
	WarnDuplicateEdge  = "duplicate_edge"
	WarnUnknownCellRef = "unknown_cell_reference"
	WarnRankerFallback = "ranker_fallback"
)

// Warning reports a reference or condition that was skipped while still
// producing a best-effort layout.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Ref     string `json:"ref,omitempty"`
}

func (w Warning) String() string {
	if w.Ref != "" {
		return fmt.Sprintf("%s (%s): %s", w.Code, w.Ref, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// Result is the output of a layout pass.
type Result struct {
	Nodes          map[string]NodeLayout     `json:"nodes"`
	Edges          map[string]EdgePath       `json:"edges"`
	CellDimensions map[string]CellDimensions `json:"cellDimensions"`
	Bounds         geom.BoundingBox          `json:"bounds"`
	Warnings       []Warning                 `json:"warnings,omitempty"`
}

// NewResult returns a Result with all maps allocated.
func NewResult() *Result {
	return &Result{
		Nodes:          make(map[string]NodeLayout),
		Edges:          make(map[string]EdgePath),
		CellDimensions: make(map[string]CellDimensions),
	}
}

// Warn appends a warning.
func (r *Result) Warn(code, ref, format string, args ...any) {
	r.Warnings = append(r.Warnings, Warning{Code: code, Ref: ref, Message: fmt.Sprintf(format, args...)})
}

// NodeIDs returns the node ids in sorted order.
func (r *Result) NodeIDs() []string {
	ids := make([]string, 0, len(r.Nodes))
	for id := range r.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// EdgeIDs returns the edge ids in sorted order.
func (r *Result) EdgeIDs() []string {
	ids := make([]string, 0, len(r.Edges))
	for id := range r.Edges {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ComputeBounds returns the tightest box over every node.
func (r *Result) ComputeBounds() geom.BoundingBox {
	rects := make([]geom.Rect, 0, len(r.Nodes))
	for _, id := range r.NodeIDs() {
		rects = append(rects, r.Nodes[id].Rect())
	}
	return geom.Bounds(rects)
}
