// Package diagram defines the input and output data model of the layout
// engine.
//
// # Input
//
// A [Diagram] is a set of [Cell] values (each with internal components, an
// optional gateway, and internal connections), a set of [External] actors,
// the cell-level [Diagram.InterCellConnections] used for cell arrangement,
// and the top-level [Diagram.Connections] that are routed.
//
// All node identifiers share one flat namespace: a cell, a component, a
// gateway, and an external may never reuse an id. [Diagram.Validate]
// enforces this, together with non-negative finite sizes. Converters that
// produce diagrams from a DSL should use [ScopedID] to derive component ids
// of the form "cell.component", which keeps the namespace collision-free.
//
// # Output
//
// A [Result] maps every node id to a [NodeLayout] (top-left position, size,
// kind, owning cell), every routed edge id to an [EdgePath], and every cell
// id to its [CellDimensions]. [Result.Bounds] is the tightest box around all
// nodes. Unresolvable references never fail a layout; they are reported as
// [Warning] values instead.
//
// # JSON
//
// [ReadDiagram] and [WriteResult] use camelCase field names matching the
// editor front-end:
//
//	{
//	  "cells": [{"id": "A", "components": [{"id": "A.api", "width": 120, "height": 60}]}],
//	  "externals": [{"id": "user", "width": 80, "height": 80, "type": "user"}],
//	  "interCellConnections": [],
//	  "connections": [{"id": "e1", "source": "user", "target": "A.api"}]
//	}
package diagram
