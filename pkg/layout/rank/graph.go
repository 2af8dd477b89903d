package rank

import "github.com/matzehuels/archlayout/pkg/diagram"

// layered is a proper layered graph: every edge connects consecutive
// ranks. Vertices [0, real) are the input nodes in input order; the rest are
// virtual vertices subdividing long edges.
type layered struct {
	real   int
	cross  []float64 // extent across the rank (width for TB/BT)
	thick  []float64 // extent along the flow (height for TB/BT)
	layer  []int
	layers [][]int
	down   [][]int // successors in the next rank
	up     [][]int // predecessors in the previous rank
}

// adjacency indexes nodes and returns the deduplicated successor lists.
// Self loops and edges with an unknown endpoint are dropped.
func adjacency(nodes []diagram.Node, edges []diagram.Edge) [][]int {
	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		if _, ok := index[n.ID]; !ok {
			index[n.ID] = i
		}
	}

	out := make([][]int, len(nodes))
	seen := make(map[[2]int]bool, len(edges))
	for _, e := range edges {
		s, ok1 := index[e.Source]
		t, ok2 := index[e.Target]
		if !ok1 || !ok2 || s == t {
			continue
		}
		key := [2]int{s, t}
		if seen[key] {
			continue
		}
		seen[key] = true
		out[s] = append(out[s], t)
	}
	return out
}

// breakCycles removes back edges found by a depth-first search that starts
// from the sources in input order and then from any unvisited node.
func breakCycles(out [][]int) [][]int {
	const (
		white = iota
		gray
		black
	)

	color := make([]int, len(out))
	back := make(map[[2]int]bool)

	var dfs func(v int)
	dfs = func(v int) {
		color[v] = gray
		for _, w := range out[v] {
			switch color[w] {
			case white:
				dfs(w)
			case gray:
				back[[2]int{v, w}] = true
			}
		}
		color[v] = black
	}

	indeg := inDegrees(out)
	for v := range out {
		if indeg[v] == 0 && color[v] == white {
			dfs(v)
		}
	}
	for v := range out {
		if color[v] == white {
			dfs(v)
		}
	}

	if len(back) == 0 {
		return out
	}
	kept := make([][]int, len(out))
	for v, ws := range out {
		for _, w := range ws {
			if !back[[2]int{v, w}] {
				kept[v] = append(kept[v], w)
			}
		}
	}
	return kept
}

// assignLayers places every vertex one rank below its deepest parent using
// Kahn's algorithm. out must be acyclic.
func assignLayers(out [][]int) []int {
	indeg := inDegrees(out)
	layer := make([]int, len(out))
	queue := make([]int, 0, len(out))
	for v, d := range indeg {
		if d == 0 {
			queue = append(queue, v)
		}
	}

	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, w := range out[v] {
			if l := layer[v] + 1; l > layer[w] {
				layer[w] = l
			}
			indeg[w]--
			if indeg[w] == 0 {
				queue = append(queue, w)
			}
		}
	}
	return layer
}

func inDegrees(out [][]int) []int {
	indeg := make([]int, len(out))
	for _, ws := range out {
		for _, w := range ws {
			indeg[w]++
		}
	}
	return indeg
}

// buildLayered runs cycle breaking and layering and subdivides long edges.
func buildLayered(nodes []diagram.Node, edges []diagram.Edge, dir Direction) *layered {
	out := breakCycles(adjacency(nodes, edges))
	layer := assignLayers(out)

	g := &layered{
		real:  len(nodes),
		cross: make([]float64, len(nodes)),
		thick: make([]float64, len(nodes)),
		layer: layer,
		down:  make([][]int, len(nodes)),
		up:    make([][]int, len(nodes)),
	}
	for i, n := range nodes {
		if dir.Horizontal() {
			g.cross[i], g.thick[i] = n.Height, n.Width
		} else {
			g.cross[i], g.thick[i] = n.Width, n.Height
		}
	}

	for v, ws := range out {
		for _, w := range ws {
			prev := v
			for l := layer[v] + 1; l < layer[w]; l++ {
				d := g.addVirtual(l)
				g.link(prev, d)
				prev = d
			}
			g.link(prev, w)
		}
	}

	depth := 0
	for _, l := range g.layer {
		depth = max(depth, l+1)
	}
	g.layers = make([][]int, depth)
	for v, l := range g.layer {
		g.layers[l] = append(g.layers[l], v)
	}
	return g
}

func (g *layered) addVirtual(l int) int {
	v := len(g.layer)
	g.layer = append(g.layer, l)
	g.cross = append(g.cross, 0)
	g.thick = append(g.thick, 0)
	g.down = append(g.down, nil)
	g.up = append(g.up, nil)
	return v
}

func (g *layered) link(a, b int) {
	g.down[a] = append(g.down[a], b)
	g.up[b] = append(g.up[b], a)
}
