package rank

import (
	"cmp"
	"context"
	"math"
	"slices"

	"github.com/matzehuels/archlayout/pkg/diagram"
	"github.com/matzehuels/archlayout/pkg/geom"
)

const (
	orderingIterations = 4
	alignmentPasses    = 2
)

// Sugiyama is the built-in layered ranker. It never returns an error.
type Sugiyama struct{}

// Name implements [Ranker].
func (Sugiyama) Name() string { return NameSugiyama }

// Layout implements [Ranker].
func (s Sugiyama) Layout(_ context.Context, nodes []diagram.Node, edges []diagram.Edge, opts Options) (map[string]geom.Position, error) {
	return s.Place(nodes, edges, opts), nil
}

// Place is Layout without the error return.
func (Sugiyama) Place(nodes []diagram.Node, edges []diagram.Edge, opts Options) map[string]geom.Position {
	if len(nodes) == 0 {
		return map[string]geom.Position{}
	}

	g := buildLayered(nodes, edges, opts.Direction)
	g.order(orderingIterations)
	u := g.coordinates(opts.NodeSpacing)
	v := g.rankOffsets(opts.RankSpacing)

	centers := make(map[string]geom.Position, len(nodes))
	for i, n := range nodes {
		if _, dup := centers[n.ID]; dup {
			continue
		}
		centers[n.ID] = orient(opts.Direction, u[i], v[g.layer[i]])
	}
	return toTopLeft(nodes, centers)
}

// order runs barycenter sweeps and keeps the ordering with the fewest
// crossings. The initial ordering is input order.
func (g *layered) order(iterations int) {
	pos := make([]int, len(g.layer))
	g.reindex(pos)

	best := cloneLayers(g.layers)
	bestCrossings := g.crossings(pos)

	for it := 0; it < iterations && bestCrossings > 0; it++ {
		for r := 1; r < len(g.layers); r++ {
			g.sortByBarycenter(r, g.up, pos)
		}
		for r := len(g.layers) - 2; r >= 0; r-- {
			g.sortByBarycenter(r, g.down, pos)
		}
		if c := g.crossings(pos); c < bestCrossings {
			best, bestCrossings = cloneLayers(g.layers), c
		}
	}
	g.layers = best
}

// sortByBarycenter reorders rank r by the mean position of each vertex's
// neighbours in the adjacent rank. Vertices without neighbours keep their
// current index as key. The sort is stable.
func (g *layered) sortByBarycenter(r int, nbrs [][]int, pos []int) {
	layer := g.layers[r]
	key := make(map[int]float64, len(layer))
	for i, v := range layer {
		if len(nbrs[v]) == 0 {
			key[v] = float64(i)
			continue
		}
		sum := 0.0
		for _, w := range nbrs[v] {
			sum += float64(pos[w])
		}
		key[v] = sum / float64(len(nbrs[v]))
	}
	slices.SortStableFunc(layer, func(a, b int) int { return cmp.Compare(key[a], key[b]) })
	for i, v := range layer {
		pos[v] = i
	}
}

func (g *layered) reindex(pos []int) {
	for _, l := range g.layers {
		for i, v := range l {
			pos[v] = i
		}
	}
}

func cloneLayers(layers [][]int) [][]int {
	out := make([][]int, len(layers))
	for i, l := range layers {
		out[i] = slices.Clone(l)
	}
	return out
}

// coordinates assigns a center across the rank to every vertex.
func (g *layered) coordinates(spacing float64) []float64 {
	u := make([]float64, len(g.layer))
	for _, l := range g.layers {
		g.pack(l, u, spacing)
	}
	for pass := 0; pass < alignmentPasses; pass++ {
		for r := 1; r < len(g.layers); r++ {
			g.align(g.layers[r], g.up, u, spacing)
		}
		for r := len(g.layers) - 2; r >= 0; r-- {
			g.align(g.layers[r], g.down, u, spacing)
		}
	}
	return u
}

// pack lays a rank out left to right with spacing and centers it on zero.
func (g *layered) pack(layer []int, u []float64, spacing float64) {
	cursor := 0.0
	for _, v := range layer {
		u[v] = cursor + g.cross[v]/2
		cursor += g.cross[v] + spacing
	}
	shift := -(cursor - spacing) / 2
	for _, v := range layer {
		u[v] += shift
	}
}

// align moves every vertex with neighbours onto the median of its
// neighbours' centers, then restores the minimum gap between consecutive
// vertices. The gap is restored by pushing right from the left end and left
// from the right end and averaging both results, which keeps the rank
// balanced around the medians.
func (g *layered) align(layer []int, nbrs [][]int, u []float64, spacing float64) {
	if len(layer) == 0 {
		return
	}
	want := make([]float64, len(layer))
	for i, v := range layer {
		want[i] = u[v]
		if len(nbrs[v]) == 0 {
			continue
		}
		vals := make([]float64, len(nbrs[v]))
		for j, w := range nbrs[v] {
			vals[j] = u[w]
		}
		want[i] = median(vals)
	}

	gap := func(i int) float64 {
		return (g.cross[layer[i-1]]+g.cross[layer[i]])/2 + spacing
	}
	right := slices.Clone(want)
	for i := 1; i < len(layer); i++ {
		right[i] = math.Max(right[i], right[i-1]+gap(i))
	}
	left := slices.Clone(want)
	for i := len(layer) - 2; i >= 0; i-- {
		left[i] = math.Min(left[i], left[i+1]-gap(i+1))
	}
	for i, v := range layer {
		u[v] = (left[i] + right[i]) / 2
	}
}

func median(vals []float64) float64 {
	slices.Sort(vals)
	m := len(vals) / 2
	if len(vals)%2 == 1 {
		return vals[m]
	}
	return (vals[m-1] + vals[m]) / 2
}

// rankOffsets returns the center of every rank along the flow axis. Each
// rank is as thick as its thickest vertex.
func (g *layered) rankOffsets(spacing float64) []float64 {
	thick := make([]float64, len(g.layers))
	for v, l := range g.layer {
		thick[l] = math.Max(thick[l], g.thick[v])
	}
	offsets := make([]float64, len(g.layers))
	acc := 0.0
	for r, t := range thick {
		offsets[r] = acc + t/2
		acc += t + spacing
	}
	return offsets
}
