package rank

import "slices"

// layerCrossings counts edge crossings between two adjacent ranks using a
// Fenwick tree (binary indexed tree) in O(E log V).
//
// Two edges (u1,v1) and (u2,v2) cross if and only if:
//
//	pos(u1) < pos(u2) AND pos(v1) > pos(v2)
//
// which is the number of inversions in the sequence of target positions
// when edges are sorted by source position.
func layerCrossings(upper []int, lowerLen int, down [][]int, pos []int) int {
	if len(upper) == 0 || lowerLen == 0 {
		return 0
	}

	type edge struct{ upper, lower int }
	var edges []edge
	for _, v := range upper {
		for _, w := range down[v] {
			edges = append(edges, edge{pos[v], pos[w]})
		}
	}
	if len(edges) < 2 {
		return 0
	}

	slices.SortFunc(edges, func(a, b edge) int {
		if a.upper != b.upper {
			return a.upper - b.upper
		}
		return a.lower - b.lower
	})

	fenwick := make([]int, lowerLen+1)
	crossings, total := 0, 0
	for _, e := range edges {
		// Edges seen so far with target <= e.lower.
		lessOrEqual := 0
		for q := e.lower + 1; q > 0; q -= q & (-q) {
			lessOrEqual += fenwick[q]
		}
		crossings += total - lessOrEqual

		total++
		for idx := e.lower + 1; idx < len(fenwick); idx += idx & (-idx) {
			fenwick[idx]++
		}
	}
	return crossings
}

// crossings sums layerCrossings over every pair of consecutive ranks.
func (g *layered) crossings(pos []int) int {
	total := 0
	for r := 0; r+1 < len(g.layers); r++ {
		total += layerCrossings(g.layers[r], len(g.layers[r+1]), g.down, pos)
	}
	return total
}
