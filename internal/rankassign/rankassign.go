// Package rankassign is the external collaborator xcoord's spec assumes
// already ran: it assigns ranks (fixed-point longest-path levels) and a
// per-layer order (median-heuristic crossing reduction) to a plain edge
// list, returning a rank and order per node ID that a caller writes into
// xcoord.Attrs before calling xcoord.PositionX.
//
// The algorithms here are adapted from the teacher's ascii-dag layout pass
// (calculateLevels, reduceCrossings), repointed at xcoord.Attrs instead of
// ASCII box coordinates.
package rankassign

import "sort"

// Node is a plain input vertex: an opaque ID and its drawn width.
type Node struct {
	ID    string
	Width float64
}

// Edge is a directed input edge between two node IDs.
type Edge struct {
	From string
	To   string
}

// Assignment is the rank and order rankassign computed for one node.
type Assignment struct {
	Rank  int
	Order int
}

// Assign computes a rank (longest path from a root) and a within-rank order
// (median-heuristic crossing reduction, run for the given number of passes)
// for every node, keyed by node ID.
func Assign(nodes []Node, edges []Edge, passes int) map[string]Assignment {
	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		index[n.ID] = i
	}

	children := make([][]int, len(nodes))
	parents := make([][]int, len(nodes))
	for _, e := range edges {
		fromIdx, ok1 := index[e.From]
		toIdx, ok2 := index[e.To]
		if !ok1 || !ok2 {
			continue
		}
		children[fromIdx] = append(children[fromIdx], toIdx)
		parents[toIdx] = append(parents[toIdx], fromIdx)
	}

	ranks := calculateRanks(children)
	maxRank := 0
	for _, r := range ranks {
		if r > maxRank {
			maxRank = r
		}
	}

	levels := make([][]int, maxRank+1)
	for i, r := range ranks {
		levels[r] = append(levels[r], i)
	}
	for _, level := range levels {
		sort.Ints(level)
	}

	reduceCrossings(levels, parents, children, passes)

	out := make(map[string]Assignment, len(nodes))
	for r, level := range levels {
		for order, idx := range level {
			out[nodes[idx].ID] = Assignment{Rank: r, Order: order}
		}
	}
	return out
}

// calculateRanks assigns each node index a rank via fixed-point iteration:
// a node's rank is one more than the maximum rank among its parents (0 if
// it has none). Requires the edge set to be acyclic.
func calculateRanks(children [][]int) []int {
	n := len(children)
	ranks := make([]int, n)
	changed := true
	for changed {
		changed = false
		for u, outs := range children {
			for _, v := range outs {
				if ranks[u]+1 > ranks[v] {
					ranks[v] = ranks[u] + 1
					changed = true
				}
			}
		}
	}
	return ranks
}

// reduceCrossings runs alternating top-down/bottom-up median-heuristic
// passes over levels, reordering each level in place by the median position
// of its neighbors on the adjacent level (a direct Sugiyama heuristic, not
// an exact minimizer).
func reduceCrossings(levels [][]int, parents, children [][]int, passes int) {
	maxLevel := len(levels) - 1
	for pass := 0; pass < passes; pass++ {
		for r := 1; r <= maxLevel; r++ {
			orderByMedianNeighbor(levels[r], levels[r-1], parents)
		}
		for r := maxLevel - 1; r >= 0; r-- {
			orderByMedianNeighbor(levels[r], levels[r+1], children)
		}
	}
}

// orderByMedianNeighbor reorders levelNodes in place by the median position
// (within neighborLevel) of each node's neighbors, as given by the
// adjacency lists in neighborsOf.
func orderByMedianNeighbor(levelNodes, neighborLevel []int, neighborsOf [][]int) {
	posInNeighborLevel := make(map[int]int, len(neighborLevel))
	for i, idx := range neighborLevel {
		posInNeighborLevel[idx] = i
	}

	type withMedian struct {
		idx    int
		median float64
	}
	medians := make([]withMedian, len(levelNodes))

	for i, idx := range levelNodes {
		var positions []int
		for _, nb := range neighborsOf[idx] {
			if p, ok := posInNeighborLevel[nb]; ok {
				positions = append(positions, p)
			}
		}
		if len(positions) == 0 {
			medians[i] = withMedian{idx: idx, median: float64(i)}
			continue
		}
		sort.Ints(positions)
		n := len(positions)
		var m float64
		if n%2 == 1 {
			m = float64(positions[n/2])
		} else {
			m = float64(positions[n/2-1]+positions[n/2]) / 2
		}
		medians[i] = withMedian{idx: idx, median: m}
	}

	sort.SliceStable(medians, func(i, j int) bool {
		return medians[i].median < medians[j].median
	})
	for i, wm := range medians {
		levelNodes[i] = wm.idx
	}
}
