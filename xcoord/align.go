package xcoord

import (
	"math"
	"sort"
)

// Alignment is the result of VerticalAlignment: root maps each vertex to
// its block representative, align is a permutation within each block
// forming a single cycle per block (§3 "Blocks").
type Alignment struct {
	Root  map[VertexID]VertexID
	Align map[VertexID]VertexID
}

// NeighborFunc returns a vertex's neighbors on the adjacent layer:
// predecessors for the "up" vertical bias, successors for "down". It is
// always applied to the original graph, never the oriented layering
// (§4.7).
type NeighborFunc func(v VertexID) []VertexID

// VerticalAlignment groups vertices into vertical blocks per §4.4. oriented
// must already reflect the traversal's vertical/horizontal bias.
func VerticalAlignment(g *Graph, oriented Layering, conflicts *ConflictSet, neighborFn NeighborFunc) Alignment {
	root := make(map[VertexID]VertexID)
	align := make(map[VertexID]VertexID)
	for _, layer := range oriented {
		for _, v := range layer {
			root[v] = v
			align[v] = v
		}
	}

	pos := buildPos(oriented)

	for _, layer := range oriented {
		prevIdx := -1
		for _, v := range layer {
			ws := neighborFn(v)
			if len(ws) == 0 {
				continue
			}
			sorted := make([]VertexID, len(ws))
			copy(sorted, ws)
			sort.Slice(sorted, func(i, j int) bool {
				return pos[sorted[i]] < pos[sorted[j]]
			})

			mp := float64(len(sorted)-1) / 2
			lo := int(math.Floor(mp))
			hi := int(math.Ceil(mp))

			for i := lo; i <= hi; i++ {
				w := sorted[i]
				if align[v] == v && prevIdx < pos[w] && !HasConflict(conflicts, v, w) {
					align[w] = v
					root[v] = root[w]
					align[v] = root[w]
					prevIdx = pos[w]
				}
			}
		}
	}

	return Alignment{Root: root, Align: align}
}
