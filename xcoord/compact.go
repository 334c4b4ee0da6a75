package xcoord

import "math"

// topoOrder returns a topological order of bg's nodes (Kahn's algorithm).
// bg is guaranteed acyclic by construction (§7): every edge in the block
// graph derives from a layer-adjacent pair in an acyclic layered DAG, so
// this never detects a cycle in a conforming input.
func topoOrder(bg *Graph) []VertexID {
	indeg := make(map[VertexID]int, len(bg.order))
	for _, v := range bg.order {
		indeg[v] = 0
	}
	for _, v := range bg.order {
		for _, w := range bg.children[v] {
			indeg[w]++
		}
	}

	queue := make([]VertexID, 0, len(bg.order))
	for _, v := range bg.order {
		if indeg[v] == 0 {
			queue = append(queue, v)
		}
	}

	order := make([]VertexID, 0, len(bg.order))
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		order = append(order, v)
		for _, w := range bg.children[v] {
			indeg[w]--
			if indeg[w] == 0 {
				queue = append(queue, w)
			}
		}
	}

	return order
}

// HorizontalCompaction assigns an x-coordinate to every block root, then
// extends it to every vertex of g via root, per §4.6. It replaces the
// reference algorithm's recursive, memoized DFS with two linear passes over
// a precomputed topological order of bg, which is equivalent (bg is
// acyclic, so a topological order already sequences every node after its
// pass-1 dependencies and before its pass-2 dependencies) and avoids
// recursion depth concerns entirely, per the design note in §9 recommending
// an iterative, stack-free realization.
func HorizontalCompaction(g *Graph, bg *Graph, root map[VertexID]VertexID, reverseSep bool) map[VertexID]float64 {
	order := topoOrder(bg)
	xs := make(map[VertexID]float64, len(order))

	// Pass 1: push left / minimize.
	for _, v := range order {
		best := 0.0
		has := false
		for _, e := range bg.InEdges(v) {
			cand := xs[e.From] + e.Weight
			if !has || cand > best {
				best = cand
				has = true
			}
		}
		xs[v] = best
	}

	// Pass 2: pull right / reclaim slack. Process in reverse topological
	// order so every out-edge target is already finalized.
	avoid := DummyBorderRight
	if reverseSep {
		avoid = DummyBorderLeft
	}
	for i := len(order) - 1; i >= 0; i-- {
		v := order[i]
		min := math.Inf(1)
		has := false
		for _, e := range bg.OutEdges(v) {
			cand := xs[e.To] - e.Weight
			if !has || cand < min {
				min = cand
				has = true
			}
		}
		if !has || math.IsInf(min, 1) {
			continue
		}
		a, _ := g.Node(v)
		if a.Dummy == avoid {
			continue
		}
		if min > xs[v] {
			xs[v] = min
		}
	}

	out := make(map[VertexID]float64, len(root))
	for v, r := range root {
		out[v] = xs[r]
	}
	return out
}
