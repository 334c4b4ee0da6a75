package xcoord

import "sort"

// edgeKey canonically identifies a directed edge for weight storage.
type edgeKey struct {
	from VertexID
	to   VertexID
}

// Graph is the in-memory DAG the core operates on. A single Graph type
// serves double duty: it represents the input layered DAG G, and also the
// derived block graph Bg built during compaction (§3: "The block graph
// requires the same capability set but only setNode, setEdge, edge, nodes,
// inEdges, outEdges are used internally"). Bg's node set is the sparse
// subset of G's vertex IDs that are block roots, which is why adjacency is
// map-based here rather than a dense flat array indexed by ID.
type Graph struct {
	attrs GraphAttrs

	order []VertexID // insertion order, for deterministic Nodes()
	nodes map[VertexID]Attrs

	children map[VertexID][]VertexID
	parents  map[VertexID][]VertexID
	weight   map[edgeKey]float64

	nextID VertexID
}

// NewGraph creates an empty Graph with the given graph-level parameters.
func NewGraph(attrs GraphAttrs) *Graph {
	return &Graph{
		attrs:    attrs,
		nodes:    make(map[VertexID]Attrs),
		children: make(map[VertexID][]VertexID),
		parents:  make(map[VertexID][]VertexID),
		weight:   make(map[edgeKey]float64),
	}
}

// GraphAttrs returns the graph-level parameters.
func (g *Graph) GraphAttrs() GraphAttrs {
	return g.attrs
}

// AddVertex adds or replaces the vertex id with the given attributes,
// returning the allocated VertexID (an autoincrement counter is used by
// AddAutoVertex; callers supplying their own IDs, as the block graph does
// with roots, pass the ID through unchanged).
func (g *Graph) AddVertex(id VertexID, a Attrs) VertexID {
	a.LabelPos = normalizedLabelPos(a.LabelPos)
	if _, exists := g.nodes[id]; !exists {
		g.order = append(g.order, id)
		g.children[id] = nil
		g.parents[id] = nil
	}
	g.nodes[id] = a
	if id >= g.nextID {
		g.nextID = id + 1
	}
	return id
}

// AddAutoVertex adds a vertex with a freshly allocated ID.
func (g *Graph) AddAutoVertex(a Attrs) VertexID {
	id := g.nextID
	g.nextID++
	return g.AddVertex(id, a)
}

// SetNode is an alias for AddVertex matching the spec's capability-set
// naming (§6).
func (g *Graph) SetNode(id VertexID, a Attrs) {
	g.AddVertex(id, a)
}

// Node returns the attributes of vertex id.
func (g *Graph) Node(id VertexID) (Attrs, bool) {
	a, ok := g.nodes[id]
	return a, ok
}

// Nodes returns all vertex IDs in insertion order.
func (g *Graph) Nodes() []VertexID {
	out := make([]VertexID, len(g.order))
	copy(out, g.order)
	return out
}

// HasVertex reports whether id names a vertex of g.
func (g *Graph) HasVertex(id VertexID) bool {
	_, ok := g.nodes[id]
	return ok
}

// SetEdge adds a directed edge u->v with the given weight if it doesn't
// already exist, or overwrites the weight of an existing one. This is the
// single mutation primitive used both for G's unweighted edges (weight is
// ignored there) and for Bg's max-separation edges (§3.5: "the weight is
// the maximum over all such adjacent pairs").
func (g *Graph) SetEdge(u, v VertexID, weight float64) {
	k := edgeKey{u, v}
	if _, exists := g.weight[k]; !exists {
		g.children[u] = append(g.children[u], v)
		g.parents[v] = append(g.parents[v], u)
	}
	g.weight[k] = weight
}

// AddEdge adds an unweighted directed edge (weight 0), the form the input
// layered DAG's edges take.
func (g *Graph) AddEdge(u, v VertexID) {
	g.SetEdge(u, v, 0)
}

// UpdateEdgeMax sets the weight of u->v to the larger of its current weight
// (0 if the edge is new) and weight.
func (g *Graph) UpdateEdgeMax(u, v VertexID, weight float64) {
	cur, _ := g.Edge(u, v)
	if weight > cur {
		cur = weight
	}
	g.SetEdge(u, v, cur)
}

// Edge returns the weight of u->v and whether that edge exists.
func (g *Graph) Edge(u, v VertexID) (float64, bool) {
	w, ok := g.weight[edgeKey{u, v}]
	return w, ok
}

// Predecessors returns the vertices with an edge directed into v.
func (g *Graph) Predecessors(v VertexID) []VertexID {
	return g.parents[v]
}

// Successors returns the vertices v has an edge directed into.
func (g *Graph) Successors(v VertexID) []VertexID {
	return g.children[v]
}

// InEdges returns the edges directed into v.
func (g *Graph) InEdges(v VertexID) []Edge {
	preds := g.parents[v]
	out := make([]Edge, 0, len(preds))
	for _, u := range preds {
		w, _ := g.Edge(u, v)
		out = append(out, Edge{From: u, To: v, Weight: w})
	}
	return out
}

// OutEdges returns the edges directed out of v.
func (g *Graph) OutEdges(v VertexID) []Edge {
	succs := g.children[v]
	out := make([]Edge, 0, len(succs))
	for _, w := range succs {
		wt, _ := g.Edge(v, w)
		out = append(out, Edge{From: v, To: w, Weight: wt})
	}
	return out
}

// BuildLayering groups g's vertices by Rank and sorts each group by Order,
// reconstructing the layering matrix L described in §3. The layering
// assignment itself (which rank and order each vertex gets) is produced by
// an external collaborator (§1); this only reads back what was assigned.
func (g *Graph) BuildLayering() (Layering, error) {
	if len(g.order) == 0 {
		return Layering{}, nil
	}

	maxRank := 0
	for _, id := range g.order {
		if r := g.nodes[id].Rank; r > maxRank {
			maxRank = r
		}
	}

	layers := make([][]VertexID, maxRank+1)
	for _, id := range g.order {
		a := g.nodes[id]
		layers[a.Rank] = append(layers[a.Rank], id)
	}

	for _, layer := range layers {
		sort.Slice(layer, func(i, j int) bool {
			return g.nodes[layer[i]].Order < g.nodes[layer[j]].Order
		})
		for i, id := range layer {
			if g.nodes[id].Order != i {
				return nil, newInvalidGraph("build_layering", "vertex order does not match its position within its layer")
			}
		}
	}

	return Layering(layers), nil
}
