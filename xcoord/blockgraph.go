package xcoord

// BuildBlockGraph derives the weighted block-graph Bg from the oriented
// layering and the root map (§4.5). Bg's nodes are block roots; an edge
// a->b carries the maximum separation required between any layer-adjacent
// pair of vertices whose blocks are a and b.
func BuildBlockGraph(g *Graph, oriented Layering, root map[VertexID]VertexID, reverseSep bool) *Graph {
	sep := NewSep(g.attrs.NodeSep, g.attrs.EdgeSep, reverseSep)
	bg := NewGraph(g.attrs)

	for _, layer := range oriented {
		for i, v := range layer {
			rv := root[v]
			if !bg.HasVertex(rv) {
				bg.SetNode(rv, Attrs{})
			}
			if i == 0 {
				continue
			}
			u := layer[i-1]
			ru := root[u]
			s := sep(g, v, u)
			bg.UpdateEdgeMax(ru, rv, s)
		}
	}

	return bg
}
