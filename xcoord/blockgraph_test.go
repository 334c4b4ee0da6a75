package xcoord

import "testing"

func TestBuildBlockGraphEdgeWeightIsMaxSep(t *testing.T) {
	g := NewGraph(GraphAttrs{NodeSep: 50, EdgeSep: 10})
	a := g.AddVertex(0, Attrs{Rank: 0, Order: 0, Width: 50})
	b := g.AddVertex(1, Attrs{Rank: 0, Order: 1, Width: 50})

	l, err := g.BuildLayering()
	if err != nil {
		t.Fatal(err)
	}

	root := map[VertexID]VertexID{a: a, b: b}
	bg := BuildBlockGraph(g, l, root, false)

	sep := NewSep(50, 10, false)
	want := sep(g, b, a)

	got, ok := bg.Edge(a, b)
	if !ok {
		t.Fatal("expected an edge from a's block to b's block")
	}
	if got != want {
		t.Errorf("block graph edge weight = %v, want %v", got, want)
	}
}

func TestBuildBlockGraphSkipsSingletonLayers(t *testing.T) {
	g := NewGraph(GraphAttrs{NodeSep: 50, EdgeSep: 10})
	a := g.AddVertex(0, Attrs{Rank: 0, Order: 0, Width: 50})

	l, err := g.BuildLayering()
	if err != nil {
		t.Fatal(err)
	}
	root := map[VertexID]VertexID{a: a}
	bg := BuildBlockGraph(g, l, root, false)

	if !bg.HasVertex(a) {
		t.Error("single vertex's block root should still appear as a node")
	}
	if len(bg.OutEdges(a)) != 0 {
		t.Error("single vertex on its own layer should have no block-graph edges")
	}
}
