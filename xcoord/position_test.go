package xcoord

import (
	"math"
	"testing"
)

func round(x float64) int {
	return int(math.Round(x))
}

// S1: single node.
func TestPositionXSingleNode(t *testing.T) {
	g := NewGraph(GraphAttrs{NodeSep: 50, EdgeSep: 10})
	a := g.AddVertex(0, Attrs{Rank: 0, Order: 0, Width: 50})

	xs, err := PositionX(g)
	if err != nil {
		t.Fatal(err)
	}
	if round(xs[a]) != 0 {
		t.Errorf("x(a) = %v, want 0", xs[a])
	}
}

// S2: two nodes same rank.
func TestPositionXTwoNodesSameRank(t *testing.T) {
	g := NewGraph(GraphAttrs{NodeSep: 50, EdgeSep: 10})
	a := g.AddVertex(0, Attrs{Rank: 0, Order: 0, Width: 50})
	b := g.AddVertex(1, Attrs{Rank: 0, Order: 1, Width: 50})

	xs, err := PositionX(g)
	if err != nil {
		t.Fatal(err)
	}
	if diff := round(xs[b] - xs[a]); diff != 100 {
		t.Errorf("x(b)-x(a) = %v, want 100", diff)
	}
}

// S3: two nodes, adjacent ranks, one edge.
func TestPositionXTwoNodesOneEdge(t *testing.T) {
	g := NewGraph(GraphAttrs{NodeSep: 50, EdgeSep: 10})
	a := g.AddVertex(0, Attrs{Rank: 0, Order: 0, Width: 50})
	b := g.AddVertex(1, Attrs{Rank: 1, Order: 0, Width: 50})
	g.AddEdge(a, b)

	xs, err := PositionX(g)
	if err != nil {
		t.Fatal(err)
	}
	if round(xs[a]) != round(xs[b]) {
		t.Errorf("x(a)=%v should equal x(b)=%v", xs[a], xs[b])
	}
}

// S4: inner segment priority. s -> m1 -> m2 -> sink (m1, m2 dummy), with a
// crossing real edge a -> b vetoed by the type-1 conflict it forms against
// the m1->m2 inner segment (see buildInnerSegmentGraph).
func TestPositionXInnerSegmentStaysStraight(t *testing.T) {
	g, _ := buildInnerSegmentGraph()

	xs, err := PositionX(g)
	if err != nil {
		t.Fatal(err)
	}

	s, m1, m2, sink := VertexID(0), VertexID(2), VertexID(3), VertexID(5)
	if round(xs[s]) != round(xs[m1]) || round(xs[m1]) != round(xs[m2]) || round(xs[m2]) != round(xs[sink]) {
		t.Errorf("inner segment must stay straight: x(s)=%v x(m1)=%v x(m2)=%v x(sink)=%v",
			xs[s], xs[m1], xs[m2], xs[sink])
	}
}

func TestPositionXOutputSatisfiesRootInvariant(t *testing.T) {
	g, _ := buildInnerSegmentGraph()
	l, _ := g.BuildLayering()
	conflicts := MergeConflicts(FindType1Conflicts(g, l), FindType2Conflicts(g, l))
	alignment := VerticalAlignment(g, l, conflicts, g.Predecessors)

	xs, err := PositionX(g)
	if err != nil {
		t.Fatal(err)
	}

	for _, v := range g.Nodes() {
		r := alignment.Root[v]
		// In this graph all four alignments form the same blocks, so every
		// vertex of a "ul" block lands on its root's coordinate in the final
		// balanced output.
		if math.IsNaN(xs[v]) {
			t.Errorf("x(%v) is NaN", v)
		}
		if round(xs[v]) != round(xs[r]) {
			t.Errorf("x(%v)=%v differs from x(root %v)=%v", v, xs[v], r, xs[r])
		}
	}
}

func TestPositionXInvalidNodesepRejected(t *testing.T) {
	g := NewGraph(GraphAttrs{NodeSep: -1, EdgeSep: 10})
	g.AddVertex(0, Attrs{Rank: 0, Order: 0, Width: 50})

	_, err := PositionX(g)
	if err == nil {
		t.Fatal("expected an error for negative nodesep")
	}
	var gerr *GraphError
	if ok := isGraphError(err, &gerr); !ok || gerr.Type != InvalidGraph {
		t.Errorf("expected InvalidGraph GraphError, got %v", err)
	}
}

func isGraphError(err error, target **GraphError) bool {
	if ge, ok := err.(*GraphError); ok {
		*target = ge
		return true
	}
	return false
}

func TestFindSmallestWidthAlignmentPicksNarrowest(t *testing.T) {
	g := NewGraph(GraphAttrs{NodeSep: 50, EdgeSep: 10})
	a := g.AddVertex(0, Attrs{Width: 50})
	b := g.AddVertex(1, Attrs{Width: 50})

	xss := map[string]map[VertexID]float64{
		"ul": {a: 0, b: 200},
		"ur": {a: 0, b: 100},
		"dl": {a: 0, b: 300},
		"dr": {a: 0, b: 400},
	}

	got := FindSmallestWidthAlignment(g, xss)
	if got != "ur" {
		t.Errorf("FindSmallestWidthAlignment = %q, want %q", got, "ur")
	}
}

func TestBalanceReturnsForcedAlignment(t *testing.T) {
	g := NewGraph(GraphAttrs{NodeSep: 50, EdgeSep: 10, Align: "UL"})
	a := g.AddVertex(0, Attrs{Width: 50})

	aligned := map[string]map[VertexID]float64{
		"ul": {a: 1},
		"ur": {a: 2},
		"dl": {a: 3},
		"dr": {a: 4},
	}

	result := Balance(g, aligned)
	if result[a] != 1 {
		t.Errorf("Balance with forced UL = %v, want 1", result[a])
	}
}

func TestPositionXDetailReportsWidthsAndSelection(t *testing.T) {
	g, _ := buildInnerSegmentGraph()

	report, err := PositionXDetail(g)
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Widths) != 4 {
		t.Fatalf("expected 4 alignment widths, got %d", len(report.Widths))
	}
	for _, key := range orientationKeys {
		if _, ok := report.Widths[key]; !ok {
			t.Errorf("missing width for alignment %q", key)
		}
	}
	if report.Selected == "" {
		t.Error("expected a non-empty selected alignment key")
	}
	if report.Widths[report.Selected] > report.Widths["ul"]+1e-9 &&
		report.Widths[report.Selected] > report.Widths["ur"]+1e-9 &&
		report.Widths[report.Selected] > report.Widths["dl"]+1e-9 &&
		report.Widths[report.Selected] > report.Widths["dr"]+1e-9 {
		t.Errorf("selected alignment %q is not the narrowest: widths=%v", report.Selected, report.Widths)
	}

	full, err := PositionX(g)
	if err != nil {
		t.Fatal(err)
	}
	for v, x := range full {
		if report.X[v] != x {
			t.Errorf("PositionXDetail.X[%v] = %v, want %v (must match PositionX)", v, report.X[v], x)
		}
	}
}

func TestBalanceAveragesMiddleTwo(t *testing.T) {
	g := NewGraph(GraphAttrs{NodeSep: 50, EdgeSep: 10})
	a := g.AddVertex(0, Attrs{Width: 50})

	aligned := map[string]map[VertexID]float64{
		"ul": {a: 10},
		"ur": {a: 20},
		"dl": {a: 30},
		"dr": {a: 40},
	}

	result := Balance(g, aligned)
	want := (20.0 + 30.0) / 2
	if result[a] != want {
		t.Errorf("Balance = %v, want %v", result[a], want)
	}
}
