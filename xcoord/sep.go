package xcoord

// SepFunc returns the minimum required center-to-center horizontal distance
// between two layer-adjacent vertices, v being to the right of w.
type SepFunc func(g *Graph, v, w VertexID) float64

// NewSep builds a SepFunc per §4.1. reverseSep flips the sign of the
// label-position correction; the orchestrator sets it true while traversing
// layers right-to-left (the "r" horizontal bias).
func NewSep(nodesep, edgesep float64, reverseSep bool) SepFunc {
	return func(g *Graph, v, w VertexID) float64 {
		va, _ := g.Node(v)
		wa, _ := g.Node(w)

		sum := va.Width/2 + gapFor(va.Dummy, nodesep, edgesep)/2 + gapFor(wa.Dummy, nodesep, edgesep)/2 + wa.Width/2

		dv := rightLabelDelta(va)
		if reverseSep {
			sum += dv
		} else {
			sum -= dv
		}

		dw := leftLabelDelta(wa)
		if reverseSep {
			sum += dw
		} else {
			sum -= dw
		}

		return sum
	}
}

// gapFor returns edgesep if the vertex is any kind of dummy, nodesep
// otherwise.
func gapFor(d DummyKind, nodesep, edgesep float64) float64 {
	if d.IsDummy() {
		return edgesep
	}
	return nodesep
}

// rightLabelDelta is the label-position correction for a right-hand vertex:
// -width/2 for a left label, +width/2 for a right label, 0 for center.
func rightLabelDelta(a Attrs) float64 {
	switch normalizedLabelPos(a.LabelPos) {
	case LabelLeft:
		return -a.Width / 2
	case LabelRight:
		return a.Width / 2
	default:
		return 0
	}
}

// leftLabelDelta is the label-position correction for a left-hand vertex:
// +width/2 for a left label, -width/2 for a right label, 0 for center.
func leftLabelDelta(a Attrs) float64 {
	switch normalizedLabelPos(a.LabelPos) {
	case LabelLeft:
		return a.Width / 2
	case LabelRight:
		return -a.Width / 2
	default:
		return 0
	}
}
