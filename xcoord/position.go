package xcoord

import (
	"math"
	"sort"
	"strings"
)

// orientationKeys fixes the iteration order over the four biased
// alignments. Ties in FindSmallestWidthAlignment resolve to whichever key
// is encountered first in this order (§4.7).
var orientationKeys = []string{"ul", "ur", "dl", "dr"}

// PositionX is the top-level entry point: it computes an x-coordinate for
// every vertex of g (§4.7). It fails with an InvalidGraph GraphError if g
// violates one of the core's structural preconditions (§7).
func PositionX(g *Graph) (map[VertexID]float64, error) {
	report, err := PositionXDetail(g)
	if err != nil {
		return nil, err
	}
	return report.X, nil
}

// AlignmentReport is PositionXDetail's return value: the final coordinates
// plus the bookkeeping behind how they were chosen, for callers (the CLI's
// summary output) that want to report on the selection instead of only the
// final result.
type AlignmentReport struct {
	X        map[VertexID]float64
	Widths   map[string]float64 // alignment key ("ul","ur","dl","dr") -> width
	Selected string             // the narrowest alignment key, per §4.7
}

// PositionXDetail runs the same pipeline as PositionX but also reports the
// width of each of the four biased alignments and which one was selected as
// narrowest, before balancing folds them into the single final result.
func PositionXDetail(g *Graph) (AlignmentReport, error) {
	if err := g.Validate(); err != nil {
		return AlignmentReport{}, err
	}

	l, err := g.BuildLayering()
	if err != nil {
		return AlignmentReport{}, err
	}

	conflicts := MergeConflicts(FindType1Conflicts(g, l), FindType2Conflicts(g, l))

	xss := make(map[string]map[VertexID]float64, 4)
	for _, key := range orientationKeys {
		reverseVert := key[0] == 'd'
		reverseHoriz := key[1] == 'r'

		oriented := orientLayering(l, reverseVert, reverseHoriz)

		var neighborFn NeighborFunc
		if reverseVert {
			neighborFn = g.Successors
		} else {
			neighborFn = g.Predecessors
		}

		alignment := VerticalAlignment(g, oriented, conflicts, neighborFn)
		bg := BuildBlockGraph(g, oriented, alignment.Root, reverseHoriz)
		xs := HorizontalCompaction(g, bg, alignment.Root, reverseHoriz)

		if reverseHoriz {
			for v := range xs {
				xs[v] = -xs[v]
			}
		}

		xss[key] = xs
	}

	widths := make(map[string]float64, len(xss))
	for key, xs := range xss {
		widths[key] = alignmentWidth(g, xs)
	}

	selected := FindSmallestWidthAlignment(g, xss)
	aligned := AlignCoordinates(g, xss, selected)
	return AlignmentReport{
		X:        Balance(g, aligned),
		Widths:   widths,
		Selected: selected,
	}, nil
}

// alignmentWidth computes max(x+width/2) - min(x-width/2) over xs, the
// metric FindSmallestWidthAlignment minimizes.
func alignmentWidth(g *Graph, xs map[VertexID]float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	maxVal := math.Inf(-1)
	minVal := math.Inf(1)
	for v, x := range xs {
		a, _ := g.Node(v)
		if hi := x + a.Width/2; hi > maxVal {
			maxVal = hi
		}
		if lo := x - a.Width/2; lo < minVal {
			minVal = lo
		}
	}
	return maxVal - minVal
}

// FindSmallestWidthAlignment picks the narrowest of the four alignments in
// xss, breaking ties in favor of the first key encountered in
// orientationKeys order (§4.7).
func FindSmallestWidthAlignment(g *Graph, xss map[string]map[VertexID]float64) string {
	best := ""
	bestWidth := math.Inf(1)
	for _, key := range orientationKeys {
		xs, ok := xss[key]
		if !ok {
			continue
		}
		w := alignmentWidth(g, xs)
		if w < bestWidth {
			bestWidth = w
			best = key
		}
	}
	return best
}

func minValue(xs map[VertexID]float64) float64 {
	m := math.Inf(1)
	for _, x := range xs {
		if x < m {
			m = x
		}
	}
	return m
}

func maxValue(xs map[VertexID]float64) float64 {
	m := math.Inf(-1)
	for _, x := range xs {
		if x > m {
			m = x
		}
	}
	return m
}

// AlignCoordinates shifts each of the four alignments (other than the
// selected one) so they share the selected alignment's coordinate system:
// left-biased alignments are shifted to match its minimum, right-biased
// ones to match its maximum (§4.7 "Align coordinates").
func AlignCoordinates(g *Graph, xss map[string]map[VertexID]float64, selectedKey string) map[string]map[VertexID]float64 {
	selected := xss[selectedKey]
	alignToMin := minValue(selected)
	alignToMax := maxValue(selected)

	out := make(map[string]map[VertexID]float64, len(xss))
	for key, xs := range xss {
		cp := make(map[VertexID]float64, len(xs))
		for v, x := range xs {
			cp[v] = x
		}
		if key != selectedKey {
			var shift float64
			if key[1] == 'l' {
				shift = alignToMin - minValue(xs)
			} else {
				shift = alignToMax - maxValue(xs)
			}
			for v := range cp {
				cp[v] += shift
			}
		}
		out[key] = cp
	}
	return out
}

// Balance produces the final coordinate map (§4.7 "Balance"): if the graph
// forces one of the four biased alignments via GraphAttrs.Align, that
// alignment is returned verbatim; otherwise each vertex's four candidate
// x-values are sorted and the mean of the two middle values is taken.
func Balance(g *Graph, aligned map[string]map[VertexID]float64) map[VertexID]float64 {
	if forced := strings.ToLower(strings.TrimSpace(g.attrs.Align)); forced != "" {
		switch forced {
		case "ul", "ur", "dl", "dr":
			return aligned[forced]
		}
	}

	result := make(map[VertexID]float64, len(g.order))
	vals := make([]float64, 4)
	for _, v := range g.order {
		for i, key := range orientationKeys {
			vals[i] = aligned[key][v]
		}
		sort.Float64s(vals)
		result[v] = (vals[1] + vals[2]) / 2
	}
	return result
}
