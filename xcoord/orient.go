package xcoord

// orientLayering reorients a layering for one of the four biased traversals
// (§4.7 / §9 "Four symmetric traversals"): reverseVert reverses the
// sequence of layers ("down" vertical bias), reverseHoriz reverses each
// layer in place ("right" horizontal bias).
func orientLayering(l Layering, reverseVert, reverseHoriz bool) Layering {
	n := len(l)
	out := make(Layering, n)
	for i := range l {
		src := l[i]
		if reverseVert {
			src = l[n-1-i]
		}
		cp := make([]VertexID, len(src))
		copy(cp, src)
		if reverseHoriz {
			for a, b := 0, len(cp)-1; a < b; a, b = a+1, b-1 {
				cp[a], cp[b] = cp[b], cp[a]
			}
		}
		out[i] = cp
	}
	return out
}

// buildPos caches each vertex's position within its oriented layer. It must
// be read separately from Attrs.Order because the oriented traversal may
// not match the vertex's original in-graph order (§4.4).
func buildPos(l Layering) map[VertexID]int {
	pos := make(map[VertexID]int)
	for _, layer := range l {
		for i, v := range layer {
			pos[v] = i
		}
	}
	return pos
}
