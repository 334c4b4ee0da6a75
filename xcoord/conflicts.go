package xcoord

// ConflictSet is a symmetric relation over vertex IDs: hasConflict(v,w) ==
// hasConflict(w,v) always holds, by canonicalizing each unordered pair on
// the numeric min/max of the two IDs (§3).
type ConflictSet struct {
	m map[VertexID]map[VertexID]bool
}

// NewConflictSet returns an empty conflict set.
func NewConflictSet() *ConflictSet {
	return &ConflictSet{m: make(map[VertexID]map[VertexID]bool)}
}

// AddConflict marks (u, w) as conflicting.
func AddConflict(c *ConflictSet, u, w VertexID) {
	lo, hi := u, w
	if lo > hi {
		lo, hi = hi, lo
	}
	bucket, ok := c.m[lo]
	if !ok {
		bucket = make(map[VertexID]bool)
		c.m[lo] = bucket
	}
	bucket[hi] = true
}

// HasConflict reports whether (u, w) is marked as conflicting.
func HasConflict(c *ConflictSet, u, w VertexID) bool {
	lo, hi := u, w
	if lo > hi {
		lo, hi = hi, lo
	}
	bucket, ok := c.m[lo]
	return ok && bucket[hi]
}

// MergeConflicts unions b into a and returns a.
func MergeConflicts(a, b *ConflictSet) *ConflictSet {
	for lo, bucket := range b.m {
		for hi := range bucket {
			AddConflict(a, lo, hi)
		}
	}
	return a
}

// FindOtherInnerSegmentNode returns the unique dummy predecessor of v if v
// is itself a dummy vertex, or NoVertex otherwise (§4.2). The graph's
// precondition guarantees at most one such predecessor exists.
func FindOtherInnerSegmentNode(g *Graph, v VertexID) VertexID {
	a, _ := g.Node(v)
	if !a.Dummy.IsDummy() {
		return NoVertex
	}
	for _, u := range g.Predecessors(v) {
		ua, _ := g.Node(u)
		if ua.Dummy.IsDummy() {
			return u
		}
	}
	return NoVertex
}

// FindType1Conflicts detects crossings between a non-inner segment and an
// inner segment (§4.2), resolved in favor of keeping the inner segment
// straight.
func FindType1Conflicts(g *Graph, l Layering) *ConflictSet {
	conflicts := NewConflictSet()
	if len(l) < 2 {
		return conflicts
	}

	for r := 1; r < len(l); r++ {
		prev := l[r-1]
		cur := l[r]
		if len(cur) == 0 {
			continue
		}

		k0 := 0
		scanPos := 0
		prevLen := len(prev)
		last := cur[len(cur)-1]

		for i, v := range cur {
			w := FindOtherInnerSegmentNode(g, v)
			var k1 int
			if w != NoVertex {
				wa, _ := g.Node(w)
				k1 = wa.Order
			} else {
				k1 = prevLen
			}

			if w != NoVertex || v == last {
				for si := scanPos; si <= i; si++ {
					s := cur[si]
					sa, _ := g.Node(s)
					for _, u := range g.Predecessors(s) {
						ua, _ := g.Node(u)
						if (ua.Order < k0 || ua.Order > k1) && !(ua.Dummy.IsDummy() && sa.Dummy.IsDummy()) {
							AddConflict(conflicts, u, s)
						}
					}
				}
				scanPos = i + 1
				k0 = k1
			}
		}
	}

	return conflicts
}

// scanType2 marks (u, s) as conflicting for every dummy s in south[lo:hi)
// whose dummy predecessor u falls outside [nbL, nbR]. nbL is nil when no
// lower bound has been established yet (no border encountered), matching
// the reference algorithm's "undefined" comparison, which always fails.
func scanType2(g *Graph, south []VertexID, lo, hi int, nbL *int, nbR int, conflicts *ConflictSet) {
	if hi > len(south) {
		hi = len(south)
	}
	for i := lo; i < hi; i++ {
		s := south[i]
		sa, _ := g.Node(s)
		if !sa.Dummy.IsDummy() {
			continue
		}
		for _, u := range g.Predecessors(s) {
			ua, _ := g.Node(u)
			if !ua.Dummy.IsDummy() {
				continue
			}
			if (nbL != nil && ua.Order < *nbL) || ua.Order > nbR {
				AddConflict(conflicts, u, s)
			}
		}
	}
}

// FindType2Conflicts detects crossings between two inner segments (§4.3).
func FindType2Conflicts(g *Graph, l Layering) *ConflictSet {
	conflicts := NewConflictSet()
	if len(l) < 2 {
		return conflicts
	}

	for r := 1; r < len(l); r++ {
		north := l[r-1]
		south := l[r]

		prevNorthPos := -1
		var nextNorthPos *int
		southPos := 0

		for southLookahead, v := range south {
			va, _ := g.Node(v)
			if va.Dummy == DummyBorder {
				preds := g.Predecessors(v)
				if len(preds) > 0 {
					pa, _ := g.Node(preds[0])
					pos := pa.Order
					nextNorthPos = &pos

					prevCopy := prevNorthPos
					scanType2(g, south, southPos, southLookahead, &prevCopy, *nextNorthPos, conflicts)

					southPos = southLookahead
					prevNorthPos = *nextNorthPos
				}
			}

			scanType2(g, south, southPos, len(south), nextNorthPos, len(north), conflicts)
		}
	}

	return conflicts
}
