// Package xcoord assigns horizontal (x) coordinates to the vertices of an
// already-layered directed acyclic graph.
//
// It implements Brandes & Köpf's "Fast and Simple Horizontal Coordinate
// Assignment" with a two-sweep block-graph compaction: vertices are grouped
// into vertical blocks along four biased traversals (up/down x left/right),
// each block is compacted against a derived block graph, and the narrowest
// of the four resulting layouts is selected and balanced into a final
// coordinate map.
//
// The package assumes its caller already produced the layering (ranks and
// per-layer order) and node widths; it performs no rank assignment, no
// crossing minimization, and no y-coordinate computation.
package xcoord
