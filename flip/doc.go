// Package flip implements the 2-2 edge flip. A single flip replaces
// the two triangles sharing an interior edge with the two triangles
// sharing that quadrilateral's other diagonal, committed only when the
// replacement triangles are non-degenerate, consistently wound, and
// accept.MoveOkay judges the post-flip quality pair an improvement
// over the pre-flip pair.
//
// flipTria tries a triangle's three edges in one of two coin-flipped
// orders; Run propagates in waves, seeded from the triangles touching
// smooth's moved-node set and re-seeded each wave from whatever a
// committed flip just replaced.
package flip
