// File: flip.go
// Role: flipT2T2 (single-edge 2-2 swap), flipTria (per-triangle driver
// with the coin-flip edge order), and Run (the wave-propagation outer
// loop).
package flip

import (
	"math/rand"
	"sort"

	"github.com/halvardeng/meshopt/accept"
	"github.com/halvardeng/meshopt/geom"
	"github.com/halvardeng/meshopt/meshcore"
	"github.com/halvardeng/meshopt/predicate"
)

// wouldInvert reports whether triangle (p1,p2,p3) is degenerate or
// wound the wrong way relative to the pre-flip reference: in 2D, a
// non-positive signed area; in 3D, a normal pointing against refNormal
// (the sum of the two pre-flip triangle normals, nonzero for any
// non-degenerate quad).
func wouldInvert[R geom.Real](adapter *predicate.Adapter[R], refNormal geom.Vec[R], p1, p2, p3 geom.Vec[R]) bool {
	if adapter.Dim == 2 {
		return geom.TriArea2D(p1, p2, p3) <= 0
	}
	n := geom.TriNorm3D(p1, p2, p3)
	return geom.Dot(n, refNormal) <= 0
}

// flipT2T2 attempts the 2-2 swap across edge eid: boundary and self
// edges, and edges not incident to exactly two live triangles, are
// never flipped. Returns the two affected (post-flip) triangle ids on
// success, for the caller's next wave.
func flipT2T2[R geom.Real](m *meshcore.Mesh[R], adapter *predicate.Adapter[R], eid meshcore.EdgeID, params accept.Params[R]) (bool, []meshcore.TriID) {
	if m.IsBoundary(eid) {
		return false, nil
	}
	ts := m.EdgeTri3(eid)
	if len(ts) != 2 {
		return false, nil
	}
	e, err := m.Edge(eid)
	if err != nil {
		return false, nil
	}
	a, b := e.A, e.B

	tri1, err := m.Triangle(ts[0])
	if err != nil {
		return false, nil
	}
	tri2, err := m.Triangle(ts[1])
	if err != nil {
		return false, nil
	}

	apex1, dir1, ok1 := meshcore.ApexAcross(tri1.Nodes, a, b)
	apex2, dir2, ok2 := meshcore.ApexAcross(tri2.Nodes, a, b)
	if !ok1 || !ok2 || dir1 == dir2 {
		return false, nil
	}

	tAB, tBA := ts[0], ts[1]
	c, d := apex1, apex2
	if !dir1 {
		tAB, tBA = ts[1], ts[0]
		c, d = apex2, apex1
	}
	if c == d {
		return false, nil
	}
	// The new diagonal must not already carry triangles of its own: the
	// flip would push it past two incident triangles.
	if ecd, ok := m.EdgeByNodes(c, d); ok && len(m.EdgeTri3(ecd)) > 0 {
		return false, nil
	}

	oldTris := []meshcore.TriID{tAB, tBA}
	_, costs0 := accept.LoopCost(m, adapter, oldTris)

	var refNormal geom.Vec[R]
	if adapter.Dim == 3 {
		n1 := adapter.Normal(m, tAB)
		n2 := adapter.Normal(m, tBA)
		refNormal = geom.Vec[R]{n1[0] + n2[0], n1[1] + n2[1], n1[2] + n2[2]}
	}

	posA, _ := m.Node(a)
	posB, _ := m.Node(b)
	posC, _ := m.Node(c)
	posD, _ := m.Node(d)

	if wouldInvert(adapter, refNormal, posA.Pos, posD.Pos, posC.Pos) ||
		wouldInvert(adapter, refNormal, posB.Pos, posC.Pos, posD.Pos) {
		return false, nil
	}

	if err := m.ReplaceTriangle(tAB, a, d, c); err != nil {
		return false, nil
	}
	if err := m.ReplaceTriangle(tBA, b, c, d); err != nil {
		_ = m.ReplaceTriangle(tAB, a, b, c)
		dropEdgeIfEmpty(m, c, d)
		return false, nil
	}

	_, costs1 := accept.LoopCost(m, adapter, oldTris)
	if !accept.MoveOkay(costs0, costs1, params) {
		_ = m.ReplaceTriangle(tAB, a, b, c)
		_ = m.ReplaceTriangle(tBA, b, a, d)
		dropEdgeIfEmpty(m, c, d)
		return false, nil
	}

	// The old diagonal no longer bounds any triangle.
	m.DeleteEdge(eid)
	return true, []meshcore.TriID{tAB, tBA}
}

// dropEdgeIfEmpty deletes the (a,b) edge when a rolled-back flip left
// it with no incident triangles, so a rejection leaves no dangling
// edge behind.
func dropEdgeIfEmpty[R geom.Real](m *meshcore.Mesh[R], a, b meshcore.NodeID) {
	if eid, ok := m.EdgeByNodes(a, b); ok && len(m.EdgeTri3(eid)) == 0 {
		m.DeleteEdge(eid)
	}
}

// coinOrder returns the edge-local-position order flipTria tries for a
// given coin flip. coin==0 is the canonical ascending order. coin!=0
// tries the middle edge twice and never edge 0 — kept as-is rather
// than changed to {2,1,0}; see DESIGN.md. Harmless in aggregate: the
// triangle on the far side of edge 0 reaches the same flip decision
// through its own enumeration when Run visits it in a later wave.
func coinOrder(coin int) [3]int {
	if coin == 0 {
		return [3]int{0, 1, 2}
	}
	return [3]int{2, 1, 1}
}

// flipTria tries tid's three edges in a coin-flipped order, committing
// the first one flipT2T2 accepts.
func flipTria[R geom.Real](m *meshcore.Mesh[R], adapter *predicate.Adapter[R], tid meshcore.TriID, rng *rand.Rand, params accept.Params[R]) (bool, []meshcore.TriID) {
	t, err := m.Triangle(tid)
	if err != nil || meshcore.IsDeleted(t.Mark) {
		return false, nil
	}
	edges := m.TriEdges(tid)
	for _, epos := range coinOrder(rng.Intn(2)) {
		if ok, touched := flipT2T2(m, adapter, edges[epos], params); ok {
			return true, touched
		}
	}
	return false, nil
}

// seedTriangles returns the deduplicated, sorted set of live triangles
// incident to any of nodes.
func seedTriangles[R geom.Real](m *meshcore.Mesh[R], nodes []meshcore.NodeID) []meshcore.TriID {
	set := make(map[meshcore.TriID]bool)
	for _, nid := range nodes {
		for _, tid := range m.NodeTri3(nid) {
			set[tid] = true
		}
	}
	out := make([]meshcore.TriID, 0, len(set))
	for tid := range set {
		out = append(out, tid)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Run drives the flip phase: seed the wave from every triangle
// touching nset (smooth's moved-node output), then process wave by
// wave — every still-live triangle in the current wave attempts
// flipTria, and triangles touched by an accepted flip populate the
// next wave. Terminates when a wave commits nothing. Returns the total
// number of accepted flips.
func Run[R geom.Real](m *meshcore.Mesh[R], adapter *predicate.Adapter[R], nset []meshcore.NodeID, rng *rand.Rand, params accept.Params[R]) int {
	wave := seedTriangles(m, nset)
	nflp := 0
	for len(wave) > 0 {
		nextSet := make(map[meshcore.TriID]bool)
		for _, tid := range wave {
			ok, touched := flipTria(m, adapter, tid, rng, params)
			if !ok {
				continue
			}
			nflp++
			for _, t := range touched {
				nextSet[t] = true
			}
		}
		if len(nextSet) == 0 {
			break
		}
		next := make([]meshcore.TriID, 0, len(nextSet))
		for tid := range nextSet {
			next = append(next, tid)
		}
		sort.Slice(next, func(i, j int) bool { return next[i] < next[j] })
		wave = next
	}
	return nflp
}
