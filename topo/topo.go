// File: topo.go
// Role: divideEdge (split), zipEdge (collapse), and the per-node,
// per-mesh drivers around them.
package topo

import (
	"math/rand"
	"sort"

	"github.com/halvardeng/meshopt/accept"
	"github.com/halvardeng/meshopt/geom"
	"github.com/halvardeng/meshopt/meshcore"
	"github.com/halvardeng/meshopt/predicate"
	"github.com/halvardeng/meshopt/smooth"
)

// DegMax and DegMin are the degree thresholds that switch divide/zip
// into their aggressive, degree-relieving mode.
const (
	DegMax = 8
	DegMin = 5
)

// Length-gate tolerances and the aggressive-mode quality slack. Normal
// mode requires an edge to cross its target size by the default
// margin; aggressive mode relaxes both the length gate and the
// quality gate (via QIncAggressive, a permitted regression) so a
// degree-starved or degree-flooded node can still be relieved even
// when the edge in question is not otherwise a natural candidate.
const (
	DivideLtolDefault    = 1.0
	DivideLtolAggressive = 0.5
	ZipLtolDefault       = 1.0
	ZipLtolAggressive    = 2.0
	QIncAggressive       = -0.5
)

// Options selects which of the two mutators VisitNode may attempt.
type Options struct {
	Divide bool
	Zip    bool
}

// VisitNode tries node's incident edges in a coin-flipped direction,
// attempting divide (if enabled) then zip (if enabled) on each edge in
// turn, stopping at the first edge that commits either operation —
// never both per visit.
// Frozen, deleted, and boundary-adjacent-only nodes are left alone.
// iterGen stamps any node a committed divide creates, so the next
// iteration's smoothing subpass 0 picks it up as recently touched.
func VisitNode[R geom.Real](m *meshcore.Mesh[R], adapter *predicate.Adapter[R], cache *smooth.Cache[R], node meshcore.NodeID, rng *rand.Rand, iterGen int32, opts Options, params accept.Params[R]) (zipped, divided bool) {
	nodeData, err := m.Node(node)
	if err != nil || meshcore.IsFrozen(nodeData.Mark) || meshcore.IsDeleted(nodeData.Mark) {
		return false, false
	}

	edges := m.NodeEdge(node)
	if len(edges) == 0 {
		return false, false
	}

	order := make([]int, len(edges))
	for i := range order {
		order[i] = i
	}
	if rng.Intn(2) != 0 {
		for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
			order[i], order[j] = order[j], order[i]
		}
	}

	for _, idx := range order {
		eid := edges[idx]
		if m.IsBoundary(eid) {
			continue
		}
		e, err := m.Edge(eid)
		if err != nil {
			continue
		}
		other := e.A
		if other == node {
			other = e.B
		}
		otherData, err := m.Node(other)
		if err != nil || meshcore.IsFrozen(otherData.Mark) || meshcore.IsDeleted(otherData.Mark) {
			continue
		}

		if opts.Divide && divideEdge(m, adapter, cache, eid, iterGen, params) {
			return false, true
		}
		if opts.Zip && zipEdge(m, adapter, cache, eid, params) {
			return true, false
		}
	}
	return false, false
}

// Pass runs VisitNode over every node live at the start of the call,
// accumulating the zip and divide counts the driver logs (nzip and
// ndiv). iterGen is the current outer iteration
// number, the same generation value passed to smooth.Pass, so a node a
// divide creates carries a mark smooth's subpass-0 "recently touched"
// test recognizes.
func Pass[R geom.Real](m *meshcore.Mesh[R], adapter *predicate.Adapter[R], cache *smooth.Cache[R], rng *rand.Rand, iterGen int32, opts Options, params accept.Params[R]) (nzip, ndiv int) {
	for _, nid := range m.LiveNodeIDs() {
		z, d := VisitNode(m, adapter, cache, nid, rng, iterGen, opts, params)
		if z {
			nzip++
		}
		if d {
			ndiv++
		}
	}
	return nzip, ndiv
}

// divideEdge splits eid at its (projected) midpoint, fanning each of
// its 1-2 incident triangles into 2, committing only when the
// replacement costs clear the length gate and the quality gate (or its
// degree-relaxed fallback).
func divideEdge[R geom.Real](m *meshcore.Mesh[R], adapter *predicate.Adapter[R], cache *smooth.Cache[R], eid meshcore.EdgeID, iterGen int32, params accept.Params[R]) bool {
	if m.IsBoundary(eid) {
		return false
	}
	e, err := m.Edge(eid)
	if err != nil {
		return false
	}
	a, b := e.A, e.B
	nodeA, _ := m.Node(a)
	nodeB, _ := m.Node(b)

	ts := m.EdgeTri3(eid)
	if len(ts) == 0 {
		return false
	}

	degA := len(m.NodeEdge(a))
	degB := len(m.NodeEdge(b))
	ltol := R(DivideLtolDefault)
	qinc := R(0)
	if degA > DegMax || degB > DegMax {
		ltol = R(DivideLtolAggressive)
		qinc = R(QIncAggressive)
	}

	h := (cache.Eval(adapter, m, a) + cache.Eval(adapter, m, b)) / 2
	lsqr := adapter.Lsqr(geom.Sub(nodeB.Pos, nodeA.Pos))
	if lsqr <= ltol*ltol*h*h {
		return false
	}

	mid := make(geom.Vec[R], len(nodeA.Pos))
	for i := range mid {
		mid[i] = (nodeA.Pos[i] + nodeB.Pos[i]) / 2
	}
	mid = adapter.Proj(nodeA.Pos, mid)

	_, costs0 := accept.LoopCost(m, adapter, ts)

	type fan struct {
		x, y, z meshcore.NodeID
	}
	reps := make([]fan, 0, len(ts))
	costs1 := make([]R, 0, 2*len(ts))
	for _, tid := range ts {
		tri, _ := m.Triangle(tid)
		z, aToB, ok := meshcore.ApexAcross(tri.Nodes, a, b)
		if !ok {
			return false
		}
		x, y := a, b
		if !aToB {
			x, y = b, a
		}
		posX, _ := m.Node(x)
		posY, _ := m.Node(y)
		posZ, _ := m.Node(z)
		costs1 = append(costs1,
			adapter.CostPoints(posX.Pos, mid, posZ.Pos),
			adapter.CostPoints(mid, posY.Pos, posZ.Pos),
		)
		reps = append(reps, fan{x, y, z})
	}

	if !acceptWithSlack(costs0, costs1, params, qinc) {
		return false
	}

	newNode, err := m.AddNode(mid)
	if err != nil {
		return false
	}
	m.SetNodeMark(newNode, iterGen)

	for i, tid := range ts {
		m.DeleteTriangle(tid)
		_, _ = m.AddTriangle(reps[i].x, newNode, reps[i].z)
		_, _ = m.AddTriangle(newNode, reps[i].y, reps[i].z)
	}
	m.DeleteEdge(eid)
	cache.Clear(a)
	cache.Clear(b)
	return true
}

// zipEdge merges eid's two endpoints (b into a, at their midpoint),
// deleting eid's 1-2 incident triangles and relabeling every other
// triangle touching b to touch a instead. Every edge of b, and every
// edge of a left with no triangle, is deleted.
func zipEdge[R geom.Real](m *meshcore.Mesh[R], adapter *predicate.Adapter[R], cache *smooth.Cache[R], eid meshcore.EdgeID, params accept.Params[R]) bool {
	if m.IsBoundary(eid) {
		return false
	}
	e, err := m.Edge(eid)
	if err != nil {
		return false
	}
	a, b := e.A, e.B
	nodeA, _ := m.Node(a)
	nodeB, _ := m.Node(b)

	ts := m.EdgeTri3(eid)
	if len(ts) == 0 {
		return false
	}

	apex := make(map[meshcore.NodeID]bool, len(ts))
	for _, tid := range ts {
		tri, _ := m.Triangle(tid)
		for _, n := range tri.Nodes {
			if n != a && n != b {
				apex[n] = true
			}
		}
	}
	if !linkConditionHolds(m, a, b, apex) {
		return false
	}

	degA := len(m.NodeEdge(a))
	degB := len(m.NodeEdge(b))
	ltol := R(ZipLtolDefault)
	qinc := R(0)
	if degA < DegMin || degB < DegMin {
		ltol = R(ZipLtolAggressive)
		qinc = R(QIncAggressive)
	}

	h := (cache.Eval(adapter, m, a) + cache.Eval(adapter, m, b)) / 2
	lsqr := adapter.Lsqr(geom.Sub(nodeB.Pos, nodeA.Pos))
	if lsqr >= ltol*ltol*h*h {
		return false
	}

	merged := make(geom.Vec[R], len(nodeA.Pos))
	for i := range merged {
		merged[i] = (nodeA.Pos[i] + nodeB.Pos[i]) / 2
	}
	merged = adapter.Proj(nodeA.Pos, merged)

	onEdge := make(map[meshcore.TriID]bool, len(ts))
	for _, tid := range ts {
		onEdge[tid] = true
	}
	ringSet := make(map[meshcore.TriID]bool)
	for _, tid := range m.NodeTri3(a) {
		if !onEdge[tid] {
			ringSet[tid] = true
		}
	}
	for _, tid := range m.NodeTri3(b) {
		if !onEdge[tid] {
			ringSet[tid] = true
		}
	}
	ring := make([]meshcore.TriID, 0, len(ringSet))
	for tid := range ringSet {
		ring = append(ring, tid)
	}
	sort.Slice(ring, func(i, j int) bool { return ring[i] < ring[j] })

	_, costs0 := accept.LoopCost(m, adapter, ring)

	type relabel struct {
		tid   meshcore.TriID
		nodes [3]meshcore.NodeID
	}
	reps := make([]relabel, 0, len(ring))
	costs1 := make([]R, 0, len(ring))
	posAt := func(id meshcore.NodeID) geom.Vec[R] {
		if id == a {
			return merged
		}
		n, _ := m.Node(id)
		return n.Pos
	}
	for _, tid := range ring {
		tri, _ := m.Triangle(tid)
		nn := tri.Nodes
		for i := range nn {
			if nn[i] == b {
				nn[i] = a
			}
		}
		if nn[0] == nn[1] || nn[1] == nn[2] || nn[0] == nn[2] {
			return false
		}
		costs1 = append(costs1, adapter.CostPoints(posAt(nn[0]), posAt(nn[1]), posAt(nn[2])))
		reps = append(reps, relabel{tid, nn})
	}

	if !acceptWithSlack(costs0, costs1, params, qinc) {
		return false
	}

	for _, tid := range ts {
		m.DeleteTriangle(tid)
	}
	staleEdges := m.NodeEdge(b)
	m.SetNodePos(a, merged)
	for _, rep := range reps {
		_ = m.ReplaceTriangle(rep.tid, rep.nodes[0], rep.nodes[1], rep.nodes[2])
	}
	for _, seid := range staleEdges {
		m.DeleteEdge(seid)
	}
	// An (a, apex) edge whose only triangle was one of the deleted pair
	// is left with nothing to bound.
	for _, aeid := range m.NodeEdge(a) {
		if len(m.EdgeTri3(aeid)) == 0 {
			m.DeleteEdge(aeid)
		}
	}
	m.DeleteNode(b)
	cache.Clear(a)
	return true
}

// linkConditionHolds reports whether a and b's only common neighbors
// are the apexes of the triangles being collapsed away; a collapse
// that would leave some edge incident to 3+ live triangles must be
// rejected before any mutation. If a and b share any other
// neighbor c, relabeling b's triangles onto a would re-home a ring
// triangle onto an (a,c) edge that already carries its own triangles,
// producing exactly that non-manifold fold.
func linkConditionHolds[R geom.Real](m *meshcore.Mesh[R], a, b meshcore.NodeID, apex map[meshcore.NodeID]bool) bool {
	neighborsB := neighborsExcluding(m, b, a)
	for _, eid := range m.NodeEdge(a) {
		e, err := m.Edge(eid)
		if err != nil {
			continue
		}
		other := e.A
		if other == a {
			other = e.B
		}
		if other == b {
			continue
		}
		if neighborsB[other] && !apex[other] {
			return false
		}
	}
	return true
}

// neighborsExcluding returns the set of live nodes adjacent to node via
// an edge, other than exclude itself.
func neighborsExcluding[R geom.Real](m *meshcore.Mesh[R], node, exclude meshcore.NodeID) map[meshcore.NodeID]bool {
	set := make(map[meshcore.NodeID]bool)
	for _, eid := range m.NodeEdge(node) {
		e, err := m.Edge(eid)
		if err != nil {
			continue
		}
		other := e.A
		if other == node {
			other = e.B
		}
		if other != exclude {
			set[other] = true
		}
	}
	return set
}

// acceptWithSlack applies the ordinary accept.MoveOkay rule first; if
// it rejects and qinc is nonzero (the degree-aggressive arm), it falls
// back to a single relaxed check permitting a regression of up to
// |qinc| in the neighborhood's minimum cost, so a flat-quality split
// or collapse can still relieve degree pressure.
func acceptWithSlack[R geom.Real](costs0, costs1 []R, params accept.Params[R], qinc R) bool {
	if accept.MoveOkay(costs0, costs1, params) {
		return true
	}
	if qinc == 0 || len(costs0) == 0 || len(costs1) == 0 {
		return false
	}
	return minSlice(costs1) > minSlice(costs0)+qinc
}

func minSlice[R geom.Real](v []R) R {
	m := v[0]
	for _, c := range v[1:] {
		if c < m {
			m = c
		}
	}
	return m
}
