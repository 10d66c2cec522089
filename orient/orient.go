// File: orient.go
// Role: FlipSign, the orientation normalizer.
package orient

import (
	"github.com/halvardeng/meshopt/geom"
	"github.com/halvardeng/meshopt/meshcore"
	"github.com/halvardeng/meshopt/predicate"
)

// walker holds the mutable BFS state for one FlipSign run: the queue
// slice and the visited set.
type walker[R geom.Real] struct {
	mesh    *meshcore.Mesh[R]
	adapter *predicate.Adapter[R]
	visited map[meshcore.TriID]bool
	queue   []meshcore.TriID
}

// FlipSign normalizes triangle winding across the whole mesh: for each
// unvisited live triangle it seeds a new component (inverting the
// seed's winding if its cost is negative), then propagates a
// consistent winding to every triangle reachable through non-boundary
// edges. Running FlipSign twice is a no-op: a mesh it has already
// visited has every component already consistent, so every seed's cost
// is already non-negative and every flipNext check already passes.
func FlipSign[R geom.Real](m *meshcore.Mesh[R], adapter *predicate.Adapter[R]) {
	w := &walker[R]{
		mesh:    m,
		adapter: adapter,
		visited: make(map[meshcore.TriID]bool, m.TriCount()),
	}
	for _, tid := range m.LiveTriIDs() {
		if w.visited[tid] {
			continue
		}
		w.seed(tid)
		w.drain()
	}
}

// seed starts a new component at tid: if its cost is negative, invert
// its winding so the component begins from a non-negative reference.
func (w *walker[R]) seed(tid meshcore.TriID) {
	if w.adapter.Cost(w.mesh, tid) < 0 {
		w.mesh.SwapTriNodes(tid, 1, 2)
	}
	w.visited[tid] = true
	w.queue = append(w.queue, tid)
}

// drain processes the queue until empty, enqueueing every unvisited
// neighbor reachable across a non-boundary edge after making its
// winding compatible with the current triangle.
func (w *walker[R]) drain() {
	for len(w.queue) > 0 {
		cur := w.queue[0]
		w.queue = w.queue[1:]
		w.enqueueNeighbors(cur)
	}
}

// enqueueNeighbors finds cur's unique neighbor across each non-boundary
// edge and, if unvisited, makes it compatible and enqueues it.
func (w *walker[R]) enqueueNeighbors(cur meshcore.TriID) {
	edges := w.mesh.TriEdges(cur)
	curT, err := w.mesh.Triangle(cur)
	if err != nil {
		return
	}
	for epos, eid := range edges {
		if w.mesh.IsBoundary(eid) {
			continue
		}
		next, ok := w.mesh.OtherTriAcross(eid, cur)
		if !ok || w.visited[next] {
			continue
		}
		u := curT.Nodes[epos]
		v := curT.Nodes[(epos+1)%3]
		w.flipNext(next, u, v)
		w.visited[next] = true
		w.queue = append(w.queue, next)
	}
}

// flipNext ensures the shared edge (u,v) — directed as it appears in
// the already-oriented triangle — appears reversed (v,u) in next's
// winding, swapping two of next's nodes if it does not.
func (w *walker[R]) flipNext(next meshcore.TriID, u, v meshcore.NodeID) {
	t, err := w.mesh.Triangle(next)
	if err != nil {
		return
	}
	iu, iv := -1, -1
	for i, n := range t.Nodes {
		if n == u {
			iu = i
		}
		if n == v {
			iv = i
		}
	}
	if iu < 0 || iv < 0 {
		return
	}
	// Consistent orientation requires (u,v) to run backwards in next:
	// next.Nodes[iv] must immediately precede next.Nodes[iu].
	if (iv+1)%3 == iu {
		return
	}
	// Any single transposition inverts a triangle's winding.
	w.mesh.SwapTriNodes(next, 1, 2)
}
