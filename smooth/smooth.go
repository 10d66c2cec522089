// File: smooth.go
// Role: MoveNode (single-node attempt) and the outer Pass driver that
// sweeps a working set of nodes, subpass by subpass, until a subpass
// moves nothing.
package smooth

import (
	"math/rand"
	"sort"

	"github.com/halvardeng/meshopt/accept"
	"github.com/halvardeng/meshopt/geom"
	"github.com/halvardeng/meshopt/meshcore"
	"github.com/halvardeng/meshopt/predicate"
)

// shuffleWindow bounds how large a contiguous block of the working set
// is shuffled together: large working sets are shuffled window by
// window rather than all at once, so a subpass over a huge mesh still
// processes nodes in a cache-friendly near-sequential order.
const shuffleWindow = 1024

// MoveNode attempts to relocate a single node: it tries the
// centroidal-Voronoi displacement first, and — only when the
// neighborhood is not yet "good" (min cost below params.Good) — the
// numerical gradient displacement. Each candidate direction runs
// through lineSearch; the first one accept.MoveOkay commits wins.
// Returns false (leaving node untouched) if the neighborhood is empty,
// the node is frozen, or neither displacement finds an improving,
// accepted position.
func MoveNode[R geom.Real](m *meshcore.Mesh[R], adapter *predicate.Adapter[R], cache *Cache[R], node meshcore.NodeID, params accept.Params[R]) bool {
	nodeData, err := m.Node(node)
	if err != nil || meshcore.IsFrozen(nodeData.Mark) || meshcore.IsDeleted(nodeData.Mark) {
		return false
	}

	tris := m.NodeTri3(node)
	if len(tris) == 0 {
		return false
	}

	qmin0, costs0 := accept.LoopCost(m, adapter, tris)

	origin := make(geom.Vec[R], len(nodeData.Pos))
	copy(origin, nodeData.Pos)
	long := cache.Eval(adapter, m, node)

	if dir := ccvtMove(m, adapter, node, tris); dir != nil {
		if lineSearch(m, adapter, node, origin, dir, long, tris, costs0, params) {
			return true
		}
	}

	if qmin0 < params.Good {
		if dir := gradMove(m, adapter, node, tris, long); dir != nil {
			if lineSearch(m, adapter, node, origin, dir, long, tris, costs0, params) {
				return true
			}
		}
	}

	return false
}

// Pass runs the full node-smoothing phase for one outer iteration:
// subpass 0 seeds from nodes touched in the last two iterations or
// belonging to a below-target triangle; each following subpass works on
// whatever the previous subpass moved plus those nodes' one-ring
// neighbors.
// A subpass with zero moves ends the loop early; the subpass budget
// otherwise rises with the iteration count, clamped to [2, 8]. Pass
// returns the largest per-subpass move count (the iteration's
// convergence signal) and the set of nodes flip's wave propagation
// should seed from: every node actually moved across any subpass,
// plus — regardless of whether it ever moved — every node belonging
// to a below-target triangle at subpass 0's start.
func Pass[R geom.Real](m *meshcore.Mesh[R], adapter *predicate.Adapter[R], cache *Cache[R], rng *rand.Rand, iterGen int32, params accept.Params[R]) (int, []meshcore.NodeID) {
	cache.Reset()

	belowGood := belowGoodNodes(m, adapter, params)
	working := initialWorkingSet(m, belowGood, iterGen)

	maxNmov := 0
	nsetSet := make(map[meshcore.NodeID]bool, len(belowGood))
	for nid := range belowGood {
		nsetSet[nid] = true
	}

	// The subpass budget rises with the outer iteration count, clamped
	// to [2, 8]: early iterations stay cheap, later ones sweep deeper.
	maxSub := int(iterGen)
	if maxSub < 2 {
		maxSub = 2
	}
	if maxSub > 8 {
		maxSub = 8
	}

	for sub := 0; sub < maxSub && len(working) > 0; sub++ {
		shuffleInWindows(working, rng)

		var moved []meshcore.NodeID
		for i := len(working) - 1; i >= 0; i-- {
			node := working[i]
			if MoveNode(m, adapter, cache, node, params) {
				cache.Clear(node)
				m.SetNodeMark(node, iterGen)
				moved = append(moved, node)
			}
		}

		if len(moved) > maxNmov {
			maxNmov = len(moved)
		}
		if len(moved) == 0 {
			break
		}

		for _, nid := range moved {
			nsetSet[nid] = true
		}
		working = expandFromMoved(m, moved)
	}

	return maxNmov, sortedNodeIDs(nsetSet)
}

// belowGoodNodes returns every live node belonging to a triangle whose
// cost has not yet reached params.Good.
func belowGoodNodes[R geom.Real](m *meshcore.Mesh[R], adapter *predicate.Adapter[R], params accept.Params[R]) map[meshcore.NodeID]bool {
	set := make(map[meshcore.NodeID]bool)
	for _, tid := range m.LiveTriIDs() {
		if adapter.Cost(m, tid) <= params.Good {
			tri, _ := m.Triangle(tid)
			for _, nid := range tri.Nodes {
				set[nid] = true
			}
		}
	}
	return set
}

// initialWorkingSet collects subpass 0's candidates: any live node
// marked within the last two generations, plus belowGood.
func initialWorkingSet[R geom.Real](m *meshcore.Mesh[R], belowGood map[meshcore.NodeID]bool, iterGen int32) []meshcore.NodeID {
	set := make(map[meshcore.NodeID]bool, len(belowGood))
	for _, nid := range m.LiveNodeIDs() {
		node, _ := m.Node(nid)
		if node.Mark >= iterGen-2 {
			set[nid] = true
		}
	}
	for nid := range belowGood {
		set[nid] = true
	}
	return sortedNodeIDs(set)
}

// expandFromMoved returns moved together with its one-ring neighbors:
// the endpoints of every edge incident to a moved node, so a node that
// moved is tried again from its new position in the next subpass.
func expandFromMoved[R geom.Real](m *meshcore.Mesh[R], moved []meshcore.NodeID) []meshcore.NodeID {
	set := make(map[meshcore.NodeID]bool)
	for _, nid := range moved {
		set[nid] = true
		for _, eid := range m.NodeEdge(nid) {
			e, _ := m.Edge(eid)
			other := e.A
			if other == nid {
				other = e.B
			}
			set[other] = true
		}
	}
	return sortedNodeIDs(set)
}

func sortedNodeIDs(set map[meshcore.NodeID]bool) []meshcore.NodeID {
	out := make([]meshcore.NodeID, 0, len(set))
	for nid := range set {
		out = append(out, nid)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// shuffleInWindows Fisher-Yates shuffles s one shuffleWindow-sized block
// at a time, so the working order is randomized without losing the
// mesh's underlying locality for very large node sets.
func shuffleInWindows(s []meshcore.NodeID, rng *rand.Rand) {
	for start := 0; start < len(s); start += shuffleWindow {
		end := start + shuffleWindow
		if end > len(s) {
			end = len(s)
		}
		sub := s[start:end]
		rng.Shuffle(len(sub), func(i, j int) { sub[i], sub[j] = sub[j], sub[i] })
	}
}
