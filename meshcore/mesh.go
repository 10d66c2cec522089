// File: mesh.go
// Role: the Mesh container — flat Node/Edge/Triangle arrays plus the
//       incidence indices (node->edge, node->triangle, edge->triangle)
//       every mutator reads. Adjacency is held in maps keyed by id,
//       entities are identified by stable integer ids, deletion is a
//       mark field rather than physical removal.
// Determinism:
//   - NodeTri3/NodeEdge/EdgeTri3 return ids in ascending numeric order
//     (construction order).
package meshcore

import (
	"sort"

	"github.com/halvardeng/meshopt/geom"
)

// edgeKeyOf returns the canonical (sorted) key for the unordered pair
// (a,b), so (a,b) and (b,a) resolve to the same edge.
func edgeKeyOf(a, b NodeID) [2]NodeID {
	if a <= b {
		return [2]NodeID{a, b}
	}
	return [2]NodeID{b, a}
}

// Mesh is the optimizer's mutable container. The optimizer exclusively
// owns a Mesh and its marker arrays for the lifetime of one iter.Run
// call.
type Mesh[R geom.Real] struct {
	dim int

	nodes []Node[R]
	edges []Edge
	tris  []Triangle

	edgeOf    map[[2]NodeID]EdgeID
	nodeEdges map[NodeID][]EdgeID
	nodeTris  map[NodeID][]TriID
	edgeTris  map[EdgeID][]TriID
}

// New returns an empty Mesh embedded in dim dimensions (dim must be 2
// or 3).
func New[R geom.Real](dim int) *Mesh[R] {
	return &Mesh[R]{
		dim:       dim,
		edgeOf:    make(map[[2]NodeID]EdgeID),
		nodeEdges: make(map[NodeID][]EdgeID),
		nodeTris:  make(map[NodeID][]TriID),
		edgeTris:  make(map[EdgeID][]TriID),
	}
}

// Dim returns the embedding dimension (2 or 3).
func (m *Mesh[R]) Dim() int { return m.dim }

// NodeCount, EdgeCount, TriCount return the total (including deleted)
// number of entries in each array.
func (m *Mesh[R]) NodeCount() int { return len(m.nodes) }
func (m *Mesh[R]) EdgeCount() int { return len(m.edges) }
func (m *Mesh[R]) TriCount() int  { return len(m.tris) }

// AddNode appends a new live node at pos and returns its id.
func (m *Mesh[R]) AddNode(pos geom.Vec[R]) (NodeID, error) {
	if len(pos) != m.dim {
		return 0, ErrDimMismatch
	}
	id := NodeID(len(m.nodes))
	m.nodes = append(m.nodes, Node[R]{Pos: pos, Mark: 0})
	return id, nil
}

// Node returns the node at id. Callers must check liveness themselves
// via IsLive(node.Mark) where deletion is relevant.
func (m *Mesh[R]) Node(id NodeID) (Node[R], error) {
	if int(id) < 0 || int(id) >= len(m.nodes) {
		return Node[R]{}, ErrNodeNotFound
	}
	return m.nodes[id], nil
}

// SetNodeMark overwrites a node's marker (generation counter, Frozen,
// or Deleted).
func (m *Mesh[R]) SetNodeMark(id NodeID, mark int32) { m.nodes[id].Mark = mark }

// SetNodePos overwrites a node's coordinates in place (used by smooth
// and topo to commit an accepted displacement or new split position).
func (m *Mesh[R]) SetNodePos(id NodeID, pos geom.Vec[R]) { m.nodes[id].Pos = pos }

// Edge returns the edge at id.
func (m *Mesh[R]) Edge(id EdgeID) (Edge, error) {
	if int(id) < 0 || int(id) >= len(m.edges) {
		return Edge{}, ErrEdgeNotFound
	}
	return m.edges[id], nil
}

// SetEdgeMark overwrites an edge's marker.
func (m *Mesh[R]) SetEdgeMark(id EdgeID, mark int32) { m.edges[id].Mark = mark }

// Triangle returns the triangle at id.
func (m *Mesh[R]) Triangle(id TriID) (Triangle, error) {
	if int(id) < 0 || int(id) >= len(m.tris) {
		return Triangle{}, ErrTriNotFound
	}
	return m.tris[id], nil
}

// SetTriMark overwrites a triangle's marker.
func (m *Mesh[R]) SetTriMark(id TriID, mark int32) { m.tris[id].Mark = mark }

// ensureEdge returns the id of the (a,b) edge, creating it (as a
// non-self edge) if it does not already exist. An edge that was marked
// deleted comes back live: edge ids are never reused for a different
// node pair, so re-registering the pair revives the original entry.
func (m *Mesh[R]) ensureEdge(a, b NodeID) EdgeID {
	key := edgeKeyOf(a, b)
	if id, ok := m.edgeOf[key]; ok {
		if IsDeleted(m.edges[id].Mark) {
			m.edges[id].Mark = 0
		}
		return id
	}
	id := EdgeID(len(m.edges))
	m.edges = append(m.edges, Edge{A: a, B: b, Mark: 0})
	m.edgeOf[key] = id
	m.nodeEdges[a] = append(m.nodeEdges[a], id)
	m.nodeEdges[b] = append(m.nodeEdges[b], id)
	return id
}

// AddEdge creates (or reuses) an explicit edge between a and b, marking
// it as a domain boundary/feature edge when self is true. Used by
// external mesh construction.
func (m *Mesh[R]) AddEdge(a, b NodeID, self bool) EdgeID {
	id := m.ensureEdge(a, b)
	if self {
		m.edges[id].Self = true
	}
	return id
}

// EdgeByNodes looks up an existing edge by its endpoints.
func (m *Mesh[R]) EdgeByNodes(a, b NodeID) (EdgeID, bool) {
	id, ok := m.edgeOf[edgeKeyOf(a, b)]
	return id, ok
}

// AddTriangle appends a new live triangle (a,b,c), registering its three
// edges (creating any that do not already exist) and updating all
// incidence indices. Returns ErrDegenerateTriangle if any two of a,b,c
// are equal (invariant 2).
func (m *Mesh[R]) AddTriangle(a, b, c NodeID) (TriID, error) {
	if a == b || b == c || a == c {
		return 0, ErrDegenerateTriangle
	}
	id := TriID(len(m.tris))
	m.tris = append(m.tris, Triangle{Nodes: [3]NodeID{a, b, c}, Mark: 0})

	m.nodeTris[a] = append(m.nodeTris[a], id)
	m.nodeTris[b] = append(m.nodeTris[b], id)
	m.nodeTris[c] = append(m.nodeTris[c], id)

	for _, pr := range [][2]NodeID{{a, b}, {b, c}, {c, a}} {
		eid := m.ensureEdge(pr[0], pr[1])
		m.edgeTris[eid] = append(m.edgeTris[eid], id)
	}
	return id, nil
}

// DeleteTriangle marks a triangle deleted and drops it from every
// edge's incidence list, keeping edge incidence consistent with the
// triangle array. The triangle and its edges are never physically
// removed.
func (m *Mesh[R]) DeleteTriangle(id TriID) {
	m.tris[id].Mark = Deleted
	t := m.tris[id]
	for _, pr := range [][2]NodeID{{t.Nodes[0], t.Nodes[1]}, {t.Nodes[1], t.Nodes[2]}, {t.Nodes[2], t.Nodes[0]}} {
		eid, ok := m.edgeOf[edgeKeyOf(pr[0], pr[1])]
		if !ok {
			continue
		}
		m.edgeTris[eid] = removeTriID(m.edgeTris[eid], id)
	}
}

// DeleteEdge marks an edge deleted. Its own incidence list is left
// intact for inspection but liveness queries will skip it.
func (m *Mesh[R]) DeleteEdge(id EdgeID) { m.edges[id].Mark = Deleted }

// DeleteNode marks a node deleted (used by topo's zipEdge after merging two
// endpoints into one).
func (m *Mesh[R]) DeleteNode(id NodeID) { m.nodes[id].Mark = Deleted }

func removeTriID(s []TriID, victim TriID) []TriID {
	out := s[:0]
	for _, id := range s {
		if id != victim {
			out = append(out, id)
		}
	}
	return out
}

// NodeTri3 returns the live triangles incident to node id, ascending by
// TriID.
func (m *Mesh[R]) NodeTri3(id NodeID) []TriID {
	var out []TriID
	for _, tid := range m.nodeTris[id] {
		if IsLive(m.tris[tid].Mark) {
			out = append(out, tid)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NodeEdge returns the live edges incident to node id, ascending by
// EdgeID.
func (m *Mesh[R]) NodeEdge(id NodeID) []EdgeID {
	var out []EdgeID
	for _, eid := range m.nodeEdges[id] {
		if IsLive(m.edges[eid].Mark) {
			out = append(out, eid)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// EdgeTri3 returns the live triangles incident to edge id (0, 1 or 2 of
// them; CheckInvariants requires 1 or 2 for a live edge).
func (m *Mesh[R]) EdgeTri3(id EdgeID) []TriID {
	var out []TriID
	for _, tid := range m.edgeTris[id] {
		if IsLive(m.tris[tid].Mark) {
			out = append(out, tid)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// OtherTriAcross returns the unique live triangle across edge eid from
// tid, and false if eid is a boundary edge (not exactly 2 incident
// triangles) or tid is not one of them.
func (m *Mesh[R]) OtherTriAcross(eid EdgeID, tid TriID) (TriID, bool) {
	ts := m.EdgeTri3(eid)
	if len(ts) != 2 {
		return 0, false
	}
	switch {
	case ts[0] == tid:
		return ts[1], true
	case ts[1] == tid:
		return ts[0], true
	default:
		return 0, false
	}
}

// IsBoundary reports whether edge id is a domain boundary/feature edge:
// flagged Self, or not incident to exactly 2 live triangles.
func (m *Mesh[R]) IsBoundary(id EdgeID) bool {
	e := m.edges[id]
	if e.Self {
		return true
	}
	return len(m.EdgeTri3(id)) != 2
}

// TriEdges returns the three edge ids of triangle tid, in the order
// (nodes[0],nodes[1]), (nodes[1],nodes[2]), (nodes[2],nodes[0]).
func (m *Mesh[R]) TriEdges(tid TriID) [3]EdgeID {
	t := m.tris[tid]
	var out [3]EdgeID
	pairs := [3][2]NodeID{{t.Nodes[0], t.Nodes[1]}, {t.Nodes[1], t.Nodes[2]}, {t.Nodes[2], t.Nodes[0]}}
	for i, pr := range pairs {
		out[i] = m.edgeOf[edgeKeyOf(pr[0], pr[1])]
	}
	return out
}

// TriPositions returns the three embedded coordinates of triangle tid's
// nodes, in winding order.
func (m *Mesh[R]) TriPositions(tid TriID) (geom.Vec[R], geom.Vec[R], geom.Vec[R]) {
	t := m.tris[tid]
	return m.nodes[t.Nodes[0]].Pos, m.nodes[t.Nodes[1]].Pos, m.nodes[t.Nodes[2]].Pos
}

// SwapTriNodes exchanges the node ids at local positions i and j within
// triangle tid, inverting its winding. Used by orient.FlipSign. Does
// not touch incidence (the node set is unchanged, only its order).
func (m *Mesh[R]) SwapTriNodes(tid TriID, i, j int) {
	m.tris[tid].Nodes[i], m.tris[tid].Nodes[j] = m.tris[tid].Nodes[j], m.tris[tid].Nodes[i]
}

// ReplaceTriangle overwrites tid's node triple in place (used by flip's
// flipT2T2 to commit a 2-2 swap without allocating a new id, and by
// topo's zipEdge to relabel ring triangles), and
// fixes up edge incidence for the edges that changed.
func (m *Mesh[R]) ReplaceTriangle(tid TriID, a, b, c NodeID) error {
	if a == b || b == c || a == c {
		return ErrDegenerateTriangle
	}
	old := m.tris[tid]
	oldPairs := [3][2]NodeID{{old.Nodes[0], old.Nodes[1]}, {old.Nodes[1], old.Nodes[2]}, {old.Nodes[2], old.Nodes[0]}}
	for _, pr := range oldPairs {
		if eid, ok := m.edgeOf[edgeKeyOf(pr[0], pr[1])]; ok {
			m.edgeTris[eid] = removeTriID(m.edgeTris[eid], tid)
		}
	}
	for _, nid := range old.Nodes {
		m.nodeTris[nid] = removeTriID(m.nodeTris[nid], tid)
	}

	m.tris[tid].Nodes = [3]NodeID{a, b, c}
	m.nodeTris[a] = append(m.nodeTris[a], tid)
	m.nodeTris[b] = append(m.nodeTris[b], tid)
	m.nodeTris[c] = append(m.nodeTris[c], tid)
	for _, pr := range [][2]NodeID{{a, b}, {b, c}, {c, a}} {
		eid := m.ensureEdge(pr[0], pr[1])
		m.edgeTris[eid] = append(m.edgeTris[eid], tid)
	}
	return nil
}

// LiveTriIDs returns every live triangle id in ascending order.
func (m *Mesh[R]) LiveTriIDs() []TriID {
	out := make([]TriID, 0, len(m.tris))
	for i, t := range m.tris {
		if IsLive(t.Mark) {
			out = append(out, TriID(i))
		}
	}
	return out
}

// LiveNodeIDs returns every live node id in ascending order.
func (m *Mesh[R]) LiveNodeIDs() []NodeID {
	out := make([]NodeID, 0, len(m.nodes))
	for i, n := range m.nodes {
		if IsLive(n.Mark) {
			out = append(out, NodeID(i))
		}
	}
	return out
}

// LiveEdgeIDs returns every live edge id in ascending order.
func (m *Mesh[R]) LiveEdgeIDs() []EdgeID {
	out := make([]EdgeID, 0, len(m.edges))
	for i, e := range m.edges {
		if IsLive(e.Mark) {
			out = append(out, EdgeID(i))
		}
	}
	return out
}
