// File: invariants.go
// Role: the manifold-consistency checks that must hold after every
//       iteration. These checks are cheap, precise, and specific to
//       the two invariants that matter here.
package meshcore

import "fmt"

// CheckInvariants verifies the mesh's two manifold invariants:
//   - every live edge is incident to 1 or 2 live triangles, and a self
//     edge is incident to exactly 1;
//   - every live triangle's three node ids are distinct and reference
//     live nodes.
//
// Returns the first violation found, or nil if the mesh is consistent.
func (m *Mesh[R]) CheckInvariants() error {
	for _, tid := range m.LiveTriIDs() {
		t := m.tris[tid]
		if t.Nodes[0] == t.Nodes[1] || t.Nodes[1] == t.Nodes[2] || t.Nodes[0] == t.Nodes[2] {
			return fmt.Errorf("meshcore: triangle %d has repeated node: %w", tid, ErrDegenerateTriangle)
		}
		for _, nid := range t.Nodes {
			n, err := m.Node(nid)
			if err != nil || IsDeleted(n.Mark) {
				return fmt.Errorf("meshcore: triangle %d references dead node %d", tid, nid)
			}
		}
	}
	for _, eid := range m.LiveEdgeIDs() {
		e := m.edges[eid]
		n := len(m.EdgeTri3(eid))
		if e.Self {
			if n != 1 {
				return fmt.Errorf("meshcore: self edge %d has %d incident triangles, want 1", eid, n)
			}
			continue
		}
		if n != 1 && n != 2 {
			return fmt.Errorf("meshcore: edge %d has %d incident triangles, want 1 or 2", eid, n)
		}
	}
	return nil
}
