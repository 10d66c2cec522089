// File: types.go
// Role: Node/Edge/Triangle entity types, sentinel errors, and the marker
//       sentinel constant shared by every marker array in the package.
package meshcore

import (
	"errors"
	"math"

	"github.com/halvardeng/meshopt/geom"
)

// NodeID, EdgeID and TriID are indices into Mesh's own slices. A
// concrete int32 alias rather than a generic integer parameter: Go
// slice indexing requires int, so a generic index type would force a
// conversion at every access for no benefit.
type NodeID int32

// EdgeID indexes Mesh.edges.
type EdgeID int32

// TriID indexes Mesh.tris.
type TriID int32

// Frozen is the marker sentinel meaning "pinned": the node is excluded
// from motion and the mark never changes once set. It is the minimum
// representable int32, so it is never confused with an ordinary
// (small, non-negative) generation counter.
const Frozen int32 = math.MinInt32

// Deleted is the sentinel generation value meaning "this entity has
// been removed and must be skipped by every query". Distinct from
// Frozen so a pinned boundary node is never mistaken for a deleted one.
const Deleted int32 = -1

// IsFrozen reports whether a marker value is the pinned sentinel.
func IsFrozen(mark int32) bool { return mark == Frozen }

// IsDeleted reports whether a marker value means the entity was
// removed. Frozen is excluded: a frozen node is still live, just pinned.
func IsDeleted(mark int32) bool { return mark < 0 && mark != Frozen }

// IsLive is the complement of IsDeleted.
func IsLive(mark int32) bool { return !IsDeleted(mark) }

// Node is a vertex with coordinates in R^d and a generation/lifecycle
// marker: Mark doubles as both the per-node generation counter and
// the deleted/frozen sentinel holder.
type Node[R geom.Real] struct {
	Pos  geom.Vec[R]
	Mark int32
}

// Edge is an unordered pair of node ids. Self marks a domain
// boundary/feature edge: self edges are never flipped, zipped, or
// divided across.
type Edge struct {
	A, B NodeID
	Mark int32
	Self bool
}

// Triangle is an ordered triple of node ids. Orientation is meaningful:
// predicate.Adapter.Cost returns a signed value for 2-D meshes, and
// orient.FlipSign's job is to make every live triangle's cost
// non-negative by correcting winding.
type Triangle struct {
	Nodes [3]NodeID
	Mark  int32
}

// Sentinel errors. Only sentinels are exported; callers branch with
// errors.Is, never string comparison.
var (
	// ErrNodeNotFound is returned when a NodeID is out of range. A
	// deleted node is still returned without error.
	ErrNodeNotFound = errors.New("meshcore: node not found")

	// ErrEdgeNotFound is returned when an EdgeID is out of range. A
	// deleted edge is still returned without error.
	ErrEdgeNotFound = errors.New("meshcore: edge not found")

	// ErrTriNotFound is returned when a TriID is out of range. A deleted
	// triangle is still returned without error.
	ErrTriNotFound = errors.New("meshcore: triangle not found")

	// ErrDegenerateTriangle is returned when a triangle would reference
	// the same node twice, violating invariant 2.
	ErrDegenerateTriangle = errors.New("meshcore: triangle references a repeated node")

	// ErrDimMismatch is returned when a coordinate's length does not
	// match the mesh's embedding dimension.
	ErrDimMismatch = errors.New("meshcore: coordinate dimension mismatch")
)

// faceNode statically enumerates, for each local triangle position
// epos, the pair of local positions spanning the edge opposite epos.
var faceNode = [3][2]int{
	{1, 2},
	{2, 0},
	{0, 1},
}

// FaceNode returns the pair of local triangle positions spanning the
// edge opposite local position epos (epos in {0,1,2}).
func FaceNode(epos int) (int, int) {
	f := faceNode[epos%3]
	return f[0], f[1]
}

// ApexAcross locates the third node of a triangle's node triple not
// equal to a or b, and reports which direction the (a,b) edge runs in
// the triangle's winding: aToB is true if a immediately precedes b in
// the cycle, false if b immediately precedes a. ok is false if a and b
// are not both present as an adjacent pair in nodes. Shared by flip's
// 2-2 swap and topo's edge split/collapse: both need to find a shared
// edge's two apex nodes and which way it runs in each incident
// triangle.
func ApexAcross(nodes [3]NodeID, a, b NodeID) (apex NodeID, aToB bool, ok bool) {
	for i := 0; i < 3; i++ {
		j := (i + 1) % 3
		k := (i + 2) % 3
		if nodes[i] == a && nodes[j] == b {
			return nodes[k], true, true
		}
		if nodes[i] == b && nodes[j] == a {
			return nodes[k], false, true
		}
	}
	return 0, false, false
}
