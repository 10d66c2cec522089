// File: meshfixture.go
// Role: deterministic fixture constructors. None of these freeze any
// node: boundary detection (which edges/nodes are pinned) is the
// driver's job, not the fixture's — a fixture only describes raw
// topology and geometry.
package meshfixture

import (
	"math"

	"github.com/halvardeng/meshopt/geom"
	"github.com/halvardeng/meshopt/meshcore"
)

// Hexagon builds a 6-triangle regular hexagon fan: a center node at
// the origin surrounded by 6 ring nodes on the unit circle, each
// adjacent pair of ring nodes forming an equilateral triangle with the
// center. Every triangle sits at quality 1 exactly.
func Hexagon() *meshcore.Mesh[float64] {
	m := meshcore.New[float64](2)
	center, _ := m.AddNode(geom.Vec[float64]{0, 0})
	ring := make([]meshcore.NodeID, 6)
	for i := 0; i < 6; i++ {
		angle := float64(i) * math.Pi / 3
		ring[i], _ = m.AddNode(geom.Vec[float64]{math.Cos(angle), math.Sin(angle)})
	}
	for i := 0; i < 6; i++ {
		j := (i + 1) % 6
		_, _ = m.AddTriangle(center, ring[i], ring[j])
	}
	return m
}

// SquashedPair builds a two-triangle sliver mesh: triangles sharing
// edge ((0,0),(1,0)), apexes at (0.5,0.01) and (0.5,-0.01), quality
// close to 0 on both. Flipping the shared edge to the short diagonal
// is the only local repair.
func SquashedPair() *meshcore.Mesh[float64] {
	m := meshcore.New[float64](2)
	p0, _ := m.AddNode(geom.Vec[float64]{0, 0})
	p1, _ := m.AddNode(geom.Vec[float64]{1, 0})
	top, _ := m.AddNode(geom.Vec[float64]{0.5, 0.01})
	bot, _ := m.AddNode(geom.Vec[float64]{0.5, -0.01})
	_, _ = m.AddTriangle(p0, p1, top)
	_, _ = m.AddTriangle(p1, p0, bot)
	return m
}

// DraggedFan builds an n-ring fan around a center node displaced to
// centerPos, with ring nodes evenly spaced on the unit circle about
// the origin. Panics if n < 3: a fan needs at least 3 ring nodes to
// close.
func DraggedFan(n int, centerPos geom.Vec[float64]) *meshcore.Mesh[float64] {
	if n < 3 {
		panic("meshfixture: DraggedFan requires n >= 3")
	}
	m := meshcore.New[float64](2)
	center, _ := m.AddNode(centerPos)
	ring := make([]meshcore.NodeID, n)
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		ring[i], _ = m.AddNode(geom.Vec[float64]{math.Cos(angle), math.Sin(angle)})
	}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		_, _ = m.AddTriangle(center, ring[i], ring[j])
	}
	return m
}

// FoldedPair3D builds a two-triangle strip in R^3 whose second
// triangle is folded flat back over the first: both apexes lie on the
// same side of the shared edge ((0,0,0),(1,0,0)), with the flap's apex
// offset so the quadrilateral has no convex layout. Swapping the
// shared edge to the apex-apex diagonal would create a triangle wound
// against the pair's mean normal, which is exactly what the 3-D
// inversion gates in smooth and flip must reject.
func FoldedPair3D() *meshcore.Mesh[float64] {
	m := meshcore.New[float64](3)
	a, _ := m.AddNode(geom.Vec[float64]{0, 0, 0})
	b, _ := m.AddNode(geom.Vec[float64]{1, 0, 0})
	base, _ := m.AddNode(geom.Vec[float64]{0.5, 1, 0})
	flap, _ := m.AddNode(geom.Vec[float64]{0.1, 0.9, 0})
	_, _ = m.AddTriangle(a, b, base)
	_, _ = m.AddTriangle(b, a, flap)
	return m
}

// DegreeLens builds a closed "two-pole" mesh whose two poles (hub0 and
// hub1) share one interior edge and each have vertex degree k+3: one
// edge to the other hub, one edge to each of the two shared "cap"
// nodes that close the strip, and k edges to their own private ring of
// intermediate nodes. Panics if k < 0.
//
// Used by the degree-gated zip/divide tests: DegreeLens(7) gives both
// hub endpoints degree 10; DegreeLens(1) gives both hub endpoints
// degree 4.
func DegreeLens(k int) (m *meshcore.Mesh[float64], hub0, hub1 meshcore.NodeID) {
	if k < 0 {
		panic("meshfixture: DegreeLens requires k >= 0")
	}
	m = meshcore.New[float64](2)
	hub0, _ = m.AddNode(geom.Vec[float64]{-0.1, 0})
	hub1, _ = m.AddNode(geom.Vec[float64]{0.1, 0})
	topCap, _ := m.AddNode(geom.Vec[float64]{0, 1})
	botCap, _ := m.AddNode(geom.Vec[float64]{0, -1})

	left := make([]meshcore.NodeID, k)
	for i := 0; i < k; i++ {
		frac := float64(i+1) / float64(k+1)
		angle := math.Pi*frac + math.Pi/2 // sweeps the left semicircle
		left[i], _ = m.AddNode(geom.Vec[float64]{-1 + 0.2*math.Sin(frac*math.Pi), math.Cos(angle)})
	}
	right := make([]meshcore.NodeID, k)
	for i := 0; i < k; i++ {
		frac := float64(i+1) / float64(k+1)
		angle := -math.Pi*frac + math.Pi/2 // sweeps the right semicircle
		right[i], _ = m.AddNode(geom.Vec[float64]{1 - 0.2*math.Sin(frac*math.Pi), math.Cos(angle)})
	}

	// Caps.
	_, _ = m.AddTriangle(hub0, hub1, topCap)
	_, _ = m.AddTriangle(hub1, hub0, botCap)

	// hub0's private fan: topCap -> left[0] -> ... -> left[k-1] -> botCap.
	leftChain := append([]meshcore.NodeID{topCap}, left...)
	leftChain = append(leftChain, botCap)
	for i := 0; i+1 < len(leftChain); i++ {
		_, _ = m.AddTriangle(hub0, leftChain[i+1], leftChain[i])
	}

	// hub1's private fan: topCap -> right[0] -> ... -> right[k-1] -> botCap.
	rightChain := append([]meshcore.NodeID{topCap}, right...)
	rightChain = append(rightChain, botCap)
	for i := 0; i+1 < len(rightChain); i++ {
		_, _ = m.AddTriangle(hub1, rightChain[i], rightChain[i+1])
	}

	return m, hub0, hub1
}
