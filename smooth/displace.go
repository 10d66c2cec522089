// File: displace.go
// Role: MoveNode's two displacement generators: a centroidal-Voronoi-
// like pull toward the size-weighted average of incident
// circumcenters, and a numerical quality-gradient ascent tried only
// when the neighborhood isn't already good.
package smooth

import (
	"github.com/halvardeng/meshopt/accept"
	"github.com/halvardeng/meshopt/geom"
	"github.com/halvardeng/meshopt/meshcore"
	"github.com/halvardeng/meshopt/predicate"
)

// ccvtMove returns the displacement from node's current position toward
// the size-weighted average of its incident triangles' circumcenters,
// or nil if no incident triangle yields a well-defined circumcenter
// (all collinear — pathological, but not this generator's job to fix).
func ccvtMove[R geom.Real](m *meshcore.Mesh[R], adapter *predicate.Adapter[R], node meshcore.NodeID, tris []meshcore.TriID) geom.Vec[R] {
	pos, _ := m.Node(node)
	dim := len(pos.Pos)

	sum := make(geom.Vec[R], dim)
	var wsum R
	for _, tid := range tris {
		p1, p2, p3 := m.TriPositions(tid)
		cc, ok := circumcenter(p1, p2, p3)
		if !ok {
			continue
		}
		w := adapter.Size.Eval(cc)
		for i := 0; i < dim; i++ {
			sum[i] += cc[i] * w
		}
		wsum += w
	}
	if wsum == 0 {
		return nil
	}

	target := make(geom.Vec[R], dim)
	for i := range sum {
		target[i] = sum[i] / wsum
	}
	return geom.Sub(target, pos.Pos)
}

// gradEpsFactor scales the node's cached target size down to a finite-
// difference step small enough that the quadratic area/quality terms
// stay well-conditioned.
const gradEpsFactor = 1e-3

// gradMove returns a displacement proportional to the numerical
// gradient of the neighborhood's minimum quality with respect to
// node's position, scaled to length long (the node's target edge
// size). Returns nil if long is zero or the gradient vanishes.
func gradMove[R geom.Real](m *meshcore.Mesh[R], adapter *predicate.Adapter[R], node meshcore.NodeID, tris []meshcore.TriID, long R) geom.Vec[R] {
	if long == 0 {
		return nil
	}
	eps := long * R(gradEpsFactor)
	if eps == 0 {
		return nil
	}

	pos, _ := m.Node(node)
	dim := len(pos.Pos)
	origin := make(geom.Vec[R], dim)
	copy(origin, pos.Pos)

	grad := make(geom.Vec[R], dim)
	for i := 0; i < dim; i++ {
		plus := make(geom.Vec[R], dim)
		copy(plus, origin)
		plus[i] += eps
		m.SetNodePos(node, plus)
		qp, _ := accept.LoopCost(m, adapter, tris)

		minus := make(geom.Vec[R], dim)
		copy(minus, origin)
		minus[i] -= eps
		m.SetNodePos(node, minus)
		qm, _ := accept.LoopCost(m, adapter, tris)

		grad[i] = (qp - qm) / (2 * eps)
	}
	m.SetNodePos(node, origin)

	glen := sqrtR(geom.LenSqr(grad))
	if glen == 0 {
		return nil
	}
	dir := make(geom.Vec[R], dim)
	for i := range grad {
		dir[i] = grad[i] / glen * long
	}
	return dir
}
