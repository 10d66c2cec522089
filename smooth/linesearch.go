// File: linesearch.go
// Role: the bounded, halving line search shared by both displacement
// generators, plus the 3D normal-flip safeguard (2D meshes have no
// independent normal to test; see DESIGN.md).
package smooth

import (
	"math"

	"github.com/halvardeng/meshopt/accept"
	"github.com/halvardeng/meshopt/geom"
	"github.com/halvardeng/meshopt/meshcore"
	"github.com/halvardeng/meshopt/predicate"
)

// maxLineSearchTrials bounds the halving loop: six trials run from
// twice dir's length down to 1/16 of it, well past the point a rejected
// trial is worth retrying at finer resolution.
const maxLineSearchTrials = 6

func sqrtR[R geom.Real](x R) R {
	return R(math.Sqrt(float64(x)))
}

// lineSearch tries to move node from origin along dir, starting at
// twice dir's own length and halving on rejection, committing the
// first trial position p for which accept.MoveOkay(costs0, costs(p))
// holds. tris is node's incident-triangle neighborhood (fixed for the
// whole search: the mesh's connectivity does not change during a
// smoothing move). Restores origin and returns false if every trial is
// rejected, or if dir is too short relative to long (the node's target
// edge length) to matter.
func lineSearch[R geom.Real](
	m *meshcore.Mesh[R],
	adapter *predicate.Adapter[R],
	node meshcore.NodeID,
	origin geom.Vec[R],
	dir geom.Vec[R],
	long R,
	tris []meshcore.TriID,
	costs0 []R,
	params accept.Params[R],
) bool {
	llen := sqrtR(adapter.Lsqr(dir))
	if llen <= long*(params.QTol/10) {
		return false
	}

	unit := make(geom.Vec[R], len(dir))
	for i := range dir {
		unit[i] = dir[i] / llen
	}

	preNormals := captureNormals(m, adapter, tris)

	scal := 2 * llen
	for trial := 0; trial < maxLineSearchTrials; trial++ {
		trialPos := make(geom.Vec[R], len(origin))
		for i := range origin {
			trialPos[i] = origin[i] + unit[i]*scal
		}
		trialPos = adapter.Proj(origin, trialPos)
		m.SetNodePos(node, trialPos)

		if adapter.Dim == 3 && normalsFlipped(m, adapter, tris, preNormals) {
			scal /= 2
			continue
		}

		_, costs1 := accept.LoopCost(m, adapter, tris)
		if accept.MoveOkay(costs0, costs1, params) {
			return true
		}
		scal /= 2
	}

	m.SetNodePos(node, origin)
	return false
}

// captureNormals snapshots each triangle's current outward normal,
// evaluated before a trial displacement, so normalsFlipped can detect a
// sign reversal afterwards.
func captureNormals[R geom.Real](m *meshcore.Mesh[R], adapter *predicate.Adapter[R], tris []meshcore.TriID) []geom.Vec[R] {
	out := make([]geom.Vec[R], len(tris))
	for i, tid := range tris {
		out[i] = adapter.Normal(m, tid)
	}
	return out
}

// normalsFlipped reports whether any triangle in tris now has a normal
// pointing against its pre-move snapshot, i.e. the move folded the
// neighborhood over on itself.
func normalsFlipped[R geom.Real](m *meshcore.Mesh[R], adapter *predicate.Adapter[R], tris []meshcore.TriID, before []geom.Vec[R]) bool {
	for i, tid := range tris {
		after := adapter.Normal(m, tid)
		if geom.Dot(before[i], after) < 0 {
			return true
		}
	}
	return false
}
