// File: predicate.go
// Role: the predicate adapter: Cost/Lsqr/Proj bound to a fixed
//       embedding dimension and to injected geometry/size oracles.
package predicate

import (
	"errors"

	"github.com/halvardeng/meshopt/geom"
	"github.com/halvardeng/meshopt/meshcore"
)

// ErrNilOracle is returned by New when a required oracle is nil: a
// programming error, not part of the per-move contract.
var ErrNilOracle = errors.New("predicate: oracle must not be nil")

// GeomOracle is the borrowed, read-only domain-geometry collaborator:
// closest-point projection onto the constraint surface. origin
// disambiguates multi-sheeted surfaces near point.
type GeomOracle[R geom.Real] interface {
	Proj(origin, point geom.Vec[R]) geom.Vec[R]
}

// SizeOracle is the borrowed, read-only size-field collaborator:
// target edge length at a point.
type SizeOracle[R geom.Real] interface {
	Eval(point geom.Vec[R]) R
}

// IdentityGeom is a GeomOracle that performs no projection: the
// identity, for unconstrained (non-surface) meshes.
type IdentityGeom[R geom.Real] struct{}

// Proj returns point unchanged.
func (IdentityGeom[R]) Proj(_ geom.Vec[R], point geom.Vec[R]) geom.Vec[R] { return point }

// ConstantSize is a SizeOracle returning the same target length
// everywhere. Useful for uniform-size tests and fixtures.
type ConstantSize[R geom.Real] struct{ H R }

// Eval returns the constant size regardless of point.
func (c ConstantSize[R]) Eval(_ geom.Vec[R]) R { return c.H }

// Adapter binds geom's formulas to a mesh's embedding dimension and to
// a (Geom, Size) oracle pair. It never mutates the mesh; it only reads
// node positions through the *meshcore.Mesh passed to Cost.
type Adapter[R geom.Real] struct {
	Dim  int
	Geom GeomOracle[R]
	Size SizeOracle[R]
}

// New validates the oracle pair and returns a ready Adapter.
func New[R geom.Real](dim int, g GeomOracle[R], s SizeOracle[R]) (*Adapter[R], error) {
	if g == nil || s == nil {
		return nil, ErrNilOracle
	}
	return &Adapter[R]{Dim: dim, Geom: g, Size: s}, nil
}

// Cost returns the signed quality score of triangle tid: the
// optimization objective, range (-inf, 1], 1 = ideal. Dispatches on
// the adapter's fixed dimension, chosen once at construction.
func (a *Adapter[R]) Cost(m *meshcore.Mesh[R], tid meshcore.TriID) R {
	p1, p2, p3 := m.TriPositions(tid)
	return a.CostPoints(p1, p2, p3)
}

// Lsqr returns the squared Euclidean length of a displacement in the
// adapter's working dimension.
func (a *Adapter[R]) Lsqr(v geom.Vec[R]) R {
	return geom.LenSqr(v)
}

// CostPoints returns the same signed quality score as Cost, but for a
// candidate triangle not (yet) registered in any Mesh — used by topo's
// zip/divide to price a replacement triangle before committing it.
func (a *Adapter[R]) CostPoints(p1, p2, p3 geom.Vec[R]) R {
	if a.Dim == 2 {
		return geom.TriQuality2D(p1, p2, p3)
	}
	return geom.TriQuality3D(p1, p2, p3)
}

// Proj projects point onto the geometry oracle's constraint surface,
// using origin to disambiguate multi-sheeted surfaces.
func (a *Adapter[R]) Proj(origin, point geom.Vec[R]) geom.Vec[R] {
	return a.Geom.Proj(origin, point)
}

// Normal returns the triangle normal used by smooth's post-projection
// normal-flip check. For 2-D meshes it returns nil: there is no
// independent out-of-plane normal to test.
func (a *Adapter[R]) Normal(m *meshcore.Mesh[R], tid meshcore.TriID) geom.Vec[R] {
	if a.Dim != 3 {
		return nil
	}
	p1, p2, p3 := m.TriPositions(tid)
	return geom.TriNorm3D(p1, p2, p3)
}
