package geom

import "math"

// TetraVol3D returns the signed volume of the tetrahedron (p1,p2,p3,p4):
// det/6, positive when p4 lies above the p1-p2-p3 plane in a
// right-handed frame. Out of scope for this core's optimization loop
// (volumetric optimization is a Non-goal), but retained as a primitive
// so a sibling volumetric module can share geom without duplicating it.
func TetraVol3D[R Real](p1, p2, p3, p4 Vec[R]) R {
	e1 := Sub(p2, p1)
	e2 := Sub(p3, p1)
	e3 := Sub(p4, p1)
	// det[e1 e2 e3] via the scalar triple product e1 . (e2 x e3).
	return Dot(e1, Cross3(e2, e3)) / 6
}

// sixSqrt2 returns 6*sqrt(2), the normalizing constant that makes
// TetQuality3D equal to 1 for a regular tetrahedron.
func sixSqrt2[R Real]() R {
	return R(6 * math.Sqrt(2))
}

// TetQuality3D returns the shape quality of the tetrahedron
// (p1,p2,p3,p4): 6*sqrt(2)*vol / L^3, where L^3 is the mean of the six
// squared edge lengths raised to 3/2. 1 for a regular tetrahedron,
// non-positive for a degenerate or inverted one. The volumetric
// counterpart of TriQuality2D/TriQuality3D, kept beside TetraVol3D for
// the same sibling-module reason.
func TetQuality3D[R Real](p1, p2, p3, p4 Vec[R]) R {
	vol := TetraVol3D(p1, p2, p3, p4)
	msel := (LenSqr(Sub(p2, p1)) + LenSqr(Sub(p3, p1)) + LenSqr(Sub(p4, p1)) +
		LenSqr(Sub(p3, p2)) + LenSqr(Sub(p4, p2)) + LenSqr(Sub(p4, p3))) / 6
	if msel == 0 {
		return 0
	}
	cube := msel * sqrt(msel)
	return sixSqrt2[R]() * vol / cube
}
