// File: circumcenter.go
// Role: the barycentric circumcenter formula shared by the CVT
// displacement generator. Works unchanged in 2D or 3D since it only
// combines the three corner positions by scalar weights.
package smooth

import (
	"github.com/halvardeng/meshopt/geom"
)

// circumcenter returns the circumcenter of triangle (a, b, c) using the
// barycentric-coordinate formula:
//
//	a2 = |b-c|^2, b2 = |a-c|^2, c2 = |a-b|^2
//	wa = a2*(b2+c2-a2), wb = b2*(c2+a2-b2), wc = c2*(a2+b2-c2)
//	center = (wa*a + wb*b + wc*c) / (wa+wb+wc)
//
// ok is false when the three points are collinear (or coincident), in
// which case wa+wb+wc is zero and center is meaningless.
func circumcenter[R geom.Real](a, b, c geom.Vec[R]) (center geom.Vec[R], ok bool) {
	a2 := geom.LenSqr(geom.Sub(b, c))
	b2 := geom.LenSqr(geom.Sub(a, c))
	c2 := geom.LenSqr(geom.Sub(a, b))

	wa := a2 * (b2 + c2 - a2)
	wb := b2 * (c2 + a2 - b2)
	wc := c2 * (a2 + b2 - c2)

	wsum := wa + wb + wc
	if wsum == 0 {
		return nil, false
	}

	dim := len(a)
	center = make(geom.Vec[R], dim)
	for i := 0; i < dim; i++ {
		center[i] = (wa*a[i] + wb*b[i] + wc*c[i]) / wsum
	}
	return center, true
}
