package geom

import "math"

// fourSqrt3 returns 4*sqrt(3), the normalizing constant that makes
// TriQuality2D/TriQuality3D equal to 1 for an equilateral triangle.
func fourSqrt3[R Real]() R {
	return R(4 * math.Sqrt(3))
}

// TriArea2D returns the signed area of the triangle (p1,p2,p3) in the
// plane: area = 1/2 * (p2-p1) x (p3-p1). The sign encodes winding and
// is what orient.FlipSign normalizes to non-negative.
func TriArea2D[R Real](p1, p2, p3 Vec[R]) R {
	e12 := Sub(p2, p1)
	e13 := Sub(p3, p1)
	return Cross2(e12, e13) / 2
}

// TriArea3D returns the unsigned area of the triangle (p1,p2,p3) in
// R^3: area = 1/2 * |(p2-p1) x (p3-p1)|.
func TriArea3D[R Real](p1, p2, p3 Vec[R]) R {
	n := TriNorm3D(p1, p2, p3)
	return sqrt(LenSqr(n)) / 2
}

// TriNorm3D returns the unnormalized cross product (p2-p1) x (p3-p1):
// a vector normal to the triangle's plane whose length is twice the
// triangle's area.
func TriNorm3D[R Real](p1, p2, p3 Vec[R]) Vec[R] {
	return Cross3(Sub(p2, p1), Sub(p3, p1))
}

// TriQuality2D returns the shape quality of the 2-D triangle
// (p1,p2,p3): 4*sqrt(3)*area / (|e12|^2+|e23|^2+|e31|^2). 1 for an
// equilateral triangle, non-positive for a degenerate or inverted one.
func TriQuality2D[R Real](p1, p2, p3 Vec[R]) R {
	area := TriArea2D(p1, p2, p3)
	return qualityFromAreaAndEdges(area, p1, p2, p3)
}

// TriQuality3D returns the shape quality of the 3-D triangle
// (p1,p2,p3), using the unsigned area: 4*sqrt(3)*area / sum(e_i^2).
func TriQuality3D[R Real](p1, p2, p3 Vec[R]) R {
	area := TriArea3D(p1, p2, p3)
	return qualityFromAreaAndEdges(area, p1, p2, p3)
}

// qualityFromAreaAndEdges shares the edge-length-squared denominator
// between the 2-D and 3-D quality formulas; only the area numerator
// differs (signed vs. unsigned), and TriQuality2D passes a signed area
// through unchanged so an inverted triangle yields a negative quality.
func qualityFromAreaAndEdges[R Real](area R, p1, p2, p3 Vec[R]) R {
	e12 := LenSqr(Sub(p2, p1))
	e23 := LenSqr(Sub(p3, p2))
	e31 := LenSqr(Sub(p1, p3))
	denom := e12 + e23 + e31
	if denom == 0 {
		return 0
	}
	return fourSqrt3[R]() * area / denom
}
