package geom

import "math"

// Real is the scalar constraint every geometry primitive is generic
// over: the minimal arithmetic capability set {add, subtract,
// multiply, divide, compare, sqrt} is exactly what float32/float64
// provide.
type Real interface {
	~float32 | ~float64
}

// Vec is a point or displacement in R^2 or R^3, stored as a flat slice
// so 2-D and 3-D callers share the same type: 2-D code simply never
// reads index 2. Mirrors how meshcore stores node coordinates.
type Vec[R Real] []R

// sqrt dispatches to math.Sqrt regardless of the concrete Real type.
// math.Sqrt is float64-only, so this is the one unavoidable conversion
// per call; it keeps every formula below branch-free otherwise.
func sqrt[R Real](x R) R {
	return R(math.Sqrt(float64(x)))
}

// Sub returns a - b component-wise, over a's length. Panics if b is
// shorter than a; callers are expected to pass same-dimension points.
func Sub[R Real](a, b Vec[R]) Vec[R] {
	out := make(Vec[R], len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}

// Dot returns the Euclidean dot product of a and b.
func Dot[R Real](a, b Vec[R]) R {
	var s R
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

// LenSqr returns the squared Euclidean length of v — the "lsqr"
// primitive consumed by predicate.Adapter.
func LenSqr[R Real](v Vec[R]) R {
	return Dot(v, v)
}

// Cross3 returns the 3-D cross product a x b. Both vectors must have
// at least 3 components.
func Cross3[R Real](a, b Vec[R]) Vec[R] {
	return Vec[R]{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Cross2 returns the scalar (z-component) 2-D cross product a x b.
func Cross2[R Real](a, b Vec[R]) R {
	return a[0]*b[1] - a[1]*b[0]
}
