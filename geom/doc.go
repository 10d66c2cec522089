// Package geom provides the pure geometry primitives the optimizer
// builds its quality predicate on: triangle area and normal, tetrahedron
// volume, and the triangle/tetrahedron quality formulas.
//
// Every function is generic over Real, a minimal floating-point
// constraint, so callers can run the optimizer in float32 (memory-bound
// meshes) or float64 (precision-bound meshes) without duplicating code.
// All functions are inline-able and deterministic, and branch-free
// apart from the zero-denominator guard in the quality formulas.
package geom
