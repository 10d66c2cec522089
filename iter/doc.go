// Package iter is the outer per-iteration driver tying orient, smooth,
// topo, and flip together behind a functional-options configuration.
// Option constructors validate and panic on programmer error; Run
// itself never panics, rejecting nil inputs with sentinel errors
// (ErrNilMesh, ErrNilAdapter) checked via errors.Is.
package iter
