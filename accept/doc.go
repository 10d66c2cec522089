// Package accept implements the optimizer's acceptance predicate
// (MoveOkay) and the neighborhood cost vector it compares (LoopCost).
//
// Every mutator — smooth, flip, topo — proposes a local change, computes
// the affected neighborhood's cost vector before and after, and commits
// only if MoveOkay says so. Nothing in this package mutates a mesh.
package accept
