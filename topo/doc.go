// Package topo implements the edge-split (divide) and edge-collapse
// (zip) mutators, each degree-aware around a node's own incident-edge
// loop.
//
// VisitNode tries a node's incident edges in one of two directions
// (coin flip, same *math/rand.Rand injection point as flip and smooth
// use), stopping at the first edge that commits a split or a collapse.
// A candidate replacement is priced with predicate.Adapter.CostPoints
// before any mesh mutation, so nothing is committed that accept.MoveOkay
// (or its degree-relaxed fallback) would reject.
package topo
