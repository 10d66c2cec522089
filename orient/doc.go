// Package orient implements FlipSign: a breadth-first flood-fill over
// the triangle-adjacency graph that normalizes winding so every live
// triangle ends up with non-negative predicate cost.
//
// The traversal is an explicit FIFO queue, a visited set, and a
// dequeue/visit/enqueue-neighbors split, propagating a winding
// decision instead of a distance.
package orient
