// Package smooth implements the node smoother. Two displacement
// generators — a centroidal-Voronoi-like average of incident
// circumcenters (always tried) and a numerical quality-gradient ascent
// (tried only when the neighborhood is not yet "good") — are each
// followed by a bounded, halving line search that commits only under
// accept.MoveOkay.
//
// The outer Pass driver sweeps a shuffled working set subpass by
// subpass, expanding through the one-ring of whatever moved;
// deterministic given a fixed *math/rand.Rand seed.
package smooth
