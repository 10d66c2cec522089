// Package predicate adapts geom's pure formulas to a chosen embedding
// dimension and to the caller's geometry/size oracles, producing the
// Cost/Lsqr/Proj contract every mutator package is written against.
package predicate
