// Package meshcore is the mesh container the optimizer mutates in
// place: flat, indexable Node/Edge/Triangle arrays plus the per-entity
// generation markers the driver and mutators share.
//
// Entities are never physically reclaimed by this package: deletion is
// "mark < 0", and compaction is an external concern. All
// cross-references (node->edge, node->triangle, edge->triangle) are
// plain integer indices into the container's own slices, never
// pointers — the container owns every entity, callers and mutators
// only borrow indices into it.
//
// meshcore carries no locks: the optimizer is single-threaded per
// mesh.
package meshcore
