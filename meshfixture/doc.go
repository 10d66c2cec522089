// Package meshfixture builds small, deterministic meshes for tests: a
// regular hexagon fan, a squashed triangle pair, a dragged-vertex fan,
// and interior edges with controlled vertex degree.
//
// Constructors are small, named, and validated, panicking on a
// nonsensical size rather than returning an error: a caller passing a
// negative ring count is a programming error, not a runtime condition
// to recover from.
package meshfixture
