// Package meshopt is a surface-mesh quality optimizer operating on 2-D
// simplicial complexes (triangle meshes) embedded in R^2 or R^3.
//
// Given an input triangulation, a geometric domain oracle, and a target
// element-size field, the optimizer iteratively improves mesh quality by
// combining four local operations under a hill-climbing acceptance rule
// that only admits moves strictly improving a per-neighborhood quality
// vector:
//
//	meshcore    — the mesh container: node/edge/triangle arrays, marker
//	              generations, and incidence queries.
//	geom        — triangle area/normal/quality primitives, generic over
//	              the embedding scalar type.
//	predicate   — binds geom to the caller's geometry/size oracles and
//	              exposes Cost/Lsqr/Proj to the mutators.
//	accept      — the acceptance predicate (MoveOkay) and the
//	              neighborhood cost vector (LoopCost).
//	orient      — a BFS flood-fill that normalizes triangle winding so
//	              every live triangle has non-negative cost.
//	smooth      — CVT and quality-gradient node smoothing.
//	flip        — the 2-2 edge flip and its wave propagation.
//	topo        — zip/divide: edge collapse and edge split.
//	iter        — the driver: outer iteration, options, log sink, and
//	              termination.
//	meshfixture — deterministic test-mesh constructors.
//
// The core is single-threaded and deterministic given a fixed RNG seed.
// It never mutates its geometry or size oracles, and it never returns an
// error for a rejected local move — rejection is the default path, not
// a failure.
package meshopt
