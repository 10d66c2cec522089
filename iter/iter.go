// File: iter.go
// Role: Run, the outer driver: initialization plus the per-iteration
// smooth -> zip/divide -> flip loop.
package iter

import (
	"errors"
	"fmt"
	"time"

	"github.com/halvardeng/meshopt/accept"
	"github.com/halvardeng/meshopt/flip"
	"github.com/halvardeng/meshopt/geom"
	"github.com/halvardeng/meshopt/meshcore"
	"github.com/halvardeng/meshopt/orient"
	"github.com/halvardeng/meshopt/predicate"
	"github.com/halvardeng/meshopt/smooth"
	"github.com/halvardeng/meshopt/topo"
)

// ErrNilMesh is returned if a nil mesh pointer is passed to Run.
var ErrNilMesh = errors.New("iter: mesh is nil")

// ErrNilAdapter is returned if a nil predicate adapter is passed to Run.
var ErrNilAdapter = errors.New("iter: adapter is nil")

// Result summarizes a completed Run, beyond the mesh it mutated in
// place (the mesh itself is the primary output).
type Result struct {
	// RanIterations is how many of opts' requested iterations actually
	// executed before either the budget was exhausted or the mesh
	// converged (every counter zero, or no nodes left to move).
	RanIterations int
	// Converged is true when the loop stopped because an iteration
	// moved, flipped, zipped, and divided nothing, or left smoothing
	// with an empty node set.
	Converged bool
}

// markBoundaries freezes every boundary edge and its two endpoints.
// An edge is a boundary when meshcore already calls it one (flagged
// Self, or not shared by exactly two live triangles); this just
// promotes that fact into the marker each mutator checks.
func markBoundaries[R geom.Real](m *meshcore.Mesh[R]) {
	for _, eid := range m.LiveEdgeIDs() {
		if !m.IsBoundary(eid) {
			continue
		}
		m.SetEdgeMark(eid, meshcore.Frozen)
		e, err := m.Edge(eid)
		if err != nil {
			continue
		}
		m.SetNodeMark(e.A, meshcore.Frozen)
		m.SetNodeMark(e.B, meshcore.Frozen)
	}
}

// Run executes opts.iterations passes of the optimizer over m,
// following the phase order smooth -> zip/divide -> flip every
// iteration. Single-threaded, reproducible given opts' seed.
// Initialization (boundary freezing, FlipSign) runs once, before the
// first iteration.
//
// Returns ErrNilMesh or ErrNilAdapter for invalid input. Rejected
// local moves are never errors: rejection is the hill climb's default
// path, and no error surfaces from inside the iteration loop.
func Run[R geom.Real](m *meshcore.Mesh[R], adapter *predicate.Adapter[R], opts Options[R]) (Result, error) {
	if m == nil {
		return Result{}, ErrNilMesh
	}
	if adapter == nil {
		return Result{}, ErrNilAdapter
	}

	markBoundaries(m)
	orient.FlipSign(m, adapter)

	cache := smooth.NewCache[R]()
	topoOpts := topo.Options{Divide: opts.div, Zip: opts.zip}

	qmax := opts.qlim
	qmin := qmax * R(0.75)
	qinc := (qmax - qmin) / R(5)

	result := Result{}

	for iter := 1; iter <= opts.iterations; iter++ {
		good := qmin + R(iter)*qinc
		if good > qmax {
			good = qmax
		}
		params := accept.Params[R]{Good: good, QTol: opts.qtol}

		var smoothDur, topoDur, flipDur time.Duration

		start := time.Now()
		nmov, nset := smooth.Pass(m, adapter, cache, opts.rng, int32(iter), params)
		smoothDur = time.Since(start)

		nzip, ndiv := 0, 0
		if opts.zip || opts.div {
			start = time.Now()
			nzip, ndiv = topo.Pass(m, adapter, cache, opts.rng, int32(iter), topoOpts, params)
			topoDur = time.Since(start)
		}

		start = time.Now()
		nflp := flip.Run(m, adapter, nset, opts.rng, params)
		flipDur = time.Since(start)

		opts.log.WriteLine(formatLine(nmov, nflp, nzip, ndiv))
		if opts.verbosity >= 2 {
			opts.log.WriteLine(fmt.Sprintf("# cpu iter=%d smooth=%s topo=%s flip=%s",
				iter, smoothDur, topoDur, flipDur))
		}

		result.RanIterations = iter
		if len(nset) == 0 || (nmov == 0 && nflp == 0 && nzip == 0 && ndiv == 0) {
			result.Converged = true
			break
		}
	}

	return result, nil
}
