// File: accept.go
// Role: MoveOkay, the acceptance predicate, and LoopCost, the
//       neighborhood cost vector it compares.
package accept

import (
	"github.com/halvardeng/meshopt/geom"
	"github.com/halvardeng/meshopt/meshcore"
	"github.com/halvardeng/meshopt/predicate"
)

// DefaultGood is the default "already good enough" quality threshold
// used by the secondary acceptance rule.
const DefaultGood = 0.95

// DefaultQTol is the default acceptance tolerance.
const DefaultQTol = 1e-4

// Params bundles the two tunables MoveOkay needs. Threaded down from
// iter.Options rather than hardcoded, so the driver can ramp the
// "good" target up across iterations.
type Params[R geom.Real] struct {
	Good R
	QTol R
}

// DefaultParams returns {Good: 0.95, QTol: 1e-4} converted to R.
func DefaultParams[R geom.Real]() Params[R] {
	return Params[R]{Good: R(DefaultGood), QTol: R(DefaultQTol)}
}

// LoopCost returns (min, costs) over the given triangle set: the
// per-triangle cost vector and its minimum. An empty set returns
// (0, nil); callers must treat that as "no neighborhood" and leave
// the entity untouched.
func LoopCost[R geom.Real](m *meshcore.Mesh[R], adapter *predicate.Adapter[R], tris []meshcore.TriID) (R, []R) {
	if len(tris) == 0 {
		var zero R
		return zero, nil
	}
	costs := make([]R, len(tris))
	best := adapter.Cost(m, tris[0])
	costs[0] = best
	for i := 1; i < len(tris); i++ {
		c := adapter.Cost(m, tris[i])
		costs[i] = c
		if c < best {
			best = c
		}
	}
	return best, costs
}

func mean[R geom.Real](v []R) R {
	var sum R
	for _, c := range v {
		sum += c
	}
	return sum / R(len(v))
}

// MoveOkay decides whether the neighborhood quality vector cdst
// (after a proposed move) strictly improves over csrc (before):
//
//  1. m0src = min(csrc), m0dst = min(cdst).
//  2. tol = qtol * m0src.
//  3. Accept if m0dst > m0src + tol.
//  4. Else, if m0dst >= good: accept if mean(cdst) > mean(csrc) + tol/len(cdst).
//  5. Else reject.
//
// The worst element leads the decision; the secondary mean rule keeps
// the hill climb from stalling once the worst element is acceptable.
// An empty csrc or cdst is rejected immediately.
func MoveOkay[R geom.Real](csrc, cdst []R, p Params[R]) bool {
	if len(csrc) == 0 || len(cdst) == 0 {
		return false
	}
	m0src := minOf(csrc)
	m0dst := minOf(cdst)
	tol := p.QTol * m0src

	if m0dst > m0src+tol {
		return true
	}
	if m0dst >= p.Good {
		muSrc := mean(csrc)
		muDst := mean(cdst)
		return muDst > muSrc+tol/R(len(cdst))
	}
	return false
}

func minOf[R geom.Real](v []R) R {
	m := v[0]
	for _, c := range v[1:] {
		if c < m {
			m = c
		}
	}
	return m
}
