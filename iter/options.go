// File: options.go
// Role: Options and its functional-option constructors. Constructors
// validate and panic on programmer error; Run itself never panics.
package iter

import (
	"math/rand"

	"github.com/halvardeng/meshopt/geom"
)

// Default tuning values.
const (
	DefaultIterations       = 10
	DefaultQualityTolerance = 1e-4
	DefaultVerbosity        = 1
)

// Options bundles the driver's tunables. Built exclusively through
// NewOptions and its Option arguments; zero value is not meant to be
// used directly.
type Options[R geom.Real] struct {
	iterations int
	qlim       R
	qtol       R
	zip        bool
	div        bool
	verbosity  int
	rng        *rand.Rand
	log        LogSink
}

// Option customizes an Options instance before Run begins.
type Option[R geom.Real] func(*Options[R])

// NewOptions builds an Options from sane defaults (10 iterations,
// qtol=1e-4, zip and div both enabled, verbosity 1, an RNG with the
// fixed seed 1, a discarding log sink) plus the given overrides, applied in order.
func NewOptions[R geom.Real](qlim R, opts ...Option[R]) Options[R] {
	o := Options[R]{
		iterations: DefaultIterations,
		qlim:       qlim,
		qtol:       R(DefaultQualityTolerance),
		zip:        true,
		div:        true,
		verbosity:  DefaultVerbosity,
		rng:        rand.New(rand.NewSource(1)),
		log:        DiscardSink{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithIterations sets the outer iteration count. n == 0 is legal and
// leaves the mesh untouched apart from the one-time initialization
// (boundary freezing and orientation normalization). Panics if n < 0.
func WithIterations[R geom.Real](n int) Option[R] {
	if n < 0 {
		panic("iter: WithIterations(n<0)")
	}
	return func(o *Options[R]) { o.iterations = n }
}

// WithQualityLimit overrides the upper quality target (Qmax) passed to
// NewOptions. Panics if qmax is not in (0, 1].
func WithQualityLimit[R geom.Real](qmax R) Option[R] {
	if qmax <= 0 || qmax > 1 {
		panic("iter: WithQualityLimit(qmax out of (0,1])")
	}
	return func(o *Options[R]) { o.qlim = qmax }
}

// WithQualityTolerance overrides the acceptance tolerance. Panics if
// qtol < 0.
func WithQualityTolerance[R geom.Real](qtol R) Option[R] {
	if qtol < 0 {
		panic("iter: WithQualityTolerance(qtol<0)")
	}
	return func(o *Options[R]) { o.qtol = qtol }
}

// WithZip enables or disables the zip (edge-collapse) operator.
func WithZip[R geom.Real](enabled bool) Option[R] {
	return func(o *Options[R]) { o.zip = enabled }
}

// WithDivide enables or disables the divide (edge-split) operator.
func WithDivide[R geom.Real](enabled bool) Option[R] {
	return func(o *Options[R]) { o.div = enabled }
}

// WithVerbosity sets the log verbosity; >= 2 additionally emits the
// per-phase CPU-time summary.
func WithVerbosity[R geom.Real](v int) Option[R] {
	return func(o *Options[R]) { o.verbosity = v }
}

// WithRand provides an explicit RNG, for tests and reproducible runs.
// Panics on nil.
func WithRand[R geom.Real](r *rand.Rand) Option[R] {
	if r == nil {
		panic("iter: WithRand(nil)")
	}
	return func(o *Options[R]) { o.rng = r }
}

// WithSeed creates a new *rand.Rand from seed; a convenience over
// WithRand for the common case.
func WithSeed[R geom.Real](seed int64) Option[R] {
	return func(o *Options[R]) { o.rng = rand.New(rand.NewSource(seed)) }
}

// WithLogSink overrides the destination for per-iteration log lines.
// Panics on nil; use DiscardSink explicitly to silence output.
func WithLogSink[R geom.Real](sink LogSink) Option[R] {
	if sink == nil {
		panic("iter: WithLogSink(nil)")
	}
	return func(o *Options[R]) { o.log = sink }
}
