package flip

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halvardeng/meshopt/accept"
	"github.com/halvardeng/meshopt/meshcore"
	"github.com/halvardeng/meshopt/meshfixture"
	"github.com/halvardeng/meshopt/predicate"
)

func newAdapter(t *testing.T, dim int) *predicate.Adapter[float64] {
	t.Helper()
	a, err := predicate.New[float64](dim, predicate.IdentityGeom[float64]{}, predicate.ConstantSize[float64]{H: 1})
	require.NoError(t, err)
	return a
}

// The heads branch is the canonical ascending order; the tails branch
// tries epos=1 twice and never epos=0 (deliberately preserved, see
// DESIGN.md).
func TestCoinOrder_HeadsIsCanonical(t *testing.T) {
	assert.Equal(t, [3]int{0, 1, 2}, coinOrder(0))
}

func TestCoinOrder_TailsRepeatsEposOne(t *testing.T) {
	order := coinOrder(1)
	assert.Equal(t, [3]int{2, 1, 1}, order)
	assert.NotContains(t, order[:], 0)
}

func TestFlipT2T2_RejectsBoundaryEdge(t *testing.T) {
	m := meshfixture.SquashedPair()
	adapter := newAdapter(t, 2)

	p0 := meshcore.NodeID(0)
	top := meshcore.NodeID(2)
	eid, ok := m.EdgeByNodes(p0, top)
	require.True(t, ok)
	require.True(t, m.IsBoundary(eid))

	committed, touched := flipT2T2(m, adapter, eid, accept.DefaultParams[float64]())
	assert.False(t, committed)
	assert.Nil(t, touched)
}

// The squashed pair's shared edge (p0,p1) is the long diagonal of a
// thin quad; the other diagonal (top,bot) is short. Flipping to it
// roughly triples quality (sum of squared edge lengths drops from
// ~1.50 to ~0.50 while area is conserved), so the flip must commit.
func TestFlipT2T2_SquashedPairImproves(t *testing.T) {
	m := meshfixture.SquashedPair()
	adapter := newAdapter(t, 2)

	p0 := meshcore.NodeID(0)
	p1 := meshcore.NodeID(1)
	eid, ok := m.EdgeByNodes(p0, p1)
	require.True(t, ok)
	require.False(t, m.IsBoundary(eid))

	committed, touched := flipT2T2(m, adapter, eid, accept.DefaultParams[float64]())
	require.True(t, committed)
	require.Len(t, touched, 2)

	require.NoError(t, m.CheckInvariants())

	top := meshcore.NodeID(2)
	bot := meshcore.NodeID(3)
	_, ok = m.EdgeByNodes(top, bot)
	assert.True(t, ok, "the new diagonal top-bot must now be an edge")

	for _, tid := range touched {
		q := adapter.Cost(m, tid)
		assert.InDelta(t, 0.0692, q, 5e-4)
	}
}

// A regular hexagon's triangles already sit at quality 1, the formula's
// ceiling: no alternative diagonal through a spoke edge can score
// higher, so flipT2T2 must reject every spoke flip.
func TestFlipT2T2_HexagonRejectsEveryFlip(t *testing.T) {
	m := meshfixture.Hexagon()
	adapter := newAdapter(t, 2)
	center := meshcore.NodeID(0)
	ring0 := meshcore.NodeID(1)

	eid, ok := m.EdgeByNodes(center, ring0)
	require.True(t, ok)
	require.False(t, m.IsBoundary(eid))

	committed, _ := flipT2T2(m, adapter, eid, accept.DefaultParams[float64]())
	assert.False(t, committed)
	require.NoError(t, m.CheckInvariants())
}

// The folded pair's flap overlaps its base: the apex-apex diagonal
// would create a triangle wound against the pair's mean normal, so
// the 3-D inversion gate must reject before any mutation. The
// diagonal edge never being registered distinguishes this pre-commit
// rejection from a quality rejection, which speculatively creates and
// then drops that edge.
func TestFlipT2T2_RejectsFoldedPair3D(t *testing.T) {
	m := meshfixture.FoldedPair3D()
	adapter := newAdapter(t, 3)

	a := meshcore.NodeID(0)
	b := meshcore.NodeID(1)
	eid, ok := m.EdgeByNodes(a, b)
	require.True(t, ok)
	require.False(t, m.IsBoundary(eid))

	committed, touched := flipT2T2(m, adapter, eid, accept.DefaultParams[float64]())
	assert.False(t, committed)
	assert.Nil(t, touched)

	_, diagonalExists := m.EdgeByNodes(meshcore.NodeID(2), meshcore.NodeID(3))
	assert.False(t, diagonalExists)
	require.NoError(t, m.CheckInvariants())
}

func TestFlipTria_RejectsDeletedTriangle(t *testing.T) {
	m := meshfixture.SquashedPair()
	adapter := newAdapter(t, 2)
	rng := rand.New(rand.NewSource(1))

	m.DeleteTriangle(0)
	ok, touched := flipTria(m, adapter, 0, rng, accept.DefaultParams[float64]())
	assert.False(t, ok)
	assert.Nil(t, touched)
}

func TestRun_PreservesInvariants(t *testing.T) {
	m := meshfixture.DraggedFan(7, []float64{0.2, 0})
	adapter := newAdapter(t, 2)
	rng := rand.New(rand.NewSource(5))

	nodesBefore := m.NodeCount()
	nflp := Run(m, adapter, m.LiveNodeIDs(), rng, accept.DefaultParams[float64]())

	assert.GreaterOrEqual(t, nflp, 0)
	assert.Equal(t, nodesBefore, m.NodeCount())
	require.NoError(t, m.CheckInvariants())
}

func TestRun_EmptySeedSetDoesNothing(t *testing.T) {
	m := meshfixture.Hexagon()
	adapter := newAdapter(t, 2)
	rng := rand.New(rand.NewSource(9))

	nflp := Run(m, adapter, nil, rng, accept.DefaultParams[float64]())
	assert.Equal(t, 0, nflp)
}
