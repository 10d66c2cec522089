package meshcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halvardeng/meshopt/geom"
)

func twoTriMesh(t *testing.T) (*Mesh[float64], NodeID, NodeID, NodeID, NodeID, TriID, TriID) {
	m := New[float64](2)
	a, err := m.AddNode(geom.Vec[float64]{0, 0})
	require.NoError(t, err)
	b, err := m.AddNode(geom.Vec[float64]{1, 0})
	require.NoError(t, err)
	c, err := m.AddNode(geom.Vec[float64]{0.5, 1})
	require.NoError(t, err)
	d, err := m.AddNode(geom.Vec[float64]{0.5, -1})
	require.NoError(t, err)
	t1, err := m.AddTriangle(a, b, c)
	require.NoError(t, err)
	t2, err := m.AddTriangle(b, a, d)
	require.NoError(t, err)
	return m, a, b, c, d, t1, t2
}

func TestAddTriangle_Incidence(t *testing.T) {
	m, a, b, _, _, t1, t2 := twoTriMesh(t)

	shared, ok := m.EdgeByNodes(a, b)
	require.True(t, ok)
	incident := m.EdgeTri3(shared)
	assert.ElementsMatch(t, []TriID{t1, t2}, incident)

	assert.ElementsMatch(t, []TriID{t1, t2}, m.NodeTri3(a))
	assert.ElementsMatch(t, []TriID{t1, t2}, m.NodeTri3(b))
}

func TestAddTriangle_Degenerate(t *testing.T) {
	m := New[float64](2)
	a, _ := m.AddNode(geom.Vec[float64]{0, 0})
	b, _ := m.AddNode(geom.Vec[float64]{1, 0})
	_, err := m.AddTriangle(a, a, b)
	assert.ErrorIs(t, err, ErrDegenerateTriangle)
}

func TestDeleteTriangle_DropsEdgeIncidence(t *testing.T) {
	m, a, b, _, _, t1, t2 := twoTriMesh(t)
	shared, _ := m.EdgeByNodes(a, b)

	m.DeleteTriangle(t1)
	assert.Equal(t, []TriID{t2}, m.EdgeTri3(shared))
	assert.Equal(t, []TriID{t2}, m.NodeTri3(a))
}

func TestOtherTriAcross(t *testing.T) {
	m, a, b, _, _, t1, t2 := twoTriMesh(t)
	shared, _ := m.EdgeByNodes(a, b)

	other, ok := m.OtherTriAcross(shared, t1)
	require.True(t, ok)
	assert.Equal(t, t2, other)
}

func TestIsBoundary(t *testing.T) {
	m, a, b, c, _, _, _ := twoTriMesh(t)
	shared, _ := m.EdgeByNodes(a, b)
	outer, _ := m.EdgeByNodes(a, c)

	assert.False(t, m.IsBoundary(shared))
	assert.True(t, m.IsBoundary(outer))
}

func TestFrozenVsDeleted(t *testing.T) {
	assert.True(t, IsFrozen(Frozen))
	assert.False(t, IsDeleted(Frozen))
	assert.True(t, IsLive(Frozen))

	assert.True(t, IsDeleted(Deleted))
	assert.False(t, IsFrozen(Deleted))
	assert.False(t, IsLive(Deleted))

	assert.True(t, IsLive(0))
	assert.True(t, IsLive(42))
}

func TestCheckInvariants_CleanMesh(t *testing.T) {
	m, _, _, _, _, _, _ := twoTriMesh(t)
	assert.NoError(t, m.CheckInvariants())
}

func TestCheckInvariants_CatchesRepeatedNode(t *testing.T) {
	m := New[float64](2)
	a, _ := m.AddNode(geom.Vec[float64]{0, 0})
	b, _ := m.AddNode(geom.Vec[float64]{1, 0})
	m.tris = append(m.tris, Triangle{Nodes: [3]NodeID{a, a, b}, Mark: 0})
	assert.Error(t, m.CheckInvariants())
}

func TestReplaceTriangle_FlipsDiagonal(t *testing.T) {
	m, a, b, c, d, t1, t2 := twoTriMesh(t)

	require.NoError(t, m.ReplaceTriangle(t1, c, d, a))
	require.NoError(t, m.ReplaceTriangle(t2, c, b, d))

	newDiag, ok := m.EdgeByNodes(c, d)
	require.True(t, ok)
	assert.ElementsMatch(t, []TriID{t1, t2}, m.EdgeTri3(newDiag))

	oldDiag, ok := m.EdgeByNodes(a, b)
	require.True(t, ok)
	assert.Empty(t, m.EdgeTri3(oldDiag))
}
