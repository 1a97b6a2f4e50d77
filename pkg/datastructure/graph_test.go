package datastructure

import (
	"testing"

	"github.com/optirota/optirota/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphAddNodeAndEdge(t *testing.T) {
	g := NewGraph()
	a := g.AddNode(101, 0, 0)
	b := g.AddNode(205, 0, 0.001)
	c := g.AddNode(-3, 0, 0.002)

	require.Equal(t, 3, g.NumberOfVertices())
	require.NoError(t, g.AddEdge(a, b, 111.2, "residential", ""))
	require.NoError(t, g.AddEdge(b, c, 111.2, "", "Rua A"))

	assert.Equal(t, 2, g.NumberOfEdges())
	assert.True(t, g.HasEdge(a, b))
	assert.False(t, g.HasEdge(b, a))

	ab, ok := g.GetEdge(a, b)
	require.True(t, ok)
	assert.Equal(t, pkg.UNKNOWN_STREET_NAME, ab.GetName())
	assert.Equal(t, "residential", ab.GetHighway())

	bc, ok := g.GetEdge(b, c)
	require.True(t, ok)
	assert.Equal(t, pkg.DEFAULT_HIGHWAY, bc.GetHighway())
	assert.Equal(t, "Rua A", bc.GetName())

	idx, ok := g.GetIndex(-3)
	require.True(t, ok)
	assert.Equal(t, c, idx)
	assert.Equal(t, []int64{101, 205, -3}, g.NodeIDs())
}

func TestGraphAddEdgeReplacesExistingPair(t *testing.T) {
	g := NewGraph()
	a := g.AddNode(1, 0, 0)
	b := g.AddNode(2, 0, 1)

	require.NoError(t, g.AddEdge(a, b, 10, "primary", "first"))
	require.NoError(t, g.AddEdge(a, b, 10, "secondary", "second"))

	assert.Equal(t, 1, g.NumberOfEdges())
	assert.Equal(t, 1, g.GetOutDegree(a))
	e, _ := g.GetEdge(a, b)
	assert.Equal(t, "second", e.GetName())
}

func TestGraphAddEdgeRejectsInvalidInput(t *testing.T) {
	g := NewGraph()
	a := g.AddNode(1, 0, 0)

	testCases := []struct {
		name   string
		tail   Index
		head   Index
		weight float64
		want   error
	}{
		{name: "unknown head", tail: a, head: 7, weight: 1, want: ErrVertexNotFound},
		{name: "negative weight", tail: a, head: a, weight: -1, want: ErrInvalidWeight},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			err := g.AddEdge(tt.tail, tt.head, tt.weight, "", "")
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 0, g.NumberOfEdges())
		})
	}
}

func TestGraphAddNodeTwiceKeepsIndex(t *testing.T) {
	g := NewGraph()
	first := g.AddNode(9, 1, 1)
	second := g.AddNode(9, 2, 2)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, g.NumberOfVertices())
	lat, lon := g.GetVertexCoordinates(first)
	assert.Equal(t, 2.0, lat)
	assert.Equal(t, 2.0, lon)
}

func TestRunKosarajuAndReachable(t *testing.T) {
	// 0 <-> 1 -> 2 <-> 3, 4 isolated
	g := NewGraph()
	for i := int64(0); i < 5; i++ {
		g.AddNode(i, 0, float64(i))
	}
	require.NoError(t, g.AddEdge(0, 1, 1, "", ""))
	require.NoError(t, g.AddEdge(1, 0, 1, "", ""))
	require.NoError(t, g.AddEdge(1, 2, 1, "", ""))
	require.NoError(t, g.AddEdge(2, 3, 1, "", ""))
	require.NoError(t, g.AddEdge(3, 2, 1, "", ""))

	sccs, n := g.RunKosaraju()
	assert.Equal(t, 3, n)
	assert.Equal(t, sccs[0], sccs[1])
	assert.Equal(t, sccs[2], sccs[3])
	assert.NotEqual(t, sccs[0], sccs[2])
	assert.NotEqual(t, sccs[4], sccs[0])
	assert.NotEqual(t, sccs[4], sccs[2])

	assert.Equal(t, []bool{true, true, true, true, false}, g.Reachable(0))
	assert.Equal(t, []bool{false, false, true, true, false}, g.Reachable(3))
	assert.Equal(t, []bool{false, false, false, false, true}, g.Reachable(4))
}

func TestBoundingBoxAndCenter(t *testing.T) {
	g := NewGraph()
	_, _, _, _, ok := g.BoundingBox()
	assert.False(t, ok)

	g.AddNode(1, -1, 10)
	g.AddNode(2, 3, 12)
	minLat, minLon, maxLat, maxLon, ok := g.BoundingBox()
	require.True(t, ok)
	assert.Equal(t, []float64{-1, 10, 3, 12}, []float64{minLat, minLon, maxLat, maxLon})

	lat, lon := g.Center()
	assert.Equal(t, 1.0, lat)
	assert.Equal(t, 11.0, lon)
}
