package spatialindex

import (
	"testing"

	"github.com/optirota/optirota/pkg/datastructure"
	"github.com/optirota/optirota/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// streetGraph an L-shaped street A(1)-B(2)-C(3) near the equator, A-B two-way and B->C oneway.
func streetGraph(t *testing.T) *datastructure.Graph {
	g := datastructure.NewGraph()
	a := g.AddNode(1, 0, 0)
	b := g.AddNode(2, 0, 0.001)
	c := g.AddNode(3, 0.001, 0.001)
	g.AddNode(4, 0.5, 0.5)
	require.NoError(t, g.AddEdge(a, b, 111.2, "residential", ""))
	require.NoError(t, g.AddEdge(b, a, 111.2, "residential", ""))
	require.NoError(t, g.AddEdge(b, c, 111.2, "service", ""))
	return g
}

func buildIndex(t *testing.T) *Rtree {
	rt := NewRtree()
	rt.Build(streetGraph(t), 0.01, zap.NewNop())
	return rt
}

func TestBuildIndexesTwoWayRoadOnce(t *testing.T) {
	rt := buildIndex(t)
	assert.Equal(t, 2, rt.Len())
}

func TestSearchWithinRadius(t *testing.T) {
	rt := buildIndex(t)

	near := rt.SearchWithinRadius(0, 0.0002, 0.02)
	require.Len(t, near, 1)
	assert.Equal(t, datastructure.Index(0), near[0].GetTail())
	assert.Equal(t, datastructure.Index(1), near[0].GetHead())

	assert.Empty(t, rt.SearchWithinRadius(0.3, 0.3, 0.05))
}

func TestSnapToNearestNode(t *testing.T) {
	rt := buildIndex(t)

	testCases := []struct {
		name     string
		lat, lon float64
		wantNode int64
	}{
		{name: "close to A on the A-B street", lat: 0.00005, lon: 0.0002, wantNode: 1},
		{name: "close to B on the A-B street", lat: -0.00005, lon: 0.0008, wantNode: 2},
		{name: "next to the B-C street, nearer C", lat: 0.0008, lon: 0.00105, wantNode: 3},
		{name: "exactly on C", lat: 0.001, lon: 0.001, wantNode: 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := rt.SnapToNearestNode(tc.lat, tc.lon, 0.05, 2)
			require.NoError(t, err)
			assert.Equal(t, tc.wantNode, res.NodeID)
			assert.LessOrEqual(t, res.DistanceToRoad, res.DistanceToNode+1e-6)
		})
	}
}

func TestSnapExpandsRadius(t *testing.T) {
	rt := buildIndex(t)

	// ~1.1 km east of B, outside the first radius
	res, err := rt.SnapToNearestNode(0, 0.011, 0.05, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.NodeID)
	assert.InDelta(t, 1112, res.DistanceToNode, 5)
}

func TestSnapTooFar(t *testing.T) {
	rt := buildIndex(t)

	_, err := rt.SnapToNearestNode(0.3, 0.3, 0.05, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoNearbyRoad)
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestSnapEmptyIndex(t *testing.T) {
	_, err := NewRtree().SnapToNearestNode(0, 0, 0.05, 2)
	assert.ErrorIs(t, err, ErrNoNearbyRoad)
}
