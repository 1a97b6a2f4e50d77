package usecases

import (
	"context"
	"testing"

	"github.com/goccy/go-json"
	"github.com/optirota/optirota/pkg/analyzer"
	da "github.com/optirota/optirota/pkg/datastructure"
	"github.com/optirota/optirota/pkg/engine/routing"
	"github.com/optirota/optirota/pkg/geo"
	"github.com/optirota/optirota/pkg/spatialindex"
	"github.com/optirota/optirota/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// lineGraph A(1)-B(2)-C(3) two-way plus the isolated D(4).
func lineGraph(t *testing.T) *da.Graph {
	t.Helper()
	g := da.NewGraph()
	g.AddNode(1, 0, 0)
	g.AddNode(2, 0, 0.001)
	g.AddNode(3, 0, 0.002)
	g.AddNode(4, 0.01, 0.01)
	for _, pair := range [][2]int64{{1, 2}, {2, 3}} {
		u, _ := g.GetIndex(pair[0])
		v, _ := g.GetIndex(pair[1])
		uLat, uLon := g.GetVertexCoordinates(u)
		vLat, vLon := g.GetVertexCoordinates(v)
		w := geo.HaversineDistance(uLat, uLon, vLat, vLon)
		require.NoError(t, g.AddEdge(u, v, w, "residential", "Rua Um"))
		require.NoError(t, g.AddEdge(v, u, w, "residential", "Rua Um"))
	}
	return g
}

type countingEngine struct {
	*routing.RoutingEngine
	calls int
}

func (c *countingEngine) ShortestPath(ctx context.Context, algorithm routing.Algorithm, s, t int64) (da.Path, error) {
	c.calls++
	return c.RoutingEngine.ShortestPath(ctx, algorithm, s, t)
}

func newRoutingService(t *testing.T, cacheSize int) (*RoutingService, *countingEngine) {
	t.Helper()
	g := lineGraph(t)
	log := zap.NewNop()
	engine := &countingEngine{RoutingEngine: routing.NewRoutingEngine(g, log)}
	rt := spatialindex.NewRtree()
	rt.Build(g, 0.05, log)
	rs, err := NewRoutingService(log, engine, rt, 0.05, 2.0, cacheSize)
	require.NoError(t, err)
	return rs, engine
}

func TestRoutingServiceShortestPath(t *testing.T) {
	rs, _ := newRoutingService(t, 0)
	want := 2 * geo.HaversineDistance(0, 0, 0, 0.001)

	for _, alg := range []string{"", "dijkstra", "astar", "A*"} {
		t.Run(alg, func(t *testing.T) {
			res, err := rs.ShortestPath(context.Background(), alg, 1, 3)
			require.NoError(t, err)
			assert.Equal(t, []int64{1, 2, 3}, res.Path.Nodes)
			assert.InDelta(t, want, res.Path.Cost, 1e-6)
			assert.Len(t, res.Coordinates, 3)
			assert.NotEmpty(t, res.Polyline)
			assert.Zero(t, res.OriginSnap)
		})
	}

	res, err := rs.ShortestPath(context.Background(), "", 1, 3)
	require.NoError(t, err)
	assert.Equal(t, "dijkstra", res.Algorithm)
}

func TestRoutingServiceErrors(t *testing.T) {
	rs, _ := newRoutingService(t, 0)

	_, err := rs.ShortestPath(context.Background(), "bfs", 1, 3)
	assert.ErrorIs(t, err, routing.ErrUnknownAlgorithm)
	assert.ErrorIs(t, err, util.ErrBadParamInput)

	_, err = rs.ShortestPath(context.Background(), "astar", 1, 4)
	assert.ErrorIs(t, err, routing.ErrNoPathFound)

	_, err = rs.ShortestPathByCoordinates(context.Background(), "", 45, 45, 0, 0)
	assert.ErrorIs(t, err, spatialindex.ErrNoNearbyRoad)
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestRoutingServiceCache(t *testing.T) {
	rs, engine := newRoutingService(t, 16)

	first, err := rs.ShortestPath(context.Background(), "dijkstra", 1, 3)
	require.NoError(t, err)
	second, err := rs.ShortestPath(context.Background(), "dijkstra", 1, 3)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, engine.calls)

	_, err = rs.ShortestPath(context.Background(), "astar", 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, engine.calls)

	// failures are not cached
	_, _ = rs.ShortestPath(context.Background(), "dijkstra", 1, 4)
	_, _ = rs.ShortestPath(context.Background(), "dijkstra", 1, 4)
	assert.Equal(t, 4, engine.calls)
}

func TestRoutingServiceByCoordinates(t *testing.T) {
	rs, _ := newRoutingService(t, 0)

	// slightly north of A and C
	res, err := rs.ShortestPathByCoordinates(context.Background(), "astar", 0.0001, 0.00001, 0.0001, 0.0019)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, res.Path.Nodes)
	assert.Greater(t, res.OriginSnap, 0.0)
	assert.Greater(t, res.DestinationSnap, 0.0)
	assert.Equal(t, "astar", res.Algorithm)
}

func TestAnalyzeService(t *testing.T) {
	g := lineGraph(t)
	log := zap.NewNop()
	as := NewAnalyzeService(log, routing.NewRoutingEngine(g, log), 2, 10)

	progressCalls := 0
	res, err := as.Analyze(context.Background(), AnalyzeParams{Algorithm: "astar", Details: true},
		func(done, total int, _ *analyzer.RouteReport) {
			progressCalls++
			assert.Equal(t, 4, total)
		})
	require.NoError(t, err)
	assert.Equal(t, 4, progressCalls)
	assert.Equal(t, "astar", res.Summary.Algorithm)
	assert.Equal(t, 4, res.Summary.Analyzed)
	require.NotNil(t, res.Summary.Best)
	assert.Equal(t, int64(2), res.Summary.Best.Source)
	assert.Len(t, res.Summary.Ranking, 3)
	assert.Len(t, res.Results, 4)

	res, err = as.Analyze(context.Background(), AnalyzeParams{Top: 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, "dijkstra", res.Summary.Algorithm)
	assert.Len(t, res.Summary.Ranking, 1)
	assert.Nil(t, res.Results)
}

func TestAnalyzeServiceSampleLimit(t *testing.T) {
	g := lineGraph(t)
	log := zap.NewNop()
	as := NewAnalyzeService(log, routing.NewRoutingEngine(g, log), 1, 2)

	_, err := as.Analyze(context.Background(), AnalyzeParams{}, nil)
	assert.ErrorIs(t, err, util.ErrBadParamInput)

	res, err := as.Analyze(context.Background(), AnalyzeParams{Sample: 2, Seed: 7}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Summary.Analyzed)

	_, err = as.Analyze(context.Background(), AnalyzeParams{Algorithm: "floyd", Sample: 1}, nil)
	assert.ErrorIs(t, err, routing.ErrUnknownAlgorithm)
}

func TestGraphService(t *testing.T) {
	g := lineGraph(t)
	gs := NewGraphService(zap.NewNop(), g)

	stats := gs.Stats()
	assert.Equal(t, 4, stats.Vertices)
	assert.Equal(t, 4, stats.Edges)
	assert.Equal(t, 2, stats.Components)

	body, err := gs.GeoJSON()
	require.NoError(t, err)
	var fc struct {
		Type     string            `json:"type"`
		Features []json.RawMessage `json:"features"`
	}
	require.NoError(t, json.Unmarshal(body, &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	assert.Len(t, fc.Features, 4)

	again, err := gs.GeoJSON()
	require.NoError(t, err)
	assert.Equal(t, body, again)
}
