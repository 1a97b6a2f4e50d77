package usecases

import (
	"bytes"
	"sync"

	"github.com/optirota/optirota/pkg/datastructure"
	"github.com/optirota/optirota/pkg/render"
	"go.uber.org/zap"
)

type GraphStats struct {
	Vertices   int
	Edges      int
	Components int
	CenterLat  float64
	CenterLon  float64
}

// GraphService serves read-only views of the loaded graph. Both views are computed once.
type GraphService struct {
	log   *zap.Logger
	graph *datastructure.Graph

	geojsonOnce sync.Once
	geojson     []byte
	geojsonErr  error

	statsOnce sync.Once
	stats     GraphStats
}

func NewGraphService(log *zap.Logger, graph *datastructure.Graph) *GraphService {
	return &GraphService{log: log, graph: graph}
}

func (gs *GraphService) GeoJSON() ([]byte, error) {
	gs.geojsonOnce.Do(func() {
		var buf bytes.Buffer
		fc := render.GraphFeatureCollection(gs.graph, render.Options{})
		gs.geojsonErr = render.WriteGeoJSON(&buf, fc)
		gs.geojson = buf.Bytes()
		gs.log.Info("graph geojson rendered", zap.Int("features", len(fc.Features)), zap.Int("bytes", buf.Len()))
	})
	return gs.geojson, gs.geojsonErr
}

func (gs *GraphService) Stats() GraphStats {
	gs.statsOnce.Do(func() {
		_, components := gs.graph.RunKosaraju()
		lat, lon := gs.graph.Center()
		gs.stats = GraphStats{
			Vertices:   gs.graph.NumberOfVertices(),
			Edges:      gs.graph.NumberOfEdges(),
			Components: components,
			CenterLat:  lat,
			CenterLon:  lon,
		}
	})
	return gs.stats
}
