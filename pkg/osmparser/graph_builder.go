package osmparser

import (
	"context"

	"github.com/optirota/optirota/pkg/datastructure"
	"github.com/optirota/optirota/pkg/geo"
	"github.com/optirota/optirota/pkg/util"
	"go.uber.org/zap"
)

type GraphBuilder struct {
	logger *zap.Logger
	stats  BuildStats
}

func NewGraphBuilder(logger *zap.Logger) *GraphBuilder {
	return &GraphBuilder{logger: logger}
}

func (b *GraphBuilder) GetStats() BuildStats {
	return b.stats
}

// Build turns map elements into a directed road graph in two passes: first every point with coordinates
// becomes a vertex, then every consecutive pair of a highway way becomes an edge weighted by its
// haversine length. Ways not tagged oneway=yes also get the reverse edge unless that edge already exists.
// Pairs touching an unregistered point are skipped. A nil element slice is malformed input.
func (b *GraphBuilder) Build(elements []Element) (*datastructure.Graph, error) {
	if elements == nil {
		return nil, util.WrapErrorf(ErrMalformedInput, util.ErrBadParamInput, "map export has no element collection")
	}
	b.stats = BuildStats{}

	graph := datastructure.NewGraphWithCapacity(len(elements) / 2)

	// points must all be known before any way can resolve coordinates
	for i := range elements {
		e := &elements[i]
		switch e.Kind {
		case POINT_ELEMENT:
			b.stats.PointRecords++
			if !e.Point.HasCoordinates {
				b.stats.SkippedPoints++
				continue
			}
			graph.AddNode(e.Point.ID, e.Point.Lat, e.Point.Lon)
		case WAY_ELEMENT:
			b.stats.WayRecords++
		default:
			b.stats.IgnoredElements++
		}
	}
	b.stats.RegisteredNodes = graph.NumberOfVertices()

	for i := range elements {
		e := &elements[i]
		if e.Kind != WAY_ELEMENT {
			continue
		}
		if err := b.addWay(graph, e.Way); err != nil {
			return nil, err
		}
	}
	b.stats.Edges = graph.NumberOfEdges()

	b.logger.Info("road graph built",
		zap.Int("points", b.stats.PointRecords),
		zap.Int("nodes", b.stats.RegisteredNodes),
		zap.Int("points_without_coordinates", b.stats.SkippedPoints),
		zap.Int("road_ways", b.stats.RoadWays),
		zap.Int("dangling_pairs", b.stats.DanglingPairs),
		zap.Int("edges", b.stats.Edges),
	)
	return graph, nil
}

func (b *GraphBuilder) addWay(graph *datastructure.Graph, way WayRecord) error {
	highway, isRoad := way.Highway()
	if !isRoad || len(way.NodeIDs) == 0 {
		return nil
	}
	b.stats.RoadWays++

	name := way.Name()
	oneWay := way.IsOneWay()

	for i := 0; i+1 < len(way.NodeIDs); i++ {
		from, fromOk := graph.GetIndex(way.NodeIDs[i])
		to, toOk := graph.GetIndex(way.NodeIDs[i+1])
		if !fromOk || !toOk {
			b.stats.DanglingPairs++
			continue
		}

		fromLat, fromLon := graph.GetVertexCoordinates(from)
		toLat, toLon := graph.GetVertexCoordinates(to)
		weight := geo.HaversineDistance(fromLat, fromLon, toLat, toLon)

		if err := graph.AddEdge(from, to, weight, highway, name); err != nil {
			return util.WrapErrorf(ErrMalformedInput, util.ErrBadParamInput, "way %d: %v", way.ID, err)
		}

		if oneWay {
			continue
		}
		if graph.HasEdge(to, from) {
			b.stats.DuplicateSkips++
			continue
		}
		if err := graph.AddEdge(to, from, weight, highway, name); err != nil {
			return util.WrapErrorf(ErrMalformedInput, util.ErrBadParamInput, "way %d: %v", way.ID, err)
		}
	}
	return nil
}

// BuildGraphFromFiles reads one or more map exports and builds the road graph.
func BuildGraphFromFiles(ctx context.Context, paths []string, logger *zap.Logger) (*datastructure.Graph, BuildStats, error) {
	elements, err := ReadElementsFromFiles(ctx, paths, logger)
	if err != nil {
		return nil, BuildStats{}, err
	}

	builder := NewGraphBuilder(logger)
	graph, err := builder.Build(elements)
	if err != nil {
		return nil, BuildStats{}, err
	}
	return graph, builder.GetStats(), nil
}
