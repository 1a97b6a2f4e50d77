package usecases

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/optirota/optirota/pkg/datastructure"
	"github.com/optirota/optirota/pkg/engine/routing"
	"github.com/optirota/optirota/pkg/geo"
	"go.uber.org/zap"
)

type RouteResult struct {
	Algorithm   string
	Path        datastructure.Path
	Coordinates []geo.Coordinate
	Polyline    string
	// snap distances in meters, zero for id based queries
	OriginSnap      float64
	DestinationSnap float64
}

type routeCacheKey struct {
	algorithm routing.Algorithm
	s, t      int64
}

type RoutingService struct {
	log             *zap.Logger
	engine          RoutingEngine
	spatialIndex    SpatialIndex
	searchRadius    float64
	maxSearchRadius float64
	cache           *lru.Cache[routeCacheKey, RouteResult]
}

// NewRoutingService cacheSize <= 0 disables the route cache.
func NewRoutingService(log *zap.Logger, engine RoutingEngine, spatialIndex SpatialIndex,
	searchRadius, maxSearchRadius float64, cacheSize int) (*RoutingService, error) {
	rs := &RoutingService{
		log:             log,
		engine:          engine,
		spatialIndex:    spatialIndex,
		searchRadius:    searchRadius,
		maxSearchRadius: maxSearchRadius,
	}
	if cacheSize > 0 {
		cache, err := lru.New[routeCacheKey, RouteResult](cacheSize)
		if err != nil {
			return nil, err
		}
		rs.cache = cache
	}
	return rs, nil
}

// ShortestPath route between two node ids. algorithmName defaults to dijkstra when empty.
func (rs *RoutingService) ShortestPath(ctx context.Context, algorithmName string, s, t int64) (RouteResult, error) {
	if algorithmName == "" {
		algorithmName = routing.ALGORITHM_DIJKSTRA.String()
	}
	algorithm, err := routing.ParseAlgorithm(algorithmName)
	if err != nil {
		return RouteResult{}, err
	}

	key := routeCacheKey{algorithm: algorithm, s: s, t: t}
	if rs.cache != nil {
		if res, ok := rs.cache.Get(key); ok {
			return res, nil
		}
	}

	path, err := rs.engine.ShortestPath(ctx, algorithm, s, t)
	if err != nil {
		return RouteResult{}, err
	}

	graph := rs.engine.GetGraph()
	coords := make([]geo.Coordinate, 0, len(path.Nodes))
	for _, id := range path.Nodes {
		if n, ok := graph.GetNodeByID(id); ok {
			coords = append(coords, geo.NewCoordinate(n.GetLat(), n.GetLon()))
		}
	}

	res := RouteResult{
		Algorithm:   algorithm.String(),
		Path:        path,
		Coordinates: coords,
		Polyline:    geo.PolylineFromCoords(coords),
	}
	if rs.cache != nil {
		rs.cache.Add(key, res)
	}
	return res, nil
}

// ShortestPathByCoordinates snaps both points to their nearest road node and routes between them.
func (rs *RoutingService) ShortestPathByCoordinates(ctx context.Context, algorithmName string,
	origLat, origLon, dstLat, dstLon float64) (RouteResult, error) {
	orig, err := rs.spatialIndex.SnapToNearestNode(origLat, origLon, rs.searchRadius, rs.maxSearchRadius)
	if err != nil {
		return RouteResult{}, err
	}
	dst, err := rs.spatialIndex.SnapToNearestNode(dstLat, dstLon, rs.searchRadius, rs.maxSearchRadius)
	if err != nil {
		return RouteResult{}, err
	}
	rs.log.Debug("snapped query points", zap.Int64("origin", orig.NodeID), zap.Int64("destination", dst.NodeID),
		zap.Float64("origin_snap_m", orig.DistanceToNode), zap.Float64("destination_snap_m", dst.DistanceToNode))

	res, err := rs.ShortestPath(ctx, algorithmName, orig.NodeID, dst.NodeID)
	if err != nil {
		return RouteResult{}, err
	}
	res.OriginSnap = orig.DistanceToNode
	res.DestinationSnap = dst.DistanceToNode
	return res, nil
}
