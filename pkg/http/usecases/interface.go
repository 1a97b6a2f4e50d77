package usecases

import (
	"context"

	"github.com/optirota/optirota/pkg/datastructure"
	"github.com/optirota/optirota/pkg/engine/routing"
	"github.com/optirota/optirota/pkg/spatialindex"
)

type RoutingEngine interface {
	GetGraph() *datastructure.Graph
	ShortestPath(ctx context.Context, algorithm routing.Algorithm, s, t int64) (datastructure.Path, error)
}

type SpatialIndex interface {
	SnapToNearestNode(qLat, qLon, radius, maxRadius float64) (spatialindex.SnapResult, error)
}
