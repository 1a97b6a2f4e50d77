package controllers

import (
	"context"

	"github.com/optirota/optirota/pkg/analyzer"
	"github.com/optirota/optirota/pkg/http/usecases"
)

type RoutingService interface {
	ShortestPath(ctx context.Context, algorithmName string, s, t int64) (usecases.RouteResult, error)
	ShortestPathByCoordinates(ctx context.Context, algorithmName string,
		origLat, origLon, dstLat, dstLon float64) (usecases.RouteResult, error)
}

type AnalyzeService interface {
	Analyze(ctx context.Context, params usecases.AnalyzeParams,
		progress analyzer.ProgressFunc) (usecases.AnalyzeResult, error)
}

type GraphService interface {
	GeoJSON() ([]byte, error)
	Stats() usecases.GraphStats
}
