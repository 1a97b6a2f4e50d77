package engine

import (
	"context"

	"github.com/optirota/optirota/pkg/datastructure"
	"github.com/optirota/optirota/pkg/engine/routing"
	"github.com/optirota/optirota/pkg/metrics"
	"github.com/optirota/optirota/pkg/osmparser"
	"go.uber.org/zap"
)

type Engine struct {
	routingEngine *routing.RoutingEngine
	stats         osmparser.BuildStats
}

func (e *Engine) GetRoutingEngine() *routing.RoutingEngine {
	return e.routingEngine
}

func (e *Engine) GetBuildStats() osmparser.BuildStats {
	return e.stats
}

// NewEngine reads the map exports, builds the road graph and the routing engine on top of it.
func NewEngine(ctx context.Context, mapFiles []string, logger *zap.Logger) (*Engine, error) {
	logger.Info("Starting shortest path query engine...")

	graph, stats, err := osmparser.BuildGraphFromFiles(ctx, mapFiles, logger)
	if err != nil {
		return nil, err
	}

	e := NewEngineDirect(graph, logger)
	e.stats = stats
	return e, nil
}

func NewEngineDirect(graph *datastructure.Graph, logger *zap.Logger) *Engine {
	metrics.SetGraphSize(graph.NumberOfVertices(), graph.NumberOfEdges())
	logger.Info("Road graph ready", zap.Int("vertices", graph.NumberOfVertices()),
		zap.Int("edges", graph.NumberOfEdges()))

	return &Engine{
		routingEngine: routing.NewRoutingEngine(graph, logger),
	}
}
