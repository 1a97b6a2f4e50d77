package routing

import (
	"context"
	"errors"
	"sync"
	"time"

	da "github.com/optirota/optirota/pkg/datastructure"
	"github.com/optirota/optirota/pkg/metrics"
	"github.com/optirota/optirota/pkg/util"
	"go.uber.org/zap"
)

// RoutingEngine answers shortest path queries over one immutable road graph. Query state is pooled, each call
// takes its own, so the engine can be shared between goroutines.
type RoutingEngine struct {
	graph     *da.Graph
	logger    *zap.Logger
	statePool sync.Pool
}

func NewRoutingEngine(graph *da.Graph, logger *zap.Logger) *RoutingEngine {
	e := &RoutingEngine{
		graph:  graph,
		logger: logger,
	}
	e.BuildBufferPool()
	return e
}

func (re *RoutingEngine) GetGraph() *da.Graph {
	return re.graph
}

func (re *RoutingEngine) BuildBufferPool() {
	n := re.graph.NumberOfVertices()
	re.statePool = sync.Pool{
		New: func() any {
			return newQueryState(n)
		},
	}
}

// NewRouter returns a single-goroutine router with its own query state.
func (re *RoutingEngine) NewRouter(algorithm Algorithm) Router {
	return re.newRouterWithState(algorithm, newQueryState(re.graph.NumberOfVertices()))
}

func (re *RoutingEngine) newRouterWithState(algorithm Algorithm, qs *queryState) Router {
	if algorithm == ALGORITHM_ASTAR {
		return newAStarWithState(re.graph, qs)
	}
	return newDijkstraWithState(re.graph, qs)
}

// ShortestPath runs one query with the given algorithm. The graph is only read.
func (re *RoutingEngine) ShortestPath(ctx context.Context, algorithm Algorithm, s, t int64) (da.Path, error) {
	if err := ctx.Err(); err != nil {
		return da.Path{}, util.WrapErrorf(err, util.ErrInternalServerError, "query %d -> %d cancelled", s, t)
	}

	qs := re.statePool.Get().(*queryState)
	defer re.statePool.Put(qs)

	start := time.Now()
	router := re.newRouterWithState(algorithm, qs)
	path, err := router.ShortestPath(s, t)

	outcome := metrics.OUTCOME_FOUND
	switch {
	case errors.Is(err, ErrNoPathFound):
		outcome = metrics.OUTCOME_NO_PATH
	case err != nil:
		outcome = metrics.OUTCOME_ERROR
	}
	metrics.RecordQuery(algorithm.String(), outcome, time.Since(start).Seconds(), router.NumSettledNodes())

	if err != nil {
		re.logger.Debug("shortest path query failed", zap.String("algorithm", algorithm.String()),
			zap.Int64("source", s), zap.Int64("target", t), zap.Error(err))
		return da.Path{}, err
	}
	return path, nil
}

// ShortestPathTree runs a full Dijkstra from s.
func (re *RoutingEngine) ShortestPathTree(ctx context.Context, s int64) (*ShortestPathTree, error) {
	if err := ctx.Err(); err != nil {
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, "shortest path tree from %d cancelled", s)
	}

	qs := re.statePool.Get().(*queryState)
	defer re.statePool.Put(qs)

	return newDijkstraWithState(re.graph, qs).ShortestPathTree(s)
}
