package usecases

import (
	"context"
	"time"

	"github.com/optirota/optirota/pkg/analyzer"
	"github.com/optirota/optirota/pkg/engine/routing"
	"github.com/optirota/optirota/pkg/report"
	"github.com/optirota/optirota/pkg/util"
	"go.uber.org/zap"
)

type AnalyzeParams struct {
	Algorithm string
	// Sample number of sources, 0 analyzes every node up to the service limit
	Sample  int
	Seed    uint64
	Top     int
	Details bool
}

type AnalyzeResult struct {
	Summary report.Summary
	Results map[string]report.SourceResult
	Elapsed time.Duration
}

type AnalyzeService struct {
	log        *zap.Logger
	engine     *routing.RoutingEngine
	workers    int
	maxSources int
}

func NewAnalyzeService(log *zap.Logger, engine *routing.RoutingEngine, workers, maxSources int) *AnalyzeService {
	return &AnalyzeService{
		log:        log,
		engine:     engine,
		workers:    workers,
		maxSources: maxSources,
	}
}

// Analyze samples sources, runs the batch analysis on the worker pool and ranks the result. Summary.Ranking is
// cut to params.Top entries when Top > 0.
func (as *AnalyzeService) Analyze(ctx context.Context, params AnalyzeParams,
	progress analyzer.ProgressFunc) (AnalyzeResult, error) {
	if params.Algorithm == "" {
		params.Algorithm = routing.ALGORITHM_DIJKSTRA.String()
	}
	algorithm, err := routing.ParseAlgorithm(params.Algorithm)
	if err != nil {
		return AnalyzeResult{}, err
	}

	graph := as.engine.GetGraph()
	sample := params.Sample
	if as.maxSources > 0 && (sample <= 0 || sample > as.maxSources) && graph.NumberOfVertices() > as.maxSources {
		return AnalyzeResult{}, util.WrapErrorf(util.ErrBadParamInput, util.ErrBadParamInput,
			"sample must be between 1 and %d for a graph with %d nodes", as.maxSources, graph.NumberOfVertices())
	}

	sources := analyzer.SampleSources(graph, sample, analyzer.NewRand(params.Seed))

	opts := []analyzer.Option{analyzer.WithWorkers(as.workers), analyzer.WithDetails(params.Details)}
	if progress != nil {
		opts = append(opts, analyzer.WithProgress(progress))
	}
	ba := analyzer.NewBatchAnalyzer(as.engine, as.log, opts...)

	start := time.Now()
	reports, err := ba.AnalyzeConcurrent(ctx, algorithm, sources)
	if err != nil {
		return AnalyzeResult{}, err
	}

	summary, err := report.Summarize(graph, algorithm.String(), reports)
	if err != nil {
		return AnalyzeResult{}, err
	}
	if params.Top > 0 && len(summary.Ranking) > params.Top {
		summary.Ranking = summary.Ranking[:params.Top]
	}

	res := AnalyzeResult{Summary: summary, Elapsed: time.Since(start)}
	if params.Details {
		res.Results = report.BuildResults(reports)
	}
	return res, nil
}
