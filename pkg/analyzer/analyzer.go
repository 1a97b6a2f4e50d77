package analyzer

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/optirota/optirota/pkg/concurrent"
	da "github.com/optirota/optirota/pkg/datastructure"
	"github.com/optirota/optirota/pkg/engine/routing"
	"github.com/optirota/optirota/pkg/metrics"
	"github.com/optirota/optirota/pkg/util"
	"go.uber.org/zap"
)

var (
	ErrNoValidSource = errors.New("no source reaches any destination")
	ErrEmptyGraph    = errors.New("graph has no nodes")
)

// ProgressFunc is called once per finished source. Calls never overlap.
type ProgressFunc func(done, total int, report *RouteReport)

type Options struct {
	workers     int
	keepDetails bool
	progress    ProgressFunc
}

type Option func(*Options)

func WithWorkers(n int) Option {
	return func(o *Options) {
		o.workers = n
	}
}

// WithDetails keeps the per-destination outcome in every RouteReport.
func WithDetails(keep bool) Option {
	return func(o *Options) {
		o.keepDetails = keep
	}
}

func WithProgress(fn ProgressFunc) Option {
	return func(o *Options) {
		o.progress = fn
	}
}

type BatchAnalyzer struct {
	engine *routing.RoutingEngine
	logger *zap.Logger
	opts   Options
}

func NewBatchAnalyzer(engine *routing.RoutingEngine, logger *zap.Logger, opts ...Option) *BatchAnalyzer {
	o := Options{workers: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = 1
	}
	return &BatchAnalyzer{engine: engine, logger: logger, opts: o}
}

// sourceRunner per-goroutine search state. Dijkstra answers all destinations of a source with one shortest path
// tree; A* runs one goal-directed query per destination.
type sourceRunner struct {
	algorithm routing.Algorithm
	dijkstra  *routing.Dijkstra
	astar     *routing.AStar
}

func newSourceRunner(graph *da.Graph, algorithm routing.Algorithm) *sourceRunner {
	sr := &sourceRunner{algorithm: algorithm}
	if algorithm == routing.ALGORITHM_ASTAR {
		sr.astar = routing.NewAStar(graph)
	} else {
		sr.dijkstra = routing.NewDijkstra(graph)
	}
	return sr
}

func (sr *sourceRunner) run(s int64, destinations []int64, keepDetails bool) *RouteReport {
	start := time.Now()
	report := newRouteReport(s, keepDetails, len(destinations))

	var search func(t int64) (da.Path, error)
	if sr.algorithm == routing.ALGORITHM_ASTAR {
		search = func(t int64) (da.Path, error) {
			return sr.astar.ShortestPath(s, t)
		}
	} else {
		tree, err := sr.dijkstra.ShortestPathTree(s)
		if err != nil {
			search = func(int64) (da.Path, error) {
				return da.Path{}, err
			}
		} else {
			search = tree.PathTo
		}
	}

	for _, t := range destinations {
		if t == s {
			continue
		}
		path, err := search(t)
		if err != nil {
			report.addUnreached(t)
			continue
		}
		report.addReached(t, path.Cost, path.Hops())
	}

	report.Elapsed = time.Since(start)
	return report
}

// Analyze runs every source against every other source in order, on the calling goroutine. Duplicate ids in
// sources are analyzed once. Unreachable pairs count as invalid and never abort the run; a done context does.
func (ba *BatchAnalyzer) Analyze(ctx context.Context, algorithm routing.Algorithm,
	sources []int64) (map[int64]*RouteReport, error) {
	sources = util.RemoveDuplicates(sources)
	start := time.Now()
	ba.logger.Sugar().Infof("starting %s analysis for %d sources...", algorithm, len(sources))

	runner := newSourceRunner(ba.engine.GetGraph(), algorithm)
	reports := make(map[int64]*RouteReport, len(sources))
	for i, s := range sources {
		if err := ctx.Err(); err != nil {
			return nil, util.WrapErrorf(err, util.ErrInternalServerError, "analysis stopped after %d of %d sources",
				i, len(sources))
		}
		report := runner.run(s, sources, ba.opts.keepDetails)
		reports[s] = report
		ba.onSourceDone(i+1, len(sources), report)
	}

	ba.finish(algorithm, reports, time.Since(start))
	return reports, nil
}

// AnalyzeConcurrent is Analyze with sources spread over a worker pool. Each worker owns its search state and
// each report is written by exactly one worker, so the result equals the sequential run.
func (ba *BatchAnalyzer) AnalyzeConcurrent(ctx context.Context, algorithm routing.Algorithm,
	sources []int64) (map[int64]*RouteReport, error) {
	sources = util.RemoveDuplicates(sources)
	start := time.Now()

	pool := concurrent.NewWorkerPool[int64, *RouteReport](ba.opts.workers, len(sources))
	ba.logger.Sugar().Infof("starting %s analysis for %d sources on %d workers...", algorithm, len(sources),
		pool.NumWorkers())

	runners := make([]*sourceRunner, pool.NumWorkers())
	for i := range runners {
		runners[i] = newSourceRunner(ba.engine.GetGraph(), algorithm)
	}

	pool.Start(ctx, func(ctx context.Context, workerID int, s int64) *RouteReport {
		return runners[workerID].run(s, sources, ba.opts.keepDetails)
	})
	for _, s := range sources {
		pool.AddJob(s)
	}
	pool.Close()
	go pool.Wait()

	reports := make(map[int64]*RouteReport, len(sources))
	for report := range pool.CollectResults() {
		reports[report.Source] = report
		ba.onSourceDone(len(reports), len(sources), report)
	}

	if err := ctx.Err(); err != nil {
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, "analysis stopped after %d of %d sources",
			len(reports), len(sources))
	}

	ba.finish(algorithm, reports, time.Since(start))
	return reports, nil
}

func (ba *BatchAnalyzer) onSourceDone(done, total int, report *RouteReport) {
	ba.logger.Debug("source analyzed",
		zap.Int("done", done), zap.Int("total", total),
		zap.Int64("source", report.Source),
		zap.Int("valid", report.ValidCount), zap.Int("invalid", report.InvalidCount),
		zap.Float64("total_cost_m", report.TotalCost),
		zap.Duration("elapsed", report.Elapsed))
	if ba.opts.progress != nil {
		ba.opts.progress(done, total, report)
	}
}

func (ba *BatchAnalyzer) finish(algorithm routing.Algorithm, reports map[int64]*RouteReport, elapsed time.Duration) {
	unreachable := 0
	for _, r := range reports {
		unreachable += r.InvalidCount
	}
	metrics.RecordBatch(algorithm.String(), elapsed.Seconds(), len(reports), unreachable)
	ba.logger.Info("analysis finished", zap.String("algorithm", algorithm.String()),
		zap.Int("sources", len(reports)), zap.Int("unreachable_pairs", unreachable),
		zap.Duration("elapsed", elapsed))
}

// Rank orders the sources with at least one reachable destination by ascending TotalCost, ties by source id.
func Rank(reports map[int64]*RouteReport) ([]RankEntry, error) {
	ranking := make([]RankEntry, 0, len(reports))
	for _, r := range reports {
		if r.ValidCount > 0 {
			ranking = append(ranking, RankEntry{Source: r.Source, TotalCost: r.TotalCost})
		}
	}
	if len(ranking) == 0 {
		return nil, util.WrapErrorf(ErrNoValidSource, util.ErrNotFound, "none of %d sources has a valid path",
			len(reports))
	}

	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].TotalCost != ranking[j].TotalCost {
			return ranking[i].TotalCost < ranking[j].TotalCost
		}
		return ranking[i].Source < ranking[j].Source
	})
	return ranking, nil
}
