package main

import (
	"fmt"

	"github.com/optirota/optirota/pkg/analyzer"
	"github.com/optirota/optirota/pkg/engine/routing"
	"github.com/optirota/optirota/pkg/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	analyzeAlgorithm string
	analyzeSample    int
	analyzeSeed      uint64
	analyzeWorkers   int
	analyzeResults   string
	analyzeReport    string
	analyzeDetails   bool

	analyzeCmd = &cobra.Command{
		Use:   "analyze",
		Short: "Rank nodes by the total distance of their shortest paths to every other sampled node",
		RunE:  runAnalyze,
	}
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeAlgorithm, "algorithm", "a", "dijkstra", "dijkstra or astar")
	analyzeCmd.Flags().IntVarP(&analyzeSample, "sample", "n", 0, "number of sampled sources, 0 analyzes every node")
	analyzeCmd.Flags().Uint64Var(&analyzeSeed, "seed", 0, "sampling seed, defaults to ANALYZER_SEED")
	analyzeCmd.Flags().IntVarP(&analyzeWorkers, "workers", "w", 0, "worker goroutines, defaults to ANALYZER_WORKERS")
	analyzeCmd.Flags().StringVar(&analyzeResults, "results", "results.json", "results json file, empty to skip")
	analyzeCmd.Flags().StringVar(&analyzeReport, "report", "report.txt", "text report file, empty to skip")
	analyzeCmd.Flags().BoolVar(&analyzeDetails, "details", false, "keep per destination distances in the results file")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	algorithm, err := routing.ParseAlgorithm(analyzeAlgorithm)
	if err != nil {
		return err
	}

	log, e, err := loadEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer log.Sync()

	seed := analyzeSeed
	if !cmd.Flags().Changed("seed") {
		seed = viper.GetUint64("ANALYZER_SEED")
	}
	workers := analyzeWorkers
	if workers <= 0 {
		workers = viper.GetInt("ANALYZER_WORKERS")
	}

	re := e.GetRoutingEngine()
	graph := re.GetGraph()
	sources := analyzer.SampleSources(graph, analyzeSample, analyzer.NewRand(seed))
	log.Info("sources selected", zap.Int("sources", len(sources)), zap.Int("nodes", graph.NumberOfVertices()),
		zap.Uint64("seed", seed))

	step := len(sources) / 10
	if step == 0 {
		step = 1
	}
	progress := func(done, total int, r *analyzer.RouteReport) {
		if done%step == 0 || done == total {
			log.Sugar().Infof("analyzed %d/%d sources", done, total)
		}
	}

	ba := analyzer.NewBatchAnalyzer(re, log,
		analyzer.WithWorkers(workers),
		analyzer.WithDetails(analyzeDetails),
		analyzer.WithProgress(progress))
	reports, err := ba.AnalyzeConcurrent(cmd.Context(), algorithm, sources)
	if err != nil {
		return err
	}

	summary, err := report.Summarize(graph, algorithm.String(), reports)
	if err != nil {
		return err
	}

	if analyzeResults != "" {
		if err := report.SaveResultsJSON(analyzeResults, reports); err != nil {
			return err
		}
		log.Info("results saved", zap.String("file", analyzeResults))
	}
	if analyzeReport != "" {
		if err := report.SaveTextReport(analyzeReport, summary); err != nil {
			return err
		}
		log.Info("report saved", zap.String("file", analyzeReport))
	}

	if err := report.WriteConsoleSummary(cmd.OutOrStdout(), summary); err != nil {
		return err
	}
	if summary.Best == nil {
		return fmt.Errorf("%w: %d sources analyzed", analyzer.ErrNoValidSource, summary.Analyzed)
	}
	return nil
}
