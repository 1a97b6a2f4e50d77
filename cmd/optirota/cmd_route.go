package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/optirota/optirota/pkg/analyzer"
	da "github.com/optirota/optirota/pkg/datastructure"
	"github.com/optirota/optirota/pkg/engine/routing"
	"github.com/optirota/optirota/pkg/render"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	routeSource      int64
	routeDestination int64
	routeAlgorithm   string
	routeRandom      bool
	routeSeed        uint64
	routeGeoJSON     string

	routeCmd = &cobra.Command{
		Use:   "route",
		Short: "Shortest path between two nodes",
		Long: `route answers one shortest path query. With --random it picks a seeded random pair and runs
both dijkstra and A*, reporting whether the two paths agree.`,
		RunE: runRoute,
	}
)

func init() {
	routeCmd.Flags().Int64VarP(&routeSource, "source", "s", 0, "origin node id")
	routeCmd.Flags().Int64VarP(&routeDestination, "destination", "t", 0, "destination node id")
	routeCmd.Flags().StringVarP(&routeAlgorithm, "algorithm", "a", "dijkstra", "dijkstra or astar")
	routeCmd.Flags().BoolVar(&routeRandom, "random", false, "pick a random origin/destination pair")
	routeCmd.Flags().Uint64Var(&routeSeed, "seed", 0, "random seed, defaults to ANALYZER_SEED")
	routeCmd.Flags().StringVar(&routeGeoJSON, "geojson", "", "write the graph with the route highlighted to this file")
}

type routeRun struct {
	algorithm routing.Algorithm
	path      da.Path
	settled   int
	elapsed   time.Duration
	err       error
}

func runRoute(cmd *cobra.Command, args []string) error {
	log, e, err := loadEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer log.Sync()

	re := e.GetRoutingEngine()
	graph := re.GetGraph()
	out := cmd.OutOrStdout()

	algorithms := []routing.Algorithm{}
	s, t := routeSource, routeDestination
	if routeRandom {
		seed := routeSeed
		if !cmd.Flags().Changed("seed") {
			seed = viper.GetUint64("ANALYZER_SEED")
		}
		s, t, err = analyzer.RandomPair(graph, analyzer.NewRand(seed))
		if err != nil {
			return err
		}
		algorithms = append(algorithms, routing.ALGORITHM_DIJKSTRA, routing.ALGORITHM_ASTAR)
		fmt.Fprintf(out, "random pair (seed %d): %d -> %d\n", seed, s, t)
	} else {
		if !cmd.Flags().Changed("source") || !cmd.Flags().Changed("destination") {
			return errors.New("--source and --destination are required unless --random is set")
		}
		alg, err := routing.ParseAlgorithm(routeAlgorithm)
		if err != nil {
			return err
		}
		algorithms = append(algorithms, alg)
	}

	runs := make([]routeRun, 0, len(algorithms))
	for _, alg := range algorithms {
		router := re.NewRouter(alg)
		start := time.Now()
		path, err := router.ShortestPath(s, t)
		run := routeRun{algorithm: alg, path: path, settled: router.NumSettledNodes(),
			elapsed: time.Since(start), err: err}
		runs = append(runs, run)
		printRoute(out, s, t, run)
	}

	if len(runs) == 2 && runs[0].err == nil && runs[1].err == nil {
		if routing.SamePath(runs[0].path, runs[1].path) {
			fmt.Fprintln(out, "dijkstra and astar returned the same path")
		} else {
			fmt.Fprintf(out, "paths differ, cost difference %.6f m\n", runs[0].path.Cost-runs[1].path.Cost)
		}
	}

	if routeGeoJSON != "" && runs[0].err == nil {
		fc := render.GraphFeatureCollection(graph, render.Options{})
		label := fmt.Sprintf("%s %d -> %d", runs[0].algorithm, s, t)
		if err := render.AddPath(fc, graph, runs[0].path, label); err != nil {
			return err
		}
		if err := writeGeoJSONFile(routeGeoJSON, fc); err != nil {
			return err
		}
		log.Info("route geojson written", zap.String("file", routeGeoJSON))
	}

	for _, run := range runs {
		if run.err != nil {
			return run.err
		}
	}
	return nil
}

func printRoute(w io.Writer, s, t int64, run routeRun) {
	if run.err != nil {
		if errors.Is(run.err, routing.ErrNoPathFound) {
			fmt.Fprintf(w, "[%s] no path found from %d to %d (%d nodes settled)\n", run.algorithm, s, t, run.settled)
			return
		}
		fmt.Fprintf(w, "[%s] query failed: %v\n", run.algorithm, run.err)
		return
	}
	fmt.Fprintf(w, "[%s] distance %.2f m (%.3f km), %d hops, %d nodes settled, %s\n", run.algorithm,
		run.path.Cost, run.path.Cost/1000, run.path.Hops(), run.settled, run.elapsed)
	fmt.Fprintf(w, "[%s] path %v\n", run.algorithm, run.path.Nodes)
}
