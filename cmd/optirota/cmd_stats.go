package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print graph size, build counters and strongly connected components",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, e, err := loadEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer log.Sync()

		graph := e.GetRoutingEngine().GetGraph()
		stats := e.GetBuildStats()
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "nodes:                      %d\n", graph.NumberOfVertices())
		fmt.Fprintf(out, "edges:                      %d\n", graph.NumberOfEdges())
		fmt.Fprintf(out, "point records:              %d (%d without coordinates)\n",
			stats.PointRecords, stats.SkippedPoints)
		fmt.Fprintf(out, "way records:                %d (%d roads)\n", stats.WayRecords, stats.RoadWays)
		fmt.Fprintf(out, "dangling pairs skipped:     %d\n", stats.DanglingPairs)
		fmt.Fprintf(out, "reverse duplicates skipped: %d\n", stats.DuplicateSkips)
		fmt.Fprintf(out, "ignored elements:           %d\n", stats.IgnoredElements)

		_, components := graph.RunKosaraju()
		fmt.Fprintf(out, "strongly connected comps:   %d\n", components)

		if minLat, minLon, maxLat, maxLon, ok := graph.BoundingBox(); ok {
			lat, lon := graph.Center()
			fmt.Fprintf(out, "bounding box:               (%.6f, %.6f) - (%.6f, %.6f)\n", minLat, minLon, maxLat, maxLon)
			fmt.Fprintf(out, "center:                     (%.6f, %.6f)\n", lat, lon)
		}
		return nil
	},
}
