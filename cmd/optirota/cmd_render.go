package main

import (
	"github.com/optirota/optirota/pkg/render"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	renderOut   string
	renderNodes bool

	renderCmd = &cobra.Command{
		Use:   "render",
		Short: "Write the road graph as a styled geojson feature collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, e, err := loadEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer log.Sync()

			graph := e.GetRoutingEngine().GetGraph()
			fc := render.GraphFeatureCollection(graph, render.Options{IncludeNodes: renderNodes})
			if err := writeGeoJSONFile(renderOut, fc); err != nil {
				return err
			}
			log.Info("graph geojson written", zap.String("file", renderOut), zap.Int("features", len(fc.Features)))
			return nil
		},
	}
)

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "graph.geojson", "output file")
	renderCmd.Flags().BoolVar(&renderNodes, "nodes", false, "include every node as a point feature")
}
