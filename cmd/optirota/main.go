package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/optirota/optirota/pkg/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configDir string
	mapFiles  []string
	logLevel  string

	rootCmd = &cobra.Command{
		Use:   "optirota",
		Short: "Shortest routes and best starting points over an openstreetmap road export",
		Long: `optirota builds a directed road graph from an openstreetmap export (overpass json,
json.bz2, osm xml or pbf), answers shortest path queries with dijkstra or A*, and ranks
nodes by the total distance of their shortest paths to every other node.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := util.ReadConfig(configDir); err != nil {
				return err
			}
			if logLevel != "" {
				viper.Set("LOG_LEVEL", logLevel)
			}
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "directory containing config.yaml")
	rootCmd.PersistentFlags().StringSliceVarP(&mapFiles, "map", "m", nil,
		"map export files, defaults to MAP_FILE from the config")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")

	rootCmd.AddCommand(routeCmd, analyzeCmd, statsCmd, renderCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
