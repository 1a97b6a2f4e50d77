package main

import (
	"context"
	"errors"
	"flag"
	"strings"

	"github.com/optirota/optirota/pkg/engine"
	"github.com/optirota/optirota/pkg/http"
	"github.com/optirota/optirota/pkg/http/usecases"
	"github.com/optirota/optirota/pkg/logger"
	"github.com/optirota/optirota/pkg/spatialindex"
	"github.com/optirota/optirota/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	configDir             = flag.String("config", "", "directory containing config.yaml")
	mapFiles              = flag.String("map", "", "comma separated map export files, defaults to MAP_FILE")
	leafBoundingBoxRadius = flag.Float64("leaf_bounding_box_radius", 0.05, "leaf node (r-tree) bounding box radius in km")
	useRateLimit          = flag.Bool("rate_limit", true, "enable the per client rate limiter")
)

func main() {
	flag.Parse()
	if err := util.ReadConfig(*configDir); err != nil {
		panic(err)
	}
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	files := []string{viper.GetString("MAP_FILE")}
	if *mapFiles != "" {
		files = strings.Split(*mapFiles, ",")
	}

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}

	routingEngine, err := engine.NewEngine(ctx, files, logger)
	if err != nil {
		logger.Fatal("failed to build road graph", zap.Strings("files", files), zap.Error(err))
	}
	graph := routingEngine.GetRoutingEngine().GetGraph()

	rtree := spatialindex.NewRtree()
	rtree.Build(graph, *leafBoundingBoxRadius, logger)

	routingService, err := usecases.NewRoutingService(logger, routingEngine.GetRoutingEngine(), rtree,
		viper.GetFloat64("SNAP_RADIUS_KM"), viper.GetFloat64("SNAP_MAX_RADIUS_KM"), viper.GetInt("ROUTE_CACHE_SIZE"))
	if err != nil {
		logger.Fatal("failed to create routing service", zap.Error(err))
	}
	analyzeService := usecases.NewAnalyzeService(logger, routingEngine.GetRoutingEngine(),
		viper.GetInt("ANALYZER_WORKERS"), viper.GetInt("ANALYZER_MAX_SOURCES"))
	graphService := usecases.NewGraphService(logger, graph)

	api := http.NewServer(logger)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- api.Use(ctx, logger, *useRateLimit, routingService, analyzeService, graphService)
	}()

	go func() {
		signal := http.GracefulShutdown()
		logger.Info("shutdown signal received", zap.String("signal", signal.String()))
		cleanup()
	}()

	if err := <-serverErr; err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server stopped with error", zap.Error(err))
	}
	logger.Info("Optirota Routing Engine Server Stopped")
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
