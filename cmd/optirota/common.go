package main

import (
	"context"
	"fmt"
	"os"

	"github.com/optirota/optirota/pkg/engine"
	"github.com/optirota/optirota/pkg/logger"
	"github.com/optirota/optirota/pkg/render"
	"github.com/paulmach/orb/geojson"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func mapFilesOrDefault() []string {
	if len(mapFiles) > 0 {
		return mapFiles
	}
	return []string{viper.GetString("MAP_FILE")}
}

// loadEngine builds the graph from the map exports selected by --map or MAP_FILE.
func loadEngine(ctx context.Context) (*zap.Logger, *engine.Engine, error) {
	log, err := logger.New()
	if err != nil {
		return nil, nil, err
	}

	files := mapFilesOrDefault()
	e, err := engine.NewEngine(ctx, files, log)
	if err != nil {
		log.Error("failed to build road graph", zap.Strings("files", files), zap.Error(err))
		return nil, nil, err
	}
	return log, e, nil
}

func writeGeoJSONFile(path string, fc *geojson.FeatureCollection) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := render.WriteGeoJSON(f, fc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
