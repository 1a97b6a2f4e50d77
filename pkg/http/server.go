package http

import (
	"context"

	http_router "github.com/optirota/optirota/pkg/http/router"
	"github.com/optirota/optirota/pkg/http/router/controllers"
	http_server "github.com/optirota/optirota/pkg/http/server"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log *zap.Logger
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

// Use serves the API with the API_* and RATE_LIMIT_* settings and blocks until ctx is cancelled or the server
// fails.
func (s *Server) Use(
	ctx context.Context,
	log *zap.Logger,

	useRateLimit bool,
	routingService controllers.RoutingService,
	analyzeService controllers.AnalyzeService,
	graphService controllers.GraphService,
) error {
	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("API_TIMEOUT", "60s")
	viper.SetDefault("RATE_LIMIT_RPS", 20)
	viper.SetDefault("RATE_LIMIT_BURST", 40)

	config := http_server.Config{
		Port:    viper.GetInt("API_PORT"),
		Timeout: viper.GetDuration("API_TIMEOUT"),
	}

	var limit http_router.RateLimit
	if useRateLimit {
		limit = http_router.RateLimit{
			RPS:   viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst: viper.GetInt("RATE_LIMIT_BURST"),
		}
	}

	server := http_router.NewAPI(log)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Run(
			gctx, config, log,
			limit, routingService, analyzeService, graphService,
		)
	})

	return g.Wait()
}
