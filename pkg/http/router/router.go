package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/optirota/optirota/pkg/http/router/controllers"
	router_helper "github.com/optirota/optirota/pkg/http/router/routerhelper"
	http_server "github.com/optirota/optirota/pkg/http/server"
	"github.com/optirota/optirota/pkg/metrics"
	"github.com/rs/cors"
	"go.uber.org/zap"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "net/http/pprof"
)

type API struct {
	log *zap.Logger
	hub *controllers.Hub
}

// RateLimit token bucket applied per client address. A zero RPS disables limiting.
type RateLimit struct {
	RPS   float64
	Burst int
}

func NewAPI(log *zap.Logger) *API {
	return &API{log: log}
}

//	@title			Optirota API
//	@version		1.0
//	@description	Shortest path and best starting point analysis over an openstreetmap road graph.

//	@license.name	MIT License
//	@license.url	https://opensource.org/license/mit

// @host		localhost
// @BasePath	/api
func (api *API) Handler(
	log *zap.Logger,
	limit RateLimit,
	routingService controllers.RoutingService,
	analyzeService controllers.AnalyzeService,
	graphService controllers.GraphService,
) http.Handler {
	router := httprouter.New()

	corsHandler := cors.New(cors.Options{ //nolint:gocritic // ignore
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, //nolint:mnd // ignore
	})

	router.GET("/doc/*any", swaggerHandler)
	router.Handler(http.MethodGet, "/debug/pprof/*item", http.DefaultServeMux)
	router.Handler(http.MethodGet, "/metrics", metrics.Handler())

	api.hub = controllers.NewHub(analyzeService)
	router.GET("/ws/analyze", api.analyzeStream)

	group := router_helper.NewRouteGroup(router, "/api")
	optirotaRoutes := controllers.New(routingService, analyzeService, graphService, log)
	optirotaRoutes.Routes(group)

	mwChain := []alice.Constructor{corsHandler.Handler, EnforceJSONHandler, api.recoverPanic,
		RealIP, Heartbeat("healthz"), Logger(log)}
	if limit.RPS > 0 {
		mwChain = append(mwChain, Limit(limit.RPS, limit.Burst))
	}
	return alice.New(mwChain...).Then(router)
}

// Run serves the API until ctx is cancelled or the listener fails.
func (api *API) Run(
	ctx context.Context,
	config http_server.Config,
	log *zap.Logger,

	limit RateLimit,
	routingService controllers.RoutingService,
	analyzeService controllers.AnalyzeService,
	graphService controllers.GraphService,
) error {
	log.Info("Run httprouter API")

	handler := api.Handler(log, limit, routingService, analyzeService, graphService)
	srv := http_server.New(ctx, handler, config)
	log.Info(fmt.Sprintf("API run on port %d", config.Port))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		log.Info("HTTP server stopped", zap.Error(err))
		api.hub.RemoveAllUser()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case <-ctx.Done():
		log.Info("Context canceled, shutting down server")
		api.hub.RemoveAllUser()
		_ = srv.Shutdown(context.Background())
		return ctx.Err()
	}
}

func swaggerHandler(res http.ResponseWriter, req *http.Request, p httprouter.Params) {
	httpSwagger.WrapHandler(res, req)
}
