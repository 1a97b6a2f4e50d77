package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/julienschmidt/httprouter"
	helper "github.com/optirota/optirota/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type routingAPI struct {
	routingService RoutingService
	analyzeService AnalyzeService
	graphService   GraphService
	log            *zap.Logger
}

func New(routingService RoutingService, analyzeService AnalyzeService, graphService GraphService,
	log *zap.Logger) *routingAPI {
	return &routingAPI{
		routingService: routingService,
		analyzeService: analyzeService,
		graphService:   graphService,
		log:            log,
	}
}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.GET("/computeRoutes", api.shortestPath)
	group.GET("/computeRoutesByCoordinates", api.shortestPathByCoordinates)
	group.POST("/analyze", api.analyze)
	group.GET("/graph/geojson", api.graphGeoJSON)
	group.GET("/graph/stats", api.graphStats)
}

// shortestPath
//
//	@Summary		shortest path between two osm node ids
//	@Tags			routing
//	@Param			source		query	int		true	"origin node id"
//	@Param			destination	query	int		true	"destination node id"
//	@Param			algorithm	query	string	false	"dijkstra (default) or astar"
//	@Produce		json
//	@Router			/computeRoutes [get]
func (api *routingAPI) shortestPath(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request shortestPathRequest
		err     error
	)

	query := r.URL.Query()

	request.Source, err = strconv.ParseInt(query.Get("source"), 10, 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("source is required and must be a valid node id"))
		return
	}
	request.Destination, err = strconv.ParseInt(query.Get("destination"), 10, 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("destination is required and must be a valid node id"))
		return
	}
	request.Algorithm = query.Get("algorithm")

	if err := validate(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	res, err := api.routingService.ShortestPath(r.Context(), request.Algorithm, request.Source, request.Destination)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewRouteResponse(res)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// shortestPathByCoordinates
//
//	@Summary		shortest path between the road nodes nearest to two coordinates
//	@Tags			routing
//	@Param			origin_lat		query	number	true	"origin latitude"
//	@Param			origin_lon		query	number	true	"origin longitude"
//	@Param			destination_lat	query	number	true	"destination latitude"
//	@Param			destination_lon	query	number	true	"destination longitude"
//	@Param			algorithm		query	string	false	"dijkstra (default) or astar"
//	@Produce		json
//	@Router			/computeRoutesByCoordinates [get]
func (api *routingAPI) shortestPathByCoordinates(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request coordinateRouteRequest
		err     error
	)

	query := r.URL.Query()

	request.OriginLat, err = strconv.ParseFloat(query.Get("origin_lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("origin_lat is required and must be a valid float"))
		return
	}
	request.OriginLon, err = strconv.ParseFloat(query.Get("origin_lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("origin_lon is required and must be a valid float"))
		return
	}
	request.DestinationLat, err = strconv.ParseFloat(query.Get("destination_lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("destination_lat is required and must be a valid float"))
		return
	}
	request.DestinationLon, err = strconv.ParseFloat(query.Get("destination_lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("destination_lon is required and must be a valid float"))
		return
	}
	request.Algorithm = query.Get("algorithm")

	if err := validate(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	res, err := api.routingService.ShortestPathByCoordinates(r.Context(), request.Algorithm,
		request.OriginLat, request.OriginLon, request.DestinationLat, request.DestinationLon)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewRouteResponse(res)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// analyze
//
//	@Summary		rank sampled nodes by total shortest path distance to every other node
//	@Tags			analysis
//	@Accept			json
//	@Produce		json
//	@Router			/analyze [post]
func (api *routingAPI) analyze(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	if err := validate(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	res, err := api.analyzeService.Analyze(r.Context(), request.toParams(), nil)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewAnalyzeResponse(res)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// graphGeoJSON
//
//	@Summary		every edge of the loaded road graph as a geojson feature collection
//	@Tags			graph
//	@Produce		json
//	@Router			/graph/geojson [get]
func (api *routingAPI) graphGeoJSON(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	body, err := api.graphService.GeoJSON()
	if err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		api.logError(r, err)
	}
}

// graphStats
//
//	@Summary		size and connectivity of the loaded road graph
//	@Tags			graph
//	@Produce		json
//	@Router			/graph/stats [get]
func (api *routingAPI) graphStats(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	stats := api.graphService.Stats()
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewGraphStatsResponse(stats)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
