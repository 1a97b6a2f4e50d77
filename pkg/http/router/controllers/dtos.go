package controllers

import (
	"github.com/optirota/optirota/pkg/analyzer"
	"github.com/optirota/optirota/pkg/http/usecases"
	"github.com/optirota/optirota/pkg/report"
)

type shortestPathRequest struct {
	Source      int64  `json:"source" validate:"gt=0"`
	Destination int64  `json:"destination" validate:"gt=0"`
	Algorithm   string `json:"algorithm" validate:"omitempty,max=16"`
}

type coordinateRouteRequest struct {
	OriginLat      float64 `json:"origin_lat" validate:"min=-90,max=90"`
	OriginLon      float64 `json:"origin_lon" validate:"min=-180,max=180"`
	DestinationLat float64 `json:"destination_lat" validate:"min=-90,max=90"`
	DestinationLon float64 `json:"destination_lon" validate:"min=-180,max=180"`
	Algorithm      string  `json:"algorithm" validate:"omitempty,max=16"`
}

type routeResponse struct {
	Algorithm       string       `json:"algorithm"`
	Distance        float64      `json:"distance"`
	Hops            int          `json:"hops"`
	Nodes           []int64      `json:"nodes"`
	Path            string       `json:"path"`
	Coordinates     [][2]float64 `json:"coordinates"`
	OriginSnap      float64      `json:"origin_snap_distance,omitempty"`
	DestinationSnap float64      `json:"destination_snap_distance,omitempty"`
}

func NewRouteResponse(res usecases.RouteResult) routeResponse {
	coords := make([][2]float64, 0, len(res.Coordinates))
	for _, c := range res.Coordinates {
		coords = append(coords, [2]float64{c.GetLat(), c.GetLon()})
	}
	return routeResponse{
		Algorithm:       res.Algorithm,
		Distance:        res.Path.Cost,
		Hops:            res.Path.Hops(),
		Nodes:           res.Path.Nodes,
		Path:            res.Polyline,
		Coordinates:     coords,
		OriginSnap:      res.OriginSnap,
		DestinationSnap: res.DestinationSnap,
	}
}

type analyzeRequest struct {
	Algorithm string `json:"algorithm" validate:"omitempty,max=16"`
	Sample    int    `json:"sample" validate:"gte=0"`
	Seed      uint64 `json:"seed"`
	Top       int    `json:"top" validate:"gte=0,lte=1000"`
	Details   bool   `json:"details"`
}

func (r analyzeRequest) toParams() usecases.AnalyzeParams {
	return usecases.AnalyzeParams{
		Algorithm: r.Algorithm,
		Sample:    r.Sample,
		Seed:      r.Seed,
		Top:       r.Top,
		Details:   r.Details,
	}
}

type rankEntry struct {
	Source    int64   `json:"source"`
	TotalCost float64 `json:"total_cost"`
}

type bestPoint struct {
	Source    int64   `json:"source"`
	TotalCost float64 `json:"total_cost"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
}

type analyzeResponse struct {
	Algorithm      string                         `json:"algorithm"`
	Analyzed       int                            `json:"analyzed"`
	Best           *bestPoint                     `json:"best"`
	Ranking        []rankEntry                    `json:"ranking"`
	Mean           float64                        `json:"mean"`
	Max            float64                        `json:"max"`
	Min            float64                        `json:"min"`
	ElapsedSeconds float64                        `json:"elapsed_seconds"`
	Results        map[string]report.SourceResult `json:"results,omitempty"`
}

func NewAnalyzeResponse(res usecases.AnalyzeResult) analyzeResponse {
	s := res.Summary
	resp := analyzeResponse{
		Algorithm:      s.Algorithm,
		Analyzed:       s.Analyzed,
		Ranking:        newRankEntries(s.Ranking),
		Mean:           s.Mean,
		Max:            s.Max,
		Min:            s.Min,
		ElapsedSeconds: res.Elapsed.Seconds(),
		Results:        res.Results,
	}
	if s.Best != nil {
		resp.Best = &bestPoint{
			Source:    s.Best.Source,
			TotalCost: s.Best.TotalCost,
			Lat:       s.BestLat,
			Lon:       s.BestLon,
		}
	}
	return resp
}

func newRankEntries(ranking []analyzer.RankEntry) []rankEntry {
	entries := make([]rankEntry, 0, len(ranking))
	for _, e := range ranking {
		entries = append(entries, rankEntry{Source: e.Source, TotalCost: e.TotalCost})
	}
	return entries
}

type progressMessage struct {
	Type      string  `json:"type"`
	Done      int     `json:"done"`
	Total     int     `json:"total"`
	Source    int64   `json:"source"`
	TotalCost float64 `json:"total_cost"`
	Valid     int     `json:"valid_count"`
}

type graphStatsResponse struct {
	Vertices   int     `json:"vertices"`
	Edges      int     `json:"edges"`
	Components int     `json:"strongly_connected_components"`
	CenterLat  float64 `json:"center_lat"`
	CenterLon  float64 `json:"center_lon"`
}

func NewGraphStatsResponse(s usecases.GraphStats) graphStatsResponse {
	return graphStatsResponse{
		Vertices:   s.Vertices,
		Edges:      s.Edges,
		Components: s.Components,
		CenterLat:  s.CenterLat,
		CenterLon:  s.CenterLon,
	}
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
