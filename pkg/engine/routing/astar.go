package routing

import (
	da "github.com/optirota/optirota/pkg/datastructure"
	"github.com/optirota/optirota/pkg/geo"
	"github.com/optirota/optirota/pkg/util"
)

// AStar goal-directed search. The priority of a vertex is its tentative distance plus the great-circle distance
// to the target. Edge weights are great-circle lengths of their segments, so the estimate never overshoots.
type AStar struct {
	graphSearch
}

func NewAStar(graph *da.Graph) *AStar {
	return newAStarWithState(graph, newQueryState(graph.NumberOfVertices()))
}

func newAStarWithState(graph *da.Graph, qs *queryState) *AStar {
	return &AStar{graphSearch{graph: graph, state: qs}}
}

func (as *AStar) ShortestPath(s, t int64) (da.Path, error) {
	sIdx, tIdx, err := as.resolve(s, t)
	if err != nil {
		return da.Path{}, err
	}

	tLat, tLon := as.graph.GetVertexCoordinates(tIdx)
	as.heuristic = func(v da.Index) float64 {
		lat, lon := as.graph.GetVertexCoordinates(v)
		return geo.HaversineDistance(lat, lon, tLat, tLon)
	}

	if !as.run(sIdx, tIdx) {
		return da.Path{}, util.WrapErrorf(ErrNoPathFound, util.ErrNotFound, "no path from %d to %d", s, t)
	}
	return as.retrievePath(tIdx), nil
}
