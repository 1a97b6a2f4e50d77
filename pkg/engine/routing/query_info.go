package routing

import (
	"github.com/optirota/optirota/pkg"
	da "github.com/optirota/optirota/pkg/datastructure"
)

type queryKey struct {
	vertex da.Index
	dist   float64 // tentative distance at push time, entries with a larger value than the label are stale
}

type vertexInfo struct {
	dist    float64
	parent  da.Index
	settled bool
}

func newVertexInfo() vertexInfo {
	return vertexInfo{dist: pkg.INF_WEIGHT, parent: da.INVALID_VERTEX_ID}
}

// queryState holds the labels of one search. Only touched vertices are reset between searches.
type queryState struct {
	info    []vertexInfo
	touched []da.Index
	pq      *da.MinHeap[queryKey]

	numSettledNodes int
}

func newQueryState(n int) *queryState {
	qs := &queryState{
		info:    make([]vertexInfo, n),
		touched: make([]da.Index, 0, 64),
		pq:      da.NewFourAryHeap[queryKey](),
	}
	for i := range qs.info {
		qs.info[i] = newVertexInfo()
	}
	return qs
}

func (qs *queryState) reset() {
	for _, v := range qs.touched {
		qs.info[v] = newVertexInfo()
	}
	qs.touched = qs.touched[:0]
	qs.pq.Clear()
	qs.numSettledNodes = 0
}

func (qs *queryState) label(v da.Index, dist float64, parent da.Index) {
	if qs.info[v].dist == pkg.INF_WEIGHT && qs.info[v].parent == da.INVALID_VERTEX_ID {
		qs.touched = append(qs.touched, v)
	}
	qs.info[v].dist = dist
	qs.info[v].parent = parent
	qs.info[v].settled = false
}

func (qs *queryState) getDist(v da.Index) float64 {
	return qs.info[v].dist
}

func (qs *queryState) getParent(v da.Index) da.Index {
	return qs.info[v].parent
}
