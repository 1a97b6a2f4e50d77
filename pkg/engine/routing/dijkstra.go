package routing

import (
	"github.com/optirota/optirota/pkg"
	da "github.com/optirota/optirota/pkg/datastructure"
	"github.com/optirota/optirota/pkg/util"
)

// graphSearch is the label-setting search shared by Dijkstra and A*. heuristic is nil for plain Dijkstra.
type graphSearch struct {
	graph     *da.Graph
	state     *queryState
	heuristic func(v da.Index) float64
}

func (gs *graphSearch) priority(v da.Index, dist float64) float64 {
	if gs.heuristic == nil {
		return dist
	}
	return dist + gs.heuristic(v)
}

// run searches from s until t is settled or the frontier is empty. Pass da.INVALID_VERTEX_ID as t to settle
// every reachable vertex. A label is replaced only on a strictly smaller distance; a settled vertex that gets
// a strictly smaller distance is reopened.
func (gs *graphSearch) run(s, t da.Index) bool {
	qs := gs.state
	qs.reset()

	qs.label(s, 0, da.INVALID_VERTEX_ID)
	qs.pq.Insert(gs.priority(s, 0), queryKey{vertex: s, dist: 0})

	for !qs.pq.IsEmpty() {
		node, _ := qs.pq.ExtractMin()
		key := node.GetItem()
		u := key.vertex

		if key.dist > qs.info[u].dist || qs.info[u].settled {
			// stale entry
			continue
		}
		qs.info[u].settled = true
		qs.numSettledNodes++

		if u == t {
			return true
		}

		du := qs.info[u].dist
		gs.graph.ForOutEdgesOf(u, func(e *da.Edge) {
			v := e.GetHead()
			newDist := du + e.GetWeight()
			if newDist >= pkg.INF_WEIGHT || newDist >= qs.info[v].dist {
				return
			}
			qs.label(v, newDist, u)
			qs.pq.Insert(gs.priority(v, newDist), queryKey{vertex: v, dist: newDist})
		})
	}

	return t == da.INVALID_VERTEX_ID
}

func (gs *graphSearch) resolve(s, t int64) (da.Index, da.Index, error) {
	sIdx, ok := gs.graph.GetIndex(s)
	if !ok {
		return 0, 0, util.WrapErrorf(ErrNoPathFound, util.ErrNotFound, "node %d is not in the graph", s)
	}
	tIdx, ok := gs.graph.GetIndex(t)
	if !ok {
		return 0, 0, util.WrapErrorf(ErrNoPathFound, util.ErrNotFound, "node %d is not in the graph", t)
	}
	return sIdx, tIdx, nil
}

func (gs *graphSearch) retrievePath(t da.Index) da.Path {
	nodes := make([]int64, 0, 16)
	for v := t; v != da.INVALID_VERTEX_ID; v = gs.state.getParent(v) {
		nodes = append(nodes, gs.graph.GetID(v))
	}
	return da.NewPath(util.ReverseG(nodes), gs.state.getDist(t))
}

func (gs *graphSearch) NumSettledNodes() int {
	return gs.state.numSettledNodes
}

type Dijkstra struct {
	graphSearch
}

func NewDijkstra(graph *da.Graph) *Dijkstra {
	return newDijkstraWithState(graph, newQueryState(graph.NumberOfVertices()))
}

func newDijkstraWithState(graph *da.Graph, qs *queryState) *Dijkstra {
	return &Dijkstra{graphSearch{graph: graph, state: qs}}
}

// ShortestPath returns the least-cost path from s to t. ErrNoPathFound when t is unreachable or either id is
// unknown. s == t yields the single node path with cost 0.
func (d *Dijkstra) ShortestPath(s, t int64) (da.Path, error) {
	sIdx, tIdx, err := d.resolve(s, t)
	if err != nil {
		return da.Path{}, err
	}

	if !d.run(sIdx, tIdx) {
		return da.Path{}, util.WrapErrorf(ErrNoPathFound, util.ErrNotFound, "no path from %d to %d", s, t)
	}
	return d.retrievePath(tIdx), nil
}

// ShortestPathTree single-source shortest paths, from s to all other vertices.
func (d *Dijkstra) ShortestPathTree(s int64) (*ShortestPathTree, error) {
	sIdx, ok := d.graph.GetIndex(s)
	if !ok {
		return nil, util.WrapErrorf(ErrNoPathFound, util.ErrNotFound, "node %d is not in the graph", s)
	}
	d.run(sIdx, da.INVALID_VERTEX_ID)

	n := d.graph.NumberOfVertices()
	tree := &ShortestPathTree{
		graph:  d.graph,
		source: sIdx,
		dist:   make([]float64, n),
		parent: make([]da.Index, n),
	}
	for v := 0; v < n; v++ {
		tree.dist[v] = d.state.info[v].dist
		tree.parent[v] = d.state.info[v].parent
	}
	return tree, nil
}

// ShortestPathTree distances and predecessors of a single-source search. Safe for concurrent reads.
type ShortestPathTree struct {
	graph  *da.Graph
	source da.Index
	dist   []float64
	parent []da.Index
}

func (spt *ShortestPathTree) Source() int64 {
	return spt.graph.GetID(spt.source)
}

// DistanceTo returns the shortest path cost to t, ok is false when t is unknown or unreachable.
func (spt *ShortestPathTree) DistanceTo(t int64) (float64, bool) {
	tIdx, ok := spt.graph.GetIndex(t)
	if !ok || spt.dist[tIdx] >= pkg.INF_WEIGHT {
		return 0, false
	}
	return spt.dist[tIdx], true
}

func (spt *ShortestPathTree) PathTo(t int64) (da.Path, error) {
	tIdx, ok := spt.graph.GetIndex(t)
	if !ok {
		return da.Path{}, util.WrapErrorf(ErrNoPathFound, util.ErrNotFound, "node %d is not in the graph", t)
	}
	if spt.dist[tIdx] >= pkg.INF_WEIGHT {
		return da.Path{}, util.WrapErrorf(ErrNoPathFound, util.ErrNotFound, "no path from %d to %d",
			spt.Source(), t)
	}

	nodes := make([]int64, 0, 16)
	for v := tIdx; v != da.INVALID_VERTEX_ID; v = spt.parent[v] {
		nodes = append(nodes, spt.graph.GetID(v))
	}
	return da.NewPath(util.ReverseG(nodes), spt.dist[tIdx]), nil
}
