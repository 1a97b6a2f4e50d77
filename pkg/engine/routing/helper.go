package routing

import (
	da "github.com/optirota/optirota/pkg/datastructure"
	"github.com/optirota/optirota/pkg/util"
)

// PathCost sums the edge weights along a node id sequence. Fails when a node or a consecutive edge is missing.
func PathCost(graph *da.Graph, nodes []int64) (float64, error) {
	if len(nodes) == 0 {
		return 0, util.WrapErrorf(ErrNoPathFound, util.ErrBadParamInput, "empty node sequence")
	}

	cost := 0.0
	prev, ok := graph.GetIndex(nodes[0])
	if !ok {
		return 0, util.WrapErrorf(ErrNoPathFound, util.ErrNotFound, "node %d is not in the graph", nodes[0])
	}
	for _, id := range nodes[1:] {
		cur, ok := graph.GetIndex(id)
		if !ok {
			return 0, util.WrapErrorf(ErrNoPathFound, util.ErrNotFound, "node %d is not in the graph", id)
		}
		e, ok := graph.GetEdge(prev, cur)
		if !ok {
			return 0, util.WrapErrorf(ErrNoPathFound, util.ErrNotFound, "no edge %d -> %d",
				graph.GetID(prev), id)
		}
		cost += e.GetWeight()
		prev = cur
	}
	return cost, nil
}

// SamePath reports whether two paths visit the same nodes in the same order.
func SamePath(a, b da.Path) bool {
	if len(a.Nodes) != len(b.Nodes) {
		return false
	}
	for i := range a.Nodes {
		if a.Nodes[i] != b.Nodes[i] {
			return false
		}
	}
	return true
}
