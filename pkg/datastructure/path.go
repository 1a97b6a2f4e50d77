package datastructure

// Path is a route as an ordered, non-empty sequence of node ids. Cost is the sum of edge weights (meters).
type Path struct {
	Nodes []int64 `json:"nodes"`
	Cost  float64 `json:"cost"`
}

func NewPath(nodes []int64, cost float64) Path {
	return Path{Nodes: nodes, Cost: cost}
}

// Hops number of edges on the path.
func (p Path) Hops() int {
	if len(p.Nodes) == 0 {
		return 0
	}
	return len(p.Nodes) - 1
}

func (p Path) IsEmpty() bool {
	return len(p.Nodes) == 0
}

func (p Path) Source() int64 {
	return p.Nodes[0]
}

func (p Path) Target() int64 {
	return p.Nodes[len(p.Nodes)-1]
}
