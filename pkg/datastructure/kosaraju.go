package datastructure

import "github.com/optirota/optirota/pkg/util"

// RunKosaraju. runs kosaraju's algorithm and returns the strongly connected component id of every vertex
// and the number of components. Component ids follow discovery order on the reversed graph.
func (g *Graph) RunKosaraju() ([]Index, int) {
	n := g.NumberOfVertices()

	order := make([]Index, 0, n)
	visited := make([]bool, n)
	for v := 0; v < n; v++ {
		if !visited[v] {
			g.postOrder(Index(v), visited, &order, g.outNeighbours)
		}
	}

	order = util.ReverseG[Index](order)

	reversed := g.reversedAdjacency()
	inNeighbours := func(v Index) []Index {
		return reversed[v]
	}

	visited = make([]bool, n)
	sccs := make([]Index, n)
	numComponents := 0
	for _, v := range order {
		if visited[v] {
			continue
		}
		component := make([]Index, 0, 10)
		g.postOrder(v, visited, &component, inNeighbours)
		for _, u := range component {
			sccs[u] = Index(numComponents)
		}
		numComponents++
	}

	return sccs, numComponents
}

func (g *Graph) outNeighbours(v Index) []Index {
	heads := make([]Index, 0, len(g.outEdges[v]))
	for i := range g.outEdges[v] {
		heads = append(heads, g.outEdges[v][i].head)
	}
	return heads
}

func (g *Graph) reversedAdjacency() [][]Index {
	reversed := make([][]Index, g.NumberOfVertices())
	g.ForEdges(func(e *Edge) {
		reversed[e.head] = append(reversed[e.head], e.tail)
	})
	return reversed
}

type dfsFrame struct {
	v         Index
	next      int
	neighbors []Index
}

// postOrder iterative dfs from s, appending vertices to output in post-order.
func (g *Graph) postOrder(s Index, visited []bool, output *[]Index, neighbours func(v Index) []Index) {
	visited[s] = true
	stack := []dfsFrame{{v: s, neighbors: neighbours(s)}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next < len(top.neighbors) {
			w := top.neighbors[top.next]
			top.next++
			if !visited[w] {
				visited[w] = true
				stack = append(stack, dfsFrame{v: w, neighbors: neighbours(w)})
			}
			continue
		}
		*output = append(*output, top.v)
		stack = stack[:len(stack)-1]
	}
}

// Reachable marks every vertex reachable from s by following edge directions (breadth-first).
func (g *Graph) Reachable(s Index) []bool {
	seen := make([]bool, g.NumberOfVertices())
	if !g.validIndex(s) {
		return seen
	}
	seen[s] = true
	queue := []Index{s}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		g.ForOutEdgesOf(u, func(e *Edge) {
			if !seen[e.head] {
				seen[e.head] = true
				queue = append(queue, e.head)
			}
		})
	}
	return seen
}
