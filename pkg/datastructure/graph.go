package datastructure

import (
	"errors"
	"fmt"
	"math"

	"github.com/optirota/optirota/pkg"
)

type Index uint32

const INVALID_VERTEX_ID Index = math.MaxUint32

var (
	ErrVertexNotFound = errors.New("vertex not found")
	ErrInvalidWeight  = errors.New("edge weight must be a finite non-negative number")
)

// Node is a road network point. It keeps the id assigned by the map source.
type Node struct {
	id  int64
	lat float64
	lon float64
}

func NewNode(id int64, lat, lon float64) Node {
	return Node{id: id, lat: lat, lon: lon}
}

func (n Node) GetID() int64 {
	return n.id
}

func (n Node) GetLat() float64 {
	return n.lat
}

func (n Node) GetLon() float64 {
	return n.lon
}

// Edge is a directed road segment between two dense vertex indices. weight is in meters.
type Edge struct {
	tail    Index
	head    Index
	weight  float64
	highway string
	name    string
}

func NewEdge(tail, head Index, weight float64, highway, name string) Edge {
	if name == "" {
		name = pkg.UNKNOWN_STREET_NAME
	}
	if highway == "" {
		highway = pkg.DEFAULT_HIGHWAY
	}
	return Edge{tail: tail, head: head, weight: weight, highway: highway, name: name}
}

func (e *Edge) GetTail() Index {
	return e.tail
}

func (e *Edge) GetHead() Index {
	return e.head
}

func (e *Edge) GetWeight() float64 {
	return e.weight
}

func (e *Edge) GetHighway() string {
	return e.highway
}

func (e *Edge) GetName() string {
	return e.name
}

// Graph is a directed road graph. External node ids are mapped once to dense indices, and every
// vertex owns an adjacency list of outgoing edges. At most one edge exists per ordered (tail, head) pair.
//
// A Graph is mutated only while it is being built; afterwards it is shared read-only by queries.
type Graph struct {
	nodes     []Node
	idToIndex map[int64]Index
	outEdges  [][]Edge
	numEdges  int
}

func NewGraph() *Graph {
	return NewGraphWithCapacity(0)
}

func NewGraphWithCapacity(numNodes int) *Graph {
	return &Graph{
		nodes:     make([]Node, 0, numNodes),
		idToIndex: make(map[int64]Index, numNodes),
		outEdges:  make([][]Edge, 0, numNodes),
	}
}

// AddNode registers id with its coordinates and returns its dense index. Registering an id again keeps
// its index and replaces the coordinates.
func (g *Graph) AddNode(id int64, lat, lon float64) Index {
	if v, ok := g.idToIndex[id]; ok {
		g.nodes[v] = NewNode(id, lat, lon)
		return v
	}
	v := Index(len(g.nodes))
	g.nodes = append(g.nodes, NewNode(id, lat, lon))
	g.outEdges = append(g.outEdges, nil)
	g.idToIndex[id] = v
	return v
}

// AddEdge adds the directed edge tail->head. When the pair already has an edge its weight and metadata are
// replaced instead of adding a parallel edge.
func (g *Graph) AddEdge(tail, head Index, weight float64, highway, name string) error {
	if !g.validIndex(tail) || !g.validIndex(head) {
		return fmt.Errorf("edge %d->%d: %w", tail, head, ErrVertexNotFound)
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight < 0 {
		return fmt.Errorf("edge %d->%d weight %v: %w", tail, head, weight, ErrInvalidWeight)
	}

	if e := g.findEdge(tail, head); e != nil {
		*e = NewEdge(tail, head, weight, highway, name)
		return nil
	}
	g.outEdges[tail] = append(g.outEdges[tail], NewEdge(tail, head, weight, highway, name))
	g.numEdges++
	return nil
}

func (g *Graph) findEdge(tail, head Index) *Edge {
	edges := g.outEdges[tail]
	for i := range edges {
		if edges[i].head == head {
			return &edges[i]
		}
	}
	return nil
}

func (g *Graph) validIndex(v Index) bool {
	return int(v) < len(g.nodes)
}

func (g *Graph) HasEdge(tail, head Index) bool {
	if !g.validIndex(tail) || !g.validIndex(head) {
		return false
	}
	return g.findEdge(tail, head) != nil
}

// GetEdge returns a copy of the edge tail->head.
func (g *Graph) GetEdge(tail, head Index) (Edge, bool) {
	if !g.validIndex(tail) || !g.validIndex(head) {
		return Edge{}, false
	}
	e := g.findEdge(tail, head)
	if e == nil {
		return Edge{}, false
	}
	return *e, true
}

func (g *Graph) NumberOfVertices() int {
	return len(g.nodes)
}

func (g *Graph) NumberOfEdges() int {
	return g.numEdges
}

func (g *Graph) GetIndex(id int64) (Index, bool) {
	v, ok := g.idToIndex[id]
	return v, ok
}

func (g *Graph) GetNode(v Index) Node {
	return g.nodes[v]
}

func (g *Graph) GetNodeByID(id int64) (Node, bool) {
	v, ok := g.idToIndex[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[v], true
}

func (g *Graph) GetID(v Index) int64 {
	return g.nodes[v].id
}

func (g *Graph) GetVertexCoordinates(v Index) (float64, float64) {
	return g.nodes[v].lat, g.nodes[v].lon
}

func (g *Graph) GetOutDegree(v Index) int {
	return len(g.outEdges[v])
}

// ForOutEdgesOf calls handle for every outgoing edge of v, in insertion order.
func (g *Graph) ForOutEdgesOf(v Index, handle func(e *Edge)) {
	edges := g.outEdges[v]
	for i := range edges {
		handle(&edges[i])
	}
}

// ForVertices iterates vertices in index order.
func (g *Graph) ForVertices(handle func(v Index, n Node)) {
	for v := range g.nodes {
		handle(Index(v), g.nodes[v])
	}
}

// ForEdges iterates every edge grouped by tail vertex.
func (g *Graph) ForEdges(handle func(e *Edge)) {
	for v := range g.outEdges {
		g.ForOutEdgesOf(Index(v), handle)
	}
}

// NodeIDs returns the external ids of every vertex in index order.
func (g *Graph) NodeIDs() []int64 {
	ids := make([]int64, len(g.nodes))
	for v, n := range g.nodes {
		ids[v] = n.id
	}
	return ids
}

// BoundingBox returns min/max lat/lon over all vertices. ok is false for an empty graph.
func (g *Graph) BoundingBox() (minLat, minLon, maxLat, maxLon float64, ok bool) {
	if len(g.nodes) == 0 {
		return 0, 0, 0, 0, false
	}
	minLat, minLon = math.Inf(1), math.Inf(1)
	maxLat, maxLon = math.Inf(-1), math.Inf(-1)
	for _, n := range g.nodes {
		minLat = math.Min(minLat, n.lat)
		minLon = math.Min(minLon, n.lon)
		maxLat = math.Max(maxLat, n.lat)
		maxLon = math.Max(maxLon, n.lon)
	}
	return minLat, minLon, maxLat, maxLon, true
}

// Center returns the mean coordinate of the vertices, used to center rendered maps.
func (g *Graph) Center() (float64, float64) {
	if len(g.nodes) == 0 {
		return 0, 0
	}
	sumLat, sumLon := 0.0, 0.0
	for _, n := range g.nodes {
		sumLat += n.lat
		sumLon += n.lon
	}
	return sumLat / float64(len(g.nodes)), sumLon / float64(len(g.nodes))
}
