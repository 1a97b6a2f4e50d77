package spatialindex

import (
	"errors"
	"math"

	"github.com/optirota/optirota/pkg/datastructure"
	"github.com/optirota/optirota/pkg/geo"
	"github.com/optirota/optirota/pkg/util"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

var ErrNoNearbyRoad = errors.New("no road segment near the query point")

type Rtree struct {
	tr    *rtree.RTreeG[Segment]
	graph *datastructure.Graph
}

// Segment an indexed edge, by its tail and head vertex.
type Segment struct {
	tail datastructure.Index
	head datastructure.Index
}

func (s Segment) GetTail() datastructure.Index {
	return s.tail
}

func (s Segment) GetHead() datastructure.Index {
	return s.head
}

// SnapResult the graph node chosen for a query point. DistanceToRoad is the perpendicular distance in meters from
// the query point to the nearest segment, DistanceToNode the distance to the returned node.
type SnapResult struct {
	NodeID         int64
	Lat            float64
	Lon            float64
	DistanceToRoad float64
	DistanceToNode float64
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[Segment]
	return &Rtree{
		tr: &tr,
	}
}

// Build. build r-tree, with each leaf having bounding box with radius boundingBoxRadius (in km) around both
// endpoints of an edge. A two-way road is indexed once.
func (rt *Rtree) Build(graph *datastructure.Graph, boundingBoxRadius float64, log *zap.Logger) {
	log.Info("Building R-tree spatial index...")
	rt.graph = graph

	graph.ForEdges(func(e *datastructure.Edge) {
		from := e.GetTail()
		to := e.GetHead()
		if to < from && graph.HasEdge(to, from) {
			return
		}

		fromLat, fromLon := graph.GetVertexCoordinates(from)
		toLat, toLon := graph.GetVertexCoordinates(to)
		lowerFromLat, lowerFromLon := geo.GetDestinationPoint(fromLat, fromLon, 225, boundingBoxRadius)
		upperFromLat, upperFromLon := geo.GetDestinationPoint(fromLat, fromLon, 45, boundingBoxRadius)

		lowerToLat, lowerToLon := geo.GetDestinationPoint(toLat, toLon, 225, boundingBoxRadius)
		upperToLat, upperToLon := geo.GetDestinationPoint(toLat, toLon, 45, boundingBoxRadius)

		minLat := math.Min(lowerFromLat, lowerToLat)
		minLon := math.Min(lowerFromLon, lowerToLon)
		maxLat := math.Max(upperFromLat, upperToLat)
		maxLon := math.Max(upperFromLon, upperToLon)

		rt.tr.Insert([2]float64{minLon, minLat}, [2]float64{maxLon, maxLat}, Segment{tail: from, head: to})
	})

	log.Info("R-tree spatial index built.", zap.Int("segments", rt.tr.Len()))
}

func (rt *Rtree) Len() int {
	return rt.tr.Len()
}

// SearchWithinRadius search for all segments within radius (in km) from the query point (qLat, qLon)
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radius float64) []Segment {
	lowerLat, lowerLon := geo.GetDestinationPoint(qLat, qLon, 225, radius)
	upperLat, upperLon := geo.GetDestinationPoint(qLat, qLon, 45, radius)

	results := make([]Segment, 0, 10)
	rt.tr.Search([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat},
		func(min, max [2]float64, data Segment) bool {
			results = append(results, data)
			return true
		})
	return results
}

// SnapToNearestNode finds the segment closest to (qLat, qLon) and returns whichever of its endpoints is nearer.
// The search radius (km) doubles from radius until maxRadius.
func (rt *Rtree) SnapToNearestNode(qLat, qLon, radius, maxRadius float64) (SnapResult, error) {
	if rt.graph == nil || rt.tr.Len() == 0 {
		return SnapResult{}, util.WrapErrorf(ErrNoNearbyRoad, util.ErrNotFound, "spatial index is empty")
	}
	if radius <= 0 || radius > maxRadius {
		radius = maxRadius
	}

	query := geo.NewCoordinate(qLat, qLon)
	for r := radius; ; r *= 2 {
		if r > maxRadius {
			r = maxRadius
		}
		candidates := rt.SearchWithinRadius(qLat, qLon, r)
		if len(candidates) == 0 {
			if r >= maxRadius {
				break
			}
			continue
		}

		best := SnapResult{DistanceToRoad: math.Inf(1)}
		for _, seg := range candidates {
			tailLat, tailLon := rt.graph.GetVertexCoordinates(seg.tail)
			headLat, headLon := rt.graph.GetVertexCoordinates(seg.head)
			tail := geo.NewCoordinate(tailLat, tailLon)
			head := geo.NewCoordinate(headLat, headLon)

			dRoad := segmentDistance(tail, head, query)
			if dRoad >= best.DistanceToRoad {
				continue
			}

			dTail := geo.HaversineDistance(qLat, qLon, tailLat, tailLon)
			dHead := geo.HaversineDistance(qLat, qLon, headLat, headLon)
			v, node, dNode := seg.tail, tail, dTail
			if dHead < dTail {
				v, node, dNode = seg.head, head, dHead
			}
			best = SnapResult{
				NodeID:         rt.graph.GetID(v),
				Lat:            node.GetLat(),
				Lon:            node.GetLon(),
				DistanceToRoad: dRoad,
				DistanceToNode: dNode,
			}
		}
		return best, nil
	}

	return SnapResult{}, util.WrapErrorf(ErrNoNearbyRoad, util.ErrNotFound,
		"no road within %.2f km of (%f, %f)", maxRadius, qLat, qLon)
}

func segmentDistance(a, b, q geo.Coordinate) float64 {
	if a == b {
		return geo.HaversineDistance(q.GetLat(), q.GetLon(), a.GetLat(), a.GetLon())
	}
	return geo.PointLinePerpendicularDistance(a, b, q)
}
