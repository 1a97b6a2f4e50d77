package osmparser

import "github.com/optirota/optirota/pkg"

type ElementKind uint8

const (
	UNKNOWN_ELEMENT ElementKind = iota
	POINT_ELEMENT
	WAY_ELEMENT
)

// PointRecord is a map point. hasCoordinates is false when the source omitted lat or lon.
type PointRecord struct {
	ID             int64
	Lat            float64
	Lon            float64
	HasCoordinates bool
}

// WayRecord is an ordered list of point ids plus the way tags.
type WayRecord struct {
	ID      int64
	NodeIDs []int64
	Tags    map[string]string
}

// Highway returns the highway tag. ok is false when the way is not a road.
func (w WayRecord) Highway() (string, bool) {
	hw, ok := w.Tags["highway"]
	if !ok {
		return "", false
	}
	if hw == "" {
		hw = pkg.DEFAULT_HIGHWAY
	}
	return hw, true
}

func (w WayRecord) Name() string {
	if name, ok := w.Tags["name"]; ok && name != "" {
		return name
	}
	return pkg.UNKNOWN_STREET_NAME
}

// IsOneWay only the literal "yes" restricts the way to its drawing direction.
func (w WayRecord) IsOneWay() bool {
	return w.Tags["oneway"] == pkg.ONEWAY_YES
}

// Element is one record of a map export: a point, a way, or something the graph builder ignores.
type Element struct {
	Kind  ElementKind
	Point PointRecord
	Way   WayRecord
}

func NewPointElement(id int64, lat, lon float64) Element {
	return Element{
		Kind:  POINT_ELEMENT,
		Point: PointRecord{ID: id, Lat: lat, Lon: lon, HasCoordinates: true},
	}
}

// NewPointElementWithoutCoordinates point record whose source lacked lat/lon.
func NewPointElementWithoutCoordinates(id int64) Element {
	return Element{
		Kind:  POINT_ELEMENT,
		Point: PointRecord{ID: id},
	}
}

func NewWayElement(id int64, nodeIDs []int64, tags map[string]string) Element {
	if tags == nil {
		tags = map[string]string{}
	}
	return Element{
		Kind: WAY_ELEMENT,
		Way:  WayRecord{ID: id, NodeIDs: nodeIDs, Tags: tags},
	}
}

// BuildStats counters collected by GraphBuilder.Build.
type BuildStats struct {
	PointRecords    int `json:"point_records"`
	RegisteredNodes int `json:"registered_nodes"`
	SkippedPoints   int `json:"skipped_points"`
	WayRecords      int `json:"way_records"`
	RoadWays        int `json:"road_ways"`
	DanglingPairs   int `json:"dangling_pairs"`
	DuplicateSkips  int `json:"duplicate_reverse_skips"`
	Edges           int `json:"edges"`
	IgnoredElements int `json:"ignored_elements"`
}
