package render

import (
	"io"

	"github.com/optirota/optirota/pkg"
	da "github.com/optirota/optirota/pkg/datastructure"
	"github.com/optirota/optirota/pkg/util"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

const (
	EDGE_OPACITY  = 0.7
	ROUTE_COLOR   = "red"
	ROUTE_WIDTH   = 5.0
	DEFAULT_COLOR = "gray"
	DEFAULT_WIDTH = 1.5
)

type Style struct {
	Width float64
	Color string
}

var highwayStyles = map[pkg.OsmHighwayType]Style{
	pkg.MOTORWAY:      {Width: 4, Color: "red"},
	pkg.TRUNK:         {Width: 4, Color: "red"},
	pkg.PRIMARY:       {Width: 3.5, Color: "orange"},
	pkg.SECONDARY:     {Width: 3, Color: "purple"},
	pkg.TERTIARY:      {Width: 2.5, Color: "black"},
	pkg.RESIDENTIAL:   {Width: 2, Color: "blue"},
	pkg.SERVICE:       {Width: 1.5, Color: "green"},
	pkg.UNCLASSIFIED:  {Width: 1.5, Color: "green"},
	pkg.LIVING_STREET: {Width: 1.5, Color: "green"},
	pkg.FOOTWAY:       {Width: 1, Color: "gray"},
	pkg.PATH:          {Width: 1, Color: "gray"},
}

// HighwayStyle stroke width and colour for a highway class (links share their road's class), 1.5/gray for
// classes without an entry.
func HighwayStyle(highway string) Style {
	if s, ok := highwayStyles[pkg.GetHighwayType(highway)]; ok {
		return s
	}
	return Style{Width: DEFAULT_WIDTH, Color: DEFAULT_COLOR}
}

type Options struct {
	IncludeNodes bool
}

func point(g *da.Graph, v da.Index) orb.Point {
	lat, lon := g.GetVertexCoordinates(v)
	return orb.Point{lon, lat}
}

// GraphFeatureCollection one LineString feature per directed edge, styled after its highway class, plus one
// Point feature per node when opts.IncludeNodes is set.
func GraphFeatureCollection(g *da.Graph, opts Options) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	if minLat, minLon, maxLat, maxLon, ok := g.BoundingBox(); ok {
		fc.BBox = geojson.NewBBox(orb.Bound{Min: orb.Point{minLon, minLat}, Max: orb.Point{maxLon, maxLat}})
	}

	g.ForEdges(func(e *da.Edge) {
		style := HighwayStyle(e.GetHighway())
		f := geojson.NewFeature(orb.LineString{point(g, e.GetTail()), point(g, e.GetHead())})
		f.Properties["from"] = g.GetID(e.GetTail())
		f.Properties["to"] = g.GetID(e.GetHead())
		f.Properties["highway"] = e.GetHighway()
		f.Properties["name"] = e.GetName()
		f.Properties["weight_m"] = util.RoundFloat(e.GetWeight(), 2)
		f.Properties["stroke"] = style.Color
		f.Properties["stroke-width"] = style.Width
		f.Properties["stroke-opacity"] = EDGE_OPACITY
		fc.Append(f)
	})

	if opts.IncludeNodes {
		g.ForVertices(func(v da.Index, n da.Node) {
			f := geojson.NewFeature(orb.Point{n.GetLon(), n.GetLat()})
			f.Properties["id"] = n.GetID()
			f.Properties["marker-size"] = "small"
			fc.Append(f)
		})
	}
	return fc
}

// AddPath appends the route as a highlighted LineString.
func AddPath(fc *geojson.FeatureCollection, g *da.Graph, path da.Path, label string) error {
	if path.IsEmpty() {
		return util.WrapErrorf(da.ErrVertexNotFound, util.ErrBadParamInput, "empty path")
	}

	line := make(orb.LineString, 0, len(path.Nodes))
	for _, id := range path.Nodes {
		v, ok := g.GetIndex(id)
		if !ok {
			return util.WrapErrorf(da.ErrVertexNotFound, util.ErrNotFound, "path node %d is not in the graph", id)
		}
		line = append(line, point(g, v))
	}

	f := geojson.NewFeature(line)
	f.Properties["route"] = label
	f.Properties["cost_m"] = util.RoundFloat(path.Cost, 2)
	f.Properties["hops"] = path.Hops()
	f.Properties["stroke"] = ROUTE_COLOR
	f.Properties["stroke-width"] = ROUTE_WIDTH
	f.Properties["stroke-opacity"] = 1.0
	fc.Append(f)
	return nil
}

func WriteGeoJSON(w io.Writer, fc *geojson.FeatureCollection) error {
	data, err := fc.MarshalJSON()
	if err != nil {
		return util.WrapErrorf(err, util.ErrInternalServerError, "marshal geojson")
	}
	if _, err := w.Write(data); err != nil {
		return util.WrapErrorf(err, util.ErrInternalServerError, "write geojson")
	}
	return nil
}
