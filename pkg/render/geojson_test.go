package render

import (
	"bytes"
	"testing"

	da "github.com/optirota/optirota/pkg/datastructure"
	"github.com/optirota/optirota/pkg/util"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallGraph(t *testing.T) *da.Graph {
	g := da.NewGraph()
	a := g.AddNode(1, -9.65, -35.71)
	b := g.AddNode(2, -9.65, -35.70)
	c := g.AddNode(3, -9.64, -35.70)
	require.NoError(t, g.AddEdge(a, b, 1098.5, "primary", "Avenida Fernandes Lima"))
	require.NoError(t, g.AddEdge(b, a, 1098.5, "primary", "Avenida Fernandes Lima"))
	require.NoError(t, g.AddEdge(b, c, 1111.9, "cycleway", ""))
	return g
}

func TestHighwayStyle(t *testing.T) {
	testCases := []struct {
		highway string
		want    Style
	}{
		{highway: "motorway", want: Style{Width: 4, Color: "red"}},
		{highway: "primary", want: Style{Width: 3.5, Color: "orange"}},
		{highway: "residential", want: Style{Width: 2, Color: "blue"}},
		{highway: "footway", want: Style{Width: 1, Color: "gray"}},
		{highway: "primary_link", want: Style{Width: 3.5, Color: "orange"}},
		{highway: "cycleway", want: Style{Width: DEFAULT_WIDTH, Color: DEFAULT_COLOR}},
		{highway: "", want: Style{Width: DEFAULT_WIDTH, Color: DEFAULT_COLOR}},
	}

	for _, tc := range testCases {
		t.Run(tc.highway, func(t *testing.T) {
			assert.Equal(t, tc.want, HighwayStyle(tc.highway))
		})
	}
}

func TestGraphFeatureCollection(t *testing.T) {
	g := smallGraph(t)
	fc := GraphFeatureCollection(g, Options{})

	require.Len(t, fc.Features, 3)
	first := fc.Features[0]
	line, ok := first.Geometry.(orb.LineString)
	require.True(t, ok)
	assert.Equal(t, orb.Point{-35.71, -9.65}, line[0])
	assert.Equal(t, orb.Point{-35.70, -9.65}, line[1])
	assert.Equal(t, "orange", first.Properties["stroke"])
	assert.Equal(t, 3.5, first.Properties["stroke-width"])
	assert.Equal(t, "Avenida Fernandes Lima", first.Properties["name"])

	require.NotNil(t, fc.BBox)
	assert.Equal(t, orb.Bound{Min: orb.Point{-35.71, -9.65}, Max: orb.Point{-35.70, -9.64}}, fc.BBox.Bound())

	withNodes := GraphFeatureCollection(g, Options{IncludeNodes: true})
	assert.Len(t, withNodes.Features, 6)
}

func TestAddPath(t *testing.T) {
	g := smallGraph(t)
	fc := GraphFeatureCollection(g, Options{})

	path := da.NewPath([]int64{1, 2, 3}, 2210.4)
	require.NoError(t, AddPath(fc, g, path, "dijkstra"))

	route := fc.Features[len(fc.Features)-1]
	line, ok := route.Geometry.(orb.LineString)
	require.True(t, ok)
	assert.Len(t, line, 3)
	assert.Equal(t, ROUTE_COLOR, route.Properties["stroke"])
	assert.Equal(t, 2, route.Properties["hops"])
	assert.Equal(t, "dijkstra", route.Properties["route"])

	err := AddPath(fc, g, da.NewPath([]int64{1, 42}, 10), "broken")
	assert.ErrorIs(t, err, util.ErrNotFound)
	err = AddPath(fc, g, da.Path{}, "empty")
	assert.ErrorIs(t, err, util.ErrBadParamInput)
}

func TestWriteGeoJSON(t *testing.T) {
	g := smallGraph(t)
	fc := GraphFeatureCollection(g, Options{})
	require.NoError(t, AddPath(fc, g, da.NewPath([]int64{2, 1}, 1098.5), "astar"))

	var buf bytes.Buffer
	require.NoError(t, WriteGeoJSON(&buf, fc))

	decoded, err := geojson.UnmarshalFeatureCollection(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, decoded.Features, 4)
	assert.Equal(t, "FeatureCollection", decoded.Type)
	assert.Equal(t, "astar", decoded.Features[3].Properties.MustString("route"))
	assert.Equal(t, "primary", decoded.Features[0].Properties.MustString("highway"))
}
