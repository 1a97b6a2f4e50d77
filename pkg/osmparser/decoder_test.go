package osmparser

import (
	"context"
	"strings"
	"testing"

	"github.com/optirota/optirota/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDetectFormat(t *testing.T) {
	testCases := []struct {
		path       string
		format     SourceFormat
		compressed bool
	}{
		{path: "data/mapa_maceio.json", format: FORMAT_OVERPASS_JSON},
		{path: "data/MAPA.JSON.BZ2", format: FORMAT_OVERPASS_JSON, compressed: true},
		{path: "data/alagoas-latest.osm.pbf", format: FORMAT_OSM_PBF},
		{path: "data/centro.osm", format: FORMAT_OSM_XML},
		{path: "data/centro.osm.bz2", format: FORMAT_OSM_XML, compressed: true},
		{path: "export.xml", format: FORMAT_OSM_XML},
		{path: "no_extension", format: FORMAT_OVERPASS_JSON},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			format, compressed := DetectFormat(tc.path)
			assert.Equal(t, tc.format, format)
			assert.Equal(t, tc.compressed, compressed)
		})
	}
}

func TestDecodeOverpassJSON(t *testing.T) {
	input := `{"elements": [
		{"type": "node", "id": 1, "lat": -9.6498, "lon": -35.7089},
		{"type": "node", "id": 2, "lat": 0, "lon": 0},
		{"type": "node", "id": 3, "lat": 1.5},
		{"type": "way", "id": 7, "nodes": [1, 2], "tags": {"highway": "primary", "oneway": "yes"}},
		{"type": "way", "id": 8, "nodes": [2, 1]},
		{"type": "relation", "id": 9}
	]}`

	elements, err := DecodeOverpassJSON(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, elements, 6)

	assert.Equal(t, NewPointElement(1, -9.6498, -35.7089), elements[0])
	// zero coordinates are real coordinates
	assert.True(t, elements[1].Point.HasCoordinates)
	assert.False(t, elements[2].Point.HasCoordinates)

	assert.Equal(t, WAY_ELEMENT, elements[3].Kind)
	assert.Equal(t, []int64{1, 2}, elements[3].Way.NodeIDs)
	assert.True(t, elements[3].Way.IsOneWay())

	assert.Equal(t, WAY_ELEMENT, elements[4].Kind)
	assert.NotNil(t, elements[4].Way.Tags)
	_, isRoad := elements[4].Way.Highway()
	assert.False(t, isRoad)

	assert.Equal(t, UNKNOWN_ELEMENT, elements[5].Kind)
}

func TestDecodeOverpassJSONMalformed(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "not json", input: "<osm></osm>"},
		{name: "truncated", input: `{"elements": [{"type": "node"`},
		{name: "missing elements", input: `{"version": 0.6}`},
		{name: "null elements", input: `{"elements": null}`},
		{name: "elements not an array", input: `{"elements": {"type": "node"}}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeOverpassJSON(strings.NewReader(tc.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedInput)
		})
	}
}

func TestDecodeOverpassJSONEmptyElements(t *testing.T) {
	elements, err := DecodeOverpassJSON(strings.NewReader(`{"elements": []}`))
	require.NoError(t, err)
	assert.NotNil(t, elements)
	assert.Empty(t, elements)
}

func TestReadElements(t *testing.T) {
	testCases := []struct {
		name      string
		path      string
		wantCount int
	}{
		{name: "overpass json", path: "testdata/three_nodes.json", wantCount: 8},
		{name: "bzip2 overpass json", path: "testdata/three_nodes.json.bz2", wantCount: 8},
		{name: "osm xml", path: "testdata/three_nodes.osm", wantCount: 4},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			elements, err := ReadElements(context.Background(), tc.path, zap.NewNop())
			require.NoError(t, err)
			assert.Len(t, elements, tc.wantCount)
		})
	}
}

func TestReadElementsXMLWay(t *testing.T) {
	elements, err := ReadElements(context.Background(), "testdata/three_nodes.osm", zap.NewNop())
	require.NoError(t, err)
	require.Len(t, elements, 4)

	way := elements[3]
	require.Equal(t, WAY_ELEMENT, way.Kind)
	assert.Equal(t, int64(100), way.Way.ID)
	assert.Equal(t, []int64{1, 2, 3}, way.Way.NodeIDs)
	assert.True(t, way.Way.IsOneWay())

	assert.Equal(t, POINT_ELEMENT, elements[1].Kind)
	assert.InDelta(t, 0.001, elements[1].Point.Lon, 1e-12)
}

func TestReadElementsMissingFile(t *testing.T) {
	_, err := ReadElements(context.Background(), "testdata/missing.json", zap.NewNop())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.ErrorIs(t, err, util.ErrNotFound)
	assert.NotErrorIs(t, err, ErrMalformedInput)
}
