package osmparser

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/dsnet/compress/bzip2"
	json "github.com/goccy/go-json"
	"github.com/optirota/optirota/pkg/util"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	ErrSourceUnavailable = errors.New("map source unavailable")
	ErrMalformedInput    = errors.New("malformed map input")
)

type SourceFormat uint8

const (
	FORMAT_OVERPASS_JSON SourceFormat = iota
	FORMAT_OSM_PBF
	FORMAT_OSM_XML
)

func (f SourceFormat) String() string {
	switch f {
	case FORMAT_OSM_PBF:
		return "osm-pbf"
	case FORMAT_OSM_XML:
		return "osm-xml"
	default:
		return "overpass-json"
	}
}

// DetectFormat infers the export format from the file name. A trailing .bz2 marks a bzip2 stream.
func DetectFormat(path string) (SourceFormat, bool) {
	name := strings.ToLower(filepath.Base(path))
	compressed := false
	if strings.HasSuffix(name, ".bz2") {
		compressed = true
		name = strings.TrimSuffix(name, ".bz2")
	}

	switch {
	case strings.HasSuffix(name, ".pbf"):
		return FORMAT_OSM_PBF, compressed
	case strings.HasSuffix(name, ".osm"), strings.HasSuffix(name, ".xml"):
		return FORMAT_OSM_XML, compressed
	default:
		return FORMAT_OVERPASS_JSON, compressed
	}
}

// ReadElements opens a map export and decodes it into elements. A missing or unreadable file yields
// ErrSourceUnavailable; anything that cannot be decoded yields ErrMalformedInput.
func ReadElements(ctx context.Context, path string, logger *zap.Logger) ([]Element, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, util.WrapErrorf(ErrSourceUnavailable, util.ErrNotFound, "map file %s not found", path)
		}
		return nil, util.WrapErrorf(ErrSourceUnavailable, util.ErrInternalServerError, "open map file %s: %v", path, err)
	}
	defer f.Close()

	format, compressed := DetectFormat(path)
	logger.Info("reading map export", zap.String("path", path), zap.String("format", format.String()),
		zap.Bool("bzip2", compressed))

	var r io.Reader = bufio.NewReader(f)
	if compressed {
		bz, err := bzip2.NewReader(r, &bzip2.ReaderConfig{})
		if err != nil {
			return nil, util.WrapErrorf(ErrMalformedInput, util.ErrBadParamInput, "bzip2 stream %s: %v", path, err)
		}
		defer bz.Close()
		r = bz
	}

	return DecodeElements(ctx, r, format)
}

// ReadElementsFromFiles decodes several exports concurrently and concatenates their elements in argument order.
func ReadElementsFromFiles(ctx context.Context, paths []string, logger *zap.Logger) ([]Element, error) {
	results := make([][]Element, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			elements, err := ReadElements(gctx, path, logger)
			if err != nil {
				return err
			}
			results[i] = elements
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, res := range results {
		total += len(res)
	}
	elements := make([]Element, 0, total)
	for _, res := range results {
		elements = append(elements, res...)
	}
	return elements, nil
}

func DecodeElements(ctx context.Context, r io.Reader, format SourceFormat) ([]Element, error) {
	switch format {
	case FORMAT_OSM_PBF:
		scanner := osmpbf.New(ctx, r, runtime.GOMAXPROCS(0))
		scanner.SkipRelations = true
		return scanOsmObjects(scanner)
	case FORMAT_OSM_XML:
		return scanOsmObjects(osmxml.New(ctx, r))
	default:
		return DecodeOverpassJSON(r)
	}
}

type overpassExport struct {
	Elements *[]overpassElement `json:"elements"`
}

// overpassElement lat/lon are pointers so a point without coordinates can be told apart from (0,0).
type overpassElement struct {
	Type  string            `json:"type"`
	ID    int64             `json:"id"`
	Lat   *float64          `json:"lat"`
	Lon   *float64          `json:"lon"`
	Nodes []int64           `json:"nodes"`
	Tags  map[string]string `json:"tags"`
}

// DecodeOverpassJSON decodes an Overpass API JSON export ({"elements": [...]}). Element types other than
// node and way are returned as UNKNOWN_ELEMENT.
func DecodeOverpassJSON(r io.Reader) ([]Element, error) {
	var export overpassExport
	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return nil, util.WrapErrorf(ErrMalformedInput, util.ErrBadParamInput, "decode overpass json: %v", err)
	}
	if export.Elements == nil {
		return nil, util.WrapErrorf(ErrMalformedInput, util.ErrBadParamInput, "overpass json has no elements array")
	}

	raw := *export.Elements
	elements := make([]Element, 0, len(raw))
	for _, e := range raw {
		switch e.Type {
		case "node":
			if e.Lat == nil || e.Lon == nil {
				elements = append(elements, NewPointElementWithoutCoordinates(e.ID))
				continue
			}
			elements = append(elements, NewPointElement(e.ID, *e.Lat, *e.Lon))
		case "way":
			elements = append(elements, NewWayElement(e.ID, e.Nodes, e.Tags))
		default:
			elements = append(elements, Element{Kind: UNKNOWN_ELEMENT})
		}
	}
	return elements, nil
}

type osmScanner interface {
	Scan() bool
	Object() osm.Object
	Err() error
	Close() error
}

func scanOsmObjects(scanner osmScanner) ([]Element, error) {
	defer scanner.Close()

	elements := make([]Element, 0, 1024)
	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			elements = append(elements, NewPointElement(int64(o.ID), o.Lat, o.Lon))
		case *osm.Way:
			nodeIDs := make([]int64, 0, len(o.Nodes))
			for _, id := range o.Nodes.NodeIDs() {
				nodeIDs = append(nodeIDs, int64(id))
			}
			elements = append(elements, NewWayElement(int64(o.ID), nodeIDs, o.Tags.Map()))
		default:
			elements = append(elements, Element{Kind: UNKNOWN_ELEMENT})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, util.WrapErrorf(ErrMalformedInput, util.ErrBadParamInput, "scan osm objects: %v", err)
	}
	return elements, nil
}
