package pkg

const (
	INF_WEIGHT float64 = 1e15

	EARTH_RADIUS_M  float64 = 6371000.0
	EARTH_RADIUS_KM float64 = 6371.0

	UNKNOWN_STREET_NAME = "unknown"
	DEFAULT_HIGHWAY     = "unclassified"
	ONEWAY_YES          = "yes"
)

type OsmHighwayType uint8

// enum buat osm highway, dipakai buat styling render: https://wiki.openstreetmap.org/wiki/Key:highway
const (
	MOTORWAY OsmHighwayType = iota
	TRUNK
	PRIMARY
	SECONDARY
	TERTIARY
	RESIDENTIAL
	SERVICE
	UNCLASSIFIED
	LIVING_STREET
	FOOTWAY
	PATH
	UNKNOWN
)

func GetHighwayType(roadType string) OsmHighwayType {
	switch roadType {
	case "motorway", "motorway_link":
		return MOTORWAY
	case "trunk", "trunk_link":
		return TRUNK
	case "primary", "primary_link":
		return PRIMARY
	case "secondary", "secondary_link":
		return SECONDARY
	case "tertiary", "tertiary_link":
		return TERTIARY
	case "residential":
		return RESIDENTIAL
	case "service":
		return SERVICE
	case "unclassified":
		return UNCLASSIFIED
	case "living_street":
		return LIVING_STREET
	case "footway":
		return FOOTWAY
	case "path":
		return PATH
	default:
		return UNKNOWN
	}
}
