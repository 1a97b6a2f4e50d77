package routing

import (
	"errors"
	"strings"

	"github.com/optirota/optirota/pkg/datastructure"
	"github.com/optirota/optirota/pkg/util"
)

var (
	ErrNoPathFound      = errors.New("no path found")
	ErrUnknownAlgorithm = errors.New("unknown routing algorithm")
)

type Algorithm uint8

const (
	ALGORITHM_DIJKSTRA Algorithm = iota
	ALGORITHM_ASTAR
)

func (a Algorithm) String() string {
	switch a {
	case ALGORITHM_ASTAR:
		return "astar"
	default:
		return "dijkstra"
	}
}

// ParseAlgorithm accepts "dijkstra", "astar", "a*" and "a_estrela", case insensitive.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dijkstra":
		return ALGORITHM_DIJKSTRA, nil
	case "astar", "a*", "a_star", "a_estrela":
		return ALGORITHM_ASTAR, nil
	default:
		return 0, util.WrapErrorf(ErrUnknownAlgorithm, util.ErrBadParamInput, "algorithm %q", name)
	}
}

// Router finds a least-cost path between two node ids of the graph it was built for.
type Router interface {
	ShortestPath(s, t int64) (datastructure.Path, error)
	NumSettledNodes() int
}
