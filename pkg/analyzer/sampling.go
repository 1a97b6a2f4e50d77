package analyzer

import (
	da "github.com/optirota/optirota/pkg/datastructure"
	"github.com/optirota/optirota/pkg/util"
	"golang.org/x/exp/rand"
)

// SampleSources returns every node id (registration order) when n <= 0 or n >= |V|, otherwise n distinct ids
// drawn with rng. The same seed over the same graph yields the same sample.
func SampleSources(graph *da.Graph, n int, rng *rand.Rand) []int64 {
	ids := graph.NodeIDs()
	if n <= 0 || n >= len(ids) {
		return ids
	}

	// partial fisher-yates
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(ids)-i)
		ids[i], ids[j] = ids[j], ids[i]
	}
	return ids[:n]
}

// RandomPair picks an origin and a destination uniformly, with replacement.
func RandomPair(graph *da.Graph, rng *rand.Rand) (int64, int64, error) {
	n := graph.NumberOfVertices()
	if n == 0 {
		return 0, 0, util.WrapErrorf(ErrEmptyGraph, util.ErrBadParamInput, "cannot pick a random pair")
	}
	s := graph.GetID(da.Index(rng.Intn(n)))
	t := graph.GetID(da.Index(rng.Intn(n)))
	return s, t, nil
}

func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
