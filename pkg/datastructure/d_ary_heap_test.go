package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinHeapExtractsInRankOrder(t *testing.T) {
	for _, d := range []int{2, 4, 8} {
		h := NewdAryHeap[Index](d)
		ranks := []float64{5, 3, 9, 1, 7, 2, 8, 6, 4, 0}
		for i, r := range ranks {
			h.Insert(r, Index(i))
		}
		require.Equal(t, len(ranks), h.Size())

		prev := -1.0
		for !h.IsEmpty() {
			node, err := h.ExtractMin()
			require.NoError(t, err)
			assert.GreaterOrEqual(t, node.GetRank(), prev)
			prev = node.GetRank()
		}
	}
}

func TestMinHeapTiesComeOutInInsertionOrder(t *testing.T) {
	h := NewFourAryHeap[string]()
	h.Insert(1, "a")
	h.Insert(0, "first")
	h.Insert(1, "b")
	h.Insert(1, "c")

	want := []string{"first", "a", "b", "c"}
	for _, w := range want {
		node, err := h.ExtractMin()
		require.NoError(t, err)
		assert.Equal(t, w, node.GetItem())
	}

	_, err := h.ExtractMin()
	assert.ErrorIs(t, err, ErrEmptyHeap)
}

func TestMinHeapPreallocateResets(t *testing.T) {
	h := NewBinaryHeap[int]()
	h.Insert(3, 3)
	h.Preallocate(16)
	assert.True(t, h.IsEmpty())
	assert.Equal(t, 2e15, h.GetMinRank())

	h.Insert(2, 2)
	min, err := h.GetMin()
	require.NoError(t, err)
	assert.Equal(t, 2, min.GetItem())
}
