package util

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errDomain = errors.New("domain failure")

func TestWrapErrorf(t *testing.T) {
	err := WrapErrorf(errDomain, ErrNotFound, "node %d", 7)

	assert.EqualError(t, err, "node 7: domain failure")
	assert.ErrorIs(t, err, errDomain)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrBadParamInput)
	assert.Equal(t, ErrNotFound, ErrorCode(err))

	wrapped := fmt.Errorf("handler: %w", err)
	assert.ErrorIs(t, wrapped, errDomain)
	assert.Equal(t, ErrNotFound, ErrorCode(wrapped))
}

func TestWrapErrorfWithoutCause(t *testing.T) {
	err := WrapErrorf(nil, ErrBadParamInput, "bad %s", "input")
	assert.EqualError(t, err, "bad input")
	assert.ErrorIs(t, err, ErrBadParamInput)
	assert.Nil(t, errors.Unwrap(err))
}

func TestErrorCodeDefaultsToInternal(t *testing.T) {
	assert.Equal(t, ErrInternalServerError, ErrorCode(errors.New("plain")))
	assert.Equal(t, ErrInternalServerError, ErrorCode(WrapErrorf(errDomain, nil, "no code")))
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, []int{3, 2, 1}, ReverseG([]int{1, 2, 3}))
	assert.Empty(t, ReverseG([]int{}))

	in := []int64{5, 1, 5, 2, 1}
	assert.Equal(t, []int64{5, 1, 2}, RemoveDuplicates(in))
	assert.Equal(t, []int64{5, 1, 5, 2, 1}, in)

	assert.Equal(t, 2, MinInt(2, 3))
	assert.Equal(t, 1.24, RoundFloat(1.2351, 2))
	assert.InDelta(t, 180.0, RadiansToDegree(DegreeToRadians(180)), 1e-12)

	ctx, cancel := context.WithCancel(context.Background())
	assert.False(t, StopConcurrentOperation(ctx))
	cancel()
	assert.True(t, StopConcurrentOperation(ctx))
}
