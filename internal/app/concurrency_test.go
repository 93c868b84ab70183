package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallelPartialLimit_KeepsOrderAndErrors(t *testing.T) {
	boom := errors.New("boom")

	results := ParallelPartialLimit(context.Background(), 2,
		func(context.Context) (int, error) { return 1, nil },
		func(context.Context) (int, error) { return 0, boom },
		func(context.Context) (int, error) { return 3, nil },
	)

	require.Len(t, results, 3)
	assert.Equal(t, 1, results[0].Value)
	require.ErrorIs(t, results[1].Err, boom)
	assert.Equal(t, 3, results[2].Value)

	values, errs := Values(results)
	assert.Equal(t, []int{1, 0, 3}, values)
	require.Len(t, errs, 3)
	require.NoError(t, errs[0])
	require.ErrorIs(t, errs[1], boom)
}

func TestParallelPartialLimit_RespectsLimit(t *testing.T) {
	var inFlight, peak atomic.Int32

	fn := func(context.Context) (int, error) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}

		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)

		return 0, nil
	}

	ParallelPartialLimit(context.Background(), 2, fn, fn, fn, fn, fn, fn)

	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestValues_AllSucceeded(t *testing.T) {
	values, errs := Values([]PartialResult[string]{{Value: "a"}, {Value: "b"}})

	assert.Equal(t, []string{"a", "b"}, values)
	assert.Nil(t, errs)
}
