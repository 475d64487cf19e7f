package actions

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessor_Process(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	t.Run("Sequential", func(t *testing.T) {
		p, _ := NewProcessor[int](10)
		var processedCount int32
		var chunks int32

		callback := func(ctx context.Context, chunk []int, chunkIndex int) error {
			atomic.AddInt32(&chunks, 1)
			atomic.AddInt32(&processedCount, int32(len(chunk)))
			return nil
		}

		err := p.Process(context.Background(), items, callback)
		require.NoError(t, err)
		assert.Equal(t, int32(25), processedCount)
		assert.Equal(t, int32(3), chunks)
	})

	t.Run("Concurrent", func(t *testing.T) {
		p, _ := NewProcessor[int](5)
		var processedCount int32

		callback := func(ctx context.Context, chunk []int, chunkIndex int) error {
			atomic.AddInt32(&processedCount, int32(len(chunk)))
			return nil
		}

		err := p.ProcessConcurrent(context.Background(), items, callback, 2)
		require.NoError(t, err)
		assert.Equal(t, int32(25), processedCount)
	})

	t.Run("ErrorHandling", func(t *testing.T) {
		p, _ := NewProcessor[int](10)
		callback := func(ctx context.Context, chunk []int, chunkIndex int) error {
			if chunkIndex == 1 {
				return errors.New("fail")
			}
			return nil
		}

		err := p.Process(context.Background(), items, callback)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "chunk 1 failed")
	})

	t.Run("ConcurrentError", func(t *testing.T) {
		p, _ := NewProcessor[int](5)
		boom := errors.New("boom")
		callback := func(ctx context.Context, chunk []int, chunkIndex int) error {
			if chunkIndex == 2 {
				return boom
			}
			return nil
		}

		err := p.ProcessConcurrent(context.Background(), items, callback, 3)
		require.ErrorIs(t, err, boom)
	})

	t.Run("CancelledContext", func(t *testing.T) {
		p, _ := NewProcessor[int](10)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := p.Process(ctx, items, func(context.Context, []int, int) error { return nil })
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("EmptyItems", func(t *testing.T) {
		p, _ := NewProcessor[int](DefaultChunkSize)
		err := p.Process(context.Background(), nil, nil)
		assert.Equal(t, ErrEmptyItems, err)
	})

	t.Run("NilCallback", func(t *testing.T) {
		p, _ := NewProcessor[int](DefaultChunkSize)
		err := p.Process(context.Background(), items, nil)
		assert.Equal(t, ErrNilCallback, err)
	})

	t.Run("InvalidChunkSize", func(t *testing.T) {
		_, err := NewProcessor[int](0)
		require.ErrorIs(t, err, ErrInvalidChunkSize)
		_, err = NewProcessor[int](2000)
		require.ErrorIs(t, err, ErrInvalidChunkSize)
	})
}

func TestProcessor_Bounds(t *testing.T) {
	p, err := NewProcessor[int](10)
	require.NoError(t, err)

	assert.Equal(t, [][2]int{{0, 10}, {10, 20}, {20, 25}}, p.Bounds(25))
	assert.Equal(t, [][2]int{{0, 10}}, p.Bounds(10))
	assert.Empty(t, p.Bounds(0))
	assert.Equal(t, 10, p.ChunkSize())
}

func TestProcessor_ProgressCallback(t *testing.T) {
	items := make([]int, 7)

	var (
		mu      sync.Mutex
		reports []Progress
	)
	p, err := NewProcessor[int](3)
	require.NoError(t, err)
	p.WithProgressCallback(func(progress Progress) {
		mu.Lock()
		defer mu.Unlock()
		reports = append(reports, progress)
	})

	err = p.Process(context.Background(), items, func(context.Context, []int, int) error { return nil })
	require.NoError(t, err)

	require.Len(t, reports, 3)
	last := reports[len(reports)-1]
	assert.True(t, last.IsComplete())
	assert.Equal(t, 7, last.ProcessedItems)
	assert.Equal(t, 3, last.ProcessedChunks)
	assert.InDelta(t, 100.0, last.PercentComplete(), 1e-9)
	assert.False(t, reports[0].IsComplete())
}

func TestProgress_PercentComplete(t *testing.T) {
	assert.InDelta(t, 0.0, Progress{}.PercentComplete(), 1e-9)
	assert.InDelta(t, 50.0, Progress{TotalItems: 4, ProcessedItems: 2}.PercentComplete(), 1e-9)
}
