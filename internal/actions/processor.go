package actions

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Chunk size limits for the processor.
const (
	// DefaultChunkSize is the default number of task ids per notification chunk.
	DefaultChunkSize = 50

	// MinChunkSize is the minimum allowed chunk size.
	MinChunkSize = 1

	// MaxChunkSize is the maximum allowed chunk size.
	MaxChunkSize = 1000
)

// Processor errors.
var (
	ErrInvalidChunkSize = errors.New("chunk size must be between 1 and 1000")
	ErrNilCallback      = errors.New("chunk callback cannot be nil")
	ErrEmptyItems       = errors.New("items slice cannot be empty")
)

// ChunkCallback processes one chunk of items. chunkIndex is 0-based.
type ChunkCallback[T any] func(ctx context.Context, chunk []T, chunkIndex int) error

// ProgressCallback is invoked after each chunk completes.
type ProgressCallback func(progress Progress)

// Processor splits items into fixed-size chunks and processes them
// sequentially or with bounded concurrency.
type Processor[T any] struct {
	chunkSize  int
	onProgress ProgressCallback

	// mu serialises progress updates from concurrent chunks.
	mu sync.Mutex
}

// NewProcessor creates a processor with the given chunk size.
func NewProcessor[T any](chunkSize int) (*Processor[T], error) {
	if chunkSize < MinChunkSize || chunkSize > MaxChunkSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidChunkSize, chunkSize)
	}
	return &Processor[T]{chunkSize: chunkSize}, nil
}

// WithProgressCallback sets a progress callback for the processor.
func (p *Processor[T]) WithProgressCallback(callback ProgressCallback) *Processor[T] {
	p.onProgress = callback
	return p
}

// ChunkSize returns the configured chunk size.
func (p *Processor[T]) ChunkSize() int {
	return p.chunkSize
}

// Process handles chunks one after another and stops at the first error.
func (p *Processor[T]) Process(ctx context.Context, items []T, callback ChunkCallback[T]) error {
	if len(items) == 0 {
		return ErrEmptyItems
	}
	if callback == nil {
		return ErrNilCallback
	}

	bounds := p.Bounds(len(items))
	progress := &Progress{TotalItems: len(items), TotalChunks: len(bounds)}

	for i, b := range bounds {
		if err := ctx.Err(); err != nil {
			return err
		}
		chunk := items[b[0]:b[1]]
		if err := callback(ctx, chunk, i); err != nil {
			return fmt.Errorf("chunk %d failed: %w", i, err)
		}
		p.report(progress, len(chunk))
	}
	return nil
}

// ProcessConcurrent handles at most maxConcurrency chunks at a time.
// The first error cancels the remaining chunks and is returned.
func (p *Processor[T]) ProcessConcurrent(
	ctx context.Context,
	items []T,
	callback ChunkCallback[T],
	maxConcurrency int,
) error {
	if len(items) == 0 {
		return ErrEmptyItems
	}
	if callback == nil {
		return ErrNilCallback
	}
	maxConcurrency = max(maxConcurrency, 1)

	bounds := p.Bounds(len(items))
	progress := &Progress{TotalItems: len(items), TotalChunks: len(bounds)}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrency)
	for i, b := range bounds {
		chunk := items[b[0]:b[1]]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := callback(gctx, chunk, i); err != nil {
				return fmt.Errorf("chunk %d failed: %w", i, err)
			}
			p.report(progress, len(chunk))
			return nil
		})
	}
	return g.Wait()
}

// Bounds returns the [start, end) index pairs of each chunk.
func (p *Processor[T]) Bounds(totalItems int) [][2]int {
	count := totalItems / p.chunkSize
	if totalItems%p.chunkSize > 0 {
		count++
	}
	bounds := make([][2]int, count)
	for i := range count {
		start := i * p.chunkSize
		bounds[i] = [2]int{start, min(start+p.chunkSize, totalItems)}
	}
	return bounds
}

func (p *Processor[T]) report(progress *Progress, items int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	progress.ProcessedItems += items
	progress.ProcessedChunks++
	if p.onProgress != nil {
		p.onProgress(*progress)
	}
}
