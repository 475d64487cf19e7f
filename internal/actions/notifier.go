package actions

import (
	"context"
	"fmt"

	"github.com/rshade/taskbatch/internal/logging"
)

// SendFunc delivers one chunk of notifications.
type SendFunc func(ctx context.Context, batchID int, taskIDs []int) error

// ChunkedNotifier splits a notification into fixed-size chunks of task ids
// and sends them with bounded concurrency. With a concurrency of 1 the
// chunks go out in order.
type ChunkedNotifier struct {
	send        SendFunc
	chunkSize   int
	concurrency int
	onProgress  ProgressCallback
}

// NewChunkedNotifier returns a notifier sending chunkSize ids per call,
// at most concurrency calls at a time.
func NewChunkedNotifier(send SendFunc, chunkSize, concurrency int) (*ChunkedNotifier, error) {
	if send == nil {
		return nil, ErrNilCallback
	}
	if _, err := NewProcessor[int](chunkSize); err != nil {
		return nil, err
	}
	return &ChunkedNotifier{send: send, chunkSize: chunkSize, concurrency: max(concurrency, 1)}, nil
}

// WithProgress sets a callback invoked after every chunk sent.
func (n *ChunkedNotifier) WithProgress(callback ProgressCallback) *ChunkedNotifier {
	n.onProgress = callback
	return n
}

// SendNotification implements NotificationSender.
func (n *ChunkedNotifier) SendNotification(ctx context.Context, cmd NotifyCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	log := logging.FromContext(ctx)
	p, err := NewProcessor[int](n.chunkSize)
	if err != nil {
		return err
	}
	p.WithProgressCallback(func(progress Progress) {
		log.Debug().Ctx(ctx).
			Str("component", "actions").
			Str("command_id", cmd.ID).
			Int("chunks_sent", progress.ProcessedChunks).
			Int("chunks_total", progress.TotalChunks).
			Float64("percent", progress.PercentComplete()).
			Msg("notification progress")
		if progress.IsComplete() {
			log.Info().Ctx(ctx).
				Str("component", "actions").
				Str("command_id", cmd.ID).
				Int("batch_id", cmd.BatchID).
				Int("chunks", progress.TotalChunks).
				Msg("all notification chunks sent")
		}
		if n.onProgress != nil {
			n.onProgress(progress)
		}
	})

	sendChunk := func(ctx context.Context, chunk []int, chunkIndex int) error {
		log.Debug().Ctx(ctx).
			Str("component", "actions").
			Str("command_id", cmd.ID).
			Int("chunk", chunkIndex).
			Int("size", len(chunk)).
			Msg("sending notification chunk")
		return n.send(ctx, cmd.BatchID, chunk)
	}

	if n.concurrency == 1 {
		err = p.Process(ctx, cmd.TaskIDs, sendChunk)
	} else {
		err = p.ProcessConcurrent(ctx, cmd.TaskIDs, sendChunk, n.concurrency)
	}
	if err != nil {
		return fmt.Errorf("notify batch %d: %w", cmd.BatchID, err)
	}
	return nil
}

// LogSender is a SendFunc that only logs the chunk.
func LogSender(ctx context.Context, batchID int, taskIDs []int) error {
	log := logging.FromContext(ctx)
	log.Info().Ctx(ctx).
		Str("component", "actions").
		Str("operation", "send_notification").
		Int("batch_id", batchID).
		Ints("task_ids", taskIDs).
		Msg("notification sent")
	return nil
}
