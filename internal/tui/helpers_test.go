package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rshade/taskbatch/internal/actions"
	"github.com/rshade/taskbatch/internal/catalog"
	"github.com/rshade/taskbatch/internal/detail"
	"github.com/rshade/taskbatch/internal/domain"
	"github.com/rshade/taskbatch/internal/feed"
)

// recordingDispatcher remembers every command it receives.
type recordingDispatcher struct {
	acts    []actions.CreateActCommand
	notices []actions.NotifyCommand
	exports []actions.ExportCommand
	err     error
}

func (r *recordingDispatcher) CreateAct(_ context.Context, cmd actions.CreateActCommand) error {
	r.acts = append(r.acts, cmd)
	return r.err
}

func (r *recordingDispatcher) SendNotification(_ context.Context, cmd actions.NotifyCommand) error {
	r.notices = append(r.notices, cmd)
	return r.err
}

func (r *recordingDispatcher) Export(_ context.Context, cmd actions.ExportCommand) error {
	r.exports = append(r.exports, cmd)
	return r.err
}

func sampleSnapshot(t *testing.T) *feed.Snapshot {
	t.Helper()
	snap, err := feed.Sample()
	require.NoError(t, err)
	return snap
}

func sampleCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(sampleSnapshot(t).Batches)
	require.NoError(t, err)
	return c
}

// opener returns a DetailOpener backed by the sample snapshot and dispatcher.
func opener(t *testing.T, dispatcher detail.Dispatcher) DetailOpener {
	t.Helper()
	snap := sampleSnapshot(t)
	return func(batch domain.TaskBatch) (*detail.Detail, error) {
		tasks, err := snap.Tasks(batch.ID)
		if err != nil {
			return nil, err
		}
		return detail.New(batch, tasks, detail.WithDispatcher(dispatcher))
	}
}

func sampleDetail(t *testing.T, dispatcher detail.Dispatcher) *detail.Detail {
	t.Helper()
	snap := sampleSnapshot(t)
	batch, err := snap.Batch(376)
	require.NoError(t, err)
	d, err := opener(t, dispatcher)(batch)
	require.NoError(t, err)
	return d
}
