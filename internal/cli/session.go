package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/taskbatch/internal/actions"
	"github.com/rshade/taskbatch/internal/catalog"
	"github.com/rshade/taskbatch/internal/config"
	"github.com/rshade/taskbatch/internal/detail"
	"github.com/rshade/taskbatch/internal/directory"
	"github.com/rshade/taskbatch/internal/domain"
	"github.com/rshade/taskbatch/internal/feed"
	"github.com/rshade/taskbatch/internal/logging"
)

// session holds the loaded feed and the components built over it.
type session struct {
	snapshot  *feed.Snapshot
	catalog   *catalog.Catalog
	directory *directory.Directory
}

// feedPath returns --feed when the command has it, otherwise the configured path.
func feedPath(cmd *cobra.Command) string {
	if path, err := cmd.Flags().GetString("feed"); err == nil && path != "" {
		return path
	}
	return config.GetFeedPath()
}

// loadSnapshot reads the feed at path, or the built-in sample when path is empty.
func loadSnapshot(ctx context.Context, path string) (*feed.Snapshot, error) {
	log := logging.FromContext(ctx)
	if path == "" {
		log.Debug().Ctx(ctx).Str("component", "cli").Msg("using built-in sample feed")
		return feed.Sample()
	}
	return feed.Load(ctx, path)
}

// newSession loads the feed and builds the catalog and directory.
func newSession(ctx context.Context, path string) (*session, error) {
	snap, err := loadSnapshot(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("loading feed: %w", err)
	}
	cat, err := catalog.New(snap.Batches)
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}
	dir, err := directory.New(snap.Executors, snap.Segments)
	if err != nil {
		return nil, fmt.Errorf("building directory: %w", err)
	}
	return &session{snapshot: snap, catalog: cat, directory: dir}, nil
}

// loadSession is newSession for a command's context and feed flag.
func loadSession(cmd *cobra.Command) (*session, error) {
	return newSession(cmd.Context(), feedPath(cmd))
}

// openDetail builds the view of one batch wired to dispatcher.
func (s *session) openDetail(batch domain.TaskBatch, dispatcher detail.Dispatcher) (*detail.Detail, error) {
	tasks, err := s.snapshot.Tasks(batch.ID)
	if err != nil {
		return nil, err
	}
	return detail.New(batch, tasks, detail.WithDispatcher(dispatcher))
}

// newDispatcher routes acts to the log, notifications through the chunked
// notifier and exports to files, as configured. onProgress may be nil.
func (s *session) newDispatcher(cfg *config.Config, onProgress actions.ProgressCallback) (actions.Router, error) {
	notifier, err := actions.NewChunkedNotifier(actions.LogSender,
		cfg.Dispatch.NotifyChunkSize, cfg.Dispatch.NotifyConcurrency)
	if err != nil {
		return actions.Router{}, fmt.Errorf("configuring notifications: %w", err)
	}
	notifier.WithProgress(onProgress)
	exportDir, err := cfg.ResolveExportDir()
	if err != nil {
		return actions.Router{}, fmt.Errorf("resolving export directory: %w", err)
	}
	return actions.Router{
		Acts:          actions.LogDispatcher{},
		Notifications: notifier,
		Exports:       actions.FileExporter{Dir: exportDir, Lookup: s.snapshot},
	}, nil
}
