package cli

import (
	"context"
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/taskbatch/internal/catalog"
	"github.com/rshade/taskbatch/internal/config"
	"github.com/rshade/taskbatch/internal/detail"
	"github.com/rshade/taskbatch/internal/domain"
	"github.com/rshade/taskbatch/internal/tui"
)

// ErrNotATerminal is returned by browse when stdout is not interactive.
var ErrNotATerminal = errors.New("browse needs an interactive terminal; use 'batches list' instead")

// NewBatchesBrowseCmd creates the interactive batch browser command.
func NewBatchesBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse batches interactively",
		Long: `Open the interactive batch console.

List keys: / search, ←/→ page, s sort, enter open, q quit.
Batch keys: space select, a select all, c create act, n notify, e export,
esc clear selection or go back.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(os.Stdout) {
				return ErrNotATerminal
			}
			return runBatchesBrowse(cmd)
		},
	}
}

func runBatchesBrowse(cmd *cobra.Command) error {
	ctx := cmd.Context()
	path := feedPath(cmd)
	cfg := config.GetGlobalConfig()

	// The session is filled by the fetcher and read by the opener, which
	// the program only calls after loading has finished.
	var s *session
	fetch := func(ctx context.Context) (*catalog.Catalog, error) {
		loaded, err := newSession(ctx, path)
		if err != nil {
			return nil, err
		}
		s = loaded
		return loaded.catalog, nil
	}
	open := func(batch domain.TaskBatch) (*detail.Detail, error) {
		dispatcher, err := s.newDispatcher(cfg, nil)
		if err != nil {
			return nil, err
		}
		return s.openDetail(batch, dispatcher)
	}

	model := tui.NewCatalogModelWithLoading(ctx, fetch, cfg.Catalog.PageSize, open)
	final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(*tui.CatalogModel); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}
