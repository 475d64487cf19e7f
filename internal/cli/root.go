package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/taskbatch/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the taskbatch CLI.
// It wires up logging, tracing and the batches, directory and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:     "taskbatch",
		Short:   "Task batch console",
		Long:    "taskbatch: browse task batches, track acceptance, signing and payment, and run bulk actions on tasks",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("feed", "",
		"batch feed file or directory (overrides feed.path; default is the built-in sample data)")
	cmd.AddCommand(newBatchesCmd(), newDirectoryCmd(), newConfigCmd())

	return cmd
}

const rootCmdExample = `  # List batches, newest first
  taskbatch batches list

  # Search by name and show the second page as JSON
  taskbatch batches list --search выплата --page 2 --output json

  # Show one batch with its tasks
  taskbatch batches show 376

  # Create an act for two tasks of a batch
  taskbatch batches select 376 --task 1 --task 2 --act gph

  # Export every task of a batch as CSV
  taskbatch batches select 376 --all --export csv

  # Browse batches interactively
  taskbatch batches browse

  # Initialize configuration
  taskbatch config init`

// newBatchesCmd creates the batches command group.
func newBatchesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "batches", Short: "Task batch commands"}
	cmd.AddCommand(
		NewBatchesListCmd(), NewBatchesShowCmd(), NewBatchesSelectCmd(),
		NewBatchesBrowseCmd(), NewBatchesCreateCmd(),
	)
	return cmd
}

// newDirectoryCmd creates the directory command group.
func newDirectoryCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "directory", Short: "Executor and segment directory commands"}
	cmd.AddCommand(NewDirectoryExecutorsCmd(), NewDirectorySegmentsCmd())
	return cmd
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd())
	return cmd
}
