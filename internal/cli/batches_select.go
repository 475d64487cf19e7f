package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/taskbatch/internal/actions"
	"github.com/rshade/taskbatch/internal/config"
	"github.com/rshade/taskbatch/internal/detail"
)

// Errors for batches select flag combinations.
var (
	ErrNoTasksChosen    = errors.New("choose tasks with --task or --all")
	ErrTasksAndAll      = errors.New("--task and --all are mutually exclusive")
	ErrActionCount      = errors.New("choose exactly one of --act, --notify or --export")
	errSelectNoDispatch = errors.New("no action requested")
)

type batchesSelectParams struct {
	taskIDs []int
	all     bool
	act     string
	notify  bool
	export  string
}

// actionCount returns how many bulk actions the flags request.
func (p batchesSelectParams) actionCount() int {
	n := 0
	if p.act != "" {
		n++
	}
	if p.notify {
		n++
	}
	if p.export != "" {
		n++
	}
	return n
}

// NewBatchesSelectCmd creates the batches select command, which selects
// tasks of a batch and runs one bulk action on them.
func NewBatchesSelectCmd() *cobra.Command {
	var params batchesSelectParams

	cmd := &cobra.Command{
		Use:   "select <batch-id>",
		Short: "Run a bulk action on selected tasks of a batch",
		Long: `Select tasks of a batch and run one bulk action on them: create an act,
send a notification to the executors, or export the tasks to a file.

Act types: gph, ois, self_employed. Export formats: json, yaml, csv.
Exports are written to dispatch.export_dir.`,
		Example: `  # Create a civil-law act for tasks 1 and 2
  taskbatch batches select 376 --task 1 --task 2 --act gph

  # Notify the executors of every task
  taskbatch batches select 376 --all --notify

  # Export tasks 2 and 3 as CSV
  taskbatch batches select 376 --task 2,3 --export csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatchesSelect(cmd, args[0], params)
		},
	}

	cmd.Flags().IntSliceVar(&params.taskIDs, "task", nil, "task id to select (repeatable)")
	cmd.Flags().BoolVar(&params.all, "all", false, "select every task of the batch")
	cmd.Flags().StringVar(&params.act, "act", "", "create an act of this type")
	cmd.Flags().BoolVar(&params.notify, "notify", false, "notify the executors of the selected tasks")
	cmd.Flags().StringVar(&params.export, "export", "", "export the selected tasks in this format")

	return cmd
}

func runBatchesSelect(cmd *cobra.Command, arg string, params batchesSelectParams) error {
	switch {
	case params.all && len(params.taskIDs) > 0:
		return ErrTasksAndAll
	case !params.all && len(params.taskIDs) == 0:
		return ErrNoTasksChosen
	case params.actionCount() != 1:
		return ErrActionCount
	}

	id, err := parseBatchID(arg)
	if err != nil {
		return err
	}
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}
	batch, err := s.catalog.Get(id)
	if err != nil {
		return err
	}
	// Progress callbacks run one at a time, after each chunk is sent.
	var sent actions.Progress
	dispatcher, err := s.newDispatcher(config.GetGlobalConfig(), func(p actions.Progress) { sent = p })
	if err != nil {
		return err
	}
	d, err := s.openDetail(batch, dispatcher)
	if err != nil {
		return err
	}

	if params.all {
		d.ToggleSelectAll()
	}
	for _, taskID := range params.taskIDs {
		if d.IsSelected(taskID) {
			continue
		}
		if _, err = d.ToggleTask(taskID); err != nil {
			return err
		}
	}

	return dispatchSelection(cmd, d, params, &sent)
}

// dispatchSelection runs the requested action and reports the command.
func dispatchSelection(
	cmd *cobra.Command,
	d *detail.Detail,
	params batchesSelectParams,
	sent *actions.Progress,
) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	switch {
	case params.act != "":
		actType, err := actions.ParseActType(params.act)
		if err != nil {
			return err
		}
		c, err := d.CreateAct(ctx, actType)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s requested for batch %d: %s (command %s)\n",
			actType.Label(), c.BatchID, tasksNoun(len(c.TaskIDs)), c.ID)
	case params.notify:
		c, err := d.SendNotification(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Notification sent for batch %d: %s in %d of %d chunks (command %s)\n",
			c.BatchID, tasksNoun(len(c.TaskIDs)), sent.ProcessedChunks, sent.TotalChunks, c.ID)
	case params.export != "":
		exportFormat, err := actions.ParseExportFormat(params.export)
		if err != nil {
			return err
		}
		c, err := d.Export(ctx, exportFormat)
		if err != nil {
			return err
		}
		dir, err := config.GetGlobalConfig().ResolveExportDir()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Exported %s of batch %d to %s\n",
			tasksNoun(len(c.TaskIDs)), c.BatchID, actions.ExportPath(dir, c))
	default:
		return errSelectNoDispatch
	}
	return nil
}

func tasksNoun(n int) string {
	if n == 1 {
		return "1 task"
	}
	return fmt.Sprintf("%d tasks", n)
}
