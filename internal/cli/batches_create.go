package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/taskbatch/internal/composer"
	"github.com/rshade/taskbatch/internal/config"
	"github.com/rshade/taskbatch/internal/domain"
)

type batchesCreateParams struct {
	details       composer.Details
	deadline      string
	executionDate string
	tags          []string
	executors     []int
	segments      []int
	mode          string
	output        string
}

// NewBatchesCreateCmd creates the batches create command, which drafts a
// new batch and proposes it to executors or segments.
func NewBatchesCreateCmd() *cobra.Command {
	var params batchesCreateParams

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a batch and propose it to executors",
		Long: `Create a batch of tasks and propose it to executors.

In executor mode (the default) the batch goes to the executors and segments
given with --executor and --segment. In all mode it goes to everyone in the
directory. Dates are DD.MM.YYYY or YYYY-MM-DD, times HH:MM.`,
		Example: `  # Propose to two executors and one segment
  taskbatch batches create --name "Проверка реквизитов" --project "Выплаты" \
    --location Москва --deadline 30.01.2026 --deadline-time 18:00 \
    --executor 1 --executor 3 --segment 2 --tag срочно

  # Propose a remote task to everyone
  taskbatch batches create --name "Разметка данных" --remote --mode all`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBatchesCreate(cmd, params)
		},
	}

	f := cmd.Flags()
	f.StringVar(&params.details.TaskName, "name", "", "task name (required)")
	f.StringVar(&params.details.Project, "project", "", "project the tasks belong to")
	f.StringVar(&params.details.Location, "location", "", "where the tasks are done")
	f.BoolVar(&params.details.Remote, "remote", false, "tasks are done remotely (location is ignored)")
	f.StringVar(&params.deadline, "deadline", "", "deadline date")
	f.StringVar(&params.details.DeadlineTime, "deadline-time", "", "deadline time")
	f.StringVar(&params.executionDate, "execution-date", "", "execution date")
	f.StringVar(&params.details.ExecutionTime, "execution-time", "", "execution time")
	f.StringVar(&params.details.Description, "description", "", "task description")
	f.StringVar(&params.details.Instructions, "instructions", "", "instructions for executors")
	f.StringVar(&params.details.InternalComment, "comment", "", "internal comment, not shown to executors")
	f.StringSliceVar(&params.tags, "tag", nil, "tag (repeatable)")
	f.IntSliceVar(&params.executors, "executor", nil, "executor id to propose to (repeatable)")
	f.IntSliceVar(&params.segments, "segment", nil, "segment id to propose to (repeatable)")
	f.StringVar(&params.mode, "mode", string(composer.ModeExecutor), "proposal mode: executor or all")
	f.StringVar(&params.output, "output", config.GetDefaultOutputFormat(), "output format: table, json, or yaml")

	return cmd
}

func runBatchesCreate(cmd *cobra.Command, params batchesCreateParams) error {
	if err := checkOutputFormat(params.output); err != nil {
		return err
	}
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}

	draft := composer.New(s.directory)
	draft.Details = params.details
	if draft.DeadlineDate, err = parseOptionalDate(params.deadline); err != nil {
		return fmt.Errorf("--deadline: %w", err)
	}
	if draft.ExecutionDate, err = parseOptionalDate(params.executionDate); err != nil {
		return fmt.Errorf("--execution-date: %w", err)
	}

	mode, err := composer.ParseProposalMode(params.mode)
	if err != nil {
		return err
	}
	if err = draft.SetMode(mode); err != nil {
		return err
	}
	for _, tag := range params.tags {
		if err = draft.AddTag(tag); err != nil {
			return err
		}
	}
	for _, id := range params.executors {
		if err = draft.ToggleExecutor(id); err != nil {
			return err
		}
	}
	for _, id := range params.segments {
		if err = draft.ToggleSegment(id); err != nil {
			return err
		}
	}

	req, err := draft.Submit(cmd.Context(), composer.LogCreator{})
	if err != nil {
		return err
	}

	if params.output != config.OutputTable {
		return writeStructured(cmd.OutOrStdout(), params.output, req)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Batch %q proposed (request %s)\n", req.Details.TaskName, req.ID)
	fmt.Fprintf(out, "Mode: %s, audience: %d\n", req.Mode, req.AudienceSize)
	return nil
}

// parseOptionalDate parses a date flag; an empty value is the zero date.
func parseOptionalDate(s string) (domain.Date, error) {
	if s == "" {
		return domain.Date{}, nil
	}
	return domain.ParseDate(s)
}
