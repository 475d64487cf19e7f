package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/taskbatch/internal/catalog"
	"github.com/rshade/taskbatch/internal/config"
	"github.com/rshade/taskbatch/internal/detail"
	"github.com/rshade/taskbatch/internal/domain"
	"github.com/rshade/taskbatch/internal/format"
)

// batchView is the structured output of batches show.
type batchView struct {
	Batch   catalog.Row    `json:"batch"   yaml:"batch"`
	Summary detail.Summary `json:"summary" yaml:"summary"`
	Tasks   []detail.Row   `json:"tasks"   yaml:"tasks"`
}

// parseBatchID parses the batch id argument.
func parseBatchID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidBatchID, arg)
	}
	return id, nil
}

// NewBatchesShowCmd creates the batches show command.
func NewBatchesShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show <batch-id>",
		Short: "Show a batch with its stage progress and tasks",
		Example: `  taskbatch batches show 376
  taskbatch batches show 376 --output yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutputFormat(output); err != nil {
				return err
			}
			id, err := parseBatchID(args[0])
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
			d, err := s.openDetail(batch, nil)
			if err != nil {
				return err
			}

			view := batchView{Batch: catalog.NewRow(batch), Summary: d.Summary(), Tasks: d.Rows()}
			if output != config.OutputTable {
				return writeStructured(cmd.OutOrStdout(), output, view)
			}
			return renderBatchView(cmd.OutOrStdout(), view)
		},
	}

	cmd.Flags().StringVar(&output, "output", config.GetDefaultOutputFormat(),
		"output format: table, json, or yaml")

	return cmd
}

func renderBatchView(out io.Writer, view batchView) error {
	b := view.Batch.Batch
	fmt.Fprintf(out, "Batch #%d: %s\n", b.ID, b.Name)
	fmt.Fprintf(out, "Created: %s\n", b.CreatedAt)
	for _, sv := range view.Batch.Stages {
		fmt.Fprintf(out, "%-9s %s\n", string(sv.Stage)+":", stageCell(sv))
	}
	fmt.Fprintln(out)

	if err := renderTaskTable(out, view.Tasks); err != nil {
		return err
	}

	s := view.Summary
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Tasks: %d  Total: %s\n", s.Tasks, format.FormatMoney(s.TotalAmount))
	for _, status := range domain.Statuses() {
		label, err := domain.StatusLabel(status)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %s: %d\n", label.Text, s.Count(status))
	}
	return nil
}

// renderTaskTable prints tasks with their selection mark and status label.
func renderTaskTable(out io.Writer, rows []detail.Row) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(out, "No tasks in this batch.")
		return err
	}
	w := tabwriter.NewWriter(out, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(w, "SEL\tID\tTITLE\tEXECUTOR\tSTATUS\tAMOUNT\tDEADLINE")
	for _, r := range rows {
		mark := ""
		if r.Selected {
			mark = "x"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\t%s\n", mark, r.Task.ID, r.Task.Title,
			r.Task.ExecutorName, r.Label.Text, format.FormatMoney(r.Task.Amount), r.Task.Deadline)
	}
	return w.Flush()
}
