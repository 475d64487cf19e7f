package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/taskbatch/internal/catalog"
	"github.com/rshade/taskbatch/internal/config"
	"github.com/rshade/taskbatch/internal/format"
	"github.com/rshade/taskbatch/internal/pagination"
)

type batchesListParams struct {
	search   string
	page     int
	pageSize int
	sort     string
	output   string
}

// NewBatchesListCmd creates the batches list command.
func NewBatchesListCmd() *cobra.Command {
	var params batchesListParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List task batches",
		Long: `List task batches, most recently created first.

The search matches batch names case-insensitively. A page past the last one
shows the last page.`,
		Example: `  # First page
  taskbatch batches list

  # Batches whose name contains "выплата", as JSON
  taskbatch batches list --search выплата --output json

  # Sort by payment progress, least paid first
  taskbatch batches list --sort paid:asc`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBatchesList(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.search, "search", "", "filter batches by name")
	cmd.Flags().IntVar(&params.page, "page", pagination.DefaultPage, "page number (1-based)")
	cmd.Flags().IntVar(&params.pageSize, "page-size", config.GetPageSize(), "batches per page")
	cmd.Flags().StringVar(&params.sort, "sort", config.GetGlobalConfig().Catalog.DefaultSort,
		"sort as field or field:order (fields: id, name, created, tasks, paid)")
	cmd.Flags().StringVar(&params.output, "output", config.GetDefaultOutputFormat(),
		"output format: table, json, or yaml")

	return cmd
}

func runBatchesList(cmd *cobra.Command, params batchesListParams) error {
	if err := checkOutputFormat(params.output); err != nil {
		return err
	}
	field, order, err := pagination.ParseSort(params.sort)
	if err != nil {
		return err
	}

	s, err := loadSession(cmd)
	if err != nil {
		return err
	}

	page, err := s.catalog.Query(catalog.ListQuery{
		Search: params.search,
		Params: pagination.Params{
			Page:      params.page,
			PageSize:  params.pageSize,
			SortField: field,
			SortOrder: order,
		},
	})
	if err != nil {
		return err
	}

	if params.output != config.OutputTable {
		return writeStructured(cmd.OutOrStdout(), params.output, page)
	}
	return renderBatchTable(cmd.OutOrStdout(), page)
}

// renderBatchTable prints a page of batches and its pager line.
func renderBatchTable(out io.Writer, page catalog.ListPage) error {
	if len(page.Rows) == 0 {
		_, err := fmt.Fprintln(out, "No batches found.")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCREATED\tTASKS\tACCEPTED\tSIGNED\tPAID")
	for _, row := range page.Rows {
		b := row.Batch
		fmt.Fprintf(w, "%d\t%s\t%s\t%d", b.ID, b.Name, b.CreatedAt, b.TaskCount)
		for _, sv := range row.Stages {
			fmt.Fprintf(w, "\t%s", stageCell(sv))
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	meta := page.Meta
	_, err := fmt.Fprintf(out, "\nPage %d of %d, %s\n", meta.CurrentPage, meta.TotalPages,
		format.Count(meta.TotalItems, "пачка заданий", "пачки заданий", "пачек заданий"))
	return err
}

// stageCell renders "3 из 4 (75%)", marking complete stages.
func stageCell(sv catalog.StageView) string {
	cell := sv.Progress.String() + " (" + strconv.FormatFloat(sv.Percent, 'f', 0, 64) + "%)"
	if sv.Complete {
		cell += " ✓"
	}
	return cell
}
