package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/taskbatch/internal/config"
	"github.com/rshade/taskbatch/internal/format"
)

// NewDirectoryExecutorsCmd creates the directory executors command.
func NewDirectoryExecutorsCmd() *cobra.Command {
	var search, output string

	cmd := &cobra.Command{
		Use:   "executors",
		Short: "List executors",
		Example: `  taskbatch directory executors --search иван
  taskbatch directory executors --search 916`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkOutputFormat(output); err != nil {
				return err
			}
			s, err := loadSession(cmd)
			if err != nil {
				return err
			}
			executors := s.directory.SearchExecutors(search)
			if output != config.OutputTable {
				return writeStructured(cmd.OutOrStdout(), output, executors)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPHONE")
			for _, e := range executors {
				fmt.Fprintf(w, "%d\t%s\t%s\n", e.ID, e.Name, e.Phone)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "filter by name or phone number")
	cmd.Flags().StringVar(&output, "output", config.GetDefaultOutputFormat(), "output format: table, json, or yaml")

	return cmd
}

// NewDirectorySegmentsCmd creates the directory segments command.
func NewDirectorySegmentsCmd() *cobra.Command {
	var search, output string

	cmd := &cobra.Command{
		Use:     "segments",
		Short:   "List executor segments",
		Example: `  taskbatch directory segments --search водители`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkOutputFormat(output); err != nil {
				return err
			}
			s, err := loadSession(cmd)
			if err != nil {
				return err
			}
			segments := s.directory.SearchSegments(search)
			if output != config.OutputTable {
				return writeStructured(cmd.OutOrStdout(), output, segments)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tMEMBERS")
			for _, seg := range segments {
				fmt.Fprintf(w, "%d\t%s\t%s\n", seg.ID, seg.Name, format.FormatNumber(int64(seg.MemberCount)))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "filter by name")
	cmd.Flags().StringVar(&output, "output", config.GetDefaultOutputFormat(), "output format: table, json, or yaml")

	return cmd
}
