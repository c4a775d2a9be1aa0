package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/satchel/internal/journal"
)

func (a *app) newReportCmd() *cobra.Command {
	var (
		jsonMode bool
		export   string
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize recorded searches and sorts",
		Long: `Report aggregates the journal of every play session by operation, structure
and algorithm: runs, average inventory size, and the average, minimum and
maximum comparisons and swaps.

Example:
  satchel report
  satchel report --json
  satchel report --export operations.jsonl`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := journal.Open(a.dataDir)
			if err != nil {
				return systemError(err)
			}
			defer j.Close()

			if export != "" {
				n, err := j.ExportJSONL(export)
				if err != nil {
					return systemError(err)
				}
				a.logger.Debug("Journal exported", zap.String("file", export), zap.Int("entries", n))
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d entries to %s\n", n, export)
			}

			stats, err := j.Summary()
			if err != nil {
				return systemError(err)
			}
			if jsonMode {
				if stats == nil {
					stats = []journal.Stat{}
				}
				return writeJSON(cmd.OutOrStdout(), stats)
			}
			renderReport(cmd.OutOrStdout(), stats)
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonMode, "json", false, "output as JSON")
	cmd.Flags().StringVar(&export, "export", "", "also write every journal entry to this JSONL file")
	return cmd
}

func renderReport(w io.Writer, stats []journal.Stat) {
	if len(stats) == 0 {
		fmt.Fprintln(w, "No operations recorded yet.")
		return
	}
	t := newTable("OPERATION", "STRUCTURE", "ALGORITHM", "RUNS", "AVG SIZE",
		"AVG CMP", "MIN CMP", "MAX CMP", "AVG SWAPS", "MAX SWAPS")
	for _, s := range stats {
		t.Row(s.Operation, s.Backend, s.Algorithm, strconv.Itoa(s.Runs),
			formatFloat(s.AvgSize), formatFloat(s.AvgComparisons),
			strconv.Itoa(s.MinComparisons), strconv.Itoa(s.MaxComparisons),
			formatFloat(s.AvgSwaps), strconv.Itoa(s.MaxSwaps))
	}
	fmt.Fprintln(w, t.Render())
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64)
}
