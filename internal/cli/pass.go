package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

// NewPassCmd создаёт группу команд для пассов сверки.
func NewPassCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pass",
		Short: "Run reconciliation passes",
	}

	cmd.AddCommand(
		newPassRunCmd(clientFn, outputFn),
	)

	return cmd
}

func newPassRunCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var listID string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a reconciliation pass (full fleet or a single list)",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			var summary *SummaryResponse
			var err error
			if listID != "" {
				summary, err = client.ReconcileList(listID)
			} else {
				summary, err = client.Reconcile()
			}
			if err != nil {
				return err
			}

			out.Success("Pass completed")
			out.Print(
				[]string{"ADMITTED", "SCHEDULED", "CANCELLED", "DEFERRED", "FAILED", "SKIPPED_LISTS"},
				[][]string{{
					strconv.Itoa(summary.Admitted),
					strconv.Itoa(summary.Scheduled),
					strconv.Itoa(summary.Cancelled),
					strconv.Itoa(summary.Deferred),
					strconv.Itoa(summary.Failed),
					strconv.Itoa(summary.SkippedLists),
				}},
				summary,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&listID, "list-id", "", "Reconcile a single list instead of the full fleet")

	return cmd
}
