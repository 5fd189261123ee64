package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewAlertCmd создаёт группу команд для работы с алертами.
func NewAlertCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alert",
		Short: "Inspect and act on alerts",
	}

	cmd.AddCommand(
		newAlertPendingCmd(clientFn, outputFn),
		newAlertCompleteCmd(clientFn, outputFn),
	)

	return cmd
}

func newAlertPendingCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var ownedOnly bool

	cmd := &cobra.Command{
		Use:   "pending",
		Short: "List pending alerts in the host queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			pending, err := client.ListPending()
			if err != nil {
				return err
			}

			headers := []string{"ID", "FIRE_AT", "OWNED", "ITEM_ID"}
			var rows [][]string
			for _, a := range pending {
				if ownedOnly && !a.Owned {
					continue
				}
				rows = append(rows, []string{
					a.ID, a.FireAt, strconv.FormatBool(a.Owned), a.ItemID,
				})
			}

			out.Print(headers, rows, pending)
			return nil
		},
	}

	cmd.Flags().BoolVar(&ownedOnly, "owned", false, "Show only alerts owned by the engine")

	return cmd
}

func newAlertCompleteCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "complete LIST_ID ITEM_ID",
		Short: "Mark an item as completed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			if err := client.CompleteItem(args[0], args[1]); err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Item completed: %s", args[1]))
			return nil
		},
	}
}
