package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

// NewPermissionCmd создаёт группу команд для разрешения на показ алертов.
func NewPermissionCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "permission",
		Short: "Inspect and request alert permission",
	}

	cmd.AddCommand(
		newPermissionShowCmd(clientFn, outputFn),
		newPermissionRequestCmd(clientFn, outputFn),
	)

	return cmd
}

func newPermissionShowCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current permission status",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			perm, err := client.GetPermission()
			if err != nil {
				return err
			}

			out.Print(
				[]string{"GRANTED"},
				[][]string{{strconv.FormatBool(perm.Granted)}},
				perm,
			)
			return nil
		},
	}
}

func newPermissionRequestCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "request",
		Short: "Request alert permission from the host",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			perm, err := client.RequestPermission()
			if err != nil {
				return err
			}

			if perm.Granted {
				out.Success("Permission granted")
			} else {
				out.Error("permission denied by host")
			}
			return nil
		},
	}
}
