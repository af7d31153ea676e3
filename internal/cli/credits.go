package cli

import (
	"github.com/spf13/cobra"
)

func newCreditsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "credits",
		Short: "Check remaining credits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			defer client.Close()

			raw, err := client.Credits(cmd.Context())
			if err != nil {
				return err
			}
			return a.printJSON(raw)
		},
	}
}
