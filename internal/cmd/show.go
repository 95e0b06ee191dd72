package cmd

import (
	"github.com/spf13/cobra"

	"examguard/internal/adapters/output"
)

func newShowCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <report.json>",
		Short: "Print a saved validation report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			verdict, err := output.ReadJSON(args[0])
			if err != nil {
				return err
			}

			if asJSON {
				return output.EncodeJSON(cmd.OutOrStdout(), verdict, true)
			}
			return output.OutputTable(cmd.OutOrStdout(), verdict)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	return cmd
}
