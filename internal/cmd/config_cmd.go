package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"examguard/internal/platform/config"
)

func newConfigCommand(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after applying defaults, the config file,
EXAMGUARD_* environment variables and flags. The YAML output can be used
as a starting point for --config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			if asJSON {
				s, err := cfg.ToJSON()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), s)
				return nil
			}
			return config.Encode(cmd.OutOrStdout(), cfg)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON instead of YAML")
	return cmd
}
