package cmd

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"examguard/internal/core/ports"
	"examguard/internal/platform/netif"
)

func newInterfacesCommand(a *app) *cobra.Command {
	var activeOnly bool

	cmd := &cobra.Command{
		Use:   "interfaces",
		Short: "List network interfaces and which ones can be captured",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			logger := newLogger(cmd.ErrOrStderr(), cfg.Core.LogLevel, "")
			h, err := a.host(cfg, logger)
			if err != nil {
				return usageError(err)
			}
			defer h.Close()

			ifaces, err := h.interfaces.Interfaces(cmd.Context())
			if err != nil {
				return fmt.Errorf("list interfaces: %w", err)
			}

			if activeOnly {
				for _, name := range netif.Active(ifaces) {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}
			return renderInterfaces(cmd.OutOrStdout(), ifaces)
		},
	}

	cmd.Flags().BoolVar(&activeOnly, "active", false, "Print only the names of capturable interfaces")
	return cmd
}

// renderInterfaces imprime una tabla con los flags de cada interfaz.
func renderInterfaces(w io.Writer, ifaces []ports.NetInterface) error {
	if len(ifaces) == 0 {
		fmt.Fprintln(w, "No network interfaces found.")
		return nil
	}

	data := pterm.TableData{{"Interface", "Up", "Running", "Loopback", "Capture"}}
	for _, i := range ifaces {
		usable := len(netif.Active([]ports.NetInterface{i})) == 1
		data = append(data, []string{i.Name, yesNo(i.Up), yesNo(i.Running), yesNo(i.Loopback), yesNo(usable)})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	fmt.Fprintln(w, table)
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
