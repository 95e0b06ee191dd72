package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"examguard/internal/platform/config"
)

// BuildInfo datos de versión inyectados con -ldflags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// app estado compartido por los subcomandos
type app struct {
	build BuildInfo
	flags *config.Flags
	host  hostFactory
}

// NewRootCommand crea el comando raíz. Sin subcomando ejecuta check.
func NewRootCommand(build BuildInfo) *cobra.Command {
	return newRootCommand(build, defaultHost)
}

func newRootCommand(build BuildInfo, host hostFactory) *cobra.Command {
	a := &app{build: build, host: host}

	cmd := &cobra.Command{
		Use:     "examguard",
		Short:   "Validate the Suricata environment before an exam session",
		Long:    config.LongHelp,
		Example: config.Examples,
		Version: build.Version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCheck(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	a.flags = config.BindFlags(cmd.PersistentFlags())

	cmd.SetVersionTemplate(config.VersionString(build.Version, build.Commit, build.Date))
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return usageError(fmt.Errorf("%w\nRun '%s --help' for usage", err, c.CommandPath()))
	})

	cmd.AddCommand(newCheckCommand(a))
	cmd.AddCommand(newInterfacesCommand(a))
	cmd.AddCommand(newConfigCommand(a))
	cmd.AddCommand(newShowCommand())
	cmd.AddCommand(newVersionCommand(build))

	return cmd
}

func newVersionCommand(build BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), config.VersionString(build.Version, build.Commit, build.Date))
		},
	}
}

// loadConfig carga la configuración; un error es un error de uso (exit 2).
func (a *app) loadConfig() (config.Config, error) {
	cfg, err := a.flags.Load()
	if err != nil {
		return config.Config{}, usageError(err)
	}
	return cfg, nil
}
