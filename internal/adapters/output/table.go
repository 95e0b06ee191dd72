// internal/adapters/output/table.go
package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"examguard/internal/core/domain"
)

// OutputTable imprime un veredicto como tabla legible.
func OutputTable(w io.Writer, v domain.Verdict) error {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\n=== examguard report ===\n")
	fmt.Fprintf(tw, "Run:\t%s\n", v.RunID)
	fmt.Fprintf(tw, "Status:\t%s\n", v.Status.Label())
	fmt.Fprintf(tw, "Started:\t%s\n", v.Started.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(tw, "Duration:\t%s\n", v.Duration())

	switch {
	case v.Success != nil:
		fmt.Fprintf(tw, "Executable:\t%s\n", v.Success.Executable)
		fmt.Fprintf(tw, "Config:\t%s\n", v.Success.ConfigPath)
		fmt.Fprintf(tw, "Alert log:\t%s\n", v.Success.LogPath)
		fmt.Fprintf(tw, "Interface:\t%s\n", v.Success.Interface)
	case v.Failure != nil:
		fmt.Fprintf(tw, "Failure:\t%s\n", v.Failure.Kind)
		fmt.Fprintf(tw, "Reason:\t%s\n", v.Reason)
	}

	if len(v.Configs) > 0 {
		fmt.Fprintf(tw, "Configs:\t%s\n", strings.Join(v.Configs, ", "))
	}

	fmt.Fprintln(tw)

	if len(v.Stages) > 0 {
		fmt.Fprintln(tw, "STAGE\tOUTCOME\tDURATION\tDETAIL")
		fmt.Fprintln(tw, "-----\t-------\t--------\t------")
		for _, s := range v.Stages {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Name, s.Outcome, s.Duration, s.Detail)
		}
	} else {
		fmt.Fprintln(tw, "No stages recorded.")
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush table: %w", err)
	}

	fmt.Fprintln(w)
	return nil
}
