// cmd/examguard/main.go
package main

import (
	"errors"
	"fmt"
	"os"

	"examguard/internal/cmd"
)

var (
	// Rellenables con -ldflags en build
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	root := cmd.NewRootCommand(cmd.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	if err := root.Execute(); err != nil {
		// el motivo del fallo ya lo mostró el presenter
		if !errors.Is(err, cmd.ErrValidationFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(cmd.ExitCode(err))
	}
}
