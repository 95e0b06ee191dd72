// Package proctable queries the host process table.
package proctable

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/process"
)

// Table implements ports.ProcessTable on top of gopsutil.
type Table struct{}

// New creates a process table reader.
func New() *Table {
	return &Table{}
}

// FindByName returns the PIDs of every process whose name equals name.
// Processes that vanish or cannot be inspected while iterating are ignored.
func (t *Table) FindByName(ctx context.Context, name string) ([]int32, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	var pids []int32
	for _, p := range procs {
		pname, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		if pname == name {
			pids = append(pids, p.Pid)
		}
	}
	return pids, nil
}
