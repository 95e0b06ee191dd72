// Package netif enumerates host network interfaces and selects the ones
// usable for live capture.
package netif

import (
	"context"
	"fmt"
	"net"

	psnet "github.com/shirou/gopsutil/v3/net"

	"examguard/internal/core/ports"
)

// Lister implements ports.InterfaceLister on top of gopsutil. gopsutil does
// not report the running (carrier) flag, so the kernel flags from the net
// package are merged in by interface name.
type Lister struct {
	system func() ([]net.Interface, error)
}

// NewLister creates an interface lister.
func NewLister() *Lister {
	return &Lister{system: net.Interfaces}
}

// Interfaces returns every host interface with its state flags, in
// enumeration order.
func (l *Lister) Interfaces(ctx context.Context) ([]ports.NetInterface, error) {
	stats, err := psnet.InterfacesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("enumerate interfaces: %w", err)
	}

	sys, err := l.system()
	if err != nil {
		return nil, fmt.Errorf("read interface flags: %w", err)
	}
	kernel := make(map[string]net.Flags, len(sys))
	for _, i := range sys {
		kernel[i.Name] = i.Flags
	}

	out := make([]ports.NetInterface, 0, len(stats))
	for _, s := range stats {
		out = append(out, fromFlags(s.Name, s.Flags, kernel[s.Name]))
	}
	return out, nil
}

// fromFlags combines the gopsutil flag names with the kernel flag bits.
func fromFlags(name string, flags []string, kernel net.Flags) ports.NetInterface {
	iface := ports.NetInterface{
		Name:     name,
		Up:       kernel&net.FlagUp != 0,
		Running:  kernel&net.FlagRunning != 0,
		Loopback: kernel&net.FlagLoopback != 0,
	}
	for _, f := range flags {
		switch f {
		case "up":
			iface.Up = true
		case "loopback":
			iface.Loopback = true
		}
	}
	return iface
}

// Active keeps the interfaces that are up, running and not loopback,
// preserving order, and returns their names.
func Active(ifaces []ports.NetInterface) []string {
	var names []string
	for _, i := range ifaces {
		if i.Up && i.Running && !i.Loopback {
			names = append(names, i.Name)
		}
	}
	return names
}
