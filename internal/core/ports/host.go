// internal/core/ports/host.go
package ports

import "context"

// ProcessTable consulta la tabla de procesos del host.
type ProcessTable interface {
	// FindByName retorna los PIDs de los procesos cuyo nombre coincide exactamente
	FindByName(ctx context.Context, name string) ([]int32, error)
}

// NetInterface describe una interfaz de red del host y sus flags.
type NetInterface struct {
	Name     string
	Up       bool
	Running  bool
	Loopback bool
}

// InterfaceLister enumera las interfaces de red del host en orden de enumeración.
type InterfaceLister interface {
	Interfaces(ctx context.Context) ([]NetInterface, error)
}

// Prober emite un único paquete de sondeo hacia el exterior.
type Prober interface {
	Probe(ctx context.Context) error
}
