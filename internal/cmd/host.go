package cmd

import (
	"errors"
	"io"

	"examguard/internal/core/ports"
	"examguard/internal/platform/config"
	"examguard/internal/platform/logx"
	"examguard/internal/platform/netif"
	"examguard/internal/platform/proctable"
	"examguard/internal/platform/registry"
	"examguard/internal/sources/suricata"

	// Registro de los probers icmp y exec vía init()
	_ "examguard/internal/sources/ping"
)

// host agrupa los adaptadores del sistema que usa el pipeline.
type host struct {
	processes  ports.ProcessTable
	interfaces ports.InterfaceLister
	grammar    ports.ConfigGrammar
	inspector  ports.Inspector
	prober     ports.Prober

	closers []io.Closer
}

// hostFactory construye los adaptadores; los tests la sustituyen por fakes.
type hostFactory func(cfg config.Config, logger logx.Logger) (*host, error)

func defaultHost(cfg config.Config, logger logx.Logger) (*host, error) {
	prober, err := registry.Global().Build(cfg.Probe, logger)
	if err != nil {
		return nil, err
	}

	inspector := suricata.NewInspector(logger, cfg.TestTimeout())

	h := &host{
		processes:  proctable.New(),
		interfaces: netif.NewLister(),
		grammar:    suricata.NewGrammar(),
		inspector:  inspector,
		prober:     prober,
		closers:    []io.Closer{inspector},
	}
	if c, ok := prober.(io.Closer); ok {
		h.closers = append(h.closers, c)
	}
	return h, nil
}

// Close detiene los subprocesos que sigan vivos.
func (h *host) Close() error {
	var errs []error
	for _, c := range h.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
