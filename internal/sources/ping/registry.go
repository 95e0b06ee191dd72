package ping

import (
	"examguard/internal/core/ports"
	"examguard/internal/platform/config"
	"examguard/internal/platform/logx"
	"examguard/internal/platform/registry"
)

// Auto-registro de los dos modos de sondeo al importar el package
func init() {
	if err := registry.Global().Register(
		config.ProbeModeICMP,
		func(cfg config.ProbeConfig, logger logx.Logger) (ports.Prober, error) {
			return NewICMPProber(logger, cfg.Target, ResolvePrivileged(cfg.Privileged), DefaultTimeout), nil
		},
		"in-process ICMP echo (pro-bing)",
	); err != nil {
		logx.New().Warn("failed to register icmp prober", "error", err.Error())
	}

	if err := registry.Global().Register(
		config.ProbeModeExec,
		func(cfg config.ProbeConfig, logger logx.Logger) (ports.Prober, error) {
			pingPath := cfg.PingPath
			if pingPath == "" {
				pingPath = "ping"
			}
			return NewExecProber(logger, pingPath, cfg.Target, DefaultTimeout), nil
		},
		"system ping utility (ping -c 1)",
	); err != nil {
		logx.New().Warn("failed to register exec prober", "error", err.Error())
	}
}
