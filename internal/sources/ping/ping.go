// Package ping emits the single outbound ICMP echo used to check that the
// capture engine sees live traffic. Two flavours exist: an in-process pinger
// and the system ping utility.
package ping

import (
	"context"
	"fmt"
	"time"

	probing "github.com/prometheus-community/pro-bing"
	"golang.org/x/net/nettest"

	"examguard/internal/platform/logx"
	"examguard/internal/sources/common"
)

// DefaultTarget is the address probed when none is configured.
const DefaultTarget = "1.1.1.1"

// DefaultTimeout bounds a single probe.
const DefaultTimeout = 2 * time.Second

// Privilege modes for the in-process pinger.
const (
	PrivilegedAuto = "auto"
	PrivilegedOn   = "true"
	PrivilegedOff  = "false"
)

// ResolvePrivileged maps a privilege mode to the raw-socket flag. Auto uses a
// raw socket when the host allows it and falls back to unprivileged UDP ping.
func ResolvePrivileged(mode string) bool {
	switch mode {
	case PrivilegedOn:
		return true
	case PrivilegedOff:
		return false
	default:
		return nettest.SupportsRawSocket()
	}
}

// ICMPProber sends one echo request with pro-bing.
type ICMPProber struct {
	logger     logx.Logger
	target     string
	privileged bool
	timeout    time.Duration
}

// NewICMPProber creates an in-process prober.
func NewICMPProber(logger logx.Logger, target string, privileged bool, timeout time.Duration) *ICMPProber {
	if target == "" {
		target = DefaultTarget
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ICMPProber{
		logger:     logger.With("component", "icmp-prober"),
		target:     target,
		privileged: privileged,
		timeout:    timeout,
	}
}

// Probe sends the echo request. A missing reply is not an error: only failing
// to emit the packet is.
func (p *ICMPProber) Probe(ctx context.Context) error {
	pr := probing.New(p.target)

	if err := pr.Resolve(); err != nil {
		return fmt.Errorf("DNS lookup '%s': %w", p.target, err)
	}

	pr.RecordRtts = false
	pr.Count = 1
	pr.Timeout = p.timeout
	pr.SetPrivileged(p.privileged)
	pr.SetLogger(nil)

	if err := pr.RunWithContext(ctx); err != nil {
		return fmt.Errorf("pinging host '%s' (ip %s): %w", pr.Addr(), pr.IPAddr(), err)
	}

	stats := pr.Statistics()
	p.logger.Debug("probe sent",
		"target", p.target,
		"sent", stats.PacketsSent,
		"received", stats.PacketsRecv,
	)

	if stats.PacketsSent == 0 {
		return fmt.Errorf("no echo request sent to '%s'", p.target)
	}
	return nil
}

// ExecProber runs the system ping utility once.
type ExecProber struct {
	*common.BaseCLI
	target string
}

// NewExecProber creates a prober backed by the ping binary at execPath
// (resolved through PATH when bare).
func NewExecProber(logger logx.Logger, execPath, target string, timeout time.Duration) *ExecProber {
	if execPath == "" {
		execPath = "ping"
	}
	if target == "" {
		target = DefaultTarget
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ExecProber{
		BaseCLI: common.NewBaseCLI(logger, common.BaseCLIConfig{
			ToolName: "ping",
			ExecPath: execPath,
			Timeout:  timeout,
		}),
		target: target,
	}
}

// Args returns the ping arguments for one echo request.
func (p *ExecProber) Args() []string {
	return []string{"-c", "1", p.target}
}

// Probe runs ping. A non-zero exit only means no reply arrived, so it is
// logged; failing to start the utility is an error.
func (p *ExecProber) Probe(ctx context.Context) error {
	stderr, err := p.Run(ctx, p.Args())
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if isExitError(err) {
		p.Logger().Debug("ping reported no reply", "error", err.Error(), "stderr", stderr)
		return nil
	}
	return err
}
