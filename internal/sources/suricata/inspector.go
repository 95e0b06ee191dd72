package suricata

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"examguard/internal/core/ports"
	"examguard/internal/platform/logx"
	"examguard/internal/sources/common"
)

// DefaultTestTimeout bounds a config self-test.
const DefaultTestTimeout = 60 * time.Second

// Inspector implements ports.Inspector by running the suricata binary.
type Inspector struct {
	*common.BaseCLI
}

// NewInspector creates an Inspector. The executable is passed per call since
// it is only known after path resolution.
func NewInspector(logger logx.Logger, testTimeout time.Duration) *Inspector {
	if testTimeout <= 0 {
		testTimeout = DefaultTestTimeout
	}
	return &Inspector{
		BaseCLI: common.NewBaseCLI(logger, common.BaseCLIConfig{
			ToolName: "suricata",
			Timeout:  testTimeout,
		}),
	}
}

// TestArgs returns the arguments of a config self-test.
func TestArgs(configPath string) []string {
	return []string{"-T", "-c", configPath}
}

// CaptureArgs returns the arguments of a live capture.
func CaptureArgs(configPath, iface string) []string {
	return []string{"-c", configPath, "-i", iface}
}

// TestConfig runs `suricata -T -c <config>` and returns its stderr. A non-zero
// exit is expected when the config is broken and is not reported as an error;
// the caller judges the output. The output is only judged when the process
// exited on its own: a run killed by a signal or by the test timeout is an
// error, as is failing to start it.
func (i *Inspector) TestConfig(ctx context.Context, executable, configPath string) (string, error) {
	stderr, err := i.RunPath(ctx, executable, TestArgs(configPath))
	if err == nil {
		return stderr, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.Exited() && !interrupted(err) {
		i.Logger().Debug("config test exited non-zero",
			"config", configPath,
			"exit_code", exitErr.ExitCode(),
		)
		return stderr, nil
	}
	return stderr, fmt.Errorf("config test did not complete: %w", err)
}

func interrupted(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}

// StartCapture launches `suricata -c <config> -i <iface>` in the background.
func (i *Inspector) StartCapture(ctx context.Context, executable, configPath, iface string) (ports.Capture, error) {
	p, err := i.StartPath(ctx, executable, CaptureArgs(configPath, iface))
	if err != nil {
		return nil, err
	}
	return p, nil
}
