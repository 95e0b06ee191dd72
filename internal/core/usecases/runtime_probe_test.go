// internal/core/usecases/runtime_probe_test.go
package usecases

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"examguard/internal/core/domain"
	"examguard/internal/platform/logx"
)

func runtimeRequest(h *harness) RuntimeRequest {
	return RuntimeRequest{
		Executable: h.exe,
		ConfigPath: "/etc/suricata/suricata.yaml",
		Interface:  "eth0",
		Target:     domain.LogTarget{Dir: h.logDir, Filename: "fast.log"},
	}
}

func TestRuntimeProbe_Success(t *testing.T) {
	h := newHarness(t)

	logPath, failure := h.runtime().Run(context.Background(), runtimeRequest(h))

	require.Nil(t, failure)
	assert.Equal(t, h.logFile, filepath.Clean(logPath))
	assert.Equal(t, 1, h.prober.Calls())
	require.Len(t, h.inspector.Captures, 1)
	assert.Equal(t, 1, h.inspector.Captures[0].Stops())

	data, err := os.ReadFile(h.logFile)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale", "log must be truncated before probing")
}

func TestRuntimeProbe_ProbeNotCaptured(t *testing.T) {
	h := newHarness(t)
	h.prober.OnProbe = nil

	logPath, failure := h.runtime().Run(context.Background(), runtimeRequest(h))

	require.NotNil(t, failure)
	assert.Equal(t, domain.FailureProbeNotCaptured, failure.Kind)
	assert.Equal(t, h.logFile, filepath.Clean(logPath))
	assert.Equal(t, 1, h.inspector.Captures[0].Stops())

	size, err := os.Stat(h.logFile)
	require.NoError(t, err)
	assert.Zero(t, size.Size())
}

func TestRuntimeProbe_ProbeErrorStillChecksLog(t *testing.T) {
	h := newHarness(t)
	h.prober.OnProbe = func() error { return errors.New("sendto: network is unreachable") }

	_, failure := h.runtime().Run(context.Background(), runtimeRequest(h))

	require.NotNil(t, failure)
	assert.Equal(t, domain.FailureProbeNotCaptured, failure.Kind)
}

func TestRuntimeProbe_LogFileNotFound(t *testing.T) {
	h := newHarness(t)
	h.inspector.OnStart = nil

	_, failure := h.runtime().Run(context.Background(), runtimeRequest(h))

	require.NotNil(t, failure)
	assert.Equal(t, domain.FailureLogFileNotFound, failure.Kind)
	assert.Zero(t, h.prober.Calls())
	assert.Equal(t, 1, h.inspector.Captures[0].Stops())
}

func TestRuntimeProbe_LogFileNotFound_LogsCaptureStderr(t *testing.T) {
	h := newHarness(t)
	h.inspector.OnStart = nil
	h.inspector.CaptureStderr = "E: af-packet: eth0: failed to open socket"

	var logs bytes.Buffer
	rp := NewRuntimeProbe(h.inspector, h.prober, fastTiming(), logx.NewWithWriter(&logs, logx.LevelWarn))

	_, failure := rp.Run(context.Background(), runtimeRequest(h))

	require.NotNil(t, failure)
	assert.Equal(t, domain.FailureLogFileNotFound, failure.Kind)
	assert.Contains(t, logs.String(), "log file not found")
	assert.Contains(t, logs.String(), "failed to open socket")
	assert.Contains(t, logs.String(), "capture_exited=true")
}

func TestRuntimeProbe_LaunchFailed(t *testing.T) {
	h := newHarness(t)
	h.inspector.StartErr = errors.New("fork/exec: permission denied")

	_, failure := h.runtime().Run(context.Background(), runtimeRequest(h))

	require.NotNil(t, failure)
	assert.Equal(t, domain.FailureLaunchFailed, failure.Kind)
	assert.ErrorContains(t, failure, "permission denied")
	assert.Zero(t, h.prober.Calls())
}

func TestRuntimeProbe_IncompleteTargetNeverLaunches(t *testing.T) {
	h := newHarness(t)
	req := runtimeRequest(h)
	req.Target.Dir = ""

	_, failure := h.runtime().Run(context.Background(), req)

	require.NotNil(t, failure)
	assert.Equal(t, domain.FailureLogFileNotFound, failure.Kind)
	assert.Empty(t, h.inspector.CaptureCalls)
}

func TestRuntimeProbe_DirWithoutTrailingSlash(t *testing.T) {
	h := newHarness(t)
	req := runtimeRequest(h)
	req.Target.Dir = strings.TrimSuffix(h.logDir, "/")

	logPath, failure := h.runtime().Run(context.Background(), req)

	require.Nil(t, failure)
	assert.Equal(t, h.logFile, logPath)
}

func TestRuntimeProbe_LogAppearsLate(t *testing.T) {
	h := newHarness(t)
	h.inspector.OnStart = func(string, string) {
		go func() {
			time.Sleep(100 * time.Millisecond)
			_ = os.WriteFile(h.logFile, nil, 0o644)
		}()
	}

	_, failure := h.runtime().Run(context.Background(), runtimeRequest(h))

	require.Nil(t, failure)
}

func TestRuntimeProbe_CancelDuringSettle(t *testing.T) {
	h := newHarness(t)
	timing := fastTiming()
	timing.Settle = 5 * time.Second
	probe := NewRuntimeProbe(h.inspector, h.prober, timing, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, failure := probe.Run(ctx, runtimeRequest(h))

	require.NotNil(t, failure)
	assert.Equal(t, domain.FailureAborted, failure.Kind)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, 1, h.inspector.Captures[0].Stops())
	assert.Zero(t, h.prober.Calls())
}

func TestDefaultTiming(t *testing.T) {
	timing := DefaultTiming()
	assert.Equal(t, 2500*time.Millisecond, timing.Settle)
	assert.Equal(t, 500*time.Millisecond, timing.ProbeWait)
	assert.Positive(t, timing.StopGrace)
}
