package suricata

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"examguard/internal/platform/logx"
)

func fakeSuricata(t *testing.T, body string) (bin, argsFile string) {
	t.Helper()
	dir := t.TempDir()
	argsFile = filepath.Join(dir, "args")
	bin = filepath.Join(dir, "suricata")
	script := "#!/bin/sh\necho \"$@\" > " + argsFile + "\n" + body + "\n"
	require.NoError(t, os.WriteFile(bin, []byte(script), 0o755))
	return bin, argsFile
}

func readArgs(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.TrimSpace(string(data))
}

func TestInspector_TestConfig(t *testing.T) {
	bin, argsFile := fakeSuricata(t, `echo "E: conf: broken" >&2; echo "Error: again" >&2; exit 1`)
	insp := NewInspector(logx.NewSilent(), 5*time.Second)

	stderr, err := insp.TestConfig(context.Background(), bin, "/etc/suricata/suricata.yaml")
	require.NoError(t, err)
	assert.Equal(t, 2, CountErrors(stderr))
	assert.Equal(t, "-T -c /etc/suricata/suricata.yaml", readArgs(t, argsFile))
}

func TestInspector_TestConfig_MissingBinary(t *testing.T) {
	insp := NewInspector(logx.NewSilent(), 5*time.Second)

	_, err := insp.TestConfig(context.Background(), filepath.Join(t.TempDir(), "suricata"), "/etc/suricata/suricata.yaml")
	assert.Error(t, err)
}

func TestInspector_TestConfig_TimeoutIsError(t *testing.T) {
	bin, _ := fakeSuricata(t, `exec sleep 5`)
	insp := NewInspector(logx.NewSilent(), 200*time.Millisecond)

	start := time.Now()
	stderr, err := insp.TestConfig(context.Background(), bin, "/etc/suricata/suricata.yaml")

	require.Error(t, err, "a killed config test must not be judged as clean")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, CountErrors(stderr))
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestInspector_TestConfig_SignalExitIsError(t *testing.T) {
	bin, _ := fakeSuricata(t, `echo "partial output" >&2; kill -KILL $$`)
	insp := NewInspector(logx.NewSilent(), 5*time.Second)

	stderr, err := insp.TestConfig(context.Background(), bin, "/etc/suricata/suricata.yaml")

	require.Error(t, err)
	assert.NotErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, stderr, "partial output")
}

func TestInspector_StartCapture(t *testing.T) {
	bin, argsFile := fakeSuricata(t, `trap 'exit 0' TERM; while true; do sleep 0.05; done`)
	insp := NewInspector(logx.NewSilent(), 0)
	t.Cleanup(func() { _ = insp.Close() })

	capture, err := insp.StartCapture(context.Background(), bin, "/etc/suricata/suricata.yaml", "eth0")
	require.NoError(t, err)
	assert.Positive(t, capture.Pid())

	require.Eventually(t, func() bool {
		_, err := os.Stat(argsFile)
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	assert.Equal(t, "-c /etc/suricata/suricata.yaml -i eth0", readArgs(t, argsFile))

	require.NoError(t, capture.Stop(2*time.Second))
	require.NoError(t, capture.Stop(time.Second))
}

func TestInspector_StartCapture_MissingBinary(t *testing.T) {
	insp := NewInspector(logx.NewSilent(), 0)

	_, err := insp.StartCapture(context.Background(), filepath.Join(t.TempDir(), "suricata"), "/c.yaml", "eth0")
	assert.Error(t, err)
}

func TestInspector_StartCapture_EarlyExitKeepsStderr(t *testing.T) {
	bin, _ := fakeSuricata(t, `echo "E: af-packet: eth9: no such device" >&2; exit 1`)
	insp := NewInspector(logx.NewSilent(), 0)

	capture, err := insp.StartCapture(context.Background(), bin, "/etc/suricata/suricata.yaml", "eth9")
	require.NoError(t, err)

	require.Eventually(t, capture.Exited, 2*time.Second, 20*time.Millisecond)
	assert.Contains(t, capture.Stderr(), "no such device")
	require.NoError(t, capture.Stop(time.Second))
}
