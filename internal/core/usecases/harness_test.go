// internal/core/usecases/harness_test.go
package usecases

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"examguard/internal/core/ports"
	"examguard/internal/platform/logx"
	"examguard/internal/sources/suricata"
	"examguard/internal/testutil"
)

// harness arma un pipeline con fakes sobre un árbol temporal:
// un ejecutable, un root de configs y un directorio de logs.
type harness struct {
	dir      string
	exe      string
	confRoot string
	logDir   string
	logFile  string

	processes  *testutil.FakeProcessTable
	inspector  *testutil.FakeInspector
	interfaces *testutil.FakeInterfaceLister
	prober     *testutil.FakeProber
	notifier   *testutil.RecordingNotifier

	executables []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()

	h := &harness{
		dir:        dir,
		exe:        testutil.WriteExecutable(t, dir, "bin/suricata", "exit 0"),
		confRoot:   filepath.Join(dir, "etc"),
		logDir:     filepath.Join(dir, "log") + "/",
		processes:  &testutil.FakeProcessTable{},
		interfaces: &testutil.FakeInterfaceLister{Ifaces: []ports.NetInterface{testutil.LoopbackInterface(), testutil.ActiveInterface("eth0")}},
		notifier:   &testutil.RecordingNotifier{},
	}
	h.logFile = filepath.Join(h.logDir, "fast.log")
	h.executables = []string{filepath.Join(dir, "missing/suricata"), h.exe}

	if err := os.MkdirAll(h.logDir, 0o755); err != nil {
		t.Fatalf("mkdir log dir: %v", err)
	}

	// la captura crea el log con contenido previo; el sondeo lo hace crecer
	h.inspector = &testutil.FakeInspector{
		Stderr: map[string]string{},
		OnStart: func(string, string) {
			_ = os.WriteFile(h.logFile, []byte("stale alert\n"), 0o644)
		},
	}
	h.prober = &testutil.FakeProber{
		OnProbe: func() error { return appendLine(h.logFile, "ICMP alert") },
	}
	return h
}

func (h *harness) addConfig(t *testing.T, rel, content string) string {
	t.Helper()
	return testutil.WriteFile(t, h.confRoot, rel, content)
}

func (h *harness) enabledConfig() string {
	return testutil.FixtureConfigEnabled(h.logDir, "fast.log")
}

func (h *harness) runtime() *RuntimeProbe {
	return NewRuntimeProbe(h.inspector, h.prober, fastTiming(), logx.NewSilent())
}

func (h *harness) pipeline() *Pipeline {
	return NewPipeline(PipelineOptions{
		Executables:    h.executables,
		ConfigRoots:    []string{h.confRoot},
		ConfigPatterns: []string{"suricata.yaml", "suricata.conf"},
		Processes:      h.processes,
		Grammar:        suricata.NewGrammar(),
		Inspector:      h.inspector,
		Interfaces:     h.interfaces,
		Runtime:        h.runtime(),
		Notifier:       h.notifier,
		Logger:         logx.NewSilent(),
	})
}

func fastTiming() Timing {
	return Timing{
		Settle:       10 * time.Millisecond,
		LogWait:      500 * time.Millisecond,
		ProbeWait:    300 * time.Millisecond,
		PollInterval: 10 * time.Millisecond,
		StopGrace:    10 * time.Millisecond,
	}
}

func appendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(line + "\n")
	return err
}
