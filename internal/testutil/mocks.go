// internal/testutil/mocks.go
package testutil

import (
	"context"
	"sync"
	"time"

	"examguard/internal/core/domain"
	"examguard/internal/core/ports"
)

// Nota: los paquetes domain y ports no pueden usar estos mocks en sus propios tests
// (ciclo de imports); están pensados para usecases, ui y cmd.

// FakeProcessTable implementa ports.ProcessTable.
type FakeProcessTable struct {
	mu    sync.Mutex
	PIDs  []int32
	Err   error
	Names []string
}

func (f *FakeProcessTable) FindByName(_ context.Context, name string) ([]int32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Names = append(f.Names, name)
	return f.PIDs, f.Err
}

// Calls retorna cuántas consultas se hicieron.
func (f *FakeProcessTable) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Names)
}

// FakeInterfaceLister implementa ports.InterfaceLister.
type FakeInterfaceLister struct {
	Ifaces []ports.NetInterface
	Err    error
}

func (f *FakeInterfaceLister) Interfaces(context.Context) ([]ports.NetInterface, error) {
	return f.Ifaces, f.Err
}

// ActiveInterface retorna una interfaz up, running y no loopback.
func ActiveInterface(name string) ports.NetInterface {
	return ports.NetInterface{Name: name, Up: true, Running: true}
}

// LoopbackInterface retorna una interfaz loopback activa.
func LoopbackInterface() ports.NetInterface {
	return ports.NetInterface{Name: "lo", Up: true, Running: true, Loopback: true}
}

// FakeCapture implementa ports.Capture y registra las detenciones.
type FakeCapture struct {
	mu      sync.Mutex
	PID     int
	stops   int
	OnStop  func()
	StopErr error

	// Dead simula una captura que terminó antes de tiempo
	Dead   bool
	Output string
}

func (c *FakeCapture) Pid() int { return c.PID }

func (c *FakeCapture) Exited() bool { return c.Dead }

func (c *FakeCapture) Stderr() string { return c.Output }

func (c *FakeCapture) Stop(time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stops++
	if c.stops == 1 && c.OnStop != nil {
		c.OnStop()
	}
	return c.StopErr
}

// Stops retorna cuántas veces se llamó a Stop.
func (c *FakeCapture) Stops() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stops
}

// FakeInspector implementa ports.Inspector.
type FakeInspector struct {
	mu sync.Mutex

	// Stderr salida de TestConfig por ruta de config
	Stderr  map[string]string
	TestErr error

	// OnStart se ejecuta al lanzar la captura (por ejemplo, para crear el log)
	OnStart  func(configPath, iface string)
	StartErr error

	// CaptureStderr si no está vacío, la captura termina sola con esa salida
	CaptureStderr string

	TestCalls    []string
	CaptureCalls []string
	Captures     []*FakeCapture
}

func (f *FakeInspector) TestConfig(_ context.Context, _ string, configPath string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.TestCalls = append(f.TestCalls, configPath)
	if f.TestErr != nil {
		return "", f.TestErr
	}
	return f.Stderr[configPath], nil
}

func (f *FakeInspector) StartCapture(_ context.Context, _ string, configPath, iface string) (ports.Capture, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CaptureCalls = append(f.CaptureCalls, iface)
	if f.StartErr != nil {
		return nil, f.StartErr
	}
	if f.OnStart != nil {
		f.OnStart(configPath, iface)
	}
	c := &FakeCapture{PID: 4242 + len(f.Captures)}
	if f.CaptureStderr != "" {
		c.Dead = true
		c.Output = f.CaptureStderr
	}
	f.Captures = append(f.Captures, c)
	return c, nil
}

// Subprocesses retorna cuántos subprocesos habría lanzado el inspector.
func (f *FakeInspector) Subprocesses() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.TestCalls) + len(f.CaptureCalls)
}

// FakeProber implementa ports.Prober.
type FakeProber struct {
	mu      sync.Mutex
	OnProbe func() error
	calls   int
}

func (f *FakeProber) Probe(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.OnProbe != nil {
		return f.OnProbe()
	}
	return nil
}

// Calls retorna cuántos sondeos se emitieron.
func (f *FakeProber) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// RecordingNotifier implementa ports.Notifier guardando los eventos recibidos.
type RecordingNotifier struct {
	mu       sync.Mutex
	Statuses []domain.ValidationStatus
	Started  []string
	Reports  []domain.StageReport
	Verdicts []domain.Verdict
}

func (n *RecordingNotifier) StatusChanged(status domain.ValidationStatus) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Statuses = append(n.Statuses, status)
}

func (n *RecordingNotifier) StageStarted(name string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Started = append(n.Started, name)
}

func (n *RecordingNotifier) StageFinished(report domain.StageReport) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Reports = append(n.Reports, report)
}

func (n *RecordingNotifier) ValidationFinished(verdict domain.Verdict) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Verdicts = append(n.Verdicts, verdict)
}

// Snapshot retorna copias de los estados y veredictos registrados.
func (n *RecordingNotifier) Snapshot() ([]domain.ValidationStatus, []domain.Verdict) {
	n.mu.Lock()
	defer n.mu.Unlock()
	statuses := append([]domain.ValidationStatus(nil), n.Statuses...)
	verdicts := append([]domain.Verdict(nil), n.Verdicts...)
	return statuses, verdicts
}
