// internal/core/usecases/runtime_probe.go
package usecases

import (
	"context"
	"errors"
	"time"

	"examguard/internal/core/domain"
	"examguard/internal/core/ports"
	"examguard/internal/platform/fsx"
	"examguard/internal/platform/logx"
)

// Timing agrupa las esperas de la prueba en vivo.
type Timing struct {
	// Settle espera tras lanzar la captura antes de buscar el log
	Settle time.Duration

	// LogWait tiempo máximo para que aparezca el archivo de log
	LogWait time.Duration

	// ProbeWait tiempo máximo para que el log crezca tras el sondeo
	ProbeWait time.Duration

	// PollInterval intervalo de sondeo del filesystem
	PollInterval time.Duration

	// StopGrace espera entre SIGTERM y SIGKILL al detener la captura
	StopGrace time.Duration
}

// DefaultTiming retorna las esperas por defecto.
func DefaultTiming() Timing {
	return Timing{
		Settle:       2500 * time.Millisecond,
		LogWait:      2 * time.Second,
		ProbeWait:    500 * time.Millisecond,
		PollInterval: fsx.DefaultPollInterval,
		StopGrace:    3 * time.Second,
	}
}

// RuntimeRequest datos de entrada de la prueba en vivo.
type RuntimeRequest struct {
	Executable string
	ConfigPath string
	Interface  string
	Target     domain.LogTarget
}

// RuntimeProbe lanza la captura, emite un sondeo y comprueba que quedó registrado.
type RuntimeProbe struct {
	inspector ports.Inspector
	prober    ports.Prober
	timing    Timing
	logger    logx.Logger
}

// NewRuntimeProbe crea la prueba en vivo.
func NewRuntimeProbe(inspector ports.Inspector, prober ports.Prober, timing Timing, logger logx.Logger) *RuntimeProbe {
	if logger == nil {
		logger = logx.New()
	}
	if timing.PollInterval <= 0 {
		timing.PollInterval = fsx.DefaultPollInterval
	}
	return &RuntimeProbe{
		inspector: inspector,
		prober:    prober,
		timing:    timing,
		logger:    logger.With("component", "runtime_probe"),
	}
}

// Run retorna la ruta del log usada y nil si la captura registró el sondeo.
// La captura lanzada se detiene siempre antes de retornar.
func (r *RuntimeProbe) Run(ctx context.Context, req RuntimeRequest) (logPath string, failure *domain.Failure) {
	if !req.Target.Complete() {
		r.logger.Warn("log target incomplete", "dir", req.Target.Dir, "file", req.Target.Filename)
		return "", domain.NewFailure(domain.FailureLogFileNotFound)
	}

	capture, err := r.inspector.StartCapture(ctx, req.Executable, req.ConfigPath, req.Interface)
	if err != nil {
		r.logger.Err(err, "interface", req.Interface)
		return "", domain.NewFailureWithCause(domain.FailureLaunchFailed, err)
	}

	logger := r.logger.With("pid", capture.Pid())
	logger.Info("capture started", "interface", req.Interface, "config", req.ConfigPath)

	defer func() {
		if err := capture.Stop(r.timing.StopGrace); err != nil {
			logger.Warn("failed to stop capture", "error", err.Error())
		}
	}()

	if err := sleep(ctx, r.timing.Settle); err != nil {
		return "", domain.NewFailureWithCause(domain.FailureAborted, err)
	}

	logPath, ok := fsx.WaitForAny(ctx, req.Target.Candidates(), r.timing.LogWait, r.timing.PollInterval)
	if !ok {
		if err := ctx.Err(); err != nil {
			return "", domain.NewFailureWithCause(domain.FailureAborted, err)
		}
		logger.Warn("log file not found",
			"candidates", req.Target.Candidates(),
			"capture_exited", capture.Exited(),
			"stderr", capture.Stderr(),
		)
		return "", domain.NewFailure(domain.FailureLogFileNotFound)
	}

	if err := fsx.Truncate(logPath); err != nil {
		logger.Warn("failed to clear log file", "path", logPath, "error", err.Error())
	} else {
		logger.Debug("log file cleared", "path", logPath)
	}

	if err := r.prober.Probe(ctx); err != nil {
		if errAborted(err) && ctx.Err() != nil {
			return logPath, domain.NewFailureWithCause(domain.FailureAborted, err)
		}
		logger.Warn("probe failed", "error", err.Error())
	}

	if !fsx.WaitForGrowth(ctx, logPath, r.timing.ProbeWait, r.timing.PollInterval) {
		logger.Warn("log did not grow after probe", "path", logPath)
		return logPath, domain.NewFailure(domain.FailureProbeNotCaptured)
	}

	logger.Info("probe captured", "path", logPath)
	return logPath, nil
}

// errAborted distingue cancelaciones del contexto de otros errores.
func errAborted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// sleep espera d o hasta que el contexto se cancele.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
