// internal/core/usecases/validator.go
package usecases

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"

	"examguard/internal/core/domain"
	"examguard/internal/core/ports"
	"examguard/internal/platform/logx"
)

// ErrRunInProgress se retorna al iniciar una validación con otra en curso.
var ErrRunInProgress = errors.New("validation already in progress")

// RunLocker excluye ejecuciones concurrentes entre procesos.
type RunLocker interface {
	TryAcquire() error
	Release() error
}

// Validator ejecuta el pipeline en segundo plano, una ejecución a la vez,
// y conserva el último veredicto.
type Validator struct {
	pipeline *Pipeline
	notifier ports.Notifier
	locker   RunLocker
	logger   logx.Logger

	mu         sync.Mutex
	running    bool
	verdict    domain.Verdict
	executable string

	wg conc.WaitGroup
}

// ValidatorOptions configura el validador.
type ValidatorOptions struct {
	Pipeline *Pipeline
	Notifier ports.Notifier

	// Locker opcional; nil desactiva la exclusión entre procesos
	Locker RunLocker
	Logger logx.Logger
}

// NewValidator crea un validador en estado Checking sin ejecuciones previas.
func NewValidator(opts ValidatorOptions) *Validator {
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}
	if opts.Notifier == nil {
		opts.Notifier = ports.MultiNotifier{}
	}

	return &Validator{
		pipeline: opts.Pipeline,
		notifier: opts.Notifier,
		locker:   opts.Locker,
		logger:   opts.Logger.With("component", "validator"),
		verdict:  domain.Verdict{Status: domain.StatusChecking},
	}
}

// Start lanza una ejecución. El estado Checking se notifica antes de retornar;
// el canal entrega el veredicto final una sola vez y luego se cierra.
func (v *Validator) Start(ctx context.Context) (<-chan domain.Verdict, error) {
	v.mu.Lock()
	if v.running {
		v.mu.Unlock()
		return nil, ErrRunInProgress
	}
	if v.locker != nil {
		if err := v.locker.TryAcquire(); err != nil {
			v.mu.Unlock()
			return nil, fmt.Errorf("%w: %v", ErrRunInProgress, err)
		}
	}

	runID := uuid.NewString()
	started := time.Now()
	preferred := v.executable

	v.running = true
	v.verdict = domain.Checking(runID, started)
	v.mu.Unlock()

	v.notifier.StatusChanged(domain.StatusChecking)

	ch := make(chan domain.Verdict, 1)
	v.wg.Go(func() {
		verdict := v.run(ctx, runID, preferred, started)
		v.finish(verdict)
		ch <- verdict
		close(ch)
	})

	return ch, nil
}

// Restart descarta el resultado anterior y vuelve a validar desde cero.
func (v *Validator) Restart(ctx context.Context) (<-chan domain.Verdict, error) {
	v.logger.Info("restarting validation", "previous_status", v.Status().String())
	return v.Start(ctx)
}

// Run ejecuta una validación y espera su veredicto.
func (v *Validator) Run(ctx context.Context) (domain.Verdict, error) {
	ch, err := v.Start(ctx)
	if err != nil {
		return domain.Verdict{}, err
	}
	return <-ch, nil
}

// Wait bloquea hasta que termine la ejecución en curso, si la hay.
func (v *Validator) Wait() {
	v.wg.Wait()
}

// Status retorna el estado actual.
func (v *Validator) Status() domain.ValidationStatus {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.verdict.Status
}

// Verdict retorna el último veredicto (en curso o terminal).
func (v *Validator) Verdict() domain.Verdict {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.verdict
}

// Executable retorna el ejecutable de la última validación exitosa.
func (v *Validator) Executable() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.executable
}

func (v *Validator) run(ctx context.Context, runID, preferred string, started time.Time) domain.Verdict {
	var verdict domain.Verdict
	var pc panics.Catcher
	pc.Try(func() {
		verdict = v.pipeline.Run(ctx, RunRequest{RunID: runID, Preferred: preferred})
	})

	if r := pc.Recovered(); r != nil {
		v.logger.Err(r.AsError(), "run_id", runID)
		verdict = domain.Checking(runID, started).
			Failed(domain.NewFailureWithCause(domain.FailureAborted, r.AsError()), time.Now())
	}
	return verdict
}

func (v *Validator) finish(verdict domain.Verdict) {
	v.mu.Lock()
	v.verdict = verdict
	v.running = false
	if verdict.Success != nil {
		v.executable = verdict.Success.Executable
	}
	if v.locker != nil {
		if err := v.locker.Release(); err != nil {
			v.logger.Warn("failed to release run lock", "error", err.Error())
		}
	}
	v.mu.Unlock()

	v.notifier.StatusChanged(verdict.Status)
	v.notifier.ValidationFinished(verdict)
}
