// internal/core/domain/verdict.go
package domain

import "time"

// SuccessInfo describe el entorno validado cuando la validación pasa.
type SuccessInfo struct {
	Executable string    `json:"executable"`
	ConfigPath string    `json:"config_path"`
	LogPath    string    `json:"log_path"`
	Interface  string    `json:"interface"`
	LogTarget  LogTarget `json:"log_target"`
}

// StageOutcome resultado de una etapa individual del pipeline.
type StageOutcome string

const (
	StageOutcomePassed  StageOutcome = "passed"
	StageOutcomeFailed  StageOutcome = "failed"
	StageOutcomeSkipped StageOutcome = "skipped"
)

// StageReport registra la ejecución de una etapa.
type StageReport struct {
	Name     string        `json:"name"`
	Outcome  StageOutcome  `json:"outcome"`
	Duration time.Duration `json:"duration_ns"`
	Detail   string        `json:"detail,omitempty"`
}

// Verdict es el resultado de una ejecución del pipeline.
// Es un tipo suma: mientras Status es Checking no hay ni Success ni Failure;
// en estado terminal hay exactamente uno de los dos.
type Verdict struct {
	RunID    string           `json:"run_id"`
	Status   ValidationStatus `json:"status"`
	Success  *SuccessInfo     `json:"success,omitempty"`
	Failure  *Failure         `json:"failure,omitempty"`
	Reason   string           `json:"reason,omitempty"`
	Configs  []string         `json:"configs,omitempty"`
	Stages   []StageReport    `json:"stages,omitempty"`
	Started  time.Time        `json:"started"`
	Finished time.Time        `json:"finished,omitempty"`
}

// Checking crea un veredicto en curso, sin motivo.
func Checking(runID string, started time.Time) Verdict {
	return Verdict{
		RunID:   runID,
		Status:  StatusChecking,
		Started: started,
	}
}

// Succeeded cierra el veredicto como Success, descartando cualquier fallo previo.
func (v Verdict) Succeeded(info SuccessInfo, finished time.Time) Verdict {
	v.Status = StatusSuccess
	v.Success = &info
	v.Failure = nil
	v.Reason = ""
	v.Finished = finished
	return v
}

// Failed cierra el veredicto como Failure con el motivo del fallo.
func (v Verdict) Failed(f *Failure, finished time.Time) Verdict {
	if f == nil {
		f = NewFailure(FailureAborted)
	}
	v.Status = StatusFailure
	v.Success = nil
	v.Failure = f
	v.Reason = f.Reason()
	v.Finished = finished
	return v
}

// Duration retorna la duración total de la ejecución (0 si sigue en curso).
func (v Verdict) Duration() time.Duration {
	if v.Finished.IsZero() {
		return 0
	}
	return v.Finished.Sub(v.Started)
}

// Err retorna el fallo como error, o nil si no hubo fallo.
func (v Verdict) Err() error {
	if v.Failure == nil {
		return nil
	}
	return v.Failure
}
