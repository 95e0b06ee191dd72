// internal/core/domain/failure.go
package domain

import (
	"fmt"
)

// FailureKind clasifica el motivo por el que una validación terminó en Failure.
type FailureKind int

const (
	FailureExecutableNotFound FailureKind = iota + 1
	FailureAlreadyRunning
	FailureNoConfigFound
	FailureConfigUnreadable
	FailureFastLoggingDisabled
	FailureSyntaxErrors
	FailureNoActiveInterface
	FailureLaunchFailed
	FailureLogFileNotFound
	FailureProbeNotCaptured
	FailureAborted
)

var failureNames = map[FailureKind]string{
	FailureExecutableNotFound:  "ExecutableNotFound",
	FailureAlreadyRunning:      "AlreadyRunning",
	FailureNoConfigFound:       "NoConfigFound",
	FailureConfigUnreadable:    "ConfigUnreadable",
	FailureFastLoggingDisabled: "FastLoggingDisabled",
	FailureSyntaxErrors:        "SyntaxErrors",
	FailureNoActiveInterface:   "NoActiveInterface",
	FailureLaunchFailed:        "LaunchFailed",
	FailureLogFileNotFound:     "LogFileNotFound",
	FailureProbeNotCaptured:    "ProbeNotCaptured",
	FailureAborted:             "Aborted",
}

var failureSentinels = map[FailureKind]error{
	FailureExecutableNotFound:  ErrExecutableNotFound,
	FailureAlreadyRunning:      ErrAlreadyRunning,
	FailureNoConfigFound:       ErrNoConfigFound,
	FailureConfigUnreadable:    ErrConfigUnreadable,
	FailureFastLoggingDisabled: ErrFastLoggingDisabled,
	FailureSyntaxErrors:        ErrSyntaxErrors,
	FailureNoActiveInterface:   ErrNoActiveInterface,
	FailureLaunchFailed:        ErrLaunchFailed,
	FailureLogFileNotFound:     ErrLogFileNotFound,
	FailureProbeNotCaptured:    ErrProbeNotCaptured,
	FailureAborted:             ErrAborted,
}

// String retorna el nombre del tipo de fallo.
func (k FailureKind) String() string {
	if name, ok := failureNames[k]; ok {
		return name
	}
	return fmt.Sprintf("FailureKind(%d)", int(k))
}

// MarshalText serializa el tipo por nombre.
func (k FailureKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText lee el tipo desde su nombre.
func (k *FailureKind) UnmarshalText(text []byte) error {
	for kind, name := range failureNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown failure kind %q", text)
}

// Failure es el resultado de una etapa fallida: tipo, contexto y motivo legible.
type Failure struct {
	Kind FailureKind `json:"kind"`

	// Path archivo relacionado con el fallo (config o log), si aplica
	Path string `json:"path,omitempty"`

	// Count número de errores de sintaxis (solo FailureSyntaxErrors)
	Count int `json:"count,omitempty"`

	// Cause error subyacente, si existe
	Cause error `json:"-"`
}

// Reason retorna el texto de una línea que se muestra al usuario.
func (f *Failure) Reason() string {
	if f == nil {
		return ""
	}

	switch f.Kind {
	case FailureExecutableNotFound:
		return "Suricata is not installed"
	case FailureAlreadyRunning:
		return "Suricata is already running"
	case FailureNoConfigFound:
		return "Suricata configuration file not found"
	case FailureConfigUnreadable:
		return fmt.Sprintf("Unable to read Suricata configuration file: %s", f.Path)
	case FailureFastLoggingDisabled:
		return fmt.Sprintf("Fast log is disabled in Suricata configuration file: %s", f.Path)
	case FailureSyntaxErrors:
		return fmt.Sprintf("Found %d errors in Suricata configuration file: %s", f.Count, f.Path)
	case FailureNoActiveInterface:
		return "No connected network interfaces"
	case FailureLaunchFailed:
		return "Unable to start Suricata"
	case FailureLogFileNotFound:
		return "Unable to find Suricata log file"
	case FailureProbeNotCaptured:
		return "ICMP request was not captured by Suricata"
	case FailureAborted:
		return "Validation was interrupted"
	default:
		return "Validation failed"
	}
}

// Error implementa la interfaz error.
func (f *Failure) Error() string {
	if f.Cause != nil {
		return fmt.Sprintf("%s: %v", f.Reason(), f.Cause)
	}
	return f.Reason()
}

// Unwrap retorna la causa subyacente.
func (f *Failure) Unwrap() error {
	return f.Cause
}

// Is permite errors.Is(f, ErrAlreadyRunning) y similares.
func (f *Failure) Is(target error) bool {
	return failureSentinels[f.Kind] == target
}

// NewFailure crea un fallo sin contexto adicional.
func NewFailure(kind FailureKind) *Failure {
	return &Failure{Kind: kind}
}

// NewFailureWithCause crea un fallo con error subyacente.
func NewFailureWithCause(kind FailureKind, cause error) *Failure {
	return &Failure{Kind: kind, Cause: cause}
}

// ConfigUnreadable crea un fallo de lectura de configuración.
func ConfigUnreadable(path string, cause error) *Failure {
	return &Failure{Kind: FailureConfigUnreadable, Path: path, Cause: cause}
}

// FastLoggingDisabled crea un fallo de fast log desactivado.
func FastLoggingDisabled(path string) *Failure {
	return &Failure{Kind: FailureFastLoggingDisabled, Path: path}
}

// SyntaxErrors crea un fallo de sintaxis con el número de errores encontrados.
func SyntaxErrors(path string, count int) *Failure {
	return &Failure{Kind: FailureSyntaxErrors, Path: path, Count: count}
}
