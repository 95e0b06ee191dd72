// internal/core/domain/status.go
package domain

import "fmt"

// ValidationStatus es el estado tri-valor de una validación del entorno.
type ValidationStatus int

const (
	// StatusChecking indica que hay una validación en curso (estado inicial)
	StatusChecking ValidationStatus = iota

	// StatusSuccess indica que todas las etapas pasaron
	StatusSuccess

	// StatusFailure indica que alguna etapa falló
	StatusFailure
)

// String retorna la representación string del estado.
func (s ValidationStatus) String() string {
	switch s {
	case StatusChecking:
		return "checking"
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// IsTerminal retorna true para Success y Failure.
func (s ValidationStatus) IsTerminal() bool {
	return s == StatusSuccess || s == StatusFailure
}

// Label retorna el texto que se muestra al usuario para el estado.
func (s ValidationStatus) Label() string {
	switch s {
	case StatusChecking:
		return "Checking..."
	case StatusSuccess:
		return "Check passed"
	case StatusFailure:
		return "Check failed"
	default:
		return "Unknown"
	}
}

// MarshalText permite serializar el estado como string en JSON.
func (s ValidationStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText lee el estado desde su nombre.
func (s *ValidationStatus) UnmarshalText(text []byte) error {
	switch string(text) {
	case "checking":
		*s = StatusChecking
	case "success":
		*s = StatusSuccess
	case "failure":
		*s = StatusFailure
	default:
		return fmt.Errorf("unknown validation status %q", text)
	}
	return nil
}
