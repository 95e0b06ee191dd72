package cmd

import (
	"errors"

	"examguard/internal/core/domain"
)

// Códigos de salida del proceso.
const (
	ExitOK     = 0
	ExitFailed = 1
	ExitUsage  = 2
)

// ErrValidationFailed indica que la validación terminó en Failure.
// El motivo ya se mostró, por eso main no lo vuelve a imprimir.
var ErrValidationFailed = errors.New("validation failed")

// exitError asocia un código de salida a un error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func usageError(err error) error {
	return &exitError{code: ExitUsage, err: err}
}

// ExitCode traduce el error de Execute a un código de salida.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	if errors.Is(err, domain.ErrInvalidConfig) {
		return ExitUsage
	}
	return ExitFailed
}
