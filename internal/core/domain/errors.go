// internal/core/domain/errors.go
package domain

import "errors"

// Errores sentinela, uno por cada tipo de fallo de validación.
// Un *Failure de un tipo dado satisface errors.Is contra su sentinela.
var (
	ErrExecutableNotFound  = errors.New("executable not found")
	ErrAlreadyRunning      = errors.New("tool already running")
	ErrNoConfigFound       = errors.New("no configuration file found")
	ErrConfigUnreadable    = errors.New("configuration file unreadable")
	ErrFastLoggingDisabled = errors.New("fast logging disabled")
	ErrSyntaxErrors        = errors.New("configuration syntax errors")
	ErrNoActiveInterface   = errors.New("no active network interface")
	ErrLaunchFailed        = errors.New("capture launch failed")
	ErrLogFileNotFound     = errors.New("log file not found")
	ErrProbeNotCaptured    = errors.New("probe not captured")
	ErrAborted             = errors.New("validation aborted")

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")
)
