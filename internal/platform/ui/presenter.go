// internal/platform/ui/presenter.go
package ui

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"examguard/internal/core/domain"
	"examguard/internal/core/ports"
	"examguard/internal/platform/config"
)

// Presenter muestra el progreso de una validación.
// Recibe los eventos del pipeline como cualquier otro ports.Notifier.
type Presenter interface {
	ports.Notifier

	// Start muestra la información inicial de la ejecución
	Start(info RunInfo)

	// ConfirmRetry pregunta si reintentar tras un fallo; false si no es interactivo
	ConfirmRetry(verdict domain.Verdict) bool

	// Close limpia recursos del presenter
	Close() error
}

// RunInfo contiene información inicial de la ejecución
type RunInfo struct {
	Version     string
	Attempt     int
	Stages      []string
	Executables []string
	ConfigRoots []string
	ProbeMode   string
	ProbeTarget string
	Timeout     time.Duration
}

// New crea el presenter para el modo de UI configurado.
// El modo auto usa pterm si stdout es una terminal y logfmt en otro caso.
func New(mode string, out io.Writer) Presenter {
	switch ResolveMode(mode, out) {
	case config.UIPretty:
		return NewPTermPresenter(isTerminal(os.Stdin))
	case config.UIRaw:
		return NewRawPresenter(out, LogFormatText)
	case config.UIJSON:
		return NewRawPresenter(out, LogFormatJSON)
	default:
		return NewNoopPresenter()
	}
}

// ResolveMode traduce auto al modo concreto según la terminal.
func ResolveMode(mode string, out io.Writer) string {
	if mode != config.UIAuto && mode != "" {
		return mode
	}
	if isTerminal(out) {
		return config.UIPretty
	}
	return config.UIRaw
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
