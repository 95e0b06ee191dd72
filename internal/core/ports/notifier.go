// internal/core/ports/notifier.go
package ports

import "examguard/internal/core/domain"

// Notifier recibe los eventos de una validación para mostrarlos al usuario.
// Implementa el patrón Observer para desacoplar el pipeline de la UI.
type Notifier interface {
	// StatusChanged se emite al iniciar (Checking) y al terminar una ejecución
	StatusChanged(status domain.ValidationStatus)

	// StageStarted se emite al comenzar cada etapa
	StageStarted(name string)

	// StageFinished se emite al terminar cada etapa
	StageFinished(report domain.StageReport)

	// ValidationFinished se emite exactamente una vez por ejecución con el veredicto final
	ValidationFinished(verdict domain.Verdict)
}

// MultiNotifier reenvía los eventos a varios notifiers en orden.
type MultiNotifier []Notifier

func (m MultiNotifier) StatusChanged(status domain.ValidationStatus) {
	for _, n := range m {
		n.StatusChanged(status)
	}
}

func (m MultiNotifier) StageStarted(name string) {
	for _, n := range m {
		n.StageStarted(name)
	}
}

func (m MultiNotifier) StageFinished(report domain.StageReport) {
	for _, n := range m {
		n.StageFinished(report)
	}
}

func (m MultiNotifier) ValidationFinished(verdict domain.Verdict) {
	for _, n := range m {
		n.ValidationFinished(verdict)
	}
}
