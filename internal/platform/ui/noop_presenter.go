// internal/platform/ui/noop_presenter.go
package ui

import "examguard/internal/core/domain"

// NoopPresenter es una implementación vacía del Presenter
// que no produce ninguna salida. Útil para modo quiet o headless.
type NoopPresenter struct{}

// NewNoopPresenter crea una instancia del presenter sin salida
func NewNoopPresenter() *NoopPresenter {
	return &NoopPresenter{}
}

func (n *NoopPresenter) Start(info RunInfo)                           {}
func (n *NoopPresenter) StatusChanged(status domain.ValidationStatus) {}
func (n *NoopPresenter) StageStarted(name string)                     {}
func (n *NoopPresenter) StageFinished(report domain.StageReport)      {}
func (n *NoopPresenter) ValidationFinished(verdict domain.Verdict)    {}

// ConfirmRetry nunca reintenta
func (n *NoopPresenter) ConfirmRetry(verdict domain.Verdict) bool {
	return false
}

// Close no hace nada
func (n *NoopPresenter) Close() error {
	return nil
}
