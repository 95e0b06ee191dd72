// internal/adapters/output/report_writer.go
package output

import (
	"sync"

	"examguard/internal/core/domain"
	"examguard/internal/platform/logx"
)

// ReportWriter escribe un reporte JSON por cada veredicto recibido.
// Implementa ports.Notifier; el resto de eventos se ignoran.
type ReportWriter struct {
	dir    string
	logger logx.Logger

	mu    sync.Mutex
	paths []string
	err   error
}

// NewReportWriter crea un writer que guarda los reportes en dir.
func NewReportWriter(dir string, logger logx.Logger) *ReportWriter {
	return &ReportWriter{
		dir:    dir,
		logger: logger.With("component", "report-writer"),
	}
}

func (w *ReportWriter) StatusChanged(domain.ValidationStatus) {}
func (w *ReportWriter) StageStarted(string)                   {}
func (w *ReportWriter) StageFinished(domain.StageReport)      {}

// ValidationFinished persiste el veredicto. Un error de escritura se registra
// y queda disponible en Err; no altera el veredicto.
func (w *ReportWriter) ValidationFinished(v domain.Verdict) {
	path, err := OutputJSON(w.dir, v)

	w.mu.Lock()
	defer w.mu.Unlock()

	if err != nil {
		w.err = err
		w.logger.Err(err, "run_id", v.RunID)
		return
	}

	w.paths = append(w.paths, path)
	w.logger.Debug("report written", "path", path, "status", v.Status.String())
}

// Paths retorna los reportes escritos, en orden.
func (w *ReportWriter) Paths() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]string, len(w.paths))
	copy(out, w.paths)
	return out
}

// LastPath retorna el último reporte escrito o "".
func (w *ReportWriter) LastPath() string {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.paths) == 0 {
		return ""
	}
	return w.paths[len(w.paths)-1]
}

// Err retorna el último error de escritura.
func (w *ReportWriter) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}
