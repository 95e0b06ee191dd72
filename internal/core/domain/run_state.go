// internal/core/domain/run_state.go
package domain

// RunState contiene el estado mutable de una única ejecución del pipeline.
// Se crea vacío al inicio de cada ejecución y nunca se comparte entre ejecuciones.
type RunState struct {
	Executable       string
	Configs          []string
	SelectedConfig   string
	LogTarget        LogTarget
	ActiveInterfaces []string
	LogPath          string

	// Failure último motivo registrado; se sobrescribe con cada rechazo
	Failure *Failure
}

// NewRunState crea un estado de ejecución vacío.
func NewRunState() *RunState {
	return &RunState{}
}

// Select fija el config válido y su LogTarget, limpiando el motivo previo.
func (s *RunState) Select(configPath string, target LogTarget) {
	s.SelectedConfig = configPath
	s.LogTarget = target
	s.Failure = nil
}

// Reject registra el rechazo de un candidato; el motivo reemplaza al anterior.
func (s *RunState) Reject(f *Failure) {
	s.Failure = f
}

// Interface retorna la interfaz usada para la captura (la primera activa).
func (s *RunState) Interface() string {
	if len(s.ActiveInterfaces) == 0 {
		return ""
	}
	return s.ActiveInterfaces[0]
}
