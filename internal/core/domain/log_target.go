// internal/core/domain/log_target.go
package domain

// LogTarget es el par (directorio, archivo) del fast log derivado de la configuración.
// Cualquiera de los dos campos puede estar vacío hasta que se descubre.
type LogTarget struct {
	Dir      string `json:"dir"`
	Filename string `json:"filename"`
}

// Complete retorna true si ambos campos están definidos.
func (t LogTarget) Complete() bool {
	return t.Dir != "" && t.Filename != ""
}

// Candidates retorna las rutas posibles del archivo de log, en orden de prueba:
// el nombre tal cual, directorio+nombre concatenados y directorio+"/"+nombre.
// No contiene duplicados.
func (t LogTarget) Candidates() []string {
	if t.Filename == "" {
		return nil
	}

	raw := []string{
		t.Filename,
		t.Dir + t.Filename,
		t.Dir + "/" + t.Filename,
	}

	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
