// internal/adapters/output/json.go
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"examguard/internal/core/domain"
)

// ReportFilename genera el nombre del reporte de una ejecución.
// Formato: examguard_{timestamp}_{status}.json
func ReportFilename(v domain.Verdict) string {
	ts := v.Started
	if !v.Finished.IsZero() {
		ts = v.Finished
	}
	return fmt.Sprintf("examguard_%s_%s.json", ts.Format("20060102_150405"), v.Status)
}

// OutputJSON escribe el veredicto en dir y retorna la ruta del archivo.
func OutputJSON(dir string, v domain.Verdict) (string, error) {
	if dir == "" {
		dir = "."
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, ReportFilename(v))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := EncodeJSON(f, v, true); err != nil {
		return "", err
	}

	return path, nil
}

// EncodeJSON codifica el veredicto en w.
func EncodeJSON(w io.Writer, v domain.Verdict, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// ReadJSON lee un reporte escrito por OutputJSON.
func ReadJSON(path string) (domain.Verdict, error) {
	var v domain.Verdict

	data, err := os.ReadFile(path)
	if err != nil {
		return v, fmt.Errorf("failed to read report: %w", err)
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("failed to decode report %s: %w", path, err)
	}
	return v, nil
}
