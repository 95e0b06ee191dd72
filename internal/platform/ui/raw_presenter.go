// internal/platform/ui/raw_presenter.go
package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"examguard/internal/core/domain"
)

// LogFormat define el formato de salida para el modo raw
type LogFormat string

const (
	LogFormatText LogFormat = "text" // Formato logfmt (default)
	LogFormatJSON LogFormat = "json" // Formato JSON estructurado
)

// field par clave/valor con orden estable
type field struct {
	key   string
	value any
}

// RawPresenter implementa el Presenter para modo raw (una línea por evento)
type RawPresenter struct {
	out    io.Writer
	format LogFormat
	mu     sync.Mutex
	now    func() time.Time
}

// NewRawPresenter crea un nuevo RawPresenter
func NewRawPresenter(out io.Writer, format LogFormat) *RawPresenter {
	return &RawPresenter{
		out:    out,
		format: format,
		now:    time.Now,
	}
}

// log escribe un evento en el formato configurado
func (r *RawPresenter) log(level, message string, fields ...field) {
	r.mu.Lock()
	defer r.mu.Unlock()

	timestamp := r.now().UTC().Format(time.RFC3339)

	if r.format == LogFormatJSON {
		r.logJSON(timestamp, level, message, fields)
	} else {
		r.logText(timestamp, level, message, fields)
	}
}

// logText escribe en formato logfmt: timestamp LEVEL message key=value key2=value2
func (r *RawPresenter) logText(timestamp, level, message string, fields []field) {
	parts := []string{timestamp, fmt.Sprintf("%-5s", level), message}
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s=%s", f.key, formatValue(f.value)))
	}
	fmt.Fprintln(r.out, strings.Join(parts, " "))
}

// logJSON escribe en formato JSON estructurado
func (r *RawPresenter) logJSON(timestamp, level, message string, fields []field) {
	entry := map[string]any{
		"timestamp": timestamp,
		"level":     level,
		"message":   message,
	}

	if len(fields) > 0 {
		data := make(map[string]any, len(fields))
		for _, f := range fields {
			if d, ok := f.value.(time.Duration); ok {
				data[f.key] = d.String()
				continue
			}
			data[f.key] = f.value
		}
		entry["data"] = data
	}

	jsonBytes, _ := json.Marshal(entry)
	fmt.Fprintln(r.out, string(jsonBytes))
}

// formatValue formatea valores para logfmt (entrecomilla strings con espacios)
func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		if val == "" || strings.ContainsAny(val, " =\"") {
			return fmt.Sprintf("%q", val)
		}
		return val
	case []string:
		return formatValue(strings.Join(val, ","))
	case time.Duration:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Start registra el inicio de la ejecución
func (r *RawPresenter) Start(info RunInfo) {
	r.log("INFO", "run_started",
		field{"version", info.Version},
		field{"attempt", info.Attempt},
		field{"stages", len(info.Stages)},
		field{"probe", info.ProbeMode},
		field{"target", info.ProbeTarget},
		field{"timeout", info.Timeout},
	)
}

func (r *RawPresenter) StatusChanged(status domain.ValidationStatus) {
	r.log("INFO", "status_changed",
		field{"status", status.String()},
		field{"label", status.Label()},
	)
}

func (r *RawPresenter) StageStarted(name string) {
	r.log("INFO", "stage_started", field{"stage", name})
}

func (r *RawPresenter) StageFinished(report domain.StageReport) {
	level := "INFO"
	if report.Outcome == domain.StageOutcomeFailed {
		level = "ERROR"
	}

	fields := []field{
		{"stage", report.Name},
		{"outcome", string(report.Outcome)},
		{"duration", report.Duration},
	}
	if report.Detail != "" {
		fields = append(fields, field{"detail", report.Detail})
	}
	r.log(level, "stage_finished", fields...)
}

func (r *RawPresenter) ValidationFinished(verdict domain.Verdict) {
	fields := []field{
		{"run_id", verdict.RunID},
		{"status", verdict.Status.String()},
		{"duration", verdict.Duration()},
	}

	level := "INFO"
	switch {
	case verdict.Success != nil:
		fields = append(fields,
			field{"executable", verdict.Success.Executable},
			field{"config", verdict.Success.ConfigPath},
			field{"log", verdict.Success.LogPath},
			field{"interface", verdict.Success.Interface},
		)
	case verdict.Failure != nil:
		level = "ERROR"
		fields = append(fields,
			field{"kind", verdict.Failure.Kind.String()},
			field{"reason", verdict.Reason},
		)
	}

	r.log(level, "validation_finished", fields...)
}

// ConfirmRetry nunca reintenta: el modo raw no es interactivo
func (r *RawPresenter) ConfirmRetry(verdict domain.Verdict) bool {
	return false
}

// Close no libera nada
func (r *RawPresenter) Close() error {
	return nil
}
