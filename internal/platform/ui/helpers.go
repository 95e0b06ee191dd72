// internal/platform/ui/helpers.go
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"examguard/internal/core/domain"
)

// formatDuration formatea una duración de manera legible
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	} else if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	} else {
		minutes := int(d.Minutes())
		seconds := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	}
}

// stageTitle retorna "[n/total] name" según la posición de la etapa
func stageTitle(stages []string, name string) string {
	for i, s := range stages {
		if s == name {
			return fmt.Sprintf("[%d/%d] %s", i+1, len(stages), name)
		}
	}
	return name
}

// listOrDash une una lista o retorna "-" si está vacía
func listOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

// StageTable construye la tabla de etapas de un veredicto
func StageTable(reports []domain.StageReport) pterm.TableData {
	data := pterm.TableData{{"Stage", "Outcome", "Duration", "Detail"}}
	for _, r := range reports {
		st := statusFromOutcome(r.Outcome)
		duration := "-"
		if r.Outcome != domain.StageOutcomeSkipped {
			duration = formatDuration(r.Duration)
		}
		data = append(data, []string{
			r.Name,
			st.Style().Sprint(st.Symbol() + " " + string(r.Outcome)),
			duration,
			r.Detail,
		})
	}
	return data
}
