// internal/platform/ui/symbols.go
package ui

import (
	"github.com/pterm/pterm"

	"examguard/internal/core/domain"
)

// Status representa el estado visual de una etapa
type Status int

const (
	StatusSuccess Status = iota
	StatusError
	StatusSkipped
)

// String convierte el status a string
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Symbol retorna el símbolo Unicode para cada estado
func (s Status) Symbol() string {
	switch s {
	case StatusSuccess:
		return "✓"
	case StatusError:
		return "✗"
	case StatusSkipped:
		return "⊘"
	default:
		return "?"
	}
}

// Color retorna el color pterm para cada estado
func (s Status) Color() pterm.Color {
	switch s {
	case StatusSuccess:
		return pterm.FgGreen
	case StatusError:
		return pterm.FgRed
	case StatusSkipped:
		return pterm.FgGray
	default:
		return pterm.FgDefault
	}
}

// Style retorna un pterm.Style configurado para el estado
func (s Status) Style() *pterm.Style {
	return pterm.NewStyle(s.Color())
}

// statusFromOutcome traduce el resultado de una etapa a su estado visual
func statusFromOutcome(o domain.StageOutcome) Status {
	switch o {
	case domain.StageOutcomePassed:
		return StatusSuccess
	case domain.StageOutcomeFailed:
		return StatusError
	default:
		return StatusSkipped
	}
}

// Icons globales para diferentes elementos de la UI
var (
	IconExecutable = "⚙"
	IconConfig     = "📄"
	IconLog        = "📝"
	IconInterface  = "🔌"
	IconProbe      = "📡"
	IconTime       = "⏱"
	IconStage      = "🔄"
)

// SeparatorHeavy separa el progreso del veredicto final
var SeparatorHeavy = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"
