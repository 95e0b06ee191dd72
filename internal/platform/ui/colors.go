// internal/platform/ui/colors.go
package ui

import "github.com/pterm/pterm"

// Paleta de colores de examguard

// Colores primarios
var (
	// SignalBlue - Headers y elementos principales
	SignalBlue = pterm.NewRGB(52, 152, 219)

	// PassGreen - Validación superada
	PassGreen = pterm.NewRGB(46, 204, 113)

	// AlertRed - Validación fallida
	AlertRed = pterm.NewRGB(231, 76, 60)

	// AmberWarn - Advertencias
	AmberWarn = pterm.NewRGB(241, 196, 15)

	// SlateGray - Texto secundario, etapas omitidas
	SlateGray = pterm.NewRGB(127, 140, 141)
)

// Estilos preconfigurados para diferentes contextos
var (
	StylePrimary   = SignalBlue.ToRGBStyle()
	StyleSuccess   = PassGreen.ToRGBStyle()
	StyleError     = AlertRed.ToRGBStyle()
	StyleWarning   = AmberWarn.ToRGBStyle()
	StyleSecondary = SlateGray.ToRGBStyle()
)
