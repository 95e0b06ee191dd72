// internal/platform/ui/pterm_presenter.go
package ui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pterm/pterm"

	"examguard/internal/core/domain"
)

// PTermPresenter implementa Presenter usando la biblioteca pterm
// para renderizar spinners, colores y símbolos en la terminal.
type PTermPresenter struct {
	mu sync.Mutex

	info        RunInfo
	interactive bool

	// Spinner de la etapa en curso
	spinner *pterm.SpinnerPrinter
	current string

	// Resultados por etapa en orden de llegada
	finished []domain.StageReport
}

// NewPTermPresenter crea una nueva instancia del presenter con pterm.
// interactive habilita el prompt de reintento.
func NewPTermPresenter(interactive bool) *PTermPresenter {
	return &PTermPresenter{interactive: interactive}
}

// Start muestra el header y la configuración de la ejecución
func (p *PTermPresenter) Start(info RunInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.info = info
	p.finished = nil

	title := "examguard - Suricata environment check"
	if info.Attempt > 1 {
		title = fmt.Sprintf("%s (attempt %d)", title, info.Attempt)
	}

	pterm.DefaultHeader.
		WithBackgroundStyle(pterm.NewStyle(pterm.BgBlue)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Println(title)

	pterm.Println()

	content := fmt.Sprintf("%s Executables: %s\n", IconExecutable, listOrDash(info.Executables))
	content += fmt.Sprintf("%s Config roots: %s\n", IconConfig, listOrDash(info.ConfigRoots))
	content += fmt.Sprintf("%s Probe: %s → %s\n", IconProbe, pterm.Yellow(info.ProbeMode), pterm.Cyan(info.ProbeTarget))
	content += fmt.Sprintf("%s Timeout: %s\n", IconTime, formatDuration(info.Timeout))
	content += fmt.Sprintf("%s Stages: %d", IconStage, len(info.Stages))

	pterm.DefaultBox.
		WithTitle("Run Configuration").
		WithTitleTopCenter().
		WithRightPadding(4).
		WithLeftPadding(4).
		WithBoxStyle(pterm.NewStyle(pterm.FgBlue)).
		Println(content)

	pterm.Println()
}

// StatusChanged muestra la etiqueta de estado al comenzar la ejecución;
// los estados terminales se muestran en ValidationFinished.
func (p *PTermPresenter) StatusChanged(status domain.ValidationStatus) {
	if status.IsTerminal() {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Info.Println(status.Label())
}

// StageStarted arranca un spinner para la etapa
func (p *PTermPresenter) StageStarted(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopSpinner()
	p.current = name

	spinner, err := pterm.DefaultSpinner.
		WithStyle(pterm.NewStyle(pterm.FgCyan)).
		WithSequence("⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷").
		Start(fmt.Sprintf("%s...", stageTitle(p.info.Stages, name)))
	if err != nil {
		return
	}
	p.spinner = spinner
}

// StageFinished cierra el spinner de la etapa con su resultado
func (p *PTermPresenter) StageFinished(report domain.StageReport) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.finished = append(p.finished, report)

	line := p.stageLine(report)
	if p.spinner == nil || p.current != report.Name {
		statusFromOutcome(report.Outcome).Style().Println(line)
		return
	}

	if report.Outcome == domain.StageOutcomeFailed {
		p.spinner.Fail(line)
	} else {
		p.spinner.Success(line)
	}
	p.spinner = nil
	p.current = ""
}

// ValidationFinished muestra el veredicto final y la tabla de etapas
func (p *PTermPresenter) ValidationFinished(verdict domain.Verdict) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopSpinner()

	pterm.Println()
	pterm.Println(pterm.LightBlue(SeparatorHeavy))
	pterm.Println()

	bg, box := pterm.BgGreen, pterm.FgGreen
	if verdict.Status != domain.StatusSuccess {
		bg, box = pterm.BgRed, pterm.FgRed
	}

	pterm.DefaultHeader.
		WithBackgroundStyle(pterm.NewStyle(bg)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Println(verdict.Status.Label())

	pterm.Println()

	pterm.DefaultBox.
		WithTitle("Result").
		WithTitleTopCenter().
		WithRightPadding(4).
		WithLeftPadding(4).
		WithBoxStyle(pterm.NewStyle(box)).
		Println(verdictSummary(verdict))

	if len(verdict.Stages) > 0 {
		pterm.Println()
		_ = pterm.DefaultTable.
			WithHasHeader().
			WithBoxed().
			WithData(StageTable(verdict.Stages)).
			Render()
	}

	pterm.Println()
}

// ConfirmRetry pregunta si relanzar la validación tras un fallo
func (p *PTermPresenter) ConfirmRetry(verdict domain.Verdict) bool {
	if !p.interactive || verdict.Status != domain.StatusFailure {
		return false
	}

	retry, err := pterm.DefaultInteractiveConfirm.
		WithDefaultValue(true).
		Show("Fix the problem and run the check again?")
	if err != nil {
		return false
	}
	return retry
}

// Close detiene el spinner activo
func (p *PTermPresenter) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopSpinner()
	return nil
}

// Reports retorna las etapas terminadas recibidas hasta ahora
func (p *PTermPresenter) Reports() []domain.StageReport {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]domain.StageReport, len(p.finished))
	copy(out, p.finished)
	return out
}

func (p *PTermPresenter) stopSpinner() {
	if p.spinner != nil {
		_ = p.spinner.Stop()
		p.spinner = nil
	}
	p.current = ""
}

// stageLine renderiza la línea final de una etapa
func (p *PTermPresenter) stageLine(report domain.StageReport) string {
	line := fmt.Sprintf("%s (%s)", stageTitle(p.info.Stages, report.Name), formatDuration(report.Duration))
	if report.Detail != "" {
		line += " " + StyleSecondary.Sprint(report.Detail)
	}
	return line
}

// verdictSummary contenido del box de resultado
func verdictSummary(v domain.Verdict) string {
	var b strings.Builder

	switch {
	case v.Success != nil:
		s := v.Success
		fmt.Fprintf(&b, "%s Executable: %s\n", IconExecutable, s.Executable)
		fmt.Fprintf(&b, "%s Config: %s\n", IconConfig, s.ConfigPath)
		fmt.Fprintf(&b, "%s Alert log: %s\n", IconLog, s.LogPath)
		fmt.Fprintf(&b, "%s Interface: %s\n", IconInterface, s.Interface)
	case v.Failure != nil:
		fmt.Fprintf(&b, "%s\n", StyleError.Sprint(v.Reason))
		fmt.Fprintf(&b, "Kind: %s\n", v.Failure.Kind)
		if len(v.Configs) > 0 {
			fmt.Fprintf(&b, "%s Configs found: %s\n", IconConfig, strings.Join(v.Configs, ", "))
		}
	}

	fmt.Fprintf(&b, "%s Duration: %s", IconTime, formatDuration(v.Duration()))
	return b.String()
}
