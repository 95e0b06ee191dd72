// internal/core/usecases/pipeline.go
package usecases

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"examguard/internal/core/domain"
	"examguard/internal/core/ports"
	"examguard/internal/platform/fsx"
	"examguard/internal/platform/logx"
	"examguard/internal/platform/netif"
)

// Pipeline ejecuta las etapas de validación en orden y produce un Verdict.
// No guarda estado entre ejecuciones: cada Run crea su propio RunState.
type Pipeline struct {
	executables    []string
	processName    string
	configRoots    []string
	configPatterns []string

	processes  ports.ProcessTable
	grammar    ports.ConfigGrammar
	inspector  ports.Inspector
	interfaces ports.InterfaceLister
	runtime    *RuntimeProbe
	notifier   ports.Notifier
	logger     logx.Logger
}

// PipelineOptions configura el pipeline.
type PipelineOptions struct {
	// Executables rutas candidatas del ejecutable, en orden de preferencia
	Executables []string

	// ProcessName nombre buscado en la tabla de procesos; vacío usa el nombre base del ejecutable
	ProcessName string

	ConfigRoots    []string
	ConfigPatterns []string

	Processes  ports.ProcessTable
	Grammar    ports.ConfigGrammar
	Inspector  ports.Inspector
	Interfaces ports.InterfaceLister
	Runtime    *RuntimeProbe
	Notifier   ports.Notifier
	Logger     logx.Logger
}

// RunRequest parámetros de una ejecución concreta.
type RunRequest struct {
	// RunID identificador de la ejecución; vacío genera uno nuevo
	RunID string

	// Preferred ejecutable recordado de una ejecución anterior; se prueba primero
	Preferred string
}

// NewPipeline crea un pipeline con los colaboradores dados.
func NewPipeline(opts PipelineOptions) *Pipeline {
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}
	if opts.Notifier == nil {
		opts.Notifier = ports.MultiNotifier{}
	}

	return &Pipeline{
		executables:    opts.Executables,
		processName:    opts.ProcessName,
		configRoots:    opts.ConfigRoots,
		configPatterns: opts.ConfigPatterns,
		processes:      opts.Processes,
		grammar:        opts.Grammar,
		inspector:      opts.Inspector,
		interfaces:     opts.Interfaces,
		runtime:        opts.Runtime,
		notifier:       opts.Notifier,
		logger:         opts.Logger.With("component", "pipeline"),
	}
}

// Run ejecuta todas las etapas. Se detiene en la primera que falla;
// las restantes quedan registradas como skipped.
func (p *Pipeline) Run(ctx context.Context, req RunRequest) domain.Verdict {
	runID := req.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	logger := p.logger.With("run_id", runID)
	verdict := domain.Checking(runID, time.Now())
	state := domain.NewRunState()
	stages := p.stages(req, logger)

	logger.Info("validation started", "stages", len(stages))

	for i, st := range stages {
		if err := ctx.Err(); err != nil {
			verdict.Stages = append(verdict.Stages, skipped(stages[i:])...)
			verdict.Configs = state.Configs
			logger.Warn("validation aborted", "stage", st.name, "error", err.Error())
			return verdict.Failed(domain.NewFailureWithCause(domain.FailureAborted, err), time.Now())
		}

		p.notifier.StageStarted(st.name)
		start := time.Now()
		failure := st.run(ctx, state)

		report := domain.StageReport{
			Name:     st.name,
			Duration: time.Since(start),
		}

		if failure != nil {
			report.Outcome = domain.StageOutcomeFailed
			report.Detail = failure.Reason()
			verdict.Stages = append(verdict.Stages, report)
			p.notifier.StageFinished(report)

			verdict.Stages = append(verdict.Stages, skipped(stages[i+1:])...)
			verdict.Configs = state.Configs

			logger.Warn("validation failed",
				"stage", st.name,
				"kind", failure.Kind.String(),
				"reason", failure.Reason(),
			)
			return verdict.Failed(failure, time.Now())
		}

		report.Outcome = domain.StageOutcomePassed
		if st.detail != nil {
			report.Detail = st.detail(state)
		}
		verdict.Stages = append(verdict.Stages, report)
		p.notifier.StageFinished(report)

		logger.Debug("stage passed", "stage", st.name, "duration", report.Duration.String())
	}

	verdict.Configs = state.Configs
	info := domain.SuccessInfo{
		Executable: state.Executable,
		ConfigPath: state.SelectedConfig,
		LogPath:    state.LogPath,
		Interface:  state.Interface(),
		LogTarget:  state.LogTarget,
	}

	logger.Info("validation passed",
		"executable", info.Executable,
		"config", info.ConfigPath,
		"interface", info.Interface,
		"log", info.LogPath,
	)
	return verdict.Succeeded(info, time.Now())
}

func skipped(rest []stage) []domain.StageReport {
	reports := make([]domain.StageReport, 0, len(rest))
	for _, st := range rest {
		reports = append(reports, domain.StageReport{Name: st.name, Outcome: domain.StageOutcomeSkipped})
	}
	return reports
}

func (p *Pipeline) stages(req RunRequest, logger logx.Logger) []stage {
	return []stage{
		{
			name: StageResolveExecutable,
			run: func(_ context.Context, s *domain.RunState) *domain.Failure {
				return p.resolveExecutable(req.Preferred, s, logger)
			},
			detail: func(s *domain.RunState) string { return s.Executable },
		},
		{
			name: StageLiveness,
			run: func(ctx context.Context, s *domain.RunState) *domain.Failure {
				return p.checkLiveness(ctx, s, logger)
			},
		},
		{
			name: StageConfigDiscovery,
			run: func(_ context.Context, s *domain.RunState) *domain.Failure {
				return p.discoverConfigs(s, logger)
			},
			detail: func(s *domain.RunState) string { return fmt.Sprintf("%d candidate(s)", len(s.Configs)) },
		},
		{
			name: StageConfigCheck,
			run: func(ctx context.Context, s *domain.RunState) *domain.Failure {
				return p.checkConfigs(ctx, s, logger)
			},
			detail: func(s *domain.RunState) string { return s.SelectedConfig },
		},
		{
			name: StageInterfaces,
			run: func(ctx context.Context, s *domain.RunState) *domain.Failure {
				return p.probeInterfaces(ctx, s, logger)
			},
			detail: func(s *domain.RunState) string { return s.Interface() },
		},
		{
			name: StageRuntimeProbe,
			run: func(ctx context.Context, s *domain.RunState) *domain.Failure {
				logPath, failure := p.runtime.Run(ctx, RuntimeRequest{
					Executable: s.Executable,
					ConfigPath: s.SelectedConfig,
					Interface:  s.Interface(),
					Target:     s.LogTarget,
				})
				s.LogPath = logPath
				return failure
			},
			detail: func(s *domain.RunState) string { return s.LogPath },
		},
	}
}

// resolveExecutable busca el ejecutable; el recordado se vuelve a validar antes de usarlo.
func (p *Pipeline) resolveExecutable(preferred string, s *domain.RunState, logger logx.Logger) *domain.Failure {
	candidates := p.executables
	if preferred != "" {
		candidates = append([]string{preferred}, p.executables...)
	}

	exe, err := fsx.ResolveExecutable(candidates)
	if err != nil {
		logger.Warn("executable not found", "candidates", candidates)
		return domain.NewFailureWithCause(domain.FailureExecutableNotFound, err)
	}

	s.Executable = exe
	logger.Info("executable found", "path", exe)
	return nil
}

// checkLiveness aborta si la herramienta ya corre de forma independiente.
// Un error al consultar la tabla de procesos no bloquea la validación.
func (p *Pipeline) checkLiveness(ctx context.Context, s *domain.RunState, logger logx.Logger) *domain.Failure {
	name := p.processName
	if name == "" {
		name = filepath.Base(s.Executable)
	}

	pids, err := p.processes.FindByName(ctx, name)
	if err != nil {
		logger.Warn("process table query failed, assuming not running", "name", name, "error", err.Error())
		return nil
	}
	if len(pids) > 0 {
		logger.Warn("tool already running", "name", name, "pids", pids)
		return domain.NewFailure(domain.FailureAlreadyRunning)
	}
	return nil
}

func (p *Pipeline) discoverConfigs(s *domain.RunState, logger logx.Logger) *domain.Failure {
	configs, err := fsx.Discover(p.configRoots, p.configPatterns)
	if err != nil {
		return domain.NewFailureWithCause(domain.FailureNoConfigFound, err)
	}
	if len(configs) == 0 {
		logger.Warn("no config candidates", "roots", p.configRoots, "patterns", p.configPatterns)
		return domain.NewFailure(domain.FailureNoConfigFound)
	}

	s.Configs = configs
	logger.Info("config candidates found", "count", len(configs))
	return nil
}

// checkConfigs prueba cada candidato en orden; el primero que pasa el escaneo
// y el test de sintaxis queda seleccionado. Si ninguno pasa, el motivo es el
// rechazo del último candidato.
func (p *Pipeline) checkConfigs(ctx context.Context, s *domain.RunState, logger logx.Logger) *domain.Failure {
	for _, cfg := range s.Configs {
		if err := ctx.Err(); err != nil {
			return domain.NewFailureWithCause(domain.FailureAborted, err)
		}

		log := logger.With("config", cfg)

		scan, err := p.grammar.ScanFile(cfg)
		if err != nil {
			log.Warn("config unreadable", "error", err.Error())
			s.Reject(domain.ConfigUnreadable(cfg, err))
			continue
		}
		if !scan.FastLogEnabled {
			log.Warn("fast log disabled or without filename", "section_found", scan.SectionFound)
			s.Reject(domain.FastLoggingDisabled(cfg))
			continue
		}

		stderr, err := p.inspector.TestConfig(ctx, s.Executable, cfg)
		if err != nil {
			if ctx.Err() != nil {
				return domain.NewFailureWithCause(domain.FailureAborted, ctx.Err())
			}
			log.Err(err)
			s.Reject(domain.NewFailureWithCause(domain.FailureLaunchFailed, err))
			continue
		}

		if n := p.grammar.CountErrors(stderr); n > 0 {
			log.Warn("config test reported errors", "count", n)
			s.Reject(domain.SyntaxErrors(cfg, n))
			continue
		}

		s.Select(cfg, scan.Target)
		log.Info("config selected", "log_dir", scan.Target.Dir, "log_file", scan.Target.Filename)
		return nil
	}

	if s.Failure == nil {
		return domain.NewFailure(domain.FailureNoConfigFound)
	}
	return s.Failure
}

func (p *Pipeline) probeInterfaces(ctx context.Context, s *domain.RunState, logger logx.Logger) *domain.Failure {
	ifaces, err := p.interfaces.Interfaces(ctx)
	if err != nil {
		logger.Warn("interface enumeration failed", "error", err.Error())
		return domain.NewFailureWithCause(domain.FailureNoActiveInterface, err)
	}

	active := netif.Active(ifaces)
	if len(active) == 0 {
		logger.Warn("no active interfaces", "total", len(ifaces))
		return domain.NewFailure(domain.FailureNoActiveInterface)
	}

	s.ActiveInterfaces = active
	logger.Info("active interfaces", "interfaces", active)
	return nil
}
