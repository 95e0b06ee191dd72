package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"examguard/internal/adapters/output"
	"examguard/internal/core/domain"
	"examguard/internal/core/ports"
	"examguard/internal/core/usecases"
	"examguard/internal/platform/config"
	"examguard/internal/platform/logx"
	"examguard/internal/platform/runlock"
	"examguard/internal/platform/ui"
)

func newCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run the environment validation (default command)",
		Long: `Run every validation stage in order and stop at the first failure.

Exit code: 0 if the check passed, 1 if it failed, 2 on configuration errors`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCheck(cmd)
		},
	}
}

func (a *app) runCheck(cmd *cobra.Command) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	mode := ui.ResolveMode(cfg.Output.UI, out)
	logger := newLogger(cmd.ErrOrStderr(), cfg.Core.LogLevel, mode)

	logger.Debug("examguard starting",
		"version", a.build.Version,
		"commit", a.build.Commit,
		"config_file", cfg.ConfigFile,
		"ui", mode,
		"probe", cfg.Probe.Mode,
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h, err := a.host(cfg, logger)
	if err != nil {
		return usageError(err)
	}
	defer func() {
		if err := h.Close(); err != nil {
			logger.Warn("failed to stop subprocesses", "error", err.Error())
		}
	}()

	presenter := ui.New(mode, out)
	defer presenter.Close()

	notifier := ports.MultiNotifier{presenter}
	var reports *output.ReportWriter
	if !cfg.Output.NoReport {
		reports = output.NewReportWriter(cfg.Output.Dir, logger)
		notifier = append(notifier, reports)
	}

	validator := newValidator(cfg, h, notifier, logger)

	info := ui.RunInfo{
		Version:     a.build.Version,
		Stages:      usecases.StageNames(),
		Executables: cfg.Tool.Executables,
		ConfigRoots: cfg.Discovery.Roots,
		ProbeMode:   cfg.Probe.Mode,
		ProbeTarget: cfg.Probe.Target,
		Timeout:     cfg.Timeout(),
	}

	start := validator.Start
	for attempt := 1; ; attempt++ {
		info.Attempt = attempt
		presenter.Start(info)

		verdict, err := runAttempt(ctx, start, cfg.Timeout())
		if err != nil {
			return fmt.Errorf("cannot start validation: %w", err)
		}

		if reports != nil && reports.LastPath() != "" {
			logger.Info("report written", "path", reports.LastPath())
		}

		if verdict.Status == domain.StatusSuccess {
			return nil
		}

		logger.Debug("validation failed", "attempt", attempt, "reason", verdict.Reason)

		if !cfg.Output.Retry || ctx.Err() != nil || !presenter.ConfirmRetry(verdict) {
			return ErrValidationFailed
		}
		start = validator.Restart
	}
}

// runAttempt lanza una ejecución con su propio timeout y espera el veredicto.
func runAttempt(ctx context.Context, start func(context.Context) (<-chan domain.Verdict, error), timeout time.Duration) (domain.Verdict, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	ch, err := start(ctx)
	if err != nil {
		return domain.Verdict{}, err
	}
	return <-ch, nil
}

// newValidator conecta el pipeline con los adaptadores del host.
func newValidator(cfg config.Config, h *host, notifier ports.Notifier, logger logx.Logger) *usecases.Validator {
	timing := usecases.Timing{
		Settle:       cfg.Probe.Settle,
		LogWait:      cfg.Probe.LogWait,
		ProbeWait:    cfg.Probe.ProbeWait,
		PollInterval: cfg.Probe.PollInterval,
		StopGrace:    cfg.Probe.StopGrace,
	}

	pipeline := usecases.NewPipeline(usecases.PipelineOptions{
		Executables:    cfg.Tool.Executables,
		ProcessName:    cfg.Tool.ProcessName,
		ConfigRoots:    cfg.Discovery.Roots,
		ConfigPatterns: cfg.Discovery.Patterns,
		Processes:      h.processes,
		Grammar:        h.grammar,
		Inspector:      h.inspector,
		Interfaces:     h.interfaces,
		Runtime:        usecases.NewRuntimeProbe(h.inspector, h.prober, timing, logger),
		Notifier:       notifier,
		Logger:         logger,
	})

	lockPath := cfg.Core.LockFile
	if lockPath == "" {
		lockPath = runlock.DefaultPath()
	}

	return usecases.NewValidator(usecases.ValidatorOptions{
		Pipeline: pipeline,
		Notifier: notifier,
		Locker:   runlock.New(lockPath),
		Logger:   logger,
	})
}

// newLogger crea el logger de stderr. Con la UI de pterm el nivel info
// se eleva a warn para no pisar los spinners.
func newLogger(w io.Writer, level, mode string) logx.Logger {
	lvl := logx.ParseLevel(level)
	if mode == config.UIPretty && lvl == logx.LevelInfo {
		lvl = logx.LevelWarn
	}
	return logx.NewWithWriter(w, lvl)
}
