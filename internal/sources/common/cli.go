// Package common provides the subprocess plumbing shared by the tool adapters.
package common

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"examguard/internal/platform/logx"
)

// DefaultStopGrace is how long Stop waits after SIGTERM before killing.
const DefaultStopGrace = 3 * time.Second

// maxStderrCapture bounds the stderr kept for a long-running process.
const maxStderrCapture = 64 * 1024

// BaseCLI runs an external binary. Short commands go through Run, long-lived
// ones through Start.
type BaseCLI struct {
	logger   logx.Logger
	execPath string
	timeout  time.Duration

	mu    sync.Mutex
	procs map[*Process]struct{}
}

// BaseCLIConfig contains configuration for BaseCLI.
type BaseCLIConfig struct {
	ToolName string        // tool name for logging
	ExecPath string        // binary path; bare names go through LookPath
	Timeout  time.Duration // Run timeout, zero means none
}

// NewBaseCLI creates a BaseCLI with the given configuration.
func NewBaseCLI(logger logx.Logger, cfg BaseCLIConfig) *BaseCLI {
	return &BaseCLI{
		logger:   logger.With("tool", cfg.ToolName),
		execPath: cfg.ExecPath,
		timeout:  cfg.Timeout,
		procs:    make(map[*Process]struct{}),
	}
}

// Run executes the binary to completion and returns its stderr. Stdout is
// discarded. A non-zero exit is returned as an error together with whatever
// stderr was produced; a run cut short by ctx or the timeout wraps the
// context error.
func (b *BaseCLI) Run(ctx context.Context, args []string) (stderrOutput string, err error) {
	return b.RunPath(ctx, b.execPath, args)
}

// RunPath is Run with an explicit binary, for adapters whose executable is
// only known per call.
func (b *BaseCLI) RunPath(ctx context.Context, execPath string, args []string) (stderrOutput string, err error) {
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	startTime := time.Now()
	b.logger.Debug("executing CLI command", "exec_path", execPath, "args", args)

	cmd := exec.CommandContext(ctx, execPath, args...)
	var stderrBuf bytes.Buffer
	cmd.Stderr = &stderrBuf

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("failed to start process: %w", err)
	}
	b.logger.Debug("subprocess started", "pid", cmd.Process.Pid)

	waitErr := cmd.Wait()
	stderrOutput = stderrBuf.String()
	duration := time.Since(startTime)

	if waitErr != nil {
		b.logger.Debug("subprocess exited with error",
			"error", waitErr.Error(),
			"duration", duration.String(),
		)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return stderrOutput, fmt.Errorf("process interrupted after %s: %w: %w", duration.Round(time.Millisecond), ctxErr, waitErr)
		}
		return stderrOutput, fmt.Errorf("process exited with error: %w", waitErr)
	}

	b.logger.Debug("CLI command completed", "duration", duration.String())
	return stderrOutput, nil
}

// Start launches the binary in the background. Output is not consumed beyond a
// bounded stderr tail kept for diagnostics. Cancelling ctx stops the process
// the same way Stop does.
func (b *BaseCLI) Start(ctx context.Context, args []string) (*Process, error) {
	return b.StartPath(ctx, b.execPath, args)
}

// StartPath is Start with an explicit binary.
func (b *BaseCLI) StartPath(ctx context.Context, execPath string, args []string) (*Process, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cmd := exec.Command(execPath, args...)
	stderr := &tailBuffer{limit: maxStderrCapture}
	cmd.Stderr = stderr

	b.logger.Info("starting background process", "exec_path", execPath, "args", args)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start process: %w", err)
	}

	p := &Process{
		cmd:    cmd,
		logger: b.logger.With("pid", cmd.Process.Pid),
		stderr: stderr,
		done:   make(chan struct{}),
	}

	go func() {
		p.waitErr = cmd.Wait()
		close(p.done)
	}()

	b.mu.Lock()
	b.procs[p] = struct{}{}
	b.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			_ = p.Stop(DefaultStopGrace)
		case <-p.done:
		}
		b.mu.Lock()
		delete(b.procs, p)
		b.mu.Unlock()
	}()

	return p, nil
}

// Close stops every background process still running. Safe to call multiple
// times.
func (b *BaseCLI) Close() error {
	b.mu.Lock()
	procs := make([]*Process, 0, len(b.procs))
	for p := range b.procs {
		procs = append(procs, p)
	}
	b.mu.Unlock()

	var errs []error
	for _, p := range procs {
		if err := p.Stop(DefaultStopGrace); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Logger returns the scoped logger.
func (b *BaseCLI) Logger() logx.Logger {
	return b.logger
}

// Process is a background subprocess started by BaseCLI.
type Process struct {
	cmd    *exec.Cmd
	logger logx.Logger
	stderr *tailBuffer

	done    chan struct{}
	waitErr error

	stopOnce sync.Once
	stopErr  error
}

// Pid returns the operating system process id.
func (p *Process) Pid() int {
	return p.cmd.Process.Pid
}

// Exited reports whether the process has already exited.
func (p *Process) Exited() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Stderr returns the captured stderr tail.
func (p *Process) Stderr() string {
	return p.stderr.String()
}

// Stop sends SIGTERM, waits up to grace for the process to exit and kills it
// otherwise. It returns only after the process is reaped. Safe to call more
// than once; later calls return the first result.
func (p *Process) Stop(grace time.Duration) error {
	p.stopOnce.Do(func() {
		p.stopErr = p.stop(grace)
	})
	<-p.done
	return p.stopErr
}

func (p *Process) stop(grace time.Duration) error {
	if p.Exited() {
		p.logger.Debug("process already exited", "stderr", p.stderr.String())
		return nil
	}

	if err := p.cmd.Process.Signal(syscall.SIGTERM); err != nil && !errors.Is(err, os.ErrProcessDone) {
		p.logger.Warn("SIGTERM failed, forcing kill", "error", err.Error())
		return p.kill()
	}

	timer := time.NewTimer(grace)
	defer timer.Stop()

	select {
	case <-p.done:
		p.logger.Debug("process terminated")
		return nil
	case <-timer.C:
		p.logger.Warn("process ignored SIGTERM, killing", "grace", grace.String())
		return p.kill()
	}
}

func (p *Process) kill() error {
	if err := p.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("failed to kill process %d: %w", p.Pid(), err)
	}
	<-p.done
	return nil
}

// tailBuffer keeps the last limit bytes written to it.
type tailBuffer struct {
	mu    sync.Mutex
	buf   []byte
	limit int
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.buf = append(t.buf, p...)
	if over := len(t.buf) - t.limit; over > 0 {
		t.buf = append(t.buf[:0], t.buf[over:]...)
	}
	return len(p), nil
}

func (t *tailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return string(t.buf)
}
