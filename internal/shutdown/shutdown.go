// internal/shutdown/shutdown.go
package shutdown

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// DefaultCommand halts the machine immediately with elevated privileges.
var DefaultCommand = []string{"sudo", "nohup", "shutdown", "-h", "now"}

const DefaultTimeout = 10 * time.Second

var (
	ErrAlreadyIssued = errors.New("shutdown: already issued")
	ErrEmptyCommand  = errors.New("shutdown: command required")
)

// Runner executes one external command.
type Runner interface {
	Run(ctx context.Context, argv []string) error
}

// ExecRunner runs commands on the local system.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, argv []string) error {
	if len(argv) == 0 {
		return ErrEmptyCommand
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

// Config is the executor config.
type Config struct {
	Command []string
	Timeout time.Duration
}

// Executor issues the halt command at most once per process.
// A second call returns ErrAlreadyIssued without running anything.
type Executor struct {
	cfg    Config
	runner Runner

	once sync.Once
	err  error
}

// New creates an Executor. A nil runner uses ExecRunner.
func New(cfg Config, runner Runner) (*Executor, error) {
	if len(cfg.Command) == 0 {
		cfg.Command = DefaultCommand
	}
	if cfg.Command[0] == "" {
		return nil, ErrEmptyCommand
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Executor{cfg: cfg, runner: runner}, nil
}

// Shutdown runs the halt command. Not retryable.
func (e *Executor) Shutdown(ctx context.Context) error {
	issued := false
	e.once.Do(func() {
		issued = true

		ctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()

		if err := e.runner.Run(ctx, e.cfg.Command); err != nil {
			e.err = fmt.Errorf("shutdown: %q failed: %w", strings.Join(e.cfg.Command, " "), err)
		}
	})
	if !issued {
		return ErrAlreadyIssued
	}
	return e.err
}
