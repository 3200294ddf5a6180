// Package execx runs external commands with captured output and
// context-bound timeouts.
package execx

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"time"

	"go.uber.org/zap"
)

// Result holds the outcome of a finished command.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Runner executes external commands. A non-zero exit status is reported
// through Result.ExitCode, not as an error; errors mean the command
// could not run or was cut off.
type Runner interface {
	Run(ctx context.Context, name string, args []string, opts ...Option) (Result, error)
}

type runOptions struct {
	dir     string
	env     []string
	timeout time.Duration
}

// Option adjusts a single command invocation.
type Option func(*runOptions)

// WithDir sets the working directory of the command.
func WithDir(dir string) Option {
	return func(o *runOptions) { o.dir = dir }
}

// WithEnv appends KEY=VALUE entries to the inherited environment.
func WithEnv(kv ...string) Option {
	return func(o *runOptions) { o.env = append(o.env, kv...) }
}

// WithTimeout bounds the command's runtime. Zero means no extra bound
// beyond the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(o *runOptions) { o.timeout = d }
}

// ExecRunner runs commands on the host.
type ExecRunner struct {
	log *zap.Logger
}

// NewRunner returns a host-backed Runner.
func NewRunner(log *zap.Logger) *ExecRunner {
	if log == nil {
		log = zap.NewNop()
	}
	return &ExecRunner{log: log}
}

func (r *ExecRunner) Run(ctx context.Context, name string, args []string, opts ...Option) (Result, error) {
	var o runOptions
	for _, opt := range opts {
		opt(&o)
	}

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = o.dir
	if len(o.env) > 0 {
		cmd.Env = append(os.Environ(), o.env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.log.Debug("running command",
		zap.String("name", name),
		zap.Strings("args", args),
		zap.String("dir", o.dir))

	start := time.Now()
	err := cmd.Run()
	res := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return res, ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			err = nil
		}
	}

	r.log.Debug("command finished",
		zap.String("name", name),
		zap.Int("exit_code", res.ExitCode),
		zap.Duration("duration", res.Duration),
		zap.Error(err))

	return res, err
}
