package executor

import (
	"os/exec"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

//go:generate mockgen -destination=executormock/executor_mock.go -package=executormock . Executor

// Module provides a module to inject using fx.
var Module = fx.Options(
	fx.Provide(func(logger *zap.SugaredLogger) Executor {
		return NewExecutor(WithLogger(logger))
	}),
)

// Executor wraps binary lookup and process spawning so that each exec is logged and can be
// replaced in tests.
type Executor interface {
	// LookPath searches the executable search path for the named binary.
	LookPath(file string) (string, error)
	// Start logs and starts the Cmd without waiting for it to exit.
	Start(cmd *exec.Cmd) error
}

// executorImp implements Executor
type executorImp struct {
	Logger *zap.SugaredLogger
	// StartFunc may be nil to use executorImp in tests.
	StartFunc    func(cmd *exec.Cmd) error
	LookPathFunc func(file string) (string, error)
}

// Option defines options to customize executorImp's behavior
type Option func(*executorImp)

// WithLogger overrides the default noop logger
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(executor *executorImp) {
		executor.Logger = logger
	}
}

// WithStartFunc provides customized spawn behavior for executorImp
func WithStartFunc(startFunc func(cmd *exec.Cmd) error) Option {
	return func(executor *executorImp) {
		executor.StartFunc = startFunc
	}
}

// WithLookPathFunc provides customized search path lookup for executorImp
func WithLookPathFunc(lookPathFunc func(file string) (string, error)) Option {
	return func(executor *executorImp) {
		executor.LookPathFunc = lookPathFunc
	}
}

// NewExecutor creates a new executorImp backed by os/exec unless overridden.
func NewExecutor(opts ...Option) Executor {
	executor := &executorImp{
		Logger:       zap.NewNop().Sugar(),
		StartFunc:    func(cmd *exec.Cmd) error { return cmd.Start() },
		LookPathFunc: exec.LookPath,
	}
	for _, opt := range opts {
		opt(executor)
	}
	return executor
}

// LookPath logs the lookup result and returns the absolute path of file.
func (l *executorImp) LookPath(file string) (string, error) {
	path, err := l.LookPathFunc(file)
	if err != nil {
		l.Logger.Infow("LookPath", "File", file, "Found", false)
		return "", err
	}
	l.Logger.Infow("LookPath", "File", file, "Found", true, "Path", path)
	return path, nil
}

// Start logs the Path/Dir/Args and calls StartFunc if it is set.
func (l *executorImp) Start(cmd *exec.Cmd) error {
	l.logCommand(cmd)

	if l.StartFunc == nil {
		l.Logger.Warn("missing StartFunc - skipped execution")
		return nil
	}

	return l.StartFunc(cmd)
}

// Logs the command specified: Path, Dir, Args
func (l *executorImp) logCommand(cmd *exec.Cmd) {
	var args []string
	if len(cmd.Args) > 1 {
		args = cmd.Args[1:] // First arg is always the command itself
	}
	l.Logger.Infow("Exec",
		"Path", cmd.Path,
		"Dir", cmd.Dir,
		"Args", args,
	)
}
