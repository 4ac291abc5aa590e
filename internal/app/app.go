// Package app wires configuration, the benchmark suite and result output
// into a runnable application.
package app

import (
	"context"
	"errors"
	"flag"
	"io"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/parbench/internal/config"
	"github.com/agbru/parbench/internal/logging"
	"github.com/agbru/parbench/internal/sysmon"
	"github.com/agbru/parbench/internal/ui"
)

// Application represents the parbench application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	Logger    logging.Logger

	// describeHost gathers the host section of the results record.
	describeHost func() sysmon.Host
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLogger replaces the default console logger.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// WithHostDescriber replaces the gopsutil host probe.
func WithHostDescriber(fn func() sysmon.Host) AppOption {
	return func(a *Application) { a.describeHost = fn }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	programName := "parbench"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	app := &Application{Config: cfg, ErrWriter: errWriter, describeHost: sysmon.DescribeHost}
	for _, opt := range opts {
		opt(app)
	}
	if app.Logger == nil {
		app.Logger = newLogger(cfg, errWriter)
	}
	return app, nil
}

// Run executes the application based on the configured mode and returns
// the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Version {
		PrintVersion(out)
		return 0
	}

	zerolog.SetGlobalLevel(logLevel(a.Config))
	ui.InitTheme(a.Config.NoColor, a.Config.Theme)

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	switch {
	case a.Config.Sweep:
		return a.runSweep(ctx, out)
	case a.Config.TUI:
		return a.runTUI(ctx, out)
	}
	return a.runBenchmark(ctx, out)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// newLogger builds the stderr logger selected by --log-format.
func newLogger(cfg config.AppConfig, w io.Writer) logging.Logger {
	if cfg.LogFormat == "json" {
		return logging.NewLogger(w, "parbench", logLevel(cfg))
	}
	return logging.NewConsoleLogger(w, "parbench", logLevel(cfg), cfg.NoColor)
}

func logLevel(cfg config.AppConfig) zerolog.Level {
	switch {
	case cfg.Verbose:
		return zerolog.DebugLevel
	case cfg.Quiet:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// withWorkers pins GOMAXPROCS to workers for the duration of fn, so the
// fork-join sort cannot use more processors than the configured pool.
func withWorkers(workers int, fn func()) {
	prev := runtime.GOMAXPROCS(max(1, workers))
	defer runtime.GOMAXPROCS(prev)
	fn()
}
