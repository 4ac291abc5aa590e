// Package config parses command-line flags and PARBENCH_* environment
// variables into an AppConfig.
package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/parbench/internal/errors"
	"github.com/agbru/parbench/internal/fibonacci"
	"github.com/agbru/parbench/internal/ui"
)

// EnvPrefix is prepended to every environment variable read by this package.
const EnvPrefix = "PARBENCH_"

// Default problem sizes and output settings.
const (
	DefaultLabel      = "Go"
	DefaultFormat     = "json"
	DefaultTheme      = "dark"
	DefaultLogFormat  = "console"
	DefaultRepeat     = 1
	DefaultFibN       = 35
	DefaultPrimeLimit = 100_000
	DefaultSortSize   = 1_000_000
	// DefaultSortMax is the inclusive upper bound of generated sort values.
	DefaultSortMax = 1_000_000
	// AutoGrain asks for a grain derived from the host's CPU count.
	AutoGrain = -1
)

// AppConfig holds the resolved configuration of one invocation.
type AppConfig struct {
	// WorkersRaw is the worker count exactly as given, before resolution.
	WorkersRaw string
	// Workers is the resolved worker count, always in [1, NumCPU].
	Workers int

	Label       string
	LogDir      string
	Format      string
	MetricsFile string
	LogFormat   string
	Theme       string

	Repeat      int
	FibN        int
	PrimeLimit  int
	SortSize    int
	FibStrategy string
	SortGrain   int
	Seed        int64

	// SortGrainAuto records that SortGrain was estimated rather than given.
	SortGrainAuto bool

	Sweep   bool
	TUI     bool
	Quiet   bool
	Verbose bool
	NoColor bool
	Version bool
}

// Strategy returns the parsed Fibonacci strategy. Validate guarantees the
// name is known.
func (c AppConfig) Strategy() fibonacci.Strategy {
	s, _ := fibonacci.ParseStrategy(c.FibStrategy)
	return s
}

// ResultFileName returns the results file name derived from the label and
// format, for example "go_results.json".
func (c AppConfig) ResultFileName() string {
	prefix := strings.ToLower(strings.Join(strings.Fields(c.Label), "_"))
	if prefix == "" {
		prefix = strings.ToLower(DefaultLabel)
	}
	return prefix + "_results." + c.Format
}

// ParseConfig parses args (without the program name) into an AppConfig.
// Flags take priority over environment variables, which take priority over
// defaults. A bare positional argument is read as the worker count.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)
	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [flags] [workers]\n\nFlags:\n", programName)
		fs.PrintDefaults()
	}

	config := AppConfig{}
	fs.StringVar(&config.WorkersRaw, "workers", "", "Worker count (default: number of logical CPUs).")
	fs.StringVar(&config.Label, "label", DefaultLabel, "Implementation label written to the results record.")
	fs.StringVar(&config.LogDir, "log-dir", "", "Results directory (default: resolved from the working directory).")
	fs.StringVar(&config.Format, "format", DefaultFormat, "Results format: json or yaml.")
	fs.StringVar(&config.MetricsFile, "metrics-file", "", "Write Prometheus metrics in text format to this file.")
	fs.StringVar(&config.LogFormat, "log-format", DefaultLogFormat, "Log output on stderr: console or json.")
	fs.StringVar(&config.Theme, "theme", DefaultTheme, "Colour theme: dark, light or orange.")
	fs.IntVar(&config.Repeat, "repeat", DefaultRepeat, "Timed repetitions per workload.")
	fs.IntVar(&config.FibN, "fib-n", DefaultFibN, "Highest Fibonacci index to compute.")
	fs.IntVar(&config.PrimeLimit, "prime-limit", DefaultPrimeLimit, "Upper bound of the prime search.")
	fs.IntVar(&config.SortSize, "sort-size", DefaultSortSize, "Number of integers to sort.")
	fs.StringVar(&config.FibStrategy, "fib-strategy", fibonacci.Iterative.String(), "Chunk strategy: iterative or doubling.")
	fs.IntVar(&config.SortGrain, "sort-grain", AutoGrain, "Fork-join cutoff for the parallel sort (-1: auto, 0: always fork).")
	fs.Int64Var(&config.Seed, "seed", 0, "Seed for the sort input (0: time-based).")
	fs.BoolVar(&config.Sweep, "sweep", false, "Run the suite for worker counts 1, 2, 4, ... up to the CPU count.")
	fs.BoolVar(&config.TUI, "tui", false, "Show a live dashboard while the suite runs.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Suppress progress and summary output.")
	fs.BoolVar(&config.Quiet, "q", false, "Shorthand for --quiet.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Enable debug logging.")
	fs.BoolVar(&config.Verbose, "v", false, "Shorthand for --verbose.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable coloured output.")
	fs.BoolVar(&config.Version, "version", false, "Print the version and exit.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 1 {
		return AppConfig{}, apperrors.NewConfigError("expected at most one positional argument (workers), got %d", fs.NArg())
	}
	applyEnvOverrides(&config, fs)
	if fs.NArg() == 1 && !isFlagSet(fs, "workers") {
		// Positional count beats PARBENCH_WORKERS.
		config.WorkersRaw = fs.Arg(0)
	}

	config.Workers = ResolveWorkers(config.WorkersRaw, runtime.NumCPU())
	if config.LogDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			cwd = "."
		}
		config.LogDir = ResolveLogDir(cwd)
	}
	if config.Seed == 0 {
		config.Seed = time.Now().UnixNano()
	}
	config = ApplyAdaptiveGrain(config)
	config.Format = strings.ToLower(config.Format)
	config.LogFormat = strings.ToLower(config.LogFormat)
	config.Theme = strings.ToLower(config.Theme)

	if err := config.Validate(); err != nil {
		return AppConfig{}, err
	}
	return config, nil
}

// Validate checks the semantic constraints that flag parsing cannot.
func (c AppConfig) Validate() error {
	if c.Format != "json" && c.Format != "yaml" {
		return apperrors.NewConfigError("invalid --format %q (want json or yaml)", c.Format)
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return apperrors.NewConfigError("invalid --log-format %q (want console or json)", c.LogFormat)
	}
	if !ui.IsThemeName(c.Theme) {
		return apperrors.NewConfigError("invalid --theme %q (want one of %s)", c.Theme, strings.Join(ui.ThemeNames, ", "))
	}
	if c.Repeat < 1 {
		return apperrors.ValidationError{Field: "repeat", Message: "must be at least 1"}
	}
	for _, f := range []struct {
		name  string
		value int
	}{{"fib-n", c.FibN}, {"prime-limit", c.PrimeLimit}, {"sort-size", c.SortSize}} {
		if f.value < 0 {
			return apperrors.ValidationError{Field: f.name, Message: "must not be negative"}
		}
	}
	if c.SortGrain < 0 {
		return apperrors.ValidationError{Field: "sort-grain", Message: "must not be negative"}
	}
	if _, err := fibonacci.ParseStrategy(c.FibStrategy); err != nil {
		return apperrors.NewConfigError("invalid --fib-strategy: %v", err)
	}
	if c.Quiet && c.Verbose {
		return apperrors.NewConfigError("--quiet and --verbose are mutually exclusive")
	}
	if c.TUI && (c.Sweep || c.Quiet) {
		return apperrors.NewConfigError("--tui cannot be combined with --sweep or --quiet")
	}
	return nil
}

// ResolveWorkers turns a raw worker count into a usable one. Empty,
// unparseable and non-positive values resolve to numCPU, and larger values
// are clamped to it.
func ResolveWorkers(raw string, numCPU int) int {
	if numCPU < 1 {
		numCPU = 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return numCPU
	}
	return min(n, numCPU)
}

// ResolveLogDir picks the results directory relative to the working
// directory cwd: "../../logs" from a directory named go, "../logs" from a
// directory named bin, and "logs" otherwise.
func ResolveLogDir(cwd string) string {
	switch filepath.Base(cwd) {
	case "go":
		return filepath.Join("..", "..", "logs")
	case "bin":
		return filepath.Join("..", "logs")
	default:
		return "logs"
	}
}
