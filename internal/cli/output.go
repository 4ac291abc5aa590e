// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplaySummary], [DisplayProgress].
//
//   - Format* functions return formatted data without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatRecord], [FormatProgressLine].
//
//   - Write* functions write data to files on the filesystem.
//     They handle directory setup, fallbacks, and error handling.
//     Examples: [WriteRecordToFile].

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/agbru/parbench/internal/config"
	apperrors "github.com/agbru/parbench/internal/errors"
	"github.com/agbru/parbench/internal/logging"
	"github.com/agbru/parbench/internal/metrics"
	"github.com/agbru/parbench/internal/orchestration"
	"github.com/agbru/parbench/internal/sysmon"
	"github.com/agbru/parbench/internal/ui"
)

// Parameters records the problem sizes a run used.
type Parameters struct {
	FibN        int    `json:"fib_n" yaml:"fib_n"`
	FibStrategy string `json:"fib_strategy" yaml:"fib_strategy"`
	PrimeLimit  int    `json:"prime_limit" yaml:"prime_limit"`
	SortSize    int    `json:"sort_size" yaml:"sort_size"`
	SortGrain   int    `json:"sort_grain" yaml:"sort_grain"`
	Seed        int64  `json:"seed" yaml:"seed"`
	Repeat      int    `json:"repeat" yaml:"repeat"`
}

// VariantStats holds the statistics of both variants of one benchmark.
type VariantStats struct {
	Serial   orchestration.Stats `json:"serial" yaml:"serial"`
	Parallel orchestration.Stats `json:"parallel" yaml:"parallel"`
}

// Record is the results file written after a suite run. The first eight
// fields keep the key names other language implementations use, so logs
// from every implementation can be processed together. Timings are mean
// seconds.
type Record struct {
	Language          string  `json:"language" yaml:"language"`
	ThreadCount       int     `json:"thread_count" yaml:"thread_count"`
	FibonacciSerial   float64 `json:"fibonacci_serial" yaml:"fibonacci_serial"`
	FibonacciParallel float64 `json:"fibonacci_parallel" yaml:"fibonacci_parallel"`
	PrimesSerial      float64 `json:"primes_serial" yaml:"primes_serial"`
	PrimesParallel    float64 `json:"primes_parallel" yaml:"primes_parallel"`
	SortSerial        float64 `json:"sort_serial" yaml:"sort_serial"`
	SortParallel      float64 `json:"sort_parallel" yaml:"sort_parallel"`

	Timestamp  string                  `json:"timestamp" yaml:"timestamp"`
	GoVersion  string                  `json:"go_version" yaml:"go_version"`
	Parameters Parameters              `json:"parameters" yaml:"parameters"`
	Speedups   map[string]float64      `json:"speedups" yaml:"speedups"`
	Stats      map[string]VariantStats `json:"stats" yaml:"stats"`
	Host       sysmon.Host             `json:"host" yaml:"host"`
	Memory     metrics.MemoryDelta     `json:"memory" yaml:"memory"`
}

// BuildRecord assembles a Record from an analysed run.
func BuildRecord(summary orchestration.Summary, cfg config.AppConfig, host sysmon.Host, mem metrics.MemoryDelta, now time.Time) Record {
	rec := Record{
		Language:    cfg.Label,
		ThreadCount: summary.Workers,
		Timestamp:   now.UTC().Format(time.RFC3339),
		GoVersion:   runtime.Version(),
		Parameters: Parameters{
			FibN:        cfg.FibN,
			FibStrategy: cfg.Strategy().String(),
			PrimeLimit:  cfg.PrimeLimit,
			SortSize:    cfg.SortSize,
			SortGrain:   cfg.SortGrain,
			Seed:        cfg.Seed,
			Repeat:      cfg.Repeat,
		},
		Speedups: make(map[string]float64, len(summary.Benchmarks)),
		Stats:    make(map[string]VariantStats, len(summary.Benchmarks)),
		Host:     host,
		Memory:   mem,
	}
	for _, b := range summary.Benchmarks {
		rec.Speedups[b.Name] = b.Speedup
		rec.Stats[b.Name] = VariantStats{Serial: b.Serial, Parallel: b.Parallel}
		switch b.Name {
		case orchestration.BenchFibonacci:
			rec.FibonacciSerial, rec.FibonacciParallel = b.Serial.Mean, b.Parallel.Mean
		case orchestration.BenchPrimes:
			rec.PrimesSerial, rec.PrimesParallel = b.Serial.Mean, b.Parallel.Mean
		case orchestration.BenchSort:
			rec.SortSerial, rec.SortParallel = b.Serial.Mean, b.Parallel.Mean
		}
	}
	return rec
}

// FormatRecord encodes rec as indented JSON or as YAML.
func FormatRecord(rec Record, format string) ([]byte, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding JSON record: %w", err)
		}
		return append(data, '\n'), nil
	case "yaml":
		data, err := yaml.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("encoding YAML record: %w", err)
		}
		return data, nil
	default:
		return nil, apperrors.NewConfigError("unsupported record format %q", format)
	}
}

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// LogDir is the primary results directory. It is created if missing.
	LogDir string
	// FallbackDir receives the record when writing to LogDir fails.
	// Empty means the working directory.
	FallbackDir string
	// FileName is the record's base name, for example "go_results.json".
	FileName string
	// Format is "json" or "yaml".
	Format string
	// Quiet mode suppresses the confirmation line.
	Quiet bool
}

// WriteRecordToFile writes rec to LogDir/FileName, falling back once to
// FallbackDir/FileName. A directory that cannot be created is logged and
// the write is still attempted. It returns the path actually written, or a
// PersistError when both attempts fail.
func WriteRecordToFile(rec Record, cfg OutputConfig, logger logging.Logger) (string, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	data, err := FormatRecord(rec, cfg.Format)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		logger.Warn("could not create results directory",
			logging.String("dir", cfg.LogDir), logging.Err(err))
	}

	primary := filepath.Join(cfg.LogDir, cfg.FileName)
	err = os.WriteFile(primary, data, 0o644)
	if err == nil {
		return primary, nil
	}
	logger.Warn("could not write results, trying fallback location",
		logging.String("path", primary), logging.Err(err))

	fallbackDir := cfg.FallbackDir
	if fallbackDir == "" {
		fallbackDir = "."
	}
	fallback := filepath.Join(fallbackDir, cfg.FileName)
	if err := os.WriteFile(fallback, data, 0o644); err != nil {
		logger.Error("could not write results to fallback location", err,
			logging.String("path", fallback))
		return "", apperrors.PersistError{Path: primary, Fallback: fallback, Cause: err}
	}
	return fallback, nil
}

// DisplayResultSaved confirms where the record went.
func DisplayResultSaved(out io.Writer, path string) {
	fmt.Fprintf(out, "\n%s✓ Results saved to: %s%s%s\n",
		ui.ColorGreen(), ui.ColorCyan(), path, ui.ColorReset())
}
