package config

import (
	"errors"
	"flag"
	"io"
	"path/filepath"
	"runtime"
	"testing"

	apperrors "github.com/agbru/parbench/internal/errors"
	"github.com/agbru/parbench/internal/fibonacci"
)

func TestResolveWorkers(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		raw    string
		numCPU int
		want   int
	}{
		{"empty uses cpu count", "", 8, 8},
		{"unparseable uses cpu count", "abc", 8, 8},
		{"zero uses cpu count", "0", 8, 8},
		{"negative uses cpu count", "-3", 8, 8},
		{"within range", "4", 8, 4},
		{"clamped to cpu count", "64", 8, 8},
		{"whitespace trimmed", " 2 ", 8, 2},
		{"invalid cpu count", "3", 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ResolveWorkers(tt.raw, tt.numCPU); got != tt.want {
				t.Errorf("ResolveWorkers(%q, %d) = %d, want %d", tt.raw, tt.numCPU, got, tt.want)
			}
		})
	}
}

func TestResolveWorkers_HostParallelism(t *testing.T) {
	t.Parallel()
	if got := ResolveWorkers("abc", runtime.NumCPU()); got != runtime.NumCPU() {
		t.Errorf("ResolveWorkers(\"abc\") = %d, want %d", got, runtime.NumCPU())
	}
}

func TestResolveLogDir(t *testing.T) {
	t.Parallel()
	tests := []struct {
		cwd  string
		want string
	}{
		{filepath.Join("/", "repo", "src", "go"), filepath.Join("..", "..", "logs")},
		{filepath.Join("/", "repo", "bin"), filepath.Join("..", "logs")},
		{filepath.Join("/", "repo"), "logs"},
		{filepath.Join("/", "repo", "golang"), "logs"},
	}
	for _, tt := range tests {
		if got := ResolveLogDir(tt.cwd); got != tt.want {
			t.Errorf("ResolveLogDir(%q) = %q, want %q", tt.cwd, got, tt.want)
		}
	}
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig("parbench", nil, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig returned error: %v", err)
	}
	if cfg.Workers != runtime.NumCPU() {
		t.Errorf("Workers = %d, want %d", cfg.Workers, runtime.NumCPU())
	}
	if cfg.Label != DefaultLabel || cfg.Format != "json" || cfg.Repeat != 1 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.FibN != DefaultFibN || cfg.PrimeLimit != DefaultPrimeLimit || cfg.SortSize != DefaultSortSize {
		t.Errorf("unexpected problem sizes: %+v", cfg)
	}
	if cfg.SortGrain != EstimateOptimalSortGrain(cfg.Workers) || !cfg.SortGrainAuto {
		t.Errorf("SortGrain = %d (auto %v), want adaptive estimate", cfg.SortGrain, cfg.SortGrainAuto)
	}
	if cfg.Seed == 0 {
		t.Error("Seed should be time-based when unset")
	}
	if cfg.Theme != DefaultTheme || cfg.LogFormat != DefaultLogFormat {
		t.Errorf("Theme/LogFormat = %q/%q, want defaults", cfg.Theme, cfg.LogFormat)
	}
	if cfg.LogDir == "" {
		t.Error("LogDir should be resolved")
	}
	if cfg.ResultFileName() != "go_results.json" {
		t.Errorf("ResultFileName() = %q", cfg.ResultFileName())
	}
}

func TestParseConfig_PositionalWorkers(t *testing.T) {
	cfg, err := ParseConfig("parbench", []string{"abc"}, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig returned error: %v", err)
	}
	if cfg.WorkersRaw != "abc" || cfg.Workers != runtime.NumCPU() {
		t.Errorf("got raw=%q workers=%d, want abc/%d", cfg.WorkersRaw, cfg.Workers, runtime.NumCPU())
	}

	cfg, err = ParseConfig("parbench", []string{"--workers", "1", "7"}, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig returned error: %v", err)
	}
	if cfg.Workers != 1 {
		t.Errorf("--workers should beat the positional argument, got %d", cfg.Workers)
	}

	if _, err := ParseConfig("parbench", []string{"1", "2"}, io.Discard); err == nil {
		t.Error("expected error for two positional arguments")
	}
}

func TestParseConfig_Flags(t *testing.T) {
	args := []string{
		"--label", "Go Fork Join", "--format", "YAML", "--repeat", "3",
		"--fib-n", "50", "--prime-limit", "1000", "--sort-size", "10",
		"--fib-strategy", "doubling", "--sort-grain", "0", "--seed", "42",
		"--log-dir", "out", "--sweep", "-q", "--theme", "Orange", "--log-format", "json",
	}
	cfg, err := ParseConfig("parbench", args, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig returned error: %v", err)
	}
	if cfg.Format != "yaml" || cfg.Repeat != 3 || cfg.FibN != 50 || cfg.PrimeLimit != 1000 || cfg.SortSize != 10 {
		t.Errorf("unexpected values: %+v", cfg)
	}
	if cfg.Strategy() != fibonacci.Doubling {
		t.Errorf("Strategy() = %v, want doubling", cfg.Strategy())
	}
	if cfg.SortGrain != 0 || cfg.SortGrainAuto {
		t.Errorf("explicit grain 0 must be kept, got %d", cfg.SortGrain)
	}
	if cfg.Seed != 42 || cfg.LogDir != "out" || !cfg.Sweep || !cfg.Quiet {
		t.Errorf("unexpected values: %+v", cfg)
	}
	if cfg.Theme != "orange" || cfg.LogFormat != "json" {
		t.Errorf("Theme/LogFormat = %q/%q, want orange/json", cfg.Theme, cfg.LogFormat)
	}
	if got := cfg.ResultFileName(); got != "go_fork_join_results.yaml" {
		t.Errorf("ResultFileName() = %q", got)
	}
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantHelp bool
	}{
		{"bad format", []string{"--format", "xml"}, apperrors.ExitErrorConfig, false},
		{"bad strategy", []string{"--fib-strategy", "matrix"}, apperrors.ExitErrorConfig, false},
		{"zero repeat", []string{"--repeat", "0"}, apperrors.ExitErrorConfig, false},
		{"negative size", []string{"--sort-size", "-1"}, apperrors.ExitErrorConfig, false},
		{"negative grain", []string{"--sort-grain", "-5"}, apperrors.ExitErrorConfig, false},
		{"bad theme", []string{"--theme", "solarized"}, apperrors.ExitErrorConfig, false},
		{"bad log format", []string{"--log-format", "xml"}, apperrors.ExitErrorConfig, false},
		{"quiet and verbose", []string{"--quiet", "--verbose"}, apperrors.ExitErrorConfig, false},
		{"tui and sweep", []string{"--tui", "--sweep"}, apperrors.ExitErrorConfig, false},
		{"help", []string{"--help"}, apperrors.ExitErrorGeneric, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig("parbench", tt.args, io.Discard)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantHelp != errors.Is(err, flag.ErrHelp) {
				t.Errorf("help error mismatch: %v", err)
			}
			if code := apperrors.ExitCodeFor(err); code != tt.wantCode {
				t.Errorf("ExitCodeFor(%v) = %d, want %d", err, code, tt.wantCode)
			}
		})
	}
}

func TestEstimateOptimalSortGrain(t *testing.T) {
	t.Parallel()
	tests := []struct {
		workers int
		want    int
	}{
		{1, 1 << 30},
		{2, 4096},
		{8, 2048},
		{64, 1024},
	}
	for _, tt := range tests {
		if got := EstimateOptimalSortGrain(tt.workers); got != tt.want {
			t.Errorf("EstimateOptimalSortGrain(%d) = %d, want %d", tt.workers, got, tt.want)
		}
	}
	if got := EstimateOptimalSortGrain(0); got <= 0 {
		t.Errorf("EstimateOptimalSortGrain(0) = %d, want positive", got)
	}
}
