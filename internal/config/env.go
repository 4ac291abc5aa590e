// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
)

// ─────────────────────────────────────────────────────────────────────────────
// Environment Variable Utilities
// ─────────────────────────────────────────────────────────────────────────────

// isFlagSet checks if a flag was explicitly set on the command line.
// This is used to determine whether to apply environment variable overrides.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// This is useful for aliased flags where either the short or long form may be used.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride declares a single environment variable override.
// Each entry maps an env key (without the PARBENCH_ prefix) to the CLI flag
// name(s) it corresponds to and a function that applies the env value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

// setInt returns an apply function that stores a parsed int, ignoring
// values that do not parse.
func setInt(dst func(*AppConfig) *int) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			*dst(c) = parsed
		}
	}
}

// setBool returns an apply function that stores a parsed boolean.
func setBool(dst func(*AppConfig) *bool) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		p := dst(c)
		*p = parseBoolEnv(v, *p)
	}
}

// envOverrides is the declarative table of all environment variable overrides.
var envOverrides = []envOverride{
	// Numeric overrides
	{"REPEAT", []string{"repeat"}, setInt(func(c *AppConfig) *int { return &c.Repeat })},
	{"FIB_N", []string{"fib-n"}, setInt(func(c *AppConfig) *int { return &c.FibN })},
	{"PRIME_LIMIT", []string{"prime-limit"}, setInt(func(c *AppConfig) *int { return &c.PrimeLimit })},
	{"SORT_SIZE", []string{"sort-size"}, setInt(func(c *AppConfig) *int { return &c.SortSize })},
	{"SORT_GRAIN", []string{"sort-grain"}, setInt(func(c *AppConfig) *int { return &c.SortGrain })},
	{"SEED", []string{"seed"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			c.Seed = parsed
		}
	}},

	// String overrides. An unparseable worker count is kept as is and
	// resolved to the CPU count later.
	{"WORKERS", []string{"workers"}, func(c *AppConfig, v string) {
		c.WorkersRaw = v
	}},
	{"LABEL", []string{"label"}, func(c *AppConfig, v string) {
		c.Label = v
	}},
	{"LOG_DIR", []string{"log-dir"}, func(c *AppConfig, v string) {
		c.LogDir = v
	}},
	{"FORMAT", []string{"format"}, func(c *AppConfig, v string) {
		c.Format = v
	}},
	{"METRICS_FILE", []string{"metrics-file"}, func(c *AppConfig, v string) {
		c.MetricsFile = v
	}},
	{"LOG_FORMAT", []string{"log-format"}, func(c *AppConfig, v string) {
		c.LogFormat = v
	}},
	{"THEME", []string{"theme"}, func(c *AppConfig, v string) {
		c.Theme = v
	}},
	{"FIB_STRATEGY", []string{"fib-strategy"}, func(c *AppConfig, v string) {
		c.FibStrategy = v
	}},

	// Boolean overrides
	{"SWEEP", []string{"sweep"}, setBool(func(c *AppConfig) *bool { return &c.Sweep })},
	{"TUI", []string{"tui"}, setBool(func(c *AppConfig) *bool { return &c.TUI })},
	{"QUIET", []string{"quiet", "q"}, setBool(func(c *AppConfig) *bool { return &c.Quiet })},
	{"VERBOSE", []string{"verbose", "v"}, setBool(func(c *AppConfig) *bool { return &c.Verbose })},
	{"NO_COLOR", []string{"no-color"}, setBool(func(c *AppConfig) *bool { return &c.NoColor })},
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > Defaults.
//
// Supported environment variables (all prefixed with PARBENCH_):
//   - WORKERS, LABEL, LOG_DIR, FORMAT, METRICS_FILE, LOG_FORMAT, THEME,
//     FIB_STRATEGY
//   - REPEAT, FIB_N, PRIME_LIMIT, SORT_SIZE, SORT_GRAIN, SEED
//   - SWEEP, TUI, QUIET, VERBOSE, NO_COLOR
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
