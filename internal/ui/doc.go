// Package ui provides theme and color support for the benchmark output.
// It defines ANSI color schemes for progress lines and matching lipgloss
// palettes and styles for summary tables.
//
// This package is a shared dependency for packages that need color output,
// keeping presentation out of the benchmark and orchestration code.
package ui
