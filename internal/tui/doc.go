// Package tui implements a live terminal dashboard for a benchmark suite
// run, built on bubbletea. It plugs into the orchestration layer through
// the ProgressReporter interface, so the suite itself is unchanged.
package tui
