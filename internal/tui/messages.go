package tui

import (
	"time"

	"github.com/agbru/parbench/internal/orchestration"
)

// ProgressMsg carries one finished timed run.
type ProgressMsg struct {
	Progress   orchestration.AggregatedProgress
	Generation uint64
}

// ProgressDoneMsg signals that the progress channel was closed.
type ProgressDoneMsg struct {
	Generation uint64
}

// SuiteCompleteMsg carries the analysed suite once every run finished.
type SuiteCompleteMsg struct {
	Summary    orchestration.Summary
	Err        error
	Generation uint64
}

// TickMsg drives periodic sampling.
type TickMsg time.Time

// SysStatsMsg carries a system-wide CPU and memory sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// ContextCancelledMsg signals that the parent context was canceled, for
// example by SIGTERM.
type ContextCancelledMsg struct{}
