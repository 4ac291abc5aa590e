package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/parbench/internal/config"
	apperrors "github.com/agbru/parbench/internal/errors"
	"github.com/agbru/parbench/internal/orchestration"
	"github.com/agbru/parbench/internal/sysmon"
	"github.com/agbru/parbench/internal/ui"
)

// SuiteFunc runs one suite, reporting progress through reporter.
type SuiteFunc func(ctx context.Context, reporter orchestration.ProgressReporter) (orchestration.Summary, error)

const (
	tickInterval    = 500 * time.Millisecond
	maxLogEntries   = 256
	sparklineWidth  = 40
	defaultLogLines = 8
)

// ExecutionState holds the execution-related fields of a dashboard session.
type ExecutionState struct {
	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64
	done       bool
	exitCode   int
	summary    orchestration.Summary
	err        error
}

// Model is the root bubbletea model for the dashboard.
type Model struct {
	ExecutionState

	keymap   KeyMap
	help     help.Model
	showHelp bool

	parentCtx  context.Context
	run        SuiteFunc
	ref        *programRef
	config     config.AppConfig
	version    string
	totalSteps int

	progress orchestration.AggregatedProgress
	entries  []orchestration.ProgressUpdate
	failures int
	cpu      *RingBuffer
	mem      *RingBuffer
	start    time.Time
	elapsed  time.Duration

	width  int
	height int
}

// NewModel creates a dashboard model that will execute run once started.
func NewModel(parentCtx context.Context, cfg config.AppConfig, version string, totalSteps int, run SuiteFunc) Model {
	ctx, cancel := context.WithCancel(parentCtx)
	return Model{
		ExecutionState: ExecutionState{
			ctx:      ctx,
			cancel:   cancel,
			exitCode: apperrors.ExitSuccess,
		},
		keymap:     DefaultKeyMap(),
		help:       help.New(),
		parentCtx:  parentCtx,
		run:        run,
		ref:        &programRef{},
		config:     cfg,
		version:    version,
		totalSteps: totalSteps,
		cpu:        NewRingBuffer(sparklineWidth),
		mem:        NewRingBuffer(sparklineWidth),
		start:      time.Now(),
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startSuiteCmd(m.ref, m.ctx, m.run, m.generation),
		watchContextCmd(m.parentCtx),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case ProgressMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from a previous run
		}
		m.progress = msg.Progress
		if msg.Progress.Update.Err != nil {
			m.failures++
		}
		m.entries = append(m.entries, msg.Progress.Update)
		if len(m.entries) > maxLogEntries {
			m.entries = m.entries[len(m.entries)-maxLogEntries:]
		}
		return m, nil

	case ProgressDoneMsg:
		return m, nil

	case SuiteCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.done = true
		m.summary = msg.Summary
		m.err = msg.Err
		m.exitCode = apperrors.ExitCodeFor(msg.Err)
		m.elapsed = time.Since(m.start)
		if apperrors.IsContextError(msg.Err) {
			return m, tea.Quit
		}
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		m.elapsed = time.Since(m.start)
		return m, tea.Batch(sampleSysStatsCmd(), tickCmd())

	case SysStatsMsg:
		m.cpu.Push(msg.CPUPercent)
		m.mem.Push(msg.MemPercent)
		return m, nil

	case ContextCancelledMsg:
		m.cancel()
		if !m.done {
			m.exitCode = apperrors.ExitErrorCanceled
		}
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.cancel()
		if !m.done {
			m.exitCode = apperrors.ExitErrorCanceled
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, m.keymap.Theme):
		// A colourless session stays colourless.
		if current := ui.GetCurrentTheme().Name; current != ui.NoColorTheme.Name {
			ui.SetTheme(ui.NextThemeName(current))
			initTUIStyles()
		}
		return m, nil

	case key.Matches(msg, m.keymap.Restart):
		// Only a finished suite restarts; overlapping runs would skew timings.
		if !m.done {
			return m, nil
		}
		m.cancel()
		m.generation++
		m.ctx, m.cancel = context.WithCancel(m.parentCtx)
		m.done = false
		m.err = nil
		m.summary = orchestration.Summary{}
		m.exitCode = apperrors.ExitSuccess
		m.progress = orchestration.AggregatedProgress{}
		m.entries = nil
		m.failures = 0
		m.cpu.Reset()
		m.mem.Reset()
		m.start = time.Now()
		m.elapsed = 0
		return m, tea.Batch(tickCmd(), startSuiteCmd(m.ref, m.ctx, m.run, m.generation))
	}
	return m, nil
}

// Run is the public entry point for the dashboard. It runs the suite under
// a bubbletea program and returns the last summary and the exit code.
func Run(ctx context.Context, cfg config.AppConfig, version string, totalSteps int, run SuiteFunc) (orchestration.Summary, int) {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, cfg, version, totalSteps, run)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Inject the program reference before running so bridge goroutines can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return orchestration.Summary{}, apperrors.ExitErrorGeneric
	}
	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.summary, m.exitCode
	}
	return orchestration.Summary{}, apperrors.ExitSuccess
}

// startSuiteCmd returns a tea.Cmd that runs the suite to completion.
func startSuiteCmd(ref *programRef, ctx context.Context, run SuiteFunc, gen uint64) tea.Cmd {
	return func() tea.Msg {
		reporter := &TUIProgressReporter{ref: ref, generation: gen}
		summary, err := run(ctx, reporter)
		return SuiteCompleteMsg{Summary: summary, Err: err, Generation: gen}
	}
}

// watchContextCmd waits for ctx to be canceled.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{}
	}
}

// tickCmd returns a command that sends a TickMsg after tickInterval.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleSysStatsCmd reads system-wide CPU and memory stats and returns a SysStatsMsg.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{CPUPercent: s.CPUPercent, MemPercent: s.MemPercent}
	}
}
