package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/agbru/parbench/internal/config"
	"github.com/agbru/parbench/internal/format"
	"github.com/agbru/parbench/internal/metrics"
	"github.com/agbru/parbench/internal/orchestration"
	"github.com/agbru/parbench/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter for CLI output.
type CLIProgressReporter struct{}

// Verify that CLIProgressReporter implements orchestration.ProgressReporter.
var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar while benchmarks run.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, totalSteps int, out io.Writer) {
	DisplayProgress(wg, progressChan, totalSteps, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter for CLI output.
type CLIResultPresenter struct{}

var _ orchestration.ResultPresenter = CLIResultPresenter{}

// PresentSummary renders the summary table.
func (CLIResultPresenter) PresentSummary(summary orchestration.Summary, out io.Writer) {
	DisplaySummary(summary, out)
}

// FormatSummaryTable renders the per-benchmark timings, speedups and
// consistency as a lipgloss table.
func FormatSummaryTable(summary orchestration.Summary, styles ui.Styles) string {
	rows := make([][]string, 0, len(summary.Benchmarks))
	for _, b := range summary.Benchmarks {
		status := "✓ consistent"
		switch {
		case b.Err != nil:
			status = "✗ " + b.Err.Error()
		case !b.Consistent:
			status = "- incomplete"
		}
		rows = append(rows, []string{
			b.Name,
			formatSeconds(b.Serial),
			formatSeconds(b.Parallel),
			format.FormatSpeedup(b.Speedup),
			status,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.Dim).
		Headers("Benchmark", "Serial", "Parallel", "Speedup", "Status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Header
			}
			switch col {
			case 1, 2:
				return styles.Number
			case 3:
				if row < len(summary.Benchmarks) && summary.Benchmarks[row].Speedup >= 1 {
					return styles.Good
				}
				return styles.Bad
			case 4:
				if row < len(summary.Benchmarks) && summary.Benchmarks[row].Err != nil {
					return styles.Bad.Align(lipgloss.Left)
				}
				return styles.Cell
			default:
				return styles.Cell
			}
		})
	return t.Render()
}

// DisplaySummary writes the summary table with a title line.
func DisplaySummary(summary orchestration.Summary, out io.Writer) {
	styles := ui.CurrentStyles()
	fmt.Fprintf(out, "\n%s\n", styles.Title.Render(fmt.Sprintf("--- Benchmark Summary (%d workers) ---", summary.Workers)))
	fmt.Fprintln(out, FormatSummaryTable(summary, styles))
}

// formatSeconds shows the mean, with the spread when there are repeats.
func formatSeconds(s orchestration.Stats) string {
	if s.Runs == 0 {
		return "-"
	}
	mean := format.FormatExecutionDuration(secondsToDuration(s.Mean))
	if s.Runs == 1 {
		return mean
	}
	return fmt.Sprintf("%s ±%s", mean, format.FormatExecutionDuration(secondsToDuration(s.StdDev)))
}

// PrintExecutionConfig displays the configuration a suite will run with.
func PrintExecutionConfig(cfg config.AppConfig, numCPU int, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Workers: %s%d%s of %d logical processors (%s).\n",
		ui.ColorCyan(), cfg.Workers, ui.ColorReset(), numCPU, cfg.Label)
	fmt.Fprintf(out, "Fibonacci: %sF(0..%d)%s, %s chunks.\n",
		ui.ColorMagenta(), cfg.FibN, ui.ColorReset(), cfg.Strategy())
	fmt.Fprintf(out, "Primes: up to %s%d%s. Sort: %s%d%s integers, grain %d, seed %d.\n",
		ui.ColorMagenta(), cfg.PrimeLimit, ui.ColorReset(),
		ui.ColorMagenta(), cfg.SortSize, ui.ColorReset(), cfg.SortGrain, cfg.Seed)
	if cfg.Repeat > 1 {
		fmt.Fprintf(out, "Each workload is timed %s%d%s times.\n", ui.ColorYellow(), cfg.Repeat, ui.ColorReset())
	}
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}

// DisplayMemoryStats shows memory activity during the suite.
func DisplayMemoryStats(d metrics.MemoryDelta, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap before/after: %s / %s\n", formatBytes(d.HeapAllocBefore), formatBytes(d.HeapAllocAfter))
	fmt.Fprintf(out, "  Total allocated:   %s\n", formatBytes(d.TotalAllocated))
	fmt.Fprintf(out, "  GC cycles:         %d\n", d.GCCycles)
	fmt.Fprintf(out, "  GC pause total:    %.2fms\n", float64(d.GCPauseNs)/1e6)
}
