package calibration

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/agbru/parbench/internal/format"
	"github.com/agbru/parbench/internal/orchestration"
	"github.com/agbru/parbench/internal/ui"
)

// sweepBenchmarks fixes the column order of the sweep table.
var sweepBenchmarks = []string{
	orchestration.BenchFibonacci,
	orchestration.BenchPrimes,
	orchestration.BenchSort,
}

// PrintSweepResults formats and prints the sweep table: one row per worker
// count, one column per benchmark showing the mean parallel time and the
// speedup over the serial variant. The fastest count per benchmark is
// highlighted.
func PrintSweepResults(out io.Writer, points []SweepPoint) {
	fmt.Fprintf(out, "\n--- Worker Sweep Summary ---\n")
	best := make(map[string]int, len(sweepBenchmarks))
	for _, name := range sweepBenchmarks {
		best[name] = BestWorkers(points, name)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	header := []string{"  Workers"}
	for _, name := range sweepBenchmarks {
		header = append(header, name)
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	fmt.Fprintln(tw, "  "+strings.Repeat("─", 9)+strings.Repeat("\t"+strings.Repeat("─", 20), len(sweepBenchmarks)))
	for _, p := range points {
		cells := []string{fmt.Sprintf("  %d", p.Workers)}
		for _, name := range sweepBenchmarks {
			cells = append(cells, formatCell(p, name, best[name] == p.Workers))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	tw.Flush()
}

func formatCell(p SweepPoint, name string, isBest bool) string {
	b, ok := p.Summary.Lookup(name)
	switch {
	case !ok || b.Parallel.Runs == 0:
		return "N/A"
	case b.Err != nil:
		return "failed"
	}
	cell := fmt.Sprintf("%s (%s)",
		format.FormatExecutionDuration(secondsToDuration(b.Parallel.Mean)),
		format.FormatSpeedup(b.Speedup))
	if isBest {
		cell += " *"
	}
	return cell
}

// PrintSweepOutput prints the fastest worker count per benchmark.
func PrintSweepOutput(out io.Writer, points []SweepPoint) {
	parts := make([]string, 0, len(sweepBenchmarks))
	for _, name := range sweepBenchmarks {
		w := BestWorkers(points, name)
		if w == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%s%d%s", name, ui.ColorYellow(), w, ui.ColorReset()))
	}
	if len(parts) == 0 {
		return
	}
	fmt.Fprintf(out, "%sFastest worker counts%s: %s\n", ui.ColorGreen(), ui.ColorReset(), strings.Join(parts, ", "))
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
