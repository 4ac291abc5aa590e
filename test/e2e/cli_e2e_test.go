package e2e

import (
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"
)

// buildBinary compiles cmd/parbench into a temporary directory. go test runs
// in the package directory, so the build runs from the module root.
func buildBinary(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping e2e build in short mode")
	}
	binName := "parbench"
	if runtime.GOOS == "windows" {
		binName = "parbench.exe"
	}
	binPath := filepath.Join(t.TempDir(), binName)

	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/parbench")
	cmd.Dir = filepath.Join("..", "..")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build parbench: %v", err)
	}
	return binPath
}

// TestCLI_E2E verifies the built binary functions correctly.
func TestCLI_E2E(t *testing.T) {
	binPath := buildBinary(t)
	small := []string{"--fib-n", "30", "--prime-limit", "5000", "--sort-size", "5000", "--seed", "3"}

	tests := []struct {
		name     string
		args     []string
		wantOut  string // substring match (case-insensitive)
		wantCode int
	}{
		{
			name:     "Summary",
			args:     slices.Concat(small, []string{"2"}),
			wantOut:  "benchmark summary",
			wantCode: 0,
		},
		{
			name:     "Help",
			args:     []string{"--help"},
			wantOut:  "usage",
			wantCode: 0,
		},
		{
			name:     "Quiet Mode",
			args:     slices.Concat([]string{"--quiet"}, small),
			wantOut:  "",
			wantCode: 0,
		},
		{
			name:     "Invalid Worker Count Falls Back",
			args:     slices.Concat(small, []string{"abc"}),
			wantOut:  "results saved to",
			wantCode: 0,
		},
		{
			name:     "Unknown Format",
			args:     []string{"--format", "xml"},
			wantOut:  "invalid --format",
			wantCode: 4,
		},
		{
			name:     "Unknown Flag",
			args:     []string{"--frobnicate"},
			wantOut:  "flag provided but not defined",
			wantCode: 4,
		},
		{
			name:     "Version Flag",
			args:     []string{"--version"},
			wantOut:  "parbench",
			wantCode: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logDir := t.TempDir()
			// Flags stop at the first positional argument, so --log-dir goes first.
			cmd := exec.Command(binPath, slices.Concat([]string{"--log-dir", logDir}, tt.args)...)
			cmd.Dir = t.TempDir()
			cmd.Env = append(os.Environ(), "NO_COLOR=1")
			output, err := cmd.CombinedOutput()
			outStr := string(output)

			code := 0
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
			} else if err != nil {
				t.Fatalf("running parbench: %v", err)
			}
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nOutput: %s", code, tt.wantCode, outStr)
			}
			if !strings.Contains(strings.ToLower(outStr), tt.wantOut) {
				t.Errorf("output missing %q\nOutput: %s", tt.wantOut, outStr)
			}
		})
	}
}

// TestCLI_E2E_Record checks the results file a default run leaves behind.
func TestCLI_E2E_Record(t *testing.T) {
	binPath := buildBinary(t)
	logDir := t.TempDir()

	cmd := exec.Command(binPath, "--quiet", "--log-dir", logDir, "--label", "Go",
		"--fib-n", "25", "--prime-limit", "1000", "--sort-size", "1000", "1")
	cmd.Env = append(os.Environ(), "NO_COLOR=1")
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("parbench failed: %v\nOutput: %s", err, output)
	}

	data, err := os.ReadFile(filepath.Join(logDir, "go_results.json"))
	if err != nil {
		t.Fatalf("reading record: %v", err)
	}
	var rec struct {
		Language    string  `json:"language"`
		ThreadCount int     `json:"thread_count"`
		FibSerial   float64 `json:"fibonacci_serial"`
		SortSerial  float64 `json:"sort_serial"`
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		t.Fatalf("invalid record: %v", err)
	}
	if rec.Language != "Go" || rec.ThreadCount != 1 {
		t.Errorf("record = %+v, want language Go and 1 thread", rec)
	}
	if rec.FibSerial < 0 || rec.SortSerial < 0 {
		t.Errorf("negative timings in %+v", rec)
	}
}
