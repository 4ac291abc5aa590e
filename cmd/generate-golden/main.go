// Command generate-golden writes the Fibonacci reference values used by the
// fibonacci package tests. Values are computed with math/big so they stay
// exact past the uint64 range the benchmarks use.
//
// Usage:
//
//	go run ./cmd/generate-golden -out internal/fibonacci/testdata/fib_golden.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
)

// goldenEntry matches the layout the fibonacci tests decode.
type goldenEntry struct {
	N     uint64 `json:"n"`
	Value string `json:"value"`
}

func main() {
	out := flag.String("out", filepath.Join("internal", "fibonacci", "testdata", "fib_golden.json"), "Output file.")
	maxN := flag.Uint64("max", 93, "Highest index to generate.")
	flag.Parse()

	if err := writeGolden(*out, *maxN); err != nil {
		fmt.Fprintf(os.Stderr, "generate-golden: %v\n", err)
		os.Exit(1)
	}
}

// writeGolden writes F(0)..F(maxN) to path as indented JSON.
func writeGolden(path string, maxN uint64) error {
	data, err := json.MarshalIndent(goldenEntries(maxN), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding golden values: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func goldenEntries(maxN uint64) []goldenEntry {
	entries := make([]goldenEntry, 0, maxN+1)
	for n := uint64(0); n <= maxN; n++ {
		entries = append(entries, goldenEntry{N: n, Value: fibBig(n).String()})
	}
	return entries
}

// fibBig is the reference oracle: a plain iterative sum in big.Int.
func fibBig(n uint64) *big.Int {
	a, b := big.NewInt(0), big.NewInt(1)
	for i := uint64(0); i < n; i++ {
		a.Add(a, b)
		a, b = b, a
	}
	return a
}
