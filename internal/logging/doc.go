// Package logging provides a unified logging interface for the benchmark
// harness. It abstracts the underlying logging implementation, allowing
// consistent structured logging across components while supporting multiple
// backends (zerolog by default, the standard library logger as a fallback).
package logging
