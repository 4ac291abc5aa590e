package config

import "runtime"

// Sort grain resolution chain (highest priority first):
//   1. CLI flag (--sort-grain)
//   2. Environment variable (PARBENCH_SORT_GRAIN)
//   3. Hardware estimation (this file)

// ApplyAdaptiveGrain replaces an AutoGrain sort grain with an estimate
// derived from the worker count. Explicit values, including 0, are kept.
func ApplyAdaptiveGrain(cfg AppConfig) AppConfig {
	if cfg.SortGrain == AutoGrain {
		cfg.SortGrain = EstimateOptimalSortGrain(cfg.Workers)
		cfg.SortGrainAuto = true
	}
	return cfg
}

// EstimateOptimalSortGrain provides a heuristic estimate of the sub-slice
// length below which forking a sort goroutine no longer pays off.
// A non-positive worker count uses the host's CPU count.
func EstimateOptimalSortGrain(workers int) int {
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	switch {
	case workers == 1:
		return 1 << 30 // Never fork
	case workers <= 4:
		return 4096
	case workers <= 16:
		return 2048
	default:
		return 1024 // High core count - aggressive parallelism
	}
}
