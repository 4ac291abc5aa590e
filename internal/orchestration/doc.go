// Package orchestration runs benchmark workloads one after another, times
// them, and compares serial against parallel outcomes. It decouples the
// timing logic from presentation via the ProgressReporter and
// ResultPresenter interfaces.
package orchestration
