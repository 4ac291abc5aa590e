package sysmon

import (
	"runtime"
	"slices"
	"testing"
)

func TestSample_ReturnsValidRanges(t *testing.T) {
	s := Sample()
	if s.CPUPercent < 0 || s.CPUPercent > 100 {
		t.Errorf("CPUPercent out of range: %f", s.CPUPercent)
	}
	if s.MemPercent < 0 || s.MemPercent > 100 {
		t.Errorf("MemPercent out of range: %f", s.MemPercent)
	}
}

func TestSample_MemPercentNonZero(t *testing.T) {
	s := Sample()
	if s.MemPercent == 0 {
		t.Error("expected non-zero MemPercent on a running system")
	}
}

func TestDescribeHost(t *testing.T) {
	h := DescribeHost()
	if h.OS != runtime.GOOS || h.Arch != runtime.GOARCH {
		t.Errorf("OS/Arch = %s/%s, want %s/%s", h.OS, h.Arch, runtime.GOOS, runtime.GOARCH)
	}
	if h.LogicalCPUs < 1 {
		t.Errorf("LogicalCPUs = %d, want >= 1", h.LogicalCPUs)
	}
	if h.PhysicalCPUs > h.LogicalCPUs {
		t.Errorf("PhysicalCPUs %d exceeds LogicalCPUs %d", h.PhysicalCPUs, h.LogicalCPUs)
	}
}

func TestCPUFeatures_NoDuplicates(t *testing.T) {
	t.Parallel()
	f := CPUFeatures()
	sorted := slices.Clone(f)
	slices.Sort(sorted)
	if len(slices.Compact(sorted)) != len(f) {
		t.Errorf("duplicate features: %v", f)
	}
	if runtime.GOARCH == "amd64" && !slices.Contains(f, "sse4.2") {
		t.Logf("sse4.2 not reported on this amd64 host: %v", f)
	}
}
