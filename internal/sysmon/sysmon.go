// Package sysmon provides system-wide CPU and memory usage sampling and a
// description of the host a benchmark ran on.
package sysmon

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	xcpu "golang.org/x/sys/cpu"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Returns zero values on error.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	return s
}

// Host describes the machine and its load at the time of a run.
type Host struct {
	OS           string   `json:"os" yaml:"os"`
	Arch         string   `json:"arch" yaml:"arch"`
	Platform     string   `json:"platform,omitempty" yaml:"platform,omitempty"`
	CPUModel     string   `json:"cpu_model,omitempty" yaml:"cpu_model,omitempty"`
	LogicalCPUs  int      `json:"logical_cpus" yaml:"logical_cpus"`
	PhysicalCPUs int      `json:"physical_cpus,omitempty" yaml:"physical_cpus,omitempty"`
	TotalMemory  uint64   `json:"total_memory_bytes,omitempty" yaml:"total_memory_bytes,omitempty"`
	CPUFeatures  []string `json:"cpu_features,omitempty" yaml:"cpu_features,omitempty"`
	CPUPercent   float64  `json:"cpu_percent" yaml:"cpu_percent"`
	MemPercent   float64  `json:"mem_percent" yaml:"mem_percent"`
}

// DescribeHost gathers a Host description. Fields that gopsutil cannot
// read on this platform are left at their zero value, and the logical CPU
// count falls back to runtime.NumCPU.
func DescribeHost() Host {
	h := Host{
		OS:          runtime.GOOS,
		Arch:        runtime.GOARCH,
		LogicalCPUs: runtime.NumCPU(),
		CPUFeatures: CPUFeatures(),
	}
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		h.LogicalCPUs = n
	}
	if n, err := cpu.Counts(false); err == nil {
		h.PhysicalCPUs = n
	}
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		h.CPUModel = infos[0].ModelName
	}
	if info, err := host.Info(); err == nil && info != nil {
		h.Platform = info.Platform
	}
	if vmem, err := mem.VirtualMemory(); err == nil && vmem != nil {
		h.TotalMemory = vmem.Total
	}
	s := Sample()
	h.CPUPercent, h.MemPercent = s.CPUPercent, s.MemPercent
	return h
}

// CPUFeatures lists the SIMD extensions relevant to integer workloads that
// the current CPU reports.
func CPUFeatures() []string {
	var features []string
	add := func(ok bool, name string) {
		if ok {
			features = append(features, name)
		}
	}
	switch runtime.GOARCH {
	case "amd64", "386":
		add(xcpu.X86.HasSSE42, "sse4.2")
		add(xcpu.X86.HasAVX, "avx")
		add(xcpu.X86.HasAVX2, "avx2")
		add(xcpu.X86.HasBMI2, "bmi2")
		add(xcpu.X86.HasAVX512F, "avx512f")
		add(xcpu.X86.HasPOPCNT, "popcnt")
	case "arm64":
		add(xcpu.ARM64.HasASIMD, "asimd")
		add(xcpu.ARM64.HasATOMICS, "atomics")
		add(xcpu.ARM64.HasSVE, "sve")
	}
	return features
}
