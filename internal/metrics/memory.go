package metrics

import "runtime"

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by application
	HeapSys      uint64 // bytes obtained from OS for heap
	Sys          uint64 // total bytes obtained from OS
	NumGC        uint32 // number of completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
	HeapObjects  uint64 // number of allocated heap objects
	TotalAlloc   uint64 // cumulative bytes allocated
}

// MemoryDelta summarises memory activity between two snapshots.
type MemoryDelta struct {
	HeapAllocBefore uint64 `json:"heap_alloc_before" yaml:"heap_alloc_before"`
	HeapAllocAfter  uint64 `json:"heap_alloc_after" yaml:"heap_alloc_after"`
	TotalAllocated  uint64 `json:"total_allocated" yaml:"total_allocated"`
	GCCycles        uint32 `json:"gc_cycles" yaml:"gc_cycles"`
	GCPauseNs       uint64 `json:"gc_pause_ns" yaml:"gc_pause_ns"`
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		HeapObjects:  m.HeapObjects,
		TotalAlloc:   m.TotalAlloc,
	}
}

// Delta computes the activity between before and after. Counters that went
// backwards are reported as zero.
func Delta(before, after MemorySnapshot) MemoryDelta {
	sub := func(a, b uint64) uint64 {
		if a < b {
			return 0
		}
		return a - b
	}
	d := MemoryDelta{
		HeapAllocBefore: before.HeapAlloc,
		HeapAllocAfter:  after.HeapAlloc,
		TotalAllocated:  sub(after.TotalAlloc, before.TotalAlloc),
		GCPauseNs:       sub(after.PauseTotalNs, before.PauseTotalNs),
	}
	if after.NumGC > before.NumGC {
		d.GCCycles = after.NumGC - before.NumGC
	}
	return d
}
