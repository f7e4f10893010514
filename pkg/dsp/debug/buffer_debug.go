// +build debug

// Package debug provides allocation-tracking utilities used to verify
// that the reverb engine's steady-state process path never allocates.
package debug

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"unsafe"
)

// AllocationTracker tracks buffer allocations to help detect unwanted
// allocations in the reverb processing path.
type AllocationTracker struct {
	allocations map[string]*AllocationInfo
	mu          sync.RWMutex
	enabled     atomic.Bool
	totalAllocs atomic.Uint64
	totalBytes  atomic.Uint64
	frameAllocs atomic.Uint64
	frameBytes  atomic.Uint64
}

// AllocationInfo contains information about a buffer allocation.
type AllocationInfo struct {
	Name       string
	Size       int
	Capacity   int
	StackTrace string
	Count      uint64
	TotalBytes uint64
}

var globalTracker = &AllocationTracker{
	allocations: make(map[string]*AllocationInfo),
}

// EnableAllocationTracking enables global allocation tracking.
func EnableAllocationTracking() {
	globalTracker.enabled.Store(true)
}

// DisableAllocationTracking disables global allocation tracking.
func DisableAllocationTracking() {
	globalTracker.enabled.Store(false)
}

// ResetAllocationTracking resets all allocation statistics.
func ResetAllocationTracking() {
	globalTracker.mu.Lock()
	defer globalTracker.mu.Unlock()

	globalTracker.allocations = make(map[string]*AllocationInfo)
	globalTracker.totalAllocs.Store(0)
	globalTracker.totalBytes.Store(0)
	globalTracker.frameAllocs.Store(0)
	globalTracker.frameBytes.Store(0)
}

// CheckAllocation verifies that a buffer is pre-allocated and tracks its
// usage. Call this at the top of ProcessMix/ProcessReplace.
func CheckAllocation(buffer []float32, name string) {
	if !globalTracker.enabled.Load() {
		return
	}

	if buffer == nil {
		panic(fmt.Sprintf("buffer %s is nil", name))
	}
	if cap(buffer) == 0 {
		panic(fmt.Sprintf("buffer %s is not pre-allocated (capacity is 0)", name))
	}

	trackAllocation(name, len(buffer), cap(buffer))
}

func trackAllocation(name string, size, capacity int) {
	globalTracker.mu.Lock()
	defer globalTracker.mu.Unlock()

	info, exists := globalTracker.allocations[name]
	if !exists {
		buf := make([]byte, 1024)
		n := runtime.Stack(buf, false)

		info = &AllocationInfo{
			Name:       name,
			Size:       size,
			Capacity:   capacity,
			StackTrace: string(buf[:n]),
		}
		globalTracker.allocations[name] = info
	}

	info.Count++
	info.TotalBytes += uint64(size * 4)

	globalTracker.totalAllocs.Add(1)
	globalTracker.totalBytes.Add(uint64(size * 4))
	globalTracker.frameAllocs.Add(1)
	globalTracker.frameBytes.Add(uint64(size * 4))
}

// StartFrame marks the beginning of a new processing block.
func StartFrame() {
	globalTracker.frameAllocs.Store(0)
	globalTracker.frameBytes.Store(0)
}

// EndFrame marks the end of a processing block and returns its stats.
func EndFrame() (allocations uint64, bytes uint64) {
	return globalTracker.frameAllocs.Load(), globalTracker.frameBytes.Load()
}

// GetAllocationReport returns a detailed report of all tracked allocations.
func GetAllocationReport() string {
	globalTracker.mu.RLock()
	defer globalTracker.mu.RUnlock()

	report := "=== Buffer Allocation Report ===\n"
	report += fmt.Sprintf("Total Allocations: %d\n", globalTracker.totalAllocs.Load())
	report += fmt.Sprintf("Total Bytes: %d\n", globalTracker.totalBytes.Load())
	report += "\nDetailed Allocations:\n"

	for name, info := range globalTracker.allocations {
		report += fmt.Sprintf("\nBuffer: %s\n", name)
		report += fmt.Sprintf("  Size: %d, Capacity: %d\n", info.Size, info.Capacity)
		report += fmt.Sprintf("  Access Count: %d\n", info.Count)
		report += fmt.Sprintf("  Total Bytes: %d\n", info.TotalBytes)
		report += fmt.Sprintf("  Stack Trace:\n%s\n", info.StackTrace)
	}

	return report
}

// VerifyBufferReuse checks that a buffer is being reused across multiple
// calls rather than reallocated, e.g. a model's internal delay-line backing
// array across successive ProcessReplace calls.
func VerifyBufferReuse(buffer []float32, name string, expectedPtr uintptr) uintptr {
	if !globalTracker.enabled.Load() {
		return 0
	}

	ptr := uintptr(0)
	if len(buffer) > 0 {
		ptr = uintptr(unsafe.Pointer(&buffer[0]))
	}

	if expectedPtr != 0 && ptr != expectedPtr {
		panic(fmt.Sprintf("buffer %s was reallocated! expected ptr %x, got %x",
			name, expectedPtr, ptr))
	}

	return ptr
}

// DetectAllocation runs fn and panics if the heap grew while it ran.
func DetectAllocation(fn func()) {
	var m1, m2 runtime.MemStats

	runtime.GC()
	runtime.ReadMemStats(&m1)

	fn()

	runtime.ReadMemStats(&m2)

	if m2.Alloc > m1.Alloc {
		panic(fmt.Sprintf("allocation detected: %d bytes allocated", m2.Alloc-m1.Alloc))
	}
}
