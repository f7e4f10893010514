// +build !debug

// Package debug provides allocation-tracking utilities used to verify
// that the reverb engine's steady-state process path never allocates.
// This file holds the zero-overhead no-op implementations used when the
// 'debug' build tag is absent.
package debug

// EnableAllocationTracking is a no-op when not in debug mode.
func EnableAllocationTracking() {}

// DisableAllocationTracking is a no-op when not in debug mode.
func DisableAllocationTracking() {}

// ResetAllocationTracking is a no-op when not in debug mode.
func ResetAllocationTracking() {}

// CheckAllocation is a no-op when not in debug mode.
func CheckAllocation(buffer []float32, name string) {}

// StartFrame is a no-op when not in debug mode.
func StartFrame() {}

// EndFrame is a no-op when not in debug mode.
func EndFrame() (allocations uint64, bytes uint64) {
	return 0, 0
}

// GetAllocationReport returns an empty string when not in debug mode.
func GetAllocationReport() string {
	return ""
}

// VerifyBufferReuse is a no-op when not in debug mode.
func VerifyBufferReuse(buffer []float32, name string, expectedPtr uintptr) uintptr {
	return 0
}

// DetectAllocation is a no-op when not in debug mode.
func DetectAllocation(fn func()) {
	fn()
}
