// Package debug provides debugging utilities for reverb development.
//
// This package contains tools to help verify that the reverb engine's
// process path allocates nothing once a model is constructed. The
// utilities are only active when building with the 'debug' build tag.
//
// Usage:
//
//	// Build with debug support
//	go build -tags debug
//
//	// Around a reverb model's process call
//	debug.CheckAllocation(left, "left")
//	debug.CheckAllocation(right, "right")
//
//	debug.StartFrame()
//	reverb.ProcessReplace(model, in, left, right)
//	allocs, bytes := debug.EndFrame()
//	if allocs > 0 {
//	    log.Printf("warning: %d allocations (%d bytes) in process block", allocs, bytes)
//	}
//
// The package provides:
//   - Allocation tracking to detect buffer allocations in the process path
//   - Block-based statistics to monitor per-call allocations
//   - Buffer reuse verification to ensure delay-line backing arrays aren't reallocated
//   - Detailed allocation reports with stack traces
//
// When building without the 'debug' tag, all functions become no-ops
// with zero overhead.
package debug