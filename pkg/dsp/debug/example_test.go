// +build debug

package debug_test

import (
	"fmt"

	"github.com/justyntemme/goreverb/pkg/dsp/debug"
	"github.com/justyntemme/goreverb/pkg/dsp/reverb"
)

// ExampleCheckAllocation shows verifying a reverb model's process call
// allocates nothing once constructed.
func ExampleCheckAllocation() {
	debug.EnableAllocationTracking()
	defer debug.DisableAllocationTracking()

	model, err := reverb.NewModel(48000, reverb.FREEVERB)
	if err != nil {
		panic(err)
	}

	in := make([]float32, 512)
	left := make([]float32, 512)
	right := make([]float32, 512)

	process := func() {
		debug.CheckAllocation(in, "in")
		debug.CheckAllocation(left, "left")
		debug.CheckAllocation(right, "right")

		debug.StartFrame()
		reverb.ProcessReplace(model, in, left, right)
		allocs, bytes := debug.EndFrame()
		fmt.Println(allocs, bytes)
	}

	process()
	// Output:
	// 0 0
}

// ExampleVerifyBufferReuse shows verifying a model's output buffers keep
// the same backing array across repeated process calls.
func ExampleVerifyBufferReuse() {
	debug.EnableAllocationTracking()
	defer debug.DisableAllocationTracking()

	model, err := reverb.NewModel(48000, reverb.LEXVERB)
	if err != nil {
		panic(err)
	}

	in := make([]float32, 256)
	left := make([]float32, 256)
	right := make([]float32, 256)
	var leftPtr, rightPtr uintptr

	process := func() {
		reverb.ProcessReplace(model, in, left, right)
		leftPtr = debug.VerifyBufferReuse(left, "left", leftPtr)
		rightPtr = debug.VerifyBufferReuse(right, "right", rightPtr)
	}

	process()
	process()
	process()
}
