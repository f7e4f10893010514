// Package dsp provides the parameter-range constants the reverb engine
// clamps its controls to, and the channel-count constants its callers
// use to describe mono-in/stereo-out I/O.
package dsp

// Common audio constants used throughout the DSP package.
const (
	// Channel counts
	Mono   = 1
	Stereo = 2

	// Reverb parameter ranges (roomsize/damping/level share [0,1];
	// width is the odd one out at [0,100], per the reverb engine's own
	// parameter mapping).
	ReverbMinSize  = 0.0
	ReverbMaxSize  = 1.0
	ReverbMinDamp  = 0.0
	ReverbMaxDamp  = 1.0
	ReverbMinWidth = 0.0
	ReverbMaxWidth = 100.0
	ReverbMinLevel = 0.0
	ReverbMaxLevel = 1.0
)
