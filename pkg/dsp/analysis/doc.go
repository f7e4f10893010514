// Package analysis provides signal-level metering used to turn reverb
// tail behavior into a testable, numeric property rather than a listening
// test.
//
// It includes:
//
//   - PeakMeter: peak level with configurable hold time and decay rate
//   - RMSMeter: sliding-window RMS level
//
// Example usage:
//
//	pm := analysis.NewPeakMeter(48000)
//	pm.Process(left)
//	if pm.GetPeakDB() > -1.0 {
//	    // near clipping
//	}
package analysis
