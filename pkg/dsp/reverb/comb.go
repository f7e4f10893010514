package reverb

import "github.com/justyntemme/goreverb/pkg/dsp/delay"

// CombFilter is a feedback comb with an internal one-pole lowpass
// (damping) in its feedback path, built on a shared delay.Line.
type CombFilter struct {
	Delay       delay.Line
	Feedback    float32
	Damp1       float32
	Damp2       float32
	filterstore float32
}

// NewCombFilter allocates a comb with the given delay length in
// samples.
func NewCombFilter(delaySamples int) *CombFilter {
	c := &CombFilter{}
	c.Delay.SetBuffer(delaySamples)
	return c
}

// SetDamp sets damp1/damp2 preserving the invariant damp1+damp2 == 1.
func (c *CombFilter) SetDamp(damp float32) {
	c.Damp1 = damp
	c.Damp2 = 1 - damp
}

// Reset clears the delay buffer and the internal lowpass state.
func (c *CombFilter) Reset() {
	c.Delay.Fill(0)
	c.Delay.SetSingleTapPosition(0)
	c.filterstore = 0
}

// Process runs one sample through the comb: read the delayed output,
// update the feedback-path lowpass, write input + filtered feedback
// back into the delay, and return the delayed output.
func (c *CombFilter) Process(x float32) float32 {
	y := c.Delay.ReadTap(0)
	c.filterstore = y*c.Damp2 + c.filterstore*c.Damp1
	c.Delay.Process(x + c.filterstore*c.Feedback)
	return y
}
