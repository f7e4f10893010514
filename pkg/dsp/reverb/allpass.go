package reverb

import "github.com/justyntemme/goreverb/pkg/dsp/delay"

// AllpassMode selects which of the two allpass output equations
// Process uses.
type AllpassMode int

const (
	// AllpassFreeverb is Freeverb's deliberate simplification of the
	// textbook Schroeder allpass: it writes back the same x + bufout*g
	// value, but outputs bufout - x instead of bufout - v*g. This is
	// preserved bit-for-bit for sonic compatibility with the original
	// Freeverb; it is not a bug to "fix".
	AllpassFreeverb AllpassMode = iota
	// AllpassSchroeder is the textbook allpass section used by Lexverb
	// and the Dattorro plate.
	AllpassSchroeder
)

// AllpassFilter is a Schroeder- or Freeverb-variant allpass built on a
// shared delay.Line.
type AllpassFilter struct {
	Delay      delay.Line
	Mode       AllpassMode
	Feedback   float32
	lastOutput float32
}

// NewAllpassFilter allocates an allpass with the given delay length in
// samples.
func NewAllpassFilter(delaySamples int, mode AllpassMode) *AllpassFilter {
	a := &AllpassFilter{Mode: mode}
	a.Delay.SetBuffer(delaySamples)
	return a
}

// LastOutput returns the most recently produced output sample. Cross-
// coupled topologies (Lexverb's cross-delays, Dattorro's tank) read
// this from the *previous* sample, never the value being computed.
func (a *AllpassFilter) LastOutput() float32 {
	return a.lastOutput
}

// Reset clears the delay buffer and cached output.
func (a *AllpassFilter) Reset() {
	a.Delay.Fill(0)
	a.Delay.SetSingleTapPosition(0)
	a.lastOutput = 0
}

// Process runs one sample through the allpass, advances the delay by
// one sample, and caches the allpass's own output (not the raw delay
// read) as LastOutput.
func (a *AllpassFilter) Process(x float32) float32 {
	bufout := a.Delay.ReadTap(0)
	g := a.Feedback

	var output, writeBack float32
	switch a.Mode {
	case AllpassFreeverb:
		output = bufout - x
		writeBack = x + bufout*g
	default: // AllpassSchroeder
		v := x + bufout*g
		output = bufout - v*g
		writeBack = v
	}

	a.Delay.Process(writeBack)
	a.lastOutput = output
	return output
}
