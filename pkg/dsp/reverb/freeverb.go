package reverb

import "github.com/justyntemme/goreverb/pkg/dsp"

// Freeverb implements the Freeverb algorithm (Jezar at Dreampoint,
// 2000): 8 parallel combs feeding 4 series allpasses, per channel,
// mono-in/stereo-out, with a DC-offset denormal guard.
//
// Tunings below are sample counts at 44.1kHz and are scaled linearly
// for other sample rates.
const (
	freeverbNumCombs     = 8
	freeverbNumAllpasses = 4
	freeverbStereoSpread = 23
	freeverbDCOffset     = 1e-8
	freeverbFixedGain    = 0.015
	freeverbScaleRoom    = 0.28
	freeverbOffsetRoom   = 0.7
	freeverbScaleDamp    = 1.0
	freeverbScaleWet     = 3.0
	freeverbScaleWidth   = 0.2
	freeverbFixedFeedbk  = 0.5
)

var freeverbCombTuningL = [freeverbNumCombs]int{1116, 1188, 1277, 1356, 1422, 1491, 1557, 1617}
var freeverbAllpassTuningL = [freeverbNumAllpasses]int{556, 441, 341, 225}

// Freeverb is a Model implementing the Freeverb topology.
type Freeverb struct {
	combL    [freeverbNumCombs]*CombFilter
	combR    [freeverbNumCombs]*CombFilter
	allpassL [freeverbNumAllpasses]*AllpassFilter
	allpassR [freeverbNumAllpasses]*AllpassFilter

	sampleRate float64
	roomsize   float64
	damping    float64
	width      float64
	level      float64

	wet1, wet2 float64
}

// NewFreeverb constructs a Freeverb model for the given sample rate.
func NewFreeverb(sampleRate float64) (*Freeverb, error) {
	if sampleRate <= 0 {
		return nil, errSampleRate
	}
	f := &Freeverb{
		sampleRate: sampleRate,
		roomsize:   0.5,
		damping:    0.5,
		width:      1.0,
		level:      1.0,
	}
	f.setupBuffers(sampleRate)
	for i := range f.allpassL {
		f.allpassL[i].Feedback = freeverbFixedFeedbk
		f.allpassR[i].Feedback = freeverbFixedFeedbk
	}
	f.update()
	return f, nil
}

func (f *Freeverb) setupBuffers(sampleRate float64) {
	srFactor := sampleRate / 44100.0
	for i := 0; i < freeverbNumCombs; i++ {
		f.combL[i] = NewCombFilter(int(float64(freeverbCombTuningL[i]) * srFactor))
		f.combR[i] = NewCombFilter(int(float64(freeverbCombTuningL[i]+freeverbStereoSpread) * srFactor))
	}
	for i := 0; i < freeverbNumAllpasses; i++ {
		f.allpassL[i] = NewAllpassFilter(int(float64(freeverbAllpassTuningL[i])*srFactor), AllpassFreeverb)
		f.allpassR[i] = NewAllpassFilter(int(float64(freeverbAllpassTuningL[i]+freeverbStereoSpread)*srFactor), AllpassFreeverb)
	}
	f.clearBuffers()
}

// clearBuffers fills every comb and allpass buffer with the DC offset
// rather than zero, avoiding the denormal ramp Freeverb is known for.
func (f *Freeverb) clearBuffers() {
	for i := 0; i < freeverbNumCombs; i++ {
		f.combL[i].Delay.Fill(freeverbDCOffset)
		f.combR[i].Delay.Fill(freeverbDCOffset)
		f.combL[i].filterstore = 0
		f.combR[i].filterstore = 0
	}
	for i := 0; i < freeverbNumAllpasses; i++ {
		f.allpassL[i].Delay.Fill(freeverbDCOffset)
		f.allpassR[i].Delay.Fill(freeverbDCOffset)
	}
}

func (f *Freeverb) update() {
	wet := (f.level * freeverbScaleWet) / (1 + f.width*freeverbScaleWidth)
	f.wet1, f.wet2 = wetMix(wet, f.width)

	feedback := float32(f.roomsize*freeverbScaleRoom + freeverbOffsetRoom)
	damp := float32(f.damping * freeverbScaleDamp)
	for i := 0; i < freeverbNumCombs; i++ {
		f.combL[i].Feedback = feedback
		f.combR[i].Feedback = feedback
		f.combL[i].SetDamp(damp)
		f.combR[i].SetDamp(damp)
	}
}

// SetParams implements Model.
func (f *Freeverb) SetParams(mask ParamMask, roomsize, damping, width, level float64) {
	if mask&SetRoomsize != 0 {
		f.roomsize = clamp(roomsize, dsp.ReverbMinSize, dsp.ReverbMaxSize)
	}
	if mask&SetDamping != 0 {
		f.damping = clamp(damping, dsp.ReverbMinDamp, dsp.ReverbMaxDamp)
	}
	if mask&SetWidth != 0 {
		f.width = clamp(width, dsp.ReverbMinWidth, dsp.ReverbMaxWidth)
	}
	if mask&SetLevel != 0 {
		f.level = clamp(level, dsp.ReverbMinLevel, dsp.ReverbMaxLevel)
	}
	f.update()
}

// Reset implements Model.
func (f *Freeverb) Reset() {
	f.clearBuffers()
}

// SamplerateChange implements Model: Freeverb supports it by
// reallocating every delay line at the new rate.
func (f *Freeverb) SamplerateChange(sampleRate float64) error {
	if sampleRate <= 0 {
		return errSampleRate
	}
	f.sampleRate = sampleRate
	f.setupBuffers(sampleRate)
	for i := range f.allpassL {
		f.allpassL[i].Feedback = freeverbFixedFeedbk
		f.allpassR[i].Feedback = freeverbFixedFeedbk
	}
	f.update()
	return nil
}

func (f *Freeverb) processSample(in float32) (outL, outR float32) {
	input := (2*in + freeverbDCOffset) * freeverbFixedGain

	for i := 0; i < freeverbNumCombs; i++ {
		outL += f.combL[i].Process(input)
		outR += f.combR[i].Process(input)
	}
	for i := 0; i < freeverbNumAllpasses; i++ {
		outL = f.allpassL[i].Process(outL)
		outR = f.allpassR[i].Process(outR)
	}

	outL -= freeverbDCOffset
	outR -= freeverbDCOffset
	return outL, outR
}

// ProcessMix implements Model.
func (f *Freeverb) ProcessMix(in []float32, left, right []float32) {
	wet1, wet2 := float32(f.wet1), float32(f.wet2)
	for i := range in {
		outL, outR := f.processSample(in[i])
		left[i] += outL*wet1 + outR*wet2
		right[i] += outR*wet1 + outL*wet2
	}
}

// ProcessReplace implements Model.
func (f *Freeverb) ProcessReplace(in []float32, left, right []float32) {
	wet1, wet2 := float32(f.wet1), float32(f.wet2)
	for i := range in {
		outL, outR := f.processSample(in[i])
		left[i] = outL*wet1 + outR*wet2
		right[i] = outR*wet1 + outL*wet2
	}
}
