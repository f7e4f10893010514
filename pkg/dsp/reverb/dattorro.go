package reverb

import (
	"github.com/justyntemme/goreverb/pkg/dsp"
	"github.com/justyntemme/goreverb/pkg/dsp/delay"
)

// Dattorro implements the Dattorro plate topology: predelay, input
// bandwidth filter, four series input-diffusion allpasses, and two
// cross-coupled tanks (allpass, delay, damping LPF, allpass, delay)
// read out through 14 signed taps.
const (
	dattorroTrim          = 0.6
	dattorroPredelaySec   = 0.004
	dattorroScaleWetWidth = 0.2
	dattorroBaseBandwidth = 0.9999
)

var dattorroInputApFeedback = [4]float32{0.75, 0.75, 0.625, 0.625}
var dattorroInputApSeconds = [4]float64{0.004771, 0.003595, 0.012735, 0.009307}

var dattorroTankApFeedback = [4]float32{0.7, 0.5, 0.7, 0.5}

// tankApSeconds/tankDelaySeconds are interleaved in the source
// (ap0, delay0, ap1, delay1, ap2, delay2, ap3, delay3).
var dattorroTankApSeconds = [4]float64{0.022580, 0.060482, 0.030510, 0.089244}
var dattorroTankDelaySeconds = [4]float64{0.149625, 0.124996, 0.141696, 0.106280}

var dattorroTapSecondsLeft = [7]float64{0.008938, 0.099929, 0.064279, 0.067068, 0.066866, 0.006283, 0.035819}
var dattorroTapSecondsRight = [7]float64{0.011861, 0.121871, 0.041262, 0.089816, 0.070932, 0.011256, 0.004066}

func dattorroSamplesFromSeconds(sec, sampleRate float64) int {
	n := int(sec*sampleRate + 0.5)
	if n < 1 {
		n = 1
	}
	return n
}

// Dattorro is a Model implementing the Dattorro plate topology.
type Dattorro struct {
	predelay delay.Line
	bandwidth delay.Damping

	inputAp [4]*AllpassFilter

	tankAp    [4]*AllpassFilter
	tankDelay [4]delay.Line
	tankDamp  [2]delay.Damping

	tapLeft  [7]int
	tapRight [7]int

	sampleRate float64
	roomsize   float64
	damping    float64
	width      float64
	level      float64
	bw         float64

	decay      float64
	wet1, wet2 float64
}

// NewDattorro constructs a Dattorro model for the given sample rate.
func NewDattorro(sampleRate float64) (*Dattorro, error) {
	if sampleRate <= 0 {
		return nil, errSampleRate
	}
	d := &Dattorro{
		sampleRate: sampleRate,
		roomsize:   0.5,
		damping:    0.5,
		width:      1.0,
		level:      1.0,
		bw:         dattorroBaseBandwidth,
	}
	d.setupBuffers(sampleRate)
	d.update()
	return d, nil
}

func (d *Dattorro) setupBuffers(sampleRate float64) {
	d.predelay.SetBuffer(dattorroSamplesFromSeconds(dattorroPredelaySec, sampleRate))

	for i, sec := range dattorroInputApSeconds {
		d.inputAp[i] = NewAllpassFilter(dattorroSamplesFromSeconds(sec, sampleRate), AllpassSchroeder)
		d.inputAp[i].Feedback = dattorroInputApFeedback[i]
	}
	for i := 0; i < 4; i++ {
		d.tankAp[i] = NewAllpassFilter(dattorroSamplesFromSeconds(dattorroTankApSeconds[i], sampleRate), AllpassSchroeder)
		d.tankAp[i].Feedback = dattorroTankApFeedback[i]
		d.tankDelay[i].SetBuffer(dattorroSamplesFromSeconds(dattorroTankDelaySeconds[i], sampleRate))
	}
	for i := range d.tapLeft {
		d.tapLeft[i] = dattorroSamplesFromSeconds(dattorroTapSecondsLeft[i], sampleRate)
		d.tapRight[i] = dattorroSamplesFromSeconds(dattorroTapSecondsRight[i], sampleRate)
	}
	d.tankDamp[0].Reset()
	d.tankDamp[1].Reset()
}

func (d *Dattorro) update() {
	wet := d.level / (1 + d.width*dattorroScaleWetWidth)
	d.wet1, d.wet2 = wetMix(wet, d.width)
	d.decay = 0.2 + d.roomsize*0.78

	d.bandwidth.SetCoeff(float32(d.bw))
	damp := float32(1 - d.damping)
	d.tankDamp[0].SetCoeff(damp)
	d.tankDamp[1].SetCoeff(damp)
}

// SetParams implements Model.
func (d *Dattorro) SetParams(mask ParamMask, roomsize, damping, width, level float64) {
	if mask&SetRoomsize != 0 {
		d.roomsize = clamp(roomsize, dsp.ReverbMinSize, dsp.ReverbMaxSize)
	}
	if mask&SetDamping != 0 {
		d.damping = clamp(damping, dsp.ReverbMinDamp, dsp.ReverbMaxDamp)
	}
	if mask&SetWidth != 0 {
		d.width = clamp(width, dsp.ReverbMinWidth, dsp.ReverbMaxWidth)
	}
	if mask&SetLevel != 0 {
		d.level = clamp(level, dsp.ReverbMinLevel, dsp.ReverbMaxLevel)
	}
	d.update()
}

// Reset implements Model.
func (d *Dattorro) Reset() {
	d.predelay.Fill(0)
	d.predelay.SetSingleTapPosition(0)
	d.bandwidth.Reset()

	for _, ap := range d.inputAp {
		ap.Reset()
	}
	for i := 0; i < 4; i++ {
		d.tankAp[i].Reset()
		d.tankDelay[i].Fill(0)
		// Pushing one zero through the cleared line also zeroes its cached
		// LastOutput, which the tank cross-feed reads on the next sample.
		d.tankDelay[i].Process(0)
		d.tankDelay[i].SetSingleTapPosition(0)
	}
	d.tankDamp[0].Reset()
	d.tankDamp[1].Reset()
}

// SamplerateChange implements Model: Dattorro accepts any positive
// rate and reallocates its buffers.
func (d *Dattorro) SamplerateChange(sampleRate float64) error {
	if sampleRate <= 0 {
		return errSampleRate
	}
	d.sampleRate = sampleRate
	d.setupBuffers(sampleRate)
	return nil
}

func (d *Dattorro) processSample(in float32) (outL, outR float32) {
	x := in * dattorroTrim
	p := d.predelay.Process(x)
	b := d.bandwidth.Process(p)

	s := b
	for _, ap := range d.inputAp {
		s = ap.Process(s)
	}

	decay := float32(d.decay)

	td3Prev := d.tankDelay[3].LastOutput()
	td1Prev := d.tankDelay[1].LastOutput()
	left := s + decay*td3Prev
	left = d.tankAp[0].Process(left)
	left = d.tankDelay[0].Process(left)
	dampL := d.tankDamp[0].Process(left)
	left = d.tankAp[1].Process(decay * dampL)
	left = d.tankDelay[1].Process(left)

	right := s + decay*td1Prev
	right = d.tankAp[2].Process(right)
	right = d.tankDelay[2].Process(right)
	dampR := d.tankDamp[1].Process(right)
	right = d.tankAp[3].Process(decay * dampR)
	right = d.tankDelay[3].Process(right)

	t := d.tapLeft
	outLeft := d.tankDelay[2].ReadTap(t[0]) + d.tankDelay[2].ReadTap(t[1]) -
		d.tankAp[3].Delay.ReadTap(t[2]) + d.tankDelay[3].ReadTap(t[3]) -
		d.tankDelay[0].ReadTap(t[4]) - d.tankAp[1].Delay.ReadTap(t[5]) -
		d.tankDelay[1].ReadTap(t[6])

	u := d.tapRight
	outRight := d.tankDelay[0].ReadTap(u[0]) + d.tankDelay[0].ReadTap(u[1]) -
		d.tankAp[1].Delay.ReadTap(u[2]) + d.tankDelay[1].ReadTap(u[3]) -
		d.tankDelay[2].ReadTap(u[4]) - d.tankAp[3].Delay.ReadTap(u[5]) -
		d.tankDelay[3].ReadTap(u[6])

	return outLeft, outRight
}

// ProcessMix implements Model.
func (d *Dattorro) ProcessMix(in []float32, left, right []float32) {
	wet1, wet2 := float32(d.wet1), float32(d.wet2)
	for i := range in {
		outL, outR := d.processSample(in[i])
		left[i] += outL*wet1 + outR*wet2
		right[i] += outR*wet1 + outL*wet2
	}
}

// ProcessReplace implements Model.
func (d *Dattorro) ProcessReplace(in []float32, left, right []float32) {
	wet1, wet2 := float32(d.wet1), float32(d.wet2)
	for i := range in {
		outL, outR := d.processSample(in[i])
		left[i] = outL*wet1 + outR*wet2
		right[i] = outR*wet1 + outL*wet2
	}
}
