package reverb

import (
	"github.com/justyntemme/goreverb/pkg/dsp"
	"github.com/justyntemme/goreverb/pkg/dsp/delay"
)

// Lexverb implements a Lexicon-style plate: two 5-stage Schroeder
// allpass cascades cross-coupled by a pair of single-sample-scaled
// delay lines, followed by a shared one-pole damping stage.
const (
	lexTrim          = 0.7
	lexScaleWetWidth = 0.2
)

type lexStage struct {
	ms   float64
	coef float32
}

var lexApStages = [10]lexStage{
	{50.00, 0.750}, {44.50, 0.720}, {37.37, 0.691}, {24.85, 0.649}, {19.31, 0.662},
	{49.60, 0.750}, {45.13, 0.720}, {35.25, 0.691}, {28.17, 0.649}, {15.59, 0.646},
}

var lexDlStages = [2]lexStage{
	{8.71, 0.646}, {12.05, 0.666},
}

func lexSamplesFromMs(ms, sampleRate float64) int {
	n := int(ms * sampleRate / 1000.0)
	if n < 1 {
		n = 1
	}
	return n
}

// Lexverb is a Model implementing the Lexverb topology.
type Lexverb struct {
	ap [10]*AllpassFilter
	dl [2]delay.Line

	dampL, dampR delay.Damping

	sampleRate float64
	roomsize   float64
	damping    float64
	width      float64
	level      float64

	wet1, wet2 float64
}

// NewLexverb constructs a Lexverb model for the given sample rate.
func NewLexverb(sampleRate float64) (*Lexverb, error) {
	if sampleRate <= 0 {
		return nil, errSampleRate
	}
	l := &Lexverb{
		sampleRate: sampleRate,
		roomsize:   0.5,
		damping:    0.5,
		width:      1.0,
		level:      1.0,
	}
	l.setupBuffers(sampleRate)
	l.update()
	return l, nil
}

func (l *Lexverb) setupBuffers(sampleRate float64) {
	for i, stage := range lexApStages {
		l.ap[i] = NewAllpassFilter(lexSamplesFromMs(stage.ms, sampleRate), AllpassSchroeder)
		l.ap[i].Feedback = stage.coef
	}
	for i, stage := range lexDlStages {
		l.dl[i].SetBuffer(lexSamplesFromMs(stage.ms, sampleRate))
		l.dl[i].Coefficient = stage.coef
	}
	l.dampL.Reset()
	l.dampR.Reset()
}

func (l *Lexverb) update() {
	roomscale := 0.5 + 0.5*l.roomsize
	wet := (l.level * roomscale) / (1 + l.width*lexScaleWetWidth)
	l.wet1, l.wet2 = wetMix(wet, l.width)
	l.dampL.SetCoeff(float32(1 - l.damping))
	l.dampR.SetCoeff(float32(1 - l.damping))
}

// SetParams implements Model.
func (l *Lexverb) SetParams(mask ParamMask, roomsize, damping, width, level float64) {
	if mask&SetRoomsize != 0 {
		l.roomsize = clamp(roomsize, dsp.ReverbMinSize, dsp.ReverbMaxSize)
	}
	if mask&SetDamping != 0 {
		l.damping = clamp(damping, dsp.ReverbMinDamp, dsp.ReverbMaxDamp)
	}
	if mask&SetWidth != 0 {
		l.width = clamp(width, dsp.ReverbMinWidth, dsp.ReverbMaxWidth)
	}
	if mask&SetLevel != 0 {
		l.level = clamp(level, dsp.ReverbMinLevel, dsp.ReverbMaxLevel)
	}
	l.update()
}

// Reset implements Model.
func (l *Lexverb) Reset() {
	for _, ap := range l.ap {
		ap.Reset()
	}
	for i := range l.dl {
		l.dl[i].Fill(0)
		l.dl[i].SetSingleTapPosition(0)
	}
	l.dampL.Reset()
	l.dampR.Reset()
}

// SamplerateChange implements Model: Lexverb never supports this, per
// its documented source-revision inconsistency around damping
// coefficients under rate changes.
func (l *Lexverb) SamplerateChange(sampleRate float64) error {
	return errUnsupportedRateChange
}

func (l *Lexverb) processSample(x float32) (outL, outR float32) {
	trimmed := x * lexTrim

	ap4Prev := l.ap[4].LastOutput()
	ap9Prev := l.ap[9].LastOutput()

	left := l.ap[0].Process(trimmed)
	left = l.ap[1].Process(left)
	cross1 := l.dl[1].Process(ap9Prev) * l.dl[1].Coefficient
	left = l.ap[2].Process(left + cross1)
	left = l.ap[3].Process(left)
	left = l.ap[4].Process(left)

	right := l.ap[5].Process(trimmed)
	right = l.ap[6].Process(right)
	cross0 := l.dl[0].Process(ap4Prev) * l.dl[0].Coefficient
	right = l.ap[7].Process(right + cross0)
	right = l.ap[8].Process(right)
	right = l.ap[9].Process(right)

	if l.damping > 0 {
		left = l.dampL.Process(left)
		right = l.dampR.Process(right)
	}

	return left, right
}

// ProcessMix implements Model.
func (l *Lexverb) ProcessMix(in []float32, left, right []float32) {
	wet1, wet2 := float32(l.wet1), float32(l.wet2)
	for i := range in {
		outL, outR := l.processSample(in[i])
		left[i] += outL*wet1 + outR*wet2
		right[i] += outR*wet1 + outL*wet2
	}
}

// ProcessReplace implements Model.
func (l *Lexverb) ProcessReplace(in []float32, left, right []float32) {
	wet1, wet2 := float32(l.wet1), float32(l.wet2)
	for i := range in {
		outL, outR := l.processSample(in[i])
		left[i] = outL*wet1 + outR*wet2
		right[i] = outR*wet1 + outL*wet2
	}
}
