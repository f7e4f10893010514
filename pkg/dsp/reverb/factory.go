package reverb

import (
	"fmt"

	"github.com/justyntemme/goreverb/pkg/dsp/reverblog"
)

// Type selects which reverb topology NewModel constructs.
type Type int

const (
	// Freeverb selects the parallel-comb/series-allpass topology.
	FREEVERB Type = iota
	// LEXVERB selects the cross-coupled allpass-cascade topology.
	LEXVERB
	// FDN selects the Dattorro plate topology. The name mirrors the
	// selector used by hosts that also offer generic feedback-delay-
	// network variants; this core only ships the Dattorro plate under it.
	FDN
)

// String returns the selector's name.
func (t Type) String() string {
	switch t {
	case FREEVERB:
		return "FREEVERB"
	case LEXVERB:
		return "LEXVERB"
	case FDN:
		return "FDN"
	default:
		return "UNKNOWN"
	}
}

// NewModel constructs a Model of the given type at sampleRate, or
// returns a nil Model and an error if construction fails (invalid
// sample rate, or an unrecognized type). No partially-initialized
// model is ever returned.
func NewModel(sampleRate float64, modelType Type) (Model, error) {
	var (
		model Model
		err   error
	)
	switch modelType {
	case FREEVERB:
		model, err = NewFreeverb(sampleRate)
	case LEXVERB:
		model, err = NewLexverb(sampleRate)
	case FDN:
		model, err = NewDattorro(sampleRate)
	default:
		err = fmt.Errorf("reverb: unknown model type %v", modelType)
	}
	if err != nil {
		reverblog.Default().Error("construction failed for %v: %v", modelType, err)
		return nil, err
	}
	return model, nil
}

// ProcessMix forwards to model.ProcessMix, converting any panic raised
// inside the model into a logged no-op. Host audio threads must never
// observe an exception unwinding through this boundary.
func ProcessMix(model Model, in []float32, left, right []float32) {
	defer recoverAndLog("process_mix")
	model.ProcessMix(in, left, right)
}

// ProcessReplace forwards to model.ProcessReplace with the same panic
// shielding as ProcessMix.
func ProcessReplace(model Model, in []float32, left, right []float32) {
	defer recoverAndLog("process_replace")
	model.ProcessReplace(in, left, right)
}

// ResetModel forwards to model.Reset with panic shielding.
func ResetModel(model Model) {
	defer recoverAndLog("reset")
	model.Reset()
}

// SetModelParams forwards to model.SetParams with panic shielding.
func SetModelParams(model Model, mask ParamMask, roomsize, damping, width, level float64) {
	defer recoverAndLog("set_params")
	model.SetParams(mask, roomsize, damping, width, level)
}

// ChangeSamplerate forwards to model.SamplerateChange, converting both
// a returned error and a recovered panic into the same failure report.
func ChangeSamplerate(model Model, sampleRate float64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			reverblog.Default().Error("samplerate_change panicked: %v", r)
			err = fmt.Errorf("reverb: internal exception during samplerate_change: %v", r)
		}
	}()
	return model.SamplerateChange(sampleRate)
}

func recoverAndLog(op string) {
	if r := recover(); r != nil {
		reverblog.Default().Error("%s panicked: %v", op, r)
	}
}
