package reverb

import (
	"math"
	"testing"
)

func newFreeverbT(t *testing.T, sr float64) *Freeverb {
	t.Helper()
	f, err := NewFreeverb(sr)
	if err != nil {
		t.Fatalf("NewFreeverb(%v): %v", sr, err)
	}
	return f
}

func TestFreeverbSilenceStaysSilent(t *testing.T) {
	f := newFreeverbT(t, 44100)
	in := make([]float32, BlockSize)
	left := make([]float32, BlockSize)
	right := make([]float32, BlockSize)

	f.ProcessReplace(in, left, right)
	// The DC-offset denormal guard leaves a tiny constant in the output
	// rather than exact zero.
	for i := range left {
		if math.Abs(float64(left[i])) > 1e-5 || math.Abs(float64(right[i])) > 1e-5 {
			t.Fatalf("silent input produced output above 1e-5 at %d: %v %v", i, left[i], right[i])
		}
	}
}

func TestFreeverbImpulseProducesTail(t *testing.T) {
	f := newFreeverbT(t, 44100)
	in := make([]float32, BlockSize)
	in[0] = 1.0
	left := make([]float32, BlockSize)
	right := make([]float32, BlockSize)
	f.ProcessReplace(in, left, right)

	silentIn := make([]float32, BlockSize)
	hasEnergy := false
	for block := 0; block < 50; block++ {
		f.ProcessReplace(silentIn, left, right)
		for i := range left {
			if math.Abs(float64(left[i])) > 1e-5 || math.Abs(float64(right[i])) > 1e-5 {
				hasEnergy = true
			}
			if math.IsNaN(float64(left[i])) || math.IsNaN(float64(right[i])) {
				t.Fatalf("reverb tail produced NaN")
			}
		}
	}
	if !hasEnergy {
		t.Fatal("expected a non-zero reverb tail after an impulse")
	}
}

func TestFreeverbResetSilencesTail(t *testing.T) {
	f := newFreeverbT(t, 44100)
	in := make([]float32, BlockSize)
	in[0] = 1.0
	left := make([]float32, BlockSize)
	right := make([]float32, BlockSize)
	for i := 0; i < 20; i++ {
		f.ProcessReplace(in, left, right)
		in[0] = 0
	}

	f.Reset()

	silentIn := make([]float32, BlockSize)
	f.ProcessReplace(silentIn, left, right)
	for i := range left {
		if math.Abs(float64(left[i])) > 1e-5 || math.Abs(float64(right[i])) > 1e-5 {
			t.Fatalf("output after Reset should be within 1e-5 of silence, got %v/%v at %d", left[i], right[i], i)
		}
	}
}

func TestFreeverbSetParamsClamps(t *testing.T) {
	f := newFreeverbT(t, 44100)
	f.SetParams(SetAll, 5, -5, 200, -5)
	if f.roomsize != 1 {
		t.Errorf("roomsize = %v, want clamped to 1", f.roomsize)
	}
	if f.damping != 0 {
		t.Errorf("damping = %v, want clamped to 0", f.damping)
	}
	if f.width != 100 {
		t.Errorf("width = %v, want clamped to 100", f.width)
	}
	if f.level != 0 {
		t.Errorf("level = %v, want clamped to 0", f.level)
	}
}

func TestFreeverbSetParamsMaskLeavesOthersUntouched(t *testing.T) {
	f := newFreeverbT(t, 44100)
	f.SetParams(SetAll, 0.3, 0.4, 0.5, 0.6)
	f.SetParams(SetRoomsize, 0.9, 99, 99, 99)
	if f.roomsize != 0.9 {
		t.Errorf("roomsize = %v, want 0.9", f.roomsize)
	}
	if f.damping != 0.4 || f.width != 0.5 || f.level != 0.6 {
		t.Fatalf("unmasked params changed: damping=%v width=%v level=%v", f.damping, f.width, f.level)
	}
}

func TestFreeverbSamplerateChangeRescalesDelays(t *testing.T) {
	f := newFreeverbT(t, 44100)
	base := f.combL[0].Delay.Len()

	if err := f.SamplerateChange(88200); err != nil {
		t.Fatalf("SamplerateChange: %v", err)
	}
	got := f.combL[0].Delay.Len()
	want := int(float64(freeverbCombTuningL[0]) * 2.0)
	if got != want {
		t.Errorf("comb 0 length at 88200Hz = %d, want %d (base was %d)", got, want, base)
	}
}

func TestFreeverbSamplerateChangeRejectsNonPositive(t *testing.T) {
	f := newFreeverbT(t, 44100)
	if err := f.SamplerateChange(0); err == nil {
		t.Fatal("expected error for non-positive sample rate")
	}
}

func TestFreeverbWidthZeroNarrowsStereoImage(t *testing.T) {
	f := newFreeverbT(t, 44100)
	f.SetParams(SetWidth, 0, 0, 0, 0)

	in := make([]float32, BlockSize)
	in[0] = 1.0
	left := make([]float32, BlockSize)
	right := make([]float32, BlockSize)
	maxDiff := float32(0)
	for block := 0; block < 20; block++ {
		f.ProcessReplace(in, left, right)
		in[0] = 0
		for i := range left {
			d := left[i] - right[i]
			if d < 0 {
				d = -d
			}
			if d > maxDiff {
				maxDiff = d
			}
		}
	}
	if maxDiff > 1e-5 {
		t.Errorf("width=0 should produce a near-mono image, max |L-R| = %v", maxDiff)
	}
}

func BenchmarkFreeverbProcessReplace(b *testing.B) {
	f, _ := NewFreeverb(44100)
	in := make([]float32, BlockSize)
	left := make([]float32, BlockSize)
	right := make([]float32, BlockSize)
	for i := range in {
		in[i] = float32(i%100) / 100.0
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.ProcessReplace(in, left, right)
	}
}
