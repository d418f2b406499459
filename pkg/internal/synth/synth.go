// Package synth generates deterministic synthetic photoplethysmograms for tests and
// demos.
package synth

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/joeydtaylor/ppglab/pkg/internal/types"
)

// Pulse shape: a systolic and a dicrotic Gaussian on the beat phase.
const (
	systolicPhase = 0.2
	systolicWidth = 0.07
	dicroticPhase = 0.5
	dicroticWidth = 0.1
)

// DefaultDicrotic is the dicrotic wave height relative to the systolic peak.
const DefaultDicrotic = 0.35

// PPGOptions describes one synthetic channel.
type PPGOptions struct {
	SampleRate   float64
	Duration     float64
	HeartRateBPM float64
	DC           float64
	AC           float64
	Dicrotic     float64
	// WanderAmplitude and WanderHz add a sinusoidal baseline drift.
	WanderAmplitude float64
	WanderHz        float64
	// MainsAmplitude and MainsHz add power-line interference.
	MainsAmplitude float64
	MainsHz        float64
	NoiseStd       float64
	Seed           int64
}

// DefaultPPGOptions returns 30 s of a 72 bpm pulse sampled at 100 Hz.
func DefaultPPGOptions() PPGOptions {
	return PPGOptions{
		SampleRate:   100,
		Duration:     30,
		HeartRateBPM: 72,
		DC:           1000,
		AC:           20,
		Dicrotic:     DefaultDicrotic,
		Seed:         1,
	}
}

// Pulse returns the normalized pulse shape at beat phase in [0, 1).
func Pulse(phase, dicrotic float64) float64 {
	s := (phase - systolicPhase) / systolicWidth
	d := (phase - dicroticPhase) / dicroticWidth
	return math.Exp(-0.5*s*s) + dicrotic*math.Exp(-0.5*d*d)
}

// Samples renders the channel as raw samples.
func (o PPGOptions) Samples() ([]float64, error) {
	if !(o.SampleRate > 0) || !(o.Duration > 0) || !(o.HeartRateBPM > 0) {
		return nil, fmt.Errorf("%w: synthetic PPG needs positive rate, duration and heart rate", types.ErrStructuralInput)
	}
	n := int(o.SampleRate * o.Duration)
	period := 60 / o.HeartRateBPM
	rng := rand.New(rand.NewSource(o.Seed))

	x := make([]float64, n)
	for i := range x {
		t := float64(i) / o.SampleRate
		phase := math.Mod(t, period) / period
		v := o.DC + o.AC*Pulse(phase, o.Dicrotic)
		if o.WanderAmplitude != 0 {
			v += o.WanderAmplitude * math.Sin(2*math.Pi*o.WanderHz*t)
		}
		if o.MainsAmplitude != 0 {
			v += o.MainsAmplitude * math.Sin(2*math.Pi*o.MainsHz*t)
		}
		if o.NoiseStd != 0 {
			v += o.NoiseStd * rng.NormFloat64()
		}
		x[i] = v
	}
	return x, nil
}

// PPG renders the channel as a Waveform.
func PPG(o PPGOptions) (types.Waveform, error) {
	x, err := o.Samples()
	if err != nil {
		return types.Waveform{}, err
	}
	return types.NewWaveform(x, o.SampleRate)
}

// DualPPG renders a RED/IR pair whose per-beat ratio-of-ratios is r. IR uses o as
// given; RED shares the pulse timing and scales its AC so that
// (ACred/DCred)/(ACir/DCir) = r. The noise streams differ between channels.
func DualPPG(o PPGOptions, redDC, r float64) (types.DualChannelFrame, error) {
	ir, err := PPG(o)
	if err != nil {
		return types.DualChannelFrame{}, err
	}
	redOpts := o
	redOpts.DC = redDC
	redOpts.AC = r * o.AC / o.DC * redDC
	redOpts.Seed = o.Seed + 1
	red, err := PPG(redOpts)
	if err != nil {
		return types.DualChannelFrame{}, err
	}
	return types.NewDualChannelFrame(red, ir)
}

// PeakTimes returns the systolic peak times of a channel rendered from o.
func (o PPGOptions) PeakTimes() []float64 {
	period := 60 / o.HeartRateBPM
	var out []float64
	for t := systolicPhase * period; t < o.Duration; t += period {
		out = append(out, t)
	}
	return out
}

// Sine renders amplitude*sin(2*pi*freq*t) + offset.
func Sine(sampleRate float64, n int, freq, amplitude, offset float64) (types.Waveform, error) {
	x := make([]float64, n)
	for i := range x {
		x[i] = offset + amplitude*math.Sin(2*math.Pi*freq*float64(i)/sampleRate)
	}
	return types.NewWaveform(x, sampleRate)
}

// Constant renders n copies of v.
func Constant(sampleRate float64, n int, v float64) (types.Waveform, error) {
	x := make([]float64, n)
	for i := range x {
		x[i] = v
	}
	return types.NewWaveform(x, sampleRate)
}
