package filter

import (
	"fmt"
	"math"

	"github.com/joeydtaylor/ppglab/pkg/internal/types"
	"github.com/joeydtaylor/ppglab/pkg/internal/utils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Apply designs spec for the waveform's sampling rate and runs it in the given mode.
// An empty mode means zero-phase. The input waveform is never modified.
func Apply(w types.Waveform, spec types.FilterSpec, mode types.ApplyMode) (types.Waveform, error) {
	sos, err := Design(spec, w.SampleRate())
	if err != nil {
		return types.Waveform{}, err
	}
	return ApplySOS(w, sos, mode)
}

// ApplySOS runs an already designed filter over w.
func ApplySOS(w types.Waveform, sos SOS, mode types.ApplyMode) (types.Waveform, error) {
	if sos.SampleRate != w.SampleRate() {
		return types.Waveform{}, fmt.Errorf("%w: filter designed for %v Hz applied to %v Hz waveform",
			types.ErrInvalidFilterParameters, sos.SampleRate, w.SampleRate())
	}

	var (
		out []float64
		err error
	)
	switch mode {
	case "", types.ZeroPhase:
		out, err = sos.FiltFilt(w.Samples())
	case types.Causal:
		out, err = sos.Filter(w.Samples())
	default:
		return types.Waveform{}, fmt.Errorf("%w: unknown apply mode %q", types.ErrInvalidFilterParameters, mode)
	}
	if err != nil {
		return types.Waveform{}, err
	}
	return w.Derive(out), nil
}

// Notch removes a narrow band around a mains frequency with a zero-phase
// Butterworth bandstop.
func Notch(w types.Waveform, notch types.NotchSpec) (types.Waveform, error) {
	return Apply(w, notch.WithDefaults().BandstopSpec(), types.ZeroPhase)
}

// Detrend removes the mean or the least-squares line from w.
func Detrend(w types.Waveform, mode types.DetrendMode) (types.Waveform, error) {
	x := w.Samples()
	switch mode {
	case "", types.DetrendNone:
		return w.Derive(x), nil
	case types.DetrendMean:
		floats.AddConst(-stat.Mean(x, nil), x)
		return w.Derive(x), nil
	case types.DetrendLinear:
		t := make([]float64, len(x))
		for i := range t {
			t[i] = float64(i)
		}
		alpha, beta := stat.LinearRegression(t, x, nil, false)
		for i := range x {
			x[i] -= alpha + beta*t[i]
		}
		return w.Derive(x), nil
	}
	return types.Waveform{}, fmt.Errorf("%w: unknown detrend mode %q", types.ErrInvalidFilterParameters, mode)
}

// Invert flips the sign of every sample.
func Invert(w types.Waveform) types.Waveform {
	x := w.Samples()
	floats.Scale(-1, x)
	return w.Derive(x)
}

// Absorbance converts intensity to -ln(I/I0) with I0 the median intensity, falling
// back to max(mean, 1) when the median is not positive. Ratios are floored at 1e-9.
func Absorbance(w types.Waveform) types.Waveform {
	x := w.Samples()
	i0 := utils.Median(x)
	if !(i0 > 0) {
		i0 = math.Max(stat.Mean(x, nil), 1)
	}
	for i, v := range x {
		x[i] = -math.Log(math.Max(v/i0, 1e-9))
	}
	return w.Derive(x)
}

// SecondDerivative returns the second derivative per sample squared (SDPPG),
// applying a central-difference gradient twice with one-sided edges.
func SecondDerivative(w types.Waveform) types.Waveform {
	return w.Derive(gradient(gradient(w.Samples())))
}

func gradient(x []float64) []float64 {
	n := len(x)
	out := make([]float64, n)
	if n < 2 {
		return out
	}
	out[0] = x[1] - x[0]
	out[n-1] = x[n-1] - x[n-2]
	for i := 1; i < n-1; i++ {
		out[i] = (x[i+1] - x[i-1]) / 2
	}
	return out
}
