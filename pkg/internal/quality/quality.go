// Package quality computes statistical and spectral descriptors of a waveform.
package quality

import (
	"fmt"
	"math"

	"github.com/joeydtaylor/ppglab/pkg/internal/spectral"
	"github.com/joeydtaylor/ppglab/pkg/internal/types"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Cardiac band defaults in Hz.
const (
	DefaultBandLow  = 0.5
	DefaultBandHigh = 5.0
)

// varianceFloor is the variance below which a waveform counts as constant.
const varianceFloor = 1e-24

// Options sets the in-band region of the spectral SNR.
type Options struct {
	BandLow  float64 `json:"band_low"`
	BandHigh float64 `json:"band_high"`
}

// DefaultOptions returns the 0.5-5 Hz cardiac band.
func DefaultOptions() Options {
	return Options{BandLow: DefaultBandLow, BandHigh: DefaultBandHigh}
}

// Validate checks the band edges.
func (o Options) Validate() error {
	if !(o.BandLow >= 0) || !(o.BandHigh > o.BandLow) {
		return fmt.Errorf("%w: quality band must satisfy 0 <= low < high, got [%v, %v]", types.ErrInvalidParameters, o.BandLow, o.BandHigh)
	}
	return nil
}

func available(v float64, unit string) types.Metric {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return types.Metric{Unit: unit}
	}
	return types.Metric{Value: v, Available: true, Unit: unit}
}

func unavailable(unit string) types.Metric {
	return types.Metric{Unit: unit}
}

// Assess computes every metric of w. A constant waveform yields the metrics that
// remain defined, the ratio metrics marked unavailable, and ErrDegenerateSignal.
func Assess(w types.Waveform, o Options) (types.QualityMetrics, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if w.IsZero() {
		return nil, fmt.Errorf("%w: empty waveform", types.ErrStructuralInput)
	}
	x := w.Samples()

	mean := stat.Mean(x, nil)
	variance := stat.PopVariance(x, nil)
	std := math.Sqrt(variance)
	rms := floats.Norm(x, 2) / math.Sqrt(float64(len(x)))
	lo, hi := floats.Min(x), floats.Max(x)
	ptp := hi - lo

	abs := make([]float64, len(x))
	for i, v := range x {
		abs[i] = math.Abs(v)
	}
	peak := floats.Max(abs)
	meanAbs := stat.Mean(abs, nil)

	m := types.QualityMetrics{
		types.MetricMean:       available(mean, ""),
		types.MetricStd:        available(std, ""),
		types.MetricRMS:        available(rms, ""),
		types.MetricPeakToPeak: available(ptp, ""),
	}
	if lo > 0 {
		m[types.MetricDynamicRange] = available(20*math.Log10(hi/lo), "dB")
	} else {
		m[types.MetricDynamicRange] = available(ptp, "linear")
	}

	if variance <= varianceFloor {
		for _, name := range []string{
			types.MetricCrestFactor, types.MetricShapeFactor, types.MetricImpulseFactor,
			types.MetricSkewness, types.MetricKurtosis, types.MetricQuickSNR,
		} {
			m[name] = unavailable("")
		}
		m[types.MetricSNR] = unavailable("dB")
		return m, fmt.Errorf("%w: waveform has zero variance", types.ErrDegenerateSignal)
	}

	m[types.MetricCrestFactor] = available(peak/rms, "")
	m[types.MetricShapeFactor] = available(rms/meanAbs, "")
	m[types.MetricImpulseFactor] = available(peak/meanAbs, "")
	m[types.MetricSkewness] = available(stat.Skew(x, nil), "")
	m[types.MetricKurtosis] = available(stat.ExKurtosis(x, nil), "")
	m[types.MetricQuickSNR] = available(ptp/(6*std), "")
	m[types.MetricSNR] = spectralSNR(x, w.SampleRate(), o)
	return m, nil
}

// spectralSNR compares Welch power inside the band with the power outside it. The DC
// bin is left out of both sums.
func spectralSNR(x []float64, fs float64, o Options) types.Metric {
	centered := make([]float64, len(x))
	copy(centered, x)
	floats.AddConst(-stat.Mean(x, nil), centered)

	spec, err := spectral.Welch(centered, fs, spectral.Options{})
	if err != nil {
		return unavailable("dB")
	}
	var in, out float64
	for i, f := range spec.Frequencies {
		if i == 0 {
			continue
		}
		if f >= o.BandLow && f <= o.BandHigh {
			in += spec.Density[i]
		} else {
			out += spec.Density[i]
		}
	}
	if !(in > 0) || !(out > 0) {
		return unavailable("dB")
	}
	return available(10*math.Log10(in/out), "dB")
}
