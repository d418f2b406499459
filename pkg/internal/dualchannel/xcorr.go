package dualchannel

import (
	"math"

	"github.com/joeydtaylor/ppglab/pkg/internal/types"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// zEpsilon regularizes the z-score of a flat channel.
const zEpsilon = 1e-12

func zscore(x []float64) []float64 {
	mean := stat.Mean(x, nil)
	std := math.Sqrt(stat.PopVariance(x, nil)) + zEpsilon
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = (v - mean) / std
	}
	return out
}

// crossCorrelation correlates the z-scored channels over lags in [-maxLag, maxLag].
// A positive lag means red trails IR. Each lag is normalized by its overlap.
func crossCorrelation(red, ir types.Waveform, maxLagSeconds float64) types.CrossCorrelation {
	x, y := zscore(red.Samples()), zscore(ir.Samples())
	n := len(x)
	fs := red.SampleRate()

	maxLag := int(maxLagSeconds * fs)
	if maxLag > n-1 {
		maxLag = n - 1
	}
	if maxLag < 0 {
		maxLag = 0
	}

	out := types.CrossCorrelation{
		Lags:        make([]float64, 0, 2*maxLag+1),
		Correlation: make([]float64, 0, 2*maxLag+1),
		Peak:        math.Inf(-1),
	}
	for lag := -maxLag; lag <= maxLag; lag++ {
		var c float64
		if lag >= 0 {
			c = floats.Dot(x[lag:], y[:n-lag])
		} else {
			c = floats.Dot(x[:n+lag], y[-lag:])
		}
		c /= float64(n - abs(lag))
		out.Lags = append(out.Lags, float64(lag)/fs)
		out.Correlation = append(out.Correlation, c)
		if c > out.Peak {
			out.Peak, out.LagSamples = c, lag
		}
	}
	out.LagSeconds = float64(out.LagSamples) / fs
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
