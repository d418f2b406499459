package dualchannel

import (
	"fmt"
	"math"

	"github.com/joeydtaylor/ppglab/pkg/internal/types"
	"github.com/joeydtaylor/ppglab/pkg/internal/utils"
	"gonum.org/v1/gonum/interp"
)

// beatTemplate resamples every peak-to-peak beat onto length phase points and averages
// them, so beats of different duration line up before averaging.
func beatTemplate(w types.Waveform, peaks []int, length int) (types.BeatTemplate, error) {
	if len(peaks) < 3 {
		return types.BeatTemplate{}, fmt.Errorf("%w: %d peaks give %d beats, need 2", types.ErrInsufficientBeats, len(peaks), max(0, len(peaks)-1))
	}
	x := w.Samples()
	phase := utils.Linspace(0, 1, length)

	sum := make([]float64, length)
	sumSq := make([]float64, length)
	beats := 0
	for i := 1; i < len(peaks); i++ {
		a, b := peaks[i-1], peaks[i]
		if b-a < 1 {
			continue
		}
		seg := x[a : b+1]
		var pl interp.PiecewiseLinear
		if err := pl.Fit(utils.Linspace(0, 1, len(seg)), seg); err != nil {
			return types.BeatTemplate{}, fmt.Errorf("%w: resampling beat %d: %v", types.ErrInsufficientSamples, i, err)
		}
		for k, p := range phase {
			v := pl.Predict(p)
			sum[k] += v
			sumSq[k] += v * v
		}
		beats++
	}
	if beats < 2 {
		return types.BeatTemplate{}, fmt.Errorf("%w: %d usable beats, need 2", types.ErrInsufficientBeats, beats)
	}

	out := types.BeatTemplate{Phase: phase, Mean: make([]float64, length), Std: make([]float64, length), Beats: beats}
	n := float64(beats)
	for k := range phase {
		mean := sum[k] / n
		out.Mean[k] = mean
		out.Std[k] = math.Sqrt(math.Max(0, sumSq[k]/n-mean*mean))
	}
	return out, nil
}
