// Package peaks finds local maxima and minima of a waveform under a minimum
// spacing constraint.
package peaks

import (
	"fmt"
	"math"
	"sort"

	"github.com/joeydtaylor/ppglab/pkg/internal/types"
	"github.com/joeydtaylor/ppglab/pkg/internal/utils"
	"gonum.org/v1/gonum/stat"
)

// Detector defaults.
const (
	DefaultHRMax           = 180.0
	DefaultThresholdFactor = 0.5
	// madScale turns a median absolute deviation into a normal-consistent sigma.
	madScale = 1.4826
)

// Options controls DetectExtrema.
type Options struct {
	// MinDistance is the minimum spacing between kept extrema of one kind, in
	// samples. Values below 1 mean 1.
	MinDistance int
	// HeightThreshold discards peaks below it. Nil selects the adaptive threshold.
	HeightThreshold *float64
	// TroughThreshold discards troughs above it. Nil selects the adaptive threshold.
	TroughThreshold *float64
	// ThresholdFactor scales the robust spread in the adaptive threshold
	// median + factor*1.4826*MAD. Zero disables adaptive thresholding.
	ThresholdFactor float64
	// ProminenceFactor sets a minimum prominence of factor*std. Zero disables it.
	ProminenceFactor float64
	// SkipTroughs limits detection to peaks.
	SkipTroughs bool
}

// DefaultOptions returns the detector defaults for a sampling rate.
func DefaultOptions(sampleRate float64) Options {
	return Options{
		MinDistance:     MinDistanceFor(sampleRate, DefaultHRMax),
		ThresholdFactor: DefaultThresholdFactor,
	}
}

// MinDistanceFor converts a ceiling heart rate into a minimum peak spacing in samples.
func MinDistanceFor(sampleRate, hrMax float64) int {
	if !(hrMax > 0) || !(sampleRate > 0) {
		return 1
	}
	d := int(math.Floor(sampleRate * 60 / hrMax))
	if d < 1 {
		return 1
	}
	return d
}

// DetectExtrema returns peaks and troughs of w in increasing index order. Finding
// nothing is not an error.
func DetectExtrema(w types.Waveform, o Options) (types.ExtremaSet, error) {
	if w.IsZero() {
		return types.ExtremaSet{}, fmt.Errorf("%w: empty waveform", types.ErrStructuralInput)
	}
	x := w.Samples()

	var items []types.Extremum
	for _, c := range find(x, o, o.HeightThreshold) {
		items = append(items, types.Extremum{
			Index: c.index, Kind: types.PeakKind, Time: w.TimeAt(c.index),
			Value: x[c.index], Prominence: c.prominence,
		})
	}

	if !o.SkipTroughs {
		neg := make([]float64, len(x))
		for i, v := range x {
			neg[i] = -v
		}
		var height *float64
		if o.TroughThreshold != nil {
			h := -*o.TroughThreshold
			height = &h
		}
		for _, c := range find(neg, o, height) {
			items = append(items, types.Extremum{
				Index: c.index, Kind: types.TroughKind, Time: w.TimeAt(c.index),
				Value: x[c.index], Prominence: c.prominence,
			})
		}
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].Index < items[j].Index })
	return types.ExtremaSet{Items: items}, nil
}

type candidate struct {
	index      int
	prominence float64
}

// find runs the maxima scan, thresholds and distance suppression on x.
func find(x []float64, o Options, height *float64) []candidate {
	threshold := math.Inf(-1)
	switch {
	case height != nil:
		threshold = *height
	case o.ThresholdFactor > 0:
		threshold = utils.Median(x) + o.ThresholdFactor*madScale*utils.MAD(x)
	}

	var minProm float64
	if o.ProminenceFactor > 0 {
		minProm = o.ProminenceFactor * math.Sqrt(stat.PopVariance(x, nil))
	}

	var cands []candidate
	for _, idx := range localMaxima(x) {
		if x[idx] < threshold {
			continue
		}
		prom := prominence(x, idx)
		if prom < minProm {
			continue
		}
		cands = append(cands, candidate{index: idx, prominence: prom})
	}
	return suppress(cands, o.MinDistance)
}

// localMaxima returns strict local maxima, taking the midpoint of flat tops.
func localMaxima(x []float64) []int {
	var out []int
	n := len(x)
	for i := 1; i < n-1; i++ {
		if !(x[i-1] < x[i]) {
			continue
		}
		ahead := i + 1
		for ahead < n-1 && x[ahead] == x[i] {
			ahead++
		}
		if x[ahead] < x[i] {
			out = append(out, (i+ahead-1)/2)
			i = ahead - 1
		}
	}
	return out
}

// prominence measures how far a peak rises above the higher of its two bases, where
// each base is the minimum reached before the signal climbs above the peak.
func prominence(x []float64, peak int) float64 {
	h := x[peak]
	leftMin := h
	for i := peak; i >= 0 && x[i] <= h; i-- {
		if x[i] < leftMin {
			leftMin = x[i]
		}
	}
	rightMin := h
	for i := peak; i < len(x) && x[i] <= h; i++ {
		if x[i] < rightMin {
			rightMin = x[i]
		}
	}
	return h - math.Max(leftMin, rightMin)
}

// suppress keeps the more prominent of any two candidates closer than distance;
// equal prominence keeps the lower index.
func suppress(cands []candidate, distance int) []candidate {
	if distance <= 1 || len(cands) < 2 {
		return cands
	}
	order := make([]int, len(cands))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return cands[order[a]].prominence > cands[order[b]].prominence
	})

	keep := make([]bool, len(cands))
	for i := range keep {
		keep[i] = true
	}
	for _, j := range order {
		if !keep[j] {
			continue
		}
		for k := j - 1; k >= 0 && cands[j].index-cands[k].index < distance; k-- {
			keep[k] = false
		}
		for k := j + 1; k < len(cands) && cands[k].index-cands[j].index < distance; k++ {
			keep[k] = false
		}
	}

	out := cands[:0:0]
	for i, c := range cands {
		if keep[i] {
			out = append(out, c)
		}
	}
	return out
}
