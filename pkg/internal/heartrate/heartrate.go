// Package heartrate turns peak timestamps into instantaneous and smoothed heart-rate
// trends plus inter-beat variability statistics.
package heartrate

import (
	"fmt"
	"math"

	"github.com/joeydtaylor/ppglab/pkg/internal/spectral"
	"github.com/joeydtaylor/ppglab/pkg/internal/types"
	"github.com/joeydtaylor/ppglab/pkg/internal/utils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Physiological defaults in beats per minute.
const (
	DefaultHRMin       = 40.0
	DefaultHRMax       = 180.0
	DefaultWindowBeats = 5
)

// minInterval keeps 60/IBI finite for coincident peaks.
const minInterval = 1e-6

// Window sizes the centered median smoother. Seconds takes precedence when positive.
type Window struct {
	Beats   int     `json:"beats,omitempty"`
	Seconds float64 `json:"seconds,omitempty"`
}

// Options bounds plausible rates and sizes the smoother.
type Options struct {
	HRMin  float64 `json:"hr_min"`
	HRMax  float64 `json:"hr_max"`
	Window Window  `json:"window"`
}

// DefaultOptions returns 40-180 bpm with a 5-beat median window.
func DefaultOptions() Options {
	return Options{HRMin: DefaultHRMin, HRMax: DefaultHRMax, Window: Window{Beats: DefaultWindowBeats}}
}

// Validate checks the rate bounds and the window.
func (o Options) Validate() error {
	if !(o.HRMin > 0) || !(o.HRMax > o.HRMin) {
		return fmt.Errorf("%w: heart-rate bounds must satisfy 0 < min < max, got [%v, %v]", types.ErrInvalidParameters, o.HRMin, o.HRMax)
	}
	if o.Window.Seconds < 0 || o.Window.Beats < 0 {
		return fmt.Errorf("%w: smoothing window must not be negative", types.ErrInvalidParameters)
	}
	return nil
}

// Plausible reports whether bpm lies inside [HRMin, HRMax].
func (o Options) Plausible(bpm float64) bool {
	return bpm >= o.HRMin && bpm <= o.HRMax
}

// Estimate builds the raw and smoothed trends from strictly increasing peak times in
// seconds. Implausible beats stay in the raw trend and are left out of everything else.
func Estimate(peakTimes []float64, o Options) (types.HeartRateResult, error) {
	if err := o.Validate(); err != nil {
		return types.HeartRateResult{}, err
	}
	if len(peakTimes) < 2 {
		return types.HeartRateResult{}, fmt.Errorf("%w: need at least 2 peaks, got %d", types.ErrInsufficientBeats, len(peakTimes))
	}

	raw := make([]types.RatePoint, 0, len(peakTimes)-1)
	implausible := 0
	for i := 1; i < len(peakTimes); i++ {
		ibi := math.Max(peakTimes[i]-peakTimes[i-1], minInterval)
		bpm := 60 / ibi
		ok := o.Plausible(bpm)
		if !ok {
			implausible++
		}
		raw = append(raw, types.RatePoint{Time: peakTimes[i], BPM: bpm, IBI: ibi, Plausible: ok})
	}

	valid := utils.Filter(raw, func(p types.RatePoint) bool { return p.Plausible })
	return types.HeartRateResult{
		Raw:         raw,
		Smoothed:    smooth(valid, o.Window),
		Implausible: implausible,
		Variability: variability(raw),
	}, nil
}

// smooth replaces each plausible rate with the median of its centered window.
func smooth(points []types.RatePoint, win Window) []types.RatePoint {
	out := make([]types.RatePoint, 0, len(points))
	half := win.Beats / 2
	if win.Beats <= 0 {
		half = DefaultWindowBeats / 2
	}
	for j, p := range points {
		var lo, hi int
		if win.Seconds > 0 {
			lo, hi = j, j
			for lo > 0 && p.Time-points[lo-1].Time <= win.Seconds/2 {
				lo--
			}
			for hi < len(points)-1 && points[hi+1].Time-p.Time <= win.Seconds/2 {
				hi++
			}
		} else {
			lo, hi = max(0, j-half), min(len(points)-1, j+half)
		}
		rates := utils.MapTo(points[lo:hi+1], func(r types.RatePoint) float64 { return r.BPM })
		bpm := utils.Median(rates)
		out = append(out, types.RatePoint{Time: p.Time, BPM: bpm, IBI: 60 / bpm, Plausible: true})
	}
	return out
}

// variability summarizes the plausible beats of raw. Successive differences and
// Poincare pairs only use intervals that were adjacent in raw, so a dropped beat
// never joins its neighbours.
func variability(raw []types.RatePoint) types.Variability {
	points := utils.Filter(raw, func(p types.RatePoint) bool { return p.Plausible })
	v := types.Variability{Beats: len(points), Poincare: []types.PoincarePoint{}}
	if len(points) == 0 {
		return v
	}
	ibi := utils.MapTo(points, func(r types.RatePoint) float64 { return r.IBI * 1000 })

	v.MeanIBIMs = stat.Mean(ibi, nil)
	v.MeanBPM = 60000 / v.MeanIBIMs
	v.SDNNMs = math.Sqrt(stat.PopVariance(ibi, nil))

	var succ []float64
	for i := 1; i < len(raw); i++ {
		if !raw[i-1].Plausible || !raw[i].Plausible {
			continue
		}
		succ = append(succ, (raw[i].IBI-raw[i-1].IBI)*1000)
		v.Poincare = append(v.Poincare, types.PoincarePoint{Current: raw[i-1].IBI, Next: raw[i].IBI})
	}
	if len(succ) == 0 {
		return v
	}
	v.RMSSDMs = floats.Norm(succ, 2) / math.Sqrt(float64(len(succ)))
	v.SDSDMs = math.Sqrt(stat.PopVariance(succ, nil))
	v.SD1Ms = v.SDSDMs / math.Sqrt2
	v.SD2Ms = math.Sqrt(math.Max(0, 2*v.SDNNMs*v.SDNNMs-v.SD1Ms*v.SD1Ms))
	return v
}

// SpectralRate returns the dominant pulse rate of w in bpm, taken from the Welch
// density peak inside [HRMin, HRMax]/60 Hz after mean removal.
func SpectralRate(w types.Waveform, o Options) (float64, error) {
	if err := o.Validate(); err != nil {
		return 0, err
	}
	spec, err := spectral.Welch(w.Samples(), w.SampleRate(), spectral.Options{})
	if err != nil {
		return 0, err
	}
	f, ok := spec.PeakIn(o.HRMin/60, o.HRMax/60)
	if !ok || f == 0 {
		return 0, fmt.Errorf("%w: no spectral bin inside the cardiac band", types.ErrInsufficientSamples)
	}
	return 60 * f, nil
}
