package builder

import (
	"github.com/joeydtaylor/ppglab/pkg/internal/filter"
	"github.com/joeydtaylor/ppglab/pkg/internal/heartrate"
	"github.com/joeydtaylor/ppglab/pkg/internal/peaks"
	"github.com/joeydtaylor/ppglab/pkg/internal/quality"
	"github.com/joeydtaylor/ppglab/pkg/internal/spectral"
	"github.com/joeydtaylor/ppglab/pkg/internal/synth"
	"github.com/joeydtaylor/ppglab/pkg/internal/utils"
)

// Engine-level types for callers that run stages on their own.
type (
	SOS            = filter.SOS
	PeakOptions    = peaks.Options
	QualityOptions = quality.Options
	WelchOptions   = spectral.Options
	Spectrum       = spectral.Spectrum
	PPGOptions     = synth.PPGOptions
)

// Map applies a function to each element in the slice.
func Map[T any](elems []T, f func(T) T) []T {
	return utils.Map[T](elems, f)
}

// Filter returns a new slice holding only the elements of elems that satisfy f().
func Filter[T any](elems []T, f func(T) bool) []T {
	return utils.Filter[T](elems, f)
}

// DesignFilter turns a spec into second-order sections for one sampling rate.
func DesignFilter(spec FilterSpec, sampleRate float64) (SOS, error) {
	return filter.Design(spec, sampleRate)
}

// ApplyFilter designs and applies spec to w.
func ApplyFilter(w Waveform, spec FilterSpec, mode ApplyMode) (Waveform, error) {
	return filter.Apply(w, spec, mode)
}

// ApplySOS runs already designed sections over w.
func ApplySOS(w Waveform, sos SOS, mode ApplyMode) (Waveform, error) {
	return filter.ApplySOS(w, sos, mode)
}

// Notch removes a mains component with a zero-phase bandstop.
func Notch(w Waveform, notch NotchSpec) (Waveform, error) {
	return filter.Notch(w, notch)
}

// Detrend removes the mean or the least-squares line.
func Detrend(w Waveform, mode DetrendMode) (Waveform, error) {
	return filter.Detrend(w, mode)
}

// Invert flips the sign of every sample.
func Invert(w Waveform) Waveform {
	return filter.Invert(w)
}

// SecondDerivative returns the SDPPG of w.
func SecondDerivative(w Waveform) Waveform {
	return filter.SecondDerivative(w)
}

// DefaultPeakOptions returns the detector defaults for a sampling rate.
func DefaultPeakOptions(sampleRate float64) PeakOptions {
	return peaks.DefaultOptions(sampleRate)
}

// DetectExtrema finds systolic peaks and diastolic troughs.
func DetectExtrema(w Waveform, o PeakOptions) (ExtremaSet, error) {
	return peaks.DetectExtrema(w, o)
}

// DefaultHeartRateOptions returns 40-180 bpm with a 5-beat median.
func DefaultHeartRateOptions() HeartRateOptions {
	return heartrate.DefaultOptions()
}

// EstimateHeartRate derives the rate trend and variability from peak times.
func EstimateHeartRate(peakTimes []float64, o HeartRateOptions) (HeartRateResult, error) {
	return heartrate.Estimate(peakTimes, o)
}

// SpectralHeartRate returns the dominant in-band rate of w in bpm.
func SpectralHeartRate(w Waveform, o HeartRateOptions) (float64, error) {
	return heartrate.SpectralRate(w, o)
}

// DefaultQualityOptions returns the 0.5-5 Hz cardiac band.
func DefaultQualityOptions() QualityOptions {
	return quality.DefaultOptions()
}

// AssessQuality computes the signal quality metrics of w.
func AssessQuality(w Waveform, o QualityOptions) (QualityMetrics, error) {
	return quality.Assess(w, o)
}

// Welch estimates the one-sided power spectral density of x.
func Welch(x []float64, sampleRate float64, o WelchOptions) (Spectrum, error) {
	return spectral.Welch(x, sampleRate, o)
}

// DefaultPPGOptions returns a clean 72 bpm, 30 s, 100 Hz synthetic pulse train.
func DefaultPPGOptions() PPGOptions {
	return synth.DefaultPPGOptions()
}

// SyntheticPPG renders a deterministic single-channel PPG.
func SyntheticPPG(o PPGOptions) (Waveform, error) {
	return synth.PPG(o)
}

// SyntheticDualPPG renders RED and IR channels whose ratio of ratios is r.
func SyntheticDualPPG(o PPGOptions, redDC, r float64) (DualChannelFrame, error) {
	return synth.DualPPG(o, redDC, r)
}
