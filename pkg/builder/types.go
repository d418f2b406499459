package builder

import (
	"github.com/joeydtaylor/ppglab/pkg/internal/dualchannel"
	"github.com/joeydtaylor/ppglab/pkg/internal/heartrate"
	"github.com/joeydtaylor/ppglab/pkg/internal/pipeline"
	"github.com/joeydtaylor/ppglab/pkg/internal/types"
)

type ComponentMetadata = types.ComponentMetadata

// Data model.
type (
	Waveform          = types.Waveform
	WaveformOption    = types.WaveformOption
	DualChannelFrame  = types.DualChannelFrame
	Window            = types.Window
	FilterSpec        = types.FilterSpec
	FilterFamily      = types.FilterFamily
	FilterResponse    = types.FilterResponse
	Ripple            = types.Ripple
	ApplyMode         = types.ApplyMode
	NotchSpec         = types.NotchSpec
	DetrendMode       = types.DetrendMode
	Extremum          = types.Extremum
	ExtremaSet        = types.ExtremaSet
	RatePoint         = types.RatePoint
	HeartRateResult   = types.HeartRateResult
	Variability       = types.Variability
	QualityMetrics    = types.QualityMetrics
	Metric            = types.Metric
	RRatioPoint       = types.RRatioPoint
	Oxygenation       = types.Oxygenation
	CrossCorrelation  = types.CrossCorrelation
	Coherence         = types.Coherence
	BeatTemplate      = types.BeatTemplate
	DualChannelResult = types.DualChannelResult
	ChannelResult     = types.ChannelResult
	AnalysisResult    = types.AnalysisResult
	StageError        = types.StageError
	Stage             = types.Stage
	ErrorKind         = types.ErrorKind
)

// Configuration.
type (
	Config           = pipeline.Config
	ConfigOption     = pipeline.ConfigOption
	FilterConfig     = pipeline.FilterConfig
	PeakConfig       = pipeline.PeakConfig
	HeartRateOptions = heartrate.Options
	SmoothingWindow  = heartrate.Window
	DualOptions      = dualchannel.Options
	Calibration      = dualchannel.Calibration
)

const (
	Butterworth = types.Butterworth
	Chebyshev1  = types.Chebyshev1
	Elliptic    = types.Elliptic
	Bessel      = types.Bessel

	Lowpass  = types.Lowpass
	Highpass = types.Highpass
	Bandpass = types.Bandpass
	Bandstop = types.Bandstop

	ZeroPhase = types.ZeroPhase
	Causal    = types.Causal

	DetrendNone   = types.DetrendNone
	DetrendMean   = types.DetrendMean
	DetrendLinear = types.DetrendLinear

	ChannelSignal = types.ChannelSignal
	ChannelRed    = types.ChannelRed
	ChannelIR     = types.ChannelIR
)

// Error kinds, matchable with errors.Is against results and returned errors.
var (
	ErrInvalidFilterParameters = types.ErrInvalidFilterParameters
	ErrInvalidParameters       = types.ErrInvalidParameters
	ErrInsufficientSamples     = types.ErrInsufficientSamples
	ErrDegenerateSignal        = types.ErrDegenerateSignal
	ErrInsufficientBeats       = types.ErrInsufficientBeats
	ErrCalibrationOutOfRange   = types.ErrCalibrationOutOfRange
	ErrStructuralInput         = types.ErrStructuralInput
	ErrUpstreamFailed          = types.ErrUpstreamFailed
)

// NewWaveform validates and copies samples into a Waveform.
func NewWaveform(samples []float64, sampleRate float64, options ...WaveformOption) (Waveform, error) {
	return types.NewWaveform(samples, sampleRate, options...)
}

// WaveformWithTimeAxis attaches an explicit time axis in seconds.
func WaveformWithTimeAxis(t []float64) WaveformOption {
	return types.WithTimeAxis(t)
}

// WaveformWithRateTolerance sets the allowed deviation between the declared rate and
// the time axis.
func WaveformWithRateTolerance(tol float64) WaveformOption {
	return types.WithRateTolerance(tol)
}

// NewDualChannelFrame pairs RED and IR channels of equal length and rate.
func NewDualChannelFrame(red, ir Waveform) (DualChannelFrame, error) {
	return types.NewDualChannelFrame(red, ir)
}

// ParseFilterFamily accepts "butterworth", "chebyshev1", "elliptic", "bessel" and
// their short forms.
func ParseFilterFamily(s string) (FilterFamily, error) {
	return types.ParseFilterFamily(s)
}

// ParseFilterResponse accepts "lowpass", "highpass", "bandpass" and "bandstop".
func ParseFilterResponse(s string) (FilterResponse, error) {
	return types.ParseFilterResponse(s)
}

// DefaultCalibration returns the built-in R-to-SpO2 quadratic.
func DefaultCalibration() Calibration {
	return dualchannel.DefaultCalibration()
}

// Quality metric names.
const (
	MetricMean          = types.MetricMean
	MetricStd           = types.MetricStd
	MetricRMS           = types.MetricRMS
	MetricPeakToPeak    = types.MetricPeakToPeak
	MetricCrestFactor   = types.MetricCrestFactor
	MetricShapeFactor   = types.MetricShapeFactor
	MetricImpulseFactor = types.MetricImpulseFactor
	MetricSNR           = types.MetricSNR
	MetricDynamicRange  = types.MetricDynamicRange
	MetricSkewness      = types.MetricSkewness
	MetricKurtosis      = types.MetricKurtosis
	MetricQuickSNR      = types.MetricQuickSNR
)
