package builder

import (
	"github.com/joeydtaylor/ppglab/pkg/internal/pipeline"
	"github.com/joeydtaylor/ppglab/pkg/internal/types"
)

// Pipeline runs the full analysis of one window per call.
type Pipeline = pipeline.Pipeline

// NewPipeline creates a Pipeline. It is safe for concurrent Analyze calls once built.
func NewPipeline(options ...types.Option[*Pipeline]) *Pipeline {
	return pipeline.NewPipeline(options...)
}

// PipelineWithLogger attaches loggers to the pipeline.
func PipelineWithLogger(logger ...types.Logger) types.Option[*Pipeline] {
	return pipeline.WithLogger(logger...)
}

// PipelineWithSensor attaches sensors to the pipeline.
func PipelineWithSensor(sensor ...types.Sensor) types.Option[*Pipeline] {
	return pipeline.WithSensor(sensor...)
}

// PipelineWithComponentMetadata overrides the pipeline name and id.
func PipelineWithComponentMetadata(name string, id string) types.Option[*Pipeline] {
	return pipeline.WithComponentMetadata(name, id)
}

// DefaultConfig returns the analysis defaults.
func DefaultConfig() Config {
	return pipeline.DefaultConfig()
}

// NewConfig applies options over DefaultConfig.
func NewConfig(options ...ConfigOption) Config {
	return pipeline.NewConfig(options...)
}

// ConfigWithFilterSpec enables the band-limiting filter with spec.
func ConfigWithFilterSpec(spec FilterSpec) ConfigOption {
	return pipeline.WithFilterSpec(spec)
}

// ConfigWithFilterDisabled skips band-limiting.
func ConfigWithFilterDisabled() ConfigOption {
	return pipeline.WithFilterDisabled()
}

// ConfigWithApplyMode selects zero-phase or causal filtering.
func ConfigWithApplyMode(mode ApplyMode) ConfigOption {
	return pipeline.WithApplyMode(mode)
}

// ConfigWithNotch enables a mains notch.
func ConfigWithNotch(notch NotchSpec) ConfigOption {
	return pipeline.WithNotch(notch)
}

// ConfigWithDetrend selects trend removal.
func ConfigWithDetrend(mode DetrendMode) ConfigOption {
	return pipeline.WithDetrend(mode)
}

// ConfigWithInvert flips the preprocessed signal.
func ConfigWithInvert(invert bool) ConfigOption {
	return pipeline.WithInvert(invert)
}

// ConfigWithAbsorbance converts intensity to absorbance before filtering.
func ConfigWithAbsorbance(enabled bool) ConfigOption {
	return pipeline.WithAbsorbance(enabled)
}

// ConfigWithPeaks replaces the peak detector settings.
func ConfigWithPeaks(p PeakConfig) ConfigOption {
	return pipeline.WithPeaks(p)
}

// ConfigWithHeartRateBounds sets the plausible rate range in bpm.
func ConfigWithHeartRateBounds(lo, hi float64) ConfigOption {
	return pipeline.WithHeartRateBounds(lo, hi)
}

// ConfigWithSmoothingWindow sizes the median smoother.
func ConfigWithSmoothingWindow(w SmoothingWindow) ConfigOption {
	return pipeline.WithSmoothingWindow(w)
}

// ConfigWithQualityBand sets the in-band region of the quality SNR.
func ConfigWithQualityBand(low, high float64) ConfigOption {
	return pipeline.WithQualityBand(low, high)
}

// ConfigWithCalibration replaces the R-to-SpO2 calibration.
func ConfigWithCalibration(cal Calibration) ConfigOption {
	return pipeline.WithCalibration(cal)
}

// ConfigWithDualOptions replaces every dual-channel setting.
func ConfigWithDualOptions(o DualOptions) ConfigOption {
	return pipeline.WithDualOptions(o)
}

// ConfigWithTimeAxisTolerance sets the allowed time-axis rate deviation.
func ConfigWithTimeAxisTolerance(tol float64) ConfigOption {
	return pipeline.WithTimeAxisTolerance(tol)
}

// ConfigWithSDPPG adds the second-derivative waveform to each channel.
func ConfigWithSDPPG(enabled bool) ConfigOption {
	return pipeline.WithSDPPG(enabled)
}
