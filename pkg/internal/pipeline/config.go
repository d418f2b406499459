package pipeline

import (
	"fmt"

	"github.com/joeydtaylor/ppglab/pkg/internal/dualchannel"
	"github.com/joeydtaylor/ppglab/pkg/internal/heartrate"
	"github.com/joeydtaylor/ppglab/pkg/internal/peaks"
	"github.com/joeydtaylor/ppglab/pkg/internal/quality"
	"github.com/joeydtaylor/ppglab/pkg/internal/types"
)

// FilterConfig selects the band-limiting filter of the preprocess stage.
type FilterConfig struct {
	Enabled bool             `json:"enabled"`
	Spec    types.FilterSpec `json:"spec"`
	Mode    types.ApplyMode  `json:"mode"`
}

// PeakConfig tunes the peak detector. MinBeatDistanceBPM is the ceiling rate that
// sets the minimum peak spacing.
type PeakConfig struct {
	MinBeatDistanceBPM float64  `json:"min_beat_distance_bpm"`
	HeightThreshold    *float64 `json:"height_threshold,omitempty"`
	ThresholdFactor    float64  `json:"threshold_factor"`
	ProminenceFactor   float64  `json:"prominence_factor"`
}

// Validate rejects negative detector settings.
func (c PeakConfig) Validate() error {
	if c.MinBeatDistanceBPM < 0 || c.ThresholdFactor < 0 || c.ProminenceFactor < 0 {
		return fmt.Errorf("%w: peak settings must not be negative", types.ErrInvalidParameters)
	}
	return nil
}

// Config is the explicit, immutable configuration of one Analyze call.
type Config struct {
	Filter FilterConfig `json:"filter"`
	// Notch is applied after the filter when set.
	Notch   *types.NotchSpec  `json:"notch,omitempty"`
	Detrend types.DetrendMode `json:"detrend"`
	// Absorbance converts intensity to -ln(I/I0) before detrending.
	Absorbance bool `json:"absorbance"`
	Invert     bool `json:"invert"`

	Peaks     PeakConfig          `json:"peaks"`
	HeartRate heartrate.Options   `json:"heart_rate"`
	Quality   quality.Options     `json:"quality"`
	Dual      dualchannel.Options `json:"dual"`

	// TimeAxisTolerance is the relative rate deviation an explicit time axis may show.
	TimeAxisTolerance float64 `json:"time_axis_tolerance"`
	// ComputeSDPPG adds the second-derivative waveform of each filtered channel.
	ComputeSDPPG bool `json:"compute_sdppg"`
}

// Pipeline defaults.
const (
	DefaultFilterOrder      = 4
	DefaultCutoffLow        = 0.5
	DefaultCutoffHigh       = 5.0
	DefaultProminenceFactor = 0.5
)

// DefaultConfig returns a zero-phase 4th-order Butterworth 0.5-5 Hz bandpass, mean
// detrending, no notch, and the component defaults.
func DefaultConfig() Config {
	return Config{
		Filter: FilterConfig{
			Enabled: true,
			Spec: types.FilterSpec{
				Family:   types.Butterworth,
				Response: types.Bandpass,
				Order:    DefaultFilterOrder,
				Cutoff:   []float64{DefaultCutoffLow, DefaultCutoffHigh},
			},
			Mode: types.ZeroPhase,
		},
		Detrend: types.DetrendMean,
		Peaks: PeakConfig{
			MinBeatDistanceBPM: peaks.DefaultHRMax,
			ThresholdFactor:    peaks.DefaultThresholdFactor,
			ProminenceFactor:   DefaultProminenceFactor,
		},
		HeartRate:         heartrate.DefaultOptions(),
		Quality:           quality.DefaultOptions(),
		Dual:              dualchannel.DefaultOptions(),
		TimeAxisTolerance: types.DefaultRateTolerance,
	}
}

// ConfigOption adjusts a Config.
type ConfigOption func(*Config)

// NewConfig applies options over DefaultConfig.
func NewConfig(options ...ConfigOption) Config {
	cfg := DefaultConfig()
	for _, option := range options {
		if option != nil {
			option(&cfg)
		}
	}
	return cfg
}

// WithFilterSpec enables the filter with spec.
func WithFilterSpec(spec types.FilterSpec) ConfigOption {
	return func(c *Config) {
		c.Filter.Enabled = true
		c.Filter.Spec = spec
	}
}

// WithFilterDisabled skips band-limiting.
func WithFilterDisabled() ConfigOption {
	return func(c *Config) { c.Filter.Enabled = false }
}

// WithApplyMode selects zero-phase or causal filtering.
func WithApplyMode(mode types.ApplyMode) ConfigOption {
	return func(c *Config) { c.Filter.Mode = mode }
}

// WithNotch enables the mains notch.
func WithNotch(notch types.NotchSpec) ConfigOption {
	return func(c *Config) {
		n := notch.WithDefaults()
		c.Notch = &n
	}
}

// WithDetrend selects the trend removal.
func WithDetrend(mode types.DetrendMode) ConfigOption {
	return func(c *Config) { c.Detrend = mode }
}

// WithInvert flips the sign of the preprocessed signal.
func WithInvert(invert bool) ConfigOption {
	return func(c *Config) { c.Invert = invert }
}

// WithAbsorbance converts intensity to absorbance first.
func WithAbsorbance(enabled bool) ConfigOption {
	return func(c *Config) { c.Absorbance = enabled }
}

// WithPeaks replaces the peak detector settings.
func WithPeaks(p PeakConfig) ConfigOption {
	return func(c *Config) { c.Peaks = p }
}

// WithHeartRateBounds sets the plausible heart-rate range.
func WithHeartRateBounds(lo, hi float64) ConfigOption {
	return func(c *Config) {
		c.HeartRate.HRMin = lo
		c.HeartRate.HRMax = hi
	}
}

// WithSmoothingWindow sets the median window of the heart-rate trend.
func WithSmoothingWindow(w heartrate.Window) ConfigOption {
	return func(c *Config) { c.HeartRate.Window = w }
}

// WithQualityBand sets the in-band region of the quality SNR.
func WithQualityBand(low, high float64) ConfigOption {
	return func(c *Config) {
		c.Quality.BandLow = low
		c.Quality.BandHigh = high
	}
}

// WithCalibration replaces the R-to-SpO2 calibration.
func WithCalibration(cal dualchannel.Calibration) ConfigOption {
	return func(c *Config) { c.Dual.Calibration = cal }
}

// WithDualOptions replaces the dual-channel settings.
func WithDualOptions(o dualchannel.Options) ConfigOption {
	return func(c *Config) { c.Dual = o }
}

// WithTimeAxisTolerance sets the rate tolerance of explicit time axes.
func WithTimeAxisTolerance(tol float64) ConfigOption {
	return func(c *Config) { c.TimeAxisTolerance = tol }
}

// WithSDPPG toggles the second-derivative output.
func WithSDPPG(enabled bool) ConfigOption {
	return func(c *Config) { c.ComputeSDPPG = enabled }
}

// Validate checks every stage setting that does not depend on the sampling rate.
// Analyze does not call it: each stage checks its own settings and fails alone.
func (c Config) Validate() error {
	if err := c.Peaks.Validate(); err != nil {
		return fmt.Errorf("peaks: %w", err)
	}
	if err := c.HeartRate.Validate(); err != nil {
		return fmt.Errorf("heart rate: %w", err)
	}
	if err := c.Quality.Validate(); err != nil {
		return fmt.Errorf("quality: %w", err)
	}
	if err := c.Dual.Validate(); err != nil {
		return fmt.Errorf("dual channel: %w", err)
	}
	switch c.Detrend {
	case "", types.DetrendNone, types.DetrendMean, types.DetrendLinear:
	default:
		return fmt.Errorf("%w: unknown detrend mode %q", types.ErrInvalidFilterParameters, c.Detrend)
	}
	switch c.Filter.Mode {
	case "", types.ZeroPhase, types.Causal:
	default:
		return fmt.Errorf("%w: unknown apply mode %q", types.ErrInvalidFilterParameters, c.Filter.Mode)
	}
	if !(c.TimeAxisTolerance >= 0) {
		return fmt.Errorf("%w: time axis tolerance must not be negative", types.ErrInvalidParameters)
	}
	return nil
}

func (c Config) peakOptions(sampleRate float64) peaks.Options {
	hrMax := c.Peaks.MinBeatDistanceBPM
	if hrMax == 0 {
		hrMax = peaks.DefaultHRMax
	}
	return peaks.Options{
		MinDistance:      peaks.MinDistanceFor(sampleRate, hrMax),
		HeightThreshold:  c.Peaks.HeightThreshold,
		ThresholdFactor:  c.Peaks.ThresholdFactor,
		ProminenceFactor: c.Peaks.ProminenceFactor,
	}
}
