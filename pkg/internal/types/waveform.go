package types

import (
	"encoding/json"
	"fmt"
	"math"
)

// DefaultRateTolerance is the maximum relative deviation allowed between a declared
// sampling rate and the rate implied by an explicit time axis.
const DefaultRateTolerance = 0.01

// Waveform is an immutable, uniformly sampled signal. The samples and the optional time
// axis are copied on construction and never handed out by reference, so a Waveform can
// be shared freely between goroutines.
type Waveform struct {
	samples    []float64
	sampleRate float64
	time       []float64
}

// WaveformOption configures NewWaveform.
type WaveformOption func(*waveformConfig)

type waveformConfig struct {
	time      []float64
	tolerance float64
}

// WithTimeAxis attaches an explicit time axis in seconds.
func WithTimeAxis(t []float64) WaveformOption {
	return func(c *waveformConfig) {
		c.time = t
	}
}

// WithRateTolerance overrides DefaultRateTolerance for the time-axis consistency check.
func WithRateTolerance(tol float64) WaveformOption {
	return func(c *waveformConfig) {
		c.tolerance = tol
	}
}

// NewWaveform validates and copies samples into a Waveform.
func NewWaveform(samples []float64, sampleRate float64, options ...WaveformOption) (Waveform, error) {
	cfg := waveformConfig{tolerance: DefaultRateTolerance}
	for _, option := range options {
		option(&cfg)
	}

	if len(samples) < 2 {
		return Waveform{}, fmt.Errorf("%w: waveform needs at least 2 samples, got %d", ErrStructuralInput, len(samples))
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return Waveform{}, fmt.Errorf("%w: sampling rate must be positive, got %v", ErrStructuralInput, sampleRate)
	}
	for i, v := range samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Waveform{}, fmt.Errorf("%w: sample %d is not finite", ErrStructuralInput, i)
		}
	}

	w := Waveform{
		samples:    append([]float64(nil), samples...),
		sampleRate: sampleRate,
	}

	if cfg.time != nil {
		if err := checkTimeAxis(cfg.time, len(samples), sampleRate, cfg.tolerance); err != nil {
			return Waveform{}, err
		}
		w.time = append([]float64(nil), cfg.time...)
	}
	return w, nil
}

func checkTimeAxis(t []float64, n int, sampleRate, tolerance float64) error {
	if len(t) != n {
		return fmt.Errorf("%w: time axis has %d entries for %d samples", ErrStructuralInput, len(t), n)
	}
	for i := 1; i < len(t); i++ {
		if !(t[i] > t[i-1]) {
			return fmt.Errorf("%w: time axis not strictly increasing at index %d", ErrStructuralInput, i)
		}
	}
	implied := float64(n-1) / (t[n-1] - t[0])
	if !(tolerance > 0) {
		tolerance = DefaultRateTolerance
	}
	if dev := math.Abs(implied-sampleRate) / sampleRate; dev > tolerance {
		return fmt.Errorf("%w: time axis implies %.4f Hz, declared %.4f Hz (deviation %.2f%%)",
			ErrStructuralInput, implied, sampleRate, 100*dev)
	}
	return nil
}

// Derive returns a waveform with new samples and the receiver's rate and a copy of its
// time axis. It is meant for stage outputs; samples must have the same length as the
// receiver and are taken over without copying.
func (w Waveform) Derive(samples []float64) Waveform {
	var t []float64
	if w.time != nil {
		t = append([]float64(nil), w.time...)
	}
	return Waveform{samples: samples, sampleRate: w.sampleRate, time: t}
}

// Len returns the number of samples.
func (w Waveform) Len() int { return len(w.samples) }

// SampleRate returns the sampling rate in Hz.
func (w Waveform) SampleRate() float64 { return w.sampleRate }

// Nyquist returns half the sampling rate.
func (w Waveform) Nyquist() float64 { return w.sampleRate / 2 }

// HasTimeAxis reports whether an explicit time axis was supplied.
func (w Waveform) HasTimeAxis() bool { return w.time != nil }

// At returns sample i.
func (w Waveform) At(i int) float64 { return w.samples[i] }

// TimeAt returns the timestamp of sample i in seconds.
func (w Waveform) TimeAt(i int) float64 {
	if w.time != nil {
		return w.time[i]
	}
	return float64(i) / w.sampleRate
}

// Samples returns a copy of the samples.
func (w Waveform) Samples() []float64 {
	return append([]float64(nil), w.samples...)
}

// Times returns a copy of the time axis, synthesizing it from the rate when absent.
func (w Waveform) Times() []float64 {
	out := make([]float64, len(w.samples))
	for i := range out {
		out[i] = w.TimeAt(i)
	}
	return out
}

// Duration returns the time spanned by the waveform in seconds.
func (w Waveform) Duration() float64 {
	if len(w.samples) == 0 {
		return 0
	}
	return w.TimeAt(len(w.samples)-1) - w.TimeAt(0)
}

// IsZero reports whether w is the zero value.
func (w Waveform) IsZero() bool { return w.samples == nil }

// CheckTimeAxis re-validates an explicit time axis against tolerance. Waveforms
// without a time axis always pass.
func (w Waveform) CheckTimeAxis(tolerance float64) error {
	if w.time == nil {
		return nil
	}
	return checkTimeAxis(w.time, len(w.samples), w.sampleRate, tolerance)
}

// Check reports the structural problems of a waveform that was not built by
// NewWaveform, such as the zero value.
func (w Waveform) Check() error {
	if len(w.samples) < 2 {
		return fmt.Errorf("%w: waveform needs at least 2 samples, got %d", ErrStructuralInput, len(w.samples))
	}
	if !(w.sampleRate > 0) {
		return fmt.Errorf("%w: sampling rate must be positive, got %v", ErrStructuralInput, w.sampleRate)
	}
	return nil
}

type waveformJSON struct {
	SampleRate float64   `json:"sample_rate"`
	Samples    []float64 `json:"samples"`
	Time       []float64 `json:"time,omitempty"`
}

// MarshalJSON encodes the waveform as a plain object.
func (w Waveform) MarshalJSON() ([]byte, error) {
	return json.Marshal(waveformJSON{SampleRate: w.sampleRate, Samples: w.samples, Time: w.time})
}

// UnmarshalJSON decodes and validates a waveform.
func (w *Waveform) UnmarshalJSON(data []byte) error {
	var raw waveformJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var options []WaveformOption
	if raw.Time != nil {
		options = append(options, WithTimeAxis(raw.Time))
	}
	decoded, err := NewWaveform(raw.Samples, raw.SampleRate, options...)
	if err != nil {
		return err
	}
	*w = decoded
	return nil
}

// Window is the input of one analysis call: a Waveform or a DualChannelFrame.
type Window interface {
	window()
}

func (Waveform) window()         {}
func (DualChannelFrame) window() {}

// DualChannelFrame holds two synchronized channels of equal length and rate.
type DualChannelFrame struct {
	Red Waveform
	IR  Waveform
}

// NewDualChannelFrame validates that both channels line up.
func NewDualChannelFrame(red, ir Waveform) (DualChannelFrame, error) {
	f := DualChannelFrame{Red: red, IR: ir}
	if err := f.Check(); err != nil {
		return DualChannelFrame{}, err
	}
	return f, nil
}

// Check reports whether both channels are present and line up.
func (f DualChannelFrame) Check() error {
	red, ir := f.Red, f.IR
	if red.IsZero() || ir.IsZero() {
		return fmt.Errorf("%w: dual-channel frame has an empty channel", ErrStructuralInput)
	}
	if err := red.Check(); err != nil {
		return err
	}
	if err := ir.Check(); err != nil {
		return err
	}
	if red.Len() != ir.Len() {
		return fmt.Errorf("%w: channel lengths differ (red=%d, ir=%d)", ErrStructuralInput, red.Len(), ir.Len())
	}
	if red.SampleRate() != ir.SampleRate() {
		return fmt.Errorf("%w: channel sampling rates differ (red=%v, ir=%v)", ErrStructuralInput, red.SampleRate(), ir.SampleRate())
	}
	return nil
}

// Len returns the per-channel sample count.
func (f DualChannelFrame) Len() int { return f.IR.Len() }

// SampleRate returns the shared sampling rate.
func (f DualChannelFrame) SampleRate() float64 { return f.IR.SampleRate() }
