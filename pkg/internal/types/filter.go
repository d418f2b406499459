package types

import (
	"fmt"
	"math"
	"strings"
)

// FilterFamily selects the analog prototype of an IIR design.
type FilterFamily string

const (
	Butterworth FilterFamily = "butterworth"
	Chebyshev1  FilterFamily = "chebyshev1"
	Elliptic    FilterFamily = "elliptic"
	Bessel      FilterFamily = "bessel"
)

// FilterResponse selects the band shape of an IIR design.
type FilterResponse string

const (
	Lowpass  FilterResponse = "lowpass"
	Highpass FilterResponse = "highpass"
	Bandpass FilterResponse = "bandpass"
	Bandstop FilterResponse = "bandstop"
)

// ApplyMode selects how a designed filter runs over a waveform.
type ApplyMode string

const (
	// ZeroPhase filters forward then backward, cancelling the phase shift.
	ZeroPhase ApplyMode = "zero_phase"
	// Causal runs a single forward pass.
	Causal ApplyMode = "causal"
)

// MaxFilterOrder bounds the prototype order accepted by FilterSpec.Validate.
const MaxFilterOrder = 16

// Ripple carries the ripple parameters of Chebyshev and elliptic designs, in dB.
type Ripple struct {
	PassbandDB float64 `json:"passband_db,omitempty"`
	StopbandDB float64 `json:"stopband_db,omitempty"`
}

// FilterSpec describes an IIR filter independent of any sampling rate.
type FilterSpec struct {
	Family   FilterFamily   `json:"family"`
	Response FilterResponse `json:"response"`
	Order    int            `json:"order"`
	Cutoff   []float64      `json:"cutoff"`
	Ripple   Ripple         `json:"ripple"`
}

// Band returns the cutoff pair of a band response, or the single cutoff twice.
func (s FilterSpec) Band() (low, high float64) {
	switch len(s.Cutoff) {
	case 0:
		return 0, 0
	case 1:
		return s.Cutoff[0], s.Cutoff[0]
	default:
		return s.Cutoff[0], s.Cutoff[1]
	}
}

// IsBand reports whether the response needs a cutoff pair.
func (r FilterResponse) IsBand() bool {
	return r == Bandpass || r == Bandstop
}

// Validate checks the spec against a sampling rate.
func (s FilterSpec) Validate(sampleRate float64) error {
	switch s.Family {
	case Butterworth, Chebyshev1, Elliptic, Bessel:
	default:
		return fmt.Errorf("%w: unknown filter family %q", ErrInvalidFilterParameters, s.Family)
	}
	if s.Order < 1 || s.Order > MaxFilterOrder {
		return fmt.Errorf("%w: order must be in [1, %d], got %d", ErrInvalidFilterParameters, MaxFilterOrder, s.Order)
	}
	if !(sampleRate > 0) {
		return fmt.Errorf("%w: sampling rate must be positive, got %v", ErrInvalidFilterParameters, sampleRate)
	}

	want := 1
	switch s.Response {
	case Lowpass, Highpass:
	case Bandpass, Bandstop:
		want = 2
	default:
		return fmt.Errorf("%w: unknown filter response %q", ErrInvalidFilterParameters, s.Response)
	}
	if len(s.Cutoff) != want {
		return fmt.Errorf("%w: %s needs %d cutoff frequencies, got %d", ErrInvalidFilterParameters, s.Response, want, len(s.Cutoff))
	}

	nyquist := sampleRate / 2
	for _, f := range s.Cutoff {
		if math.IsNaN(f) || f <= 0 || f >= nyquist {
			return fmt.Errorf("%w: cutoff %v Hz must lie strictly between 0 and Nyquist (%v Hz)", ErrInvalidFilterParameters, f, nyquist)
		}
	}
	if want == 2 && !(s.Cutoff[0] < s.Cutoff[1]) {
		return fmt.Errorf("%w: band edges must satisfy low < high, got %v >= %v", ErrInvalidFilterParameters, s.Cutoff[0], s.Cutoff[1])
	}

	switch s.Family {
	case Chebyshev1:
		if !(s.Ripple.PassbandDB > 0) {
			return fmt.Errorf("%w: chebyshev1 needs a positive passband ripple", ErrInvalidFilterParameters)
		}
	case Elliptic:
		if !(s.Ripple.PassbandDB > 0) {
			return fmt.Errorf("%w: elliptic needs a positive passband ripple", ErrInvalidFilterParameters)
		}
		if !(s.Ripple.StopbandDB > s.Ripple.PassbandDB) {
			return fmt.Errorf("%w: elliptic stopband attenuation must exceed the passband ripple", ErrInvalidFilterParameters)
		}
	}
	return nil
}

// ParseFilterFamily accepts the canonical names plus the short scipy-style aliases.
func ParseFilterFamily(s string) (FilterFamily, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "butterworth", "butter":
		return Butterworth, nil
	case "chebyshev1", "cheby1":
		return Chebyshev1, nil
	case "elliptic", "ellip":
		return Elliptic, nil
	case "bessel":
		return Bessel, nil
	}
	return "", fmt.Errorf("%w: unknown filter family %q", ErrInvalidFilterParameters, s)
}

// ParseFilterResponse parses a response name.
func ParseFilterResponse(s string) (FilterResponse, error) {
	switch r := FilterResponse(strings.ToLower(strings.TrimSpace(s))); r {
	case Lowpass, Highpass, Bandpass, Bandstop:
		return r, nil
	}
	return "", fmt.Errorf("%w: unknown filter response %q", ErrInvalidFilterParameters, s)
}

// NotchSpec describes a mains-interference notch.
type NotchSpec struct {
	Frequency float64 `json:"frequency"`
	HalfWidth float64 `json:"half_width"`
	Order     int     `json:"order"`
}

// Notch defaults.
const (
	DefaultNotchFrequency = 50.0
	DefaultNotchHalfWidth = 1.0
	DefaultNotchOrder     = 4
)

// WithDefaults fills zero fields with the package defaults.
func (n NotchSpec) WithDefaults() NotchSpec {
	if n.Frequency == 0 {
		n.Frequency = DefaultNotchFrequency
	}
	if n.HalfWidth == 0 {
		n.HalfWidth = DefaultNotchHalfWidth
	}
	if n.Order == 0 {
		n.Order = DefaultNotchOrder
	}
	return n
}

// BandstopSpec expresses the notch as a Butterworth bandstop.
func (n NotchSpec) BandstopSpec() FilterSpec {
	n = n.WithDefaults()
	return FilterSpec{
		Family:   Butterworth,
		Response: Bandstop,
		Order:    n.Order,
		Cutoff:   []float64{n.Frequency - n.HalfWidth, n.Frequency + n.HalfWidth},
	}
}

// DetrendMode selects a trend-removal transform.
type DetrendMode string

const (
	DetrendNone   DetrendMode = "none"
	DetrendMean   DetrendMode = "mean"
	DetrendLinear DetrendMode = "linear"
)
