// Package filter designs IIR filters as second-order sections and applies them to
// waveforms, zero-phase by default.
package filter

import (
	"fmt"
	"math"

	"github.com/joeydtaylor/ppglab/pkg/internal/types"
)

// Design validates spec against the sampling rate and returns the digital filter.
//
// The analog prototype is scaled to pre-warped band edges, mapped through the
// bilinear transform and split into second-order sections.
func Design(spec types.FilterSpec, sampleRate float64) (SOS, error) {
	if err := spec.Validate(sampleRate); err != nil {
		return SOS{}, err
	}

	proto, err := prototype(spec)
	if err != nil {
		return SOS{}, err
	}

	// Normalized design rate; the bilinear mapping only depends on f/fs.
	const fsDesign = 2.0
	warp := func(f float64) float64 {
		wn := 2 * f / sampleRate
		return 2 * fsDesign * math.Tan(math.Pi*wn/fsDesign)
	}

	var analog zpk
	switch spec.Response {
	case types.Lowpass:
		analog = lowpassToLowpass(proto, warp(spec.Cutoff[0]))
	case types.Highpass:
		analog = lowpassToHighpass(proto, warp(spec.Cutoff[0]))
	case types.Bandpass, types.Bandstop:
		lo, hi := warp(spec.Cutoff[0]), warp(spec.Cutoff[1])
		wo, bw := math.Sqrt(lo*hi), hi-lo
		if spec.Response == types.Bandpass {
			analog = lowpassToBandpass(proto, wo, bw)
		} else {
			analog = lowpassToBandstop(proto, wo, bw)
		}
	}

	sections, err := toSections(bilinear(analog, fsDesign))
	if err != nil {
		return SOS{}, err
	}
	for _, s := range sections {
		for _, v := range s {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return SOS{}, fmt.Errorf("%w: design produced non-finite coefficients", types.ErrInvalidFilterParameters)
			}
		}
	}

	spec.Cutoff = append([]float64(nil), spec.Cutoff...)
	return SOS{Sections: sections, Spec: spec, SampleRate: sampleRate}, nil
}

func prototype(spec types.FilterSpec) (zpk, error) {
	switch spec.Family {
	case types.Butterworth:
		return butterworthPrototype(spec.Order), nil
	case types.Chebyshev1:
		return chebyshev1Prototype(spec.Order, spec.Ripple.PassbandDB), nil
	case types.Elliptic:
		return ellipticPrototype(spec.Order, spec.Ripple.PassbandDB, spec.Ripple.StopbandDB)
	case types.Bessel:
		return besselPrototype(spec.Order)
	}
	return zpk{}, fmt.Errorf("%w: unknown filter family %q", types.ErrInvalidFilterParameters, spec.Family)
}
