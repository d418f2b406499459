// Package spectral estimates power and cross spectral densities by Welch's method
// of averaged, Hann-windowed periodograms.
package spectral

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/joeydtaylor/ppglab/pkg/internal/types"
	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/stat"
)

// DefaultSegmentLength caps the periodogram segment length.
const DefaultSegmentLength = 2048

// Options tunes the Welch estimate. Zero values select the defaults: segments of
// min(n, DefaultSegmentLength) samples with 50% overlap.
type Options struct {
	SegmentLength int
	Overlap       int
}

// Spectrum is a one-sided spectral density.
type Spectrum struct {
	Frequencies []float64 `json:"frequencies"`
	Density     []float64 `json:"density"`
}

// Cross is a one-sided complex cross spectral density together with both auto
// spectra, all over the same segments.
type Cross struct {
	Frequencies []float64
	Pxy         []complex128
	Pxx         []float64
	Pyy         []float64
}

type plan struct {
	nperseg int
	step    int
	win     []float64
	scale   float64
	nfreq   int
	fs      float64
}

func newPlan(n int, fs float64, o Options) (plan, error) {
	if n < 2 {
		return plan{}, fmt.Errorf("%w: spectral estimate needs at least 2 samples, got %d", types.ErrInsufficientSamples, n)
	}
	if !(fs > 0) {
		return plan{}, fmt.Errorf("%w: sampling rate must be positive", types.ErrStructuralInput)
	}
	nperseg := o.SegmentLength
	if nperseg <= 0 {
		nperseg = DefaultSegmentLength
	}
	if nperseg > n {
		nperseg = n
	}
	overlap := o.Overlap
	if overlap <= 0 || overlap >= nperseg {
		overlap = nperseg / 2
	}

	// Periodic Hann: the symmetric window one sample longer, truncated.
	win := window.Hann(nperseg + 1)[:nperseg]
	var s2 float64
	for _, v := range win {
		s2 += v * v
	}
	return plan{
		nperseg: nperseg,
		step:    nperseg - overlap,
		win:     win,
		scale:   1 / (fs * s2),
		nfreq:   nperseg/2 + 1,
		fs:      fs,
	}, nil
}

func (p plan) frequencies() []float64 {
	out := make([]float64, p.nfreq)
	for i := range out {
		out[i] = float64(i) * p.fs / float64(p.nperseg)
	}
	return out
}

// segmentSpectrum removes the segment mean, applies the window and transforms.
func (p plan) segmentSpectrum(x []float64) []complex128 {
	seg := make([]float64, p.nperseg)
	mean := stat.Mean(x, nil)
	for i := range seg {
		seg[i] = (x[i] - mean) * p.win[i]
	}
	return fft.FFTReal(seg)[:p.nfreq]
}

// oneSided doubles every bin except DC and, for even segments, Nyquist.
func (p plan) oneSided(i int) float64 {
	if i == 0 || (p.nperseg%2 == 0 && i == p.nfreq-1) {
		return 1
	}
	return 2
}

// Welch returns the one-sided power spectral density of x in units²/Hz.
func Welch(x []float64, fs float64, o Options) (Spectrum, error) {
	p, err := newPlan(len(x), fs, o)
	if err != nil {
		return Spectrum{}, err
	}
	density := make([]float64, p.nfreq)
	segments := 0
	for start := 0; start+p.nperseg <= len(x); start += p.step {
		spec := p.segmentSpectrum(x[start : start+p.nperseg])
		for i, c := range spec {
			density[i] += real(c)*real(c) + imag(c)*imag(c)
		}
		segments++
	}
	for i := range density {
		density[i] *= p.scale * p.oneSided(i) / float64(segments)
	}
	return Spectrum{Frequencies: p.frequencies(), Density: density}, nil
}

// CrossSpectrum returns the averaged cross and auto spectra of equally long x and y.
func CrossSpectrum(x, y []float64, fs float64, o Options) (Cross, error) {
	if len(x) != len(y) {
		return Cross{}, fmt.Errorf("%w: cross spectrum inputs differ in length (%d vs %d)", types.ErrStructuralInput, len(x), len(y))
	}
	p, err := newPlan(len(x), fs, o)
	if err != nil {
		return Cross{}, err
	}
	out := Cross{
		Frequencies: p.frequencies(),
		Pxy:         make([]complex128, p.nfreq),
		Pxx:         make([]float64, p.nfreq),
		Pyy:         make([]float64, p.nfreq),
	}
	segments := 0
	for start := 0; start+p.nperseg <= len(x); start += p.step {
		sx := p.segmentSpectrum(x[start : start+p.nperseg])
		sy := p.segmentSpectrum(y[start : start+p.nperseg])
		for i := range sx {
			out.Pxy[i] += cmplx.Conj(sx[i]) * sy[i]
			out.Pxx[i] += real(sx[i])*real(sx[i]) + imag(sx[i])*imag(sx[i])
			out.Pyy[i] += real(sy[i])*real(sy[i]) + imag(sy[i])*imag(sy[i])
		}
		segments++
	}
	for i := range out.Pxy {
		f := p.scale * p.oneSided(i) / float64(segments)
		out.Pxy[i] *= complex(f, 0)
		out.Pxx[i] *= f
		out.Pyy[i] *= f
	}
	return out, nil
}

// Coherence returns the magnitude-squared coherence |Pxy|²/(Pxx·Pyy) per frequency.
// Bins where either auto spectrum vanishes report 0.
func Coherence(x, y []float64, fs float64, o Options) (Spectrum, error) {
	c, err := CrossSpectrum(x, y, fs, o)
	if err != nil {
		return Spectrum{}, err
	}
	values := make([]float64, len(c.Pxy))
	for i, v := range c.Pxy {
		den := c.Pxx[i] * c.Pyy[i]
		if den <= 0 {
			continue
		}
		mag := cmplx.Abs(v)
		values[i] = math.Min(1, mag*mag/den)
	}
	return Spectrum{Frequencies: c.Frequencies, Density: values}, nil
}

// BandPower integrates the density over [lo, hi] Hz by the rectangle rule.
func (s Spectrum) BandPower(lo, hi float64) float64 {
	if len(s.Frequencies) < 2 {
		return 0
	}
	df := s.Frequencies[1] - s.Frequencies[0]
	var sum float64
	for i, f := range s.Frequencies {
		if f >= lo && f <= hi {
			sum += s.Density[i]
		}
	}
	return sum * df
}

// PeakIn returns the frequency of the largest density inside [lo, hi] Hz.
func (s Spectrum) PeakIn(lo, hi float64) (float64, bool) {
	best, bestF, found := math.Inf(-1), 0.0, false
	for i, f := range s.Frequencies {
		if f < lo || f > hi {
			continue
		}
		if s.Density[i] > best {
			best, bestF, found = s.Density[i], f, true
		}
	}
	return bestF, found
}

// At returns the value at the bin nearest to f.
func (s Spectrum) At(f float64) (float64, bool) {
	if len(s.Frequencies) == 0 {
		return 0, false
	}
	best, bestDist := 0, math.Inf(1)
	for i, v := range s.Frequencies {
		if d := math.Abs(v - f); d < bestDist {
			best, bestDist = i, d
		}
	}
	return s.Density[best], true
}

// MeanIn averages the values inside [lo, hi] Hz.
func (s Spectrum) MeanIn(lo, hi float64) (float64, bool) {
	var sum float64
	var n int
	for i, f := range s.Frequencies {
		if f >= lo && f <= hi {
			sum += s.Density[i]
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
