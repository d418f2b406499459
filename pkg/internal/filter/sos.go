package filter

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"github.com/joeydtaylor/ppglab/pkg/internal/types"
)

// Section is one biquad: b0, b1, b2, a0, a1, a2.
type Section [6]float64

// SOS is a designed digital filter as a cascade of second-order sections. It is
// immutable once returned by Design and safe to share.
type SOS struct {
	Sections   []Section        `json:"sections"`
	Spec       types.FilterSpec `json:"spec"`
	SampleRate float64          `json:"sample_rate"`
}

// PadLength is the odd-extension length used by zero-phase filtering. Windows must
// be strictly longer than this.
func (s SOS) PadLength() int {
	ntaps := 2*len(s.Sections) + 1
	var bz, az int
	for _, sec := range s.Sections {
		if sec[2] == 0 {
			bz++
		}
		if sec[5] == 0 {
			az++
		}
	}
	if bz < az {
		ntaps -= bz
	} else {
		ntaps -= az
	}
	return 3 * ntaps
}

// splitConjugates separates xs into the positive-imaginary member of each conjugate
// pair followed by the purely real values, sorted for a deterministic layout.
func splitConjugates(xs []complex128) ([]complex128, error) {
	var reals, pos, neg []complex128
	for _, x := range xs {
		tol := 100 * machEp * cmplx.Abs(x)
		switch {
		case math.Abs(imag(x)) <= tol:
			reals = append(reals, complex(real(x), 0))
		case imag(x) > 0:
			pos = append(pos, x)
		default:
			neg = append(neg, x)
		}
	}
	if len(pos) != len(neg) {
		return nil, fmt.Errorf("%w: roots are not in conjugate pairs", types.ErrInvalidFilterParameters)
	}
	byPart := func(v []complex128) {
		sort.Slice(v, func(i, j int) bool {
			if real(v[i]) != real(v[j]) {
				return real(v[i]) < real(v[j])
			}
			return math.Abs(imag(v[i])) < math.Abs(imag(v[j]))
		})
	}
	byPart(pos)
	byPart(neg)
	byPart(reals)

	out := make([]complex128, 0, len(pos)+len(reals))
	used := make([]bool, len(neg))
	for _, x := range pos {
		best, bestDist := -1, math.Inf(1)
		for j, y := range neg {
			if used[j] {
				continue
			}
			if d := cmplx.Abs(x - cmplx.Conj(y)); d < bestDist {
				best, bestDist = j, d
			}
		}
		used[best] = true
		out = append(out, (x+cmplx.Conj(neg[best]))/2)
	}
	return append(out, reals...), nil
}

func isReal(x complex128) bool { return imag(x) == 0 }

func removeAt(xs []complex128, i int) []complex128 {
	return append(xs[:i:i], xs[i+1:]...)
}

type rootClass int

const (
	anyRoot rootClass = iota
	realRoot
	complexRoot
)

// nearestRoot returns the index of the root in from closest to to, restricted to
// the requested class, or -1.
func nearestRoot(from []complex128, to complex128, class rootClass) int {
	best, bestDist := -1, math.Inf(1)
	for i, x := range from {
		if class == realRoot && !isReal(x) || class == complexRoot && isReal(x) {
			continue
		}
		if d := cmplx.Abs(x - to); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// polyReal expands the monic polynomial with the given roots; conjugates of complex
// roots are the caller's responsibility.
func polyReal(roots []complex128) []float64 {
	c := []complex128{1}
	for _, r := range roots {
		next := make([]complex128, len(c)+1)
		for i, v := range c {
			next[i] += v
			next[i+1] -= v * r
		}
		c = next
	}
	out := make([]float64, len(c))
	for i, v := range c {
		out[i] = real(v)
	}
	return out
}

func singleSection(z, p []complex128) Section {
	var s Section
	b := polyReal(z)
	a := polyReal(p)
	copy(s[3-len(b):3], b)
	copy(s[6-len(a):6], a)
	return s
}

// toSections pairs poles with their nearest zeros. Sections are ordered so the pole
// closest to the unit circle ends up last, and the gain sits in the first section.
func toSections(f zpk) ([]Section, error) {
	if len(f.z) == 0 && len(f.p) == 0 {
		return []Section{{f.k, 0, 0, 1, 0, 0}}, nil
	}

	z := append([]complex128(nil), f.z...)
	p := append([]complex128(nil), f.p...)
	for len(p) < len(z) {
		p = append(p, 0)
	}
	for len(z) < len(p) {
		z = append(z, 0)
	}
	nSections := (len(p) + 1) / 2
	if len(p)%2 == 1 {
		p = append(p, 0)
		z = append(z, 0)
	}

	var err error
	if z, err = splitConjugates(z); err != nil {
		return nil, err
	}
	if p, err = splitConjugates(p); err != nil {
		return nil, err
	}

	countReal := func(xs []complex128) int {
		n := 0
		for _, x := range xs {
			if isReal(x) {
				n++
			}
		}
		return n
	}

	sections := make([]Section, nSections)
	for si := 0; si < nSections; si++ {
		worst, worstDist := 0, math.Inf(1)
		for i, x := range p {
			if d := math.Abs(1 - cmplx.Abs(x)); d < worstDist {
				worst, worstDist = i, d
			}
		}
		p1 := p[worst]
		p = removeAt(p, worst)

		switch {
		case isReal(p1) && countReal(p) == 0:
			idx := nearestRoot(z, p1, realRoot)
			if idx < 0 {
				return nil, fmt.Errorf("%w: no real zero left for a real pole", types.ErrInvalidFilterParameters)
			}
			z1 := z[idx]
			z = removeAt(z, idx)
			sections[si] = singleSection([]complex128{z1, 0}, []complex128{p1, 0})

		case len(p)+1 == len(z) && !isReal(p1) && countReal(p) == 1 && countReal(z) == 1:
			idx := nearestRoot(z, p1, complexRoot)
			z1 := z[idx]
			z = removeAt(z, idx)
			sections[si] = singleSection([]complex128{z1, cmplx.Conj(z1)}, []complex128{p1, cmplx.Conj(p1)})

		default:
			var p2 complex128
			if isReal(p1) {
				best, bestDist := -1, math.Inf(1)
				for i, x := range p {
					if !isReal(x) {
						continue
					}
					if d := math.Abs(cmplx.Abs(x) - 1); d < bestDist {
						best, bestDist = i, d
					}
				}
				p2 = p[best]
				p = removeAt(p, best)
			} else {
				p2 = cmplx.Conj(p1)
			}

			if len(z) == 0 {
				sections[si] = singleSection(nil, []complex128{p1, p2})
				break
			}
			idx := nearestRoot(z, p1, anyRoot)
			z1 := z[idx]
			z = removeAt(z, idx)
			if !isReal(z1) {
				sections[si] = singleSection([]complex128{z1, cmplx.Conj(z1)}, []complex128{p1, p2})
				break
			}
			if len(z) == 0 {
				sections[si] = singleSection([]complex128{z1}, []complex128{p1, p2})
				break
			}
			idx2 := nearestRoot(z, p1, realRoot)
			if idx2 < 0 {
				return nil, fmt.Errorf("%w: unpaired complex zero", types.ErrInvalidFilterParameters)
			}
			z2 := z[idx2]
			z = removeAt(z, idx2)
			sections[si] = singleSection([]complex128{z1, z2}, []complex128{p1, p2})
		}
	}

	for i, j := 0, len(sections)-1; i < j; i, j = i+1, j-1 {
		sections[i], sections[j] = sections[j], sections[i]
	}
	for i := 0; i < 3; i++ {
		sections[0][i] *= f.k
	}
	return sections, nil
}

// run filters x in place through the cascade, starting from state zi (two values per
// section). zi is updated to the final state.
func run(sections []Section, x []float64, zi [][2]float64) {
	for si, s := range sections {
		a0 := s[3]
		b0, b1, b2 := s[0]/a0, s[1]/a0, s[2]/a0
		a1, a2 := s[4]/a0, s[5]/a0
		z0, z1 := zi[si][0], zi[si][1]
		for i, v := range x {
			y := b0*v + z0
			z0 = b1*v - a1*y + z1
			z1 = b2*v - a2*y
			x[i] = y
		}
		zi[si] = [2]float64{z0, z1}
	}
}

// steadyState returns the per-section initial conditions of a unit step response,
// scaled through the cascade by each section's DC gain.
func steadyState(sections []Section) [][2]float64 {
	zi := make([][2]float64, len(sections))
	scale := 1.0
	for si, s := range sections {
		a0 := s[3]
		b := [3]float64{s[0] / a0, s[1] / a0, s[2] / a0}
		a1, a2 := s[4]/a0, s[5]/a0

		B0 := b[1] - a1*b[0]
		B1 := b[2] - a2*b[0]
		det := 1 + a1 + a2
		zi0 := (B0 + B1) / det
		zi1 := B1 - a2*zi0
		zi[si] = [2]float64{scale * zi0, scale * zi1}

		scale *= (b[0] + b[1] + b[2]) / det
	}
	return zi
}

func scaledState(zi [][2]float64, v float64) [][2]float64 {
	out := make([][2]float64, len(zi))
	for i, z := range zi {
		out[i] = [2]float64{z[0] * v, z[1] * v}
	}
	return out
}

// oddExtend reflects n samples about each endpoint.
func oddExtend(x []float64, n int) []float64 {
	last := len(x) - 1
	out := make([]float64, 0, len(x)+2*n)
	for i := n; i >= 1; i-- {
		out = append(out, 2*x[0]-x[i])
	}
	out = append(out, x...)
	for i := 1; i <= n; i++ {
		out = append(out, 2*x[last]-x[last-i])
	}
	return out
}

// FiltFilt applies the cascade forward and backward with odd extension and
// steady-state initial conditions, giving zero phase distortion.
func (s SOS) FiltFilt(x []float64) ([]float64, error) {
	pad := s.PadLength()
	if len(x) <= pad {
		return nil, fmt.Errorf("%w: zero-phase filtering with %d sections needs more than %d samples, got %d",
			types.ErrInsufficientSamples, len(s.Sections), pad, len(x))
	}
	ext := oddExtend(x, pad)
	zi := steadyState(s.Sections)

	run(s.Sections, ext, scaledState(zi, ext[0]))
	reverse(ext)
	run(s.Sections, ext, scaledState(zi, ext[0]))
	reverse(ext)

	return append([]float64(nil), ext[pad:len(ext)-pad]...), nil
}

// Filter applies the cascade once, causally, starting from the steady state of the
// first sample.
func (s SOS) Filter(x []float64) ([]float64, error) {
	pad := s.PadLength()
	if len(x) <= pad {
		return nil, fmt.Errorf("%w: filtering with %d sections needs more than %d samples, got %d",
			types.ErrInsufficientSamples, len(s.Sections), pad, len(x))
	}
	out := append([]float64(nil), x...)
	run(s.Sections, out, scaledState(steadyState(s.Sections), x[0]))
	return out, nil
}

// Response evaluates the complex frequency response at each frequency in Hz.
func (s SOS) Response(freqs []float64) []complex128 {
	out := make([]complex128, len(freqs))
	for i, f := range freqs {
		w := 2 * math.Pi * f / s.SampleRate
		z1 := cmplx.Exp(complex(0, -w))
		z2 := z1 * z1
		h := complex(1, 0)
		for _, sec := range s.Sections {
			num := complex(sec[0], 0) + complex(sec[1], 0)*z1 + complex(sec[2], 0)*z2
			den := complex(sec[3], 0) + complex(sec[4], 0)*z1 + complex(sec[5], 0)*z2
			h *= num / den
		}
		out[i] = h
	}
	return out
}

// MagnitudeDB evaluates the gain in dB at each frequency in Hz.
func (s SOS) MagnitudeDB(freqs []float64) []float64 {
	h := s.Response(freqs)
	out := make([]float64, len(h))
	for i, v := range h {
		out[i] = 20 * math.Log10(math.Max(cmplx.Abs(v), 1e-300))
	}
	return out
}

func reverse(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}
