package filter

import (
	"math"
	"math/cmplx"
)

// zpk is a filter in zeros, poles and gain form, analog or digital.
type zpk struct {
	z []complex128
	p []complex128
	k float64
}

func (f zpk) degree() int { return len(f.p) - len(f.z) }

func prodNeg(xs []complex128) complex128 {
	out := complex(1, 0)
	for _, x := range xs {
		out *= -x
	}
	return out
}

func scaled(xs []complex128, s complex128) []complex128 {
	out := make([]complex128, len(xs))
	for i, x := range xs {
		out[i] = x * s
	}
	return out
}

func repeat(v complex128, n int) []complex128 {
	out := make([]complex128, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// lowpassToLowpass moves a unit-cutoff prototype to cutoff wo.
func lowpassToLowpass(f zpk, wo float64) zpk {
	w := complex(wo, 0)
	return zpk{
		z: scaled(f.z, w),
		p: scaled(f.p, w),
		k: f.k * math.Pow(wo, float64(f.degree())),
	}
}

// lowpassToHighpass maps s to wo/s, adding zeros at the origin.
func lowpassToHighpass(f zpk, wo float64) zpk {
	w := complex(wo, 0)
	z := make([]complex128, 0, len(f.p))
	for _, x := range f.z {
		z = append(z, w/x)
	}
	z = append(z, repeat(0, f.degree())...)
	p := make([]complex128, len(f.p))
	for i, x := range f.p {
		p[i] = w / x
	}
	return zpk{z: z, p: p, k: f.k * real(prodNeg(f.z)/prodNeg(f.p))}
}

// bandSplit maps every root x to x*bw/2 ± sqrt((x*bw/2)^2 - wo^2).
func bandSplit(xs []complex128, half complex128, wo float64) []complex128 {
	out := make([]complex128, 0, 2*len(xs))
	w2 := complex(wo*wo, 0)
	for _, x := range xs {
		out = append(out, x*half+cmplx.Sqrt(x*half*x*half-w2))
	}
	for _, x := range xs {
		out = append(out, x*half-cmplx.Sqrt(x*half*x*half-w2))
	}
	return out
}

// lowpassToBandpass centres the prototype on wo with bandwidth bw.
func lowpassToBandpass(f zpk, wo, bw float64) zpk {
	half := complex(bw/2, 0)
	z := bandSplit(f.z, half, wo)
	z = append(z, repeat(0, f.degree())...)
	return zpk{
		z: z,
		p: bandSplit(f.p, half, wo),
		k: f.k * math.Pow(bw, float64(f.degree())),
	}
}

// lowpassToBandstop rejects a band of width bw centred on wo.
func lowpassToBandstop(f zpk, wo, bw float64) zpk {
	half := complex(bw/2, 0)
	inv := func(xs []complex128) []complex128 {
		out := make([]complex128, len(xs))
		for i, x := range xs {
			out[i] = half / x
		}
		return out
	}
	one := complex(1, 0)
	z := bandSplit(inv(f.z), one, wo)
	p := bandSplit(inv(f.p), one, wo)
	d := f.degree()
	z = append(z, repeat(complex(0, wo), d)...)
	z = append(z, repeat(complex(0, -wo), d)...)
	return zpk{z: z, p: p, k: f.k * real(prodNeg(f.z)/prodNeg(f.p))}
}

// bilinear maps an analog zpk to the z-plane for sampling rate fs, sending the
// excess analog zeros at infinity to Nyquist.
func bilinear(f zpk, fs float64) zpk {
	fs2 := complex(2*fs, 0)
	z := make([]complex128, 0, len(f.p))
	for _, x := range f.z {
		z = append(z, (fs2+x)/(fs2-x))
	}
	z = append(z, repeat(-1, f.degree())...)
	p := make([]complex128, len(f.p))
	for i, x := range f.p {
		p[i] = (fs2 + x) / (fs2 - x)
	}
	num, den := complex(1, 0), complex(1, 0)
	for _, x := range f.z {
		num *= fs2 - x
	}
	for _, x := range f.p {
		den *= fs2 - x
	}
	return zpk{z: z, p: p, k: f.k * real(num/den)}
}
