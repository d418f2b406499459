package filter

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/joeydtaylor/ppglab/pkg/internal/types"
)

const machEp = 1.11022302462515654042e-16

// agm is the arithmetic-geometric mean of a and b.
func agm(a, b float64) float64 {
	for i := 0; i < 64 && math.Abs(a-b) > machEp*math.Abs(a); i++ {
		a, b = 0.5*(a+b), math.Sqrt(a*b)
	}
	return a
}

// ellipK is the complete elliptic integral of the first kind with parameter m.
func ellipK(m float64) float64 {
	if m >= 1 {
		return math.Inf(1)
	}
	return math.Pi / (2 * agm(1, math.Sqrt(1-m)))
}

// ellipKm1 is ellipK(1-p), accurate for small p.
func ellipKm1(p float64) float64 {
	if p <= 0 {
		return math.Inf(1)
	}
	return math.Pi / (2 * agm(1, math.Sqrt(p)))
}

// ellipticDegree solves the degree equation for the elliptic parameter m given the
// order n and the selectivity parameter m1, using the nome series.
func ellipticDegree(n int, m1 float64) float64 {
	const terms = 7

	k1 := ellipK(m1)
	k1p := ellipKm1(m1)
	q1 := math.Exp(-math.Pi * k1p / k1)
	q := math.Pow(q1, 1/float64(n))

	var num, den float64
	for i := 0; i <= terms; i++ {
		num += math.Pow(q, float64(i*(i+1)))
	}
	for i := 1; i <= terms+1; i++ {
		den += math.Pow(q, float64(i*i))
	}
	den = 1 + 2*den
	return 16 * q * math.Pow(num/den, 4)
}

// ellipJ evaluates the Jacobi elliptic functions sn, cn and dn at u with parameter m
// in [0, 1] by the descending Landen (AGM) transformation.
func ellipJ(u, m float64) (sn, cn, dn float64) {
	if m < 0 || m > 1 || math.IsNaN(m) {
		return math.NaN(), math.NaN(), math.NaN()
	}
	if m < 1e-9 {
		t := math.Sin(u)
		b := math.Cos(u)
		ai := 0.25 * m * (u - t*b)
		return t - ai*b, b + ai*t, 1 - 0.5*m*t*t
	}
	if m >= 0.9999999999 {
		ai := 0.25 * (1 - m)
		b := math.Cosh(u)
		t := math.Tanh(u)
		phi := 1 / b
		twon := b * math.Sinh(u)
		sn = t + ai*(twon-u)/(b*b)
		ai *= t * phi
		cn = phi - ai*(twon-u)
		dn = phi + ai*(twon+u)
		return sn, cn, dn
	}

	var a, c [9]float64
	a[0] = 1
	b := math.Sqrt(1 - m)
	c[0] = math.Sqrt(m)
	twon := 1.0
	i := 0
	for math.Abs(c[i]/a[i]) > machEp {
		if i > 7 {
			break
		}
		ai := a[i]
		i++
		c[i] = (ai - b) / 2
		t := math.Sqrt(ai * b)
		a[i] = (ai + b) / 2
		b = t
		twon *= 2
	}

	phi := twon * a[i] * u
	var prev float64
	for ; i > 0; i-- {
		t := c[i] * math.Sin(phi) / a[i]
		prev = phi
		phi = (math.Asin(t) + phi) / 2
	}
	sn = math.Sin(phi)
	cn = math.Cos(phi)
	dn = cn / math.Cos(phi-prev)
	return sn, cn, dn
}

// arcJacSN inverts sn(z, m) for complex w by Landen transformations.
func arcJacSN(w complex128, m float64) (complex128, error) {
	const maxIter = 10

	complement := func(kx complex128) complex128 {
		return cmplx.Sqrt((1 - kx) * (1 + kx))
	}

	k := math.Sqrt(m)
	if k > 1 {
		return cmplx.NaN(), nil
	}
	if k == 1 {
		return cmplx.Atanh(w), nil
	}

	ks := []float64{k}
	for ks[len(ks)-1] != 0 {
		kp := math.Sqrt((1 - ks[len(ks)-1]) * (1 + ks[len(ks)-1]))
		ks = append(ks, (1-kp)/(1+kp))
		if len(ks)-1 > maxIter {
			return 0, fmt.Errorf("%w: Landen transformation did not converge", types.ErrInvalidFilterParameters)
		}
	}

	capK := math.Pi / 2
	for _, kn := range ks[1:] {
		capK *= 1 + kn
	}

	wn := w
	for i := 0; i+1 < len(ks); i++ {
		kn := complex(ks[i], 0)
		knext := complex(ks[i+1], 0)
		wn = 2 * wn / ((1 + knext) * (1 + complement(kn*wn)))
	}
	u := 2 / math.Pi * cmplx.Asin(wn)
	return complex(capK, 0) * u, nil
}

// arcJacSC1 is the real inverse of the Jacobi sc function with complementary
// parameter m, evaluated through arcJacSN on the imaginary axis.
func arcJacSC1(w, m float64) (float64, error) {
	z, err := arcJacSN(complex(0, w), m)
	if err != nil {
		return 0, err
	}
	if math.Abs(real(z)) > 1e-14 {
		return 0, fmt.Errorf("%w: elliptic selectivity out of range", types.ErrInvalidFilterParameters)
	}
	return imag(z), nil
}
