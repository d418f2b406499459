package filter

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"github.com/joeydtaylor/ppglab/pkg/internal/types"
	"gonum.org/v1/gonum/mat"
)

// butterworthPrototype returns the unit-cutoff analog Butterworth lowpass.
func butterworthPrototype(n int) zpk {
	p := make([]complex128, 0, n)
	for m := -n + 1; m < n; m += 2 {
		p = append(p, -cmplx.Exp(complex(0, math.Pi*float64(m)/float64(2*n))))
	}
	return zpk{p: p, k: 1}
}

// chebyshev1Prototype returns the analog Chebyshev type I lowpass with rp dB ripple.
func chebyshev1Prototype(n int, rp float64) zpk {
	eps := math.Sqrt(math.Pow(10, 0.1*rp) - 1)
	mu := math.Asinh(1/eps) / float64(n)

	p := make([]complex128, 0, n)
	for m := -n + 1; m < n; m += 2 {
		theta := math.Pi * float64(m) / float64(2*n)
		p = append(p, -cmplx.Sinh(complex(mu, theta)))
	}
	k := real(prodNeg(p))
	if n%2 == 0 {
		k /= math.Sqrt(1 + eps*eps)
	}
	return zpk{p: p, k: k}
}

// ellipticPrototype returns the analog elliptic (Cauer) lowpass with rp dB passband
// ripple and rs dB stopband attenuation.
func ellipticPrototype(n int, rp, rs float64) (zpk, error) {
	const tiny = 2e-16

	if n == 1 {
		p := -math.Sqrt(1 / math.Expm1(0.1*rp*math.Ln10))
		return zpk{p: []complex128{complex(p, 0)}, k: -p}, nil
	}

	epsSq := math.Expm1(0.1 * rp * math.Ln10)
	eps := math.Sqrt(epsSq)
	ck1Sq := epsSq / math.Expm1(0.1*rs*math.Ln10)
	if ck1Sq == 0 {
		return zpk{}, fmt.Errorf("%w: elliptic ripple parameters leave no transition band", types.ErrInvalidFilterParameters)
	}
	k1 := ellipK(ck1Sq)

	m := ellipticDegree(n, ck1Sq)
	capK := ellipK(m)

	var zeros, poles []complex128
	var sn, cn, dn []float64
	for j := 1 - n%2; j < n; j += 2 {
		s, c, d := ellipJ(float64(j)*capK/float64(n), m)
		sn = append(sn, s)
		cn = append(cn, c)
		dn = append(dn, d)
		if math.Abs(s) > tiny {
			zeros = append(zeros, complex(0, 1/(math.Sqrt(m)*s)))
		}
	}
	for i := len(zeros) - 1; i >= 0; i-- {
		zeros = append(zeros, cmplx.Conj(zeros[i]))
	}

	r, err := arcJacSC1(1/eps, ck1Sq)
	if err != nil {
		return zpk{}, err
	}
	v0 := capK * r / (float64(n) * k1)
	sv, cv, dv := ellipJ(v0, 1-m)

	for i := range sn {
		num := complex(cn[i]*dn[i]*sv*cv, sn[i]*dv)
		den := complex(1-(dn[i]*sv)*(dn[i]*sv), 0)
		poles = append(poles, -num/den)
	}

	if n%2 == 1 {
		var norm float64
		for _, p := range poles {
			norm += real(p * cmplx.Conj(p))
		}
		norm = math.Sqrt(norm)
		count := len(poles)
		for i := 0; i < count; i++ {
			if math.Abs(imag(poles[i])) > tiny*norm {
				poles = append(poles, cmplx.Conj(poles[i]))
			}
		}
	} else {
		count := len(poles)
		for i := 0; i < count; i++ {
			poles = append(poles, cmplx.Conj(poles[i]))
		}
	}

	k := real(prodNeg(poles) / prodNeg(zeros))
	if n%2 == 0 {
		k /= math.Sqrt(1 + epsSq)
	}
	return zpk{z: zeros, p: poles, k: k}, nil
}

// besselPrototype returns the phase-normalized analog Bessel lowpass: the roots of
// the reverse Bessel polynomial scaled so the high-frequency phase asymptote meets
// the unit cutoff.
func besselPrototype(n int) (zpk, error) {
	// a[k] = (2n-k)! / (2^(n-k) k! (n-k)!), a[n] = 1.
	a := make([]float64, n+1)
	for k := 0; k <= n; k++ {
		a[k] = math.Exp(lgamma(2*n-k+1) - float64(n-k)*math.Ln2 - lgamma(k+1) - lgamma(n-k+1))
	}
	a[n] = 1

	// Substituting s = c*x with c = a[0]^(1/n) makes the constant term 1 and
	// places the roots directly on the phase-normalized scale.
	c := math.Pow(a[0], 1/float64(n))
	b := make([]float64, n)
	for k := 0; k < n; k++ {
		b[k] = a[k] * math.Pow(c, float64(k-n))
	}

	if n == 1 {
		return zpk{p: []complex128{complex(-b[0], 0)}, k: 1}, nil
	}

	companion := mat.NewDense(n, n, nil)
	for j := 0; j < n; j++ {
		companion.Set(0, j, -b[n-1-j])
	}
	for i := 1; i < n; i++ {
		companion.Set(i, i-1, 1)
	}

	var eig mat.Eigen
	if ok := eig.Factorize(companion, mat.EigenNone); !ok {
		return zpk{}, fmt.Errorf("%w: bessel order %d did not converge", types.ErrInvalidFilterParameters, n)
	}
	p := eig.Values(nil)
	sort.Slice(p, func(i, j int) bool {
		if imag(p[i]) != imag(p[j]) {
			return imag(p[i]) < imag(p[j])
		}
		return real(p[i]) < real(p[j])
	})
	return zpk{p: p, k: 1}, nil
}

func lgamma(x int) float64 {
	v, _ := math.Lgamma(float64(x))
	return v
}
