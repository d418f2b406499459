package filter_test

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/joeydtaylor/ppglab/pkg/internal/filter"
	"github.com/joeydtaylor/ppglab/pkg/internal/types"
)

func sine(freq, fs float64, n int, amp float64) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = amp * math.Sin(2*math.Pi*freq*float64(i)/fs)
	}
	return x
}

func mustWaveform(t *testing.T, x []float64, fs float64) types.Waveform {
	t.Helper()
	w, err := types.NewWaveform(x, fs)
	if err != nil {
		t.Fatalf("NewWaveform: %v", err)
	}
	return w
}

func mustDesign(t *testing.T, spec types.FilterSpec, fs float64) filter.SOS {
	t.Helper()
	sos, err := filter.Design(spec, fs)
	if err != nil {
		t.Fatalf("Design(%+v): %v", spec, err)
	}
	return sos
}

func gainDB(sos filter.SOS, f float64) float64 {
	return sos.MagnitudeDB([]float64{f})[0]
}

func TestDesign_ButterworthLowpassCutoff(t *testing.T) {
	for _, order := range []int{1, 2, 3, 4, 6} {
		sos := mustDesign(t, types.FilterSpec{
			Family: types.Butterworth, Response: types.Lowpass, Order: order, Cutoff: []float64{5},
		}, 100)

		if got := gainDB(sos, 5); math.Abs(got+3.0103) > 0.05 {
			t.Errorf("order %d: gain at cutoff = %.3f dB, want -3.01", order, got)
		}
		if got := gainDB(sos, 0.01); math.Abs(got) > 0.01 {
			t.Errorf("order %d: DC gain = %.4f dB, want 0", order, got)
		}
		if want := len(sos.Sections); want != (order+1)/2 {
			t.Errorf("order %d: got %d sections", order, want)
		}
	}

	sos := mustDesign(t, types.FilterSpec{
		Family: types.Butterworth, Response: types.Lowpass, Order: 4, Cutoff: []float64{5},
	}, 100)
	if got := gainDB(sos, 20); got > -40 {
		t.Errorf("stopband gain at 20 Hz = %.2f dB, want < -40", got)
	}
}

func TestDesign_ButterworthHighpass(t *testing.T) {
	sos := mustDesign(t, types.FilterSpec{
		Family: types.Butterworth, Response: types.Highpass, Order: 4, Cutoff: []float64{1},
	}, 100)
	if got := gainDB(sos, 1); math.Abs(got+3.0103) > 0.05 {
		t.Errorf("gain at cutoff = %.3f dB", got)
	}
	if got := gainDB(sos, 10); got < -0.01 {
		t.Errorf("passband gain at 10 Hz = %.4f dB", got)
	}
	if got := gainDB(sos, 0.2); got > -50 {
		t.Errorf("stopband gain at 0.2 Hz = %.2f dB", got)
	}
}

func TestDesign_BandpassAndBandstop(t *testing.T) {
	bp := mustDesign(t, types.FilterSpec{
		Family: types.Butterworth, Response: types.Bandpass, Order: 2, Cutoff: []float64{0.5, 5},
	}, 100)
	center := math.Sqrt(0.5 * 5)
	if got := gainDB(bp, center); got < -0.2 {
		t.Errorf("bandpass centre gain = %.3f dB", got)
	}
	for _, f := range []float64{0.05, 40} {
		if got := gainDB(bp, f); got > -30 {
			t.Errorf("bandpass gain at %v Hz = %.2f dB, want < -30", f, got)
		}
	}

	bs := mustDesign(t, types.FilterSpec{
		Family: types.Butterworth, Response: types.Bandstop, Order: 4, Cutoff: []float64{45, 55},
	}, 250)
	if got := gainDB(bs, 50); got > -60 {
		t.Errorf("bandstop centre gain = %.2f dB", got)
	}
	if got := gainDB(bs, 10); math.Abs(got) > 0.05 {
		t.Errorf("bandstop passband gain = %.3f dB", got)
	}
}

func TestDesign_ChebyshevRipple(t *testing.T) {
	sos := mustDesign(t, types.FilterSpec{
		Family: types.Chebyshev1, Response: types.Lowpass, Order: 4, Cutoff: []float64{5},
		Ripple: types.Ripple{PassbandDB: 1},
	}, 100)
	for f := 0.05; f <= 5; f += 0.05 {
		if got := gainDB(sos, f); got > 0.01 || got < -1.01 {
			t.Fatalf("passband gain at %.2f Hz = %.3f dB outside [-1, 0]", f, got)
		}
	}
	if got := gainDB(sos, 5); math.Abs(got+1) > 0.02 {
		t.Errorf("gain at ripple edge = %.3f dB, want -1", got)
	}
	if got := gainDB(sos, 20); got > -50 {
		t.Errorf("stopband gain at 20 Hz = %.2f dB", got)
	}
}

func TestDesign_EllipticBounds(t *testing.T) {
	for _, order := range []int{3, 4} {
		sos := mustDesign(t, types.FilterSpec{
			Family: types.Elliptic, Response: types.Lowpass, Order: order, Cutoff: []float64{5},
			Ripple: types.Ripple{PassbandDB: 1, StopbandDB: 40},
		}, 100)
		for f := 0.05; f <= 5; f += 0.05 {
			if got := gainDB(sos, f); got > 0.02 || got < -1.02 {
				t.Fatalf("order %d: passband gain at %.2f Hz = %.3f dB", order, f, got)
			}
		}
		for f := 15.0; f < 50; f += 0.5 {
			if got := gainDB(sos, f); got > -39.5 {
				t.Fatalf("order %d: stopband gain at %.1f Hz = %.2f dB, want <= -40", order, f, got)
			}
		}
	}
}

func TestDesign_BesselFlatDelay(t *testing.T) {
	const fs = 100.0
	sos := mustDesign(t, types.FilterSpec{
		Family: types.Bessel, Response: types.Lowpass, Order: 4, Cutoff: []float64{5},
	}, fs)

	delay := func(f float64) float64 {
		const df = 1e-3
		h := sos.Response([]float64{f - df, f + df})
		return -cmplx.Phase(h[1]/h[0]) / (2 * math.Pi * 2 * df)
	}
	d0, d1 := delay(0.5), delay(2)
	if math.Abs(d1-d0)/d0 > 0.05 {
		t.Errorf("group delay not flat: %.5f s at 0.5 Hz vs %.5f s at 2 Hz", d0, d1)
	}
	if got := gainDB(sos, 0.01); math.Abs(got) > 0.01 {
		t.Errorf("Bessel DC gain = %.4f dB", got)
	}
	if got := gainDB(sos, 40); got > -30 {
		t.Errorf("Bessel stopband gain = %.2f dB", got)
	}
}

func TestDesign_InvalidParameters(t *testing.T) {
	tests := []struct {
		name string
		spec types.FilterSpec
	}{
		{"cutoff at nyquist", types.FilterSpec{Family: types.Butterworth, Response: types.Lowpass, Order: 2, Cutoff: []float64{50}}},
		{"zero order", types.FilterSpec{Family: types.Butterworth, Response: types.Lowpass, Order: 0, Cutoff: []float64{5}}},
		{"band reversed", types.FilterSpec{Family: types.Butterworth, Response: types.Bandpass, Order: 2, Cutoff: []float64{5, 0.5}}},
		{"band missing edge", types.FilterSpec{Family: types.Butterworth, Response: types.Bandstop, Order: 2, Cutoff: []float64{5}}},
		{"cheby without ripple", types.FilterSpec{Family: types.Chebyshev1, Response: types.Lowpass, Order: 2, Cutoff: []float64{5}}},
		{"ellip stopband below ripple", types.FilterSpec{Family: types.Elliptic, Response: types.Lowpass, Order: 2, Cutoff: []float64{5}, Ripple: types.Ripple{PassbandDB: 3, StopbandDB: 1}}},
		{"unknown family", types.FilterSpec{Family: "cheby2", Response: types.Lowpass, Order: 2, Cutoff: []float64{5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := filter.Design(tt.spec, 100); !errors.Is(err, types.ErrInvalidFilterParameters) {
				t.Fatalf("expected ErrInvalidFilterParameters, got %v", err)
			}
		})
	}
}

func TestApply_PassbandAndStopbandAmplitude(t *testing.T) {
	const fs = 100.0
	spec := types.FilterSpec{Family: types.Butterworth, Response: types.Bandpass, Order: 2, Cutoff: []float64{0.5, 5}}

	check := func(freq float64) float64 {
		w := mustWaveform(t, sine(freq, fs, 3000, 1), fs)
		out, err := filter.Apply(w, spec, types.ZeroPhase)
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		peak := 0.0
		for i := 1000; i < 2000; i++ {
			peak = math.Max(peak, math.Abs(out.At(i)))
		}
		return 20 * math.Log10(peak)
	}

	if loss := check(1.5); loss < -1 {
		t.Errorf("passband tone lost %.2f dB", -loss)
	}
	if loss := check(30); loss > -40 {
		t.Errorf("stopband tone only attenuated %.2f dB", -loss)
	}
}

func lagOf(a, b []float64, maxLag int) int {
	best, bestLag := math.Inf(-1), 0
	for lag := -maxLag; lag <= maxLag; lag++ {
		var s float64
		for i := maxLag; i < len(a)-maxLag; i++ {
			s += a[i] * b[i+lag]
		}
		if s > best {
			best, bestLag = s, lag
		}
	}
	return bestLag
}

func TestApply_ZeroPhaseVersusCausalLag(t *testing.T) {
	const fs = 100.0
	x := sine(2, fs, 1000, 1)
	w := mustWaveform(t, x, fs)
	spec := types.FilterSpec{Family: types.Butterworth, Response: types.Lowpass, Order: 4, Cutoff: []float64{5}}

	zero, err := filter.Apply(w, spec, types.ZeroPhase)
	if err != nil {
		t.Fatalf("zero-phase Apply: %v", err)
	}
	causal, err := filter.Apply(w, spec, types.Causal)
	if err != nil {
		t.Fatalf("causal Apply: %v", err)
	}

	mid := x[200:800]
	if lag := lagOf(mid, zero.Samples()[200:800], 20); lag != 0 {
		t.Errorf("zero-phase lag = %d samples, want 0", lag)
	}
	if lag := lagOf(mid, causal.Samples()[200:800], 20); lag <= 0 {
		t.Errorf("causal lag = %d samples, want > 0", lag)
	}
}

func TestApply_InsufficientSamples(t *testing.T) {
	spec := types.FilterSpec{Family: types.Butterworth, Response: types.Lowpass, Order: 4, Cutoff: []float64{5}}
	sos := mustDesign(t, spec, 100)
	pad := sos.PadLength()
	if pad != 15 {
		t.Fatalf("pad length = %d, want 15", pad)
	}

	short := mustWaveform(t, sine(1, 100, pad, 1), 100)
	if _, err := filter.Apply(short, spec, types.ZeroPhase); !errors.Is(err, types.ErrInsufficientSamples) {
		t.Fatalf("expected ErrInsufficientSamples, got %v", err)
	}
	if _, err := filter.Apply(short, spec, types.Causal); !errors.Is(err, types.ErrInsufficientSamples) {
		t.Fatalf("expected ErrInsufficientSamples in causal mode, got %v", err)
	}

	ok := mustWaveform(t, sine(1, 100, pad+1, 1), 100)
	if _, err := filter.Apply(ok, spec, types.ZeroPhase); err != nil {
		t.Fatalf("unexpected error at pad+1 samples: %v", err)
	}
}

func TestApply_ConstantSignalAndNoMutation(t *testing.T) {
	x := make([]float64, 500)
	for i := range x {
		x[i] = 3.5
	}
	w := mustWaveform(t, x, 100)
	out, err := filter.Apply(w, types.FilterSpec{
		Family: types.Butterworth, Response: types.Lowpass, Order: 4, Cutoff: []float64{5},
	}, types.ZeroPhase)
	if err != nil {
		t.Fatalf("Apply on constant: %v", err)
	}
	for i := 0; i < out.Len(); i++ {
		if math.Abs(out.At(i)-3.5) > 1e-9 {
			t.Fatalf("sample %d = %v, want 3.5", i, out.At(i))
		}
	}
	if w.At(0) != 3.5 || x[0] != 3.5 {
		t.Fatalf("input was mutated")
	}

	hp, err := filter.Apply(w, types.FilterSpec{
		Family: types.Butterworth, Response: types.Highpass, Order: 2, Cutoff: []float64{0.5},
	}, types.ZeroPhase)
	if err != nil {
		t.Fatalf("highpass on constant: %v", err)
	}
	for i := 0; i < hp.Len(); i++ {
		if math.Abs(hp.At(i)) > 1e-9 {
			t.Fatalf("highpass sample %d = %v, want 0", i, hp.At(i))
		}
	}
}

func TestNotch_RejectsMains(t *testing.T) {
	const fs = 250.0
	x := sine(1.2, fs, 2500, 1)
	hum := sine(50, fs, 2500, 0.5)
	for i := range x {
		x[i] += hum[i]
	}
	out, err := filter.Notch(mustWaveform(t, x, fs), types.NotchSpec{})
	if err != nil {
		t.Fatalf("Notch: %v", err)
	}
	clean := sine(1.2, fs, 2500, 1)
	var maxErr float64
	for i := 500; i < 2000; i++ {
		maxErr = math.Max(maxErr, math.Abs(out.At(i)-clean[i]))
	}
	if maxErr > 0.02 {
		t.Errorf("residual after notch = %v", maxErr)
	}

	if _, err := filter.Notch(mustWaveform(t, x[:200], 100), types.NotchSpec{}); !errors.Is(err, types.ErrInvalidFilterParameters) {
		t.Errorf("expected invalid parameters for 50 Hz notch at 100 Hz, got %v", err)
	}
}

func TestDetrendInvertDerivatives(t *testing.T) {
	x := make([]float64, 50)
	for i := range x {
		x[i] = 2 + 0.5*float64(i)
	}
	w := mustWaveform(t, x, 10)

	lin, err := filter.Detrend(w, types.DetrendLinear)
	if err != nil {
		t.Fatalf("Detrend linear: %v", err)
	}
	for i := 0; i < lin.Len(); i++ {
		if math.Abs(lin.At(i)) > 1e-9 {
			t.Fatalf("linear detrend left %v at %d", lin.At(i), i)
		}
	}

	mean, err := filter.Detrend(w, types.DetrendMean)
	if err != nil {
		t.Fatalf("Detrend mean: %v", err)
	}
	var sum float64
	for _, v := range mean.Samples() {
		sum += v
	}
	if math.Abs(sum) > 1e-9 {
		t.Fatalf("mean detrend left sum %v", sum)
	}

	if _, err := filter.Detrend(w, "quadratic"); !errors.Is(err, types.ErrInvalidFilterParameters) {
		t.Fatalf("expected error for unknown detrend mode, got %v", err)
	}

	inv := filter.Invert(w)
	if inv.At(3) != -x[3] {
		t.Fatalf("Invert: got %v", inv.At(3))
	}

	sq := make([]float64, 20)
	for i := range sq {
		sq[i] = float64(i * i)
	}
	sd := filter.SecondDerivative(mustWaveform(t, sq, 10))
	for i := 2; i < 18; i++ {
		if math.Abs(sd.At(i)-2) > 1e-12 {
			t.Fatalf("second derivative at %d = %v, want 2", i, sd.At(i))
		}
	}
}

func TestAbsorbance(t *testing.T) {
	a := filter.Absorbance(mustWaveform(t, []float64{100, 200, 300, 400, 500}, 10))
	if math.Abs(a.At(2)) > 1e-12 {
		t.Errorf("absorbance at the median = %v, want 0", a.At(2))
	}
	if !(a.At(0) > 0 && a.At(4) < 0) {
		t.Errorf("unexpected absorbance signs: %v", a.Samples())
	}

	z := filter.Absorbance(mustWaveform(t, []float64{0, 100, 200}, 10))
	for _, v := range z.Samples() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("absorbance not finite: %v", z.Samples())
		}
	}
}

func TestApplySOS_RateMismatch(t *testing.T) {
	sos := mustDesign(t, types.FilterSpec{
		Family: types.Butterworth, Response: types.Lowpass, Order: 2, Cutoff: []float64{5},
	}, 100)
	w := mustWaveform(t, sine(1, 200, 400, 1), 200)
	if _, err := filter.ApplySOS(w, sos, types.ZeroPhase); !errors.Is(err, types.ErrInvalidFilterParameters) {
		t.Fatalf("expected rate mismatch error, got %v", err)
	}
}
