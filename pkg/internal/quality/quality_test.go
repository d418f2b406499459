package quality_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/joeydtaylor/ppglab/pkg/internal/quality"
	"github.com/joeydtaylor/ppglab/pkg/internal/types"
)

func waveform(t *testing.T, x []float64, fs float64) types.Waveform {
	t.Helper()
	w, err := types.NewWaveform(x, fs)
	if err != nil {
		t.Fatalf("NewWaveform: %v", err)
	}
	return w
}

func value(t *testing.T, m types.QualityMetrics, name string) float64 {
	t.Helper()
	v, ok := m.Get(name)
	if !ok {
		t.Fatalf("metric %s unavailable", name)
	}
	return v
}

func TestAssess_Sinusoid(t *testing.T) {
	const fs = 100.0
	x := make([]float64, 2000)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * 1.2 * float64(i) / fs)
	}
	m, err := quality.Assess(waveform(t, x, fs), quality.DefaultOptions())
	if err != nil {
		t.Fatalf("Assess: %v", err)
	}

	tests := []struct {
		name string
		want float64
		tol  float64
	}{
		{types.MetricMean, 0, 1e-3},
		{types.MetricRMS, 1 / math.Sqrt2, 1e-3},
		{types.MetricStd, 1 / math.Sqrt2, 1e-3},
		{types.MetricPeakToPeak, 2, 1e-3},
		{types.MetricCrestFactor, math.Sqrt2, 1e-3},
		{types.MetricShapeFactor, math.Pi / (2 * math.Sqrt2), 1e-3},
		{types.MetricImpulseFactor, math.Pi / 2, 1e-3},
		{types.MetricSkewness, 0, 1e-2},
		{types.MetricKurtosis, -1.5, 2e-2},
		{types.MetricQuickSNR, 2 / (6 / math.Sqrt2), 1e-3},
	}
	for _, tt := range tests {
		if got := value(t, m, tt.name); math.Abs(got-tt.want) > tt.tol {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
	}
	if snr := value(t, m, types.MetricSNR); snr < 20 {
		t.Errorf("in-band tone should have a high SNR, got %v dB", snr)
	}
	if dr := m[types.MetricDynamicRange]; dr.Unit != "linear" || math.Abs(dr.Value-2) > 1e-3 {
		t.Errorf("dynamic range = %+v", dr)
	}
}

func TestAssess_SNRDropsWithNoise(t *testing.T) {
	const fs = 100.0
	rng := rand.New(rand.NewSource(3))
	clean := make([]float64, 3000)
	noisy := make([]float64, 3000)
	for i := range clean {
		s := math.Sin(2 * math.Pi * 1.2 * float64(i) / fs)
		clean[i] = s + 0.01*rng.NormFloat64()
		noisy[i] = s + 1.0*rng.NormFloat64()
	}
	mc, err := quality.Assess(waveform(t, clean, fs), quality.DefaultOptions())
	if err != nil {
		t.Fatalf("Assess clean: %v", err)
	}
	mn, err := quality.Assess(waveform(t, noisy, fs), quality.DefaultOptions())
	if err != nil {
		t.Fatalf("Assess noisy: %v", err)
	}
	if value(t, mc, types.MetricSNR) <= value(t, mn, types.MetricSNR)+10 {
		t.Fatalf("expected clean SNR well above noisy SNR")
	}
}

func TestAssess_PositiveSignalDynamicRangeInDB(t *testing.T) {
	x := make([]float64, 500)
	for i := range x {
		x[i] = 10 + 9*math.Sin(2*math.Pi*float64(i)/100)
	}
	m, err := quality.Assess(waveform(t, x, 100), quality.DefaultOptions())
	if err != nil {
		t.Fatalf("Assess: %v", err)
	}
	dr := m[types.MetricDynamicRange]
	if dr.Unit != "dB" || math.Abs(dr.Value-20*math.Log10(19)) > 1e-2 {
		t.Fatalf("dynamic range = %+v", dr)
	}
}

func TestAssess_ConstantIsDegenerate(t *testing.T) {
	x := make([]float64, 100)
	for i := range x {
		x[i] = 3
	}
	m, err := quality.Assess(waveform(t, x, 50), quality.DefaultOptions())
	if !errors.Is(err, types.ErrDegenerateSignal) {
		t.Fatalf("expected ErrDegenerateSignal, got %v", err)
	}
	if m == nil {
		t.Fatal("expected metrics alongside the error")
	}
	for _, name := range []string{types.MetricCrestFactor, types.MetricShapeFactor, types.MetricImpulseFactor, types.MetricSNR} {
		if _, ok := m.Get(name); ok {
			t.Errorf("%s should be unavailable", name)
		}
		if mm, present := m[name]; !present || mm.Value != 0 {
			t.Errorf("%s should be present with a zero value, got %+v", name, mm)
		}
	}
	if v := value(t, m, types.MetricMean); v != 3 {
		t.Errorf("mean = %v", v)
	}
	if v := value(t, m, types.MetricPeakToPeak); v != 0 {
		t.Errorf("ptp = %v", v)
	}
}

func TestOptions_Validate(t *testing.T) {
	if err := (quality.Options{BandLow: 5, BandHigh: 1}).Validate(); err == nil {
		t.Fatal("expected inverted band to fail")
	}
	if err := quality.DefaultOptions().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}
