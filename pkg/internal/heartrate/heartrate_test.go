package heartrate_test

import (
	"errors"
	"math"
	"testing"

	"github.com/joeydtaylor/ppglab/pkg/internal/heartrate"
	"github.com/joeydtaylor/ppglab/pkg/internal/types"
)

func uniformPeaks(n int, interval float64) []float64 {
	t := make([]float64, n)
	for i := range t {
		t[i] = float64(i) * interval
	}
	return t
}

func TestEstimate_Uniform60BPM(t *testing.T) {
	res, err := heartrate.Estimate(uniformPeaks(21, 1), heartrate.DefaultOptions())
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if len(res.Raw) != 20 || len(res.Smoothed) != 20 {
		t.Fatalf("expected 20 raw and smoothed points, got %d/%d", len(res.Raw), len(res.Smoothed))
	}
	for i, p := range res.Raw {
		if math.Abs(p.BPM-60) > 0.5 || !p.Plausible {
			t.Fatalf("raw point %d = %+v", i, p)
		}
		if p.Time != float64(i+1) {
			t.Fatalf("raw point %d stamped at %v, want later peak %v", i, p.Time, float64(i+1))
		}
	}
	for i, p := range res.Smoothed {
		if math.Abs(p.BPM-60) > 0.5 {
			t.Fatalf("smoothed point %d = %v bpm", i, p.BPM)
		}
	}
	if res.Variability.SDNNMs > 1e-9 || res.Variability.RMSSDMs > 1e-9 {
		t.Errorf("uniform beats should have no variability: %+v", res.Variability)
	}
	if math.Abs(res.Variability.MeanBPM-60) > 1e-9 || math.Abs(res.Variability.MeanIBIMs-1000) > 1e-9 {
		t.Errorf("unexpected means: %+v", res.Variability)
	}
	if len(res.Variability.Poincare) != 19 {
		t.Errorf("expected 19 Poincare points, got %d", len(res.Variability.Poincare))
	}
}

func TestEstimate_MissedBeatStaysLocal(t *testing.T) {
	peaks := uniformPeaks(21, 1)
	peaks = append(peaks[:10], peaks[11:]...)

	opts := heartrate.DefaultOptions()
	res, err := heartrate.Estimate(peaks, opts)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if res.Implausible != 1 {
		t.Fatalf("expected the doubled interval (30 bpm) flagged, got %d implausible", res.Implausible)
	}
	if len(res.Raw) != 19 || len(res.Smoothed) != 18 {
		t.Fatalf("unexpected trend lengths raw=%d smoothed=%d", len(res.Raw), len(res.Smoothed))
	}
	for _, p := range res.Smoothed {
		if math.Abs(p.BPM-60) > 0.5 {
			t.Fatalf("smoothed trend corrupted at t=%v: %v bpm", p.Time, p.BPM)
		}
	}
}

func TestEstimate_MedianRejectsShortOutlier(t *testing.T) {
	// An extra detection splits one beat into 0.6 s + 0.4 s; 100 and 150 bpm are both
	// plausible, so only the median protects the smoothed trend.
	peaks := []float64{0, 1, 2, 3, 4, 4.6, 5, 6, 7, 8, 9, 10}
	res, err := heartrate.Estimate(peaks, heartrate.DefaultOptions())
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if res.Implausible != 0 {
		t.Fatalf("expected all beats plausible, got %d", res.Implausible)
	}
	window := 5
	for i, p := range res.Smoothed {
		if math.Abs(p.BPM-60) > 0.5 && (i < 4-window/2 || i > 5+window/2) {
			t.Fatalf("outlier leaked beyond one window at index %d (%v bpm)", i, p.BPM)
		}
	}
	if p := res.Smoothed[0]; math.Abs(p.BPM-60) > 0.5 {
		t.Fatalf("first smoothed point %v", p.BPM)
	}
}

func TestEstimate_SecondsWindow(t *testing.T) {
	opts := heartrate.Options{HRMin: 40, HRMax: 180, Window: heartrate.Window{Seconds: 4}}
	res, err := heartrate.Estimate(uniformPeaks(11, 0.5), opts)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	for _, p := range res.Smoothed {
		if math.Abs(p.BPM-120) > 1e-9 {
			t.Fatalf("expected 120 bpm, got %v", p.BPM)
		}
	}
}

func TestEstimate_Variability(t *testing.T) {
	peaks := []float64{0, 0.8, 1.8, 2.6, 3.6}
	res, err := heartrate.Estimate(peaks, heartrate.DefaultOptions())
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	v := res.Variability
	if math.Abs(v.MeanIBIMs-900) > 1e-6 {
		t.Errorf("mean IBI = %v", v.MeanIBIMs)
	}
	if math.Abs(v.SDNNMs-100) > 1e-6 {
		t.Errorf("SDNN = %v", v.SDNNMs)
	}
	if math.Abs(v.RMSSDMs-200) > 1e-6 {
		t.Errorf("RMSSD = %v", v.RMSSDMs)
	}
	// successive differences +200, -200, +200 have mean 66.7
	if want := math.Sqrt(3*200*200/3.0 - 200.0*200/9); math.Abs(v.SDSDMs-want) > 1e-6 {
		t.Errorf("SDSD = %v, want %v", v.SDSDMs, want)
	}
	if math.Abs(v.SD1Ms-v.SDSDMs/math.Sqrt2) > 1e-9 {
		t.Errorf("SD1 = %v", v.SD1Ms)
	}
}

func TestEstimate_VariabilitySkipsDroppedBeats(t *testing.T) {
	// intervals 1.0, 1.0, 2.0 (30 bpm, implausible), 0.8, 0.8
	peaks := []float64{0, 1, 2, 4, 4.8, 5.6}
	res, err := heartrate.Estimate(peaks, heartrate.DefaultOptions())
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if res.Implausible != 1 {
		t.Fatalf("expected one implausible beat, got %d", res.Implausible)
	}
	v := res.Variability
	if v.Beats != 4 {
		t.Fatalf("expected 4 plausible beats, got %d", v.Beats)
	}
	if len(v.Poincare) != 2 {
		t.Fatalf("expected 2 Poincare pairs, got %d (%+v)", len(v.Poincare), v.Poincare)
	}
	for _, p := range v.Poincare {
		if math.Abs(p.Current-p.Next) > 1e-9 {
			t.Fatalf("pair %+v bridges the dropped beat", p)
		}
	}
	if v.RMSSDMs > 1e-6 || v.SDSDMs > 1e-6 {
		t.Fatalf("RMSSD=%v SDSD=%v, want 0 without the bridged 1.0->0.8 step", v.RMSSDMs, v.SDSDMs)
	}
	if math.Abs(v.MeanIBIMs-900) > 1e-6 {
		t.Fatalf("mean IBI = %v", v.MeanIBIMs)
	}
}

func TestEstimate_Errors(t *testing.T) {
	if _, err := heartrate.Estimate([]float64{1}, heartrate.DefaultOptions()); !errors.Is(err, types.ErrInsufficientBeats) {
		t.Fatalf("expected ErrInsufficientBeats, got %v", err)
	}
	if _, err := heartrate.Estimate(nil, heartrate.DefaultOptions()); !errors.Is(err, types.ErrInsufficientBeats) {
		t.Fatalf("expected ErrInsufficientBeats, got %v", err)
	}
	bad := heartrate.Options{HRMin: 100, HRMax: 50}
	if _, err := heartrate.Estimate(uniformPeaks(5, 1), bad); !errors.Is(err, types.ErrInvalidParameters) {
		t.Fatalf("expected inverted bounds to fail with a parameter error, got %v", err)
	}
}

func TestSpectralRate(t *testing.T) {
	const fs = 100.0
	const bpm = 72.0
	x := make([]float64, 3000)
	for i := range x {
		x[i] = 2 + math.Sin(2*math.Pi*bpm/60*float64(i)/fs)
	}
	w, err := types.NewWaveform(x, fs)
	if err != nil {
		t.Fatalf("NewWaveform: %v", err)
	}
	got, err := heartrate.SpectralRate(w, heartrate.DefaultOptions())
	if err != nil {
		t.Fatalf("SpectralRate: %v", err)
	}
	if math.Abs(got-bpm) > 3 {
		t.Fatalf("spectral rate %v, want %v", got, bpm)
	}
}
