package builder

import (
	"errors"
	"math"
	"testing"
)

func TestMapFilter(t *testing.T) {
	doubled := Map([]float64{1, 2, 3}, func(v float64) float64 { return 2 * v })
	if doubled[2] != 6 {
		t.Fatalf("unexpected map result: %v", doubled)
	}
	odd := Filter([]int{1, 2, 3, 4}, func(v int) bool { return v%2 == 1 })
	if len(odd) != 2 || odd[1] != 3 {
		t.Fatalf("unexpected filter result: %v", odd)
	}
}

func TestStageByStage(t *testing.T) {
	o := DefaultPPGOptions()
	w, err := SyntheticPPG(o)
	if err != nil {
		t.Fatalf("SyntheticPPG: %v", err)
	}

	spec := FilterSpec{Family: Butterworth, Response: Bandpass, Order: 4, Cutoff: []float64{0.5, 5}}
	filtered, err := ApplyFilter(w, spec, ZeroPhase)
	if err != nil {
		t.Fatalf("ApplyFilter: %v", err)
	}
	if filtered.Len() != w.Len() {
		t.Fatalf("filter changed the length: %d != %d", filtered.Len(), w.Len())
	}

	extrema, err := DetectExtrema(filtered, DefaultPeakOptions(filtered.SampleRate()))
	if err != nil {
		t.Fatalf("DetectExtrema: %v", err)
	}
	hr, err := EstimateHeartRate(extrema.PeakTimes(), DefaultHeartRateOptions())
	if err != nil {
		t.Fatalf("EstimateHeartRate: %v", err)
	}
	if math.Abs(hr.Variability.MeanBPM-o.HeartRateBPM) > 2 {
		t.Fatalf("mean rate %v, want about %v", hr.Variability.MeanBPM, o.HeartRateBPM)
	}

	metrics, err := AssessQuality(filtered, DefaultQualityOptions())
	if err != nil {
		t.Fatalf("AssessQuality: %v", err)
	}
	if _, ok := metrics[MetricSNR]; !ok {
		t.Fatal("quality metrics are missing the snr")
	}
}

func TestDesignFilter_Invalid(t *testing.T) {
	_, err := DesignFilter(FilterSpec{Family: Butterworth, Response: Lowpass, Order: 4, Cutoff: []float64{60}}, 100)
	if !errors.Is(err, ErrInvalidFilterParameters) {
		t.Fatalf("expected InvalidFilterParameters above Nyquist, got %v", err)
	}
}
