package dualchannel_test

import (
	"errors"
	"math"
	"testing"

	"github.com/joeydtaylor/ppglab/pkg/internal/dualchannel"
	"github.com/joeydtaylor/ppglab/pkg/internal/filter"
	"github.com/joeydtaylor/ppglab/pkg/internal/peaks"
	"github.com/joeydtaylor/ppglab/pkg/internal/synth"
	"github.com/joeydtaylor/ppglab/pkg/internal/types"
)

type prepared struct {
	frame, filtered types.DualChannelFrame
	red, ir         types.ExtremaSet
}

func prepare(t *testing.T, frame types.DualChannelFrame) prepared {
	t.Helper()
	red, err := filter.Detrend(frame.Red, types.DetrendMean)
	if err != nil {
		t.Fatalf("Detrend red: %v", err)
	}
	ir, err := filter.Detrend(frame.IR, types.DetrendMean)
	if err != nil {
		t.Fatalf("Detrend ir: %v", err)
	}
	filtered, err := types.NewDualChannelFrame(red, ir)
	if err != nil {
		t.Fatalf("NewDualChannelFrame: %v", err)
	}
	opts := peaks.DefaultOptions(frame.SampleRate())
	redExt, err := peaks.DetectExtrema(red, opts)
	if err != nil {
		t.Fatalf("DetectExtrema red: %v", err)
	}
	irExt, err := peaks.DetectExtrema(ir, opts)
	if err != nil {
		t.Fatalf("DetectExtrema ir: %v", err)
	}
	return prepared{frame: frame, filtered: filtered, red: redExt, ir: irExt}
}

func TestAnalyzePair_IdenticalChannels(t *testing.T) {
	w, err := synth.PPG(synth.DefaultPPGOptions())
	if err != nil {
		t.Fatalf("PPG: %v", err)
	}
	frame, err := types.NewDualChannelFrame(w, w)
	if err != nil {
		t.Fatalf("NewDualChannelFrame: %v", err)
	}
	p := prepare(t, frame)
	if n := len(p.ir.PeakIndices()); n != 36 {
		t.Fatalf("expected 36 systolic peaks, got %d", n)
	}

	o := dualchannel.DefaultOptions()
	o.HeartRateBPM = 72
	res, err := dualchannel.AnalyzePair(p.frame, p.filtered, p.red, p.ir, o)
	if err != nil {
		t.Fatalf("AnalyzePair: %v", err)
	}

	points, ok := res.RRatio.Get()
	if !ok {
		t.Fatalf("R-ratio absent: %v", res.RRatio.Error())
	}
	if len(points) != 35 {
		t.Fatalf("expected 35 common beats, got %d", len(points))
	}
	want, _ := dualchannel.DefaultCalibration().Estimate(1)
	for i, pt := range points {
		if math.Abs(pt.R-1) > 1e-9 {
			t.Fatalf("beat %d: R = %v", i, pt.R)
		}
		if !pt.InRange || math.Abs(pt.SpO2-want) > 1e-9 {
			t.Fatalf("beat %d: SpO2 = %v (in range %v)", i, pt.SpO2, pt.InRange)
		}
	}

	ox, ok := res.Oxygenation.Get()
	if !ok {
		t.Fatalf("oxygenation absent: %v", res.Oxygenation.Error())
	}
	if math.Abs(ox.SpO2-80.139) > 1e-6 || math.Abs(ox.MedianR-1) > 1e-9 {
		t.Fatalf("unexpected oxygenation %+v", ox)
	}

	xc, ok := res.CrossCorrelation.Get()
	if !ok || xc.LagSamples != 0 || math.Abs(xc.Peak-1) > 1e-6 {
		t.Fatalf("unexpected cross-correlation peak=%v lag=%d", xc.Peak, xc.LagSamples)
	}
	if len(xc.Lags) != 201 {
		t.Fatalf("expected lags over +-1 s, got %d", len(xc.Lags))
	}

	coh, ok := res.Coherence.Get()
	if !ok {
		t.Fatalf("coherence absent: %v", res.Coherence.Error())
	}
	if coh.BandMean < 0.99 || coh.AtHeartRate == nil || *coh.AtHeartRate < 0.99 {
		t.Fatalf("identical channels should be coherent: %+v", coh.BandMean)
	}

	for _, tpl := range []types.Outcome[types.BeatTemplate]{res.RedTemplate, res.IRTemplate} {
		b, ok := tpl.Get()
		if !ok {
			t.Fatalf("template absent: %v", tpl.Error())
		}
		if b.Beats != 35 || len(b.Mean) != 100 || len(b.Phase) != 100 {
			t.Fatalf("unexpected template shape: beats=%d len=%d", b.Beats, len(b.Mean))
		}
		if b.Mean[0] < b.Mean[50] {
			t.Fatalf("template should start on a peak: %v < %v", b.Mean[0], b.Mean[50])
		}
	}
}

func TestAnalyzePair_KnownRatio(t *testing.T) {
	frame, err := synth.DualPPG(synth.DefaultPPGOptions(), 500, 0.6)
	if err != nil {
		t.Fatalf("DualPPG: %v", err)
	}
	p := prepare(t, frame)
	res, err := dualchannel.AnalyzePair(p.frame, p.filtered, p.red, p.ir, dualchannel.DefaultOptions())
	if err != nil {
		t.Fatalf("AnalyzePair: %v", err)
	}
	ox, ok := res.Oxygenation.Get()
	if !ok {
		t.Fatalf("oxygenation absent: %v", res.Oxygenation.Error())
	}
	if math.Abs(ox.MedianR-0.6) > 0.005 {
		t.Fatalf("median R = %v, want about 0.6", ox.MedianR)
	}
	want, _ := dualchannel.DefaultCalibration().Estimate(ox.MedianR)
	if ox.SpO2 != want || ox.SpO2 < 96 || ox.SpO2 > 97.5 {
		t.Fatalf("SpO2 = %v", ox.SpO2)
	}
	if ox.PerfusionIndex < 1.5 || ox.PerfusionIndex > 2.5 {
		t.Fatalf("perfusion index = %v", ox.PerfusionIndex)
	}
}

func TestAnalyzePair_OutOfRangeRatio(t *testing.T) {
	frame, err := synth.DualPPG(synth.DefaultPPGOptions(), 500, 3)
	if err != nil {
		t.Fatalf("DualPPG: %v", err)
	}
	p := prepare(t, frame)
	res, err := dualchannel.AnalyzePair(p.frame, p.filtered, p.red, p.ir, dualchannel.DefaultOptions())
	if err != nil {
		t.Fatalf("AnalyzePair: %v", err)
	}
	if !res.RRatio.OK() {
		t.Fatalf("R-ratio trend should survive: %v", res.RRatio.Error())
	}
	if res.Oxygenation.OK() || !errors.Is(res.Oxygenation.Error(), types.ErrCalibrationOutOfRange) {
		t.Fatalf("expected CalibrationOutOfRange, got %+v", res.Oxygenation)
	}
}

func TestAnalyzePair_InsufficientBeats(t *testing.T) {
	w, err := synth.PPG(synth.DefaultPPGOptions())
	if err != nil {
		t.Fatalf("PPG: %v", err)
	}
	frame, _ := types.NewDualChannelFrame(w, w)
	one := types.ExtremaSet{Items: []types.Extremum{{Index: 17, Kind: types.PeakKind}}}

	res, err := dualchannel.AnalyzePair(frame, frame, one, one, dualchannel.DefaultOptions())
	if err != nil {
		t.Fatalf("AnalyzePair: %v", err)
	}
	if !errors.Is(res.RRatio.Error(), types.ErrInsufficientBeats) {
		t.Fatalf("expected InsufficientBeats, got %v", res.RRatio.Error())
	}
	if !errors.Is(res.Oxygenation.Error(), types.ErrUpstreamFailed) {
		t.Fatalf("expected UpstreamFailed, got %v", res.Oxygenation.Error())
	}
	if !errors.Is(res.IRTemplate.Error(), types.ErrInsufficientBeats) {
		t.Fatalf("expected template InsufficientBeats, got %v", res.IRTemplate.Error())
	}
	if !res.CrossCorrelation.OK() {
		t.Fatal("cross-correlation does not depend on beats")
	}
}

func TestAnalyzePair_DetectsLag(t *testing.T) {
	const shift = 5
	o := synth.DefaultPPGOptions()
	o.NoiseStd = 0.2
	src, err := o.Samples()
	if err != nil {
		t.Fatalf("Samples: %v", err)
	}
	n := len(src) - shift
	irX := src[shift:]
	redX := src[:n]
	ir, _ := types.NewWaveform(irX, o.SampleRate)
	red, _ := types.NewWaveform(redX, o.SampleRate)
	frame, err := types.NewDualChannelFrame(red, ir)
	if err != nil {
		t.Fatalf("NewDualChannelFrame: %v", err)
	}
	p := prepare(t, frame)
	res, err := dualchannel.AnalyzePair(p.frame, p.filtered, p.red, p.ir, dualchannel.DefaultOptions())
	if err != nil {
		t.Fatalf("AnalyzePair: %v", err)
	}
	xc, _ := res.CrossCorrelation.Get()
	if xc.LagSamples != shift {
		t.Fatalf("lag = %d, want %d", xc.LagSamples, shift)
	}
	if math.Abs(xc.LagSeconds-0.05) > 1e-12 || xc.Peak < 0.95 {
		t.Fatalf("unexpected cross-correlation %+v", xc.Peak)
	}
}

func TestAnalyzePair_Misaligned(t *testing.T) {
	a, _ := synth.Sine(100, 500, 1, 1, 10)
	b, _ := synth.Sine(100, 400, 1, 1, 10)
	fa, _ := types.NewDualChannelFrame(a, a)
	fb, _ := types.NewDualChannelFrame(b, b)
	if _, err := dualchannel.AnalyzePair(fa, fb, types.ExtremaSet{}, types.ExtremaSet{}, dualchannel.DefaultOptions()); !errors.Is(err, types.ErrStructuralInput) {
		t.Fatalf("expected StructuralInputError, got %v", err)
	}
	bad := types.ExtremaSet{Items: []types.Extremum{{Index: 900, Kind: types.PeakKind}}}
	if _, err := dualchannel.AnalyzePair(fa, fa, bad, bad, dualchannel.DefaultOptions()); !errors.Is(err, types.ErrStructuralInput) {
		t.Fatalf("expected StructuralInputError for out-of-range index, got %v", err)
	}
}

func TestCalibration(t *testing.T) {
	def := dualchannel.DefaultCalibration()
	if err := def.Validate(); err != nil {
		t.Fatalf("default calibration invalid: %v", err)
	}
	if v, err := def.Estimate(1); err != nil || math.Abs(v-80.139) > 1e-9 {
		t.Fatalf("Estimate(1) = %v, %v", v, err)
	}
	for _, r := range []float64{0.39, 1.81, math.NaN()} {
		if _, err := def.Estimate(r); !errors.Is(err, types.ErrCalibrationOutOfRange) {
			t.Errorf("Estimate(%v): expected CalibrationOutOfRange, got %v", r, err)
		}
	}

	tests := []struct {
		name  string
		cal   dualchannel.Calibration
		valid bool
	}{
		{"linear", dualchannel.Calibration{Coefficients: []float64{110, -25}, RMin: 0.3, RMax: 2}, true},
		{"parabola vertex inside", dualchannel.Calibration{Coefficients: []float64{0, 0, 1}, RMin: -1, RMax: 1}, false},
		{"constant", dualchannel.Calibration{Coefficients: []float64{97}, RMin: 0, RMax: 1}, false},
		{"empty", dualchannel.Calibration{RMin: 0, RMax: 1}, false},
		{"inverted domain", dualchannel.Calibration{Coefficients: []float64{110, -25}, RMin: 2, RMax: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cal.Validate()
			if (err == nil) != tt.valid {
				t.Fatalf("Validate() = %v, want valid=%v", err, tt.valid)
			}
		})
	}
}
