package codec

import (
	"github.com/joeydtaylor/ppglab/pkg/internal/types"
)

// ResultToMap flattens an AnalysisResult into plain maps and slices for renderers.
// Every stage field is present; a failed stage maps to nil and gains a sibling
// "<field>_error" entry. Series are laid out column-wise.
func ResultToMap(r types.AnalysisResult) map[string]any {
	out := map[string]any{
		"primary": r.Primary,
		"dual":    r.IsDual(),
	}

	channels := make(map[string]any, len(r.Channels))
	for _, c := range r.Channels {
		m := map[string]any{}
		put(m, "filtered", c.Filtered, waveformMap)
		put(m, "extrema", c.Extrema, extremaMap)
		put(m, "quality", c.Quality, qualityMap)
		if c.SDPPG.OK() || c.SDPPG.Failed() {
			put(m, "sdppg", c.SDPPG, waveformMap)
		}
		channels[c.Name] = m
	}
	out["channels"] = channels

	put(out, "heart_rate", r.HeartRate, heartRateMap)

	if r.Dual != nil {
		put(out, "dual_channel", *r.Dual, dualMap)
	}

	failures := make([]any, 0)
	for _, f := range r.Failures() {
		failures = append(failures, stageErrorMap(&f))
	}
	out["failures"] = failures
	return out
}

func put[T any](m map[string]any, key string, o types.Outcome[T], render func(T) map[string]any) {
	if v, ok := o.Get(); ok {
		m[key] = render(v)
	} else {
		m[key] = nil
	}
	if o.Err != nil {
		m[key+"_error"] = stageErrorMap(o.Err)
	}
}

func stageErrorMap(e *types.StageError) map[string]any {
	return map[string]any{
		"stage":   string(e.Stage),
		"kind":    string(e.Kind),
		"message": e.Message,
	}
}

func waveformMap(w types.Waveform) map[string]any {
	return map[string]any{
		"sample_rate": w.SampleRate(),
		"time":        w.Times(),
		"samples":     w.Samples(),
	}
}

func extremaMap(s types.ExtremaSet) map[string]any {
	m := map[string]any{}
	for _, kind := range []types.ExtremumKind{types.PeakKind, types.TroughKind} {
		items := s.Of(kind)
		index := make([]int, len(items))
		t := make([]float64, len(items))
		value := make([]float64, len(items))
		prom := make([]float64, len(items))
		for i, e := range items {
			index[i], t[i], value[i], prom[i] = e.Index, e.Time, e.Value, e.Prominence
		}
		m[string(kind)+"s"] = map[string]any{
			"index":      index,
			"time":       t,
			"value":      value,
			"prominence": prom,
		}
	}
	return m
}

func qualityMap(q types.QualityMetrics) map[string]any {
	m := make(map[string]any, len(q))
	units := map[string]any{}
	for name, metric := range q {
		if metric.Available {
			m[name] = metric.Value
		} else {
			m[name] = nil
		}
		if metric.Unit != "" {
			units[name] = metric.Unit
		}
	}
	m["units"] = units
	return m
}

func trendMap(points []types.RatePoint) map[string]any {
	t := make([]float64, len(points))
	bpm := make([]float64, len(points))
	ibi := make([]float64, len(points))
	ok := make([]bool, len(points))
	for i, p := range points {
		t[i], bpm[i], ibi[i], ok[i] = p.Time, p.BPM, p.IBI, p.Plausible
	}
	return map[string]any{"time": t, "bpm": bpm, "ibi": ibi, "plausible": ok}
}

func heartRateMap(hr types.HeartRateResult) map[string]any {
	v := hr.Variability
	poincareX := make([]float64, len(v.Poincare))
	poincareY := make([]float64, len(v.Poincare))
	for i, p := range v.Poincare {
		poincareX[i], poincareY[i] = p.Current, p.Next
	}

	m := map[string]any{
		"raw":         trendMap(hr.Raw),
		"smoothed":    trendMap(hr.Smoothed),
		"implausible": hr.Implausible,
		"variability": map[string]any{
			"beats":       v.Beats,
			"mean_ibi_ms": v.MeanIBIMs,
			"mean_bpm":    v.MeanBPM,
			"sdnn_ms":     v.SDNNMs,
			"rmssd_ms":    v.RMSSDMs,
			"sdsd_ms":     v.SDSDMs,
			"sd1_ms":      v.SD1Ms,
			"sd2_ms":      v.SD2Ms,
			"poincare":    map[string]any{"current": poincareX, "next": poincareY},
		},
		"spectral_bpm": nil,
	}
	if hr.SpectralBPM != nil {
		m["spectral_bpm"] = *hr.SpectralBPM
	}
	return m
}

func dualMap(d types.DualChannelResult) map[string]any {
	m := map[string]any{}
	put(m, "r_ratio", d.RRatio, rRatioMap)
	put(m, "oxygenation", d.Oxygenation, func(o types.Oxygenation) map[string]any {
		return map[string]any{
			"median_r":           o.MedianR,
			"spo2":               o.SpO2,
			"perfusion_index":    o.PerfusionIndex,
			"beats_used":         o.BeatsUsed,
			"beats_out_of_range": o.BeatsOutOfRange,
		}
	})
	put(m, "cross_correlation", d.CrossCorrelation, func(x types.CrossCorrelation) map[string]any {
		return map[string]any{
			"peak":        x.Peak,
			"lag_samples": x.LagSamples,
			"lag_seconds": x.LagSeconds,
			"lags":        x.Lags,
			"correlation": x.Correlation,
		}
	})
	put(m, "coherence", d.Coherence, func(c types.Coherence) map[string]any {
		out := map[string]any{
			"frequencies":   c.Frequencies,
			"values":        c.Values,
			"band_mean":     c.BandMean,
			"at_heart_rate": nil,
		}
		if c.AtHeartRate != nil {
			out["at_heart_rate"] = *c.AtHeartRate
		}
		return out
	})
	put(m, "red_template", d.RedTemplate, templateMap)
	put(m, "ir_template", d.IRTemplate, templateMap)
	return m
}

func rRatioMap(points []types.RRatioPoint) map[string]any {
	t := make([]float64, len(points))
	r := make([]float64, len(points))
	spo2 := make([]any, len(points))
	for i, p := range points {
		t[i], r[i] = p.Time, p.R
		if p.InRange {
			spo2[i] = p.SpO2
		}
	}
	return map[string]any{"time": t, "r": r, "spo2": spo2}
}

func templateMap(b types.BeatTemplate) map[string]any {
	return map[string]any{
		"phase": b.Phase,
		"mean":  b.Mean,
		"std":   b.Std,
		"beats": b.Beats,
	}
}
