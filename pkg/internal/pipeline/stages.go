package pipeline

import (
	"fmt"
	"time"

	"github.com/joeydtaylor/ppglab/pkg/internal/dualchannel"
	"github.com/joeydtaylor/ppglab/pkg/internal/filter"
	"github.com/joeydtaylor/ppglab/pkg/internal/heartrate"
	"github.com/joeydtaylor/ppglab/pkg/internal/peaks"
	"github.com/joeydtaylor/ppglab/pkg/internal/quality"
	"github.com/joeydtaylor/ppglab/pkg/internal/types"
)

func upstream(stage types.Stage, what string) error {
	return fmt.Errorf("%w: %s needs %s", types.ErrUpstreamFailed, stage, what)
}

// runStage times fn and reports its outcome to sensors and loggers. A value returned
// together with an error is kept as a partial outcome.
func runStage[T any](p *Pipeline, stage types.Stage, channel string, keepPartial bool, fn func() (T, error)) types.Outcome[T] {
	start := time.Now()
	v, err := fn()
	elapsed := time.Since(start)

	var out types.Outcome[T]
	switch {
	case err == nil:
		out = types.Present(v)
	case keepPartial:
		out = types.Partial(v, stage, err)
	default:
		out = types.Absent[T](stage, err)
	}

	if out.Err != nil {
		p.emitStageError(stage, channel, out.Err)
	} else {
		p.emitStageComplete(stage, channel, elapsed)
	}
	return out
}

// skip marks a stage whose input is missing.
func skip[T any](p *Pipeline, stage types.Stage, channel string, what string) types.Outcome[T] {
	out := types.Absent[T](stage, upstream(stage, what))
	p.emitStageError(stage, channel, out.Err)
	return out
}

// preprocess applies absorbance, detrend, filter, notch and invert, in that order.
// The result never aliases the input, even when every step is disabled.
func preprocess(w types.Waveform, cfg Config) (types.Waveform, error) {
	var err error
	w = w.Derive(w.Samples())
	if cfg.Absorbance {
		w = filter.Absorbance(w)
	}
	if cfg.Detrend != "" && cfg.Detrend != types.DetrendNone {
		if w, err = filter.Detrend(w, cfg.Detrend); err != nil {
			return types.Waveform{}, err
		}
	}
	if cfg.Filter.Enabled {
		if w, err = filter.Apply(w, cfg.Filter.Spec, cfg.Filter.Mode); err != nil {
			return types.Waveform{}, err
		}
	}
	if cfg.Notch != nil {
		if w, err = filter.Notch(w, *cfg.Notch); err != nil {
			return types.Waveform{}, err
		}
	}
	if cfg.Invert {
		w = filter.Invert(w)
	}
	return w, nil
}

// detectChannel runs the front half of a channel: preprocessing and extrema.
func (p *Pipeline) detectChannel(name string, raw types.Waveform, cfg Config) types.ChannelResult {
	res := types.ChannelResult{Name: name}

	res.Filtered = runStage(p, types.StagePreprocess, name, false, func() (types.Waveform, error) {
		return preprocess(raw, cfg)
	})

	filtered, ok := res.Filtered.Get()
	if !ok {
		res.Extrema = skip[types.ExtremaSet](p, types.StagePeaks, name, "a filtered waveform")
		return res
	}

	res.Extrema = runStage(p, types.StagePeaks, name, false, func() (types.ExtremaSet, error) {
		if err := cfg.Peaks.Validate(); err != nil {
			return types.ExtremaSet{}, err
		}
		return peaks.DetectExtrema(filtered, cfg.peakOptions(filtered.SampleRate()))
	})
	return res
}

// assessChannel completes a channel after heart rate: quality and the optional SDPPG.
func (p *Pipeline) assessChannel(res *types.ChannelResult, cfg Config) {
	filtered, ok := res.Filtered.Get()
	if !ok {
		res.Quality = skip[types.QualityMetrics](p, types.StageQuality, res.Name, "a filtered waveform")
		if cfg.ComputeSDPPG {
			res.SDPPG = skip[types.Waveform](p, types.StageSDPPG, res.Name, "a filtered waveform")
		}
		return
	}

	// Only a degenerate signal leaves partial metrics; bad settings leave none.
	keep := cfg.Quality.Validate() == nil
	res.Quality = runStage(p, types.StageQuality, res.Name, keep, func() (types.QualityMetrics, error) {
		return quality.Assess(filtered, cfg.Quality)
	})
	if cfg.ComputeSDPPG {
		res.SDPPG = runStage(p, types.StageSDPPG, res.Name, false, func() (types.Waveform, error) {
			return filter.SecondDerivative(filtered), nil
		})
	}
}

func (p *Pipeline) estimateHeartRate(primary types.ChannelResult, cfg Config) types.Outcome[types.HeartRateResult] {
	extrema, ok := primary.Extrema.Get()
	if !ok {
		return skip[types.HeartRateResult](p, types.StageHeartRate, primary.Name, "detected peaks")
	}
	return runStage(p, types.StageHeartRate, primary.Name, false, func() (types.HeartRateResult, error) {
		hr, err := heartrate.Estimate(extrema.PeakTimes(), cfg.HeartRate)
		if err != nil {
			return hr, err
		}
		if filtered, ok := primary.Filtered.Get(); ok {
			if bpm, err := heartrate.SpectralRate(filtered, cfg.HeartRate); err == nil {
				hr.SpectralBPM = &bpm
			}
		}
		return hr, nil
	})
}

func (p *Pipeline) analyzeDual(frame types.DualChannelFrame, red, ir types.ChannelResult, hr types.Outcome[types.HeartRateResult], cfg Config) types.Outcome[types.DualChannelResult] {
	redFiltered, okRF := red.Filtered.Get()
	irFiltered, okIF := ir.Filtered.Get()
	redExtrema, okRE := red.Extrema.Get()
	irExtrema, okIE := ir.Extrema.Get()
	if !(okRF && okIF && okRE && okIE) {
		return skip[types.DualChannelResult](p, types.StageDualChannel, "", "filtered waveforms and peaks on both channels")
	}

	opts := cfg.Dual
	if v, ok := hr.Get(); ok && v.Variability.Beats > 0 {
		opts.HeartRateBPM = v.Variability.MeanBPM
	}
	return runStage(p, types.StageDualChannel, "", false, func() (types.DualChannelResult, error) {
		filtered, err := types.NewDualChannelFrame(redFiltered, irFiltered)
		if err != nil {
			return types.DualChannelResult{}, err
		}
		res, err := dualchannel.AnalyzePair(frame, filtered, redExtrema, irExtrema, opts)
		if err != nil {
			return res, err
		}
		for _, sub := range []*types.StageError{
			res.RRatio.Err, res.Oxygenation.Err, res.CrossCorrelation.Err,
			res.Coherence.Err, res.RedTemplate.Err, res.IRTemplate.Err,
		} {
			if sub != nil {
				p.emitStageError(types.StageDualChannel, "", sub)
			}
		}
		return res, nil
	})
}
