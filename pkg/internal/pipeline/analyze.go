package pipeline

import (
	"fmt"
	"time"

	"github.com/joeydtaylor/ppglab/pkg/internal/types"
)

// Analyze runs every stage over window with cfg. Stage failures, including invalid
// settings of a stage, are recorded in the result; the error is non-nil only when the
// window is structurally invalid.
// Identical inputs give identical results.
func (p *Pipeline) Analyze(window types.Window, cfg Config) (types.AnalysisResult, error) {
	p.Freeze()
	start := time.Now()

	if err := admit(window, cfg.TimeAxisTolerance); err != nil {
		p.emitRejected(err)
		return types.AnalysisResult{}, err
	}

	var res types.AnalysisResult
	switch w := window.(type) {
	case types.Waveform:
		p.emitStart(1, w.Len())
		ch := p.detectChannel(types.ChannelSignal, w, cfg)
		res.Primary = ch.Name
		res.HeartRate = p.estimateHeartRate(ch, cfg)
		p.assessChannel(&ch, cfg)
		res.Channels = []types.ChannelResult{ch}

	case types.DualChannelFrame:
		p.emitStart(2, w.Len())
		red := p.detectChannel(types.ChannelRed, w.Red, cfg)
		ir := p.detectChannel(types.ChannelIR, w.IR, cfg)
		res.Primary = ir.Name
		res.HeartRate = p.estimateHeartRate(ir, cfg)
		p.assessChannel(&red, cfg)
		p.assessChannel(&ir, cfg)
		res.Channels = []types.ChannelResult{red, ir}
		dual := p.analyzeDual(w, red, ir, res.HeartRate, cfg)
		res.Dual = &dual
	}

	p.emitComplete(len(res.Failures()), time.Since(start))
	return res, nil
}

// AnalyzeWaveform is Analyze for a single channel.
func (p *Pipeline) AnalyzeWaveform(w types.Waveform, cfg Config) (types.AnalysisResult, error) {
	return p.Analyze(w, cfg)
}

// AnalyzeDual is Analyze for a RED/IR pair.
func (p *Pipeline) AnalyzeDual(frame types.DualChannelFrame, cfg Config) (types.AnalysisResult, error) {
	return p.Analyze(frame, cfg)
}

func admit(window types.Window, tolerance float64) error {
	switch w := window.(type) {
	case types.Waveform:
		if err := w.Check(); err != nil {
			return err
		}
		return w.CheckTimeAxis(tolerance)
	case types.DualChannelFrame:
		if err := w.Check(); err != nil {
			return err
		}
		if err := w.Red.CheckTimeAxis(tolerance); err != nil {
			return err
		}
		return w.IR.CheckTimeAxis(tolerance)
	case nil:
		return fmt.Errorf("%w: no window supplied", types.ErrStructuralInput)
	default:
		return fmt.Errorf("%w: unsupported window type %T", types.ErrStructuralInput, window)
	}
}
