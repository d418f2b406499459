// Package dualchannel compares synchronized RED and IR channels: per-beat
// ratio-of-ratios and the calibrated oxygenation estimate, cross-correlation,
// coherence and ensemble-averaged beat shapes.
package dualchannel

import (
	"fmt"

	"github.com/joeydtaylor/ppglab/pkg/internal/types"
)

// Analyzer defaults.
const (
	DefaultMaxLagSeconds    = 1.0
	DefaultTemplateLength   = 100
	DefaultMatchTolerance   = 0.25
	DefaultCoherenceSeconds = 8.0
	DefaultBandLow          = 0.5
	DefaultBandHigh         = 5.0
)

// Options configures AnalyzePair.
type Options struct {
	Calibration Calibration `json:"calibration"`
	// MaxLagSeconds bounds the cross-correlation lag search.
	MaxLagSeconds float64 `json:"max_lag_seconds"`
	// TemplateLength is the number of phase points of an ensemble beat.
	TemplateLength int `json:"template_length"`
	// MatchTolerance is the fraction of the local IR interval a RED peak may be
	// offset by and still mark the same beat.
	MatchTolerance float64 `json:"match_tolerance"`
	// CoherenceSeconds is the Welch segment length of the coherence estimate.
	CoherenceSeconds float64 `json:"coherence_seconds"`
	// BandLow and BandHigh bound the cardiac band coherence is averaged over.
	BandLow  float64 `json:"band_low"`
	BandHigh float64 `json:"band_high"`
	// HeartRateBPM, when positive, selects the frequency coherence is read at.
	HeartRateBPM float64 `json:"heart_rate_bpm,omitempty"`
}

// DefaultOptions returns the analyzer defaults with DefaultCalibration.
func DefaultOptions() Options {
	return Options{
		Calibration:      DefaultCalibration(),
		MaxLagSeconds:    DefaultMaxLagSeconds,
		TemplateLength:   DefaultTemplateLength,
		MatchTolerance:   DefaultMatchTolerance,
		CoherenceSeconds: DefaultCoherenceSeconds,
		BandLow:          DefaultBandLow,
		BandHigh:         DefaultBandHigh,
	}
}

// Validate checks the options, including the calibration.
func (o Options) Validate() error {
	if err := o.Calibration.Validate(); err != nil {
		return err
	}
	switch {
	case !(o.MaxLagSeconds >= 0):
		return fmt.Errorf("%w: max lag must not be negative", types.ErrInvalidParameters)
	case o.TemplateLength < 2:
		return fmt.Errorf("%w: template length must be at least 2, got %d", types.ErrInvalidParameters, o.TemplateLength)
	case !(o.MatchTolerance > 0 && o.MatchTolerance < 1):
		return fmt.Errorf("%w: match tolerance must lie in (0, 1), got %v", types.ErrInvalidParameters, o.MatchTolerance)
	case !(o.CoherenceSeconds > 0):
		return fmt.Errorf("%w: coherence segment must be positive", types.ErrInvalidParameters)
	case !(o.BandLow >= 0 && o.BandHigh > o.BandLow):
		return fmt.Errorf("%w: cardiac band must satisfy 0 <= low < high", types.ErrInvalidParameters)
	}
	return nil
}

// AnalyzePair runs every dual-channel sub-analysis. frame holds the raw channels and
// filtered their preprocessed counterparts; red and ir are the extrema detected on the
// filtered channels. Sub-analyses fail independently and are reported as Outcomes; the
// returned error is reserved for inputs that do not line up.
func AnalyzePair(frame, filtered types.DualChannelFrame, red, ir types.ExtremaSet, o Options) (types.DualChannelResult, error) {
	if err := o.Validate(); err != nil {
		return types.DualChannelResult{}, err
	}
	if err := checkAligned(frame, filtered, red, ir); err != nil {
		return types.DualChannelResult{}, err
	}

	var res types.DualChannelResult
	points, err := ratioTrend(frame, filtered, red, ir, o)
	if err != nil {
		res.RRatio = types.Absent[[]types.RRatioPoint](types.StageDualChannel, err)
		res.Oxygenation = types.Absent[types.Oxygenation](types.StageDualChannel,
			fmt.Errorf("%w: no R-ratio trend", types.ErrUpstreamFailed))
	} else {
		res.RRatio = types.Present(points)
		ox, err := oxygenation(points, o.Calibration)
		res.Oxygenation = types.OutcomeOf(types.StageDualChannel, ox, err)
	}

	res.CrossCorrelation = types.Present(crossCorrelation(filtered.Red, filtered.IR, o.MaxLagSeconds))

	coh, err := coherence(filtered.Red, filtered.IR, o)
	res.Coherence = types.OutcomeOf(types.StageDualChannel, coh, err)

	redTpl, err := beatTemplate(filtered.Red, red.PeakIndices(), o.TemplateLength)
	res.RedTemplate = types.OutcomeOf(types.StageDualChannel, redTpl, err)
	irTpl, err := beatTemplate(filtered.IR, ir.PeakIndices(), o.TemplateLength)
	res.IRTemplate = types.OutcomeOf(types.StageDualChannel, irTpl, err)

	return res, nil
}

func checkAligned(frame, filtered types.DualChannelFrame, sets ...types.ExtremaSet) error {
	n := frame.Len()
	if filtered.Len() != n || filtered.IR.Len() != n || frame.Red.Len() != n {
		return fmt.Errorf("%w: filtered channels do not match the raw frame length %d", types.ErrStructuralInput, n)
	}
	if filtered.SampleRate() != frame.SampleRate() {
		return fmt.Errorf("%w: filtered channels changed the sampling rate", types.ErrStructuralInput)
	}
	for _, s := range sets {
		for _, e := range s.Items {
			if e.Index < 0 || e.Index >= n {
				return fmt.Errorf("%w: extremum index %d outside [0, %d)", types.ErrStructuralInput, e.Index, n)
			}
		}
	}
	return nil
}
