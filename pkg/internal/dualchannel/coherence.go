package dualchannel

import (
	"fmt"

	"github.com/joeydtaylor/ppglab/pkg/internal/spectral"
	"github.com/joeydtaylor/ppglab/pkg/internal/types"
)

// minCoherenceSegment is the shortest segment worth a coherence estimate.
const minCoherenceSegment = 16

// coherence estimates magnitude-squared coherence on segments of o.CoherenceSeconds,
// capped at half the window so at least three overlapping segments are averaged.
func coherence(red, ir types.Waveform, o Options) (types.Coherence, error) {
	fs := red.SampleRate()
	seg := int(o.CoherenceSeconds * fs)
	if half := red.Len() / 2; seg > half {
		seg = half
	}
	if seg < minCoherenceSegment {
		return types.Coherence{}, fmt.Errorf("%w: coherence needs segments of %d samples, window gives %d",
			types.ErrInsufficientSamples, minCoherenceSegment, seg)
	}

	c, err := spectral.Coherence(red.Samples(), ir.Samples(), fs, spectral.Options{SegmentLength: seg})
	if err != nil {
		return types.Coherence{}, err
	}
	out := types.Coherence{Frequencies: c.Frequencies, Values: c.Density}
	out.BandMean, _ = c.MeanIn(o.BandLow, o.BandHigh)
	if o.HeartRateBPM > 0 {
		if v, ok := c.At(o.HeartRateBPM / 60); ok {
			out.AtHeartRate = &v
		}
	}
	return out, nil
}
