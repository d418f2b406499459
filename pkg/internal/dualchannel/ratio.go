package dualchannel

import (
	"fmt"
	"math"

	"github.com/joeydtaylor/ppglab/pkg/internal/types"
	"github.com/joeydtaylor/ppglab/pkg/internal/utils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type beat struct {
	start, end int
}

// commonBeats pairs consecutive IR peaks whose endpoints both have a RED peak within
// tolerance*interval samples.
func commonBeats(irPeaks, redPeaks []int, tolerance float64) []beat {
	var out []beat
	for i := 1; i < len(irPeaks); i++ {
		a, b := irPeaks[i-1], irPeaks[i]
		slack := tolerance * float64(b-a)
		if hasNear(redPeaks, a, slack) && hasNear(redPeaks, b, slack) {
			out = append(out, beat{start: a, end: b})
		}
	}
	return out
}

func hasNear(sorted []int, target int, slack float64) bool {
	for _, p := range sorted {
		d := math.Abs(float64(p - target))
		if d <= slack {
			return true
		}
		if p > target {
			return false
		}
	}
	return false
}

// beatComponents returns the pulsatile swing of the filtered channel and the mean of
// the raw channel over [start, end].
func beatComponents(raw, filtered []float64, b beat) (ac, dc float64) {
	seg := filtered[b.start : b.end+1]
	ac = floats.Max(seg) - floats.Min(seg)
	dc = stat.Mean(raw[b.start:b.end+1], nil)
	return ac, dc
}

func ratioTrend(frame, filtered types.DualChannelFrame, red, ir types.ExtremaSet, o Options) ([]types.RRatioPoint, error) {
	beats := commonBeats(ir.PeakIndices(), red.PeakIndices(), o.MatchTolerance)

	redRaw, irRaw := frame.Red.Samples(), frame.IR.Samples()
	redAC, irAC := filtered.Red.Samples(), filtered.IR.Samples()

	var points []types.RRatioPoint
	for _, b := range beats {
		acR, dcR := beatComponents(redRaw, redAC, b)
		acI, dcI := beatComponents(irRaw, irAC, b)
		if !(acR > 0 && dcR > 0 && acI > 0 && dcI > 0) {
			continue
		}
		r := (acR / dcR) / (acI / dcI)
		p := types.RRatioPoint{
			Time:  0.5 * (frame.IR.TimeAt(b.start) + frame.IR.TimeAt(b.end)),
			R:     r,
			ACRed: acR, DCRed: dcR, ACIR: acI, DCIR: dcI,
			BeatStart: b.start, BeatEnd: b.end,
		}
		if spo2, err := o.Calibration.Estimate(r); err == nil {
			p.SpO2, p.InRange = spo2, true
		}
		points = append(points, p)
	}
	if len(points) < 2 {
		return points, fmt.Errorf("%w: %d valid common beats (from %d IR peaks), need 2", types.ErrInsufficientBeats, len(points), len(ir.PeakIndices()))
	}
	return points, nil
}

func oxygenation(points []types.RRatioPoint, cal Calibration) (types.Oxygenation, error) {
	rs := utils.MapTo(points, func(p types.RRatioPoint) float64 { return p.R })
	pis := utils.MapTo(points, func(p types.RRatioPoint) float64 { return p.ACIR / p.DCIR })

	out := types.Oxygenation{
		MedianR:        utils.Median(rs),
		PerfusionIndex: 100 * utils.Median(pis),
		BeatsUsed:      len(points),
	}
	for _, p := range points {
		if !p.InRange {
			out.BeatsOutOfRange++
		}
	}
	spo2, err := cal.Estimate(out.MedianR)
	if err != nil {
		return out, err
	}
	out.SpO2 = spo2
	return out, nil
}
