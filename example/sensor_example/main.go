package main

import (
	"fmt"
	"time"

	"github.com/joeydtaylor/ppglab/pkg/builder"
)

func main() {
	sensor := builder.NewSensor(
		builder.SensorWithOnAnalysisStartFunc(func(c builder.ComponentMetadata, channels int, samples int) {
			fmt.Printf("%s -> analysis started: %d channel(s), %d samples\n", c.Name, channels, samples)
		}),
		builder.SensorWithOnStageCompleteFunc(func(c builder.ComponentMetadata, stage builder.Stage, channel string, elapsed time.Duration) {
			fmt.Printf("%s -> %s[%s] done in %v\n", c.Name, stage, channel, elapsed)
		}),
		builder.SensorWithOnStageErrorFunc(func(c builder.ComponentMetadata, stage builder.Stage, channel string, err *builder.StageError) {
			fmt.Printf("%s -> %s[%s] failed: %s (%s)\n", c.Name, stage, channel, err.Kind, err.Message)
		}),
		builder.SensorWithOnAnalysisCompleteFunc(func(c builder.ComponentMetadata, failures int, elapsed time.Duration) {
			fmt.Printf("%s -> analysis complete in %v with %d failure(s)\n", c.Name, elapsed, failures)
		}),
		builder.SensorWithOnAnalysisRejectedFunc(func(c builder.ComponentMetadata, err error) {
			fmt.Printf("%s -> analysis rejected: %v\n", c.Name, err)
		}),
	)

	p := builder.NewPipeline(
		builder.PipelineWithSensor(sensor),
		builder.PipelineWithComponentMetadata("finger-probe", ""),
	)

	frame, err := builder.SyntheticDualPPG(builder.DefaultPPGOptions(), 600, 0.9)
	if err != nil {
		fmt.Printf("Failed to render channels: %v\n", err)
		return
	}
	if _, err := p.Analyze(frame, builder.DefaultConfig()); err != nil {
		fmt.Printf("Unexpected rejection: %v\n", err)
	}

	// 40 Hz cannot be a lowpass cutoff at 50 Hz sampling; the preprocess stage fails
	// and every downstream stage reports UpstreamFailed.
	slow, _ := builder.NewWaveform(frame.IR.Samples()[:500], 50)
	bad := builder.NewConfig(builder.ConfigWithFilterSpec(builder.FilterSpec{
		Family: builder.Butterworth, Response: builder.Lowpass, Order: 4, Cutoff: []float64{40},
	}))
	if _, err := p.Analyze(slow, bad); err != nil {
		fmt.Printf("Unexpected rejection: %v\n", err)
	}
}
