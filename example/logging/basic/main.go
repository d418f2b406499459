package main

import (
	"fmt"

	"github.com/joeydtaylor/ppglab/pkg/builder"
)

func main() {
	logger := builder.NewLogger(builder.LoggerWithLevel("debug"))
	defer logger.Flush()

	w, err := builder.SyntheticPPG(builder.DefaultPPGOptions())
	if err != nil {
		fmt.Printf("Failed to render signal: %v\n", err)
		return
	}

	p := builder.NewPipeline(
		builder.PipelineWithLogger(logger),
		builder.PipelineWithComponentMetadata("wrist-ppg", "device-01"),
	)

	// Debug lines per stage, one Info summary per call.
	if _, err := p.Analyze(w, builder.DefaultConfig()); err != nil {
		fmt.Printf("Analysis rejected: %v\n", err)
	}

	// A single sample is rejected outright and logged at Error.
	short, _ := builder.NewWaveform([]float64{1}, 100)
	if _, err := p.Analyze(short, builder.DefaultConfig()); err != nil {
		fmt.Printf("Expected rejection: %v\n", err)
	}
}
