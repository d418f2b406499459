package main

import (
	"fmt"

	"github.com/joeydtaylor/ppglab/pkg/builder"
)

func main() {
	logger := builder.NewLogger(
		builder.LoggerWithDevelopment(true),
		builder.LoggerWithLevel("debug"),
		builder.LoggerWithFields(map[string]interface{}{"site": "bench-3"}),
	)
	defer logger.Flush()

	// Add a file sink
	fileSinkConfig := builder.SinkConfig{
		Type: string(builder.FileSink),
		Config: map[string]interface{}{
			"path": "logs/output.log",
		},
	}
	if err := logger.AddSink("fileSink", fileSinkConfig); err != nil {
		fmt.Printf("Failed to add file sink: %v\n", err)
		return
	}

	// Add a console sink (stdout)
	consoleSinkConfig := builder.SinkConfig{Type: string(builder.StdoutSink)}
	if err := logger.AddSink("consoleSink", consoleSinkConfig); err != nil {
		fmt.Printf("Failed to add console sink: %v\n", err)
		return
	}

	sinks, _ := logger.ListSinks()
	fmt.Printf("Active sinks: %v\n", sinks)

	// A flat line degrades quality and heart rate; those stages log at Warn.
	flat, _ := builder.NewWaveform(make([]float64, 1000), 100)
	p := builder.NewPipeline(builder.PipelineWithLogger(logger))
	res, err := p.Analyze(flat, builder.DefaultConfig())
	if err != nil {
		fmt.Printf("Analysis rejected: %v\n", err)
		return
	}
	fmt.Printf("Stages with failures: %d\n", len(res.Failures()))

	if err := logger.RemoveSink("consoleSink"); err != nil {
		fmt.Printf("Failed to remove console sink: %v\n", err)
	}
}
