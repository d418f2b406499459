package main

import (
	"encoding/json"
	"fmt"

	"github.com/joeydtaylor/ppglab/pkg/builder"
)

func main() {
	// 30 s of a 72 bpm pulse with baseline wander and 50 Hz mains.
	opts := builder.DefaultPPGOptions()
	opts.WanderAmplitude = 15
	opts.WanderHz = 0.2
	opts.MainsAmplitude = 4
	opts.MainsHz = 50
	opts.NoiseStd = 0.5
	opts.Seed = 7

	w, err := builder.SyntheticPPG(opts)
	if err != nil {
		fmt.Printf("Failed to render signal: %v\n", err)
		return
	}

	cfg := builder.NewConfig(
		builder.ConfigWithNotch(builder.NotchSpec{Frequency: 50}),
		builder.ConfigWithDetrend(builder.DetrendLinear),
	)

	p := builder.NewPipeline()
	res, err := p.Analyze(w, cfg)
	if err != nil {
		fmt.Printf("Analysis rejected: %v\n", err)
		return
	}

	if hr, ok := res.HeartRate.Get(); ok {
		fmt.Printf("Mean heart rate: %.1f bpm (SDNN %.1f ms, RMSSD %.1f ms)\n",
			hr.Variability.MeanBPM, hr.Variability.SDNNMs, hr.Variability.RMSSDMs)
	} else {
		fmt.Printf("Heart rate unavailable: %v\n", res.HeartRate.Error())
	}

	for _, f := range res.Failures() {
		fmt.Printf("Stage %s failed: %s\n", f.Stage, f.Kind)
	}

	output, err := json.MarshalIndent(builder.ResultToMap(res)["channels"], "", "  ")
	if err != nil {
		fmt.Printf("Error converting output to JSON: %v\n", err)
		return
	}
	fmt.Printf("Channel summary: %d bytes of JSON\n", len(output))
}
