package main

import (
	"encoding/json"
	"flag"
	"fmt"

	"github.com/joeydtaylor/ppglab/pkg/builder"
)

// Example .env:
//
//	PPG_FILTER_FAMILY=cheby1
//	PPG_RIPPLE_PASS_DB=0.5
//	PPG_CUTOFF_LOW=0.7
//	PPG_CUTOFF_HIGH=4
//	PPG_NOTCH_HZ=60
//	PPG_SPO2_COEFFS=110,-25
func main() {
	envFile := flag.String("env", ".env", "dotenv file to load before reading PPG_* variables")
	flag.Parse()

	if err := builder.LoadEnvFile(*envFile); err != nil {
		fmt.Printf("Failed to load %s: %v\n", *envFile, err)
		return
	}

	cfg, err := builder.ConfigFromEnv(builder.DefaultEnvPrefix)
	if err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		return
	}

	summary, _ := json.MarshalIndent(cfg, "", "  ")
	fmt.Printf("Effective configuration:\n%s\n", summary)

	level := builder.EnvOr("PPG_LOG_LEVEL", "info")
	logger := builder.NewLogger(builder.LoggerWithLevel(level))
	defer logger.Flush()

	opts := builder.DefaultPPGOptions()
	opts.MainsAmplitude = 3
	opts.MainsHz = 60
	frame, err := builder.SyntheticDualPPG(opts, 900, 0.6)
	if err != nil {
		fmt.Printf("Failed to render channels: %v\n", err)
		return
	}

	res, err := builder.NewPipeline(builder.PipelineWithLogger(logger)).Analyze(frame, cfg)
	if err != nil {
		fmt.Printf("Analysis rejected: %v\n", err)
		return
	}
	if dual, ok := res.Dual.Get(); ok {
		if ox, ok := dual.Oxygenation.Get(); ok {
			fmt.Printf("SpO2 with configured calibration: %.1f%%\n", ox.SpO2)
			return
		}
		fmt.Printf("SpO2 unavailable: %v\n", dual.Oxygenation.Error())
	}
}
