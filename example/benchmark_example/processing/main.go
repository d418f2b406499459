package main

import (
	"flag"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joeydtaylor/ppglab/pkg/builder"
)

func main() {
	var (
		windows  = flag.Int("windows", 2_000, "total analysis windows")
		workers  = flag.Int("workers", runtime.NumCPU(), "concurrent Analyze callers")
		duration = flag.Float64("duration", 30, "window length in seconds")
		rate     = flag.Float64("fs", 100, "sampling rate in Hz")
		dual     = flag.Bool("dual", true, "analyze RED+IR frames instead of single channels")
		family   = flag.String("family", "butterworth", "band-limiting filter family")
	)
	flag.Parse()

	if *windows <= 0 || *workers <= 0 {
		panic("windows and workers must be > 0")
	}
	fam, err := builder.ParseFilterFamily(*family)
	if err != nil {
		panic(err)
	}
	spec := builder.FilterSpec{Family: fam, Response: builder.Bandpass, Order: 4, Cutoff: []float64{0.5, 5}}
	switch fam {
	case builder.Chebyshev1:
		spec.Ripple.PassbandDB = 0.5
	case builder.Elliptic:
		spec.Ripple = builder.Ripple{PassbandDB: 0.5, StopbandDB: 40}
	}
	cfg := builder.NewConfig(builder.ConfigWithFilterSpec(spec))

	// A small bank of pre-rendered windows so the loop measures analysis only.
	const bank = 16
	inputs := make([]builder.Window, bank)
	for i := range inputs {
		opts := builder.DefaultPPGOptions()
		opts.SampleRate = *rate
		opts.Duration = *duration
		opts.HeartRateBPM = 55 + float64(i*5)
		opts.NoiseStd = 0.5
		opts.Seed = int64(i)
		if *dual {
			inputs[i], err = builder.SyntheticDualPPG(opts, 800, 0.5+0.05*float64(i))
		} else {
			inputs[i], err = builder.SyntheticPPG(opts)
		}
		if err != nil {
			panic(err)
		}
	}

	meter := builder.NewMeter()
	sensor := builder.NewSensor(builder.SensorWithMeter(meter))
	p := builder.NewPipeline(builder.PipelineWithSensor(sensor))

	var (
		next     atomic.Int64
		rejected atomic.Int64
		wg       sync.WaitGroup
	)
	hostDone := make(chan builder.HostUsage, 1)
	go func() {
		// Averaged over the expected run; the reading is informational only.
		usage, _ := meter.SampleHost(time.Second)
		hostDone <- usage
	}()

	start := time.Now()
	for w := 0; w < *workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := next.Add(1) - 1
				if i >= int64(*windows) {
					return
				}
				if _, err := p.Analyze(inputs[i%bank], cfg); err != nil {
					rejected.Add(1)
				}
			}
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)
	usage := <-hostDone

	samples := meter.GetMetricCount(string(builder.MetricSamplesAnalyzedCount))
	fmt.Printf("windows=%d workers=%d dual=%v family=%s\n", *windows, *workers, *dual, fam)
	fmt.Printf("elapsed=%v windows/s=%.1f Msamples/s=%.2f\n",
		elapsed, float64(*windows)/elapsed.Seconds(), float64(samples)/elapsed.Seconds()/1e6)
	fmt.Printf("partial=%d rejected=%d cpu=%.1f%% mem=%.1f%%\n",
		meter.GetMetricCount(string(builder.MetricPartialResultCount)), rejected.Load(),
		usage.CPUPercent, usage.MemoryPercent)
}
