package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joeydtaylor/ppglab/pkg/builder"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	var (
		addr   = flag.String("addr", ":9102", "metrics listen address")
		period = flag.Duration("period", 2*time.Second, "interval between analyses")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := builder.NewLogger(builder.LoggerWithLevel("info"))
	defer logger.Flush()

	meter := builder.NewMeter(builder.MeterWithLogger(logger))
	sensor := builder.NewSensor(builder.SensorWithMeter(meter))
	p := builder.NewPipeline(builder.PipelineWithLogger(logger), builder.PipelineWithSensor(sensor))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(meter.Gatherer(), promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: *addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Printf("metrics server: %v\n", err)
			stop()
		}
	}()
	fmt.Printf("Serving metrics on %s/metrics\n", *addr)

	opts := builder.DefaultPPGOptions()
	opts.Duration = 10
	opts.NoiseStd = 1

	ticker := time.NewTicker(*period)
	defer ticker.Stop()

	for i := int64(0); ; i++ {
		select {
		case <-ctx.Done():
			shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			_ = srv.Shutdown(shutdown)
			cancel()
			fmt.Printf("Final counts: %v\n", meter.Snapshot())
			return
		case <-ticker.C:
			opts.Seed = i
			opts.HeartRateBPM = 60 + float64(i%40)
			frame, err := builder.SyntheticDualPPG(opts, 700, 0.5+0.05*float64(i%10))
			if err != nil {
				fmt.Printf("Failed to render channels: %v\n", err)
				continue
			}
			if _, err := p.Analyze(frame, builder.DefaultConfig()); err != nil {
				fmt.Printf("Analysis rejected: %v\n", err)
			}
			if usage, err := meter.SampleHost(0); err == nil {
				fmt.Printf("cpu %.1f%% mem %.1f%% analyses %d\n", usage.CPUPercent, usage.MemoryPercent,
					meter.GetMetricCount(string(builder.MetricAnalysisCompleteCount)))
			}
		}
	}
}
