package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joeydtaylor/ppglab/pkg/builder"
)

func main() {
	outDir := "out"
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Printf("Failed to create %s: %v\n", outDir, err)
		return
	}

	frame, err := builder.SyntheticDualPPG(builder.DefaultPPGOptions(), 800, 0.65)
	if err != nil {
		fmt.Printf("Failed to render channels: %v\n", err)
		return
	}

	// Binary waveform round trip, compressed with each algorithm.
	var raw bytes.Buffer
	if err := builder.NewWaveEncoder().Encode(&raw, frame.IR); err != nil {
		fmt.Printf("Encode failed: %v\n", err)
		return
	}
	for _, alg := range []builder.CompressionAlgorithm{
		builder.CompressGzip, builder.CompressSnappy, builder.CompressZstd, builder.CompressBrotli, builder.CompressLZ4,
	} {
		packed, err := builder.Compress(raw.Bytes(), alg)
		if err != nil {
			fmt.Printf("%s: %v\n", alg, err)
			continue
		}
		unpacked, err := builder.Decompress(packed, alg)
		if err != nil {
			fmt.Printf("%s: %v\n", alg, err)
			continue
		}
		back, err := builder.NewWaveDecoder().Decode(bytes.NewReader(unpacked))
		if err != nil {
			fmt.Printf("%s: decode failed: %v\n", alg, err)
			continue
		}
		fmt.Printf("%-7s %6d -> %6d bytes, %d samples at %.0f Hz\n", alg, raw.Len(), len(packed), back.Len(), back.SampleRate())
	}

	res, err := builder.NewPipeline().Analyze(frame, builder.DefaultConfig())
	if err != nil {
		fmt.Printf("Analysis rejected: %v\n", err)
		return
	}
	tables := builder.ResultTables(res)

	write := func(name string, fn func(*bytes.Buffer) error) {
		var buf bytes.Buffer
		if err := fn(&buf); err != nil {
			fmt.Printf("%s: %v\n", name, err)
			return
		}
		path := filepath.Join(outDir, name)
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			fmt.Printf("%s: %v\n", name, err)
			return
		}
		fmt.Printf("wrote %s (%d bytes)\n", path, buf.Len())
	}
	write("samples.parquet", func(b *bytes.Buffer) error { return builder.WriteParquet(b, tables.Samples, "zstd") })
	write("extrema.parquet", func(b *bytes.Buffer) error { return builder.WriteParquet(b, tables.Extrema, "snappy") })
	write("heart_rate.parquet", func(b *bytes.Buffer) error { return builder.WriteParquet(b, tables.Rates, "snappy") })
	write("r_ratio.parquet", func(b *bytes.Buffer) error { return builder.WriteParquet(b, tables.RRatios, "gzip") })
	write("quality.parquet", func(b *bytes.Buffer) error { return builder.WriteParquet(b, tables.Quality, "none") })
	write("result.json", func(b *bytes.Buffer) error {
		return builder.NewJSONEncoder[map[string]any]().Encode(b, builder.ResultToMap(res))
	})
}
