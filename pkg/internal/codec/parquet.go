package codec

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/joeydtaylor/ppglab/pkg/internal/types"
	parquet "github.com/parquet-go/parquet-go"
)

// SampleRow is one filtered sample of one channel.
type SampleRow struct {
	Channel string  `parquet:"channel" json:"channel"`
	Index   int64   `parquet:"index" json:"index"`
	Time    float64 `parquet:"time" json:"time"`
	Value   float64 `parquet:"value" json:"value"`
}

// ExtremumRow is one detected peak or trough.
type ExtremumRow struct {
	Channel    string  `parquet:"channel" json:"channel"`
	Kind       string  `parquet:"kind" json:"kind"`
	Index      int64   `parquet:"index" json:"index"`
	Time       float64 `parquet:"time" json:"time"`
	Value      float64 `parquet:"value" json:"value"`
	Prominence float64 `parquet:"prominence" json:"prominence"`
}

// RateRow is one point of the raw or smoothed heart-rate trend.
type RateRow struct {
	Series    string  `parquet:"series" json:"series"`
	Time      float64 `parquet:"time" json:"time"`
	BPM       float64 `parquet:"bpm" json:"bpm"`
	IBI       float64 `parquet:"ibi" json:"ibi"`
	Plausible bool    `parquet:"plausible" json:"plausible"`
}

// RRatioRow is the ratio-of-ratios of one common beat.
type RRatioRow struct {
	Time      float64 `parquet:"time" json:"time"`
	R         float64 `parquet:"r" json:"r"`
	SpO2      float64 `parquet:"spo2" json:"spo2"`
	InRange   bool    `parquet:"in_range" json:"in_range"`
	BeatStart int64   `parquet:"beat_start" json:"beat_start"`
	BeatEnd   int64   `parquet:"beat_end" json:"beat_end"`
}

// QualityRow is one quality metric of one channel.
type QualityRow struct {
	Channel   string  `parquet:"channel" json:"channel"`
	Metric    string  `parquet:"metric" json:"metric"`
	Value     float64 `parquet:"value" json:"value"`
	Available bool    `parquet:"available" json:"available"`
	Unit      string  `parquet:"unit" json:"unit"`
}

// Tables is the row-oriented view of an AnalysisResult. Stages without a value
// contribute no rows.
type Tables struct {
	Samples []SampleRow
	Extrema []ExtremumRow
	Rates   []RateRow
	RRatios []RRatioRow
	Quality []QualityRow
}

// ResultTables splits r into tables. Quality rows are sorted by channel then metric.
func ResultTables(r types.AnalysisResult) Tables {
	var t Tables
	for _, c := range r.Channels {
		if w, ok := c.Filtered.Get(); ok {
			for i, v := range w.Samples() {
				t.Samples = append(t.Samples, SampleRow{Channel: c.Name, Index: int64(i), Time: w.TimeAt(i), Value: v})
			}
		}
		if s, ok := c.Extrema.Get(); ok {
			for _, e := range s.Items {
				t.Extrema = append(t.Extrema, ExtremumRow{
					Channel: c.Name, Kind: string(e.Kind), Index: int64(e.Index),
					Time: e.Time, Value: e.Value, Prominence: e.Prominence,
				})
			}
		}
		if q, ok := c.Quality.Get(); ok {
			for _, name := range sortedKeys(q) {
				m := q[name]
				t.Quality = append(t.Quality, QualityRow{
					Channel: c.Name, Metric: name, Value: m.Value, Available: m.Available, Unit: m.Unit,
				})
			}
		}
	}

	if hr, ok := r.HeartRate.Get(); ok {
		for _, p := range hr.Raw {
			t.Rates = append(t.Rates, RateRow{Series: "raw", Time: p.Time, BPM: p.BPM, IBI: p.IBI, Plausible: p.Plausible})
		}
		for _, p := range hr.Smoothed {
			t.Rates = append(t.Rates, RateRow{Series: "smoothed", Time: p.Time, BPM: p.BPM, IBI: p.IBI, Plausible: p.Plausible})
		}
	}

	if r.Dual != nil {
		if d, ok := r.Dual.Get(); ok {
			if points, ok := d.RRatio.Get(); ok {
				for _, p := range points {
					t.RRatios = append(t.RRatios, RRatioRow{
						Time: p.Time, R: p.R, SpO2: p.SpO2, InRange: p.InRange,
						BeatStart: int64(p.BeatStart), BeatEnd: int64(p.BeatEnd),
					})
				}
			}
		}
	}
	return t
}

func sortedKeys(q types.QualityMetrics) []string {
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// parquetCompression maps a name to a parquet page codec; snappy is the default.
func parquetCompression(name string) (parquet.WriterOption, error) {
	switch strings.ToLower(name) {
	case "", "snappy":
		return parquet.Compression(&parquet.Snappy), nil
	case "zstd":
		return parquet.Compression(&parquet.Zstd), nil
	case "gzip", "gz":
		return parquet.Compression(&parquet.Gzip), nil
	case "none", "uncompressed":
		return parquet.Compression(&parquet.Uncompressed), nil
	}
	return nil, fmt.Errorf("unsupported parquet compression %q", name)
}

// WriteParquet writes rows as one parquet file to w.
func WriteParquet[T any](w io.Writer, rows []T, compression string) error {
	comp, err := parquetCompression(compression)
	if err != nil {
		return err
	}
	pw := parquet.NewGenericWriter[T](w, comp)
	if len(rows) > 0 {
		if _, err := pw.Write(rows); err != nil {
			_ = pw.Close()
			return err
		}
	}
	return pw.Close()
}

// ReadParquet reads every row of a parquet file held in data.
func ReadParquet[T any](data []byte) ([]T, error) {
	gr := parquet.NewGenericReader[T](bytes.NewReader(data))
	defer gr.Close()

	out := make([]T, 0, int(gr.NumRows()))
	batch := make([]T, 1024)
	for {
		n, err := gr.Read(batch)
		if n > 0 {
			out = append(out, batch[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
