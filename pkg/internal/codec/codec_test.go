package codec_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/joeydtaylor/ppglab/pkg/internal/codec"
	"github.com/joeydtaylor/ppglab/pkg/internal/pipeline"
	"github.com/joeydtaylor/ppglab/pkg/internal/synth"
	"github.com/joeydtaylor/ppglab/pkg/internal/types"
)

func dualResult(t *testing.T) types.AnalysisResult {
	t.Helper()
	frame, err := synth.DualPPG(synth.DefaultPPGOptions(), 500, 0.6)
	if err != nil {
		t.Fatalf("DualPPG: %v", err)
	}
	res, err := pipeline.NewPipeline().Analyze(frame, pipeline.DefaultConfig())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	return res
}

func TestJSONEncodingDecoding(t *testing.T) {
	type sample struct {
		Value string `json:"value"`
	}
	in := []sample{{Value: "a"}, {Value: "b"}}

	var buf bytes.Buffer
	if err := codec.NewJSONEncoder[sample]().EncodeSlice(&buf, in); err != nil {
		t.Fatalf("EncodeSlice: %v", err)
	}
	out, err := codec.NewJSONDecoder[sample]().DecodeSlice(&buf)
	if err != nil {
		t.Fatalf("DecodeSlice: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("decoded %v, want %v", out, in)
	}
}

func TestWaveCodec(t *testing.T) {
	withTime, err := types.NewWaveform([]float64{1, 2, 3}, 10, types.WithTimeAxis([]float64{5, 5.1, 5.2}))
	if err != nil {
		t.Fatalf("NewWaveform: %v", err)
	}
	plain, _ := synth.Sine(100, 256, 1.2, 3, 7)

	for name, w := range map[string]types.Waveform{"time axis": withTime, "implicit time": plain} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := codec.NewWaveEncoder().Encode(&buf, w); err != nil {
				t.Fatalf("Encode: %v", err)
			}
			got, err := codec.NewWaveDecoder().Decode(&buf)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if got.SampleRate() != w.SampleRate() || got.HasTimeAxis() != w.HasTimeAxis() {
				t.Fatalf("header mismatch: rate %v time %v", got.SampleRate(), got.HasTimeAxis())
			}
			if !reflect.DeepEqual(got.Samples(), w.Samples()) || !reflect.DeepEqual(got.Times(), w.Times()) {
				t.Fatal("samples or time axis changed")
			}
		})
	}
}

func TestWaveCodec_RejectsGarbage(t *testing.T) {
	_, err := codec.NewWaveDecoder().Decode(bytes.NewReader([]byte("NOPE0000")))
	if !errors.Is(err, types.ErrStructuralInput) {
		t.Fatalf("expected StructuralInputError, got %v", err)
	}
	if err := codec.NewWaveEncoder().Encode(&bytes.Buffer{}, types.Waveform{}); !errors.Is(err, types.ErrStructuralInput) {
		t.Fatalf("expected StructuralInputError for the zero waveform, got %v", err)
	}
}

func TestCompression(t *testing.T) {
	payload := bytes.Repeat([]byte("ppg window payload "), 200)
	for _, name := range []string{"", "none", "gzip", "snappy", "zstd", "brotli", "lz4"} {
		t.Run(name, func(t *testing.T) {
			alg, err := codec.ParseCompression(name)
			if err != nil {
				t.Fatalf("ParseCompression: %v", err)
			}
			packed, err := codec.Compress(payload, alg)
			if err != nil {
				t.Fatalf("Compress: %v", err)
			}
			if alg != types.CompressNone && len(packed) >= len(payload) {
				t.Fatalf("%s did not shrink a repetitive payload: %d >= %d", alg, len(packed), len(payload))
			}
			unpacked, err := codec.Decompress(packed, alg)
			if err != nil {
				t.Fatalf("Decompress: %v", err)
			}
			if !bytes.Equal(unpacked, payload) {
				t.Fatal("payload changed")
			}
		})
	}
	if _, err := codec.ParseCompression("rar"); err == nil {
		t.Fatal("expected an error for an unknown algorithm")
	}
}

func TestResultToMap(t *testing.T) {
	res := dualResult(t)
	m := codec.ResultToMap(res)

	if m["primary"] != types.ChannelIR || m["dual"] != true {
		t.Fatalf("unexpected header: %v %v", m["primary"], m["dual"])
	}
	channels := m["channels"].(map[string]any)
	ir := channels[types.ChannelIR].(map[string]any)
	if ir["filtered"] == nil || ir["extrema"] == nil || ir["quality"] == nil {
		t.Fatalf("IR channel is missing stage values: %v", ir)
	}
	if _, ok := ir["sdppg"]; ok {
		t.Fatal("sdppg should be omitted when not requested")
	}
	q := ir["quality"].(map[string]any)
	if _, ok := q[types.MetricSNR].(float64); !ok {
		t.Fatalf("snr should be a number, got %T", q[types.MetricSNR])
	}

	hr := m["heart_rate"].(map[string]any)
	smoothed := hr["smoothed"].(map[string]any)
	if len(smoothed["bpm"].([]float64)) == 0 {
		t.Fatal("smoothed trend is empty")
	}

	dual := m["dual_channel"].(map[string]any)
	ox := dual["oxygenation"].(map[string]any)
	if _, ok := ox["spo2"].(float64); !ok {
		t.Fatalf("oxygenation missing: %v", dual["oxygenation_error"])
	}
	if len(m["failures"].([]any)) != 0 {
		t.Fatalf("unexpected failures: %v", m["failures"])
	}

	if _, err := json.Marshal(m); err != nil {
		t.Fatalf("map is not JSON encodable: %v", err)
	}
}

func TestResultToMap_MarksFailures(t *testing.T) {
	w, _ := synth.Constant(100, 1000, 3)
	res, err := pipeline.NewPipeline().Analyze(w, pipeline.DefaultConfig())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	m := codec.ResultToMap(res)
	ch := m["channels"].(map[string]any)[types.ChannelSignal].(map[string]any)

	qerr, ok := ch["quality_error"].(map[string]any)
	if !ok || qerr["kind"] != string(types.KindDegenerateSignal) {
		t.Fatalf("expected a DegenerateSignal marker, got %v", ch["quality_error"])
	}
	q := ch["quality"].(map[string]any)
	if q[types.MetricCrestFactor] != nil {
		t.Fatalf("crest factor should be unavailable, got %v", q[types.MetricCrestFactor])
	}
	if m["heart_rate"] != nil || m["heart_rate_error"] == nil {
		t.Fatal("heart rate should be absent with a reason")
	}
	if _, ok := m["dual_channel"]; ok {
		t.Fatal("single-channel result must not carry a dual-channel entry")
	}
}

func TestParquetTables(t *testing.T) {
	res := dualResult(t)
	tables := codec.ResultTables(res)

	if len(tables.Samples) != 2*3000 {
		t.Fatalf("expected both channels' samples, got %d rows", len(tables.Samples))
	}
	if len(tables.Extrema) == 0 || len(tables.Rates) == 0 || len(tables.RRatios) == 0 || len(tables.Quality) == 0 {
		t.Fatalf("empty table: extrema=%d rates=%d rratios=%d quality=%d",
			len(tables.Extrema), len(tables.Rates), len(tables.RRatios), len(tables.Quality))
	}

	for _, comp := range []string{"", "zstd", "gzip", "none"} {
		var buf bytes.Buffer
		if err := codec.WriteParquet(&buf, tables.RRatios, comp); err != nil {
			t.Fatalf("WriteParquet(%q): %v", comp, err)
		}
		got, err := codec.ReadParquet[codec.RRatioRow](buf.Bytes())
		if err != nil {
			t.Fatalf("ReadParquet(%q): %v", comp, err)
		}
		if !reflect.DeepEqual(got, tables.RRatios) {
			t.Fatalf("R-ratio rows changed through parquet (%q)", comp)
		}
	}

	var buf bytes.Buffer
	if err := codec.WriteParquet(&buf, tables.Quality, "snappy"); err != nil {
		t.Fatalf("WriteParquet quality: %v", err)
	}
	quality, err := codec.ReadParquet[codec.QualityRow](buf.Bytes())
	if err != nil {
		t.Fatalf("ReadParquet quality: %v", err)
	}
	if len(quality) != len(tables.Quality) || quality[0].Channel != types.ChannelRed {
		t.Fatalf("unexpected quality rows: %d, first %+v", len(quality), quality[0])
	}

	if err := codec.WriteParquet(&bytes.Buffer{}, tables.Rates, "lzma"); err == nil {
		t.Fatal("expected an error for an unsupported parquet compression")
	}
}
