package builder

import (
	"io"

	"github.com/joeydtaylor/ppglab/pkg/internal/codec"
	"github.com/joeydtaylor/ppglab/pkg/internal/types"
)

type CompressionAlgorithm = types.CompressionAlgorithm

const (
	CompressNone   = types.CompressNone
	CompressGzip   = types.CompressGzip
	CompressSnappy = types.CompressSnappy
	CompressZstd   = types.CompressZstd
	CompressBrotli = types.CompressBrotli
	CompressLZ4    = types.CompressLZ4
)

// Columnar export rows.
type (
	ResultTablesSet = codec.Tables
	SampleRow       = codec.SampleRow
	ExtremumRow     = codec.ExtremumRow
	RateRow         = codec.RateRow
	RRatioRow       = codec.RRatioRow
	QualityRow      = codec.QualityRow
)

// NewJSONEncoder creates a new JSON encoder for type T.
func NewJSONEncoder[T any]() types.JSONEncoder[T] {
	return codec.NewJSONEncoder[T]()
}

// NewJSONDecoder creates a new JSON decoder for type T.
func NewJSONDecoder[T any]() types.JSONDecoder[T] {
	return codec.NewJSONDecoder[T]()
}

// NewWaveEncoder creates an encoder for the binary waveform format.
func NewWaveEncoder() *codec.WaveEncoder {
	return codec.NewWaveEncoder()
}

// NewWaveDecoder creates a decoder for the binary waveform format.
func NewWaveDecoder() *codec.WaveDecoder {
	return codec.NewWaveDecoder()
}

// ParseCompression maps a name such as "zstd" to its algorithm.
func ParseCompression(name string) (CompressionAlgorithm, error) {
	return codec.ParseCompression(name)
}

// Compress packs data with algorithm.
func Compress(data []byte, algorithm CompressionAlgorithm) ([]byte, error) {
	return codec.Compress(data, algorithm)
}

// Decompress reverses Compress.
func Decompress(data []byte, algorithm CompressionAlgorithm) ([]byte, error) {
	return codec.Decompress(data, algorithm)
}

// ResultToMap flattens an analysis result into a JSON-ready mapping.
func ResultToMap(r AnalysisResult) map[string]any {
	return codec.ResultToMap(r)
}

// ResultTables flattens an analysis result into row sets for columnar export.
func ResultTables(r AnalysisResult) ResultTablesSet {
	return codec.ResultTables(r)
}

// WriteParquet writes rows as one parquet file.
func WriteParquet[T any](w io.Writer, rows []T, compression string) error {
	return codec.WriteParquet(w, rows, compression)
}

// ReadParquet reads every row of a parquet file.
func ReadParquet[T any](data []byte) ([]T, error) {
	return codec.ReadParquet[T](data)
}
