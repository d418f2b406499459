package types

import "io"

// Decoder deserializes one object from r.
type Decoder[T any] interface {
	Decode(io.Reader) (T, error)
}

// Encoder serializes one object to w.
type Encoder[T any] interface {
	Encode(io.Writer, T) error
}

// JSONDecoder decodes one or many JSON objects.
type JSONDecoder[T any] interface {
	Decode(io.Reader) (T, error)
	DecodeSlice(r io.Reader) ([]T, error)
}

// JSONEncoder encodes one or many JSON objects.
type JSONEncoder[T any] interface {
	Encode(io.Writer, T) error
	EncodeSlice(w io.Writer, elems []T) error
}

// CompressionAlgorithm names a payload compression scheme for exported results.
type CompressionAlgorithm string

const (
	CompressNone   CompressionAlgorithm = "none"
	CompressGzip   CompressionAlgorithm = "gzip"
	CompressSnappy CompressionAlgorithm = "snappy"
	CompressZstd   CompressionAlgorithm = "zstd"
	CompressBrotli CompressionAlgorithm = "brotli"
	CompressLZ4    CompressionAlgorithm = "lz4"
)
