// Package codec exports analysis results for renderers and storage: a flat map view,
// JSON, a compact binary waveform format, parquet tables and payload compression.
package codec

import (
	"io"
)

// Decoder reads one value of T.
type Decoder[T any] interface {
	Decode(io.Reader) (T, error)
}

// Encoder writes one value of T.
type Encoder[T any] interface {
	Encode(io.Writer, T) error
}
