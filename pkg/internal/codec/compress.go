package codec

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/joeydtaylor/ppglab/pkg/internal/types"
	"github.com/joeydtaylor/ppglab/pkg/internal/utils"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
)

var supportedCompression = []types.CompressionAlgorithm{
	types.CompressNone, types.CompressGzip, types.CompressSnappy,
	types.CompressZstd, types.CompressBrotli, types.CompressLZ4,
}

// ParseCompression maps a name to an algorithm. The empty string means none.
func ParseCompression(name string) (types.CompressionAlgorithm, error) {
	a := types.CompressionAlgorithm(strings.ToLower(strings.TrimSpace(name)))
	if a == "" {
		return types.CompressNone, nil
	}
	if !utils.Contains(supportedCompression, a) {
		return "", fmt.Errorf("unsupported compression %q", name)
	}
	return a, nil
}

// Compress returns data compressed with algorithm.
func Compress(data []byte, algorithm types.CompressionAlgorithm) ([]byte, error) {
	var b bytes.Buffer
	var w io.WriteCloser

	switch algorithm {
	case "", types.CompressNone:
		return append([]byte(nil), data...), nil
	case types.CompressGzip:
		w = gzip.NewWriter(&b)
	case types.CompressSnappy:
		w = snappy.NewBufferedWriter(&b)
	case types.CompressZstd:
		var err error
		w, err = zstd.NewWriter(&b)
		if err != nil {
			return nil, err
		}
	case types.CompressBrotli:
		w = brotli.NewWriterLevel(&b, brotli.BestCompression)
	case types.CompressLZ4:
		w = lz4.NewWriter(&b)
	default:
		return nil, fmt.Errorf("unsupported compression %q", algorithm)
	}

	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// Decompress reverses Compress.
func Decompress(data []byte, algorithm types.CompressionAlgorithm) ([]byte, error) {
	var r io.Reader
	src := bytes.NewReader(data)

	switch algorithm {
	case "", types.CompressNone:
		return append([]byte(nil), data...), nil
	case types.CompressGzip:
		gr, err := gzip.NewReader(src)
		if err != nil {
			return nil, err
		}
		defer gr.Close()
		r = gr
	case types.CompressSnappy:
		r = snappy.NewReader(src)
	case types.CompressZstd:
		zr, err := zstd.NewReader(src)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		r = zr
	case types.CompressBrotli:
		r = brotli.NewReader(src)
	case types.CompressLZ4:
		r = lz4.NewReader(src)
	default:
		return nil, fmt.Errorf("unsupported compression %q", algorithm)
	}
	return io.ReadAll(r)
}
