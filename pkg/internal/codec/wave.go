package codec

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/joeydtaylor/ppglab/pkg/internal/types"
)

// waveMagic opens every encoded waveform.
var waveMagic = [4]byte{'P', 'P', 'G', 'W'}

const (
	waveVersion   uint8 = 1
	flagTimeAxis  uint8 = 1 << 0
	maxWaveLength       = 1 << 26
)

// WaveEncoder writes a waveform as little-endian binary: magic, version, flags, sample
// rate, sample count, samples and, when present, the time axis.
type WaveEncoder struct{}

// WaveDecoder reads the format written by WaveEncoder and revalidates the waveform.
type WaveDecoder struct{}

func NewWaveEncoder() *WaveEncoder {
	return &WaveEncoder{}
}

func NewWaveDecoder() *WaveDecoder {
	return &WaveDecoder{}
}

func (e *WaveEncoder) Encode(w io.Writer, wave types.Waveform) error {
	if err := wave.Check(); err != nil {
		return err
	}

	var flags uint8
	if wave.HasTimeAxis() {
		flags |= flagTimeAxis
	}

	if _, err := w.Write(waveMagic[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, [2]uint8{waveVersion, flags}); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, wave.SampleRate()); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(wave.Len())); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, wave.Samples()); err != nil {
		return err
	}
	if flags&flagTimeAxis != 0 {
		if err := binary.Write(w, binary.LittleEndian, wave.Times()); err != nil {
			return err
		}
	}
	return nil
}

func (d *WaveDecoder) Decode(r io.Reader) (types.Waveform, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return types.Waveform{}, err
	}
	if magic != waveMagic {
		return types.Waveform{}, fmt.Errorf("%w: not an encoded waveform", types.ErrStructuralInput)
	}

	var header [2]uint8
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return types.Waveform{}, err
	}
	if header[0] != waveVersion {
		return types.Waveform{}, fmt.Errorf("%w: unsupported waveform version %d", types.ErrStructuralInput, header[0])
	}

	var rate float64
	if err := binary.Read(r, binary.LittleEndian, &rate); err != nil {
		return types.Waveform{}, err
	}
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return types.Waveform{}, err
	}
	if n > maxWaveLength {
		return types.Waveform{}, fmt.Errorf("%w: waveform length %d exceeds %d", types.ErrStructuralInput, n, maxWaveLength)
	}

	samples := make([]float64, n)
	if err := binary.Read(r, binary.LittleEndian, samples); err != nil {
		return types.Waveform{}, err
	}

	var options []types.WaveformOption
	if header[1]&flagTimeAxis != 0 {
		t := make([]float64, n)
		if err := binary.Read(r, binary.LittleEndian, t); err != nil {
			return types.Waveform{}, err
		}
		options = append(options, types.WithTimeAxis(t))
	}
	return types.NewWaveform(samples, rate, options...)
}
