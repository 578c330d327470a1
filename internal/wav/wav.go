// Package wav reads and writes the small subset of RIFF/WAVE the command
// line tools need: 16-bit PCM and 32-bit IEEE float, any channel count.
// Files in WAVE_FORMAT_EXTENSIBLE layout are read through their subformat.
package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

const (
	formatPCM        = 1
	formatFloat      = 3
	formatExtensible = 0xFFFE

	headerSize = 44

	// extensibleSize is the fmt chunk length of WAVE_FORMAT_EXTENSIBLE.
	extensibleSize = 40

	// sizeStreamed is the data length written by encoders that do not know
	// the final size. Such data runs to the end of the stream.
	sizeStreamed = 0xFFFFFFFF
)

// subformatTail is the part of the KSDATAFORMAT_SUBTYPE GUIDs shared by PCM
// and IEEE float; the first two bytes carry the format code.
var subformatTail = [14]byte{0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71}

type fmtExtension struct {
	Size        uint16
	ValidBits   uint16
	ChannelMask uint32
	SubFormat   [16]byte
}

// ErrFormat is returned for streams that are not a supported WAVE file.
var ErrFormat = errors.New("wav: unsupported format")

// Audio is an interleaved sample buffer.
type Audio struct {
	SampleRate int
	Channels   int
	Samples    []float32
}

// Frames returns the number of sample frames.
func (a *Audio) Frames() int {
	if a.Channels <= 0 {
		return 0
	}
	return len(a.Samples) / a.Channels
}

// Channel returns a copy of channel ch.
func (a *Audio) Channel(ch int) []float32 {
	frames := a.Frames()
	out := make([]float32, frames)
	for i := range out {
		out[i] = a.Samples[i*a.Channels+ch]
	}
	return out
}

type fmtChunk struct {
	Format        uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

// Write encodes a as 32-bit float WAVE.
func Write(w io.Writer, a *Audio) error {
	if a.Channels <= 0 || a.Channels > math.MaxUint16 {
		return fmt.Errorf("wav: invalid channel count %d", a.Channels)
	}
	if a.SampleRate <= 0 {
		return fmt.Errorf("wav: invalid sample rate %d", a.SampleRate)
	}
	if len(a.Samples)%a.Channels != 0 {
		return fmt.Errorf("wav: %d samples do not fill %d channels", len(a.Samples), a.Channels)
	}

	dataSize := uint32(4 * len(a.Samples))
	f := fmtChunk{
		Format:        formatFloat,
		Channels:      uint16(a.Channels),
		SampleRate:    uint32(a.SampleRate),
		ByteRate:      uint32(a.SampleRate * a.Channels * 4),
		BlockAlign:    uint16(a.Channels * 4),
		BitsPerSample: 32,
	}

	hdr := []any{
		[4]byte{'R', 'I', 'F', 'F'},
		uint32(headerSize - 8 + dataSize),
		[4]byte{'W', 'A', 'V', 'E'},
		[4]byte{'f', 'm', 't', ' '},
		uint32(16),
		f,
		[4]byte{'d', 'a', 't', 'a'},
		dataSize,
	}
	for _, v := range hdr {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return fmt.Errorf("wav: write header: %w", err)
		}
	}

	if err := binary.Write(w, binary.LittleEndian, a.Samples); err != nil {
		return fmt.Errorf("wav: write samples: %w", err)
	}

	return nil
}

// Read decodes a 16-bit PCM or 32-bit float WAVE stream. Unknown chunks are
// skipped.
func Read(r io.Reader) (*Audio, error) {
	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return nil, fmt.Errorf("wav: read header: %w", err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return nil, ErrFormat
	}

	var (
		f      fmtChunk
		haveFm bool
	)

	for {
		var id [4]byte
		var size uint32

		if _, err := io.ReadFull(r, id[:]); err != nil {
			return nil, fmt.Errorf("wav: read chunk: %w", err)
		}
		if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
			return nil, fmt.Errorf("wav: read chunk size: %w", err)
		}

		switch string(id[:]) {
		case "fmt ":
			if size < 16 {
				return nil, ErrFormat
			}
			if err := binary.Read(r, binary.LittleEndian, &f); err != nil {
				return nil, fmt.Errorf("wav: read fmt: %w", err)
			}
			rest := int64(size - 16)
			if f.Format == formatExtensible {
				code, err := readExtension(r, size)
				if err != nil {
					return nil, err
				}
				f.Format = code
				rest -= extensibleSize - 16
			}
			if err := skip(r, rest+int64(size&1)); err != nil {
				return nil, err
			}
			haveFm = true
		case "data":
			if !haveFm {
				return nil, fmt.Errorf("%w: data before fmt", ErrFormat)
			}
			return readData(r, f, size)
		default:
			if err := skip(r, int64(size)+int64(size&1)); err != nil {
				return nil, err
			}
		}
	}
}

// readExtension reads the WAVE_FORMAT_EXTENSIBLE fields that follow the
// basic fmt chunk and returns the format code of the subformat.
func readExtension(r io.Reader, size uint32) (uint16, error) {
	if size < extensibleSize {
		return 0, fmt.Errorf("%w: extensible fmt chunk of %d bytes", ErrFormat, size)
	}

	var ext fmtExtension
	if err := binary.Read(r, binary.LittleEndian, &ext); err != nil {
		return 0, fmt.Errorf("wav: read fmt extension: %w", err)
	}

	if [14]byte(ext.SubFormat[2:]) != subformatTail {
		return 0, fmt.Errorf("%w: unknown subformat %x", ErrFormat, ext.SubFormat)
	}

	return binary.LittleEndian.Uint16(ext.SubFormat[:2]), nil
}

// readData decodes the data chunk. The payload is read up to size bytes or
// the end of the stream, whichever comes first, so a bogus or streamed size
// never drives the allocation.
func readData(r io.Reader, f fmtChunk, size uint32) (*Audio, error) {
	if f.Channels == 0 || f.SampleRate == 0 {
		return nil, ErrFormat
	}

	var decode func([]byte) float32
	width := 0

	switch {
	case f.Format == formatFloat && f.BitsPerSample == 32:
		width = 4
		decode = func(b []byte) float32 {
			return math.Float32frombits(binary.LittleEndian.Uint32(b))
		}
	case f.Format == formatPCM && f.BitsPerSample == 16:
		width = 2
		decode = func(b []byte) float32 {
			return float32(int16(binary.LittleEndian.Uint16(b))) / 32768
		}
	default:
		return nil, fmt.Errorf("%w: format %d with %d bits", ErrFormat, f.Format, f.BitsPerSample)
	}

	src := r
	if size != sizeStreamed {
		src = io.LimitReader(r, int64(size))
	}

	raw, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("wav: read samples: %w", err)
	}

	frame := width * int(f.Channels)
	raw = raw[:len(raw)-len(raw)%frame]

	a := &Audio{
		SampleRate: int(f.SampleRate),
		Channels:   int(f.Channels),
		Samples:    make([]float32, len(raw)/width),
	}
	for i := range a.Samples {
		a.Samples[i] = decode(raw[i*width:])
	}

	return a, nil
}

func skip(r io.Reader, n int64) error {
	if n <= 0 {
		return nil
	}
	if _, err := io.CopyN(io.Discard, r, n); err != nil {
		return fmt.Errorf("wav: skip chunk: %w", err)
	}
	return nil
}
