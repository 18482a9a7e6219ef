package mesh

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

const (
	frameMagic   = 0x4F43454E // "OCEN"
	frameVersion = 1

	flagDisplacement = 1 << 0

	// MaxFrameWidth bounds the grid width a frame may carry. A 4096×4096
	// frame is already several hundred megabytes uncompressed.
	MaxFrameWidth = 4096
)

// ErrInvalidFrame is returned when decoding data that is not a frame.
var ErrInvalidFrame = errors.New("mesh: invalid frame data")

// Frame is one synthesized ocean surface: the per-vertex buffers a renderer
// uploads plus the static index buffer.
type Frame struct {
	Time          float32
	Width         int
	Vertices      []float32
	Normals       []float32
	Displacements []float32
	Indices       []uint32
}

// Validate checks that the buffer sizes agree with the grid width.
func (f *Frame) Validate() error {
	if err := checkWidth(f.Width); err != nil {
		return err
	}
	n := f.Width * f.Width
	if len(f.Vertices) != 3*n {
		return fmt.Errorf("%w: %d vertex floats for width %d", ErrInvalidFrame, len(f.Vertices), f.Width)
	}
	if len(f.Normals) != 3*n {
		return fmt.Errorf("%w: %d normal floats for width %d", ErrInvalidFrame, len(f.Normals), f.Width)
	}
	if f.Displacements != nil && len(f.Displacements) != 2*n {
		return fmt.Errorf("%w: %d displacement floats for width %d", ErrInvalidFrame, len(f.Displacements), f.Width)
	}
	if len(f.Indices) != 6*(f.Width-1)*(f.Width-1) {
		return fmt.Errorf("%w: %d indices for width %d", ErrInvalidFrame, len(f.Indices), f.Width)
	}
	return nil
}

func checkWidth(width int) error {
	if width < 2 || width > MaxFrameWidth {
		return fmt.Errorf("%w: width %d outside [2, %d]", ErrInvalidFrame, width, MaxFrameWidth)
	}
	return nil
}

// EncodeFrameBinary writes the frame as gzip-compressed little-endian data.
func EncodeFrameBinary(f *Frame) ([]byte, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)

	flags := uint32(0)
	if f.Displacements != nil {
		flags |= flagDisplacement
	}
	header := []uint32{frameMagic, frameVersion, flags, uint32(f.Width)}
	if err := binary.Write(gz, binary.LittleEndian, header); err != nil {
		return nil, err
	}
	if err := binary.Write(gz, binary.LittleEndian, f.Time); err != nil {
		return nil, err
	}

	if _, err := gz.Write(Float32Bytes(f.Vertices)); err != nil {
		return nil, err
	}
	if _, err := gz.Write(Float32Bytes(f.Normals)); err != nil {
		return nil, err
	}
	if f.Displacements != nil {
		if _, err := gz.Write(Float32Bytes(f.Displacements)); err != nil {
			return nil, err
		}
	}
	if _, err := gz.Write(Uint32Bytes(f.Indices)); err != nil {
		return nil, err
	}

	if err := gz.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeFrameBinary reverses EncodeFrameBinary.
func DecodeFrameBinary(data []byte) (*Frame, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gz.Close()

	var header [4]uint32
	if err := binary.Read(gz, binary.LittleEndian, &header); err != nil {
		return nil, err
	}
	if header[0] != frameMagic {
		return nil, fmt.Errorf("%w: magic %x", ErrInvalidFrame, header[0])
	}
	if header[1] != frameVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidFrame, header[1])
	}
	flags := header[2]
	if flags&^flagDisplacement != 0 {
		return nil, fmt.Errorf("%w: unknown flags %#x", ErrInvalidFrame, flags)
	}
	if header[3] > MaxFrameWidth {
		return nil, fmt.Errorf("%w: width %d exceeds %d", ErrInvalidFrame, header[3], MaxFrameWidth)
	}
	width := int(header[3])
	if err := checkWidth(width); err != nil {
		return nil, err
	}

	f := &Frame{Width: width}
	if err := binary.Read(gz, binary.LittleEndian, &f.Time); err != nil {
		return nil, err
	}

	n := width * width
	if f.Vertices, err = readFloat32s(gz, 3*n); err != nil {
		return nil, err
	}
	if f.Normals, err = readFloat32s(gz, 3*n); err != nil {
		return nil, err
	}
	if flags&flagDisplacement != 0 {
		if f.Displacements, err = readFloat32s(gz, 2*n); err != nil {
			return nil, err
		}
	}
	if f.Indices, err = readUint32s(gz, 6*(width-1)*(width-1)); err != nil {
		return nil, err
	}

	return f, nil
}

// Float32Bytes returns the tightly packed little-endian bytes of data, the
// layout a graphics API expects for a float vertex buffer.
func Float32Bytes(data []float32) []byte {
	out := make([]byte, 4*len(data))
	for i, v := range data {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(v))
	}
	return out
}

// Uint32Bytes returns the tightly packed little-endian bytes of an index
// buffer.
func Uint32Bytes(data []uint32) []byte {
	out := make([]byte, 4*len(data))
	for i, v := range data {
		binary.LittleEndian.PutUint32(out[4*i:], v)
	}
	return out
}

// readChunk is the number of values decoded per read, so a truncated stream
// fails before its header-declared size is allocated.
const readChunk = 1 << 14

func readFloat32s(r io.Reader, count int) ([]float32, error) {
	words, err := readUint32s(r, count)
	if err != nil {
		return nil, err
	}
	data := make([]float32, len(words))
	for i, w := range words {
		data[i] = math.Float32frombits(w)
	}
	return data, nil
}

func readUint32s(r io.Reader, count int) ([]uint32, error) {
	data := make([]uint32, 0, min(count, readChunk))
	buf := make([]byte, 4*readChunk)
	for len(data) < count {
		k := min(count-len(data), readChunk)
		if _, err := io.ReadFull(r, buf[:4*k]); err != nil {
			return nil, fmt.Errorf("%w: truncated after %d of %d values: %v", ErrInvalidFrame, len(data), count, err)
		}
		for i := 0; i < k; i++ {
			data = append(data, binary.LittleEndian.Uint32(buf[4*i:]))
		}
	}
	return data, nil
}
