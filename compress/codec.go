// Package compress wraps an encoded beads buffer in an optional
// compression envelope: one byte naming the algorithm, a VLQ-encoded
// uncompressed length, then the compressed (or, for None, raw) payload.
package compress

import (
	"fmt"

	"github.com/arloliu/beads/vlq"
)

// Compressor compresses a payload.
//
// Memory management: the returned slice is newly allocated and owned by
// the caller; the input slice is not modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a payload produced by the matching
// Compressor.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions of one compression algorithm.
type Codec interface {
	Compressor
	Decompressor
}

// Type identifies the compression algorithm framed around a payload.
type Type uint8

const (
	None Type = 0x1
	Zstd Type = 0x2
	S2   Type = 0x3
	LZ4  Type = 0x4
)

func (t Type) String() string {
	switch t {
	case None:
		return "None"
	case Zstd:
		return "Zstd"
	case S2:
		return "S2"
	case LZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// CompressionStats reports the outcome of one compress operation, useful
// for choosing an algorithm or monitoring space savings in production.
type CompressionStats struct {
	Algorithm      Type
	OriginalSize   int64
	CompressedSize int64
}

// CompressionRatio returns compressed size / original size; values below
// 1.0 indicate the envelope shrank the payload.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space saved as a percentage (0-100).
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// CreateCodec builds a Codec for the given compression type. target
// names the caller's use site, for a more useful error message.
func CreateCodec(t Type, target string) (Codec, error) {
	switch t {
	case None:
		return NewNoOpCodec(), nil
	case Zstd:
		return NewZstdCodec(), nil
	case S2:
		return NewS2Codec(), nil
	case LZ4:
		return NewLZ4Codec(), nil
	default:
		return nil, fmt.Errorf("compress: invalid %s compression: %s", target, t)
	}
}

var builtinCodecs = map[Type]Codec{
	None: NewNoOpCodec(),
	Zstd: NewZstdCodec(),
	S2:   NewS2Codec(),
	LZ4:  NewLZ4Codec(),
}

// GetCodec retrieves a built-in Codec for the given compression type.
func GetCodec(t Type) (Codec, error) {
	if codec, ok := builtinCodecs[t]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("compress: unsupported compression type: %s", t)
}

// Envelope wraps data with an algorithm tag and the uncompressed length,
// so Open can validate the round trip without probing the payload.
func Envelope(t Type, data []byte) ([]byte, error) {
	codec, err := GetCodec(t)
	if err != nil {
		return nil, err
	}

	compressed, err := codec.Compress(data)
	if err != nil {
		return nil, err
	}

	var lenBuf [vlq.MaxBytes]byte
	n := vlq.Put(lenBuf[:], uint64(len(data)))

	out := make([]byte, 1+n+len(compressed))
	out[0] = byte(t)
	copy(out[1:], lenBuf[:n])
	copy(out[1+n:], compressed)

	return out, nil
}

// Open reverses Envelope, returning the original uncompressed payload.
func Open(buf []byte) ([]byte, error) {
	if len(buf) < 1 {
		return nil, fmt.Errorf("compress: empty envelope")
	}

	t := Type(buf[0])
	uncompressedLen, n, err := vlq.Read(buf[1:])
	if err != nil {
		return nil, err
	}

	codec, err := GetCodec(t)
	if err != nil {
		return nil, err
	}

	out, err := codec.Decompress(buf[1+n:])
	if err != nil {
		return nil, err
	}
	if uint64(len(out)) != uncompressedLen {
		return nil, fmt.Errorf("compress: decompressed length mismatch: got %d, want %d", len(out), uncompressedLen)
	}

	return out, nil
}
