// Package compress implements CAST's entropy-coding backends behind a
// shared Codec interface: the in-process and external-helper LZMA2 codecs
// spec §4.6 describes as the baseline, plus a set of selectable alternative
// codecs (zstd, its cgo variant, lz4, s2). The codec used is chosen when
// the writer and reader are constructed and is not recorded in the archive.
package compress

import (
	"fmt"

	"github.com/castfmt/cast/format"
)

// Compressor compresses a byte slice.
//
// Memory management:
//   - Returned slice is newly allocated and owned by the caller
//   - Input slice is not modified
//   - Internal buffers may be reused for efficiency
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a byte slice previously produced by the
// matching Compressor.
//
// Thread Safety: Decompressor implementations must be safe for concurrent
// use or document their thread safety requirements clearly.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats reports the outcome of one block's compression pass.
type CompressionStats struct {
	Codec               format.CodecKind
	OriginalSize        int64
	CompressedSize      int64
	CompressionTimeNs   int64
	DecompressionTimeNs int64
}

// CompressionRatio returns compressed size / original size. Values below
// 1.0 indicate successful compression.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns space savings as a percentage (0-100).
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// CreateCodec builds a Codec for kind. helperPath is only consulted for
// format.CodecLZMA2/CodecLZMA2External (the xz/7z binary search path);
// target names the caller for error messages.
func CreateCodec(kind format.CodecKind, helperPath string, target string) (Codec, error) {
	switch kind {
	case format.CodecNone:
		return NewNoOpCompressor(), nil
	case format.CodecLZMA2:
		return NewLZMA2Codec(helperPath)
	case format.CodecLZMA2External:
		return NewExternalLZMA2Codec(helperPath)
	case format.CodecZstd:
		return NewZstdCompressor(), nil
	case format.CodecZstdCgo:
		return NewZstdCgoCompressor(), nil
	case format.CodecLZ4:
		return NewLZ4Compressor(), nil
	case format.CodecS2:
		return NewS2Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s codec: %s", target, kind)
	}
}

// builtinCodecs holds the codecs that never need construction arguments;
// format.CodecLZMA2/CodecLZMA2External are deliberately absent (they need a
// helper path) and must go through CreateCodec.
var builtinCodecs = map[format.CodecKind]Codec{
	format.CodecNone:    NewNoOpCompressor(),
	format.CodecZstd:    NewZstdCompressor(),
	format.CodecZstdCgo: NewZstdCgoCompressor(),
	format.CodecLZ4:     NewLZ4Compressor(),
	format.CodecS2:      NewS2Compressor(),
}

// GetCodec retrieves a built-in Codec that needs no construction arguments.
func GetCodec(kind format.CodecKind) (Codec, error) {
	if codec, ok := builtinCodecs[kind]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported codec (needs CreateCodec): %s", kind)
}
