package compress

// ZstdCompressor provides pure-Go Zstandard compression (klauspost/compress/zstd),
// offered as format.CodecZstd: a fallback high-ratio codec for environments
// with no LZMA2 backend (no xz/7z on PATH, no cgo).
//
// Performance characteristics:
//   - Compression: ~5-20 ns/byte (depending on compression level)
//   - Decompression: ~2-5 ns/byte
//   - Compression ratio: 5:1 to 20:1 for delta-encoded timestamps
//   - Memory usage: Moderate (encoders/decoders are pooled and reused across calls)
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Returns:
//   - ZstdCompressor: New Zstd compressor instance
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
