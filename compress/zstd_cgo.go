//go:build cgo

package compress

import "github.com/valyala/gozstd"

// ZstdCgoCompressor wraps valyala/gozstd's cgo zstd binding, offered as
// format.CodecZstdCgo: a faster-compressing alternative to the pure-Go
// ZstdCompressor for builds where cgo is available.
type ZstdCgoCompressor struct{}

var _ Codec = (*ZstdCgoCompressor)(nil)

// NewZstdCgoCompressor creates a new cgo zstd compressor at the default
// compression level.
func NewZstdCgoCompressor() ZstdCgoCompressor {
	return ZstdCgoCompressor{}
}

func (c ZstdCgoCompressor) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 3), nil
}

func (c ZstdCgoCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.Decompress(nil, data)
}
