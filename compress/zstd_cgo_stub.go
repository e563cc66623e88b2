//go:build !cgo

package compress

import "github.com/castfmt/cast/errs"

// ZstdCgoCompressor's real implementation requires cgo (valyala/gozstd);
// this build reports it unavailable rather than silently degrading ratio.
type ZstdCgoCompressor struct{}

var _ Codec = (*ZstdCgoCompressor)(nil)

func NewZstdCgoCompressor() ZstdCgoCompressor {
	return ZstdCgoCompressor{}
}

func (c ZstdCgoCompressor) Compress(_ []byte) ([]byte, error) {
	return nil, errs.ErrNoHelper
}

func (c ZstdCgoCompressor) Decompress(_ []byte) ([]byte, error) {
	return nil, errs.ErrNoHelper
}
