//go:build !cgo

package compress

import "github.com/castfmt/cast/errs"

const cgoLZMA2Available = false

// decompressLZMA2Cgo is never invoked in a !cgo build (LZMA2Codec.Decompress
// checks cgoLZMA2Available first and uses the external helper instead); it
// exists only so the two build-tag variants of this file present the same
// symbol set.
func decompressLZMA2Cgo(_ []byte) ([]byte, error) {
	return nil, errs.ErrCodecFailed
}
