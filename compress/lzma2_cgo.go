//go:build cgo

package compress

import (
	"bytes"
	"io"

	"dill.foo/xz"
)

const cgoLZMA2Available = true

// decompressLZMA2Cgo decodes an LZMA2/xz stream in-process via dill.foo/xz's
// cgo liblzma binding.
func decompressLZMA2Cgo(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	r := xz.NewReader(bytes.NewReader(data))
	defer r.Close()

	return io.ReadAll(r)
}
