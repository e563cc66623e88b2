package compress

// LZMA2Codec is the in-process LZMA2 codec described by spec §4.6. Its
// Decompress method uses the cgo liblzma bindings from dill.foo/xz when
// built with cgo enabled (lzma2_cgo.go); Compress always delegates to an
// ExternalLZMA2Codec, because dill.foo/xz's public API exposes only a
// stream decoder, never an encoder (see DESIGN.md for the grounding note).
type LZMA2Codec struct {
	external *ExternalLZMA2Codec
}

var _ Codec = (*LZMA2Codec)(nil)

// NewLZMA2Codec builds an LZMA2Codec backed by the resolved xz/7z helper at
// helperPath (empty string searches $SEVEN_ZIP_PATH then PATH).
func NewLZMA2Codec(helperPath string) (*LZMA2Codec, error) {
	return NewLZMA2CodecWithDictSize(helperPath, defaultDictSize)
}

// NewLZMA2CodecWithDictSize is NewLZMA2Codec with an explicit lzma2
// dictionary size for the external helper's compress path (the CLI's
// --dict-size flag).
func NewLZMA2CodecWithDictSize(helperPath string, dictSize int) (*LZMA2Codec, error) {
	ext, err := NewExternalLZMA2CodecWithDictSize(helperPath, dictSize)
	if err != nil {
		return nil, err
	}

	return &LZMA2Codec{external: ext}, nil
}

// Compress delegates to the external helper; see the type doc comment.
func (c *LZMA2Codec) Compress(data []byte) ([]byte, error) {
	return c.external.Compress(data)
}

// Decompress uses the in-process cgo liblzma stream decoder when available,
// falling back to the external helper when this binary was built without
// cgo.
func (c *LZMA2Codec) Decompress(data []byte) ([]byte, error) {
	if cgoLZMA2Available {
		return decompressLZMA2Cgo(data)
	}

	return c.external.Decompress(data)
}
