package compress

// FallbackCodec composes two Codecs: Primary is tried first, and Fallback
// takes over if Primary returns an error. Used by cast.WithFallbackCodec and
// the CLI's --fallback-codec flag to put an LZMA2 codec in front of a
// pure-Go codec, so a failing xz/7z helper call is retried on the second
// codec.
type FallbackCodec struct {
	Primary  Codec
	Fallback Codec
}

var _ Codec = FallbackCodec{}

// NewFallbackCodec pairs primary and fallback into one Codec.
func NewFallbackCodec(primary, fallback Codec) FallbackCodec {
	return FallbackCodec{Primary: primary, Fallback: fallback}
}

func (c FallbackCodec) Compress(data []byte) ([]byte, error) {
	out, err := c.Primary.Compress(data)
	if err != nil {
		return c.Fallback.Compress(data)
	}

	return out, nil
}

func (c FallbackCodec) Decompress(data []byte) ([]byte, error) {
	out, err := c.Primary.Decompress(data)
	if err != nil {
		return c.Fallback.Decompress(data)
	}

	return out, nil
}
