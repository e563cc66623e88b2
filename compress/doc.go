// Package compress provides the entropy-coding codecs CAST runs after
// container assembly (spec §4.6). A block's registry/ID-stream/variables
// buffer is opaque bytes by this point; this package's only job is turning
// those bytes into fewer bytes and back, losslessly.
//
// # Architecture
//
// Three interfaces:
//
//	type Compressor interface { Compress(data []byte) ([]byte, error) }
//	type Decompressor interface { Decompress(data []byte) ([]byte, error) }
//	type Codec interface { Compressor; Decompressor }
//
// # Codecs
//
// LZMA2 (format.CodecLZMA2, format.CodecLZMA2External) is CAST's baseline:
// the archive format's 17-byte frame header carries no codec tag, so a
// reader must already know which codec a frame was written with. LZMA2Codec
// wraps dill.foo/xz's cgo liblzma decoder for fast in-process decompression
// but always shells out to an xz/7z binary for compression, since that
// binding exposes no in-process encoder. ExternalLZMA2Codec does both ends
// via the same subprocess path and is what LZMA2Codec's Compress delegates
// to.
//
// A handful of selectable alternative codecs exist for callers who value
// something other than LZMA2's ratio/speed tradeoff: ZstdCompressor (pure
// Go, klauspost/compress/zstd), ZstdCgoCompressor (cgo, valyala/gozstd),
// LZ4Compressor (pierrec/lz4/v4, fastest decode), S2Compressor
// (klauspost/compress/s2, Snappy-compatible). Since the wire format carries
// no codec tag, picking one is a construction-time contract between
// whatever wrote an archive and whatever reads it back (the CLI's --codec
// flag, or cast.WithCodec for library callers) rather than something
// recoverable from the bytes themselves.
//
// FallbackCodec composes a primary and a secondary Codec, retrying an
// operation on the secondary if the primary errors; cast.WithFallbackCodec
// and the CLI's --fallback-codec flag both build one, typically to pair
// LZMA2 with a pure-Go codec. When the primary codec cannot be built at all
// (e.g. no xz/7z binary on PATH), cast.WithFallbackCodec uses the secondary
// codec alone, while the CLI exits with an error.
//
// NoOpCompressor passes bytes through unchanged and backs format.CodecNone;
// it is also used in tests.
package compress
