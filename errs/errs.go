// Package errs defines the sentinel errors returned throughout cast.
//
// Callers should use errors.Is against these sentinels rather than comparing
// error strings; wrapped context is added with fmt.Errorf("...: %w", errs.ErrX).
package errs

import "errors"

var (
	// ErrCollision is returned internally when a raw input line already contains
	// a skeleton placeholder or registry separator code point. It never escapes
	// a public API call; it only triggers a block-level passthrough.
	ErrCollision = errors.New("cast: input line collides with reserved sentinel code point")

	// ErrEntropyExceeded is returned internally when the template dictionary
	// would grow past its unique-skeleton budget. Like ErrCollision, it only
	// triggers passthrough and never escapes a public API call.
	ErrEntropyExceeded = errors.New("cast: template dictionary exceeded entropy budget")

	// ErrBinaryInput is returned internally when the classifier's control-byte
	// sniff exceeds the binary threshold. Triggers passthrough.
	ErrBinaryInput = errors.New("cast: input classified as binary")

	// ErrDecodeFailed is returned internally when input is neither valid UTF-8
	// nor representable as Latin-1. Triggers passthrough.
	ErrDecodeFailed = errors.New("cast: input could not be decoded as UTF-8 or Latin-1")

	// ErrCodecFailed is returned by a Codec implementation when compression or
	// decompression fails outright. Like any codec error, it makes a
	// compress.FallbackCodec retry on its fallback codec.
	ErrCodecFailed = errors.New("cast: codec operation failed")

	// ErrTruncated is returned when an archive ends mid-frame: fewer than 17
	// header bytes remain, or a body is shorter than its header declares.
	ErrTruncated = errors.New("cast: archive truncated")

	// ErrUnknownFlag is returned when a frame's flag byte (after masking the
	// Latin-1 bit) is not one of the defined mode values.
	ErrUnknownFlag = errors.New("cast: unknown or reserved flag byte")

	// ErrCrcMismatch is returned when a decompressed block's CRC32 does not
	// match the value recorded in its frame header. Fatal; never recovered.
	ErrCrcMismatch = errors.New("cast: crc32 mismatch")

	// ErrInvalidHeader is returned when a frame header cannot be parsed.
	ErrInvalidHeader = errors.New("cast: invalid frame header")

	// ErrEmptyTemplate is returned when template binding cannot find enough
	// columns to satisfy a template's placeholder count.
	ErrEmptyTemplate = errors.New("cast: template column underrun during reassembly")

	// ErrNoHelper is returned when the external LZMA2 helper binary cannot be
	// located on SEVEN_ZIP_PATH or PATH.
	ErrNoHelper = errors.New("cast: no external lzma2 helper available")
)
