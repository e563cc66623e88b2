package format

// Layout selects how a block's registry, ID stream, and variables buffer
// are packaged for the entropy coder, chosen once per block by the optimizer.
type Layout uint8

const (
	// Split compresses registry, IDs, and variables as three independent
	// LZMA streams. The variables buffer is not byte-stuffed; columns end
	// with the two-byte SplitColumnSep instead (see sentinels.go).
	Split Layout = iota
	// Unified concatenates the three parts behind an 8-byte internal
	// header and compresses them as a single LZMA stream.
	Unified
)

func (l Layout) String() string {
	switch l {
	case Split:
		return "Split"
	case Unified:
		return "Unified"
	default:
		return "Layout(?)"
	}
}

// Strategy picks which tokenizer pattern a block commits to for its
// full duration, chosen once via the sampling heuristic in spec §4.2.
type Strategy uint8

const (
	// Strict masks quoted literals, signed decimals, and hex literals.
	Strict Strategy = iota
	// Aggressive additionally masks bare alphanumeric/._- runs.
	Aggressive
)

func (s Strategy) String() string {
	switch s {
	case Strict:
		return "Strict"
	case Aggressive:
		return "Aggressive"
	default:
		return "Strategy(?)"
	}
}

// PassthroughReason records why a block bypassed templating entirely. It is
// never persisted on the wire (the flag byte alone communicates the chosen
// path) but is reported back to callers that want to know why.
type PassthroughReason uint8

const (
	// ReasonNone means the block was not passed through.
	ReasonNone PassthroughReason = iota
	// ReasonBinary means the classifier's control-byte sniff tripped.
	ReasonBinary
	// ReasonDecodeFail means the input was neither valid UTF-8 nor Latin-1.
	ReasonDecodeFail
	// ReasonCollision means a line's raw bytes already contained PH or RS.
	ReasonCollision
	// ReasonEntropy means the template dictionary would exceed its budget.
	ReasonEntropy
	// ReasonRequested means the caller explicitly disabled templating.
	ReasonRequested
)

func (r PassthroughReason) String() string {
	switch r {
	case ReasonNone:
		return "None"
	case ReasonBinary:
		return "Binary"
	case ReasonDecodeFail:
		return "DecodeFail"
	case ReasonCollision:
		return "Collision Protected"
	case ReasonEntropy:
		return "Entropy"
	case ReasonRequested:
		return "Requested"
	default:
		return "Unknown"
	}
}

// CodecKind selects which Codec implementation compressed a block's payload.
// It is not part of the spec's 17-byte frame header (that header is codec
// agnostic by design): picking one is a construction-time contract between
// whatever writes an archive and whatever reads it back (the CLI's --codec
// flag, cast.WithCodec for library callers), never something recovered
// from the archive's bytes.
type CodecKind uint8

const (
	// CodecLZMA2 is the default LZMA2 codec: it compresses through an xz/7z
	// helper binary and decompresses in process (cgo liblzma) when built
	// with cgo.
	CodecLZMA2 CodecKind = iota
	// CodecLZMA2External shells out to an xz/7z helper binary.
	CodecLZMA2External
	// CodecZstd is the pure-Go zstd codec (klauspost/compress/zstd).
	CodecZstd
	// CodecZstdCgo is the cgo zstd codec (valyala/gozstd).
	CodecZstdCgo
	// CodecLZ4 is the LZ4 codec, traded for speed over ratio.
	CodecLZ4
	// CodecS2 is the S2 codec (klauspost/compress/s2), Snappy-compatible
	// and faster than LZ4 to decode at a similar ratio.
	CodecS2
	// CodecNone performs no compression.
	CodecNone
)

func (k CodecKind) String() string {
	switch k {
	case CodecLZMA2:
		return "lzma2"
	case CodecLZMA2External:
		return "lzma2-external"
	case CodecZstd:
		return "zstd"
	case CodecZstdCgo:
		return "zstd-cgo"
	case CodecLZ4:
		return "lz4"
	case CodecS2:
		return "s2"
	case CodecNone:
		return "none"
	default:
		return "unknown"
	}
}
