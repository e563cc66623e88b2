package archive

import (
	"io"

	"github.com/castfmt/cast/block"
	"github.com/castfmt/cast/compress"
	"github.com/castfmt/cast/errs"
	"github.com/castfmt/cast/internal/options"
	"github.com/castfmt/cast/internal/pool"
)

// Writer splits data written to it into chunks, runs block.Compress on each,
// compresses the resulting streams with a single shared compress.Codec, and
// frames each block behind its 17-byte header before writing it to an
// underlying io.Writer. It plays the role the teacher's blob Encoder plays
// for a sequence of metric points: one codec, many independently framed
// units written in sequence.
type Writer struct {
	w     io.Writer
	codec compress.Codec
	cfg   *config

	blockOpts []block.Option
}

// NewWriter wraps w. codec compresses every stream of every block written
// through the returned Writer; callers typically obtain it from
// compress.GetCodec or compress.CreateCodec.
func NewWriter(w io.Writer, codec compress.Codec, opts ...Option) (*Writer, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Writer{w: w, codec: codec, cfg: cfg}, nil
}

// WithBlockOptions forwards block.Options (e.g. block.WithStrategy) to every
// Compress call the Writer makes; it is not a package-level Option because
// it composes block, not archive, configuration.
func (wr *Writer) WithBlockOptions(opts ...block.Option) *Writer {
	wr.blockOpts = opts
	return wr
}

// Write splits data into chunks of at most the configured chunk size and
// writes one framed block per chunk. It implements io.Writer so a Writer can
// sit behind bufio or io.Copy, but every call is a complete, self-contained
// set of blocks: Write never buffers a partial chunk across calls.
func (wr *Writer) Write(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, wr.writeBlock(nil)
	}

	chunkSize := wr.cfg.chunkSize

	for offset := 0; offset < len(data); {
		end := offset + chunkSize
		if end > len(data) {
			end = len(data)
		}

		if err := wr.writeBlock(data[offset:end]); err != nil {
			return offset, err
		}

		offset = end
	}

	return len(data), nil
}

// WriteBlock compresses and frames a single chunk explicitly, bypassing the
// chunk-size splitting Write performs. Useful for callers that already have
// their data segmented (e.g. one archive block per log file).
func (wr *Writer) WriteBlock(chunk []byte) error {
	return wr.writeBlock(chunk)
}

// compressIfNonEmpty skips the codec entirely for an empty stream, so the
// frame header can record a true zero length instead of whatever framing
// overhead the codec attaches to an empty input.
func compressIfNonEmpty(codec compress.Codec, data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return codec.Compress(data)
}

func (wr *Writer) writeBlock(chunk []byte) error {
	res, err := block.Compress(chunk, wr.blockOpts...)
	if err != nil {
		return err
	}

	crc := ChecksumIEEE(chunk)

	// Under Unified (and under Passthrough), Registry/IDs are always empty
	// by construction: the registry and ID stream are folded into Vars
	// instead of standing alone. Compressing an empty slice through a real
	// codec still produces nonzero framing bytes, so the header's
	// RegistryLen/IDsLen must read 0 for these cases rather than the
	// compressed-empty-input length, per spec §4.7.
	cReg, err := compressIfNonEmpty(wr.codec, res.Registry)
	if err != nil {
		return err
	}
	cIDs, err := compressIfNonEmpty(wr.codec, res.IDs)
	if err != nil {
		return err
	}
	cVars, err := wr.codec.Compress(res.Vars)
	if err != nil {
		return err
	}

	frame := Frame{
		CRC32:       crc,
		RegistryLen: uint32(len(cReg)),
		IDsLen:      uint32(len(cIDs)),
		VarsLen:     uint32(len(cVars)),
		Flag:        res.Flag,
		Registry:    cReg,
		IDs:         cIDs,
		Vars:        cVars,
	}

	// One frame (header + three compressed streams) is assembled in a
	// pooled scratch buffer and written with a single underlying Write
	// call, rather than four separate ones.
	bb := pool.GetArchiveBuffer()
	defer pool.PutArchiveBuffer(bb)

	bb.MustWrite(EncodeHeader(frame))
	bb.MustWrite(cReg)
	bb.MustWrite(cIDs)
	bb.MustWrite(cVars)

	if _, err := wr.w.Write(bb.Bytes()); err != nil {
		return err
	}

	if wr.cfg.verifyWrites {
		return wr.verify(frame, chunk)
	}

	return nil
}

// decompressIfNonEmpty is compressIfNonEmpty's inverse, for the same
// empty-Registry/empty-IDs case on the read side.
func decompressIfNonEmpty(codec compress.Codec, data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return codec.Decompress(data)
}

// verify decompresses the just-written frame in-process and compares it
// against chunk, matching the CLI's -v/--verify flag behavior but available
// to any caller that sets archive.WithVerifyWrites.
func (wr *Writer) verify(frame Frame, chunk []byte) error {
	reg, err := decompressIfNonEmpty(wr.codec, frame.Registry)
	if err != nil {
		return err
	}
	ids, err := decompressIfNonEmpty(wr.codec, frame.IDs)
	if err != nil {
		return err
	}
	vars, err := wr.codec.Decompress(frame.Vars)
	if err != nil {
		return err
	}

	res, err := block.Decompress(reg, ids, vars, frame.Flag)
	if err != nil {
		return err
	}

	if ChecksumIEEE(res.Vars) != frame.CRC32 {
		return errs.ErrCrcMismatch
	}

	return nil
}
