package archive

import (
	"io"

	"github.com/castfmt/cast/block"
	"github.com/castfmt/cast/compress"
	"github.com/castfmt/cast/errs"
)

// Reader reads the frames a Writer produced back out, decompressing each
// with the same codec and verifying its CRC32 before handing the
// reconstructed block bytes to the caller.
type Reader struct {
	r     io.Reader
	codec compress.Codec
}

// NewReader wraps r. codec must match the one the archive was written with;
// archives carry no codec identifier of their own (spec §4.7's frame header
// is codec agnostic), so the caller is responsible for remembering it.
func NewReader(r io.Reader, codec compress.Codec) *Reader {
	return &Reader{r: r, codec: codec}
}

// ReadBlock reads and decodes the next frame. It returns io.EOF (unwrapped,
// matching io.Reader convention) when the underlying reader is exhausted
// before any header bytes are read, and errs.ErrTruncated if it stops mid-frame.
func (rd *Reader) ReadBlock() ([]byte, error) {
	header := make([]byte, FrameHeaderSize)
	if _, err := io.ReadFull(rd.r, header); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, errs.ErrTruncated
		}
		return nil, err
	}

	frame, err := DecodeHeader(header)
	if err != nil {
		return nil, err
	}

	cReg, err := readExact(rd.r, int(frame.RegistryLen))
	if err != nil {
		return nil, err
	}
	cIDs, err := readExact(rd.r, int(frame.IDsLen))
	if err != nil {
		return nil, err
	}
	cVars, err := readExact(rd.r, int(frame.VarsLen))
	if err != nil {
		return nil, err
	}

	// Registry/IDs read back empty for Unified and Passthrough blocks (spec
	// §4.7): the writer never ran these through the codec in that case, so
	// the reader must not either.
	reg, err := decompressIfNonEmpty(rd.codec, cReg)
	if err != nil {
		return nil, err
	}
	ids, err := decompressIfNonEmpty(rd.codec, cIDs)
	if err != nil {
		return nil, err
	}
	vars, err := rd.codec.Decompress(cVars)
	if err != nil {
		return nil, err
	}

	res, err := block.Decompress(reg, ids, vars, frame.Flag)
	if err != nil {
		return nil, err
	}

	if ChecksumIEEE(res.Vars) != frame.CRC32 {
		return nil, errs.ErrCrcMismatch
	}

	return res.Vars, nil
}

// ReadAll drains the archive, concatenating every block's reconstructed
// bytes in order. Returns cleanly on a well-formed end of stream.
func (rd *Reader) ReadAll() ([]byte, error) {
	var out []byte

	for {
		chunk, err := rd.ReadBlock()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}

		out = append(out, chunk...)
	}
}

func readExact(r io.Reader, n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return nil, errs.ErrTruncated
		}
		return nil, err
	}

	return buf, nil
}
