// Package archive stitches a sequence of CAST blocks into one file: each
// block is framed behind a 17-byte header (spec §4.7) and handed to a
// compress.Codec chosen once for the whole archive. Writer and Reader play
// the role the teacher's NumericBlobSet plays for a sequence of independently
// encoded metric payloads — unifying several framed units behind one
// sequential read/write API.
package archive

import (
	"encoding/binary"
	"hash/crc32"

	"github.com/castfmt/cast/errs"
	"github.com/castfmt/cast/format"
)

// FrameHeaderSize is the fixed size of one block's header, per spec §4.7:
// u32 crc32 | u32 c_reg_len | u32 c_ids_len | u32 c_vars_len | u8 flag.
const FrameHeaderSize = 17

// Frame is one block's framed, codec-compressed payload.
type Frame struct {
	CRC32       uint32
	RegistryLen uint32
	IDsLen      uint32
	VarsLen     uint32
	Flag        format.Flag

	// Registry, IDs, Vars are the codec-compressed streams; their lengths
	// must match RegistryLen/IDsLen/VarsLen exactly.
	Registry []byte
	IDs      []byte
	Vars     []byte
}

// EncodeHeader writes the 17-byte header for f into a fresh slice.
func EncodeHeader(f Frame) []byte {
	header := make([]byte, FrameHeaderSize)
	binary.LittleEndian.PutUint32(header[0:4], f.CRC32)
	binary.LittleEndian.PutUint32(header[4:8], f.RegistryLen)
	binary.LittleEndian.PutUint32(header[8:12], f.IDsLen)
	binary.LittleEndian.PutUint32(header[12:16], f.VarsLen)
	header[16] = byte(f.Flag)

	return header
}

// DecodeHeader parses a 17-byte header. It returns errs.ErrTruncated if
// header is shorter than FrameHeaderSize, and errs.ErrUnknownFlag if the
// flag byte's width bits don't name a defined mode.
func DecodeHeader(header []byte) (Frame, error) {
	if len(header) < FrameHeaderSize {
		return Frame{}, errs.ErrTruncated
	}

	f := Frame{
		CRC32:       binary.LittleEndian.Uint32(header[0:4]),
		RegistryLen: binary.LittleEndian.Uint32(header[4:8]),
		IDsLen:      binary.LittleEndian.Uint32(header[8:12]),
		VarsLen:     binary.LittleEndian.Uint32(header[12:16]),
		Flag:        format.Flag(header[16]),
	}

	if !f.Flag.Valid() {
		return Frame{}, errs.ErrUnknownFlag
	}

	return f, nil
}

// ChecksumIEEE computes the plaintext CRC32 (zlib/IEEE polynomial) a frame's
// header carries, matching spec §4.7 and the reference implementation's
// zlib.crc32 check.
func ChecksumIEEE(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}
