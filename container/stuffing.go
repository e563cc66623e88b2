// Package container assembles a block's registry, template ID stream, and
// columnar variables into the two wire layouts CAST supports (Split and
// Unified), and reverses the process on decode. It also implements the
// optimizer that picks between them per block.
package container

import "github.com/castfmt/cast/format"

// stuffEscape applies the mandatory "Always-Escaped" byte stuffing to one
// UTF-8 encoded variable value: every literal occurrence of the escape byte
// or either sentinel byte is replaced by a two-byte sequence of the escape
// byte followed by 0x01, 0x00 or 0x03 respectively, per spec §4.5. Unified layout only: Split's variables buffer is never escaped (see
// format/sentinels.go's SplitColumnSep doc).
func stuffEscape(dst []byte, v []byte) []byte {
	for _, b := range v {
		switch b {
		case format.EscapeByte:
			dst = append(dst, format.EscSeqEscape[:]...)
		case format.CellSep:
			dst = append(dst, format.EscSeqCell[:]...)
		case format.ColumnSep:
			dst = append(dst, format.EscSeqColumn[:]...)
		default:
			dst = append(dst, b)
		}
	}

	return dst
}

// unstuffEscape reverses stuffEscape on a single separator-free run (the caller
// has already located the run's boundaries via the byte-scan state machine
// in deserializer.go). Unified layout only.
func unstuffEscape(chunk []byte) []byte {
	out := make([]byte, 0, len(chunk))
	for i := 0; i < len(chunk); i++ {
		if chunk[i] == format.EscapeByte && i+1 < len(chunk) {
			switch chunk[i+1] {
			case 0x01:
				out = append(out, format.EscapeByte)
			case 0x00:
				out = append(out, format.CellSep)
			case 0x03:
				out = append(out, format.ColumnSep)
			default:
				out = append(out, chunk[i], chunk[i+1])
			}
			i++
			continue
		}
		out = append(out, chunk[i])
	}

	return out
}
