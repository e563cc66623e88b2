package container

import (
	"bytes"
	"strings"

	"github.com/castfmt/cast/endian"
	"github.com/castfmt/cast/errs"
	"github.com/castfmt/cast/format"
)

// Reconstruct rebuilds the original text from a block's deserialized Parts,
// per spec §4.5's inverse. It performs the manual byte-scan column parse the
// reference implementation uses (a plain split() is not escape-aware), binds
// parsed values back to each template's columns, and replays the ID stream
// (or, under SingleTemplate, every row of the sole template) to splice
// skeleton literal fragments with their captured values in order.
func Reconstruct(parts Parts) (string, error) {
	skeletons := strings.Split(string(parts.Registry), format.RSStr)

	var stream []int
	if width, elided := parts.Flag.IDWidth(); !elided {
		ids, err := unpackIDs(parts.IDs, width)
		if err != nil {
			return "", err
		}
		stream = ids
	}

	columns := parseColumns(parts.Vars, parts.Layout)

	skeletonParts := make([][]string, len(skeletons))
	numVars := make([]int, len(skeletons))
	for i, s := range skeletons {
		skeletonParts[i] = strings.Split(s, format.PHStr)
		numVars[i] = len(skeletonParts[i]) - 1
	}

	// Bind parsed column blocks to (template, column) slots in registration
	// order, mirroring the reference implementation's single col_iter walk.
	bound := make([][][][]byte, len(skeletons))
	colIdx := 0
	for tID, n := range numVars {
		bound[tID] = make([][][]byte, n)
		for c := 0; c < n; c++ {
			if colIdx >= len(columns) {
				return "", errs.ErrEmptyTemplate
			}
			bound[tID][c] = columns[colIdx]
			colIdx++
		}
	}

	cursor := make([]int, len(skeletons))
	var b strings.Builder

	emitRow := func(tID int) bool {
		lits := skeletonParts[tID]
		n := numVars[tID]
		for c := 0; c < n; c++ {
			if cursor[tID] >= len(bound[tID][c]) {
				return false
			}
		}

		for i, lit := range lits {
			b.WriteString(lit)
			if i < n {
				b.Write(bound[tID][i][cursor[tID]])
			}
		}
		cursor[tID]++

		return true
	}

	if len(skeletons) == 1 && len(stream) == 0 {
		// SingleTemplate: replay every captured row of template 0 in order.
		if numVars[0] == 0 {
			// Static line with no captured variables; nothing to reassemble
			// beyond the literal skeleton itself, so we cannot know the
			// repeat count. The reference implementation leaves this case
			// unhandled; we match it by emitting nothing further here.
			return b.String(), nil
		}
		for emitRow(0) {
		}

		return b.String(), nil
	}

	for _, tID := range stream {
		if tID < 0 || tID >= len(skeletons) {
			return "", errs.ErrTruncated
		}
		if !emitRow(tID) {
			break
		}
	}

	return b.String(), nil
}

// parseColumns splits a variables buffer into its column blocks, then each
// block into its cell values, per layout's wire format (spec §4.5).
func parseColumns(data []byte, layout format.Layout) [][][]byte {
	if layout == format.Split {
		return parseColumnsSplit(data)
	}

	return parseColumnsUnified(data)
}

// parseColumnsSplit splits on the raw, unescaped SplitColumnSep/CellSep
// sentinels: Split never byte-stuffs, so a plain split is exact. The
// reference implementation's encoder always emits a trailing column
// terminator, which turns into a spurious empty final block under a plain
// split; drop it the same way the reference decoder does.
func parseColumnsSplit(data []byte) [][][]byte {
	blocks := bytes.Split(data, format.SplitColumnSep[:])
	if len(blocks) > 0 && len(blocks[len(blocks)-1]) == 0 {
		blocks = blocks[:len(blocks)-1]
	}

	columns := make([][][]byte, 0, len(blocks))
	for _, blk := range blocks {
		columns = append(columns, bytes.Split(blk, []byte{format.CellSep}))
	}

	return columns
}

// parseColumnsUnified splits column blocks (separated by unescaped
// ColumnSep bytes) into cell values (separated by unescaped CellSep bytes),
// unstuffing each cell. Unified byte-stuffs, so a byte-scan state machine is
// required instead of a plain split: an escaped sentinel byte must not be
// mistaken for a real separator.
func parseColumnsUnified(data []byte) [][][]byte {
	var columns [][][]byte

	cellStart := 0
	var cells [][]byte

	i := 0
	for i < len(data) {
		switch data[i] {
		case format.EscapeByte:
			i += 2
			continue
		case format.ColumnSep:
			cells = append(cells, unstuffEscape(data[cellStart:i]))
			columns = append(columns, cells)
			cells = nil
			i++
			cellStart = i
			continue
		case format.CellSep:
			cells = append(cells, unstuffEscape(data[cellStart:i]))
			i++
			cellStart = i
			continue
		default:
			i++
		}
	}

	return columns
}

// unpackIDs decodes a little-endian fixed-width template ID stream.
func unpackIDs(data []byte, width int) ([]int, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if width == 0 || len(data)%width != 0 {
		return nil, errs.ErrTruncated
	}

	engine := endian.GetLittleEndianEngine()
	n := len(data) / width
	ids := make([]int, n)

	for i := 0; i < n; i++ {
		chunk := data[i*width : i*width+width]
		switch width {
		case 1:
			ids[i] = int(chunk[0])
		case 2:
			ids[i] = int(engine.Uint16(chunk))
		case 4:
			ids[i] = int(engine.Uint32(chunk))
		}
	}

	return ids, nil
}
