package container

import (
	"bytes"

	"github.com/castfmt/cast/endian"
	"github.com/castfmt/cast/format"
	"github.com/castfmt/cast/internal/pool"
	"github.com/castfmt/cast/template"
)

// Parts holds a block's three wire components before the entropy coder runs.
// Under Split these are compressed independently; under Unified they are
// concatenated (with an 8-byte internal length header) and compressed as one
// solid stream — Assemble below performs that concatenation, the codec layer
// performs the compression.
type Parts struct {
	Registry []byte
	IDs      []byte
	Vars     []byte
	Flag     format.Flag
	// Layout records which wire format Vars was built with (spec §4.5):
	// Split's unescaped "0xFF 0xFF" column terminator or Unified's escaped
	// single-byte one. Reconstruct needs it to parse Vars back correctly.
	Layout format.Layout
}

// Build reorders entries/stream per decision.Remap (a no-op under Split),
// then serializes the registry, ID stream, and variables buffer, per spec
// §4.5. latin1 sets the flag's Latin-1 bit; it does not affect byte layout.
func Build(entries []template.Entry, stream []int, decision Decision, latin1 bool) Parts {
	if decision.Remap != nil {
		entries, stream = applyRemap(entries, stream, decision.Remap)
	}

	flag := format.WidthForTemplateCount(len(entries))
	if latin1 {
		flag = flag.WithLatin1()
	}

	return Parts{
		Registry: buildRegistry(entries),
		IDs:      buildIDStream(stream, flag),
		Vars:     buildVarsBuffer(entries, decision.Layout),
		Flag:     flag,
		Layout:   decision.Layout,
	}
}

func applyRemap(entries []template.Entry, stream []int, remap []int) ([]template.Entry, []int) {
	newEntries := make([]template.Entry, len(entries))
	for oldID, newID := range remap {
		newEntries[newID] = entries[oldID]
	}

	newStream := make([]int, len(stream))
	for i, oldID := range stream {
		newStream[i] = remap[oldID]
	}

	return newEntries, newStream
}

// buildRegistry joins skeletons with the RS sentinel rune and encodes the
// result as UTF-8, per spec §4.5.
func buildRegistry(entries []template.Entry) []byte {
	var b bytes.Buffer
	for i, e := range entries {
		if i > 0 {
			b.WriteRune(format.RS)
		}
		b.WriteString(e.Skeleton)
	}

	return b.Bytes()
}

// buildIDStream packs stream as little-endian fixed-width integers sized by
// flag's width. SingleTemplate elides the stream entirely.
func buildIDStream(stream []int, flag format.Flag) []byte {
	width, elided := flag.IDWidth()
	if elided || width == 0 {
		return nil
	}

	engine := endian.GetLittleEndianEngine()
	buf := make([]byte, 0, len(stream)*width)

	for _, id := range stream {
		switch width {
		case 1:
			buf = append(buf, byte(id))
		case 2:
			buf = engine.AppendUint16(buf, uint16(id))
		case 4:
			buf = engine.AppendUint32(buf, uint32(id))
		}
	}

	return buf
}

// buildVarsBuffer walks templates in registration order and, within each,
// columns in declaration order, joining values within a column with CellSep
// and terminating each column per layout (spec §4.5): Unified byte-stuffs
// every value and terminates with the single ColumnSep byte, Split emits
// values verbatim and terminates with the two-byte SplitColumnSep sentinel.
//
// The scratch buffer comes from the block buffer pool: every block's
// variables buffer is built and discarded once its bytes are handed to the
// codec, the same churn pattern the pool is sized for.
func buildVarsBuffer(entries []template.Entry, layout format.Layout) []byte {
	bb := pool.GetBlockBuffer()
	defer pool.PutBlockBuffer(bb)

	for _, e := range entries {
		for _, col := range e.Columns {
			for i, v := range col {
				if i > 0 {
					bb.MustWrite([]byte{format.CellSep})
				}
				if layout == format.Split {
					bb.MustWrite([]byte(v))
				} else {
					bb.MustWrite(stuffEscape(nil, []byte(v)))
				}
			}
			if layout == format.Split {
				bb.MustWrite(format.SplitColumnSep[:])
			} else {
				bb.MustWrite([]byte{format.ColumnSep})
			}
		}
	}

	out := make([]byte, bb.Len())
	copy(out, bb.Bytes())

	return out
}
