package container

import (
	"github.com/castfmt/cast/endian"
	"github.com/castfmt/cast/format"
)

// Streams is what the codec layer actually compresses: under Split, three
// independent streams; under Unified, a single solid stream with Registry
// and IDs left empty, per spec §4.6 (the wire distinguishes the two purely
// by whether Registry/IDs are empty after decompression).
type Streams struct {
	Registry []byte
	IDs      []byte
	Solid    []byte
}

// Assemble arranges parts for the entropy coder according to layout. Under
// Unified, registry and IDs are prefixed with an 8-byte little-endian
// (len(registry), len(ids)) internal header and concatenated with vars into
// one solid buffer.
func Assemble(parts Parts, layout format.Layout) Streams {
	if layout == format.Split {
		return Streams{Registry: parts.Registry, IDs: parts.IDs, Solid: parts.Vars}
	}

	engine := endian.GetLittleEndianEngine()
	header := make([]byte, 8)
	engine.PutUint32(header[0:4], uint32(len(parts.Registry)))
	engine.PutUint32(header[4:8], uint32(len(parts.IDs)))

	solid := make([]byte, 0, len(header)+len(parts.Registry)+len(parts.IDs)+len(parts.Vars))
	solid = append(solid, header...)
	solid = append(solid, parts.Registry...)
	solid = append(solid, parts.IDs...)
	solid = append(solid, parts.Vars...)

	return Streams{Solid: solid}
}

// Disassemble reverses Assemble, detecting Unified by the well-formed
// combination of an empty Registry and empty IDs streams (spec §4.6).
func Disassemble(s Streams, flag format.Flag) Parts {
	if len(s.Registry) == 0 && len(s.IDs) == 0 && len(s.Solid) >= 8 {
		engine := endian.GetLittleEndianEngine()
		lenReg := int(engine.Uint32(s.Solid[0:4]))
		lenIDs := int(engine.Uint32(s.Solid[4:8]))

		offset := 8
		registry := s.Solid[offset : offset+lenReg]
		offset += lenReg

		var ids []byte
		if _, elided := flag.IDWidth(); !elided {
			ids = s.Solid[offset : offset+lenIDs]
			offset += lenIDs
		}
		vars := s.Solid[offset:]

		return Parts{Registry: registry, IDs: ids, Vars: vars, Flag: flag, Layout: format.Unified}
	}

	return Parts{Registry: s.Registry, IDs: s.IDs, Vars: s.Solid, Flag: flag, Layout: format.Split}
}
