// Package format defines the shared wire-level enums used across cast:
// the block mode flag, the container layout, the tokenizer strategy, the
// passthrough reason taxonomy, and the codec selector.
package format

import "fmt"

// Flag is the persisted mode byte described in spec §3. Its low 7 bits pick
// the ID-stream width (or passthrough); bit 0x80 records whether the
// original bytes were decoded as Latin-1 rather than UTF-8.
type Flag uint8

const (
	// Width16 selects a 16-bit little-endian template ID stream.
	Width16 Flag = 0
	// Width32 selects a 32-bit little-endian template ID stream.
	Width32 Flag = 1
	// Width8 selects an 8-bit template ID stream.
	Width8 Flag = 2
	// SingleTemplate means the block has exactly one template; the ID
	// stream is elided and reconstructed implicitly.
	SingleTemplate Flag = 3
	// Reserved is never emitted by this implementation and is rejected on read.
	Reserved Flag = 127
	// Passthrough means the payload is the original bytes, compressed verbatim.
	Passthrough Flag = 255

	// Latin1Bit is set when the original bytes decoded as Latin-1, not UTF-8.
	Latin1Bit Flag = 0x80
)

// Width returns the low 7 bits of the flag, isolating the mode from the
// Latin-1 bit. Passthrough (255) is returned as is, since its value
// already includes the 0x80 bit.
func (f Flag) Width() Flag {
	if f == Passthrough {
		return Passthrough
	}

	return f &^ Latin1Bit
}

// IsLatin1 reports whether the Latin-1 bit is set.
func (f Flag) IsLatin1() bool {
	return f&Latin1Bit != 0
}

// IsPassthrough reports whether the block's body is an opaque compressed
// copy of the original bytes.
func (f Flag) IsPassthrough() bool {
	return f.Width() == Passthrough
}

// WithLatin1 returns f with the Latin-1 bit set.
func (f Flag) WithLatin1() Flag {
	return f | Latin1Bit
}

// Valid reports whether the flag's width is one of the defined mode values.
// Reserved (127) is explicitly invalid: it is a reserved-but-unused slot.
func (f Flag) Valid() bool {
	switch f.Width() {
	case Width16, Width32, Width8, SingleTemplate, Passthrough:
		return true
	default:
		return false
	}
}

// IDWidth returns the number of bytes used per template ID in the ID stream
// for this flag's width, and whether the stream is elided (SingleTemplate).
func (f Flag) IDWidth() (bytesPerID int, elided bool) {
	switch f.Width() {
	case Width8:
		return 1, false
	case Width16:
		return 2, false
	case Width32:
		return 4, false
	case SingleTemplate:
		return 0, true
	default:
		return 0, false
	}
}

// WidthForTemplateCount picks the ID-stream width for numTemplates distinct
// template IDs, matching the reference implementation's exact thresholds:
// a single template elides the stream; fewer than 256 templates fit an
// 8-bit ID; more than 65535 requires a 32-bit ID; everything in between
// (256..65535) uses a 16-bit ID.
func WidthForTemplateCount(numTemplates int) Flag {
	switch {
	case numTemplates <= 1:
		return SingleTemplate
	case numTemplates < 256:
		return Width8
	case numTemplates <= 65535:
		return Width16
	default:
		return Width32
	}
}

func (f Flag) String() string {
	switch f.Width() {
	case Width16:
		return "Width16"
	case Width32:
		return "Width32"
	case Width8:
		return "Width8"
	case SingleTemplate:
		return "SingleTemplate"
	case Reserved:
		return "Reserved"
	case Passthrough:
		return "Passthrough"
	default:
		return fmt.Sprintf("Flag(%d)", uint8(f))
	}
}
