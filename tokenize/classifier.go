// Package tokenize implements the input classifier and the skeleton-masking
// tokenizer: the first two stages of the CAST pipeline. Classify decides
// text-vs-binary and UTF-8-vs-Latin-1; Tokenizer masks literal fields in a
// line of text down to a skeleton plus an ordered list of captured literals.
package tokenize

import (
	"unicode/utf8"

	"github.com/castfmt/cast/errs"
)

// classifySampleSize is the number of leading bytes inspected by the binary
// sniff, per spec §4.1.
const classifySampleSize = 4096

// binaryThreshold is the fraction of suspicious bytes in the sample above
// which a block is classified as binary.
const binaryThreshold = 0.01

// Classification describes how an input block's bytes should be interpreted
// before tokenization.
type Classification struct {
	// Binary is true if the control-byte sniff classified the block as
	// binary; Text/Latin1 are meaningless in that case.
	Binary bool
	// Text is the decoded string form of the input, valid only when Binary
	// is false.
	Text string
	// Latin1 is true if Text was decoded via Latin-1 rather than UTF-8.
	Latin1 bool
}

// Classify inspects data and decides whether it is binary, UTF-8 text, or
// Latin-1 text, per spec §4.1.
func Classify(data []byte) (Classification, error) {
	if isLikelyBinary(data) {
		return Classification{Binary: true}, nil
	}

	if utf8.Valid(data) {
		return Classification{Text: string(data)}, nil
	}

	// Latin-1 (ISO-8859-1) maps every byte 1:1 to the code point of the
	// same value, so it never fails to decode.
	return Classification{Text: decodeLatin1(data), Latin1: true}, nil
}

func isLikelyBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	sample := data
	if len(sample) > classifySampleSize {
		sample = sample[:classifySampleSize]
	}

	var suspicious int
	for _, b := range sample {
		if b == 0 || (b > 0 && b < 32 && b != 9 && b != 10 && b != 13) {
			suspicious++
		}
	}

	return float64(suspicious)/float64(len(sample)) > binaryThreshold
}

// decodeLatin1 expands each byte of data into its corresponding Unicode
// code point (Latin-1 is a strict subset of the first 256 code points).
func decodeLatin1(data []byte) string {
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}

	return string(runes)
}

// EncodeLatin1 re-encodes s (assumed to be made solely of code points in
// [0,255]) back into Latin-1 bytes. It returns errs.ErrDecodeFailed if any
// rune exceeds the Latin-1 range, matching spec §4.9's
// Latin1RestoreFailed condition.
func EncodeLatin1(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xFF {
			return nil, errs.ErrDecodeFailed
		}
		out = append(out, byte(r))
	}

	return out, nil
}
