// Package cast implements CAST (Columnar Agnostic Structural Transform), a
// lossless preprocessing layer for line-oriented structured text. CAST
// factors repeated line structure ("templates") out of a stream into a
// per-template registry, a per-line template-ID stream, and a columnar
// buffer of the values that vary between lines, then hands the three
// streams to an LZMA2 (or other) entropy coder. Columnar grouping lets the
// entropy coder exploit cross-line redundancy a plain byte-stream codec
// never sees; the format is designed so applying it before a general-purpose
// compressor beats compressing the raw text directly, on data that is
// largely repeated log/event lines with few varying fields.
//
// # Basic usage
//
// Compressing and decompressing a byte slice in one call:
//
//	out, err := cast.Compress(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	original, err := cast.Decompress(out)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Package structure
//
// This package provides thin top-level wrappers around archive.Writer and
// archive.Reader, the most common entry point for one-shot in-memory use.
// For streaming input, explicit chunk sizing, or a non-default codec, use
// the archive package directly; for single-block access without archive
// framing, use the block package.
package cast

import (
	"bytes"

	"github.com/castfmt/cast/archive"
	"github.com/castfmt/cast/compress"
	"github.com/castfmt/cast/format"
)

// defaultCodec is the codec Compress/Decompress use when no WithCodec
// option is given, matching the CLI's default (spec §6).
const defaultCodec = format.CodecLZMA2

// Option configures Compress/Decompress.
type Option func(*options)

type options struct {
	codec         format.CodecKind
	helperPath    string
	chunkSize     int
	verify        bool
	fallbackCodec *format.CodecKind
}

// WithCodec selects an alternative format.CodecKind instead of the default
// LZMA2 codec. The same codec must be passed to the matching Decompress
// call, since archives do not record their own codec identity (spec §4.7).
func WithCodec(kind format.CodecKind) Option {
	return func(o *options) { o.codec = kind }
}

// WithHelperPath overrides the xz/7z binary search path used by
// format.CodecLZMA2 and format.CodecLZMA2External.
func WithHelperPath(path string) Option {
	return func(o *options) { o.helperPath = path }
}

// WithChunkSize overrides archive.DefaultChunkSize for Compress.
func WithChunkSize(n int) Option {
	return func(o *options) { o.chunkSize = n }
}

// WithVerify makes Compress immediately decompress and CRC-check every
// block it writes, matching the CLI's -v/--verify flag.
func WithVerify() Option {
	return func(o *options) { o.verify = true }
}

// WithFallbackCodec pairs the primary codec (WithCodec, or the default
// LZMA2) with a second codec to fall back to if the primary errors — most
// useful with the LZMA2 codecs, whose Compress shells out to an external
// xz/7z binary that may not be on PATH in every environment. The same
// fallback must be supplied to the matching Decompress call.
func WithFallbackCodec(kind format.CodecKind) Option {
	return func(o *options) { o.fallbackCodec = &kind }
}

func newOptions(opts []Option) *options {
	o := &options{codec: defaultCodec, chunkSize: archive.DefaultChunkSize}
	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Compress encodes data as a complete CAST archive: one or more framed
// blocks, each independently templated and codec-compressed.
func Compress(data []byte, opts ...Option) ([]byte, error) {
	o := newOptions(opts)

	codec, err := resolveCodec(o, "cast.Compress")
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	writerOpts := []archive.Option{archive.WithChunkSize(o.chunkSize)}
	if o.verify {
		writerOpts = append(writerOpts, archive.WithVerifyWrites())
	}

	w, err := archive.NewWriter(&buf, codec, writerOpts...)
	if err != nil {
		return nil, err
	}

	if _, err := w.Write(data); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decompress reverses Compress. The codec option (WithCodec/WithHelperPath)
// must match what Compress was called with.
func Decompress(archived []byte, opts ...Option) ([]byte, error) {
	o := newOptions(opts)

	codec, err := resolveCodec(o, "cast.Decompress")
	if err != nil {
		return nil, err
	}

	r := archive.NewReader(bytes.NewReader(archived), codec)

	return r.ReadAll()
}

// resolveCodec builds o's primary codec and, if WithFallbackCodec was
// given, wraps it in a compress.FallbackCodec. If the primary cannot be
// built (e.g. no xz/7z binary found), the fallback codec is used alone.
func resolveCodec(o *options, target string) (compress.Codec, error) {
	primary, primaryErr := compress.CreateCodec(o.codec, o.helperPath, target)
	if o.fallbackCodec == nil {
		if primaryErr != nil {
			return nil, primaryErr
		}
		return primary, nil
	}

	fallback, err := compress.CreateCodec(*o.fallbackCodec, o.helperPath, target)
	if err != nil {
		return nil, err
	}

	if primaryErr != nil {
		return fallback, nil
	}

	return compress.NewFallbackCodec(primary, fallback), nil
}
