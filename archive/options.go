package archive

import "github.com/castfmt/cast/internal/options"

// DefaultChunkSize is the chunk size Writer splits input into when no
// WithChunkSize option is given, chosen so a single block's template
// dictionary and variables buffer stay within a comfortable working set.
const DefaultChunkSize = 8 * 1024 * 1024

// Option configures a Writer.
type Option = options.Option[*config]

type config struct {
	chunkSize    int
	verifyWrites bool
}

func newConfig() *config {
	return &config{chunkSize: DefaultChunkSize}
}

// WithChunkSize overrides DefaultChunkSize; Writer splits input data into
// chunks of at most this many bytes, each compressed as an independent
// block.
func WithChunkSize(n int) Option {
	return options.NoError(func(c *config) {
		if n > 0 {
			c.chunkSize = n
		}
	})
}

// WithVerifyWrites makes Writer immediately decompress and CRC-check every
// block right after writing it, surfacing corruption at write time instead
// of at the next read. Matches the CLI's -v/--verify flag (spec.md's CLI
// section) but is available to any caller of archive.Writer directly.
func WithVerifyWrites() Option {
	return options.NoError(func(c *config) {
		c.verifyWrites = true
	})
}
