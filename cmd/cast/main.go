// Command cast is a thin CLI over the cast/archive package: compress a
// file to a CAST archive, decompress one back, or verify an existing
// archive's block CRCs without writing plaintext anywhere.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/castfmt/cast/archive"
	"github.com/castfmt/cast/compress"
	"github.com/castfmt/cast/format"
)

var codecNames = map[string]format.CodecKind{
	"lzma2":          format.CodecLZMA2,
	"lzma2-external": format.CodecLZMA2External,
	"zstd":           format.CodecZstd,
	"zstd-cgo":       format.CodecZstdCgo,
	"lz4":            format.CodecLZ4,
	"s2":             format.CodecS2,
	"none":           format.CodecNone,
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("cast: ")

	compressCmd := flag.NewFlagSet("-c", flag.ExitOnError)
	compressChunkSize := compressCmd.String("chunk-size", "", "split input into blocks of this size (e.g. 8MB)")
	compressDictSize := compressCmd.String("dict-size", "", "lzma2 filter dictionary size for the external helper (e.g. 128MB)")
	compressVerify := compressCmd.Bool("v", false, "decode-and-compare after writing")
	compressVerifyLong := compressCmd.Bool("verify", false, "decode-and-compare after writing")
	compressCodec := compressCmd.String("codec", "lzma2", "codec: lzma2, lzma2-external, zstd, zstd-cgo, lz4, s2, none")
	compressFallback := compressCmd.String("fallback-codec", "", "codec to fall back to if the primary codec's compress/decompress call errors (a primary codec that cannot be built, e.g. no xz/7z on PATH, is still fatal)")
	compressFast := compressCmd.Bool("fast", false, "shorthand for --codec lz4")
	compressHelper := compressCmd.String("helper", "", "path to the xz/7z binary (default: $SEVEN_ZIP_PATH or PATH search)")
	compressStats := compressCmd.Bool("stats", false, "print per-archive compression ratio after writing")

	decompressCmd := flag.NewFlagSet("-d", flag.ExitOnError)
	decompressCodec := decompressCmd.String("codec", "lzma2", "codec used when the archive was written")
	decompressFallback := decompressCmd.String("fallback-codec", "", "fallback codec, if one was used when writing")
	decompressHelper := decompressCmd.String("helper", "", "path to the xz/7z binary")

	verifyCmd := flag.NewFlagSet("-v", flag.ExitOnError)
	verifyCodec := verifyCmd.String("codec", "lzma2", "codec used when the archive was written")
	verifyFallback := verifyCmd.String("fallback-codec", "", "fallback codec, if one was used when writing")
	verifyHelper := verifyCmd.String("helper", "", "path to the xz/7z binary")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "-c":
		if err := compressCmd.Parse(os.Args[2:]); err != nil {
			log.Fatal(err)
		}
		args := compressCmd.Args()
		if len(args) != 2 {
			log.Fatal("usage: cast -c <in> <out> [--chunk-size SIZE] [--dict-size SIZE] [-v|--verify] [--codec NAME] [--fallback-codec NAME] [--fast]")
		}

		kind := *compressCodec
		if *compressFast {
			kind = "lz4"
		}

		runCompress(args[0], args[1], compressOptions{
			chunkSize:    *compressChunkSize,
			dictSize:     *compressDictSize,
			verify:       *compressVerify || *compressVerifyLong,
			codecName:    kind,
			fallbackName: *compressFallback,
			helperPath:   *compressHelper,
			stats:        *compressStats,
		})
	case "-d":
		if err := decompressCmd.Parse(os.Args[2:]); err != nil {
			log.Fatal(err)
		}
		args := decompressCmd.Args()
		if len(args) != 2 {
			log.Fatal("usage: cast -d <in> <out> [--codec NAME] [--fallback-codec NAME]")
		}
		runDecompress(args[0], args[1], *decompressCodec, *decompressFallback, *decompressHelper)
	case "-v":
		if err := verifyCmd.Parse(os.Args[2:]); err != nil {
			log.Fatal(err)
		}
		args := verifyCmd.Args()
		if len(args) != 1 {
			log.Fatal("usage: cast -v <in> [--codec NAME] [--fallback-codec NAME]")
		}
		runVerify(args[0], *verifyCodec, *verifyFallback, *verifyHelper)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage:")
	fmt.Fprintln(os.Stderr, "  cast -c <in> <out> [--chunk-size SIZE] [--dict-size SIZE] [-v|--verify] [--codec NAME] [--fallback-codec NAME] [--fast]")
	fmt.Fprintln(os.Stderr, "  cast -d <in> <out> [--codec NAME] [--fallback-codec NAME]")
	fmt.Fprintln(os.Stderr, "  cast -v <in> [--codec NAME] [--fallback-codec NAME]")
}

type compressOptions struct {
	chunkSize    string
	dictSize     string
	verify       bool
	codecName    string
	fallbackName string
	helperPath   string
	stats        bool
}

func resolveCodecKind(name string) format.CodecKind {
	kind, ok := codecNames[name]
	if !ok {
		log.Fatalf("unknown codec %q", name)
	}

	return kind
}

func buildCodec(name, helperPath string, dictSize int64) compress.Codec {
	kind := resolveCodecKind(name)

	if dictSize > 0 {
		switch kind {
		case format.CodecLZMA2:
			c, err := compress.NewLZMA2CodecWithDictSize(helperPath, int(dictSize))
			if err != nil {
				log.Fatal(err)
			}
			return c
		case format.CodecLZMA2External:
			c, err := compress.NewExternalLZMA2CodecWithDictSize(helperPath, int(dictSize))
			if err != nil {
				log.Fatal(err)
			}
			return c
		}
	}

	codec, err := compress.CreateCodec(kind, helperPath, "cast CLI")
	if err != nil {
		log.Fatal(err)
	}

	return codec
}

// buildCodecWithFallback wraps buildCodec's primary codec in a
// compress.FallbackCodec when fallbackName is non-empty, so --fallback-codec
// behaves identically across -c/-d/-v. A primary codec that cannot be built
// ends the program in buildCodec before any fallback is considered.
func buildCodecWithFallback(name, fallbackName, helperPath string, dictSize int64) compress.Codec {
	primary := buildCodec(name, helperPath, dictSize)
	if fallbackName == "" {
		return primary
	}

	fallback := buildCodec(fallbackName, helperPath, 0)

	return compress.NewFallbackCodec(primary, fallback)
}

func runCompress(inPath, outPath string, opts compressOptions) {
	data, err := os.ReadFile(inPath)
	if err != nil {
		log.Fatal(err)
	}

	var dictSize int64
	if opts.dictSize != "" {
		dictSize, err = archive.ParseSize(opts.dictSize)
		if err != nil {
			log.Fatal(err)
		}
	}

	codec := buildCodecWithFallback(opts.codecName, opts.fallbackName, opts.helperPath, dictSize)

	out, err := os.Create(outPath)
	if err != nil {
		log.Fatal(err)
	}
	defer out.Close()

	var archiveOpts []archive.Option
	if opts.chunkSize != "" {
		n, err := archive.ParseSize(opts.chunkSize)
		if err != nil {
			log.Fatal(err)
		}
		archiveOpts = append(archiveOpts, archive.WithChunkSize(int(n)))
	}
	if opts.verify {
		archiveOpts = append(archiveOpts, archive.WithVerifyWrites())
	}

	w, err := archive.NewWriter(out, codec, archiveOpts...)
	if err != nil {
		log.Fatal(err)
	}

	if _, err := w.Write(data); err != nil {
		log.Fatal(err)
	}

	if opts.stats {
		info, err := out.Stat()
		if err == nil && len(data) > 0 {
			ratio := float64(info.Size()) / float64(len(data))
			fmt.Printf("%d -> %d bytes (%.2f:1, %.1f%% saved)\n",
				len(data), info.Size(), 1.0/ratio, (1.0-ratio)*100.0)
		}
	}
}

func runDecompress(inPath, outPath, codecName, fallbackName, helperPath string) {
	in, err := os.Open(inPath)
	if err != nil {
		log.Fatal(err)
	}
	defer in.Close()

	codec := buildCodecWithFallback(codecName, fallbackName, helperPath, 0)

	r := archive.NewReader(in, codec)
	data, err := r.ReadAll()
	if err != nil {
		log.Fatal(err)
	}

	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		log.Fatal(err)
	}
}

func runVerify(inPath, codecName, fallbackName, helperPath string) {
	in, err := os.Open(inPath)
	if err != nil {
		log.Fatal(err)
	}
	defer in.Close()

	codec := buildCodecWithFallback(codecName, fallbackName, helperPath, 0)

	r := archive.NewReader(in, codec)

	blocks := 0
	for {
		_, err := r.ReadBlock()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			log.Fatal(err)
		}
		blocks++
	}

	fmt.Printf("%d block(s) verified OK\n", blocks)
}
