// Package block orchestrates one CAST block end to end: classify, tokenize,
// build the template dictionary, optimize the container layout, serialize,
// and hand off to a compress.Codec — and the inverse on decode. A block is
// the unit spec.md calls out in §3 as everything between one archive frame's
// header and the next.
package block

import (
	"errors"

	"github.com/castfmt/cast/container"
	"github.com/castfmt/cast/errs"
	"github.com/castfmt/cast/format"
	"github.com/castfmt/cast/internal/options"
	"github.com/castfmt/cast/template"
	"github.com/castfmt/cast/tokenize"
)

// Result is the outcome of compressing one block.
type Result struct {
	// Registry, IDs, Vars are the (still uncompressed) serialized streams
	// archive.Writer hands to its codec; under Unified, IDs is always empty
	// and Vars carries the solid concatenated stream.
	Registry []byte
	IDs      []byte
	Vars     []byte
	Flag     format.Flag
	Reason   format.PassthroughReason
	Strategy format.Strategy
	Layout   format.Layout
	// Warnings carries non-fatal issues, e.g. a failed Latin-1 restore on
	// decode, matching spec §4.9's "warn and continue" cases.
	Warnings []error
}

// Option configures a single Compress/Decompress call. See
// WithStrategy, WithPassthrough, WithEntropyGuardRatio.
type Option = options.Option[*config]

type config struct {
	forceStrategy    *format.Strategy
	forcePassthrough bool
	entropyOverride  *float64
}

// WithStrategy pins the tokenizer strategy instead of running Select's
// sampling heuristic; mainly useful for tests that need deterministic
// template boundaries.
func WithStrategy(s format.Strategy) Option {
	return options.NoError(func(c *config) {
		c.forceStrategy = &s
	})
}

// WithPassthrough forces ReasonRequested passthrough, skipping templating
// entirely.
func WithPassthrough() Option {
	return options.NoError(func(c *config) {
		c.forcePassthrough = true
	})
}

// WithEntropyGuardRatio overrides the entropy guard's unique-template ratio
// (spec §4.3's 0.25/0.40 constants), for tests that want to force or avoid
// the entropy passthrough path at a small input size.
func WithEntropyGuardRatio(ratio float64) Option {
	return options.NoError(func(c *config) {
		c.entropyOverride = &ratio
	})
}

// Compress runs the full CAST pipeline over data, returning the serialized
// (but not yet codec-compressed) block streams. Codec compression is the
// caller's responsibility (see archive.Writer), since the choice of codec
// is an archive-level, not a block-level, decision.
func Compress(data []byte, opts ...Option) (Result, error) {
	cfg := &config{}
	if err := options.Apply(cfg, opts...); err != nil {
		return Result{}, err
	}

	if cfg.forcePassthrough {
		return passthrough(data, format.ReasonRequested), nil
	}

	cls, err := tokenize.Classify(data)
	if err != nil {
		return Result{}, err
	}
	if cls.Binary {
		return passthrough(data, format.ReasonBinary), nil
	}

	strategy := cls2Strategy(cfg, cls.Text)
	tok := tokenize.New(strategy)

	lines := tokenize.SplitKeepEnds(cls.Text)

	var dict *template.Dictionary
	if cfg.entropyOverride != nil {
		dict = template.NewDictionaryWithRatio(len(lines), *cfg.entropyOverride)
	} else {
		dict = template.NewDictionary(len(lines), strategy)
	}

	for _, line := range lines {
		if line == "" {
			continue
		}

		skeleton, vars, err := tok.Mask(line)
		if err != nil {
			return passthrough(data, format.ReasonCollision), nil
		}

		if err := dict.Register(skeleton, vars); err != nil {
			if errors.Is(err, errs.ErrEntropyExceeded) {
				return passthrough(data, format.ReasonEntropy), nil
			}
			return Result{}, err
		}
	}

	decision := container.Decide(dict.Entries(), dict.Stream())
	parts := container.Build(dict.Entries(), dict.Stream(), decision, cls.Latin1)
	streams := container.Assemble(parts, decision.Layout)

	return Result{
		Registry: streams.Registry,
		IDs:      streams.IDs,
		Vars:     streams.Solid,
		Flag:     parts.Flag,
		Reason:   format.ReasonNone,
		Strategy: strategy,
		Layout:   decision.Layout,
	}, nil
}

func cls2Strategy(cfg *config, text string) format.Strategy {
	if cfg.forceStrategy != nil {
		return *cfg.forceStrategy
	}

	return tokenize.Select(text)
}

// passthrough compresses data verbatim; the flag byte alone (format.Passthrough,
// possibly with Latin1Bit) records the bypass, per spec §4.9.
func passthrough(data []byte, reason format.PassthroughReason) Result {
	return Result{
		Vars:   data,
		Flag:   format.Passthrough,
		Reason: reason,
	}
}

// Decompress reverses Compress given the already codec-decompressed block
// streams and flag, per spec §4.8's state machine.
func Decompress(registry, ids, vars []byte, flag format.Flag) (Result, error) {
	if flag.IsPassthrough() {
		return Result{Vars: vars, Flag: flag}, nil
	}

	parts := container.Disassemble(container.Streams{Registry: registry, IDs: ids, Solid: vars}, flag)

	text, err := container.Reconstruct(parts)
	if err != nil {
		return Result{}, err
	}

	res := Result{Flag: flag, Layout: parts.Layout}
	if flag.IsLatin1() {
		restored, err := tokenize.EncodeLatin1(text)
		if err != nil {
			res.Warnings = append(res.Warnings, errs.ErrDecodeFailed)
			res.Vars = []byte(text)
			return res, nil
		}
		res.Vars = restored
		return res, nil
	}

	res.Vars = []byte(text)

	return res, nil
}
