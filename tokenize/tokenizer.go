package tokenize

import (
	"regexp"
	"strings"

	"github.com/castfmt/cast/errs"
	"github.com/castfmt/cast/format"
)

// strictPattern masks quoted literals, signed decimals (with optional
// fractional part), and hex literals — spec §4.2.
var strictPattern = regexp.MustCompile(`"(?:[^"\\]|\\.|"")*"|-?[0-9]+(?:\.[0-9]+)?|0x[0-9a-fA-F]+`)

// aggressivePattern additionally masks any run of word/dot/dash characters.
var aggressivePattern = regexp.MustCompile(`"(?:[^"\\]|\\.|"")*"|[A-Za-z0-9_.\-]+`)

// quotedPlaceholder is the three-codepoint sequence emitted in place of a
// quoted literal: '"' PH '"'.
var quotedPlaceholder = `"` + format.PHStr + `"`

// Tokenizer masks literal fields in lines of text to their skeleton form,
// using whichever pattern Select chose for the block.
type Tokenizer struct {
	strategy format.Strategy
	pattern  *regexp.Regexp
}

// New creates a Tokenizer bound to the given strategy.
func New(strategy format.Strategy) *Tokenizer {
	return &Tokenizer{strategy: strategy, pattern: patternFor(strategy)}
}

func patternFor(strategy format.Strategy) *regexp.Regexp {
	if strategy == format.Aggressive {
		return aggressivePattern
	}

	return strictPattern
}

// Strategy returns the tokenizer's frozen pattern choice.
func (t *Tokenizer) Strategy() format.Strategy {
	return t.strategy
}

// Mask tokenizes a single line into (skeleton, ordered literals). It
// returns errs.ErrCollision if the raw line already contains the PH or RS
// sentinel code points, per the collision guard in spec §4.2.
func (t *Tokenizer) Mask(line string) (skeleton string, vars []string, err error) {
	if strings.ContainsRune(line, format.PH) || strings.ContainsRune(line, format.RS) {
		return "", nil, errs.ErrCollision
	}

	matches := t.pattern.FindAllStringIndex(line, -1)
	if matches == nil {
		return line, nil, nil
	}

	var b strings.Builder
	b.Grow(len(line))
	vars = make([]string, 0, len(matches))

	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		b.WriteString(line[last:start])

		token := line[start:end]
		if strings.HasPrefix(token, `"`) {
			vars = append(vars, token[1:len(token)-1])
			b.WriteString(quotedPlaceholder)
		} else {
			vars = append(vars, token)
			b.WriteRune(format.PH)
		}

		last = end
	}
	b.WriteString(line[last:])

	return b.String(), vars, nil
}

// Select samples up to the first 200,000 runes / 1,000 lines of text and
// picks Aggressive when the Strict pattern would produce more than 10%
// distinct skeletons, else Strict. It is run once per block; the chosen
// strategy is frozen for the block's remaining lifetime (spec §4.2).
func Select(text string) format.Strategy {
	sample := text
	if len(sample) > 200_000 {
		// Truncate after the 200,000th rune, on a rune boundary.
		n := 0
		for i := range sample {
			if n == 200_000 {
				sample = sample[:i]
				break
			}
			n++
		}
	}

	lines := SplitKeepEnds(sample)
	if len(lines) > 1000 {
		lines = lines[:1000]
	}
	if len(lines) == 0 {
		return format.Strict
	}

	distinct := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		skel := strictPattern.ReplaceAllString(line, format.PHStr)
		distinct[skel] = struct{}{}
	}

	ratio := float64(len(distinct)) / float64(len(lines))
	if ratio > 0.10 {
		return format.Aggressive
	}

	return format.Strict
}

// SplitKeepEnds splits s into lines, each line retaining its own line
// terminator (\n, or \r\n), matching Python's str.splitlines(keepends=True)
// closely enough for CAST's purposes: CAST only cares about \n- and
// \r\n-terminated lines, and a final unterminated fragment. Exported for
// block.Compress, which walks the same lines to build the template
// dictionary.
func SplitKeepEnds(s string) []string {
	if s == "" {
		return nil
	}

	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i+1])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}

	return lines
}
