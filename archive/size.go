package archive

import (
	"fmt"
	"strconv"
	"strings"
)

// sizeSuffixes maps a human-readable size suffix to its byte multiplier,
// matching the CLI's --chunk-size/--dict-size flags (spec.md CLI section,
// enriched per the 7z-support variant's explicit dictionary-size parsing in
// original_source/python_impl/7z_support/cast.py).
var sizeSuffixes = []struct {
	suffix     string
	multiplier int64
}{
	{"GB", 1 << 30},
	{"MB", 1 << 20},
	{"KB", 1 << 10},
	{"B", 1},
}

// ParseSize parses a human-readable byte size like "8MB", "512KB", "128B",
// or a bare integer (bytes). It is case-insensitive and tolerates
// surrounding whitespace.
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty size string")
	}

	upper := strings.ToUpper(s)
	for _, suf := range sizeSuffixes {
		if strings.HasSuffix(upper, suf.suffix) {
			numPart := strings.TrimSpace(s[:len(s)-len(suf.suffix)])
			n, err := strconv.ParseFloat(numPart, 64)
			if err != nil {
				return 0, fmt.Errorf("invalid size %q: %w", s, err)
			}

			return int64(n * float64(suf.multiplier)), nil
		}
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}

	return n, nil
}
