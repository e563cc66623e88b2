package container

import (
	"bytes"

	"github.com/castfmt/cast/format"
	"github.com/castfmt/cast/template"
	"github.com/klauspost/compress/flate"
)

// sampleTemplateLimit, sampleValuesPerColumn, and sampleByteBudget bound the
// quick DEFLATE-level-1 sample the optimizer takes before committing to a
// layout, per spec §4.4.
const (
	sampleTemplateLimit   = 5
	sampleValuesPerColumn = 50
	sampleByteBudget      = 2000
	splitRatioThreshold   = 3.0
	splitTemplateCeiling  = 256
)

// Decision is the optimizer's verdict for one block: which layout to use,
// and (for Unified) the frequency-descending remap applied to template IDs.
type Decision struct {
	Layout Layout
	// Remap maps old template ID -> new template ID. Nil under Split, where
	// templates keep their original registration order.
	Remap []int
}

// Layout mirrors format.Layout; re-exported here so callers of container
// don't need to import format directly for the common case.
type Layout = format.Layout

// Decide samples entries' values to estimate how compressible the variables
// buffer is, and picks Split when that sample barely compresses (ratio below
// splitRatioThreshold) — high-entropy columns rarely benefit from living next
// to the registry and ID stream in one solid LZMA stream. It never considers
// Split once the template count reaches splitTemplateCeiling: at that size
// Unified's single-stream overhead amortizes better than three.
func Decide(entries []template.Entry, stream []int) Decision {
	if len(entries) < splitTemplateCeiling {
		if ratio, ok := sampleRatio(entries); ok && ratio < splitRatioThreshold {
			return Decision{Layout: format.Split}
		}
	}

	return Decision{Layout: format.Unified, Remap: remapByFrequency(entries, stream)}
}

func sampleRatio(entries []template.Entry) (float64, bool) {
	var sample bytes.Buffer
	count := 0

	limit := sampleTemplateLimit
	if limit > len(entries) {
		limit = len(entries)
	}

outer:
	for tID := 0; tID < limit; tID++ {
		for _, col := range entries[tID].Columns {
			n := col
			if len(n) > sampleValuesPerColumn {
				n = n[:sampleValuesPerColumn]
			}
			for _, v := range n {
				sample.WriteString(v)
				count++
			}
			if count > sampleByteBudget {
				break outer
			}
		}
	}

	if sample.Len() == 0 {
		return 0, false
	}

	var compressed bytes.Buffer
	w, _ := flate.NewWriter(&compressed, flate.BestSpeed)
	_, _ = w.Write(sample.Bytes())
	_ = w.Close()

	if compressed.Len() == 0 {
		return 0, false
	}

	return float64(sample.Len()) / float64(compressed.Len()), true
}

// remapByFrequency assigns new template IDs in descending order of
// occurrence count in stream, so the most common templates get the smallest
// IDs. This tends to shrink the ID stream's entropy under LZMA2, since
// recently/frequently seen small values compress better than an arbitrary
// registration order.
func remapByFrequency(entries []template.Entry, stream []int) []int {
	counts := make([]int, len(entries))
	for _, id := range stream {
		counts[id]++
	}

	order := make([]int, len(entries))
	for i := range order {
		order[i] = i
	}

	// Stable sort descending by count; ties keep registration order, matching
	// Python's Counter.most_common() behavior for equal counts.
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && counts[order[j-1]] < counts[order[j]]; j-- {
			order[j-1], order[j] = order[j], order[j-1]
		}
	}

	remap := make([]int, len(entries))
	for newID, oldID := range order {
		remap[oldID] = newID
	}

	return remap
}
