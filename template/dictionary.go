// Package template implements the skeleton dictionary, per-template columnar
// value storage, and the entropy guard that bounds how many distinct
// skeletons one block may register before falling back to passthrough.
package template

import (
	"github.com/castfmt/cast/errs"
	"github.com/castfmt/cast/format"
	"github.com/castfmt/cast/internal/collision"
	"github.com/castfmt/cast/internal/hash"
)

// Entry is one template: its skeleton string, its placeholder count, and
// its ordered per-column value vectors. Created on first occurrence of its
// skeleton; never destroyed within a block's lifetime.
type Entry struct {
	Skeleton string
	Columns  [][]string
}

// Dictionary maps skeleton strings to template IDs, accelerated by an
// xxHash64 index with collision verification (internal/hash,
// internal/collision), and tracks the ordered ID stream and entropy budget
// for one block. A Dictionary is constructed fresh for each block and
// discarded at the end of compression; it is never shared across blocks
// (spec §3, "Lifecycle").
type Dictionary struct {
	byHash   map[uint64]int // hash -> template id, fast path
	tracker  *collision.Tracker
	// fallback holds skeleton -> template id for every skeleton whose hash
	// has collided with another skeleton's. Once a hash collides, byHash's
	// single slot can no longer disambiguate between the two (or more)
	// skeletons sharing it, so both sides move here permanently and are
	// checked first on every lookup.
	fallback map[string]int
	entries  []Entry
	stream   []int
	strategy format.Strategy

	uniqueLimit float64
}

// NewDictionary creates a Dictionary for a block of numLines non-empty
// lines, tokenized with strategy. The entropy guard's unique_limit is
// numLines * (0.40 if Aggressive else 0.25), per spec §4.3.
func NewDictionary(numLines int, strategy format.Strategy) *Dictionary {
	ratio := 0.25
	if strategy == format.Aggressive {
		ratio = 0.40
	}

	return &Dictionary{
		byHash:      make(map[uint64]int),
		tracker:     collision.NewTracker(),
		fallback:    make(map[string]int),
		strategy:    strategy,
		uniqueLimit: float64(numLines) * ratio,
	}
}

// NewDictionaryWithRatio is NewDictionary with an explicit unique-template
// ratio rather than the strategy-derived 0.25/0.40 default, for callers
// (block.WithEntropyGuardRatio) that need to force or avoid the entropy
// passthrough path deterministically.
func NewDictionaryWithRatio(numLines int, ratio float64) *Dictionary {
	return &Dictionary{
		byHash:      make(map[uint64]int),
		tracker:     collision.NewTracker(),
		fallback:    make(map[string]int),
		uniqueLimit: float64(numLines) * ratio,
	}
}

// Register records one matched line's skeleton and captured literals,
// creating a new template entry on first occurrence. It returns
// errs.ErrEntropyExceeded if registering a *new* skeleton would push the
// dictionary's size past its entropy budget (spec §4.3): the check is
// `next_template_id > unique_limit`, so a dictionary may still grow one
// entry past a fractional limit before tripping — preserved verbatim from
// the reference implementation.
func (d *Dictionary) Register(skeleton string, vars []string) error {
	h := hash.ID(skeleton)

	if id, ok := d.lookup(h, skeleton); ok {
		d.appendRow(id, vars)
		return nil
	}

	nextID := len(d.entries)
	if float64(nextID) > d.uniqueLimit {
		return errs.ErrEntropyExceeded
	}

	if d.tracker.Observe(h, skeleton) {
		// Genuine xxHash64 collision: h was already claimed by a different
		// skeleton. byHash[h] can only ever point at one of them, so both
		// move to the string-keyed fallback map permanently; byHash[h] is
		// left as-is but future lookups for either skeleton now resolve
		// through fallback first and never consult it again.
		if prevID, ok := d.byHash[h]; ok {
			d.fallback[d.entries[prevID].Skeleton] = prevID
		}
		d.fallback[skeleton] = nextID
	} else {
		d.byHash[h] = nextID
	}

	d.entries = append(d.entries, Entry{
		Skeleton: skeleton,
		Columns:  make([][]string, len(vars)),
	})
	d.appendRow(nextID, vars)

	return nil
}

// lookup resolves skeleton to an existing template ID. The fallback map is
// checked first since it is authoritative for any skeleton whose hash has
// ever collided; only once a hash is confirmed collision-free is the hash
// index trusted as a fast path.
func (d *Dictionary) lookup(h uint64, skeleton string) (int, bool) {
	if id, ok := d.fallback[skeleton]; ok {
		return id, true
	}

	id, ok := d.byHash[h]
	if !ok {
		return 0, false
	}

	if recorded, _ := d.tracker.Resolve(h); recorded != skeleton {
		// h collides with a skeleton other than this one, and this one
		// isn't in fallback yet: it's unseen. Register will add it (and
		// the previously byHash-resolved skeleton) to fallback.
		return 0, false
	}

	return id, true
}

func (d *Dictionary) appendRow(id int, vars []string) {
	d.stream = append(d.stream, id)
	cols := d.entries[id].Columns
	limit := len(vars)
	if len(cols) < limit {
		limit = len(cols)
	}
	for i := 0; i < limit; i++ {
		cols[i] = append(cols[i], vars[i])
	}
}

// Entries returns the ordered template entries (index == template ID).
func (d *Dictionary) Entries() []Entry {
	return d.entries
}

// Stream returns the ordered template ID stream, one entry per non-empty
// input line.
func (d *Dictionary) Stream() []int {
	return d.stream
}

// NumTemplates returns the number of distinct templates registered so far.
func (d *Dictionary) NumTemplates() int {
	return len(d.entries)
}
