// Package hash provides the xxHash64 primitive used to accelerate skeleton
// lookups in the template dictionary (see internal/collision for the
// verification step that guards against the rare case of a genuine hash
// collision between two distinct skeletons).
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}
