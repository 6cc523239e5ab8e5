// Package merge implements the key-based reconciliation that combines each
// cycle's freshly fetched primaries with the previous snapshot. New data
// supersedes old data per key; old entries with no replacement survive
// untouched, so a partial update never loses a primary.
package merge

import "github.com/sa-express-news/2018-primaries-server/internal/models"

// Keyed reconciles two lists of entities by a caller-supplied key. Every old
// element whose key has no match in next is kept, in order, followed by the
// whole of next. A key present in both lists therefore survives exactly once,
// carrying the new value; a key present only in prev survives unchanged.
//
// The pairwise scan is O(len(prev) * len(next)), which is fine for the tens
// of primaries a cycle produces.
func Keyed[T any](prev, next []T, key func(T) string) []T {
	merged := make([]T, 0, len(prev)+len(next))
	for _, old := range prev {
		shared := false
		for _, fresh := range next {
			if key(fresh) == key(old) {
				shared = true
				break
			}
		}
		if !shared {
			merged = append(merged, old)
		}
	}
	return append(merged, next...)
}

// Primaries reconciles two primary lists keyed by title, the canonical merge
// key across sources and across time.
func Primaries(prev, next []models.Primary) []models.Primary {
	return Keyed(prev, next, func(p models.Primary) string { return p.Title })
}
