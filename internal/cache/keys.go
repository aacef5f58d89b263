package cache

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Key derivation. Every cacheable request maps to a canonical key string
// with a fixed parameter order, so that equivalent requests collapse to a
// single cache slot. The canonical string is hashed to produce a short,
// filesystem-safe entry name.

// ListKey returns the canonical key for the paginated listing endpoint.
func ListKey(offset, limit int) string {
	return fmt.Sprintf("users:offset=%d:limit=%d", offset, limit)
}

// SearchKey returns the canonical key for the search endpoint. The term is
// lower-cased so that searches differing only in case share one slot; the
// stored rows are identical because the query itself is case-insensitive.
func SearchKey(term string) string {
	return "search:q=" + strings.ToLower(term)
}

// hashKey maps a canonical key to the cache entry filename.
func hashKey(key string) string {
	return fmt.Sprintf("%016x.json", xxhash.Sum64String(key))
}
