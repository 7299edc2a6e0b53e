// Package search matches records against partial serial-number queries.
package search

import (
	"strings"

	"github.com/sells-group/certlookup/internal/model"
)

// Search returns the records whose identifier contains query, ignoring case.
// Only the identifier is matched and the result keeps the set's order.
// An empty query is not a search: callers reject it before calling, and
// Search returns an empty set if it gets one anyway. No match yields an
// empty set, never an error.
func Search(set *model.RecordSet, query string) *model.RecordSet {
	if query == "" {
		return set.Filter(func(model.Record) bool { return false })
	}
	q := strings.ToLower(query)
	return set.Filter(func(r model.Record) bool {
		return strings.Contains(strings.ToLower(r.Identifier), q)
	})
}

// FindByIdentifier returns the n-th record (1-based, in set order) whose
// identifier equals id exactly. Identifiers are not unique, so n picks
// between records sharing one; n < 1 means the first.
func FindByIdentifier(set *model.RecordSet, id string, n int) (model.Record, bool) {
	if n < 1 {
		n = 1
	}
	for i := 0; i < set.Len(); i++ {
		if r := set.At(i); r.Identifier == id {
			n--
			if n == 0 {
				return r, true
			}
		}
	}
	return model.Record{}, false
}

// Ordinals returns, for each record of set, its 1-based position among the
// records sharing its identifier.
func Ordinals(set *model.RecordSet) []int {
	seen := make(map[string]int, set.Len())
	out := make([]int, set.Len())
	for i := 0; i < set.Len(); i++ {
		id := set.At(i).Identifier
		seen[id]++
		out[i] = seen[id]
	}
	return out
}
