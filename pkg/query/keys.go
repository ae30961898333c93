package query

import (
	"sort"
	"strconv"
	"strings"

	"github.com/BehshadMoeini/rick-and-morty/pkg/characters"
)

// Cache keys are structural: two requests that are field-wise equal
// produce identical keys and therefore share one cache entry and one
// in-flight fetch.

// listKey identifies one page of a filtered list query.
func listKey(page int, filter characters.Filter) string {
	return "characters|list|" + filter.Key() + "|page=" + strconv.Itoa(page)
}

// detailKey identifies a single lookup.
func detailKey(id int) string {
	return "characters|detail|" + strconv.Itoa(id)
}

// batchKey identifies a batch lookup by its identifier set. The ids are
// de-duplicated and sorted so that set-wise equal requests share an
// entry regardless of input order.
func batchKey(ids []int) string {
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	unique := make([]int, 0, len(set))
	for id := range set {
		unique = append(unique, id)
	}
	sort.Ints(unique)

	parts := make([]string, len(unique))
	for i, id := range unique {
		parts[i] = strconv.Itoa(id)
	}
	return "characters|multiple|" + strings.Join(parts, ",")
}
