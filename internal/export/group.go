package export

import (
	"sort"

	"codeberg.org/snonux/lexikort/internal/lexicon"
)

// UnknownCategory replaces a category no source could determine
const UnknownCategory = "okänd"

// Group is the set of records sharing one category, in input order
type Group struct {
	Category string
	Records  []lexicon.Record
}

// GroupByCategory fills missing categories with UnknownCategory and
// buckets the records. Groups are sorted by category name; records keep
// their relative input order. The table is not modified.
func GroupByCategory(table lexicon.ResultTable) []Group {
	index := make(map[string]int)
	var groups []Group

	for _, rec := range table {
		if rec.Entry.Category == "" {
			rec.Entry.Category = UnknownCategory
		}

		i, ok := index[rec.Entry.Category]
		if !ok {
			i = len(groups)
			index[rec.Entry.Category] = i
			groups = append(groups, Group{Category: rec.Entry.Category})
		}
		groups[i].Records = append(groups[i].Records, rec)
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].Category < groups[b].Category
	})

	return groups
}
