package export

import (
	"reflect"
	"testing"

	"codeberg.org/snonux/lexikort/internal/lexicon"
)

func rec(index, category string) lexicon.Record {
	return lexicon.Record{Index: index, Entry: lexicon.Entry{Swedish: index, Category: category}}
}

func TestGroupByCategory(t *testing.T) {
	table := lexicon.ResultTable{
		rec("springa", "verb"),
		rec("hus", "substantiv"),
		rec("xyz", ""),
		rec("bil", "substantiv"),
		rec("igång", "adverb"),
		rec("gå", "verb"),
	}

	groups := GroupByCategory(table)

	var names []string
	for _, g := range groups {
		names = append(names, g.Category)
	}
	want := []string{"adverb", "okänd", "substantiv", "verb"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("categories = %v, want %v", names, want)
	}

	// Input order within a group
	subst := groups[2].Records
	if len(subst) != 2 || subst[0].Index != "hus" || subst[1].Index != "bil" {
		t.Errorf("substantiv records = %+v", subst)
	}

	unknown := groups[1].Records
	if len(unknown) != 1 || unknown[0].Entry.Category != UnknownCategory {
		t.Errorf("okänd records = %+v", unknown)
	}

	if table[2].Entry.Category != "" {
		t.Error("GroupByCategory modified its input")
	}
}

func TestGroupByCategory_Empty(t *testing.T) {
	if groups := GroupByCategory(nil); len(groups) != 0 {
		t.Errorf("expected no groups, got %d", len(groups))
	}
}
