package lexicon

import "context"

// Entry is the set of lexical fields one source produced for one query.
// An empty string means the field is absent.
type Entry struct {
	Swedish       string `json:"swedish,omitempty"`
	English       string `json:"english,omitempty"`
	Definition    string `json:"definition,omitempty"`
	Category      string `json:"category,omitempty"`
	Pronunciation string `json:"pronunciation,omitempty"`
	Audio         string `json:"audio,omitempty"`
}

// IsEmpty reports whether no field is present
func (e Entry) IsEmpty() bool {
	return e == Entry{}
}

// Source looks up a word in one lexicon. Category may be empty.
type Source interface {
	Name() string
	Lookup(ctx context.Context, word, category string) (Entry, error)
}

// Merge overlays b on a field by field: a present field of b wins,
// otherwise a's value is kept.
func Merge(a, b Entry) Entry {
	return Entry{
		Swedish:       pick(a.Swedish, b.Swedish),
		English:       pick(a.English, b.English),
		Definition:    pick(a.Definition, b.Definition),
		Category:      pick(a.Category, b.Category),
		Pronunciation: pick(a.Pronunciation, b.Pronunciation),
		Audio:         pick(a.Audio, b.Audio),
	}
}

func pick(a, b string) string {
	if b != "" {
		return b
	}
	return a
}

// Record is the merged entry for one query, keyed by the query's index
type Record struct {
	Index string `json:"index"`
	Entry Entry  `json:"entry"`
}

// ResultTable holds one record per input query, in input order
type ResultTable []Record
