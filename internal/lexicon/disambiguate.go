package lexicon

import "unicode/utf8"

// Closest picks the candidate whose Swedish headword length is nearest to
// the length of word. Only a strictly smaller distance replaces the
// current pick, so ties go to the candidate seen first.
func Closest(candidates []Entry, word string) (Entry, bool) {
	if len(candidates) == 0 {
		return Entry{}, false
	}

	target := utf8.RuneCountInString(word)
	best := 0
	bestDistance := distance(utf8.RuneCountInString(candidates[0].Swedish), target)

	for i := 1; i < len(candidates); i++ {
		d := distance(utf8.RuneCountInString(candidates[i].Swedish), target)
		if d < bestDistance {
			best, bestDistance = i, d
		}
	}

	return candidates[best], true
}

// FilterCategory keeps the candidates whose category matches. An empty
// category keeps everything.
func FilterCategory(candidates []Entry, category string, abbr Abbreviations) []Entry {
	if category == "" {
		return candidates
	}

	var kept []Entry
	for _, c := range candidates {
		if abbr.Same(c.Category, category) {
			kept = append(kept, c)
		}
	}
	return kept
}

func distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
