package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbbreviations_Canonical(t *testing.T) {
	abbr := DefaultAbbreviations()

	tests := []struct {
		in, want string
	}{
		{"subst.", "substantiv"},
		{"Subst.", "substantiv"},
		{"adv.", "adverb"},
		{"adverb", "adverb"},
		{" verb ", "verb"},
		{"nn", "substantiv"},
		{"okänt.", "okänt."},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, abbr.Canonical(tt.in))
		})
	}
}

func TestAbbreviations_Same(t *testing.T) {
	abbr := DefaultAbbreviations()

	assert.True(t, abbr.Same("subst.", "substantiv"))
	assert.True(t, abbr.Same("adv.", "ADVERB"))
	assert.False(t, abbr.Same("adv.", "subst."))
	assert.False(t, abbr.Same("", "subst."))
}

func TestAbbreviations_Extend(t *testing.T) {
	abbr := DefaultAbbreviations()
	abbr.Extend(map[string]string{"Ptc.": "Partikel"})

	assert.Equal(t, "partikel", abbr.Canonical("ptc."))

	// The built-in table must stay untouched
	assert.Equal(t, "ptc.", DefaultAbbreviations().Canonical("ptc."))
}
