package processor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/hindict/internal/app/processor/kaikki"
	"github.com/heartmarshall/hindict/internal/domain"
)

func word(headword string, lang domain.Language, pos string, defs, translations int) domain.ProcessedWord {
	w := domain.ProcessedWord{
		Headword:     headword,
		Language:     lang,
		PartOfSpeech: pos,
		Translations: map[string][]string{},
		Examples:     []string{},
	}
	for i := 0; i < defs; i++ {
		w.Definitions = append(w.Definitions, fmt.Sprintf("%s definition %d", headword, i+1))
	}
	if translations > 0 {
		target := string(lang.Counterpart())
		for i := 0; i < translations; i++ {
			w.Translations[target] = append(w.Translations[target], fmt.Sprintf("t%d", i+1))
		}
	}
	return w
}

func TestDeduplicate_KeepsRicherRecord(t *testing.T) {
	t.Parallel()

	first := word("bank", domain.LanguageEnglish, "noun", 1, 0)
	second := word("bank", domain.LanguageEnglish, "noun", 2, 1)

	got := Deduplicate([]domain.ProcessedWord{first, second})

	require.Len(t, got, 1)
	assert.Equal(t, second, got[0], "score 3 should replace score 1")
}

func TestDeduplicate_TieKeepsFirstSeen(t *testing.T) {
	t.Parallel()

	first := word("bank", domain.LanguageEnglish, "noun", 2, 0)
	second := word("bank", domain.LanguageEnglish, "noun", 1, 1)
	second.Definitions[0] = "different"

	got := Deduplicate([]domain.ProcessedWord{first, second})

	require.Len(t, got, 1)
	assert.Equal(t, first, got[0])
}

func TestDeduplicate_LowerScoreNeverReplaces(t *testing.T) {
	t.Parallel()

	rich := word("set", domain.LanguageEnglish, "verb", 5, 2)
	poor := word("set", domain.LanguageEnglish, "verb", 1, 0)

	got := Deduplicate([]domain.ProcessedWord{rich, poor})
	require.Len(t, got, 1)
	assert.Equal(t, rich, got[0])
}

func TestDeduplicate_KeyIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	upper := word("Bank", domain.LanguageEnglish, "noun", 1, 0)
	lower := word("bank", domain.LanguageEnglish, "noun", 2, 0)

	got := Deduplicate([]domain.ProcessedWord{upper, lower})
	require.Len(t, got, 1)
	assert.Equal(t, "bank", got[0].Headword, "richer record keeps its own spelling")
}

func TestDeduplicate_DistinctKeysKept(t *testing.T) {
	t.Parallel()

	in := []domain.ProcessedWord{
		word("bank", domain.LanguageEnglish, "noun", 1, 0),
		word("bank", domain.LanguageEnglish, "verb", 1, 0),
		word("bank", domain.LanguageHindi, "noun", 1, 0),
		word("ghar", domain.LanguageHindi, "noun", 1, 1),
	}

	got := Deduplicate(in)
	assert.Equal(t, in, got, "unique input passes through in order")
}

func TestDeduplicate_FirstAppearanceOrder(t *testing.T) {
	t.Parallel()

	in := []domain.ProcessedWord{
		word("a", domain.LanguageEnglish, "noun", 1, 0),
		word("b", domain.LanguageEnglish, "noun", 1, 0),
		word("a", domain.LanguageEnglish, "noun", 3, 0),
		word("c", domain.LanguageEnglish, "noun", 1, 0),
	}

	got := Deduplicate(in)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{got[0].Headword, got[1].Headword, got[2].Headword})
	assert.Len(t, got[0].Definitions, 3, "replacement keeps the slot of the first appearance")
}

func TestDeduplicate_Properties(t *testing.T) {
	t.Parallel()

	var in []domain.ProcessedWord
	for i := 0; i < 60; i++ {
		headword := []string{"bank", "Bank", "set", "run", "घर"}[i%5]
		lang := []domain.Language{domain.LanguageEnglish, domain.LanguageHindi}[i%2]
		pos := []string{"noun", "verb", "unknown"}[i%3]
		in = append(in, word(headword, lang, pos, 1+(i*7)%4, (i*5)%3))
	}

	out := Deduplicate(in)

	// Idempotence: deduplicating the output again changes nothing.
	assert.Equal(t, out, Deduplicate(out))

	// Every key appears once and carries the maximal score for that key.
	best := make(map[domain.IdentityKey]int)
	for _, w := range in {
		if w.Score() > best[w.Key()] {
			best[w.Key()] = w.Score()
		}
	}
	seen := make(map[domain.IdentityKey]bool)
	for _, w := range out {
		require.False(t, seen[w.Key()], "duplicate key %v in output", w.Key())
		seen[w.Key()] = true
		assert.Equal(t, best[w.Key()], w.Score(), "key %v", w.Key())
	}
	assert.Len(t, seen, len(best))
}

func TestDeduplicate_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Deduplicate(nil))
}

func TestSplitByLanguage(t *testing.T) {
	t.Parallel()

	in := []domain.ProcessedWord{
		word("a", domain.LanguageEnglish, "noun", 1, 0),
		word("घर", domain.LanguageHindi, "noun", 1, 0),
		word("b", domain.LanguageEnglish, "noun", 1, 0),
	}

	groups := SplitByLanguage(in)
	require.Len(t, groups[domain.LanguageEnglish], 2)
	require.Len(t, groups[domain.LanguageHindi], 1)
	assert.Equal(t, "b", groups[domain.LanguageEnglish][1].Headword)
}

func TestDeduplicate_SenseLevelTranslationsDoNotScore(t *testing.T) {
	t.Parallel()

	n := kaikki.NewNormalizer(kaikki.DefaultMaxExamples)
	lines := []string{
		`{"word":"bank","lang_code":"en","pos":"noun","senses":[{"glosses":["money place"]},{"glosses":["river edge"]}]}`,
		`{"word":"bank","lang_code":"en","pos":"noun","senses":[{"glosses":["shore"],"translations":[{"lang":"Hindi","code":"hi","word":"किनारा"},{"lang":"Hindi","code":"hi","word":"तट"}]}]}`,
	}

	var words []domain.ProcessedWord
	for _, line := range lines {
		w, ok, err := n.NormalizeLine([]byte(line), domain.LanguageEnglish)
		require.NoError(t, err)
		require.True(t, ok)
		words = append(words, w)
	}
	require.Equal(t, 2, words[0].Score())
	require.Equal(t, 1, words[1].Score())

	got := Deduplicate(words)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"money place", "river edge"}, got[0].Definitions)
	assert.Empty(t, got[0].Translations)
}
