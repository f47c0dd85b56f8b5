// Package processor runs the processing stage: it normalizes the raw
// Kaikki sources, deduplicates the combined record set and writes the
// intermediate files consumed by the store build.
package processor

import "github.com/heartmarshall/hindict/internal/domain"

// Deduplicate returns one record per identity key (folded headword,
// language, part of speech).
//
// The first record seen for a key is kept unless a later one has a strictly
// greater information score, so on a tie the earlier record wins. Callers
// must pass records in a stable order: English sources before Hindi, each
// in file order. The result lists keys in order of first appearance.
func Deduplicate(words []domain.ProcessedWord) []domain.ProcessedWord {
	index := make(map[domain.IdentityKey]int, len(words))
	result := make([]domain.ProcessedWord, 0, len(words))

	for _, w := range words {
		key := w.Key()
		i, seen := index[key]
		if !seen {
			index[key] = len(result)
			result = append(result, w)
			continue
		}
		if w.Score() > result[i].Score() {
			result[i] = w
		}
	}

	return result
}

// SplitByLanguage groups words by language, preserving order.
func SplitByLanguage(words []domain.ProcessedWord) map[domain.Language][]domain.ProcessedWord {
	groups := make(map[domain.Language][]domain.ProcessedWord)
	for _, w := range words {
		groups[w.Language] = append(groups[w.Language], w)
	}
	return groups
}
