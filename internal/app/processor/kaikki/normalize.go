package kaikki

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/heartmarshall/hindict/internal/domain"
)

// DefaultMaxExamples caps the example sentences kept per word.
const DefaultMaxExamples = 3

// Normalizer maps raw Kaikki entries to domain.ProcessedWord values.
type Normalizer struct {
	maxExamples int
}

// NewNormalizer creates a Normalizer keeping at most maxExamples examples
// per word. Values below 1 select DefaultMaxExamples.
func NewNormalizer(maxExamples int) *Normalizer {
	if maxExamples < 1 {
		maxExamples = DefaultMaxExamples
	}
	return &Normalizer{maxExamples: maxExamples}
}

// NormalizeLine decodes one JSONL line and normalizes it for lang.
// ok is false when the entry is discarded. A line that is not a JSON
// object of the expected shape returns an error wrapping
// domain.ErrMalformedInput.
func (n *Normalizer) NormalizeLine(line []byte, lang domain.Language) (domain.ProcessedWord, bool, error) {
	var entry kaikkiEntry
	if err := json.Unmarshal(line, &entry); err != nil {
		return domain.ProcessedWord{}, false, fmt.Errorf("%w: %v", domain.ErrMalformedInput, err)
	}
	w, ok := n.normalize(&entry, lang)
	return w, ok, nil
}

// normalize applies the field-extraction policy to a decoded entry.
func (n *Normalizer) normalize(e *kaikkiEntry, lang domain.Language) (domain.ProcessedWord, bool) {
	headword := strings.TrimSpace(e.Word)
	if headword == "" {
		return domain.ProcessedWord{}, false
	}
	if e.LangCode != string(lang) {
		return domain.ProcessedWord{}, false
	}

	definitions := extractDefinitions(e.Senses)
	if len(definitions) == 0 {
		return domain.ProcessedWord{}, false
	}

	target := lang.Counterpart()
	translated := extractTranslations(e, target)
	translations := make(map[string][]string, 1)
	if lang == domain.LanguageHindi || len(translated) > 0 {
		translations[string(target)] = translated
	}

	pos := e.POS
	if pos == "" {
		pos = domain.DefaultPartOfSpeech
	}

	return domain.ProcessedWord{
		Headword:      headword,
		Language:      lang,
		PartOfSpeech:  pos,
		Definitions:   definitions,
		Translations:  translations,
		Pronunciation: firstIPA(e.Sounds),
		Examples:      extractExamples(e.Senses, n.maxExamples),
		Etymology:     etymology(e.EtymologyText),
	}, true
}

// firstGloss returns the first gloss of a sense exactly as the source has it.
func firstGloss(s kaikkiSense) (string, bool) {
	if len(s.Glosses) == 0 {
		return "", false
	}
	return s.Glosses[0], true
}

// extractDefinitions takes the first gloss of every sense, in sense order.
func extractDefinitions(senses []kaikkiSense) []string {
	var defs []string
	for _, s := range senses {
		if g, ok := firstGloss(s); ok {
			defs = append(defs, g)
		}
	}
	return defs
}

// extractTranslations collects distinct translations into target from the
// entry-level translation list. A sub-record matches on either the language
// name or the language code. Sense-level lists are not consulted.
func extractTranslations(e *kaikkiEntry, target domain.Language) []string {
	var words []string
	for _, t := range e.Translations {
		if t.Lang == target.Name() || t.Code == string(target) {
			words = append(words, t.Word)
		}
	}
	return distinctNonEmpty(words)
}

// firstIPA returns the first non-empty IPA transcription, or nil.
func firstIPA(sounds []kaikkiSound) *string {
	for _, s := range sounds {
		if s.IPA != "" {
			ipa := s.IPA
			return &ipa
		}
	}
	return nil
}

// extractExamples scans senses in order and keeps up to max non-empty
// example texts. Empty texts do not count toward the cap.
func extractExamples(senses []kaikkiSense, max int) []string {
	examples := make([]string, 0, max)
	for _, s := range senses {
		for _, ex := range s.Examples {
			if len(examples) == max {
				return examples
			}
			if text := strings.TrimSpace(ex.Text); text != "" {
				examples = append(examples, text)
			}
		}
	}
	return examples
}

// etymology copies the source text verbatim; only an absent field is nil.
func etymology(text *string) *string {
	if text == nil {
		return nil
	}
	v := *text
	return &v
}
