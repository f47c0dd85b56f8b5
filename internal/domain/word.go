package domain

import "strings"

// Language is a supported dictionary language code.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageHindi   Language = "hi"
)

// DefaultPartOfSpeech is stored when a source entry has no part of speech.
const DefaultPartOfSpeech = "unknown"

// SupportedLanguages returns the supported languages in processing order.
// English records are processed before Hindi records, so on an equal
// information score the English-source record wins.
func SupportedLanguages() []Language {
	return []Language{LanguageEnglish, LanguageHindi}
}

func (l Language) String() string { return string(l) }

func (l Language) IsValid() bool {
	switch l {
	case LanguageEnglish, LanguageHindi:
		return true
	}
	return false
}

// Name returns the language name as Kaikki spells it in its "lang" fields.
func (l Language) Name() string {
	switch l {
	case LanguageEnglish:
		return "English"
	case LanguageHindi:
		return "Hindi"
	}
	return ""
}

// Counterpart returns the language that entries of l are translated into.
func (l Language) Counterpart() Language {
	if l == LanguageHindi {
		return LanguageEnglish
	}
	return LanguageHindi
}

// JoinLanguages renders languages as a comma-joined list of codes.
func JoinLanguages(langs []Language) string {
	codes := make([]string, len(langs))
	for i, l := range langs {
		codes[i] = string(l)
	}
	return strings.Join(codes, ",")
}

// ProcessedWord is the canonical word record produced by normalization and
// consumed by the store build.
type ProcessedWord struct {
	Headword      string              `json:"headword"`
	Language      Language            `json:"language"`
	PartOfSpeech  string              `json:"part_of_speech"`
	Definitions   []string            `json:"definitions"`
	Translations  map[string][]string `json:"translations"`
	Pronunciation *string             `json:"pronunciation"`
	Examples      []string            `json:"examples"`
	Etymology     *string             `json:"etymology"`
}

// IdentityKey identifies records that describe the same dictionary entry.
type IdentityKey struct {
	Headword     string
	Language     Language
	PartOfSpeech string
}

// Key returns the dedup identity of w.
func (w ProcessedWord) Key() IdentityKey {
	return IdentityKey{
		Headword:     FoldHeadword(w.Headword),
		Language:     w.Language,
		PartOfSpeech: w.PartOfSpeech,
	}
}

// Score is the information score: definitions plus translations across
// all target languages.
func (w ProcessedWord) Score() int {
	score := len(w.Definitions)
	for _, values := range w.Translations {
		score += len(values)
	}
	return score
}

// Validate reports whether w can be stored.
func (w ProcessedWord) Validate() error {
	var errs []FieldError
	if strings.TrimSpace(w.Headword) == "" {
		errs = append(errs, FieldError{Field: "headword", Message: "required"})
	}
	if !w.Language.IsValid() {
		errs = append(errs, FieldError{Field: "language", Message: "unsupported language " + string(w.Language)})
	}
	if len(w.Definitions) == 0 {
		errs = append(errs, FieldError{Field: "definitions", Message: "at least one definition is required"})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// StoreCounts summarizes the rows of a built dictionary store.
type StoreCounts struct {
	WordsByLanguage map[Language]int
	Words           int
	Definitions     int
	Translations    int
	Examples        int
}
