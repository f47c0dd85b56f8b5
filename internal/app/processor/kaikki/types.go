// Package kaikki turns Kaikki (Wiktionary extract) JSONL entries into
// canonical word records. Normalization is pure; the reader streams a file
// and hands each accepted record to a callback. No database dependencies.
package kaikki

// Stats holds reader statistics for logging.
type Stats struct {
	TotalLines     int
	MalformedLines int
	Discarded      int
	Accepted       int
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.TotalLines += o.TotalLines
	s.MalformedLines += o.MalformedLines
	s.Discarded += o.Discarded
	s.Accepted += o.Accepted
}

// kaikkiEntry mirrors the Kaikki JSONL structure (only fields we need).
type kaikkiEntry struct {
	Word          string              `json:"word"`
	Lang          string              `json:"lang"`
	LangCode      string              `json:"lang_code"`
	POS           string              `json:"pos"`
	Senses        []kaikkiSense       `json:"senses"`
	Translations  []kaikkiTranslation `json:"translations"`
	Sounds        []kaikkiSound       `json:"sounds"`
	EtymologyText *string             `json:"etymology_text"`
}

// kaikkiSense mirrors one sense from a Kaikki entry.
type kaikkiSense struct {
	Glosses  []string        `json:"glosses"`
	Examples []kaikkiExample `json:"examples"`
}

// kaikkiExample mirrors an example from Kaikki.
type kaikkiExample struct {
	Text string `json:"text"`
}

// kaikkiTranslation mirrors a translation from Kaikki.
type kaikkiTranslation struct {
	Lang string `json:"lang"`
	Code string `json:"code"`
	Word string `json:"word"`
}

// kaikkiSound mirrors a sound entry from Kaikki.
type kaikkiSound struct {
	IPA string `json:"ipa"`
}
