package builder

import (
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/heartmarshall/hindict/internal/domain"
)

// Report summarizes a store build.
type Report struct {
	Path    string
	BuildID string

	// Input is the number of records read from the intermediate file.
	Input    int
	Loaded   int
	Resolved int
	Skipped  int

	Counts    domain.StoreCounts
	SizeBytes int64
	Duration  time.Duration
}

// LogAttrs renders the report with human-readable numbers.
func (r Report) LogAttrs() []any {
	return []any{
		slog.String("path", r.Path),
		slog.String("build_id", r.BuildID),
		slog.String("english_words", humanize.Comma(int64(r.Counts.WordsByLanguage[domain.LanguageEnglish]))),
		slog.String("hindi_words", humanize.Comma(int64(r.Counts.WordsByLanguage[domain.LanguageHindi]))),
		slog.String("words", humanize.Comma(int64(r.Counts.Words))),
		slog.String("definitions", humanize.Comma(int64(r.Counts.Definitions))),
		slog.String("translations", humanize.Comma(int64(r.Counts.Translations))),
		slog.String("examples", humanize.Comma(int64(r.Counts.Examples))),
		slog.Int("skipped", r.Skipped),
		slog.String("size", humanize.Bytes(uint64(r.SizeBytes))),
		slog.Duration("duration", r.Duration),
	}
}
