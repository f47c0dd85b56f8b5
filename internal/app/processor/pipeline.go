package processor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/heartmarshall/hindict/internal/app/processor/kaikki"
	"github.com/heartmarshall/hindict/internal/app/wordfile"
	"github.com/heartmarshall/hindict/internal/config"
	"github.com/heartmarshall/hindict/internal/domain"
)

// SourceResult holds the outcome of reading one source file.
type SourceResult struct {
	Language domain.Language
	Path     string
	Stats    kaikki.Stats
	Skipped  bool
	Duration time.Duration
}

// Result summarizes a processing run.
type Result struct {
	Sources     []SourceResult
	Read        kaikki.Stats
	Total       int
	Unique      int
	PerLanguage map[domain.Language]int
	Files       []string
}

// Duplicates returns the number of records collapsed by deduplication.
func (r Result) Duplicates() int { return r.Total - r.Unique }

// Pipeline normalizes every configured source, deduplicates the combined
// records and writes the intermediate files.
type Pipeline struct {
	log        *slog.Logger
	cfg        config.ProcessorConfig
	normalizer *kaikki.Normalizer
}

// NewPipeline creates a new Pipeline.
func NewPipeline(log *slog.Logger, cfg config.ProcessorConfig) *Pipeline {
	return &Pipeline{
		log:        log,
		cfg:        cfg,
		normalizer: kaikki.NewNormalizer(kaikki.DefaultMaxExamples),
	}
}

// Run executes the processing stage. Sources are read in
// domain.SupportedLanguages order; a missing source file is skipped.
// If no record survives normalization, Run returns
// domain.ErrMissingPrerequisite and writes nothing.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	result := Result{PerLanguage: make(map[domain.Language]int)}
	var all []domain.ProcessedWord

	for _, lang := range domain.SupportedLanguages() {
		src, err := p.runSource(ctx, lang, &all)
		result.Sources = append(result.Sources, src)
		result.Read.Add(src.Stats)
		if err != nil {
			return result, fmt.Errorf("process %s source: %w", lang, err)
		}
	}

	result.Total = len(all)
	if result.Total == 0 {
		return result, fmt.Errorf("%w: no words found in the configured sources", domain.ErrMissingPrerequisite)
	}

	unique := Deduplicate(all)
	result.Unique = len(unique)
	p.log.Info("deduplicated",
		slog.Int("records", result.Total),
		slog.Int("unique", result.Unique),
		slog.Int("duplicates", result.Duplicates()),
	)

	groups := SplitByLanguage(unique)
	for _, lang := range domain.SupportedLanguages() {
		result.PerLanguage[lang] = len(groups[lang])
		if err := p.write(wordfile.LanguageFile(lang), groups[lang], &result); err != nil {
			return result, err
		}
	}
	if err := p.write(wordfile.CombinedFile, unique, &result); err != nil {
		return result, err
	}

	p.log.Info("processing completed",
		slog.Int("english_words", result.PerLanguage[domain.LanguageEnglish]),
		slog.Int("hindi_words", result.PerLanguage[domain.LanguageHindi]),
		slog.Int("total", result.Unique),
		slog.Int("lines", result.Read.TotalLines),
		slog.Int("discarded", result.Read.Discarded),
		slog.Int("malformed", result.Read.MalformedLines),
	)
	return result, nil
}

// runSource normalizes one source file and appends accepted records to all.
func (p *Pipeline) runSource(ctx context.Context, lang domain.Language, all *[]domain.ProcessedWord) (src SourceResult, err error) {
	src = SourceResult{Language: lang, Path: p.cfg.SourcePath(string(lang))}
	start := time.Now()
	defer func() { src.Duration = time.Since(start) }()

	if src.Path == "" {
		src.Skipped = true
		p.log.Info("source not configured, skipping", slog.String("language", string(lang)))
		return src, nil
	}
	if _, statErr := os.Stat(src.Path); errors.Is(statErr, fs.ErrNotExist) {
		src.Skipped = true
		p.log.Warn("source file not found, skipping",
			slog.String("language", string(lang)),
			slog.String("path", src.Path),
		)
		return src, nil
	}

	p.log.Info("starting source", slog.String("language", string(lang)), slog.String("path", src.Path))

	stats, err := p.normalizer.ReadFile(ctx, src.Path, lang, func(w domain.ProcessedWord) error {
		*all = append(*all, w)
		return nil
	})
	src.Stats = stats
	if err != nil {
		return src, err
	}

	p.log.Info("source completed",
		slog.String("language", string(lang)),
		slog.Int("lines", stats.TotalLines),
		slog.Int("accepted", stats.Accepted),
		slog.Int("discarded", stats.Discarded),
		slog.Int("malformed", stats.MalformedLines),
		slog.Duration("duration", time.Since(start)),
	)
	return src, nil
}

func (p *Pipeline) write(name string, words []domain.ProcessedWord, result *Result) error {
	path := filepath.Join(p.cfg.OutputDir, name)
	if err := wordfile.Write(path, words); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	result.Files = append(result.Files, path)
	p.log.Info("wrote intermediate file", slog.String("path", path), slog.Int("words", len(words)))
	return nil
}
