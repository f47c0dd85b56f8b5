package builder

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/hindict/internal/app/wordfile"
	"github.com/heartmarshall/hindict/internal/config"
	"github.com/heartmarshall/hindict/internal/domain"
)

// SchemaVersion is stamped into the metadata "version" key.
const SchemaVersion = "1.0.0"

// buildingSuffix marks the file a build writes before it replaces the store.
const buildingSuffix = ".building"

// savepointName scopes the writes of a single record.
const savepointName = "word_record"

// Metadata keys written by every build.
const (
	MetaVersion   = "version"
	MetaCreatedAt = "created_at"
	MetaSource    = "source"
	MetaWordCount = "word_count"
	MetaLanguages = "languages"
	MetaBuildID   = "build_id"
)

// Builder runs the store build stage.
type Builder struct {
	log  *slog.Logger
	cfg  config.StoreConfig
	open Opener
	now  func() time.Time
}

// NewBuilder creates a new Builder. open creates the store file.
func NewBuilder(log *slog.Logger, cfg config.StoreConfig, open Opener) *Builder {
	return &Builder{
		log:  log,
		cfg:  cfg,
		open: open,
		now:  time.Now,
	}
}

// Run builds the store at cfg.Path from the intermediate file at
// cfg.InputPath.
//
// The input is read before any store file is touched; a missing or empty
// input fails with domain.ErrMissingPrerequisite. The store is written to a
// sibling ".building" file and renamed over cfg.Path only after loading,
// metadata and optimization succeed, so a failed build leaves any previous
// store in place.
func (b *Builder) Run(ctx context.Context) (Report, error) {
	start := time.Now()
	report := Report{Path: b.cfg.Path}

	words, err := wordfile.Read(b.cfg.InputPath)
	if err != nil {
		return report, fmt.Errorf("read input: %w", err)
	}
	report.Input = len(words)
	b.log.Info("loaded intermediate file",
		slog.String("path", b.cfg.InputPath),
		slog.Int("words", len(words)),
	)

	tmp := b.cfg.Path + buildingSuffix
	if err := os.MkdirAll(filepath.Dir(b.cfg.Path), 0o755); err != nil {
		return report, fmt.Errorf("create store dir: %w", err)
	}
	if err := removeIfExists(tmp); err != nil {
		return report, fmt.Errorf("remove stale build file: %w", err)
	}

	st, err := b.open(ctx, tmp)
	if err != nil {
		_ = removeIfExists(tmp)
		return report, fmt.Errorf("create store: %w", err)
	}

	if err := b.build(ctx, st, words, &report); err != nil {
		_ = st.Close()
		_ = removeIfExists(tmp)
		return report, err
	}

	if err := st.Close(); err != nil {
		_ = removeIfExists(tmp)
		return report, fmt.Errorf("close store: %w", err)
	}
	if err := os.Rename(tmp, b.cfg.Path); err != nil {
		_ = removeIfExists(tmp)
		return report, fmt.Errorf("replace store: %w", err)
	}

	if info, err := os.Stat(b.cfg.Path); err == nil {
		report.SizeBytes = info.Size()
	}
	report.Duration = time.Since(start)

	b.log.Info("store build completed", report.LogAttrs()...)
	return report, nil
}

// build runs the load, metadata and optimize steps against an open store.
func (b *Builder) build(ctx context.Context, st Store, words []domain.ProcessedWord, report *Report) error {
	loadStart := time.Now()
	if err := st.RunInTx(ctx, func(ctx context.Context) error {
		return b.load(ctx, st, words, report)
	}); err != nil {
		return fmt.Errorf("load words: %w", err)
	}
	b.log.Info("words loaded",
		slog.Int("loaded", report.Loaded),
		slog.Int("resolved", report.Resolved),
		slog.Int("skipped", report.Skipped),
		slog.Duration("duration", time.Since(loadStart)),
	)

	counts, err := st.Counts(ctx)
	if err != nil {
		return fmt.Errorf("count rows: %w", err)
	}
	report.Counts = counts

	meta := b.metadata(counts)
	if err := st.UpsertMetadata(ctx, meta); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	report.BuildID = meta[MetaBuildID]

	if b.cfg.SkipOptimize {
		b.log.Info("optimize skipped")
		return nil
	}
	optStart := time.Now()
	if err := st.Optimize(ctx); err != nil {
		return fmt.Errorf("optimize store: %w", err)
	}
	b.log.Info("store optimized", slog.Duration("duration", time.Since(optStart)))
	return nil
}

// load writes every word in its own savepoint. A failing record is logged
// and skipped; only context cancellation or a broken transaction aborts.
func (b *Builder) load(ctx context.Context, st Store, words []domain.ProcessedWord, report *Report) error {
	for _, w := range words {
		if err := ctx.Err(); err != nil {
			return err
		}

		var created bool
		err := st.RunInSavepoint(ctx, savepointName, func(ctx context.Context) error {
			var err error
			created, err = loadWord(ctx, st, w)
			return err
		})

		switch {
		case err == nil && created:
			report.Loaded++
		case err == nil:
			report.Resolved++
			b.log.Debug("duplicate word resolved to existing row",
				slog.String("word", w.Headword),
				slog.String("language", string(w.Language)),
				slog.String("pos", w.PartOfSpeech),
			)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return err
		default:
			report.Skipped++
			b.log.Warn("skipping word",
				slog.String("word", w.Headword),
				slog.String("language", string(w.Language)),
				slog.String("error", err.Error()),
			)
		}
	}
	return nil
}

// loadWord validates w, resolves its word row and inserts its children.
func loadWord(ctx context.Context, st Store, w domain.ProcessedWord) (bool, error) {
	if err := w.Validate(); err != nil {
		return false, err
	}

	id, created, err := st.CreateOrGetWord(ctx, w)
	if err != nil {
		return false, err
	}
	if err := st.InsertDefinitions(ctx, id, w.Definitions); err != nil {
		return false, err
	}
	if err := st.InsertTranslations(ctx, id, w.Translations); err != nil {
		return false, err
	}
	if err := st.InsertExamples(ctx, id, w.Examples); err != nil {
		return false, err
	}
	return created, nil
}

func (b *Builder) metadata(counts domain.StoreCounts) map[string]string {
	return map[string]string{
		MetaVersion:   SchemaVersion,
		MetaCreatedAt: b.now().UTC().Format(time.RFC3339),
		MetaSource:    b.cfg.Source,
		MetaWordCount: strconv.Itoa(counts.Words),
		MetaLanguages: domain.JoinLanguages(domain.SupportedLanguages()),
		MetaBuildID:   uuid.NewString(),
	}
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
