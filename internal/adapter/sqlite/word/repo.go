// Package word implements the dictionary word repository on SQLite.
// Writes go through the transaction carried by the context when there is one.
package word

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/heartmarshall/hindict/internal/adapter/sqlite"
	"github.com/heartmarshall/hindict/internal/domain"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 200
)

// Repo provides word persistence backed by SQLite.
type Repo struct {
	db *sql.DB
}

// New creates a new word repository.
func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Match is a single full-text search hit.
type Match struct {
	ID           int64
	Headword     string
	Language     domain.Language
	PartOfSpeech string
}

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

// CreateOrGetWord inserts the word row for w and returns its id. When a row
// with the same (word, language_code, pos) already exists its id is returned
// with created=false and the existing row is left unchanged.
func (r *Repo) CreateOrGetWord(ctx context.Context, w domain.ProcessedWord) (int64, bool, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)
	pos := partOfSpeech(w.PartOfSpeech)

	query, args, err := sqlite.Builder().
		Insert("words").
		Columns("word", "language_code", "pos", "pronunciation_ipa", "etymology").
		Values(w.Headword, string(w.Language), pos, nullable(w.Pronunciation), nullable(w.Etymology)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, false, fmt.Errorf("build insert word: %w", err)
	}

	var id int64
	err = q.QueryRowContext(ctx, query, args...).Scan(&id)
	if err == nil {
		return id, true, nil
	}
	if !sqlite.IsUniqueViolation(err) {
		return 0, false, mapError(err, "word", w.Headword)
	}

	id, err = r.idByKey(ctx, q, w.Headword, w.Language, pos)
	if err != nil {
		return 0, false, err
	}
	return id, false, nil
}

func (r *Repo) idByKey(ctx context.Context, q sqlite.Querier, headword string, lang domain.Language, pos string) (int64, error) {
	query, args, err := sqlite.Builder().
		Select("id").
		From("words").
		Where(squirrel.Eq{"word": headword, "language_code": string(lang), "pos": pos}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build select word id: %w", err)
	}

	var id int64
	if err := q.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, mapError(err, "word", headword)
	}
	return id, nil
}

// InsertDefinitions inserts defs for wordID; order_index is the position in defs.
func (r *Repo) InsertDefinitions(ctx context.Context, wordID int64, defs []string) error {
	if len(defs) == 0 {
		return nil
	}

	b := sqlite.Builder().Insert("definitions").Columns("word_id", "definition", "order_index")
	for i, d := range defs {
		b = b.Values(wordID, d, i)
	}
	return r.exec(ctx, b, "definitions", wordID)
}

// InsertTranslations inserts one row per (target language, translation).
// Target languages are written in sorted order so row ids are reproducible.
func (r *Repo) InsertTranslations(ctx context.Context, wordID int64, translations map[string][]string) error {
	targets := make([]string, 0, len(translations))
	for target, values := range translations {
		if len(values) > 0 {
			targets = append(targets, target)
		}
	}
	if len(targets) == 0 {
		return nil
	}
	sort.Strings(targets)

	b := sqlite.Builder().Insert("translations").Columns("source_word_id", "target_language_code", "translation")
	for _, target := range targets {
		for _, v := range translations[target] {
			b = b.Values(wordID, target, v)
		}
	}
	return r.exec(ctx, b, "translations", wordID)
}

// InsertExamples inserts examples for wordID in the given order.
func (r *Repo) InsertExamples(ctx context.Context, wordID int64, examples []string) error {
	if len(examples) == 0 {
		return nil
	}

	b := sqlite.Builder().Insert("examples").Columns("word_id", "example_text")
	for _, e := range examples {
		b = b.Values(wordID, e)
	}
	return r.exec(ctx, b, "examples", wordID)
}

func (r *Repo) exec(ctx context.Context, b squirrel.InsertBuilder, entity string, wordID int64) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build insert %s: %w", entity, err)
	}
	if _, err := sqlite.QuerierFromCtx(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return mapError(err, entity, fmt.Sprintf("word_id=%d", wordID))
	}
	return nil
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

// Counts returns row counts for the dictionary tables.
func (r *Repo) Counts(ctx context.Context) (domain.StoreCounts, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)
	counts := domain.StoreCounts{WordsByLanguage: make(map[domain.Language]int)}

	query, args, err := sqlite.Builder().
		Select("language_code", "COUNT(*)").
		From("words").
		GroupBy("language_code").
		OrderBy("language_code").
		ToSql()
	if err != nil {
		return counts, fmt.Errorf("build count words: %w", err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return counts, fmt.Errorf("count words: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			lang string
			n    int
		)
		if err := rows.Scan(&lang, &n); err != nil {
			return counts, fmt.Errorf("scan word count: %w", err)
		}
		counts.WordsByLanguage[domain.Language(lang)] = n
		counts.Words += n
	}
	if err := rows.Err(); err != nil {
		return counts, fmt.Errorf("count words: %w", err)
	}

	for _, c := range []struct {
		table string
		dst   *int
	}{
		{"definitions", &counts.Definitions},
		{"translations", &counts.Translations},
		{"examples", &counts.Examples},
	} {
		query, args, err := sqlite.Builder().Select("COUNT(*)").From(c.table).ToSql()
		if err != nil {
			return counts, fmt.Errorf("build count %s: %w", c.table, err)
		}
		if err := q.QueryRowContext(ctx, query, args...).Scan(c.dst); err != nil {
			return counts, fmt.Errorf("count %s: %w", c.table, err)
		}
	}

	return counts, nil
}

// Search finds words whose headword matches text through the full-text
// index. text is matched as a phrase; lang filters by language when set.
// Results are in FTS rank order.
func (r *Repo) Search(ctx context.Context, text string, lang domain.Language, limit int) ([]Match, error) {
	text = domain.NormalizeQuery(text)
	if text == "" {
		return nil, domain.NewValidationError("query", "required")
	}
	if lang != "" && !lang.IsValid() {
		return nil, domain.NewValidationError("language", "unsupported language "+string(lang))
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	limit = min(limit, maxSearchLimit)

	b := sqlite.Builder().
		Select("w.id", "w.word", "w.language_code", "COALESCE(w.pos, '')").
		From("words_fts").
		Join("words w ON w.id = words_fts.rowid").
		Where("words_fts MATCH ?", phrase(text)).
		OrderBy("rank", "w.id").
		Limit(uint64(limit))
	if lang != "" {
		b = b.Where(squirrel.Eq{"w.language_code": string(lang)})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search: %w", err)
	}

	rows, err := sqlite.QuerierFromCtx(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", text, err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var (
			m    Match
			code string
		)
		if err := rows.Scan(&m.ID, &m.Headword, &code, &m.PartOfSpeech); err != nil {
			return nil, fmt.Errorf("scan search match: %w", err)
		}
		m.Language = domain.Language(code)
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search %q: %w", text, err)
	}
	return matches, nil
}

// GetByID reassembles the stored word with its definitions, translations
// and examples.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.ProcessedWord, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)
	key := fmt.Sprintf("id=%d", id)

	query, args, err := sqlite.Builder().
		Select("word", "language_code", "COALESCE(pos, '')", "pronunciation_ipa", "etymology").
		From("words").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get word: %w", err)
	}

	var (
		w             domain.ProcessedWord
		code          string
		pronunciation sql.NullString
		etymology     sql.NullString
	)
	if err := q.QueryRowContext(ctx, query, args...).Scan(&w.Headword, &code, &w.PartOfSpeech, &pronunciation, &etymology); err != nil {
		return nil, mapError(err, "word", key)
	}
	w.Language = domain.Language(code)
	if pronunciation.Valid {
		w.Pronunciation = &pronunciation.String
	}
	if etymology.Valid {
		w.Etymology = &etymology.String
	}

	w.Definitions, err = r.column(ctx, q, sqlite.Builder().
		Select("definition").From("definitions").
		Where(squirrel.Eq{"word_id": id}).
		OrderBy("order_index", "id"))
	if err != nil {
		return nil, fmt.Errorf("word %s: definitions: %w", key, err)
	}

	w.Examples, err = r.column(ctx, q, sqlite.Builder().
		Select("example_text").From("examples").
		Where(squirrel.Eq{"word_id": id}).
		OrderBy("id"))
	if err != nil {
		return nil, fmt.Errorf("word %s: examples: %w", key, err)
	}
	if w.Examples == nil {
		w.Examples = []string{}
	}

	w.Translations, err = r.translations(ctx, q, id)
	if err != nil {
		return nil, fmt.Errorf("word %s: translations: %w", key, err)
	}

	return &w, nil
}

func (r *Repo) translations(ctx context.Context, q sqlite.Querier, id int64) (map[string][]string, error) {
	query, args, err := sqlite.Builder().
		Select("target_language_code", "translation").
		From("translations").
		Where(squirrel.Eq{"source_word_id": id}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var target, value string
		if err := rows.Scan(&target, &value); err != nil {
			return nil, err
		}
		out[target] = append(out[target], value)
	}
	return out, rows.Err()
}

func (r *Repo) column(ctx context.Context, q sqlite.Querier, b squirrel.SelectBuilder) ([]string, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// phrase quotes text as a single FTS5 phrase so query syntax in user input
// is matched literally.
func phrase(text string) string {
	return `"` + strings.ReplaceAll(text, `"`, `""`) + `"`
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func partOfSpeech(pos string) string {
	if pos == "" {
		return domain.DefaultPartOfSpeech
	}
	return pos
}

func mapError(err error, entity, key string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, key, err)
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, key, domain.ErrNotFound)
	}

	switch {
	case sqlite.IsUniqueViolation(err):
		return fmt.Errorf("%s %s: %w", entity, key, domain.ErrAlreadyExists)
	case sqlite.IsForeignKeyViolation(err):
		return fmt.Errorf("%s %s: %w", entity, key, domain.ErrNotFound)
	case sqlite.IsCheckViolation(err):
		return fmt.Errorf("%s %s: %w", entity, key, domain.ErrValidation)
	}

	return fmt.Errorf("%s %s: %w", entity, key, err)
}
