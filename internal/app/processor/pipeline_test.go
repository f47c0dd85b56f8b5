package processor

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/hindict/internal/app/wordfile"
	"github.com/heartmarshall/hindict/internal/config"
	"github.com/heartmarshall/hindict/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

const englishJSONL = `{"word":"bank","lang_code":"en","pos":"noun","senses":[{"glosses":["A money place."]}]}
{"word":"bank","lang_code":"en","pos":"noun","senses":[{"glosses":["A money place."]},{"glosses":["A river edge."]}],"translations":[{"lang":"Hindi","word":"बैंक"}]}
{"word":"house","lang_code":"en","pos":"noun","senses":[{"glosses":["A dwelling."]}],"translations":[{"code":"hi","word":"घर"}]}
{broken
{"word":"maison","lang_code":"fr","pos":"noun","senses":[{"glosses":["house"]}]}
`

const hindiJSONL = `{"word":"ghar","lang_code":"hi","pos":"noun","senses":[{"glosses":["house"]}],"translations":[{"lang":"English","word":"house"}]}
{"word":"ghar","lang_code":"hi","pos":"noun","senses":[{"glosses":["home"]}]}
{"word":"xyz","lang_code":"hi","pos":"noun","senses":[]}
`

func writeSource(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestPipeline_Run(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := config.ProcessorConfig{
		EnglishPath: writeSource(t, dir, "english_wiktionary.jsonl", englishJSONL),
		HindiPath:   writeSource(t, dir, "hindi_wiktionary.jsonl", hindiJSONL),
		OutputDir:   filepath.Join(dir, "output"),
	}

	result, err := NewPipeline(testLogger(), cfg).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Sources, 2)
	en, hi := result.Sources[0], result.Sources[1]
	assert.Equal(t, domain.LanguageEnglish, en.Language)
	assert.Equal(t, 5, en.Stats.TotalLines)
	assert.Equal(t, 1, en.Stats.MalformedLines)
	assert.Equal(t, 1, en.Stats.Discarded)
	assert.Equal(t, 3, en.Stats.Accepted)
	assert.Equal(t, domain.LanguageHindi, hi.Language)
	assert.Equal(t, 2, hi.Stats.Accepted)

	assert.Equal(t, en.Stats.TotalLines+hi.Stats.TotalLines, result.Read.TotalLines)
	assert.Equal(t, en.Stats.MalformedLines+hi.Stats.MalformedLines, result.Read.MalformedLines)
	assert.Equal(t, en.Stats.Discarded+hi.Stats.Discarded, result.Read.Discarded)
	assert.Equal(t, 5, result.Read.Accepted)

	assert.Equal(t, 5, result.Total)
	assert.Equal(t, 3, result.Unique)
	assert.Equal(t, 2, result.Duplicates())
	assert.Equal(t, 2, result.PerLanguage[domain.LanguageEnglish])
	assert.Equal(t, 1, result.PerLanguage[domain.LanguageHindi])
	assert.Len(t, result.Files, 3)

	all, err := wordfile.Read(filepath.Join(cfg.OutputDir, wordfile.CombinedFile))
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "bank", all[0].Headword)
	assert.Len(t, all[0].Definitions, 2, "richer bank entry must win")
	assert.Equal(t, "house", all[1].Headword)
	assert.Equal(t, "ghar", all[2].Headword)
	assert.Equal(t, []string{"house"}, all[2].Definitions, "tie keeps the first ghar entry")

	english, err := wordfile.Read(filepath.Join(cfg.OutputDir, wordfile.EnglishFile))
	require.NoError(t, err)
	assert.Len(t, english, 2)

	hindi, err := wordfile.Read(filepath.Join(cfg.OutputDir, wordfile.HindiFile))
	require.NoError(t, err)
	require.Len(t, hindi, 1)
	assert.Equal(t, map[string][]string{"en": {"house"}}, hindi[0].Translations)
}

func TestPipeline_MissingSourceSkipped(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := config.ProcessorConfig{
		EnglishPath: writeSource(t, dir, "en.jsonl", englishJSONL),
		HindiPath:   filepath.Join(dir, "absent.jsonl"),
		OutputDir:   filepath.Join(dir, "out"),
	}

	result, err := NewPipeline(testLogger(), cfg).Run(context.Background())
	require.NoError(t, err)

	assert.False(t, result.Sources[0].Skipped)
	assert.True(t, result.Sources[1].Skipped)
	assert.Equal(t, 0, result.PerLanguage[domain.LanguageHindi])

	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, wordfile.HindiFile))
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(string(data)), "empty language file is still written")
}

func TestPipeline_KeepsThreeExamples(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	line := `{"word":"run","lang_code":"en","pos":"verb","senses":[` +
		`{"glosses":["To move fast."],"examples":[{"text":"one"},{"text":"two"}]},` +
		`{"glosses":["To operate."],"examples":[{"text":"three"},{"text":"four"},{"text":"five"}]}]}` + "\n"
	cfg := config.ProcessorConfig{
		EnglishPath: writeSource(t, dir, "en.jsonl", line),
		OutputDir:   filepath.Join(dir, "out"),
	}

	_, err := NewPipeline(testLogger(), cfg).Run(context.Background())
	require.NoError(t, err)

	all, err := wordfile.Read(filepath.Join(cfg.OutputDir, wordfile.CombinedFile))
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, []string{"one", "two", "three"}, all[0].Examples)
}

func TestPipeline_NoWordsIsMissingPrerequisite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	cfg := config.ProcessorConfig{
		EnglishPath: writeSource(t, dir, "en.jsonl", `{"word":"maison","lang_code":"fr","senses":[{"glosses":["house"]}]}`+"\n"),
		HindiPath:   filepath.Join(dir, "absent.jsonl"),
		OutputDir:   out,
	}

	_, err := NewPipeline(testLogger(), cfg).Run(context.Background())
	require.ErrorIs(t, err, domain.ErrMissingPrerequisite)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "nothing may be written when no words were found")
}

func TestPipeline_Canceled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := config.ProcessorConfig{
		EnglishPath: writeSource(t, dir, "en.jsonl", englishJSONL),
		OutputDir:   filepath.Join(dir, "out"),
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPipeline(testLogger(), cfg).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
