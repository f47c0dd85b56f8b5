package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
log:
  level: "debug"
  format: "text"

processor:
  english_path: "raw/en.jsonl"
  hindi_path: "raw/hi.jsonl"
  output_dir: "build"

store:
  path: "build/dict.db"
  input_path: "build/all_words.json"
  source: "test source"
  skip_optimize: true
`

// validConfig returns a Config that passes validation.
func validConfig() Config {
	return Config{
		Log: LogConfig{Level: "info", Format: "json"},
		Processor: ProcessorConfig{
			EnglishPath: "data/english_wiktionary.jsonl",
			HindiPath:   "data/hindi_wiktionary.jsonl",
			OutputDir:   "output",
		},
		Store: StoreConfig{
			Path:      "output/dictionary.db",
			InputPath: "output/all_words.json",
			Source:    "kaikki.org (Wiktionary)",
		},
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("log = %+v, want debug/text", cfg.Log)
	}
	if cfg.Processor.EnglishPath != "raw/en.jsonl" {
		t.Errorf("processor.english_path = %q", cfg.Processor.EnglishPath)
	}
	if cfg.Processor.HindiPath != "raw/hi.jsonl" {
		t.Errorf("processor.hindi_path = %q", cfg.Processor.HindiPath)
	}
	if cfg.Processor.OutputDir != "build" {
		t.Errorf("processor.output_dir = %q", cfg.Processor.OutputDir)
	}
	if cfg.Store.Path != "build/dict.db" || cfg.Store.InputPath != "build/all_words.json" {
		t.Errorf("store paths = %q, %q", cfg.Store.Path, cfg.Store.InputPath)
	}
	if cfg.Store.Source != "test source" {
		t.Errorf("store.source = %q", cfg.Store.Source)
	}
	if !cfg.Store.SkipOptimize {
		t.Error("store.skip_optimize = false, want true")
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("STORE_PATH", "elsewhere.db")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Store.Path != "elsewhere.db" {
		t.Errorf("store.path = %q, want elsewhere.db (ENV override)", cfg.Store.Path)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q (ENV override)", cfg.Log.Level, "warn")
	}
}

func TestLoad_NoFile_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Processor.EnglishPath != "data/english_wiktionary.jsonl" {
		t.Errorf("processor.english_path = %q (default)", cfg.Processor.EnglishPath)
	}
	if cfg.Store.Path != "output/dictionary.db" {
		t.Errorf("store.path = %q (default)", cfg.Store.Path)
	}
	if cfg.Store.InputPath != "output/all_words.json" {
		t.Errorf("store.input_path = %q (default)", cfg.Store.InputPath)
	}
	if cfg.Store.Source != "kaikki.org (Wiktionary)" {
		t.Errorf("store.source = %q (default)", cfg.Store.Source)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("log.format = %q, want json (default)", cfg.Log.Format)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Fatal("expected error for missing explicit config path")
	}

	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for missing CONFIG_PATH file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `{{{invalid yaml`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_SingleSourceAllowed(t *testing.T) {
	cfg := validConfig()
	cfg.Processor.HindiPath = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_NoSources(t *testing.T) {
	cfg := validConfig()
	cfg.Processor.EnglishPath = ""
	cfg.Processor.HindiPath = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when no source is configured")
	}
}

func TestValidate_OutputDirEmpty(t *testing.T) {
	cfg := validConfig()
	cfg.Processor.OutputDir = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty output_dir")
	}
}

func TestValidate_StorePathEqualsInput(t *testing.T) {
	cfg := validConfig()
	cfg.Store.Path = "output/./all_words.json"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when store path equals input path")
	}
}

func TestProcessorConfig_SourcePath(t *testing.T) {
	cfg := validConfig()
	if got := cfg.Processor.SourcePath("en"); got != "data/english_wiktionary.jsonl" {
		t.Errorf("SourcePath(en) = %q", got)
	}
	if got := cfg.Processor.SourcePath("hi"); got != "data/hindi_wiktionary.jsonl" {
		t.Errorf("SourcePath(hi) = %q", got)
	}
	if got := cfg.Processor.SourcePath("fr"); got != "" {
		t.Errorf("SourcePath(fr) = %q, want empty", got)
	}
}
