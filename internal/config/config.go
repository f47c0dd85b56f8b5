package config

// Config is the root application configuration.
type Config struct {
	Log       LogConfig       `yaml:"log"`
	Processor ProcessorConfig `yaml:"processor"`
	Store     StoreConfig     `yaml:"store"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// ProcessorConfig holds settings for the normalize and dedup stage.
// An empty source path disables that source.
type ProcessorConfig struct {
	EnglishPath string `yaml:"english_path" env:"PROCESSOR_ENGLISH_PATH" env-default:"data/english_wiktionary.jsonl"`
	HindiPath   string `yaml:"hindi_path"   env:"PROCESSOR_HINDI_PATH"   env-default:"data/hindi_wiktionary.jsonl"`
	OutputDir   string `yaml:"output_dir"   env:"PROCESSOR_OUTPUT_DIR"   env-default:"output"`
}

// StoreConfig holds settings for the SQLite store build.
type StoreConfig struct {
	Path         string `yaml:"path"          env:"STORE_PATH"          env-default:"output/dictionary.db"`
	InputPath    string `yaml:"input_path"    env:"STORE_INPUT_PATH"    env-default:"output/all_words.json"`
	Source       string `yaml:"source"        env:"STORE_SOURCE"        env-default:"kaikki.org (Wiktionary)"`
	SkipOptimize bool   `yaml:"skip_optimize" env:"STORE_SKIP_OPTIMIZE" env-default:"false"`
}

// SourcePath returns the configured JSONL path for lang, or "" if none.
func (c ProcessorConfig) SourcePath(lang string) string {
	switch lang {
	case "en":
		return c.EnglishPath
	case "hi":
		return c.HindiPath
	}
	return ""
}
