// Package wordfile reads and writes the intermediate JSON array of
// processed words exchanged between the processing and build stages.
package wordfile

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/heartmarshall/hindict/internal/domain"
)

// Intermediate file names written by the processing stage.
const (
	EnglishFile  = "english_processed.json"
	HindiFile    = "hindi_processed.json"
	CombinedFile = "all_words.json"
)

// Write stores words at path as an indented JSON array. Non-ASCII text is
// written as is. The file is replaced atomically.
func Write(path string, words []domain.ProcessedWord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	bw := bufio.NewWriter(tmp)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(canonical(words)); err != nil {
		tmp.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// Read loads the words stored at path. A missing file, an empty file or an
// empty array is reported as domain.ErrMissingPrerequisite; undecodable content as
// domain.ErrMalformedInput.
func Read(path string) ([]domain.ProcessedWord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s not found", domain.ErrMissingPrerequisite, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", domain.ErrMissingPrerequisite, path)
	}

	var words []domain.ProcessedWord
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", domain.ErrMalformedInput, path, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: %s contains no words", domain.ErrMissingPrerequisite, path)
	}

	return canonical(words), nil
}

// canonical returns a copy of words with nil collections replaced by
// empty ones, so that the serialized form always carries arrays and
// objects, never null.
func canonical(words []domain.ProcessedWord) []domain.ProcessedWord {
	out := make([]domain.ProcessedWord, len(words))
	for i, w := range words {
		if w.Definitions == nil {
			w.Definitions = []string{}
		}
		if w.Examples == nil {
			w.Examples = []string{}
		}
		translations := make(map[string][]string, len(w.Translations))
		for k, v := range w.Translations {
			if v == nil {
				v = []string{}
			}
			translations[k] = v
		}
		w.Translations = translations
		out[i] = w
	}
	return out
}

// LanguageFile returns the per-language intermediate file name.
func LanguageFile(lang domain.Language) string {
	if lang == domain.LanguageHindi {
		return HindiFile
	}
	return EnglishFile
}
