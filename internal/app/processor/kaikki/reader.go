package kaikki

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/heartmarshall/hindict/internal/domain"
)

// maxLineSize is the buffer size for bufio.Scanner (16 MB).
// Kaikki entries for common words can exceed 1 MB.
const maxLineSize = 16 << 20

// ReadFile streams the JSONL file at path, normalizing each line for lang
// and passing accepted records to fn in file order.
func (n *Normalizer) ReadFile(ctx context.Context, path string, lang domain.Language, fn func(domain.ProcessedWord) error) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return Stats{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return n.Read(ctx, f, lang, fn)
}

// Read streams JSONL from r. Malformed lines are counted and skipped;
// blank lines are ignored. An error from fn stops the read and is returned.
func (n *Normalizer) Read(ctx context.Context, r io.Reader, lang domain.Language, fn func(domain.ProcessedWord) error) (Stats, error) {
	var stats Stats

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.TotalLines++

		w, ok, err := n.NormalizeLine(line, lang)
		if err != nil {
			stats.MalformedLines++
			continue
		}
		if !ok {
			stats.Discarded++
			continue
		}

		stats.Accepted++
		if err := fn(w); err != nil {
			return stats, err
		}
	}

	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("scanner error: %w", err)
	}

	return stats, nil
}
