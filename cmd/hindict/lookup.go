package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/hindict/internal/adapter/sqlite/store"
	"github.com/heartmarshall/hindict/internal/domain"
)

func newLookupCmd(opts *rootOptions) *cobra.Command {
	var (
		db    string
		lang  string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "lookup WORD...",
		Short: "Search a built store and print the matching entries",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := opts.cfg.Store.Path
			if cmd.Flags().Changed("db") {
				path = db
			}

			s, err := store.Open(ctx, path)
			if err != nil {
				return err
			}
			defer s.Close()

			query := strings.Join(args, " ")
			matches, err := s.Search(ctx, query, domain.Language(lang), limit)
			if err != nil {
				return err
			}
			if len(matches) == 0 {
				return fmt.Errorf("lookup %q: %w", query, domain.ErrNotFound)
			}

			out := cmd.OutOrStdout()
			for i, m := range matches {
				w, err := s.GetByID(ctx, m.ID)
				if err != nil {
					return err
				}
				if i > 0 {
					fmt.Fprintln(out)
				}
				renderWord(out, w)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&db, "db", "", "SQLite store path")
	cmd.Flags().StringVar(&lang, "lang", "", "restrict to a language: en or hi")
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of entries")
	return cmd
}

// renderWord prints w as a plain-text dictionary entry.
func renderWord(out io.Writer, w *domain.ProcessedWord) {
	head := fmt.Sprintf("%s [%s] %s", w.Headword, w.Language, w.PartOfSpeech)
	if w.Pronunciation != nil {
		head += "  " + *w.Pronunciation
	}
	fmt.Fprintln(out, head)

	for i, d := range w.Definitions {
		fmt.Fprintf(out, "  %d. %s\n", i+1, d)
	}

	targets := make([]string, 0, len(w.Translations))
	for t := range w.Translations {
		targets = append(targets, t)
	}
	sort.Strings(targets)
	for _, t := range targets {
		if len(w.Translations[t]) == 0 {
			continue
		}
		fmt.Fprintf(out, "  %s: %s\n", t, strings.Join(w.Translations[t], ", "))
	}

	for _, e := range w.Examples {
		fmt.Fprintf(out, "  - %s\n", e)
	}
	if w.Etymology != nil {
		fmt.Fprintf(out, "  etymology: %s\n", *w.Etymology)
	}
}
