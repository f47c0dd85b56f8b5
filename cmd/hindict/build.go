package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/hindict/internal/adapter/sqlite/store"
	"github.com/heartmarshall/hindict/internal/app/builder"
)

// Compile-time interface assertion.
var _ builder.Store = (*store.Store)(nil)

func createStore(ctx context.Context, path string) (builder.Store, error) {
	s, err := store.Create(ctx, path)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func newBuildCmd(opts *rootOptions) *cobra.Command {
	var (
		input, db, source string
		skipOptimize      bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Load the combined intermediate file into a fresh SQLite store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := opts.cfg.Store
			if cmd.Flags().Changed("input") {
				cfg.InputPath = input
			}
			if cmd.Flags().Changed("db") {
				cfg.Path = db
			}
			if cmd.Flags().Changed("source") {
				cfg.Source = source
			}
			if cmd.Flags().Changed("skip-optimize") {
				cfg.SkipOptimize = skipOptimize
			}
			opts.cfg.Store = cfg
			if err := opts.cfg.Validate(); err != nil {
				return fmt.Errorf("config: %w", err)
			}

			_, err := builder.NewBuilder(opts.log, cfg, createStore).Run(cmd.Context())
			return err
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "combined intermediate file (all_words.json)")
	cmd.Flags().StringVar(&db, "db", "", "output SQLite store path")
	cmd.Flags().StringVar(&source, "source", "", "provenance recorded in the store metadata")
	cmd.Flags().BoolVar(&skipOptimize, "skip-optimize", false, "skip VACUUM and ANALYZE after loading")
	return cmd
}
