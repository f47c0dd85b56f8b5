package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/hindict/internal/app/processor"
)

func newProcessCmd(opts *rootOptions) *cobra.Command {
	var english, hindi, out string

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Normalize and deduplicate the JSONL sources into intermediate files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := opts.cfg.Processor
			if cmd.Flags().Changed("english") {
				cfg.EnglishPath = english
			}
			if cmd.Flags().Changed("hindi") {
				cfg.HindiPath = hindi
			}
			if cmd.Flags().Changed("out") {
				cfg.OutputDir = out
			}
			opts.cfg.Processor = cfg
			if err := opts.cfg.Validate(); err != nil {
				return fmt.Errorf("config: %w", err)
			}

			result, err := processor.NewPipeline(opts.log, cfg).Run(cmd.Context())
			if err != nil {
				return err
			}

			for _, src := range result.Sources {
				if src.Skipped {
					continue
				}
				opts.log.Info("source summary",
					slog.String("language", string(src.Language)),
					slog.Int("accepted", src.Stats.Accepted),
					slog.Int("discarded", src.Stats.Discarded),
					slog.Int("malformed", src.Stats.MalformedLines),
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&english, "english", "", "English Kaikki JSONL file (empty disables the source)")
	cmd.Flags().StringVar(&hindi, "hindi", "", "Hindi Kaikki JSONL file (empty disables the source)")
	cmd.Flags().StringVar(&out, "out", "", "directory for the intermediate files")
	return cmd
}
