// Command hindict builds an offline English/Hindi dictionary from Kaikki
// Wiktionary JSONL extracts.
//
// Subcommands:
//
//	process   normalize and deduplicate the JSONL sources into intermediate files
//	build     load the combined intermediate file into a fresh SQLite store
//	lookup    search a built store
//	version   print build information
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		slog.Error("command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
