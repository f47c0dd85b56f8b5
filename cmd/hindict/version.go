package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/hindict/internal/app"
	"github.com/heartmarshall/hindict/internal/app/builder"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		// Needs no configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "hindict %s\nschema %s\n", app.BuildVersion(), builder.SchemaVersion)
			return err
		},
	}
}
