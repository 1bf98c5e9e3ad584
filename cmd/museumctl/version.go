package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/museum-search/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of museumctl",
		Args:  cobra.NoArgs,
		// Needs no config.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "museumctl %s\n", version.String())
		},
	}
}
