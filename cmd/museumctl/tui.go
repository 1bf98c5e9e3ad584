package main

import (
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/museum-search/internal/tui"
)

func newTUICmd(c *cli) *cobra.Command {
	var topK int

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Interactive search in the terminal",
		Long: `tui opens a chat-style terminal session: type a description of an exhibit
or a piece of art news and get the closest catalog records and the largest
exhibitions back. Use --log-file to keep log output off the screen.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, cleanup, err := c.load(cmd.Context())
			defer cleanup()
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), a, topK)
		},
	}

	cmd.Flags().IntVarP(&topK, "top-k", "k", 0, "number of results (default: search.default_top_k)")
	return cmd
}
