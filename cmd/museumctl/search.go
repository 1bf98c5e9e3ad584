package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/museum-search/internal/tui"
)

type searchHit struct {
	Row         int      `json:"row"`
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	Authors     []string `json:"authors"`
	Description string   `json:"description"`
	Distance    float64  `json:"distance"`
}

func newSearchCmd(c *cli) *cobra.Command {
	var (
		topK   int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "search <text>...",
		Short: "Find the catalog records closest to a free-text description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := c.load(cmd.Context())
			defer cleanup()
			if err != nil {
				return err
			}

			results, err := a.Search(cmd.Context(), strings.Join(args, " "), topK)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !asJSON {
				fmt.Fprint(out, tui.RenderExhibits(results))
				return nil
			}
			hits := make([]searchHit, len(results))
			for i := range results {
				r := &results[i]
				hits[i] = searchHit{
					Row: r.Row(), Name: r.Name(), URL: r.URL(),
					Authors: r.Authors(), Description: r.Description(), Distance: r.Distance(),
				}
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(hits)
		},
	}

	cmd.Flags().IntVarP(&topK, "top-k", "k", 0, "number of results (default: search.default_top_k)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output results as JSON")
	return cmd
}
